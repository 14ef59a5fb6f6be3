package assessment

import (
	"errors"
	"testing"
)

func TestDemographics_LivingWithDerivation(t *testing.T) {
	tests := []struct {
		name         string
		livingWith   string
		fatherLiving bool
		motherLiving bool
	}{
		{"both parents", "با پدر و مادر", true, true},
		{"mother only", "فقط با مادر", false, true},
		{"father only", "فقط با پدر", true, false},
		{"relatives", "با بستگان", false, false},
		{"empty", "", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d Demographics
			if err := d.Set(FieldLivingWith, tc.livingWith); err != nil {
				t.Fatalf("Set livingWith: %v", err)
			}
			if d.FatherLiving != tc.fatherLiving {
				t.Errorf("FatherLiving = %v, want %v", d.FatherLiving, tc.fatherLiving)
			}
			if d.MotherLiving != tc.motherLiving {
				t.Errorf("MotherLiving = %v, want %v", d.MotherLiving, tc.motherLiving)
			}
		})
	}
}

func TestDemographics_LivingWithClearsAbsentGuardian(t *testing.T) {
	var d Demographics
	d.Set(FieldLivingWith, "با پدر و مادر")
	d.Set(FieldFatherAge, "42")
	d.Set(FieldFatherEducation, "دیپلم")
	d.Set(FieldFatherOccupation, "کارمند")
	d.Set(FieldMotherAge, "38")

	// Father drops out of the household: his details must be wiped.
	d.Set(FieldLivingWith, "فقط با مادر")

	if d.FatherLiving {
		t.Error("FatherLiving should be false")
	}
	if d.FatherAge != "" || d.FatherEducation != "" || d.FatherOccupation != "" {
		t.Errorf("Father details not cleared: %q %q %q", d.FatherAge, d.FatherEducation, d.FatherOccupation)
	}
	if d.MotherAge != "38" {
		t.Errorf("Mother details must survive, got age %q", d.MotherAge)
	}
}

func TestDemographics_GuardianFieldsGated(t *testing.T) {
	var d Demographics
	d.Set(FieldLivingWith, "فقط با مادر")

	if err := d.Set(FieldFatherAge, "42"); !errors.Is(err, ErrGuardianNotPresent) {
		t.Errorf("Expected ErrGuardianNotPresent, got %v", err)
	}
	if d.FatherAge != "" {
		t.Errorf("Rejected write must not stick, got %q", d.FatherAge)
	}

	if err := d.Set(FieldMotherAge, "38"); err != nil {
		t.Errorf("Mother field should be writable: %v", err)
	}
}

func TestDemographics_UnknownField(t *testing.T) {
	var d Demographics
	if err := d.Set(Field("fatherLiving"), "true"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Living flags must not be settable, got %v", err)
	}
	if err := d.Set(Field("bogus"), "x"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Expected ErrUnknownField, got %v", err)
	}
}

func TestDemographics_BaseFields(t *testing.T) {
	var d Demographics
	d.Set(FieldProvince, "تهران")
	d.Set(FieldCity, "تهران")
	d.Set(FieldMaritalStatus, "متاهل")

	if d.Province != "تهران" || d.City != "تهران" || d.MaritalStatus != "متاهل" {
		t.Errorf("Base fields not set: %+v", d)
	}
}

func TestDemographics_NormalizeRepairsSnapshot(t *testing.T) {
	// A hand-edited or stale snapshot can disagree with its own
	// livingWith answer; normalize must re-derive and clear.
	d := Demographics{
		LivingWith:   "فقط با مادر",
		FatherLiving: true,
		FatherAge:    "42",
		MotherLiving: false,
		MotherAge:    "38",
	}
	d.normalize()

	if d.FatherLiving {
		t.Error("FatherLiving should be re-derived to false")
	}
	if d.FatherAge != "" {
		t.Errorf("Father details should be cleared, got %q", d.FatherAge)
	}
	if !d.MotherLiving {
		t.Error("MotherLiving should be re-derived to true")
	}
	if d.MotherAge != "38" {
		t.Errorf("Mother details should survive, got %q", d.MotherAge)
	}
}
