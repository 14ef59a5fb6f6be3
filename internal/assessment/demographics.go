package assessment

import (
	"errors"
	"strings"
)

// Literal guardian tokens looked up inside the livingWith answer.
const (
	tokenFather = "پدر"
	tokenMother = "مادر"
)

// Field names a single demographics field. The fatherLiving/motherLiving
// flags are not fields: they are derived from livingWith and can never be
// written directly.
type Field string

const (
	FieldLivingWith       Field = "livingWith"
	FieldFatherAge        Field = "fatherAge"
	FieldFatherEducation  Field = "fatherEducation"
	FieldFatherOccupation Field = "fatherOccupation"
	FieldMotherAge        Field = "motherAge"
	FieldMotherEducation  Field = "motherEducation"
	FieldMotherOccupation Field = "motherOccupation"
	FieldProvince         Field = "province"
	FieldCity             Field = "city"
	FieldMaritalStatus    Field = "maritalStatus"
)

var (
	// ErrUnknownField is returned for a field name outside the set above.
	ErrUnknownField = errors.New("unknown demographics field")

	// ErrGuardianNotPresent is returned when writing a guardian detail
	// field whose living flag is false. Those fields only exist while the
	// child lives with that guardian.
	ErrGuardianNotPresent = errors.New("guardian is not part of the household")
)

// Demographics holds the household/background record collected before the
// checklist steps. FatherLiving and MotherLiving are re-derived on every
// write to LivingWith; the detail triple of an absent guardian is always
// empty.
type Demographics struct {
	LivingWith   string `json:"livingWith"`
	FatherLiving bool   `json:"fatherLiving"`
	MotherLiving bool   `json:"motherLiving"`

	FatherAge        string `json:"fatherAge"`
	FatherEducation  string `json:"fatherEducation"`
	FatherOccupation string `json:"fatherOccupation"`

	MotherAge        string `json:"motherAge"`
	MotherEducation  string `json:"motherEducation"`
	MotherOccupation string `json:"motherOccupation"`

	Province      string `json:"province"`
	City          string `json:"city"`
	MaritalStatus string `json:"maritalStatus"`
}

// Set writes one demographics field. Writing livingWith atomically
// re-derives both living flags and clears the detail fields of any
// guardian whose flag became false.
func (d *Demographics) Set(field Field, value string) error {
	switch field {
	case FieldLivingWith:
		d.LivingWith = value
		d.FatherLiving = strings.Contains(value, tokenFather)
		d.MotherLiving = strings.Contains(value, tokenMother)
		if !d.FatherLiving {
			d.FatherAge = ""
			d.FatherEducation = ""
			d.FatherOccupation = ""
		}
		if !d.MotherLiving {
			d.MotherAge = ""
			d.MotherEducation = ""
			d.MotherOccupation = ""
		}
		return nil

	case FieldFatherAge, FieldFatherEducation, FieldFatherOccupation:
		if !d.FatherLiving {
			return ErrGuardianNotPresent
		}
		switch field {
		case FieldFatherAge:
			d.FatherAge = value
		case FieldFatherEducation:
			d.FatherEducation = value
		case FieldFatherOccupation:
			d.FatherOccupation = value
		}
		return nil

	case FieldMotherAge, FieldMotherEducation, FieldMotherOccupation:
		if !d.MotherLiving {
			return ErrGuardianNotPresent
		}
		switch field {
		case FieldMotherAge:
			d.MotherAge = value
		case FieldMotherEducation:
			d.MotherEducation = value
		case FieldMotherOccupation:
			d.MotherOccupation = value
		}
		return nil

	case FieldProvince:
		d.Province = value
		return nil
	case FieldCity:
		d.City = value
		return nil
	case FieldMaritalStatus:
		d.MaritalStatus = value
		return nil
	}

	return ErrUnknownField
}

// normalize re-derives the living flags and clears absent-guardian detail
// fields. Applied to persisted snapshots on load so a hand-edited or stale
// record cannot resurrect an inconsistent state.
func (d *Demographics) normalize() {
	living := d.LivingWith
	d.FatherLiving = strings.Contains(living, tokenFather)
	d.MotherLiving = strings.Contains(living, tokenMother)
	if !d.FatherLiving {
		d.FatherAge = ""
		d.FatherEducation = ""
		d.FatherOccupation = ""
	}
	if !d.MotherLiving {
		d.MotherAge = ""
		d.MotherEducation = ""
		d.MotherOccupation = ""
	}
}
