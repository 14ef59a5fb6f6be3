package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simorghcare/intake/internal/assessment"
	"github.com/simorghcare/intake/internal/persist"
	"gopkg.in/yaml.v3"
)

const validScript = `
demographics:
  livingWith: "با پدر و مادر"
  province: "تهران"
  city: "تهران"
  maritalStatus: "متاهل"
  fatherAge: "42"
  fatherEducation: "دیپلم"
  fatherOccupation: "کارمند"
  motherAge: "38"
  motherEducation: "کارشناسی"
  motherOccupation: "خانه‌دار"
selections:
  1: [101, 102]
  3: [301]
`

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func scriptEngine(t *testing.T, store assessment.Store, transport assessment.SubmitFunc) *assessment.Engine {
	t.Helper()
	catalog, rules, err := assessment.LoadCatalog()
	if err != nil {
		t.Fatal(err)
	}
	return assessment.New(catalog, rules, assessment.Options{
		UserID: "user-1",
		Store:  store,
		Submit: transport,
	})
}

func TestRunScript_Success(t *testing.T) {
	store := persist.NewMemStore()
	var sent assessment.Payload
	engine := scriptEngine(t, store, func(ctx context.Context, p assessment.Payload) error {
		sent = p
		return nil
	})

	var out bytes.Buffer
	if err := runScript(engine, writeScript(t, validScript), &out); err != nil {
		t.Fatalf("runScript failed: %v", err)
	}

	if sent.TotalSelected != 3 {
		t.Errorf("Transport saw total %d, want 3", sent.TotalSelected)
	}
	if engine.Step() != engine.ConfirmationStep() {
		t.Errorf("Engine should end at confirmation, got step %d", engine.Step())
	}

	// The printed payload round-trips as YAML and matches what was sent.
	var printed assessment.Payload
	if err := yaml.Unmarshal(out.Bytes(), &printed); err != nil {
		t.Fatalf("Output is not valid YAML: %v", err)
	}
	if printed.SubmissionID != sent.SubmissionID {
		t.Errorf("Printed id %q, sent %q", printed.SubmissionID, sent.SubmissionID)
	}
	if printed.Demographics.Province != "تهران" {
		t.Errorf("Printed demographics incomplete: %+v", printed.Demographics)
	}
}

func TestRunScript_IncompleteDemographics(t *testing.T) {
	engine := scriptEngine(t, nil, nil)
	script := `
demographics:
  livingWith: "با پدر و مادر"
  province: "تهران"
selections:
  1: [101]
`
	err := runScript(engine, writeScript(t, script), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "demographics") {
		t.Errorf("Expected demographics gate error, got %v", err)
	}
}

func TestRunScript_GuardianFieldWithoutGuardian(t *testing.T) {
	engine := scriptEngine(t, nil, nil)
	script := `
demographics:
  livingWith: "با بستگان"
  province: "تهران"
  city: "تهران"
  maritalStatus: "متاهل"
  fatherAge: "42"
selections:
  1: [101]
`
	err := runScript(engine, writeScript(t, script), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "fatherAge") {
		t.Errorf("Expected error naming the rejected field, got %v", err)
	}
}

func TestRunScript_SelectionOverCap(t *testing.T) {
	engine := scriptEngine(t, nil, nil)
	script := `
demographics:
  livingWith: "با پدر و مادر"
  province: "تهران"
  city: "تهران"
  maritalStatus: "متاهل"
  fatherAge: "42"
  fatherEducation: "دیپلم"
  fatherOccupation: "کارمند"
  motherAge: "38"
  motherEducation: "کارشناسی"
  motherOccupation: "خانه‌دار"
selections:
  1: [101, 102, 103, 104]
`
	err := runScript(engine, writeScript(t, script), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "category 1") {
		t.Errorf("Expected cap rejection for category 1, got %v", err)
	}
}

func TestRunScript_NoSelectionsBlocked(t *testing.T) {
	engine := scriptEngine(t, nil, func(context.Context, assessment.Payload) error { return nil })
	script := `
demographics:
  livingWith: "با پدر و مادر"
  province: "تهران"
  city: "تهران"
  maritalStatus: "متاهل"
  fatherAge: "42"
  fatherEducation: "دیپلم"
  fatherOccupation: "کارمند"
  motherAge: "38"
  motherEducation: "کارشناسی"
  motherOccupation: "خانه‌دار"
selections: {}
`
	err := runScript(engine, writeScript(t, script), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "submitting") {
		t.Errorf("Zero selections must be blocked at submission, got %v", err)
	}
}

func TestRunScript_AlreadyCompleted(t *testing.T) {
	store := persist.NewMemStore()
	store.Set("completion/user-1", []byte(`{"submissionId":"abc"}`))

	engine := scriptEngine(t, store, nil)
	err := runScript(engine, writeScript(t, validScript), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "already completed") {
		t.Errorf("Expected completion refusal, got %v", err)
	}
}

func TestRunScript_MissingFile(t *testing.T) {
	engine := scriptEngine(t, nil, nil)
	if err := runScript(engine, filepath.Join(t.TempDir(), "nope.yaml"), &bytes.Buffer{}); err == nil {
		t.Error("Expected error for a missing script file")
	}
}
