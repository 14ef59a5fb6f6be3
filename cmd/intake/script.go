package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/simorghcare/intake/internal/assessment"
	"gopkg.in/yaml.v3"
)

// scriptFile is the YAML scenario consumed by -script: a demographics
// record plus the question ids to check per category. Used by the BDD
// suite and for ad-hoc runs without a terminal.
type scriptFile struct {
	Demographics map[string]string `yaml:"demographics"`
	Selections   map[int][]int     `yaml:"selections"`
}

// Demographics fields in the order the wizard collects them. livingWith
// must go first: it decides which guardian fields are writable.
var scriptFieldOrder = []assessment.Field{
	assessment.FieldLivingWith,
	assessment.FieldProvince,
	assessment.FieldCity,
	assessment.FieldMaritalStatus,
	assessment.FieldFatherAge,
	assessment.FieldFatherEducation,
	assessment.FieldFatherOccupation,
	assessment.FieldMotherAge,
	assessment.FieldMotherEducation,
	assessment.FieldMotherOccupation,
}

// runScript drives the engine through the whole wizard from a scenario
// file and writes the submitted payload as YAML to out. Any refused gate
// or rejected toggle aborts with an error describing the step.
func runScript(engine *assessment.Engine, path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	var script scriptFile
	if err := yaml.Unmarshal(data, &script); err != nil {
		return fmt.Errorf("parsing script: %w", err)
	}

	engine.Load()
	if engine.Step() == engine.ConfirmationStep() {
		return fmt.Errorf("assessment already completed for this user; reset first")
	}

	engine.Start()

	for _, field := range scriptFieldOrder {
		value, ok := script.Demographics[string(field)]
		if !ok {
			continue
		}
		if err := engine.UpdateDemographic(field, value); err != nil {
			return fmt.Errorf("demographics field %s: %w", field, err)
		}
	}

	engine.Next()
	if engine.Step() == assessment.StepDemographics {
		return fmt.Errorf("demographics record is incomplete")
	}

	for engine.Step() < engine.SummaryStep() {
		cat := engine.CategoryAt(engine.Step())

		for _, questionID := range script.Selections[cat.ID] {
			if err := engine.UpdateAnswer(cat.ID, questionID, true); err != nil {
				return fmt.Errorf("category %d question %d: %w", cat.ID, questionID, err)
			}
		}

		before := engine.Step()
		engine.Next()
		if engine.Step() == before {
			status, _ := engine.CategoryValidity(cat.ID)
			return fmt.Errorf("category %d (%s): %d selected, needs between %d and %d",
				cat.ID, cat.Title, status.Selected, status.Min, status.Max)
		}
	}

	payload, err := engine.Submit(context.Background())
	if err != nil {
		return fmt.Errorf("submitting: %w", err)
	}

	encoded, err := yaml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	if _, err := out.Write(encoded); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}
	return nil
}
