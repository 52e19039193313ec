package oracle_test

import (
	"math"
	"testing"

	"github.com/reqsmith/casegen/internal/oracle"
)

func validExtraction() oracle.Extraction {
	return oracle.Extraction{
		Type:    "safety",
		Subject: "brake system",
		Actions: []string{"engage brakes"},
		FieldConfidences: map[string]float64{
			"subject": 0.9,
			"actions": 0.7,
		},
	}
}

func TestExtractionValidate(t *testing.T) {
	e := validExtraction()
	if err := e.Validate(); err != nil {
		t.Errorf("valid extraction rejected: %v", err)
	}
}

func TestExtractionValidateEmptySubject(t *testing.T) {
	e := validExtraction()
	e.Subject = ""

	err := e.Validate()
	if !oracle.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestExtractionValidateUnknownType(t *testing.T) {
	e := validExtraction()
	e.Type = "aspirational"

	if err := e.Validate(); !oracle.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestExtractionValidateConfidenceBounds(t *testing.T) {
	e := validExtraction()
	e.FieldConfidences["subject"] = 1.2

	if err := e.Validate(); !oracle.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestExtractionOverallConfidence(t *testing.T) {
	e := validExtraction()
	if got := e.OverallConfidence(0.5); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("OverallConfidence = %v, want 0.8", got)
	}
}

func TestExtractionOverallConfidenceFallback(t *testing.T) {
	e := validExtraction()
	e.FieldConfidences = nil

	if got := e.OverallConfidence(0.5); got != 0.5 {
		t.Errorf("OverallConfidence = %v, want fallback 0.5", got)
	}
}

func validGenerated() oracle.GeneratedContent {
	return oracle.GeneratedContent{
		Gherkin:        "Feature: braking",
		Evidence:       []string{"trace"},
		AutomatedSteps: []string{"step"},
		SampleData:     map[string]any{"speed": 100.0},
		CodeScaffold:   "func TestBraking(t *testing.T) {}",
	}
}

func TestGeneratedContentValidate(t *testing.T) {
	g := validGenerated()
	if err := g.Validate(); err != nil {
		t.Errorf("valid content rejected: %v", err)
	}
}

func TestGeneratedContentValidateMissingSections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*oracle.GeneratedContent)
	}{
		{"missing gherkin", func(g *oracle.GeneratedContent) { g.Gherkin = "" }},
		{"missing evidence", func(g *oracle.GeneratedContent) { g.Evidence = nil }},
		{"missing automated steps", func(g *oracle.GeneratedContent) { g.AutomatedSteps = nil }},
		{"missing sample data", func(g *oracle.GeneratedContent) { g.SampleData = nil }},
		{"missing code scaffold", func(g *oracle.GeneratedContent) { g.CodeScaffold = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGenerated()
			tt.mutate(&g)

			if err := g.Validate(); !oracle.IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestVerdictValidateRatingBounds(t *testing.T) {
	for _, rating := range []int{1, 2, 3, 4} {
		v := oracle.Verdict{Feedback: "fine", TotalRating: rating}
		if err := v.Validate(); err != nil {
			t.Errorf("rating %d rejected: %v", rating, err)
		}
	}

	for _, rating := range []int{0, 5, -1} {
		v := oracle.Verdict{Feedback: "fine", TotalRating: rating}
		if err := v.Validate(); !oracle.IsValidation(err) {
			t.Errorf("rating %d: err = %v, want validation error", rating, err)
		}
	}
}

func TestVerdictValidateSubScoreBounds(t *testing.T) {
	bad := 1.5
	v := oracle.Verdict{TotalRating: 3, CorrectnessOfTrigger: &bad}

	if err := v.Validate(); !oracle.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}

	good := 0.75
	v = oracle.Verdict{TotalRating: 3, CorrectnessOfTrigger: &good}
	if err := v.Validate(); err != nil {
		t.Errorf("valid sub-score rejected: %v", err)
	}
}

func TestVerdictNormalizedRating(t *testing.T) {
	tests := []struct {
		rating int
		want   float64
	}{
		{1, 0.25},
		{2, 0.5},
		{3, 0.75},
		{4, 1.0},
	}

	for _, tt := range tests {
		v := oracle.Verdict{TotalRating: tt.rating}
		if got := v.NormalizedRating(); got != tt.want {
			t.Errorf("NormalizedRating(%d) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}
