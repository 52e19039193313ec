package requirements_test

import (
	"math"
	"testing"

	"github.com/reqsmith/casegen/internal/requirements"
)

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative clamps to zero", -0.5, 0},
		{"zero passes through", 0, 0},
		{"midrange passes through", 0.7, 0.7},
		{"cap value passes through", 0.99, 0.99},
		{"certainty clamps to cap", 1.0, 0.99},
		{"above one clamps to cap", 1.5, 0.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := requirements.ClampConfidence(tt.in); got != tt.want {
				t.Errorf("ClampConfidence(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyReviewEdits(t *testing.T) {
	fields := map[string]any{"subject": "brake system", "type": "safety"}
	confidences := map[string]float64{"subject": 0.8, "type": 0.6}

	outcome := requirements.ApplyReview(
		fields,
		confidences,
		map[string]any{"type": "performance"},
		0.9,
	)

	if outcome.Fields["type"] != "performance" {
		t.Errorf("Fields[type] = %v, want performance", outcome.Fields["type"])
	}
	if outcome.Fields["subject"] != "brake system" {
		t.Errorf("Fields[subject] = %v, want unchanged", outcome.Fields["subject"])
	}
	if outcome.Confidences["type"] != 0.9 {
		t.Errorf("Confidences[type] = %v, want asserted 0.9", outcome.Confidences["type"])
	}
	if outcome.Confidences["subject"] != 0.8 {
		t.Errorf("Confidences[subject] = %v, want untouched 0.8", outcome.Confidences["subject"])
	}

	diff, ok := outcome.Diffs["type"]
	if !ok {
		t.Fatal("expected diff for edited field")
	}
	if diff.Old != "safety" || diff.New != "performance" {
		t.Errorf("diff = %v -> %v, want safety -> performance", diff.Old, diff.New)
	}
	if _, ok := outcome.Diffs["subject"]; ok {
		t.Error("unexpected diff for unedited field")
	}
}

func TestApplyReviewNoChangeNoDiff(t *testing.T) {
	fields := map[string]any{"subject": "brake system"}
	confidences := map[string]float64{"subject": 0.5}

	outcome := requirements.ApplyReview(
		fields,
		confidences,
		map[string]any{"subject": "brake system"},
		0.9,
	)

	if len(outcome.Diffs) != 0 {
		t.Errorf("Diffs = %v, want empty for no-op edit", outcome.Diffs)
	}
	if outcome.Confidences["subject"] != 0.9 {
		t.Errorf("Confidences[subject] = %v, want asserted 0.9", outcome.Confidences["subject"])
	}
}

func TestApplyReviewUnchangedEditAssertsConfidence(t *testing.T) {
	fields := map[string]any{"subject": "SpO2 alert"}
	confidences := map[string]float64{"subject": 0.2}

	outcome := requirements.ApplyReview(
		fields,
		confidences,
		map[string]any{"subject": "SpO2 alert"},
		0.9,
	)

	if outcome.Confidences["subject"] != 0.9 {
		t.Errorf("Confidences[subject] = %v, want asserted 0.9", outcome.Confidences["subject"])
	}
	if outcome.Overall != 0.9 {
		t.Errorf("Overall = %v, want 0.9", outcome.Overall)
	}
	if len(outcome.Diffs) != 0 {
		t.Errorf("Diffs = %v, want none when the value is unchanged", outcome.Diffs)
	}
}

func TestApplyReviewStatusThreshold(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       requirements.Status
	}{
		{"above threshold approves", 0.9, requirements.StatusApproved},
		{"at threshold approves", 0.7, requirements.StatusApproved},
		{"below threshold needs second review", 0.69, requirements.StatusNeedsSecondReview},
		{"certainty clamps but still approves", 1.0, requirements.StatusApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := requirements.ApplyReview(nil, nil, nil, tt.confidence)
			if outcome.Status != tt.want {
				t.Errorf("Status = %s, want %s", outcome.Status, tt.want)
			}
		})
	}
}

func TestApplyReviewOverallIsMean(t *testing.T) {
	confidences := map[string]float64{"a": 0.4, "b": 0.8}

	outcome := requirements.ApplyReview(nil, confidences, nil, 0.9)

	if math.Abs(outcome.Overall-0.6) > 1e-9 {
		t.Errorf("Overall = %v, want 0.6", outcome.Overall)
	}
}

func TestApplyReviewOverallFallsBackToClamped(t *testing.T) {
	outcome := requirements.ApplyReview(nil, nil, nil, 1.0)

	if outcome.Overall != 0.99 {
		t.Errorf("Overall = %v, want clamped 0.99 with no field confidences", outcome.Overall)
	}
}

func TestMeanConfidence(t *testing.T) {
	if got := requirements.MeanConfidence(nil, 0.5); got != 0.5 {
		t.Errorf("MeanConfidence(nil) = %v, want fallback 0.5", got)
	}

	confidences := map[string]float64{"a": 0.2, "b": 0.4, "c": 0.6}
	if got := requirements.MeanConfidence(confidences, 0.5); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("MeanConfidence = %v, want 0.4", got)
	}
}
