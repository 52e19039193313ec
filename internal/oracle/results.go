package oracle

import (
	"fmt"

	"github.com/reqsmith/casegen/internal/prompts"
)

// Trace preserves the verbatim oracle exchange: the composed prompt and the
// raw response body. Carried alongside results so callers can record the
// exchange on generation events.
type Trace struct {
	Prompt string `json:"-"`
	Raw    string `json:"-"`
}

// Trigger is the condition portion of an extracted requirement.
type Trigger struct {
	Metric   string `json:"metric"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Extraction is the structured interpretation of one requirement paragraph.
type Extraction struct {
	RequirementID    *string            `json:"requirement_id"`
	Type             string             `json:"type"`
	Subject          string             `json:"subject"`
	Trigger          *Trigger           `json:"trigger"`
	Actions          []string           `json:"actions"`
	TimingMS         *float64           `json:"timing_ms"`
	NumbersUnits     []string           `json:"numbers_units"`
	FieldConfidences map[string]float64 `json:"field_confidences"`

	Trace Trace `json:"-"`
}

var extractionTypes = map[string]bool{
	"safety":      true,
	"privacy":     true,
	"performance": true,
	"functional":  true,
	"unknown":     true,
}

// Validate checks structural constraints on an extraction result.
func (e *Extraction) Validate() error {
	if e.Subject == "" {
		return &ValidationError{Stage: prompts.StageExtract, Reason: "subject is empty"}
	}
	if !extractionTypes[e.Type] {
		return &ValidationError{
			Stage:  prompts.StageExtract,
			Reason: fmt.Sprintf("unrecognized requirement type %q", e.Type),
		}
	}
	for field, c := range e.FieldConfidences {
		if c < 0 || c > 1 {
			return &ValidationError{
				Stage:  prompts.StageExtract,
				Reason: fmt.Sprintf("confidence for %q outside [0, 1]", field),
			}
		}
	}
	return nil
}

// OverallConfidence averages the per-field confidences. Returns fallback
// when the oracle reported none.
func (e *Extraction) OverallConfidence(fallback float64) float64 {
	if len(e.FieldConfidences) == 0 {
		return fallback
	}

	var sum float64
	for _, c := range e.FieldConfidences {
		sum += c
	}
	return sum / float64(len(e.FieldConfidences))
}

// GeneratedContent is the full test-case payload produced by the generate stage.
// All five sections are mandatory.
type GeneratedContent struct {
	Gherkin        string         `json:"gherkin"`
	Evidence       []string       `json:"evidence"`
	AutomatedSteps []string       `json:"automated_steps"`
	SampleData     map[string]any `json:"sample_data"`
	CodeScaffold   string         `json:"code_scaffold"`

	Trace Trace `json:"-"`
}

// Validate checks that every mandatory section is present.
func (g *GeneratedContent) Validate() error {
	missing := ""
	switch {
	case g.Gherkin == "":
		missing = "gherkin"
	case g.Evidence == nil:
		missing = "evidence"
	case g.AutomatedSteps == nil:
		missing = "automated_steps"
	case g.SampleData == nil:
		missing = "sample_data"
	case g.CodeScaffold == "":
		missing = "code_scaffold"
	}

	if missing != "" {
		return &ValidationError{
			Stage:  prompts.StageGenerate,
			Reason: fmt.Sprintf("missing section %q", missing),
		}
	}
	return nil
}

// Verdict is the judge stage's evaluation of a generated test case.
// Sub-scores are optional; the oracle omits dimensions it cannot assess.
type Verdict struct {
	Feedback    string `json:"feedback"`
	Evaluation  string `json:"evaluation"`
	TotalRating int    `json:"total_rating"`

	CorrectnessOfTrigger          *float64 `json:"correctness_of_trigger,omitempty"`
	TimingAndLatency              *float64 `json:"timing_and_latency,omitempty"`
	ActionsAndPriority            *float64 `json:"actions_and_priority,omitempty"`
	LoggingAndTraceability        *float64 `json:"logging_and_traceability,omitempty"`
	StandardsCitations            *float64 `json:"standards_citations,omitempty"`
	BoundaryReadiness             *float64 `json:"boundary_readiness,omitempty"`
	ConsistencyAndNoHallucination *float64 `json:"consistency_and_no_hallucination,omitempty"`
	ConfidenceAndWarnings         *float64 `json:"confidence_and_warnings,omitempty"`

	Trace Trace `json:"-"`
}

// Validate checks rating bounds on a judge verdict.
func (v *Verdict) Validate() error {
	if v.TotalRating < 1 || v.TotalRating > 4 {
		return &ValidationError{
			Stage:  prompts.StageJudge,
			Reason: fmt.Sprintf("total_rating %d outside [1, 4]", v.TotalRating),
		}
	}

	scores := map[string]*float64{
		"correctness_of_trigger":           v.CorrectnessOfTrigger,
		"timing_and_latency":               v.TimingAndLatency,
		"actions_and_priority":             v.ActionsAndPriority,
		"logging_and_traceability":         v.LoggingAndTraceability,
		"standards_citations":              v.StandardsCitations,
		"boundary_readiness":               v.BoundaryReadiness,
		"consistency_and_no_hallucination": v.ConsistencyAndNoHallucination,
		"confidence_and_warnings":          v.ConfidenceAndWarnings,
	}

	for name, s := range scores {
		if s != nil && (*s < 0 || *s > 1) {
			return &ValidationError{
				Stage:  prompts.StageJudge,
				Reason: fmt.Sprintf("sub-score %q outside [0, 1]", name),
			}
		}
	}
	return nil
}

// NormalizedRating maps the 1..4 total rating onto the [0, 1] confidence scale.
func (v *Verdict) NormalizedRating() float64 {
	return float64(v.TotalRating) / 4.0
}
