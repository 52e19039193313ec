package requirements

import (
	"reflect"

	"github.com/reqsmith/casegen/internal/events"
)

// ApprovalThreshold is the asserted-confidence floor for approval. A review
// at exactly the threshold approves.
const ApprovalThreshold = 0.7

// MaxReviewerConfidence caps asserted confidence below certainty. Human
// assertions never reach 1.0; only explicit approval decisions do.
const MaxReviewerConfidence = 0.99

// ClampConfidence bounds an asserted confidence to [0, MaxReviewerConfidence].
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > MaxReviewerConfidence {
		return MaxReviewerConfidence
	}
	return c
}

// ReviewOutcome is the computed result of applying a review to a
// requirement's structured state.
type ReviewOutcome struct {
	Fields      map[string]any
	Confidences map[string]float64
	Diffs       map[string]events.FieldDiff
	Overall     float64
	Status      Status
}

// ApplyReview computes the effect of a human review. Edits overwrite
// structured fields; a diff is recorded only when the value actually
// changed. Every edited field's confidence becomes the clamped asserted
// confidence, the overall confidence is the mean of all field confidences,
// and the resulting status is approved at or above the threshold and
// needs_second_review below it.
func ApplyReview(
	fields map[string]any,
	confidences map[string]float64,
	edits map[string]any,
	assertedConfidence float64,
) ReviewOutcome {
	clamped := ClampConfidence(assertedConfidence)

	outFields := make(map[string]any, len(fields))
	for k, v := range fields {
		outFields[k] = v
	}

	outConfidences := make(map[string]float64, len(confidences))
	for k, v := range confidences {
		outConfidences[k] = v
	}

	diffs := make(map[string]events.FieldDiff)
	for field, value := range edits {
		old, existed := outFields[field]
		outFields[field] = value
		outConfidences[field] = clamped

		// The diff records only actual changes; the confidence assertion
		// above applies to every edited field either way.
		if existed && reflect.DeepEqual(old, value) {
			continue
		}

		diffs[field] = events.FieldDiff{Old: old, New: value}
	}

	overall := clamped
	if len(outConfidences) > 0 {
		var sum float64
		for _, c := range outConfidences {
			sum += c
		}
		overall = sum / float64(len(outConfidences))
	}

	status := StatusNeedsSecondReview
	if clamped >= ApprovalThreshold {
		status = StatusApproved
	}

	return ReviewOutcome{
		Fields:      outFields,
		Confidences: outConfidences,
		Diffs:       diffs,
		Overall:     overall,
		Status:      status,
	}
}

// MeanConfidence averages per-field confidences, returning fallback when empty.
func MeanConfidence(confidences map[string]float64, fallback float64) float64 {
	if len(confidences) == 0 {
		return fallback
	}

	var sum float64
	for _, c := range confidences {
		sum += c
	}
	return sum / float64(len(confidences))
}
