// Package judge implements the LLM evaluation stage. A judge run scores a
// generated test case against its source requirement on a fixed rubric and
// records the verdict as a review event. Judging never mutates the test
// case itself; it only appends to the audit log.
package judge

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/events"
	"github.com/reqsmith/casegen/internal/oracle"
)

// Evaluation pairs the oracle's full verdict with the persisted audit event.
type Evaluation struct {
	TestCaseID uuid.UUID          `json:"test_case_id"`
	Verdict    oracle.Verdict     `json:"verdict"`
	Event      events.ReviewEvent `json:"event"`
}

// Scores reports the latest judge verdict for a test case. Evaluated is
// false when the case has never been judged.
type Scores struct {
	TestCaseID  uuid.UUID  `json:"test_case_id"`
	Evaluated   bool       `json:"evaluated"`
	Feedback    *string    `json:"feedback,omitempty"`
	Confidence  *float64   `json:"confidence,omitempty"`
	EvaluatedAt *time.Time `json:"evaluated_at,omitempty"`
}

// BatchItemError reports a failed item in a batch evaluation.
type BatchItemError struct {
	TestCaseID uuid.UUID `json:"test_case_id"`
	Error      string    `json:"error"`
}

// BatchResult reports the outcome of a batch evaluation. Failures are
// collected per item; remaining items always run.
type BatchResult struct {
	Evaluated []uuid.UUID      `json:"evaluated"`
	Errors    []BatchItemError `json:"errors,omitempty"`
}

// System defines the public contract for the judge stage.
type System interface {
	Handler() *Handler

	Evaluate(ctx context.Context, id uuid.UUID) (*Evaluation, error)
	EvaluateBatch(ctx context.Context, ids []uuid.UUID) (*BatchResult, error)
	LatestScores(ctx context.Context, id uuid.UUID) (*Scores, error)
}
