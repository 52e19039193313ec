// Package generation implements the requirement-to-test-case stage. It
// drives the generation oracle against approved requirements, persists
// preview test cases, confirms previews into generated cases, and
// regenerates stale or flagged cases from their source requirement.
package generation

import (
	"context"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/testcases"
)

// PreviewResult reports the outcome of a preview generation run.
type PreviewResult struct {
	DocID        uuid.UUID           `json:"doc_id"`
	Requirements int                 `json:"requirements"`
	Created      []testcases.TestCase `json:"created"`
}

// ConfirmCommand promotes preview test cases to generated. Confidence is an
// optional reviewer assertion recorded on the generation event.
type ConfirmCommand struct {
	TestCaseIDs []uuid.UUID `json:"test_case_ids"`
	ConfirmedBy string      `json:"confirmed_by"`
	Confidence  *float64    `json:"confidence,omitempty"`
}

// ConfirmResult reports confirmed ids and non-preview ids that were skipped.
type ConfirmResult struct {
	Confirmed []uuid.UUID `json:"confirmed"`
	Skipped   []uuid.UUID `json:"skipped,omitempty"`
}

// BatchItemError reports a failed item in a batch regeneration.
type BatchItemError struct {
	TestCaseID uuid.UUID `json:"test_case_id"`
	Error      string    `json:"error"`
}

// BatchRegenerateResult reports the outcome of a batch regeneration run.
// Items with a prior regeneration are skipped; failures never abort the
// remaining items.
type BatchRegenerateResult struct {
	Regenerated []uuid.UUID      `json:"regenerated"`
	Skipped     []uuid.UUID      `json:"skipped,omitempty"`
	Errors      []BatchItemError `json:"errors,omitempty"`
}

// System defines the public contract for the generation stage.
type System interface {
	Handler() *Handler

	// Preview generates preview test cases for every approved requirement
	// of a document crossed with the requested test types. Any oracle
	// failure aborts the remaining items; previews persisted before the
	// failure are kept.
	Preview(ctx context.Context, docID uuid.UUID, types []testcases.TestType) (*PreviewResult, error)

	// Confirm promotes preview test cases to generated. Non-preview ids
	// are skipped, not failed.
	Confirm(ctx context.Context, cmd ConfirmCommand) (*ConfirmResult, error)

	// Regenerate re-runs the oracle for one test case with its original
	// test type, overwriting content in place. Status and the regeneration
	// counter are not touched.
	Regenerate(ctx context.Context, id uuid.UUID) (*testcases.TestCase, error)

	// RegenerateBatch regenerates many test cases, skipping any with a
	// prior regeneration and incrementing the counter on success.
	RegenerateBatch(ctx context.Context, ids []uuid.UUID) (*BatchRegenerateResult, error)
}
