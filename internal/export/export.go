package export

import (
	"context"

	"github.com/google/uuid"
)

// TrackerConfig holds the issue tracker connection settings used when
// pushing test cases.
type TrackerConfig struct {
	BaseURL   string `json:"base_url"`
	Username  string `json:"username"`
	Token     string `json:"token"`
	Project   string `json:"project"`
	IssueType string `json:"issue_type"`
}

// PushCommand selects the test cases to push. Tracker overrides the
// configured connection when set.
type PushCommand struct {
	Tracker     *TrackerConfig `json:"tracker,omitempty"`
	TestCaseIDs []uuid.UUID    `json:"test_case_ids"`
}

// PushedIssue pairs a test case with the tracker issue created for it.
type PushedIssue struct {
	TestCaseID uuid.UUID `json:"test_case_id"`
	TrackerKey string    `json:"tracker_key"`
}

// ItemError reports a per-test-case push failure.
type ItemError struct {
	TestCaseID uuid.UUID `json:"test_case_id"`
	Error      string    `json:"error"`
}

// PushResult reports a partial-success push. Created issues are never
// rolled back when later items fail.
type PushResult struct {
	Created []PushedIssue `json:"created"`
	Errors  []ItemError   `json:"errors,omitempty"`
}

// System defines export operations: tracker push and CSV projections.
type System interface {
	Handler() *Handler
	PushTracker(ctx context.Context, cmd PushCommand) (*PushResult, error)
	TraceabilityCSV(ctx context.Context, docID uuid.UUID) ([]byte, error)
	TestCasesCSV(ctx context.Context, docID uuid.UUID) ([]byte, error)
}
