// Package testcases implements the test case domain for casegen. A test
// case is one generated verification scenario for an approved requirement.
// The human QA decision stage lives here: approve, reject, and regenerate
// decisions, the pending review queue, and review packages.
package testcases

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/events"
	"github.com/reqsmith/casegen/internal/requirements"
)

// TestCase represents one generated verification scenario. Content is a
// schema-versioned JSON envelope holding evidence, automated steps, and
// sample data; decode it with DecodeContent at stage boundaries. DocID is
// resolved through the owning requirement.
type TestCase struct {
	ID                uuid.UUID       `json:"id"`
	RequirementID     uuid.UUID       `json:"requirement_id"`
	DocID             uuid.UUID       `json:"doc_id"`
	TestCaseIdent     string          `json:"test_case_ident"`
	TestType          TestType        `json:"test_type"`
	Status            Status          `json:"status"`
	Gherkin           string          `json:"gherkin"`
	Content           json.RawMessage `json:"content"`
	CodeScaffold      string          `json:"code_scaffold"`
	GeneratedAt       time.Time       `json:"generated_at"`
	RegenerationCount int             `json:"regeneration_count"`
	TrackerKey        *string         `json:"tracker_key,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// NewIdent builds a collision-safe test case identifier from the owning
// requirement's logical slot and a random suffix.
func NewIdent(requirementIdent string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return "TC-" + requirementIdent + "-" + suffix
}

// Decision is a human QA decision on a pending test case.
type Decision string

const (
	DecisionApprove    Decision = "approve"
	DecisionReject     Decision = "reject"
	DecisionRegenerate Decision = "regenerate"
)

// Valid reports whether d is a recognized decision.
func (d Decision) Valid() bool {
	switch d {
	case DecisionApprove, DecisionReject, DecisionRegenerate:
		return true
	}
	return false
}

// DecideCommand carries one human QA decision. Edits are content overrides
// applied before a regenerate decision stales the case.
type DecideCommand struct {
	TestCaseID       uuid.UUID      `json:"test_case_id"`
	Decision         Decision       `json:"decision"`
	Reviewer         string         `json:"reviewer"`
	Notes            *string        `json:"notes,omitempty"`
	Edits            map[string]any `json:"edits,omitempty"`
	RegenerateReason *string        `json:"regenerate_reason,omitempty"`
}

// BatchDecideCommand applies one decision to many test cases.
type BatchDecideCommand struct {
	TestCaseIDs []uuid.UUID `json:"test_case_ids"`
	Decision    Decision    `json:"decision"`
	Reviewer    string      `json:"reviewer"`
}

// BatchItemResult reports the outcome of one item in a batch decision.
type BatchItemResult struct {
	TestCaseID uuid.UUID `json:"test_case_id"`
	Error      string    `json:"error,omitempty"`
}

// BatchResult summarizes a batch decision: every item either decided or
// carried an error; failures never abort the remaining items.
type BatchResult struct {
	Decision Decision          `json:"decision"`
	Decided  []uuid.UUID       `json:"decided"`
	Errors   []BatchItemResult `json:"errors,omitempty"`
}

// PendingItem is one entry in the review queue: a preview or stale test case
// with its owning requirement's context.
type PendingItem struct {
	TestCase         TestCase `json:"test_case"`
	RequirementIdent string   `json:"requirement_ident"`
	RequirementText  string   `json:"requirement_text"`
}

// RequirementAudit is the review history of a test case's owning requirement.
type RequirementAudit struct {
	TestCaseID    uuid.UUID            `json:"test_case_id"`
	RequirementID uuid.UUID            `json:"requirement_id"`
	Reviews       []events.ReviewEvent `json:"reviews"`
}

// ReviewPackage bundles everything a reviewer needs for one test case: the
// case itself, its owning requirement, and the latest judge verdict if any.
type ReviewPackage struct {
	TestCase    TestCase                  `json:"test_case"`
	Requirement *requirements.Requirement `json:"requirement"`
	Judge       *events.ReviewEvent       `json:"judge,omitempty"`
}
