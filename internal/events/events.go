// Package events implements the append-only audit log for the requirement
// and test-case lifecycle. Review events record human and judge decisions;
// generation events record oracle activity. Events are never updated or
// deleted. Append functions accept a Querier so callers can write events
// inside the same transaction as the state change they record.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Reviewer identities and actions used across the lifecycle stages.
const (
	ReviewerJudge = "judge-llm"

	ActionApproved        = "approved"
	ActionRejected        = "rejected"
	ActionRegenerate      = "regenerate"
	ActionReviewed        = "reviewed"
	ActionTextUpdated     = "text_updated"
	ActionAutoApproved    = "auto_approved"
	ActionJudgeEvaluation = "judge_evaluation"
)

// Generation event stages.
const (
	StageExtract    = "extract"
	StagePreview    = "preview"
	StageConfirm    = "confirm"
	StageRegenerate = "regenerate"
)

// InitiatorSystem is recorded as the generation initiator when the oracle
// call was driven by the pipeline rather than an identified user.
const InitiatorSystem = "system"

// FieldDiff captures a single field change in a review. Recorded only when
// the value actually changed.
type FieldDiff struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// ReviewEvent records one review decision against a requirement, optionally
// scoped to a specific test case.
type ReviewEvent struct {
	ID                 uuid.UUID       `json:"id"`
	RequirementID      uuid.UUID       `json:"requirement_id"`
	TestCaseID         *uuid.UUID      `json:"test_case_id,omitempty"`
	Reviewer           string          `json:"reviewer"`
	Action             string          `json:"action"`
	Note               *string         `json:"note,omitempty"`
	Diffs              json.RawMessage `json:"diffs,omitempty"`
	ReviewerConfidence *float64        `json:"reviewer_confidence,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// GenerationEvent records one oracle invocation outcome, optionally scoped
// to the requirement and test case it produced or touched. Prompt and
// RawResponse preserve the verbatim exchange so any oracle call can be
// reconstructed from the audit log.
type GenerationEvent struct {
	ID            uuid.UUID  `json:"id"`
	RequirementID *uuid.UUID `json:"requirement_id,omitempty"`
	TestCaseID    *uuid.UUID `json:"test_case_id,omitempty"`
	Stage         string     `json:"stage"`
	Model         string     `json:"model"`
	GeneratedBy   string     `json:"generated_by"`
	Prompt        *string    `json:"prompt,omitempty"`
	RawResponse   *string    `json:"raw_response,omitempty"`
	Detail        *string    `json:"detail,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// MarshalDiffs serializes a field diff map for storage on a review event.
// Returns nil for an empty map so the column stays NULL.
func MarshalDiffs(diffs map[string]FieldDiff) (json.RawMessage, error) {
	if len(diffs) == 0 {
		return nil, nil
	}
	return json.Marshal(diffs)
}
