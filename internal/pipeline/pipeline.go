// Package pipeline composes the per-stage systems into session-level
// operations: one-call upload-and-extract, session status aggregation, and
// bulk auto-approval. It owns no tables of its own; every read and write
// goes through the stage packages or their shared queries.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/documents"
)

// Stage identifies how far a session has progressed.
type Stage string

const (
	StageUpload   Stage = "upload"
	StageExtract  Stage = "extract"
	StageReview   Stage = "review"
	StageGenerate Stage = "generate"
	StagePush     Stage = "push"
)

// ordinal positions drive the coarse progress fraction.
var stageOrder = map[Stage]int{
	StageUpload:   1,
	StageExtract:  2,
	StageReview:   3,
	StageGenerate: 4,
	StagePush:     5,
}

// StartResult reports the outcome of an upload-and-extract run.
type StartResult struct {
	SessionID           uuid.UUID   `json:"session_id"`
	DocID               uuid.UUID   `json:"doc_id"`
	Filename            string      `json:"filename"`
	Paragraphs          int         `json:"paragraphs"`
	RequirementsCreated []uuid.UUID `json:"requirements_created"`
	ManualFix           int         `json:"manual_fix"`
}

// StatusReport aggregates a session's position across the stages.
type StatusReport struct {
	SessionID    uuid.UUID      `json:"session_id"`
	Stage        Stage          `json:"stage"`
	Progress     float64        `json:"progress"`
	Documents    int            `json:"documents"`
	Requirements map[string]int `json:"requirements"`
	TestCases    map[string]int `json:"test_cases"`
}

// AutoApproveResult aggregates per-document auto-approval across a session.
type AutoApproveResult struct {
	SessionID uuid.UUID   `json:"session_id"`
	Approved  []uuid.UUID `json:"approved"`
	Threshold float64     `json:"threshold"`
}

// System defines the public contract for session-level pipeline operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Start uploads a document and immediately runs extraction on it.
	Start(ctx context.Context, cmd documents.CreateCommand) (*StartResult, error)

	// Status reports the furthest stage any artifact of the session has
	// reached, with per-status requirement and test case counts.
	Status(ctx context.Context, sessionID uuid.UUID) (*StatusReport, error)

	// AutoApprove promotes extracted requirements across every document in
	// the session whose overall confidence meets the threshold.
	AutoApprove(ctx context.Context, sessionID uuid.UUID, threshold float64) (*AutoApproveResult, error)
}
