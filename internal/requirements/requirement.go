// Package requirements implements the requirement domain for casegen.
// A requirement is one extracted paragraph of an uploaded document, carrying
// its structured interpretation, per-field confidences, and review state.
// Text corrections are copy-on-write: the old revision is archived and a new
// row takes over the same logical slot with an incremented version.
package requirements

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/events"
)

// Requirement represents one revision of an extracted requirement.
// Structured and FieldConfidences are schema-versioned JSON envelopes;
// decode them with DecodeFields and DecodeConfidences at stage boundaries.
type Requirement struct {
	ID                uuid.UUID       `json:"id"`
	DocID             uuid.UUID       `json:"doc_id"`
	RequirementIdent  *string         `json:"requirement_ident"`
	RawText           string          `json:"raw_text"`
	Structured        json.RawMessage `json:"structured"`
	FieldConfidences  json.RawMessage `json:"field_confidences"`
	OverallConfidence float64         `json:"overall_confidence"`
	Status            Status          `json:"status"`
	Version           int             `json:"version"`
	ErrorMessage      *string         `json:"error_message,omitempty"`
	Embeddings        json.RawMessage `json:"embeddings,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Ident returns the requirement's logical identifier, falling back to a
// synthetic one derived from the row id when extraction found none.
func (r *Requirement) Ident() string {
	if r.RequirementIdent != nil && *r.RequirementIdent != "" {
		return *r.RequirementIdent
	}
	return "REQ-" + r.ID.String()
}

// InsertCommand carries the data for a new requirement revision. Used by the
// extraction stage and by copy-on-write text updates.
type InsertCommand struct {
	DocID             uuid.UUID
	RequirementIdent  *string
	RawText           string
	Structured        json.RawMessage
	FieldConfidences  json.RawMessage
	OverallConfidence float64
	Status            Status
	Version           int
	ErrorMessage      *string
}

// ReviewCommand carries a human review decision. Edits are structured field
// overrides keyed by field name. Version is the revision the reviewer saw;
// a mismatch fails the review with ErrVersionConflict.
type ReviewCommand struct {
	Reviewer   string         `json:"reviewer"`
	Edits      map[string]any `json:"edits,omitempty"`
	Confidence float64        `json:"confidence"`
	Note       *string        `json:"note,omitempty"`
	Version    int            `json:"version"`
}

// UpdateTextCommand carries a raw-text correction. The revision is re-run
// through extraction and replaces the current one copy-on-write.
type UpdateTextCommand struct {
	Reviewer string `json:"reviewer"`
	RawText  string `json:"raw_text"`
	Version  int    `json:"version"`
}

// AutoApproveResult reports the outcome of a bulk auto-approval pass.
type AutoApproveResult struct {
	DocID     uuid.UUID   `json:"doc_id"`
	Threshold float64     `json:"threshold"`
	Approved  []uuid.UUID `json:"approved"`
}

// AuditTrail bundles the full event history of a requirement.
type AuditTrail struct {
	RequirementID uuid.UUID                `json:"requirement_id"`
	Reviews       []events.ReviewEvent     `json:"reviews"`
	Generations   []events.GenerationEvent `json:"generations"`
}
