// Package extraction implements the document-to-requirements stage.
// It splits an uploaded document's text into paragraph blocks, runs each
// block through the extraction oracle with bounded retry, and persists one
// requirement revision per block. Oracle retries always precede persistence,
// so a failed block never leaves a partial row behind.
package extraction

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Result reports the outcome of an extraction run over one document.
type Result struct {
	DocID      uuid.UUID   `json:"doc_id"`
	SessionID  uuid.UUID   `json:"session_id"`
	Paragraphs int         `json:"paragraphs"`
	Created    []uuid.UUID `json:"created"`
	ManualFix  int         `json:"manual_fix"`
}

// RetryConfig bounds the exponential backoff applied to oracle calls.
type RetryConfig struct {
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration
}

// System defines the public contract for the extraction stage.
type System interface {
	Handler() *Handler

	// Extract runs the full extraction pipeline for a document. Re-running
	// extraction creates additional requirement rows; it does not replace
	// earlier runs.
	Extract(ctx context.Context, docID uuid.UUID) (*Result, error)
}
