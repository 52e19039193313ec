// Package documents implements the document domain for casegen.
// It provides types, data access, and business logic for requirement
// document upload, metadata management, blob storage integration, and
// plain-text extraction for the downstream pipeline stages.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document represents an uploaded requirements document with its metadata
// and blob storage reference. Every upload belongs to an upload session;
// the pipeline uses the session id to track a document through the stages.
type Document struct {
	ID              uuid.UUID `json:"id"`
	Filename        string    `json:"filename"`
	ContentType     string    `json:"content_type"`
	SizeBytes       int64     `json:"size_bytes"`
	PageCount       *int      `json:"page_count"`
	StorageKey      string    `json:"storage_key"`
	UploadedBy      string    `json:"uploaded_by"`
	UploadSessionID uuid.UUID `json:"upload_session_id"`
	UploadedAt      time.Time `json:"uploaded_at"`
}

// CreateCommand carries the data needed to upload and register a new
// document. Data holds the raw file bytes. PageCount is optional and may be
// extracted by the caller via pdfcpu; nil values are stored as NULL.
// A zero SessionID allocates a fresh upload session.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	UploadedBy  string
	PageCount   *int
	SessionID   uuid.UUID
}

// Text is the response type for the plain-text extraction endpoint.
type Text struct {
	DocumentID uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	Content    string    `json:"content"`
}
