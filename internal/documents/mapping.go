package documents

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/pkg/query"
	"github.com/reqsmith/casegen/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("uploaded_by", "UploadedBy").
	Project("upload_session_id", "UploadSessionID").
	Project("uploaded_at", "UploadedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored. SessionID, UploadedBy, and ContentType use exact
// matching. Filename uses case-insensitive contains matching.
type Filters struct {
	SessionID   *uuid.UUID `json:"session_id,omitempty"`
	UploadedBy  *string    `json:"uploaded_by,omitempty"`
	Filename    *string    `json:"filename,omitempty"`
	ContentType *string    `json:"content_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("UploadSessionID", f.SessionID).
		WhereEquals("UploadedBy", f.UploadedBy).
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("session_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.SessionID = &id
		}
	}

	if ub := values.Get("uploaded_by"); ub != "" {
		f.UploadedBy = &ub
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.PageCount,
		&d.StorageKey,
		&d.UploadedBy,
		&d.UploadSessionID,
		&d.UploadedAt,
	)
	return d, err
}
