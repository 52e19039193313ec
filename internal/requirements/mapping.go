package requirements

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/pkg/query"
	"github.com/reqsmith/casegen/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "requirements", "r").
	Project("id", "ID").
	Project("doc_id", "DocID").
	Project("requirement_ident", "RequirementIdent").
	Project("raw_text", "RawText").
	Project("structured", "Structured").
	Project("field_confidences", "FieldConfidences").
	Project("overall_confidence", "OverallConfidence").
	Project("status", "Status").
	Project("version", "Version").
	Project("error_message", "ErrorMessage").
	Project("embeddings", "Embeddings").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "CreatedAt",
}

// Filters contains optional filtering criteria for requirement queries.
// Nil fields are ignored. ActiveOnly excludes archived revisions.
type Filters struct {
	DocID         *uuid.UUID `json:"doc_id,omitempty"`
	Status        *Status    `json:"status,omitempty"`
	Ident         *string    `json:"ident,omitempty"`
	ActiveOnly    bool       `json:"active_only,omitempty"`
	MinConfidence *float64   `json:"min_confidence,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("DocID", f.DocID).
		WhereEquals("Status", f.Status).
		WhereContains("RequirementIdent", f.Ident)

	if f.ActiveOnly {
		archived := string(StatusArchived)
		b.WhereNotEquals("Status", &archived)
	}

	if f.MinConfidence != nil {
		b.WhereGTE("OverallConfidence", f.MinConfidence)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if d := values.Get("doc_id"); d != "" {
		if id, err := uuid.Parse(d); err == nil {
			f.DocID = &id
		}
	}

	if s := values.Get("status"); s != "" {
		status := Status(s)
		if status.Valid() {
			f.Status = &status
		}
	}

	if i := values.Get("ident"); i != "" {
		f.Ident = &i
	}

	if a := values.Get("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.ActiveOnly = v
		}
	}

	if m := values.Get("min_confidence"); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			f.MinConfidence = &v
		}
	}

	return f
}

func scanRequirement(s repository.Scanner) (Requirement, error) {
	var r Requirement
	err := s.Scan(
		&r.ID,
		&r.DocID,
		&r.RequirementIdent,
		&r.RawText,
		&r.Structured,
		&r.FieldConfidences,
		&r.OverallConfidence,
		&r.Status,
		&r.Version,
		&r.ErrorMessage,
		&r.Embeddings,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}
