package testcases

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/pkg/query"
	"github.com/reqsmith/casegen/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "test_cases", "t").
	Project("id", "ID").
	Project("requirement_id", "RequirementID").
	Project("test_case_ident", "TestCaseIdent").
	Project("test_type", "TestType").
	Project("status", "Status").
	Project("gherkin", "Gherkin").
	Project("content", "Content").
	Project("code_scaffold", "CodeScaffold").
	Project("generated_at", "GeneratedAt").
	Project("regeneration_count", "RegenerationCount").
	Project("tracker_key", "TrackerKey").
	Project("created_at", "CreatedAt").
	Join("public", "requirements", "rq", "JOIN", "t.requirement_id = rq.id").
	Project("doc_id", "DocID")

var defaultSort = query.SortField{
	Field:      "GeneratedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for test case queries.
// Nil fields are ignored. DocID filters through the owning requirement.
type Filters struct {
	RequirementID *uuid.UUID `json:"requirement_id,omitempty"`
	DocID         *uuid.UUID `json:"doc_id,omitempty"`
	Status        *Status    `json:"status,omitempty"`
	TestType      *TestType  `json:"test_type,omitempty"`
	Ident         *string    `json:"ident,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("RequirementID", f.RequirementID).
		WhereEquals("DocID", f.DocID).
		WhereEquals("Status", f.Status).
		WhereEquals("TestType", f.TestType).
		WhereContains("TestCaseIdent", f.Ident)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if r := values.Get("requirement_id"); r != "" {
		if id, err := uuid.Parse(r); err == nil {
			f.RequirementID = &id
		}
	}

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

	if t := values.Get("test_type"); t != "" {
		tt := TestType(t)
		if tt.Valid() {
			f.TestType = &tt
		}
	}

	if i := values.Get("ident"); i != "" {
		f.Ident = &i
	}

	return f
}

func scanTestCase(s repository.Scanner) (TestCase, error) {
	var t TestCase
	err := s.Scan(
		&t.ID,
		&t.RequirementID,
		&t.TestCaseIdent,
		&t.TestType,
		&t.Status,
		&t.Gherkin,
		&t.Content,
		&t.CodeScaffold,
		&t.GeneratedAt,
		&t.RegenerationCount,
		&t.TrackerKey,
		&t.CreatedAt,
		&t.DocID,
	)
	return t, err
}
