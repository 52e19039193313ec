package query_test

import (
	"testing"

	"github.com/reqsmith/casegen/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "requirements", "r").
		Project("id", "id").
		Project("status", "status").
		Project("overall_confidence", "overallConfidence")
}

func TestProjectionMapTable(t *testing.T) {
	p := testProjection()
	want := "public.requirements r"
	if got := p.Table(); got != want {
		t.Errorf("Table() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	want := "r.id, r.status, r.overall_confidence"
	if got := p.Columns(); got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapJoin(t *testing.T) {
	p := query.NewProjectionMap("public", "test_cases", "t").
		Project("id", "id").
		Join("public", "requirements", "rq", "INNER JOIN", "rq.id = t.requirement_id").
		Project("doc_id", "docId")

	want := "public.test_cases t INNER JOIN public.requirements rq ON rq.id = t.requirement_id"
	if got := p.From(); got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}

	if got := p.Column("docId"); got != "rq.doc_id" {
		t.Errorf("Column(docId) = %q, want joined alias qualification", got)
	}
	if got := p.Column("id"); got != "t.id" {
		t.Errorf("Column(id) = %q, want base alias qualification", got)
	}
}

func TestProjectionMapFromWithoutJoins(t *testing.T) {
	p := testProjection()
	if got := p.From(); got != p.Table() {
		t.Errorf("From() = %q, want Table() %q", got, p.Table())
	}
}

func TestBuilderWhereEquals(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("status", "approved").
		Build()

	want := "SELECT r.id, r.status, r.overall_confidence FROM public.requirements r WHERE r.status = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "approved" {
		t.Errorf("args = %v, want [approved]", args)
	}
}

func TestBuilderWhereNotEquals(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereNotEquals("status", "archived").
		Build()

	want := "SELECT r.id, r.status, r.overall_confidence FROM public.requirements r WHERE r.status <> $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "archived" {
		t.Errorf("args = %v, want [archived]", args)
	}
}

func TestBuilderWhereGTE(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereGTE("overallConfidence", 0.7).
		Build()

	want := "SELECT r.id, r.status, r.overall_confidence FROM public.requirements r WHERE r.overall_confidence >= $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != 0.7 {
		t.Errorf("args = %v, want [0.7]", args)
	}
}

func TestBuilderParameterNumbering(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereNotEquals("status", "archived").
		WhereGTE("overallConfidence", 0.7).
		Build()

	want := "SELECT r.id, r.status, r.overall_confidence FROM public.requirements r " +
		"WHERE r.status <> $1 AND r.overall_confidence >= $2"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want 2 parameters", args)
	}
}

func TestBuilderNilConditionsSkipped(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("status", nil).
		WhereNotEquals("status", nil).
		WhereGTE("overallConfidence", nil).
		Build()

	want := "SELECT r.id, r.status, r.overall_confidence FROM public.requirements r"
	if sql != want {
		t.Errorf("sql = %q, want no WHERE clause", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestBuilderDefaultSort(t *testing.T) {
	sql, _ := query.NewBuilder(
		testProjection(),
		query.SortField{Field: "status"},
		query.SortField{Field: "overallConfidence", Descending: true},
	).Build()

	want := "SELECT r.id, r.status, r.overall_confidence FROM public.requirements r " +
		"ORDER BY r.status ASC, r.overall_confidence DESC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection()).BuildPage(3, 20)

	want := "SELECT r.id, r.status, r.overall_confidence FROM public.requirements r LIMIT 20 OFFSET 40"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestParseSortFields(t *testing.T) {
	fields := query.ParseSortFields("status,-overallConfidence")
	if len(fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(fields))
	}
	if fields[0].Field != "status" || fields[0].Descending {
		t.Errorf("fields[0] = %+v, want ascending status", fields[0])
	}
	if fields[1].Field != "overallConfidence" || !fields[1].Descending {
		t.Errorf("fields[1] = %+v, want descending overallConfidence", fields[1])
	}

	if got := query.ParseSortFields(""); got != nil {
		t.Errorf("empty input = %v, want nil", got)
	}
}
