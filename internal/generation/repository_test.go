package generation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/generation"
	"github.com/reqsmith/casegen/internal/oracle"
	"github.com/reqsmith/casegen/internal/testcases"
)

type unusedOracle struct{}

func (unusedOracle) Extract(ctx context.Context, paragraph string) (*oracle.Extraction, error) {
	return nil, errors.New("oracle should not be called")
}

func (unusedOracle) Generate(ctx context.Context, input oracle.GenerationInput) (*oracle.GeneratedContent, error) {
	return nil, errors.New("oracle should not be called")
}

func (unusedOracle) Judge(ctx context.Context, input oracle.JudgeInput) (*oracle.Verdict, error) {
	return nil, errors.New("oracle should not be called")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCaseRow(id, reqID, docID uuid.UUID, status testcases.Status, regenerations int) *sqlmock.Rows {
	cols := []string{
		"id", "requirement_id", "test_case_ident", "test_type", "status",
		"gherkin", "content", "code_scaffold", "generated_at",
		"regeneration_count", "tracker_key", "created_at", "doc_id",
	}
	now := time.Now()
	content := []byte(`{"schema_version":1,"content":{"evidence":[],"automated_steps":[],"sample_data":{}}}`)
	return sqlmock.NewRows(cols).AddRow(
		id.String(), reqID.String(), "TC-REQ-7-abc1", "boundary", string(status),
		"Feature: SpO2 alert", content, "// scaffold", now,
		regenerations, nil, now, docID.String(),
	)
}

// Batch regeneration is one-shot per case: anything already regenerated is
// skipped without touching the oracle or the database again.
func TestRegenerateBatchSkipsAlreadyRegenerated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open mock db: %v", err)
	}
	defer db.Close()

	sys := generation.New(db, unusedOracle{}, "test-model", discardLogger())

	id := uuid.New()
	reqID := uuid.New()
	docID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM test_cases t JOIN requirements rq`).
		WithArgs(id).
		WillReturnRows(testCaseRow(id, reqID, docID, testcases.StatusStale, 1))

	result, err := sys.RegenerateBatch(context.Background(), []uuid.UUID{id})
	if err != nil {
		t.Fatalf("batch regenerate failed: %v", err)
	}

	if len(result.Skipped) != 1 || result.Skipped[0] != id {
		t.Errorf("skipped = %v, want [%s]", result.Skipped, id)
	}
	if len(result.Regenerated) != 0 {
		t.Errorf("regenerated = %v, want none", result.Regenerated)
	}
	if len(result.Errors) != 0 {
		t.Errorf("errors = %v, want none", result.Errors)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
