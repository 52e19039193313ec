package requirements

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/events"
	"github.com/reqsmith/casegen/internal/oracle"
	"github.com/reqsmith/casegen/pkg/pagination"
)

type stubOracle struct {
	extraction *oracle.Extraction
}

func (s *stubOracle) Extract(ctx context.Context, paragraph string) (*oracle.Extraction, error) {
	e := *s.extraction
	return &e, nil
}

func (s *stubOracle) Generate(ctx context.Context, input oracle.GenerationInput) (*oracle.GeneratedContent, error) {
	panic("not used")
}

func (s *stubOracle) Judge(ctx context.Context, input oracle.JudgeInput) (*oracle.Verdict, error) {
	panic("not used")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func requirementRow(t *testing.T, id, docID uuid.UUID, text string, status Status, version int) *sqlmock.Rows {
	t.Helper()

	structured, err := EncodeFields(map[string]any{"subject": "SpO2 alert"})
	if err != nil {
		t.Fatalf("encode fields: %v", err)
	}
	confidences, err := EncodeConfidences(map[string]float64{"subject": 0.9})
	if err != nil {
		t.Fatalf("encode confidences: %v", err)
	}

	now := time.Now()
	cols := []string{
		"id", "doc_id", "requirement_ident", "raw_text", "structured",
		"field_confidences", "overall_confidence", "status", "version",
		"error_message", "embeddings", "created_at", "updated_at",
	}
	return sqlmock.NewRows(cols).AddRow(
		id.String(), docID.String(), nil, text, []byte(structured),
		[]byte(confidences), 0.9, string(status), version,
		nil, nil, now, now,
	)
}

// A requirement change invalidates every live test case, including pushed
// ones. Only rejected and already-stale cases are left untouched.
func TestStaleTestCasesTargetsLiveCases(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open mock db: %v", err)
	}
	defer db.Close()

	reqID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE test_cases\s+SET status = 'stale'\s+WHERE requirement_id = \$1 AND status NOT IN \('rejected', 'stale'\)`).
		WithArgs(reqID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	if err := staleTestCases(context.Background(), tx, reqID); err != nil {
		t.Fatalf("stale test cases failed: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// Text updates are copy-on-write: the old revision is archived with an
// UPDATE, never deleted, its test cases are staled, and the re-extracted
// revision lands as a new row with the oracle exchange on its event.
func TestUpdateTextArchivesOldRevision(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open mock db: %v", err)
	}
	defer db.Close()

	reqID := uuid.New()
	docID := uuid.New()
	newID := uuid.New()

	prompt := "extract the requirement"
	raw := `{"subject":"SpO2 alert"}`
	stub := &stubOracle{extraction: &oracle.Extraction{
		Type:             "safety",
		Subject:          "SpO2 alert",
		FieldConfidences: map[string]float64{"subject": 0.9},
		Trace:            oracle.Trace{Prompt: prompt, Raw: raw},
	}}

	sys := New(db, stub, "test-model", 0.5, discardLogger(), pagination.Config{})

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(requirementRow(t, reqID, docID, "old text", StatusExtracted, 2))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE requirements\s+SET status = \$1, updated_at = now\(\)\s+WHERE id = \$2 AND version = \$3`).
		WithArgs(StatusArchived, reqID, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE test_cases`).
		WithArgs(reqID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO requirements`).
		WillReturnRows(requirementRow(t, newID, docID, "new text", StatusExtracted, 3))

	reviewCols := []string{
		"id", "requirement_id", "test_case_id", "reviewer", "action",
		"note", "diffs", "reviewer_confidence", "created_at",
	}
	mock.ExpectQuery(`INSERT INTO review_events`).
		WillReturnRows(sqlmock.NewRows(reviewCols).AddRow(
			uuid.NewString(), newID.String(), nil, "alice", events.ActionTextUpdated,
			nil, []byte(`{}`), nil, time.Now(),
		))

	generationCols := []string{
		"id", "requirement_id", "test_case_id", "stage", "model",
		"generated_by", "prompt", "raw_response", "detail", "created_at",
	}
	mock.ExpectQuery(`INSERT INTO generation_events`).
		WithArgs(newID, nil, events.StageExtract, "test-model", "alice", prompt, raw, nil).
		WillReturnRows(sqlmock.NewRows(generationCols).AddRow(
			uuid.NewString(), newID.String(), nil, events.StageExtract, "test-model",
			"alice", prompt, raw, nil, time.Now(),
		))
	mock.ExpectCommit()

	revision, err := sys.UpdateText(context.Background(), reqID, UpdateTextCommand{
		Reviewer: "alice",
		RawText:  "new text",
		Version:  2,
	})
	if err != nil {
		t.Fatalf("update text failed: %v", err)
	}

	if revision.ID != newID {
		t.Errorf("revision id = %s, want %s", revision.ID, newID)
	}
	if revision.Version != 3 {
		t.Errorf("version = %d, want 3", revision.Version)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
