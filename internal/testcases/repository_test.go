package testcases_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/events"
	"github.com/reqsmith/casegen/internal/testcases"
	"github.com/reqsmith/casegen/pkg/pagination"
)

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
		id.String(), reqID.String(), "TC-REQ-7-abc1", "positive", string(status),
		"Feature: SpO2 alert", content, "// scaffold", now,
		regenerations, nil, now, docID.String(),
	)
}

func TestDecideApproveRecordsFullConfidence(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open mock db: %v", err)
	}
	defer db.Close()

	sys := testcases.New(db, nil, discardLogger(), pagination.Config{})

	id := uuid.New()
	reqID := uuid.New()
	docID := uuid.New()

	reviewCols := []string{
		"id", "requirement_id", "test_case_id", "reviewer", "action",
		"note", "diffs", "reviewer_confidence", "created_at",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM test_cases t JOIN requirements rq`).
		WithArgs(id).
		WillReturnRows(testCaseRow(id, reqID, docID, testcases.StatusPreview, 0))
	mock.ExpectExec(`UPDATE test_cases SET status = \$1 WHERE id = \$2 AND status = \$3`).
		WithArgs(testcases.StatusGenerated, id, testcases.StatusPreview).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO review_events`).
		WithArgs(reqID, id, testcases.DefaultReviewer, events.ActionApproved, nil, []byte(nil), 1.0).
		WillReturnRows(sqlmock.NewRows(reviewCols).AddRow(
			uuid.NewString(), reqID.String(), id.String(), testcases.DefaultReviewer,
			events.ActionApproved, nil, nil, 1.0, time.Now(),
		))
	mock.ExpectCommit()

	decided, err := sys.Decide(context.Background(), testcases.DecideCommand{
		TestCaseID: id,
		Decision:   testcases.DecisionApprove,
	})
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}

	if decided.Status != testcases.StatusGenerated {
		t.Errorf("status = %s, want %s", decided.Status, testcases.StatusGenerated)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDecideRejectRecordsZeroConfidence(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open mock db: %v", err)
	}
	defer db.Close()

	sys := testcases.New(db, nil, discardLogger(), pagination.Config{})

	id := uuid.New()
	reqID := uuid.New()
	docID := uuid.New()

	reviewCols := []string{
		"id", "requirement_id", "test_case_id", "reviewer", "action",
		"note", "diffs", "reviewer_confidence", "created_at",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM test_cases t JOIN requirements rq`).
		WithArgs(id).
		WillReturnRows(testCaseRow(id, reqID, docID, testcases.StatusGenerated, 0))
	mock.ExpectExec(`UPDATE test_cases SET status = \$1 WHERE id = \$2 AND status = \$3`).
		WithArgs(testcases.StatusRejected, id, testcases.StatusGenerated).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO review_events`).
		WithArgs(reqID, id, "qa-lead", events.ActionRejected, nil, []byte(nil), 0.0).
		WillReturnRows(sqlmock.NewRows(reviewCols).AddRow(
			uuid.NewString(), reqID.String(), id.String(), "qa-lead",
			events.ActionRejected, nil, nil, 0.0, time.Now(),
		))
	mock.ExpectCommit()

	decided, err := sys.Decide(context.Background(), testcases.DecideCommand{
		TestCaseID: id,
		Decision:   testcases.DecisionReject,
		Reviewer:   "qa-lead",
	})
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}

	if decided.Status != testcases.StatusRejected {
		t.Errorf("status = %s, want %s", decided.Status, testcases.StatusRejected)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
