package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/events"
)

var generationCols = []string{
	"id", "requirement_id", "test_case_id", "stage", "model",
	"generated_by", "prompt", "raw_response", "detail", "created_at",
}

func TestAppendGenerationRecordsOracleExchange(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open mock db: %v", err)
	}
	defer db.Close()

	reqID := uuid.New()
	evID := uuid.New()
	prompt := "extract the requirement from the paragraph"
	raw := `{"subject":"SpO2 alert"}`

	mock.ExpectQuery(`INSERT INTO generation_events\(requirement_id, test_case_id, stage, model, generated_by, prompt, raw_response, detail\)`).
		WithArgs(reqID, nil, events.StageExtract, "test-model", "alice", prompt, raw, nil).
		WillReturnRows(sqlmock.NewRows(generationCols).AddRow(
			evID.String(), reqID.String(), nil, events.StageExtract, "test-model",
			"alice", prompt, raw, nil, time.Now(),
		))

	saved, err := events.AppendGeneration(context.Background(), db, events.GenerationEvent{
		RequirementID: &reqID,
		Stage:         events.StageExtract,
		Model:         "test-model",
		GeneratedBy:   "alice",
		Prompt:        &prompt,
		RawResponse:   &raw,
	})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if saved.GeneratedBy != "alice" {
		t.Errorf("generated_by = %q, want alice", saved.GeneratedBy)
	}
	if saved.Prompt == nil || *saved.Prompt != prompt {
		t.Errorf("prompt = %v, want %q", saved.Prompt, prompt)
	}
	if saved.RawResponse == nil || *saved.RawResponse != raw {
		t.Errorf("raw_response = %v, want %q", saved.RawResponse, raw)
	}
	if saved.RequirementID == nil || *saved.RequirementID != reqID {
		t.Errorf("requirement_id = %v, want %s", saved.RequirementID, reqID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAppendGenerationWithoutRequirement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open mock db: %v", err)
	}
	defer db.Close()

	tcID := uuid.New()
	evID := uuid.New()

	mock.ExpectQuery(`INSERT INTO generation_events`).
		WithArgs(nil, &tcID, events.StageRegenerate, "test-model", events.InitiatorSystem, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows(generationCols).AddRow(
			evID.String(), nil, tcID.String(), events.StageRegenerate, "test-model",
			events.InitiatorSystem, nil, nil, nil, time.Now(),
		))

	saved, err := events.AppendGeneration(context.Background(), db, events.GenerationEvent{
		TestCaseID:  &tcID,
		Stage:       events.StageRegenerate,
		Model:       "test-model",
		GeneratedBy: events.InitiatorSystem,
	})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if saved.RequirementID != nil {
		t.Errorf("requirement_id = %v, want nil", saved.RequirementID)
	}
	if saved.TestCaseID == nil || *saved.TestCaseID != tcID {
		t.Errorf("test_case_id = %v, want %s", saved.TestCaseID, tcID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
