package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/pkg/repository"
)

const reviewColumns = "id, requirement_id, test_case_id, reviewer, action, note, diffs, reviewer_confidence, created_at"

const generationColumns = "id, requirement_id, test_case_id, stage, model, generated_by, prompt, raw_response, detail, created_at"

// AppendReview inserts a review event. Pass the enclosing transaction as q
// to record the event atomically with the state change it describes.
func AppendReview(ctx context.Context, q repository.Querier, e ReviewEvent) (*ReviewEvent, error) {
	stmt := fmt.Sprintf(`
		INSERT INTO review_events(requirement_id, test_case_id, reviewer, action, note, diffs, reviewer_confidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, reviewColumns)

	args := []any{
		e.RequirementID,
		e.TestCaseID,
		e.Reviewer,
		e.Action,
		e.Note,
		e.Diffs,
		e.ReviewerConfidence,
	}

	saved, err := repository.QueryOne(ctx, q, stmt, args, scanReviewEvent)
	if err != nil {
		return nil, fmt.Errorf("append review event: %w", err)
	}
	return &saved, nil
}

// AppendGeneration inserts a generation event.
func AppendGeneration(ctx context.Context, q repository.Querier, e GenerationEvent) (*GenerationEvent, error) {
	stmt := fmt.Sprintf(`
		INSERT INTO generation_events(requirement_id, test_case_id, stage, model, generated_by, prompt, raw_response, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, generationColumns)

	args := []any{
		e.RequirementID,
		e.TestCaseID,
		e.Stage,
		e.Model,
		e.GeneratedBy,
		e.Prompt,
		e.RawResponse,
		e.Detail,
	}

	saved, err := repository.QueryOne(ctx, q, stmt, args, scanGenerationEvent)
	if err != nil {
		return nil, fmt.Errorf("append generation event: %w", err)
	}
	return &saved, nil
}

// ListReviews returns all review events for a requirement in chronological order.
func ListReviews(ctx context.Context, q repository.Querier, requirementID uuid.UUID) ([]ReviewEvent, error) {
	stmt := fmt.Sprintf(`
		SELECT %s FROM review_events
		WHERE requirement_id = $1
		ORDER BY created_at ASC, id ASC`, reviewColumns)

	evts, err := repository.QueryMany(ctx, q, stmt, []any{requirementID}, scanReviewEvent)
	if err != nil {
		return nil, fmt.Errorf("list review events: %w", err)
	}
	return evts, nil
}

// ListGenerations returns all generation events for a requirement in chronological order.
func ListGenerations(ctx context.Context, q repository.Querier, requirementID uuid.UUID) ([]GenerationEvent, error) {
	stmt := fmt.Sprintf(`
		SELECT %s FROM generation_events
		WHERE requirement_id = $1
		ORDER BY created_at ASC, id ASC`, generationColumns)

	evts, err := repository.QueryMany(ctx, q, stmt, []any{requirementID}, scanGenerationEvent)
	if err != nil {
		return nil, fmt.Errorf("list generation events: %w", err)
	}
	return evts, nil
}

// LatestReview returns the most recent review event for a test case filtered
// by action, or nil when none exists.
func LatestReview(ctx context.Context, q repository.Querier, testCaseID uuid.UUID, action string) (*ReviewEvent, error) {
	stmt := fmt.Sprintf(`
		SELECT %s FROM review_events
		WHERE test_case_id = $1 AND action = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, reviewColumns)

	e, err := repository.QueryOne(ctx, q, stmt, []any{testCaseID, action}, scanReviewEvent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest review event: %w", err)
	}
	return &e, nil
}

func scanReviewEvent(s repository.Scanner) (ReviewEvent, error) {
	var e ReviewEvent
	err := s.Scan(
		&e.ID,
		&e.RequirementID,
		&e.TestCaseID,
		&e.Reviewer,
		&e.Action,
		&e.Note,
		&e.Diffs,
		&e.ReviewerConfidence,
		&e.CreatedAt,
	)
	return e, err
}

func scanGenerationEvent(s repository.Scanner) (GenerationEvent, error) {
	var e GenerationEvent
	err := s.Scan(
		&e.ID,
		&e.RequirementID,
		&e.TestCaseID,
		&e.Stage,
		&e.Model,
		&e.GeneratedBy,
		&e.Prompt,
		&e.RawResponse,
		&e.Detail,
		&e.CreatedAt,
	)
	return e, err
}
