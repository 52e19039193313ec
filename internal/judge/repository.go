package judge

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/events"
	"github.com/reqsmith/casegen/internal/oracle"
	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/internal/testcases"
)

type repo struct {
	db     *sql.DB
	oracle oracle.Client
	logger *slog.Logger
}

// New creates a judge system implementing the System interface.
func New(db *sql.DB, oracleClient oracle.Client, logger *slog.Logger) System {
	return &repo{
		db:     db,
		oracle: oracleClient,
		logger: logger.With("system", "judge"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Evaluate(ctx context.Context, id uuid.UUID) (*Evaluation, error) {
	tc, err := testcases.Get(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	req, err := requirements.Get(ctx, r.db, tc.RequirementID)
	if err != nil {
		return nil, err
	}

	input, err := buildInput(req, tc)
	if err != nil {
		return nil, err
	}

	verdict, err := r.oracle.Judge(ctx, *input)
	if err != nil {
		return nil, err
	}

	confidence := verdict.NormalizedRating()
	event, err := events.AppendReview(ctx, r.db, events.ReviewEvent{
		RequirementID:      tc.RequirementID,
		TestCaseID:         &tc.ID,
		Reviewer:           events.ReviewerJudge,
		Action:             events.ActionJudgeEvaluation,
		Note:               &verdict.Feedback,
		ReviewerConfidence: &confidence,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("test case judged",
		"id", tc.ID,
		"rating", verdict.TotalRating,
		"confidence", confidence,
	)

	return &Evaluation{
		TestCaseID: tc.ID,
		Verdict:    *verdict,
		Event:      *event,
	}, nil
}

func (r *repo) EvaluateBatch(ctx context.Context, ids []uuid.UUID) (*BatchResult, error) {
	result := &BatchResult{
		Evaluated: make([]uuid.UUID, 0, len(ids)),
	}

	for _, id := range ids {
		if _, err := r.Evaluate(ctx, id); err != nil {
			result.Errors = append(result.Errors, BatchItemError{
				TestCaseID: id,
				Error:      err.Error(),
			})
			continue
		}
		result.Evaluated = append(result.Evaluated, id)
	}

	r.logger.Info("batch evaluation complete",
		"evaluated", len(result.Evaluated),
		"errors", len(result.Errors),
	)
	return result, nil
}

func (r *repo) LatestScores(ctx context.Context, id uuid.UUID) (*Scores, error) {
	if _, err := testcases.Get(ctx, r.db, id); err != nil {
		return nil, err
	}

	event, err := events.LatestReview(ctx, r.db, id, events.ActionJudgeEvaluation)
	if err != nil {
		return nil, err
	}

	if event == nil {
		return &Scores{TestCaseID: id, Evaluated: false}, nil
	}

	return &Scores{
		TestCaseID:  id,
		Evaluated:   true,
		Feedback:    event.Note,
		Confidence:  event.ReviewerConfidence,
		EvaluatedAt: &event.CreatedAt,
	}, nil
}

// buildInput assembles the judge payload: the requirement's raw text and
// structured fields alongside the test case's full generated content.
func buildInput(req *requirements.Requirement, tc *testcases.TestCase) (*oracle.JudgeInput, error) {
	fields, err := requirements.DecodeFields(req.Structured)
	if err != nil {
		return nil, err
	}

	reqBody, err := json.Marshal(map[string]any{
		"ident":    req.Ident(),
		"raw_text": req.RawText,
		"fields":   fields,
	})
	if err != nil {
		return nil, fmt.Errorf("serialize requirement: %w", err)
	}

	content, err := testcases.DecodeContent(tc.Content)
	if err != nil {
		return nil, err
	}

	tcBody, err := json.Marshal(map[string]any{
		"ident":           tc.TestCaseIdent,
		"test_type":       tc.TestType,
		"gherkin":         tc.Gherkin,
		"evidence":        content.Evidence,
		"automated_steps": content.AutomatedSteps,
		"sample_data":     content.SampleData,
		"code_scaffold":   tc.CodeScaffold,
	})
	if err != nil {
		return nil, fmt.Errorf("serialize test case: %w", err)
	}

	return &oracle.JudgeInput{
		Requirement: reqBody,
		TestCase:    tcBody,
	}, nil
}
