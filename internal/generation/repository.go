package generation

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
	"github.com/reqsmith/casegen/pkg/repository"
)

type repo struct {
	db     *sql.DB
	oracle oracle.Client
	model  string
	logger *slog.Logger
}

// New creates a generation system. model names the oracle model recorded on
// generation events.
func New(
	db *sql.DB,
	oracleClient oracle.Client,
	model string,
	logger *slog.Logger,
) System {
	return &repo{
		db:     db,
		oracle: oracleClient,
		model:  model,
		logger: logger.With("system", "generation"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Preview(ctx context.Context, docID uuid.UUID, types []testcases.TestType) (*PreviewResult, error) {
	if len(types) == 0 {
		return nil, ErrNoTestTypes
	}
	for _, t := range types {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", testcases.ErrInvalidTestType, t)
		}
	}

	approved, err := requirements.ApprovedForDoc(ctx, r.db, docID)
	if err != nil {
		return nil, err
	}
	if len(approved) == 0 {
		return nil, ErrNoApprovedRequirements
	}

	result := &PreviewResult{
		DocID:        docID,
		Requirements: len(approved),
		Created:      make([]testcases.TestCase, 0, len(approved)*len(types)),
	}

	for _, req := range approved {
		for _, testType := range types {
			tc, err := r.generatePreview(ctx, &req, testType)
			if err != nil {
				return nil, fmt.Errorf(
					"generate %s case for %s: %w", testType, req.Ident(), err,
				)
			}
			result.Created = append(result.Created, *tc)
		}
	}

	r.logger.Info("preview generation complete",
		"doc_id", docID,
		"requirements", result.Requirements,
		"created", len(result.Created),
	)
	return result, nil
}

func (r *repo) generatePreview(ctx context.Context, req *requirements.Requirement, testType testcases.TestType) (*testcases.TestCase, error) {
	content, err := r.callOracle(ctx, req, testType)
	if err != nil {
		return nil, err
	}

	blob, err := testcases.EncodeContent(testcases.ContentFields{
		Evidence:       content.Evidence,
		AutomatedSteps: content.AutomatedSteps,
		SampleData:     content.SampleData,
	})
	if err != nil {
		return nil, err
	}

	cmd := testcases.InsertCommand{
		RequirementID: req.ID,
		TestCaseIdent: testcases.NewIdent(req.Ident()),
		TestType:      testType,
		Status:        testcases.StatusPreview,
		Gherkin:       content.Gherkin,
		Content:       blob,
		CodeScaffold:  content.CodeScaffold,
	}

	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*testcases.TestCase, error) {
		tc, err := testcases.Insert(ctx, tx, cmd)
		if err != nil {
			return nil, err
		}

		ev := events.GenerationEvent{
			RequirementID: &req.ID,
			TestCaseID:    &tc.ID,
			Stage:         events.StagePreview,
			Model:         r.model,
			GeneratedBy:   events.InitiatorSystem,
		}
		if content.Trace.Prompt != "" {
			ev.Prompt = &content.Trace.Prompt
		}
		if content.Trace.Raw != "" {
			ev.RawResponse = &content.Trace.Raw
		}

		if _, err := events.AppendGeneration(ctx, tx, ev); err != nil {
			return nil, err
		}

		return tc, nil
	})
}

func (r *repo) Confirm(ctx context.Context, cmd ConfirmCommand) (*ConfirmResult, error) {
	result := &ConfirmResult{
		Confirmed: make([]uuid.UUID, 0, len(cmd.TestCaseIDs)),
	}

	for _, id := range cmd.TestCaseIDs {
		confirmed, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (bool, error) {
			tc, err := testcases.Get(ctx, tx, id)
			if err != nil {
				return false, err
			}

			// Confirmation only applies to previews; anything else is a no-op.
			if tc.Status != testcases.StatusPreview {
				return false, nil
			}

			if _, err := testcases.Transition(ctx, tx, id, testcases.StatusGenerated); err != nil {
				return false, err
			}

			initiator := cmd.ConfirmedBy
			if initiator == "" {
				initiator = events.InitiatorSystem
			}

			detail := fmt.Sprintf("confirmed by %s", initiator)
			if cmd.Confidence != nil {
				detail = fmt.Sprintf("%s (confidence %.2f)", detail, *cmd.Confidence)
			}

			if _, err := events.AppendGeneration(ctx, tx, events.GenerationEvent{
				RequirementID: &tc.RequirementID,
				TestCaseID:    &tc.ID,
				Stage:         events.StageConfirm,
				Model:         r.model,
				GeneratedBy:   initiator,
				Detail:        &detail,
			}); err != nil {
				return false, err
			}

			return true, nil
		})

		if err != nil {
			return nil, err
		}

		if confirmed {
			result.Confirmed = append(result.Confirmed, id)
		} else {
			result.Skipped = append(result.Skipped, id)
		}
	}

	r.logger.Info("confirmation complete",
		"confirmed", len(result.Confirmed),
		"skipped", len(result.Skipped),
	)
	return result, nil
}

func (r *repo) Regenerate(ctx context.Context, id uuid.UUID) (*testcases.TestCase, error) {
	tc, err := r.regenerate(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("test case regenerated", "id", tc.ID, "test_type", tc.TestType)
	return tc, nil
}

// regenerate re-runs the oracle with the case's original test type against
// its source requirement, which may itself be archived. Content is
// overwritten in place; status and the regeneration counter stay untouched.
func (r *repo) regenerate(ctx context.Context, id uuid.UUID) (*testcases.TestCase, error) {
	tc, err := testcases.Get(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	req, err := requirements.Get(ctx, r.db, tc.RequirementID)
	if err != nil {
		return nil, err
	}

	content, err := r.callOracle(ctx, req, tc.TestType)
	if err != nil {
		return nil, err
	}

	blob, err := testcases.EncodeContent(testcases.ContentFields{
		Evidence:       content.Evidence,
		AutomatedSteps: content.AutomatedSteps,
		SampleData:     content.SampleData,
	})
	if err != nil {
		return nil, err
	}

	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*testcases.TestCase, error) {
		if err := testcases.OverwriteContent(
			ctx, tx, id, content.Gherkin, blob, content.CodeScaffold,
		); err != nil {
			return nil, err
		}

		ev := events.GenerationEvent{
			RequirementID: &tc.RequirementID,
			TestCaseID:    &tc.ID,
			Stage:         events.StageRegenerate,
			Model:         r.model,
			GeneratedBy:   events.InitiatorSystem,
		}
		if content.Trace.Prompt != "" {
			ev.Prompt = &content.Trace.Prompt
		}
		if content.Trace.Raw != "" {
			ev.RawResponse = &content.Trace.Raw
		}

		if _, err := events.AppendGeneration(ctx, tx, ev); err != nil {
			return nil, err
		}

		return testcases.Get(ctx, tx, id)
	})
}

func (r *repo) RegenerateBatch(ctx context.Context, ids []uuid.UUID) (*BatchRegenerateResult, error) {
	result := &BatchRegenerateResult{
		Regenerated: make([]uuid.UUID, 0, len(ids)),
	}

	for _, id := range ids {
		tc, err := testcases.Get(ctx, r.db, id)
		if err != nil {
			result.Errors = append(result.Errors, BatchItemError{
				TestCaseID: id,
				Error:      err.Error(),
			})
			continue
		}

		// Batch regeneration is one-shot per case. The single-case path
		// carries no such cap and never touches the counter.
		if tc.RegenerationCount > 0 {
			result.Skipped = append(result.Skipped, id)
			continue
		}

		if _, err := r.regenerate(ctx, id); err != nil {
			result.Errors = append(result.Errors, BatchItemError{
				TestCaseID: id,
				Error:      err.Error(),
			})
			continue
		}

		if err := testcases.IncrementRegeneration(ctx, r.db, id); err != nil {
			result.Errors = append(result.Errors, BatchItemError{
				TestCaseID: id,
				Error:      err.Error(),
			})
			continue
		}

		result.Regenerated = append(result.Regenerated, id)
	}

	r.logger.Info("batch regeneration complete",
		"regenerated", len(result.Regenerated),
		"skipped", len(result.Skipped),
		"errors", len(result.Errors),
	)
	return result, nil
}

// callOracle builds the generation input from a requirement's structured
// blob and invokes the oracle. The full typed payload is required; a partial
// response surfaces as a validation error.
func (r *repo) callOracle(ctx context.Context, req *requirements.Requirement, testType testcases.TestType) (*oracle.GeneratedContent, error) {
	fields, err := requirements.DecodeFields(req.Structured)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("serialize requirement fields: %w", err)
	}

	return r.oracle.Generate(ctx, oracle.GenerationInput{
		RequirementIdent: req.Ident(),
		Fields:           raw,
		TestType:         string(testType),
	})
}
