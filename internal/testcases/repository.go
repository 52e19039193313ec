package testcases

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/events"
	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/pkg/pagination"
	"github.com/reqsmith/casegen/pkg/query"
	"github.com/reqsmith/casegen/pkg/repository"
)

// DefaultReviewer is recorded when a decision arrives without an identity.
const DefaultReviewer = "human-qa"

type repo struct {
	db         *sql.DB
	reqs       requirements.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a test case repository implementing the System interface.
func New(
	db *sql.DB,
	reqs requirements.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		reqs:       reqs,
		logger:     logger.With("system", "testcases"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[TestCase], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "TestCaseIdent", "Gherkin")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count test cases: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	cases, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTestCase)
	if err != nil {
		return nil, fmt.Errorf("query test cases: %w", err)
	}

	result := pagination.NewPageResult(cases, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*TestCase, error) {
	return Get(ctx, r.db, id)
}

func (r *repo) Decide(ctx context.Context, cmd DecideCommand) (*TestCase, error) {
	if !cmd.Decision.Valid() {
		return nil, ErrInvalidDecision
	}

	reviewer := cmd.Reviewer
	if reviewer == "" {
		reviewer = DefaultReviewer
	}

	decided, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*TestCase, error) {
		return decide(ctx, tx, cmd, reviewer, cmd.Notes)
	})

	if err != nil {
		return nil, err
	}

	r.logger.Info("test case decided",
		"id", decided.ID,
		"decision", cmd.Decision,
		"reviewer", reviewer,
		"status", decided.Status,
	)
	return decided, nil
}

func (r *repo) BatchDecide(ctx context.Context, cmd BatchDecideCommand) (*BatchResult, error) {
	if !cmd.Decision.Valid() {
		return nil, ErrInvalidDecision
	}

	reviewer := cmd.Reviewer
	if reviewer == "" {
		reviewer = DefaultReviewer
	}

	note := fmt.Sprintf("Batch %s", cmd.Decision)

	result := &BatchResult{
		Decision: cmd.Decision,
		Decided:  make([]uuid.UUID, 0, len(cmd.TestCaseIDs)),
	}

	for _, id := range cmd.TestCaseIDs {
		item := DecideCommand{
			TestCaseID: id,
			Decision:   cmd.Decision,
			Reviewer:   reviewer,
		}

		_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*TestCase, error) {
			return decide(ctx, tx, item, reviewer, &note)
		})

		if err != nil {
			result.Errors = append(result.Errors, BatchItemResult{
				TestCaseID: id,
				Error:      err.Error(),
			})
			continue
		}

		result.Decided = append(result.Decided, id)
	}

	r.logger.Info("batch decision complete",
		"decision", cmd.Decision,
		"decided", len(result.Decided),
		"errors", len(result.Errors),
	)
	return result, nil
}

// decide applies a single decision inside a transaction. The note parameter
// overrides the command's notes so batch decisions carry a generic note.
func decide(ctx context.Context, tx *sql.Tx, cmd DecideCommand, reviewer string, note *string) (*TestCase, error) {
	switch cmd.Decision {
	case DecisionApprove:
		tc, err := Transition(ctx, tx, cmd.TestCaseID, StatusGenerated)
		if err != nil {
			return nil, err
		}

		confidence := 1.0
		if _, err := events.AppendReview(ctx, tx, events.ReviewEvent{
			RequirementID:      tc.RequirementID,
			TestCaseID:         &tc.ID,
			Reviewer:           reviewer,
			Action:             events.ActionApproved,
			Note:               note,
			ReviewerConfidence: &confidence,
		}); err != nil {
			return nil, err
		}
		return tc, nil

	case DecisionReject:
		tc, err := Transition(ctx, tx, cmd.TestCaseID, StatusRejected)
		if err != nil {
			return nil, err
		}

		confidence := 0.0
		if _, err := events.AppendReview(ctx, tx, events.ReviewEvent{
			RequirementID:      tc.RequirementID,
			TestCaseID:         &tc.ID,
			Reviewer:           reviewer,
			Action:             events.ActionRejected,
			Note:               note,
			ReviewerConfidence: &confidence,
		}); err != nil {
			return nil, err
		}
		return tc, nil

	case DecisionRegenerate:
		current, err := Get(ctx, tx, cmd.TestCaseID)
		if err != nil {
			return nil, err
		}

		// Edits land before the case is staled so the regeneration stage
		// sees the reviewer's corrections.
		diffs := map[string]events.FieldDiff{}
		if len(cmd.Edits) > 0 {
			gherkin, content, scaffold, applied, err := ApplyEdits(current, cmd.Edits)
			if err != nil {
				return nil, err
			}

			if err := OverwriteContent(ctx, tx, current.ID, gherkin, content, scaffold); err != nil {
				return nil, err
			}
			diffs = applied
		}

		tc, err := Transition(ctx, tx, cmd.TestCaseID, StatusStale)
		if err != nil {
			return nil, err
		}

		if err := IncrementRegeneration(ctx, tx, tc.ID); err != nil {
			return nil, err
		}
		tc.RegenerationCount++

		eventNote := note
		if cmd.RegenerateReason != nil {
			eventNote = cmd.RegenerateReason
		}

		diffBlob, err := events.MarshalDiffs(diffs)
		if err != nil {
			return nil, fmt.Errorf("marshal edit diffs: %w", err)
		}

		if _, err := events.AppendReview(ctx, tx, events.ReviewEvent{
			RequirementID: tc.RequirementID,
			TestCaseID:    &tc.ID,
			Reviewer:      reviewer,
			Action:        events.ActionRegenerate,
			Note:          eventNote,
			Diffs:         diffBlob,
		}); err != nil {
			return nil, err
		}
		return tc, nil

	default:
		return nil, ErrInvalidDecision
	}
}

func (r *repo) Pending(ctx context.Context, docID *uuid.UUID, limit int) ([]PendingItem, error) {
	if limit <= 0 {
		limit = r.pagination.DefaultPageSize
	}

	stmt := fmt.Sprintf(`
		SELECT %s, rq.requirement_ident, rq.raw_text
		FROM %s
		WHERE t.status IN ($1, $2)`, selectColumns, fromClause)

	args := []any{StatusPreview, StatusStale}

	if docID != nil {
		stmt += " AND rq.doc_id = $3"
		args = append(args, *docID)
	}

	stmt += fmt.Sprintf(" ORDER BY t.generated_at ASC LIMIT %d", limit)

	items, err := repository.QueryMany(ctx, r.db, stmt, args, scanPendingItem)
	if err != nil {
		return nil, fmt.Errorf("query pending test cases: %w", err)
	}
	return items, nil
}

func scanPendingItem(s repository.Scanner) (PendingItem, error) {
	var item PendingItem
	var ident *string

	err := s.Scan(
		&item.TestCase.ID,
		&item.TestCase.RequirementID,
		&item.TestCase.TestCaseIdent,
		&item.TestCase.TestType,
		&item.TestCase.Status,
		&item.TestCase.Gherkin,
		&item.TestCase.Content,
		&item.TestCase.CodeScaffold,
		&item.TestCase.GeneratedAt,
		&item.TestCase.RegenerationCount,
		&item.TestCase.TrackerKey,
		&item.TestCase.CreatedAt,
		&item.TestCase.DocID,
		&ident,
		&item.RequirementText,
	)
	if err != nil {
		return item, err
	}

	if ident != nil {
		item.RequirementIdent = *ident
	} else {
		item.RequirementIdent = "REQ-" + item.TestCase.RequirementID.String()
	}

	return item, nil
}

func (r *repo) Audit(ctx context.Context, id uuid.UUID) (*RequirementAudit, error) {
	tc, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := events.ListReviews(ctx, r.db, tc.RequirementID)
	if err != nil {
		return nil, err
	}

	return &RequirementAudit{
		TestCaseID:    tc.ID,
		RequirementID: tc.RequirementID,
		Reviews:       reviews,
	}, nil
}

func (r *repo) Package(ctx context.Context, id uuid.UUID) (*ReviewPackage, error) {
	tc, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	req, err := r.reqs.Find(ctx, tc.RequirementID)
	if err != nil {
		return nil, err
	}

	verdict, err := events.LatestReview(ctx, r.db, tc.ID, events.ActionJudgeEvaluation)
	if err != nil {
		return nil, err
	}

	return &ReviewPackage{
		TestCase:    *tc,
		Requirement: req,
		Judge:       verdict,
	}, nil
}
