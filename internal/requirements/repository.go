package requirements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/events"
	"github.com/reqsmith/casegen/internal/oracle"
	"github.com/reqsmith/casegen/pkg/pagination"
	"github.com/reqsmith/casegen/pkg/query"
	"github.com/reqsmith/casegen/pkg/repository"
)

const requirementColumns = "id, doc_id, requirement_ident, raw_text, structured, field_confidences, overall_confidence, status, version, error_message, embeddings, created_at, updated_at"

type repo struct {
	db                *sql.DB
	oracle            oracle.Client
	model             string
	defaultConfidence float64
	logger            *slog.Logger
	pagination        pagination.Config
}

// New creates a requirement repository implementing the System interface.
// model names the oracle model recorded on generation events;
// defaultConfidence is the overall-confidence fallback when an extraction
// reports no per-field confidences.
func New(
	db *sql.DB,
	oracleClient oracle.Client,
	model string,
	defaultConfidence float64,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:                db,
		oracle:            oracleClient,
		model:             model,
		defaultConfidence: defaultConfidence,
		logger:            logger.With("system", "requirements"),
		pagination:        pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Requirement], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "RawText", "RequirementIdent")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count requirements: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	reqs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRequirement)
	if err != nil {
		return nil, fmt.Errorf("query requirements: %w", err)
	}

	result := pagination.NewPageResult(reqs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Requirement, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	req, err := repository.QueryOne(ctx, r.db, q, args, scanRequirement)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &req, nil
}

func (r *repo) Review(ctx context.Context, id uuid.UUID, cmd ReviewCommand) (*Requirement, error) {
	updated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Requirement, error) {
		current, err := lockRequirement(ctx, tx, id)
		if err != nil {
			return Requirement{}, err
		}

		if current.Version != cmd.Version {
			return Requirement{}, ErrVersionConflict
		}
		if current.Status == StatusArchived {
			return Requirement{}, ErrArchived
		}

		fields, err := DecodeFields(current.Structured)
		if err != nil {
			return Requirement{}, err
		}

		confidences, err := DecodeConfidences(current.FieldConfidences)
		if err != nil {
			return Requirement{}, err
		}

		outcome := ApplyReview(fields, confidences, cmd.Edits, cmd.Confidence)

		if !current.Status.CanTransition(outcome.Status) {
			return Requirement{}, fmt.Errorf(
				"%w: %s to %s", ErrInvalidTransition, current.Status, outcome.Status,
			)
		}

		structured, err := EncodeFields(outcome.Fields)
		if err != nil {
			return Requirement{}, err
		}

		confBlob, err := EncodeConfidences(outcome.Confidences)
		if err != nil {
			return Requirement{}, err
		}

		updateQ := fmt.Sprintf(`
			UPDATE requirements
			SET structured = $1, field_confidences = $2, overall_confidence = $3,
			    status = $4, version = version + 1, error_message = NULL, updated_at = now()
			WHERE id = $5 AND version = $6
			RETURNING %s`, requirementColumns)

		args := []any{structured, confBlob, outcome.Overall, outcome.Status, id, cmd.Version}

		saved, err := repository.QueryOne(ctx, tx, updateQ, args, scanRequirement)
		if errors.Is(err, sql.ErrNoRows) {
			return Requirement{}, ErrVersionConflict
		}
		if err != nil {
			return Requirement{}, fmt.Errorf("update requirement: %w", err)
		}

		if err := staleTestCases(ctx, tx, id); err != nil {
			return Requirement{}, err
		}

		diffs, err := events.MarshalDiffs(outcome.Diffs)
		if err != nil {
			return Requirement{}, fmt.Errorf("marshal review diffs: %w", err)
		}

		clamped := ClampConfidence(cmd.Confidence)
		if _, err := events.AppendReview(ctx, tx, events.ReviewEvent{
			RequirementID:      id,
			Reviewer:           cmd.Reviewer,
			Action:             events.ActionReviewed,
			Note:               cmd.Note,
			Diffs:              diffs,
			ReviewerConfidence: &clamped,
		}); err != nil {
			return Requirement{}, err
		}

		return saved, nil
	})

	if err != nil {
		return nil, err
	}

	r.logger.Info("requirement reviewed",
		"id", updated.ID,
		"reviewer", cmd.Reviewer,
		"status", updated.Status,
		"confidence", updated.OverallConfidence,
	)
	return &updated, nil
}

func (r *repo) UpdateText(ctx context.Context, id uuid.UUID, cmd UpdateTextCommand) (*Requirement, error) {
	newText := strings.TrimSpace(cmd.RawText)
	if newText == "" {
		return nil, ErrEmptyText
	}

	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == StatusArchived {
		return nil, ErrArchived
	}
	if current.Version != cmd.Version {
		return nil, ErrVersionConflict
	}

	// Re-extraction runs before any persistence so transient oracle failures
	// leave the current revision untouched.
	insert, trace, err := r.extractRevision(ctx, current, newText)
	if err != nil {
		return nil, err
	}

	revision, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Requirement, error) {
		archiveQ := `
			UPDATE requirements
			SET status = $1, updated_at = now()
			WHERE id = $2 AND version = $3`

		if err := repository.ExecExpectOne(
			ctx, tx, archiveQ, StatusArchived, id, cmd.Version,
		); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return Requirement{}, ErrVersionConflict
			}
			return Requirement{}, fmt.Errorf("archive requirement: %w", err)
		}

		if err := staleTestCases(ctx, tx, id); err != nil {
			return Requirement{}, err
		}

		saved, err := Insert(ctx, tx, *insert)
		if err != nil {
			return Requirement{}, err
		}

		diffs, err := events.MarshalDiffs(map[string]events.FieldDiff{
			"raw_text": {Old: current.RawText, New: newText},
		})
		if err != nil {
			return Requirement{}, fmt.Errorf("marshal text diff: %w", err)
		}

		if _, err := events.AppendReview(ctx, tx, events.ReviewEvent{
			RequirementID: saved.ID,
			Reviewer:      cmd.Reviewer,
			Action:        events.ActionTextUpdated,
			Diffs:         diffs,
		}); err != nil {
			return Requirement{}, err
		}

		gen := events.GenerationEvent{
			RequirementID: &saved.ID,
			Stage:         events.StageExtract,
			Model:         r.model,
			GeneratedBy:   cmd.Reviewer,
		}
		if trace.Prompt != "" {
			gen.Prompt = &trace.Prompt
		}
		if trace.Raw != "" {
			gen.RawResponse = &trace.Raw
		}

		if _, err := events.AppendGeneration(ctx, tx, gen); err != nil {
			return Requirement{}, err
		}

		return *saved, nil
	})

	if err != nil {
		return nil, err
	}

	r.logger.Info("requirement text updated",
		"old_id", id,
		"new_id", revision.ID,
		"version", revision.Version,
		"status", revision.Status,
	)
	return &revision, nil
}

// extractRevision runs the extraction oracle against corrected text and
// builds the replacement revision. Schema-validation failures become a
// needs_manual_fix revision instead of an error.
func (r *repo) extractRevision(ctx context.Context, current *Requirement, newText string) (*InsertCommand, oracle.Trace, error) {
	cmd := InsertCommand{
		DocID:            current.DocID,
		RequirementIdent: current.RequirementIdent,
		RawText:          newText,
		Version:          current.Version + 1,
	}

	extracted, err := r.oracle.Extract(ctx, newText)
	if err != nil {
		if !oracle.IsValidation(err) {
			return nil, oracle.Trace{}, fmt.Errorf("re-extract requirement: %w", err)
		}

		trace := oracle.TraceOf(err)
		msg := err.Error()
		cmd.Status = StatusNeedsManualFix
		cmd.ErrorMessage = &msg
		cmd.OverallConfidence = 0

		empty, encErr := EncodeFields(map[string]any{})
		if encErr != nil {
			return nil, trace, encErr
		}
		cmd.Structured = empty

		emptyConf, encErr := EncodeConfidences(map[string]float64{})
		if encErr != nil {
			return nil, trace, encErr
		}
		cmd.FieldConfidences = emptyConf

		return &cmd, trace, nil
	}

	fields := StructuredFields(extracted)
	structured, err := EncodeFields(fields)
	if err != nil {
		return nil, extracted.Trace, err
	}

	confBlob, err := EncodeConfidences(extracted.FieldConfidences)
	if err != nil {
		return nil, extracted.Trace, err
	}

	cmd.Status = StatusExtracted
	cmd.Structured = structured
	cmd.FieldConfidences = confBlob
	cmd.OverallConfidence = extracted.OverallConfidence(r.defaultConfidence)

	return &cmd, extracted.Trace, nil
}

func (r *repo) AutoApprove(ctx context.Context, docID uuid.UUID, threshold float64) (*AutoApproveResult, error) {
	approved, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]uuid.UUID, error) {
		q := `
			UPDATE requirements
			SET status = $1, version = version + 1, updated_at = now()
			WHERE doc_id = $2 AND status = $3 AND overall_confidence >= $4
			RETURNING id`

		args := []any{StatusApproved, docID, StatusExtracted, threshold}

		ids, err := repository.QueryMany(ctx, tx, q, args, func(s repository.Scanner) (uuid.UUID, error) {
			var id uuid.UUID
			err := s.Scan(&id)
			return id, err
		})
		if err != nil {
			return nil, fmt.Errorf("auto-approve requirements: %w", err)
		}

		note := fmt.Sprintf("Auto-approved at threshold %.2f", threshold)
		for _, reqID := range ids {
			if _, err := events.AppendReview(ctx, tx, events.ReviewEvent{
				RequirementID: reqID,
				Reviewer:      "auto-approval",
				Action:        events.ActionAutoApproved,
				Note:          &note,
			}); err != nil {
				return nil, err
			}
		}

		return ids, nil
	})

	if err != nil {
		return nil, err
	}

	r.logger.Info("auto-approval complete",
		"doc_id", docID,
		"threshold", threshold,
		"approved", len(approved),
	)

	return &AutoApproveResult{
		DocID:     docID,
		Threshold: threshold,
		Approved:  approved,
	}, nil
}

func (r *repo) Audit(ctx context.Context, id uuid.UUID) (*AuditTrail, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	reviews, err := events.ListReviews(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	generations, err := events.ListGenerations(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	return &AuditTrail{
		RequirementID: id,
		Reviews:       reviews,
		Generations:   generations,
	}, nil
}

// Insert persists a new requirement revision. Exported so the extraction
// stage and copy-on-write updates can compose it into their own transactions.
func Insert(ctx context.Context, q repository.Querier, cmd InsertCommand) (*Requirement, error) {
	stmt := fmt.Sprintf(`
		INSERT INTO requirements(doc_id, requirement_ident, raw_text, structured, field_confidences, overall_confidence, status, version, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, requirementColumns)

	version := cmd.Version
	if version == 0 {
		version = 1
	}

	args := []any{
		cmd.DocID,
		cmd.RequirementIdent,
		cmd.RawText,
		cmd.Structured,
		cmd.FieldConfidences,
		cmd.OverallConfidence,
		cmd.Status,
		version,
		cmd.ErrorMessage,
	}

	saved, err := repository.QueryOne(ctx, q, stmt, args, scanRequirement)
	if err != nil {
		return nil, fmt.Errorf("insert requirement: %w", err)
	}
	return &saved, nil
}

// Get loads a requirement through an arbitrary Querier. Exported so stage
// packages can read requirements inside their own transactions, including
// archived revisions.
func Get(ctx context.Context, q repository.Querier, id uuid.UUID) (*Requirement, error) {
	stmt := fmt.Sprintf(
		"SELECT %s FROM requirements WHERE id = $1", requirementColumns,
	)

	req, err := repository.QueryOne(ctx, q, stmt, []any{id}, scanRequirement)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &req, nil
}

// ApprovedForDoc returns every approved requirement of a document in
// creation order. Exported for the generation stage.
func ApprovedForDoc(ctx context.Context, q repository.Querier, docID uuid.UUID) ([]Requirement, error) {
	stmt := fmt.Sprintf(`
		SELECT %s FROM requirements
		WHERE doc_id = $1 AND status = $2
		ORDER BY created_at ASC, id ASC`, requirementColumns)

	reqs, err := repository.QueryMany(ctx, q, stmt, []any{docID, StatusApproved}, scanRequirement)
	if err != nil {
		return nil, fmt.Errorf("query approved requirements: %w", err)
	}
	return reqs, nil
}

// ActiveForDoc returns every non-archived requirement of a document in
// creation order. Exported for the export stage's traceability projection.
func ActiveForDoc(ctx context.Context, q repository.Querier, docID uuid.UUID) ([]Requirement, error) {
	stmt := fmt.Sprintf(`
		SELECT %s FROM requirements
		WHERE doc_id = $1 AND status <> $2
		ORDER BY created_at ASC, id ASC`, requirementColumns)

	reqs, err := repository.QueryMany(ctx, q, stmt, []any{docID, StatusArchived}, scanRequirement)
	if err != nil {
		return nil, fmt.Errorf("query active requirements: %w", err)
	}
	return reqs, nil
}

// StructuredFields flattens an oracle extraction into the stored field map.
func StructuredFields(e *oracle.Extraction) map[string]any {
	fields := map[string]any{
		"type":    e.Type,
		"subject": e.Subject,
	}

	if e.RequirementID != nil {
		fields["requirement_id"] = *e.RequirementID
	}
	if e.Trigger != nil {
		fields["trigger"] = map[string]any{
			"metric":   e.Trigger.Metric,
			"operator": e.Trigger.Operator,
			"value":    e.Trigger.Value,
		}
	}
	if e.Actions != nil {
		fields["actions"] = e.Actions
	}
	if e.TimingMS != nil {
		fields["timing_ms"] = *e.TimingMS
	}
	if e.NumbersUnits != nil {
		fields["numbers_units"] = e.NumbersUnits
	}

	return fields
}

func lockRequirement(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*Requirement, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM requirements WHERE id = $1 FOR UPDATE",
		requirementColumns,
	)

	req, err := repository.QueryOne(ctx, tx, q, []any{id}, scanRequirement)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &req, nil
}

// staleTestCases marks every live test case of a requirement stale. Rejected
// cases stay rejected; already-stale cases are left alone. Pushed cases are
// staled too, bypassing the handler transition table: a requirement change
// invalidates cases already exported to the tracker, and the stale marker is
// what flags them for re-review.
func staleTestCases(ctx context.Context, tx *sql.Tx, requirementID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE test_cases
		SET status = 'stale'
		WHERE requirement_id = $1 AND status NOT IN ('rejected', 'stale')`,
		requirementID,
	)
	if err != nil {
		return fmt.Errorf("stale test cases: %w", err)
	}
	return nil
}
