package extraction

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/documents"
	"github.com/reqsmith/casegen/internal/events"
	"github.com/reqsmith/casegen/internal/oracle"
	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/pkg/repository"
)

type repo struct {
	db                *sql.DB
	docs              documents.System
	oracle            oracle.Client
	model             string
	defaultConfidence float64
	retry             RetryConfig
	logger            *slog.Logger
}

// New creates an extraction system. model names the oracle model recorded on
// generation events; defaultConfidence is the overall-confidence fallback
// when the oracle reports no per-field confidences.
func New(
	db *sql.DB,
	docs documents.System,
	oracleClient oracle.Client,
	model string,
	defaultConfidence float64,
	retry RetryConfig,
	logger *slog.Logger,
) System {
	return &repo{
		db:                db,
		docs:              docs,
		oracle:            oracleClient,
		model:             model,
		defaultConfidence: defaultConfidence,
		retry:             retry,
		logger:            logger.With("system", "extraction"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Extract(ctx context.Context, docID uuid.UUID) (*Result, error) {
	doc, err := r.docs.Find(ctx, docID)
	if err != nil {
		return nil, err
	}

	text, err := r.docs.Text(ctx, docID)
	if err != nil {
		return nil, err
	}

	blocks := SplitParagraphs(text.Content)
	if len(blocks) == 0 {
		return nil, ErrNoParagraphs
	}

	result := &Result{
		DocID:      docID,
		SessionID:  doc.UploadSessionID,
		Paragraphs: len(blocks),
		Created:    make([]uuid.UUID, 0, len(blocks)),
	}

	for i, block := range blocks {
		req, err := r.extractBlock(ctx, docID, block)
		if err != nil {
			return nil, fmt.Errorf("extract paragraph %d: %w", i+1, err)
		}

		result.Created = append(result.Created, req.ID)
		if req.Status == requirements.StatusNeedsManualFix {
			result.ManualFix++
		}
	}

	r.logger.Info("extraction complete",
		"doc_id", docID,
		"paragraphs", result.Paragraphs,
		"created", len(result.Created),
		"manual_fix", result.ManualFix,
	)
	return result, nil
}

// extractBlock runs one paragraph through the oracle and persists the
// resulting requirement with its generation event in a single transaction.
// Transient oracle failures retry with exponential backoff; validation
// failures persist immediately as needs_manual_fix.
func (r *repo) extractBlock(ctx context.Context, docID uuid.UUID, block string) (*requirements.Requirement, error) {
	cmd := requirements.InsertCommand{
		DocID:   docID,
		RawText: block,
		Version: 1,
	}

	var trace oracle.Trace

	extracted, err := r.callOracle(ctx, block)
	switch {
	case err == nil:
		trace = extracted.Trace
		fields := requirements.StructuredFields(extracted)
		structured, encErr := requirements.EncodeFields(fields)
		if encErr != nil {
			return nil, encErr
		}

		confBlob, encErr := requirements.EncodeConfidences(extracted.FieldConfidences)
		if encErr != nil {
			return nil, encErr
		}

		cmd.Status = requirements.StatusExtracted
		cmd.Structured = structured
		cmd.FieldConfidences = confBlob
		cmd.OverallConfidence = extracted.OverallConfidence(r.defaultConfidence)

		if extracted.RequirementID != nil && *extracted.RequirementID != "" {
			cmd.RequirementIdent = extracted.RequirementID
		}

	case oracle.IsValidation(err):
		trace = oracle.TraceOf(err)
		msg := err.Error()
		cmd.Status = requirements.StatusNeedsManualFix
		cmd.ErrorMessage = &msg

		structured, encErr := requirements.EncodeFields(map[string]any{})
		if encErr != nil {
			return nil, encErr
		}
		cmd.Structured = structured

		confBlob, encErr := requirements.EncodeConfidences(map[string]float64{})
		if encErr != nil {
			return nil, encErr
		}
		cmd.FieldConfidences = confBlob

	default:
		return nil, err
	}

	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*requirements.Requirement, error) {
		saved, err := requirements.Insert(ctx, tx, cmd)
		if err != nil {
			return nil, err
		}

		ev := events.GenerationEvent{
			RequirementID: &saved.ID,
			Stage:         events.StageExtract,
			Model:         r.model,
			GeneratedBy:   events.InitiatorSystem,
		}
		if trace.Prompt != "" {
			ev.Prompt = &trace.Prompt
		}
		if trace.Raw != "" {
			ev.RawResponse = &trace.Raw
		}

		if _, err := events.AppendGeneration(ctx, tx, ev); err != nil {
			return nil, err
		}

		return saved, nil
	})
}

// callOracle invokes the extraction oracle with bounded exponential backoff.
// Validation errors are permanent and short-circuit the retry loop.
func (r *repo) callOracle(ctx context.Context, block string) (*oracle.Extraction, error) {
	var result *oracle.Extraction

	op := func() error {
		extracted, err := r.oracle.Extract(ctx, block)
		if err != nil {
			if oracle.IsValidation(err) {
				return backoff.Permanent(err)
			}
			return err
		}

		result = extracted
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	if r.retry.InitialInterval > 0 {
		bo.InitialInterval = r.retry.InitialInterval
	}
	if r.retry.MaxElapsedTime > 0 {
		bo.MaxElapsedTime = r.retry.MaxElapsedTime
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}

	return result, nil
}
