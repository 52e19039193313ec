package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/documents"
	"github.com/reqsmith/casegen/internal/extraction"
	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/internal/testcases"
)

type repo struct {
	db        *sql.DB
	docs      documents.System
	extractor extraction.System
	reqs      requirements.System
	logger    *slog.Logger
}

// New creates a pipeline system composing the stage systems.
func New(
	db *sql.DB,
	docs documents.System,
	extractor extraction.System,
	reqs requirements.System,
	logger *slog.Logger,
) System {
	return &repo{
		db:        db,
		docs:      docs,
		extractor: extractor,
		reqs:      reqs,
		logger:    logger.With("system", "pipeline"),
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, maxUploadSize)
}

func (r *repo) Start(ctx context.Context, cmd documents.CreateCommand) (*StartResult, error) {
	doc, err := r.docs.Create(ctx, cmd)
	if err != nil {
		return nil, err
	}

	extracted, err := r.extractor.Extract(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("document %s uploaded, extraction failed: %w", doc.ID, err)
	}

	r.logger.Info("pipeline started",
		"session", doc.UploadSessionID,
		"doc", doc.ID,
		"requirements", len(extracted.Created),
		"manual_fix", extracted.ManualFix,
	)

	return &StartResult{
		SessionID:           doc.UploadSessionID,
		DocID:               doc.ID,
		Filename:            doc.Filename,
		Paragraphs:          extracted.Paragraphs,
		RequirementsCreated: extracted.Created,
		ManualFix:           extracted.ManualFix,
	}, nil
}

func (r *repo) Status(ctx context.Context, sessionID uuid.UUID) (*StatusReport, error) {
	docCount, err := r.countDocuments(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if docCount == 0 {
		return nil, ErrUnknownSession
	}

	reqCounts, err := r.statusCounts(ctx, `
		SELECT r.status, count(*)
		FROM requirements r
		JOIN documents d ON r.doc_id = d.id
		WHERE d.upload_session_id = $1
		GROUP BY r.status`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("count session requirements: %w", err)
	}

	tcCounts, err := r.statusCounts(ctx, `
		SELECT t.status, count(*)
		FROM test_cases t
		JOIN requirements r ON t.requirement_id = r.id
		JOIN documents d ON r.doc_id = d.id
		WHERE d.upload_session_id = $1
		GROUP BY t.status`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("count session test cases: %w", err)
	}

	stage := resolveStage(reqCounts, tcCounts)

	return &StatusReport{
		SessionID:    sessionID,
		Stage:        stage,
		Progress:     float64(stageOrder[stage]) / float64(len(stageOrder)),
		Documents:    docCount,
		Requirements: reqCounts,
		TestCases:    tcCounts,
	}, nil
}

func (r *repo) AutoApprove(ctx context.Context, sessionID uuid.UUID, threshold float64) (*AutoApproveResult, error) {
	docIDs, err := r.sessionDocs(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(docIDs) == 0 {
		return nil, ErrUnknownSession
	}

	result := &AutoApproveResult{
		SessionID: sessionID,
		Threshold: threshold,
		Approved:  make([]uuid.UUID, 0),
	}

	for _, docID := range docIDs {
		approved, err := r.reqs.AutoApprove(ctx, docID, threshold)
		if err != nil {
			return nil, err
		}
		result.Approved = append(result.Approved, approved.Approved...)
	}

	r.logger.Info("session auto-approval complete",
		"session", sessionID,
		"approved", len(result.Approved),
		"threshold", threshold,
	)
	return result, nil
}

func (r *repo) countDocuments(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT count(*) FROM documents WHERE upload_session_id = $1", sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count session documents: %w", err)
	}
	return count, nil
}

func (r *repo) sessionDocs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM documents WHERE upload_session_id = $1 ORDER BY uploaded_at ASC",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query session documents: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repo) statusCounts(ctx context.Context, stmt string, sessionID uuid.UUID) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, stmt, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// resolveStage reports the furthest stage any session artifact has reached.
func resolveStage(reqCounts, tcCounts map[string]int) Stage {
	if tcCounts[string(testcases.StatusPushed)] > 0 {
		return StagePush
	}

	totalTC := 0
	for _, count := range tcCounts {
		totalTC += count
	}
	if totalTC > 0 {
		return StageGenerate
	}

	reviewed := reqCounts[string(requirements.StatusInReview)] +
		reqCounts[string(requirements.StatusNeedsSecondReview)] +
		reqCounts[string(requirements.StatusApproved)]
	if reviewed > 0 {
		return StageReview
	}

	totalReq := 0
	for _, count := range reqCounts {
		totalReq += count
	}
	if totalReq > 0 {
		return StageExtract
	}

	return StageUpload
}
