package export

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	jira "github.com/andygrunwald/go-jira"
	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/internal/testcases"
)

type repo struct {
	db      *sql.DB
	tracker TrackerConfig
	logger  *slog.Logger
}

// New creates an export system implementing the System interface. The
// tracker config is the default connection; push requests may override it.
func New(db *sql.DB, tracker TrackerConfig, logger *slog.Logger) System {
	return &repo{
		db:      db,
		tracker: tracker,
		logger:  logger.With("system", "export"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) PushTracker(ctx context.Context, cmd PushCommand) (*PushResult, error) {
	if len(cmd.TestCaseIDs) == 0 {
		return nil, ErrNoTestCases
	}

	cfg := r.tracker
	if cmd.Tracker != nil {
		cfg = *cmd.Tracker
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := newTrackerClient(cfg)
	if err != nil {
		return nil, err
	}

	result := &PushResult{
		Created: make([]PushedIssue, 0, len(cmd.TestCaseIDs)),
	}

	for _, id := range cmd.TestCaseIDs {
		pushed, err := r.pushOne(ctx, client, cfg, id)
		if err != nil {
			result.Errors = append(result.Errors, ItemError{
				TestCaseID: id,
				Error:      err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, *pushed)
	}

	r.logger.Info("tracker push complete",
		"created", len(result.Created),
		"errors", len(result.Errors),
	)
	return result, nil
}

// pushOne creates a tracker issue for a single test case and records the
// issue key. The status guard runs before the tracker call so a test case
// that cannot move to pushed never produces an orphaned issue.
func (r *repo) pushOne(ctx context.Context, client *jira.Client, cfg TrackerConfig, id uuid.UUID) (*PushedIssue, error) {
	tc, err := testcases.Get(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	if !tc.Status.CanTransition(testcases.StatusPushed) {
		return nil, fmt.Errorf(
			"%w: %s to %s", testcases.ErrInvalidTransition, tc.Status, testcases.StatusPushed,
		)
	}

	req, err := requirements.Get(ctx, r.db, tc.RequirementID)
	if err != nil {
		return nil, err
	}

	issue, err := buildIssue(cfg, tc, req)
	if err != nil {
		return nil, err
	}

	created, _, err := client.Issue.CreateWithContext(ctx, issue)
	if err != nil {
		return nil, fmt.Errorf("create tracker issue: %w", err)
	}

	if _, err := testcases.MarkPushed(ctx, r.db, id, created.Key); err != nil {
		return nil, fmt.Errorf("issue %s created but not recorded: %w", created.Key, err)
	}

	r.logger.Info("test case pushed",
		"id", tc.ID,
		"ident", tc.TestCaseIdent,
		"key", created.Key,
	)

	return &PushedIssue{TestCaseID: id, TrackerKey: created.Key}, nil
}

func (r *repo) TraceabilityCSV(ctx context.Context, docID uuid.UUID) ([]byte, error) {
	reqs, err := requirements.ActiveForDoc(ctx, r.db, docID)
	if err != nil {
		return nil, err
	}

	casesByReq := make(map[uuid.UUID][]testcases.TestCase, len(reqs))
	for _, req := range reqs {
		cases, err := testcases.ForRequirement(ctx, r.db, req.ID)
		if err != nil {
			return nil, err
		}
		casesByReq[req.ID] = cases
	}

	return writeCSV(TraceabilityRows(reqs, casesByReq))
}

func (r *repo) TestCasesCSV(ctx context.Context, docID uuid.UUID) ([]byte, error) {
	cases, err := testcases.ForDoc(ctx, r.db, docID,
		testcases.StatusGenerated, testcases.StatusPushed,
	)
	if err != nil {
		return nil, err
	}

	return writeCSV(TestCaseRows(cases))
}
