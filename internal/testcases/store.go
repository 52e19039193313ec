package testcases

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/events"
	"github.com/reqsmith/casegen/pkg/repository"
)

const selectColumns = "t.id, t.requirement_id, t.test_case_ident, t.test_type, t.status, t.gherkin, t.content, t.code_scaffold, t.generated_at, t.regeneration_count, t.tracker_key, t.created_at, rq.doc_id"

const fromClause = "test_cases t JOIN requirements rq ON t.requirement_id = rq.id"

// Store combines query and exec access. Satisfied by *sql.DB and *sql.Tx.
type Store interface {
	repository.Querier
	repository.Executor
}

// InsertCommand carries the data for a new test case row. Used by the
// generation stage when persisting previews.
type InsertCommand struct {
	RequirementID uuid.UUID
	TestCaseIdent string
	TestType      TestType
	Status        Status
	Gherkin       string
	Content       []byte
	CodeScaffold  string
}

// Get loads a test case with its resolved document id. Exported so stage
// packages can read inside their own transactions.
func Get(ctx context.Context, q repository.Querier, id uuid.UUID) (*TestCase, error) {
	stmt := fmt.Sprintf(
		"SELECT %s FROM %s WHERE t.id = $1", selectColumns, fromClause,
	)

	tc, err := repository.QueryOne(ctx, q, stmt, []any{id}, scanTestCase)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &tc, nil
}

// Insert persists a new test case row.
func Insert(ctx context.Context, q repository.Querier, cmd InsertCommand) (*TestCase, error) {
	stmt := `
		INSERT INTO test_cases(requirement_id, test_case_ident, test_type, status, gherkin, content, code_scaffold)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	args := []any{
		cmd.RequirementID,
		cmd.TestCaseIdent,
		cmd.TestType,
		cmd.Status,
		cmd.Gherkin,
		cmd.Content,
		cmd.CodeScaffold,
	}

	var id uuid.UUID
	if err := q.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert test case: %w", err)
	}

	return Get(ctx, q, id)
}

// ForRequirement returns every test case of a requirement in generation order.
func ForRequirement(ctx context.Context, q repository.Querier, requirementID uuid.UUID) ([]TestCase, error) {
	stmt := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE t.requirement_id = $1
		ORDER BY t.generated_at ASC, t.id ASC`, selectColumns, fromClause)

	cases, err := repository.QueryMany(ctx, q, stmt, []any{requirementID}, scanTestCase)
	if err != nil {
		return nil, fmt.Errorf("query requirement test cases: %w", err)
	}
	return cases, nil
}

// ForDoc returns every test case of a document in the given statuses,
// generation order. An empty status list returns all of them.
func ForDoc(ctx context.Context, q repository.Querier, docID uuid.UUID, statuses ...Status) ([]TestCase, error) {
	stmt := fmt.Sprintf(
		"SELECT %s FROM %s WHERE rq.doc_id = $1", selectColumns, fromClause,
	)
	args := []any{docID}

	if len(statuses) > 0 {
		placeholders := ""
		for i, s := range statuses {
			if i > 0 {
				placeholders += ", "
			}
			placeholders += fmt.Sprintf("$%d", len(args)+1)
			args = append(args, s)
		}
		stmt += fmt.Sprintf(" AND t.status IN (%s)", placeholders)
	}

	stmt += " ORDER BY t.generated_at ASC, t.id ASC"

	cases, err := repository.QueryMany(ctx, q, stmt, args, scanTestCase)
	if err != nil {
		return nil, fmt.Errorf("query document test cases: %w", err)
	}
	return cases, nil
}

// Transition moves a test case to a target status, enforcing the closed
// transition table. Returns ErrInvalidTransition when the change is not
// permitted from the current status.
func Transition(ctx context.Context, s Store, id uuid.UUID, target Status) (*TestCase, error) {
	current, err := Get(ctx, s, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransition(target) {
		return nil, fmt.Errorf(
			"%w: %s to %s", ErrInvalidTransition, current.Status, target,
		)
	}

	stmt := "UPDATE test_cases SET status = $1 WHERE id = $2 AND status = $3"
	if err := repository.ExecExpectOne(ctx, s, stmt, target, id, current.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("transition test case: %w", err)
	}

	current.Status = target
	return current, nil
}

// OverwriteContent replaces a test case's generated content in place and
// refreshes its generation timestamp. Status and regeneration count are
// deliberately untouched.
func OverwriteContent(ctx context.Context, e repository.Executor, id uuid.UUID, gherkin string, content []byte, scaffold string) error {
	stmt := `
		UPDATE test_cases
		SET gherkin = $1, content = $2, code_scaffold = $3, generated_at = now()
		WHERE id = $4`

	if err := repository.ExecExpectOne(ctx, e, stmt, gherkin, content, scaffold, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("overwrite test case content: %w", err)
	}
	return nil
}

// IncrementRegeneration bumps a test case's regeneration counter.
func IncrementRegeneration(ctx context.Context, e repository.Executor, id uuid.UUID) error {
	stmt := "UPDATE test_cases SET regeneration_count = regeneration_count + 1 WHERE id = $1"

	if err := repository.ExecExpectOne(ctx, e, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("increment regeneration count: %w", err)
	}
	return nil
}

// MarkPushed records a tracker issue key and moves the test case to pushed.
func MarkPushed(ctx context.Context, q repository.Querier, id uuid.UUID, trackerKey string) (*TestCase, error) {
	current, err := Get(ctx, q, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransition(StatusPushed) {
		return nil, fmt.Errorf(
			"%w: %s to %s", ErrInvalidTransition, current.Status, StatusPushed,
		)
	}

	stmt := fmt.Sprintf(`
		UPDATE test_cases t
		SET status = $1, tracker_key = $2
		FROM requirements rq
		WHERE t.id = $3 AND t.requirement_id = rq.id
		RETURNING %s`, selectColumns)

	tc, err := repository.QueryOne(ctx, q, stmt, []any{StatusPushed, trackerKey, id}, scanTestCase)
	if err != nil {
		return nil, fmt.Errorf("mark test case pushed: %w", err)
	}
	return &tc, nil
}

// ApplyEdits merges human content overrides into a test case's stored
// content. Recognized keys are gherkin, code_scaffold, evidence,
// automated_steps, and sample_data; unknown keys are rejected. Returns the
// updated column values and a diff map of the changes actually applied.
func ApplyEdits(tc *TestCase, edits map[string]any) (string, []byte, string, map[string]events.FieldDiff, error) {
	gherkin := tc.Gherkin
	scaffold := tc.CodeScaffold

	content, err := DecodeContent(tc.Content)
	if err != nil {
		return "", nil, "", nil, err
	}

	diffs := make(map[string]events.FieldDiff)

	for field, value := range edits {
		switch field {
		case "gherkin":
			s, ok := value.(string)
			if !ok {
				return "", nil, "", nil, fmt.Errorf("edit %q: expected string", field)
			}
			if s != gherkin {
				diffs[field] = events.FieldDiff{Old: gherkin, New: s}
				gherkin = s
			}

		case "code_scaffold":
			s, ok := value.(string)
			if !ok {
				return "", nil, "", nil, fmt.Errorf("edit %q: expected string", field)
			}
			if s != scaffold {
				diffs[field] = events.FieldDiff{Old: scaffold, New: s}
				scaffold = s
			}

		case "evidence":
			items, err := stringSlice(value)
			if err != nil {
				return "", nil, "", nil, fmt.Errorf("edit %q: %w", field, err)
			}
			diffs[field] = events.FieldDiff{Old: content.Evidence, New: items}
			content.Evidence = items

		case "automated_steps":
			items, err := stringSlice(value)
			if err != nil {
				return "", nil, "", nil, fmt.Errorf("edit %q: %w", field, err)
			}
			diffs[field] = events.FieldDiff{Old: content.AutomatedSteps, New: items}
			content.AutomatedSteps = items

		case "sample_data":
			m, ok := value.(map[string]any)
			if !ok {
				return "", nil, "", nil, fmt.Errorf("edit %q: expected object", field)
			}
			diffs[field] = events.FieldDiff{Old: content.SampleData, New: m}
			content.SampleData = m

		default:
			return "", nil, "", nil, fmt.Errorf("edit %q: unknown field", field)
		}
	}

	encoded, err := EncodeContent(*content)
	if err != nil {
		return "", nil, "", nil, err
	}

	return gherkin, encoded, scaffold, diffs, nil
}

func stringSlice(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("expected array of strings")
			}
			items = append(items, s)
		}
		return items, nil
	default:
		return nil, errors.New("expected array of strings")
	}
}
