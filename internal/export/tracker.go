package export

import (
	"fmt"
	"sort"
	"strings"

	jira "github.com/andygrunwald/go-jira"

	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/internal/testcases"
)

const defaultIssueType = "Task"

// Validate checks that the fields required to reach the tracker are set.
func (c TrackerConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base_url required", ErrTrackerConfig)
	}
	if c.Project == "" {
		return fmt.Errorf("%w: project required", ErrTrackerConfig)
	}
	if c.Username == "" || c.Token == "" {
		return fmt.Errorf("%w: username and token required", ErrTrackerConfig)
	}
	return nil
}

func newTrackerClient(cfg TrackerConfig) (*jira.Client, error) {
	tp := jira.BasicAuthTransport{
		Username: cfg.Username,
		Password: cfg.Token,
	}

	client, err := jira.NewClient(tp.Client(), cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("create tracker client: %w", err)
	}
	return client, nil
}

// buildIssue assembles the tracker issue for a test case: summary from the
// test case ident, description merging the requirement's raw text and
// structured fields with the generated gherkin.
func buildIssue(cfg TrackerConfig, tc *testcases.TestCase, req *requirements.Requirement) (*jira.Issue, error) {
	fields, err := requirements.DecodeFields(req.Structured)
	if err != nil {
		return nil, err
	}

	issueType := cfg.IssueType
	if issueType == "" {
		issueType = defaultIssueType
	}

	var b strings.Builder

	fmt.Fprintf(&b, "h3. Requirement %s\n{quote}\n%s\n{quote}\n", req.Ident(), req.RawText)

	if len(fields) > 0 {
		b.WriteString("\nh3. Structured Fields\n")
		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "* %s: %v\n", key, fields[key])
		}
	}

	fmt.Fprintf(&b, "\nh3. Gherkin\n{code}\n%s\n{code}\n", tc.Gherkin)

	return &jira.Issue{
		Fields: &jira.IssueFields{
			Project:     jira.Project{Key: cfg.Project},
			Type:        jira.IssueType{Name: issueType},
			Summary:     fmt.Sprintf("Test Case: %s", tc.TestCaseIdent),
			Description: b.String(),
		},
	}, nil
}
