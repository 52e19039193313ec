package export

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/internal/testcases"
)

func TestTrackerConfigValidate(t *testing.T) {
	valid := TrackerConfig{
		BaseURL:  "https://tracker.example.com",
		Username: "qa",
		Token:    "secret",
		Project:  "PROJ",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*TrackerConfig)
	}{
		{"missing base url", func(c *TrackerConfig) { c.BaseURL = "" }},
		{"missing project", func(c *TrackerConfig) { c.Project = "" }},
		{"missing username", func(c *TrackerConfig) { c.Username = "" }},
		{"missing token", func(c *TrackerConfig) { c.Token = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestBuildIssue(t *testing.T) {
	ident := "REQ-001"
	structured, err := requirements.EncodeFields(map[string]any{"type": "safety"})
	if err != nil {
		t.Fatalf("encode fields failed: %v", err)
	}

	req := &requirements.Requirement{
		ID:               uuid.New(),
		RequirementIdent: &ident,
		RawText:          "The system shall brake.",
		Structured:       structured,
	}
	tc := &testcases.TestCase{
		TestCaseIdent: "TC-REQ-001-aaaa",
		Gherkin:       "Feature: braking",
	}

	cfg := TrackerConfig{Project: "PROJ"}

	issue, err := buildIssue(cfg, tc, req)
	if err != nil {
		t.Fatalf("build issue failed: %v", err)
	}

	if issue.Fields.Summary != "Test Case: TC-REQ-001-aaaa" {
		t.Errorf("summary = %q", issue.Fields.Summary)
	}
	if issue.Fields.Project.Key != "PROJ" {
		t.Errorf("project = %q", issue.Fields.Project.Key)
	}
	if issue.Fields.Type.Name != defaultIssueType {
		t.Errorf("issue type = %q, want default", issue.Fields.Type.Name)
	}

	desc := issue.Fields.Description
	for _, want := range []string{"REQ-001", "The system shall brake.", "Feature: braking", "type: safety"} {
		if !strings.Contains(desc, want) {
			t.Errorf("description missing %q:\n%s", want, desc)
		}
	}
}

func TestBuildIssueCustomType(t *testing.T) {
	req := &requirements.Requirement{ID: uuid.New()}
	tc := &testcases.TestCase{TestCaseIdent: "TC-x"}

	issue, err := buildIssue(TrackerConfig{Project: "PROJ", IssueType: "Test"}, tc, req)
	if err != nil {
		t.Fatalf("build issue failed: %v", err)
	}

	if issue.Fields.Type.Name != "Test" {
		t.Errorf("issue type = %q, want Test", issue.Fields.Type.Name)
	}
}
