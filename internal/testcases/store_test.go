package testcases_test

import (
	"testing"

	"github.com/reqsmith/casegen/internal/testcases"
)

func editableTestCase(t *testing.T) *testcases.TestCase {
	t.Helper()

	content, err := testcases.EncodeContent(testcases.ContentFields{
		Evidence:       []string{"original evidence"},
		AutomatedSteps: []string{"step one"},
		SampleData:     map[string]any{"speed": 120.0},
	})
	if err != nil {
		t.Fatalf("encode content failed: %v", err)
	}

	return &testcases.TestCase{
		Gherkin:      "Feature: braking",
		Content:      content,
		CodeScaffold: "func TestBraking(t *testing.T) {}",
	}
}

func TestApplyEditsGherkin(t *testing.T) {
	tc := editableTestCase(t)

	gherkin, _, scaffold, diffs, err := testcases.ApplyEdits(tc, map[string]any{
		"gherkin": "Feature: emergency braking",
	})
	if err != nil {
		t.Fatalf("apply edits failed: %v", err)
	}

	if gherkin != "Feature: emergency braking" {
		t.Errorf("gherkin = %q, want edited value", gherkin)
	}
	if scaffold != tc.CodeScaffold {
		t.Errorf("scaffold = %q, want untouched", scaffold)
	}

	diff, ok := diffs["gherkin"]
	if !ok {
		t.Fatal("expected gherkin diff")
	}
	if diff.Old != "Feature: braking" || diff.New != "Feature: emergency braking" {
		t.Errorf("diff = %v -> %v, want old -> new", diff.Old, diff.New)
	}
}

func TestApplyEditsNoChangeNoDiff(t *testing.T) {
	tc := editableTestCase(t)

	_, _, _, diffs, err := testcases.ApplyEdits(tc, map[string]any{
		"gherkin": "Feature: braking",
	})
	if err != nil {
		t.Fatalf("apply edits failed: %v", err)
	}

	if len(diffs) != 0 {
		t.Errorf("diffs = %v, want empty for no-op edit", diffs)
	}
}

func TestApplyEditsContentFields(t *testing.T) {
	tc := editableTestCase(t)

	_, content, _, diffs, err := testcases.ApplyEdits(tc, map[string]any{
		"evidence":        []any{"new evidence"},
		"automated_steps": []string{"step one", "step two"},
		"sample_data":     map[string]any{"speed": 80.0},
	})
	if err != nil {
		t.Fatalf("apply edits failed: %v", err)
	}

	decoded, err := testcases.DecodeContent(content)
	if err != nil {
		t.Fatalf("decode content failed: %v", err)
	}

	if len(decoded.Evidence) != 1 || decoded.Evidence[0] != "new evidence" {
		t.Errorf("Evidence = %v, want edited value", decoded.Evidence)
	}
	if len(decoded.AutomatedSteps) != 2 {
		t.Errorf("AutomatedSteps = %v, want two steps", decoded.AutomatedSteps)
	}
	if decoded.SampleData["speed"] != 80.0 {
		t.Errorf("SampleData = %v, want edited value", decoded.SampleData)
	}
	if len(diffs) != 3 {
		t.Errorf("diffs = %v, want three entries", diffs)
	}
}

func TestApplyEditsUnknownField(t *testing.T) {
	tc := editableTestCase(t)

	_, _, _, _, err := testcases.ApplyEdits(tc, map[string]any{
		"priority": "high",
	})
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestApplyEditsWrongType(t *testing.T) {
	tc := editableTestCase(t)

	_, _, _, _, err := testcases.ApplyEdits(tc, map[string]any{
		"gherkin": 42,
	})
	if err == nil {
		t.Fatal("expected error for non-string gherkin")
	}
}
