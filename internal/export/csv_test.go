package export_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/export"
	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/internal/testcases"
)

func TestTraceabilityRows(t *testing.T) {
	ident := "REQ-001"
	reqWithCases := requirements.Requirement{
		ID:               uuid.New(),
		RequirementIdent: &ident,
		RawText:          "The system shall brake.",
	}
	reqWithout := requirements.Requirement{
		ID:      uuid.New(),
		RawText: "The system shall log.",
	}

	cases := map[uuid.UUID][]testcases.TestCase{
		reqWithCases.ID: {
			{TestCaseIdent: "TC-REQ-001-aaaa", Status: testcases.StatusGenerated},
			{TestCaseIdent: "TC-REQ-001-bbbb", Status: testcases.StatusPushed},
		},
	}

	rows := export.TraceabilityRows(
		[]requirements.Requirement{reqWithCases, reqWithout},
		cases,
	)

	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}

	if rows[0][0] != "Requirement ID" || rows[0][3] != "Test Case Status" {
		t.Errorf("header = %v", rows[0])
	}

	if rows[1][0] != "REQ-001" || rows[1][2] != "TC-REQ-001-aaaa" || rows[1][3] != "generated" {
		t.Errorf("first row = %v", rows[1])
	}
	if rows[2][3] != "pushed" {
		t.Errorf("second row = %v", rows[2])
	}

	if rows[3][2] != "N/A" || rows[3][3] != "N/A" {
		t.Errorf("requirement without cases = %v, want N/A columns", rows[3])
	}
	if rows[3][0] != "REQ-"+reqWithout.ID.String() {
		t.Errorf("ident fallback = %v", rows[3][0])
	}
}

func TestTestCaseRows(t *testing.T) {
	key := "PROJ-42"
	reqID := uuid.New()

	rows := export.TestCaseRows([]testcases.TestCase{
		{
			TestCaseIdent: "TC-REQ-001-aaaa",
			RequirementID: reqID,
			TestType:      testcases.TypePositive,
			Status:        testcases.StatusPushed,
			Gherkin:       "Feature: braking",
			TrackerKey:    &key,
		},
		{
			TestCaseIdent: "TC-REQ-001-bbbb",
			RequirementID: reqID,
			TestType:      testcases.TypeNegative,
			Status:        testcases.StatusGenerated,
			Gherkin:       "Feature: no braking",
		},
	})

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}

	if rows[1][5] != "PROJ-42" {
		t.Errorf("tracker key = %q, want PROJ-42", rows[1][5])
	}
	if rows[2][5] != "" {
		t.Errorf("tracker key = %q, want empty for unpushed", rows[2][5])
	}
	if rows[2][2] != "negative" {
		t.Errorf("test type = %q, want negative", rows[2][2])
	}
}
