package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/internal/testcases"
)

var traceabilityHeader = []string{
	"Requirement ID", "Requirement Text", "Test Case ID", "Test Case Status",
}

var testCasesHeader = []string{
	"Test Case ID", "Requirement ID", "Test Type", "Status", "Gherkin", "Tracker Key",
}

// TraceabilityRows projects active requirements and their test cases into
// traceability matrix rows. Requirements without test cases still appear,
// with N/A in the test case columns.
func TraceabilityRows(reqs []requirements.Requirement, casesByReq map[uuid.UUID][]testcases.TestCase) [][]string {
	rows := [][]string{traceabilityHeader}

	for _, req := range reqs {
		cases := casesByReq[req.ID]
		if len(cases) == 0 {
			rows = append(rows, []string{req.Ident(), req.RawText, "N/A", "N/A"})
			continue
		}
		for _, tc := range cases {
			rows = append(rows, []string{
				req.Ident(), req.RawText, tc.TestCaseIdent, string(tc.Status),
			})
		}
	}

	return rows
}

// TestCaseRows projects test cases into flat export rows.
func TestCaseRows(cases []testcases.TestCase) [][]string {
	rows := [][]string{testCasesHeader}

	for _, tc := range cases {
		key := ""
		if tc.TrackerKey != nil {
			key = *tc.TrackerKey
		}
		rows = append(rows, []string{
			tc.TestCaseIdent,
			tc.RequirementID.String(),
			string(tc.TestType),
			string(tc.Status),
			tc.Gherkin,
			key,
		})
	}

	return rows
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
