package testcases_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/reqsmith/casegen/internal/testcases"
)

func TestContentRoundTrip(t *testing.T) {
	content := testcases.ContentFields{
		Evidence:       []string{"log entry", "sensor trace"},
		AutomatedSteps: []string{"arrange", "act", "assert"},
		SampleData:     map[string]any{"speed": 120.0},
	}

	raw, err := testcases.EncodeContent(content)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := testcases.DecodeContent(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(decoded.Evidence) != 2 || decoded.Evidence[0] != "log entry" {
		t.Errorf("Evidence = %v, want original", decoded.Evidence)
	}
	if len(decoded.AutomatedSteps) != 3 {
		t.Errorf("AutomatedSteps = %v, want original", decoded.AutomatedSteps)
	}
	if decoded.SampleData["speed"] != 120.0 {
		t.Errorf("SampleData = %v, want original", decoded.SampleData)
	}
}

func TestDecodeContentSchemaVersionMismatch(t *testing.T) {
	raw := json.RawMessage(`{"schema_version": 7, "evidence": []}`)

	_, err := testcases.DecodeContent(raw)
	if !errors.Is(err, testcases.ErrSchemaVersion) {
		t.Errorf("err = %v, want ErrSchemaVersion", err)
	}
}
