package events_test

import (
	"encoding/json"
	"testing"

	"github.com/reqsmith/casegen/internal/events"
)

func TestMarshalDiffsEmpty(t *testing.T) {
	raw, err := events.MarshalDiffs(nil)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if raw != nil {
		t.Errorf("raw = %s, want nil for empty diffs", raw)
	}

	raw, err = events.MarshalDiffs(map[string]events.FieldDiff{})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if raw != nil {
		t.Errorf("raw = %s, want nil for empty map", raw)
	}
}

func TestMarshalDiffs(t *testing.T) {
	raw, err := events.MarshalDiffs(map[string]events.FieldDiff{
		"type": {Old: "safety", New: "performance"},
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]events.FieldDiff
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	diff := decoded["type"]
	if diff.Old != "safety" || diff.New != "performance" {
		t.Errorf("diff = %v -> %v, want safety -> performance", diff.Old, diff.New)
	}
}
