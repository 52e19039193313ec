package requirements_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/reqsmith/casegen/internal/requirements"
)

func TestFieldsRoundTrip(t *testing.T) {
	fields := map[string]any{
		"subject": "brake system",
		"type":    "safety",
	}

	raw, err := requirements.EncodeFields(fields)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := requirements.DecodeFields(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if decoded["subject"] != "brake system" || decoded["type"] != "safety" {
		t.Errorf("decoded = %v, want original fields", decoded)
	}
}

func TestDecodeFieldsNilBlob(t *testing.T) {
	decoded, err := requirements.DecodeFields(nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("decoded = %v, want empty map", decoded)
	}
}

func TestDecodeFieldsSchemaVersionMismatch(t *testing.T) {
	raw := json.RawMessage(`{"schema_version": 99, "fields": {}}`)

	_, err := requirements.DecodeFields(raw)
	if !errors.Is(err, requirements.ErrSchemaVersion) {
		t.Errorf("err = %v, want ErrSchemaVersion", err)
	}
}

func TestConfidencesRoundTrip(t *testing.T) {
	confidences := map[string]float64{"subject": 0.8, "type": 0.6}

	raw, err := requirements.EncodeConfidences(confidences)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := requirements.DecodeConfidences(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if decoded["subject"] != 0.8 || decoded["type"] != 0.6 {
		t.Errorf("decoded = %v, want original confidences", decoded)
	}
}

func TestDecodeConfidencesSchemaVersionMismatch(t *testing.T) {
	raw := json.RawMessage(`{"schema_version": 2, "confidences": {}}`)

	_, err := requirements.DecodeConfidences(raw)
	if !errors.Is(err, requirements.ErrSchemaVersion) {
		t.Errorf("err = %v, want ErrSchemaVersion", err)
	}
}
