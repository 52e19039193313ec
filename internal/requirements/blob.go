package requirements

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion is the current structured blob envelope version. JSON columns
// carry this envelope so stored payloads can evolve without table changes.
const SchemaVersion = 1

type fieldsEnvelope struct {
	SchemaVersion int            `json:"schema_version"`
	Fields        map[string]any `json:"fields"`
}

type confidencesEnvelope struct {
	SchemaVersion int                `json:"schema_version"`
	Confidences   map[string]float64 `json:"confidences"`
}

// EncodeFields wraps structured extraction fields in the schema envelope.
func EncodeFields(fields map[string]any) (json.RawMessage, error) {
	return json.Marshal(fieldsEnvelope{
		SchemaVersion: SchemaVersion,
		Fields:        fields,
	})
}

// DecodeFields unwraps a structured blob, validating its schema version.
// A nil blob decodes to an empty map.
func DecodeFields(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var env fieldsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode structured blob: %w", err)
	}

	if env.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrSchemaVersion, env.SchemaVersion)
	}

	if env.Fields == nil {
		env.Fields = map[string]any{}
	}
	return env.Fields, nil
}

// EncodeConfidences wraps per-field confidences in the schema envelope.
func EncodeConfidences(confidences map[string]float64) (json.RawMessage, error) {
	return json.Marshal(confidencesEnvelope{
		SchemaVersion: SchemaVersion,
		Confidences:   confidences,
	})
}

// DecodeConfidences unwraps a confidence blob, validating its schema version.
// A nil blob decodes to an empty map.
func DecodeConfidences(raw json.RawMessage) (map[string]float64, error) {
	if len(raw) == 0 {
		return map[string]float64{}, nil
	}

	var env confidencesEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode confidence blob: %w", err)
	}

	if env.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrSchemaVersion, env.SchemaVersion)
	}

	if env.Confidences == nil {
		env.Confidences = map[string]float64{}
	}
	return env.Confidences, nil
}
