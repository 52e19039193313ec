package testcases

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion is the current content blob envelope version.
const SchemaVersion = 1

// ContentFields is the decoded body of a test case's content envelope.
type ContentFields struct {
	Evidence       []string       `json:"evidence"`
	AutomatedSteps []string       `json:"automated_steps"`
	SampleData     map[string]any `json:"sample_data"`
}

type contentEnvelope struct {
	SchemaVersion int `json:"schema_version"`
	ContentFields
}

// EncodeContent wraps test case content in the schema envelope.
func EncodeContent(c ContentFields) (json.RawMessage, error) {
	return json.Marshal(contentEnvelope{
		SchemaVersion: SchemaVersion,
		ContentFields: c,
	})
}

// DecodeContent unwraps a content blob, validating its schema version.
func DecodeContent(raw json.RawMessage) (*ContentFields, error) {
	if len(raw) == 0 {
		return &ContentFields{}, nil
	}

	var env contentEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode content blob: %w", err)
	}

	if env.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrSchemaVersion, env.SchemaVersion)
	}

	return &env.ContentFields, nil
}
