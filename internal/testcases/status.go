package testcases

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of a test case.
type Status string

const (
	// StatusPreview is a freshly generated, unconfirmed test case.
	StatusPreview Status = "preview"
	// StatusGenerated is a confirmed or approved test case.
	StatusGenerated Status = "generated"
	// StatusStale marks a test case invalidated by a requirement change or
	// queued for regeneration.
	StatusStale Status = "stale"
	// StatusRejected is a human-rejected test case. Terminal.
	StatusRejected Status = "rejected"
	// StatusPushed marks a test case exported to the issue tracker. Terminal.
	StatusPushed Status = "pushed"
)

// Statuses returns all valid test case statuses.
func Statuses() []Status {
	return []Status{
		StatusPreview,
		StatusGenerated,
		StatusStale,
		StatusRejected,
		StatusPushed,
	}
}

// transitions is the closed set of permitted status changes. Rejected and
// pushed are terminal for handler-driven moves; a requirement text update
// writes stale directly, so even pushed cases get flagged for re-review
// without reopening them to the decide flow.
var transitions = map[Status]map[Status]bool{
	StatusPreview: {
		StatusGenerated: true,
		StatusStale:     true,
		StatusRejected:  true,
	},
	StatusGenerated: {
		StatusStale:    true,
		StatusRejected: true,
		StatusPushed:   true,
	},
	StatusStale: {
		StatusGenerated: true,
		StatusRejected:  true,
	},
	StatusRejected: {},
	StatusPushed:   {},
}

// Valid reports whether s is a recognized status value.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether the status change from s to target is permitted.
func (s Status) CanTransition(target Status) bool {
	return transitions[s][target]
}

// UnmarshalJSON validates that the value is a recognized status.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	status := Status(raw)
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}

	*s = status
	return nil
}

// TestType classifies the verification strategy of a generated test case.
type TestType string

const (
	TypePositive TestType = "positive"
	TypeNegative TestType = "negative"
	TypeBoundary TestType = "boundary"
)

// TestTypes returns all valid test types.
func TestTypes() []TestType {
	return []TestType{TypePositive, TypeNegative, TypeBoundary}
}

// Valid reports whether t is a recognized test type.
func (t TestType) Valid() bool {
	switch t {
	case TypePositive, TypeNegative, TypeBoundary:
		return true
	}
	return false
}

// UnmarshalJSON validates that the value is a recognized test type.
func (t *TestType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	tt := TestType(raw)
	if !tt.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTestType, raw)
	}

	*t = tt
	return nil
}
