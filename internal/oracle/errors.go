package oracle

import (
	"errors"
	"fmt"

	"github.com/reqsmith/casegen/internal/prompts"
)

// ErrUnknownTestType indicates a generate call with an unsupported test type.
var ErrUnknownTestType = errors.New("test type must be positive, negative, or boundary")

// ValidationError indicates the oracle produced output that failed schema
// validation. It is not transient; callers should not retry it. Trace holds
// the exchange that produced the invalid output.
type ValidationError struct {
	Stage  prompts.Stage
	Reason string
	Trace  Trace
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s output invalid: %s", e.Stage, e.Reason)
}

// TraceOf returns the oracle exchange attached to a validation error, or a
// zero trace when err is not one.
func TraceOf(err error) Trace {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Trace
	}
	return Trace{}
}

func attachTrace(err error, trace Trace) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		ve.Trace = trace
	}
}

// IsValidation reports whether err wraps an oracle ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
