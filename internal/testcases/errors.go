package testcases

import (
	"errors"
	"net/http"
)

// Domain errors for test case operations.
var (
	ErrNotFound          = errors.New("test case not found")
	ErrDuplicate         = errors.New("test case already exists")
	ErrInvalidStatus     = errors.New("invalid test case status")
	ErrInvalidTestType   = errors.New("test type must be positive, negative, or boundary")
	ErrInvalidDecision   = errors.New("decision must be approve, reject, or regenerate")
	ErrInvalidTransition = errors.New("status transition not permitted")
	ErrSchemaVersion     = errors.New("unsupported content blob schema version")
)

// MapHTTPStatus maps test case domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidTransition) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidTestType) ||
		errors.Is(err, ErrInvalidDecision) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrSchemaVersion) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
