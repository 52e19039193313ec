package requirements

import (
	"errors"
	"net/http"
)

// Domain errors for requirement operations.
var (
	ErrNotFound          = errors.New("requirement not found")
	ErrDuplicate         = errors.New("requirement already exists")
	ErrInvalidStatus     = errors.New("invalid requirement status")
	ErrInvalidTransition = errors.New("status transition not permitted")
	ErrVersionConflict   = errors.New("requirement was modified concurrently")
	ErrArchived          = errors.New("requirement revision is archived")
	ErrSchemaVersion     = errors.New("unsupported structured blob schema version")
	ErrEmptyText         = errors.New("requirement text is empty")
)

// MapHTTPStatus maps requirement domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrVersionConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrArchived) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrEmptyText) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrSchemaVersion) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
