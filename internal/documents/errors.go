package documents

import (
	"errors"
	"net/http"
)

// Domain errors for document operations.
var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicate    = errors.New("document already exists")
	ErrInvalidFile  = errors.New("invalid file upload")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrEmptyText    = errors.New("document contains no extractable text")
)

// MapHTTPStatus maps document domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrEmptyText) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
