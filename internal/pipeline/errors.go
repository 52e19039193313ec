package pipeline

import (
	"errors"
	"net/http"

	"github.com/reqsmith/casegen/internal/documents"
	"github.com/reqsmith/casegen/internal/extraction"
)

// ErrUnknownSession indicates no documents belong to the session.
var ErrUnknownSession = errors.New("upload session not found")

// MapHTTPStatus maps pipeline errors to appropriate HTTP status codes,
// delegating to the stage that produced them.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnknownSession) {
		return http.StatusNotFound
	}
	if status := documents.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return extraction.MapHTTPStatus(err)
}
