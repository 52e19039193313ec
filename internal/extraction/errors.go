package extraction

import (
	"errors"
	"net/http"

	"github.com/reqsmith/casegen/internal/documents"
)

// ErrNoParagraphs indicates the document text contained no extractable blocks.
var ErrNoParagraphs = errors.New("document contains no requirement paragraphs")

// MapHTTPStatus maps extraction stage errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNoParagraphs) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, documents.ErrNotFound) ||
		errors.Is(err, documents.ErrEmptyText) {
		return documents.MapHTTPStatus(err)
	}
	return http.StatusInternalServerError
}
