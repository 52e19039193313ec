package judge

import (
	"errors"
	"net/http"

	"github.com/reqsmith/casegen/internal/oracle"
	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/internal/testcases"
)

// MapHTTPStatus maps judge stage errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, testcases.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, requirements.ErrNotFound) {
		return http.StatusNotFound
	}
	if oracle.IsValidation(err) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
