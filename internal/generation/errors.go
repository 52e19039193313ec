package generation

import (
	"errors"
	"net/http"

	"github.com/reqsmith/casegen/internal/oracle"
	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/internal/testcases"
)

// Domain errors for the generation stage.
var (
	ErrNoTestTypes            = errors.New("at least one test type is required")
	ErrNoApprovedRequirements = errors.New("document has no approved requirements")
	ErrAlreadyRegenerated     = errors.New("test case was already regenerated")
)

// MapHTTPStatus maps generation stage errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNoTestTypes) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNoApprovedRequirements) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrAlreadyRegenerated) {
		return http.StatusConflict
	}
	if oracle.IsValidation(err) {
		return http.StatusBadGateway
	}
	if errors.Is(err, testcases.ErrNotFound) ||
		errors.Is(err, testcases.ErrInvalidTestType) {
		return testcases.MapHTTPStatus(err)
	}
	if errors.Is(err, requirements.ErrNotFound) {
		return requirements.MapHTTPStatus(err)
	}
	return http.StatusInternalServerError
}
