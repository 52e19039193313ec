package export

import (
	"errors"
	"net/http"

	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/internal/testcases"
)

var (
	ErrTrackerConfig = errors.New("tracker configuration incomplete")
	ErrNoTestCases   = errors.New("no test case ids provided")
)

// MapHTTPStatus maps export errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrTrackerConfig), errors.Is(err, ErrNoTestCases):
		return http.StatusBadRequest
	case errors.Is(err, testcases.ErrNotFound), errors.Is(err, requirements.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, testcases.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
