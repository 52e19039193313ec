package judge

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/testcases"
	"github.com/reqsmith/casegen/pkg/handlers"
	"github.com/reqsmith/casegen/pkg/routes"
)

// Handler provides HTTP endpoints for the judge stage.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// BatchRequest is the request body for batch evaluation.
type BatchRequest struct {
	TestCaseIDs []uuid.UUID `json:"test_case_ids"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "judge"),
	}
}

// Routes returns the route group definition for judge endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/judge",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{id}", Handler: h.Evaluate},
			{Method: "POST", Pattern: "/batch", Handler: h.EvaluateBatch},
			{Method: "GET", Pattern: "/{id}/scores", Handler: h.Scores},
		},
	}
}

// Evaluate judges one test case against its source requirement.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, testcases.ErrNotFound)
		return
	}

	eval, err := h.sys.Evaluate(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, eval)
}

// EvaluateBatch judges many test cases with per-item error reporting.
func (h *Handler) EvaluateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.EvaluateBatch(r.Context(), req.TestCaseIDs)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Scores returns the latest judge verdict for a test case.
func (h *Handler) Scores(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, testcases.ErrNotFound)
		return
	}

	scores, err := h.sys.LatestScores(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, scores)
}
