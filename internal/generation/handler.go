package generation

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/testcases"
	"github.com/reqsmith/casegen/pkg/handlers"
	"github.com/reqsmith/casegen/pkg/routes"
)

// Handler provides HTTP endpoints for the generation stage.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// PreviewRequest is the request body for preview generation. Empty TestTypes
// defaults to the full set.
type PreviewRequest struct {
	DocID     uuid.UUID             `json:"doc_id"`
	TestTypes []testcases.TestType  `json:"test_types,omitempty"`
}

// RegenerateBatchRequest is the request body for batch regeneration.
type RegenerateBatchRequest struct {
	TestCaseIDs []uuid.UUID `json:"test_case_ids"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "generation"),
	}
}

// Routes returns the route group definition for generation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/generation",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/preview", Handler: h.Preview},
			{Method: "POST", Pattern: "/confirm", Handler: h.Confirm},
			{Method: "POST", Pattern: "/regenerate/{id}", Handler: h.Regenerate},
			{Method: "POST", Pattern: "/regenerate", Handler: h.RegenerateBatch},
		},
	}
}

// Preview generates preview test cases for a document's approved requirements.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	types := req.TestTypes
	if len(types) == 0 {
		types = testcases.TestTypes()
	}

	result, err := h.sys.Preview(r.Context(), req.DocID, types)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Confirm promotes preview test cases to generated.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	var cmd ConfirmCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Confirm(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Regenerate re-runs the oracle for one test case.
func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, testcases.ErrNotFound)
		return
	}

	tc, err := h.sys.Regenerate(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, tc)
}

// RegenerateBatch regenerates many test cases with per-item error reporting.
func (h *Handler) RegenerateBatch(w http.ResponseWriter, r *http.Request) {
	var req RegenerateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.RegenerateBatch(r.Context(), req.TestCaseIDs)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
