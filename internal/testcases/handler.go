package testcases

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/pkg/handlers"
	"github.com/reqsmith/casegen/pkg/pagination"
	"github.com/reqsmith/casegen/pkg/routes"
)

// Handler provides HTTP endpoints for test case operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "testcases"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for test case endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/test-cases",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/statuses", Handler: h.Statuses},
			{Method: "GET", Pattern: "/pending", Handler: h.Pending},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/audit", Handler: h.Audit},
			{Method: "GET", Pattern: "/{id}/package", Handler: h.Package},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "POST", Pattern: "/decide", Handler: h.Decide},
			{Method: "POST", Pattern: "/decide/batch", Handler: h.BatchDecide},
		},
	}
}

// List returns a paginated list of test cases with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Statuses returns the closed set of test case lifecycle statuses.
func (h *Handler) Statuses(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Statuses())
}

// Pending returns the review queue of preview and stale test cases.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	var docID *uuid.UUID
	if d := r.URL.Query().Get("doc_id"); d != "" {
		id, err := uuid.Parse(d)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
			return
		}
		docID = &id
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil {
			limit = v
		}
	}

	items, err := h.sys.Pending(r.Context(), docID, limit)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Find returns a single test case by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	tc, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, tc)
}

// Audit returns the review history of the test case's owning requirement.
func (h *Handler) Audit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	trail, err := h.sys.Audit(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, trail)
}

// Package returns the full review context for a test case.
func (h *Handler) Package(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	pkg, err := h.sys.Package(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pkg)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching test cases.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Decide applies one human QA decision to a test case.
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	var cmd DecideCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	tc, err := h.sys.Decide(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, tc)
}

// BatchDecide applies one decision to many test cases, reporting per-item errors.
func (h *Handler) BatchDecide(w http.ResponseWriter, r *http.Request) {
	var cmd BatchDecideCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.BatchDecide(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
