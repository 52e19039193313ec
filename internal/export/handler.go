package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/documents"
	"github.com/reqsmith/casegen/pkg/handlers"
	"github.com/reqsmith/casegen/pkg/routes"
)

// Handler provides HTTP endpoints for tracker push and CSV export.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "export"),
	}
}

// Routes returns the route group definition for export endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/export",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/tracker", Handler: h.PushTracker},
			{Method: "GET", Pattern: "/traceability/{docID}", Handler: h.Traceability},
			{Method: "GET", Pattern: "/test-cases/{docID}", Handler: h.TestCases},
		},
	}
}

// PushTracker creates tracker issues for the requested test cases.
func (h *Handler) PushTracker(w http.ResponseWriter, r *http.Request) {
	var cmd PushCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.PushTracker(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Traceability streams the requirement-to-test-case matrix as CSV.
func (h *Handler) Traceability(w http.ResponseWriter, r *http.Request) {
	h.respondCSV(w, r, "traceability", h.sys.TraceabilityCSV)
}

// TestCases streams the generated test case dump as CSV.
func (h *Handler) TestCases(w http.ResponseWriter, r *http.Request) {
	h.respondCSV(w, r, "test-cases", h.sys.TestCasesCSV)
}

func (h *Handler) respondCSV(w http.ResponseWriter, r *http.Request, name string, project func(ctx context.Context, docID uuid.UUID) ([]byte, error)) {
	docID, err := uuid.Parse(r.PathValue("docID"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, documents.ErrNotFound)
		return
	}

	data, err := project(r.Context(), docID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s-%s.csv", name, docID)),
	)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
