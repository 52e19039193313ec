package extraction

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/pkg/handlers"
	"github.com/reqsmith/casegen/pkg/routes"
)

// ErrInvalidDocID indicates a malformed document id path parameter.
var ErrInvalidDocID = errors.New("invalid document id")

// Handler provides HTTP endpoints for the extraction stage.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "extraction"),
	}
}

// Routes returns the route group definition for extraction endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/extraction",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{docID}", Handler: h.Extract},
		},
	}
}

// Extract runs the extraction pipeline for a document.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	docID, err := uuid.Parse(r.PathValue("docID"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidDocID)
		return
	}

	result, err := h.sys.Extract(r.Context(), docID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
