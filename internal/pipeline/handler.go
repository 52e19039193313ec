package pipeline

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/internal/documents"
	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/pkg/handlers"
	"github.com/reqsmith/casegen/pkg/routes"
)

// Handler provides HTTP endpoints for session-level pipeline operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// AutoApproveRequest optionally overrides the default approval threshold.
type AutoApproveRequest struct {
	Threshold *float64 `json:"threshold,omitempty"`
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "pipeline"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for pipeline endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/pipeline",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/start", Handler: h.Start},
			{Method: "GET", Pattern: "/{sessionID}/status", Handler: h.Status},
			{Method: "POST", Pattern: "/{sessionID}/auto-approve", Handler: h.AutoApprove},
		},
	}
}

// Start uploads a document and runs extraction in one call.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	cmd, err := documents.ParseUploadForm(r, h.maxUploadSize, h.logger)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Start(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Status reports session progress across the pipeline stages.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("sessionID"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrUnknownSession)
		return
	}

	report, err := h.sys.Status(r.Context(), sessionID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

// AutoApprove promotes high-confidence extracted requirements session-wide.
func (h *Handler) AutoApprove(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("sessionID"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrUnknownSession)
		return
	}

	var req AutoApproveRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
	}

	threshold := requirements.ApprovalThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	result, err := h.sys.AutoApprove(r.Context(), sessionID, threshold)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
