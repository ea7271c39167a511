package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kdriscoll/mentora-api/internal/api/shared"
	"github.com/kdriscoll/mentora-api/internal/controller"
	"github.com/kdriscoll/mentora-api/internal/domain"
	"github.com/kdriscoll/mentora-api/internal/export"
	"github.com/kdriscoll/mentora-api/internal/session"
)

// FeatureHandler exposes the feature screens over HTTP: prompt
// submission, state polling, export, and artifact download. All routes
// require an authenticated user.
type FeatureHandler struct {
	registry  *controller.Registry
	exporter  *export.Exporter
	validator *validator.Validate
}

// NewFeatureHandler creates a new FeatureHandler with the given dependencies.
func NewFeatureHandler(registry *controller.Registry, exporter *export.Exporter) *FeatureHandler {
	return &FeatureHandler{
		registry:  registry,
		exporter:  exporter,
		validator: validator.New(),
	}
}

// SubmitPrompt handles POST /features/{category}/prompt. The submission
// is accepted immediately; generation runs asynchronously and the client
// polls GetState for the outcome.
func (h *FeatureHandler) SubmitPrompt(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.resolveController(w, r)
	if !ok {
		return
	}

	var req SubmitPromptRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := ctrl.Submit(r.Context(), req.Prompt); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, SubmitPromptResponse{
		Accepted: true,
		State:    controller.StateLoading,
	})
}

// GetState handles GET /features/{category}. It returns the controller's
// current snapshot: generation state, result, export state, last
// artifact, and recent notices.
func (h *FeatureHandler) GetState(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.resolveController(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ctrl.Snapshot())
}

// Export handles POST /features/{category}/export. The export is
// accepted immediately when a result is ready; assembly runs
// asynchronously and the artifact appears in the feature state.
func (h *FeatureHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.resolveController(w, r)
	if !ok {
		return
	}

	var req ExportRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := ctrl.Export(r.Context(), req.Filename); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, ExportResponse{
		Accepted: true,
		State:    controller.ExportStateExporting,
	})
}

// DownloadExport handles GET /exports/{name}, streaming a previously
// exported document.
func (h *FeatureHandler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	name := chi.URLParam(r, "name")
	file, err := h.exporter.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Export not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidID) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid export name")
			return
		}
		slog.Error("failed to open export", "error", err, "name", name)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to open export")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close export file", "error", err)
		}
	}()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if _, err := io.Copy(w, file); err != nil {
		slog.Error("failed to stream export", "error", err, "name", name)
	}
}

// resolveController extracts the authenticated user and path category
// and returns the feature controller for the pair. It writes an error
// response and returns false on failure.
func (h *FeatureHandler) resolveController(
	w http.ResponseWriter,
	r *http.Request,
) (*controller.Controller, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return nil, false
	}

	category, err := getPathCategory(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	ctrl, err := h.registry.Get(session.User{ID: userID}, category)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	return ctrl, true
}
