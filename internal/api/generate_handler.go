package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/kdriscoll/mentora-api/internal/api/shared"
	"github.com/kdriscoll/mentora-api/internal/domain"
	"github.com/kdriscoll/mentora-api/internal/pipeline"
)

// GenerateHandler exposes the generation pipeline synchronously for
// clients that do not need the feature screen state machine.
type GenerateHandler struct {
	pipeline  *pipeline.Pipeline
	validator *validator.Validate
}

// NewGenerateHandler creates a new GenerateHandler with the given dependencies.
func NewGenerateHandler(p *pipeline.Pipeline) *GenerateHandler {
	return &GenerateHandler{
		pipeline:  p,
		validator: validator.New(),
	}
}

// Generate handles POST /generate. The call blocks until the model
// responds or fails.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req GenerateRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.pipeline.Generate(r.Context(), category, req.Prompt)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{
		Text:       result.Text,
		DurationMs: result.DurationMs(),
	})
}
