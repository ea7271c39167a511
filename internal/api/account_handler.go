package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/kdriscoll/mentora-api/internal/api/shared"
	"github.com/kdriscoll/mentora-api/internal/service"
)

// AccountHandler handles account maintenance requests for the
// authenticated user.
type AccountHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

// NewAccountHandler creates a new AccountHandler with the given dependencies.
func NewAccountHandler(userService service.UserService) *AccountHandler {
	return &AccountHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

// ChangePassword handles the PUT /account/password endpoint.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.userService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAccount handles the DELETE /account endpoint. Tokens already
// issued keep their lifetime; deletion only removes the stored user, so
// refresh attempts fail afterwards.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.userService.DeleteAccount(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
