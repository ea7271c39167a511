package api

import (
	"errors"
	"net/http"

	"github.com/kdriscoll/mentora-api/internal/api/shared"
	"github.com/kdriscoll/mentora-api/internal/controller"
	"github.com/kdriscoll/mentora-api/internal/domain"
	"github.com/kdriscoll/mentora-api/internal/export"
	"github.com/kdriscoll/mentora-api/internal/generation"
	"github.com/kdriscoll/mentora-api/internal/service"
	"github.com/kdriscoll/mentora-api/internal/service/auth"
	"github.com/kdriscoll/mentora-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, controller.ErrExportInProgress),
		errors.Is(err, controller.ErrNotReady):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrEmptyPrompt),
		errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrEmptyFilename),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// The model refused the content
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	// Upstream model failures
	case errors.Is(err, generation.ErrUpstream),
		errors.Is(err, generation.ErrInvalidResponse):
		return http.StatusBadGateway

	// Misconfigured credentials surface as service unavailability
	case errors.Is(err, generation.ErrAuthConfiguration),
		errors.Is(err, generation.ErrInvalidConfig):
		return http.StatusServiceUnavailable

	case errors.Is(err, export.ErrExport):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, service.ErrWrongPassword):
		return "Invalid credentials"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, controller.ErrNotReady):
		return "No generated content to export"

	case errors.Is(err, controller.ErrExportInProgress):
		return "An export is already in progress"

	case errors.Is(err, domain.ErrEmptyPrompt):
		return "Prompt cannot be empty"

	case errors.Is(err, domain.ErrUnknownCategory):
		return "Unknown content category"

	case errors.Is(err, domain.ErrEmptyFilename):
		return "Filename cannot be empty"

	case errors.Is(err, generation.ErrContentBlocked):
		return "The request was blocked by content safety filters"

	case errors.Is(err, generation.ErrUpstream),
		errors.Is(err, generation.ErrInvalidResponse):
		return "Content generation is temporarily unavailable"

	case errors.Is(err, generation.ErrAuthConfiguration),
		errors.Is(err, generation.ErrInvalidConfig):
		return "Content generation is not configured"

	case errors.Is(err, export.ErrExport):
		return "Export failed; no file was saved"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps an internal error to a status code and safe
// message and writes the response. An optional override message replaces
// the mapped safe message when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, overrideMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if overrideMessage != "" {
		message = overrideMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
