package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kdriscoll/mentora-api/internal/controller"
	"github.com/kdriscoll/mentora-api/internal/domain"
	"github.com/kdriscoll/mentora-api/internal/export"
	"github.com/kdriscoll/mentora-api/internal/generation"
	"github.com/kdriscoll/mentora-api/internal/service"
	"github.com/kdriscoll/mentora-api/internal/service/auth"
	"github.com/kdriscoll/mentora-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "expired token", err: auth.ErrExpiredToken, want: http.StatusUnauthorized},
		{name: "token not yet valid", err: auth.ErrTokenNotYetValid, want: http.StatusUnauthorized},
		{name: "missing token", err: auth.ErrMissingToken, want: http.StatusUnauthorized},
		{name: "invalid refresh token", err: auth.ErrInvalidRefreshToken, want: http.StatusUnauthorized},
		{name: "wrong token type", err: auth.ErrWrongTokenType, want: http.StatusUnauthorized},
		{name: "wrong password", err: service.ErrWrongPassword, want: http.StatusUnauthorized},
		{name: "unauthorized", err: domain.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "user not found", err: store.ErrUserNotFound, want: http.StatusNotFound},
		{name: "email exists", err: store.ErrEmailExists, want: http.StatusConflict},
		{name: "export in progress", err: controller.ErrExportInProgress, want: http.StatusConflict},
		{name: "export before ready", err: controller.ErrNotReady, want: http.StatusConflict},
		{name: "empty prompt", err: domain.ErrEmptyPrompt, want: http.StatusBadRequest},
		{name: "unknown category", err: domain.ErrUnknownCategory, want: http.StatusBadRequest},
		{name: "empty filename", err: domain.ErrEmptyFilename, want: http.StatusBadRequest},
		{name: "content blocked", err: generation.ErrContentBlocked, want: http.StatusUnprocessableEntity},
		{name: "upstream failure", err: generation.ErrUpstream, want: http.StatusBadGateway},
		{name: "invalid response", err: generation.ErrInvalidResponse, want: http.StatusBadGateway},
		{name: "auth configuration", err: generation.ErrAuthConfiguration, want: http.StatusServiceUnavailable},
		{name: "export failure", err: export.ErrExport, want: http.StatusInternalServerError},
		{name: "unknown error", err: assert.AnError, want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToStatusCodeWrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("pipeline: %w", generation.ErrUpstream)
	assert.Equal(t, http.StatusBadGateway, MapErrorToStatusCode(wrapped))
}

func TestGetSafeErrorMessageNeverEchoesInternalDetail(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("connection to 10.0.0.5:5432 refused: %w", assert.AnError)
	msg := GetSafeErrorMessage(err)

	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "10.0.0.5")
}

func TestGetSafeErrorMessageNil(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}
