package api

import (
	"github.com/google/uuid"

	"github.com/kdriscoll/mentora-api/internal/controller"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user.
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization.
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT token used to obtain new access tokens.
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires.
	ExpiresAt string `json:"expires_at"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest defines the payload for the password change
// endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=12,max=72"`
}

// SubmitPromptRequest defines the payload for submitting a topic to a
// feature screen.
type SubmitPromptRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// SubmitPromptResponse acknowledges an accepted submission. Generation
// proceeds asynchronously; clients poll the feature state.
type SubmitPromptResponse struct {
	Accepted bool                       `json:"accepted"`
	State    controller.GenerationState `json:"state"`
}

// ExportRequest defines the payload for exporting the current result.
type ExportRequest struct {
	Filename string `json:"filename" validate:"required"`
}

// ExportResponse acknowledges an accepted export. The export proceeds
// asynchronously; the artifact appears in the feature state when done.
type ExportResponse struct {
	Accepted bool                   `json:"accepted"`
	State    controller.ExportState `json:"state"`
}

// GenerateRequest defines the payload for the synchronous generation
// endpoint.
type GenerateRequest struct {
	Category string `json:"category" validate:"required"`
	Prompt   string `json:"prompt"   validate:"required"`
}

// GenerateResponse carries a synchronous generation result.
type GenerateResponse struct {
	Text       string `json:"text"`
	DurationMs int64  `json:"duration_ms"`
}
