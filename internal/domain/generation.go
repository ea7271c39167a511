package domain

import (
	"strings"
	"time"
)

// GenerationRequest describes one user-initiated generation round trip.
// Requests are created per user action and never persisted.
type GenerationRequest struct {
	Category   Category
	UserPrompt string
}

// NewGenerationRequest creates a validated GenerationRequest with the
// user prompt trimmed of surrounding whitespace.
func NewGenerationRequest(category Category, userPrompt string) (GenerationRequest, error) {
	req := GenerationRequest{
		Category:   category,
		UserPrompt: strings.TrimSpace(userPrompt),
	}
	if err := req.Validate(); err != nil {
		return GenerationRequest{}, err
	}
	return req, nil
}

// Validate checks that the request carries a known category and a
// non-empty prompt after trimming.
func (r GenerationRequest) Validate() error {
	if err := r.Category.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.UserPrompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// GenerationResult is the immutable outcome of one successful generation
// round trip. It is owned by the feature controller until superseded by
// the next request or discarded.
type GenerationResult struct {
	// Text is the normalized model output.
	Text string `json:"text"`

	// Duration is the wall-clock time spent in the model invocation.
	Duration time.Duration `json:"-"`
}

// DurationMs reports the invocation duration in whole milliseconds,
// the unit exposed to API clients.
func (r GenerationResult) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
