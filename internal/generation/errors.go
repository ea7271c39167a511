package generation

import "errors"

// Common errors returned by text-generation adapters.
var (
	// ErrAuthConfiguration is returned when the model API credential is
	// missing or invalid. Adapters check the credential before any
	// network call so this fails fast at construction where possible.
	ErrAuthConfiguration = errors.New("model API credential missing or invalid")

	// ErrUpstream is returned when the remote model call errors or
	// times out. The failure is surfaced immediately; the caller may
	// resubmit, but no automatic retry is performed.
	ErrUpstream = errors.New("upstream model call failed")

	// ErrContentBlocked is returned when the model blocks the content
	// due to safety filters.
	ErrContentBlocked = errors.New("content blocked by model safety filters")

	// ErrInvalidResponse is returned when the model response is empty
	// or cannot be interpreted.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
