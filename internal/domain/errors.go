package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyPrompt is returned when a user prompt is empty or contains
	// only whitespace. This is a recoverable input error: the user can
	// correct the prompt and resubmit.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrUnknownCategory is returned when a content category has no
	// registered prompt template. This indicates a programmer error:
	// every category the application exposes must be registered.
	ErrUnknownCategory = errors.New("unknown content category")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyFilename is returned when an export is requested without a filename.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrEmptyTitle is returned when an export is requested without a title.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError provides field-level context for validation failures.
type ValidationError struct {
	Field   string // The field that failed validation
	Message string // Human-readable description of the failure
	Err     error  // Sentinel error for errors.Is checks
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap returns the wrapped sentinel error to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
