package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Level classifies a notice for presentation.
type Level string

// Notice severity levels.
const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is one user-visible notification.
type Notice struct {
	// ID is a unique identifier for this notice.
	ID uuid.UUID `json:"id"`

	// Level indicates whether the notice reports success or failure.
	Level Level `json:"level"`

	// Message is the user-facing text. It must never carry raw internal
	// error detail; that belongs in operator logs.
	Message string `json:"message"`

	// CreatedAt is when the notice was emitted.
	CreatedAt time.Time `json:"created_at"`
}

// NewNotice creates a Notice with a fresh ID and timestamp.
func NewNotice(level Level, message string) Notice {
	return Notice{
		ID:        uuid.New(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

// Handler receives notices. Implementations must not block.
type Handler interface {
	// HandleNotice processes the given notice within the provided context.
	HandleNotice(ctx context.Context, notice Notice)
}

// Notifier publishes notices to registered handlers.
type Notifier interface {
	// Notify delivers the notice to all registered handlers.
	Notify(ctx context.Context, notice Notice)
}
