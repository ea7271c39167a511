package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryNotifier is a simple Notifier that stores registered handlers
// in memory and dispatches notices to them synchronously.
type InMemoryNotifier struct {
	handlers []Handler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// Ensure InMemoryNotifier implements the Notifier interface.
var _ Notifier = (*InMemoryNotifier)(nil)

// NewInMemoryNotifier creates a new InMemoryNotifier.
func NewInMemoryNotifier(logger *slog.Logger) *InMemoryNotifier {
	return &InMemoryNotifier{
		handlers: make([]Handler, 0),
		logger:   logger.With("component", "in_memory_notifier"),
	}
}

// RegisterHandler adds a new handler to receive notices.
func (n *InMemoryNotifier) RegisterHandler(handler Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, handler)
	n.logger.Debug("registered notice handler", "handler_count", len(n.handlers))
}

// Notify delivers the notice to every registered handler.
func (n *InMemoryNotifier) Notify(ctx context.Context, notice Notice) {
	n.mu.RLock()
	handlers := make([]Handler, len(n.handlers))
	copy(handlers, n.handlers)
	n.mu.RUnlock()

	for _, handler := range handlers {
		handler.HandleNotice(ctx, notice)
	}
}

// LogHandler records every notice in the structured log, giving
// operators the diagnostic trail the sanitized user message omits.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler writing to the given logger.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	return &LogHandler{logger: logger.With("component", "notice_log")}
}

// HandleNotice implements the Handler interface.
func (h *LogHandler) HandleNotice(ctx context.Context, notice Notice) {
	level := slog.LevelInfo
	if notice.Level == LevelError {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, "user notice",
		"notice_id", notice.ID,
		"message", notice.Message)
}
