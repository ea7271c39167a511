package events

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockHandler records every notice it receives.
type mockHandler struct {
	received []Notice
}

func (m *mockHandler) HandleNotice(ctx context.Context, notice Notice) {
	m.received = append(m.received, notice)
}

func TestInMemoryNotifier(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("notify with no handlers", func(t *testing.T) {
		notifier := NewInMemoryNotifier(logger)

		// Must not panic or block.
		notifier.Notify(context.Background(), NewNotice(LevelInfo, "generation complete"))
	})

	t.Run("notify fans out to all handlers", func(t *testing.T) {
		notifier := NewInMemoryNotifier(logger)

		handler1 := &mockHandler{}
		handler2 := &mockHandler{}
		notifier.RegisterHandler(handler1)
		notifier.RegisterHandler(handler2)

		notice := NewNotice(LevelError, "generation failed")
		notifier.Notify(context.Background(), notice)

		assert.Len(t, handler1.received, 1)
		assert.Len(t, handler2.received, 1)
		assert.Equal(t, notice.ID, handler1.received[0].ID)
	})
}

func TestNewNotice(t *testing.T) {
	notice := NewNotice(LevelInfo, "export complete")

	assert.NotEqual(t, notice.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, LevelInfo, notice.Level)
	assert.Equal(t, "export complete", notice.Message)
	assert.False(t, notice.CreatedAt.IsZero())
}
