package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStaticSource(t *testing.T) {
	user := User{ID: uuid.New(), Email: "student@example.com"}

	t.Run("authenticated", func(t *testing.T) {
		src := NewStatic(user)

		got, ok := src.Current()
		assert.True(t, ok)
		assert.Equal(t, user, got)
	})

	t.Run("anonymous", func(t *testing.T) {
		src := NewAnonymous()

		_, ok := src.Current()
		assert.False(t, ok)
	})
}

func TestMutableSource(t *testing.T) {
	user := User{ID: uuid.New(), Email: "student@example.com"}

	t.Run("starts unauthenticated", func(t *testing.T) {
		src := NewMutable()

		_, ok := src.Current()
		assert.False(t, ok)
	})

	t.Run("set and clear", func(t *testing.T) {
		src := NewMutable()

		src.Set(user, true)
		got, ok := src.Current()
		assert.True(t, ok)
		assert.Equal(t, user, got)

		src.Clear()
		_, ok = src.Current()
		assert.False(t, ok)
	})

	t.Run("notifies subscribers on change", func(t *testing.T) {
		src := NewMutable()

		var changes []bool
		unsubscribe := src.OnChange(func(_ User, ok bool) {
			changes = append(changes, ok)
		})

		src.Set(user, true)
		src.Clear()
		assert.Equal(t, []bool{true, false}, changes)

		// After unsubscribe no further notifications arrive.
		unsubscribe()
		src.Set(user, true)
		assert.Len(t, changes, 2)
	})
}
