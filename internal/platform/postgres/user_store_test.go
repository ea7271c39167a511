package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/kdriscoll/mentora-api/internal/domain"
	"github.com/kdriscoll/mentora-api/internal/store"
)

func TestCreateRejectsInvalidUserBeforeTouchingDatabase(t *testing.T) {
	t.Parallel()

	// A nil connection proves validation short-circuits before any query.
	userStore := NewPostgresUserStore(nil, 4)

	tests := []struct {
		name string
		user *domain.User
	}{
		{
			name: "empty email",
			user: &domain.User{ID: uuid.New(), Password: "correct-horse-battery"},
		},
		{
			name: "malformed email",
			user: &domain.User{ID: uuid.New(), Email: "not-an-email", Password: "correct-horse-battery"},
		},
		{
			name: "short password",
			user: &domain.User{ID: uuid.New(), Email: "user@example.com", Password: "short"},
		},
		{
			name: "missing id",
			user: &domain.User{Email: "user@example.com", Password: "correct-horse-battery"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := userStore.Create(context.Background(), tc.user)
			assert.ErrorIs(t, err, store.ErrInvalidEntity)
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: uniqueViolationCode}
	assert.True(t, isUniqueViolation(pgErr))

	wrapped := errors.Join(errors.New("exec failed"), pgErr)
	assert.True(t, isUniqueViolation(wrapped))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("plain error")))
	assert.False(t, isUniqueViolation(nil))
}

func TestIsNoRows(t *testing.T) {
	t.Parallel()

	assert.True(t, isNoRows(sql.ErrNoRows))
	assert.False(t, isNoRows(errors.New("other")))
}

func TestNewPostgresUserStoreDefaultsBcryptCost(t *testing.T) {
	t.Parallel()

	userStore := NewPostgresUserStore(nil, 0)
	assert.Greater(t, userStore.bcryptCost, 0)
}
