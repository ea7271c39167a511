package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdriscoll/mentora-api/internal/domain"
	"github.com/kdriscoll/mentora-api/internal/service/auth"
	"github.com/kdriscoll/mentora-api/internal/store"
)

// mockUserStore is a hand-written store.UserStore test double.
type mockUserStore struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	updateFn     func(ctx context.Context, user *domain.User) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error

	updateCalls int
	deleteCalls int
	withTxCalls int
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	m.withTxCalls++
	return m
}

// mockVerifier is a hand-written auth.PasswordVerifier test double.
type mockVerifier struct {
	compareFn func(hashedPassword, password string) error
}

func (m *mockVerifier) Compare(hashedPassword, password string) error {
	if m.compareFn != nil {
		return m.compareFn(hashedPassword, password)
	}
	return nil
}

// newTestUserService builds a userService whose transaction helper runs
// the callback directly, so no database is needed.
func newTestUserService(t *testing.T, userStore store.UserStore, verifier auth.PasswordVerifier) *userService {
	t.Helper()
	return &userService{
		userStore: userStore,
		verifier:  verifier,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		runInTx: func(ctx context.Context, db *sql.DB, fn store.TxFn) error {
			return fn(ctx, nil)
		},
	}
}

func TestNewUserService(t *testing.T) {
	db := &sql.DB{}
	userStore := &mockUserStore{}
	verifier := &mockVerifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name      string
		db        *sql.DB
		userStore store.UserStore
		verifier  auth.PasswordVerifier
		logger    *slog.Logger
		wantErr   bool
	}{
		{"all dependencies", db, userStore, verifier, logger, false},
		{"nil db", nil, userStore, verifier, logger, true},
		{"nil user store", db, nil, verifier, logger, true},
		{"nil verifier", db, userStore, nil, logger, true},
		{"nil logger", db, userStore, verifier, nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUserService(tc.db, tc.userStore, tc.verifier, tc.logger)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChangePasswordSuccess(t *testing.T) {
	userID := uuid.New()

	var updated *domain.User
	userStore := &mockUserStore{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			require.Equal(t, userID, id)
			return &domain.User{ID: id, Email: "user@example.com", HashedPassword: "stored-hash"}, nil
		},
		updateFn: func(ctx context.Context, user *domain.User) error {
			updated = user
			return nil
		},
	}
	verifier := &mockVerifier{
		compareFn: func(hashedPassword, password string) error {
			require.Equal(t, "stored-hash", hashedPassword)
			require.Equal(t, "old-password-123", password)
			return nil
		},
	}
	svc := newTestUserService(t, userStore, verifier)

	err := svc.ChangePassword(context.Background(), userID, "old-password-123", "new-password-456")
	require.NoError(t, err)

	// The store receives the plaintext replacement and hashes it itself.
	require.NotNil(t, updated)
	assert.Equal(t, "new-password-456", updated.Password)
	assert.Equal(t, 1, userStore.updateCalls)

	// Both the read and the write go through the transactional store.
	assert.Equal(t, 1, userStore.withTxCalls)
}

func TestChangePasswordWrongCurrentPassword(t *testing.T) {
	userStore := &mockUserStore{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Email: "user@example.com", HashedPassword: "stored-hash"}, nil
		},
	}
	verifier := &mockVerifier{
		compareFn: func(hashedPassword, password string) error {
			return errors.New("hashedPassword is not the hash of the given password")
		},
	}
	svc := newTestUserService(t, userStore, verifier)

	err := svc.ChangePassword(context.Background(), uuid.New(), "wrong-password", "new-password-456")
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.Equal(t, 0, userStore.updateCalls)
}

func TestChangePasswordUserNotFound(t *testing.T) {
	svc := newTestUserService(t, &mockUserStore{}, &mockVerifier{})

	err := svc.ChangePassword(context.Background(), uuid.New(), "old-password-123", "new-password-456")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestChangePasswordUpdateFailure(t *testing.T) {
	userStore := &mockUserStore{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Email: "user@example.com", HashedPassword: "stored-hash"}, nil
		},
		updateFn: func(ctx context.Context, user *domain.User) error {
			return store.ErrEmailExists
		},
	}
	svc := newTestUserService(t, userStore, &mockVerifier{})

	err := svc.ChangePassword(context.Background(), uuid.New(), "old-password-123", "new-password-456")
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestDeleteAccountSuccess(t *testing.T) {
	userID := uuid.New()
	userStore := &mockUserStore{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			require.Equal(t, userID, id)
			return nil
		},
	}
	svc := newTestUserService(t, userStore, &mockVerifier{})

	err := svc.DeleteAccount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, userStore.deleteCalls)
	assert.Equal(t, 1, userStore.withTxCalls)
}

func TestDeleteAccountNotFound(t *testing.T) {
	userStore := &mockUserStore{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			return store.ErrUserNotFound
		},
	}
	svc := newTestUserService(t, userStore, &mockVerifier{})

	err := svc.DeleteAccount(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
