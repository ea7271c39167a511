// Package service holds application services that coordinate stores and
// auth primitives on behalf of the API layer.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kdriscoll/mentora-api/internal/service/auth"
	"github.com/kdriscoll/mentora-api/internal/store"
)

// ErrWrongPassword indicates the supplied current password does not match
// the stored credential.
var ErrWrongPassword = errors.New("current password does not match")

// UserService exposes account maintenance operations for an
// authenticated user.
type UserService interface {
	// ChangePassword verifies the user's current password and replaces it
	// with newPassword. The read, verify, and update happen in one
	// transaction. Returns ErrWrongPassword on a mismatch and
	// store.ErrUserNotFound when the user does not exist.
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error

	// DeleteAccount removes the user's account. Returns
	// store.ErrUserNotFound when the user does not exist.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// userService implements UserService on top of the user store.
type userService struct {
	db        *sql.DB
	userStore store.UserStore
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
	runInTx   func(ctx context.Context, db *sql.DB, fn store.TxFn) error // injectable for tests
}

var _ UserService = (*userService)(nil)

// NewUserService creates a UserService backed by the given database and
// user store.
func NewUserService(
	db *sql.DB,
	userStore store.UserStore,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	if userStore == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if verifier == nil {
		return nil, fmt.Errorf("password verifier cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &userService{
		db:        db,
		userStore: userStore,
		verifier:  verifier,
		logger:    logger.With("component", "user_service"),
		runInTx:   store.RunInTransaction,
	}, nil
}

// ChangePassword implements UserService.
func (s *userService) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	currentPassword, newPassword string,
) error {
	return s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if err := s.verifier.Compare(user.HashedPassword, currentPassword); err != nil {
			return ErrWrongPassword
		}

		// Setting the plaintext password makes the store re-hash on update.
		user.Password = newPassword
		if err := txStore.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}

		s.logger.InfoContext(ctx, "password changed", "user_id", userID)
		return nil
	})
}

// DeleteAccount implements UserService.
func (s *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Delete(ctx, userID); err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "account deleted", "user_id", userID)
		return nil
	})
}
