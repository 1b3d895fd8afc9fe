package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/service/auth"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// UserService handles user registration and credential verification.
type UserService interface {
	// Register creates a new user with a hashed password and the default
	// preferences row, atomically. Returns ErrEmailTaken when the email is
	// already registered and domain validation errors for bad input.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate verifies an email/password pair, returning the user on
	// success and auth.ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// Verify interface compliance at compile time
var _ UserService = (*userServiceImpl)(nil)

type userServiceImpl struct {
	userStore store.UserStore
	prefStore store.PreferenceStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger

	// runTx executes a function within a transaction; injectable for tests.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewUserService creates a new UserService implementation.
func NewUserService(
	db *sql.DB,
	userStore store.UserStore,
	prefStore store.PreferenceStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) UserService {
	if db == nil {
		panic("db cannot be nil")
	}
	if userStore == nil || prefStore == nil {
		panic("stores cannot be nil")
	}
	if hasher == nil || verifier == nil {
		panic("hasher and verifier cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		prefStore: prefStore,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With(slog.String("component", "user_service")),
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}
}

// Register implements UserService.Register.
func (s *userServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, err
	}

	user.HashedPassword, err = s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	// The plaintext is never persisted; drop it before the store sees it.
	user.Password = ""

	prefs, err := domain.NewPreferences(user.ID)
	if err != nil {
		return nil, err
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.prefStore.WithTx(tx).Create(ctx, prefs)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		log.Error("failed to register user",
			slog.String("error", err.Error()),
			slog.String("email", email))
		return nil, &ServiceError{Operation: "register", Message: "transaction failed", Err: err}
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Authenticate implements UserService.Authenticate.
func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same error as a bad password so probing emails learns nothing.
			return nil, auth.ErrInvalidCredentials
		}
		log.Error("failed to look up user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return user, nil
}
