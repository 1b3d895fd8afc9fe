package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// PreferenceStore defines the interface for user preference persistence.
// Every user has exactly one preferences row, created at registration.
type PreferenceStore interface {
	// Create saves a new preferences row for a user.
	// Returns validation errors from the domain Preferences if data is
	// invalid.
	Create(ctx context.Context, prefs *domain.Preferences) error

	// Get retrieves the preferences for a user.
	// Returns ErrPreferencesNotFound if no row exists.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Preferences, error)

	// Update modifies an existing preferences row, including the streak
	// fields. The UserID field identifies the record to update.
	// Returns ErrPreferencesNotFound if no row exists.
	Update(ctx context.Context, prefs *domain.Preferences) error

	// WithTx returns a new PreferenceStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) PreferenceStore
}
