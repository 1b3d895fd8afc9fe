package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// AchievementStore defines the interface for achievement award persistence.
type AchievementStore interface {
	// Award records that a user earned an achievement. Awarding the same
	// (user, key) pair twice is a no-op so evaluation can run repeatedly
	// without duplicating awards.
	Award(ctx context.Context, achievement *domain.Achievement) error

	// ListByUser retrieves all achievements awarded to the given user,
	// ordered by award time. Returns an empty slice when the user has
	// earned none.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error)

	// ListKeysByUser retrieves the set of achievement keys already awarded
	// to the given user.
	ListKeysByUser(ctx context.Context, userID uuid.UUID) (map[string]bool, error)

	// WithTx returns a new AchievementStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) AchievementStore
}
