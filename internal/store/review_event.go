package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// ReviewEventStore defines the interface for review event persistence.
// Events are append-only: each scheduled review produces exactly one event
// and events are never updated or deleted by the application.
type ReviewEventStore interface {
	// Create saves a new review event.
	// Returns validation errors from the domain ReviewEvent if data is
	// invalid.
	Create(ctx context.Context, event *domain.ReviewEvent) error

	// CountByUser returns the total number of review events recorded for
	// the given user. Used for review-count achievements.
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// ListByCard retrieves the review history of a card, most recent first.
	// Returns an empty slice when the card has never been reviewed.
	ListByCard(ctx context.Context, cardID uuid.UUID) ([]*domain.ReviewEvent, error)

	// WithTx returns a new ReviewEventStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) ReviewEventStore
}
