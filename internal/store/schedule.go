package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// ScheduleStore defines the interface for card schedule persistence. Every
// card has exactly one schedule row, created alongside the card.
type ScheduleStore interface {
	// Create saves a new schedule for a card.
	// Returns validation errors from the domain CardSchedule if data is
	// invalid.
	Create(ctx context.Context, schedule *domain.CardSchedule) error

	// Get retrieves the schedule for a card.
	// Returns ErrScheduleNotFound if no schedule exists.
	// This method does not lock the row; use GetForUpdate when the caller
	// intends to update it.
	Get(ctx context.Context, cardID uuid.UUID) (*domain.CardSchedule, error)

	// GetForUpdate retrieves the schedule for a card with a row-level lock
	// (SELECT ... FOR UPDATE). Must be called within a transaction; it
	// protects the review flow from concurrent schedule updates.
	// Returns ErrScheduleNotFound if no schedule exists.
	GetForUpdate(ctx context.Context, cardID uuid.UUID) (*domain.CardSchedule, error)

	// Update modifies an existing schedule. The CardID field identifies the
	// record to update.
	// Returns ErrScheduleNotFound if no schedule exists.
	Update(ctx context.Context, schedule *domain.CardSchedule) error

	// WithTx returns a new ScheduleStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) ScheduleStore
}
