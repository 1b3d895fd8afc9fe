package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// CardWithSchedule pairs a card with its scheduling state. Session selection
// needs both: the card supplies the content, the schedule decides whether it
// is due, new, or struggling.
type CardWithSchedule struct {
	Card     *domain.Card
	Schedule *domain.CardSchedule
}

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card to the store.
	// Card creation is coordinated with schedule creation at the service
	// layer; run both inside a single transaction via WithTx so a card
	// never exists without its schedule.
	// Returns validation errors from the domain Card if data is invalid.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// Update modifies an existing card's content fields (type, front, back,
	// notes). Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card by its ID. The card's schedule and review
	// events are removed by database-level cascade deletes.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByDeck retrieves all cards in the given deck, ordered by creation
	// time. Returns an empty slice when the deck has no cards.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)

	// ListWithSchedules retrieves all of a user's cards joined with their
	// schedules. When deckID is non-nil the result is restricted to that
	// deck. Returns an empty slice when nothing matches.
	ListWithSchedules(
		ctx context.Context,
		userID uuid.UUID,
		deckID *uuid.UUID,
	) ([]CardWithSchedule, error)

	// WithTx returns a new CardStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) CardStore
}
