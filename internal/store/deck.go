package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
type DeckStore interface {
	// Create saves a new deck to the store.
	// Returns ErrDeckNameExists if the user already owns a deck with the
	// same name. Returns validation errors from the domain Deck if data is
	// invalid.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// ListByUser retrieves all decks owned by the given user, ordered by
	// name. Returns an empty slice when the user has no decks.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)

	// Update modifies an existing deck's mutable fields (name, description).
	// Returns ErrDeckNotFound if the deck does not exist.
	// Returns ErrDeckNameExists if the new name collides with another deck
	// owned by the same user.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes a deck by its ID. Cards in the deck, their schedules
	// and their review events are removed by database-level cascade deletes.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new DeckStore instance bound to the provided
	// transaction. The transaction is created and managed by the caller,
	// typically via RunInTransaction.
	WithTx(tx *sql.Tx) DeckStore
}
