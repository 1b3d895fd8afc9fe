package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// DeckStore implements the store.DeckStore interface using a PostgreSQL
// database as the storage backend.
type DeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDeckStore creates a new PostgreSQL implementation of the DeckStore
// interface. If logger is nil, the slog default is used.
func NewDeckStore(db store.DBTX, logger *slog.Logger) *DeckStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &DeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure DeckStore implements store.DeckStore interface
var _ store.DeckStore = (*DeckStore)(nil)

// Create implements store.DeckStore.Create.
func (s *DeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO decks (id, user_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		deck.ID,
		deck.UserID,
		deck.Name,
		deck.Description,
		deck.CreatedAt,
		deck.UpdatedAt,
	)
	if err != nil {
		s.logger.DebugContext(ctx, "failed to create deck",
			slog.String("deck_id", deck.ID.String()),
			slog.String("error", err.Error()))
		return MapUniqueViolation(err, store.ErrDeckNameExists)
	}

	return nil
}

// GetByID implements store.DeckStore.GetByID.
func (s *DeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	query := `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM decks
		WHERE id = $1`

	var deck domain.Deck
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&deck.ID,
		&deck.UserID,
		&deck.Name,
		&deck.Description,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrDeckNotFound
		}
		return nil, MapError(err)
	}

	return &deck, nil
}

// ListByUser implements store.DeckStore.ListByUser.
func (s *DeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	query := `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM decks
		WHERE user_id = $1
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	decks := []*domain.Deck{}
	for rows.Next() {
		var deck domain.Deck
		if err := rows.Scan(
			&deck.ID,
			&deck.UserID,
			&deck.Name,
			&deck.Description,
			&deck.CreatedAt,
			&deck.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		decks = append(decks, &deck)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return decks, nil
}

// Update implements store.DeckStore.Update.
func (s *DeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE decks
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		deck.ID,
		deck.Name,
		deck.Description,
		deck.UpdatedAt,
	)
	if err != nil {
		return MapUniqueViolation(err, store.ErrDeckNameExists)
	}

	return CheckRowsAffected(result, store.ErrDeckNotFound)
}

// Delete implements store.DeckStore.Delete. Cards, schedules and review
// events in the deck are removed by ON DELETE CASCADE constraints.
func (s *DeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrDeckNotFound)
}

// WithTx implements store.DeckStore.WithTx.
func (s *DeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &DeckStore{
		db:     tx,
		logger: s.logger,
	}
}
