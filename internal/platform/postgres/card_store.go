package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// CardStore implements the store.CardStore interface using a PostgreSQL
// database as the storage backend.
type CardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCardStore creates a new PostgreSQL implementation of the CardStore
// interface. If logger is nil, the slog default is used.
func NewCardStore(db store.DBTX, logger *slog.Logger) *CardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure CardStore implements store.CardStore interface
var _ store.CardStore = (*CardStore)(nil)

// Create implements store.CardStore.Create.
func (s *CardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO cards (id, deck_id, user_id, card_type, front, back, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		card.ID,
		card.DeckID,
		card.UserID,
		string(card.Type),
		card.Front,
		card.Back,
		card.Notes,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		s.logger.DebugContext(ctx, "failed to create card",
			slog.String("card_id", card.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.CardStore.GetByID.
func (s *CardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `
		SELECT id, deck_id, user_id, card_type, front, back, notes, created_at, updated_at
		FROM cards
		WHERE id = $1`

	var card domain.Card
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.DeckID,
		&card.UserID,
		&card.Type,
		&card.Front,
		&card.Back,
		&card.Notes,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrCardNotFound
		}
		return nil, MapError(err)
	}

	return &card, nil
}

// Update implements store.CardStore.Update.
func (s *CardStore) Update(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE cards
		SET card_type = $2, front = $3, back = $4, notes = $5, updated_at = $6
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		card.ID,
		string(card.Type),
		card.Front,
		card.Back,
		card.Notes,
		card.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrCardNotFound)
}

// Delete implements store.CardStore.Delete. The card's schedule and review
// events are removed by ON DELETE CASCADE constraints.
func (s *CardStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrCardNotFound)
}

// ListByDeck implements store.CardStore.ListByDeck.
func (s *CardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	query := `
		SELECT id, deck_id, user_id, card_type, front, back, notes, created_at, updated_at
		FROM cards
		WHERE deck_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	cards := []*domain.Card{}
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.ID,
			&card.DeckID,
			&card.UserID,
			&card.Type,
			&card.Front,
			&card.Back,
			&card.Notes,
			&card.CreatedAt,
			&card.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cards, nil
}

// ListWithSchedules implements store.CardStore.ListWithSchedules. It joins
// each card with its schedule row; the optional deck filter is applied in
// SQL so session selection never loads cards it cannot use.
func (s *CardStore) ListWithSchedules(
	ctx context.Context,
	userID uuid.UUID,
	deckID *uuid.UUID,
) ([]store.CardWithSchedule, error) {
	query := `
		SELECT
			c.id, c.deck_id, c.user_id, c.card_type, c.front, c.back, c.notes,
			c.created_at, c.updated_at,
			cs.card_id, cs.ease_factor, cs.interval_days, cs.repetitions,
			cs.next_review_at, cs.last_reviewed_at, cs.has_been_reviewed,
			cs.created_at, cs.updated_at
		FROM cards c
		JOIN card_schedules cs ON cs.card_id = c.id
		WHERE c.user_id = $1
			AND ($2::uuid IS NULL OR c.deck_id = $2)
		ORDER BY c.created_at`

	rows, err := s.db.QueryContext(ctx, query, userID, deckID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	result := []store.CardWithSchedule{}
	for rows.Next() {
		var card domain.Card
		var schedule domain.CardSchedule
		if err := rows.Scan(
			&card.ID,
			&card.DeckID,
			&card.UserID,
			&card.Type,
			&card.Front,
			&card.Back,
			&card.Notes,
			&card.CreatedAt,
			&card.UpdatedAt,
			&schedule.CardID,
			&schedule.EaseFactor,
			&schedule.Interval,
			&schedule.Repetitions,
			&schedule.NextReviewAt,
			&schedule.LastReviewedAt,
			&schedule.HasBeenReviewed,
			&schedule.CreatedAt,
			&schedule.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		result = append(result, store.CardWithSchedule{Card: &card, Schedule: &schedule})
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return result, nil
}

// WithTx implements store.CardStore.WithTx.
func (s *CardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &CardStore{
		db:     tx,
		logger: s.logger,
	}
}
