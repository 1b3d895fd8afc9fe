package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// ReviewEventStore implements the store.ReviewEventStore interface using a
// PostgreSQL database as the storage backend.
type ReviewEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewEventStore creates a new PostgreSQL implementation of the
// ReviewEventStore interface. If logger is nil, the slog default is used.
func NewReviewEventStore(db store.DBTX, logger *slog.Logger) *ReviewEventStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewEventStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_event_store")),
	}
}

// Ensure ReviewEventStore implements store.ReviewEventStore interface
var _ store.ReviewEventStore = (*ReviewEventStore)(nil)

// Create implements store.ReviewEventStore.Create.
func (s *ReviewEventStore) Create(ctx context.Context, event *domain.ReviewEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO review_events (
			id, card_id, user_id, quality,
			ease_factor_before, ease_factor_after,
			interval_before, interval_after, reviewed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.CardID,
		event.UserID,
		event.Quality,
		event.EaseFactorBefore,
		event.EaseFactorAfter,
		event.IntervalBefore,
		event.IntervalAfter,
		event.ReviewedAt,
	)
	if err != nil {
		s.logger.DebugContext(ctx, "failed to create review event",
			slog.String("card_id", event.CardID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// CountByUser implements store.ReviewEventStore.CountByUser.
func (s *ReviewEventStore) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review_events WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}

	return count, nil
}

// ListByCard implements store.ReviewEventStore.ListByCard.
func (s *ReviewEventStore) ListByCard(ctx context.Context, cardID uuid.UUID) ([]*domain.ReviewEvent, error) {
	query := `
		SELECT
			id, card_id, user_id, quality,
			ease_factor_before, ease_factor_after,
			interval_before, interval_after, reviewed_at
		FROM review_events
		WHERE card_id = $1
		ORDER BY reviewed_at DESC`

	rows, err := s.db.QueryContext(ctx, query, cardID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	events := []*domain.ReviewEvent{}
	for rows.Next() {
		var event domain.ReviewEvent
		if err := rows.Scan(
			&event.ID,
			&event.CardID,
			&event.UserID,
			&event.Quality,
			&event.EaseFactorBefore,
			&event.EaseFactorAfter,
			&event.IntervalBefore,
			&event.IntervalAfter,
			&event.ReviewedAt,
		); err != nil {
			return nil, MapError(err)
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return events, nil
}

// WithTx implements store.ReviewEventStore.WithTx.
func (s *ReviewEventStore) WithTx(tx *sql.Tx) store.ReviewEventStore {
	return &ReviewEventStore{
		db:     tx,
		logger: s.logger,
	}
}
