package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// ScheduleStore implements the store.ScheduleStore interface using a
// PostgreSQL database as the storage backend.
type ScheduleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewScheduleStore creates a new PostgreSQL implementation of the
// ScheduleStore interface. If logger is nil, the slog default is used.
func NewScheduleStore(db store.DBTX, logger *slog.Logger) *ScheduleStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ScheduleStore{
		db:     db,
		logger: logger.With(slog.String("component", "schedule_store")),
	}
}

// Ensure ScheduleStore implements store.ScheduleStore interface
var _ store.ScheduleStore = (*ScheduleStore)(nil)

const scheduleColumns = `card_id, ease_factor, interval_days, repetitions,
	next_review_at, last_reviewed_at, has_been_reviewed, created_at, updated_at`

// Create implements store.ScheduleStore.Create.
func (s *ScheduleStore) Create(ctx context.Context, schedule *domain.CardSchedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO card_schedules (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		schedule.CardID,
		schedule.EaseFactor,
		schedule.Interval,
		schedule.Repetitions,
		schedule.NextReviewAt,
		schedule.LastReviewedAt,
		schedule.HasBeenReviewed,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		s.logger.DebugContext(ctx, "failed to create schedule",
			slog.String("card_id", schedule.CardID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// Get implements store.ScheduleStore.Get.
func (s *ScheduleStore) Get(ctx context.Context, cardID uuid.UUID) (*domain.CardSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM card_schedules
		WHERE card_id = $1`

	return s.scanSchedule(s.db.QueryRowContext(ctx, query, cardID))
}

// GetForUpdate implements store.ScheduleStore.GetForUpdate. The row lock is
// only effective when the store is bound to a transaction via WithTx.
func (s *ScheduleStore) GetForUpdate(ctx context.Context, cardID uuid.UUID) (*domain.CardSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM card_schedules
		WHERE card_id = $1
		FOR UPDATE`

	return s.scanSchedule(s.db.QueryRowContext(ctx, query, cardID))
}

// Update implements store.ScheduleStore.Update.
func (s *ScheduleStore) Update(ctx context.Context, schedule *domain.CardSchedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE card_schedules
		SET ease_factor = $2, interval_days = $3, repetitions = $4,
			next_review_at = $5, last_reviewed_at = $6, has_been_reviewed = $7,
			updated_at = $8
		WHERE card_id = $1`

	result, err := s.db.ExecContext(ctx, query,
		schedule.CardID,
		schedule.EaseFactor,
		schedule.Interval,
		schedule.Repetitions,
		schedule.NextReviewAt,
		schedule.LastReviewedAt,
		schedule.HasBeenReviewed,
		schedule.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrScheduleNotFound)
}

// WithTx implements store.ScheduleStore.WithTx.
func (s *ScheduleStore) WithTx(tx *sql.Tx) store.ScheduleStore {
	return &ScheduleStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *ScheduleStore) scanSchedule(row *sql.Row) (*domain.CardSchedule, error) {
	var schedule domain.CardSchedule
	err := row.Scan(
		&schedule.CardID,
		&schedule.EaseFactor,
		&schedule.Interval,
		&schedule.Repetitions,
		&schedule.NextReviewAt,
		&schedule.LastReviewedAt,
		&schedule.HasBeenReviewed,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrScheduleNotFound
		}
		return nil, MapError(err)
	}

	return &schedule, nil
}
