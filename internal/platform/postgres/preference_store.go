package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// PreferenceStore implements the store.PreferenceStore interface using a
// PostgreSQL database as the storage backend.
type PreferenceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPreferenceStore creates a new PostgreSQL implementation of the
// PreferenceStore interface. If logger is nil, the slog default is used.
func NewPreferenceStore(db store.DBTX, logger *slog.Logger) *PreferenceStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PreferenceStore{
		db:     db,
		logger: logger.With(slog.String("component", "preference_store")),
	}
}

// Ensure PreferenceStore implements store.PreferenceStore interface
var _ store.PreferenceStore = (*PreferenceStore)(nil)

// Create implements store.PreferenceStore.Create.
func (s *PreferenceStore) Create(ctx context.Context, prefs *domain.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO preferences (
			user_id, max_reviews_per_session, new_cards_per_day,
			cards_per_session, theme, card_text_size,
			current_streak, longest_streak, last_study_date,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.ExecContext(ctx, query,
		prefs.UserID,
		prefs.MaxReviewsPerSession,
		prefs.NewCardsPerDay,
		prefs.CardsPerSession,
		prefs.Theme,
		prefs.CardTextSize,
		prefs.CurrentStreak,
		prefs.LongestStreak,
		prefs.LastStudyDate,
		prefs.CreatedAt,
		prefs.UpdatedAt,
	)
	if err != nil {
		s.logger.DebugContext(ctx, "failed to create preferences",
			slog.String("user_id", prefs.UserID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// Get implements store.PreferenceStore.Get.
func (s *PreferenceStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Preferences, error) {
	query := `
		SELECT
			user_id, max_reviews_per_session, new_cards_per_day,
			cards_per_session, theme, card_text_size,
			current_streak, longest_streak, last_study_date,
			created_at, updated_at
		FROM preferences
		WHERE user_id = $1`

	var prefs domain.Preferences
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.MaxReviewsPerSession,
		&prefs.NewCardsPerDay,
		&prefs.CardsPerSession,
		&prefs.Theme,
		&prefs.CardTextSize,
		&prefs.CurrentStreak,
		&prefs.LongestStreak,
		&prefs.LastStudyDate,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrPreferencesNotFound
		}
		return nil, MapError(err)
	}

	return &prefs, nil
}

// Update implements store.PreferenceStore.Update.
func (s *PreferenceStore) Update(ctx context.Context, prefs *domain.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE preferences
		SET max_reviews_per_session = $2, new_cards_per_day = $3,
			cards_per_session = $4, theme = $5, card_text_size = $6,
			current_streak = $7, longest_streak = $8, last_study_date = $9,
			updated_at = $10
		WHERE user_id = $1`

	result, err := s.db.ExecContext(ctx, query,
		prefs.UserID,
		prefs.MaxReviewsPerSession,
		prefs.NewCardsPerDay,
		prefs.CardsPerSession,
		prefs.Theme,
		prefs.CardTextSize,
		prefs.CurrentStreak,
		prefs.LongestStreak,
		prefs.LastStudyDate,
		prefs.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrPreferencesNotFound)
}

// WithTx implements store.PreferenceStore.WithTx.
func (s *PreferenceStore) WithTx(tx *sql.Tx) store.PreferenceStore {
	return &PreferenceStore{
		db:     tx,
		logger: s.logger,
	}
}
