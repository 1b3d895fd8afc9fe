package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// AchievementStore implements the store.AchievementStore interface using a
// PostgreSQL database as the storage backend.
type AchievementStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAchievementStore creates a new PostgreSQL implementation of the
// AchievementStore interface. If logger is nil, the slog default is used.
func NewAchievementStore(db store.DBTX, logger *slog.Logger) *AchievementStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AchievementStore{
		db:     db,
		logger: logger.With(slog.String("component", "achievement_store")),
	}
}

// Ensure AchievementStore implements store.AchievementStore interface
var _ store.AchievementStore = (*AchievementStore)(nil)

// Award implements store.AchievementStore.Award. ON CONFLICT DO NOTHING on
// the (user_id, key) unique constraint makes repeated awards a no-op.
func (s *AchievementStore) Award(ctx context.Context, achievement *domain.Achievement) error {
	if err := achievement.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO achievements (id, user_id, key, awarded_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, key) DO NOTHING`

	_, err := s.db.ExecContext(ctx, query,
		achievement.ID,
		achievement.UserID,
		achievement.Key,
		achievement.AwardedAt,
	)
	if err != nil {
		s.logger.DebugContext(ctx, "failed to award achievement",
			slog.String("user_id", achievement.UserID.String()),
			slog.String("key", achievement.Key),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// ListByUser implements store.AchievementStore.ListByUser.
func (s *AchievementStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error) {
	query := `
		SELECT id, user_id, key, awarded_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY awarded_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	achievements := []*domain.Achievement{}
	for rows.Next() {
		var achievement domain.Achievement
		if err := rows.Scan(
			&achievement.ID,
			&achievement.UserID,
			&achievement.Key,
			&achievement.AwardedAt,
		); err != nil {
			return nil, MapError(err)
		}
		achievements = append(achievements, &achievement)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return achievements, nil
}

// ListKeysByUser implements store.AchievementStore.ListKeysByUser.
func (s *AchievementStore) ListKeysByUser(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM achievements WHERE user_id = $1`, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	keys := map[string]bool{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, MapError(err)
		}
		keys[key] = true
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return keys, nil
}

// WithTx implements store.AchievementStore.WithTx.
func (s *AchievementStore) WithTx(tx *sql.Tx) store.AchievementStore {
	return &AchievementStore{
		db:     tx,
		logger: s.logger,
	}
}
