// Package achievement evaluates and awards user achievements from review
// totals and streaks. Evaluation is idempotent: already-awarded keys are
// skipped, so it can run after every review without duplicating awards.
package achievement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// Service evaluates and awards achievements.
type Service interface {
	// Evaluate computes the user's earned-but-unawarded achievements and
	// persists the new awards, returning them.
	Evaluate(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error)

	// List returns all achievements awarded to the user.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error)
}

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	eventStore store.ReviewEventStore
	prefStore  store.PreferenceStore
	achStore   store.AchievementStore
	logger     *slog.Logger
}

// NewService creates a new achievement Service implementation.
func NewService(
	eventStore store.ReviewEventStore,
	prefStore store.PreferenceStore,
	achStore store.AchievementStore,
	logger *slog.Logger,
) Service {
	if eventStore == nil || prefStore == nil || achStore == nil {
		panic("stores cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		eventStore: eventStore,
		prefStore:  prefStore,
		achStore:   achStore,
		logger:     logger.With(slog.String("component", "achievement_service")),
	}
}

// EarnedKeys returns the achievement keys earned at the given review count
// and current streak, in definition order. Pure; exported for direct testing.
func EarnedKeys(reviewCount, currentStreak int) []string {
	var keys []string
	for _, def := range domain.AchievementDefs {
		switch def.Kind {
		case domain.AchievementKindReviews:
			if reviewCount >= def.Threshold {
				keys = append(keys, def.Key)
			}
		case domain.AchievementKindStreak:
			if currentStreak >= def.Threshold {
				keys = append(keys, def.Key)
			}
		}
	}
	return keys
}

// Evaluate implements Service.Evaluate.
func (s *serviceImpl) Evaluate(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	reviewCount, err := s.eventStore.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	currentStreak := 0
	prefs, err := s.prefStore.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrPreferencesNotFound) {
			return nil, fmt.Errorf("failed to load preferences: %w", err)
		}
	} else {
		currentStreak = prefs.CurrentStreak
	}

	awarded, err := s.achStore.ListKeysByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list awarded achievements: %w", err)
	}

	var newAwards []*domain.Achievement
	for _, key := range EarnedKeys(reviewCount, currentStreak) {
		if awarded[key] {
			continue
		}

		achievement := domain.NewAchievement(userID, key)
		if err := s.achStore.Award(ctx, achievement); err != nil {
			return newAwards, fmt.Errorf("failed to award %s: %w", key, err)
		}

		log.Info("achievement awarded",
			slog.String("user_id", userID.String()),
			slog.String("key", key))
		newAwards = append(newAwards, achievement)
	}

	return newAwards, nil
}

// List implements Service.List.
func (s *serviceImpl) List(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error) {
	achievements, err := s.achStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return achievements, nil
}
