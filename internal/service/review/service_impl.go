package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/domain/srs"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// AchievementNotifier is notified after a successful review so achievement
// evaluation can run asynchronously. Implementations must not block.
type AchievementNotifier interface {
	NotifyReview(userID uuid.UUID)
}

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	cardStore     store.CardStore
	scheduleStore store.ScheduleStore
	eventStore    store.ReviewEventStore
	prefStore     store.PreferenceStore
	srsService    srs.Service
	notifier      AchievementNotifier
	logger        *slog.Logger

	// runTx executes a function within a transaction; injectable for tests.
	runTx func(ctx context.Context, fn store.TxFn) error

	// timeFunc supplies the review timestamp; injectable for tests.
	timeFunc func() time.Time
}

// NewReviewService creates a new ReviewService implementation. The notifier
// may be nil, in which case achievement evaluation is skipped.
func NewReviewService(
	db *sql.DB,
	cardStore store.CardStore,
	scheduleStore store.ScheduleStore,
	eventStore store.ReviewEventStore,
	prefStore store.PreferenceStore,
	srsService srs.Service,
	notifier AchievementNotifier,
	logger *slog.Logger,
) ReviewService {
	if db == nil {
		panic("db cannot be nil")
	}
	if cardStore == nil || scheduleStore == nil || eventStore == nil || prefStore == nil {
		panic("stores cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		cardStore:     cardStore,
		scheduleStore: scheduleStore,
		eventStore:    eventStore,
		prefStore:     prefStore,
		srsService:    srsService,
		notifier:      notifier,
		logger:        logger.With(slog.String("component", "review_service")),
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
		timeFunc: time.Now,
	}
}

// SubmitReview implements ReviewService.SubmitReview.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	cardID uuid.UUID,
	quality int,
) (*ReviewResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.ValidQuality(quality) {
		log.Warn("invalid review quality",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()),
			slog.Int("quality", quality))
		return nil, ErrInvalidQuality
	}

	var result *ReviewResult
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkOwnership(ctx, tx, userID, cardID, log); err != nil {
			return err
		}

		scheduleStore := s.scheduleStore.WithTx(tx)
		schedule, err := scheduleStore.GetForUpdate(ctx, cardID)
		if err != nil {
			return fmt.Errorf("failed to lock schedule: %w", err)
		}

		now := s.timeFunc().UTC()
		newSchedule, event, err := s.srsService.Review(schedule, quality, now)
		if err != nil {
			return fmt.Errorf("failed to compute review: %w", err)
		}
		event.ID = uuid.New()
		event.UserID = userID

		if err := scheduleStore.Update(ctx, newSchedule); err != nil {
			return fmt.Errorf("failed to update schedule: %w", err)
		}

		if err := s.eventStore.WithTx(tx).Create(ctx, event); err != nil {
			return fmt.Errorf("failed to record review event: %w", err)
		}

		if err := s.recordStudy(ctx, tx, userID, now); err != nil {
			return err
		}

		result = &ReviewResult{
			Schedule:  newSchedule,
			Event:     event,
			Retention: s.srsService.EstimateRetention(newSchedule.Interval, newSchedule.EaseFactor),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) || errors.Is(err, ErrCardNotOwned) {
			return nil, err
		}
		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, &ServiceError{Operation: "submit_review", Message: "transaction failed", Err: err}
	}

	log.Debug("review processed",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.Int("quality", quality),
		slog.Float64("ease_factor", result.Schedule.EaseFactor),
		slog.Int("interval", result.Schedule.Interval),
		slog.Time("next_review_at", result.Schedule.NextReviewAt))

	if s.notifier != nil {
		s.notifier.NotifyReview(userID)
	}

	return result, nil
}

// SubmitPractice implements ReviewService.SubmitPractice.
func (s *reviewServiceImpl) SubmitPractice(
	ctx context.Context,
	userID uuid.UUID,
	cardID uuid.UUID,
	quality int,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.ValidQuality(quality) {
		return ErrInvalidQuality
	}

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkOwnership(ctx, tx, userID, cardID, log); err != nil {
			return err
		}

		// Practice only counts toward the streak; the schedule and the
		// review log stay untouched.
		return s.recordStudy(ctx, tx, userID, s.timeFunc().UTC())
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) || errors.Is(err, ErrCardNotOwned) {
			return err
		}
		log.Error("failed to submit practice answer",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return &ServiceError{Operation: "submit_practice", Message: "transaction failed", Err: err}
	}

	return nil
}

// checkOwnership verifies the card exists and belongs to the user.
func (s *reviewServiceImpl) checkOwnership(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	cardID uuid.UUID,
	log *slog.Logger,
) error {
	card, err := s.cardStore.WithTx(tx).GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to get card: %w", err)
	}

	if card.UserID != userID {
		log.Warn("user does not own card",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return ErrCardNotOwned
	}

	return nil
}

// recordStudy advances the user's streak, creating the preferences row if
// registration predates the preferences table.
func (s *reviewServiceImpl) recordStudy(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	now time.Time,
) error {
	prefStore := s.prefStore.WithTx(tx)

	prefs, err := prefStore.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrPreferencesNotFound) {
			return fmt.Errorf("failed to load preferences: %w", err)
		}
		prefs, err = domain.NewPreferences(userID)
		if err != nil {
			return fmt.Errorf("failed to create preferences: %w", err)
		}
		prefs.RecordStudy(now)
		return prefStore.Create(ctx, prefs)
	}

	prefs.RecordStudy(now)
	if err := prefStore.Update(ctx, prefs); err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}

	return nil
}
