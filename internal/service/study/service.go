// Package study implements read-only study session selection: it loads a
// user's card and schedule snapshot plus session policy and delegates to the
// session selector.
package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/domain/session"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// ErrNothingToReview signals an empty session. Re-exported so HTTP handlers
// depend only on this package.
var ErrNothingToReview = session.ErrNothingToReview

// ErrInvalidMode is returned for an unrecognized session mode.
var ErrInvalidMode = session.ErrInvalidMode

// StudyService builds study sessions.
type StudyService interface {
	// SelectSession builds the ordered item batch for one study session.
	// deckID restricts the pool to one deck when non-nil. Returns
	// ErrNothingToReview when the mode's pool is empty and ErrInvalidMode
	// for an unknown mode.
	SelectSession(
		ctx context.Context,
		userID uuid.UUID,
		mode session.Mode,
		deckID *uuid.UUID,
	) ([]session.Item, error)
}

// Verify interface compliance at compile time
var _ StudyService = (*studyServiceImpl)(nil)

type studyServiceImpl struct {
	cardStore store.CardStore
	prefStore store.PreferenceStore
	selector  *session.Selector
	logger    *slog.Logger
	timeFunc  func() time.Time // injectable for tests
}

// NewStudyService creates a new StudyService implementation.
func NewStudyService(
	cardStore store.CardStore,
	prefStore store.PreferenceStore,
	selector *session.Selector,
	logger *slog.Logger,
) StudyService {
	if cardStore == nil || prefStore == nil {
		panic("stores cannot be nil")
	}
	if selector == nil {
		panic("selector cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &studyServiceImpl{
		cardStore: cardStore,
		prefStore: prefStore,
		selector:  selector,
		logger:    logger.With(slog.String("component", "study_service")),
		timeFunc:  time.Now,
	}
}

// SelectSession implements StudyService.SelectSession.
func (s *studyServiceImpl) SelectSession(
	ctx context.Context,
	userID uuid.UUID,
	mode session.Mode,
	deckID *uuid.UUID,
) ([]session.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !mode.Valid() {
		return nil, ErrInvalidMode
	}

	policy, err := s.loadPolicy(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.cardStore.ListWithSchedules(ctx, userID, deckID)
	if err != nil {
		log.Error("failed to load card snapshot",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}

	snapshot := make([]session.CardState, len(rows))
	for i, row := range rows {
		snapshot[i] = session.CardState{Card: row.Card, Schedule: row.Schedule}
	}

	items, err := s.selector.Select(snapshot, mode, policy, s.timeFunc().UTC())
	if err != nil {
		if errors.Is(err, session.ErrNothingToReview) {
			log.Debug("nothing to review",
				slog.String("user_id", userID.String()),
				slog.String("mode", string(mode)))
		}
		return nil, err
	}

	log.Debug("session selected",
		slog.String("user_id", userID.String()),
		slog.String("mode", string(mode)),
		slog.Int("items", len(items)))

	return items, nil
}

// loadPolicy fetches the user's session policy, falling back to defaults
// when no preferences row exists yet.
func (s *studyServiceImpl) loadPolicy(ctx context.Context, userID uuid.UUID) (domain.SessionPolicy, error) {
	prefs, err := s.prefStore.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrPreferencesNotFound) {
			defaults, err := domain.NewPreferences(userID)
			if err != nil {
				return domain.SessionPolicy{}, err
			}
			return defaults.Policy(), nil
		}
		return domain.SessionPolicy{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	return prefs.Policy(), nil
}
