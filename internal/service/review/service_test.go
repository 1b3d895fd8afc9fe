package review

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/domain/srs"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

type testEnv struct {
	svc       *reviewServiceImpl
	cards     *fakeCardStore
	schedules *fakeScheduleStore
	events    *fakeEventStore
	prefs     *fakePreferenceStore
	notifier  *fakeNotifier
	now       time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		cards:     newFakeCardStore(),
		schedules: newFakeScheduleStore(),
		events:    newFakeEventStore(),
		prefs:     newFakePreferenceStore(),
		notifier:  &fakeNotifier{},
		now:       time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	env.svc = &reviewServiceImpl{
		cardStore:     env.cards,
		scheduleStore: env.schedules,
		eventStore:    env.events,
		prefStore:     env.prefs,
		srsService:    srs.NewDefaultService(),
		notifier:      env.notifier,
		logger:        testLogger(),
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return fn(ctx, (*sql.Tx)(nil))
		},
		timeFunc: func() time.Time { return env.now },
	}

	return env
}

func (env *testEnv) addCard(t *testing.T, userID uuid.UUID) *domain.Card {
	t.Helper()

	deckID := uuid.New()
	card, err := domain.NewCard(userID, deckID, domain.CardTypeBasic, "front", "back", "")
	require.NoError(t, err)
	require.NoError(t, env.cards.Create(context.Background(), card))

	schedule, err := domain.NewCardSchedule(card.ID)
	require.NoError(t, err)
	require.NoError(t, env.schedules.Create(context.Background(), schedule))

	return card
}

func TestSubmitReviewSuccess(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	card := env.addCard(t, userID)

	result, err := env.svc.SubmitReview(context.Background(), userID, card.ID, srs.QualityGood)
	require.NoError(t, err)

	// First successful review: ease 2.5, interval 1 day, one repetition.
	assert.Equal(t, 1, result.Schedule.Interval)
	assert.Equal(t, 1, result.Schedule.Repetitions)
	assert.InDelta(t, 2.5, result.Schedule.EaseFactor, 1e-9)
	assert.True(t, result.Schedule.HasBeenReviewed)
	assert.Equal(t, env.now.AddDate(0, 0, 1), result.Schedule.NextReviewAt)

	// The schedule is persisted and exactly one event is recorded.
	stored, err := env.schedules.Get(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Schedule, stored)

	require.Len(t, env.events.events, 1)
	event := env.events.events[0]
	assert.Equal(t, userID, event.UserID)
	assert.Equal(t, card.ID, event.CardID)
	assert.Equal(t, srs.QualityGood, event.Quality)
	assert.NotEqual(t, uuid.Nil, event.ID)

	// Retention estimate is informational but bounded.
	assert.Greater(t, result.Retention, 0.0)
	assert.LessOrEqual(t, result.Retention, 1.0)

	// The streak advanced and achievement evaluation was requested.
	prefs, err := env.prefs.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, prefs.CurrentStreak)
	assert.Equal(t, []uuid.UUID{userID}, env.notifier.notified)
}

func TestSubmitReviewInvalidQuality(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	card := env.addCard(t, userID)

	for _, q := range []int{-1, 6, 100} {
		_, err := env.svc.SubmitReview(context.Background(), userID, card.ID, q)
		assert.ErrorIs(t, err, ErrInvalidQuality)
	}

	// Nothing was recorded or mutated.
	assert.Empty(t, env.events.events)
	stored, err := env.schedules.Get(context.Background(), card.ID)
	require.NoError(t, err)
	assert.False(t, stored.HasBeenReviewed)
	assert.Empty(t, env.notifier.notified)
}

func TestSubmitReviewCardNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.svc.SubmitReview(context.Background(), uuid.New(), uuid.New(), srs.QualityGood)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestSubmitReviewNotOwned(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	owner := uuid.New()
	card := env.addCard(t, owner)

	_, err := env.svc.SubmitReview(context.Background(), uuid.New(), card.ID, srs.QualityGood)
	assert.ErrorIs(t, err, ErrCardNotOwned)
	assert.Empty(t, env.events.events)
}

func TestSubmitReviewFailureResets(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	card := env.addCard(t, userID)

	// Build up some progress first.
	_, err := env.svc.SubmitReview(context.Background(), userID, card.ID, srs.QualityEasy)
	require.NoError(t, err)
	_, err = env.svc.SubmitReview(context.Background(), userID, card.ID, srs.QualityEasy)
	require.NoError(t, err)

	result, err := env.svc.SubmitReview(context.Background(), userID, card.ID, srs.QualityBlackout)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Schedule.Interval)
	assert.Equal(t, 0, result.Schedule.Repetitions)
	assert.Len(t, env.events.events, 3)
}

func TestSubmitPractice(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	card := env.addCard(t, userID)

	err := env.svc.SubmitPractice(context.Background(), userID, card.ID, srs.QualityGood)
	require.NoError(t, err)

	// No schedule mutation, no event, but the streak advanced.
	stored, err := env.schedules.Get(context.Background(), card.ID)
	require.NoError(t, err)
	assert.False(t, stored.HasBeenReviewed)
	assert.Empty(t, env.events.events)

	prefs, err := env.prefs.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, prefs.CurrentStreak)
}

func TestSubmitPracticeValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	card := env.addCard(t, userID)

	err := env.svc.SubmitPractice(context.Background(), userID, card.ID, 7)
	assert.ErrorIs(t, err, ErrInvalidQuality)

	err = env.svc.SubmitPractice(context.Background(), uuid.New(), card.ID, srs.QualityGood)
	assert.ErrorIs(t, err, ErrCardNotOwned)
}

func TestStreakAcrossDays(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := uuid.New()
	card := env.addCard(t, userID)

	ctx := context.Background()

	// Day 1: two reviews, streak stays at 1.
	_, err := env.svc.SubmitReview(ctx, userID, card.ID, srs.QualityGood)
	require.NoError(t, err)
	_, err = env.svc.SubmitReview(ctx, userID, card.ID, srs.QualityGood)
	require.NoError(t, err)

	prefs, err := env.prefs.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, prefs.CurrentStreak)

	// Day 2: streak increments.
	env.now = env.now.AddDate(0, 0, 1)
	_, err = env.svc.SubmitReview(ctx, userID, card.ID, srs.QualityGood)
	require.NoError(t, err)

	prefs, err = env.prefs.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, prefs.CurrentStreak)

	// A gap resets the streak but keeps the longest.
	env.now = env.now.AddDate(0, 0, 3)
	_, err = env.svc.SubmitReview(ctx, userID, card.ID, srs.QualityGood)
	require.NoError(t, err)

	prefs, err = env.prefs.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, prefs.CurrentStreak)
	assert.Equal(t, 2, prefs.LongestStreak)
}
