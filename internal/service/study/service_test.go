package study

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/domain/session"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

type fakeSnapshotStore struct {
	rows []store.CardWithSchedule
	// captured arguments from the last ListWithSchedules call
	lastUserID uuid.UUID
	lastDeckID *uuid.UUID
}

func (f *fakeSnapshotStore) Create(context.Context, *domain.Card) error { return nil }
func (f *fakeSnapshotStore) GetByID(context.Context, uuid.UUID) (*domain.Card, error) {
	return nil, store.ErrCardNotFound
}
func (f *fakeSnapshotStore) Update(context.Context, *domain.Card) error { return nil }
func (f *fakeSnapshotStore) Delete(context.Context, uuid.UUID) error    { return nil }
func (f *fakeSnapshotStore) ListByDeck(context.Context, uuid.UUID) ([]*domain.Card, error) {
	return nil, nil
}

func (f *fakeSnapshotStore) ListWithSchedules(
	_ context.Context,
	userID uuid.UUID,
	deckID *uuid.UUID,
) ([]store.CardWithSchedule, error) {
	f.lastUserID = userID
	f.lastDeckID = deckID
	return f.rows, nil
}

func (f *fakeSnapshotStore) WithTx(*sql.Tx) store.CardStore { return f }

type fakePrefStore struct {
	prefs *domain.Preferences
}

func (f *fakePrefStore) Create(context.Context, *domain.Preferences) error { return nil }
func (f *fakePrefStore) Get(context.Context, uuid.UUID) (*domain.Preferences, error) {
	if f.prefs == nil {
		return nil, store.ErrPreferencesNotFound
	}
	return f.prefs, nil
}
func (f *fakePrefStore) Update(context.Context, *domain.Preferences) error { return nil }
func (f *fakePrefStore) WithTx(*sql.Tx) store.PreferenceStore              { return f }

func newTestService(cards *fakeSnapshotStore, prefs *fakePrefStore, now time.Time) *studyServiceImpl {
	return &studyServiceImpl{
		cardStore: cards,
		prefStore: prefs,
		selector:  session.NewSelector(rand.New(rand.NewSource(7))),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeFunc:  func() time.Time { return now },
	}
}

func makeRow(t *testing.T, userID uuid.UUID, reviewed bool, nextReview time.Time) store.CardWithSchedule {
	t.Helper()

	card, err := domain.NewCard(userID, uuid.New(), domain.CardTypeBasic, "front", "back", "")
	require.NoError(t, err)
	schedule, err := domain.NewCardSchedule(card.ID)
	require.NoError(t, err)
	schedule.HasBeenReviewed = reviewed
	schedule.NextReviewAt = nextReview
	if reviewed {
		reviewedAt := nextReview.AddDate(0, 0, -1)
		schedule.LastReviewedAt = &reviewedAt
		schedule.Repetitions = 1
		schedule.Interval = 1
	}

	return store.CardWithSchedule{Card: card, Schedule: schedule}
}

func TestSelectSessionStandard(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	cards := &fakeSnapshotStore{rows: []store.CardWithSchedule{
		makeRow(t, userID, true, now.Add(-time.Hour)),  // due
		makeRow(t, userID, true, now.AddDate(0, 0, 2)), // not due
		makeRow(t, userID, false, now),                 // new
	}}
	svc := newTestService(cards, &fakePrefStore{}, now)

	items, err := svc.SelectSession(context.Background(), userID, session.ModeStandard, nil)
	require.NoError(t, err)

	// One due card and one new card; the not-yet-due card is excluded.
	assert.Len(t, items, 2)
	assert.Equal(t, userID, cards.lastUserID)
	assert.Nil(t, cards.lastDeckID)
}

func TestSelectSessionDeckFilterPassedThrough(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	deckID := uuid.New()

	cards := &fakeSnapshotStore{rows: []store.CardWithSchedule{
		makeRow(t, userID, true, now.Add(-time.Hour)),
	}}
	svc := newTestService(cards, &fakePrefStore{}, now)

	_, err := svc.SelectSession(context.Background(), userID, session.ModeStandard, &deckID)
	require.NoError(t, err)
	require.NotNil(t, cards.lastDeckID)
	assert.Equal(t, deckID, *cards.lastDeckID)
}

func TestSelectSessionEmpty(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeSnapshotStore{}, &fakePrefStore{}, now)

	_, err := svc.SelectSession(context.Background(), uuid.New(), session.ModeStandard, nil)
	assert.ErrorIs(t, err, ErrNothingToReview)
}

func TestSelectSessionInvalidMode(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeSnapshotStore{}, &fakePrefStore{}, now)

	_, err := svc.SelectSession(context.Background(), uuid.New(), session.Mode("cram"), nil)
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestSelectSessionUsesStoredPolicy(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	rows := make([]store.CardWithSchedule, 0, 5)
	for i := 0; i < 5; i++ {
		rows = append(rows, makeRow(t, userID, true, now.Add(-time.Duration(i+1)*time.Hour)))
	}

	prefs, err := domain.NewPreferences(userID)
	require.NoError(t, err)
	prefs.MaxReviewsPerSession = 2

	cards := &fakeSnapshotStore{rows: rows}
	svc := newTestService(cards, &fakePrefStore{prefs: prefs}, now)

	items, err := svc.SelectSession(context.Background(), userID, session.ModeStandard, nil)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
