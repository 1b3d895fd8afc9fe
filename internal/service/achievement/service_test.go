package achievement

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

type fakeEventCounter struct {
	count int
}

func (f *fakeEventCounter) Create(context.Context, *domain.ReviewEvent) error { return nil }
func (f *fakeEventCounter) CountByUser(context.Context, uuid.UUID) (int, error) {
	return f.count, nil
}
func (f *fakeEventCounter) ListByCard(context.Context, uuid.UUID) ([]*domain.ReviewEvent, error) {
	return nil, nil
}
func (f *fakeEventCounter) WithTx(*sql.Tx) store.ReviewEventStore { return f }

type fakePrefReader struct {
	prefs *domain.Preferences
}

func (f *fakePrefReader) Create(context.Context, *domain.Preferences) error { return nil }
func (f *fakePrefReader) Get(context.Context, uuid.UUID) (*domain.Preferences, error) {
	if f.prefs == nil {
		return nil, store.ErrPreferencesNotFound
	}
	return f.prefs, nil
}
func (f *fakePrefReader) Update(context.Context, *domain.Preferences) error { return nil }
func (f *fakePrefReader) WithTx(*sql.Tx) store.PreferenceStore              { return f }

type fakeAchievementStore struct {
	awards map[string]*domain.Achievement
}

func newFakeAchievementStore() *fakeAchievementStore {
	return &fakeAchievementStore{awards: map[string]*domain.Achievement{}}
}

func (f *fakeAchievementStore) Award(_ context.Context, a *domain.Achievement) error {
	if _, ok := f.awards[a.Key]; ok {
		return nil // awarding twice is a no-op
	}
	f.awards[a.Key] = a
	return nil
}

func (f *fakeAchievementStore) ListByUser(context.Context, uuid.UUID) ([]*domain.Achievement, error) {
	var out []*domain.Achievement
	for _, a := range f.awards {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAchievementStore) ListKeysByUser(context.Context, uuid.UUID) (map[string]bool, error) {
	keys := map[string]bool{}
	for k := range f.awards {
		keys[k] = true
	}
	return keys, nil
}

func (f *fakeAchievementStore) WithTx(*sql.Tx) store.AchievementStore { return f }

func TestEarnedKeys(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		reviews int
		streak  int
		want    []string
	}{
		{name: "nothing earned", reviews: 0, streak: 0, want: nil},
		{name: "first review", reviews: 1, streak: 1, want: []string{"first_review"}},
		{
			name:    "century and a week",
			reviews: 150,
			streak:  7,
			want:    []string{"first_review", "reviews_100", "streak_7"},
		},
		{
			name:    "everything",
			reviews: 1000,
			streak:  100,
			want: []string{
				"first_review", "reviews_100", "reviews_500", "reviews_1000",
				"streak_7", "streak_30", "streak_100",
			},
		},
		{name: "just below thresholds", reviews: 99, streak: 6, want: []string{"first_review"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, EarnedKeys(tc.reviews, tc.streak))
		})
	}
}

func TestEvaluateAwardsOnce(t *testing.T) {
	t.Parallel()

	events := &fakeEventCounter{count: 1}
	achStore := newFakeAchievementStore()
	svc := NewService(events, &fakePrefReader{}, achStore,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx := context.Background()
	userID := uuid.New()

	awards, err := svc.Evaluate(ctx, userID)
	require.NoError(t, err)
	require.Len(t, awards, 1)
	assert.Equal(t, "first_review", awards[0].Key)
	assert.Equal(t, userID, awards[0].UserID)

	// A second evaluation awards nothing new.
	awards, err = svc.Evaluate(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, awards)
	assert.Len(t, achStore.awards, 1)
}

func TestEvaluateUsesStreak(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	prefs, err := domain.NewPreferences(userID)
	require.NoError(t, err)
	prefs.CurrentStreak = 30

	svc := NewService(
		&fakeEventCounter{count: 5},
		&fakePrefReader{prefs: prefs},
		newFakeAchievementStore(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	awards, err := svc.Evaluate(context.Background(), userID)
	require.NoError(t, err)

	keys := make([]string, len(awards))
	for i, a := range awards {
		keys[i] = a.Key
	}
	assert.Equal(t, []string{"first_review", "streak_7", "streak_30"}, keys)
}
