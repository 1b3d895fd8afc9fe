package review

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// In-memory fakes for the store interfaces. WithTx returns the fake itself
// since there is no real transaction in unit tests.

type fakeCardStore struct {
	cards map[uuid.UUID]*domain.Card
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{cards: map[uuid.UUID]*domain.Card{}}
}

func (f *fakeCardStore) Create(_ context.Context, card *domain.Card) error {
	f.cards[card.ID] = card
	return nil
}

func (f *fakeCardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Card, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

func (f *fakeCardStore) Update(_ context.Context, card *domain.Card) error {
	if _, ok := f.cards[card.ID]; !ok {
		return store.ErrCardNotFound
	}
	f.cards[card.ID] = card
	return nil
}

func (f *fakeCardStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.cards[id]; !ok {
		return store.ErrCardNotFound
	}
	delete(f.cards, id)
	return nil
}

func (f *fakeCardStore) ListByDeck(_ context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	var cards []*domain.Card
	for _, c := range f.cards {
		if c.DeckID == deckID {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

func (f *fakeCardStore) ListWithSchedules(
	_ context.Context,
	userID uuid.UUID,
	deckID *uuid.UUID,
) ([]store.CardWithSchedule, error) {
	return nil, nil
}

func (f *fakeCardStore) WithTx(_ *sql.Tx) store.CardStore { return f }

type fakeScheduleStore struct {
	schedules map[uuid.UUID]*domain.CardSchedule
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{schedules: map[uuid.UUID]*domain.CardSchedule{}}
}

func (f *fakeScheduleStore) Create(_ context.Context, schedule *domain.CardSchedule) error {
	f.schedules[schedule.CardID] = schedule
	return nil
}

func (f *fakeScheduleStore) Get(_ context.Context, cardID uuid.UUID) (*domain.CardSchedule, error) {
	schedule, ok := f.schedules[cardID]
	if !ok {
		return nil, store.ErrScheduleNotFound
	}
	return schedule, nil
}

func (f *fakeScheduleStore) GetForUpdate(ctx context.Context, cardID uuid.UUID) (*domain.CardSchedule, error) {
	return f.Get(ctx, cardID)
}

func (f *fakeScheduleStore) Update(_ context.Context, schedule *domain.CardSchedule) error {
	if _, ok := f.schedules[schedule.CardID]; !ok {
		return store.ErrScheduleNotFound
	}
	f.schedules[schedule.CardID] = schedule
	return nil
}

func (f *fakeScheduleStore) WithTx(_ *sql.Tx) store.ScheduleStore { return f }

type fakeEventStore struct {
	events []*domain.ReviewEvent
}

func newFakeEventStore() *fakeEventStore { return &fakeEventStore{} }

func (f *fakeEventStore) Create(_ context.Context, event *domain.ReviewEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventStore) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, e := range f.events {
		if e.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEventStore) ListByCard(_ context.Context, cardID uuid.UUID) ([]*domain.ReviewEvent, error) {
	var events []*domain.ReviewEvent
	for _, e := range f.events {
		if e.CardID == cardID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (f *fakeEventStore) WithTx(_ *sql.Tx) store.ReviewEventStore { return f }

type fakePreferenceStore struct {
	prefs map[uuid.UUID]*domain.Preferences
}

func newFakePreferenceStore() *fakePreferenceStore {
	return &fakePreferenceStore{prefs: map[uuid.UUID]*domain.Preferences{}}
}

func (f *fakePreferenceStore) Create(_ context.Context, prefs *domain.Preferences) error {
	f.prefs[prefs.UserID] = prefs
	return nil
}

func (f *fakePreferenceStore) Get(_ context.Context, userID uuid.UUID) (*domain.Preferences, error) {
	prefs, ok := f.prefs[userID]
	if !ok {
		return nil, store.ErrPreferencesNotFound
	}
	return prefs, nil
}

func (f *fakePreferenceStore) Update(_ context.Context, prefs *domain.Preferences) error {
	if _, ok := f.prefs[prefs.UserID]; !ok {
		return store.ErrPreferencesNotFound
	}
	f.prefs[prefs.UserID] = prefs
	return nil
}

func (f *fakePreferenceStore) WithTx(_ *sql.Tx) store.PreferenceStore { return f }

type fakeNotifier struct {
	notified []uuid.UUID
}

func (f *fakeNotifier) NotifyReview(userID uuid.UUID) {
	f.notified = append(f.notified, userID)
}
