// Package session builds study batches from card and schedule snapshots.
// Selection is a pure function of the snapshot, the user's session policy,
// and the clock; no server-side session state exists. The caller re-invokes
// the selector whenever a new batch is wanted.
package session

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/domain/cloze"
)

// Mode selects which cards make up a study session.
type Mode string

// Supported session modes. A deck filter is orthogonal to the mode and is
// applied by the caller before selection.
const (
	// ModeStandard presents all due cards (capped by the per-session
	// limit) followed by a limited number of new cards.
	ModeStandard Mode = "standard"

	// ModeStruggling presents cards with a low ease factor, padded or
	// truncated to a fixed session size.
	ModeStruggling Mode = "struggling"

	// ModePractice presents cards that are not yet due, soonest first.
	// Practice answers never touch the schedule.
	ModePractice Mode = "practice"
)

// Valid reports whether the mode is one of the supported values.
func (m Mode) Valid() bool {
	switch m {
	case ModeStandard, ModeStruggling, ModePractice:
		return true
	default:
		return false
	}
}

// Selection errors
var (
	// ErrNothingToReview signals an empty batch. It is a valid terminal
	// outcome, not a failure: the caller informs the user instead of
	// starting a session.
	ErrNothingToReview = errors.New("no cards to review")

	// ErrInvalidMode is returned for an unrecognized session mode.
	ErrInvalidMode = errors.New("invalid session mode")
)

// CardState pairs a card with its current schedule for selection.
type CardState struct {
	Card     *domain.Card
	Schedule *domain.CardSchedule
}

// Item is a single presentable unit of a study session. A cloze card with
// several distinct group numbers expands into one item per group; basic and
// reverse cards expand to exactly one item with ActiveClozeGroup zero.
type Item struct {
	CardID           uuid.UUID       `json:"card_id"`
	Front            string          `json:"front"`
	Back             string          `json:"back,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CardType         domain.CardType `json:"card_type"`
	ActiveClozeGroup int             `json:"active_cloze_group,omitempty"`
	Prompt           string          `json:"prompt"`
	Answer           string          `json:"answer,omitempty"`
}

// Selector builds session batches. Shuffling uses a plain math/rand source:
// the goal is unpredictable card order within a session, not cryptographic
// randomness. A single Selector serves every request, so the rng (which is
// not safe for concurrent use) is guarded by a mutex.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a Selector. A nil rng gets a time-seeded source;
// tests pass a fixed seed for determinism.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng}
}

// Select builds the ordered batch of presentable items for one session.
// The snapshot should already be restricted to the requesting user (and
// deck, when a deck filter applies). Returns ErrNothingToReview when the
// mode's pool is empty.
func (s *Selector) Select(
	snapshot []CardState,
	mode Mode,
	policy domain.SessionPolicy,
	now time.Time,
) ([]Item, error) {
	switch mode {
	case ModeStandard:
		return s.selectStandard(snapshot, policy, now)
	case ModeStruggling:
		return s.selectStruggling(snapshot, policy)
	case ModePractice:
		return s.selectPractice(snapshot, policy, now)
	default:
		return nil, ErrInvalidMode
	}
}

// selectStandard gathers every due card (oldest due first, optionally
// capped), appends up to NewCardsPerDay never-reviewed cards, then expands
// and shuffles.
func (s *Selector) selectStandard(
	snapshot []CardState,
	policy domain.SessionPolicy,
	now time.Time,
) ([]Item, error) {
	var due, fresh []CardState
	for _, cs := range snapshot {
		switch {
		case cs.Schedule.IsDue(now):
			due = append(due, cs)
		case !cs.Schedule.HasBeenReviewed:
			fresh = append(fresh, cs)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].Schedule.NextReviewAt.Before(due[j].Schedule.NextReviewAt)
	})

	if policy.MaxReviewsPerSession > 0 && len(due) > policy.MaxReviewsPerSession {
		due = due[:policy.MaxReviewsPerSession]
	}
	if len(fresh) > policy.NewCardsPerDay {
		fresh = fresh[:policy.NewCardsPerDay]
	}

	items := expand(append(due, fresh...))
	if len(items) == 0 {
		return nil, ErrNothingToReview
	}

	s.shuffle(items)
	return items, nil
}

// selectStruggling gathers every low-ease card, expands, shuffles, and then
// fits the batch to the fixed special-session size: oversized batches are
// truncated (a random sample, since the shuffle came first) and undersized
// batches are padded by cycling through the shuffled items, followed by a
// second shuffle so repeats are not clustered.
func (s *Selector) selectStruggling(
	snapshot []CardState,
	policy domain.SessionPolicy,
) ([]Item, error) {
	var struggling []CardState
	for _, cs := range snapshot {
		if cs.Schedule.IsStruggling() {
			struggling = append(struggling, cs)
		}
	}

	items := expand(struggling)
	if len(items) == 0 {
		return nil, ErrNothingToReview
	}

	s.shuffle(items)

	target := policy.SpecialSessionSize
	if target <= 0 {
		target = domain.DefaultSpecialSessionSize
	}

	switch {
	case len(items) > target:
		items = items[:target]
	case len(items) < target:
		base := make([]Item, len(items))
		copy(base, items)
		for len(items) < target {
			items = append(items, base[len(items)%len(base)])
		}
		s.shuffle(items)
	}

	return items, nil
}

// selectPractice gathers cards that are not yet due, soonest first, takes
// up to the special-session size, then expands and shuffles. Practice lets
// a user keep a daily streak alive without touching the schedule.
func (s *Selector) selectPractice(
	snapshot []CardState,
	policy domain.SessionPolicy,
	now time.Time,
) ([]Item, error) {
	var upcoming []CardState
	for _, cs := range snapshot {
		if cs.Schedule.HasBeenReviewed && cs.Schedule.NextReviewAt.After(now) {
			upcoming = append(upcoming, cs)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Schedule.NextReviewAt.Before(upcoming[j].Schedule.NextReviewAt)
	})

	target := policy.SpecialSessionSize
	if target <= 0 {
		target = domain.DefaultSpecialSessionSize
	}
	if len(upcoming) > target {
		upcoming = upcoming[:target]
	}

	items := expand(upcoming)
	if len(items) == 0 {
		return nil, ErrNothingToReview
	}

	s.shuffle(items)
	return items, nil
}

// expand converts cards into presentable items, splitting cloze cards into
// one item per distinct group number. Expansion happens before the final
// shuffle so blanks from the same card are not guaranteed adjacent.
func expand(cards []CardState) []Item {
	var items []Item
	for _, cs := range cards {
		card := cs.Card

		if card.Type == domain.CardTypeCloze {
			for _, n := range cloze.Numbers(card.Front) {
				items = append(items, Item{
					CardID:           card.ID,
					Front:            card.Front,
					Back:             card.Back,
					Notes:            card.Notes,
					CardType:         card.Type,
					ActiveClozeGroup: n,
					Prompt:           cloze.RenderQuestion(card.Front, n),
					Answer:           cloze.RenderAnswer(card.Front, n),
				})
			}
			continue
		}

		items = append(items, Item{
			CardID:   card.ID,
			Front:    card.Front,
			Back:     card.Back,
			Notes:    card.Notes,
			CardType: card.Type,
			Prompt:   card.Front,
			Answer:   card.Back,
		})
	}
	return items
}

func (s *Selector) shuffle(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
