package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Scheduling defaults shared with the srs package.
const (
	// DefaultEaseFactor is the starting ease factor for new cards.
	DefaultEaseFactor = 2.5

	// MinEaseFactor is the floor below which the ease factor never drops,
	// preventing cards from becoming impossibly frequent.
	MinEaseFactor = 1.3
)

// CardSchedule validation errors
var (
	ErrScheduleCardIDEmpty = errors.New("card schedule card ID cannot be empty")
	ErrInvalidInterval     = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor   = errors.New("ease factor must be at least the minimum ease factor")
	ErrInvalidRepetitions  = errors.New("repetitions must be greater than or equal to 0")
)

// CardSchedule tracks the spaced-repetition state for a single card.
// There is exactly one schedule per card; it is created with defaults when
// the card is created and mutated only through the srs package.
//
// A card with HasBeenReviewed == false is "new": it is never considered due
// or struggling regardless of its NextReviewAt or EaseFactor.
type CardSchedule struct {
	CardID          uuid.UUID  `json:"card_id"`
	EaseFactor      float64    `json:"ease_factor"`
	Interval        int        `json:"interval"` // days until next review
	Repetitions     int        `json:"repetitions"`
	NextReviewAt    time.Time  `json:"next_review_at"`
	LastReviewedAt  *time.Time `json:"last_reviewed_at,omitempty"`
	HasBeenReviewed bool       `json:"has_been_reviewed"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewCardSchedule creates the default schedule for a freshly created card:
// ease 2.5, zero interval and repetitions, available for review immediately,
// not yet reviewed.
func NewCardSchedule(cardID uuid.UUID) (*CardSchedule, error) {
	now := time.Now().UTC()
	schedule := &CardSchedule{
		CardID:          cardID,
		EaseFactor:      DefaultEaseFactor,
		Interval:        0,
		Repetitions:     0,
		NextReviewAt:    now,
		LastReviewedAt:  nil,
		HasBeenReviewed: false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	return schedule, nil
}

// Validate checks if the CardSchedule has valid data.
func (s *CardSchedule) Validate() error {
	if s.CardID == uuid.Nil {
		return ErrScheduleCardIDEmpty
	}

	if s.Interval < 0 {
		return ErrInvalidInterval
	}

	if s.Repetitions < 0 {
		return ErrInvalidRepetitions
	}

	if s.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	return nil
}

// IsDue reports whether the card is due for review at the given time.
// New cards are never due; they enter sessions through the new-card quota.
func (s *CardSchedule) IsDue(now time.Time) bool {
	return s.HasBeenReviewed && !s.NextReviewAt.After(now)
}

// IsStruggling reports whether the card has a low ease factor, indicating
// the user repeatedly fails it. New cards are never struggling.
func (s *CardSchedule) IsStruggling() bool {
	return s.HasBeenReviewed && s.EaseFactor < 2.0
}
