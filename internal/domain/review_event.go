package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewEvent validation errors
var (
	ErrEventCardIDEmpty = errors.New("review event card ID cannot be empty")
	ErrEventUserIDEmpty = errors.New("review event user ID cannot be empty")

	// ErrInvalidQuality is returned when a review quality rating falls
	// outside the 0-5 range.
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")
)

// Quality rating bounds for a review.
const (
	MinQuality = 0
	MaxQuality = 5
)

// SuccessThreshold is the lowest quality rating counted as a successful
// recall. Ratings below it reset a card to the learning phase.
const SuccessThreshold = 3

// ValidQuality reports whether q is a legal quality rating.
func ValidQuality(q int) bool {
	return q >= MinQuality && q <= MaxQuality
}

// SuccessfulQuality reports whether q counts as a successful recall.
func SuccessfulQuality(q int) bool {
	return q >= SuccessThreshold
}

// ReviewEvent is an immutable log entry recording a single review of a card:
// the quality rating plus the ease factor and interval before and after the
// schedule update. Exactly one event is produced per review; practice
// answers produce none. Events are retained for analytics and achievement
// computation and are never mutated.
type ReviewEvent struct {
	ID               uuid.UUID `json:"id"`
	CardID           uuid.UUID `json:"card_id"`
	UserID           uuid.UUID `json:"user_id"`
	Quality          int       `json:"quality"`
	EaseFactorBefore float64   `json:"ease_factor_before"`
	EaseFactorAfter  float64   `json:"ease_factor_after"`
	IntervalBefore   int       `json:"interval_before"`
	IntervalAfter    int       `json:"interval_after"`
	ReviewedAt       time.Time `json:"reviewed_at"`
}

// Validate checks if the ReviewEvent has valid data.
func (e *ReviewEvent) Validate() error {
	if e.CardID == uuid.Nil {
		return ErrEventCardIDEmpty
	}

	if e.UserID == uuid.Nil {
		return ErrEventUserIDEmpty
	}

	if !ValidQuality(e.Quality) {
		return ErrInvalidQuality
	}

	return nil
}
