package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Preference defaults.
const (
	// DefaultNewCardsPerDay is the number of new cards appended to a
	// standard session when the user has not configured a limit.
	DefaultNewCardsPerDay = 10

	// DefaultSpecialSessionSize is the fixed target size for struggling
	// and practice sessions.
	DefaultSpecialSessionSize = 20
)

// Preferences validation errors
var (
	ErrPrefsUserIDEmpty   = errors.New("preferences user ID cannot be empty")
	ErrNegativeMaxReviews = errors.New("max reviews per session cannot be negative")
	ErrNegativeNewPerDay  = errors.New("new cards per day cannot be negative")
	ErrInvalidSessionSize = errors.New("cards per session must be greater than 0")
)

// Preferences holds a user's study policy and streak counters.
//
// MaxReviewsPerSession of 0 means unlimited: a standard session includes
// every due card. NewCardsPerDay is a per-request slice limit on the new
// card queue, not a rolling daily counter; a user starting several sessions
// in one day can see more than NewCardsPerDay distinct new cards.
type Preferences struct {
	UserID               uuid.UUID  `json:"user_id"`
	MaxReviewsPerSession int        `json:"max_reviews_per_session"`
	NewCardsPerDay       int        `json:"new_cards_per_day"`
	CardsPerSession      int        `json:"cards_per_session"`
	Theme                string     `json:"theme"`
	CardTextSize         string     `json:"card_text_size"`
	CurrentStreak        int        `json:"current_streak"`
	LongestStreak        int        `json:"longest_streak"`
	LastStudyDate        *time.Time `json:"last_study_date,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// NewPreferences creates default preferences for a user.
func NewPreferences(userID uuid.UUID) (*Preferences, error) {
	now := time.Now().UTC()
	prefs := &Preferences{
		UserID:               userID,
		MaxReviewsPerSession: 0, // unlimited
		NewCardsPerDay:       DefaultNewCardsPerDay,
		CardsPerSession:      DefaultSpecialSessionSize,
		Theme:                "system",
		CardTextSize:         "large",
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	return prefs, nil
}

// Validate checks if the Preferences have valid data.
func (p *Preferences) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrPrefsUserIDEmpty
	}

	if p.MaxReviewsPerSession < 0 {
		return ErrNegativeMaxReviews
	}

	if p.NewCardsPerDay < 0 {
		return ErrNegativeNewPerDay
	}

	if p.CardsPerSession <= 0 {
		return ErrInvalidSessionSize
	}

	return nil
}

// RecordStudy advances the user's daily streak for a study action at the
// given time. Studying again on the same day keeps the streak, studying on
// the next calendar day (UTC) increments it, and any gap resets it to 1.
// LongestStreak tracks the maximum ever reached.
func (p *Preferences) RecordStudy(now time.Time) {
	today := now.UTC().Truncate(24 * time.Hour)

	switch {
	case p.LastStudyDate == nil:
		p.CurrentStreak = 1
	case p.LastStudyDate.Equal(today):
		// Already counted today.
	case p.LastStudyDate.Equal(today.AddDate(0, 0, -1)):
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}

	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}

	p.LastStudyDate = &today
	p.UpdatedAt = now.UTC()
}

// SessionPolicy is the slice of preferences the session selector consumes.
type SessionPolicy struct {
	MaxReviewsPerSession int
	NewCardsPerDay       int
	SpecialSessionSize   int
}

// Policy extracts the session policy from the preferences.
func (p *Preferences) Policy() SessionPolicy {
	return SessionPolicy{
		MaxReviewsPerSession: p.MaxReviewsPerSession,
		NewCardsPerDay:       p.NewCardsPerDay,
		SpecialSessionSize:   p.CardsPerSession,
	}
}
