package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Achievement-specific validation errors
var (
	// ErrAchievementIDEmpty is returned when an achievement ID is empty or nil.
	ErrAchievementIDEmpty = errors.New("achievement ID cannot be empty")

	// ErrAchievementUserIDEmpty is returned when the awarded user ID is empty or nil.
	ErrAchievementUserIDEmpty = errors.New("achievement user ID cannot be empty")

	// ErrAchievementKeyEmpty is returned when an achievement key is empty.
	ErrAchievementKeyEmpty = errors.New("achievement key cannot be empty")
)

// AchievementKind classifies what an achievement's threshold is measured
// against.
type AchievementKind string

const (
	// AchievementKindReviews thresholds are compared against the user's
	// total number of recorded review events.
	AchievementKindReviews AchievementKind = "reviews"
	// AchievementKindStreak thresholds are compared against the user's
	// current study streak in days.
	AchievementKindStreak AchievementKind = "streak"
)

// AchievementDef describes one earnable achievement. The set of definitions
// is fixed at compile time; only awards are stored.
type AchievementDef struct {
	Key       string
	Name      string
	Kind      AchievementKind
	Threshold int
}

// AchievementDefs lists every earnable achievement in award order.
var AchievementDefs = []AchievementDef{
	{Key: "first_review", Name: "First Steps", Kind: AchievementKindReviews, Threshold: 1},
	{Key: "reviews_100", Name: "Century", Kind: AchievementKindReviews, Threshold: 100},
	{Key: "reviews_500", Name: "Scholar", Kind: AchievementKindReviews, Threshold: 500},
	{Key: "reviews_1000", Name: "Master", Kind: AchievementKindReviews, Threshold: 1000},
	{Key: "streak_7", Name: "One Week Streak", Kind: AchievementKindStreak, Threshold: 7},
	{Key: "streak_30", Name: "One Month Streak", Kind: AchievementKindStreak, Threshold: 30},
	{Key: "streak_100", Name: "Hundred Day Streak", Kind: AchievementKindStreak, Threshold: 100},
}

// Achievement records that a user earned a particular achievement. Each
// (user, key) pair is awarded at most once.
type Achievement struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Key       string    `json:"key"`
	AwardedAt time.Time `json:"awarded_at"`
}

// NewAchievement creates an award of the given achievement key to a user.
func NewAchievement(userID uuid.UUID, key string) *Achievement {
	return &Achievement{
		ID:        uuid.New(),
		UserID:    userID,
		Key:       key,
		AwardedAt: time.Now().UTC(),
	}
}

// Validate checks that the achievement data is valid.
func (a *Achievement) Validate() error {
	if a.ID == uuid.Nil {
		return ErrAchievementIDEmpty
	}

	if a.UserID == uuid.Nil {
		return ErrAchievementUserIDEmpty
	}

	if a.Key == "" {
		return ErrAchievementKeyEmpty
	}

	return nil
}
