package srs

import "github.com/mnemo-app/mnemo-api/internal/domain"

// Params defines the configurable constants of the SM-2 algorithm.
type Params struct {
	// MinEaseFactor is the floor applied to every ease-factor update.
	MinEaseFactor float64

	// FirstInterval is the interval in days after the first successful
	// review of a card.
	FirstInterval int

	// SecondInterval is the interval in days after the second consecutive
	// successful review.
	SecondInterval int

	// FailureThreshold is the lowest quality rating counted as a success.
	// Ratings below it reset the card to the learning phase.
	FailureThreshold int

	// BaseRetention is the assumed retention probability at the scheduled
	// review time for a card at the minimum ease factor.
	BaseRetention float64

	// MaxRetention caps the retention estimate.
	MaxRetention float64
}

// NewDefaultParams returns the classic SM-2 parameter set.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:    domain.MinEaseFactor,
		FirstInterval:    1,
		SecondInterval:   6,
		FailureThreshold: domain.SuccessThreshold,
		BaseRetention:    0.9,
		MaxRetention:     0.99,
	}
}
