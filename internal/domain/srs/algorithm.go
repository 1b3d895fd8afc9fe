// Package srs implements the SM-2 spaced-repetition algorithm as pure
// functions over domain.CardSchedule values. The package never persists
// anything: callers receive a new schedule plus an immutable review event
// and are responsible for durable storage of both.
package srs

import (
	"math"
	"time"

	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// Quality rating semantics, from complete blackout to perfect recall.
const (
	QualityBlackout  = 0 // no recognition at all
	QualityWrongEasy = 1 // wrong, but the answer seemed easy once seen
	QualityWrongHard = 2 // wrong, but remembered upon seeing the answer
	QualityHard      = 3 // correct with significant difficulty
	QualityGood      = 4 // correct with some hesitation
	QualityEasy      = 5 // perfect response, immediate recall
)

// calculateEaseFactor computes the new ease factor for a review of the
// given quality:
//
//	EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
//
// The adjustment is monotonic in q: +0.1 at q=5, exactly 0 at q=4, and
// progressively larger penalties below that (-0.8 at q=0). The result is
// floored at params.MinEaseFactor.
func calculateEaseFactor(currentEase float64, quality int, params *Params) float64 {
	miss := float64(5 - quality)
	newEase := currentEase + (0.1 - miss*(0.08+miss*0.02))

	if newEase < params.MinEaseFactor {
		return params.MinEaseFactor
	}
	return newEase
}

// calculateInterval computes the next interval in days and the updated
// consecutive-success count.
//
// A failed review (quality below the failure threshold) resets the card to
// the learning phase: one day, zero repetitions, regardless of prior
// progress. Successful reviews follow the SM-2 ladder: 1 day, then 6 days,
// then the previous interval multiplied by the pre-update ease factor.
func calculateInterval(
	currentInterval int,
	repetitions int,
	easeFactor float64,
	quality int,
	params *Params,
) (newInterval, newRepetitions int) {
	if quality < params.FailureThreshold {
		return 1, 0
	}

	newRepetitions = repetitions + 1

	switch repetitions {
	case 0:
		newInterval = params.FirstInterval
	case 1:
		newInterval = params.SecondInterval
	default:
		newInterval = int(math.Round(float64(currentInterval) * easeFactor))
	}

	return newInterval, newRepetitions
}

// EstimateRetention estimates the probability that a card is still
// remembered at its scheduled review time. It is informational only: a
// simplified forgetting-curve model that assumes roughly 90% retention for
// a well-calibrated card and grants easier cards (higher ease factor) a
// small boost. The result is always in (0, 1] and increases with the ease
// factor. The interval parameter is accepted for callers that want to apply
// interval-sensitive models later but does not affect the current estimate.
func EstimateRetention(interval int, easeFactor float64, params *Params) float64 {
	_ = interval

	span := domain.DefaultEaseFactor - params.MinEaseFactor
	boost := 0.05 * (easeFactor - params.MinEaseFactor) / span

	retention := params.BaseRetention + boost
	if retention > params.MaxRetention {
		return params.MaxRetention
	}
	return retention
}

// review computes the full schedule update for a single review without
// touching the input. The returned schedule is a new value; the returned
// event captures the before/after ease and interval for the audit log.
func review(
	schedule *domain.CardSchedule,
	quality int,
	now time.Time,
	params *Params,
) (*domain.CardSchedule, *domain.ReviewEvent) {
	newInterval, newRepetitions := calculateInterval(
		schedule.Interval,
		schedule.Repetitions,
		schedule.EaseFactor,
		quality,
		params,
	)
	newEase := calculateEaseFactor(schedule.EaseFactor, quality, params)

	reviewedAt := now.UTC()
	newSchedule := &domain.CardSchedule{
		CardID:          schedule.CardID,
		EaseFactor:      newEase,
		Interval:        newInterval,
		Repetitions:     newRepetitions,
		NextReviewAt:    reviewedAt.AddDate(0, 0, newInterval),
		LastReviewedAt:  &reviewedAt,
		HasBeenReviewed: true,
		CreatedAt:       schedule.CreatedAt,
		UpdatedAt:       reviewedAt,
	}

	event := &domain.ReviewEvent{
		CardID:           schedule.CardID,
		Quality:          quality,
		EaseFactorBefore: schedule.EaseFactor,
		EaseFactorAfter:  newEase,
		IntervalBefore:   schedule.Interval,
		IntervalAfter:    newInterval,
		ReviewedAt:       reviewedAt,
	}

	return newSchedule, event
}
