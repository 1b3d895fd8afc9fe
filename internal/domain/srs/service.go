package srs

import (
	"errors"
	"time"

	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// Common errors
var (
	// ErrNilSchedule is returned when the input schedule is nil.
	ErrNilSchedule = errors.New("card schedule cannot be nil")

	// ErrInvalidQuality is returned when the quality rating is outside 0-5.
	// The input schedule is never touched in that case.
	ErrInvalidQuality = domain.ErrInvalidQuality
)

// Service defines the interface for SRS scheduling operations.
type Service interface {
	// Review computes the new schedule for a card given a quality rating,
	// returning the updated schedule and the immutable review event. The
	// input schedule is not modified. The event's UserID is left unset;
	// the caller fills it before persisting.
	Review(
		schedule *domain.CardSchedule,
		quality int,
		now time.Time,
	) (*domain.CardSchedule, *domain.ReviewEvent, error)

	// EstimateRetention estimates the retention probability for a card
	// with the given interval and ease factor. Informational only.
	EstimateRetention(interval int, easeFactor float64) float64
}

type defaultService struct {
	params *Params
}

// NewDefaultService creates an SRS service with the classic SM-2 parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates an SRS service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// Review implements Service.
func (s *defaultService) Review(
	schedule *domain.CardSchedule,
	quality int,
	now time.Time,
) (*domain.CardSchedule, *domain.ReviewEvent, error) {
	if schedule == nil {
		return nil, nil, ErrNilSchedule
	}

	if !domain.ValidQuality(quality) {
		return nil, nil, ErrInvalidQuality
	}

	newSchedule, event := review(schedule, quality, now, s.params)
	return newSchedule, event, nil
}

// EstimateRetention implements Service.
func (s *defaultService) EstimateRetention(interval int, easeFactor float64) float64 {
	return EstimateRetention(interval, easeFactor, s.params)
}
