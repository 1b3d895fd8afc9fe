// Package review implements scheduled review and practice submission: the
// transactional flow from a quality rating to an updated schedule, an
// appended review event, and a streak update.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
)

// ReviewResult is the outcome of a scheduled review: the updated schedule,
// the recorded event, and an informational retention estimate.
type ReviewResult struct {
	Schedule  *domain.CardSchedule `json:"schedule"`
	Event     *domain.ReviewEvent  `json:"event"`
	Retention float64              `json:"retention_estimate"`
}

// ReviewService processes review and practice answers for flashcards.
type ReviewService interface {
	// SubmitReview processes a scheduled review of a card. In a single
	// transaction it verifies ownership, locks the schedule row, applies
	// the scheduling algorithm, persists the new schedule, appends the
	// review event, and updates the user's study streak.
	//
	// Returns ErrInvalidQuality before any state change when quality is
	// outside 0-5, ErrCardNotFound when the card does not exist, and
	// ErrCardNotOwned when it belongs to another user.
	SubmitReview(
		ctx context.Context,
		userID uuid.UUID,
		cardID uuid.UUID,
		quality int,
	) (*ReviewResult, error)

	// SubmitPractice processes a practice answer. Practice never mutates
	// the schedule and never records a review event; it only updates the
	// study streak. Validation mirrors SubmitReview.
	SubmitPractice(
		ctx context.Context,
		userID uuid.UUID,
		cardID uuid.UUID,
		quality int,
	) error
}

// Common error types for ReviewService
var (
	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardNotOwned indicates that the user does not own the card.
	ErrCardNotOwned = errors.New("unauthorized access: card not owned by user")

	// ErrInvalidQuality indicates the quality rating is outside 0-5.
	ErrInvalidQuality = domain.ErrInvalidQuality
)

// ServiceError wraps errors from the review service with additional context,
// so consumers can differentiate error types with errors.As instead of
// string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "submit_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
