package service

import (
	"errors"
	"fmt"
)

// Common service errors
var (
	// ErrDeckNotFound indicates that the deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrNotOwned indicates the entity belongs to another user. Handlers
	// map this to 404 so resource existence is not leaked.
	ErrNotOwned = errors.New("unauthorized access: not owned by user")

	// ErrDuplicateDeckName indicates the user already owns a deck with the
	// requested name.
	ErrDuplicateDeckName = errors.New("deck name already in use")

	// ErrEmailTaken indicates a user with the given email already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidClozeSyntax indicates a cloze card's front contains no
	// valid cloze deletions or malformed ones.
	ErrInvalidClozeSyntax = errors.New("invalid cloze syntax")
)

// ServiceError wraps errors from application services with the operation
// that failed, supporting errors.Is/errors.As through Unwrap.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
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
