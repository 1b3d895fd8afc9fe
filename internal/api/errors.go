package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mnemo-app/mnemo-api/internal/service"
	"github.com/mnemo-app/mnemo-api/internal/service/auth"
	"github.com/mnemo-app/mnemo-api/internal/service/review"
	"github.com/mnemo-app/mnemo-api/internal/service/study"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, review.ErrCardNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, service.ErrCardNotFound),
		errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDuplicateDeckName),
		errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, review.ErrInvalidQuality),
		errors.Is(err, service.ErrInvalidClozeSyntax),
		errors.Is(err, study.ErrInvalidMode),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Special cases
	case errors.Is(err, study.ErrNothingToReview):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, review.ErrCardNotOwned):
		return "You do not own this card"

	case errors.Is(err, service.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, service.ErrCardNotFound),
		errors.Is(err, review.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, service.ErrDuplicateDeckName):
		return "A deck with this name already exists"

	case errors.Is(err, review.ErrInvalidQuality):
		return "Quality must be between 0 and 5"

	case errors.Is(err, service.ErrInvalidClozeSyntax):
		return "Cloze cards require at least one valid {{cN::text}} deletion"

	case errors.Is(err, study.ErrInvalidMode):
		return "Invalid session mode"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
