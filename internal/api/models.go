package api

import (
	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh
// endpoint. Both tokens are rotated on every refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CreateDeckRequest defines the payload for deck creation.
type CreateDeckRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateDeckRequest defines the payload for deck updates.
type UpdateDeckRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// CreateCardRequest defines the payload for card creation.
type CreateCardRequest struct {
	Type  string `json:"card_type" validate:"required,oneof=basic cloze reverse"`
	Front string `json:"front"     validate:"required,min=1"`
	Back  string `json:"back"`
	Notes string `json:"notes"`
}

// UpdateCardRequest defines the payload for card updates.
type UpdateCardRequest struct {
	Type  string `json:"card_type" validate:"required,oneof=basic cloze reverse"`
	Front string `json:"front"     validate:"required,min=1"`
	Back  string `json:"back"`
	Notes string `json:"notes"`
}

// SubmitReviewRequest defines the payload for review and practice answers.
// Quality is a pointer so a missing field is distinguishable from 0.
type SubmitReviewRequest struct {
	Quality *int `json:"quality" validate:"required,min=0,max=5"`
}
