package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CardType identifies how a card is presented during review.
type CardType string

// Supported card types.
const (
	// CardTypeBasic is a plain front/back card.
	CardTypeBasic CardType = "basic"

	// CardTypeCloze is a card whose front contains one or more cloze
	// deletions in {{cN::text}} syntax. Each distinct cloze group number
	// produces a separate presentable item in a study session.
	CardTypeCloze CardType = "cloze"

	// CardTypeReverse is a front/back card that is also quizzed back-to-front.
	CardTypeReverse CardType = "reverse"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardUserIDEmpty is returned when a card's user ID is empty or nil.
	ErrCardUserIDEmpty = errors.New("card user ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = errors.New("card deck ID cannot be empty")

	// ErrCardFrontEmpty is returned when a card's front side is empty.
	ErrCardFrontEmpty = errors.New("card front cannot be empty")
)

// Card represents a single flashcard. The owner's user ID is stored on the
// card as well as the deck so ownership checks do not require a join.
type Card struct {
	ID        uuid.UUID `json:"id"`
	DeckID    uuid.UUID `json:"deck_id"`
	UserID    uuid.UUID `json:"user_id"`
	Type      CardType  `json:"card_type"`
	Front     string    `json:"front"`
	Back      string    `json:"back,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCard creates a new Card in the given deck.
// Returns an error if validation fails.
func NewCard(userID, deckID uuid.UUID, cardType CardType, front, back, notes string) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:        uuid.New(),
		DeckID:    deckID,
		UserID:    userID,
		Type:      cardType,
		Front:     front,
		Back:      back,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if !c.Type.Valid() {
		return ErrInvalidCardType
	}

	if c.Front == "" {
		return ErrCardFrontEmpty
	}

	return nil
}

// UpdateContent replaces the card's text fields and bumps UpdatedAt.
// Returns an error if the resulting card is invalid.
func (c *Card) UpdateContent(cardType CardType, front, back, notes string) error {
	orig := *c
	c.Type = cardType
	c.Front = front
	c.Back = back
	c.Notes = notes

	if err := c.Validate(); err != nil {
		*c = orig
		return err
	}

	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Valid reports whether the card type is one of the supported values.
func (t CardType) Valid() bool {
	switch t {
	case CardTypeBasic, CardTypeCloze, CardTypeReverse:
		return true
	default:
		return false
	}
}
