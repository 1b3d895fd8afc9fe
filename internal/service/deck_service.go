package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// DeckService handles deck management. Every operation scopes access to the
// requesting user; decks of other users surface as ErrDeckNotFound.
type DeckService interface {
	CreateDeck(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Deck, error)
	GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error)
	ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)
	UpdateDeck(ctx context.Context, userID, deckID uuid.UUID, name, description string) (*domain.Deck, error)
	DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error
}

// Verify interface compliance at compile time
var _ DeckService = (*deckServiceImpl)(nil)

type deckServiceImpl struct {
	deckStore store.DeckStore
	logger    *slog.Logger
}

// NewDeckService creates a new DeckService implementation.
func NewDeckService(deckStore store.DeckStore, logger *slog.Logger) DeckService {
	if deckStore == nil {
		panic("deckStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		deckStore: deckStore,
		logger:    logger.With(slog.String("component", "deck_service")),
	}
}

// CreateDeck implements DeckService.CreateDeck.
func (s *deckServiceImpl) CreateDeck(
	ctx context.Context,
	userID uuid.UUID,
	name, description string,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := domain.NewDeck(userID, name, description)
	if err != nil {
		return nil, err
	}

	if err := s.deckStore.Create(ctx, deck); err != nil {
		if errors.Is(err, store.ErrDeckNameExists) {
			return nil, ErrDuplicateDeckName
		}
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to create deck: %w", err)
	}

	log.Debug("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", userID.String()))
	return deck, nil
}

// GetDeck implements DeckService.GetDeck.
func (s *deckServiceImpl) GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	return s.ownedDeck(ctx, userID, deckID)
}

// ListDecks implements DeckService.ListDecks.
func (s *deckServiceImpl) ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	decks, err := s.deckStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	return decks, nil
}

// UpdateDeck implements DeckService.UpdateDeck.
func (s *deckServiceImpl) UpdateDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
	name, description string,
) (*domain.Deck, error) {
	deck, err := s.ownedDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}

	if err := deck.Rename(name, description); err != nil {
		return nil, err
	}

	if err := s.deckStore.Update(ctx, deck); err != nil {
		if errors.Is(err, store.ErrDeckNameExists) {
			return nil, ErrDuplicateDeckName
		}
		return nil, fmt.Errorf("failed to update deck: %w", err)
	}

	return deck, nil
}

// DeleteDeck implements DeckService.DeleteDeck. Cards, schedules and review
// events in the deck go with it (database cascade).
func (s *deckServiceImpl) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	if _, err := s.ownedDeck(ctx, userID, deckID); err != nil {
		return err
	}

	if err := s.deckStore.Delete(ctx, deckID); err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}

	return nil
}

// ownedDeck fetches a deck and verifies ownership, mapping both a missing
// deck and someone else's deck to ErrDeckNotFound.
func (s *deckServiceImpl) ownedDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return nil, ErrDeckNotFound
		}
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	if deck.UserID != userID {
		return nil, ErrDeckNotFound
	}

	return deck, nil
}
