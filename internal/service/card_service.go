package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/domain/cloze"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// CardService handles card management. Card creation also creates the
// default schedule in the same transaction so a card never exists without
// one.
type CardService interface {
	CreateCard(
		ctx context.Context,
		userID, deckID uuid.UUID,
		cardType domain.CardType,
		front, back, notes string,
	) (*domain.Card, error)
	GetCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)
	ListCards(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error)
	UpdateCard(
		ctx context.Context,
		userID, cardID uuid.UUID,
		cardType domain.CardType,
		front, back, notes string,
	) (*domain.Card, error)
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

// Verify interface compliance at compile time
var _ CardService = (*cardServiceImpl)(nil)

type cardServiceImpl struct {
	cardStore     store.CardStore
	deckStore     store.DeckStore
	scheduleStore store.ScheduleStore
	logger        *slog.Logger

	// runTx executes a function within a transaction; injectable for tests.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewCardService creates a new CardService implementation.
func NewCardService(
	db *sql.DB,
	cardStore store.CardStore,
	deckStore store.DeckStore,
	scheduleStore store.ScheduleStore,
	logger *slog.Logger,
) CardService {
	if db == nil {
		panic("db cannot be nil")
	}
	if cardStore == nil || deckStore == nil || scheduleStore == nil {
		panic("stores cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cardStore:     cardStore,
		deckStore:     deckStore,
		scheduleStore: scheduleStore,
		logger:        logger.With(slog.String("component", "card_service")),
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}
}

// CreateCard implements CardService.CreateCard.
func (s *cardServiceImpl) CreateCard(
	ctx context.Context,
	userID, deckID uuid.UUID,
	cardType domain.CardType,
	front, back, notes string,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.checkDeckOwnership(ctx, userID, deckID); err != nil {
		return nil, err
	}

	if err := validateClozeContent(cardType, front); err != nil {
		return nil, err
	}

	card, err := domain.NewCard(userID, deckID, cardType, front, back, notes)
	if err != nil {
		return nil, err
	}

	schedule, err := domain.NewCardSchedule(card.ID)
	if err != nil {
		return nil, err
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.cardStore.WithTx(tx).Create(ctx, card); err != nil {
			return err
		}
		return s.scheduleStore.WithTx(tx).Create(ctx, schedule)
	})
	if err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, &ServiceError{Operation: "create_card", Message: "transaction failed", Err: err}
	}

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", deckID.String()))
	return card, nil
}

// GetCard implements CardService.GetCard.
func (s *cardServiceImpl) GetCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error) {
	return s.ownedCard(ctx, userID, cardID)
}

// ListCards implements CardService.ListCards.
func (s *cardServiceImpl) ListCards(ctx context.Context, userID, deckID uuid.UUID) ([]*domain.Card, error) {
	if err := s.checkDeckOwnership(ctx, userID, deckID); err != nil {
		return nil, err
	}

	cards, err := s.cardStore.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return cards, nil
}

// UpdateCard implements CardService.UpdateCard.
func (s *cardServiceImpl) UpdateCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	cardType domain.CardType,
	front, back, notes string,
) (*domain.Card, error) {
	card, err := s.ownedCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	if err := validateClozeContent(cardType, front); err != nil {
		return nil, err
	}

	if err := card.UpdateContent(cardType, front, back, notes); err != nil {
		return nil, err
	}

	if err := s.cardStore.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return card, nil
}

// DeleteCard implements CardService.DeleteCard. The schedule and review
// events go with the card (database cascade).
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	if _, err := s.ownedCard(ctx, userID, cardID); err != nil {
		return err
	}

	if err := s.cardStore.Delete(ctx, cardID); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	return nil
}

// ownedCard fetches a card and verifies ownership, mapping both a missing
// card and someone else's card to ErrCardNotFound.
func (s *cardServiceImpl) ownedCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error) {
	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	if card.UserID != userID {
		return nil, ErrCardNotFound
	}

	return card, nil
}

// checkDeckOwnership verifies the deck exists and belongs to the user.
func (s *cardServiceImpl) checkDeckOwnership(ctx context.Context, userID, deckID uuid.UUID) error {
	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return ErrDeckNotFound
		}
		return fmt.Errorf("failed to get deck: %w", err)
	}

	if deck.UserID != userID {
		return ErrDeckNotFound
	}

	return nil
}

// validateClozeContent rejects cloze cards whose front has no valid cloze
// deletions, listing the syntax problems in the error message.
func validateClozeContent(cardType domain.CardType, front string) error {
	if cardType != domain.CardTypeCloze {
		return nil
	}

	if problems := cloze.Validate(front); len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidClozeSyntax, strings.Join(problems, "; "))
	}

	return nil
}
