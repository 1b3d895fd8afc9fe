package api

import (
	"log/slog"
	"net/http"

	"github.com/mnemo-app/mnemo-api/internal/api/shared"
	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/service"
)

// CardListResponse wraps a card listing.
type CardListResponse struct {
	Cards []*domain.Card `json:"cards"`
}

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// CreateCard handles POST /decks/{id}/cards requests.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	deckID, ok := pathUUID(w, r, "id", "Deck")
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.cardService.CreateCard(
		r.Context(),
		userID,
		deckID,
		domain.CardType(req.Type),
		req.Front,
		req.Back,
		req.Notes,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card created",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deckID.String()),
		slog.String("card_id", card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// ListCards handles GET /decks/{id}/cards requests.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	deckID, ok := pathUUID(w, r, "id", "Deck")
	if !ok {
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), userID, deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if cards == nil {
		cards = []*domain.Card{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CardListResponse{Cards: cards})
}

// GetCard handles GET /cards/{id} requests.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	cardID, ok := pathUUID(w, r, "id", "Card")
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(r.Context(), userID, cardID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// UpdateCard handles PUT /cards/{id} requests.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	cardID, ok := pathUUID(w, r, "id", "Card")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.cardService.UpdateCard(
		r.Context(),
		userID,
		cardID,
		domain.CardType(req.Type),
		req.Front,
		req.Back,
		req.Notes,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteCard handles DELETE /cards/{id} requests.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	cardID, ok := pathUUID(w, r, "id", "Card")
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), userID, cardID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card deleted",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()))
	w.WriteHeader(http.StatusNoContent)
}
