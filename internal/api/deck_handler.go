package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/api/shared"
	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/service"
)

// DeckListResponse wraps a deck listing.
type DeckListResponse struct {
	Decks []*domain.Deck `json:"decks"`
}

// DeckHandler handles deck-related HTTP requests.
type DeckHandler struct {
	deckService service.DeckService
	logger      *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(deckService service.DeckService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		deckService: deckService,
		logger:      logger.With(slog.String("component", "deck_handler")),
	}
}

// CreateDeck handles POST /decks requests.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req CreateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	deck, err := h.deckService.CreateDeck(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("deck created",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deck.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// ListDecks handles GET /decks requests.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	decks, err := h.deckService.ListDecks(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list decks", err)
		return
	}

	if decks == nil {
		decks = []*domain.Deck{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeckListResponse{Decks: decks})
}

// GetDeck handles GET /decks/{id} requests.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	deckID, ok := pathUUID(w, r, "id", "Deck")
	if !ok {
		return
	}

	deck, err := h.deckService.GetDeck(r.Context(), userID, deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// UpdateDeck handles PUT /decks/{id} requests.
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	deckID, ok := pathUUID(w, r, "id", "Deck")
	if !ok {
		return
	}

	var req UpdateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	deck, err := h.deckService.UpdateDeck(r.Context(), userID, deckID, req.Name, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// DeleteDeck handles DELETE /decks/{id} requests.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	deckID, ok := pathUUID(w, r, "id", "Deck")
	if !ok {
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), userID, deckID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("deck deleted",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deckID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// requestUserID extracts the authenticated user ID from the request context,
// responding with 401 when it is missing or invalid.
func requestUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a UUID URL parameter, responding with 400 on a missing or
// malformed value. entity names the resource for the error message.
func pathUUID(w http.ResponseWriter, r *http.Request, param, entity string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, entity+" ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+entity+" ID format")
		return uuid.Nil, false
	}

	return id, true
}
