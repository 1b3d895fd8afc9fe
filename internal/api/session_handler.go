package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/api/shared"
	"github.com/mnemo-app/mnemo-api/internal/domain/session"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/service/study"
)

// SessionResponse is the payload for a selected study session.
type SessionResponse struct {
	Mode  string         `json:"mode"`
	Items []session.Item `json:"items"`
}

// SessionHandler handles study session selection requests.
type SessionHandler struct {
	studyService study.StudyService
	logger       *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(studyService study.StudyService, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "session_handler")),
	}
}

// GetSession handles GET /sessions requests. The mode query parameter picks
// the session mode (defaulting to standard); deck_id optionally restricts
// the pool to one deck. An empty session yields 204 No Content.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	mode := session.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = session.ModeStandard
	}

	var deckID *uuid.UUID
	if raw := r.URL.Query().Get("deck_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck_id format")
			return
		}
		deckID = &id
	}

	items, err := h.studyService.SelectSession(r.Context(), userID, mode, deckID)

	// An empty pool is a normal outcome, not an error response.
	if errors.Is(err, study.ErrNothingToReview) {
		log.Debug("nothing to review",
			slog.String("user_id", userID.String()),
			slog.String("mode", string(mode)))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to build study session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("session selected",
		slog.String("user_id", userID.String()),
		slog.String("mode", string(mode)),
		slog.Int("items", len(items)))
	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		Mode:  string(mode),
		Items: items,
	})
}
