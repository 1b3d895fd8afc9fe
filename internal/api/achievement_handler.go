package api

import (
	"log/slog"
	"net/http"

	"github.com/mnemo-app/mnemo-api/internal/api/shared"
	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/service/achievement"
)

// AchievementListResponse wraps an achievement listing.
type AchievementListResponse struct {
	Achievements []*domain.Achievement `json:"achievements"`
}

// AchievementHandler handles achievement listing requests.
type AchievementHandler struct {
	achievementService achievement.Service
	logger             *slog.Logger
}

// NewAchievementHandler creates a new AchievementHandler.
func NewAchievementHandler(achievementService achievement.Service, logger *slog.Logger) *AchievementHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AchievementHandler")
	}

	return &AchievementHandler{
		achievementService: achievementService,
		logger:             logger.With(slog.String("component", "achievement_handler")),
	}
}

// ListAchievements handles GET /achievements requests.
func (h *AchievementHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	achievements, err := h.achievementService.List(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list achievements", err)
		return
	}

	if achievements == nil {
		achievements = []*domain.Achievement{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AchievementListResponse{Achievements: achievements})
}
