package api

import (
	"log/slog"
	"net/http"

	"github.com/mnemo-app/mnemo-api/internal/api/shared"
	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/service/review"
)

// ReviewHandler handles review and practice submissions.
type ReviewHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReview handles POST /cards/{id}/review requests. A scheduled review
// updates the card's schedule and records a review event.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	cardID, ok := pathUUID(w, r, "id", "Card")
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.reviewService.SubmitReview(r.Context(), userID, cardID, *req.Quality)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("review submitted",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.Int("quality", *req.Quality))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// PracticeResponse reports whether a practice answer counted as a
// successful recall. Practice never changes the schedule.
type PracticeResponse struct {
	Correct bool `json:"correct"`
}

// SubmitPractice handles POST /cards/{id}/practice requests. Practice
// answers never touch the schedule; only the study streak moves.
func (h *ReviewHandler) SubmitPractice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	cardID, ok := pathUUID(w, r, "id", "Card")
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.reviewService.SubmitPractice(r.Context(), userID, cardID, *req.Quality); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit practice answer"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("practice answer submitted",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, PracticeResponse{
		Correct: domain.SuccessfulQuality(*req.Quality),
	})
}
