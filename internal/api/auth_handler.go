package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/api/shared"
	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/service"
	"github.com/mnemo-app/mnemo-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userService   service.UserService
	jwtService    auth.JWTService
	tokenLifetime time.Duration
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// tokenLifetime is the access token lifetime, used to report expiry to
// clients.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	tokenLifetime time.Duration,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		userService:   userService,
		jwtService:    jwtService,
		tokenLifetime: tokenLifetime,
		logger:        logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /auth/register requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		if isUserValidationError(err) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create user", err)
		return
	}

	resp, err := h.tokenPair(r, user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to authenticate user", err)
		return
	}

	resp, err := h.tokenPair(r, user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// RefreshToken handles POST /auth/refresh requests. A valid refresh token is
// exchanged for a fresh token pair; both tokens rotate.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	resp, err := h.tokenPair(r, claims.UserID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
	})
}

// tokenPair generates an access/refresh token pair for the user.
func (h *AuthHandler) tokenPair(r *http.Request, userID uuid.UUID) (AuthResponse, error) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), userID)
	if err != nil {
		return AuthResponse{}, err
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), userID)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().UTC().Add(h.tokenLifetime).Format(time.RFC3339),
	}, nil
}

// isUserValidationError reports whether the error is one of the domain's
// user validation failures, which map to 400 rather than 500.
func isUserValidationError(err error) bool {
	return errors.Is(err, domain.ErrEmptyEmail) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, domain.ErrPasswordTooShort) ||
		errors.Is(err, domain.ErrPasswordTooLong)
}
