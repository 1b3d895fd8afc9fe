package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-app/mnemo-api/internal/service/auth"
)

type fakeJWTService struct {
	claims *auth.Claims
	err    error
}

func (f *fakeJWTService) GenerateToken(context.Context, uuid.UUID) (string, error) {
	return "", nil
}

func (f *fakeJWTService) ValidateToken(context.Context, string) (*auth.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func (f *fakeJWTService) GenerateRefreshToken(context.Context, uuid.UUID) (string, error) {
	return "", nil
}

func (f *fakeJWTService) ValidateRefreshToken(context.Context, string) (*auth.Claims, error) {
	return nil, auth.ErrInvalidRefreshToken
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name        string
		authHeader  string
		validateErr error
		wantStatus  int
		wantNext    bool
	}{
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "good-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic good-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "expired token",
			authHeader:  "Bearer stale-token",
			validateErr: auth.ErrExpiredToken,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "invalid token",
			authHeader:  "Bearer bad-token",
			validateErr: auth.ErrInvalidToken,
			wantStatus:  http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &fakeJWTService{
				claims: &auth.Claims{UserID: userID, TokenType: "access"},
				err:    tt.validateErr,
			}
			authMiddleware := NewAuthMiddleware(jwtService)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true

				gotID, ok := GetUserID(r)
				require.True(t, ok)
				assert.Equal(t, userID, gotID)
			})

			req := httptest.NewRequest("GET", "/api/decks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			authMiddleware.Authenticate(next).ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}
