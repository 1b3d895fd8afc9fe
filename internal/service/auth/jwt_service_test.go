package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-app/mnemo-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("short secret rejected", func(t *testing.T) {
		t.Parallel()
		cfg := testAuthConfig()
		cfg.JWTSecret = "too-short"
		_, err := NewJWTService(cfg)
		assert.Error(t, err)
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestTokenTypeMismatch(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()

	access, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	// An access token is not accepted where a refresh token is expected,
	// and vice versa.
	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestExpiredToken(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl := svc.(*hmacJWTService)
	ctx := context.Background()
	userID := uuid.New()

	// Issue a token in the past, then validate with real time.
	issuedAt := time.Now().Add(-48 * time.Hour)
	impl.timeFunc = func() time.Time { return issuedAt }
	token, err := impl.GenerateToken(ctx, userID)
	require.NoError(t, err)

	impl.timeFunc = time.Now
	_, err = impl.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestMalformedToken(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedSignature(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	other, err := NewJWTService(config.AuthConfig{
		JWTSecret:                   "ffffffffffffffffffffffffffffffff",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)

	ctx := context.Background()
	token, err := other.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHasherAndVerifier(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(4) // minimal cost to keep the test fast
	verifier := NewBcryptVerifier()

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, verifier.Compare(hash, "correct horse battery staple"))
	assert.Error(t, verifier.Compare(hash, "wrong password"))
}
