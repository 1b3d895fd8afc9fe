package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-app/mnemo-api/internal/api/shared"
	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/domain/session"
	"github.com/mnemo-app/mnemo-api/internal/service/auth"
	"github.com/mnemo-app/mnemo-api/internal/service/review"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newJSONRequest builds a request with a JSON body.
func newJSONRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// asUser attaches an authenticated user ID to the request context, the same
// way the auth middleware does.
func asUser(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

// withURLParam attaches a chi URL parameter to the request context.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// testUser builds a valid user with a fixed ID.
func testUser(t *testing.T, id uuid.UUID) *domain.User {
	t.Helper()

	user, err := domain.NewUser("test@example.com", "password1234567")
	require.NoError(t, err)
	user.ID = id
	return user
}

// fakeUserService implements service.UserService.
type fakeUserService struct {
	user        *domain.User
	registerErr error
	authErr     error
}

func (f *fakeUserService) Register(_ context.Context, email, password string) (*domain.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	if f.user != nil {
		return f.user, nil
	}
	return domain.NewUser(email, password)
}

func (f *fakeUserService) Authenticate(context.Context, string, string) (*domain.User, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.user, nil
}

// fakeJWTService implements auth.JWTService.
type fakeJWTService struct {
	token         string
	refreshToken  string
	generateErr   error
	refreshClaims *auth.Claims
	refreshErr    error
}

func (f *fakeJWTService) GenerateToken(context.Context, uuid.UUID) (string, error) {
	return f.token, f.generateErr
}

func (f *fakeJWTService) ValidateToken(context.Context, string) (*auth.Claims, error) {
	return nil, auth.ErrInvalidToken
}

func (f *fakeJWTService) GenerateRefreshToken(context.Context, uuid.UUID) (string, error) {
	return f.refreshToken, f.generateErr
}

func (f *fakeJWTService) ValidateRefreshToken(context.Context, string) (*auth.Claims, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshClaims, nil
}

// fakeDeckService implements service.DeckService.
type fakeDeckService struct {
	deck  *domain.Deck
	decks []*domain.Deck
	err   error
}

func (f *fakeDeckService) CreateDeck(context.Context, uuid.UUID, string, string) (*domain.Deck, error) {
	return f.deck, f.err
}

func (f *fakeDeckService) GetDeck(context.Context, uuid.UUID, uuid.UUID) (*domain.Deck, error) {
	return f.deck, f.err
}

func (f *fakeDeckService) ListDecks(context.Context, uuid.UUID) ([]*domain.Deck, error) {
	return f.decks, f.err
}

func (f *fakeDeckService) UpdateDeck(context.Context, uuid.UUID, uuid.UUID, string, string) (*domain.Deck, error) {
	return f.deck, f.err
}

func (f *fakeDeckService) DeleteDeck(context.Context, uuid.UUID, uuid.UUID) error {
	return f.err
}

// fakeCardService implements service.CardService.
type fakeCardService struct {
	card  *domain.Card
	cards []*domain.Card
	err   error
}

func (f *fakeCardService) CreateCard(
	context.Context, uuid.UUID, uuid.UUID, domain.CardType, string, string, string,
) (*domain.Card, error) {
	return f.card, f.err
}

func (f *fakeCardService) GetCard(context.Context, uuid.UUID, uuid.UUID) (*domain.Card, error) {
	return f.card, f.err
}

func (f *fakeCardService) ListCards(context.Context, uuid.UUID, uuid.UUID) ([]*domain.Card, error) {
	return f.cards, f.err
}

func (f *fakeCardService) UpdateCard(
	context.Context, uuid.UUID, uuid.UUID, domain.CardType, string, string, string,
) (*domain.Card, error) {
	return f.card, f.err
}

func (f *fakeCardService) DeleteCard(context.Context, uuid.UUID, uuid.UUID) error {
	return f.err
}

// fakeReviewService implements review.ReviewService.
type fakeReviewService struct {
	result      *review.ReviewResult
	err         error
	practiceErr error

	lastQuality int
}

func (f *fakeReviewService) SubmitReview(
	_ context.Context, _ uuid.UUID, _ uuid.UUID, quality int,
) (*review.ReviewResult, error) {
	f.lastQuality = quality
	return f.result, f.err
}

func (f *fakeReviewService) SubmitPractice(
	_ context.Context, _ uuid.UUID, _ uuid.UUID, quality int,
) error {
	f.lastQuality = quality
	return f.practiceErr
}

// fakeStudyService implements study.StudyService.
type fakeStudyService struct {
	items []session.Item
	err   error

	lastMode   session.Mode
	lastDeckID *uuid.UUID
}

func (f *fakeStudyService) SelectSession(
	_ context.Context, _ uuid.UUID, mode session.Mode, deckID *uuid.UUID,
) ([]session.Item, error) {
	f.lastMode = mode
	f.lastDeckID = deckID
	return f.items, f.err
}

// fakeAchievementService implements achievement.Service.
type fakeAchievementService struct {
	achievements []*domain.Achievement
	err          error
}

func (f *fakeAchievementService) Evaluate(context.Context, uuid.UUID) ([]*domain.Achievement, error) {
	return nil, nil
}

func (f *fakeAchievementService) List(context.Context, uuid.UUID) ([]*domain.Achievement, error) {
	return f.achievements, f.err
}
