package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/service"
)

func testDeck(t *testing.T, userID uuid.UUID) *domain.Deck {
	t.Helper()

	deck, err := domain.NewDeck(userID, "Spanish", "vocab")
	require.NoError(t, err)
	return deck
}

func TestCreateDeck(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		serviceErr error
		wantStatus int
	}{
		{
			name:       "valid deck",
			payload:    map[string]interface{}{"name": "Spanish", "description": "vocab"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			payload:    map[string]interface{}{"description": "vocab"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate name",
			payload:    map[string]interface{}{"name": "Spanish"},
			serviceErr: service.ErrDuplicateDeckName,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deckService := &fakeDeckService{deck: testDeck(t, userID), err: tt.serviceErr}
			handler := NewDeckHandler(deckService, testLogger())

			req := asUser(newJSONRequest(t, "POST", "/api/decks", tt.payload), userID)
			recorder := httptest.NewRecorder()
			handler.CreateDeck(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestCreateDeckRequiresAuth(t *testing.T) {
	t.Parallel()

	handler := NewDeckHandler(&fakeDeckService{}, testLogger())

	// No user ID in the context.
	req := newJSONRequest(t, "POST", "/api/decks", map[string]interface{}{"name": "Spanish"})
	recorder := httptest.NewRecorder()
	handler.CreateDeck(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestListDecks(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("returns decks", func(t *testing.T) {
		t.Parallel()

		deckService := &fakeDeckService{decks: []*domain.Deck{testDeck(t, userID)}}
		handler := NewDeckHandler(deckService, testLogger())

		req := asUser(httptest.NewRequest("GET", "/api/decks", nil), userID)
		recorder := httptest.NewRecorder()
		handler.ListDecks(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp DeckListResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Len(t, resp.Decks, 1)
	})

	t.Run("empty list is not null", func(t *testing.T) {
		t.Parallel()

		handler := NewDeckHandler(&fakeDeckService{}, testLogger())

		req := asUser(httptest.NewRequest("GET", "/api/decks", nil), userID)
		recorder := httptest.NewRecorder()
		handler.ListDecks(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"decks":[]`)
	})
}

func TestGetDeck(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		deckID     string
		serviceErr error
		wantStatus int
	}{
		{name: "found", deckID: uuid.New().String(), wantStatus: http.StatusOK},
		{
			name:       "not found",
			deckID:     uuid.New().String(),
			serviceErr: service.ErrDeckNotFound,
			wantStatus: http.StatusNotFound,
		},
		{name: "malformed id", deckID: "not-a-uuid", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deckService := &fakeDeckService{deck: testDeck(t, userID), err: tt.serviceErr}
			handler := NewDeckHandler(deckService, testLogger())

			req := asUser(httptest.NewRequest("GET", "/api/decks/"+tt.deckID, nil), userID)
			req = withURLParam(req, "id", tt.deckID)
			recorder := httptest.NewRecorder()
			handler.GetDeck(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestDeleteDeck(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	deckID := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		handler := NewDeckHandler(&fakeDeckService{}, testLogger())

		req := asUser(httptest.NewRequest("DELETE", "/api/decks/"+deckID.String(), nil), userID)
		req = withURLParam(req, "id", deckID.String())
		recorder := httptest.NewRecorder()
		handler.DeleteDeck(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		handler := NewDeckHandler(&fakeDeckService{err: service.ErrDeckNotFound}, testLogger())

		req := asUser(httptest.NewRequest("DELETE", "/api/decks/"+deckID.String(), nil), userID)
		req = withURLParam(req, "id", deckID.String())
		recorder := httptest.NewRecorder()
		handler.DeleteDeck(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
