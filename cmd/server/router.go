package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mnemo-app/mnemo-api/internal/api"
	apiMiddleware "github.com/mnemo-app/mnemo-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Handlers
	tokenLifetime := time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
	authHandler := api.NewAuthHandler(app.userService, app.jwtService, tokenLifetime, app.logger)
	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	sessionHandler := api.NewSessionHandler(app.studyService, app.logger)
	achievementHandler := api.NewAchievementHandler(app.achievementService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Deck management
			r.Post("/decks", deckHandler.CreateDeck)
			r.Get("/decks", deckHandler.ListDecks)
			r.Get("/decks/{id}", deckHandler.GetDeck)
			r.Put("/decks/{id}", deckHandler.UpdateDeck)
			r.Delete("/decks/{id}", deckHandler.DeleteDeck)

			// Card management
			r.Post("/decks/{id}/cards", cardHandler.CreateCard)
			r.Get("/decks/{id}/cards", cardHandler.ListCards)
			r.Get("/cards/{id}", cardHandler.GetCard)
			r.Put("/cards/{id}", cardHandler.UpdateCard)
			r.Delete("/cards/{id}", cardHandler.DeleteCard)

			// Review endpoints
			r.Post("/cards/{id}/review", reviewHandler.SubmitReview)
			r.Post("/cards/{id}/practice", reviewHandler.SubmitPractice)

			// Study sessions
			r.Get("/sessions", sessionHandler.GetSession)

			// Achievements
			r.Get("/achievements", achievementHandler.ListAchievements)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
