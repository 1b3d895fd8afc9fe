package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mnemo-app/mnemo-api/internal/config"
	"github.com/mnemo-app/mnemo-api/internal/domain/session"
	"github.com/mnemo-app/mnemo-api/internal/domain/srs"
	"github.com/mnemo-app/mnemo-api/internal/platform/postgres"
	"github.com/mnemo-app/mnemo-api/internal/service"
	"github.com/mnemo-app/mnemo-api/internal/service/achievement"
	"github.com/mnemo-app/mnemo-api/internal/service/auth"
	"github.com/mnemo-app/mnemo-api/internal/service/review"
	"github.com/mnemo-app/mnemo-api/internal/service/study"
	"github.com/mnemo-app/mnemo-api/internal/store"
	"github.com/mnemo-app/mnemo-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore        store.UserStore
	deckStore        store.DeckStore
	cardStore        store.CardStore
	scheduleStore    store.ScheduleStore
	eventStore       store.ReviewEventStore
	preferenceStore  store.PreferenceStore
	achievementStore store.AchievementStore

	// Service interfaces
	jwtService         auth.JWTService
	userService        service.UserService
	deckService        service.DeckService
	cardService        service.CardService
	reviewService      review.ReviewService
	studyService       study.StudyService
	achievementService achievement.Service

	// Task handling
	taskRunner *task.Runner
}

// newApplication creates a new application instance with all dependencies
// initialized. Configuration, logging, and the database connection must be
// established before calling it.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	// Stores
	app.userStore = postgres.NewUserStore(db, logger)
	app.deckStore = postgres.NewDeckStore(db, logger)
	app.cardStore = postgres.NewCardStore(db, logger)
	app.scheduleStore = postgres.NewScheduleStore(db, logger)
	app.eventStore = postgres.NewReviewEventStore(db, logger)
	app.preferenceStore = postgres.NewPreferenceStore(db, logger)
	app.achievementStore = postgres.NewAchievementStore(db, logger)

	// Achievement evaluation runs on the background runner after reviews.
	app.achievementService = achievement.NewService(
		app.eventStore,
		app.preferenceStore,
		app.achievementStore,
		logger,
	)

	app.taskRunner = task.NewRunner(task.RunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	if err := app.taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	notifier := task.NewAchievementNotifier(app.taskRunner, app.achievementService, logger)

	// Application services
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	verifier := auth.NewBcryptVerifier()

	app.userService = service.NewUserService(
		db,
		app.userStore,
		app.preferenceStore,
		hasher,
		verifier,
		logger,
	)

	app.deckService = service.NewDeckService(app.deckStore, logger)

	app.cardService = service.NewCardService(
		db,
		app.cardStore,
		app.deckStore,
		app.scheduleStore,
		logger,
	)

	app.reviewService = review.NewReviewService(
		db,
		app.cardStore,
		app.scheduleStore,
		app.eventStore,
		app.preferenceStore,
		srs.NewDefaultService(),
		notifier,
		logger,
	)

	selector := session.NewSelector(rand.New(rand.NewSource(time.Now().UnixNano())))
	app.studyService = study.NewStudyService(
		app.cardStore,
		app.preferenceStore,
		selector,
		logger,
	)

	logger.Info("application initialized")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown completes.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop task runner first so queued achievement checks drain before the
	// database connection goes away.
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
