// Package main implements the entry point for the Mnemo API server, a
// spaced-repetition flashcard service.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/mnemo-app/mnemo-api/internal/config"
	"github.com/mnemo-app/mnemo-api/internal/platform/logger"
	"github.com/mnemo-app/mnemo-api/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run loads configuration, wires the application, and serves until a
// shutdown signal arrives.
func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(logger.Config{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupDatabase(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := postgres.MigrateUp(ctx, db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
