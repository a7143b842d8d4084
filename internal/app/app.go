// Package app defines the App struct that composes the tool's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the database handle
//
// New opens the database and prepares the schema, Open only opens it;
// Shutdown releases everything in reverse order.
package app

import (
	"context"
	"fmt"

	"github.com/deppfellow/classroom/internal/config"
	"github.com/deppfellow/classroom/internal/database"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/classroom/internal/logger"
)

// App is the application container that holds shared resources.
type App struct {
	// Config holds all environment/config values for the tool.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// DB is the process-scoped database handle. Repositories receive it
	// explicitly; nothing else reaches it.
	DB *database.Database
}

// New opens the App and bootstraps its database.
//
// Initialization performed:
//   - database handle (SQLite or PostgreSQL) + ping
//   - schema bootstrap; a failure here is a KindSchema error and stops
//     the tool before any report runs
//   - demonstration seed data when database.seed is on
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*App, error) {
	a, err := Open(cfg, logger, loggerService)
	if err != nil {
		return nil, err
	}

	if err := a.Bootstrap(ctx); err != nil {
		_ = a.DB.Close()
		return nil, err
	}
	return a, nil
}

// Open constructs an App on a pinged database handle without touching the
// schema or the data. Commands that only inspect the database use it.
func Open(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*App, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &App{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}, nil
}

// Bootstrap ensures the classroom schema and, when database.seed is on,
// inserts the demonstration data.
func (a *App) Bootstrap(ctx context.Context) error {
	if err := a.DB.EnsureSchema(ctx); err != nil {
		return err
	}

	if a.Config.Database.Seed {
		if err := a.DB.Seed(ctx); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}
	return nil
}

// Shutdown closes the database and flushes New Relic.
func (a *App) Shutdown() error {
	if err := a.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	a.LoggerService.Shutdown()
	return nil
}
