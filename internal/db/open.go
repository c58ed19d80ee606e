package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/postgres"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
)

// Handle owns the configured store and the repositories built on it.
type Handle struct {
	Driver     string
	Questions  *repository.QuestionRepository
	Categories *repository.CategoryRepository

	ping  func(ctx context.Context) error
	close func() error
}

// Ping reports whether the store is reachable.
func (h *Handle) Ping(ctx context.Context) error {
	return h.ping(ctx)
}

// Close releases the underlying connections.
func (h *Handle) Close() error {
	return h.close()
}

// Open connects to the configured driver and applies pending migrations when enabled.
func Open(ctx context.Context, cfg config.Database, logger zerolog.Logger) (*Handle, error) {
	logger = logger.With().Str("component", "db").Str("driver", cfg.Driver).Logger()

	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.DriverSQLite:
		return openSQLite(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.Database, logger zerolog.Logger) (*Handle, error) {
	pool, err := postgres.Connect(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		sqlDB := stdlib.OpenDBFromPool(pool)
		err := migrations.Up(ctx, sqlDB, migrations.DialectPostgres, logger)
		_ = sqlDB.Close()
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
	}

	logger.Info().
		Str("host", cfg.Postgres.Host).
		Int("port", cfg.Postgres.Port).
		Str("database", cfg.Postgres.Database).
		Msg("connected to database")

	store := postgres.New(pool)
	return &Handle{
		Driver:     config.DriverPostgres,
		Questions:  repository.NewQuestionRepository(store),
		Categories: repository.NewCategoryRepository(store),
		ping:       pool.Ping,
		close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}

func openSQLite(ctx context.Context, cfg config.Database, logger zerolog.Logger) (*Handle, error) {
	store, err := sqlite.Open(ctx, sqlite.Config{
		Path:    cfg.SQLite.Path,
		Migrate: cfg.AutoMigrate,
	}, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("path", cfg.SQLite.Path).Msg("opened database")

	return &Handle{
		Driver:     config.DriverSQLite,
		Questions:  repository.NewQuestionRepository(store),
		Categories: repository.NewCategoryRepository(store),
		ping:       store.Ping,
		close:      store.Close,
	}, nil
}
