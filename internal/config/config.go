package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:5000"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`
	APIPrefix               string        `env:"API_PREFIX" envDefault:"/api"`

	Database   Database
	Pagination Pagination
	Quiz       Quiz
	CORS       CORS
}

// Database selects and configures the question store.
type Database struct {
	Driver      string `env:"DB_DRIVER" envDefault:"sqlite"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	Postgres Postgres
	SQLite   SQLite
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:"localhost"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER" envDefault:"postgres"`
	Password string `env:"PG_PASSWORD" envDefault:"postgres"`
	Database string `env:"PG_DATABASE" envDefault:"trivia"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" envDefault:"10"`
}

// ConnString renders a pgx keyword/value connection string.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode, p.MaxConns)
}

// URL renders the same settings as a postgres:// URL, used by database/sql.
func (p Postgres) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     p.Database,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}

// SQLite configures the embedded store.
type SQLite struct {
	Path string `env:"SQLITE_PATH" envDefault:"data/trivia.db"`
}

// Pagination controls list page sizes.
type Pagination struct {
	PageSize int `env:"QUESTIONS_PER_PAGE" envDefault:"10"`
}

// Quiz configures random question selection.
type Quiz struct {
	// Seed fixes the random sequence; 0 seeds from the clock.
	Seed int64 `env:"QUIZ_RANDOM_SEED" envDefault:"0"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,PATCH,POST,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization,X-Request-ID"`
	MaxAge         int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *App) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: want %s or %s", c.Database.Driver, DriverPostgres, DriverSQLite)
	}
	if c.Pagination.PageSize <= 0 {
		return fmt.Errorf("QUESTIONS_PER_PAGE must be positive, got %d", c.Pagination.PageSize)
	}
	if c.GracefulShutdownTimeout <= 0 {
		return fmt.Errorf("GRACEFUL_SHUTDOWN_SECONDS must be positive")
	}
	if c.APIPrefix != "" {
		if !strings.HasPrefix(c.APIPrefix, "/") {
			return fmt.Errorf("API_PREFIX must start with '/', got %q", c.APIPrefix)
		}
		c.APIPrefix = strings.TrimSuffix(c.APIPrefix, "/")
	}
	return nil
}
