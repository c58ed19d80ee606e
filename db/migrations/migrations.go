package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// FS holds the SQL migrations for every supported dialect.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Goose dialect names.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// SchemaVersion is the migration that creates the tables and seeds categories.
// Versions after it only load sample questions.
const SchemaVersion int64 = 1

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, dialect string, logger zerolog.Logger) error {
	return UpTo(ctx, db, dialect, 0, logger)
}

// UpTo applies migrations up to and including version. A version <= 0 means latest.
func UpTo(ctx context.Context, db *sql.DB, dialect string, version int64, logger zerolog.Logger) error {
	dir, err := prepare(dialect, logger)
	if err != nil {
		return err
	}
	if version <= 0 {
		return goose.UpContext(ctx, db, dir)
	}
	return goose.UpToContext(ctx, db, dir, version)
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, dialect string, logger zerolog.Logger) error {
	dir, err := prepare(dialect, logger)
	if err != nil {
		return err
	}
	return goose.DownContext(ctx, db, dir)
}

// Status logs the applied state of every migration.
func Status(ctx context.Context, db *sql.DB, dialect string, logger zerolog.Logger) error {
	dir, err := prepare(dialect, logger)
	if err != nil {
		return err
	}
	return goose.StatusContext(ctx, db, dir)
}

func prepare(dialect string, logger zerolog.Logger) (string, error) {
	var dir string
	switch dialect {
	case DialectPostgres:
		dir = "postgres"
	case DialectSQLite:
		dir = "sqlite"
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	goose.SetBaseFS(FS)
	goose.SetTableName("goose_db_version")
	goose.SetLogger(gooseLogger{logger: logger.With().Str("component", "migrations").Logger()})
	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("set goose dialect: %w", err)
	}
	return dir, nil
}

// gooseLogger routes goose output through zerolog.
type gooseLogger struct {
	logger zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Msgf(strings.TrimSuffix(format, "\n"), v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(strings.TrimSuffix(format, "\n"), v...)
}
