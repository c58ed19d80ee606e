package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/db/models"
)

// Config controls how the embedded database is opened.
type Config struct {
	// Path is a file path or ":memory:".
	Path string
	// Migrate applies the embedded migrations after opening.
	Migrate bool
	// MigrateTo stops at the given migration version; 0 applies all of them.
	MigrateTo int64
}

// driverName is go-sqlite3 with a Unicode-aware unicode_lower() registered on
// every connection; the built-in lower() only folds ASCII.
const driverName = "sqlite3_trivia"

var registerOnce sync.Once

func registerDriver() {
	registerOnce.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("unicode_lower", strings.ToLower, true)
			},
		})
		sqlx.BindDriver(driverName, sqlx.QUESTION)
	})
}

// Store runs the trivia queries against SQLite.
type Store struct {
	db *sqlx.DB
}

// Open connects to SQLite with foreign keys enforced.
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	registerDriver()
	db, err := sqlx.ConnectContext(ctx, driverName, path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	// SQLite allows a single writer, and every ":memory:" connection is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if cfg.Migrate {
		if err := migrations.UpTo(ctx, db.DB, migrations.DialectSQLite, cfg.MigrateTo, logger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Ping verifies the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection.
func (s *Store) Close() error {
	return s.db.Close()
}

const questionColumns = `id, question, answer, category, difficulty`

func (s *Store) ListQuestions(ctx context.Context) ([]models.Question, error) {
	var rows []models.Question
	err := s.db.SelectContext(ctx, &rows, `SELECT `+questionColumns+` FROM questions ORDER BY category, id`)
	return rows, err
}

func (s *Store) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]models.Question, error) {
	var rows []models.Question
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+questionColumns+` FROM questions WHERE category = ? ORDER BY id`, categoryID)
	return rows, err
}

// SearchQuestions matches an already escaped, lower-cased LIKE pattern.
func (s *Store) SearchQuestions(ctx context.Context, pattern string) ([]models.Question, error) {
	var rows []models.Question
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+questionColumns+` FROM questions WHERE unicode_lower(question) LIKE ? ESCAPE '\' ORDER BY id`, pattern)
	return rows, err
}

func (s *Store) ListQuestionsExcluding(ctx context.Context, arg models.ListQuestionsExcludingParams) ([]models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE 1 = 1`
	var args []interface{}
	if arg.CategoryID != 0 {
		query += ` AND category = ?`
		args = append(args, arg.CategoryID)
	}
	if len(arg.ExcludeIDs) > 0 {
		query += ` AND id NOT IN (?)`
		args = append(args, arg.ExcludeIDs)
		var err error
		query, args, err = sqlx.In(query, args...)
		if err != nil {
			return nil, err
		}
	}
	query += ` ORDER BY id`

	var rows []models.Question
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...)
	return rows, err
}

func (s *Store) QuestionExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM questions WHERE id = ?)`, id)
	return exists, err
}

func (s *Store) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = ?)`, id)
	return exists, err
}

func (s *Store) InsertQuestion(ctx context.Context, arg models.InsertQuestionParams) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?)`,
		arg.Question, arg.Answer, arg.Category, arg.Difficulty)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteQuestion returns the number of rows removed.
func (s *Store) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := s.db.SelectContext(ctx, &rows, `SELECT id, type FROM categories ORDER BY id`)
	return rows, err
}
