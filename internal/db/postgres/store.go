package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store runs the trivia queries against Postgres.
type Store struct {
	db DBTX
}

// New wraps a pool, connection or transaction.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// Connect opens a pool and verifies it with a ping.
func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

const questionColumns = `id, question, answer, category, difficulty`

const listQuestions = `SELECT ` + questionColumns + `
FROM questions
ORDER BY category, id`

func (s *Store) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return s.queryQuestions(ctx, listQuestions)
}

const listQuestionsByCategory = `SELECT ` + questionColumns + `
FROM questions
WHERE category = $1
ORDER BY id`

func (s *Store) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]models.Question, error) {
	return s.queryQuestions(ctx, listQuestionsByCategory, categoryID)
}

const searchQuestions = `SELECT ` + questionColumns + `
FROM questions
WHERE question ILIKE $1 ESCAPE '\'
ORDER BY id`

// SearchQuestions matches an already escaped LIKE pattern.
func (s *Store) SearchQuestions(ctx context.Context, pattern string) ([]models.Question, error) {
	return s.queryQuestions(ctx, searchQuestions, pattern)
}

const listQuestionsExcluding = `SELECT ` + questionColumns + `
FROM questions
WHERE ($1::bigint = 0 OR category = $1)
  AND NOT (id = ANY($2::bigint[]))
ORDER BY id`

func (s *Store) ListQuestionsExcluding(ctx context.Context, arg models.ListQuestionsExcludingParams) ([]models.Question, error) {
	exclude := arg.ExcludeIDs
	if exclude == nil {
		// a NULL array would make every row's predicate NULL
		exclude = []int64{}
	}
	return s.queryQuestions(ctx, listQuestionsExcluding, arg.CategoryID, exclude)
}

const questionExists = `SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1)`

func (s *Store) QuestionExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, questionExists, id).Scan(&exists)
	return exists, err
}

const categoryExists = `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`

func (s *Store) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, categoryExists, id).Scan(&exists)
	return exists, err
}

const insertQuestion = `INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING id`

func (s *Store) InsertQuestion(ctx context.Context, arg models.InsertQuestionParams) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, insertQuestion,
		arg.Question,
		arg.Answer,
		arg.Category,
		arg.Difficulty,
	).Scan(&id)
	return id, err
}

const deleteQuestion = `DELETE FROM questions WHERE id = $1`

// DeleteQuestion returns the number of rows removed.
func (s *Store) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listCategories = `SELECT id, type FROM categories ORDER BY id`

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
}

func (s *Store) queryQuestions(ctx context.Context, query string, args ...any) ([]models.Question, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Question])
}
