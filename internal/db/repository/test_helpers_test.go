package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/db/models"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
)

// openSQLite returns an in-memory store with the schema and categories but no questions.
func openSQLite(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), sqlite.Config{
		Path:      ":memory:",
		Migrate:   true,
		MigrateTo: migrations.SchemaVersion,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedQuestions(t *testing.T, repo *QuestionRepository, rows ...models.InsertQuestionParams) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		id, err := repo.Insert(context.Background(), row)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func q(text string, category int64) models.InsertQuestionParams {
	return models.InsertQuestionParams{
		Question:   text,
		Answer:     "answer to " + text,
		Category:   category,
		Difficulty: 2,
	}
}
