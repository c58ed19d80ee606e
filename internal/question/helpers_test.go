package question

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/db/models"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
)

// fixture questions: categories 1 (Science), 2 (Art) and 4 (History); category 6 stays empty.
var fixtures = []models.InsertQuestionParams{
	{Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
	{Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Category: 1, Difficulty: 3},
	{Question: "La Giaconda is better known as what?", Answer: "Mona Lisa", Category: 2, Difficulty: 3},
	{Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: 4, Difficulty: 2},
	{Question: "Who invented Peanut Butter?", Answer: "George Washington Carver", Category: 4, Difficulty: 2},
}

type fixture struct {
	svc *Service
	ids []int64
}

func newFixture(t *testing.T, opts ServiceOptions) fixture {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.Open(ctx, sqlite.Config{
		Path:      ":memory:",
		Migrate:   true,
		MigrateTo: migrations.SchemaVersion,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	questions := repository.NewQuestionRepository(store)
	ids := make([]int64, 0, len(fixtures))
	for _, row := range fixtures {
		id, err := questions.Insert(ctx, row)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	return fixture{
		svc: NewService(questions, repository.NewCategoryRepository(store), opts),
		ids: ids,
	}
}

var errStoreDown = errors.New("store unavailable")

// brokenStore fails every query.
type brokenStore struct{}

func (brokenStore) ListQuestions(context.Context) ([]models.Question, error) {
	return nil, errStoreDown
}

func (brokenStore) ListQuestionsByCategory(context.Context, int64) ([]models.Question, error) {
	return nil, errStoreDown
}

func (brokenStore) SearchQuestions(context.Context, string) ([]models.Question, error) {
	return nil, errStoreDown
}

func (brokenStore) ListQuestionsExcluding(context.Context, models.ListQuestionsExcludingParams) ([]models.Question, error) {
	return nil, errStoreDown
}

func (brokenStore) QuestionExists(context.Context, int64) (bool, error) {
	return false, errStoreDown
}

func (brokenStore) CategoryExists(context.Context, int64) (bool, error) {
	return false, errStoreDown
}

func (brokenStore) InsertQuestion(context.Context, models.InsertQuestionParams) (int64, error) {
	return 0, errStoreDown
}

func (brokenStore) DeleteQuestion(context.Context, int64) (int64, error) {
	return 0, errStoreDown
}

func (brokenStore) ListCategories(context.Context) ([]models.Category, error) {
	return nil, errStoreDown
}

// fixedRand always returns the same index, clamped to n.
type fixedRand int

func (f fixedRand) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}
