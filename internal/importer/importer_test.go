package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gokatarajesh/trivia-api/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

func newService(t *testing.T) *question.Service {
	t.Helper()
	store, err := sqlite.Open(context.Background(), sqlite.Config{
		Path:      ":memory:",
		Migrate:   true,
		MigrateTo: migrations.SchemaVersion,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return question.NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		question.ServiceOptions{},
	)
}

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}

	path := filepath.Join(t.TempDir(), "questions.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportFromWorkbook(t *testing.T) {
	svc := newService(t)
	path := writeWorkbook(t, [][]interface{}{
		{"question", "answer", "category", "difficulty"},
		{"What is the largest lake in Africa?", "Lake Victoria", "Geography", 2},
		{"Which Dutch graphic artist initials M C was a creator of optical illusions?", "Escher", 2, 1},
		{},
		{"Who was the first man to walk on the moon?", "Neil Armstrong", "Astronomy", 3},
		{"Missing answer", "", "History", 2},
		{"Which country won the first ever soccer World Cup in 1930?", "Uruguay", "sports", "hard"},
	})

	result, err := New(svc, zerolog.Nop()).Run(context.Background(), NewXLSXSource(path, ""))
	require.NoError(t, err)

	assert.Equal(t, 5, result.Processed, "header and blank rows are not processed")
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], `line 5: unknown category "Astronomy"`)
	assert.Contains(t, result.Errors[1], "line 6:")
	assert.Contains(t, result.Errors[2], "line 7:")

	geography, err := svc.ByCategory(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Lake Victoria", geography.Questions[0].Answer)
	assert.Equal(t, 2, geography.Questions[0].Difficulty)
}

func TestImportWorkbookMissingSheet(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{{"q", "a", 1, 1}})

	_, err := New(newService(t), zerolog.Nop()).Run(context.Background(), NewXLSXSource(path, "Nope"))
	assert.Error(t, err)
}

const openTDBPayload = `{
  "response_code": 0,
  "results": [
    {"category": "Entertainment: Film", "type": "multiple", "difficulty": "easy",
     "question": "Who directed &quot;Jaws&quot;?", "correct_answer": "Steven Spielberg",
     "incorrect_answers": ["George Lucas", "James Cameron", "Ridley Scott"]},
    {"category": "Science &amp; Nature", "type": "boolean", "difficulty": "hard",
     "question": "The chemical symbol for gold is Au.", "correct_answer": "True",
     "incorrect_answers": ["False"]},
    {"category": "Mythology", "type": "multiple", "difficulty": "medium",
     "question": "Who is the Greek god of the sea?", "correct_answer": "Poseidon",
     "incorrect_answers": ["Zeus", "Hades", "Ares"]}
  ]
}`

func TestImportFromOpenTDB(t *testing.T) {
	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, openTDBPayload)
	}))
	defer upstream.Close()

	svc := newService(t)
	src := NewOpenTDBSource(NewOpenTDBClient(upstream.URL, upstream.Client()), 500, "")

	result, err := New(svc, zerolog.Nop()).Run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, "amount=50", gotQuery)
	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)

	entertainment, err := svc.ByCategory(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, `Who directed "Jaws"?`, entertainment.Questions[0].Question)
	assert.Equal(t, 1, entertainment.Questions[0].Difficulty)

	science, err := svc.ByCategory(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, science.Questions[0].Difficulty)
}

func TestOpenTDBErrors(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("difficulty") == "hard" {
			fmt.Fprint(w, `{"response_code": 1, "results": []}`)
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	client := NewOpenTDBClient(upstream.URL, upstream.Client())

	_, err := client.Fetch(context.Background(), 10, "hard")
	assert.ErrorContains(t, err, "response code 1")

	_, err = client.Fetch(context.Background(), 10, "")
	assert.ErrorContains(t, err, "non-200: 429")
}

type failingCreator struct {
	categories []question.Category
	err        error
}

func (f failingCreator) Categories(context.Context) ([]question.Category, error) {
	return f.categories, nil
}

func (f failingCreator) Create(context.Context, question.CreateRequest) (int64, error) {
	return 0, f.err
}

type staticSource []Row

func (s staticSource) Name() string { return "static" }
func (s staticSource) Rows(context.Context) ([]Row, error) { return s, nil }

func TestImportAbortsOnStorageFailure(t *testing.T) {
	storeErr := errors.New("disk full")
	im := New(failingCreator{
		categories: []question.Category{{ID: 1, Type: "Science"}},
		err:        storeErr,
	}, zerolog.Nop())

	result, err := im.Run(context.Background(), staticSource{
		{Line: 1, Question: "q", Answer: "a", Category: "science", Difficulty: "1"},
		{Line: 2, Question: "q2", Answer: "a2", Category: "science", Difficulty: "1"},
	})
	require.ErrorIs(t, err, storeErr)
	assert.Equal(t, 1, result.Processed)
	assert.Zero(t, result.Created)
}

func TestCategoryKey(t *testing.T) {
	assert.Equal(t, "entertainment", categoryKey("Entertainment: Video Games"))
	assert.Equal(t, "science", categoryKey("Science & Nature"))
	assert.Equal(t, "history", categoryKey("  History "))
}

func TestImportFromTriviaAPI(t *testing.T) {
	var gotKey, gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
		  {"id": "a1", "category": "Sport & Leisure", "question": "How many players are on a baseball team's field?",
		   "difficulty": "medium", "type": "Multiple Choice", "correctAnswer": "Nine", "incorrectAnswers": ["Ten", "Eight", "Eleven"]},
		  {"id": "b2", "category": "Food & Drink", "question": "What is tofu made from?",
		   "difficulty": "easy", "type": "Multiple Choice", "correctAnswer": "Soybeans", "incorrectAnswers": ["Rice"]}
		]`)
	}))
	defer upstream.Close()

	svc := newService(t)
	src := NewTriviaAPISource(NewTriviaAPIClient(upstream.URL, "secret", upstream.Client()), 2, "medium")

	result, err := New(svc, zerolog.Nop()).Run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "difficulty=medium&limit=2", gotQuery)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)

	sports, err := svc.ByCategory(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, "Nine", sports.Questions[0].Answer)
	assert.Equal(t, 3, sports.Questions[0].Difficulty)
}
