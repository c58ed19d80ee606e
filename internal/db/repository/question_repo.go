package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]models.Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]models.Question, error)
	SearchQuestions(ctx context.Context, pattern string) ([]models.Question, error)
	ListQuestionsExcluding(ctx context.Context, arg models.ListQuestionsExcludingParams) ([]models.Question, error)
	QuestionExists(ctx context.Context, id int64) (bool, error)
	CategoryExists(ctx context.Context, id int64) (bool, error)
	InsertQuestion(ctx context.Context, arg models.InsertQuestionParams) (int64, error)
	DeleteQuestion(ctx context.Context, id int64) (int64, error)
}

// QuestionRepository is the query layer over the questions table.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// ListAll returns every question ordered by category.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]models.Question, error) {
	rows, err := r.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return rows, nil
}

// FilterByCategory returns the questions of one category. An empty result is not an error.
func (r *QuestionRepository) FilterByCategory(ctx context.Context, categoryID int64) ([]models.Question, error) {
	rows, err := r.store.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list questions for category %d: %w", categoryID, err)
	}
	return rows, nil
}

// SearchBySubstring returns questions whose text contains term, ignoring case.
func (r *QuestionRepository) SearchBySubstring(ctx context.Context, term string) ([]models.Question, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrInvalidArgument)
	}
	rows, err := r.store.SearchQuestions(ctx, containsPattern(term))
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return rows, nil
}

// ListExcluding returns the questions of a category (0 for all) minus excludeIDs.
func (r *QuestionRepository) ListExcluding(ctx context.Context, categoryID int64, excludeIDs []int64) ([]models.Question, error) {
	rows, err := r.store.ListQuestionsExcluding(ctx, models.ListQuestionsExcludingParams{
		CategoryID: categoryID,
		ExcludeIDs: excludeIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("list quiz candidates: %w", err)
	}
	return rows, nil
}

// Insert validates and stores a question, returning its id.
func (r *QuestionRepository) Insert(ctx context.Context, params models.InsertQuestionParams) (int64, error) {
	if strings.TrimSpace(params.Question) == "" {
		return 0, fmt.Errorf("%w: question is required", ErrValidation)
	}
	if strings.TrimSpace(params.Answer) == "" {
		return 0, fmt.Errorf("%w: answer is required", ErrValidation)
	}

	exists, err := r.store.CategoryExists(ctx, params.Category)
	if err != nil {
		return 0, fmt.Errorf("check category %d: %w", params.Category, err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: unknown category %d", ErrValidation, params.Category)
	}

	id, err := r.store.InsertQuestion(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	return id, nil
}

// DeleteByID removes a question. Existence is checked before the delete is issued.
func (r *QuestionRepository) DeleteByID(ctx context.Context, id int64) error {
	exists, err := r.store.QuestionExists(ctx, id)
	if err != nil {
		return fmt.Errorf("check question %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("question %d: %w", id, ErrNotFound)
	}

	affected, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if affected == 0 {
		// removed by a concurrent request between the check and the delete
		return fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching term anywhere.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
