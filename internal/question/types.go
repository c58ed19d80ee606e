package question

import (
	"encoding/json"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// Errors surfaced to the HTTP layer.
var (
	ErrNotFound        = repository.ErrNotFound
	ErrValidation      = repository.ErrValidation
	ErrInvalidArgument = repository.ErrInvalidArgument
)

// Question is the payload delivered to clients.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category is a read-only question grouping.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// CreateRequest is the body of POST /questions. Category and difficulty
// accept JSON numbers or numeric strings.
type CreateRequest struct {
	Question   string          `json:"question" validate:"required"`
	Answer     string          `json:"answer" validate:"required"`
	Category   json.RawMessage `json:"category" validate:"required"`
	Difficulty json.RawMessage `json:"difficulty" validate:"required"`
}

// SearchRequest is the body of POST /questions/search.
type SearchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

// QuizRequest is the body of POST /quizzes. The client owns quiz progress and
// resends every question id it has already seen.
type QuizRequest struct {
	PreviousQuestions []int64       `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// QuizCategory selects the category to draw from; id 0 means all categories.
type QuizCategory struct {
	ID   json.RawMessage `json:"id"`
	Type string          `json:"type,omitempty"`
}

// PageResult is one page of the full question list.
type PageResult struct {
	Questions  []Question
	Total      int
	Categories []Category
}

// ListResult is a filtered question list.
type ListResult struct {
	Questions []Question
	Total     int
}

func toDomain(row models.Question) Question {
	return Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: int(row.Difficulty),
	}
}

func toDomainList(rows []models.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out
}

func toCategories(rows []models.Category) []Category {
	out := make([]Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, Category{ID: row.ID, Type: row.Type})
	}
	return out
}
