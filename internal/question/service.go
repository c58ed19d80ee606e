package question

import (
	"context"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// ServiceOptions tunes paging and quiz randomness.
type ServiceOptions struct {
	PageSize int
	Rand     RandSource
}

// Service implements question retrieval, creation and quiz selection.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	selector   *Selector
	validate   *validator.Validate
	pageSize   int
}

func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, opts ServiceOptions) *Service {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		questions:  questions,
		categories: categories,
		selector:   NewSelector(questions, opts.Rand),
		validate:   validator.New(),
		pageSize:   pageSize,
	}
}

// Categories lists every category ordered by id.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return toCategories(rows), nil
}

// Page returns one page of all questions. An empty page is ErrNotFound.
func (s *Service) Page(ctx context.Context, page int) (PageResult, error) {
	rows, err := s.questions.ListAll(ctx)
	if err != nil {
		return PageResult{}, err
	}

	current := Paginate(rows, page, s.pageSize)
	if len(current) == 0 {
		return PageResult{}, fmt.Errorf("page %d: %w", page, ErrNotFound)
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return PageResult{}, err
	}

	return PageResult{
		Questions:  toDomainList(current),
		Total:      len(rows),
		Categories: categories,
	}, nil
}

// ByCategory lists the questions of a category. No questions is ErrNotFound.
func (s *Service) ByCategory(ctx context.Context, categoryID int64) (ListResult, error) {
	rows, err := s.questions.FilterByCategory(ctx, categoryID)
	if err != nil {
		return ListResult{}, err
	}
	if len(rows) == 0 {
		return ListResult{}, fmt.Errorf("category %d has no questions: %w", categoryID, ErrNotFound)
	}
	return ListResult{Questions: toDomainList(rows), Total: len(rows)}, nil
}

// Search finds questions containing term. No match is ErrNotFound.
func (s *Service) Search(ctx context.Context, term string) (ListResult, error) {
	rows, err := s.questions.SearchBySubstring(ctx, term)
	if err != nil {
		return ListResult{}, err
	}
	if len(rows) == 0 {
		return ListResult{}, fmt.Errorf("no questions match %q: %w", term, ErrNotFound)
	}
	return ListResult{Questions: toDomainList(rows), Total: len(rows)}, nil
}

// Create validates req and stores a new question, returning its id.
func (s *Service) Create(ctx context.Context, req CreateRequest) (int64, error) {
	if err := s.validate.Struct(req); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	category, err := requireInt("category", req.Category)
	if err != nil {
		return 0, err
	}
	difficulty, err := requireInt("difficulty", req.Difficulty)
	if err != nil {
		return 0, err
	}
	if difficulty < math.MinInt32 || difficulty > math.MaxInt32 {
		return 0, fmt.Errorf("%w: difficulty %d out of range", ErrValidation, difficulty)
	}

	return s.questions.Insert(ctx, models.InsertQuestionParams{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   category,
		Difficulty: int32(difficulty),
	})
}

// Delete removes a question by id, returning ErrNotFound when it does not exist.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.questions.DeleteByID(ctx, id)
}

// NextQuizQuestion draws an unseen question; nil means the quiz is over.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (*Question, error) {
	categoryID := AllCategories
	if req.QuizCategory != nil {
		id, present, err := parseInt(req.QuizCategory.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: quiz_category.id: %v", ErrValidation, err)
		}
		if present {
			categoryID = id
		}
	}
	return s.selector.Next(ctx, categoryID, req.PreviousQuestions)
}
