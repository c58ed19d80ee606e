package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// Row is one question read from a source. Category holds a category id or
// its type name; Difficulty holds an integer.
type Row struct {
	Line       int
	Question   string
	Answer     string
	Category   string
	Difficulty string
}

// Source yields rows to import.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([]Row, error)
}

// Result summarizes an import run.
type Result struct {
	Processed int
	Created   int
	Skipped   int
	Errors    []string
}

// questionCreator is the part of question.Service the importer needs.
type questionCreator interface {
	Categories(ctx context.Context) ([]question.Category, error)
	Create(ctx context.Context, req question.CreateRequest) (int64, error)
}

// Importer loads rows through the same validated path as POST /questions.
type Importer struct {
	svc    questionCreator
	logger zerolog.Logger
}

func New(svc questionCreator, logger zerolog.Logger) *Importer {
	return &Importer{
		svc:    svc,
		logger: logger.With().Str("component", "importer").Logger(),
	}
}

// Run imports every row of src. Rows that fail validation are skipped and
// reported; a storage failure aborts the run.
func (im *Importer) Run(ctx context.Context, src Source) (*Result, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s source: %w", src.Name(), err)
	}

	categories, err := im.svc.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	byName := make(map[string]int64, len(categories))
	for _, c := range categories {
		byName[categoryKey(c.Type)] = c.ID
	}

	result := &Result{Errors: make([]string, 0)}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Processed++

		categoryID, ok := resolveCategory(row.Category, byName)
		if !ok {
			result.skip(row, fmt.Errorf("unknown category %q", row.Category))
			continue
		}

		id, err := im.svc.Create(ctx, question.CreateRequest{
			Question:   row.Question,
			Answer:     row.Answer,
			Category:   json.RawMessage(strconv.FormatInt(categoryID, 10)),
			Difficulty: jsonString(row.Difficulty),
		})
		if err != nil {
			if errors.Is(err, question.ErrValidation) {
				result.skip(row, err)
				continue
			}
			return result, fmt.Errorf("line %d: %w", row.Line, err)
		}

		result.Created++
		im.logger.Debug().Int("line", row.Line).Int64("question_id", id).Msg("question imported")
	}

	im.logger.Info().
		Str("source", src.Name()).
		Int("processed", result.Processed).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Msg("import finished")
	return result, nil
}

func (r *Result) skip(row Row, err error) {
	r.Skipped++
	r.Errors = append(r.Errors, fmt.Sprintf("line %d: %v", row.Line, err))
}

// resolveCategory accepts a numeric id or a category type name.
func resolveCategory(value string, byName map[string]int64) (int64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		return id, true
	}
	id, ok := byName[categoryKey(value)]
	return id, ok
}

// categoryKey folds names like "Entertainment: Film" or "Science & Nature"
// to their leading word group.
func categoryKey(name string) string {
	name = strings.ToLower(name)
	if i := strings.Index(name, ":"); i >= 0 {
		name = name[:i]
	}
	if i := strings.Index(name, "&"); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

func jsonString(s string) json.RawMessage {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	raw, _ := json.Marshal(s)
	return raw
}
