package question

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// QuizObserver is notified of every quiz draw.
type QuizObserver interface {
	ObserveQuiz(exhausted bool)
}

// HTTPHandlers exposes the trivia REST endpoints.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
	quiz   QuizObserver
}

// NewHTTPHandlers creates HTTP handlers for question, category and quiz endpoints.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// WithQuizObserver reports quiz outcomes to obs.
func (h *HTTPHandlers) WithQuizObserver(obs QuizObserver) *HTTPHandlers {
	h.quiz = obs
	return h
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := ParsePage(r.URL.Query().Get("page"))

	result, err := h.svc.Page(r.Context(), page)
	if err != nil {
		h.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": nil,
		"categories":       result.Categories,
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !h.decode(w, r, &req) {
		return
	}

	id, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	h.log(r).Info().Int64("question_id", id).Msg("question created")
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"question_id": id,
	})
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !h.decode(w, r, &req) {
		return
	}

	term := ""
	if req.SearchTerm != nil {
		term = *req.SearchTerm
	}

	result, err := h.svc.Search(r.Context(), term)
	if err != nil {
		h.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": nil,
	})
}

// ListCategoryQuestions handles GET /categories/{id}/questions
func (h *HTTPHandlers) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	result, err := h.svc.ByCategory(r.Context(), categoryID)
	if err != nil {
		h.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": categoryID,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	h.log(r).Info().Int64("question_id", id).Msg("question deleted")
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"deleted_id": id,
	})
}

// PlayQuiz handles POST /quizzes
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if !h.decode(w, r, &req) {
		return
	}

	next, err := h.svc.NextQuizQuestion(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	if h.quiz != nil {
		h.quiz.ObserveQuiz(next == nil)
	}

	// a nil question ends the quiz and is still a success
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": next,
	})
}

func (h *HTTPHandlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		// a well-formed body with a wrongly typed field is a validation failure
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			h.log(r).Debug().Err(err).Str("field", typeErr.Field).Msg("request rejected")
			httperrors.RespondUnprocessable(w)
			return false
		}
		h.log(r).Debug().Err(err).Msg("invalid JSON payload")
		httperrors.RespondBadRequest(w)
		return false
	}
	return true
}

func (h *HTTPHandlers) respondError(w http.ResponseWriter, r *http.Request, err error, storageStatus int) {
	switch {
	case errors.Is(err, ErrNotFound):
		h.log(r).Debug().Err(err).Msg("resource not found")
		httperrors.RespondNotFound(w)
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidArgument):
		h.log(r).Debug().Err(err).Msg("request rejected")
		httperrors.RespondUnprocessable(w)
	default:
		h.log(r).Error().Err(err).Msg("storage failure")
		if storageStatus == http.StatusUnprocessableEntity {
			httperrors.RespondUnprocessable(w)
			return
		}
		httperrors.RespondInternalError(w)
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *HTTPHandlers) log(r *http.Request) *zerolog.Logger {
	logger := logging.FromContextOr(r.Context(), h.logger)
	return &logger
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
