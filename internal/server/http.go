package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHTTPServer wires the trivia API, health checks and metrics.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, handlers *question.HTTPHandlers, store Pinger, metrics *Metrics) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(cfg, logger, handlers, store, metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler builds the full middleware chain around the route table.
func NewHandler(cfg *config.App, logger zerolog.Logger, handlers *question.HTTPHandlers, store Pinger, metrics *Metrics) http.Handler {
	logger = logger.With().Str("component", "http").Logger()

	api := http.NewServeMux()
	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"GET /categories", handlers.ListCategories},
		{"GET /categories/{id}/questions", handlers.ListCategoryQuestions},
		{"GET /questions", handlers.ListQuestions},
		{"POST /questions", handlers.CreateQuestion},
		{"POST /questions/search", handlers.SearchQuestions},
		{"DELETE /questions/{id}", handlers.DeleteQuestion},
		{"POST /quizzes", handlers.PlayQuiz},
	}
	for _, route := range routes {
		api.Handle(route.pattern, metrics.Instrument(route.pattern, route.handler))
	}
	apiHandler := withJSONFallback(api)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			logger.Error().Err(err).Msg("store ping failed")
			httperrors.RespondServiceUnavailable(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	mux.Handle("/", apiHandler)
	if cfg.APIPrefix != "" {
		mux.Handle(cfg.APIPrefix+"/", http.StripPrefix(cfg.APIPrefix, apiHandler))
	}

	return withRequestLogging(logger, withCORS(cfg.CORS, mux))
}
