package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/importer"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

func main() {
	var (
		source     = flag.String("source", "xlsx", "Question source: xlsx, opentdb or triviaapi")
		file       = flag.String("file", "", "Workbook path for the xlsx source")
		sheet      = flag.String("sheet", "", "Sheet name (defaults to the active sheet)")
		amount     = flag.Int("amount", 10, "Number of questions to fetch from a remote source (opentdb max 50)")
		difficulty = flag.String("difficulty", "", "Remote difficulty filter: easy, medium or hard")
		baseURL    = flag.String("base-url", "", "Override the remote source base URL")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("app", "trivia-importer").Logger()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var src importer.Source
	switch *source {
	case "xlsx":
		if *file == "" {
			log.Fatal().Msg("-file is required for the xlsx source")
		}
		src = importer.NewXLSXSource(*file, *sheet)
	case "opentdb":
		src = importer.NewOpenTDBSource(importer.NewOpenTDBClient(*baseURL, nil), *amount, *difficulty)
	case "triviaapi":
		client := importer.NewTriviaAPIClient(*baseURL, os.Getenv("TRIVIA_API_KEY"), nil)
		src = importer.NewTriviaAPISource(client, *amount, *difficulty)
	default:
		log.Fatal().Str("source", *source).Msg("unknown source. Use: xlsx, opentdb or triviaapi")
	}

	store, err := db.Open(ctx, cfg.Database, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer store.Close()

	svc := question.NewService(store.Questions, store.Categories, question.ServiceOptions{})
	result, err := importer.New(svc, log.Logger).Run(ctx, src)
	if err != nil {
		log.Error().Err(err).Msg("import aborted")
	}
	if result != nil {
		for _, msg := range result.Errors {
			log.Warn().Msg(msg)
		}
		log.Info().
			Int("processed", result.Processed).
			Int("created", result.Created).
			Int("skipped", result.Skipped).
			Msg("import summary")
	}
	if err != nil {
		os.Exit(1)
	}
}
