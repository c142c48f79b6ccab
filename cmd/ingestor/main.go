package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"bank_reviews/internal/adapters/inference"
	"bank_reviews/internal/adapters/observability"
	"bank_reviews/internal/adapters/playstore"
	"bank_reviews/internal/app"
	"bank_reviews/internal/labeling"
	"bank_reviews/internal/shared"
	mysqlrepo "bank_reviews/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	log.Info().
		Str("base", cfg.PlayBase).
		Int("workers", cfg.Workers).
		Int("reviews", cfg.ReviewCount).
		Str("backend_mode", cfg.BackendMode).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	store := playstore.New(cfg.PlayBase, cfg.PlayRPS)

	// one backend for the whole run; all banks get consistent labels
	var infClient labeling.InferenceClient
	if cfg.InferenceURL != "" {
		c, err := inference.New(cfg.InferenceURL, cfg.InferenceKey, cfg.InferenceRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize inference client")
		}
		infClient = c
	}
	backend, err := labeling.SelectBackend(ctx, labeling.BackendConfig{
		Mode:          cfg.BackendMode,
		MinConfidence: cfg.MinConfidence,
	}, infClient)
	if err != nil {
		log.Fatal().Err(err).Msg("no sentiment backend")
	}
	labeler := labeling.NewLabeler(backend, labeling.NewThemeMatcher())

	ing := app.NewIngestionService(store, repo, labeler)
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, bank := range shared.Banks {
		bank := bank

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := ing.IngestBank(ctx, bank, cfg.ReviewCount); err != nil {
				log.Warn().Str("bank", bank.Code).Err(err).Msg("ingest failed")
				return
			}
			log.Info().Str("bank", bank.Code).Msg("ingest ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("ingestion completed")
}
