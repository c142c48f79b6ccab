package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "bank_reviews/internal/adapters/http_server"
	"bank_reviews/internal/adapters/inference"
	"bank_reviews/internal/adapters/observability"
	redisad "bank_reviews/internal/adapters/redis"
	"bank_reviews/internal/app"
	"bank_reviews/internal/labeling"
	"bank_reviews/internal/shared"
	mysqlrepo "bank_reviews/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// backend selection happens once, before the server accepts traffic
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

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	predict := app.NewPredictService(labeler, cache, cfg.CacheTTL)
	insights := app.NewInsightsService(repo, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Predict: predict, Insights: insights, Repo: repo})

	log.Info().Str("addr", cfg.HTTPAddr).Str("backend", backend.Name()).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
