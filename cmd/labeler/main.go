package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog/log"

	"bank_reviews/internal/adapters/csvfile"
	"bank_reviews/internal/adapters/inference"
	"bank_reviews/internal/adapters/observability"
	"bank_reviews/internal/app"
	"bank_reviews/internal/labeling"
	"bank_reviews/internal/shared"
)

func main() {
	in := flag.String("i", "cleaned_reviews.csv", "input CSV of cleaned reviews")
	out := flag.String("o", "labeled_reviews.csv", "output CSV with sentiment and theme columns")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reviews, err := csvfile.ReadReviews(*in)
	if err != nil {
		log.Fatal().Err(err).Str("path", *in).Msg("read input failed")
	}
	reviews = app.Clean(reviews)
	log.Info().Int("reviews", len(reviews)).Str("path", *in).Msg("input loaded")

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

	labeled, err := labeler.LabelAll(ctx, reviews)
	if err != nil {
		log.Fatal().Err(err).Msg("labeling interrupted")
	}

	if err := csvfile.WriteLabeled(*out, labeled); err != nil {
		log.Fatal().Err(err).Str("path", *out).Msg("write output failed")
	}

	sentiments := map[string]int{}
	themes := map[string]int{}
	texts := make([]string, len(labeled))
	for i, r := range labeled {
		sentiments[r.SentimentLabel]++
		themes[r.Theme]++
		texts[i] = r.ReviewText
	}
	log.Info().
		Str("backend", backend.Name()).
		Str("path", *out).
		Int("reviews", len(labeled)).
		Interface("sentiments", sentiments).
		Interface("themes", themes).
		Strs("top_keywords", labeling.TopKeywords(texts, 10)).
		Msg("labeling completed")
}
