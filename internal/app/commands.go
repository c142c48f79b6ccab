package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"bank_reviews/internal/domain"
	"bank_reviews/internal/labeling"
)

// IngestionService runs the scrape → clean → label → persist pipeline for
// one bank at a time. The labeler's backend is selected once before the
// run, so every review in the run carries labels from the same backend.
type IngestionService struct {
	store   domain.PlayStoreClient
	repo    domain.ReviewRepository
	labeler *labeling.Labeler
}

func NewIngestionService(s domain.PlayStoreClient, r domain.ReviewRepository, l *labeling.Labeler) *IngestionService {
	return &IngestionService{store: s, repo: r, labeler: l}
}

// IngestBank scrapes up to reviewCount reviews for one bank, cleans and
// labels them, and upserts bank plus reviews. A bank whose app cannot be
// found is logged and skipped rather than failing the whole run.
func (s *IngestionService) IngestBank(ctx context.Context, bank domain.Bank, reviewCount int) error {
	appID := bank.AppID
	if appID == "" {
		found, err := s.store.FindAppID(ctx, bank.AppName)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				log.Warn().Str("bank", bank.Code).Msg("app not found in store, skipping")
				return nil
			}
			return fmt.Errorf("find app id for %s: %w", bank.Code, err)
		}
		appID = found
	}

	raw, err := s.store.GetReviews(ctx, appID, reviewCount)
	if err != nil {
		return fmt.Errorf("fetch reviews for %s: %w", bank.Code, err)
	}

	cleaned := Clean(mapReviews(bank.Code, raw))
	log.Info().
		Str("bank", bank.Code).
		Int("scraped", len(raw)).
		Int("cleaned", len(cleaned)).
		Msg("reviews cleaned")

	labeled, err := s.labeler.LabelAll(ctx, cleaned)
	if err != nil {
		// context cancelled mid-batch; nothing usable to persist with a
		// dead context
		return err
	}

	if len(labeled) == 0 {
		log.Warn().Str("bank", bank.Code).Msg("no reviews survived cleaning")
		return nil
	}
	return s.persist(ctx, bank, labeled)
}

func (s *IngestionService) persist(ctx context.Context, bank domain.Bank, rs []domain.Review) error {
	if bank.Name == "" {
		bank.Name = domain.BankNames[bank.Code]
	}
	if _, err := s.repo.UpsertBank(ctx, bank); err != nil {
		return fmt.Errorf("upsert bank %s: %w", bank.Code, err)
	}
	if err := s.repo.UpsertReviews(ctx, rs); err != nil {
		return fmt.Errorf("upsert reviews for %s: %w", bank.Code, err)
	}

	texts := make([]string, len(rs))
	for i, r := range rs {
		texts[i] = r.ReviewText
	}
	if kws := labeling.TopKeywords(texts, 10); len(kws) > 0 {
		log.Info().Str("bank", bank.Code).Strs("keywords", kws).Msg("top batch keywords")
	}
	return nil
}
