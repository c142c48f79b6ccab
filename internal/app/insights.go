package app

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"bank_reviews/internal/domain"
	"bank_reviews/internal/labeling"
)

// insightsCacheKey is the single cache entry for the aggregate report.
const insightsCacheKey = "insights:overview"

// keywordSampleSize bounds how many recent reviews feed keyword extraction.
const keywordSampleSize = 500

// RatingStats summarizes star ratings for one bank. Agreement is the
// sample correlation between star rating and the signed sentiment score
// (positive score for POSITIVE, negated for NEGATIVE, zero for NEUTRAL);
// values near 1 mean labels track stars.
type RatingStats struct {
	Bank      string  `json:"bank"`
	Count     int     `json:"count"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
	Agreement float64 `json:"agreement"`
}

// InsightsOverview is the aggregate report the reporting collaborator
// renders: sentiment and theme distributions per bank, rating statistics,
// and the corpus's top keywords.
type InsightsOverview struct {
	Sentiment []domain.SentimentCount `json:"sentiment_by_bank"`
	Themes    []domain.ThemeCount     `json:"themes_by_bank"`
	Ratings   []RatingStats           `json:"rating_stats"`
	Keywords  []string                `json:"top_keywords"`
}

type InsightsService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewInsightsService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *InsightsService {
	return &InsightsService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *InsightsService) Overview(ctx context.Context) (InsightsOverview, error) {
	var out InsightsOverview
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, insightsCacheKey, &out); ok {
			return out, nil
		}
	}

	sentiment, err := s.repo.SentimentByBank(ctx)
	if err != nil {
		return InsightsOverview{}, err
	}
	themes, err := s.repo.ThemeByBank(ctx)
	if err != nil {
		return InsightsOverview{}, err
	}

	banks, err := s.repo.ListBanks(ctx)
	if err != nil {
		return InsightsOverview{}, err
	}
	ratings := make([]RatingStats, 0, len(banks))
	for _, b := range banks {
		samples, err := s.repo.RatingSamples(ctx, b.Code)
		if err != nil {
			return InsightsOverview{}, err
		}
		ratings = append(ratings, ratingStats(b.Code, samples))
	}

	page, err := s.repo.ListReviews(ctx, domain.ReviewsQuery{Limit: keywordSampleSize})
	if err != nil {
		return InsightsOverview{}, err
	}
	texts := make([]string, len(page.Items))
	for i, r := range page.Items {
		texts[i] = r.ReviewText
	}

	out = InsightsOverview{
		Sentiment: sentiment,
		Themes:    themes,
		Ratings:   ratings,
		Keywords:  labeling.TopKeywords(texts, 20),
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, insightsCacheKey, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func ratingStats(bank string, samples []domain.RatingSample) RatingStats {
	rs := RatingStats{Bank: bank, Count: len(samples)}
	if len(samples) == 0 {
		return rs
	}

	stars := make([]float64, len(samples))
	signed := make([]float64, len(samples))
	for i, s := range samples {
		stars[i] = float64(s.Rating)
		switch s.SentimentLabel {
		case domain.SentimentPositive:
			signed[i] = s.SentimentScore
		case domain.SentimentNegative:
			signed[i] = -s.SentimentScore
		}
	}

	rs.Mean = stat.Mean(stars, nil)
	if len(samples) > 1 {
		rs.StdDev = stat.StdDev(stars, nil)
		// zero variance on either side yields NaN; report 0 so the JSON
		// encoder never sees it
		if corr := stat.Correlation(stars, signed, nil); !math.IsNaN(corr) {
			rs.Agreement = corr
		}
	}
	return rs
}
