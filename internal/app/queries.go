package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"bank_reviews/internal/domain"
	"bank_reviews/internal/labeling"
)

// Prediction is the serving-layer result for one submitted text.
type Prediction struct {
	ReviewText     string  `json:"review_text"`
	SentimentLabel string  `json:"sentiment_label"`
	SentimentScore float64 `json:"sentiment_score"`
	Theme          string  `json:"theme"`
}

// PredictService labels externally submitted text through the same engine
// the batch pipeline uses. Results are cached by text hash: labeling is
// deterministic per backend, so a cached entry is always valid for the
// lifetime of the selected backend.
type PredictService struct {
	labeler  *labeling.Labeler
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewPredictService(l *labeling.Labeler, c domain.Cache, ttl time.Duration) *PredictService {
	return &PredictService{labeler: l, cache: c, cacheTTL: ttl}
}

func (s *PredictService) Predict(ctx context.Context, text string) Prediction {
	key := s.cacheKey(text)
	var p Prediction
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &p); ok {
			return p
		}
	}

	label, score, theme := s.labeler.LabelText(ctx, text)
	p = Prediction{ReviewText: text, SentimentLabel: label, SentimentScore: score, Theme: theme}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, p, int(s.cacheTTL.Seconds()))
	}
	return p
}

// PredictBatch labels every submitted text independently. Per-item
// degradation happens inside the engine; the batch itself cannot fail.
func (s *PredictService) PredictBatch(ctx context.Context, texts []string) []Prediction {
	out := make([]Prediction, len(texts))
	for i, t := range texts {
		out[i] = s.Predict(ctx, t)
	}
	return out
}

// cacheKey scopes entries to the selected backend so an inference-labeled
// entry is never served during a lexicon run.
func (s *PredictService) cacheKey(text string) string {
	sum := sha1.Sum([]byte(text))
	return fmt.Sprintf("predict:%s:%s", s.labeler.Backend().Name(), hex.EncodeToString(sum[:]))
}
