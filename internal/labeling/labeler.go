package labeling

import (
	"context"

	"github.com/rs/zerolog/log"

	"bank_reviews/internal/adapters/observability"
	"bank_reviews/internal/domain"
)

// progressEvery controls how often the batch loop logs progress.
const progressEvery = 100

// Labeler applies the sentiment backend and theme matcher to every record
// of a review collection. Records are processed independently and in input
// order; order affects only progress logging, not results.
type Labeler struct {
	backend Backend
	themes  *ThemeMatcher
}

func NewLabeler(b Backend, m *ThemeMatcher) *Labeler {
	return &Labeler{backend: b, themes: m}
}

// Backend returns the backend selected for this run.
func (l *Labeler) Backend() Backend { return l.backend }

// LabelText labels a single text: sentiment plus theme. Used by the
// serving layer for externally submitted reviews.
func (l *Labeler) LabelText(ctx context.Context, text string) (label string, score float64, theme string) {
	label, score = l.backend.Classify(ctx, text)
	theme = l.themes.Match(text)
	observability.ObserveLabeled(l.backend.Name(), label, theme)
	return label, score, theme
}

// LabelAll returns a copy of in with sentiment_label, sentiment_score, and
// theme populated on every record. When no input record carries a review id,
// ids 1..N are assigned in input order first; ids already present are left
// untouched.
//
// The loop checks ctx between reviews: on cancellation it returns the
// records labeled so far together with ctx.Err(). Re-running on the same
// input with the same backend produces identical output.
func (l *Labeler) LabelAll(ctx context.Context, in []domain.Review) ([]domain.Review, error) {
	out := make([]domain.Review, len(in))
	copy(out, in)

	if !hasIDs(out) {
		for i := range out {
			out[i].ReviewID = int64(i + 1)
		}
	}

	for i := range out {
		if err := ctx.Err(); err != nil {
			return out[:i], err
		}

		label, score, theme := l.LabelText(ctx, out[i].ReviewText)
		out[i].SentimentLabel = label
		out[i].SentimentScore = score
		out[i].Theme = theme

		if (i+1)%progressEvery == 0 {
			log.Info().
				Int("done", i+1).
				Int("total", len(out)).
				Str("backend", l.backend.Name()).
				Msg("labeling progress")
		}
	}
	return out, nil
}

// hasIDs reports whether any input record already carries a review id.
func hasIDs(rs []domain.Review) bool {
	for _, r := range rs {
		if r.ReviewID != 0 {
			return true
		}
	}
	return false
}
