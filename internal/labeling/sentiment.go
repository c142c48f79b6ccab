package labeling

import (
	"context"
	"fmt"
	"math"
	"strings"

	"bank_reviews/internal/domain"
)

// Backend maps review text to a (label, score) pair. Implementations never
// fail per review: classification errors degrade to the backend's neutral
// convention so one bad review cannot abort a batch.
type Backend interface {
	// Name identifies the backend in logs and metrics ("lexicon" or
	// "inference").
	Name() string

	// Classify returns a label in {POSITIVE, NEGATIVE, NEUTRAL} and a
	// confidence score in [0,1].
	Classify(ctx context.Context, text string) (label string, score float64)
}

// Compound-score thresholds for the lexicon backend.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// normScale flattens the raw valence sum into [-1,1]; same constant the
// reference compound-score analyzers use.
const normScale = 15.0

// negationScope is how many preceding words are checked for a negator.
const negationScope = 3

// negationDamp flips and weakens a negated valence.
const negationDamp = -0.74

// LexiconBackend scores text against an embedded valence lexicon. A word's
// valence is adjusted by intensifiers ("very", "extremely") in the three
// preceding words and flipped by negators ("not", "never"). The summed
// valence is squashed into a compound score in [-1,1].
type LexiconBackend struct{}

// NewLexiconBackend returns the lexicon analyzer, or an error when the
// embedded lexicon is unusable.
func NewLexiconBackend() (*LexiconBackend, error) {
	if len(valences) == 0 {
		return nil, fmt.Errorf("sentiment lexicon is empty")
	}
	return &LexiconBackend{}, nil
}

func (b *LexiconBackend) Name() string { return "lexicon" }

// Classify implements Backend. Empty or blank text short-circuits to
// (NEUTRAL, 0) without scoring.
func (b *LexiconBackend) Classify(_ context.Context, text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return domain.SentimentNeutral, 0
	}
	compound, pos, neg, neu := b.Scores(text)

	switch {
	case compound >= positiveThreshold:
		return domain.SentimentPositive, pos
	case compound <= negativeThreshold:
		return domain.SentimentNegative, neg
	default:
		return domain.SentimentNeutral, neu
	}
}

// Scores returns the compound polarity in [-1,1] plus the positive,
// negative, and neutral proportions (each in [0,1], summing to 1 when the
// text has any tokens).
func (b *LexiconBackend) Scores(text string) (compound, pos, neg, neu float64) {
	tokens := Tokens(text)
	if len(tokens) == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	var posSum, negSum float64
	var neuCount int

	for i, tok := range tokens {
		v, ok := valences[tok]
		if !ok || v == 0 {
			// intensifiers and negators shape neighbouring words, they do
			// not count as neutral content themselves
			if _, isBooster := boosters[tok]; !isBooster && !negators[tok] {
				neuCount++
			}
			continue
		}

		v = applyBoosters(v, tokens, i)
		if negatedBefore(tokens, i) {
			v *= negationDamp
		}

		sum += v
		if v > 0 {
			posSum += v + 1
		} else {
			negSum += v - 1
		}
	}

	compound = sum / math.Sqrt(sum*sum+normScale)
	compound = math.Max(-1, math.Min(1, compound))

	total := posSum + math.Abs(negSum) + float64(neuCount)
	if total == 0 {
		return compound, 0, 0, 0
	}
	pos = posSum / total
	neg = math.Abs(negSum) / total
	neu = float64(neuCount) / total
	return compound, pos, neg, neu
}

// applyBoosters scales valence by intensifiers in the preceding words.
// Influence decays with distance: the word directly before counts fully,
// two back at 95%, three back at 90%.
func applyBoosters(v float64, tokens []string, i int) float64 {
	decay := [negationScope]float64{1.0, 0.95, 0.9}
	for d := 1; d <= negationScope && i-d >= 0; d++ {
		boost, ok := boosters[tokens[i-d]]
		if !ok {
			continue
		}
		adj := boost * decay[d-1]
		if v < 0 {
			adj = -adj
		}
		v += adj
	}
	return v
}

func negatedBefore(tokens []string, i int) bool {
	for d := 1; d <= negationScope && i-d >= 0; d++ {
		if negators[tokens[i-d]] {
			return true
		}
	}
	return false
}
