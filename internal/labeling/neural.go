package labeling

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"bank_reviews/internal/domain"
)

// maxModelTokens is the remote model's input limit; longer text is
// truncated before the call so callers never have to pre-truncate.
const maxModelTokens = 512

// DefaultMinConfidence is the threshold below which POSITIVE/NEGATIVE
// predictions are downgraded to NEUTRAL. Zero disables the downgrade.
const DefaultMinConfidence = 0.6

// InferenceClient is the transport to the remote sentiment model. The
// adapters/inference package provides the HTTP implementation.
type InferenceClient interface {
	// Health reports whether the service is reachable and its model loaded.
	Health(ctx context.Context) error

	// Predict returns the raw model label (expected POSITIVE or NEGATIVE)
	// and a confidence in [0,1].
	Predict(ctx context.Context, text string) (label string, score float64, err error)
}

// NeuralBackend classifies through a pretrained remote model. Per-review
// transport or model failures degrade to (NEUTRAL, 0.5); they are logged
// but never abort a batch.
type NeuralBackend struct {
	client        InferenceClient
	minConfidence float64
}

// NewNeuralBackend wraps an inference client. minConfidence applies the
// documented low-confidence downgrade uniformly for the whole batch; pass 0
// to disable it.
func NewNeuralBackend(client InferenceClient, minConfidence float64) *NeuralBackend {
	return &NeuralBackend{client: client, minConfidence: minConfidence}
}

func (b *NeuralBackend) Name() string { return "inference" }

// Classify implements Backend.
func (b *NeuralBackend) Classify(ctx context.Context, text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return domain.SentimentNeutral, 0.5
	}

	label, score, err := b.client.Predict(ctx, truncateTokens(text, maxModelTokens))
	if err != nil {
		log.Debug().Err(err).Msg("inference prediction failed, degrading to neutral")
		return domain.SentimentNeutral, 0.5
	}

	switch strings.ToUpper(label) {
	case domain.SentimentPositive:
		label = domain.SentimentPositive
	case domain.SentimentNegative:
		label = domain.SentimentNegative
	default:
		// unknown label from the model
		return domain.SentimentNeutral, 0.5
	}
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}

	if b.minConfidence > 0 && score < b.minConfidence {
		return domain.SentimentNeutral, score
	}
	return label, score
}

// truncateTokens keeps the first n whitespace-separated tokens of text.
func truncateTokens(text string, n int) string {
	fields := strings.Fields(text)
	if len(fields) <= n {
		return text
	}
	return strings.Join(fields[:n], " ")
}
