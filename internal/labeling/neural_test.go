package labeling

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bank_reviews/internal/domain"
)

type fakeInference struct {
	healthErr error
	label     string
	score     float64
	err       error

	lastText string
	calls    int
}

func (f *fakeInference) Health(ctx context.Context) error { return f.healthErr }

func (f *fakeInference) Predict(ctx context.Context, text string) (string, float64, error) {
	f.calls++
	f.lastText = text
	return f.label, f.score, f.err
}

func TestNeural_PassesThroughConfidentLabels(t *testing.T) {
	f := &fakeInference{label: "POSITIVE", score: 0.97}
	b := NewNeuralBackend(f, DefaultMinConfidence)

	label, score := b.Classify(context.Background(), "great app")
	if label != domain.SentimentPositive || score != 0.97 {
		t.Fatalf("got (%s, %v)", label, score)
	}
}

func TestNeural_LowConfidenceDowngradesToNeutral(t *testing.T) {
	f := &fakeInference{label: "NEGATIVE", score: 0.55}
	b := NewNeuralBackend(f, DefaultMinConfidence)

	label, score := b.Classify(context.Background(), "meh")
	if label != domain.SentimentNeutral {
		t.Fatalf("label = %s", label)
	}
	// the raw confidence is kept so callers can see how close it was
	if score != 0.55 {
		t.Fatalf("score = %v", score)
	}
}

func TestNeural_ZeroThresholdDisablesDowngrade(t *testing.T) {
	f := &fakeInference{label: "NEGATIVE", score: 0.55}
	b := NewNeuralBackend(f, 0)

	label, _ := b.Classify(context.Background(), "meh")
	if label != domain.SentimentNegative {
		t.Fatalf("label = %s", label)
	}
}

func TestNeural_ErrorDegradesToNeutral(t *testing.T) {
	f := &fakeInference{err: errors.New("connection refused")}
	b := NewNeuralBackend(f, DefaultMinConfidence)

	label, score := b.Classify(context.Background(), "anything")
	if label != domain.SentimentNeutral || score != 0.5 {
		t.Fatalf("got (%s, %v)", label, score)
	}
}

func TestNeural_UnknownLabelDegradesToNeutral(t *testing.T) {
	f := &fakeInference{label: "MIXED", score: 0.9}
	b := NewNeuralBackend(f, DefaultMinConfidence)

	label, score := b.Classify(context.Background(), "anything")
	if label != domain.SentimentNeutral || score != 0.5 {
		t.Fatalf("got (%s, %v)", label, score)
	}
}

func TestNeural_ScoreClampedToUnitInterval(t *testing.T) {
	f := &fakeInference{label: "positive", score: 1.4}
	b := NewNeuralBackend(f, DefaultMinConfidence)

	label, score := b.Classify(context.Background(), "great")
	if label != domain.SentimentPositive || score != 1 {
		t.Fatalf("got (%s, %v)", label, score)
	}
}

func TestNeural_EmptyTextSkipsTheModel(t *testing.T) {
	f := &fakeInference{label: "POSITIVE", score: 0.99}
	b := NewNeuralBackend(f, DefaultMinConfidence)

	label, score := b.Classify(context.Background(), "   ")
	if label != domain.SentimentNeutral || score != 0.5 {
		t.Fatalf("got (%s, %v)", label, score)
	}
	if f.calls != 0 {
		t.Fatalf("model called %d times for blank text", f.calls)
	}
}

func TestNeural_TruncatesLongText(t *testing.T) {
	f := &fakeInference{label: "POSITIVE", score: 0.9}
	b := NewNeuralBackend(f, DefaultMinConfidence)

	long := strings.Repeat("word ", maxModelTokens+100)
	b.Classify(context.Background(), long)

	if got := len(strings.Fields(f.lastText)); got != maxModelTokens {
		t.Fatalf("sent %d tokens, want %d", got, maxModelTokens)
	}
}
