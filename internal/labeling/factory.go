package labeling

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Backend selection modes.
const (
	ModeAuto      = "auto"      // prefer inference, fall back to lexicon
	ModeInference = "inference" // require the inference service
	ModeLexicon   = "lexicon"   // embedded lexicon only
)

// ErrNoBackend is returned when no classification backend could be
// initialized. It is fatal: selection happens once per batch, before any
// review is processed.
var ErrNoBackend = errors.New("no sentiment backend available")

// BackendConfig drives the once-per-run backend selection. An explicit
// capability object instead of module-level availability flags: the caller
// constructs it at startup and hands it to SelectBackend.
type BackendConfig struct {
	Mode          string  // ModeAuto, ModeInference, or ModeLexicon
	MinConfidence float64 // neural low-confidence downgrade threshold; 0 disables
}

// SelectBackend picks the sentiment backend for a run. In auto mode the
// inference service is preferred when its health probe succeeds; otherwise
// the embedded lexicon is used. The chosen backend is reused for every
// review in the batch, which keeps labels consistent within one run.
//
// client may be nil when no inference service is configured.
func SelectBackend(ctx context.Context, cfg BackendConfig, client InferenceClient) (Backend, error) {
	mode := cfg.Mode
	if mode == "" {
		mode = ModeAuto
	}

	var probeErr error
	switch mode {
	case ModeInference, ModeAuto:
		if client == nil {
			probeErr = fmt.Errorf("inference service not configured")
		} else if probeErr = client.Health(ctx); probeErr == nil {
			log.Info().Float64("min_confidence", cfg.MinConfidence).Msg("using inference sentiment backend")
			return NewNeuralBackend(client, cfg.MinConfidence), nil
		}
		if mode == ModeInference {
			return nil, fmt.Errorf("%w: inference backend required but unavailable: %v", ErrNoBackend, probeErr)
		}
		log.Warn().Err(probeErr).Msg("inference backend unavailable, falling back to lexicon")
		fallthrough
	case ModeLexicon:
		lex, lexErr := NewLexiconBackend()
		if lexErr != nil {
			if probeErr != nil {
				return nil, fmt.Errorf("%w: inference: %v; lexicon: %v", ErrNoBackend, probeErr, lexErr)
			}
			return nil, fmt.Errorf("%w: lexicon: %v", ErrNoBackend, lexErr)
		}
		log.Info().Msg("using lexicon sentiment backend")
		return lex, nil
	default:
		return nil, fmt.Errorf("unknown sentiment backend mode %q", mode)
	}
}
