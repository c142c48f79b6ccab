// Package inference is the HTTP adapter for the remote sentiment model
// service (a DistilBERT-style classifier behind a small JSON API).
package inference

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"bank_reviews/internal/adapters/observability"
)

var (
	ErrUnavailable = errors.New("inference: service unavailable")
	ErrBadResponse = errors.New("inference: malformed response")
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("inference base URL is required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 15 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// Health checks that the service is up and its model loaded. Used by the
// backend factory's once-per-run availability probe.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/health", nil)
	if err != nil {
		return err
	}
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("inference", "/health", 0, time.Since(start))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("inference", "/health", resp.StatusCode, time.Since(start))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// Predict classifies one text. The service answers
// {"label":"POSITIVE","score":0.98}; label casing is passed through for the
// backend to normalize. Retries transient 5xx/429 with backoff.
func (c *Client) Predict(ctx context.Context, text string) (string, float64, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", 0, err
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", 0, err
	}

	var lastErr error
	for i := 0; i < 3; i++ {
		// fresh request each attempt; the body reader is consumed on send
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/predict", bytes.NewReader(payload))
		if err != nil {
			return "", 0, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.key != "" {
			req.Header.Set("Authorization", "Bearer "+c.key)
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("inference", "/predict", 0, time.Since(start))
			if ctx.Err() != nil {
				return "", 0, ctx.Err()
			}
			lastErr = err
			if i < 2 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return "", 0, lastErr
		}
		observability.ObserveExternal("inference", "/predict", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			var out struct {
				Label string  `json:"label"`
				Score float64 `json:"score"`
			}
			err := json.NewDecoder(resp.Body).Decode(&out)
			resp.Body.Close()
			if err != nil {
				return "", 0, fmt.Errorf("%w: %v", ErrBadResponse, err)
			}
			if out.Label == "" {
				return "", 0, fmt.Errorf("%w: empty label", ErrBadResponse)
			}
			return out.Label, out.Score, nil

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
			if i < 2 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return "", 0, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return "", 0, fmt.Errorf("inference: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return "", 0, lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// backoff doubles per attempt (200ms, 400ms, ...) with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
