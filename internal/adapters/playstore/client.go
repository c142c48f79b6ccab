// Package playstore scrapes Google Play app reviews: paginated review
// fetches against the store's JSON review feed plus app-id discovery by
// parsing store search result pages.
package playstore

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"bank_reviews/internal/adapters/observability"
	"bank_reviews/internal/domain"
)

var (
	// ErrNotFound wraps the domain sentinel so callers behind the
	// domain.PlayStoreClient port can match either error.
	ErrNotFound    = fmt.Errorf("playstore: %w", domain.ErrNotFound)
	ErrRateLimited = errors.New("playstore: rate limited")
)

// batchSize is the page size for review pagination; the store caps pages
// at 200 entries.
const batchSize = 200

// maxPages bounds pagination per app so one misbehaving feed cannot spin
// the ingestor forever.
const maxPages = 10

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
	lang string
	geo  string
}

func New(base string, rps int) *Client {
	if base == "" {
		base = "https://play.google.com"
	}
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
		lang: "en",
		geo:  "us",
	}
}

// FindAppID searches the store for query and returns the package id of the
// first app result.
func (c *Client) FindAppID(ctx context.Context, query string) (string, error) {
	u := fmt.Sprintf("%s/store/search?q=%s&c=apps", c.base, url.QueryEscape(query))

	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "bank-reviews/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("playstore", "/store/search", 0, time.Since(start))
		return "", err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("playstore", "/store/search", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("playstore: search status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse search page: %w", err)
	}

	var appID string
	doc.Find(`a[href^="/store/apps/details"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		parsed, err := url.Parse(href)
		if err != nil {
			return true
		}
		if id := parsed.Query().Get("id"); id != "" {
			appID = id
			return false
		}
		return true
	})
	if appID == "" {
		return "", fmt.Errorf("%w: no app result for %q", ErrNotFound, query)
	}
	return appID, nil
}

// GetReviews fetches up to count reviews for an app, newest first, walking
// the continuation token until the feed runs dry, count is reached, or the
// page cap is hit.
func (c *Client) GetReviews(ctx context.Context, appID string, count int) ([]map[string]any, error) {
	if count <= 0 {
		count = batchSize
	}

	var all []map[string]any
	token := ""
	for page := 0; page < maxPages && len(all) < count; page++ {
		batch, next, err := c.reviewsPage(ctx, appID, token)
		if err != nil {
			// keep what we already have on a mid-pagination failure
			if len(all) > 0 {
				return all, nil
			}
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
		if next == "" {
			break
		}
		token = next
	}
	if len(all) > count {
		all = all[:count]
	}
	return all, nil
}

func (c *Client) reviewsPage(ctx context.Context, appID, token string) ([]map[string]any, string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, "", err
	}

	q := url.Values{}
	q.Set("id", appID)
	q.Set("hl", c.lang)
	q.Set("gl", c.geo)
	q.Set("sort", "newest")
	q.Set("num", fmt.Sprint(batchSize))
	if token != "" {
		q.Set("token", token)
	}
	u := fmt.Sprintf("%s/api/reviews?%s", c.base, q.Encode())

	var lastErr error
	for i := 0; i < 3; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, "", err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "bank-reviews/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("playstore", "/api/reviews", 0, time.Since(start))
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			lastErr = err
			if i < 2 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return nil, "", lastErr
		}
		observability.ObserveExternal("playstore", "/api/reviews", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			var out struct {
				Reviews   []map[string]any `json:"reviews"`
				NextToken string           `json:"nextToken"`
			}
			err := json.NewDecoder(resp.Body).Decode(&out)
			resp.Body.Close()
			if err != nil {
				return nil, "", fmt.Errorf("decode reviews page: %w", err)
			}
			return out.Reviews, out.NextToken, nil

		case http.StatusNotFound:
			resp.Body.Close()
			return nil, "", ErrNotFound

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
			if i < 2 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return nil, "", lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, "", fmt.Errorf("playstore: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return nil, "", lastErr
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

// backoff doubles per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 500 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
