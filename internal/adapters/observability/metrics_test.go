package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bank_reviews/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveLabeled("lexicon", "POSITIVE", "Other")
	observability.ObserveExternal("playstore", "/api/reviews", 200, 30*time.Millisecond)
	observability.ObserveCache("redis", "hit")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	if !strings.Contains(out, "bankreviews_http_requests_total") {
		t.Fatalf("expected bankreviews_http_requests_total in output")
	}
	if !strings.Contains(out, "bankreviews_reviews_labeled_total") {
		t.Fatalf("expected bankreviews_reviews_labeled_total in output")
	}
	// the standalone listener serves this same registry; the outbound and
	// cache counters must be scrapeable from it
	if !strings.Contains(out, "bankreviews_external_requests_total") {
		t.Fatalf("expected bankreviews_external_requests_total in output")
	}
	if !strings.Contains(out, "bankreviews_cache_events_total") {
		t.Fatalf("expected bankreviews_cache_events_total in output")
	}
}
