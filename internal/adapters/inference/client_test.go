package inference_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"bank_reviews/internal/adapters/inference"
)

func TestClient_Predict_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1:
			w.WriteHeader(503)
		default:
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode(map[string]any{"label": "POSITIVE", "score": 0.97})
		}
	}))
	defer ts.Close()

	cl, err := inference.New(ts.URL, "", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	label, score, err := cl.Predict(ctx, "great app")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if label != "POSITIVE" || score != 0.97 {
		t.Fatalf("unexpected prediction: %s %f", label, score)
	}
	if atomic.LoadInt32(&hits) < 2 {
		t.Fatalf("expected a retry, got %d calls", hits)
	}
}

func TestClient_Predict_BadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
	}))
	defer ts.Close()

	cl, _ := inference.New(ts.URL, "", 100)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, _, err := cl.Predict(ctx, "x"); err == nil {
		t.Fatalf("expected error for 400")
	}
}

func TestClient_Health(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(404)
			return
		}
		w.WriteHeader(200)
	}))
	defer ts.Close()

	cl, _ := inference.New(ts.URL, "", 100)
	if err := cl.Health(context.Background()); err != nil {
		t.Fatalf("health should pass: %v", err)
	}

	ts.Close()
	if err := cl.Health(context.Background()); err == nil {
		t.Fatalf("health should fail after server stop")
	}
}
