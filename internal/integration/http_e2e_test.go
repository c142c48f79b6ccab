//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	httpserver "bank_reviews/internal/adapters/http_server"
	redisad "bank_reviews/internal/adapters/redis"
	"bank_reviews/internal/app"
	"bank_reviews/internal/domain"
	"bank_reviews/internal/labeling"
	mysqlrepo "bank_reviews/internal/storage/mysql"
)

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir()

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("migrations dir %s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func TestHTTP_EndToEnd(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=bank_reviews",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "bank_reviews")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Ingest a small batch through the real pipeline: clean, label, persist.
	lex, err := labeling.NewLexiconBackend()
	if err != nil {
		t.Fatalf("lexicon: %v", err)
	}
	labeler := labeling.NewLabeler(lex, labeling.NewThemeMatcher())

	bank := domain.Bank{Code: "CBE", Name: "Commercial Bank of Ethiopia", AppName: "CBE Mobile", AppID: "com.combanketh.mobilebanking"}
	reviews := []domain.Review{
		{Bank: "CBE", ReviewText: "This app is excellent and fast", Rating: 5, Date: "2024-06-01", Source: "Google Play"},
		{Bank: "CBE", ReviewText: "Terrible, keeps crashing", Rating: 1, Date: "2024-06-02", Source: "Google Play"},
		{Bank: "CBE", ReviewText: "Please add fingerprint login", Rating: 3, Date: "2024-06-03", Source: "Google Play"},
	}
	labeled, err := labeler.LabelAll(ctx, app.Clean(reviews))
	if err != nil {
		t.Fatalf("LabelAll: %v", err)
	}
	if _, err := repo.UpsertBank(ctx, bank); err != nil {
		t.Fatalf("UpsertBank: %v", err)
	}
	if err := repo.UpsertReviews(ctx, labeled); err != nil {
		t.Fatalf("UpsertReviews: %v", err)
	}

	// Real cache behind the API
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{
		Predict:  app.NewPredictService(labeler, cache, time.Minute),
		Insights: app.NewInsightsService(repo, cache, time.Minute),
		Repo:     repo,
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// reviews endpoint, filtered
	res, err := http.Get(ts.URL + "/v1/banks/CBE/reviews?sentiment=NEGATIVE")
	if err != nil {
		t.Fatalf("GET reviews: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("reviews status %d", res.StatusCode)
	}
	var page struct {
		Items []struct {
			ReviewText     string `json:"review_text"`
			SentimentLabel string `json:"sentiment_label"`
			Theme          string `json:"theme"`
		} `json:"items"`
		Total int `json:"total"`
	}
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		t.Fatalf("decode reviews: %v", err)
	}
	if page.Total != 1 || page.Items[0].Theme != "App Reliability" {
		t.Fatalf("unexpected reviews page: %+v", page)
	}

	// predict endpoint
	pres, err := http.Post(ts.URL+"/predict", "application/json",
		strings.NewReader(`{"review_text":"Transfer is very slow"}`))
	if err != nil {
		t.Fatalf("POST predict: %v", err)
	}
	defer pres.Body.Close()
	var pred struct {
		SentimentLabel string `json:"sentiment_label"`
		Theme          string `json:"theme"`
	}
	if err := json.NewDecoder(pres.Body).Decode(&pred); err != nil {
		t.Fatalf("decode predict: %v", err)
	}
	if pred.SentimentLabel != domain.SentimentNegative || pred.Theme != "Transaction Performance" {
		t.Fatalf("unexpected prediction: %+v", pred)
	}

	// insights endpoint
	ires, err := http.Get(ts.URL + "/v1/insights")
	if err != nil {
		t.Fatalf("GET insights: %v", err)
	}
	defer ires.Body.Close()
	if ires.StatusCode != http.StatusOK {
		t.Fatalf("insights status %d", ires.StatusCode)
	}
	var insights struct {
		Sentiment []struct {
			Bank      string `json:"bank"`
			Sentiment string `json:"sentiment"`
			Count     int    `json:"count"`
		} `json:"sentiment_by_bank"`
		Ratings []struct {
			Bank  string `json:"bank"`
			Count int    `json:"count"`
		} `json:"rating_stats"`
	}
	if err := json.NewDecoder(ires.Body).Decode(&insights); err != nil {
		t.Fatalf("decode insights: %v", err)
	}
	if len(insights.Sentiment) == 0 {
		t.Fatalf("no sentiment distribution: %+v", insights)
	}
	if len(insights.Ratings) != 1 || insights.Ratings[0].Count != 3 {
		t.Fatalf("unexpected rating stats: %+v", insights.Ratings)
	}
}
