package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"bank_reviews/internal/domain"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	PlayBase    string
	PlayRPS     int
	Workers     int
	ReviewCount int

	InferenceURL  string
	InferenceKey  string
	InferenceRPS  int
	BackendMode   string  // auto|inference|lexicon
	MinConfidence float64 // neural low-confidence downgrade; 0 disables

	CacheTTL time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/bank_reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		PlayBase:    env("PLAY_BASE_URL", "https://play.google.com"),
		PlayRPS:     atoi("PLAY_RPS", 1),
		Workers:     atoi("INGEST_WORKERS", 3),
		ReviewCount: atoi("INGEST_REVIEW_COUNT", 400),

		InferenceURL:  env("INFERENCE_URL", ""),
		InferenceKey:  env("INFERENCE_API_KEY", ""),
		InferenceRPS:  atoi("INFERENCE_RPS", 10),
		BackendMode:   env("SENTIMENT_BACKEND", "auto"),
		MinConfidence: atof("SENTIMENT_MIN_CONFIDENCE", 0.6),

		CacheTTL: time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.InferenceURL == "" && c.BackendMode == "inference" {
		log.Warn().Msg("SENTIMENT_BACKEND=inference but INFERENCE_URL is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Banks is the fixed set of Ethiopian banks the ingestor covers, with
// their primary Google Play package ids.
var Banks = []domain.Bank{
	{Code: "CBE", Name: "Commercial Bank of Ethiopia", AppName: "Commercial Bank of Ethiopia Mobile", AppID: "com.combanketh.mobilebanking"},
	{Code: "BOA", Name: "Bank of Abyssinia", AppName: "BoA Mobile", AppID: "com.boa.boaMobileBanking"},
	{Code: "Dashen", Name: "Dashen Bank", AppName: "Dashen Mobile", AppID: "com.cr2.amolelight"},
}
