package domain

import "context"

type ReviewRepository interface {
	// Write paths
	UpsertBank(ctx context.Context, b Bank) (int64, error)
	UpsertReviews(ctx context.Context, rs []Review) error

	// Read paths
	ListBanks(ctx context.Context) ([]Bank, error)
	ListReviews(ctx context.Context, q ReviewsQuery) (ReviewsPage, error)
	SentimentByBank(ctx context.Context) ([]SentimentCount, error)
	ThemeByBank(ctx context.Context) ([]ThemeCount, error)
	RatingSamples(ctx context.Context, bank string) ([]RatingSample, error)
}

type PlayStoreClient interface {
	FindAppID(ctx context.Context, query string) (string, error)
	GetReviews(ctx context.Context, appID string, count int) ([]map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models & queries

type ReviewsQuery struct {
	Bank      string // short code; empty matches all banks
	Sentiment string // POSITIVE|NEGATIVE|NEUTRAL, empty matches all
	Theme     string
	MinRating int
	Limit     int
}

// ReviewsPage is one page of filtered reviews. Total is the number of rows
// matching the query, counted before the page limit is applied.
type ReviewsPage struct {
	Items []Review
	Total int
}

type SentimentCount struct {
	Bank      string `json:"bank"`
	Sentiment string `json:"sentiment"`
	Count     int    `json:"count"`
}

type ThemeCount struct {
	Bank  string `json:"bank"`
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// RatingSample pairs a star rating with the labeled sentiment score, used
// by the insights service for agreement statistics.
type RatingSample struct {
	Rating         int
	SentimentScore float64
	SentimentLabel string
}
