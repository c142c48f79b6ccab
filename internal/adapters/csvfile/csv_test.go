package csvfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bank_reviews/internal/domain"
)

func TestReadReviews_AliasedHeaders(t *testing.T) {
	in := strings.Join([]string{
		"review,score,date,bank",
		`"Love the new UI",5,2024-06-01,CBE`,
		`"OTP never arrives",1.0,2024-06-02,BOA`,
	}, "\n")

	rs, err := readReviews(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readReviews: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("got %d reviews", len(rs))
	}
	if rs[0].ReviewText != "Love the new UI" || rs[0].Rating != 5 || rs[0].Bank != "CBE" {
		t.Fatalf("row 0 = %+v", rs[0])
	}
	if rs[1].Rating != 1 {
		t.Fatalf("float rating not coerced: %+v", rs[1])
	}
	if rs[0].Source != "Google Play" {
		t.Fatalf("missing source not defaulted: %+v", rs[0])
	}
}

func TestReadReviews_MissingColumn(t *testing.T) {
	_, err := readReviews(strings.NewReader("review,rating,bank\nx,5,CBE\n"))
	if err == nil || !strings.Contains(err.Error(), `"date"`) {
		t.Fatalf("expected missing date column error, got %v", err)
	}
}

func TestReadReviews_BadRating(t *testing.T) {
	_, err := readReviews(strings.NewReader("review,rating,date,bank\nx,five,2024-06-01,CBE\n"))
	if err == nil || !strings.Contains(err.Error(), "bad rating") {
		t.Fatalf("expected bad rating error, got %v", err)
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labeled.csv")

	in := []domain.Review{
		{ReviewID: 1, Bank: "CBE", ReviewText: "Excellent and fast", Rating: 5, Date: "2024-06-01",
			Source: "Google Play", SentimentLabel: domain.SentimentPositive, SentimentScore: 0.7088, Theme: "Transaction Performance"},
		{ReviewID: 2, Bank: "BOA", ReviewText: "Crashes, with \"quotes\" and, commas", Rating: 1, Date: "2024-06-02",
			Source: "Google Play", SentimentLabel: domain.SentimentNegative, SentimentScore: 0.5, Theme: "App Reliability"},
	}
	if err := WriteLabeled(path, in); err != nil {
		t.Fatalf("WriteLabeled: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(raw), "review_id,review_text,rating,date,bank,source,sentiment_label,sentiment_score,theme\n") {
		t.Fatalf("unexpected header: %q", strings.SplitN(string(raw), "\n", 2)[0])
	}

	rs, err := ReadReviews(path)
	if err != nil {
		t.Fatalf("ReadReviews: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("got %d reviews", len(rs))
	}
	if rs[1].ReviewText != in[1].ReviewText {
		t.Fatalf("quoting broke round trip: %q", rs[1].ReviewText)
	}
	if rs[0].ReviewID != 1 || rs[1].ReviewID != 2 {
		t.Fatalf("ids lost: %+v", rs)
	}
}
