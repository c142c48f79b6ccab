package app

import (
	"strconv"
	"strings"
	"time"

	"bank_reviews/internal/domain"
)

/********** alias registry (single source of truth) **********/

var reviewAliases = map[string][]string{
	"text":   {"content", "text", "review_text", "review", "comment", "body"},
	"rating": {"score", "rating", "rate", "starRating", "stars"},
	"date":   {"at", "date", "reviewCreatedVersionTime", "createdAt", "time"},
	"source": {"source", "platform", "origin"},
}

// dateLayouts covers the timestamp shapes seen in the store feed.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func firstNonEmpty(m map[string]any, key string) string {
	for _, p := range reviewAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// firstIntFlexible: int from several paths (float64/int/string).
func firstIntFlexible(m map[string]any, paths ...string) (int, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return int(v), true
		case int:
			return v, true
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.Atoi(s); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// normalizeDate parses any known layout and reformats as YYYY-MM-DD.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

/********** review mapper **********/

// mapReviews converts raw store payloads into domain records for one bank.
// Rating and date stay as-is here; validation happens in the cleaning pass.
func mapReviews(bankCode string, in []map[string]any) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		rv := domain.Review{
			Bank:       bankCode,
			ReviewText: firstNonEmpty(r, "text"),
			Date:       normalizeDate(firstNonEmpty(r, "date")),
			Source:     firstNonEmpty(r, "source"),
		}
		if rv.Source == "" {
			rv.Source = "Google Play"
		}
		if n, ok := firstIntFlexible(r, reviewAliases["rating"]...); ok {
			rv.Rating = n
		}
		out = append(out, rv)
	}
	return out
}
