package app

import (
	"strings"

	"bank_reviews/internal/domain"
)

// Clean applies the preprocessing pass to scraped records: drop empty
// texts, drop rows without a parseable date, drop ratings outside 1..5,
// and deduplicate on (bank, review_text). Input order is preserved for
// survivors, which keeps downstream id assignment deterministic.
func Clean(in []domain.Review) []domain.Review {
	type key struct{ bank, text string }
	seen := make(map[key]struct{}, len(in))

	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		r.ReviewText = strings.TrimSpace(r.ReviewText)
		if r.ReviewText == "" {
			continue
		}
		if r.Date == "" {
			continue
		}
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		k := key{bank: r.Bank, text: r.ReviewText}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
