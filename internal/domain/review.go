package domain

// Sentiment labels produced by the labeling engine.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// ThemeOther is assigned when no theme keyword matches.
const ThemeOther = "Other"

// Review is one user review of a bank's mobile app. ReviewID is zero until
// the labeler (or the database) assigns one. SentimentLabel, SentimentScore,
// and Theme are empty until the review has been through the labeling engine;
// all other fields pass through untouched.
type Review struct {
	ReviewID       int64
	Bank           string // short bank code from scraping, e.g. "CBE"
	ReviewText     string
	Rating         int    // 1..5
	Date           string // YYYY-MM-DD
	Source         string // e.g. "Google Play"
	SentimentLabel string
	SentimentScore float64
	Theme          string
}

// Labeled reports whether the review carries all three derived fields.
func (r Review) Labeled() bool {
	return r.SentimentLabel != "" && r.Theme != ""
}
