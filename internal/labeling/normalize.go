// Package labeling implements the review labeling engine: a sentiment
// classifier polymorphic over two backends (an embedded lexicon analyzer
// and a remote neural inference service), a rule-based theme matcher, and
// a batch orchestrator that applies both to a review collection.
//
// Labeling is a pure function of the review text and the selected backend:
// identical text yields identical output within one run, which makes batch
// re-processing idempotent.
package labeling

import (
	"strings"
	"unicode"
)

// Normalize lowercases text, replaces every non-alphanumeric rune with a
// space, and collapses runs of whitespace. Theme matching and the lexicon
// tokenizer both operate on this form.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens splits normalized text into words.
func Tokens(text string) []string {
	return strings.Fields(Normalize(text))
}
