package labeling

import (
	"math"
	"sort"

	"github.com/bbalet/stopwords"
)

// minDocFreq drops terms that appear in fewer than this many reviews.
const minDocFreq = 2

// TopKeywords extracts the n highest-scoring unigrams and bigrams across a
// batch of reviews using tf-idf, after English stopword removal. Results
// are ordered by score, ties broken alphabetically, so the output is
// deterministic for a given batch.
func TopKeywords(texts []string, n int) []string {
	if n <= 0 || len(texts) == 0 {
		return nil
	}

	termFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for _, text := range texts {
		cleaned := stopwords.CleanString(text, "en", false)
		tokens := Tokens(cleaned)

		terms := make([]string, 0, len(tokens)*2)
		terms = append(terms, tokens...)
		for i := 0; i+1 < len(tokens); i++ {
			terms = append(terms, tokens[i]+" "+tokens[i+1])
		}

		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			termFreq[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	type scored struct {
		term  string
		score float64
	}
	ranked := make([]scored, 0, len(termFreq))
	total := float64(len(texts))
	for term, tf := range termFreq {
		df := docFreq[term]
		if df < minDocFreq {
			continue
		}
		idf := math.Log((1+total)/(1+float64(df))) + 1
		ranked = append(ranked, scored{term: term, score: float64(tf) * idf})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].term < ranked[j].term
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = ranked[i].term
	}
	return out
}
