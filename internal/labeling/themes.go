package labeling

import (
	"fmt"
	"strings"

	_ "embed"

	"gopkg.in/yaml.v3"

	"bank_reviews/internal/domain"
)

//go:embed themes.yaml
var themesYAML []byte

// Theme is one entry of the keyword table. Keywords are matched as
// substrings of the normalized review text; each keyword contributes one
// point regardless of how often it occurs.
type Theme struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// ThemeMatcher assigns exactly one theme per review. The table order is
// fixed: on a tie the first-declared theme wins.
type ThemeMatcher struct {
	themes []Theme
}

// NewThemeMatcher loads the embedded keyword table.
func NewThemeMatcher() *ThemeMatcher {
	m, err := NewThemeMatcherFromYAML(themesYAML)
	if err != nil {
		// the embedded table is validated by tests; a parse failure here
		// is a build defect
		panic(err)
	}
	return m
}

// NewThemeMatcherFromYAML builds a matcher from an external keyword table,
// keeping declaration order. Keywords are normalized once at load so that
// punctuated phrases match normalized text.
func NewThemeMatcherFromYAML(data []byte) (*ThemeMatcher, error) {
	var themes []Theme
	if err := yaml.Unmarshal(data, &themes); err != nil {
		return nil, fmt.Errorf("parse theme table: %w", err)
	}
	if len(themes) == 0 {
		return nil, fmt.Errorf("theme table is empty")
	}
	for i := range themes {
		if themes[i].Name == "" {
			return nil, fmt.Errorf("theme %d has no name", i)
		}
		kws := make([]string, 0, len(themes[i].Keywords))
		for _, kw := range themes[i].Keywords {
			if n := Normalize(kw); n != "" {
				kws = append(kws, n)
			}
		}
		themes[i].Keywords = kws
	}
	return &ThemeMatcher{themes: themes}, nil
}

// Themes returns the theme names in declaration order.
func (m *ThemeMatcher) Themes() []string {
	out := make([]string, len(m.themes))
	for i, t := range m.themes {
		out[i] = t.Name
	}
	return out
}

// Match returns the theme whose keywords occur most often in text, or
// ThemeOther when nothing matches. Empty or blank input yields ThemeOther
// without normalization.
func (m *ThemeMatcher) Match(text string) string {
	if strings.TrimSpace(text) == "" {
		return domain.ThemeOther
	}
	norm := Normalize(text)
	if norm == "" {
		return domain.ThemeOther
	}

	best := domain.ThemeOther
	bestScore := 0
	for _, t := range m.themes {
		score := 0
		for _, kw := range t.Keywords {
			if strings.Contains(norm, kw) {
				score++
			}
		}
		// strict > keeps the first-declared theme on ties
		if score > bestScore {
			bestScore = score
			best = t.Name
		}
	}
	return best
}
