package labeling

import (
	"testing"

	"bank_reviews/internal/domain"
)

func TestThemeMatcher_TableOrderAndNames(t *testing.T) {
	m := NewThemeMatcher()
	names := m.Themes()
	want := []string{
		"Account Access Issues",
		"Transaction Performance",
		"User Interface & Experience",
		"Customer Support",
		"Feature Requests",
		"App Reliability",
		"Security & Privacy",
	}
	if len(names) != len(want) {
		t.Fatalf("got %d themes: %v", len(names), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("theme %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestThemeMatcher_Match(t *testing.T) {
	m := NewThemeMatcher()

	cases := []struct {
		text string
		want string
	}{
		{"", domain.ThemeOther},
		{"   \t ", domain.ThemeOther},
		{"nothing relevant here whatsoever", domain.ThemeOther},
		{"Cannot login, wrong password every time", "Account Access Issues"},
		{"Transfer is slow and payments stay pending", "Transaction Performance"},
		{"The interface design is confusing and cluttered", "User Interface & Experience"},
		{"Customer service never responds to my complaint", "Customer Support"},
		{"Please add fingerprint and face id", "Feature Requests"},
		{"App keeps crashing, total glitch fest", "App Reliability"},
		{"Worried about privacy and data protection", "Security & Privacy"},
	}
	for _, c := range cases {
		if got := m.Match(c.text); got != c.want {
			t.Errorf("Match(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestThemeMatcher_TieBreakIsDeclarationOrder(t *testing.T) {
	m := NewThemeMatcher()
	// one keyword from each of the first two themes; first-declared wins
	if got := m.Match("login transfer"); got != "Account Access Issues" {
		t.Fatalf("tie-break = %q", got)
	}
}

func TestThemeMatcher_KeywordCountsOncePerKeyword(t *testing.T) {
	m := NewThemeMatcher()
	// "login" three times is still one matched keyword; two distinct
	// transaction keywords outweigh it
	if got := m.Match("login login login but the transfer is slow"); got != "Transaction Performance" {
		t.Fatalf("got %q", got)
	}
}

func TestThemeMatcher_PunctuatedPhraseMatches(t *testing.T) {
	m := NewThemeMatcher()
	if got := m.Match("I can't access my money!"); got != "Account Access Issues" {
		t.Fatalf("got %q", got)
	}
}

func TestNewThemeMatcherFromYAML_Validation(t *testing.T) {
	if _, err := NewThemeMatcherFromYAML([]byte("[]")); err == nil {
		t.Fatalf("expected error for empty table")
	}
	if _, err := NewThemeMatcherFromYAML([]byte("- keywords: [x]\n")); err == nil {
		t.Fatalf("expected error for unnamed theme")
	}
	if _, err := NewThemeMatcherFromYAML([]byte("{nope")); err == nil {
		t.Fatalf("expected parse error")
	}
}
