package labeling

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"   ", ""},
		{"Hello World", "hello world"},
		{"Can't ACCESS my account!!", "can t access my account"},
		{"fast...   and\tsmooth", "fast and smooth"},
		{"v2.1 update", "v2 1 update"},
		{"!!!???", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Not good, really!")
	want := []string{"not", "good", "really"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokens = %v, want %v", got, want)
	}
	if Tokens("") != nil && len(Tokens("")) != 0 {
		t.Fatalf("Tokens(\"\") = %v", Tokens(""))
	}
}
