package browser

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"https://github.com/foo", "https://github.com/foo"},
		{"http://example.com", "http://example.com"},
		{"github.com", "https://github.com"},
		{" go.dev/doc ", "https://go.dev/doc"},
		{"golang", "https://www.google.com/search?q=golang"},
		{"what is go.dev", "https://www.google.com/search?q=what%20is%20go.dev"},
		{"a&b", "https://www.google.com/search?q=a%26b"},
		{"c++ tips", "https://www.google.com/search?q=c%2B%2B%20tips"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.google.com", "google.com"},
		{"https://forms.gle/abc", "forms.gle"},
		{"http://example.com?x=1", "example.com"},
		{"https://www.google.com/search?q=go", "google.com"},
		{"ftp://host/x", "ftp:"},
	}
	for _, tt := range tests {
		if got := Display(tt.in); got != tt.want {
			t.Errorf("Display(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuery(t *testing.T) {
	u := Normalize("terminal portfolio")
	if !IsSearch(u) {
		t.Fatalf("expected search URL, got %q", u)
	}
	if got := Query(Normalize("c++ tips")); got != "c++ tips" {
		t.Errorf("plus signs lost: %q", got)
	}
	if got := Query(u); got != "terminal portfolio" {
		t.Errorf("expected query round trip, got %q", got)
	}
	if Query("https://github.com") != "" {
		t.Error("non-search URL should have no query")
	}
}
