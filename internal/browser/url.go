// Package browser implements the address bar rules of the web browser window.
package browser

import (
	"net/url"
	"regexp"
	"strings"
)

// SearchURL is the search endpoint used for address bar input that does not
// look like a URL.
const SearchURL = "https://www.google.com/search?q="

// HomeURL is opened by new tabs.
const HomeURL = "https://www.google.com"

var schemePrefix = regexp.MustCompile(`^https?://(www\.)?`)

// Normalize turns address bar input into a URL. Input without a dot, or with a
// space, is treated as a search.
func Normalize(input string) string {
	in := strings.TrimSpace(input)
	if in == "" {
		return ""
	}
	if strings.HasPrefix(in, "http://") || strings.HasPrefix(in, "https://") {
		return in
	}
	if !strings.Contains(in, ".") || strings.Contains(in, " ") {
		// spaces as %20, not the form encoding's "+"
		return SearchURL + strings.ReplaceAll(url.QueryEscape(in), "+", "%20")
	}
	return "https://" + in
}

// Display returns the host shown in the address bar for a URL.
func Display(u string) string {
	host := schemePrefix.ReplaceAllString(u, "")
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	return host
}

// IsSearch reports whether u is a search results URL.
func IsSearch(u string) bool {
	return strings.HasPrefix(u, SearchURL)
}

// Query returns the search terms of a search URL.
func Query(u string) string {
	if !IsSearch(u) {
		return ""
	}
	q, err := url.QueryUnescape(strings.TrimPrefix(u, SearchURL))
	if err != nil {
		return ""
	}
	return q
}
