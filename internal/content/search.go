package content

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Filter returns the indexes of labels matching query, best match first.
// Fuzzy matching is tried first; plain substring matching is the fallback.
// An empty query keeps every label in order.
func Filter(labels []string, query string) []int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		out := make([]int, len(labels))
		for i := range labels {
			out[i] = i
		}
		return out
	}

	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		out := make([]int, 0, len(ranks))
		for _, r := range ranks {
			out = append(out, r.OriginalIndex)
		}
		return out
	}

	lower := strings.ToLower(trimmed)
	var out []int
	for i, l := range labels {
		if strings.Contains(strings.ToLower(l), lower) {
			out = append(out, i)
		}
	}
	return out
}

// Hit is a search result.
type Hit struct {
	Section string `yaml:"section"`
	Title   string `yaml:"title"`
	Detail  string `yaml:"detail,omitempty"`
	URL     string `yaml:"url,omitempty"`
}

// Search looks through section titles and items.
func (p *Portfolio) Search(query string) []Hit {
	keys := make([]string, 0, len(p.Sections))
	for k := range p.Sections {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var (
		hits   []Hit
		labels []string
	)
	for _, k := range keys {
		s := p.Sections[k]
		hits = append(hits, Hit{Section: k, Title: s.Title, Detail: s.Heading})
		labels = append(labels, s.Title)
		for _, it := range s.Items {
			hits = append(hits, Hit{Section: k, Title: it.Title, Detail: it.Detail, URL: it.URL})
			labels = append(labels, it.Title)
		}
	}

	if strings.TrimSpace(query) == "" {
		return nil
	}
	idx := Filter(labels, query)
	out := make([]Hit, 0, len(idx))
	for _, i := range idx {
		out = append(out, hits[i])
	}
	return out
}

// FilterApps narrows apps by name.
func FilterApps(apps []App, query string) []App {
	labels := make([]string, len(apps))
	for i, a := range apps {
		labels[i] = a.Name
	}
	idx := Filter(labels, query)
	out := make([]App, 0, len(idx))
	for _, i := range idx {
		out = append(out, apps[i])
	}
	return out
}

// FilterItems narrows section items by title and detail.
func FilterItems(items []Item, query string) []Item {
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Title + " " + it.Detail
	}
	idx := Filter(labels, query)
	out := make([]Item, 0, len(idx))
	for _, i := range idx {
		out = append(out, items[i])
	}
	return out
}
