// Package content loads the portfolio shown on the desktop: icons, dock and
// launcher apps, and the sections rendered inside finder windows.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Action is what happens when an app or icon is activated.
type Action string

const (
	ActionOpen      Action = "open"      // open or focus a window
	ActionLink      Action = "link"      // open a URL in the browser window
	ActionLaunchpad Action = "launchpad" // toggle the launcher overlay
	ActionNoop      Action = ""
)

// App is a launchable entry on the desktop, the dock, or the launcher.
type App struct {
	Name    string `yaml:"name"`
	Icon    string `yaml:"icon"`
	Action  Action `yaml:"action"`
	Kind    string `yaml:"kind,omitempty"`
	Content string `yaml:"content,omitempty"`
	URL     string `yaml:"url,omitempty"`
}

// Item is a single entry inside a section.
type Item struct {
	Title  string `yaml:"title"`
	Detail string `yaml:"detail,omitempty"`
	URL    string `yaml:"url,omitempty"`
}

// Section is the body of a finder window.
type Section struct {
	Key     string `yaml:"-"`
	Title   string `yaml:"title"`
	Heading string `yaml:"heading"`
	Summary string `yaml:"summary,omitempty"`
	Items   []Item `yaml:"items,omitempty"`
	Empty   string `yaml:"empty,omitempty"` // shown when there are no items
}

// Owner identifies whose portfolio this is.
type Owner struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
}

// BrowserTab is a page opened in the browser window by default.
type BrowserTab struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// Browser configures the web browser window.
type Browser struct {
	Home string       `yaml:"home"`
	Tabs []BrowserTab `yaml:"tabs"`
}

// Portfolio is the full content set.
type Portfolio struct {
	Owner     Owner              `yaml:"owner"`
	Contact   string             `yaml:"contact"`
	Icons     []App              `yaml:"icons"`
	Dock      []App              `yaml:"dock"`
	Launchpad []App              `yaml:"launchpad"`
	Sections  map[string]Section `yaml:"sections"`
	Sidebar   []string           `yaml:"sidebar"`
	Browser   Browser            `yaml:"browser"`
}

// Default returns the embedded portfolio.
func Default() *Portfolio {
	p, err := parse(defaultYAML, nil)
	if err != nil {
		panic(fmt.Sprintf("content: embedded default is invalid: %v", err))
	}
	return p
}

// Load reads a YAML portfolio from path and layers it over the defaults.
// An empty path returns the defaults.
func Load(path string) (*Portfolio, error) {
	base := Default()
	if path == "" {
		return base, nil
	}
	// #nosec G304 - path comes from the user's config or flags
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	p, err := parse(data, base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}
	return p, nil
}

// parse decodes data on top of base. Lists are replaced and sections are
// merged by key.
func parse(data []byte, base *Portfolio) (*Portfolio, error) {
	p := base
	if p == nil {
		p = &Portfolio{}
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	if p.Sections == nil {
		p.Sections = map[string]Section{}
	}
	for key, s := range p.Sections {
		s.Key = key
		if s.Title == "" {
			s.Title = key
		}
		if s.Heading == "" {
			s.Heading = s.Title
		}
		p.Sections[key] = s
	}
	return p, nil
}

// Section returns the section for a content selector. Unknown selectors get
// a placeholder titled after fallbackTitle.
func (p *Portfolio) Section(key, fallbackTitle string) Section {
	if s, ok := p.Sections[key]; ok {
		return s
	}
	title := fallbackTitle
	if title == "" {
		title = key
	}
	return Section{
		Key:     key,
		Title:   title,
		Heading: title,
		Summary: fmt.Sprintf("Content for %s will be displayed here.", title),
	}
}

// SidebarSections returns the sidebar entries that exist.
func (p *Portfolio) SidebarSections() []Section {
	out := make([]Section, 0, len(p.Sidebar))
	for _, key := range p.Sidebar {
		if s, ok := p.Sections[key]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Marshal encodes the portfolio as YAML.
func (p *Portfolio) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
