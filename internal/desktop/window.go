// Package desktop holds the window store: the in-memory record of every open
// application window, its geometry, stacking order, focus, and tabs.
//
// The store is owned by the root model and mutated from the bubbletea update
// loop. Operations on ids that are not in the store do nothing.
package desktop

// Kind selects which panel renders a window.
type Kind string

const (
	// KindFinder is the file browser showing portfolio sections.
	KindFinder Kind = "finder"
	// KindMail is the mail composer.
	KindMail Kind = "mail"
	// KindSafari is the web browser.
	KindSafari Kind = "safari"
	// KindPortfolio is a generic content viewer.
	KindPortfolio Kind = "portfolio"
)

// Well known content selectors with special geometry.
const (
	ContentAbout       = "about"
	ContentPlaceholder = "markdown-placeholder"
)

// Tab is a sub-view inside a window.
type Tab struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Content string `yaml:"content,omitempty"`
}

// Window is one application surface on the desktop.
type Window struct {
	ID      string `yaml:"id"`
	Kind    Kind   `yaml:"kind"`
	Title   string `yaml:"title"`
	Content string `yaml:"content,omitempty"` // content selector, may be empty

	Open      bool `yaml:"open"`
	Minimized bool `yaml:"minimized"`
	Maximized bool `yaml:"maximized"`

	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Z      int `yaml:"z"`

	Tabs        []Tab  `yaml:"tabs,omitempty"`
	ActiveTabID string `yaml:"active_tab_id,omitempty"`
}

// Spec describes a window to open.
type Spec struct {
	Kind    Kind
	Title   string
	Content string
}

// Rect is a cell rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Bounds returns the window's geometry as a Rect.
func (w *Window) Bounds() Rect {
	return Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

// Tab returns the tab with the given id.
func (w *Window) Tab(id string) (Tab, bool) {
	if i := w.tabIndex(id); i >= 0 {
		return w.Tabs[i], true
	}
	return Tab{}, false
}

// ActiveTab returns the active tab, if any.
func (w *Window) ActiveTab() (Tab, bool) {
	if w.ActiveTabID == "" {
		return Tab{}, false
	}
	return w.Tab(w.ActiveTabID)
}

func (w *Window) tabIndex(id string) int {
	for i := range w.Tabs {
		if w.Tabs[i].ID == id {
			return i
		}
	}
	return -1
}

// matches reports whether w satisfies the duplicate rule for spec.
// Content wins when the spec carries one; title is the fallback.
func (w *Window) matches(spec Spec) bool {
	if w.Kind != spec.Kind {
		return false
	}
	if spec.Content != "" && w.Content == spec.Content {
		return true
	}
	return w.Title == spec.Title
}

func (w *Window) clone() Window {
	c := *w
	if w.Tabs != nil {
		c.Tabs = make([]Tab, len(w.Tabs))
		copy(c.Tabs, w.Tabs)
	}
	return c
}
