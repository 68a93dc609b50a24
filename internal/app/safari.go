package app

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/folio/internal/browser"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/desktop"
	"github.com/Gaurav-Gosain/folio/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

const pageLoadDelay = time.Second

// SafariPanel is the state of a browser window. Tabs live in the store; the
// panel only owns the address bar.
type SafariPanel struct {
	URL          textinput.Model
	loadingUntil time.Time
}

func newSafariPanel() *SafariPanel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search or enter website name"
	ti.CharLimit = 256
	return &SafariPanel{URL: ti}
}

// syncURL shows the active tab's host in the address bar.
func (s *SafariPanel) syncURL(m *OS, windowID string) {
	w, ok := m.Store.Window(windowID)
	if !ok {
		return
	}
	t, ok := w.ActiveTab()
	if !ok {
		s.URL.SetValue("")
		return
	}
	if browser.IsSearch(t.Content) {
		s.URL.SetValue(browser.Query(t.Content))
	} else {
		s.URL.SetValue(browser.Display(t.Content))
	}
	s.loadingUntil = m.now().Add(pageLoadDelay)
}

// populateBrowser gives a fresh browser window its default tabs.
func (m *OS) populateBrowser(id string) {
	w, ok := m.Store.Window(id)
	if !ok || len(w.Tabs) > 0 {
		return
	}
	var first string
	for _, t := range m.Content.Browser.Tabs {
		tabID := m.Store.OpenOrFocusTab(id, t.Title, t.URL)
		if first == "" {
			first = tabID
		}
	}
	if first == "" {
		first = m.Store.OpenOrFocusTab(id, "New Tab", m.homeURL())
	}
	m.Store.SetActiveTab(id, first)
	if p := m.Panel(id); p != nil && p.Safari != nil {
		p.Safari.syncURL(m, id)
	}
}

func (m *OS) homeURL() string {
	if m.Content.Browser.Home != "" {
		return m.Content.Browser.Home
	}
	return browser.HomeURL
}

// NewTab opens a blank page in a browser window, or a new finder tab on the
// window's home section.
func (m *OS) NewTab(windowID string) {
	w, ok := m.Store.Window(windowID)
	if !ok {
		return
	}
	p := m.Panel(windowID)
	switch w.Kind {
	case desktop.KindSafari:
		m.Store.AddTab(windowID, "New Tab", m.homeURL())
		p.Safari.syncURL(m, windowID)
	case desktop.KindFinder:
		if p.Finder != nil {
			p.Finder.navigate(m, w, w.Content)
		}
	}
}

// CloseTab closes a tab. The last browser tab stays open.
func (m *OS) CloseTab(windowID, tabID string) {
	w, ok := m.Store.Window(windowID)
	if !ok {
		return
	}
	if tabID == "" {
		tabID = w.ActiveTabID
	}
	if _, ok := w.Tab(tabID); !ok {
		return
	}
	if w.Kind == desktop.KindSafari && len(w.Tabs) <= 1 {
		m.ShowNotification("Can't close the last tab", "warning", config.NotificationDuration)
		return
	}
	m.Store.CloseTab(windowID, tabID)
	if p := m.Panel(windowID); p != nil && p.Safari != nil {
		p.Safari.syncURL(m, windowID)
	}
}

// CycleTab activates the next or previous tab of a window.
func (m *OS) CycleTab(windowID string, delta int) {
	w, ok := m.Store.Window(windowID)
	if !ok || len(w.Tabs) < 2 {
		return
	}
	idx := 0
	for i, t := range w.Tabs {
		if t.ID == w.ActiveTabID {
			idx = i
		}
	}
	next := w.Tabs[(idx+delta+len(w.Tabs))%len(w.Tabs)]
	m.Store.SetActiveTab(windowID, next.ID)
	p := m.Panel(windowID)
	switch {
	case p.Safari != nil:
		p.Safari.syncURL(m, windowID)
	case p.Finder != nil:
		p.Finder.record(next.Content)
		p.Finder.Selected = 0
	}
}

// submitURL loads the address bar into the active tab.
func (m *OS) submitURL(w desktop.Window, s *SafariPanel) {
	u := browser.Normalize(s.URL.Value())
	t, ok := w.ActiveTab()
	if u == "" || !ok {
		return
	}
	title := t.Title
	if title == "New Tab" {
		title = browser.Display(u)
	}
	m.Store.UpdateTab(w.ID, t.ID, title, u)
	s.syncURL(m, w.ID)
	m.LogInfo("browser: %s", u)
}

func (m *OS) safariKey(w desktop.Window, s *SafariPanel, msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "enter" {
		m.submitURL(w, s)
		return nil
	}
	var cmd tea.Cmd
	s.URL, cmd = s.URL.Update(msg)
	return cmd
}

func (m *OS) safariClick(w desktop.Window, s *SafariPanel, action string) tea.Cmd {
	switch action {
	case "url":
		m.EnterInputMode()
	case "reload":
		s.loadingUntil = m.now().Add(pageLoadDelay)
	}
	return nil
}

// OpenLink shows url in the browser window, opening it if needed.
func (m *OS) OpenLink(title, url string) {
	id := m.OpenWindow(desktop.Spec{Kind: desktop.KindSafari, Title: "Safari"})
	m.Store.OpenOrFocusTab(id, title, url)
	if p := m.Panel(id); p != nil && p.Safari != nil {
		p.Safari.syncURL(m, id)
	}
	m.ShowNotification(fmt.Sprintf("Opening %s: %s", title, url), "info", config.NotificationDuration)
}

// =============================================================================
// Rendering
// =============================================================================

// renderTabStrip draws one cell per tab with an optional close mark.
func renderTabStrip(w desktop.Window, width, y int, browserStyle bool) (string, []hotspot) {
	bar := lipgloss.NewStyle().Background(theme.TabInactiveBg()).Foreground(theme.WindowFg())
	active := lipgloss.NewStyle().Background(theme.TabActiveBg()).Foreground(theme.WindowFg()).Bold(true)

	n := max(len(w.Tabs), 1)
	reserve := 0
	if browserStyle {
		reserve = 4
	}
	tabW := max((width-reserve)/n, 6)

	var (
		row   string
		spots []hotspot
		x     int
	)
	for _, t := range w.Tabs {
		if x+tabW > width-reserve {
			break
		}
		st := bar
		if t.ID == w.ActiveTabID {
			st = active
		}
		label := fitLine(st.Render(" "+t.Title), tabW-3, st)
		closeMark := st.Render(" x ")
		spots = append(spots,
			hotspot{id: spotID("tab", w.ID, t.ID), x: x, y: y, content: label},
			hotspot{id: spotID("tabclose", w.ID, t.ID), x: x + tabW - 3, y: y, content: closeMark},
		)
		row += label + closeMark
		x += tabW
	}
	if browserStyle {
		plus := bar.Bold(true).Render(" +  ")
		row = fitLine(row, width-reserve, bar) + plus
		spots = append(spots, hotspot{id: spotID("newtab", w.ID), x: width - reserve, y: y, content: plus})
	}
	return fitLine(row, width, bar), spots
}

func (m *OS) renderSafari(w desktop.Window, s *SafariPanel, width, height int) (string, []hotspot) {
	bg := lipgloss.NewStyle().Background(theme.WindowBg()).Foreground(theme.WindowFg())
	muted := bg.Foreground(theme.WindowMuted())
	bar := lipgloss.NewStyle().Background(theme.AddressBarBg()).Foreground(theme.WindowFg())

	var (
		lines []string
		spots []hotspot
	)

	reload := bar.Render(" ↻ ")
	urlW := max(width-lipgloss.Width(reload)-4, 8)
	s.URL.SetWidth(urlW - 2)
	field := clipLine(bar.Width(urlW).Render(" "+s.URL.View()), urlW)
	toolbar := bg.Render("  ") + field + bg.Render(" ") + reload
	lines = append(lines, fitLine(toolbar, width, bg))
	spots = append(spots,
		hotspot{id: spotID("url", w.ID), x: 2, y: 0, content: field},
		hotspot{id: spotID("reload", w.ID), x: 3 + urlW, y: 0, content: reload},
	)

	strip, tabSpots := renderTabStrip(w, width, 1, true)
	lines = append(lines, strip)
	spots = append(spots, tabSpots...)

	t, ok := w.ActiveTab()
	page := []string{""}
	switch {
	case !ok:
		page = append(page, muted.Render("  No page"))
	case m.now().Before(s.loadingUntil):
		page = append(page, muted.Render("  Loading "+browser.Display(t.Content)+"..."))
	case browser.IsSearch(t.Content):
		page = append(page,
			bg.Foreground(theme.WindowHeading()).Bold(true).Render(fmt.Sprintf("  Search results for %q", browser.Query(t.Content))),
			"",
			muted.Render("  Open this search in your browser:"),
			bg.Foreground(theme.Link()).Render("  "+t.Content),
		)
	default:
		page = append(page,
			bg.Foreground(theme.WindowHeading()).Bold(true).Render("  "+t.Title),
			muted.Render("  "+browser.Display(t.Content)),
			"",
			bg.Render("  This page can't be displayed in a terminal."),
			bg.Render("  Open it in your browser:"),
			bg.Foreground(theme.Link()).Render("  "+ansi.Truncate(t.Content, max(width-4, 1), "…")),
		)
	}
	for _, l := range page {
		lines = append(lines, fitLine(l, width, bg))
	}
	for len(lines) < height {
		lines = append(lines, bg.Render(strings.Repeat(" ", width)))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n"), spots
}
