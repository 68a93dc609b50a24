package app

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/desktop"
	"github.com/Gaurav-Gosain/folio/internal/theme"
)

// ViewMode selects how a finder lays out section items.
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewList
	ViewColumns
)

var viewModes = []ViewMode{ViewGrid, ViewList, ViewColumns}

func (v ViewMode) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewColumns:
		return "columns"
	default:
		return "grid"
	}
}

func parseViewMode(s string) (ViewMode, bool) {
	for _, v := range viewModes {
		if v.String() == s {
			return v, true
		}
	}
	return ViewGrid, false
}

const gridCellWidth = 22

// FinderPanel is the state of a finder or portfolio window.
type FinderPanel struct {
	View     ViewMode
	Selected int
	Search   textinput.Model

	history []string
	histPos int
}

func newFinderPanel(home string) *FinderPanel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search"
	ti.CharLimit = 64
	return &FinderPanel{Search: ti, history: []string{home}}
}

// currentSection returns the content selector the window is showing.
func currentSection(w desktop.Window) string {
	if t, ok := w.ActiveTab(); ok {
		return t.Content
	}
	return w.Content
}

// CanGoBack and CanGoForward report whether history moves are possible.
func (f *FinderPanel) CanGoBack() bool    { return f.histPos > 0 }
func (f *FinderPanel) CanGoForward() bool { return f.histPos < len(f.history)-1 }

// show switches the window to key without touching history.
func (f *FinderPanel) show(m *OS, w desktop.Window, key string) {
	sec := m.Content.Section(key, "")
	m.Store.OpenOrFocusTab(w.ID, sec.Title, key)
	f.Selected = 0
	f.Search.Reset()
}

func (f *FinderPanel) record(key string) {
	if f.history[f.histPos] == key {
		return
	}
	f.history = append(f.history[:f.histPos+1], key)
	if len(f.history) > config.MaxHistory {
		f.history = f.history[len(f.history)-config.MaxHistory:]
	}
	f.histPos = len(f.history) - 1
}

func (f *FinderPanel) navigate(m *OS, w desktop.Window, key string) {
	if currentSection(w) == key {
		return
	}
	f.show(m, w, key)
	f.record(key)
}

func (f *FinderPanel) back(m *OS, w desktop.Window) {
	if !f.CanGoBack() {
		return
	}
	f.histPos--
	f.show(m, w, f.history[f.histPos])
}

func (f *FinderPanel) forward(m *OS, w desktop.Window) {
	if !f.CanGoForward() {
		return
	}
	f.histPos++
	f.show(m, w, f.history[f.histPos])
}

func (f *FinderPanel) cycleView() {
	f.View = viewModes[(int(f.View)+1)%len(viewModes)]
}

// items returns the section items that match the search box.
func (f *FinderPanel) items(m *OS, w desktop.Window) []content.Item {
	sec := m.Content.Section(currentSection(w), w.Title)
	return content.FilterItems(sec.Items, f.Search.Value())
}

func (f *FinderPanel) moveSelection(m *OS, w desktop.Window, delta int) {
	n := len(f.items(m, w))
	if n == 0 {
		f.Selected = 0
		return
	}
	f.Selected = max(0, min(f.Selected+delta, n-1))
}

// sidebarStep moves to the previous or next sidebar section.
func (f *FinderPanel) sidebarStep(m *OS, w desktop.Window, delta int) {
	sections := m.Content.SidebarSections()
	if len(sections) == 0 {
		return
	}
	cur := currentSection(w)
	idx := -1
	for i, s := range sections {
		if s.Key == cur {
			idx = i
			break
		}
	}
	next := 0
	if idx >= 0 {
		next = (idx + delta + len(sections)) % len(sections)
	} else if delta < 0 {
		next = len(sections) - 1
	}
	f.navigate(m, w, sections[next].Key)
}

// openSelection opens the selected item: links go to the browser, anything
// else gets its own portfolio window.
func (m *OS) openSelection(w desktop.Window, f *FinderPanel) tea.Cmd {
	items := f.items(m, w)
	if f.Selected < 0 || f.Selected >= len(items) {
		return nil
	}
	it := items[f.Selected]
	if it.URL != "" {
		m.OpenLink(it.Title, it.URL)
		return nil
	}
	m.OpenWindow(desktop.Spec{
		Kind:    desktop.KindPortfolio,
		Title:   it.Title,
		Content: currentSection(w) + "/" + slug(it.Title),
	})
	return nil
}

// focusedFinder returns the focused window when it shows a finder panel.
func (m *OS) focusedFinder() (desktop.Window, *FinderPanel, bool) {
	w, ok := m.FocusedWindow()
	if !ok {
		return w, nil, false
	}
	p := m.Panel(w.ID)
	if p == nil || p.Finder == nil {
		return w, nil, false
	}
	return w, p.Finder, true
}

// CycleView switches the focused finder to its next view mode.
func (m *OS) CycleView() {
	if _, f, ok := m.focusedFinder(); ok {
		f.cycleView()
	}
}

// HistoryBack steps the focused finder back one location.
func (m *OS) HistoryBack() {
	if w, f, ok := m.focusedFinder(); ok {
		f.back(m, w)
	}
}

// HistoryForward steps the focused finder forward one location.
func (m *OS) HistoryForward() {
	if w, f, ok := m.focusedFinder(); ok {
		f.forward(m, w)
	}
}

// OpenSelected opens the focused finder's selected item.
func (m *OS) OpenSelected() tea.Cmd {
	if w, f, ok := m.focusedFinder(); ok {
		return m.openSelection(w, f)
	}
	return nil
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

func (m *OS) finderKey(w desktop.Window, f *FinderPanel, msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up":
		f.moveSelection(m, w, -1)
		return nil
	case "down":
		f.moveSelection(m, w, 1)
		return nil
	case "left", "right":
		if f.Search.Value() == "" && w.Kind == desktop.KindFinder {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			f.sidebarStep(m, w, delta)
			return nil
		}
	case "enter":
		return m.openSelection(w, f)
	}

	before := f.Search.Value()
	var cmd tea.Cmd
	f.Search, cmd = f.Search.Update(msg)
	if f.Search.Value() != before {
		f.Selected = 0
	}
	return cmd
}

func (m *OS) finderClick(w desktop.Window, f *FinderPanel, action, arg string) tea.Cmd {
	// the store copy may be stale after a generic tab action
	w, _ = m.Store.Window(w.ID)
	switch action {
	case "tab":
		f.record(currentSection(w))
		f.Selected = 0
	case "back":
		f.back(m, w)
	case "fwd":
		f.forward(m, w)
	case "view":
		if v, ok := parseViewMode(arg); ok {
			f.View = v
		}
	case "sidebar":
		f.navigate(m, w, arg)
	case "search":
		m.EnterInputMode()
	case "item":
		i := atoi(arg)
		if i < 0 {
			return nil
		}
		if i == f.Selected {
			return m.openSelection(w, f)
		}
		f.Selected = i
	}
	return nil
}

// =============================================================================
// Rendering
// =============================================================================

func itemIcon(it content.Item) string {
	switch {
	case config.UseASCIIOnly && it.URL != "":
		return "@"
	case config.UseASCIIOnly:
		return "*"
	case it.URL != "":
		return ""
	default:
		return ""
	}
}

func (m *OS) renderFinder(w desktop.Window, f *FinderPanel, width, height int) (string, []hotspot) {
	bg := lipgloss.NewStyle().Background(theme.WindowBg()).Foreground(theme.WindowFg())
	muted := bg.Foreground(theme.WindowMuted())
	var (
		lines []string
		spots []hotspot
	)

	// Toolbar
	btn := func(label string, enabled bool) string {
		if enabled {
			return bg.Bold(true).Render(label)
		}
		return muted.Render(label)
	}
	x := 0
	addTool := func(id, label string) {
		spots = append(spots, hotspot{id: id, x: x, y: 0, content: label})
		x += lipgloss.Width(label) + 1
	}
	addTool(spotID("back", w.ID), btn(" ‹ ", f.CanGoBack()))
	addTool(spotID("fwd", w.ID), btn(" › ", f.CanGoForward()))
	for _, v := range viewModes {
		style := muted
		if v == f.View {
			style = lipgloss.NewStyle().Background(theme.SelectionBg()).Foreground(theme.SelectionFg())
		}
		addTool(spotID("view", w.ID, v.String()), style.Render(" "+v.String()+" "))
	}
	searchW := max(width-x-3, 6)
	f.Search.SetWidth(searchW)
	search := lipgloss.NewStyle().Background(theme.AddressBarBg()).Foreground(theme.WindowFg()).
		Width(searchW + 2).Render("⌕ " + f.Search.View())
	search = clipLine(search, searchW+2)
	spots = append(spots, hotspot{id: spotID("search", w.ID), x: x, y: 0, content: search})
	toolbar := ""
	for _, s := range spots {
		toolbar += s.content + bg.Render(" ")
	}
	lines = append(lines, fitLine(toolbar, width, bg))

	if len(w.Tabs) > 1 {
		strip, tabSpots := renderTabStrip(w, width, 1, false)
		lines = append(lines, strip)
		spots = append(spots, tabSpots...)
	}
	bodyTop := len(lines)
	bodyH := max(height-bodyTop, 0)

	sidebarW := 0
	var sidebar []string
	if w.Kind == desktop.KindFinder {
		sidebarW = min(config.FinderSidebarWidth, width/3)
		side := lipgloss.NewStyle().Background(theme.SidebarBg()).Foreground(theme.WindowFg())
		active := lipgloss.NewStyle().Background(theme.SidebarActive()).Foreground(theme.SelectionFg())
		cur := currentSection(w)
		sidebar = append(sidebar, fitLine(side.Bold(true).Render(" Favorites"), sidebarW, side))
		for i, s := range m.Content.SidebarSections() {
			if i+1 >= bodyH {
				break
			}
			st := side
			if s.Key == cur {
				st = active
			}
			row := fitLine(st.Render(" "+s.Title), sidebarW, st)
			sidebar = append(sidebar, row)
			spots = append(spots, hotspot{id: spotID("sidebar", w.ID, s.Key), x: 0, y: bodyTop + i + 1, content: row})
		}
		for len(sidebar) < bodyH {
			sidebar = append(sidebar, side.Render(strings.Repeat(" ", sidebarW)))
		}
	}

	mainW := max(width-sidebarW, 1)
	mainLines, mainSpots := m.renderFinderMain(w, f, mainW, bodyH)
	for i := range bodyH {
		row := ""
		if sidebarW > 0 {
			row = sidebar[i]
		}
		if i < len(mainLines) {
			row += mainLines[i]
		} else {
			row += bg.Render(strings.Repeat(" ", mainW))
		}
		lines = append(lines, row)
	}
	for _, s := range mainSpots {
		s.x += sidebarW
		s.y += bodyTop
		spots = append(spots, s)
	}
	return strings.Join(lines, "\n"), spots
}

func (m *OS) renderFinderMain(w desktop.Window, f *FinderPanel, width, height int) ([]string, []hotspot) {
	bg := lipgloss.NewStyle().Background(theme.WindowBg()).Foreground(theme.WindowFg())
	muted := bg.Foreground(theme.WindowMuted())
	heading := bg.Foreground(theme.WindowHeading()).Bold(true)
	selected := lipgloss.NewStyle().Background(theme.SelectionBg()).Foreground(theme.SelectionFg())
	pad := func(s string, st lipgloss.Style) string { return fitLine(s, width, st) }

	var lines []string
	key := currentSection(w)

	if w.Kind == desktop.KindPortfolio {
		lines = append(lines,
			pad("", bg),
			pad(heading.Render("  "+w.Title), bg),
			pad("", bg),
			pad(muted.Render(fmt.Sprintf("  Portfolio content for %s will be displayed here.", w.Title)), bg),
		)
		return lines, nil
	}

	sec := m.Content.Section(key, w.Title)
	lines = append(lines, pad("", bg), pad(heading.Render("  "+sec.Heading), bg))
	if sec.Summary != "" {
		wrapped := lipgloss.NewStyle().Width(max(width-4, 8)).Render(strings.TrimSpace(sec.Summary))
		for l := range strings.SplitSeq(wrapped, "\n") {
			lines = append(lines, pad(muted.Render("  "+l), bg))
		}
	}
	lines = append(lines, pad("", bg))

	items := f.items(m, w)
	if len(items) == 0 {
		msg := sec.Empty
		if q := strings.TrimSpace(f.Search.Value()); q != "" {
			msg = fmt.Sprintf("No results for %q", q)
		}
		if msg != "" {
			lines = append(lines, pad(muted.Render("  "+msg), bg))
		}
		return lines, nil
	}
	f.Selected = min(f.Selected, len(items)-1)

	top := len(lines)
	rows := max(height-top, 1)
	var spots []hotspot

	switch f.View {
	case ViewList:
		offset := max(0, f.Selected-rows+1)
		for i := offset; i < len(items) && i-offset < rows; i++ {
			it := items[i]
			st, dim := bg, muted
			if i == f.Selected {
				st, dim = selected, selected
			}
			row := fitLine(st.Render(fmt.Sprintf("  %s %s", itemIcon(it), it.Title))+dim.Render("  "+it.Detail), width, st)
			lines = append(lines, row)
			spots = append(spots, hotspot{id: spotID("item", w.ID, strconv.Itoa(i)), x: 0, y: top + i - offset, content: row})
		}

	case ViewColumns:
		leftW := max(width/2, 10)
		rightW := max(width-leftW, 1)
		it := items[f.Selected]
		detail := []string{
			heading.Render(" " + it.Title),
			muted.Render(" " + it.Detail),
		}
		if it.URL != "" {
			detail = append(detail, bg.Foreground(theme.Link()).Render(" "+it.URL))
		}
		offset := max(0, f.Selected-rows+1)
		for r := range rows {
			i := offset + r
			left := bg.Render(strings.Repeat(" ", leftW))
			if i < len(items) {
				st := bg
				if i == f.Selected {
					st = selected
				}
				left = fitLine(st.Render(fmt.Sprintf("  %s %s", itemIcon(items[i]), items[i].Title)), leftW, st)
				spots = append(spots, hotspot{id: spotID("item", w.ID, strconv.Itoa(i)), x: 0, y: top + r, content: left})
			}
			right := bg.Render(strings.Repeat(" ", rightW))
			if r < len(detail) {
				right = fitLine(detail[r], rightW, bg)
			}
			if i >= len(items) && r >= len(detail) {
				break
			}
			lines = append(lines, left+right)
		}

	default:
		cols := max(width/gridCellWidth, 1)
		cellRows := max(rows/3, 1)
		offset := max(0, f.Selected/cols-cellRows+1) * cols
		for start := offset; start < len(items) && (start-offset)/cols < cellRows; start += cols {
			var top1, top2 string
			for c := range cols {
				i := start + c
				if i >= len(items) {
					break
				}
				it := items[i]
				st, dim := bg, muted
				if i == f.Selected {
					st, dim = selected, selected
				}
				l1 := fitLine(st.Render(fmt.Sprintf(" %s %s", itemIcon(it), it.Title)), gridCellWidth-1, st)
				l2 := fitLine(dim.Render("   "+it.Detail), gridCellWidth-1, dim)
				top1 += l1 + bg.Render(" ")
				top2 += l2 + bg.Render(" ")
				spots = append(spots, hotspot{
					id:      spotID("item", w.ID, strconv.Itoa(i)),
					x:       c * gridCellWidth,
					y:       len(lines),
					content: l1 + "\n" + l2,
				})
			}
			lines = append(lines, pad(top1, bg), pad(top2, bg), pad("", bg))
		}
	}
	return lines, spots
}
