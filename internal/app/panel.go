package app

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/folio/internal/desktop"
)

// Panel holds the per-window state that the store does not track. Exactly
// one of the kind-specific fields is set.
type Panel struct {
	WindowID string
	Kind     desktop.Kind

	Finder *FinderPanel
	Mail   *MailPanel
	Safari *SafariPanel
}

// hotspot is a clickable region of a panel, relative to the window's content
// area. content is drawn over the panel so the hit layer has a size.
type hotspot struct {
	id      string
	x, y    int
	content string
}

// hotspot ids are "<action>:<window id>[:<arg>]".
func spotID(action, windowID string, arg ...string) string {
	parts := append([]string{action, windowID}, arg...)
	return strings.Join(parts, ":")
}

// ParseHitID splits a layer id into its action, window id and argument.
func ParseHitID(id string) (action, windowID, arg string) {
	parts := strings.SplitN(id, ":", 3)
	switch len(parts) {
	case 3:
		return parts[0], parts[1], parts[2]
	case 2:
		return parts[0], parts[1], ""
	default:
		return parts[0], "", ""
	}
}

func (m *OS) newPanel(w desktop.Window) *Panel {
	p := &Panel{WindowID: w.ID, Kind: w.Kind}
	switch w.Kind {
	case desktop.KindFinder, desktop.KindPortfolio:
		p.Finder = newFinderPanel(w.Content)
	case desktop.KindMail:
		p.Mail = newMailPanel(m.Recipient)
	case desktop.KindSafari:
		p.Safari = newSafariPanel()
	}
	return p
}

// Panel returns the panel for a window, creating it on first use.
func (m *OS) Panel(windowID string) *Panel {
	if p, ok := m.panels[windowID]; ok {
		return p
	}
	w, ok := m.Store.Window(windowID)
	if !ok {
		return nil
	}
	p := m.newPanel(w)
	m.panels[windowID] = p
	return p
}

// FocusedWindow returns the focused window when it is visible.
func (m *OS) FocusedWindow() (desktop.Window, bool) {
	w, ok := m.Store.Window(m.Store.FocusedID())
	if !ok || w.Minimized || !w.Open {
		return desktop.Window{}, false
	}
	return w, true
}

// FocusedPanel returns the panel of the focused window.
func (m *OS) FocusedPanel() *Panel {
	w, ok := m.FocusedWindow()
	if !ok {
		return nil
	}
	return m.Panel(w.ID)
}

func (p *Panel) focusInput() {
	switch {
	case p.Finder != nil:
		p.Finder.Search.Focus()
	case p.Mail != nil:
		p.Mail.focusField()
	case p.Safari != nil:
		p.Safari.URL.Focus()
	}
}

func (p *Panel) blurInput() {
	switch {
	case p.Finder != nil:
		p.Finder.Search.Blur()
	case p.Mail != nil:
		p.Mail.blurAll()
	case p.Safari != nil:
		p.Safari.URL.Blur()
	}
}

// HandleKey passes a key to the focused panel while in input mode.
func (m *OS) HandleKey(msg tea.KeyPressMsg) tea.Cmd {
	w, ok := m.FocusedWindow()
	if !ok {
		return nil
	}
	p := m.Panel(w.ID)
	switch {
	case p.Finder != nil:
		return m.finderKey(w, p.Finder, msg)
	case p.Mail != nil:
		return m.mailKey(w, p.Mail, msg)
	case p.Safari != nil:
		return m.safariKey(w, p.Safari, msg)
	}
	return nil
}

// ActivateHotspot runs the action behind a clicked panel element.
func (m *OS) ActivateHotspot(id string) tea.Cmd {
	action, windowID, arg := ParseHitID(id)
	w, ok := m.Store.Window(windowID)
	if !ok {
		return nil
	}
	m.Store.Focus(w.ID)
	p := m.Panel(w.ID)

	switch action {
	case "tab":
		m.Store.SetActiveTab(w.ID, arg)
		if p.Safari != nil {
			p.Safari.syncURL(m, w.ID)
		}
	case "tabclose":
		m.CloseTab(w.ID, arg)
	case "newtab":
		m.NewTab(w.ID)
	}

	switch {
	case p.Finder != nil:
		return m.finderClick(w, p.Finder, action, arg)
	case p.Mail != nil:
		return m.mailClick(w, p.Mail, action, arg)
	case p.Safari != nil:
		return m.safariClick(w, p.Safari, action)
	}
	return nil
}

// ScrollPanel moves the selection of a list panel under the wheel.
func (m *OS) ScrollPanel(windowID string, delta int) {
	p := m.Panel(windowID)
	if p == nil || p.Finder == nil {
		return
	}
	w, _ := m.Store.Window(windowID)
	p.Finder.moveSelection(m, w, delta)
}

func itoa(n int) string { return strconv.Itoa(n) }

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
