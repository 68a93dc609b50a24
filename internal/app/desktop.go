package app

import (
	"fmt"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/desktop"
)

// specFor maps a launchable app to the window it opens.
func specFor(a content.App) desktop.Spec {
	kind := desktop.Kind(a.Kind)
	if kind == "" {
		kind = desktop.KindPortfolio
	}
	spec := desktop.Spec{Kind: kind, Title: a.Name, Content: a.Content}
	// There is one browser; its tabs carry the pages.
	if kind == desktop.KindSafari {
		spec = desktop.Spec{Kind: kind, Title: "Safari"}
	}
	return spec
}

// OpenWindow opens or restores a window and prepares its panel.
func (m *OS) OpenWindow(spec desktop.Spec) string {
	if m.Mode == InputMode {
		m.ExitInputMode()
	}
	existed := m.Store.Len()
	id := m.Store.Open(spec)
	m.Panel(id)
	if spec.Kind == desktop.KindSafari {
		m.populateBrowser(id)
	}
	if m.Store.Len() > existed {
		m.LogInfo("Opened %s window %q", spec.Kind, spec.Title)
	}
	return id
}

// LaunchApp performs an app's action.
func (m *OS) LaunchApp(a content.App) {
	switch a.Action {
	case content.ActionOpen:
		m.OpenWindow(specFor(a))
	case content.ActionLink:
		m.OpenLink(a.Name, a.URL)
	case content.ActionLaunchpad:
		m.ToggleLauncher()
	default:
		m.LogWarn("%s has no action", a.Name)
	}
}

// OpenIcon opens the n-th desktop icon, counting from 1.
func (m *OS) OpenIcon(n int) {
	if n < 1 || n > len(m.Content.Icons) {
		return
	}
	m.SelectedIcon = n - 1
	m.LaunchApp(m.Content.Icons[n-1])
}

// OpenTrash opens the trash folder.
func (m *OS) OpenTrash() {
	sec := m.Content.Section("trash", "Trash")
	m.OpenWindow(desktop.Spec{Kind: desktop.KindFinder, Title: sec.Title, Content: "trash"})
}

// OpenAbout opens the About window.
func (m *OS) OpenAbout() {
	sec := m.Content.Section(desktop.ContentAbout, "About Me")
	m.OpenWindow(desktop.Spec{Kind: desktop.KindFinder, Title: sec.Title, Content: desktop.ContentAbout})
}

// focusTopmost focuses the highest visible window, if any.
func (m *OS) focusTopmost() {
	if top, ok := m.Store.Topmost(); ok {
		m.Store.Focus(top.ID)
	}
}

// FocusWindow raises a window, restoring it from the dock if needed.
func (m *OS) FocusWindow(id string) {
	w, ok := m.Store.Window(id)
	if !ok {
		return
	}
	if w.Minimized {
		m.RestoreWindow(id)
		return
	}
	if id != m.Store.FocusedID() && m.Mode == InputMode {
		m.ExitInputMode()
	}
	m.Store.Focus(id)
}

// CloseWindow closes a window and focuses the next one.
func (m *OS) CloseWindow(id string) {
	w, ok := m.Store.Window(id)
	if !ok {
		return
	}
	if id == m.Store.FocusedID() && m.Mode == InputMode {
		m.ExitInputMode()
	}
	if m.Drag.WindowID == id {
		m.Drag = DragState{}
	}
	m.Store.Close(id)
	delete(m.panels, id)
	m.LogInfo("Closed %s window %q", w.Kind, w.Title)
	if m.Store.FocusedID() == "" {
		m.focusTopmost()
	}
}

// MinimizeWindow sends a window to the dock.
func (m *OS) MinimizeWindow(id string) {
	if _, ok := m.Store.Window(id); !ok {
		return
	}
	if id == m.Store.FocusedID() && m.Mode == InputMode {
		m.ExitInputMode()
	}
	m.Store.Minimize(id)
	if id == m.Store.FocusedID() {
		m.focusTopmost()
	}
}

// RestoreWindow brings a minimized window back and focuses it. A maximized
// window stays maximized.
func (m *OS) RestoreWindow(id string) {
	w, ok := m.Store.Window(id)
	if !ok {
		return
	}
	m.Store.Open(desktop.Spec{Kind: w.Kind, Title: w.Title, Content: w.Content})
	m.Store.Focus(id)
}

// RestoreAll restores every minimized window.
func (m *OS) RestoreAll() {
	n := 0
	for _, w := range m.Store.Stacked() {
		if w.Minimized {
			m.RestoreWindow(w.ID)
			n++
		}
	}
	if n > 0 {
		m.LogInfo("Restored %d window(s)", n)
	}
}

// ToggleMaximize maximizes a window or puts it back to its stored geometry.
func (m *OS) ToggleMaximize(id string) {
	w, ok := m.Store.Window(id)
	if !ok {
		return
	}
	if w.Maximized {
		m.Store.Restore(id)
	} else {
		m.Store.Maximize(id)
	}
	m.Store.Focus(id)
}

// visibleWindows returns the windows that are drawn, bottom to top.
func (m *OS) visibleWindows() []desktop.Window {
	var out []desktop.Window
	for _, w := range m.Store.Stacked() {
		if w.Open && !w.Minimized {
			out = append(out, w)
		}
	}
	return out
}

// CycleWindow focuses the next (delta > 0) or previous visible window in
// creation order.
func (m *OS) CycleWindow(delta int) {
	var visible []desktop.Window
	for _, w := range m.Store.Windows() {
		if w.Open && !w.Minimized {
			visible = append(visible, w)
		}
	}
	if len(visible) == 0 {
		return
	}
	cur := -1
	for i, w := range visible {
		if w.ID == m.Store.FocusedID() {
			cur = i
		}
	}
	next := 0
	switch {
	case cur >= 0:
		next = (cur + delta + len(visible)) % len(visible)
	case delta < 0:
		next = len(visible) - 1
	}
	m.FocusWindow(visible[next].ID)
}

// MoveWindow places a window, keeping it inside the desktop area.
func (m *OS) MoveWindow(id string, x, y int) {
	w, ok := m.Store.Window(id)
	if !ok || w.Maximized {
		return
	}
	area := m.DesktopArea()
	x = max(0, min(x, area.Width-w.Width))
	y = max(0, min(y, area.Height-w.Height))
	m.Store.Reposition(id, x, y)
}

// ResizeWindow sets a window's size, clamped between the minimum size and
// the space left to the right and below it.
func (m *OS) ResizeWindow(id string, width, height int) {
	w, ok := m.Store.Window(id)
	if !ok || w.Maximized {
		return
	}
	area := m.DesktopArea()
	width = max(config.MinWindowWidth, min(width, area.Width-w.X))
	height = max(config.MinWindowHeight, min(height, area.Height-w.Y))
	m.Store.Resize(id, width, height)
}

// NudgeFocused moves the focused window by a cell offset.
func (m *OS) NudgeFocused(dx, dy int) {
	if w, ok := m.FocusedWindow(); ok {
		m.MoveWindow(w.ID, w.X+dx, w.Y+dy)
	}
}

// GrowFocused resizes the focused window by a cell offset.
func (m *OS) GrowFocused(dw, dh int) {
	if w, ok := m.FocusedWindow(); ok {
		m.ResizeWindow(w.ID, w.Width+dw, w.Height+dh)
	}
}

// ToggleLauncher shows or hides the launchpad.
func (m *OS) ToggleLauncher() {
	if m.Launcher.Visible {
		m.Launcher.Hide()
		return
	}
	if m.Mode == InputMode {
		m.ExitInputMode()
	}
	m.ShowHelp = false
	m.Launcher.Show()
}

// ToggleHelp shows or hides the keybinding overlay.
func (m *OS) ToggleHelp() {
	m.ShowHelp = !m.ShowHelp
	m.HelpScrollOffset = 0
	if m.ShowHelp {
		m.ShowLogs = false
		m.Launcher.Hide()
	}
}

// ToggleLogs shows or hides the log viewer.
func (m *OS) ToggleLogs() {
	m.ShowLogs = !m.ShowLogs
	if m.ShowLogs {
		m.ShowHelp = false
		m.LogScrollOffset = m.maxLogScroll()
	}
}

// RequestQuit asks for confirmation when there is an unsent draft.
// It reports whether the program may quit right away.
func (m *OS) RequestQuit() bool {
	if !m.HasUnsentMail() {
		return true
	}
	m.ShowQuitConfirm = true
	m.QuitConfirmSelection = 1
	return false
}

// WindowSummary describes a window in one line, for logs and the CLI.
func WindowSummary(w desktop.Window) string {
	state := "open"
	switch {
	case w.Minimized:
		state = "minimized"
	case w.Maximized:
		state = "maximized"
	}
	return fmt.Sprintf("%s %q (%s) %dx%d at %d,%d", w.Kind, w.Title, state, w.Width, w.Height, w.X, w.Y)
}
