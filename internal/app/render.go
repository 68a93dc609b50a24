package app

import (
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/desktop"
	"github.com/Gaurav-Gosain/folio/internal/theme"
)

// Layers builds every layer of the current frame. Clickable regions carry
// ids that Hit reports back.
func (m *OS) Layers() []*lipgloss.Layer {
	if m.IsNarrow() {
		return []*lipgloss.Layer{m.renderNarrow()}
	}

	layers := []*lipgloss.Layer{m.renderDesktop(), m.renderMenuBar()}

	for rank, w := range m.visibleWindows() {
		layers = append(layers, m.windowLayer(w, rank))
	}

	if config.DockbarPosition != "hidden" {
		layers = append(layers, m.renderDock())
	}

	return append(layers, m.renderOverlays()...)
}

// Compositor flattens the current frame for drawing and hit-testing.
func (m *OS) Compositor() *lipgloss.Compositor {
	return lipgloss.NewCompositor(m.Layers()...)
}

// Hit returns the top-most clickable layer under a screen cell.
func (m *OS) Hit(x, y int) lipgloss.LayerHit {
	return m.Compositor().Hit(x, y)
}

// GetCanvas draws the frame onto a screen-sized canvas.
func (m *OS) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(m.Compositor())
	return canvas
}

func (m *OS) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(m.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	view.DisableBracketedPasteMode = false
	return view
}

func (m *OS) borderColor(w desktop.Window) color.Color {
	if w.ID != m.Store.FocusedID() {
		return theme.BorderUnfocused()
	}
	if m.Mode == InputMode {
		return theme.BorderFocusedInput()
	}
	return theme.BorderFocusedWindow()
}

// renderPanel draws a window's content area.
func (m *OS) renderPanel(w desktop.Window, width, height int) (string, []hotspot) {
	p := m.Panel(w.ID)
	switch {
	case p == nil:
		return "", nil
	case p.Finder != nil:
		return m.renderFinder(w, p.Finder, width, height)
	case p.Mail != nil:
		return m.renderMail(w, p.Mail, width, height)
	case p.Safari != nil:
		return m.renderSafari(w, p.Safari, width, height)
	}
	return "", nil
}

// windowLayer draws one window. rank is its position in the stack, bottom
// first; the frame takes the even z slot and its hotspots the odd one.
func (m *OS) windowLayer(w desktop.Window, rank int) *lipgloss.Layer {
	r := m.WindowRect(w)
	innerW := max(r.Width-2, 1)
	innerH := max(r.Height-2, 1)
	bg := lipgloss.NewStyle().Background(theme.WindowBg()).Foreground(theme.WindowFg())

	body, spots := m.renderPanel(w, innerW, innerH)
	frame := renderFrame(w, padBlock(body, innerW, innerH, bg), r.Width, r.Height, m.borderColor(w))

	z := config.ZIndexWindowBase + rank*2
	var children []*lipgloss.Layer
	for _, s := range spots {
		if s.x >= innerW || s.y >= innerH {
			continue
		}
		c := clipBlock(s.content, innerW-s.x, innerH-s.y)
		if c == "" {
			continue
		}
		children = append(children, lipgloss.NewLayer(c).X(1+s.x).Y(1+s.y).Z(z+1).ID(s.id))
	}
	return lipgloss.NewLayer(frame, children...).X(r.X).Y(r.Y).Z(z).ID(spotID("window", w.ID))
}

// clipBlock cuts a multi-line block to width by height cells.
func clipBlock(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i := range lines {
		lines[i] = clipLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func (m *OS) renderNarrow() *lipgloss.Layer {
	bg := lipgloss.NewStyle().Background(theme.DesktopBg()).Foreground(theme.DesktopLabelFg())
	msg := lipgloss.JoinVertical(lipgloss.Center,
		bg.Bold(true).Render("Check on desktop!"),
		bg.Foreground(theme.WindowMuted()).Render("This portfolio needs a larger terminal."),
	)
	screen := lipgloss.Place(max(m.Width, 1), max(m.Height, 1), lipgloss.Center, lipgloss.Center, msg,
		lipgloss.WithWhitespaceStyle(bg))
	return lipgloss.NewLayer(screen).Z(config.ZIndexDesktop).ID("narrow")
}
