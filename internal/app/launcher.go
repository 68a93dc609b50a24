package app

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/theme"
)

// Launcher is the launchpad overlay: a filterable grid of apps.
type Launcher struct {
	Visible  bool
	Query    textinput.Model
	Selected int

	apps []content.App
}

func newLauncher(p *content.Portfolio) *Launcher {
	ti := textinput.New()
	ti.Prompt = "⌕ "
	ti.Placeholder = "Search apps"
	ti.CharLimit = 32
	return &Launcher{Query: ti, apps: p.Launchpad}
}

// Show opens the launcher with an empty query.
func (l *Launcher) Show() {
	l.Visible = true
	l.Selected = 0
	l.Query.Reset()
	l.Query.Focus()
}

// Hide closes the launcher.
func (l *Launcher) Hide() {
	l.Visible = false
	l.Query.Blur()
}

// Apps returns the apps matching the current query.
func (l *Launcher) Apps() []content.App {
	return content.FilterApps(l.apps, l.Query.Value())
}

// HandleLauncherKey drives the launcher while it is visible.
func (m *OS) HandleLauncherKey(msg tea.KeyPressMsg) tea.Cmd {
	l := m.Launcher
	apps := l.Apps()
	switch msg.String() {
	case "esc":
		l.Hide()
		return nil
	case "enter":
		if l.Selected >= 0 && l.Selected < len(apps) {
			l.Hide()
			m.LaunchApp(apps[l.Selected])
		}
		return nil
	case "left", "shift+tab":
		l.Selected = max(l.Selected-1, 0)
		return nil
	case "right", "tab":
		l.Selected = min(l.Selected+1, max(len(apps)-1, 0))
		return nil
	case "up":
		l.Selected = max(l.Selected-config.LauncherColumns, 0)
		return nil
	case "down":
		l.Selected = min(l.Selected+config.LauncherColumns, max(len(apps)-1, 0))
		return nil
	}

	before := l.Query.Value()
	var cmd tea.Cmd
	l.Query, cmd = l.Query.Update(msg)
	if l.Query.Value() != before {
		l.Selected = 0
	}
	return cmd
}

// LaunchAt starts the i-th filtered app.
func (m *OS) LaunchAt(i int) {
	apps := m.Launcher.Apps()
	if i < 0 || i >= len(apps) {
		return
	}
	m.Launcher.Hide()
	m.LaunchApp(apps[i])
}

// renderLauncher draws the launchpad box. Hotspot positions are relative to
// the box's top-left corner.
func (m *OS) renderLauncher() (string, []hotspot) {
	l := m.Launcher
	width := min(config.LauncherWidth, m.Width-4)
	inner := width - 4
	cellW := max(inner/config.LauncherColumns, 8)

	box := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(theme.HelpBorder()).
		Padding(0, 1).
		Width(width)
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HelpKeyBadgeBg())
	label := lipgloss.NewStyle().Foreground(theme.NotificationFg())
	dim := lipgloss.NewStyle().Foreground(theme.HelpGray())
	sel := lipgloss.NewStyle().Background(theme.SelectionBg()).Foreground(theme.SelectionFg())

	l.Query.SetWidth(inner - 12)
	lines := []string{
		title.Render(" Apps") + strings.Repeat(" ", max(inner-len(" Apps")-3, 1)) + dim.Render("esc"),
		"",
		l.Query.View(),
		"",
	}

	var spots []hotspot
	apps := l.Apps()
	if len(apps) == 0 {
		lines = append(lines, dim.Render("No apps match"))
	}
	for row := 0; row*config.LauncherColumns < len(apps); row++ {
		var icons, names string
		for c := range config.LauncherColumns {
			i := row*config.LauncherColumns + c
			if i >= len(apps) {
				break
			}
			a := apps[i]
			st := label
			if i == l.Selected {
				st = sel
			}
			icon := lipgloss.PlaceHorizontal(cellW, lipgloss.Center, config.AppIcon(a.Icon, a.Name))
			name := lipgloss.PlaceHorizontal(cellW, lipgloss.Center, truncate(a.Name, cellW-2))
			icons += st.Render(icon)
			names += st.Render(name)
			spots = append(spots, hotspot{
				id: "launch:" + strconv.Itoa(i),
				// border plus padding
				x:       2 + c*cellW,
				y:       1 + len(lines),
				content: st.Render(icon) + "\n" + st.Render(name),
			})
		}
		lines = append(lines, icons, names, "")
	}
	lines = append(lines, dim.Render("enter launch  ←→↑↓ select  type to filter"))
	return box.Render(strings.Join(lines, "\n")), spots
}
