package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/theme"
)

func (m *OS) renderOverlays() []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	if m.Launcher.Visible {
		box, spots := m.renderLauncher()
		x := max((m.Width-lipgloss.Width(box))/2, 0)
		y := max((m.Height-lipgloss.Height(box))/2, m.GetTopMargin())
		var children []*lipgloss.Layer
		for _, s := range spots {
			children = append(children, lipgloss.NewLayer(s.content).X(s.x).Y(s.y).Z(config.ZIndexLauncher+1).ID(s.id))
		}
		layers = append(layers, lipgloss.NewLayer(box, children...).X(x).Y(y).Z(config.ZIndexLauncher).ID("launcher"))
	}

	if m.ShowHelp {
		help := m.renderHelp()
		layers = append(layers, m.centered(help, config.ZIndexHelp, "help"))
	}

	if m.ShowLogs {
		layers = append(layers, m.centered(m.renderLogs(), config.ZIndexLogs, "logs"))
	}

	if m.ShowQuitConfirm {
		layers = append(layers, m.renderQuitConfirmDialog())
	}

	if m.Tape != nil {
		badge := m.renderTapeStatus()
		x := max(m.Width-lipgloss.Width(badge)-1, 0)
		y := max(m.GetDockY()-1, m.GetTopMargin())
		layers = append(layers, lipgloss.NewLayer(badge).X(x).Y(y).Z(config.ZIndexTape).ID("tape"))
	}

	notifY := m.GetTopMargin()
	for i, notif := range m.Notifications {
		if i >= config.MaxVisibleNotifications {
			break
		}
		box := renderNotification(notif, m.Width)
		notifX := max(m.Width-lipgloss.Width(box)-config.NotificationMargin, 0)
		layers = append(layers, lipgloss.NewLayer(box).
			X(notifX).
			Y(notifY+i*config.NotificationSpacing).
			Z(config.ZIndexNotifications).
			ID("notif:"+notif.ID))
	}

	return layers
}

// renderTapeStatus draws the playback progress bar.
func (m *OS) renderTapeStatus() string {
	p := m.Tape
	style := lipgloss.NewStyle().Background(theme.DockBg()).Foreground(theme.DockFg()).Padding(0, 1)

	var status string
	switch {
	case p.Done():
		status = fmt.Sprintf("DONE • %d/%d commands", len(p.Commands), len(p.Commands))
		if p.Errors > 0 {
			status += fmt.Sprintf(" • %d error(s)", p.Errors)
		}
	default:
		const barWidth = 15
		filled := p.Progress() * barWidth / 100
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		state := "▶"
		if p.Paused {
			state = "⏸"
		}
		status = fmt.Sprintf("%s %s %s %d/%d", state, p.Name, bar, p.Next, len(p.Commands))
		if p.Paused {
			status += " • ctrl+p resume"
		}
	}
	return style.Render(status)
}

// centered places a box in the middle of the screen.
func (m *OS) centered(box string, z int, id string) *lipgloss.Layer {
	x := max((m.Width-lipgloss.Width(box))/2, 0)
	y := max((m.Height-lipgloss.Height(box))/2, 0)
	return lipgloss.NewLayer(box).X(x).Y(y).Z(z).ID(id)
}

func renderNotification(notif Notification, screenW int) string {
	var bg, icon = theme.NotificationInfo(), config.NotificationIconInfo
	switch notif.Type {
	case "error":
		bg, icon = theme.NotificationError(), config.NotificationIconError
	case "warning":
		bg, icon = theme.NotificationWarning(), config.NotificationIconWarning
	case "success":
		bg, icon = theme.NotificationSuccess(), config.NotificationIconSuccess
	}

	maxNotifWidth := min(max(screenW-8, config.MinNotificationWidth), config.MaxNotificationWidth)
	message := truncate(notif.Message, maxNotifWidth-10)

	return lipgloss.NewStyle().
		Background(bg).
		Foreground(theme.NotificationFg()).
		Padding(1, 2).
		Bold(true).
		MaxWidth(maxNotifWidth).
		Render(fmt.Sprintf(" %s  %s ", icon, message))
}

// helpLines lays out the shortcut sections for the current mode.
func (m *OS) helpLines() []string {
	key := lipgloss.NewStyle().Foreground(theme.HelpKeyBadge()).Background(theme.HelpKeyBadgeBg()).Bold(true)
	section := lipgloss.NewStyle().Foreground(theme.HelpKeyBadgeBg()).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.NotificationFg())

	var lines []string
	for _, s := range config.GetKeybindings(m.KeybindRegistry) {
		switch {
		case s.Condition == "input" && m.Mode != InputMode,
			s.Condition == "!input" && m.Mode == InputMode:
			continue
		}
		if s.Title != "" {
			lines = append(lines, "", section.Render(s.Title))
		}
		for _, b := range s.Bindings {
			badge := key.Render(" " + b.Key + " ")
			pad := strings.Repeat(" ", max(22-lipgloss.Width(badge), 1))
			lines = append(lines, badge+pad+desc.Render(b.Description))
		}
	}
	return lines
}

func (m *OS) helpPerPage() int {
	return max(m.Height-10, 4)
}

// ScrollHelp moves the help overlay by delta lines.
func (m *OS) ScrollHelp(delta int) {
	maxScroll := max(len(m.helpLines())-m.helpPerPage(), 0)
	m.HelpScrollOffset = max(0, min(m.HelpScrollOffset+delta, maxScroll))
}

func (m *OS) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(theme.LogViewerTitle()).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.HelpGray())

	all := m.helpLines()
	perPage := m.helpPerPage()
	start := min(m.HelpScrollOffset, max(len(all)-perPage, 0))
	end := min(start+perPage, len(all))

	lines := []string{title.Render("Keyboard Shortcuts") + dim.Render("  ("+m.Mode.String()+" mode)")}
	lines = append(lines, all[start:end]...)
	lines = append(lines, "")
	if len(all) > perPage {
		lines = append(lines, dim.Render(fmt.Sprintf("%d-%d of %d  ↑/↓ to scroll", start+1, end, len(all))))
	}
	lines = append(lines, dim.Render("Press '?' or 'esc' to close"))

	return lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.HelpBorder()).
		Background(theme.LogViewerBg()).
		Padding(0, 2).
		Width(min(64, m.Width-2)).
		Render(strings.Join(lines, "\n"))
}

func (m *OS) renderLogs() string {
	logTitle := lipgloss.NewStyle().
		Foreground(theme.LogViewerTitle()).
		Bold(true).
		Render("System Logs")
	dim := lipgloss.NewStyle().Foreground(theme.HelpGray())

	logsPerPage := m.LogsPerPage()
	maxScroll := m.maxLogScroll()
	m.LogScrollOffset = max(0, min(m.LogScrollOffset, maxScroll))

	logLines := []string{logTitle, ""}

	startIdx := m.LogScrollOffset
	displayCount := 0
	for i := startIdx; i < len(m.LogMessages) && displayCount < logsPerPage; i++ {
		msg := m.LogMessages[i]

		levelColor := theme.LogViewerInfo()
		switch msg.Level {
		case "ERROR":
			levelColor = theme.LogViewerError()
		case "WARN":
			levelColor = theme.LogViewerWarn()
		}

		levelStr := lipgloss.NewStyle().Foreground(levelColor).Render(fmt.Sprintf("[%s]", msg.Level))
		logLines = append(logLines, fmt.Sprintf("%s %s %s", msg.Time.Format("15:04:05"), levelStr, msg.Message))
		displayCount++
	}

	if maxScroll > 0 {
		logLines = append(logLines, "", dim.Render(fmt.Sprintf("Showing %d-%d of %d logs (↑/↓ to scroll)",
			startIdx+1, startIdx+displayCount, len(m.LogMessages))))
	}
	logLines = append(logLines, "", dim.Render("Press 'q'/'esc' to exit, j/k or ↑/↓ to scroll"))

	return lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Width(min(config.LogViewerWidth, m.Width-2)).
		Background(theme.LogViewerBg()).
		Render(strings.Join(logLines, "\n"))
}

// renderQuitConfirmDialog draws the unsent-draft warning with clickable
// yes and no buttons.
func (m *OS) renderQuitConfirmDialog() *lipgloss.Layer {
	borderColor := theme.HelpBorder()
	selectedColor := theme.HelpKeyBadgeBg()
	unselectedColor := theme.HelpGray()

	button := func(label string, selected bool) string {
		c := unselectedColor
		st := lipgloss.NewStyle()
		if selected {
			c = selectedColor
			st = st.Bold(true)
		}
		return st.
			Foreground(c).
			Border(lipgloss.NormalBorder()).
			BorderForeground(c).
			Padding(0, 1).
			Render(label)
	}
	yesButton := button("yes", m.QuitConfirmSelection == 0)
	noButton := button("no", m.QuitConfirmSelection == 1)
	gap := "   "

	title := lipgloss.NewStyle().Foreground(selectedColor).Bold(true).Render("Quit folio?")
	note := lipgloss.NewStyle().Foreground(unselectedColor).Render("You have an unsent message.")
	buttonRow := lipgloss.JoinHorizontal(lipgloss.Center, yesButton, gap, noButton)

	dialogContent := lipgloss.JoinVertical(lipgloss.Center, title, note, "", buttonRow)
	const padX, padY = 3, 1
	dialogBox := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(borderColor).
		Padding(padY, padX).
		Render(dialogContent)

	// JoinVertical centers the button row inside the content block.
	rowX := 1 + padX + (lipgloss.Width(dialogContent)-lipgloss.Width(buttonRow))/2
	rowY := 1 + padY + 3
	yes := lipgloss.NewLayer(yesButton).X(rowX).Y(rowY).Z(config.ZIndexDialog + 1).ID("quit:yes")
	no := lipgloss.NewLayer(noButton).
		X(rowX + lipgloss.Width(yesButton) + len(gap)).
		Y(rowY).
		Z(config.ZIndexDialog + 1).
		ID("quit:no")

	x := max((m.Width-lipgloss.Width(dialogBox))/2, 0)
	y := max((m.Height-lipgloss.Height(dialogBox))/2, 0)
	return lipgloss.NewLayer(dialogBox, yes, no).X(x).Y(y).Z(config.ZIndexDialog).ID("quit")
}
