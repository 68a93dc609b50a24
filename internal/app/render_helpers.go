package app

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/desktop"
	"github.com/charmbracelet/x/ansi"
)

var (
	baseButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000"))
)

func getBorder() lipgloss.Border {
	return config.GetBorderForStyle()
}

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// clipLine cuts a styled line to width cells.
func clipLine(s string, width int) string {
	return ansi.Truncate(s, max(width, 0), "")
}

// fitLine cuts or pads a styled line to exactly width cells. Padding uses
// fill so backgrounds stay continuous.
func fitLine(s string, width int, fill lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	s = clipLine(s, width)
	if gap := width - lipgloss.Width(s); gap > 0 {
		s += fill.Render(strings.Repeat(" ", gap))
	}
	return s
}

// RightString returns a top border with str right-aligned.
func RightString(str string, width int, color color.Color) string {
	spaces := width - lipgloss.Width(str)
	if spaces < 0 {
		return ""
	}
	b := getBorder()
	fg := lipgloss.NewStyle().Foreground(color)
	return fg.Render(b.TopLeft+strings.Repeat(b.Top, spaces)) + str + fg.Render(b.TopRight)
}

func makeRounded(content string, color color.Color) string {
	render := lipgloss.NewStyle().Foreground(color).Render
	return render(config.GetWindowPillLeft()) + content + render(config.GetWindowPillRight())
}

// windowTitle fits a title into maxWidth, or returns "" if it cannot show
// at least a few characters.
func windowTitle(title string, maxWidth int) string {
	maxNameLen := max(maxWidth-6, 0)
	if ansi.StringWidth(title) <= maxNameLen {
		return title
	}
	if maxNameLen <= 3 {
		return ""
	}
	return ansi.Truncate(title, maxNameLen, "...")
}

// windowButtons renders the minimize, maximize and close pill.
func windowButtons(w desktop.Window, color color.Color) string {
	if config.HideWindowButtons {
		return ""
	}
	style := baseButtonStyle.Background(color)
	return makeRounded(
		style.Render(config.GetWindowButtonMinimize())+
			style.Render(config.GetWindowButtonMaximize(w.Maximized))+
			style.Render(config.GetWindowButtonClose()),
		color,
	)
}

// renderTitleWithButtons renders a title badge on the left with buttons on
// the right of the top border line.
func renderTitleWithButtons(windowName string, buttons string, width int, color color.Color) string {
	b := getBorder()
	borderStyle := lipgloss.NewStyle().Foreground(color)
	nameStyle := baseButtonStyle.Background(color)

	if windowName == "" {
		return RightString(buttons, width, color)
	}

	nameBadge := makeRounded(nameStyle.Render(" "+windowName+" "), color)
	middlePadding := width - lipgloss.Width(nameBadge) - lipgloss.Width(buttons)
	if middlePadding < 0 {
		return RightString(buttons, width, color)
	}

	return borderStyle.Render(b.TopLeft) +
		nameBadge +
		borderStyle.Render(strings.Repeat(b.Top, middlePadding)) +
		buttons +
		borderStyle.Render(b.TopRight)
}

// renderFrame wraps panel content in a border whose top line carries the
// title and window buttons. width and height are the outer size.
func renderFrame(w desktop.Window, content string, width, height int, color color.Color) string {
	inner := max(width-2, 0)
	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderTop(false).
		BorderForeground(color).
		Width(width).
		Height(height - 1).
		MaxHeight(height - 1)

	buttons := windowButtons(w, color)
	name := windowTitle(w.Title, inner-lipgloss.Width(buttons))
	top := renderTitleWithButtons(name, buttons, inner, color)
	return top + "\n" + box.Render(content)
}

// padBlock pads or cuts content to a width by height block.
func padBlock(content string, width, height int, fill lipgloss.Style) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i := range lines {
		lines[i] = fitLine(lines[i], width, fill)
	}
	for len(lines) < height {
		lines = append(lines, fill.Render(strings.Repeat(" ", width)))
	}
	return strings.Join(lines, "\n")
}
