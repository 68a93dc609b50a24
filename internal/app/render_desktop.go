package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/desktop"
	"github.com/Gaurav-Gosain/folio/internal/theme"
)

const clockLayout = "Mon Jan 2  3:04 PM"

var menuItems = []string{"File", "Edit", "View", "Go", "Window", "Help"}

// renderDesktop draws the wallpaper with the owner's name in the corner and
// the desktop icons in columns down the left side.
func (m *OS) renderDesktop() *lipgloss.Layer {
	bg := lipgloss.NewStyle().Background(theme.DesktopBg()).Foreground(theme.DesktopLabelFg())
	top := m.GetTopMargin()
	usable := m.GetUsableHeight()

	owner := lipgloss.JoinVertical(lipgloss.Right,
		bg.Bold(true).Render(m.Content.Owner.Name),
		bg.Foreground(theme.DesktopIconFg()).Render(m.Content.Owner.Tagline),
	)
	area := lipgloss.Place(m.Width, max(usable-1, 1), lipgloss.Right, lipgloss.Bottom,
		owner+bg.Render("  "), lipgloss.WithWhitespaceStyle(bg))
	wallpaper := padBlock(strings.Repeat("\n", top)+area, m.Width, m.Height, bg)

	var icons []*lipgloss.Layer
	perColumn := max((usable-1)/config.DesktopIconHeight, 1)
	for i, a := range m.Content.Icons {
		col, row := i/perColumn, i%perColumn
		x := 2 + col*config.DesktopIconWidth
		if x+config.DesktopIconWidth > m.Width {
			break
		}
		icons = append(icons, lipgloss.NewLayer(m.renderIcon(a, i == m.SelectedIcon)).
			X(x).
			Y(top+1+row*config.DesktopIconHeight).
			Z(config.ZIndexDesktop+1).
			ID("icon:"+itoa(i+1)))
	}

	return lipgloss.NewLayer(wallpaper, icons...).Z(config.ZIndexDesktop).ID("desktop")
}

func (m *OS) renderIcon(a content.App, selected bool) string {
	width := config.DesktopIconWidth - 2
	glyph := lipgloss.NewStyle().Background(theme.DesktopBg()).Foreground(theme.DesktopIconFg()).Bold(true)
	label := lipgloss.NewStyle().Background(theme.DesktopBg()).Foreground(theme.DesktopLabelFg())
	if selected {
		label = label.Background(theme.DesktopIconSelected())
	}
	name := truncate(a.Name, width)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, glyph.Render(config.AppIcon(a.Icon, a.Name)),
		lipgloss.WithWhitespaceStyle(glyph)) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, label.Render(" "+name+" "),
			lipgloss.WithWhitespaceStyle(glyph))
}

// focusedAppName is the name shown in bold next to the menu bar logo.
func (m *OS) focusedAppName() string {
	w, ok := m.FocusedWindow()
	if !ok {
		return "Finder"
	}
	switch w.Kind {
	case desktop.KindSafari:
		return "Safari"
	case desktop.KindMail:
		return "Mail"
	case desktop.KindFinder:
		return "Finder"
	}
	return w.Title
}

// renderMenuBar draws row 0. The logo opens the About window and Help opens
// the shortcut overlay.
func (m *OS) renderMenuBar() *lipgloss.Layer {
	bar := lipgloss.NewStyle().Background(theme.MenuBarBg()).Foreground(theme.MenuBarFg())
	bold := bar.Foreground(theme.MenuBarAccent()).Bold(true)

	var spots []*lipgloss.Layer
	logo := bold.Render(" " + config.GetMenuBarLogo() + " ")
	spots = append(spots, lipgloss.NewLayer(logo).X(1).Z(config.ZIndexMenuBar+1).ID("menu:logo"))

	left := bar.Render(" ") + logo + bar.Render(" ") + bold.Render(truncate(m.focusedAppName(), 20))
	for _, item := range menuItems {
		left += bar.Render("  ")
		label := bar.Render(item)
		if item == "Help" {
			spots = append(spots, lipgloss.NewLayer(label).X(lipgloss.Width(left)).Z(config.ZIndexMenuBar+1).ID("menu:help"))
		}
		left += label
	}

	var right []string
	if config.ShowStats {
		right = append(right,
			fmt.Sprintf("%s %3.0f%% %s", config.GetCPUIcon(), m.CPUUsage, sparkline(m.CPUHistory)),
			fmt.Sprintf("%s %3.0f%%", config.GetMemIcon(), m.RAMUsage),
		)
	}
	if !config.HideClock {
		right = append(right, m.Clock.Format(clockLayout))
	}
	status := bar.Render(strings.Join(right, "   ") + " ")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(status)
	line := left
	if gap > 0 {
		line += bar.Render(strings.Repeat(" ", gap)) + status
	}
	return lipgloss.NewLayer(fitLine(line, m.Width, bar), spots...).Z(config.ZIndexMenuBar).ID("menubar")
}

// appIsOpen reports whether an app's window is on screen, for the dock
// indicator.
func (m *OS) appIsOpen(a content.App) bool {
	if a.Action != content.ActionOpen {
		return false
	}
	spec := specFor(a)
	for _, w := range m.Store.Windows() {
		if w.Kind == spec.Kind && (spec.Content == "" || w.Content == spec.Content) {
			return true
		}
	}
	return false
}

type dockItem struct {
	id    string
	label string
	style lipgloss.Style
}

// dockItems lists the dock in order: apps, minimized windows, then trash.
// short drops the names so the dock fits narrow screens.
func (m *OS) dockItems(short bool) []dockItem {
	base := lipgloss.NewStyle().Background(theme.DockBg()).Foreground(theme.DockFg())
	active := base.Foreground(theme.DockHighlight()).Bold(true)
	minimized := base.Foreground(theme.DockAccent())

	label := func(icon, name string) string {
		if short || name == "" {
			return " " + icon + " "
		}
		return " " + icon + " " + truncate(name, config.MaxNameLengthDock) + " "
	}

	var items []dockItem
	for i, a := range m.Content.Dock {
		st := base
		if m.appIsOpen(a) {
			st = active
		}
		items = append(items, dockItem{id: "dock:" + itoa(i), label: label(config.AppIcon(a.Icon, a.Name), a.Name), style: st})
	}
	items = append(items, dockItem{label: config.GetDockSeparator(), style: base.Foreground(theme.DockSeparator())})

	n := 0
	for _, w := range m.Store.Stacked() {
		if !w.Minimized {
			continue
		}
		if n == config.MaxDockItems {
			break
		}
		n++
		items = append(items, dockItem{id: spotID("min", w.ID), label: label(config.GetMinimizedIcon(), w.Title), style: minimized})
	}
	items = append(items, dockItem{id: "trash", label: label(config.GetTrashIcon(), "Trash"), style: base})
	return items
}

// renderDock draws the dock box centered on its rows.
func (m *OS) renderDock() *lipgloss.Layer {
	items := m.dockItems(false)
	rowW := 0
	for _, it := range items {
		rowW += lipgloss.Width(it.label)
	}
	// border plus padding
	if rowW+4 > m.Width {
		items = m.dockItems(true)
	}

	var (
		row   string
		spots []*lipgloss.Layer
		x     = 2
	)
	for _, it := range items {
		cell := it.style.Render(it.label)
		if it.id != "" {
			spots = append(spots, lipgloss.NewLayer(cell).X(x).Y(1).Z(config.ZIndexDock+1).ID(it.id))
		}
		row += cell
		x += lipgloss.Width(cell)
	}

	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.DockSeparator()).
		BorderBackground(theme.DesktopBg()).
		Background(theme.DockBg()).
		Padding(0, 1).
		Render(clipLine(row, max(m.Width-4, 1)))

	dockX := max((m.Width-lipgloss.Width(box))/2, 0)
	return lipgloss.NewLayer(box, spots...).X(dockX).Y(m.GetDockY()).Z(config.ZIndexDock).ID("dock")
}
