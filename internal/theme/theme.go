// Package theme provides color themes for the folio desktop.
//
// Every getter returns a hard-coded color when theming is disabled, so callers
// never need to check IsEnabled themselves.
package theme

import (
	"fmt"
	"image/color"
	"log"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming is disabled and the built-in palette is used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Printf("Warning: error loading custom themes: %v", err)
		}
	}

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// IDs lists every registered theme, custom ones included.
func IDs() []string {
	tint.NewDefaultRegistry()
	if themesDir, err := GetThemesDir(); err == nil {
		_, _ = LoadCustomThemes(themesDir)
	}
	return tint.TintIDs()
}

// pick returns the theme color chosen by f, or fallback when theming is off.
func pick(fallback string, f func(t *tint.Tint) color.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return f(t)
}

// =============================================================================
// Desktop
// =============================================================================

// DesktopBg is the wallpaper color.
func DesktopBg() color.Color {
	return pick("#1d2b53", func(t *tint.Tint) color.Color { return t.Bg })
}

// DesktopIconFg colors desktop icon glyphs.
func DesktopIconFg() color.Color {
	return pick("#7ec8e3", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

// DesktopLabelFg colors the labels under desktop icons.
func DesktopLabelFg() color.Color {
	return pick("#f0f0f0", func(t *tint.Tint) color.Color { return t.Fg })
}

// DesktopIconSelected highlights the icon under the last click.
func DesktopIconSelected() color.Color {
	return pick("#3a5ba0", func(t *tint.Tint) color.Color { return t.Blue })
}

// =============================================================================
// Menu bar
// =============================================================================

// MenuBarBg returns the background color for the menu bar.
func MenuBarBg() color.Color {
	return pick("#e8e8e8", func(t *tint.Tint) color.Color { return t.White })
}

// MenuBarFg returns the foreground color for the menu bar.
func MenuBarFg() color.Color {
	return pick("#1a1a1a", func(t *tint.Tint) color.Color { return t.Black })
}

// MenuBarAccent colors the focused window's title in the menu bar.
func MenuBarAccent() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// =============================================================================
// Windows
// =============================================================================

// BorderUnfocused returns the color for unfocused window borders.
func BorderUnfocused() color.Color {
	return pick("#8a8a8a", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// BorderFocusedWindow returns the color for the focused window border on the desktop.
func BorderFocusedWindow() color.Color {
	return pick("#AFFFFF", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

// BorderFocusedInput returns the color for the focused window border while typing into it.
func BorderFocusedInput() color.Color {
	return pick("#AAFFAA", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

// WindowBg is the content background inside windows.
func WindowBg() color.Color {
	return pick("#f7f7f7", func(t *tint.Tint) color.Color { return t.Bg })
}

// WindowFg is the content foreground inside windows.
func WindowFg() color.Color {
	return pick("#222222", func(t *tint.Tint) color.Color { return t.Fg })
}

// WindowMuted is used for secondary text such as dates and summaries.
func WindowMuted() color.Color {
	return pick("#6b6b6b", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// WindowHeading colors section headings.
func WindowHeading() color.Color {
	return pick("#0b5394", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

// ButtonClose, ButtonMinimize and ButtonMaximize are the traffic-light buttons.
func ButtonClose() color.Color {
	return pick("#ff5f57", func(t *tint.Tint) color.Color { return t.Red })
}

func ButtonMinimize() color.Color {
	return pick("#febc2e", func(t *tint.Tint) color.Color { return t.Yellow })
}

func ButtonMaximize() color.Color {
	return pick("#28c840", func(t *tint.Tint) color.Color { return t.Green })
}

// ButtonFg returns the foreground color for buttons.
func ButtonFg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Black })
}

// =============================================================================
// Window content
// =============================================================================

// SidebarBg returns the finder sidebar background.
func SidebarBg() color.Color {
	return pick("#e4e4e4", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// SidebarActive highlights the current sidebar location.
func SidebarActive() color.Color {
	return pick("#3478f6", func(t *tint.Tint) color.Color { return t.Blue })
}

// SelectionBg and SelectionFg style the selected row.
func SelectionBg() color.Color {
	return pick("#3478f6", func(t *tint.Tint) color.Color { return t.Blue })
}

func SelectionFg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

// Link colors URLs.
func Link() color.Color {
	return pick("#1a0dab", func(t *tint.Tint) color.Color { return t.Cyan })
}

// TabActiveBg and TabInactiveBg style browser tabs.
func TabActiveBg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.Bg })
}

func TabInactiveBg() color.Color {
	return pick("#d0d0d0", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// AddressBarBg is the browser address bar background.
func AddressBarBg() color.Color {
	return pick("#ececec", func(t *tint.Tint) color.Color { return t.Black })
}

// FieldLabel colors mail field labels.
func FieldLabel() color.Color {
	return pick("#6b6b6b", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// =============================================================================
// Dock
// =============================================================================

// DockBg returns the background color for the dock.
func DockBg() color.Color {
	return pick("#2b2b2b", func(t *tint.Tint) color.Color { return t.Black })
}

// DockFg returns the foreground color for the dock.
func DockFg() color.Color {
	return pick("#f0f0f0", func(t *tint.Tint) color.Color { return t.Fg })
}

// DockHighlight returns the highlight color for the focused or hovered dock item.
func DockHighlight() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

// DockDimmed returns the dimmed color for the dock.
func DockDimmed() color.Color {
	return pick("#808080", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// DockAccent marks minimized windows in the dock.
func DockAccent() color.Color {
	return pick("#febc2e", func(t *tint.Tint) color.Color { return t.Yellow })
}

// DockSeparator returns the separator color for the dock.
func DockSeparator() color.Color {
	return pick("#555555", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// =============================================================================
// Overlays
// =============================================================================

// NotificationError returns the color for error notifications.
func NotificationError() color.Color {
	return pick("#ff5f57", func(t *tint.Tint) color.Color { return t.BrightRed })
}

// NotificationWarning returns the color for warning notifications.
func NotificationWarning() color.Color {
	return pick("#febc2e", func(t *tint.Tint) color.Color { return t.BrightYellow })
}

// NotificationSuccess returns the color for success notifications.
func NotificationSuccess() color.Color {
	return pick("#28c840", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

// NotificationInfo returns the color for info notifications.
func NotificationInfo() color.Color {
	return pick("#3478f6", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

// NotificationBg returns the background color for notifications.
func NotificationBg() color.Color {
	return pick("#1f1f1f", func(t *tint.Tint) color.Color { return t.Black })
}

// NotificationFg returns the foreground color for notifications.
func NotificationFg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.Fg })
}

// LogViewerTitle returns the color for log viewer titles.
func LogViewerTitle() color.Color {
	return pick("#7ec8e3", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

// LogViewerError returns the color for error messages in the log viewer.
func LogViewerError() color.Color { return NotificationError() }

// LogViewerWarn returns the color for warning messages in the log viewer.
func LogViewerWarn() color.Color { return NotificationWarning() }

// LogViewerInfo returns the color for info messages in the log viewer.
func LogViewerInfo() color.Color { return NotificationInfo() }

// LogViewerBg returns the background color for the log viewer.
func LogViewerBg() color.Color { return NotificationBg() }

// HelpKeyBadge returns the color for key badges in help menu.
func HelpKeyBadge() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Black })
}

// HelpKeyBadgeBg returns the background color for key badges in help menu.
func HelpKeyBadgeBg() color.Color {
	return pick("#7ec8e3", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

// HelpBorder returns the border color for help menu.
func HelpBorder() color.Color {
	return pick("#7ec8e3", func(t *tint.Tint) color.Color { return t.Cyan })
}

// HelpGray returns the gray color for help menu descriptions.
func HelpGray() color.Color {
	return pick("#a0a0a0", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// CLITableHeader returns the color for CLI table headers.
func CLITableHeader() color.Color {
	return pick("#7ec8e3", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

// CLITableKey returns the color for CLI table keys.
func CLITableKey() color.Color {
	return pick("#febc2e", func(t *tint.Tint) color.Color { return t.BrightYellow })
}

// CLITableDim returns the dimmed color for CLI table elements.
func CLITableDim() color.Color {
	return pick("#808080", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return ""
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
