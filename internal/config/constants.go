// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Window Defaults
// =============================================================================

const (
	// MinWindowWidth is the minimum width a window can be resized to
	MinWindowWidth = 20

	// MinWindowHeight is the minimum height a window can be resized to
	MinWindowHeight = 6

	// MinDesktopWidth is the narrowest screen that shows the desktop.
	// Anything smaller gets the "Check on desktop!" screen.
	MinDesktopWidth = 60

	// MinDesktopHeight is the shortest screen that shows the desktop.
	MinDesktopHeight = 16
)

// =============================================================================
// Durations and Intervals
// =============================================================================

const (
	// NotificationDuration is the default duration notifications remain visible
	NotificationDuration = 1500 * time.Millisecond

	// MailNotificationDuration keeps the "sent" confirmation up a little longer
	MailNotificationDuration = 3 * time.Second

	// TapeStepDelay is the pause between tape commands that are not Sleep
	TapeStepDelay = 250 * time.Millisecond

	// TapeDoneDisplay keeps the finished tape badge on screen
	TapeDoneDisplay = 2 * time.Second

	// StatsUpdateInterval is the interval between CPU and memory samples
	StatsUpdateInterval = 2 * time.Second

	// ClockUpdateInterval drives the menu bar clock
	ClockUpdateInterval = time.Second

	// NormalFPS caps the renderer. Nothing on the desktop animates.
	NormalFPS = 30
)

// =============================================================================
// UI Layout Dimensions
// =============================================================================

const (
	// MenuBarHeight is the height of the menu bar at the top of the screen
	MenuBarHeight = 1

	// DockHeight is the height of the dock area
	DockHeight = 3

	// DesktopIconWidth is the cell width of one desktop icon column
	DesktopIconWidth = 18

	// DesktopIconHeight is the cell height of one desktop icon
	DesktopIconHeight = 3

	// LauncherWidth is the width of the launchpad overlay
	LauncherWidth = 64

	// LauncherColumns is the number of apps per launchpad row
	LauncherColumns = 3

	// LogViewerWidth is the width of the log viewer overlay
	LogViewerWidth = 80

	// MaxNotificationWidth is the maximum width of notification messages
	MaxNotificationWidth = 60

	// MinNotificationWidth is the minimum width of notification messages
	MinNotificationWidth = 20

	// NotificationMargin is the margin from screen edge for notifications
	NotificationMargin = 2

	// NotificationSpacing is the vertical spacing between notifications
	NotificationSpacing = 4

	// MaxVisibleNotifications is the maximum number of notifications shown at once
	MaxVisibleNotifications = 3

	// FinderSidebarWidth is the width of the finder sidebar
	FinderSidebarWidth = 18

	// MaxNameLengthDock is the maximum length of a window name in the dock
	MaxNameLengthDock = 12
)

// =============================================================================
// Icons - Nerd Font (Default)
// =============================================================================

const (
	// DockPillLeftChar is the left character for pill-style indicators
	DockPillLeftChar = string(rune(0xe0b6)) // Powerline left semicircle

	// DockPillRightChar is the right character for pill-style indicators
	DockPillRightChar = string(rune(0xe0b4)) // Powerline right semicircle

	// DockSeparator is the separator between dock sections
	DockSeparator = " │ "

	// MenuBarLogo is shown at the left of the menu bar (nf-fa-apple)
	MenuBarLogo = string(rune(0xf179))

	// TrashIcon is the dock trash can (nf-fa-trash)
	TrashIcon = string(rune(0xf1f8))

	// MinimizedIcon marks a minimized window in the dock (nf-fa-window_restore)
	MinimizedIcon = string(rune(0xf2d2))

	// CPUIcon prefixes the CPU reading in the menu bar (nf-oct-cpu)
	CPUIcon = string(rune(0xf4bc))

	// MemIcon prefixes the memory reading in the menu bar (nf-fa-memory)
	MemIcon = string(rune(0xefc5))
)

// =============================================================================
// Icons - ASCII Fallback
// =============================================================================

const (
	// DockPillLeftCharASCII is the ASCII fallback for pill left
	DockPillLeftCharASCII = "["

	// DockPillRightCharASCII is the ASCII fallback for pill right
	DockPillRightCharASCII = "]"

	// DockSeparatorASCII is the ASCII fallback separator
	DockSeparatorASCII = " | "

	MenuBarLogoASCII   = "@"
	TrashIconASCII     = "T"
	MinimizedIconASCII = "_"
	CPUIconASCII       = "CPU"
	MemIconASCII       = "MEM"
)

// =============================================================================
// Notification Icons (ASCII-safe)
// =============================================================================

const (
	// NotificationIconError is the error notification icon
	NotificationIconError = "[X]"

	// NotificationIconWarning is the warning notification icon
	NotificationIconWarning = "[!]"

	// NotificationIconSuccess is the success notification icon
	NotificationIconSuccess = "[OK]"

	// NotificationIconInfo is the info notification icon
	NotificationIconInfo = "[i]"
)

// =============================================================================
// Runtime Configuration
// =============================================================================

// UseASCIIOnly controls whether to use ASCII fallback characters instead of Nerd Fonts
// Set via --ascii-only command-line flag
var UseASCIIOnly = false

// BorderStyle controls which border style to use for windows
// Set via --border-style flag or appearance.border_style config
var BorderStyle = "rounded"

// DockbarPosition controls the position of the dockbar
// Set via --dockbar-position flag or appearance.dockbar_position config
var DockbarPosition = "bottom"

// HideWindowButtons controls whether to hide window control buttons
// Set via --hide-window-buttons flag or appearance.hide_window_buttons config
var HideWindowButtons = false

// HideClock controls whether the menu bar clock is hidden
// Set via --hide-clock flag or appearance.hide_clock config
var HideClock = false

// ShowStats controls whether CPU and memory usage appear in the menu bar
var ShowStats = true

// GetDockPillLeftChar returns the appropriate pill left character based on UseASCIIOnly
func GetDockPillLeftChar() string {
	if UseASCIIOnly {
		return DockPillLeftCharASCII
	}
	return DockPillLeftChar
}

// GetDockPillRightChar returns the appropriate pill right character based on UseASCIIOnly
func GetDockPillRightChar() string {
	if UseASCIIOnly {
		return DockPillRightCharASCII
	}
	return DockPillRightChar
}

// GetDockSeparator returns the appropriate separator based on UseASCIIOnly
func GetDockSeparator() string {
	if UseASCIIOnly {
		return DockSeparatorASCII
	}
	return DockSeparator
}

func GetMenuBarLogo() string {
	if UseASCIIOnly {
		return MenuBarLogoASCII
	}
	return MenuBarLogo
}

func GetTrashIcon() string {
	if UseASCIIOnly {
		return TrashIconASCII
	}
	return TrashIcon
}

func GetMinimizedIcon() string {
	if UseASCIIOnly {
		return MinimizedIconASCII
	}
	return MinimizedIcon
}

func GetCPUIcon() string {
	if UseASCIIOnly {
		return CPUIconASCII
	}
	return CPUIcon
}

func GetMemIcon() string {
	if UseASCIIOnly {
		return MemIconASCII
	}
	return MemIcon
}

// AppIcon returns icon, or the first letter of name in ASCII mode.
func AppIcon(icon, name string) string {
	if UseASCIIOnly || icon == "" {
		for _, r := range name {
			return string(r)
		}
		return "?"
	}
	return icon
}

// =============================================================================
// Window Decoration Characters
// =============================================================================

const (
	// WindowButtonClose is the close window button character.
	WindowButtonClose = " ⤫ "
	// WindowButtonMinimize is the minimize button.
	WindowButtonMinimize = " — "
	// WindowButtonMaximize is the maximize button.
	WindowButtonMaximize = " □ "
	// WindowButtonRestore replaces the maximize button on maximized windows.
	WindowButtonRestore = " ❐ "
	// WindowPillLeft is the left pill-style character for window decorations.
	WindowPillLeft = string(rune(0xe0b6))
	// WindowPillRight is the right pill-style character for window decorations.
	WindowPillRight = string(rune(0xe0b4))
)

const (
	WindowButtonCloseASCII    = " X "
	WindowButtonMinimizeASCII = " _ "
	WindowButtonMaximizeASCII = " ^ "
	WindowButtonRestoreASCII  = " v "
	WindowPillLeftASCII       = "["
	WindowPillRightASCII      = "]"
)

// GetBorderForStyle returns the lipgloss Border for the current style
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	case "outer-half-block":
		return lipgloss.OuterHalfBlockBorder()
	case "inner-half-block":
		return lipgloss.InnerHalfBlockBorder()
	case "rounded":
		fallthrough
	default:
		return lipgloss.RoundedBorder()
	}
}

// GetWindowButtonClose returns the appropriate close button character
func GetWindowButtonClose() string {
	if UseASCIIOnly {
		return WindowButtonCloseASCII
	}
	return WindowButtonClose
}

// GetWindowButtonMinimize returns the appropriate minimize button
func GetWindowButtonMinimize() string {
	if UseASCIIOnly {
		return WindowButtonMinimizeASCII
	}
	return WindowButtonMinimize
}

// GetWindowButtonMaximize returns the maximize or restore button
func GetWindowButtonMaximize(maximized bool) string {
	switch {
	case UseASCIIOnly && maximized:
		return WindowButtonRestoreASCII
	case UseASCIIOnly:
		return WindowButtonMaximizeASCII
	case maximized:
		return WindowButtonRestore
	default:
		return WindowButtonMaximize
	}
}

// GetWindowPillLeft returns the appropriate pill left character
func GetWindowPillLeft() string {
	if UseASCIIOnly {
		return WindowPillLeftASCII
	}
	return WindowPillLeft
}

// GetWindowPillRight returns the appropriate pill right character
func GetWindowPillRight() string {
	if UseASCIIOnly {
		return WindowPillRightASCII
	}
	return WindowPillRight
}

// =============================================================================
// Button Positions (offsets from the window's right edge)
// =============================================================================

const (
	// MinimizeButtonLeft is the left position offset for the minimize button.
	MinimizeButtonLeft = -11
	// MinimizeButtonRight is the right position offset for the minimize button.
	MinimizeButtonRight = -9
	// MaximizeButtonLeft is the left position offset for maximize button.
	MaximizeButtonLeft = -8
	// MaximizeButtonRight is the right position offset for maximize button.
	MaximizeButtonRight = -6
	// CloseButtonLeft is the left position offset for close button.
	CloseButtonLeft = -5
	// CloseButtonRight is the right position offset for close button.
	CloseButtonRight = -3
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxLogMessages is the maximum number of log messages to keep in memory
	MaxLogMessages = 100

	// MaxDockItems is the maximum number of minimized windows shown in dock
	MaxDockItems = 9

	// MaxHistory is the number of finder locations remembered per window
	MaxHistory = 32

	// MaxOutboxList is the default number of messages printed by `folio mail list`
	MaxOutboxList = 20
)

// =============================================================================
// Z-Index Layers
// =============================================================================

const (
	// ZIndexDesktop is the z-index for the wallpaper and icons
	ZIndexDesktop = -1

	// ZIndexDock is the z-index for the dock
	ZIndexDock = 1000

	// ZIndexMenuBar is the z-index for the menu bar
	ZIndexMenuBar = 1001

	// ZIndexLauncher is the z-index for the launchpad overlay
	ZIndexLauncher = 1500

	// ZIndexHelp is the z-index for help overlay
	ZIndexHelp = 1600

	// ZIndexLogs is the z-index for log viewer overlay
	ZIndexLogs = 1601

	// ZIndexDialog is the z-index for the quit confirmation
	ZIndexDialog = 1700

	// ZIndexTape is the z-index for the tape playback badge
	ZIndexTape = 1900

	// ZIndexNotifications is the z-index for notifications
	ZIndexNotifications = 2000

	// ZIndexWindowBase is the z-index of the bottom window. Each window above
	// it takes two slots: its frame and its clickable children.
	ZIndexWindowBase = 10
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultMCPPort is the default port for the streamable HTTP MCP transport
	DefaultMCPPort = 8090

	// DefaultTerminalWidth is the fallback terminal width when screen size unknown
	DefaultTerminalWidth = 120

	// DefaultTerminalHeight is the fallback terminal height when screen size unknown
	DefaultTerminalHeight = 36
)
