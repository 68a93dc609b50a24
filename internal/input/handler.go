// Package input implements folio input handling.
//
// Keys are resolved through the keybinding registry on the desktop and
// passed to the focused window's panel in input mode. Mouse events are
// hit-tested against the rendered layers.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/folio/internal/app"
)

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, o *app.OS) (tea.Model, tea.Cmd) {
	var result tea.Model
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		result, cmd = HandleKeyPress(msg, o)
	case tea.MouseClickMsg:
		result, cmd = handleMouseClick(msg, o)
	case tea.MouseMotionMsg:
		result, cmd = handleMouseMotion(msg, o)
	case tea.MouseReleaseMsg:
		result, cmd = handleMouseRelease(msg, o)
	case tea.MouseWheelMsg:
		result, cmd = handleMouseWheel(msg, o)
	case tea.PasteMsg:
		return o, o.HandlePaste(msg)
	default:
		return o, nil
	}
	return result, cmd
}

// HandleKeyPress handles all keyboard input and routes to mode-specific handlers
func HandleKeyPress(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	// Quit confirmation dialog has the highest priority
	if o.ShowQuitConfirm {
		return handleQuitConfirmKey(msg, o)
	}

	if msg.String() == "ctrl+c" {
		return handleQuit(msg, o)
	}

	// Pause or resume a playing tape
	if o.Tape != nil && !o.Tape.Done() && msg.String() == "ctrl+p" {
		return o, o.ToggleTapePause()
	}

	if o.Launcher.Visible {
		return o, o.HandleLauncherKey(msg)
	}

	if o.ShowHelp {
		return handleHelpKey(msg, o)
	}

	if o.ShowLogs {
		return handleLogViewerKey(msg, o)
	}

	if o.Mode == app.InputMode {
		return HandleInputModeKey(msg, o)
	}

	return HandleDesktopModeKey(msg, o)
}

func handleQuitConfirmKey(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		o.ShowQuitConfirm = false
		o.QuitConfirmSelection = 1
	case "left", "h":
		o.QuitConfirmSelection = 0
	case "right", "l":
		o.QuitConfirmSelection = 1
	case "tab", "shift+tab":
		o.QuitConfirmSelection = 1 - o.QuitConfirmSelection
	case "y":
		o.Cleanup()
		return o, tea.Quit
	case "enter":
		if o.QuitConfirmSelection == 0 {
			o.Cleanup()
			return o, tea.Quit
		}
		o.ShowQuitConfirm = false
	}
	// Quit dialog is showing but key wasn't handled - ignore it
	return o, nil
}

func handleHelpKey(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		o.ShowHelp = false
	case "up", "k":
		o.ScrollHelp(-1)
	case "down", "j":
		o.ScrollHelp(1)
	case "pgup", "ctrl+u":
		o.ScrollHelp(-10)
	case "pgdown", "ctrl+d":
		o.ScrollHelp(10)
	}
	return o, nil
}

func handleLogViewerKey(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	key := msg.String()

	// Close log viewer with q or esc
	if key == "q" || key == "esc" || o.KeybindRegistry.GetAction(key) == "toggle_logs" {
		o.ShowLogs = false
		o.LogScrollOffset = 0
		return o, nil
	}

	pageSize := max(o.LogsPerPage()/2, 1)
	switch key {
	case "up", "k":
		o.ScrollLogs(-1)
	case "down", "j":
		o.ScrollLogs(1)
	case "pgup", "ctrl+u":
		o.ScrollLogs(-pageSize)
	case "pgdown", "ctrl+d":
		o.ScrollLogs(pageSize)
	case "g", "home":
		o.LogScrollOffset = 0
	case "G", "end":
		o.ScrollLogs(len(o.LogMessages))
	}

	// Ignore other keys when log viewer is active
	return o, nil
}
