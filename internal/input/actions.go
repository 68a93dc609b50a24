package input

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/folio/internal/app"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

// registerHandlers registers all action handlers
func (d *ActionDispatcher) registerHandlers() {
	// Window Management actions
	d.Register("next_window", handleNextWindow)
	d.Register("prev_window", handlePrevWindow)
	d.Register("close_window", handleCloseWindow)
	d.Register("minimize_window", handleMinimizeWindow)
	d.Register("maximize_window", handleMaximizeWindow)
	d.Register("restore_all", handleRestoreAll)
	d.Register("move_left", makeNudgeHandler(-2, 0))
	d.Register("move_right", makeNudgeHandler(2, 0))
	d.Register("move_up", makeNudgeHandler(0, -1))
	d.Register("move_down", makeNudgeHandler(0, 1))
	d.Register("resize_narrower", makeGrowHandler(-2, 0))
	d.Register("resize_wider", makeGrowHandler(2, 0))
	d.Register("resize_shorter", makeGrowHandler(0, -1))
	d.Register("resize_taller", makeGrowHandler(0, 1))

	// Tab actions
	d.Register("next_tab", makeCycleTabHandler(1))
	d.Register("prev_tab", makeCycleTabHandler(-1))
	d.Register("new_tab", handleNewTab)
	d.Register("close_tab", handleCloseTab)

	// Panel actions
	d.Register("cycle_view", handleCycleView)
	d.Register("history_back", handleHistoryBack)
	d.Register("history_forward", handleHistoryForward)
	d.Register("open_selection", handleOpenSelection)

	// Launcher and desktop icons (1-9)
	d.Register("toggle_launcher", handleToggleLauncher)
	for i := 1; i <= 9; i++ {
		d.Register("open_icon_"+strconv.Itoa(i), makeOpenIconHandler(i))
	}

	// Mode control actions
	d.Register("enter_input_mode", handleEnterInputMode)
	d.Register("exit_input_mode", handleExitInputMode)

	// System actions
	d.Register("toggle_help", handleToggleHelp)
	d.Register("toggle_logs", handleToggleLogs)
	d.Register("quit", handleQuit)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, o)
	}
	return o, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

// Global action dispatcher instance
var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// ============================================================================
// Window Management Action Handlers
// ============================================================================

func handleNextWindow(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.CycleWindow(1)
	return o, nil
}

func handlePrevWindow(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.CycleWindow(-1)
	return o, nil
}

func handleCloseWindow(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if w, ok := o.FocusedWindow(); ok {
		o.CloseWindow(w.ID)
	}
	return o, nil
}

func handleMinimizeWindow(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if w, ok := o.FocusedWindow(); ok {
		o.MinimizeWindow(w.ID)
	}
	return o, nil
}

func handleMaximizeWindow(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if w, ok := o.FocusedWindow(); ok {
		o.ToggleMaximize(w.ID)
	}
	return o, nil
}

func handleRestoreAll(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.RestoreAll()
	return o, nil
}

func makeNudgeHandler(dx, dy int) ActionHandler {
	return func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
		o.NudgeFocused(dx, dy)
		return o, nil
	}
}

func makeGrowHandler(dw, dh int) ActionHandler {
	return func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
		o.GrowFocused(dw, dh)
		return o, nil
	}
}

// ============================================================================
// Tab and Panel Action Handlers
// ============================================================================

func makeCycleTabHandler(delta int) ActionHandler {
	return func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
		if w, ok := o.FocusedWindow(); ok {
			o.CycleTab(w.ID, delta)
		}
		return o, nil
	}
}

func handleNewTab(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if w, ok := o.FocusedWindow(); ok {
		o.NewTab(w.ID)
	}
	return o, nil
}

func handleCloseTab(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if w, ok := o.FocusedWindow(); ok {
		o.CloseTab(w.ID, "")
	}
	return o, nil
}

func handleCycleView(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.CycleView()
	return o, nil
}

func handleHistoryBack(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.HistoryBack()
	return o, nil
}

func handleHistoryForward(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.HistoryForward()
	return o, nil
}

func handleOpenSelection(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	return o, o.OpenSelected()
}

// ============================================================================
// Launcher Action Handlers
// ============================================================================

func handleToggleLauncher(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.ToggleLauncher()
	return o, nil
}

func makeOpenIconHandler(n int) ActionHandler {
	return func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
		o.OpenIcon(n)
		return o, nil
	}
}

// ============================================================================
// Mode and System Action Handlers
// ============================================================================

func handleEnterInputMode(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.EnterInputMode()
	return o, nil
}

func handleExitInputMode(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if o.Mode == app.InputMode {
		o.ExitInputMode()
	}
	return o, nil
}

func handleToggleHelp(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.ToggleHelp()
	return o, nil
}

func handleToggleLogs(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if !o.ShowLogs {
		// Log first so the viewer opens on this line
		o.LogInfo("Log viewer opened")
	}
	o.ToggleLogs()
	return o, nil
}

func handleQuit(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	// Close help if showing
	if o.ShowHelp {
		o.ShowHelp = false
		return o, nil
	}
	if !o.RequestQuit() {
		return o, nil
	}
	o.Cleanup()
	return o, tea.Quit
}
