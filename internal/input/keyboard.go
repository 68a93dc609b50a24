package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/folio/internal/app"
)

// HandleInputModeKey passes keys to the focused panel. The exit binding
// returns to the desktop.
func HandleInputModeKey(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if o.KeybindRegistry.GetAction(msg.String()) == "exit_input_mode" {
		o.ExitInputMode()
		return o, nil
	}
	if _, ok := o.FocusedWindow(); !ok {
		// The window went away underneath us
		o.ExitInputMode()
		return o, nil
	}
	return o, o.HandleKey(msg)
}

// HandleDesktopModeKey resolves a key through the keybinding registry.
// Unbound keys go to the focused window's panel, which ignores text while
// its fields are blurred.
func HandleDesktopModeKey(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if action := o.KeybindRegistry.GetAction(msg.String()); action != "" {
		d := GetDispatcher()
		if d.HasAction(action) {
			return d.Dispatch(action, msg, o)
		}
		o.LogWarn("No handler for action %q", action)
		return o, nil
	}
	return o, o.HandleKey(msg)
}
