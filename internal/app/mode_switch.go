package app

// EnterInputMode switches from window management to input mode.
// In input mode, keys go to the focused window's panel instead of the
// keybinding registry. It does nothing when no window is focused.
func (m *OS) EnterInputMode() {
	p := m.FocusedPanel()
	if p == nil {
		return
	}
	m.Mode = InputMode
	p.focusInput()
}

// ExitInputMode switches from input mode back to window management.
func (m *OS) ExitInputMode() {
	if p := m.FocusedPanel(); p != nil {
		p.blurInput()
	}
	m.Mode = DesktopMode
}
