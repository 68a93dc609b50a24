package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/desktop"
	"github.com/Gaurav-Gosain/folio/internal/tape"
	"github.com/Gaurav-Gosain/folio/internal/theme"
)

// OS implements tape.Executor so scripts drive the same code paths as the
// keyboard and mouse.
var _ tape.Executor = (*OS)(nil)

var (
	// ErrNotWindowApp is returned when a named app opens a link or the
	// launchpad instead of a window.
	ErrNotWindowApp = errors.New("app does not open a window")
	// ErrUnknownName is returned when no app or section has the name.
	ErrUnknownName = errors.New("no app or section with that name")
)

// findApp looks an app up by name across the icons, dock and launchpad.
func (m *OS) findApp(name string) (content.App, bool) {
	for _, list := range [][]content.App{m.Content.Icons, m.Content.Dock, m.Content.Launchpad} {
		for _, a := range list {
			if strings.EqualFold(a.Name, name) {
				return a, true
			}
		}
	}
	return content.App{}, false
}

// OpenByName opens an app window by app name, or a finder window for a
// section key.
func (m *OS) OpenByName(name string) error {
	_, err := m.OpenNamed(name)
	return err
}

// OpenNamed is OpenByName returning the opened window's id.
func (m *OS) OpenNamed(name string) (string, error) {
	name = strings.TrimSpace(name)
	if a, ok := m.findApp(name); ok {
		if a.Action != content.ActionOpen {
			return "", fmt.Errorf("%s: %w", a.Name, ErrNotWindowApp)
		}
		return m.OpenWindow(specFor(a)), nil
	}
	key := strings.ToLower(name)
	sec, ok := m.Content.Sections[key]
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownName)
	}
	return m.OpenWindow(desktop.Spec{Kind: desktop.KindFinder, Title: sec.Title, Content: key}), nil
}

// findWindowsByName returns open windows whose id or title matches name.
func (m *OS) findWindowsByName(name string) []desktop.Window {
	var matches []desktop.Window
	for _, w := range m.Store.Stacked() {
		if w.ID == name {
			return []desktop.Window{w}
		}
		if strings.EqualFold(w.Title, name) {
			matches = append(matches, w)
		}
	}
	return matches
}

// findSingleWindowByName resolves name to one window. An empty name is the
// focused window.
func (m *OS) findSingleWindowByName(name string) (desktop.Window, error) {
	if name == "" {
		w, ok := m.Store.Window(m.Store.FocusedID())
		if !ok {
			return desktop.Window{}, fmt.Errorf("no window is focused")
		}
		return w, nil
	}
	matches := m.findWindowsByName(name)
	if len(matches) == 0 {
		return desktop.Window{}, fmt.Errorf("no window found with name: %s", name)
	}
	if len(matches) > 1 {
		return desktop.Window{}, fmt.Errorf("multiple windows (%d) found with name: %s", len(matches), name)
	}
	return matches[0], nil
}

// CloseWindowByName closes the named window.
func (m *OS) CloseWindowByName(name string) error {
	w, err := m.findSingleWindowByName(name)
	if err != nil {
		return err
	}
	m.CloseWindow(w.ID)
	return nil
}

// FocusWindowByName raises the named window.
func (m *OS) FocusWindowByName(name string) error {
	w, err := m.findSingleWindowByName(name)
	if err != nil {
		return err
	}
	m.FocusWindow(w.ID)
	return nil
}

// MinimizeWindowByName sends the named window to the dock.
func (m *OS) MinimizeWindowByName(name string) error {
	w, err := m.findSingleWindowByName(name)
	if err != nil {
		return err
	}
	m.MinimizeWindow(w.ID)
	return nil
}

// RestoreWindowByName brings the named window back from the dock. With no
// name it restores the most recently minimized window.
func (m *OS) RestoreWindowByName(name string) error {
	if name == "" {
		windows := m.Store.Stacked()
		for i := len(windows) - 1; i >= 0; i-- {
			if windows[i].Minimized {
				m.RestoreWindow(windows[i].ID)
				return nil
			}
		}
		return fmt.Errorf("no minimized window")
	}
	w, err := m.findSingleWindowByName(name)
	if err != nil {
		return err
	}
	m.RestoreWindow(w.ID)
	return nil
}

// RestoreAllWindows restores every minimized window.
func (m *OS) RestoreAllWindows() {
	m.RestoreAll()
}

// MaximizeWindowByName toggles maximize on the named window.
func (m *OS) MaximizeWindowByName(name string) error {
	w, err := m.findSingleWindowByName(name)
	if err != nil {
		return err
	}
	m.ToggleMaximize(w.ID)
	return nil
}

// MoveFocused moves the focused window's origin to x, y in desktop cells.
func (m *OS) MoveFocused(x, y int) error {
	w, ok := m.FocusedWindow()
	if !ok {
		return fmt.Errorf("no window is focused")
	}
	m.MoveWindow(w.ID, x, y)
	return nil
}

// ResizeFocused sets the focused window's size.
func (m *OS) ResizeFocused(width, height int) error {
	w, ok := m.FocusedWindow()
	if !ok {
		return fmt.Errorf("no window is focused")
	}
	m.ResizeWindow(w.ID, width, height)
	return nil
}

// CycleFocusedTab switches tabs in the focused window.
func (m *OS) CycleFocusedTab(delta int) {
	if w, ok := m.FocusedWindow(); ok {
		m.CycleTab(w.ID, delta)
	}
}

// SetMode switches between "input" and "desktop" mode.
func (m *OS) SetMode(mode string) error {
	switch strings.ToLower(mode) {
	case "input", "terminal":
		if m.FocusedPanel() == nil {
			return fmt.Errorf("no window is focused")
		}
		m.EnterInputMode()
	case "desktop", "window":
		m.ExitInputMode()
	default:
		return fmt.Errorf("invalid mode: %s (use: input, desktop)", mode)
	}
	return nil
}

// SendKey routes a synthesized key press through the registered input
// handler.
func (m *OS) SendKey(msg tea.KeyPressMsg) tea.Cmd {
	if inputHandler == nil {
		return nil
	}
	_, cmd := inputHandler(msg, m)
	return cmd
}

// ShowNotificationCmd displays a notification in the UI.
func (m *OS) ShowNotificationCmd(message, notificationType string) error {
	switch notificationType {
	case "info", "success", "warning", "error":
	default:
		return fmt.Errorf("invalid notification type: %s (use: info, success, warning, error)", notificationType)
	}
	m.ShowNotification(message, notificationType, config.NotificationDuration)
	return nil
}

// SetDockbarPosition changes the dockbar position.
func (m *OS) SetDockbarPosition(position string) error {
	switch position {
	case "top", "bottom", "hidden":
		config.DockbarPosition = position
		// the desktop area changed
		m.SetSize(m.Width, m.Height)
		m.ShowNotification(fmt.Sprintf("Dock: %s", position), "info", config.NotificationDuration)
		return nil
	default:
		return fmt.Errorf("invalid dockbar position: %s (use: top, bottom, hidden)", position)
	}
}

var borderStyles = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii", "outer-half-block", "inner-half-block"}

// SetBorderStyle changes the window border style.
func (m *OS) SetBorderStyle(style string) error {
	if !slices.Contains(borderStyles, style) {
		return fmt.Errorf("invalid border style: %s (use: %s)", style, strings.Join(borderStyles, ", "))
	}
	config.BorderStyle = style
	m.ShowNotification(fmt.Sprintf("Border: %s", style), "info", config.NotificationDuration)
	return nil
}

// SetTheme switches the color theme.
func (m *OS) SetTheme(themeName string) error {
	if err := theme.Initialize(themeName); err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}
	m.ShowNotification(fmt.Sprintf("Theme: %s", themeName), "info", config.NotificationDuration)
	return nil
}

// =============================================================================
// Playback
// =============================================================================

// TapePlayback tracks a script running on the desktop.
type TapePlayback struct {
	Name     string
	Commands []tape.Command
	Next     int
	Paused   bool
	Errors   int
	Finished time.Time

	exec *tape.CommandExecutor
	seq  int // invalidates steps scheduled before a pause
}

// Progress returns the percentage of commands run.
func (p *TapePlayback) Progress() int {
	if len(p.Commands) == 0 {
		return 100
	}
	return p.Next * 100 / len(p.Commands)
}

// Done reports whether every command ran.
func (p *TapePlayback) Done() bool {
	return p.Next >= len(p.Commands)
}

// PlayTapeMsg starts a script from outside the program, via tea.Program.Send.
type PlayTapeMsg struct {
	Name     string
	Commands []tape.Command
}

// TapeStepMsg runs the next tape command.
type TapeStepMsg struct {
	Seq int
}

const tapeClearSeq = -1

// PlayTape starts running cmds on the desktop, one step per message so the
// screen redraws between commands.
func (m *OS) PlayTape(name string, cmds []tape.Command) tea.Cmd {
	m.Tape = &TapePlayback{
		Name:     name,
		Commands: cmds,
		exec:     tape.NewCommandExecutor(m),
	}
	m.LogInfo("Playing tape %s (%d commands)", name, len(cmds))
	return m.scheduleTapeStep(0)
}

func (m *OS) scheduleTapeStep(delay time.Duration) tea.Cmd {
	seq := m.Tape.seq
	if delay <= 0 {
		return func() tea.Msg { return TapeStepMsg{Seq: seq} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return TapeStepMsg{Seq: seq} })
}

// ToggleTapePause pauses or resumes playback.
func (m *OS) ToggleTapePause() tea.Cmd {
	p := m.Tape
	if p == nil || p.Done() {
		return nil
	}
	p.Paused = !p.Paused
	p.seq++
	if p.Paused {
		m.LogInfo("Tape paused at %d/%d", p.Next, len(p.Commands))
		return nil
	}
	m.LogInfo("Tape resumed")
	return m.scheduleTapeStep(0)
}

// stepTape runs one command and schedules the next.
func (m *OS) stepTape(msg TapeStepMsg) tea.Cmd {
	p := m.Tape
	if p == nil || p.Paused || msg.Seq != p.seq || p.Done() {
		return nil
	}

	cmd := p.Commands[p.Next]
	p.Next++

	out, err := p.exec.Execute(&cmd)
	if err != nil {
		p.Errors++
		m.LogError("tape line %d (%s): %v", cmd.Line, cmd, err)
	}

	if p.Done() {
		p.Finished = m.now()
		m.LogInfo("Tape %s finished with %d error(s)", p.Name, p.Errors)
		return tea.Batch(out, tea.Tick(config.TapeDoneDisplay, func(time.Time) tea.Msg {
			return TapeStepMsg{Seq: tapeClearSeq}
		}))
	}

	delay := config.TapeStepDelay
	if d, _ := cmd.Duration(); cmd.Type == tape.CommandTypeSleep {
		delay = d
	}
	return tea.Batch(out, m.scheduleTapeStep(delay))
}

// handleTapeStep runs the next command, or drops the progress badge of a
// finished tape.
func (m *OS) handleTapeStep(msg TapeStepMsg) tea.Cmd {
	if msg.Seq == tapeClearSeq {
		if m.Tape != nil && m.Tape.Done() {
			m.Tape = nil
		}
		return nil
	}
	return m.stepTape(msg)
}

// RunTape executes cmds immediately, ignoring Sleep. Commands after a
// failing one still run; all errors are returned joined.
func (m *OS) RunTape(cmds []tape.Command) error {
	exec := tape.NewCommandExecutor(m)
	var errs []error
	for i := range cmds {
		if _, err := exec.Execute(&cmds[i]); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", cmds[i].Line, err))
		}
	}
	return errors.Join(errs...)
}
