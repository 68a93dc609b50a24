package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/folio/internal/config"
)

// TickerMsg is the once-a-second clock tick. It expires notifications and
// advances the menu bar clock.
// This is exported so it can be used by the input package.
type TickerMsg time.Time

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, o *OS) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
// This will be set by the main package to break the circular dependency.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the clock and the stats sampler.
func (m *OS) Init() tea.Cmd {
	m.LogInfo("Session %s started", m.Session)
	return tea.Batch(TickCmd(), StatsCmd())
}

// TickCmd schedules the next clock tick.
func TickCmd() tea.Cmd {
	return tea.Tick(config.ClockUpdateInterval, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Update handles all incoming messages and updates the application state.
func (m *OS) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		m.Clock = time.Time(msg)
		m.CleanupNotifications()
		return m, TickCmd()

	case StatsMsg:
		m.applyStats(msg)
		return m, StatsCmd()

	case MailSentMsg:
		m.handleMailSent(msg)
		return m, nil

	case TapeStepMsg:
		return m, m.handleTapeStep(msg)

	case PlayTapeMsg:
		return m, m.PlayTape(msg.Name, msg.Commands)

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg,
		tea.MouseReleaseMsg, tea.MouseWheelMsg, tea.PasteMsg:
		// Delegate to the registered input handler
		if inputHandler != nil {
			return inputHandler(msg, m)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	// Blink and other widget messages go to whatever has focus.
	return m, m.forwardToFocused(msg)
}

// HandlePaste inserts pasted text into the launcher query or the focused
// input field. Pastes on the desktop are dropped.
func (m *OS) HandlePaste(msg tea.PasteMsg) tea.Cmd {
	if !m.Launcher.Visible && m.Mode != InputMode {
		return nil
	}
	return m.forwardToFocused(msg)
}

// forwardToFocused passes non-input messages to the widget that owns the
// cursor.
func (m *OS) forwardToFocused(msg tea.Msg) tea.Cmd {
	if m.Launcher.Visible {
		var cmd tea.Cmd
		m.Launcher.Query, cmd = m.Launcher.Query.Update(msg)
		return cmd
	}
	if m.Mode != InputMode {
		return nil
	}
	p := m.FocusedPanel()
	if p == nil {
		return nil
	}
	var cmd tea.Cmd
	switch {
	case p.Finder != nil:
		p.Finder.Search, cmd = p.Finder.Search.Update(msg)
	case p.Safari != nil:
		p.Safari.URL, cmd = p.Safari.URL.Update(msg)
	case p.Mail != nil && p.Mail.Focus == fieldBody:
		p.Mail.Body, cmd = p.Mail.Body.Update(msg)
	case p.Mail != nil && p.Mail.Focus == fieldTo:
		p.Mail.To, cmd = p.Mail.To.Update(msg)
	case p.Mail != nil && p.Mail.Focus == fieldSubject:
		p.Mail.Subject, cmd = p.Mail.Subject.Update(msg)
	}
	return cmd
}

// FilterMouseMotion is a tea.WithFilter function that drops pointer motion
// unless a window is being dragged or resized.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	m, ok := model.(*OS)
	if !ok || m.Drag.Kind != NoDrag {
		return msg
	}
	return nil
}
