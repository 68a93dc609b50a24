// Package app provides the folio desktop model: windows, dock, launcher and
// the panels rendered inside each window.
package app

import (
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/desktop"
	"github.com/Gaurav-Gosain/folio/internal/mail"
	"github.com/google/uuid"
)

// Mode represents the current interaction mode of the application.
type Mode int

const (
	// DesktopMode routes single keys to window management.
	DesktopMode Mode = iota
	// InputMode passes keys to the focused window's panel.
	InputMode
)

func (m Mode) String() string {
	if m == InputMode {
		return "INPUT"
	}
	return "DESKTOP"
}

// DragKind tells a pointer drag what it manipulates.
type DragKind int

const (
	NoDrag DragKind = iota
	DragMove
	DragResize
)

// DragState tracks an in-progress mouse drag on a window.
type DragState struct {
	Kind     DragKind
	WindowID string
	OffsetX  int // pointer offset from the window origin when the drag began
	OffsetY  int
	StartW   int
	StartH   int
	StartX   int
	StartY   int
}

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// Options configures a new OS.
type Options struct {
	Content         *content.Portfolio
	Outbox          *mail.Outbox
	KeybindRegistry *config.KeybindRegistry
	Session         string // ssh user, web session id or "local"
	Recipient       string // pre-filled mail recipient
	Width           int
	Height          int
	Now             func() time.Time
}

// OS represents the main application state.
type OS struct {
	Store           *desktop.Store
	Content         *content.Portfolio
	Outbox          *mail.Outbox
	KeybindRegistry *config.KeybindRegistry
	Session         string
	Recipient       string

	Width  int
	Height int
	Mode   Mode

	panels   map[string]*Panel
	Launcher *Launcher
	Drag     DragState

	SelectedIcon int // desktop icon last opened, -1 for none

	ShowHelp             bool
	HelpScrollOffset     int
	ShowLogs             bool
	LogMessages          []LogMessage
	LogScrollOffset      int
	Notifications        []Notification
	ShowQuitConfirm      bool
	QuitConfirmSelection int // 0 = Yes (left), 1 = No (right)

	Tape *TapePlayback // nil when no script is playing

	CPUUsage   float64
	CPUHistory []float64
	RAMUsage   float64
	Clock      time.Time

	now func() time.Time
}

// New returns a desktop with no open windows.
func New(opts Options) *OS {
	if opts.Content == nil {
		opts.Content = content.Default()
	}
	if opts.KeybindRegistry == nil {
		opts.KeybindRegistry = config.NewKeybindRegistry(nil)
	}
	if opts.Session == "" {
		opts.Session = "local"
	}
	if opts.Recipient == "" {
		opts.Recipient = opts.Content.Contact
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Width <= 0 {
		opts.Width = config.DefaultTerminalWidth
	}
	if opts.Height <= 0 {
		opts.Height = config.DefaultTerminalHeight
	}

	m := &OS{
		Store:           desktop.NewStore(),
		Content:         opts.Content,
		Outbox:          opts.Outbox,
		KeybindRegistry: opts.KeybindRegistry,
		Session:         opts.Session,
		Recipient:       opts.Recipient,
		panels:          make(map[string]*Panel),
		Launcher:        newLauncher(opts.Content),
		SelectedIcon:    -1,
		now:             opts.Now,
	}
	m.Clock = m.now()
	m.SetSize(opts.Width, opts.Height)
	return m
}

func createID() string {
	return uuid.New().String()
}

// SetSize records the terminal size and tells the store how much room the
// desktop area has.
func (m *OS) SetSize(width, height int) {
	m.Width, m.Height = width, height
	m.Store.SetScreen(width, m.GetUsableHeight())
	m.ClampWindowsToView()
}

// Log adds a new log message to the log buffer.
func (m *OS) Log(level, format string, args ...any) {
	wasAtBottom := m.LogScrollOffset >= m.maxLogScroll()-2

	m.LogMessages = append(m.LogMessages, LogMessage{
		Time:    m.now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
	if len(m.LogMessages) > config.MaxLogMessages {
		m.LogMessages = m.LogMessages[len(m.LogMessages)-config.MaxLogMessages:]
	}

	// Sticky scroll while the viewer is open.
	if m.ShowLogs && wasAtBottom {
		m.LogScrollOffset = m.maxLogScroll()
	}
}

// LogInfo logs an informational message.
func (m *OS) LogInfo(format string, args ...any) {
	m.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (m *OS) LogWarn(format string, args ...any) {
	m.Log("WARN", format, args...)
}

// LogError logs an error message.
func (m *OS) LogError(format string, args ...any) {
	m.Log("ERROR", format, args...)
}

func (m *OS) LogsPerPage() int {
	maxDisplayHeight := max(m.Height-8, 8)
	// title, blank, blank, hint
	fixedLines := 4
	if len(m.LogMessages) > maxDisplayHeight-fixedLines {
		fixedLines = 6
	}
	return max(maxDisplayHeight-fixedLines, 1)
}

func (m *OS) maxLogScroll() int {
	return max(len(m.LogMessages)-m.LogsPerPage(), 0)
}

// ScrollLogs moves the log viewer by delta lines.
func (m *OS) ScrollLogs(delta int) {
	m.LogScrollOffset = max(0, min(m.LogScrollOffset+delta, m.maxLogScroll()))
}

// ShowNotification displays a temporary notification and logs it.
func (m *OS) ShowNotification(message, notifType string, duration time.Duration) {
	m.Notifications = append(m.Notifications, Notification{
		ID:        createID(),
		Message:   message,
		Type:      notifType,
		StartTime: m.now(),
		Duration:  duration,
	})
	if len(m.Notifications) > config.MaxVisibleNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-config.MaxVisibleNotifications:]
	}

	switch notifType {
	case "error":
		m.LogError("%s", message)
	case "warning":
		m.LogWarn("%s", message)
	default:
		m.LogInfo("%s", message)
	}
}

// DismissNotification removes a notification before it expires.
func (m *OS) DismissNotification(id string) {
	for i, n := range m.Notifications {
		if n.ID == id {
			m.Notifications = append(m.Notifications[:i], m.Notifications[i+1:]...)
			return
		}
	}
}

// CleanupNotifications removes expired notifications.
func (m *OS) CleanupNotifications() {
	now := m.now()
	active := m.Notifications[:0]
	for _, n := range m.Notifications {
		if now.Sub(n.StartTime) < n.Duration {
			active = append(active, n)
		}
	}
	m.Notifications = active
}

// HasUnsentMail reports whether any mail window holds a draft.
func (m *OS) HasUnsentMail() bool {
	for _, p := range m.panels {
		if p.Mail != nil && p.Mail.dirty() {
			return true
		}
	}
	return false
}

// Cleanup releases per-session resources. The outbox is owned by the caller.
func (m *OS) Cleanup() {
	m.panels = make(map[string]*Panel)
	m.Notifications = nil
}

// =============================================================================
// Layout
// =============================================================================

// GetTopMargin returns the first desktop row below the menu bar (and the dock
// when it sits on top).
func (m *OS) GetTopMargin() int {
	top := config.MenuBarHeight
	if config.DockbarPosition == "top" {
		top += config.DockHeight
	}
	return top
}

// GetUsableHeight returns the height of the desktop area.
func (m *OS) GetUsableHeight() int {
	h := m.Height - config.MenuBarHeight
	if config.DockbarPosition != "hidden" {
		h -= config.DockHeight
	}
	return max(h, 1)
}

// GetDockY returns the first row of the dock.
func (m *OS) GetDockY() int {
	if config.DockbarPosition == "top" {
		return config.MenuBarHeight
	}
	return m.Height - config.DockHeight
}

// DesktopArea returns the rectangle windows live in.
func (m *OS) DesktopArea() desktop.Rect {
	return desktop.Rect{X: 0, Y: m.GetTopMargin(), Width: m.Width, Height: m.GetUsableHeight()}
}

// IsNarrow reports whether the screen is too small for the desktop.
func (m *OS) IsNarrow() bool {
	return m.Width < config.MinDesktopWidth || m.Height < config.MinDesktopHeight
}

// WindowRect returns where a window is drawn: maximized windows fill the
// desktop area, others use their stored geometry shifted below the menu bar.
func (m *OS) WindowRect(w desktop.Window) desktop.Rect {
	if w.Maximized {
		return m.DesktopArea()
	}
	return desktop.Rect{X: w.X, Y: w.Y + m.GetTopMargin(), Width: w.Width, Height: w.Height}
}

// ClampWindowsToView keeps every window's title bar reachable after the
// screen shrinks.
func (m *OS) ClampWindowsToView() {
	area := m.DesktopArea()
	for _, w := range m.Store.Windows() {
		x := max(min(w.X, area.Width-config.MinWindowWidth), 0)
		y := max(min(w.Y, area.Height-3), 0)
		if x != w.X || y != w.Y {
			m.Store.Reposition(w.ID, x, y)
		}
		width := min(w.Width, area.Width)
		height := min(w.Height, area.Height)
		if width != w.Width || height != w.Height {
			m.Store.Resize(w.ID, max(width, config.MinWindowWidth), max(height, config.MinWindowHeight))
		}
	}
}
