package app

import (
	"errors"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/desktop"
)

// testClock is a settable clock for notification and log timestamps.
type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestOS(t *testing.T) (*OS, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
	return New(Options{Now: clock.now}), clock
}

func TestNewDefaults(t *testing.T) {
	m, _ := newTestOS(t)
	if m.Width != config.DefaultTerminalWidth || m.Height != config.DefaultTerminalHeight {
		t.Errorf("size = %dx%d, want the default terminal size", m.Width, m.Height)
	}
	if m.Session != "local" {
		t.Errorf("Session = %q, want local", m.Session)
	}
	if m.Recipient != m.Content.Contact {
		t.Errorf("Recipient = %q, want the portfolio contact %q", m.Recipient, m.Content.Contact)
	}
	if m.Store.Len() != 0 {
		t.Errorf("new desktop has %d windows", m.Store.Len())
	}
	if m.SelectedIcon != -1 {
		t.Errorf("SelectedIcon = %d, want -1", m.SelectedIcon)
	}
}

func TestOpenNamed(t *testing.T) {
	tests := []struct {
		name      string
		arg       string
		wantKind  desktop.Kind
		wantTitle string
		wantErr   error
	}{
		{"app by name", "Projects", desktop.KindFinder, "Projects", nil},
		{"app name ignores case", "  projects ", desktop.KindFinder, "Projects", nil},
		{"mail app", "Mail", desktop.KindMail, "Mail", nil},
		{"section key", "life", desktop.KindFinder, "Life", nil},
		{"link app", "Spotify", "", "", ErrNotWindowApp},
		{"launchpad app", "Launchpad", "", "", ErrNotWindowApp},
		{"unknown", "nope", "", "", ErrUnknownName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestOS(t)
			id, err := m.OpenNamed(tt.arg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if m.Store.Len() != 0 {
					t.Errorf("failed open left %d windows", m.Store.Len())
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenNamed: %v", err)
			}
			w, ok := m.Store.Window(id)
			if !ok {
				t.Fatalf("window %q not in store", id)
			}
			if w.Kind != tt.wantKind || w.Title != tt.wantTitle {
				t.Errorf("window = %s %q, want %s %q", w.Kind, w.Title, tt.wantKind, tt.wantTitle)
			}
			if m.Store.FocusedID() != id {
				t.Errorf("focused = %q, want the new window", m.Store.FocusedID())
			}
			if m.Panel(id) == nil {
				t.Error("no panel for the new window")
			}
		})
	}
}

func TestOpenSameContentReusesWindow(t *testing.T) {
	m, _ := newTestOS(t)
	first, _ := m.OpenNamed("About Me")
	second, _ := m.OpenNamed("about")
	if first != second {
		t.Errorf("icon and section opened different windows: %q %q", first, second)
	}
	if m.Store.Len() != 1 {
		t.Errorf("store has %d windows, want 1", m.Store.Len())
	}
}

func TestCloseFocusesTopmost(t *testing.T) {
	m, _ := newTestOS(t)
	a, _ := m.OpenNamed("Projects")
	b, _ := m.OpenNamed("Essays")

	m.CloseWindow(b)
	if _, ok := m.Store.Window(b); ok {
		t.Fatal("closed window still in store")
	}
	if m.Store.FocusedID() != a {
		t.Errorf("focused = %q, want %q", m.Store.FocusedID(), a)
	}

	m.CloseWindow(a)
	if m.Store.FocusedID() != "" {
		t.Errorf("focused = %q after closing everything", m.Store.FocusedID())
	}
	// closing twice is harmless
	m.CloseWindow(a)
}

func TestMinimizeAndRestore(t *testing.T) {
	m, _ := newTestOS(t)
	a, _ := m.OpenNamed("Projects")
	b, _ := m.OpenNamed("Essays")

	m.MinimizeWindow(b)
	w, _ := m.Store.Window(b)
	if !w.Minimized {
		t.Fatal("window not minimized")
	}
	if m.Store.FocusedID() != a {
		t.Errorf("focused = %q, want %q after minimize", m.Store.FocusedID(), a)
	}
	if _, ok := m.FocusedWindow(); !ok {
		t.Error("FocusedWindow should report the remaining window")
	}

	m.RestoreWindow(b)
	w, _ = m.Store.Window(b)
	if w.Minimized {
		t.Error("window still minimized after restore")
	}
	if m.Store.FocusedID() != b {
		t.Errorf("focused = %q, want restored window %q", m.Store.FocusedID(), b)
	}

	m.MinimizeWindow(a)
	m.MinimizeWindow(b)
	m.RestoreAll()
	for _, id := range []string{a, b} {
		if w, _ := m.Store.Window(id); w.Minimized {
			t.Errorf("%s still minimized after RestoreAll", id)
		}
	}
}

func TestToggleMaximizeKeepsGeometry(t *testing.T) {
	m, _ := newTestOS(t)
	id, _ := m.OpenNamed("Projects")
	before, _ := m.Store.Window(id)

	m.ToggleMaximize(id)
	w, _ := m.Store.Window(id)
	if !w.Maximized {
		t.Fatal("window not maximized")
	}
	if r := m.WindowRect(w); r != m.DesktopArea() {
		t.Errorf("maximized rect = %+v, want desktop area %+v", r, m.DesktopArea())
	}

	// maximized windows ignore moves
	m.MoveWindow(id, 0, 0)

	m.ToggleMaximize(id)
	after, _ := m.Store.Window(id)
	if after.X != before.X || after.Y != before.Y || after.Width != before.Width || after.Height != before.Height {
		t.Errorf("geometry after restore = %+v, want %+v", after, before)
	}
}

func TestMoveAndResizeClamp(t *testing.T) {
	m, _ := newTestOS(t)
	id, _ := m.OpenNamed("Projects")
	area := m.DesktopArea()

	m.MoveWindow(id, -10, -10)
	w, _ := m.Store.Window(id)
	if w.X != 0 || w.Y != 0 {
		t.Errorf("origin = %d,%d, want 0,0", w.X, w.Y)
	}

	m.MoveWindow(id, 10_000, 10_000)
	w, _ = m.Store.Window(id)
	if w.X+w.Width > area.Width || w.Y+w.Height > area.Height {
		t.Errorf("window %+v leaves the desktop area %+v", w, area)
	}

	m.MoveWindow(id, 0, 0)
	m.ResizeWindow(id, 1, 1)
	w, _ = m.Store.Window(id)
	if w.Width != config.MinWindowWidth || w.Height != config.MinWindowHeight {
		t.Errorf("size = %dx%d, want the minimum", w.Width, w.Height)
	}

	m.ResizeWindow(id, 10_000, 10_000)
	w, _ = m.Store.Window(id)
	if w.Width != area.Width || w.Height != area.Height {
		t.Errorf("size = %dx%d, want %dx%d", w.Width, w.Height, area.Width, area.Height)
	}
}

func TestCycleWindow(t *testing.T) {
	m, _ := newTestOS(t)
	a, _ := m.OpenNamed("Projects")
	b, _ := m.OpenNamed("Essays")
	c, _ := m.OpenNamed("Research")

	m.CycleWindow(1)
	if got := m.Store.FocusedID(); got != a {
		t.Errorf("next after last = %q, want first %q", got, a)
	}
	m.CycleWindow(-1)
	if got := m.Store.FocusedID(); got != c {
		t.Errorf("previous from first = %q, want last %q", got, c)
	}

	m.MinimizeWindow(b)
	m.FocusWindow(a)
	m.CycleWindow(1)
	if got := m.Store.FocusedID(); got != c {
		t.Errorf("cycle should skip minimized windows, got %q", got)
	}
}

func TestInputModeFollowsFocus(t *testing.T) {
	m, _ := newTestOS(t)

	m.EnterInputMode()
	if m.Mode != DesktopMode {
		t.Fatal("input mode entered with no window")
	}

	a, _ := m.OpenNamed("Mail")
	m.EnterInputMode()
	if m.Mode != InputMode {
		t.Fatal("input mode not entered")
	}

	b, _ := m.OpenNamed("Projects")
	if m.Mode != DesktopMode {
		t.Error("opening a window should leave input mode")
	}

	m.FocusWindow(a)
	m.EnterInputMode()
	m.CloseWindow(a)
	if m.Mode != DesktopMode {
		t.Error("closing the focused window should leave input mode")
	}
	if m.Store.FocusedID() != b {
		t.Errorf("focused = %q, want %q", m.Store.FocusedID(), b)
	}
}

func TestNotificationsExpire(t *testing.T) {
	m, clock := newTestOS(t)

	m.ShowNotification("one", "info", time.Second)
	m.ShowNotification("two", "error", 5*time.Second)
	if len(m.Notifications) != 2 {
		t.Fatalf("got %d notifications, want 2", len(m.Notifications))
	}

	clock.t = clock.t.Add(2 * time.Second)
	m.CleanupNotifications()
	if len(m.Notifications) != 1 || m.Notifications[0].Message != "two" {
		t.Errorf("notifications after expiry = %+v", m.Notifications)
	}

	m.DismissNotification(m.Notifications[0].ID)
	if len(m.Notifications) != 0 {
		t.Error("dismissed notification still shown")
	}

	last := m.LogMessages[len(m.LogMessages)-1]
	if last.Level != "ERROR" || last.Message != "two" {
		t.Errorf("error notification logged as %+v", last)
	}
}

func TestNotificationLimit(t *testing.T) {
	m, _ := newTestOS(t)
	for range config.MaxVisibleNotifications + 2 {
		m.ShowNotification("n", "info", time.Minute)
	}
	if len(m.Notifications) != config.MaxVisibleNotifications {
		t.Errorf("got %d notifications, want %d", len(m.Notifications), config.MaxVisibleNotifications)
	}
}

func TestLogBufferIsCapped(t *testing.T) {
	m, clock := newTestOS(t)
	for i := range config.MaxLogMessages + 10 {
		m.LogInfo("line %d", i)
	}
	if len(m.LogMessages) != config.MaxLogMessages {
		t.Fatalf("got %d log lines, want %d", len(m.LogMessages), config.MaxLogMessages)
	}
	if got := m.LogMessages[0].Message; got != "line 10" {
		t.Errorf("oldest line = %q, want line 10", got)
	}
	if !m.LogMessages[0].Time.Equal(clock.t) {
		t.Errorf("log time = %v, want the test clock", m.LogMessages[0].Time)
	}
}

func TestRequestQuitWithDraft(t *testing.T) {
	m, _ := newTestOS(t)
	if !m.RequestQuit() {
		t.Fatal("empty desktop should quit immediately")
	}

	id, _ := m.OpenNamed("Mail")
	m.Panel(id).Mail.Body.SetValue("hello there")
	if m.RequestQuit() {
		t.Fatal("quit should wait for confirmation with an unsent draft")
	}
	if !m.ShowQuitConfirm || m.QuitConfirmSelection != 1 {
		t.Errorf("dialog = %v selection %d, want shown with No selected", m.ShowQuitConfirm, m.QuitConfirmSelection)
	}
}

func TestSetSizeClampsWindows(t *testing.T) {
	m, _ := newTestOS(t)
	id, _ := m.OpenNamed("Projects")
	m.MoveWindow(id, 200, 30)

	m.SetSize(80, 24)
	w, _ := m.Store.Window(id)
	area := m.DesktopArea()
	if w.X > area.Width-config.MinWindowWidth || w.Width > area.Width || w.Height > area.Height {
		t.Errorf("window %+v not clamped to %+v", w, area)
	}
}
