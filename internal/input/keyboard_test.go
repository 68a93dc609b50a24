package input

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/folio/internal/app"
	"github.com/Gaurav-Gosain/folio/internal/tape"
)

func newDesktop(t *testing.T) *app.OS {
	t.Helper()
	fixed := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return app.New(app.Options{Now: func() time.Time { return fixed }})
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "ctrl+p":
		return tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func press(o *app.OS, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = HandleKeyPress(key(k), o)
	}
	return cmd
}

func TestDesktopKeybindings(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		check func(t *testing.T, o *app.OS)
	}{
		{
			name: "number opens desktop icon",
			keys: []string{"3"},
			check: func(t *testing.T, o *app.OS) {
				w, ok := o.FocusedWindow()
				if !ok || w.Title != o.Content.Icons[2].Name {
					t.Errorf("focused = %+v, want icon 3", w)
				}
				if o.SelectedIcon != 2 {
					t.Errorf("SelectedIcon = %d, want 2", o.SelectedIcon)
				}
			},
		},
		{
			name: "x closes the focused window",
			keys: []string{"1", "x"},
			check: func(t *testing.T, o *app.OS) {
				if o.Store.Len() != 0 {
					t.Errorf("%d windows left", o.Store.Len())
				}
			},
		},
		{
			name: "m minimizes",
			keys: []string{"1", "m"},
			check: func(t *testing.T, o *app.OS) {
				if _, ok := o.FocusedWindow(); ok {
					t.Error("minimized window still focused")
				}
			},
		},
		{
			name: "f maximizes",
			keys: []string{"1", "f"},
			check: func(t *testing.T, o *app.OS) {
				w, _ := o.FocusedWindow()
				if !w.Maximized {
					t.Error("window not maximized")
				}
			},
		},
		{
			name: "tab cycles windows",
			keys: []string{"1", "2", "tab"},
			check: func(t *testing.T, o *app.OS) {
				w, _ := o.FocusedWindow()
				if w.Title != o.Content.Icons[0].Name {
					t.Errorf("focused = %q, want the first window", w.Title)
				}
			},
		},
		{
			name: "l opens the launcher",
			keys: []string{"l"},
			check: func(t *testing.T, o *app.OS) {
				if !o.Launcher.Visible {
					t.Error("launcher hidden")
				}
			},
		},
		{
			name: "? toggles help",
			keys: []string{"?"},
			check: func(t *testing.T, o *app.OS) {
				if !o.ShowHelp {
					t.Error("help hidden")
				}
			},
		},
		{
			name: "esc closes help",
			keys: []string{"?", "esc"},
			check: func(t *testing.T, o *app.OS) {
				if o.ShowHelp {
					t.Error("help still shown")
				}
			},
		},
		{
			name: "L opens logs",
			keys: []string{"L"},
			check: func(t *testing.T, o *app.OS) {
				if !o.ShowLogs {
					t.Error("log viewer hidden")
				}
			},
		},
		{
			name: "i enters input mode, esc leaves",
			keys: []string{"1", "i"},
			check: func(t *testing.T, o *app.OS) {
				if o.Mode != app.InputMode {
					t.Fatal("not in input mode")
				}
				press(o, "esc")
				if o.Mode != app.DesktopMode {
					t.Error("esc did not leave input mode")
				}
			},
		},
		{
			name: "input mode swallows bindings",
			keys: []string{"1", "i", "x"},
			check: func(t *testing.T, o *app.OS) {
				if o.Store.Len() != 1 {
					t.Error("x closed the window in input mode")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newDesktop(t)
			press(o, tt.keys...)
			tt.check(t, o)
		})
	}
}

func TestLauncherKeys(t *testing.T) {
	o := newDesktop(t)
	press(o, "l")

	for _, r := range "mail" {
		press(o, string(r))
	}
	apps := o.Launcher.Apps()
	if len(apps) == 0 || apps[0].Name != "Mail" {
		t.Fatalf("filtered apps = %v, want Mail first", apps)
	}

	press(o, "enter")
	if o.Launcher.Visible {
		t.Error("launcher still visible after launch")
	}
	w, ok := o.FocusedWindow()
	if !ok || w.Title != "Mail" {
		t.Errorf("focused = %+v, want Mail", w)
	}
}

func TestQuit(t *testing.T) {
	o := newDesktop(t)
	if cmd := press(o, "q"); cmd == nil {
		t.Fatal("q with no draft should quit")
	}

	o = newDesktop(t)
	if _, err := o.OpenNamed("Mail"); err != nil {
		t.Fatal(err)
	}
	o.FocusedPanel().Mail.Body.SetValue("draft")

	if cmd := press(o, "ctrl+c"); cmd != nil {
		t.Fatal("quit with a draft should ask first")
	}
	if !o.ShowQuitConfirm {
		t.Fatal("no confirmation dialog")
	}
	press(o, "n")
	if o.ShowQuitConfirm {
		t.Error("n did not dismiss the dialog")
	}

	press(o, "ctrl+c")
	if cmd := press(o, "y"); cmd == nil {
		t.Error("y should quit")
	}
}

func TestTapePauseKey(t *testing.T) {
	cmds, err := tape.ParseString("Open Projects\nOpen Essays")
	if err != nil {
		t.Fatal(err)
	}
	o := newDesktop(t)
	o.PlayTape("demo", cmds)

	press(o, "ctrl+p")
	if !o.Tape.Paused {
		t.Fatal("ctrl+p did not pause the tape")
	}
	if cmd := press(o, "ctrl+p"); cmd == nil || o.Tape.Paused {
		t.Error("second ctrl+p should resume playback")
	}
}
