package tape

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

// recorder logs every call it receives.
type recorder struct {
	calls []string
	keys  []tea.KeyPressMsg
	fail  error
}

func (r *recorder) record(format string, args ...any) error {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
	return r.fail
}

func (r *recorder) OpenByName(name string) error           { return r.record("open %s", name) }
func (r *recorder) CloseWindowByName(name string) error    { return r.record("close %s", name) }
func (r *recorder) FocusWindowByName(name string) error    { return r.record("focus %s", name) }
func (r *recorder) MinimizeWindowByName(name string) error { return r.record("minimize %s", name) }
func (r *recorder) RestoreWindowByName(name string) error  { return r.record("restore %s", name) }
func (r *recorder) RestoreAllWindows()                     { _ = r.record("restore-all") }
func (r *recorder) MaximizeWindowByName(name string) error { return r.record("maximize %s", name) }
func (r *recorder) MoveFocused(x, y int) error             { return r.record("move %d %d", x, y) }
func (r *recorder) ResizeFocused(w, h int) error           { return r.record("resize %d %d", w, h) }
func (r *recorder) CycleWindow(delta int)                  { _ = r.record("cycle-window %d", delta) }
func (r *recorder) CycleFocusedTab(delta int)              { _ = r.record("cycle-tab %d", delta) }
func (r *recorder) SetMode(mode string) error              { return r.record("mode %s", mode) }
func (r *recorder) ToggleLauncher()                        { _ = r.record("launcher") }
func (r *recorder) ToggleHelp()                            { _ = r.record("help") }
func (r *recorder) ToggleLogs()                            { _ = r.record("logs") }
func (r *recorder) SetDockbarPosition(p string) error      { return r.record("dock %s", p) }
func (r *recorder) SetBorderStyle(s string) error          { return r.record("border %s", s) }
func (r *recorder) SetTheme(name string) error             { return r.record("theme %s", name) }

func (r *recorder) SendKey(msg tea.KeyPressMsg) tea.Cmd {
	r.keys = append(r.keys, msg)
	return nil
}

func (r *recorder) ShowNotificationCmd(message, kind string) error {
	return r.record("notify %s %s", message, kind)
}

func TestExecute(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"Open Mail", "open Mail"},
		{"Close", "close "},
		{"Close Projects", "close Projects"},
		{"Focus About", "focus About"},
		{"Minimize", "minimize "},
		{"Restore", "restore "},
		{"RestoreAll", "restore-all"},
		{"Maximize About", "maximize About"},
		{"Move 4 2", "move 4 2"},
		{"Resize 60 20", "resize 60 20"},
		{"NextWindow", "cycle-window 1"},
		{"PrevWindow", "cycle-window -1"},
		{"NextTab", "cycle-tab 1"},
		{"PrevTab", "cycle-tab -1"},
		{"InputMode", "mode input"},
		{"DesktopMode", "mode desktop"},
		{"Launcher", "launcher"},
		{"Help", "help"},
		{"Logs", "logs"},
		{`Notify "hi there"`, "notify hi there info"},
		{"Notify done success", "notify done success"},
		{"SetDockbarPosition top", "dock top"},
		{"SetBorderStyle thick", "border thick"},
		{"SetTheme nord", "theme nord"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			cmds, err := ParseString(tt.src)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			r := &recorder{}
			if _, err := NewCommandExecutor(r).Execute(&cmds[0]); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if len(r.calls) != 1 || r.calls[0] != tt.want {
				t.Errorf("calls = %q, want [%q]", r.calls, tt.want)
			}
		})
	}
}

func TestExecuteReturnsExecutorError(t *testing.T) {
	r := &recorder{fail: errors.New("no window found")}
	cmds, _ := ParseString("Focus Nowhere")
	_, err := NewCommandExecutor(r).Execute(&cmds[0])
	if err == nil || !strings.Contains(err.Error(), "no window found") {
		t.Errorf("err = %v, want the executor's error", err)
	}
}

func TestExecuteSleepDoesNothing(t *testing.T) {
	r := &recorder{}
	cmds, _ := ParseString("Sleep 5s")
	if _, err := NewCommandExecutor(r).Execute(&cmds[0]); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(r.calls) != 0 || len(r.keys) != 0 {
		t.Errorf("sleep reached the executor: %q %v", r.calls, r.keys)
	}
}

func TestExecuteKeys(t *testing.T) {
	tests := []struct {
		src  string
		want []tea.KeyPressMsg
	}{
		{`Type "a b"`, []tea.KeyPressMsg{
			{Code: 'a', Text: "a"},
			{Code: tea.KeySpace, Text: " "},
			{Code: 'b', Text: "b"},
		}},
		{"Enter", []tea.KeyPressMsg{{Code: tea.KeyEnter}}},
		{"Tab", []tea.KeyPressMsg{{Code: tea.KeyTab}}},
		{"Escape", []tea.KeyPressMsg{{Code: tea.KeyEscape}}},
		{"Backspace", []tea.KeyPressMsg{{Code: tea.KeyBackspace}}},
		{"Space", []tea.KeyPressMsg{{Code: tea.KeySpace, Text: " "}}},
		{"Key ctrl+n", []tea.KeyPressMsg{{Code: 'n', Mod: tea.ModCtrl}}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			cmds, err := ParseString(tt.src)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			r := &recorder{}
			if _, err := NewCommandExecutor(r).Execute(&cmds[0]); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if len(r.keys) != len(tt.want) {
				t.Fatalf("got %d keys, want %d", len(r.keys), len(tt.want))
			}
			for i, k := range tt.want {
				got := r.keys[i]
				if got.Code != k.Code || got.Mod != k.Mod || got.Text != k.Text {
					t.Errorf("key %d = %+v, want %+v", i, got, k)
				}
			}
		})
	}
}

func TestKeyPress(t *testing.T) {
	tests := []struct {
		combo   string
		code    rune
		mod     tea.KeyMod
		text    string
		wantErr bool
	}{
		{combo: "q", code: 'q', text: "q"},
		{combo: "Enter", code: tea.KeyEnter},
		{combo: "ctrl+n", code: 'n', mod: tea.ModCtrl},
		{combo: "Ctrl+Shift+Tab", code: tea.KeyTab, mod: tea.ModCtrl | tea.ModShift},
		{combo: "alt+1", code: '1', mod: tea.ModAlt},
		{combo: "opt+left", code: tea.KeyLeft, mod: tea.ModAlt},
		{combo: "f5", code: tea.KeyF5},
		{combo: "shift+F12", code: tea.KeyF12, mod: tea.ModShift},
		{combo: "ctrl++", code: '+', mod: tea.ModCtrl},
		{combo: "space", code: tea.KeySpace, text: " "},
		{combo: "hyper+a", wantErr: true},
		{combo: "ctrl+", wantErr: true},
		{combo: "banana", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			got, err := KeyPress(tt.combo)
			if tt.wantErr {
				if err == nil {
					t.Errorf("KeyPress(%q) = %+v, want an error", tt.combo, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("KeyPress(%q): %v", tt.combo, err)
			}
			if got.Code != tt.code || got.Mod != tt.mod || got.Text != tt.text {
				t.Errorf("KeyPress(%q) = %+v, want code %q mod %v text %q", tt.combo, got, tt.code, tt.mod, tt.text)
			}
		})
	}
}
