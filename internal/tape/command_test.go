package tape

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	src := `# a demo
Open Projects

move 10 4
Type "hello world"
Key ctrl+n
Sleep 500ms
Notify "Saved \"it\"" success
`
	cmds, err := ParseString(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []Command{
		{Type: CommandTypeOpen, Args: []string{"Projects"}, Line: 2},
		{Type: CommandTypeMove, Args: []string{"10", "4"}, Line: 4},
		{Type: CommandTypeType, Args: []string{"hello world"}, Line: 5},
		{Type: CommandTypeKey, Args: []string{"ctrl+n"}, Line: 6},
		{Type: CommandTypeSleep, Args: []string{"500ms"}, Line: 7},
		{Type: CommandTypeNotify, Args: []string{`Saved "it"`, "success"}, Line: 8},
	}
	if len(cmds) != len(want) {
		t.Fatalf("got %d commands, want %d: %v", len(cmds), len(want), cmds)
	}
	for i, w := range want {
		got := cmds[i]
		if got.Type != w.Type || got.Line != w.Line || strings.Join(got.Args, "|") != strings.Join(w.Args, "|") {
			t.Errorf("command %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"unknown command", "Frobnicate", "unknown command"},
		{"too few args", "Move 1", "Move takes 2 arguments, got 1"},
		{"too many args", "Enter now", "Enter takes no arguments"},
		{"not a number", "Resize wide 10", "is not a number"},
		{"bad duration", "Sleep soon", "invalid duration"},
		{"bad key", "Key hyper+x", "unknown modifier"},
		{"unterminated string", `Type "oops`, "unterminated string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.src)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), "line 1") {
				t.Errorf("error = %q, want a line number", err)
			}
		})
	}
}

func TestParseCollectsAllErrors(t *testing.T) {
	_, err := ParseString("Bogus\nOpen Mail\nMove x y\n")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error is %T, want *ParseError", err)
	}
	if len(perr.Errors) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(perr.Errors), perr.Errors)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.tape")
	if err := os.WriteFile(path, []byte("Open About\nMaximize\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cmds, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(cmds) != 2 {
		t.Errorf("got %d commands, want 2", len(cmds))
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.tape")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestCommandDuration(t *testing.T) {
	tests := []struct {
		arg  string
		want time.Duration
	}{
		{"250", 250 * time.Millisecond},
		{"2s", 2 * time.Second},
		{"1m30s", 90 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := Command{Type: CommandTypeSleep, Args: []string{tt.arg}}.Duration()
			if err != nil {
				t.Fatalf("Duration: %v", err)
			}
			if got != tt.want {
				t.Errorf("Duration = %v, want %v", got, tt.want)
			}
		})
	}

	if d, _ := (Command{Type: CommandTypeOpen, Args: []string{"5s"}}).Duration(); d != 0 {
		t.Errorf("non-sleep duration = %v, want 0", d)
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Command{Type: CommandTypeEnter}, "Enter"},
		{Command{Type: CommandTypeMove, Args: []string{"1", "2"}}, "Move 1 2"},
		{Command{Type: CommandTypeType, Args: []string{"hi there"}}, `Type "hi there"`},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
