package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/desktop"
	"github.com/Gaurav-Gosain/folio/internal/tape"
)

func mustParse(t *testing.T, src string) []tape.Command {
	t.Helper()
	cmds, err := tape.ParseString(src)
	if err != nil {
		t.Fatalf("parse tape: %v", err)
	}
	return cmds
}

func TestRunTape(t *testing.T) {
	m, _ := newTestOS(t)
	script := `
Open Projects
Open Essays
Focus Projects
Move 0 0
Resize 50 14
Move 4 2
Minimize Essays
Maximize
`
	if err := m.RunTape(mustParse(t, script)); err != nil {
		t.Fatalf("RunTape: %v", err)
	}

	w, ok := m.FocusedWindow()
	if !ok || w.Title != "Projects" {
		t.Fatalf("focused = %+v, want Projects", w)
	}
	if w.X != 4 || w.Y != 2 || w.Width != 50 || w.Height != 14 {
		t.Errorf("geometry = %d,%d %dx%d, want 4,2 50x14", w.X, w.Y, w.Width, w.Height)
	}
	if !w.Maximized {
		t.Error("Projects not maximized")
	}
	essays := m.findWindowsByName("essays")
	if len(essays) != 1 || !essays[0].Minimized {
		t.Errorf("Essays = %+v, want one minimized window", essays)
	}

	if err := m.RunTape(mustParse(t, "Restore\nRestoreAll")); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if w, _ := m.Store.Window(essays[0].ID); w.Minimized {
		t.Error("Essays still minimized")
	}
}

func TestRunTapeCollectsErrors(t *testing.T) {
	m, _ := newTestOS(t)
	err := m.RunTape(mustParse(t, `Close
Open Spotify
Open "About Me"
Focus Nowhere`))
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"line 1", "line 2", "line 4"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
	if m.Store.Len() != 1 {
		t.Errorf("store has %d windows, want the one good open", m.Store.Len())
	}
}

func TestFindSingleWindowByName(t *testing.T) {
	m, _ := newTestOS(t)

	if _, err := m.findSingleWindowByName(""); err == nil {
		t.Error("empty name with no focus should fail")
	}

	a := m.OpenWindow(desktop.Spec{Kind: desktop.KindFinder, Title: "Dup"})
	b := m.OpenWindow(desktop.Spec{Kind: desktop.KindPortfolio, Title: "Dup"})

	if _, err := m.findSingleWindowByName("dup"); err == nil || !strings.Contains(err.Error(), "multiple") {
		t.Errorf("err = %v, want a multiple-match error", err)
	}
	w, err := m.findSingleWindowByName(a)
	if err != nil || w.ID != a {
		t.Errorf("by id = %q, %v; want %q", w.ID, err, a)
	}
	w, err = m.findSingleWindowByName("")
	if err != nil || w.ID != b {
		t.Errorf("focused = %q, %v; want %q", w.ID, err, b)
	}
	if _, err := m.findSingleWindowByName("nothing"); err == nil {
		t.Error("unknown name should fail")
	}
}

func TestSetModeRequiresWindow(t *testing.T) {
	m, _ := newTestOS(t)
	if err := m.SetMode("input"); err == nil {
		t.Error("input mode with no window should fail")
	}
	if _, err := m.OpenNamed("Mail"); err != nil {
		t.Fatal(err)
	}
	if err := m.SetMode("input"); err != nil || m.Mode != InputMode {
		t.Errorf("SetMode(input) = %v, mode %v", err, m.Mode)
	}
	if err := m.SetMode("desktop"); err != nil || m.Mode != DesktopMode {
		t.Errorf("SetMode(desktop) = %v, mode %v", err, m.Mode)
	}
	if err := m.SetMode("sideways"); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestSendKeyUsesInputHandler(t *testing.T) {
	saved := inputHandler
	t.Cleanup(func() { inputHandler = saved })

	var got []string
	SetInputHandler(func(msg tea.Msg, o *OS) (tea.Model, tea.Cmd) {
		if k, ok := msg.(tea.KeyPressMsg); ok {
			got = append(got, k.String())
		}
		return o, nil
	})

	m, _ := newTestOS(t)
	if err := m.RunTape(mustParse(t, `Type "hi"`+"\nKey ctrl+n\nEnter")); err != nil {
		t.Fatalf("RunTape: %v", err)
	}
	want := "h i ctrl+n enter"
	if strings.Join(got, " ") != want {
		t.Errorf("keys = %q, want %q", got, want)
	}
}

func TestConfigCommands(t *testing.T) {
	pos, border := config.DockbarPosition, config.BorderStyle
	t.Cleanup(func() { config.DockbarPosition, config.BorderStyle = pos, border })

	m, _ := newTestOS(t)
	if err := m.SetDockbarPosition("top"); err != nil {
		t.Fatalf("SetDockbarPosition: %v", err)
	}
	if m.GetTopMargin() != config.MenuBarHeight+config.DockHeight {
		t.Errorf("top margin = %d with the dock on top", m.GetTopMargin())
	}
	if err := m.SetDockbarPosition("left"); err == nil {
		t.Error("invalid dock position accepted")
	}
	if err := m.SetBorderStyle("double"); err != nil || config.BorderStyle != "double" {
		t.Errorf("SetBorderStyle = %v, style %q", err, config.BorderStyle)
	}
	if err := m.SetBorderStyle("wavy"); err == nil {
		t.Error("invalid border style accepted")
	}
	if err := m.ShowNotificationCmd("hi", "loud"); err == nil {
		t.Error("invalid notification type accepted")
	}
}

func TestTapePlayback(t *testing.T) {
	m, clock := newTestOS(t)

	if cmd := m.PlayTape("demo", mustParse(t, "Open Projects\nSleep 10ms\nClose Nobody\nOpen Essays")); cmd == nil {
		t.Fatal("PlayTape returned no command")
	}
	p := m.Tape

	m.handleTapeStep(TapeStepMsg{Seq: 0})
	if p.Next != 1 || m.Store.Len() != 1 {
		t.Fatalf("after one step: next %d, %d windows", p.Next, m.Store.Len())
	}

	m.ToggleTapePause()
	if !p.Paused {
		t.Fatal("tape not paused")
	}
	// a step scheduled before the pause is dropped
	m.handleTapeStep(TapeStepMsg{Seq: 0})
	if p.Next != 1 {
		t.Errorf("paused tape advanced to %d", p.Next)
	}

	if cmd := m.ToggleTapePause(); cmd == nil || p.Paused {
		t.Fatal("resume should schedule the next step")
	}
	m.handleTapeStep(TapeStepMsg{Seq: 0})
	if p.Next != 1 {
		t.Error("stale step ran after resume")
	}

	for !p.Done() {
		m.handleTapeStep(TapeStepMsg{Seq: p.seq})
	}
	if p.Errors != 1 {
		t.Errorf("Errors = %d, want 1", p.Errors)
	}
	if m.Store.Len() != 2 {
		t.Errorf("store has %d windows, want 2", m.Store.Len())
	}
	if !p.Finished.Equal(clock.t) {
		t.Errorf("Finished = %v, want %v", p.Finished, clock.t)
	}
	if p.Progress() != 100 {
		t.Errorf("Progress = %d, want 100", p.Progress())
	}

	// pausing a finished tape does nothing
	if cmd := m.ToggleTapePause(); cmd != nil || p.Paused {
		t.Error("finished tape toggled pause")
	}

	m.handleTapeStep(TapeStepMsg{Seq: tapeClearSeq})
	if m.Tape != nil {
		t.Error("finished tape not cleared")
	}
}

func TestPlayTapeMsg(t *testing.T) {
	m, _ := newTestOS(t)
	_, cmd := m.Update(PlayTapeMsg{Name: "demo", Commands: mustParse(t, "Open Mail")})
	if cmd == nil || m.Tape == nil || m.Tape.Name != "demo" {
		t.Fatalf("tape not started: %+v", m.Tape)
	}
	if _, ok := cmd().(TapeStepMsg); !ok {
		t.Error("first step is not scheduled immediately")
	}
}
