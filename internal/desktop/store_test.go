package desktop

import (
	"fmt"
	"testing"
)

func newTestStore() *Store {
	s := NewStore()
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
	return s
}

func mustWindow(t *testing.T, s *Store, id string) Window {
	t.Helper()
	w, ok := s.Window(id)
	if !ok {
		t.Fatalf("window %q not found", id)
	}
	return w
}

func TestOpenCreatesFocusedWindow(t *testing.T) {
	s := newTestStore()
	id := s.Open(Spec{Kind: KindFinder, Title: "Projects", Content: "projects"})

	w := mustWindow(t, s, id)
	if !w.Open || w.Minimized || w.Maximized {
		t.Errorf("unexpected flags: open=%v minimized=%v maximized=%v", w.Open, w.Minimized, w.Maximized)
	}
	if w.Z != 1 {
		t.Errorf("expected first window at z=1, got %d", w.Z)
	}
	if s.FocusedID() != id {
		t.Errorf("expected %q focused, got %q", id, s.FocusedID())
	}
	if len(w.Tabs) != 0 || w.ActiveTabID != "" {
		t.Errorf("expected no tabs, got %v active=%q", w.Tabs, w.ActiveTabID)
	}
}

func TestOpenDistinctPairsCount(t *testing.T) {
	specs := []Spec{
		{Kind: KindFinder, Title: "About Me", Content: "about"},
		{Kind: KindFinder, Title: "Projects", Content: "projects"},
		{Kind: KindFinder, Title: "Projects again", Content: "projects"},
		{Kind: KindSafari, Title: "Safari", Content: "browser"},
		{Kind: KindFinder, Title: "About Me", Content: "about"},
		{Kind: KindMail, Title: "Mail", Content: "mail"},
		{Kind: KindSafari, Title: "Safari", Content: "browser"},
	}
	s := newTestStore()
	for _, spec := range specs {
		s.Open(spec)
	}
	if s.Len() != 4 {
		t.Errorf("expected 4 windows, got %d", s.Len())
	}
}

func TestOpenDuplicateMatching(t *testing.T) {
	tests := []struct {
		name   string
		first  Spec
		second Spec
		same   bool
	}{
		{
			name:   "same kind and content",
			first:  Spec{Kind: KindSafari, Title: "A", Content: "home"},
			second: Spec{Kind: KindSafari, Title: "B", Content: "home"},
			same:   true,
		},
		{
			name:   "same title different content",
			first:  Spec{Kind: KindFinder, Title: "Docs", Content: "a"},
			second: Spec{Kind: KindFinder, Title: "Docs", Content: "b"},
			same:   true,
		},
		{
			name:   "no content different titles",
			first:  Spec{Kind: KindPortfolio, Title: "One"},
			second: Spec{Kind: KindPortfolio, Title: "Two"},
			same:   false,
		},
		{
			name:   "different kind same content",
			first:  Spec{Kind: KindFinder, Title: "X", Content: "x"},
			second: Spec{Kind: KindPortfolio, Title: "X", Content: "x"},
			same:   false,
		},
		{
			name:   "empty content does not match empty content",
			first:  Spec{Kind: KindMail, Title: "Draft 1"},
			second: Spec{Kind: KindMail, Title: "Draft 2"},
			same:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			a := s.Open(tt.first)
			b := s.Open(tt.second)
			if (a == b) != tt.same {
				t.Errorf("expected same=%v, got ids %q and %q", tt.same, a, b)
			}
		})
	}
}

func TestOpenDuplicateFocusesAndRaises(t *testing.T) {
	s := newTestStore()
	a := s.Open(Spec{Kind: KindSafari, Title: "Safari", Content: "home"})
	b := s.Open(Spec{Kind: KindMail, Title: "Mail", Content: "mail"})

	again := s.Open(Spec{Kind: KindSafari, Title: "Safari", Content: "home"})
	if again != a {
		t.Fatalf("expected existing window %q, got %q", a, again)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 windows, got %d", s.Len())
	}
	if s.FocusedID() != a {
		t.Errorf("expected %q focused, got %q", a, s.FocusedID())
	}
	if wa, wb := mustWindow(t, s, a), mustWindow(t, s, b); wa.Z <= wb.Z {
		t.Errorf("expected reopened window on top: z=%d vs %d", wa.Z, wb.Z)
	}
}

func TestOpenRestoresMinimized(t *testing.T) {
	s := newTestStore()
	id := s.Open(Spec{Kind: KindFinder, Title: "Essays", Content: "essays"})
	s.Maximize(id)
	s.Minimize(id)
	other := s.Open(Spec{Kind: KindMail, Title: "Mail"})
	if s.FocusedID() != other {
		t.Fatalf("expected mail focused")
	}

	s.Open(Spec{Kind: KindFinder, Title: "Essays", Content: "essays"})
	w := mustWindow(t, s, id)
	if w.Minimized {
		t.Error("expected window to be unminimized")
	}
	if !w.Maximized {
		t.Error("reopening should leave maximized untouched")
	}
	if s.FocusedID() != id {
		t.Errorf("expected %q focused, got %q", id, s.FocusedID())
	}
}

func TestCloseClearsFocus(t *testing.T) {
	s := newTestStore()
	a := s.Open(Spec{Kind: KindFinder, Title: "A", Content: "a"})
	b := s.Open(Spec{Kind: KindFinder, Title: "B", Content: "b"})

	s.Close(a)
	if s.FocusedID() != b {
		t.Errorf("closing an unfocused window changed focus to %q", s.FocusedID())
	}

	s.Close(b)
	if s.FocusedID() != "" {
		t.Errorf("expected focus cleared, got %q", s.FocusedID())
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}

func TestCloseDoesNotAutoFocus(t *testing.T) {
	s := newTestStore()
	s.Open(Spec{Kind: KindFinder, Title: "A", Content: "a"})
	b := s.Open(Spec{Kind: KindFinder, Title: "B", Content: "b"})
	s.Close(b)
	if s.FocusedID() != "" {
		t.Errorf("expected no focus after closing focused window, got %q", s.FocusedID())
	}
}

func TestOperationsOnClosedIDAreNoOps(t *testing.T) {
	s := newTestStore()
	id := s.Open(Spec{Kind: KindSafari, Title: "Safari", Content: "browser"})
	keep := s.Open(Spec{Kind: KindMail, Title: "Mail"})
	s.Close(id)
	before := s.Snapshot()

	ops := map[string]func(){
		"close":      func() { s.Close(id) },
		"minimize":   func() { s.Minimize(id) },
		"maximize":   func() { s.Maximize(id) },
		"restore":    func() { s.Restore(id) },
		"focus":      func() { s.Focus(id) },
		"reposition": func() { s.Reposition(id, 1, 2) },
		"resize":     func() { s.Resize(id, 30, 10) },
		"open tab":   func() { s.OpenOrFocusTab(id, "t", "c") },
		"close tab":  func() { s.CloseTab(id, "t") },
		"set tab":    func() { s.SetActiveTab(id, "t") },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			op()
			after := s.Snapshot()
			if after.FocusedID != before.FocusedID || len(after.Windows) != len(before.Windows) {
				t.Errorf("state changed: %+v -> %+v", before, after)
			}
			w := mustWindow(t, s, keep)
			if w.Z != before.Windows[0].Z {
				t.Errorf("remaining window z changed to %d", w.Z)
			}
		})
	}
}

func TestMinimizeMaximizeRestore(t *testing.T) {
	s := newTestStore()
	id := s.Open(Spec{Kind: KindPortfolio, Title: "Venture", Content: "venture"})

	s.Minimize(id)
	if w := mustWindow(t, s, id); !w.Minimized {
		t.Error("expected minimized")
	}
	s.Restore(id)
	if w := mustWindow(t, s, id); w.Minimized {
		t.Error("expected restore to clear minimized")
	}

	s.Maximize(id)
	s.Minimize(id)
	w := mustWindow(t, s, id)
	if !w.Maximized || !w.Minimized {
		t.Errorf("maximize and minimize should be independent: %+v", w)
	}
	s.Restore(id)
	w = mustWindow(t, s, id)
	if w.Maximized || w.Minimized {
		t.Errorf("expected both flags cleared: %+v", w)
	}
}

func TestFocusRaisesAboveAll(t *testing.T) {
	s := newTestStore()
	var ids []string
	for i := range 5 {
		ids = append(ids, s.Open(Spec{Kind: KindFinder, Title: fmt.Sprint(i), Content: fmt.Sprint(i)}))
	}

	for _, target := range []string{ids[0], ids[3], ids[0], ids[4]} {
		s.Focus(target)
		top := mustWindow(t, s, target)
		for _, w := range s.Windows() {
			if w.ID != target && w.Z >= top.Z {
				t.Errorf("window %q z=%d not below focused z=%d", w.ID, w.Z, top.Z)
			}
		}
		if s.FocusedID() != target {
			t.Errorf("expected %q focused, got %q", target, s.FocusedID())
		}
	}
}

func TestStackedOrder(t *testing.T) {
	s := newTestStore()
	a := s.Open(Spec{Kind: KindFinder, Title: "A", Content: "a"})
	b := s.Open(Spec{Kind: KindFinder, Title: "B", Content: "b"})
	c := s.Open(Spec{Kind: KindFinder, Title: "C", Content: "c"})
	s.Focus(a)

	got := s.Stacked()
	want := []string{b, c, a}
	for i, w := range got {
		if w.ID != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], w.ID)
		}
	}

	top, ok := s.Topmost()
	if !ok || top.ID != a {
		t.Errorf("expected topmost %q, got %q", a, top.ID)
	}
	s.Minimize(a)
	if top, _ := s.Topmost(); top.ID != c {
		t.Errorf("expected topmost to skip minimized, got %q", top.ID)
	}
}

func TestRepositionResizeOverwrite(t *testing.T) {
	s := newTestStore()
	id := s.Open(Spec{Kind: KindMail, Title: "Mail"})
	s.Reposition(id, -5, 200)
	s.Resize(id, 3, 1)

	w := mustWindow(t, s, id)
	if w.X != -5 || w.Y != 200 || w.Width != 3 || w.Height != 1 {
		t.Errorf("expected geometry to be overwritten verbatim, got %+v", w.Bounds())
	}
}

func TestWindowsReturnsCopies(t *testing.T) {
	s := newTestStore()
	id := s.Open(Spec{Kind: KindSafari, Title: "Safari", Content: "browser"})
	s.OpenOrFocusTab(id, "New Tab", "https://www.google.com")

	ws := s.Windows()
	ws[0].Title = "changed"
	ws[0].Tabs[0].Title = "changed"

	w := mustWindow(t, s, id)
	if w.Title != "Safari" || w.Tabs[0].Title == "changed" {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestScenarioMinimizeRestore(t *testing.T) {
	s := newTestStore()
	b := s.Open(Spec{Kind: KindFinder, Title: "B", Content: "b"})
	s.Minimize(b)
	s.Restore(b)
	if mustWindow(t, s, b).Minimized {
		t.Error("expected B restored")
	}
}

func TestIDsUnique(t *testing.T) {
	s := NewStore()
	seen := map[string]bool{}
	for i := range 50 {
		id := s.Open(Spec{Kind: KindPortfolio, Title: fmt.Sprintf("w%d", i)})
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		if i%3 == 0 {
			s.Close(id)
		}
	}
}
