package desktop

import "testing"

func TestDefaultGeometry(t *testing.T) {
	tests := []struct {
		name   string
		spec   Spec
		n      int
		sw, sh int
		want   Rect
	}{
		{
			name: "finder cascades",
			spec: Spec{Kind: KindFinder, Content: "projects"},
			n:    2, sw: 120, sh: 36,
			want: Rect{X: 23, Y: 8, Width: 90, Height: 28},
		},
		{
			name: "about is centred and taller",
			spec: Spec{Kind: KindFinder, Content: ContentAbout},
			n:    3, sw: 120, sh: 36,
			want: Rect{X: 15, Y: 2, Width: 90, Height: 32},
		},
		{
			name: "placeholder cascades from further in",
			spec: Spec{Kind: KindPortfolio, Content: ContentPlaceholder},
			n:    1, sw: 120, sh: 36,
			want: Rect{X: 24, Y: 8, Width: 60, Height: 20},
		},
		{
			name: "other kinds are smaller",
			spec: Spec{Kind: KindMail},
			n:    0, sw: 200, sh: 60,
			want: Rect{X: 15, Y: 4, Width: 60, Height: 20},
		},
		{
			name: "small screen keeps minimums",
			spec: Spec{Kind: KindSafari},
			n:    0, sw: 30, sh: 12,
			want: Rect{X: 15, Y: 4, Width: MinWidth, Height: MinHeight},
		},
		{
			name: "unknown screen uses defaults",
			spec: Spec{Kind: KindFinder},
			n:    0, sw: 0, sh: 0,
			want: Rect{X: 15, Y: 4, Width: 90, Height: 28},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaultGeometry(tt.spec, tt.n, tt.sw, tt.sh)
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestOpenAboutRecentres(t *testing.T) {
	s := newTestStore()
	s.SetScreen(100, 30)
	id := s.Open(Spec{Kind: KindFinder, Title: "About Me", Content: ContentAbout})
	s.Reposition(id, 0, 0)
	s.Resize(id, 25, 8)

	s.Open(Spec{Kind: KindFinder, Title: "About Me", Content: ContentAbout})
	w := mustWindow(t, s, id)
	want := defaultGeometry(Spec{Kind: KindFinder, Content: ContentAbout}, 1, 100, 30)
	if w.Bounds() != want {
		t.Errorf("expected about window reset to %+v, got %+v", want, w.Bounds())
	}
}

func TestOpenOtherKeepsGeometry(t *testing.T) {
	s := newTestStore()
	id := s.Open(Spec{Kind: KindFinder, Title: "Projects", Content: "projects"})
	s.Reposition(id, 3, 4)

	s.Open(Spec{Kind: KindFinder, Title: "Projects", Content: "projects"})
	if w := mustWindow(t, s, id); w.X != 3 || w.Y != 4 {
		t.Errorf("expected position kept, got %d,%d", w.X, w.Y)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 5, Width: 4, Height: 2}
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 5, true},
		{13, 6, true},
		{14, 5, false},
		{10, 7, false},
		{9, 5, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
