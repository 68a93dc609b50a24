package desktop

import (
	"sort"

	"github.com/google/uuid"
)

// Store is the authoritative collection of windows.
//
// It is not safe for concurrent use; every session owns its own Store and
// drives it from a single goroutine.
type Store struct {
	windows   []*Window
	focusedID string
	nextZ     int

	screenWidth  int
	screenHeight int

	newID func() string
}

// NewStore returns an empty store sized for the default screen.
func NewStore() *Store {
	return &Store{
		nextZ:        1,
		screenWidth:  DefaultScreenWidth,
		screenHeight: DefaultScreenHeight,
		newID:        func() string { return uuid.New().String() },
	}
}

// SetScreen records the screen size used to place new windows.
func (s *Store) SetScreen(width, height int) {
	if width > 0 {
		s.screenWidth = width
	}
	if height > 0 {
		s.screenHeight = height
	}
}

// Screen returns the recorded screen size.
func (s *Store) Screen() (width, height int) {
	return s.screenWidth, s.screenHeight
}

func (s *Store) find(id string) *Window {
	for _, w := range s.windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (s *Store) raise(w *Window) {
	w.Z = s.nextZ
	s.nextZ++
	s.focusedID = w.ID
}

// Open opens the window described by spec and returns its id. If a window of
// the same kind already shows the same content (or, failing that, has the same
// title) it is restored and raised instead.
func (s *Store) Open(spec Spec) string {
	for _, w := range s.windows {
		if !w.matches(spec) {
			continue
		}
		w.Minimized = false
		w.Open = true
		if spec.Content == ContentAbout {
			r := defaultGeometry(spec, len(s.windows), s.screenWidth, s.screenHeight)
			w.X, w.Y, w.Width, w.Height = r.X, r.Y, r.Width, r.Height
		}
		s.raise(w)
		return w.ID
	}

	r := defaultGeometry(spec, len(s.windows), s.screenWidth, s.screenHeight)
	w := &Window{
		ID:      string(spec.Kind) + "-" + s.newID(),
		Kind:    spec.Kind,
		Title:   spec.Title,
		Content: spec.Content,
		Open:    true,
		X:       r.X,
		Y:       r.Y,
		Width:   r.Width,
		Height:  r.Height,
	}
	s.windows = append(s.windows, w)
	s.raise(w)
	return w.ID
}

// Close removes the window. Focus is cleared if it was focused.
func (s *Store) Close(id string) {
	for i, w := range s.windows {
		if w.ID != id {
			continue
		}
		s.windows = append(s.windows[:i], s.windows[i+1:]...)
		if s.focusedID == id {
			s.focusedID = ""
		}
		return
	}
}

// Minimize hides the window without removing it.
func (s *Store) Minimize(id string) {
	if w := s.find(id); w != nil {
		w.Minimized = true
	}
}

// Maximize marks the window as filling the desktop.
func (s *Store) Maximize(id string) {
	if w := s.find(id); w != nil {
		w.Maximized = true
	}
}

// Restore clears the minimized and maximized flags.
func (s *Store) Restore(id string) {
	if w := s.find(id); w != nil {
		w.Minimized = false
		w.Maximized = false
	}
}

// Focus raises the window above all others and makes it the focused window.
func (s *Store) Focus(id string) {
	if w := s.find(id); w != nil {
		s.raise(w)
	}
}

// Reposition moves the window. No clamping is applied.
func (s *Store) Reposition(id string, x, y int) {
	if w := s.find(id); w != nil {
		w.X, w.Y = x, y
	}
}

// Resize sets the window size. No clamping is applied.
func (s *Store) Resize(id string, width, height int) {
	if w := s.find(id); w != nil {
		w.Width, w.Height = width, height
	}
}

// FocusedID returns the focused window id, or "" when nothing is focused.
func (s *Store) FocusedID() string {
	return s.focusedID
}

// Len returns the number of windows in the store.
func (s *Store) Len() int {
	return len(s.windows)
}

// Window returns a copy of the window with the given id.
func (s *Store) Window(id string) (Window, bool) {
	if w := s.find(id); w != nil {
		return w.clone(), true
	}
	return Window{}, false
}

// Windows returns copies of all windows in creation order.
func (s *Store) Windows() []Window {
	out := make([]Window, 0, len(s.windows))
	for _, w := range s.windows {
		out = append(out, w.clone())
	}
	return out
}

// Stacked returns copies of all windows ordered bottom to top.
func (s *Store) Stacked() []Window {
	out := s.Windows()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// Snapshot is a read-only view of the store.
type Snapshot struct {
	Windows   []Window `yaml:"windows"`
	FocusedID string   `yaml:"focused_id"`
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{Windows: s.Windows(), FocusedID: s.focusedID}
}

// Topmost returns the visible window with the highest z value.
func (s *Store) Topmost() (Window, bool) {
	var top *Window
	for _, w := range s.windows {
		if w.Minimized || !w.Open {
			continue
		}
		if top == nil || w.Z > top.Z {
			top = w
		}
	}
	if top == nil {
		return Window{}, false
	}
	return top.clone(), true
}
