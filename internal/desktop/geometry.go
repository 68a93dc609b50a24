package desktop

// Screen defaults used before the first resize event arrives.
const (
	DefaultScreenWidth  = 120
	DefaultScreenHeight = 36
)

// Minimum window size in cells.
const (
	MinWidth  = 20
	MinHeight = 6
)

// defaultGeometry places a new window. n is the number of windows already in
// the store and drives the cascade offset.
func defaultGeometry(spec Spec, n, sw, sh int) Rect {
	if sw <= 0 {
		sw = DefaultScreenWidth
	}
	if sh <= 0 {
		sh = DefaultScreenHeight
	}

	about := spec.Content == ContentAbout

	var r Rect
	if spec.Kind == KindFinder {
		r.Width = min(90, sw-10)
		if about {
			r.Height = min(40, sh-4)
		} else {
			r.Height = min(28, sh-8)
		}
	} else {
		r.Width = min(60, sw-20)
		r.Height = min(20, sh-10)
	}
	r.Width = max(r.Width, MinWidth)
	r.Height = max(r.Height, MinHeight)

	switch {
	case about:
		r.X = max(0, (sw-r.Width)/2)
		r.Y = max(1, (sh-r.Height)/2)
	case spec.Content == ContentPlaceholder:
		r.X = 20 + n*4
		r.Y = 6 + n*2
	default:
		r.X = 15 + n*4
		r.Y = 4 + n*2
	}
	return r
}
