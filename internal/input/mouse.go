package input

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/folio/internal/app"
	"github.com/Gaurav-Gosain/folio/internal/config"
)

// handleMouseClick hit-tests the rendered layers and acts on the top-most
// element under the pointer.
func handleMouseClick(msg tea.MouseClickMsg, o *app.OS) (*app.OS, tea.Cmd) {
	mouse := msg.Mouse()
	X, Y := mouse.X, mouse.Y

	hit := o.Hit(X, Y)
	id := hit.ID()
	action, target, _ := app.ParseHitID(id)

	// Modal dialog swallows everything else
	if o.ShowQuitConfirm {
		switch id {
		case "quit:yes":
			o.Cleanup()
			return o, tea.Quit
		case "quit:no":
			o.ShowQuitConfirm = false
		}
		return o, nil
	}

	if o.Launcher.Visible {
		switch {
		case action == "launch":
			if i, err := strconv.Atoi(target); err == nil {
				o.LaunchAt(i)
			}
		case id == "launcher":
		default:
			o.Launcher.Hide()
		}
		return o, nil
	}

	if o.ShowHelp && id != "help" {
		o.ShowHelp = false
		return o, nil
	}
	if o.ShowLogs && id != "logs" {
		o.ShowLogs = false
		return o, nil
	}

	switch action {
	case "notif":
		o.DismissNotification(target)
	case "icon":
		if n, err := strconv.Atoi(target); err == nil {
			o.OpenIcon(n)
		}
	case "dock":
		if i, err := strconv.Atoi(target); err == nil && i >= 0 && i < len(o.Content.Dock) {
			o.LaunchApp(o.Content.Dock[i])
		}
	case "min":
		o.RestoreWindow(target)
	case "trash":
		o.OpenTrash()
	case "menu":
		switch target {
		case "logo":
			o.OpenAbout()
		case "help":
			o.ToggleHelp()
		}
	case "window":
		return handleWindowClick(mouse, o, target, hit.Bounds().Min.X, hit.Bounds().Min.Y)
	case "", "desktop", "menubar", "narrow", "help", "logs", "tape":
		// Clicking empty desktop drops back to window management
		if action == "desktop" && o.Mode == app.InputMode {
			o.ExitInputMode()
		}
	default:
		// Panel hotspot inside a window
		if target != o.Store.FocusedID() && o.Mode == app.InputMode {
			o.ExitInputMode()
		}
		return o, o.ActivateHotspot(id)
	}
	return o, nil
}

// handleWindowClick handles a click on a window frame: the title bar
// buttons, the resize corner, or a drag start.
func handleWindowClick(mouse tea.Mouse, o *app.OS, windowID string, left, top int) (*app.OS, tea.Cmd) {
	w, ok := o.Store.Window(windowID)
	if !ok {
		return o, nil
	}
	r := o.WindowRect(w)
	right := r.X + r.Width
	bottom := r.Y + r.Height
	X, Y := mouse.X, mouse.Y

	if Y == top && mouse.Button == tea.MouseLeft && !config.HideWindowButtons {
		switch rel := X - right; {
		case rel >= config.MinimizeButtonLeft && rel <= config.MinimizeButtonRight:
			o.MinimizeWindow(w.ID)
			return o, nil
		case rel >= config.MaximizeButtonLeft && rel <= config.MaximizeButtonRight:
			o.ToggleMaximize(w.ID)
			return o, nil
		case rel >= config.CloseButtonLeft && rel <= config.CloseButtonRight:
			o.CloseWindow(w.ID)
			return o, nil
		}
	}

	o.FocusWindow(w.ID)
	if w.Maximized {
		return o, nil
	}

	corner := X == right-1 && Y == bottom-1
	switch {
	case corner || mouse.Button == tea.MouseRight:
		o.Drag = app.DragState{
			Kind:     app.DragResize,
			WindowID: w.ID,
			StartX:   X,
			StartY:   Y,
			StartW:   w.Width,
			StartH:   w.Height,
		}
	case Y == top && mouse.Button == tea.MouseLeft:
		o.Drag = app.DragState{
			Kind:     app.DragMove,
			WindowID: w.ID,
			OffsetX:  X - left,
			OffsetY:  Y - top,
			StartX:   X,
			StartY:   Y,
		}
	}
	return o, nil
}

// handleMouseMotion moves or resizes the window being dragged.
func handleMouseMotion(msg tea.MouseMotionMsg, o *app.OS) (*app.OS, tea.Cmd) {
	mouse := msg.Mouse()
	switch o.Drag.Kind {
	case app.DragMove:
		o.MoveWindow(o.Drag.WindowID, mouse.X-o.Drag.OffsetX, mouse.Y-o.Drag.OffsetY-o.GetTopMargin())
	case app.DragResize:
		dx := mouse.X - o.Drag.StartX
		dy := mouse.Y - o.Drag.StartY
		o.ResizeWindow(o.Drag.WindowID, o.Drag.StartW+dx, o.Drag.StartH+dy)
	}
	return o, nil
}

// handleMouseRelease ends any drag in progress.
func handleMouseRelease(_ tea.MouseReleaseMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if o.Drag.Kind != app.NoDrag {
		if w, ok := o.Store.Window(o.Drag.WindowID); ok {
			o.LogInfo("%s", app.WindowSummary(w))
		}
	}
	o.Drag = app.DragState{}
	return o, nil
}

// handleMouseWheel scrolls the overlay or window under the pointer.
func handleMouseWheel(msg tea.MouseWheelMsg, o *app.OS) (*app.OS, tea.Cmd) {
	mouse := msg.Mouse()
	delta := 0
	switch mouse.Button {
	case tea.MouseWheelUp:
		delta = -1
	case tea.MouseWheelDown:
		delta = 1
	default:
		return o, nil
	}

	switch {
	case o.ShowLogs:
		o.ScrollLogs(delta)
		return o, nil
	case o.ShowHelp:
		o.ScrollHelp(delta)
		return o, nil
	case o.Launcher.Visible || o.ShowQuitConfirm:
		return o, nil
	}

	if windowID := windowAt(o, mouse.X, mouse.Y); windowID != "" {
		o.ScrollPanel(windowID, delta)
	}
	return o, nil
}

// windowAt returns the id of the window under a point, looking through
// panel hotspots to the frame they belong to.
func windowAt(o *app.OS, x, y int) string {
	action, target, _ := app.ParseHitID(o.Hit(x, y).ID())
	switch action {
	case "", "desktop", "menubar", "dock", "icon", "min", "trash", "menu", "notif", "narrow", "tape":
		return ""
	}
	if _, ok := o.Store.Window(target); !ok {
		return ""
	}
	return target
}
