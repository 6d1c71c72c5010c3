// Package host binds the pure transform state machine to the overlay's X11
// window: it converts pointer events, feeds the transform and applies the
// commands it returns.
package host

import (
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/subcover/internal/settings"
	"github.com/1broseidon/subcover/internal/transform"
	"github.com/1broseidon/subcover/internal/x11"
)

// Window is the part of the overlay surface the binding drives.
type Window interface {
	Window() xproto.Window
	Position() (x, y int)
	MoveResize(x, y, w, h int)
	SetCursor(c xproto.Cursor)
	Render(s settings.Settings) error
	Raise()
}

// Screen answers geometry queries about the display.
type Screen interface {
	RootSize() (width, height int, err error)
	VisibleAreaAt(x, y int) (x11.Monitor, error)
}

// Status is a snapshot of the overlay's interaction state.
type Status struct {
	Mode   string `json:"mode"`
	Edge   string `json:"edge"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Binding routes pointer events between X11 and the transform. Event
// methods must run on the X event loop goroutine; Status may be called from
// anywhere.
type Binding struct {
	win     Window
	screen  Screen
	store   *settings.Store
	tr      *transform.Transform
	cursors map[transform.Cursor]xproto.Cursor
	logger  *slog.Logger

	rootH   float64
	visible transform.Rect

	mu     sync.Mutex
	status Status
}

// NewBinding creates a binding for win. cursors may be nil, in which case
// cursor commands are only tracked.
func NewBinding(win Window, screen Screen, store *settings.Store, cursors map[transform.Cursor]xproto.Cursor, logger *slog.Logger) *Binding {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Binding{
		win:     win,
		screen:  screen,
		store:   store,
		tr:      transform.New(),
		cursors: cursors,
		logger:  logger,
	}
	b.refreshRoot()
	b.publish()
	return b
}

// LoadCursors creates the X cursor for every affordance. Cursors that fail
// to load fall back to the window's default.
func LoadCursors(xu *xgbutil.XUtil, logger *slog.Logger) map[transform.Cursor]xproto.Cursor {
	glyphs := map[transform.Cursor]uint16{
		transform.CursorArrow:             xcursor.LeftPtr,
		transform.CursorResizeLeftRight:   xcursor.SBHDoubleArrow,
		transform.CursorResizeUpDown:      xcursor.SBVDoubleArrow,
		transform.CursorResizeTopLeft:     xcursor.TopLeftCorner,
		transform.CursorResizeTopRight:    xcursor.TopRightCorner,
		transform.CursorResizeBottomLeft:  xcursor.BottomLeftCorner,
		transform.CursorResizeBottomRight: xcursor.BottomRightCorner,
	}
	cursors := make(map[transform.Cursor]xproto.Cursor, len(glyphs))
	for c, glyph := range glyphs {
		id, err := xcursor.CreateCursor(xu, glyph)
		if err != nil {
			logger.Warn("failed to create cursor", "cursor", c.String(), "error", err)
			continue
		}
		cursors[c] = id
	}
	return cursors
}

// Attach connects the binding's handlers to the overlay window.
func (b *Binding) Attach(xu *xgbutil.XUtil) {
	win := b.win.Window()

	xevent.ButtonPressFun(func(_ *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		if ev.Detail != xproto.ButtonIndex1 {
			return
		}
		b.Press(int(ev.RootX), int(ev.RootY), int(ev.EventX), int(ev.EventY))
	}).Connect(xu, win)

	xevent.MotionNotifyFun(func(_ *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		b.Motion(int(ev.RootX), int(ev.RootY), int(ev.EventX), int(ev.EventY))
	}).Connect(xu, win)

	xevent.ButtonReleaseFun(func(_ *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		if ev.Detail != xproto.ButtonIndex1 {
			return
		}
		b.Release()
	}).Connect(xu, win)

	xevent.LeaveNotifyFun(func(_ *xgbutil.XUtil, ev xevent.LeaveNotifyEvent) {
		// Grab transitions are not real leaves.
		if ev.Mode != xproto.NotifyModeNormal {
			return
		}
		b.Leave()
	}).Connect(xu, win)

	xevent.VisibilityNotifyFun(func(_ *xgbutil.XUtil, ev xevent.VisibilityNotifyEvent) {
		b.Visibility(ev.State)
	}).Connect(xu, win)

	// Under a compositor every window reports itself unobscured, so also
	// watch the root for top-level windows being mapped or restacked.
	root := xu.RootWin()
	if err := xwindow.New(xu, root).Listen(xproto.EventMaskSubstructureNotify); err != nil {
		b.logger.Warn("cannot watch window stacking, overlay may end up covered", "error", err)
		return
	}
	xevent.HookFun(func(_ *xgbutil.XUtil, ev interface{}) bool {
		switch e := ev.(type) {
		case xproto.ConfigureNotifyEvent:
			if e.Event == root {
				b.Restacked(e.Window)
			}
		case xproto.MapNotifyEvent:
			if e.Event == root {
				b.Restacked(e.Window)
			}
		}
		return true
	}).Connect(xu)
}

func (b *Binding) refreshRoot() {
	_, h, err := b.screen.RootSize()
	if err != nil {
		b.logger.Warn("failed to read root geometry", "error", err)
		return
	}
	b.rootH = float64(h)
}

func (b *Binding) frame() transform.Rect {
	x, y := b.win.Position()
	s := b.store.Snapshot()
	return frameOf(x, y, s.Width, s.Height, b.rootH)
}

// Press starts a gesture at the given root and window-relative pointer
// position.
func (b *Binding) Press(rootX, rootY, eventX, eventY int) {
	b.refreshRoot()
	frame := b.frame()

	// The visible area is fixed for the whole gesture.
	b.refreshVisible(rootX, rootY)

	out, ok := b.tr.Down(
		screenPoint(rootX, rootY, b.rootH),
		localPoint(eventX, eventY, frame.Height),
		frame,
	)
	if !ok {
		b.logger.Debug("pointer down ignored, gesture already active", "mode", b.tr.Mode().String())
		return
	}
	b.logger.Debug("pointer down",
		"mode", b.tr.Mode().String(),
		"edge", b.tr.Edge().String(),
		"frame", frame.String(),
	)
	b.apply(out)
}

// refreshVisible reads the visible area under the pointer, falling back to
// the root window and then to the last known area.
func (b *Binding) refreshVisible(rootX, rootY int) {
	area, err := b.screen.VisibleAreaAt(rootX, rootY)
	if err != nil {
		b.logger.Warn("failed to read visible area, using root window", "error", err)
		w, h, rootErr := b.screen.RootSize()
		if rootErr != nil {
			b.logger.Warn("failed to read root geometry, keeping last visible area",
				"error", rootErr, "area", b.visible.String())
			return
		}
		area = x11.Monitor{Width: w, Height: h}
	}
	b.visible = visibleOf(area, b.rootH)
}

// Motion handles pointer movement: a drag step during a gesture, a hover
// update otherwise.
func (b *Binding) Motion(rootX, rootY, eventX, eventY int) {
	if b.tr.Active() {
		b.apply(b.tr.Drag(screenPoint(rootX, rootY, b.rootH), b.visible))
		return
	}
	s := b.store.Snapshot()
	b.apply(b.tr.Hover(localPoint(eventX, eventY, s.Height), s.Width, s.Height))
}

// Release ends the current gesture.
func (b *Binding) Release() {
	wasActive := b.tr.Active()
	b.apply(b.tr.Up())
	if wasActive {
		b.logger.Debug("pointer up", "frame", b.frame().String())
	}
}

// Leave clears the hover affordance.
func (b *Binding) Leave() {
	b.apply(b.tr.Leave())
}

// Visibility re-raises the overlay when another window covers part of it.
func (b *Binding) Visibility(state byte) {
	if state == xproto.VisibilityUnobscured {
		return
	}
	b.logger.Debug("overlay obscured, raising", "state", state)
	b.win.Raise()
}

// Restacked raises the overlay after another top-level window was mapped or
// reconfigured, since either can leave it above the overlay.
func (b *Binding) Restacked(win xproto.Window) {
	if win == b.win.Window() {
		return
	}
	b.win.Raise()
}

func (b *Binding) apply(out transform.Output) {
	if out.SetCursor {
		if id, ok := b.cursors[out.Cursor]; ok {
			b.win.SetCursor(id)
		}
	}
	if out.SetFrame {
		x, y, w, h := windowOf(out.Frame, b.rootH)
		b.win.MoveResize(x, y, w, h)
		if out.SyncSize {
			snap := b.store.SetSize(out.Frame.Width, out.Frame.Height)
			b.logger.Debug("resized", "edge", b.tr.Edge().String(), "width", snap.Width, "height", snap.Height)
			// Render in the same event so the shape follows the new size.
			if err := b.win.Render(snap); err != nil {
				b.logger.Warn("render after resize failed", "error", err)
			}
		}
	}
	b.publish()
}

func (b *Binding) publish() {
	x, y := b.win.Position()
	s := b.store.Snapshot()
	b.mu.Lock()
	b.status = Status{
		Mode:   b.tr.Mode().String(),
		Edge:   b.tr.Edge().String(),
		X:      x,
		Y:      y,
		Width:  int(s.Width),
		Height: int(s.Height),
	}
	b.mu.Unlock()
}

// Status returns the latest interaction snapshot.
func (b *Binding) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}
