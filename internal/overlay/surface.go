// Package overlay renders the cover window: an override-redirect X11 window
// whose color, opacity, corner radius and size follow the shared settings.
package overlay

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/1broseidon/subcover/internal/settings"
)

const windowName = "subcover"

// Pointer events the transform needs. Motion is reported with or without a
// held button so hover can update the cursor. Visibility changes tell the
// overlay when another window has been stacked above it.
const eventMask = xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskExposure |
	xproto.EventMaskVisibilityChange |
	xproto.EventMaskStructureNotify

// Surface is the overlay window. It is not safe for concurrent use; all
// calls belong on the X event loop goroutine.
type Surface struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	win    xproto.Window
	logger *slog.Logger

	x, y    int // top-left, root coordinates
	shapeOK bool
	mapped  bool

	rendered    settings.Settings
	hasRendered bool
}

// New creates the overlay at root position (x, y) and renders s. The window
// is left unmapped; call Show.
func New(xu *xgbutil.XUtil, root xproto.Window, x, y int, s settings.Settings, logger *slog.Logger) (*Surface, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn := xu.Conn()
	screen := xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, fmt.Errorf("allocate window id: %w", err)
	}

	// Value list order follows the bit positions of the mask (low to high).
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		root,
		int16(x), int16(y),
		uint16(s.Width), uint16(s.Height),
		0, // border_width
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{uint32(s.Color), 1, uint32(eventMask)},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("create overlay window: %w", err)
	}

	surf := &Surface{
		xu:     xu,
		root:   root,
		win:    wid,
		logger: logger,
		x:      x,
		y:      y,
	}

	if err := shape.Init(conn); err != nil {
		logger.Warn("SHAPE extension unavailable; corners will stay square", "error", err)
	} else {
		surf.shapeOK = true
	}

	// Names help compositors and xprop users identify the window; failures
	// are cosmetic.
	if err := ewmh.WmNameSet(xu, wid, windowName); err != nil {
		logger.Debug("set _NET_WM_NAME failed", "error", err)
	}
	if err := icccm.WmClassSet(xu, wid, &icccm.WmClass{Instance: windowName, Class: windowName}); err != nil {
		logger.Debug("set WM_CLASS failed", "error", err)
	}

	if err := surf.Render(s); err != nil {
		surf.Destroy()
		return nil, err
	}
	return surf, nil
}

// Window returns the X window id.
func (s *Surface) Window() xproto.Window {
	return s.win
}

// Position returns the top-left corner in root coordinates.
func (s *Surface) Position() (x, y int) {
	return s.x, s.y
}

type change uint8

const (
	changeSize change = 1 << iota
	changeColor
	changeOpacity
	changeShape
)

// diff reports which window properties must be pushed to move from prev to
// next. first forces everything.
func diff(prev, next settings.Settings, first bool) change {
	if first {
		return changeSize | changeColor | changeOpacity | changeShape
	}
	var c change
	if prev.Width != next.Width || prev.Height != next.Height {
		c |= changeSize | changeShape
	}
	if prev.Color != next.Color {
		c |= changeColor
	}
	if prev.Opacity != next.Opacity {
		c |= changeOpacity
	}
	if prev.CornerRadius != next.CornerRadius {
		c |= changeShape
	}
	return c
}

// Render pushes the parts of next that differ from the last render. An
// unchanged snapshot is a no-op.
func (s *Surface) Render(next settings.Settings) error {
	c := diff(s.rendered, next, !s.hasRendered)
	if c == 0 {
		return nil
	}
	conn := s.xu.Conn()
	w, h := int(next.Width), int(next.Height)

	if c&changeSize != 0 {
		xproto.ConfigureWindow(conn, s.win,
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{uint32(w), uint32(h)},
		)
	}
	if c&changeColor != 0 {
		xproto.ChangeWindowAttributes(conn, s.win, xproto.CwBackPixel, []uint32{uint32(next.Color)})
		xproto.ClearArea(conn, false, s.win, 0, 0, 0, 0)
	}
	if c&changeOpacity != 0 {
		if err := ewmh.WmWindowOpacitySet(s.xu, s.win, next.Opacity); err != nil {
			return fmt.Errorf("set window opacity: %w", err)
		}
	}
	if c&changeShape != 0 && s.shapeOK {
		s.applyShape(w, h, next.CornerRadius)
	}

	s.rendered = next
	s.hasRendered = true
	s.logger.Debug("overlay rendered",
		"color", next.Color.String(),
		"opacity", next.Opacity,
		"corner_radius", next.CornerRadius,
		"width", w,
		"height", h,
	)
	return nil
}

func (s *Surface) applyShape(w, h int, radius float64) {
	conn := s.xu.Conn()
	rects := RoundedRect(w, h, radius)
	if len(rects) <= 1 {
		// Reset to the default bounding region so the window follows its size.
		shape.Mask(conn, shape.SoSet, shape.SkBounding, s.win, 0, 0, xproto.PixmapNone)
		return
	}
	shape.Rectangles(conn, shape.SoSet, shape.SkBounding, xproto.ClipOrderingUnsorted, s.win, 0, 0, rects)
}

// MoveResize places the window at root (x, y) with size w x h and keeps it
// above its siblings. It does not touch the rendered settings; callers write
// the size back to the store and render.
func (s *Surface) MoveResize(x, y, w, h int) {
	w = min(max(w, 1), math.MaxUint16)
	h = min(max(h, 1), math.MaxUint16)
	xproto.ConfigureWindow(
		s.xu.Conn(),
		s.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(int32(x)),
			uint32(int32(y)),
			uint32(w),
			uint32(h),
			xproto.StackModeAbove,
		},
	)
	s.x, s.y = x, y
}

// SetCursor changes the pointer shape shown over the window.
func (s *Surface) SetCursor(c xproto.Cursor) {
	xproto.ChangeWindowAttributes(s.xu.Conn(), s.win, xproto.CwCursor, []uint32{uint32(c)})
}

// Show maps and raises the window.
func (s *Surface) Show() {
	if s.mapped {
		return
	}
	xproto.MapWindow(s.xu.Conn(), s.win)
	s.mapped = true
	s.Raise()
}

// Hide unmaps the window without destroying it.
func (s *Surface) Hide() {
	if !s.mapped {
		return
	}
	xproto.UnmapWindow(s.xu.Conn(), s.win)
	s.mapped = false
}

// Raise restacks the window above its siblings. It is a no-op while hidden.
func (s *Surface) Raise() {
	if !s.mapped {
		return
	}
	xproto.ConfigureWindow(s.xu.Conn(), s.win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
}

// Destroy releases the window.
func (s *Surface) Destroy() {
	if s.win == 0 {
		return
	}
	xproto.DestroyWindow(s.xu.Conn(), s.win)
	s.win = 0
	s.mapped = false
}
