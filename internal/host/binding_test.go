package host

import (
	"errors"
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/subcover/internal/settings"
	"github.com/1broseidon/subcover/internal/transform"
	"github.com/1broseidon/subcover/internal/x11"
)

type fakeWindow struct {
	x, y, w, h int
	cursors    []xproto.Cursor
	renders    []settings.Settings
	raises     int
}

func (f *fakeWindow) Window() xproto.Window { return 1 }

func (f *fakeWindow) Position() (int, int) { return f.x, f.y }

func (f *fakeWindow) MoveResize(x, y, w, h int) {
	f.x, f.y, f.w, f.h = x, y, w, h
}

func (f *fakeWindow) SetCursor(c xproto.Cursor) { f.cursors = append(f.cursors, c) }

func (f *fakeWindow) Render(s settings.Settings) error {
	f.renders = append(f.renders, s)
	return nil
}

func (f *fakeWindow) Raise() { f.raises++ }

type fakeScreen struct {
	rootW, rootH int
	visible      x11.Monitor
	queries      int

	rootErr, areaErr error
}

func (f *fakeScreen) RootSize() (int, int, error) {
	if f.rootErr != nil {
		return 0, 0, f.rootErr
	}
	return f.rootW, f.rootH, nil
}

func (f *fakeScreen) VisibleAreaAt(x, y int) (x11.Monitor, error) {
	f.queries++
	if f.areaErr != nil {
		return x11.Monitor{}, f.areaErr
	}
	return f.visible, nil
}

var testCursors = map[transform.Cursor]xproto.Cursor{
	transform.CursorArrow:             10,
	transform.CursorResizeLeftRight:   11,
	transform.CursorResizeUpDown:      12,
	transform.CursorResizeTopLeft:     13,
	transform.CursorResizeTopRight:    14,
	transform.CursorResizeBottomLeft:  15,
	transform.CursorResizeBottomRight: 16,
}

// newTestBinding places a 1000x200 overlay at (100,100) on a 1920x1080 root.
func newTestBinding(t *testing.T) (*Binding, *fakeWindow, *fakeScreen, *settings.Store) {
	t.Helper()
	win := &fakeWindow{x: 100, y: 100, w: 1000, h: 200}
	screen := &fakeScreen{
		rootW:   1920,
		rootH:   1080,
		visible: x11.Monitor{Width: 1920, Height: 1080},
	}
	store := settings.NewStore(settings.Defaults())
	return NewBinding(win, screen, store, testCursors, nil), win, screen, store
}

func TestBinding_LeftEdgeResize(t *testing.T) {
	b, win, _, store := newTestBinding(t)

	// Local (2,100) sits on the left edge, halfway down.
	b.Press(102, 200, 2, 100)
	if b.Status().Mode != "resizing" || b.Status().Edge != "left" {
		t.Fatalf("status after press = %+v", b.Status())
	}
	if len(win.cursors) != 1 || win.cursors[0] != testCursors[transform.CursorResizeLeftRight] {
		t.Fatalf("cursors = %v", win.cursors)
	}

	b.Motion(52, 200, -48, 100)
	if win.x != 50 || win.y != 100 || win.w != 1050 || win.h != 200 {
		t.Fatalf("window = (%d,%d %dx%d), want (50,100 1050x200)", win.x, win.y, win.w, win.h)
	}
	if s := store.Snapshot(); s.Width != 1050 || s.Height != 200 {
		t.Fatalf("store size = %vx%v", s.Width, s.Height)
	}
	if len(win.renders) != 1 || win.renders[0].Width != 1050 {
		t.Fatalf("expected a synchronous render of the new size, got %+v", win.renders)
	}
}

func TestBinding_BottomEdgeResizeKeepsTopFixed(t *testing.T) {
	b, win, _, store := newTestBinding(t)

	// Local y 198 in X11 is 2px above the bottom edge.
	b.Press(600, 298, 500, 198)
	if b.Status().Edge != "bottom" {
		t.Fatalf("edge = %s", b.Status().Edge)
	}

	// Dragging the bottom edge up 30px shrinks the window.
	b.Motion(600, 268, 500, 168)
	if win.h != 170 || win.y != 100 || win.x != 100 || win.w != 1000 {
		t.Fatalf("window = (%d,%d %dx%d)", win.x, win.y, win.w, win.h)
	}
	if store.Snapshot().Height != 170 {
		t.Fatalf("store height = %v", store.Snapshot().Height)
	}
}

func TestBinding_TopEdgeResizeGrowsUpwards(t *testing.T) {
	b, win, _, _ := newTestBinding(t)

	b.Press(600, 101, 500, 1)
	if b.Status().Edge != "top" {
		t.Fatalf("edge = %s", b.Status().Edge)
	}
	b.Motion(600, 61, 500, -39)
	if win.y != 60 || win.h != 240 {
		t.Fatalf("window = (%d,%d %dx%d)", win.x, win.y, win.w, win.h)
	}
}

func TestBinding_DragClampsToVisibleArea(t *testing.T) {
	b, win, screen, store := newTestBinding(t)
	// 28px panel at the top.
	screen.visible = x11.Monitor{Y: 28, Width: 1920, Height: 1052}

	b.Press(600, 200, 500, 100)
	if b.Status().Mode != "dragging" {
		t.Fatalf("mode = %s", b.Status().Mode)
	}

	b.Motion(500, 150, 400, 50)
	if win.x != 0 || win.y != 50 {
		t.Fatalf("after move window at (%d,%d), want (0,50)", win.x, win.y)
	}

	b.Motion(5000, -500, 0, 0)
	if win.x != 920 || win.y != 28 {
		t.Fatalf("clamped window at (%d,%d), want (920,28)", win.x, win.y)
	}
	if win.w != 1000 || win.h != 200 {
		t.Fatalf("drag changed size to %dx%d", win.w, win.h)
	}
	if store.Snapshot().Width != 1000 || len(win.renders) != 0 {
		t.Fatalf("drag must not write size back")
	}

	b.Release()
	if b.Status().Mode != "idle" || b.Status().X != 920 || b.Status().Y != 28 {
		t.Fatalf("status after release = %+v", b.Status())
	}
}

func TestBinding_VisibleAreaReadOncePerGesture(t *testing.T) {
	b, _, screen, _ := newTestBinding(t)

	b.Press(600, 200, 500, 100)
	for i := 0; i < 5; i++ {
		b.Motion(600+i, 200, 500+i, 100)
	}
	b.Release()
	if screen.queries != 1 {
		t.Fatalf("visible area queried %d times, want 1", screen.queries)
	}
}

func TestBinding_HoverAndLeaveCursor(t *testing.T) {
	b, win, _, _ := newTestBinding(t)

	b.Motion(101, 101, 1, 1) // top-left corner
	b.Motion(101, 101, 1, 1) // unchanged: no new command
	b.Motion(600, 200, 500, 100)
	b.Leave()

	want := []xproto.Cursor{
		testCursors[transform.CursorResizeTopLeft],
		testCursors[transform.CursorArrow],
	}
	if len(win.cursors) != len(want) {
		t.Fatalf("cursors = %v, want %v", win.cursors, want)
	}
	for i := range want {
		if win.cursors[i] != want[i] {
			t.Fatalf("cursors = %v, want %v", win.cursors, want)
		}
	}
}

func TestBinding_SecondPressIgnored(t *testing.T) {
	b, win, _, _ := newTestBinding(t)

	b.Press(102, 200, 2, 100)
	b.Press(600, 200, 500, 100)
	if b.Status().Mode != "resizing" || b.Status().Edge != "left" {
		t.Fatalf("second press changed gesture: %+v", b.Status())
	}
	b.Release()
	b.Release()
	if b.Status().Mode != "idle" {
		t.Fatalf("mode = %s", b.Status().Mode)
	}
	if n := len(win.cursors); n != 2 {
		t.Fatalf("expected resize + arrow cursor commands only, got %v", win.cursors)
	}
}

func TestBinding_ResizeRespectsMinimum(t *testing.T) {
	b, win, _, store := newTestBinding(t)

	b.Press(1098, 200, 998, 100) // right edge
	b.Motion(0, 200, -1098, 100)
	if win.w != 100 || win.x != 100 {
		t.Fatalf("window = (%d,%d %dx%d)", win.x, win.y, win.w, win.h)
	}
	if store.Snapshot().Width != settings.MinSize {
		t.Fatalf("store width = %v", store.Snapshot().Width)
	}
}

func TestBinding_HoverMarginIsFivePixelsOnEverySide(t *testing.T) {
	// The overlay is 1000x200; event coordinates are window-relative, y down.
	tests := []struct {
		name   string
		ex, ey int
		want   string
	}{
		{"left inside", 4, 100, "left"},
		{"left outside", 5, 100, "none"},
		{"right inside", 995, 100, "right"},
		{"right outside", 994, 100, "none"},
		{"top inside", 500, 4, "top"},
		{"top outside", 500, 5, "none"},
		{"bottom inside", 500, 195, "bottom"},
		{"bottom outside", 500, 194, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _, _, _ := newTestBinding(t)
			b.Motion(100+tt.ex, 100+tt.ey, tt.ex, tt.ey)
			if got := b.Status().Edge; got != tt.want {
				t.Fatalf("edge at (%d,%d) = %s, want %s", tt.ex, tt.ey, got, tt.want)
			}
		})
	}
}

func TestBinding_PressMarginMatchesHover(t *testing.T) {
	tests := []struct {
		name   string
		ex, ey int
		mode   string
		edge   string
	}{
		{"right inside", 995, 100, "resizing", "right"},
		{"right outside", 994, 100, "dragging", "none"},
		{"bottom inside", 500, 195, "resizing", "bottom"},
		{"bottom outside", 500, 194, "dragging", "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _, _, _ := newTestBinding(t)
			b.Press(100+tt.ex, 100+tt.ey, tt.ex, tt.ey)
			if st := b.Status(); st.Mode != tt.mode || st.Edge != tt.edge {
				t.Fatalf("status = %+v, want mode %s edge %s", st, tt.mode, tt.edge)
			}
		})
	}
}

func TestBinding_VisibilityRaisesWhenObscured(t *testing.T) {
	tests := []struct {
		name  string
		state byte
		want  int
	}{
		{"unobscured", xproto.VisibilityUnobscured, 0},
		{"partially obscured", xproto.VisibilityPartiallyObscured, 1},
		{"fully obscured", xproto.VisibilityFullyObscured, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, win, _, _ := newTestBinding(t)
			b.Visibility(tt.state)
			if win.raises != tt.want {
				t.Fatalf("raises = %d, want %d", win.raises, tt.want)
			}
		})
	}
}

func TestBinding_RestackedRaisesAboveOtherWindows(t *testing.T) {
	tests := []struct {
		name string
		win  xproto.Window
		want int
	}{
		// fakeWindow reports id 1.
		{"own configure", 1, 0},
		{"other window", 0x2a00007, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, win, _, _ := newTestBinding(t)
			b.Restacked(tt.win)
			if win.raises != tt.want {
				t.Fatalf("raises = %d, want %d", win.raises, tt.want)
			}
		})
	}
}

func TestBinding_VisibleAreaFallbacks(t *testing.T) {
	tests := []struct {
		name             string
		rootErr, areaErr error
		wantX, wantY     int
	}{
		// Monitor query fails: clamp to the whole root.
		{"root fallback", nil, errors.New("randr"), 1920 - 1000, 1080 - 200},
		// Both fail: keep the area from the previous gesture.
		{"keep previous", errors.New("root"), errors.New("randr"), 1200 - 1000, 600 - 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, win, screen, _ := newTestBinding(t)

			// First gesture establishes a 1200x600 visible area.
			screen.visible = x11.Monitor{Width: 1200, Height: 600}
			b.Press(600, 200, 500, 100)
			b.Release()

			screen.rootErr, screen.areaErr = tt.rootErr, tt.areaErr
			b.Press(600, 200, 500, 100)
			b.Motion(5600, 5200, 5500, 5100)
			b.Release()
			if win.x != tt.wantX || win.y != tt.wantY {
				t.Fatalf("window at (%d,%d), want (%d,%d)", win.x, win.y, tt.wantX, tt.wantY)
			}
		})
	}
}
