package transform

import "testing"

func TestClassifySingleEdges(t *testing.T) {
	const w, h = 1000, 200
	tests := []struct {
		name  string
		local Point
		want  Edge
	}{
		{"left", Point{X: 2, Y: 100}, EdgeLeft},
		{"left at zero", Point{X: 0, Y: 50}, EdgeLeft},
		{"right", Point{X: 998, Y: 100}, EdgeRight},
		{"top", Point{X: 500, Y: 198}, EdgeTop},
		{"bottom", Point{X: 500, Y: 2}, EdgeBottom},
		{"interior", Point{X: 500, Y: 100}, EdgeNone},
		{"just inside left margin boundary", Point{X: 5, Y: 100}, EdgeNone},
		{"just inside right margin boundary", Point{X: 995, Y: 100}, EdgeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.local, w, h); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.local, got, tt.want)
			}
		})
	}
}

func TestClassifyCornersWinOverEdges(t *testing.T) {
	const w, h = 400, 300
	tests := []struct {
		local Point
		want  Edge
	}{
		{Point{X: 1, Y: 299}, EdgeTopLeft},
		{Point{X: 399, Y: 299}, EdgeTopRight},
		{Point{X: 1, Y: 1}, EdgeBottomLeft},
		{Point{X: 399, Y: 1}, EdgeBottomRight},
	}
	for _, tt := range tests {
		if got := Classify(tt.local, w, h); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.local, got, tt.want)
		}
	}
}

func TestClassifyEdgeZonesExhaustive(t *testing.T) {
	const w, h = 300, 200
	for x := 0.0; x <= w; x += 0.5 {
		for y := 0.0; y <= h; y += 0.5 {
			nearX := x < EdgeMargin || x > w-EdgeMargin
			nearY := y < EdgeMargin || y > h-EdgeMargin
			got := Classify(Point{X: x, Y: y}, w, h)

			switch {
			case nearX && nearY:
				if !got.IsCorner() {
					t.Fatalf("(%v,%v) near two edges classified as %v", x, y, got)
				}
			case nearX || nearY:
				if got == EdgeNone || got.IsCorner() {
					t.Fatalf("(%v,%v) near one edge classified as %v", x, y, got)
				}
			default:
				if got != EdgeNone {
					t.Fatalf("(%v,%v) interior classified as %v", x, y, got)
				}
			}
		}
	}
}

func TestCursorForEdges(t *testing.T) {
	seen := map[Cursor]Edge{}
	for _, e := range []Edge{EdgeTopLeft, EdgeTopRight, EdgeBottomLeft, EdgeBottomRight} {
		c := CursorFor(e)
		if prev, ok := seen[c]; ok {
			t.Fatalf("corners %v and %v share cursor %v", prev, e, c)
		}
		seen[c] = e
	}
	if CursorFor(EdgeLeft) != CursorResizeLeftRight || CursorFor(EdgeRight) != CursorResizeLeftRight {
		t.Fatalf("horizontal edges should use the left-right cursor")
	}
	if CursorFor(EdgeTop) != CursorResizeUpDown || CursorFor(EdgeBottom) != CursorResizeUpDown {
		t.Fatalf("vertical edges should use the up-down cursor")
	}
	if CursorFor(EdgeNone) != CursorArrow {
		t.Fatalf("interior should use the arrow cursor")
	}
}

func TestHoverEmitsCursorOnlyOnChange(t *testing.T) {
	tr := New()

	if out := tr.Hover(Point{X: 50, Y: 50}, 200, 200); out.SetCursor {
		t.Fatalf("interior hover from idle should not change cursor: %+v", out)
	}
	out := tr.Hover(Point{X: 1, Y: 50}, 200, 200)
	if !out.SetCursor || out.Cursor != CursorResizeLeftRight {
		t.Fatalf("expected left-right cursor, got %+v", out)
	}
	if out := tr.Hover(Point{X: 2, Y: 60}, 200, 200); out.SetCursor {
		t.Fatalf("same edge again should not emit a cursor: %+v", out)
	}
	out = tr.Hover(Point{X: 100, Y: 100}, 200, 200)
	if !out.SetCursor || out.Cursor != CursorArrow {
		t.Fatalf("expected arrow after returning to interior, got %+v", out)
	}
}

func TestResizeLeftScenario(t *testing.T) {
	tr := New()
	frame := Rect{X: 100, Y: 100, Width: 1000, Height: 200}
	local := Point{X: 2, Y: 100}
	screen := Point{X: frame.X + local.X, Y: frame.Y + local.Y}

	if _, ok := tr.Down(screen, local, frame); !ok {
		t.Fatalf("Down rejected")
	}
	if tr.Mode() != ModeResizing || tr.Edge() != EdgeLeft {
		t.Fatalf("expected resizing left, got %v/%v", tr.Mode(), tr.Edge())
	}

	out := tr.Drag(Point{X: screen.X - 50, Y: screen.Y}, Rect{Width: 1920, Height: 1080})
	if !out.SetFrame || !out.SyncSize {
		t.Fatalf("expected frame + size sync, got %+v", out)
	}
	if out.Frame.Width != 1050 {
		t.Fatalf("width = %v, want 1050", out.Frame.Width)
	}
	if out.Frame.X != 50 {
		t.Fatalf("x = %v, want 50", out.Frame.X)
	}
	if out.Frame.Y != 100 || out.Frame.Height != 200 {
		t.Fatalf("vertical geometry changed: %v", out.Frame)
	}
}

func TestResizeBottomScenario(t *testing.T) {
	tr := New()
	frame := Rect{X: 100, Y: 100, Width: 1000, Height: 200}
	local := Point{X: 500, Y: 2}
	screen := Point{X: frame.X + local.X, Y: frame.Y + local.Y}

	tr.Down(screen, local, frame)
	if tr.Edge() != EdgeBottom {
		t.Fatalf("edge = %v, want bottom", tr.Edge())
	}

	out := tr.Drag(Point{X: screen.X, Y: screen.Y + 30}, Rect{Width: 1920, Height: 1080})
	if out.Frame.Height != 170 {
		t.Fatalf("height = %v, want 170", out.Frame.Height)
	}
	if out.Frame.Y != frame.MaxY()-170 {
		t.Fatalf("y = %v, want %v", out.Frame.Y, frame.MaxY()-170)
	}
}

func TestResizeFrameEdgeTable(t *testing.T) {
	anchor := Rect{X: 100, Y: 100, Width: 400, Height: 300}
	delta := Point{X: 20, Y: 10}
	tests := []struct {
		edge Edge
		want Rect
	}{
		{EdgeRight, Rect{X: 100, Y: 100, Width: 420, Height: 300}},
		{EdgeLeft, Rect{X: 120, Y: 100, Width: 380, Height: 300}},
		{EdgeBottom, Rect{X: 100, Y: 110, Width: 400, Height: 290}},
		{EdgeTop, Rect{X: 100, Y: 100, Width: 400, Height: 310}},
		{EdgeBottomRight, Rect{X: 100, Y: 110, Width: 420, Height: 290}},
		{EdgeBottomLeft, Rect{X: 120, Y: 110, Width: 380, Height: 290}},
		{EdgeTopLeft, Rect{X: 120, Y: 100, Width: 380, Height: 310}},
		{EdgeTopRight, Rect{X: 100, Y: 100, Width: 420, Height: 310}},
		{EdgeNone, anchor},
	}
	for _, tt := range tests {
		t.Run(tt.edge.String(), func(t *testing.T) {
			if got := ResizeFrame(anchor, tt.edge, delta); got != tt.want {
				t.Errorf("ResizeFrame(%v) = %v, want %v", tt.edge, got, tt.want)
			}
		})
	}
}

func TestResizeNeverBelowMinimum(t *testing.T) {
	anchor := Rect{X: 300, Y: 300, Width: 250, Height: 180}
	edges := []Edge{
		EdgeLeft, EdgeRight, EdgeTop, EdgeBottom,
		EdgeTopLeft, EdgeTopRight, EdgeBottomLeft, EdgeBottomRight,
	}
	for _, edge := range edges {
		for dx := -600.0; dx <= 600; dx += 37 {
			for dy := -600.0; dy <= 600; dy += 41 {
				got := ResizeFrame(anchor, edge, Point{X: dx, Y: dy})
				if got.Width < MinSize || got.Height < MinSize {
					t.Fatalf("%v delta (%v,%v) produced %v", edge, dx, dy, got)
				}
			}
		}
	}
}

func TestResizeLeftPinsRightEdgeAtMinimum(t *testing.T) {
	anchor := Rect{X: 100, Y: 100, Width: 300, Height: 300}
	got := ResizeFrame(anchor, EdgeLeft, Point{X: 1000})
	if got.Width != MinSize {
		t.Fatalf("width = %v, want %v", got.Width, MinSize)
	}
	if got.MaxX() != anchor.MaxX() {
		t.Fatalf("right edge moved: %v -> %v", anchor.MaxX(), got.MaxX())
	}
}

func TestMoveStaysInsideVisibleArea(t *testing.T) {
	const sw, sh = 1920.0, 1080.0
	const w, h = 1000.0, 200.0
	visible := Rect{Width: sw, Height: sh}

	for dx := -3000.0; dx <= 3000; dx += 123 {
		for dy := -3000.0; dy <= 3000; dy += 97 {
			tr := New()
			frame := Rect{X: 400, Y: 300, Width: w, Height: h}
			local := Point{X: 500, Y: 100}
			start := Point{X: frame.X + local.X, Y: frame.Y + local.Y}
			tr.Down(start, local, frame)

			out := tr.Drag(Point{X: start.X + dx, Y: start.Y + dy}, visible)
			if out.SyncSize {
				t.Fatalf("move should not sync size")
			}
			f := out.Frame
			if f.X < 0 || f.X > sw-w || f.Y < 0 || f.Y > sh-h {
				t.Fatalf("delta (%v,%v) escaped screen: %v", dx, dy, f)
			}
			if f.Width != w || f.Height != h {
				t.Fatalf("move changed size: %v", f)
			}
		}
	}
}

func TestMoveAccumulatesFromSingleAnchor(t *testing.T) {
	tr := New()
	frame := Rect{X: 100, Y: 100, Width: 300, Height: 150}
	visible := Rect{Width: 1920, Height: 1080}
	local := Point{X: 150, Y: 75}
	start := Point{X: 250, Y: 175}
	tr.Down(start, local, frame)

	var out Output
	for i := 1; i <= 10; i++ {
		out = tr.Drag(Point{X: start.X + float64(i*10), Y: start.Y + float64(i*5)}, visible)
	}
	want := Rect{X: 200, Y: 150, Width: 300, Height: 150}
	if out.Frame != want {
		t.Fatalf("after 10 drag events frame = %v, want %v", out.Frame, want)
	}
	if tr.Gesture().AnchorFrame != frame {
		t.Fatalf("anchor moved during gesture: %v", tr.Gesture().AnchorFrame)
	}
}

func TestMoveOffsetVisibleArea(t *testing.T) {
	// A screen to the right of the primary with a dock along its bottom.
	visible := Rect{X: 1920, Y: 40, Width: 1280, Height: 984}
	frame := Rect{X: 2000, Y: 100, Width: 400, Height: 200}
	got := MoveFrame(frame, Point{X: -500, Y: -500}, visible)
	if got.X != 1920 || got.Y != 40 {
		t.Fatalf("expected clamp to visible origin, got %v", got)
	}
	got = MoveFrame(frame, Point{X: 5000, Y: 5000}, visible)
	if got.X != visible.MaxX()-400 || got.Y != visible.MaxY()-200 {
		t.Fatalf("expected clamp to visible max, got %v", got)
	}
}

func TestClampOriginPrefersMinimumWhenOversized(t *testing.T) {
	visible := Rect{X: 0, Y: 0, Width: 300, Height: 300}
	got := ClampOrigin(Point{X: 50, Y: 50}, 500, 500, visible)
	if got.X != 0 || got.Y != 0 {
		t.Fatalf("oversized window should pin to minimum, got %v", got)
	}
}

func TestUpIsIdempotent(t *testing.T) {
	tr := New()
	frame := Rect{X: 0, Y: 0, Width: 400, Height: 300}
	tr.Down(Point{X: 200, Y: 150}, Point{X: 200, Y: 150}, frame)
	tr.Drag(Point{X: 210, Y: 150}, Rect{Width: 1000, Height: 1000})

	first := tr.Up()
	if !first.SetCursor || first.Cursor != CursorArrow {
		t.Fatalf("first Up should restore arrow, got %+v", first)
	}
	if tr.Mode() != ModeIdle || tr.Edge() != EdgeNone {
		t.Fatalf("expected idle/none after Up, got %v/%v", tr.Mode(), tr.Edge())
	}
	if g := tr.Gesture(); g != (Gesture{}) {
		t.Fatalf("expected cleared gesture, got %+v", g)
	}

	if second := tr.Up(); second != (Output{}) {
		t.Fatalf("second Up should be a no-op, got %+v", second)
	}
}

func TestDownWhileActiveIsIgnored(t *testing.T) {
	tr := New()
	frame := Rect{X: 0, Y: 0, Width: 400, Height: 300}
	tr.Down(Point{X: 1, Y: 150}, Point{X: 1, Y: 150}, frame)
	before := tr.Gesture()

	out, ok := tr.Down(Point{X: 200, Y: 150}, Point{X: 200, Y: 150}, Rect{X: 50, Y: 50, Width: 400, Height: 300})
	if ok {
		t.Fatalf("second Down should be rejected")
	}
	if out != (Output{}) {
		t.Fatalf("rejected Down should have no output, got %+v", out)
	}
	if tr.Gesture() != before {
		t.Fatalf("gesture changed after rejected Down")
	}
}

func TestDragWithoutGestureIsNoop(t *testing.T) {
	tr := New()
	if out := tr.Drag(Point{X: 10, Y: 10}, Rect{Width: 100, Height: 100}); out != (Output{}) {
		t.Fatalf("idle Drag should be a no-op, got %+v", out)
	}

	// An active mode without an anchor must not produce geometry.
	tr.gesture = Gesture{Mode: ModeResizing, Edge: EdgeLeft}
	if out := tr.Drag(Point{X: 10, Y: 10}, Rect{Width: 100, Height: 100}); out != (Output{}) {
		t.Fatalf("unanchored Drag should be a no-op, got %+v", out)
	}
}

func TestLeaveResetsHoverButNotGesture(t *testing.T) {
	tr := New()
	tr.Hover(Point{X: 1, Y: 50}, 200, 200)
	out := tr.Leave()
	if !out.SetCursor || out.Cursor != CursorArrow || tr.Edge() != EdgeNone {
		t.Fatalf("Leave while idle should reset affordance, got %+v edge=%v", out, tr.Edge())
	}

	frame := Rect{Width: 200, Height: 200}
	tr.Down(Point{X: 199, Y: 100}, Point{X: 199, Y: 100}, frame)
	if out := tr.Leave(); out != (Output{}) {
		t.Fatalf("Leave during gesture should be a no-op, got %+v", out)
	}
	if tr.Mode() != ModeResizing || tr.Edge() != EdgeRight {
		t.Fatalf("gesture changed by Leave: %v/%v", tr.Mode(), tr.Edge())
	}
}

func TestHoverIgnoredDuringGesture(t *testing.T) {
	tr := New()
	frame := Rect{Width: 200, Height: 200}
	tr.Down(Point{X: 100, Y: 100}, Point{X: 100, Y: 100}, frame)
	if out := tr.Hover(Point{X: 1, Y: 1}, 200, 200); out != (Output{}) {
		t.Fatalf("Hover during drag should be a no-op, got %+v", out)
	}
	if tr.Edge() != EdgeNone {
		t.Fatalf("edge changed during drag: %v", tr.Edge())
	}
}
