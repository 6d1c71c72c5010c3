// Package transform interprets pointer input on the overlay window as move and
// resize gestures and computes the resulting window geometry.
//
// All coordinates are Cartesian with y growing upward: a frame's origin is its
// bottom-left corner and local y=0 is the bottom edge of the window. The host
// binding converts to and from the window system's coordinate space.
//
// Nothing in this package is synchronized. A Transform must only be driven
// from the goroutine that delivers pointer events.
package transform

import "fmt"

// MinSize is the smallest width or height a resize gesture may produce.
const MinSize = 100

// Point is a pointer location.
type Point struct {
	X float64
	Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is a window frame or screen area.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the top edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Origin returns the bottom-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// ClampOrigin keeps a window of the given size inside visible on both axes.
// When the window is larger than the area the minimum edge wins.
func ClampOrigin(origin Point, width, height float64, visible Rect) Point {
	return Point{
		X: clampAxis(origin.X, visible.X, visible.MaxX()-width),
		Y: clampAxis(origin.Y, visible.Y, visible.MaxY()-height),
	}
}

func clampAxis(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// ResizeFrame applies a resize of anchor along edge by delta (window-space
// pointer movement since the gesture started). Width and height never drop
// below MinSize.
func ResizeFrame(anchor Rect, edge Edge, delta Point) Rect {
	frame := anchor

	if edge.hasLeft() {
		frame.Width = max(anchor.Width-delta.X, MinSize)
		frame.X = anchor.MaxX() - frame.Width
	}
	if edge.hasRight() {
		frame.Width = max(anchor.Width+delta.X, MinSize)
	}
	if edge.hasBottom() {
		frame.Height = max(anchor.Height-delta.Y, MinSize)
		frame.Y = anchor.MaxY() - frame.Height
	}
	if edge.hasTop() {
		frame.Height = max(anchor.Height+delta.Y, MinSize)
	}

	return frame
}

// MoveFrame translates anchor by delta and clamps the result into visible.
func MoveFrame(anchor Rect, delta Point, visible Rect) Rect {
	origin := Point{X: anchor.X + delta.X, Y: anchor.Y + delta.Y}
	origin = ClampOrigin(origin, anchor.Width, anchor.Height, visible)

	frame := anchor
	frame.X = origin.X
	frame.Y = origin.Y
	return frame
}
