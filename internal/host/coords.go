package host

import (
	"math"

	"github.com/1broseidon/subcover/internal/transform"
	"github.com/1broseidon/subcover/internal/x11"
)

// X11 coordinates grow downwards from the top-left corner of the root
// window; the transform works in y-up coordinates anchored at the
// bottom-left. These helpers flip between the two given the height of the
// containing space.
//
// Pointer positions name a pixel, not a grid line, so they map to the pixel
// centre. That keeps the hit-test margins the same width on every side.

func localPoint(eventX, eventY int, winH float64) transform.Point {
	return transform.Point{X: float64(eventX) + 0.5, Y: winH - float64(eventY) - 0.5}
}

func screenPoint(rootX, rootY int, rootH float64) transform.Point {
	return transform.Point{X: float64(rootX) + 0.5, Y: rootH - float64(rootY) - 0.5}
}

func frameOf(x, y int, w, h, rootH float64) transform.Rect {
	return transform.Rect{X: float64(x), Y: rootH - (float64(y) + h), Width: w, Height: h}
}

// windowOf converts a y-up frame back to X11 position and size, rounding to
// whole pixels.
func windowOf(r transform.Rect, rootH float64) (x, y, w, h int) {
	x = int(math.Round(r.X))
	y = int(math.Round(rootH - (r.Y + r.Height)))
	w = int(math.Round(r.Width))
	h = int(math.Round(r.Height))
	return x, y, w, h
}

func visibleOf(m x11.Monitor, rootH float64) transform.Rect {
	return transform.Rect{
		X:      float64(m.X),
		Y:      rootH - float64(m.Y+m.Height),
		Width:  float64(m.Width),
		Height: float64(m.Height),
	}
}
