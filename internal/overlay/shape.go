package overlay

import (
	"math"

	"github.com/BurntSushi/xgb/xproto"
)

// RoundedRect approximates a w x h rectangle with corners of the given
// radius as horizontal spans, one per corner row plus a body rectangle.
// Rows with the same inset are merged. A radius that rounds to zero yields
// the plain rectangle.
func RoundedRect(w, h int, radius float64) []xproto.Rectangle {
	if w <= 0 || h <= 0 {
		return nil
	}

	r := min(int(math.Round(radius)), w/2, h/2)
	if r <= 0 {
		return []xproto.Rectangle{{Width: uint16(w), Height: uint16(h)}}
	}

	insets := cornerInsets(r)

	var top []xproto.Rectangle
	for row := 0; row < r; {
		end := row + 1
		for end < r && insets[end] == insets[row] {
			end++
		}
		top = append(top, xproto.Rectangle{
			X:      int16(insets[row]),
			Y:      int16(row),
			Width:  uint16(w - 2*insets[row]),
			Height: uint16(end - row),
		})
		row = end
	}

	rects := make([]xproto.Rectangle, 0, 2*len(top)+1)
	rects = append(rects, top...)
	if body := h - 2*r; body > 0 {
		rects = append(rects, xproto.Rectangle{Y: int16(r), Width: uint16(w), Height: uint16(body)})
	}
	for i := len(top) - 1; i >= 0; i-- {
		span := top[i]
		span.Y = int16(h) - span.Y - int16(span.Height)
		rects = append(rects, span)
	}
	return rects
}

// cornerInsets returns, for each of the r rows nearest an edge, how many
// pixels the quarter circle cuts in from the side.
func cornerInsets(r int) []int {
	insets := make([]int, r)
	rf := float64(r)
	for row := range insets {
		dy := rf - float64(row) - 0.5
		insets[row] = r - int(math.Round(math.Sqrt(rf*rf-dy*dy)))
	}
	return insets
}
