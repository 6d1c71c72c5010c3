package transform

// EdgeMargin is the distance from a window edge, in pixels, within which the
// pointer picks up a resize affordance.
const EdgeMargin = 5

// Edge identifies which window edge or corner a resize gesture drags.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
	EdgeTopLeft
	EdgeTopRight
	EdgeBottomLeft
	EdgeBottomRight
)

// String returns the string representation of the edge
func (e Edge) String() string {
	switch e {
	case EdgeNone:
		return "none"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeTopLeft:
		return "top-left"
	case EdgeTopRight:
		return "top-right"
	case EdgeBottomLeft:
		return "bottom-left"
	case EdgeBottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// IsCorner reports whether e combines two edges.
func (e Edge) IsCorner() bool {
	switch e {
	case EdgeTopLeft, EdgeTopRight, EdgeBottomLeft, EdgeBottomRight:
		return true
	}
	return false
}

func (e Edge) hasLeft() bool {
	return e == EdgeLeft || e == EdgeTopLeft || e == EdgeBottomLeft
}

func (e Edge) hasRight() bool {
	return e == EdgeRight || e == EdgeTopRight || e == EdgeBottomRight
}

func (e Edge) hasTop() bool {
	return e == EdgeTop || e == EdgeTopLeft || e == EdgeTopRight
}

func (e Edge) hasBottom() bool {
	return e == EdgeBottom || e == EdgeBottomLeft || e == EdgeBottomRight
}

// Cursor is the pointer shape the host should display.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorResizeLeftRight
	CursorResizeUpDown
	CursorResizeTopLeft
	CursorResizeTopRight
	CursorResizeBottomLeft
	CursorResizeBottomRight
)

// String returns the string representation of the cursor
func (c Cursor) String() string {
	switch c {
	case CursorArrow:
		return "arrow"
	case CursorResizeLeftRight:
		return "resize-left-right"
	case CursorResizeUpDown:
		return "resize-up-down"
	case CursorResizeTopLeft:
		return "resize-top-left"
	case CursorResizeTopRight:
		return "resize-top-right"
	case CursorResizeBottomLeft:
		return "resize-bottom-left"
	case CursorResizeBottomRight:
		return "resize-bottom-right"
	default:
		return "unknown"
	}
}

// CursorFor maps an edge to the affordance shown while hovering it.
func CursorFor(e Edge) Cursor {
	switch e {
	case EdgeLeft, EdgeRight:
		return CursorResizeLeftRight
	case EdgeTop, EdgeBottom:
		return CursorResizeUpDown
	case EdgeTopLeft:
		return CursorResizeTopLeft
	case EdgeTopRight:
		return CursorResizeTopRight
	case EdgeBottomLeft:
		return CursorResizeBottomLeft
	case EdgeBottomRight:
		return CursorResizeBottomRight
	default:
		return CursorArrow
	}
}

// Classify returns the edge zone that local (window-space) falls into for a
// window of the given size. Corner zones win over single edges.
func Classify(local Point, width, height float64) Edge {
	isLeft := local.X < EdgeMargin
	isRight := local.X > width-EdgeMargin
	isTop := local.Y > height-EdgeMargin
	isBottom := local.Y < EdgeMargin

	switch {
	case isLeft && isTop:
		return EdgeTopLeft
	case isRight && isTop:
		return EdgeTopRight
	case isLeft && isBottom:
		return EdgeBottomLeft
	case isRight && isBottom:
		return EdgeBottomRight
	case isLeft:
		return EdgeLeft
	case isRight:
		return EdgeRight
	case isTop:
		return EdgeTop
	case isBottom:
		return EdgeBottom
	default:
		return EdgeNone
	}
}
