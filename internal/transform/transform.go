package transform

// Mode is the phase of the current pointer gesture.
type Mode int

const (
	// ModeIdle means no button is held; hovering updates the edge affordance.
	ModeIdle Mode = iota
	// ModeDragging means the window follows the pointer.
	ModeDragging
	// ModeResizing means the active edge follows the pointer.
	ModeResizing
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Gesture is the per-drag state captured at pointer-down.
type Gesture struct {
	Mode Mode
	Edge Edge

	// AnchorScreen is the pointer location in screen space at pointer-down.
	AnchorScreen Point
	// AnchorWindow is the same location relative to AnchorFrame's origin.
	AnchorWindow Point
	// AnchorFrame is the window frame at pointer-down.
	AnchorFrame Rect

	anchored bool
}

// Output lists the side effects the host must apply after an event.
// A zero Output means nothing changed.
type Output struct {
	SetCursor bool
	Cursor    Cursor

	SetFrame bool
	Frame    Rect

	// SyncSize asks the host to write Frame's width and height into the
	// shared window configuration.
	SyncSize bool
}

// Transform turns pointer events on a single window into move and resize
// operations. The zero value is idle and ready to use.
type Transform struct {
	gesture Gesture
}

// New returns an idle transform.
func New() *Transform {
	return &Transform{}
}

// Mode returns the active gesture mode.
func (t *Transform) Mode() Mode {
	return t.gesture.Mode
}

// Edge returns the current edge affordance: the hovered edge while idle or
// the dragged edge while resizing.
func (t *Transform) Edge() Edge {
	return t.gesture.Edge
}

// Gesture returns a copy of the gesture state.
func (t *Transform) Gesture() Gesture {
	return t.gesture
}

// Active reports whether a move or resize gesture is in progress.
func (t *Transform) Active() bool {
	return t.gesture.Mode != ModeIdle
}

// Hover classifies the pointer position while no gesture is active and
// returns a cursor change when the affordance differs from the last one.
// It is a no-op during a gesture.
func (t *Transform) Hover(local Point, width, height float64) Output {
	if t.Active() {
		return Output{}
	}
	return t.setEdge(Classify(local, width, height))
}

// Leave drops the hover affordance when the pointer leaves the window. An
// in-progress gesture is not cancelled.
func (t *Transform) Leave() Output {
	if t.Active() {
		return Output{}
	}
	return t.setEdge(EdgeNone)
}

func (t *Transform) setEdge(edge Edge) Output {
	if edge == t.gesture.Edge {
		return Output{}
	}
	t.gesture.Edge = edge
	return Output{SetCursor: true, Cursor: CursorFor(edge)}
}

// Down starts a gesture. local is the pointer in window space, screen the
// same pointer in screen space and frame the window frame at this instant.
// The press location is classified first, so a press without a preceding
// hover still picks up the right edge. Down returns false and changes nothing
// when a gesture is already in progress.
func (t *Transform) Down(screen, local Point, frame Rect) (Output, bool) {
	if t.Active() {
		return Output{}, false
	}

	out := t.setEdge(Classify(local, frame.Width, frame.Height))

	mode := ModeDragging
	if t.gesture.Edge != EdgeNone {
		mode = ModeResizing
	}

	t.gesture = Gesture{
		Mode:         mode,
		Edge:         t.gesture.Edge,
		AnchorScreen: screen,
		AnchorWindow: screen.Sub(frame.Origin()),
		AnchorFrame:  frame,
		anchored:     true,
	}
	return out, true
}

// Drag advances the active gesture to the pointer's screen location. visible
// is the usable area of the screen the window is on; it bounds move gestures
// only. Drag is a no-op while idle.
func (t *Transform) Drag(screen Point, visible Rect) Output {
	g := t.gesture
	if !g.anchored {
		return Output{}
	}

	switch g.Mode {
	case ModeDragging:
		delta := screen.Sub(g.AnchorScreen)
		return Output{SetFrame: true, Frame: MoveFrame(g.AnchorFrame, delta, visible)}

	case ModeResizing:
		// Measured against the anchor frame, not the live one, since the live
		// frame moves under the pointer while the left or bottom edge is dragged.
		window := screen.Sub(g.AnchorFrame.Origin())
		delta := window.Sub(g.AnchorWindow)
		return Output{
			SetFrame: true,
			Frame:    ResizeFrame(g.AnchorFrame, g.Edge, delta),
			SyncSize: true,
		}
	}

	return Output{}
}

// Up ends the gesture and restores the default cursor. Calling Up while idle
// with no affordance shown does nothing.
func (t *Transform) Up() Output {
	if !t.Active() && t.gesture.Edge == EdgeNone {
		return Output{}
	}
	t.gesture = Gesture{}
	return Output{SetCursor: true, Cursor: CursorArrow}
}
