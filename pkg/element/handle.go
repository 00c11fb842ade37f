package element

// Handle identifies a resize grab point on an element's bounding box.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
	HandleTop
	HandleLeft
	HandleBottom
	HandleRight

	// HandleCenter is reserved. It has no position and is never detected.
	HandleCenter
)

// Handles is the detection and drawing order of the compass handles. When two
// handles are within reach of the pointer the earlier one wins.
var Handles = [...]Handle{
	HandleTopLeft,
	HandleTopRight,
	HandleBottomLeft,
	HandleBottomRight,
	HandleTop,
	HandleLeft,
	HandleBottom,
	HandleRight,
}

var handleNames = map[Handle]string{
	HandleNone:        "none",
	HandleTopLeft:     "topLeft",
	HandleTopRight:    "topRight",
	HandleBottomLeft:  "bottomLeft",
	HandleBottomRight: "bottomRight",
	HandleTop:         "top",
	HandleLeft:        "left",
	HandleBottom:      "bottom",
	HandleRight:       "right",
	HandleCenter:      "center",
}

func (h Handle) String() string {
	if name, ok := handleNames[h]; ok {
		return name
	}
	return "unknown"
}

// Cursor is a pointer cursor style name.
type Cursor string

const (
	CursorDefault    Cursor = "default"
	CursorGrab       Cursor = "grab"
	CursorResizeNS   Cursor = "ns-resize"
	CursorResizeEW   Cursor = "ew-resize"
	CursorResizeNWSE Cursor = "nwse-resize"
	CursorResizeNESW Cursor = "nesw-resize"
)

// CursorFor derives the cursor from the hover scan result. A handle wins over
// a body hit.
func CursorFor(draggableIndex int, h Handle) Cursor {
	switch h {
	case HandleTop, HandleBottom:
		return CursorResizeNS
	case HandleLeft, HandleRight:
		return CursorResizeEW
	case HandleTopLeft, HandleBottomRight:
		return CursorResizeNWSE
	case HandleTopRight, HandleBottomLeft:
		return CursorResizeNESW
	}
	if draggableIndex >= 0 {
		return CursorGrab
	}
	return CursorDefault
}
