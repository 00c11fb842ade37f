package board

import "drawboard/pkg/element"

// Scene is a read-only snapshot of the board for hosts that render it
// themselves.
type Scene struct {
	Elements []element.Element
	// Draft is the element being drawn, or nil outside a drawing gesture.
	Draft    *element.Element
	Selected int
	Hovered  int
	Cursor   element.Cursor
	Width    float64
	Height   float64
}

// Scene returns a snapshot of the current state.
func (c *Controller) Scene() Scene {
	w, h := c.surface.Size()
	s := Scene{
		Elements: c.Elements(),
		Selected: c.selected,
		Hovered:  c.hovered,
		Cursor:   c.cursor,
		Width:    w,
		Height:   h,
	}
	if c.drawing() {
		d := c.draft.Clone()
		s.Draft = &d
	}
	return s
}

// drawing reports whether the current gesture is drawing a new element.
func (c *Controller) drawing() bool {
	return c.pointerDown && c.draggable < 0 && c.resizable < 0
}
