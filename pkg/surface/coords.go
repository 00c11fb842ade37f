package surface

import "drawboard/pkg/element"

// Scroller reports the scroll offset of a scrollable region.
type Scroller interface {
	ScrollOffset() (x, y float64)
}

// ScrollFunc adapts a function to Scroller.
type ScrollFunc func() (x, y float64)

func (f ScrollFunc) ScrollOffset() (x, y float64) { return f() }

// SetOrigin records where the field's top-left corner sits in client
// coordinates.
func (s *Surface) SetOrigin(p element.Point) { s.origin = p }

// Origin returns the field's top-left corner in client coordinates.
func (s *Surface) Origin() element.Point { return s.origin }

// SetScrollContainer sets the scrollable ancestor of the field. Nil falls back
// to the document scroller.
func (s *Surface) SetScrollContainer(sc Scroller) { s.container = sc }

// SetDocumentScroller sets the scroller consulted when no container is set.
func (s *Surface) SetDocumentScroller(sc Scroller) { s.document = sc }

// ScrollOffset returns the container's scroll offset, else the document's,
// else zero.
func (s *Surface) ScrollOffset() (x, y float64) {
	switch {
	case s.container != nil:
		return s.container.ScrollOffset()
	case s.document != nil:
		return s.document.ScrollOffset()
	}
	return 0, 0
}

// ToLocal maps a client-space pointer position to field coordinates.
func (s *Surface) ToLocal(client element.Point) element.Point {
	sx, sy := s.ScrollOffset()
	return element.Point{
		X: client.X - s.origin.X + sx,
		Y: client.Y - s.origin.Y + sy,
	}
}
