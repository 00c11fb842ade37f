package element

import "math"

// HandleRadius is the reach of a handle for both drawing and detection.
const HandleRadius = 5.0

// Contains reports whether p lies strictly inside e. Points on the border are
// outside the body, though they may still hit a handle.
func Contains(p Point, e Element) bool {
	return p.X > e.X && p.X < e.X+e.Width &&
		p.Y > e.Y && p.Y < e.Y+e.Height
}

// HandlePosition returns where handle h sits on e. ok is false for HandleNone
// and HandleCenter.
func HandlePosition(h Handle, e Element) (p Point, ok bool) {
	switch h {
	case HandleTopLeft:
		return Point{e.X, e.Y}, true
	case HandleTopRight:
		return Point{e.X + e.Width, e.Y}, true
	case HandleBottomLeft:
		return Point{e.X, e.Y + e.Height}, true
	case HandleBottomRight:
		return Point{e.X + e.Width, e.Y + e.Height}, true
	case HandleTop:
		return Point{e.X + e.Width/2, e.Y}, true
	case HandleLeft:
		return Point{e.X, e.Y + e.Height/2}, true
	case HandleBottom:
		return Point{e.X + e.Width/2, e.Y + e.Height}, true
	case HandleRight:
		return Point{e.X + e.Width, e.Y + e.Height/2}, true
	}
	return Point{}, false
}

// DetectHandle returns the first handle of e, in Handles order, whose centre
// is within radius of p, or HandleNone.
func DetectHandle(p Point, e Element, radius float64) Handle {
	for _, h := range Handles {
		pos, ok := HandlePosition(h, e)
		if !ok {
			continue
		}
		if math.Hypot(p.X-pos.X, p.Y-pos.Y) <= radius {
			return h
		}
	}
	return HandleNone
}

// ClampPoint clamps p in place into [0, fieldWidth] x [0, fieldHeight].
func ClampPoint(p *Point, fieldWidth, fieldHeight float64) {
	if p.X > fieldWidth {
		p.X = fieldWidth
	}
	if p.Y > fieldHeight {
		p.Y = fieldHeight
	}
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
}

// ClampToField keeps a dragged element inside the field. The right and bottom
// edges are corrected first so that an element larger than the field ends up
// pinned to the origin.
func ClampToField(e *Element, fieldWidth, fieldHeight float64) {
	if e.X+e.Width > fieldWidth {
		e.X = fieldWidth - e.Width
	}
	if e.Y+e.Height > fieldHeight {
		e.Y = fieldHeight - e.Height
	}
	if e.X < 0 {
		e.X = 0
	}
	if e.Y < 0 {
		e.Y = 0
	}
}

// Normalize flips negative extents so that Width and Height are non-negative
// and the element covers the same area.
func Normalize(e *Element) {
	if e.Width < 0 {
		e.X += e.Width
		e.Width = -e.Width
	}
	if e.Height < 0 {
		e.Y += e.Height
		e.Height = -e.Height
	}
}

// SnapToGrid rounds the origin to the nearest multiple of step (half rounds
// up) and truncates the extents down to a multiple of step. Sizes never grow.
func SnapToGrid(e *Element, step float64) {
	if step <= 0 {
		return
	}
	if r := math.Mod(e.X, step); r > 0 {
		e.X = snap(e.X, r, step)
	}
	if r := math.Mod(e.Y, step); r > 0 {
		e.Y = snap(e.Y, r, step)
	}
	if r := math.Mod(e.Width, step); r > 0 {
		e.Width -= r
	}
	if r := math.Mod(e.Height, step); r > 0 {
		e.Height -= r
	}
}

func snap(v, remainder, step float64) float64 {
	if remainder >= step/2 {
		return v + step - remainder
	}
	return v - remainder
}

// ResizeByHandle moves the edges of e that h controls to p, keeping the
// opposite edges fixed. Extents may go negative when p crosses the opposite
// edge; callers normalize at gesture end.
func ResizeByHandle(e *Element, h Handle, p Point) {
	switch h {
	case HandleTopLeft:
		e.Width += e.X - p.X
		e.Height += e.Y - p.Y
		e.X = p.X
		e.Y = p.Y
	case HandleTopRight:
		e.Width = p.X - e.X
		e.Height += e.Y - p.Y
		e.Y = p.Y
	case HandleBottomLeft:
		e.Width += e.X - p.X
		e.X = p.X
		e.Height = p.Y - e.Y
	case HandleBottomRight:
		e.Width = p.X - e.X
		e.Height = p.Y - e.Y
	case HandleTop:
		e.Height += e.Y - p.Y
		e.Y = p.Y
	case HandleLeft:
		e.Width += e.X - p.X
		e.X = p.X
	case HandleBottom:
		e.Height = p.Y - e.Y
	case HandleRight:
		e.Width = p.X - e.X
	}
}
