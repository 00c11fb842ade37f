// Package element defines the drawable unit of a board and the pure geometry
// used to hit-test, resize, clamp and snap it.
package element

import (
	"image"
	"strings"

	"drawboard/pkg/errors"
)

// Shape is the kind of an element. It is fixed at creation.
type Shape string

const (
	Rectangle Shape = "rectangle"
	Ellipse   Shape = "ellipse"
	Triangle  Shape = "triangle"
	Image     Shape = "image"
)

// Shapes lists every supported shape kind.
var Shapes = []Shape{Rectangle, Ellipse, Triangle, Image}

// ParseShape maps a shape name to a Shape. Matching is case-insensitive.
func ParseShape(s string) (Shape, error) {
	name := Shape(strings.ToLower(strings.TrimSpace(s)))
	for _, shape := range Shapes {
		if shape == name {
			return shape, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidShape, "unknown shape %q", s)
}

// Align is the horizontal anchor of element text.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Transparent is the colour value meaning "no fill".
const Transparent = "transparent"

// Text is the optional label drawn inside an element. Empty fields fall back
// to renderer defaults.
type Text struct {
	Value      string
	Color      string
	FontWeight int
	FontFamily string
	FontStyle  string
	FontSize   string
	Align      Align
}

// Border is a permanent stroke around an element.
type Border struct {
	Color string
	Width float64
}

// Element is a single drawable shape. Width and Height may be negative only
// while a gesture is in progress; see Normalize.
type Element struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Shape  Shape
	Color  string
	Text   *Text
	Border *Border

	// ImageSrc is only meaningful for Image elements.
	ImageSrc image.Image
}

// Clone returns a copy that shares no mutable state with e. The bitmap is
// shared since it is never written.
func (e Element) Clone() Element {
	c := e
	if e.Text != nil {
		t := *e.Text
		c.Text = &t
	}
	if e.Border != nil {
		b := *e.Border
		c.Border = &b
	}
	return c
}

// IsImage reports whether e is an image element.
func (e Element) IsImage() bool { return e.Shape == Image }

// Empty returns a zero-sized element with the given default shape and colour.
func Empty(shape Shape, color string) Element {
	return Element{Shape: shape, Color: color}
}

// Point is a position in canvas-local pixels.
type Point struct {
	X, Y float64
}
