package board

import (
	"image"

	"github.com/charmbracelet/log"

	"drawboard/pkg/element"
	"drawboard/pkg/surface"
)

// Options is the host configuration of a board.
type Options struct {
	Elements            []element.Element
	Shape               element.Shape
	InitialElementColor string
	BackgroundColor     string
	BackgroundImage     string
	Width               float64
	Height              float64
	FitCanvasToImage    bool
	GridConfig          surface.GridConfig
	// GridSizeMouseStep snaps elements to the grid cell size at the end of
	// every gesture.
	GridSizeMouseStep bool

	// Origin is the field's top-left corner in client coordinates.
	Origin           element.Point
	ScrollContainer  surface.Scroller
	DocumentScroller surface.Scroller

	Logger   *log.Logger
	Listener Listener
	// OnDraw is called with a snapshot after every foreground repaint.
	OnDraw func(Scene)

	// OpenImage decodes background image files. Defaults to imaging.Open.
	OpenImage func(path string) (image.Image, error)
}

// DefaultOptions returns the defaults of every host option.
func DefaultOptions() Options {
	return Options{
		Shape:               element.Rectangle,
		InitialElementColor: element.Transparent,
		BackgroundColor:     surface.DefaultBackgroundColor,
		Width:               surface.DefaultWidth,
		Height:              surface.DefaultHeight,
		FitCanvasToImage:    true,
	}
}
