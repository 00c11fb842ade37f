// Package surface manages the two stacked drawing layers of a board: a
// background layer carrying the grid and a foreground layer carrying the
// elements.
//
// A Surface starts unmounted. Until Mount is called both layer accessors
// return a nil render.Context, which every renderer treats as a no-op. Size
// changes reinitialize both layers and notify subscribers, which are expected
// to repaint.
//
// A Surface is not safe for concurrent use. Background images are decoded on
// a separate goroutine and their results are handed back through the Post
// option so that all state changes happen on the owner's goroutine.
package surface

import (
	"image"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"

	"drawboard/pkg/element"
	"drawboard/pkg/errors"
	"drawboard/pkg/render"
)

// Default field dimensions.
const (
	DefaultWidth  = 600.0
	DefaultHeight = 600.0
)

// DefaultBackgroundColor is painted behind the grid when no background image
// is set.
const DefaultBackgroundColor = "#ffffff"

// Options configures a Surface. The zero value of each field selects its
// default, except FitToImage which must be set explicitly.
type Options struct {
	Width  float64
	Height float64

	BackgroundColor string
	// BackgroundImage is a path to an image file tiled behind the grid.
	BackgroundImage string
	// FitToImage resizes the field to the natural size of BackgroundImage
	// once it has loaded.
	FitToImage bool

	Grid GridConfig

	Logger *log.Logger

	// Post runs fn on the goroutine that owns the Surface. When nil,
	// background images are loaded synchronously.
	Post func(fn func())

	// Open decodes an image file. Defaults to imaging.Open.
	Open func(path string) (image.Image, error)
}

// Surface is the drawing field.
type Surface struct {
	width, height float64

	background *render.GG
	foreground *render.GG

	backgroundColor string
	backgroundImage string
	backdrop        image.Image
	fitToImage      bool
	loadGen         int

	grid Grid

	origin    element.Point
	container Scroller
	document  Scroller

	subs    map[int]func(width, height float64)
	nextSub int

	logger *log.Logger
	post   func(fn func())
	open   func(path string) (image.Image, error)
}

// New validates opts and returns an unmounted Surface. The background image,
// if any, starts loading immediately.
func New(opts Options) (*Surface, error) {
	if opts.Width == 0 && opts.Height == 0 {
		opts.Width, opts.Height = DefaultWidth, DefaultHeight
	}
	if err := ValidateSize(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	grid := opts.Grid.Merge(DefaultGrid())
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if opts.BackgroundColor == "" {
		opts.BackgroundColor = DefaultBackgroundColor
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Open == nil {
		opts.Open = openImage
	}

	s := &Surface{
		width:           opts.Width,
		height:          opts.Height,
		backgroundColor: opts.BackgroundColor,
		fitToImage:      opts.FitToImage,
		grid:            grid,
		subs:            make(map[int]func(width, height float64)),
		logger:          opts.Logger,
		post:            opts.Post,
		open:            opts.Open,
	}
	s.SetBackgroundImage(opts.BackgroundImage)
	return s, nil
}

// ValidateSize rejects dimensions that are not finite non-negative numbers.
func ValidateSize(width, height float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) {
		return errors.New(errors.ErrCodeInvalidSize, "width should be a number, got %v", width)
	}
	if math.IsNaN(height) || math.IsInf(height, 0) {
		return errors.New(errors.ErrCodeInvalidSize, "height should be a number, got %v", height)
	}
	if width < 0 || height < 0 {
		return errors.New(errors.ErrCodeInvalidSize, "size %vx%v should not be negative", width, height)
	}
	return nil
}

// Mount allocates both layers and paints the background. Mounting twice is a
// no-op.
func (s *Surface) Mount() {
	if s.Mounted() {
		return
	}
	s.allocate()
	s.DrawBackground()
}

// Mounted reports whether the layers exist.
func (s *Surface) Mounted() bool { return s.foreground != nil }

func (s *Surface) allocate() {
	w, h := s.pixelSize()
	s.background = render.NewGG(gg.NewContext(w, h))
	s.foreground = render.NewGG(gg.NewContext(w, h))
}

func (s *Surface) pixelSize() (int, int) {
	return int(math.Round(s.width)), int(math.Round(s.height))
}

// Size returns the field dimensions.
func (s *Surface) Size() (width, height float64) { return s.width, s.height }

// SetSize validates and applies new dimensions. A mounted surface gets fresh
// layers with the background repainted; the foreground is left blank for
// subscribers to repaint.
func (s *Surface) SetSize(width, height float64) error {
	if err := ValidateSize(width, height); err != nil {
		return err
	}
	s.width, s.height = width, height
	if s.Mounted() {
		s.allocate()
		s.DrawBackground()
	}
	s.logger.Debug("surface resized", "width", width, "height", height)
	for _, fn := range s.subscribers() {
		fn(width, height)
	}
	return nil
}

// OnResize registers fn to be called after every size change. The returned
// function removes the subscription.
func (s *Surface) OnResize(fn func(width, height float64)) (unsubscribe func()) {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// subscribers returns callbacks in registration order.
func (s *Surface) subscribers() []func(width, height float64) {
	fns := make([]func(width, height float64), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// Foreground returns the element layer, or nil before Mount.
func (s *Surface) Foreground() render.Context {
	if s.foreground == nil {
		return nil
	}
	return s.foreground
}

// Background returns the grid layer, or nil before Mount.
func (s *Surface) Background() render.Context {
	if s.background == nil {
		return nil
	}
	return s.background
}

// DrawBackground clears the background layer and draws the grid if enabled.
func (s *Surface) DrawBackground() {
	bg := s.Background()
	render.ClearField(bg, s.width, s.height)
	if !s.grid.Enabled {
		return
	}
	render.DrawGrid(bg, s.grid.Style(), s.width, s.height)
}

// ClearForeground erases the element layer.
func (s *Surface) ClearForeground() {
	render.ClearField(s.Foreground(), s.width, s.height)
}
