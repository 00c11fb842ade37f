// Package board implements the interaction engine of the drawing surface.
//
// A Controller owns the scene (the ordered element list) and the transient
// interaction state. It turns pointer input into element mutations, repaints
// the foreground after every change and reports lifecycle events to a single
// Listener. Controllers are synchronous and not safe for concurrent use; Board
// wraps one in an event loop that serializes input and coalesces pointer
// moves.
package board

import (
	"io"

	"github.com/charmbracelet/log"

	"drawboard/pkg/element"
	"drawboard/pkg/render"
	"drawboard/pkg/surface"
)

// MinElementSize is the extent a new element must exceed in both dimensions
// to be added to the scene.
const MinElementSize = 5.0

// Controller is the scene state plus the pointer state machine.
type Controller struct {
	surface *surface.Surface

	elements     []element.Element
	shape        element.Shape
	initialColor string
	snap         bool

	draft         element.Element
	selected      int
	hovered       int
	draggable     int
	resizable     int
	handle        element.Handle
	pointerDown   bool
	dragStarted   bool
	resizeStarted bool
	hoverShadow   bool
	cursor        element.Cursor

	listener    Listener
	onDraw      func(Scene)
	logger      *log.Logger
	unsubscribe func()
}

// NewController builds a controller from opts. Background images load
// synchronously; use New for a Board that loads them in the background.
func NewController(opts Options) (*Controller, error) {
	return newController(opts, nil)
}

func newController(opts Options, post func(func())) (*Controller, error) {
	if opts.Shape == "" {
		opts.Shape = element.Rectangle
	}
	shape, err := element.ParseShape(string(opts.Shape))
	if err != nil {
		return nil, err
	}
	if opts.InitialElementColor == "" {
		opts.InitialElementColor = element.Transparent
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	surf, err := surface.New(surface.Options{
		Width:           opts.Width,
		Height:          opts.Height,
		BackgroundColor: opts.BackgroundColor,
		BackgroundImage: opts.BackgroundImage,
		FitToImage:      opts.FitCanvasToImage,
		Grid:            opts.GridConfig,
		Logger:          opts.Logger,
		Post:            post,
		Open:            opts.OpenImage,
	})
	if err != nil {
		return nil, err
	}
	surf.SetOrigin(opts.Origin)
	surf.SetScrollContainer(opts.ScrollContainer)
	surf.SetDocumentScroller(opts.DocumentScroller)

	c := &Controller{
		surface:      surf,
		elements:     cloneAll(opts.Elements),
		shape:        shape,
		initialColor: opts.InitialElementColor,
		snap:         opts.GridSizeMouseStep,
		selected:     -1,
		hovered:      -1,
		draggable:    -1,
		resizable:    -1,
		cursor:       element.CursorDefault,
		listener:     opts.Listener,
		onDraw:       opts.OnDraw,
		logger:       opts.Logger,
	}
	c.draft = c.emptyElement()
	c.unsubscribe = surf.OnResize(func(float64, float64) { c.Draw() })
	return c, nil
}

func cloneAll(elems []element.Element) []element.Element {
	out := make([]element.Element, len(elems))
	for i, e := range elems {
		out[i] = e.Clone()
	}
	return out
}

func (c *Controller) emptyElement() element.Element {
	return element.Empty(c.shape, c.initialColor)
}

// Mount allocates the drawing layers and paints the scene.
func (c *Controller) Mount() {
	c.surface.Mount()
	c.Draw()
}

// Close detaches the controller from its surface.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Surface returns the drawing field.
func (c *Controller) Surface() *surface.Surface { return c.surface }

// Elements returns a copy of the scene.
func (c *Controller) Elements() []element.Element { return cloneAll(c.elements) }

// Selected returns the index of the focused element, or -1.
func (c *Controller) Selected() int { return c.selected }

// Hovered returns the index of the element under the pointer, or -1.
func (c *Controller) Hovered() int { return c.hovered }

// Cursor returns the pointer cursor for the last hover scan.
func (c *Controller) Cursor() element.Cursor { return c.cursor }

// Draft returns the element being drawn.
func (c *Controller) Draft() element.Element { return c.draft.Clone() }

// SetElements replaces the scene with a copy of elems and repaints. Indices
// that no longer exist are cleared.
func (c *Controller) SetElements(elems []element.Element) {
	c.elements = cloneAll(elems)
	n := len(c.elements)
	for _, idx := range []*int{&c.selected, &c.hovered, &c.draggable, &c.resizable} {
		if *idx >= n {
			*idx = -1
		}
	}
	c.Draw()
}

// Shape returns the shape of newly drawn elements.
func (c *Controller) Shape() element.Shape { return c.shape }

// SetShape changes the shape of newly drawn elements. Outside a gesture the
// draft is reset immediately; otherwise at the end of the gesture.
func (c *Controller) SetShape(s element.Shape) error {
	shape, err := element.ParseShape(string(s))
	if err != nil {
		return err
	}
	c.shape = shape
	if !c.pointerDown {
		c.draft = c.emptyElement()
	}
	return nil
}

// SetInitialElementColor changes the colour of newly drawn elements, with the
// same timing as SetShape.
func (c *Controller) SetInitialElementColor(color string) {
	if color == "" {
		color = element.Transparent
	}
	c.initialColor = color
	if !c.pointerDown {
		c.draft = c.emptyElement()
	}
}

// SetSize resizes the field. Invalid sizes are rejected without any change.
func (c *Controller) SetSize(width, height float64) error {
	return c.surface.SetSize(width, height)
}

// SetGridConfig merges cfg over the grid defaults and repaints both layers.
func (c *Controller) SetGridConfig(cfg surface.GridConfig) error {
	if err := c.surface.SetGridConfig(cfg); err != nil {
		return err
	}
	c.Draw()
	return nil
}

// SetGridSizeMouseStep toggles snapping to the grid at gesture end.
func (c *Controller) SetGridSizeMouseStep(on bool) { c.snap = on }

// GridSizeMouseStep reports whether gestures snap to the grid.
func (c *Controller) GridSizeMouseStep() bool { return c.snap }

// SetBackgroundColor changes the backdrop colour.
func (c *Controller) SetBackgroundColor(color string) { c.surface.SetBackgroundColor(color) }

// SetBackgroundImage starts loading a new backdrop image.
func (c *Controller) SetBackgroundImage(path string) { c.surface.SetBackgroundImage(path) }

// SetFitCanvasToImage changes whether a loaded backdrop resizes the field.
func (c *Controller) SetFitCanvasToImage(fit bool) { c.surface.SetFitToImage(fit) }

// SetOrigin records the field's position in client coordinates.
func (c *Controller) SetOrigin(p element.Point) { c.surface.SetOrigin(p) }

// SetScrollContainer sets the scrollable ancestor used for pointer mapping.
func (c *Controller) SetScrollContainer(sc surface.Scroller) { c.surface.SetScrollContainer(sc) }

// SetListener replaces the event listener.
func (c *Controller) SetListener(l Listener) { c.listener = l }

func (c *Controller) emit(kind EventKind, index int) {
	c.emitAt(kind, index, nil)
}

func (c *Controller) emitAt(kind EventKind, index int, click *element.Point) {
	if c.listener == nil || index < 0 || index >= len(c.elements) {
		return
	}
	c.listener(Event{
		Kind:        kind,
		Index:       index,
		Element:     c.elements[index].Clone(),
		ClickCoords: click,
	})
}

// Draw repaints every element onto the foreground layer. The element under
// the pointer gets the hover shadow; the selected and the dragged element get
// handles.
func (c *Controller) Draw() {
	if !c.surface.Mounted() {
		return
	}
	c.paint()
	c.notifyDraw()
}

func (c *Controller) paint() {
	fg := c.surface.Foreground()
	c.surface.ClearForeground()
	for i, e := range c.elements {
		render.Draw(fg, e, render.DrawOptions{Fill: true, Hovered: i == c.draggable})
		if i == c.selected || (c.dragStarted && i == c.draggable) {
			render.DrawHandles(fg, e)
		}
	}
}

// drawDraft repaints the scene with the unfilled draft on top.
func (c *Controller) drawDraft() {
	if !c.surface.Mounted() {
		return
	}
	c.paint()
	render.Draw(c.surface.Foreground(), c.draft, render.DrawOptions{})
	c.notifyDraw()
}

func (c *Controller) notifyDraw() {
	if c.onDraw != nil {
		c.onDraw(c.Scene())
	}
}
