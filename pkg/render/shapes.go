package render

import (
	"math"

	"drawboard/pkg/element"
)

// Defaults for the decoration passes.
const (
	DefaultFontWeight = 300
	DefaultFontSize   = "28px"
	DefaultFontFamily = "Arial"
	DefaultFontStyle  = "normal"
	DefaultTextColor  = "#000"

	DefaultBorderColor = "#000"
	DefaultBorderWidth = 1.0

	HandleColor = "#00B100"
)

// HoverShadow is the drop shadow of a hovered element.
var HoverShadow = Shadow{Color: "#ccc", Blur: 10}

// DashPattern is the outline of an element that would otherwise be invisible.
var DashPattern = []float64{5, 3}

// DrawOptions controls how an element is painted. Committed elements are
// filled; the draft being drawn is not.
type DrawOptions struct {
	Fill    bool
	Hovered bool
}

// Renderer paints one shape kind.
type Renderer interface {
	Draw(ctx Context, e element.Element, opts DrawOptions)
}

type (
	rectangleRenderer struct{}
	ellipseRenderer   struct{}
	triangleRenderer  struct{}
	imageRenderer     struct{}
)

var renderers = map[element.Shape]Renderer{
	element.Rectangle: rectangleRenderer{},
	element.Ellipse:   ellipseRenderer{},
	element.Triangle:  triangleRenderer{},
	element.Image:     imageRenderer{},
}

// ForShape returns the renderer for s, or nil for an unknown shape.
func ForShape(s element.Shape) Renderer {
	return renderers[s]
}

// Draw dispatches e to its shape renderer. Unknown shapes and a nil ctx draw
// nothing.
func Draw(ctx Context, e element.Element, opts DrawOptions) {
	if ctx == nil {
		return
	}
	if r := ForShape(e.Shape); r != nil {
		r.Draw(ctx, e, opts)
	}
}

func (rectangleRenderer) Draw(ctx Context, e element.Element, opts DrawOptions) {
	if ctx == nil {
		return
	}
	ctx.SetLineDash()
	ctx.BeginPath()
	ctx.Rect(e.X, e.Y, e.Width, e.Height)
	decorate(ctx, e, opts)
}

// Draw inscribes a unit circle in e's box by scaling the context to the half
// extents. The scale is undone before any fill or stroke so line widths stay
// in device pixels.
func (ellipseRenderer) Draw(ctx Context, e element.Element, opts DrawOptions) {
	if ctx == nil {
		return
	}
	if e.Width == 0 || e.Height == 0 {
		ctx.BeginPath()
		drawText(ctx, e)
		return
	}
	sx := e.Width / 2
	sy := e.Height / 2
	cx := e.X/sx + 1
	cy := e.Y/sy + 1

	ctx.Save()
	ctx.BeginPath()
	ctx.Scale(sx, sy)
	ctx.Arc(cx, cy, 1, 0, 2*math.Pi)
	ctx.Restore()

	decorate(ctx, e, opts)
}

// Draw builds an isosceles triangle with its apex at the middle of the top
// edge.
func (triangleRenderer) Draw(ctx Context, e element.Element, opts DrawOptions) {
	if ctx == nil {
		return
	}
	apexX := e.X + e.Width/2
	bottom := e.Y + e.Height

	ctx.BeginPath()
	ctx.SetLineWidth(DefaultBorderWidth)
	ctx.MoveTo(apexX, e.Y)
	ctx.LineTo(e.X, bottom)
	ctx.LineTo(e.X+e.Width, bottom)
	ctx.LineTo(apexX, e.Y)
	ctx.ClosePath()
	decorate(ctx, e, opts)
}

// Draw blits the bitmap stretched over e. The path stays empty, so only the
// border, dashed outline and text passes are visible besides the bitmap.
func (imageRenderer) Draw(ctx Context, e element.Element, opts DrawOptions) {
	if ctx == nil {
		return
	}
	ctx.SetLineDash()
	ctx.BeginPath()
	if e.ImageSrc != nil {
		ctx.DrawImage(e.ImageSrc, e.X, e.Y, e.Width, e.Height)
	}
	decorate(ctx, e, opts)
}

// decorate runs the passes shared by every shape over the path the shape has
// just built: fill or preview stroke, permanent border, dashed outline for
// invisible elements, then text.
func decorate(ctx Context, e element.Element, opts DrawOptions) {
	bordered := e.Border != nil && e.Border.Color != ""
	invisible := IsTransparent(e.Color) && !bordered

	if opts.Fill {
		ctx.SetFillColor(e.Color)
		ctx.ClosePath()
		if opts.Hovered && !IsTransparent(e.Color) {
			ctx.SetShadow(HoverShadow)
		} else {
			ctx.SetShadow(Shadow{})
		}
		ctx.Fill()
	} else if !invisible {
		ctx.SetLineDash()
		ctx.SetStrokeColor(DefaultBorderColor)
		ctx.SetLineWidth(DefaultBorderWidth)
		ctx.Stroke()
	}

	if bordered {
		ctx.SetLineDash()
		ctx.SetStrokeColor(e.Border.Color)
		width := e.Border.Width
		if width <= 0 {
			width = DefaultBorderWidth
		}
		ctx.SetLineWidth(width)
		if e.IsImage() {
			ctx.StrokeRect(e.X, e.Y, e.Width, e.Height)
		} else {
			ctx.Stroke()
		}
	}

	if invisible {
		ctx.SetShadow(Shadow{})
		ctx.SetLineDash(DashPattern...)
		ctx.SetStrokeColor(DefaultBorderColor)
		ctx.SetLineWidth(DefaultBorderWidth)
		if e.IsImage() {
			ctx.BeginPath()
			ctx.Rect(e.X, e.Y, e.Width, e.Height)
		}
		ctx.Stroke()
		ctx.SetLineDash()
	}

	drawText(ctx, e)
}

func drawText(ctx Context, e element.Element) {
	if e.Text == nil || e.Text.Value == "" {
		return
	}
	t := e.Text

	style := fallback(t.FontStyle, DefaultFontStyle)
	weight := t.FontWeight
	if weight == 0 {
		weight = DefaultFontWeight
	}
	size := fallback(t.FontSize, DefaultFontSize)
	family := fallback(t.FontFamily, DefaultFontFamily)

	ctx.SetShadow(Shadow{})
	ctx.SetFont(ComposeFont(style, weight, size, family))
	ctx.SetFillColor(fallback(t.Color, DefaultTextColor))
	ctx.SetTextBaseline(BaselineMiddle)

	x := e.X + e.Width/2
	y := e.Y + e.Height/2
	switch t.Align {
	case element.AlignLeft:
		x = e.X
		ctx.SetTextAlign(TextAlignLeft)
	case element.AlignRight:
		x = e.X + e.Width
		ctx.SetTextAlign(TextAlignRight)
	default:
		ctx.SetTextAlign(TextAlignCenter)
	}
	ctx.FillText(t.Value, x, y)
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// DrawHandles paints the compass handles of e.
func DrawHandles(ctx Context, e element.Element) {
	if ctx == nil {
		return
	}
	ctx.SetShadow(Shadow{})
	for _, h := range element.Handles {
		pos, ok := element.HandlePosition(h, e)
		if !ok {
			continue
		}
		ctx.SetFillColor(HandleColor)
		ctx.BeginPath()
		ctx.Arc(pos.X, pos.Y, element.HandleRadius, 0, 2*math.Pi)
		ctx.Fill()
	}
}

// GridStyle is the resolved appearance of a background grid.
type GridStyle struct {
	CellSize    float64
	StrokeWidth float64
	StrokeColor string
}

// DrawGrid strokes horizontal then vertical lines every CellSize pixels,
// starting one cell in from the origin. A zero stroke width draws nothing.
// The half-pixel offset keeps 1px lines crisp and is undone before returning.
func DrawGrid(ctx Context, g GridStyle, width, height float64) {
	if ctx == nil || g.CellSize <= 0 || g.StrokeWidth <= 0 {
		return
	}
	ctx.Save()
	defer ctx.Restore()
	ctx.Translate(0.5, 0.5)
	ctx.SetLineDash()
	ctx.SetShadow(Shadow{})

	line := func(x0, y0, x1, y1 float64) {
		ctx.BeginPath()
		ctx.MoveTo(x0, y0)
		ctx.LineTo(x1, y1)
		ctx.SetStrokeColor(g.StrokeColor)
		ctx.SetLineWidth(g.StrokeWidth)
		ctx.Stroke()
	}

	for y := 0.0; y < height; y += g.CellSize {
		line(0, y+g.CellSize, width, y+g.CellSize)
	}
	for x := 0.0; x < width; x += g.CellSize {
		line(x+g.CellSize, 0, x+g.CellSize, height)
	}
}

// ClearField erases the whole field.
func ClearField(ctx Context, width, height float64) {
	if ctx == nil {
		return
	}
	ctx.ClearRect(0, 0, width, height)
}
