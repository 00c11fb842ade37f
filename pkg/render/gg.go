package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// shadowPasses is the number of translucent halo strokes used to fake a blur.
const shadowPasses = 4

type ggState struct {
	fill      color.Color
	stroke    color.Color
	lineWidth float64
	dash      []float64
	shadow    Shadow
	face      font.Face
	align     TextAlign
	baseline  TextBaseline
}

// GG implements Context on top of a fogleman/gg context. gg clears the path on
// Fill and Stroke, so GG always uses the preserving variants to keep canvas
// path semantics.
type GG struct {
	dc    *gg.Context
	state ggState
	stack []ggState
}

// NewGG wraps dc. Defaults match a fresh HTML canvas: black fill and stroke,
// line width 1, left/alphabetic text.
func NewGG(dc *gg.Context) *GG {
	return &GG{
		dc: dc,
		state: ggState{
			fill:      color.Black,
			stroke:    color.Black,
			lineWidth: 1,
			align:     TextAlignLeft,
			baseline:  BaselineAlphabetic,
		},
	}
}

// Image returns the backing image.
func (c *GG) Image() image.Image { return c.dc.Image() }

func (c *GG) BeginPath() { c.dc.ClearPath() }

func (c *GG) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }

func (c *GG) LineTo(x, y float64) { c.dc.LineTo(x, y) }

func (c *GG) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c.dc.CubicTo(cp1x, cp1y, cp2x, cp2y, x, y)
}

func (c *GG) Rect(x, y, w, h float64) { c.dc.DrawRectangle(x, y, w, h) }

func (c *GG) Arc(x, y, r, startAngle, endAngle float64) {
	c.dc.DrawArc(x, y, r, startAngle, endAngle)
}

func (c *GG) ClosePath() { c.dc.ClosePath() }

func (c *GG) Fill() {
	if c.state.shadow.Enabled() {
		c.strokeShadow()
	}
	c.dc.SetColor(c.state.fill)
	c.dc.FillPreserve()
}

// strokeShadow paints a soft halo around the current path, widest and
// faintest first.
func (c *GG) strokeShadow() {
	col, err := ParseColor(c.state.shadow.Color)
	if err != nil {
		return
	}
	r, g, b, _ := col.RGBA()
	blur := math.Max(c.state.shadow.Blur, 1)

	c.dc.Push()
	c.dc.SetDash()
	for i := shadowPasses; i > 0; i-- {
		alpha := uint8(255 / (shadowPasses + 1) * (shadowPasses - i + 1) / shadowPasses)
		c.dc.SetColor(color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha})
		c.dc.SetLineWidth(blur * float64(i) / shadowPasses)
		c.dc.StrokePreserve()
	}
	c.dc.Pop()
}

func (c *GG) Stroke() {
	c.applyStroke()
	c.dc.StrokePreserve()
}

func (c *GG) applyStroke() {
	c.dc.SetColor(c.state.stroke)
	c.dc.SetLineWidth(c.state.lineWidth)
	c.dc.SetDash(c.state.dash...)
}

// StrokeRect strokes a rectangle. Unlike a browser canvas, gg has no way to
// stash the current path, so it is discarded.
func (c *GG) StrokeRect(x, y, w, h float64) {
	c.dc.Push()
	c.applyStroke()
	c.dc.NewSubPath()
	c.dc.MoveTo(x, y)
	c.dc.LineTo(x+w, y)
	c.dc.LineTo(x+w, y+h)
	c.dc.LineTo(x, y+h)
	c.dc.ClosePath()
	c.dc.Stroke()
	c.dc.Pop()
}

// ClearRect resets pixels to transparent. The rectangle is in device space.
func (c *GG) ClearRect(x, y, w, h float64) {
	img, ok := c.dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	draw.Draw(img, r.Canon(), image.Transparent, image.Point{}, draw.Src)
}

func (c *GG) SetFillColor(s string) {
	if col, err := ParseColor(s); err == nil {
		c.state.fill = col
	}
}

func (c *GG) SetStrokeColor(s string) {
	if col, err := ParseColor(s); err == nil {
		c.state.stroke = col
	}
}

func (c *GG) SetLineWidth(width float64) {
	if width > 0 && !math.IsInf(width, 0) && !math.IsNaN(width) {
		c.state.lineWidth = width
	}
}

func (c *GG) SetLineDash(pattern ...float64) {
	c.state.dash = append([]float64(nil), pattern...)
}

func (c *GG) SetShadow(s Shadow) { c.state.shadow = s }

func (c *GG) SetFont(s string) {
	f, err := ParseFont(s)
	if err != nil {
		return
	}
	face, err := f.Face()
	if err != nil {
		return
	}
	c.state.face = face
}

func (c *GG) SetTextAlign(a TextAlign) { c.state.align = a }

func (c *GG) SetTextBaseline(b TextBaseline) { c.state.baseline = b }

func (c *GG) FillText(text string, x, y float64) {
	if c.state.face != nil {
		c.dc.SetFontFace(c.state.face)
	}
	ax := 0.0
	switch c.state.align {
	case TextAlignCenter:
		ax = 0.5
	case TextAlignRight:
		ax = 1
	}
	ay := 0.0
	switch c.state.baseline {
	case BaselineMiddle:
		ay = 0.5
	case BaselineTop:
		ay = 1
	}
	c.dc.SetColor(c.state.fill)
	c.dc.DrawStringAnchored(text, x, y, ax, ay)
}

// DrawImage stretches img over the box. Negative extents mirror the box, not
// the bitmap.
func (c *GG) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	dw, dh := int(math.Round(w)), int(math.Round(h))
	if dw < 1 || dh < 1 {
		return
	}
	b := img.Bounds()
	if b.Dx() != dw || b.Dy() != dh {
		img = imaging.Resize(img, dw, dh, imaging.Linear)
	}
	c.dc.DrawImage(img, int(math.Round(x)), int(math.Round(y)))
}

func (c *GG) Save() {
	s := c.state
	s.dash = append([]float64(nil), c.state.dash...)
	c.stack = append(c.stack, s)
	c.dc.Push()
}

func (c *GG) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.dc.Pop()
}

func (c *GG) Scale(sx, sy float64) { c.dc.Scale(sx, sy) }

func (c *GG) Translate(tx, ty float64) { c.dc.Translate(tx, ty) }
