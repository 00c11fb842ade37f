// Package render paints elements, selection handles and grids onto a 2D
// drawing context.
//
// Renderers never mutate the elements they are given. All drawing goes through
// the Context capability; GG adapts a fogleman/gg context to it. A nil Context
// is accepted everywhere and turns every call into a no-op, so callers may
// draw before a surface is mounted.
package render

import "image"

// TextAlign is the horizontal anchor used by FillText.
type TextAlign string

const (
	TextAlignLeft   TextAlign = "left"
	TextAlignCenter TextAlign = "center"
	TextAlignRight  TextAlign = "right"
)

// TextBaseline is the vertical anchor used by FillText.
type TextBaseline string

const (
	BaselineAlphabetic TextBaseline = "alphabetic"
	BaselineMiddle     TextBaseline = "middle"
	BaselineTop        TextBaseline = "top"
)

// Shadow describes a drop shadow applied to fills. The zero value disables it.
type Shadow struct {
	Color   string
	Blur    float64
	OffsetX float64
	OffsetY float64
}

// Enabled reports whether the shadow would be visible.
func (s Shadow) Enabled() bool {
	return s.Color != "" && (s.Blur > 0 || s.OffsetX != 0 || s.OffsetY != 0)
}

// Context is the drawing capability renderers need. Path state persists across
// Fill and Stroke until BeginPath. Transforms apply to path points as they are
// added, so a path built under Scale keeps its shape after Restore.
type Context interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64)
	Rect(x, y, w, h float64)
	Arc(x, y, r, startAngle, endAngle float64)
	ClosePath()

	Fill()
	Stroke()
	StrokeRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)

	SetFillColor(color string)
	SetStrokeColor(color string)
	SetLineWidth(width float64)
	SetLineDash(pattern ...float64)
	SetShadow(s Shadow)

	SetFont(font string)
	SetTextAlign(a TextAlign)
	SetTextBaseline(b TextBaseline)
	FillText(text string, x, y float64)

	DrawImage(img image.Image, x, y, w, h float64)

	Save()
	Restore()
	Scale(sx, sy float64)
	Translate(tx, ty float64)
}
