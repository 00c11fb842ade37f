package tui

import (
	"math"
	"strings"

	"drawboard/pkg/board"
	"drawboard/pkg/element"
	"drawboard/pkg/render"
)

type point struct {
	X, Y int
}

// cellRect is an inclusive range of terminal cells.
type cellRect struct {
	x0, y0, x1, y1 int
}

func (r cellRect) width() int  { return r.x1 - r.x0 + 1 }
func (r cellRect) height() int { return r.y1 - r.y0 + 1 }

type borderRunes struct {
	tl, tr, bl, br rune
	horizontal     rune
	left, right    rune
}

var (
	rectangleRunes = borderRunes{'+', '+', '+', '+', '-', '|', '|'}
	ellipseRunes   = borderRunes{'.', '.', '\'', '\'', '-', '(', ')'}
	imageRunes     = borderRunes{'+', '+', '+', '+', '=', '|', '|'}
	draftRunes     = borderRunes{'.', '.', '.', '.', '.', ':', ':'}
	selectedRunes  = borderRunes{'#', '#', '#', '#', '#', '#', '#'}
)

const (
	outsideField = '░'
	fillRune     = '·'
)

// pixelToCell maps a field pixel to the cell that shows it under pan.
func pixelToCell(px float64, size, pan int) int {
	return int(math.Floor(px/float64(size))) - pan
}

// cellToClient maps a cell back to the client pixel at its top-left corner.
// The field sits at the client origin; pan is applied by the scroll offset.
func cellToClient(x, y int) element.Point {
	return element.Point{X: float64(x * cellWidth), Y: float64(y * cellHeight)}
}

func elementCells(e element.Element, pan point) cellRect {
	element.Normalize(&e)
	r := cellRect{
		x0: pixelToCell(e.X, cellWidth, pan.X),
		y0: pixelToCell(e.Y, cellHeight, pan.Y),
		x1: pixelToCell(e.X+e.Width, cellWidth, pan.X),
		y1: pixelToCell(e.Y+e.Height, cellHeight, pan.Y),
	}
	if r.x1 < r.x0 {
		r.x1 = r.x0
	}
	if r.y1 < r.y0 {
		r.y1 = r.y0
	}
	return r
}

// renderScene rasterizes a scene into cols x rows lines of runes.
func renderScene(s board.Scene, cols, rows int, pan point) []string {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	canvas := make([][]rune, rows)
	fieldCols := pixelToCell(s.Width-1, cellWidth, pan.X)
	fieldRows := pixelToCell(s.Height-1, cellHeight, pan.Y)
	for y := range canvas {
		canvas[y] = make([]rune, cols)
		for x := range canvas[y] {
			if x > fieldCols || y > fieldRows {
				canvas[y][x] = outsideField
			} else {
				canvas[y][x] = ' '
			}
		}
	}

	for i, e := range s.Elements {
		drawElement(canvas, e, elementCells(e, pan), i == s.Selected, i == s.Hovered)
	}
	if s.Draft != nil {
		drawBoxAt(canvas, elementCells(*s.Draft, pan), draftRunes)
	}

	lines := make([]string, rows)
	for y, row := range canvas {
		lines[y] = string(row)
	}
	return lines
}

func drawElement(canvas [][]rune, e element.Element, r cellRect, selected, hovered bool) {
	if !render.IsTransparent(e.Color) {
		fillAt(canvas, r)
	}

	runes := rectangleRunes
	switch e.Shape {
	case element.Ellipse:
		runes = ellipseRunes
	case element.Image:
		runes = imageRunes
	case element.Triangle:
		drawTriangleAt(canvas, r, selected)
		drawLabel(canvas, e, r)
		return
	}
	if selected {
		runes = selectedRunes
	} else if hovered {
		runes.tl, runes.tr, runes.bl, runes.br = '*', '*', '*', '*'
	}
	drawBoxAt(canvas, r, runes)
	drawLabel(canvas, e, r)
}

func setCell(canvas [][]rune, x, y int, ch rune) {
	if y < 0 || y >= len(canvas) || x < 0 || x >= len(canvas[y]) {
		return
	}
	canvas[y][x] = ch
}

func fillAt(canvas [][]rune, r cellRect) {
	for y := r.y0 + 1; y < r.y1; y++ {
		for x := r.x0 + 1; x < r.x1; x++ {
			setCell(canvas, x, y, fillRune)
		}
	}
}

func drawBoxAt(canvas [][]rune, r cellRect, b borderRunes) {
	for y := r.y0; y <= r.y1; y++ {
		for x := r.x0; x <= r.x1; x++ {
			top, bottom := y == r.y0, y == r.y1
			left, right := x == r.x0, x == r.x1
			switch {
			case top && left:
				setCell(canvas, x, y, b.tl)
			case top && right:
				setCell(canvas, x, y, b.tr)
			case bottom && left:
				setCell(canvas, x, y, b.bl)
			case bottom && right:
				setCell(canvas, x, y, b.br)
			case top || bottom:
				setCell(canvas, x, y, b.horizontal)
			case left:
				setCell(canvas, x, y, b.left)
			case right:
				setCell(canvas, x, y, b.right)
			}
		}
	}
}

// drawTriangleAt draws an isosceles triangle with its apex at the top
// middle of r and its base along the bottom row.
func drawTriangleAt(canvas [][]rune, r cellRect, selected bool) {
	mid := float64(r.x0+r.x1) / 2
	span := float64(r.height() - 1)
	for y := r.y0; y <= r.y1; y++ {
		t := 1.0
		if span > 0 {
			t = float64(y-r.y0) / span
		}
		half := t * float64(r.width()-1) / 2
		left := int(math.Round(mid - half))
		right := int(math.Round(mid + half))

		l, rr := '/', '\\'
		if selected {
			l, rr = '#', '#'
		} else if left == right {
			l = '^'
		}
		if y == r.y1 {
			h := '_'
			if selected {
				h = '#'
			}
			for x := left + 1; x < right; x++ {
				setCell(canvas, x, y, h)
			}
		}
		setCell(canvas, left, y, l)
		if right != left {
			setCell(canvas, right, y, rr)
		}
	}
}

// drawLabel writes the element text on the middle row, clipped to the
// interior and placed by its alignment.
func drawLabel(canvas [][]rune, e element.Element, r cellRect) {
	if e.Text == nil || e.Text.Value == "" {
		if e.Shape == element.Image && e.ImageSrc != nil {
			e.Text = &element.Text{Value: "img"}
		} else {
			return
		}
	}
	inner := r.width() - 2
	if inner <= 0 || r.height() < 3 {
		return
	}
	text := []rune(strings.ReplaceAll(e.Text.Value, "\n", " "))
	if len(text) > inner {
		text = text[:inner]
	}

	x := r.x0 + 1
	switch e.Text.Align {
	case element.AlignLeft:
	case element.AlignRight:
		x = r.x1 - len(text)
	default:
		x += (inner - len(text)) / 2
	}
	y := (r.y0 + r.y1) / 2
	for i, ch := range text {
		setCell(canvas, x+i, y, ch)
	}
}
