package tui

import (
	"strings"
	"testing"

	"drawboard/pkg/board"
	"drawboard/pkg/element"
)

func TestPixelToCell(t *testing.T) {
	tests := []struct {
		px        float64
		size, pan int
		want      int
	}{
		{0, 8, 0, 0},
		{7.9, 8, 0, 0},
		{15, 8, 0, 1},
		{16, 8, 0, 2},
		{16, 8, 1, 1},
		{-1, 8, 0, -1},
		{31, 16, 0, 1},
	}
	for _, tt := range tests {
		if got := pixelToCell(tt.px, tt.size, tt.pan); got != tt.want {
			t.Errorf("pixelToCell(%v, %d, %d) = %d, want %d", tt.px, tt.size, tt.pan, got, tt.want)
		}
	}
}

func TestCellToClient(t *testing.T) {
	if got := cellToClient(3, 2); got != (element.Point{X: 24, Y: 32}) {
		t.Errorf("cellToClient(3, 2) = %v", got)
	}
}

func scene(elems ...element.Element) board.Scene {
	return board.Scene{Elements: elems, Selected: -1, Hovered: -1, Width: 80, Height: 64}
}

func rect(x, y, w, h float64) element.Element {
	return element.Element{X: x, Y: y, Width: w, Height: h, Shape: element.Rectangle, Color: element.Transparent}
}

func checkLines(t *testing.T, got, want []string) {
	t.Helper()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestRenderSceneRectangle(t *testing.T) {
	got := renderScene(scene(rect(8, 16, 32, 32)), 12, 5, point{})
	checkLines(t, got, []string{
		"          ░░",
		" +---+    ░░",
		" |   |    ░░",
		" +---+    ░░",
		"░░░░░░░░░░░░",
	})
}

func TestRenderSceneStates(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(*board.Scene)
		wantTop string
		wantMid string
	}{
		{"selected", func(s *board.Scene) { s.Selected = 0 }, " #####", " #   #"},
		{"hovered", func(s *board.Scene) { s.Hovered = 0 }, " *---*", " |   |"},
		{"filled", func(s *board.Scene) { s.Elements[0].Color = "#ff0000" }, " +---+", " |···|"},
		{"ellipse", func(s *board.Scene) { s.Elements[0].Shape = element.Ellipse }, " .---.", " (   )"},
		{"image", func(s *board.Scene) { s.Elements[0].Shape = element.Image }, " +===+", " |   |"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene(rect(8, 16, 32, 32))
			tt.edit(&s)
			got := renderScene(s, 6, 3, point{})
			if got[1] != tt.wantTop || got[2] != tt.wantMid {
				t.Errorf("rows = %q, %q, want %q, %q", got[1], got[2], tt.wantTop, tt.wantMid)
			}
		})
	}
}

func TestRenderSceneLabel(t *testing.T) {
	tests := []struct {
		align element.Align
		want  string
	}{
		{element.AlignCenter, " |hi |"},
		{element.AlignLeft, " |hi |"},
		{element.AlignRight, " | hi|"},
		{"", " |hi |"},
	}
	for _, tt := range tests {
		t.Run(string(tt.align), func(t *testing.T) {
			e := rect(8, 16, 32, 32)
			e.Text = &element.Text{Value: "hi", Align: tt.align}
			got := renderScene(scene(e), 6, 4, point{})
			if got[2] != tt.want {
				t.Errorf("label row = %q, want %q", got[2], tt.want)
			}
		})
	}

	e := rect(8, 16, 32, 32)
	e.Text = &element.Text{Value: "toolong"}
	if got := renderScene(scene(e), 6, 4, point{})[2]; got != " |too|" {
		t.Errorf("clipped label = %q", got)
	}
}

func TestRenderSceneDraft(t *testing.T) {
	// A draft dragged up and to the left has negative extents.
	d := rect(40, 48, -32, -32)
	s := scene()
	s.Draft = &d
	got := renderScene(s, 6, 4, point{})
	checkLines(t, got[1:4], []string{
		" .....",
		" :   :",
		" .....",
	})
}

func TestRenderSceneTriangle(t *testing.T) {
	e := rect(0, 0, 32, 32)
	e.Shape = element.Triangle
	s := board.Scene{Elements: []element.Element{e}, Selected: -1, Hovered: -1, Width: 40, Height: 48}
	checkLines(t, renderScene(s, 5, 3, point{}), []string{
		"  ^  ",
		" / \\ ",
		"/___\\",
	})

	s.Selected = 0
	checkLines(t, renderScene(s, 5, 3, point{}), []string{
		"  #  ",
		" # # ",
		"#####",
	})
}

func TestRenderScenePan(t *testing.T) {
	got := renderScene(scene(rect(16, 16, 32, 32)), 6, 3, point{X: 2, Y: 1})
	if got[0] != "+---+ " {
		t.Errorf("panned top row = %q", got[0])
	}
}

func TestRenderSceneClipsOffscreen(t *testing.T) {
	s := scene(rect(-40, -40, 400, 400))
	s.Width, s.Height = 800, 800
	got := renderScene(s, 4, 2, point{})
	if len(got) != 2 || len([]rune(got[0])) != 4 {
		t.Fatalf("renderScene() = %q", got)
	}
}
