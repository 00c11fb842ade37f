package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.help {
		return m.helpView()
	}

	lines := renderScene(m.scene, m.width, m.canvasRows(), m.view.pan())
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.statusBar())
	return b.String()
}

func (m model) statusBar() string {
	color := "config"
	if m.selectedColor >= 0 {
		color = palette[m.selectedColor]
	}
	pan := m.view.pan()
	parts := []string{
		keyStyle.Render(string(m.shape)),
		"colour " + color,
		"snap " + onOff(m.snap),
		fmt.Sprintf("pan %d,%d", pan.X, pan.Y),
		string(m.scene.Cursor),
	}
	if m.scene.Selected >= 0 {
		parts = append(parts, fmt.Sprintf("sel #%d", m.scene.Selected))
	}
	status := " " + strings.Join(parts, dimStyle.Render(" │ "))
	switch {
	case m.errorMessage != "":
		status += "  " + errorStyle.Render(m.errorMessage)
	case m.message != "":
		status += "  " + m.message
	}
	return statusStyle.Width(m.width).MaxWidth(m.width).Render(status)
}

var helpLines = []string{
	"drawboard",
	"",
	"Mouse:",
	"  drag on empty field   draw a new element",
	"  drag an element       move it",
	"  drag a handle         resize the selected element",
	"  click                 select",
	"  wheel                 pan up/down",
	"",
	"Keys:",
	"  h/j/k/l, arrows       pan (Shift for faster)",
	"  1 2 3 4               rectangle, ellipse, triangle, image",
	"  c                     cycle fill colour",
	"  g                     toggle grid snap",
	"  w                     write PNG",
	"  t                     write the text view",
	"  y                     yank selected element",
	"  ?                     toggle help",
	"  q                     quit",
}

func (m model) helpView() string {
	box := helpBoxStyle.Render(strings.Join(helpLines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
