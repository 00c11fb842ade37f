package tui

import "github.com/charmbracelet/lipgloss"

// A terminal cell stands for this many field pixels. The same ratio the
// character export uses for glyph boxes.
const (
	cellWidth  = 8
	cellHeight = 16
)

const (
	panSpeed     = 1
	fastPanSpeed = 4
)

// palette is the set of initial element colours cycled with 'c'.
var palette = []string{
	"transparent",
	"#e74c3c",
	"#f39c12",
	"#f1c40f",
	"#2ecc71",
	"#3498db",
	"#9b59b6",
	"#7f8c8d",
}

var (
	colorAccent = lipgloss.Color("#00D7FF")
	colorDim    = lipgloss.Color("#6C6C6C")
	colorError  = lipgloss.Color("#FF5F5F")

	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#303030"))
	keyStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	helpBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)
