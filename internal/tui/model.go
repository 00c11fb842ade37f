package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"drawboard/pkg/board"
	"drawboard/pkg/element"
)

type model struct {
	board    *board.Board
	hooks    *hooks
	view     *viewport
	settings Settings

	scene         board.Scene
	width         int
	height        int
	pressed       bool
	shape         element.Shape
	selectedColor int // index into palette, -1 for a colour set by config
	snap          bool
	help          bool
	message       string
	errorMessage  string
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForScene(m.hooks.scenes), waitForNotice(m.hooks.notices))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sceneMsg:
		m.scene = board.Scene(msg)
		return m, waitForScene(m.hooks.scenes)

	case noticeMsg:
		m.setMessage(msg.text, msg.err)
		return m, waitForNotice(m.hooks.notices)

	case yankedMsg:
		m.setMessage(msg.text, msg.err)
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) setMessage(text string, isErr bool) {
	if isErr {
		m.errorMessage, m.message = text, ""
	} else {
		m.message, m.errorMessage = text, ""
	}
}

// canvasRows is the number of terminal rows showing the field.
func (m model) canvasRows() int {
	return max(1, m.height-1)
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	client := cellToClient(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.view.panBy(0, -panSpeed)
		case tea.MouseButtonWheelDown:
			m.view.panBy(0, panSpeed)
		case tea.MouseButtonLeft:
			if msg.Y >= m.canvasRows() {
				return
			}
			m.pressed = true
			m.board.Hover(client)
			m.board.PointerDown(client)
		}
	case tea.MouseActionRelease:
		if m.pressed {
			m.pressed = false
			m.board.PointerUp()
		}
	case tea.MouseActionMotion:
		if m.pressed {
			m.board.PointerMove(client)
		} else if msg.Y < m.canvasRows() {
			m.board.Hover(client)
		}
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.help {
		switch key {
		case "esc", "q", "?":
			m.help = false
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.help = true
	case "h", "left", "H", "shift+left",
		"l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up",
		"j", "down", "J", "shift+down":
		m.handlePan(key, getMoveSpeed(key))
	case "1", "2", "3", "4":
		m.setShape(element.Shapes[key[0]-'1'])
	case "c":
		m.cycleColor()
	case "g":
		m.snap = !m.snap
		snap := m.snap
		m.board.Do(func(c *board.Controller) { c.SetGridSizeMouseStep(snap) })
		m.setMessage(fmt.Sprintf("grid snap %s", onOff(snap)), false)
	case "w":
		m.save()
	case "t":
		m.saveText()
	case "y":
		return m, m.yank()
	}
	return m, nil
}

func (m *model) handlePan(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.view.panBy(-speed, 0)
	case "l", "right", "L", "shift+right":
		m.view.panBy(speed, 0)
	case "k", "up", "K", "shift+up":
		m.view.panBy(0, -speed)
	case "j", "down", "J", "shift+down":
		m.view.panBy(0, speed)
	}
}

func getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return fastPanSpeed
	default:
		return panSpeed
	}
}

func (m *model) setShape(shape element.Shape) {
	m.shape = shape
	h := m.hooks
	m.board.Do(func(c *board.Controller) {
		if err := c.SetShape(shape); err != nil {
			h.notify(err.Error(), true)
		}
	})
	m.setMessage(fmt.Sprintf("shape %s", shape), false)
}

func (m *model) cycleColor() {
	m.selectedColor = (m.selectedColor + 1) % len(palette)
	color := palette[m.selectedColor]
	m.board.Do(func(c *board.Controller) { c.SetInitialElementColor(color) })
	m.setMessage(fmt.Sprintf("colour %s", color), false)
}

// save writes the composited field on the board goroutine, which owns the
// surface. The outcome arrives as a notice.
func (m *model) save() {
	path := m.settings.SavePath
	h, logger := m.hooks, m.settings.Logger
	m.board.Do(func(c *board.Controller) {
		if err := c.Surface().SavePNG(path); err != nil {
			logger.Error("export failed", "path", path, "err", err)
			h.notify(err.Error(), true)
			return
		}
		h.notify("saved "+path, false)
	})
}

func (m *model) yank() tea.Cmd {
	i := m.scene.Selected
	if i < 0 || i >= len(m.scene.Elements) {
		m.setMessage("nothing selected", true)
		return nil
	}
	text := formatElement(m.scene.Elements[i])
	write, logger := m.settings.Clipboard, m.settings.Logger
	return func() tea.Msg {
		if err := write(text); err != nil {
			logger.Debug("clipboard write failed", "err", err)
			return yankedMsg{text: "clipboard: " + err.Error(), err: true}
		}
		return yankedMsg{text: "yanked " + text}
	}
}

func formatElement(e element.Element) string {
	return fmt.Sprintf("%s %g,%g %gx%g %s", e.Shape, e.X, e.Y, e.Width, e.Height, e.Color)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
