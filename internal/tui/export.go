package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// textPath is the PNG save path with a .txt extension.
func textPath(pngPath string) string {
	return strings.TrimSuffix(pngPath, filepath.Ext(pngPath)) + ".txt"
}

// exportText writes the field exactly as the terminal shows it, without the
// status bar.
func (m *model) exportText(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	width := m.width
	if width < 1 {
		width = 80
	}
	for _, line := range renderScene(m.scene, width, m.canvasRows(), m.view.pan()) {
		if _, err := fmt.Fprintln(file, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func (m *model) saveText() {
	path := textPath(m.settings.SavePath)
	if err := m.exportText(path); err != nil {
		m.settings.Logger.Error("text export failed", "path", path, "err", err)
		m.setMessage(err.Error(), true)
		return
	}
	m.setMessage("saved "+path, false)
}
