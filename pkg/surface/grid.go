package surface

import (
	"math"

	"drawboard/pkg/errors"
	"drawboard/pkg/render"
)

// Grid is a fully resolved grid configuration.
type Grid struct {
	Enabled     bool
	CellSize    float64
	StrokeWidth float64
	StrokeColor string
}

// DefaultGrid returns the grid used for any field a GridConfig leaves unset.
func DefaultGrid() Grid {
	return Grid{
		Enabled:     true,
		CellSize:    12,
		StrokeWidth: 0.3,
		StrokeColor: "#000000",
	}
}

// Validate checks that the cell size is a positive number and the stroke
// width a non-negative one.
func (g Grid) Validate() error {
	if math.IsNaN(g.StrokeWidth) || math.IsInf(g.StrokeWidth, 0) {
		return errors.New(errors.ErrCodeInvalidGrid, "grid strokeWidth should be a number")
	}
	if g.StrokeWidth < 0 {
		return errors.New(errors.ErrCodeInvalidGrid, "grid strokeWidth should be >= 0, got %v", g.StrokeWidth)
	}
	if math.IsNaN(g.CellSize) || math.IsInf(g.CellSize, 0) {
		return errors.New(errors.ErrCodeInvalidGrid, "grid cellSize should be a number")
	}
	if g.CellSize <= 0 {
		return errors.New(errors.ErrCodeInvalidGrid, "grid cellSize should be > 0, got %v", g.CellSize)
	}
	return nil
}

// Style converts g into the renderer's grid style.
func (g Grid) Style() render.GridStyle {
	return render.GridStyle{
		CellSize:    g.CellSize,
		StrokeWidth: g.StrokeWidth,
		StrokeColor: g.StrokeColor,
	}
}

// GridConfig is a partial grid configuration. Nil fields fall back to the
// base grid it is merged over.
type GridConfig struct {
	Enabled     *bool    `toml:"enabled"`
	CellSize    *float64 `toml:"cell_size"`
	StrokeWidth *float64 `toml:"stroke_width"`
	StrokeColor *string  `toml:"stroke_color"`
}

// Merge overlays the fields set in c onto base.
func (c GridConfig) Merge(base Grid) Grid {
	if c.Enabled != nil {
		base.Enabled = *c.Enabled
	}
	if c.CellSize != nil {
		base.CellSize = *c.CellSize
	}
	if c.StrokeWidth != nil {
		base.StrokeWidth = *c.StrokeWidth
	}
	if c.StrokeColor != nil {
		base.StrokeColor = *c.StrokeColor
	}
	return base
}

// Grid returns the resolved grid.
func (s *Surface) Grid() Grid { return s.grid }

// SetGridConfig merges cfg over the defaults, validates the result and
// repaints the background. An invalid config leaves the grid unchanged.
func (s *Surface) SetGridConfig(cfg GridConfig) error {
	grid := cfg.Merge(DefaultGrid())
	if err := grid.Validate(); err != nil {
		return err
	}
	s.grid = grid
	s.DrawBackground()
	return nil
}
