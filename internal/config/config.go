// Package config loads the drawboard configuration file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/disintegration/imaging"

	"drawboard/pkg/board"
	"drawboard/pkg/element"
	drawerrors "drawboard/pkg/errors"
	"drawboard/pkg/surface"
)

// FileName is the configuration file looked up in the home directory.
const FileName = ".drawboard.toml"

type Config struct {
	Width               float64            `toml:"width"`
	Height              float64            `toml:"height"`
	Shape               string             `toml:"shape"`
	InitialElementColor string             `toml:"initial_element_color"`
	BackgroundColor     string             `toml:"background_color"`
	BackgroundImage     string             `toml:"background_image"`
	FitCanvasToImage    bool               `toml:"fit_canvas_to_image"`
	GridSizeMouseStep   bool               `toml:"grid_size_mouse_step"`
	Grid                surface.GridConfig `toml:"grid"`
	SaveDirectory       string             `toml:"save_directory"`
	Elements            []Element          `toml:"elements"`
}

// Element is an element entry. Image elements name an image file in Image.
type Element struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Shape  string  `toml:"shape"`
	Color  string  `toml:"color"`
	Image  string  `toml:"image"`
	Text   *Text   `toml:"text"`
	Border *Border `toml:"border"`
}

type Text struct {
	Value      string `toml:"value"`
	Color      string `toml:"color"`
	FontWeight int    `toml:"font_weight"`
	FontFamily string `toml:"font_family"`
	FontStyle  string `toml:"font_style"`
	FontSize   string `toml:"font_size"`
	Align      string `toml:"align"`
}

type Border struct {
	Color string  `toml:"color"`
	Width float64 `toml:"width"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	opts := board.DefaultOptions()
	return &Config{
		Width:               opts.Width,
		Height:              opts.Height,
		Shape:               string(opts.Shape),
		InitialElementColor: opts.InitialElementColor,
		BackgroundColor:     opts.BackgroundColor,
		FitCanvasToImage:    opts.FitCanvasToImage,
	}
}

// DefaultPath returns ~/.drawboard.toml, or "" if the home directory is
// unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads the file at path over the defaults. An empty path means
// DefaultPath. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, drawerrors.Wrap(drawerrors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, drawerrors.Wrap(drawerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	base := filepath.Dir(path)
	cfg.SaveDirectory = expandPath(cfg.SaveDirectory, "")
	cfg.BackgroundImage = expandPath(cfg.BackgroundImage, base)
	for i := range cfg.Elements {
		cfg.Elements[i].Image = expandPath(cfg.Elements[i].Image, base)
	}
	return cfg, nil
}

// expandPath resolves a leading ~ and makes p absolute, relative to base when
// given, else to the working directory.
func expandPath(p, base string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	if base != "" {
		return filepath.Join(base, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetSavePath places filename in the save directory, creating it if needed.
// Without a save directory filename is returned unchanged.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// Options validates the configuration and converts it into board options.
// Element images are decoded here; an unreadable image is an error.
func (c *Config) Options() (board.Options, error) {
	opts := board.DefaultOptions()
	opts.Width = c.Width
	opts.Height = c.Height
	opts.InitialElementColor = c.InitialElementColor
	opts.BackgroundColor = c.BackgroundColor
	opts.BackgroundImage = c.BackgroundImage
	opts.FitCanvasToImage = c.FitCanvasToImage
	opts.GridSizeMouseStep = c.GridSizeMouseStep
	opts.GridConfig = c.Grid

	if c.Shape != "" {
		shape, err := element.ParseShape(c.Shape)
		if err != nil {
			return opts, err
		}
		opts.Shape = shape
	}
	if err := surface.ValidateSize(c.Width, c.Height); err != nil {
		return opts, err
	}
	if err := c.Grid.Merge(surface.DefaultGrid()).Validate(); err != nil {
		return opts, err
	}

	for i, ec := range c.Elements {
		e, err := ec.element()
		if err != nil {
			return opts, drawerrors.Wrap(drawerrors.ErrCodeInvalidConfig, err, "element %d", i)
		}
		opts.Elements = append(opts.Elements, e)
	}
	return opts, nil
}

func (ec Element) element() (element.Element, error) {
	shape := element.Rectangle
	if ec.Shape != "" {
		var err error
		if shape, err = element.ParseShape(ec.Shape); err != nil {
			return element.Element{}, err
		}
	}
	e := element.Element{
		X:      ec.X,
		Y:      ec.Y,
		Width:  ec.Width,
		Height: ec.Height,
		Shape:  shape,
		Color:  ec.Color,
	}
	if e.Color == "" {
		e.Color = element.Transparent
	}
	element.Normalize(&e)

	if ec.Text != nil {
		e.Text = &element.Text{
			Value:      ec.Text.Value,
			Color:      ec.Text.Color,
			FontWeight: ec.Text.FontWeight,
			FontFamily: ec.Text.FontFamily,
			FontStyle:  ec.Text.FontStyle,
			FontSize:   ec.Text.FontSize,
			Align:      element.Align(strings.ToLower(ec.Text.Align)),
		}
	}
	if ec.Border != nil {
		e.Border = &element.Border{Color: ec.Border.Color, Width: ec.Border.Width}
	}
	if ec.Image != "" {
		img, err := imaging.Open(ec.Image)
		if err != nil {
			return element.Element{}, drawerrors.Wrap(drawerrors.ErrCodeImageLoad, err, "open %s", ec.Image)
		}
		e.ImageSrc = img
	}
	return e, nil
}
