package surface

import (
	"image"
	"io"
	"os"

	"github.com/fogleman/gg"

	"drawboard/pkg/errors"
	"drawboard/pkg/render"
)

// Snapshot composites the backdrop, the background layer and the foreground
// layer into a single image. The backdrop is the background image tiled from
// the origin, or the background colour when no image has loaded.
func (s *Surface) Snapshot() image.Image {
	w, h := s.pixelSize()
	dc := gg.NewContext(w, h)

	if s.backdrop != nil {
		b := s.backdrop.Bounds()
		if b.Dx() > 0 && b.Dy() > 0 {
			for y := 0; y < h; y += b.Dy() {
				for x := 0; x < w; x += b.Dx() {
					dc.DrawImage(s.backdrop, x, y)
				}
			}
		}
	} else if s.backgroundImage == "" {
		if col, err := render.ParseColor(s.backgroundColor); err == nil {
			dc.SetColor(col)
			dc.Clear()
		}
	}

	if s.background != nil {
		dc.DrawImage(s.background.Image(), 0, 0)
	}
	if s.foreground != nil {
		dc.DrawImage(s.foreground.Image(), 0, 0)
	}
	return dc.Image()
}

// WritePNG encodes a snapshot as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	dc := gg.NewContextForImage(s.Snapshot())
	if err := dc.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "encode png")
	}
	return nil
}

// SavePNG writes a snapshot to the PNG file at path.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "create %s", path)
	}
	if err := s.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "close %s", path)
	}
	s.logger.Debug("snapshot saved", "path", path)
	return nil
}
