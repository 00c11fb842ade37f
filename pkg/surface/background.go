package surface

import (
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"drawboard/pkg/errors"
)

func openImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageLoad, err, "open %s", path)
	}
	return img, nil
}

// BackgroundColor returns the colour painted behind the grid.
func (s *Surface) BackgroundColor() string { return s.backgroundColor }

// SetBackgroundColor changes the backdrop colour. It is only visible while no
// background image is set.
func (s *Surface) SetBackgroundColor(c string) {
	if c == "" {
		c = DefaultBackgroundColor
	}
	s.backgroundColor = c
}

// BackgroundImage returns the configured background image path.
func (s *Surface) BackgroundImage() string { return s.backgroundImage }

// Backdrop returns the decoded background image, or nil while it is unset,
// loading or failed to load.
func (s *Surface) Backdrop() image.Image { return s.backdrop }

// FitToImage reports whether the field follows the background image size.
func (s *Surface) FitToImage() bool { return s.fitToImage }

// SetFitToImage changes whether a loaded background image resizes the field.
// It applies to the next load.
func (s *Surface) SetFitToImage(fit bool) { s.fitToImage = fit }

// SetBackgroundImage starts loading the image at path. Once decoded it becomes
// the backdrop and, with FitToImage set, the field is resized to its natural
// size. Load failures are logged and otherwise ignored: the field keeps its
// configured size. A later call supersedes any load still in flight.
func (s *Surface) SetBackgroundImage(path string) {
	s.loadGen++
	s.backgroundImage = path
	s.backdrop = nil
	if path == "" {
		return
	}

	gen := s.loadGen
	if s.post == nil {
		img, err := s.open(path)
		s.imageLoaded(gen, path, img, err)
		return
	}
	go func() {
		img, err := s.open(path)
		s.post(func() { s.imageLoaded(gen, path, img, err) })
	}()
}

func (s *Surface) imageLoaded(gen int, path string, img image.Image, err error) {
	if gen != s.loadGen {
		return
	}
	if err != nil {
		s.logger.Debug("background image not loaded", "path", path, "err", err)
		return
	}
	s.backdrop = img
	b := img.Bounds()
	s.logger.Debug("background image loaded", "path", path, "width", b.Dx(), "height", b.Dy())
	if !s.fitToImage {
		return
	}
	if err := s.SetSize(float64(b.Dx()), float64(b.Dy())); err != nil {
		s.logger.Debug("background image not applied", "path", path, "err", err)
	}
}
