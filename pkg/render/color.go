package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor understands "transparent", CSS named colours, #rgb, #rrggbb and
// rgb()/rgba() notation.
func ParseColor(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(v, "#"):
		c, err := colorful.Hex(v)
		if err != nil {
			return nil, fmt.Errorf("parse colour %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	case strings.HasPrefix(v, "rgb"):
		return parseRGBFunc(v)
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown colour %q", s)
}

func parseRGBFunc(v string) (color.Color, error) {
	open := strings.IndexByte(v, '(')
	end := strings.LastIndexByte(v, ')')
	if open < 0 || end < open {
		return nil, fmt.Errorf("malformed colour %q", v)
	}
	parts := strings.Split(v[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return nil, fmt.Errorf("malformed colour %q", v)
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[i]), "%d", &n); err != nil {
			return nil, fmt.Errorf("malformed colour %q: %w", v, err)
		}
		rgb[i] = uint8(min(max(n, 0), 255))
	}
	alpha := 1.0
	if len(parts) == 4 {
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[3]), "%g", &alpha); err != nil {
			return nil, fmt.Errorf("malformed colour %q: %w", v, err)
		}
		alpha = min(max(alpha, 0), 1)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(alpha*255 + 0.5)}, nil
}

// IsTransparent reports whether s names a fully transparent colour. Unparsable
// and empty colours count as transparent.
func IsTransparent(s string) bool {
	c, err := ParseColor(s)
	if err != nil {
		return true
	}
	_, _, _, a := c.RGBA()
	return a == 0
}
