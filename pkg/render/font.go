package render

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is a parsed CSS-style font shorthand: "<style> <weight> <size> <family>".
type Font struct {
	Style  string
	Weight int
	Size   float64
	Family string
}

func (f Font) String() string {
	return fmt.Sprintf("%s %d %gpx %s", f.Style, f.Weight, f.Size, f.Family)
}

// ComposeFont builds the shorthand string from its parts. Size is kept as
// given ("28px").
func ComposeFont(style string, weight int, size, family string) string {
	return style + " " + strconv.Itoa(weight) + " " + size + " " + family
}

// ParseFont parses the shorthand produced by ComposeFont. Weight accepts the
// keywords normal and bold; size accepts px, pt or a bare number.
func ParseFont(s string) (Font, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return Font{}, fmt.Errorf("font %q: want style, weight, size and family", s)
	}

	f := Font{Style: strings.ToLower(fields[0]), Family: strings.Join(fields[3:], " ")}

	switch w := strings.ToLower(fields[1]); w {
	case "normal":
		f.Weight = 400
	case "bold":
		f.Weight = 700
	default:
		n, err := strconv.Atoi(w)
		if err != nil {
			return Font{}, fmt.Errorf("font %q: weight: %w", s, err)
		}
		f.Weight = n
	}

	size := strings.ToLower(fields[2])
	size = strings.TrimSuffix(strings.TrimSuffix(size, "px"), "pt")
	n, err := strconv.ParseFloat(size, 64)
	if err != nil || n <= 0 {
		return Font{}, fmt.Errorf("font %q: invalid size %q", s, fields[2])
	}
	f.Size = n
	return f, nil
}

type fontKey struct {
	variant string
	size    float64
}

var fontCache = struct {
	sync.Mutex
	parsed map[string]*truetype.Font
	faces  map[fontKey]font.Face
}{
	parsed: make(map[string]*truetype.Font),
	faces:  make(map[fontKey]font.Face),
}

var fontData = map[string][]byte{
	"regular":        goregular.TTF,
	"bold":           gobold.TTF,
	"italic":         goitalic.TTF,
	"bolditalic":     gobolditalic.TTF,
	"medium":         gomedium.TTF,
	"mediumitalic":   gomediumitalic.TTF,
	"mono":           gomono.TTF,
	"monobold":       gomonobold.TTF,
	"monoitalic":     gomonoitalic.TTF,
	"monobolditalic": gomonobolditalic.TTF,
}

// variant picks the Go font that best matches f. Monospace families map to Go
// Mono, everything else to the proportional Go fonts.
func (f Font) variant() string {
	family := strings.ToLower(f.Family)
	mono := strings.Contains(family, "mono") || strings.Contains(family, "courier")
	italic := f.Style == "italic" || f.Style == "oblique"

	weight := "regular"
	switch {
	case f.Weight >= 600:
		weight = "bold"
	case f.Weight == 500 && !mono:
		weight = "medium"
	}

	name := weight
	if italic {
		if weight == "regular" {
			name = "italic"
		} else {
			name += "italic"
		}
	}
	if mono {
		if name == "regular" {
			return "mono"
		}
		return "mono" + name
	}
	return name
}

// Face returns a cached font face for f.
func (f Font) Face() (font.Face, error) {
	key := fontKey{variant: f.variant(), size: f.Size}

	fontCache.Lock()
	defer fontCache.Unlock()

	if face, ok := fontCache.faces[key]; ok {
		return face, nil
	}
	ttf, ok := fontCache.parsed[key.variant]
	if !ok {
		var err error
		ttf, err = truetype.Parse(fontData[key.variant])
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %v", err)
		}
		fontCache.parsed[key.variant] = ttf
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	fontCache.faces[key] = face
	return face, nil
}
