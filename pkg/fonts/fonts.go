// Package fonts provides the font faces used to measure and draw labels.
//
// The Go font family is embedded through golang.org/x/image/font/gofont, so
// measurement is identical on every machine and needs no installed fonts.
// Font files are parsed once; faces are created per caller because a face
// is not safe for concurrent use.
package fonts

import (
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/sunburst/pkg/render/canvas"
)

// FontFamily is the CSS font-family name written into SVG output.
const FontFamily = "Go"

// FallbackFontFamily lists fonts used by SVG viewers without the Go font.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// DPI at which font sizes are interpreted; at 72 DPI one unit is one pixel.
const DPI = 72

var (
	parseOnce sync.Once
	regular   *opentype.Font
	bold      *opentype.Font
	parseErr  error
)

func parse() error {
	parseOnce.Do(func() {
		if regular, parseErr = opentype.Parse(goregular.TTF); parseErr != nil {
			return
		}
		bold, parseErr = opentype.Parse(gobold.TTF)
	})
	return parseErr
}

// Face returns a new face for f. The family is ignored: every family is
// rendered with the Go font.
func Face(f canvas.Font) (font.Face, error) {
	if err := parse(); err != nil {
		return nil, err
	}
	src := regular
	if f.Bold {
		src = bold
	}
	return opentype.NewFace(src, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     DPI,
		Hinting: font.HintingFull,
	})
}

// Cache hands out one face per font to a single goroutine, such as a
// surface drawing one chart.
type Cache struct {
	faces map[canvas.Font]font.Face
}

// Face returns the cached face for f, creating it on first use.
func (c *Cache) Face(f canvas.Font) (font.Face, error) {
	if face, ok := c.faces[f]; ok {
		return face, nil
	}
	face, err := Face(f)
	if err != nil {
		return nil, err
	}
	if c.faces == nil {
		c.faces = make(map[canvas.Font]font.Face)
	}
	c.faces[f] = face
	return face, nil
}

// Measure is [Measure] using the cached face.
func (c *Cache) Measure(f canvas.Font, s string) image.Point {
	face, err := c.Face(f)
	if err != nil {
		return image.Pt(0, 0)
	}
	return measure(face, s)
}

// Ascent is [Ascent] using the cached face.
func (c *Cache) Ascent(f canvas.Font) int {
	face, err := c.Face(f)
	if err != nil {
		return int(f.Size)
	}
	return face.Metrics().Ascent.Ceil()
}

func measure(face font.Face, s string) image.Point {
	w := font.MeasureString(face, s).Ceil()
	return image.Pt(w, face.Metrics().Height.Ceil())
}

// Measure returns the pixel extent of s drawn in f. The height is the
// font's line height, so every string of a font measures equally tall.
func Measure(f canvas.Font, s string) image.Point {
	face, err := Face(f)
	if err != nil {
		return image.Pt(0, 0)
	}
	return measure(face, s)
}

// Ascent returns the distance from the top of a line to its baseline.
func Ascent(f canvas.Font) int {
	face, err := Face(f)
	if err != nil {
		return int(f.Size)
	}
	return face.Metrics().Ascent.Ceil()
}
