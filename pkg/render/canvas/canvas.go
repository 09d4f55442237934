// Package canvas defines the drawing capabilities chart rendering relies on.
//
// A [Surface] is the minimal graphics context needed to annotate a chart:
// font get/set, foreground color, string measurement and string drawing at
// pixel coordinates. A [Painter] adds the fills used to draw the slices
// themselves. Output formats (SVG, PNG) implement Painter; [Recorder]
// implements it by remembering every call, which is how draw order and
// positions are asserted in tests and exported as JSON.
//
// Coordinates are pixels with the origin at the top-left corner and y
// growing downwards. Strings are positioned by the top-left corner of their
// extent.
package canvas

import (
	"image"
	"image/color"
	"math"
)

// DefaultFamily is the font family every surface starts with.
const DefaultFamily = "Go"

// DefaultFontSize is the initial font size of a surface.
const DefaultFontSize = 12.0

// Font describes the font used for string drawing and measurement.
type Font struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
	Bold   bool    `json:"bold,omitempty"`
}

// DefaultFont returns the font a fresh surface uses.
func DefaultFont() Font {
	return Font{Family: DefaultFamily, Size: DefaultFontSize}
}

// WithSize returns a copy of f with a different size.
func (f Font) WithSize(size float64) Font {
	f.Size = size
	return f
}

// WithBold returns a copy of f with bold weight.
func (f Font) WithBold() Font {
	f.Bold = true
	return f
}

// Surface is a graphics context that can draw text.
type Surface interface {
	Font() Font
	SetFont(f Font)
	SetForeground(c color.Color)
	// TextExtent returns the width and height of s in the current font.
	TextExtent(s string) image.Point
	// DrawString draws s with its top-left corner at (x, y) using the
	// current font and foreground color, without filling a background.
	DrawString(s string, x, y int)
}

// Painter is a Surface that can also fill chart shapes.
type Painter interface {
	Surface
	Size() (width, height int)
	FillRect(r image.Rectangle, c color.Color)
	FillWedge(w Wedge)
}

// Wedge is an annular sector in pixel space. Angles are in degrees and grow
// counter-clockwise on screen. An inner radius of zero yields a pie slice; a
// span of 360 yields a full disc or ring.
type Wedge struct {
	ID      string      `json:"id"`
	Tooltip string      `json:"tooltip,omitempty"`
	CX, CY  float64     `json:"-"`
	Inner   float64     `json:"inner"`
	Outer   float64     `json:"outer"`
	Start   float64     `json:"start"`
	Span    float64     `json:"span"`
	Fill    color.Color `json:"-"`
}

// Full reports whether the wedge covers the whole circle.
func (w Wedge) Full() bool { return w.Span >= 360 }

// Point returns the pixel position at radius r and angle a (degrees).
func (w Wedge) Point(r, a float64) (x, y float64) {
	rad := a * math.Pi / 180
	return w.CX + r*math.Cos(rad), w.CY - r*math.Sin(rad)
}

// Outline approximates the wedge boundary as a closed polygon with at most
// step degrees between consecutive arc points. The outer arc runs from Start
// to Start+Span, the inner arc back.
func (w Wedge) Outline(step float64) [][2]float64 {
	if step <= 0 {
		step = 1
	}
	n := max(1, int(math.Ceil(w.Span/step)))
	pts := make([][2]float64, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		x, y := w.Point(w.Outer, w.Start+w.Span*float64(i)/float64(n))
		pts = append(pts, [2]float64{x, y})
	}
	if w.Inner <= 0 {
		return append(pts, [2]float64{w.CX, w.CY})
	}
	for i := n; i >= 0; i-- {
		x, y := w.Point(w.Inner, w.Start+w.Span*float64(i)/float64(n))
		pts = append(pts, [2]float64{x, y})
	}
	return pts
}

// Center returns the pixel point at which a label of extent size is drawn
// so that it is centered on anchor.
func Center(anchor, size image.Point) image.Point {
	return image.Pt(anchor.X-size.X/2, anchor.Y-size.Y/2)
}
