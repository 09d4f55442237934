package chart

import (
	"image"
	"image/color"

	"github.com/matzehuels/sunburst/pkg/palette"
)

// Host is the area a chart is drawn into.
type Host interface {
	Bounds() image.Rectangle
	Background() color.Color
}

// Frame is a fixed-size Host.
type Frame struct {
	Rect image.Rectangle
	Fill color.Color
}

// NewFrame returns a frame of the given size with origin at (0, 0). A nil
// background is white.
func NewFrame(width, height int, bg color.Color) Frame {
	if bg == nil {
		bg = palette.White
	}
	return Frame{Rect: image.Rect(0, 0, width, height), Fill: bg}
}

func (f Frame) Bounds() image.Rectangle { return f.Rect }

func (f Frame) Background() color.Color {
	if f.Fill == nil {
		return palette.White
	}
	return f.Fill
}
