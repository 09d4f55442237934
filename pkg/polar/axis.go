package polar

import "math"

// LinearAxis maps the data range [Min, Max] linearly onto the pixel range
// [Lo, Hi]. Lo may be greater than Hi, which is how a vertical axis grows
// upwards on a surface whose y coordinate grows downwards.
type LinearAxis struct {
	Min, Max float64
	Lo, Hi   int
}

// NewAxis returns an axis covering [-extent, extent] between two pixels.
func NewAxis(extent float64, lo, hi int) *LinearAxis {
	return &LinearAxis{Min: -extent, Max: extent, Lo: lo, Hi: hi}
}

// Pixel implements [Axis]. A degenerate data range maps everything to the
// middle of the pixel range.
func (a *LinearAxis) Pixel(v float64) int {
	return int(math.Round(a.PixelF(v)))
}

// PixelF is Pixel without rounding, used when drawing smooth outlines.
func (a *LinearAxis) PixelF(v float64) float64 {
	span := a.Max - a.Min
	if span == 0 {
		return float64(a.Lo+a.Hi) / 2
	}
	return float64(a.Lo) + (v-a.Min)/span*float64(a.Hi-a.Lo)
}

// Value maps a pixel back into data space.
func (a *LinearAxis) Value(px float64) float64 {
	if a.Hi == a.Lo {
		return (a.Min + a.Max) / 2
	}
	return a.Min + (px-float64(a.Lo))/float64(a.Hi-a.Lo)*(a.Max-a.Min)
}

// Scale returns the number of pixels per data unit (always positive).
func (a *LinearAxis) Scale() float64 {
	span := a.Max - a.Min
	if span == 0 {
		return 0
	}
	return math.Abs(float64(a.Hi-a.Lo)) / span
}
