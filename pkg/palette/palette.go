// Package palette generates slice colors without a predefined color table.
//
// A [Sequencer] rotates the hue around a fixed starting hue in steps of
// 360/N degrees, where N is the number of distinguishable buckets (11 by
// default). Saturation is constant and brightness grows slightly with every
// call, capped at 1.0, so that a second lap through the hue buckets is
// marginally brighter than the first.
//
// The sequence is deterministic: a fresh Sequencer (or one that has been
// [Sequencer.Reset]) always yields the same colors in the same order. A
// Sequencer is not safe for concurrent use; it is meant to be advanced by
// the single goroutine that binds chart data.
package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// Defaults of the color sequence.
const (
	DefaultSize = 11    // Number of distinguishable hue buckets
	BaseHue     = 262.3 // Hue of the first slice, in degrees
	Saturation  = 0.464
	Brightness  = 0.886 // Brightness of the first slice

	// brightnessStep is the brightness gained per full lap of hue buckets.
	brightnessStep = 0.05
)

// Sequencer produces a new color on every call to [Sequencer.Next].
type Sequencer struct {
	size int
	step float64
	next int
}

// New returns a sequencer with [DefaultSize] hue buckets.
func New() *Sequencer {
	return NewSized(DefaultSize)
}

// NewSized returns a sequencer with n hue buckets. Values below 1 fall back
// to [DefaultSize].
func NewSized(n int) *Sequencer {
	if n < 1 {
		n = DefaultSize
	}
	return &Sequencer{size: n, step: 360 / float64(n)}
}

// Size returns the number of hue buckets.
func (s *Sequencer) Size() int { return s.size }

// Count returns how many colors have been produced since the last reset.
func (s *Sequencer) Count() int { return s.next }

// Next returns the next color and advances the sequence.
func (s *Sequencer) Next() colorful.Color {
	h, sat, v := s.HSV(s.next)
	s.next++
	return colorful.Hsv(h, sat, v)
}

// HSV returns the hue, saturation and brightness of the i-th color of the
// sequence without advancing it.
func (s *Sequencer) HSV(i int) (h, sat, v float64) {
	h = math.Mod(BaseHue+s.step*float64(i), 360)
	v = math.Min(1.0, Brightness+brightnessStep*(float64(i)/float64(s.size)))
	return h, Saturation, v
}

// Reset restarts the sequence from the first color.
func (s *Sequencer) Reset() { s.next = 0 }

// Take returns the next n colors.
func (s *Sequencer) Take(n int) []colorful.Color {
	out := make([]colorful.Color, 0, max(n, 0))
	for range n {
		out = append(out, s.Next())
	}
	return out
}

// Hex formats any color as "#rrggbb".
func Hex(c color.Color) string {
	if c == nil {
		return ""
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return c, nil
}

// Named colors used by chart defaults.
var (
	White = colorful.Color{R: 1, G: 1, B: 1}
	Black = colorful.Color{}
)
