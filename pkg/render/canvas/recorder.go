package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/matzehuels/sunburst/pkg/palette"
)

// Op names a recorded drawing operation.
type Op string

// Recorded operations.
const (
	OpSetFont       Op = "set_font"
	OpSetForeground Op = "set_foreground"
	OpDrawString    Op = "draw_string"
	OpFillRect      Op = "fill_rect"
	OpFillWedge     Op = "fill_wedge"
)

// Call is one recorded operation with the state it was issued in.
type Call struct {
	Op    Op              `json:"op"`
	Text  string          `json:"text,omitempty"`
	X     int             `json:"x,omitempty"`
	Y     int             `json:"y,omitempty"`
	Font  Font            `json:"font"`
	Color string          `json:"color,omitempty"`
	Rect  image.Rectangle `json:"-"`
	Wedge *Wedge          `json:"wedge,omitempty"`
}

// Recorder is a Painter that records every call instead of drawing.
// Text is measured with a fixed per-character advance, so extents are
// deterministic and independent of installed fonts.
type Recorder struct {
	Width, Height int
	Calls         []Call

	font Font
	fg   color.Color
}

// Character advance relative to the font size, as a fraction (0.55).
const (
	advanceNum = 11
	advanceDen = 20
)

// NewRecorder returns an empty recorder for a surface of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height, font: DefaultFont(), fg: palette.Black}
}

func (r *Recorder) Font() Font { return r.font }

func (r *Recorder) SetFont(f Font) {
	r.font = f
	r.record(Call{Op: OpSetFont})
}

func (r *Recorder) SetForeground(c color.Color) {
	r.fg = c
	r.record(Call{Op: OpSetForeground})
}

func (r *Recorder) TextExtent(s string) image.Point {
	w := math.Ceil(float64(len([]rune(s))) * r.font.Size * advanceNum / advanceDen)
	return image.Pt(int(w), int(math.Ceil(r.font.Size)))
}

func (r *Recorder) DrawString(s string, x, y int) {
	r.record(Call{Op: OpDrawString, Text: s, X: x, Y: y})
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) FillRect(rect image.Rectangle, c color.Color) {
	r.record(Call{Op: OpFillRect, Rect: rect, X: rect.Min.X, Y: rect.Min.Y, Color: palette.Hex(c)})
}

func (r *Recorder) FillWedge(w Wedge) {
	wc := w
	r.record(Call{Op: OpFillWedge, Wedge: &wc, X: int(math.Round(w.CX)), Y: int(math.Round(w.CY)), Color: palette.Hex(w.Fill)})
}

func (r *Recorder) record(c Call) {
	c.Font = r.font
	if c.Color == "" {
		c.Color = palette.Hex(r.fg)
	}
	r.Calls = append(r.Calls, c)
}

// Strings returns the DrawString calls in issue order.
func (r *Recorder) Strings() []Call {
	return r.filter(OpDrawString)
}

// Wedges returns the FillWedge calls in issue order.
func (r *Recorder) Wedges() []Call {
	return r.filter(OpFillWedge)
}

// Texts returns the drawn strings in issue order.
func (r *Recorder) Texts() []string {
	calls := r.Strings()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Text
	}
	return out
}

// Reset forgets all recorded calls and restores the initial state.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.font = DefaultFont()
	r.fg = palette.Black
}

func (r *Recorder) filter(op Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

var _ Painter = (*Recorder)(nil)
