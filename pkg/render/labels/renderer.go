package labels

import (
	"image"
	"image/color"

	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/palette"
	"github.com/matzehuels/sunburst/pkg/polar"
	"github.com/matzehuels/sunburst/pkg/render/canvas"
	"github.com/matzehuels/sunburst/pkg/segment"
)

// Defaults for label drawing.
const (
	DefaultFontSize = 9.0
	RadialFactor    = 0.85
)

// DefaultForeground is the label text color.
var DefaultForeground color.Color = palette.White

// Renderer draws segment labels onto a surface.
type Renderer struct {
	Kind       segment.Kind
	Labels     label.Provider
	FontSize   float64
	Foreground color.Color
}

// New returns a renderer for the given chart kind. A nil provider uses
// [label.Default].
func New(kind segment.Kind, p label.Provider) *Renderer {
	if p == nil {
		p = label.Default()
	}
	return &Renderer{
		Kind:       kind,
		Labels:     p,
		FontSize:   DefaultFontSize,
		Foreground: DefaultForeground,
	}
}

// Placement is where and what a node's label is.
type Placement struct {
	NodeID string      `json:"node"`
	Ring   int         `json:"ring"`
	Angle  float64     `json:"angle"`
	Anchor image.Point `json:"anchor"`
	Text   string      `json:"text,omitempty"`
	Shown  bool        `json:"shown"`
}

// Render draws the labels of every circular series in order. Other series
// types are ignored.
func (r *Renderer) Render(s canvas.Surface, series []segment.Series) {
	r.walk(series, func(p Placement) {
		r.draw(s, p)
	})
}

// Layout returns the placements Render would draw, in draw order, including
// those of visible nodes whose label is suppressed.
func (r *Renderer) Layout(series []segment.Series) []Placement {
	var out []Placement
	r.walk(series, func(p Placement) {
		out = append(out, p)
	})
	return out
}

func (r *Renderer) walk(series []segment.Series, fn func(Placement)) {
	for _, ser := range series {
		c, ok := ser.(segment.Circular)
		if !ok {
			continue
		}
		root := c.Root()
		if root == nil {
			continue
		}
		x, y := c.Axes()
		for _, n := range root.Children {
			r.visit(n, root, x, y, fn)
		}
	}
}

// visit recurses into children first so that a parent's label is drawn
// after, and therefore on top of, everything in its subtree.
func (r *Renderer) visit(n, root *segment.Node, x, y polar.Axis, fn func(Placement)) {
	for _, c := range n.Children {
		r.visit(c, root, x, y, fn)
	}
	if !n.Visible {
		return
	}
	ring := r.Kind.RingIndex(n, root)
	angle := n.MidAngle()
	p := Placement{
		NodeID: n.ID,
		Ring:   ring,
		Angle:  angle,
		Anchor: polar.Project(x, y, float64(ring)*RadialFactor, angle),
	}
	if text, ok := r.provider().Label(n); ok && text != "" {
		p.Text, p.Shown = text, true
	}
	fn(p)
}

func (r *Renderer) draw(s canvas.Surface, p Placement) {
	old := s.Font()
	defer s.SetFont(old)

	s.SetForeground(r.foreground())
	s.SetFont(old.WithSize(r.fontSize()).WithBold())

	if !p.Shown {
		return
	}
	at := canvas.Center(p.Anchor, s.TextExtent(p.Text))
	s.DrawString(p.Text, at.X, at.Y)
}

func (r *Renderer) provider() label.Provider {
	if r.Labels == nil {
		return label.Default()
	}
	return r.Labels
}

func (r *Renderer) fontSize() float64 {
	if r.FontSize <= 0 {
		return DefaultFontSize
	}
	return r.FontSize
}

func (r *Renderer) foreground() color.Color {
	if r.Foreground == nil {
		return DefaultForeground
	}
	return r.Foreground
}
