package chart

import (
	"image"
	"image/color"
	"math"

	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/palette"
	"github.com/matzehuels/sunburst/pkg/polar"
	"github.com/matzehuels/sunburst/pkg/render/canvas"
	"github.com/matzehuels/sunburst/pkg/render/labels"
	"github.com/matzehuels/sunburst/pkg/segment"
)

// DefaultMargin is the gap in pixels between the host bounds and the rings.
const DefaultMargin = 10

// PaintListener is called during [Chart.Paint].
type PaintListener func(p canvas.Painter, c *Chart)

// Chart is a pie or donut chart of one or more circular series.
type Chart struct {
	host   Host
	kind   segment.Kind
	margin int

	labels   *label.Holder
	renderer *labels.Renderer
	tooltip  *ToolTip

	series []segment.Series
	x, y   *polar.LinearAxis

	paintListeners  []PaintListener
	customListeners []PaintListener
}

// Option configures a Chart.
type Option func(*Chart)

// WithLabelProvider sets the initial label provider. Nil is ignored.
func WithLabelProvider(p label.Provider) Option {
	return func(c *Chart) { c.labels.Set(p) }
}

// WithMargin sets the gap between the host bounds and the outermost ring.
func WithMargin(px int) Option {
	return func(c *Chart) {
		if px >= 0 {
			c.margin = px
		}
	}
}

// WithLabelFont overrides the label font size and color.
func WithLabelFont(size float64, fg color.Color) Option {
	return func(c *Chart) {
		if size > 0 {
			c.renderer.FontSize = size
		}
		if fg != nil {
			c.renderer.Foreground = fg
		}
	}
}

// New returns a chart of the given kind drawn into host. The kind cannot be
// changed afterwards.
func New(host Host, kind segment.Kind, opts ...Option) *Chart {
	c := &Chart{
		host:   host,
		kind:   kind,
		margin: DefaultMargin,
		labels: label.NewHolder(nil),
	}
	c.renderer = labels.New(kind, c.labels)
	c.tooltip = &ToolTip{chart: c}
	for _, opt := range opts {
		opt(c)
	}

	if kind == segment.Donut {
		c.AddPaintListener(fillRootsWithBackground)
	}
	c.AddCustomPaintListener(func(p canvas.Painter, c *Chart) {
		c.renderer.Render(p, c.series)
	})
	return c
}

// Kind returns the chart kind.
func (c *Chart) Kind() segment.Kind { return c.kind }

// Host returns the area the chart is drawn into.
func (c *Chart) Host() Host { return c.host }

// SetLabelProvider replaces the label provider. Nil is ignored and the
// current provider stays active.
func (c *Chart) SetLabelProvider(p label.Provider) { c.labels.Set(p) }

// LabelProvider returns the active label provider.
func (c *Chart) LabelProvider() label.Provider { return c.labels.Provider() }

// ToolTip returns the chart's tooltip.
func (c *Chart) ToolTip() *ToolTip { return c.tooltip }

// AddSeries appends a series. Non-circular series are kept but not drawn.
func (c *Chart) AddSeries(s segment.Series) {
	if s != nil {
		c.series = append(c.series, s)
	}
}

// Series returns the chart's series in insertion order.
func (c *Chart) Series() []segment.Series { return c.series }

// AddPaintListener registers a listener that runs before the rings are drawn.
func (c *Chart) AddPaintListener(l PaintListener) {
	if l != nil {
		c.paintListeners = append(c.paintListeners, l)
	}
}

// AddCustomPaintListener registers a listener that runs after the rings are
// drawn, on top of them.
func (c *Chart) AddCustomPaintListener(l PaintListener) {
	if l != nil {
		c.customListeners = append(c.customListeners, l)
	}
}

// Paint runs one paint cycle.
func (c *Chart) Paint(p canvas.Painter) {
	c.layout()
	for _, l := range c.paintListeners {
		l(p, c)
	}

	p.FillRect(c.host.Bounds(), c.host.Background())
	for _, s := range c.circles() {
		c.paintRings(p, s)
	}

	for _, l := range c.customListeners {
		l(p, c)
	}
}

// Labels returns the label placements of the current series, in draw order.
func (c *Chart) Labels() []labels.Placement {
	c.layout()
	return c.renderer.Layout(c.series)
}

// Plot returns the square the rings are drawn in, centered in the host.
func (c *Chart) Plot() image.Rectangle {
	b := c.host.Bounds()
	side := max(0, min(b.Dx(), b.Dy())-2*c.margin)
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	return image.Rect(x0, y0, x0+side, y0+side)
}

// Extent returns the outermost ring index over all circular series, at
// least 1.
func (c *Chart) Extent() int {
	extent := 1
	for _, s := range c.circles() {
		if root := s.Root(); root != nil {
			extent = max(extent, root.Depth()-root.Level+c.kind.RingOffset())
		}
	}
	return extent
}

// layout fits the axes of every chart-controlled series to the plot.
func (c *Chart) layout() {
	plot := c.Plot()
	r := float64(c.Extent())
	c.x = polar.NewAxis(r, plot.Min.X, plot.Max.X)
	c.y = polar.NewAxis(r, plot.Max.Y, plot.Min.Y)
	for _, s := range c.series {
		if f, ok := s.(fitter); ok {
			f.fit(c.x, c.y)
		}
	}
}

func (c *Chart) circles() []segment.Circular {
	var out []segment.Circular
	for _, s := range c.series {
		if circ, ok := s.(segment.Circular); ok {
			out = append(out, circ)
		}
	}
	return out
}

func (c *Chart) paintRings(p canvas.Painter, s segment.Circular) {
	root := s.Root()
	if root == nil {
		return
	}
	g := newGeometry(s.Axes())
	root.Walk(func(n *segment.Node) bool {
		ring := c.kind.RingIndex(n, root)
		if ring < 1 || !n.Visible || n.AngleSpan <= 0 {
			return true
		}
		fill := n.Color
		if fill == nil {
			fill = palette.Black
		}
		tip := c.tooltip.Text(n)
		if n == root && c.kind == segment.Donut {
			tip = ""
		}
		p.FillWedge(canvas.Wedge{
			ID:      n.ID,
			Tooltip: tip,
			CX:      g.cx,
			CY:      g.cy,
			Inner:   float64(ring-1) * g.scale,
			Outer:   float64(ring) * g.scale,
			Start:   n.AngleStart,
			Span:    n.AngleSpan,
			Fill:    fill,
		})
		return true
	})
}

// fillRootsWithBackground hides the donut center by painting each root in the
// host background. It is idempotent.
func fillRootsWithBackground(_ canvas.Painter, c *Chart) {
	bg := c.host.Background()
	for _, s := range c.circles() {
		if root := s.Root(); root != nil {
			root.Color = bg
		}
	}
}

// geometry is the pixel placement of a series' data space.
type geometry struct {
	cx, cy float64 // pixel position of the data origin
	scale  float64 // pixels per ring
	x, y   polar.Axis
}

func newGeometry(x, y polar.Axis) geometry {
	cx := pixelF(x, 0)
	return geometry{
		cx:    cx,
		cy:    pixelF(y, 0),
		scale: math.Abs(pixelF(x, 1) - cx),
		x:     x,
		y:     y,
	}
}

// data maps a pixel back into data space, assuming linear axes.
func (g geometry) data(px, py float64) (x, y float64) {
	return unmap(g.x, px), unmap(g.y, py)
}

func unmap(a polar.Axis, px float64) float64 {
	p0, p1 := pixelF(a, 0), pixelF(a, 1)
	if p1 == p0 {
		return 0
	}
	return (px - p0) / (p1 - p0)
}

func pixelF(a polar.Axis, v float64) float64 {
	if f, ok := a.(interface{ PixelF(float64) float64 }); ok {
		return f.PixelF(v)
	}
	return float64(a.Pixel(v))
}
