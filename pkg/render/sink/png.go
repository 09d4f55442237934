package sink

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/fonts"
	"github.com/matzehuels/sunburst/pkg/palette"
	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/render/canvas"
)

// DefaultScale renders PNGs at twice the chart resolution.
const DefaultScale = 2.0

// arcStep is the maximum angle in degrees between outline points of a
// rasterized wedge.
const arcStep = 1.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
	rsvg    bool
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithRSVG rasterizes the SVG rendering with rsvg-convert instead of drawing
// in-process.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func WithRSVG(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.rsvg, r.svgOpts = true, opts }
}

// RenderPNG paints c as a PNG image.
func RenderPNG(ctx context.Context, c *chart.Chart, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	if r.rsvg {
		return render.ToPNG(ctx, RenderSVG(c, r.svgOpts...), r.scale)
	}

	b := c.Host().Bounds()
	p := newPNGPainter(b, r.scale)
	c.Paint(p)

	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// pngPainter draws onto a gg context. Coordinates are chart pixels and are
// multiplied by scale on the way in; text is measured at chart size.
type pngPainter struct {
	dc     *gg.Context
	origin image.Point
	size   image.Point
	scale  float64
	font   canvas.Font
	fg     color.Color
	faces  fonts.Cache
}

func newPNGPainter(b image.Rectangle, scale float64) *pngPainter {
	w := int(math.Ceil(float64(b.Dx()) * scale))
	h := int(math.Ceil(float64(b.Dy()) * scale))
	return &pngPainter{
		dc:     gg.NewContext(max(1, w), max(1, h)),
		origin: b.Min,
		size:   b.Size(),
		scale:  scale,
		font:   canvas.DefaultFont(),
		fg:     palette.Black,
	}
}

func (p *pngPainter) Font() canvas.Font           { return p.font }
func (p *pngPainter) SetFont(f canvas.Font)       { p.font = f }
func (p *pngPainter) SetForeground(c color.Color) { p.fg = c }
func (p *pngPainter) Size() (int, int)            { return p.size.X, p.size.Y }

func (p *pngPainter) TextExtent(s string) image.Point {
	return p.faces.Measure(p.font, s)
}

func (p *pngPainter) DrawString(s string, x, y int) {
	scaled := p.font.WithSize(p.font.Size * p.scale)
	face, err := p.faces.Face(scaled)
	if err != nil {
		return
	}
	p.dc.SetFontFace(face)
	p.dc.SetColor(orBlack(p.fg))
	px, py := p.point(float64(x), float64(y))
	p.dc.DrawString(s, px, py+float64(p.faces.Ascent(scaled)))
}

func (p *pngPainter) FillRect(r image.Rectangle, c color.Color) {
	x, y := p.point(float64(r.Min.X), float64(r.Min.Y))
	p.dc.DrawRectangle(x, y, float64(r.Dx())*p.scale, float64(r.Dy())*p.scale)
	p.dc.SetColor(orBlack(c))
	p.dc.Fill()
}

func (p *pngPainter) FillWedge(w canvas.Wedge) {
	pts := w.Outline(arcStep)
	if len(pts) == 0 {
		return
	}
	p.dc.MoveTo(p.point(pts[0][0], pts[0][1]))
	for _, pt := range pts[1:] {
		p.dc.LineTo(p.point(pt[0], pt[1]))
	}
	p.dc.ClosePath()
	p.dc.SetColor(orBlack(w.Fill))
	p.dc.Fill()
}

func (p *pngPainter) point(x, y float64) (float64, float64) {
	return (x - float64(p.origin.X)) * p.scale, (y - float64(p.origin.Y)) * p.scale
}

func orBlack(c color.Color) color.Color {
	if c == nil {
		return palette.Black
	}
	return c
}

var _ canvas.Painter = (*pngPainter)(nil)
