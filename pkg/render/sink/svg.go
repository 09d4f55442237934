package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"

	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/fonts"
	"github.com/matzehuels/sunburst/pkg/palette"
	"github.com/matzehuels/sunburst/pkg/render/canvas"
)

const wedgeCSS = `
    .wedge { transition: opacity 0.2s ease; }
    .wedge:hover { opacity: 0.8; }
    .label { pointer-events: none; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title      string
	fontFamily string
	tooltips   bool
}

// WithTitle sets the document title.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithFontFamily overrides the CSS font-family of labels.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// WithoutTooltips omits the per-wedge <title> elements.
func WithoutTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = false } }

// RenderSVG paints c as an SVG document.
func RenderSVG(c *chart.Chart, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: fonts.FallbackFontFamily, tooltips: true}
	for _, opt := range opts {
		opt(&r)
	}

	b := c.Host().Bounds()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%d %d %d %d" width="%d" height="%d">`+"\n",
		b.Min.X, b.Min.Y, b.Dx(), b.Dy(), b.Dx(), b.Dy())
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", wedgeCSS)

	p := &svgPainter{buf: &buf, r: &r, size: b.Size(), font: canvas.DefaultFont(), fg: palette.Black}
	c.Paint(p)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// svgPainter writes every drawing call as an SVG element.
type svgPainter struct {
	buf   *bytes.Buffer
	r     *svgRenderer
	size  image.Point
	font  canvas.Font
	fg    color.Color
	faces fonts.Cache
}

func (p *svgPainter) Font() canvas.Font           { return p.font }
func (p *svgPainter) SetFont(f canvas.Font)       { p.font = f }
func (p *svgPainter) SetForeground(c color.Color) { p.fg = c }
func (p *svgPainter) Size() (int, int)            { return p.size.X, p.size.Y }

func (p *svgPainter) TextExtent(s string) image.Point {
	return p.faces.Measure(p.font, s)
}

func (p *svgPainter) DrawString(s string, x, y int) {
	weight := ""
	if p.font.Bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(p.buf, `  <text class="label" x="%d" y="%d" font-family="%s" font-size="%g"%s fill="%s">%s</text>`+"\n",
		x, y+p.faces.Ascent(p.font), escapeXML(p.r.fontFamily), p.font.Size, weight, hex(p.fg), escapeXML(s))
}

func (p *svgPainter) FillRect(r image.Rectangle, c color.Color) {
	fmt.Fprintf(p.buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
		r.Min.X, r.Min.Y, r.Dx(), r.Dy(), hex(c))
}

func (p *svgPainter) FillWedge(w canvas.Wedge) {
	fmt.Fprintf(p.buf, `  <path class="wedge" data-node="%s" d="%s" fill="%s" fill-rule="evenodd"`,
		escapeXML(w.ID), wedgePath(w), hex(w.Fill))
	if !p.r.tooltips || w.Tooltip == "" {
		p.buf.WriteString("/>\n")
		return
	}
	fmt.Fprintf(p.buf, "><title>%s</title></path>\n", escapeXML(w.Tooltip))
}

// wedgePath returns the SVG path data of an annular sector. Screen angles
// grow counter-clockwise, which is SVG's negative sweep direction.
func wedgePath(w canvas.Wedge) string {
	var b bytes.Buffer
	if w.Full() {
		circlePath(&b, w.CX, w.CY, w.Outer)
		if w.Inner > 0 {
			circlePath(&b, w.CX, w.CY, w.Inner)
		}
		return b.String()
	}

	large := 0
	if w.Span > 180 {
		large = 1
	}
	x0, y0 := w.Point(w.Outer, w.Start)
	x1, y1 := w.Point(w.Outer, w.Start+w.Span)
	fmt.Fprintf(&b, "M%.2f,%.2f A%.2f,%.2f 0 %d 0 %.2f,%.2f", x0, y0, w.Outer, w.Outer, large, x1, y1)
	if w.Inner > 0 {
		x2, y2 := w.Point(w.Inner, w.Start+w.Span)
		x3, y3 := w.Point(w.Inner, w.Start)
		fmt.Fprintf(&b, " L%.2f,%.2f A%.2f,%.2f 0 %d 1 %.2f,%.2f", x2, y2, w.Inner, w.Inner, large, x3, y3)
	} else {
		fmt.Fprintf(&b, " L%.2f,%.2f", w.CX, w.CY)
	}
	b.WriteString(" Z")
	return b.String()
}

func circlePath(b *bytes.Buffer, cx, cy, r float64) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	fmt.Fprintf(b, "M%.2f,%.2f A%.2f,%.2f 0 1 0 %.2f,%.2f A%.2f,%.2f 0 1 0 %.2f,%.2f Z",
		cx+r, cy, r, r, cx-r, cy, r, r, cx+r, cy)
}

func hex(c color.Color) string {
	if c == nil {
		return "none"
	}
	return palette.Hex(c)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

var _ canvas.Painter = (*svgPainter)(nil)
