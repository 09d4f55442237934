// Package render turns circular charts into output files.
//
// # Overview
//
// Rendering is split between a chart, which knows what to draw, and a
// painter, which knows how. [chart.Chart.Paint] issues drawing calls on any
// [canvas.Painter]; the [sink] subpackage provides painters that write SVG,
// PNG and JSON.
//
//   - Label placement (in [labels] subpackage)
//   - Drawing capabilities and the call recorder (in [canvas] subpackage)
//   - Output formats (in [sink] subpackage)
//   - Format conversion (this package)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). PDF output always goes
// through it; PNG output uses it only when asked to, and is otherwise
// rasterized in-process.
//
//	svg := sink.RenderSVG(c)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [chart.Chart.Paint]: github.com/matzehuels/sunburst/pkg/chart#Chart.Paint
// [canvas.Painter]: github.com/matzehuels/sunburst/pkg/render/canvas#Painter
// [labels]: github.com/matzehuels/sunburst/pkg/render/labels
// [canvas]: github.com/matzehuels/sunburst/pkg/render/canvas
// [sink]: github.com/matzehuels/sunburst/pkg/render/sink
package render
