// Package sink provides output format renderers for circular charts.
//
// # Overview
//
// A "sink" paints a [chart.Chart] onto a concrete surface and returns the
// encoded result. This package provides renderers for:
//
//   - SVG: Scalable vector graphics with hover tooltips
//   - PNG: Raster image drawn in-process with fogleman/gg
//   - PDF: Print-ready output (requires rsvg-convert)
//   - JSON: The recorded paint cycle, for tests and external tools
//
// Every sink drives the same [chart.Chart.Paint] cycle, so wedges and labels
// land at identical positions in every format. Text is measured with the
// bundled Go fonts ([fonts]) so that SVG and PNG center labels alike.
//
// # SVG Output
//
//	svg := sink.RenderSVG(c, sink.WithTitle("Portfolio"))
//
// Each wedge becomes a path carrying its node ID in data-node and, unless
// [WithoutTooltips] is given, a <title> element with the tooltip text.
//
// # PNG Output
//
//	png, err := sink.RenderPNG(ctx, c, sink.WithScale(2))
//
// [WithRSVG] rasterizes the SVG output with rsvg-convert instead.
//
// # JSON Output
//
// [RenderJSON] exports the wedges and label placements of one paint.
// [WithJSONCalls] adds every recorded drawing call in issue order.
//
// [chart.Chart]: github.com/matzehuels/sunburst/pkg/chart#Chart
// [chart.Chart.Paint]: github.com/matzehuels/sunburst/pkg/chart#Chart.Paint
// [fonts]: github.com/matzehuels/sunburst/pkg/fonts
package sink
