// Package chart is the circular chart shell: it owns the series of a pie or
// donut chart, lays out their axes on a host area and drives painting.
//
// # Painting
//
// [Chart.Paint] runs one paint cycle on a [canvas.Painter]:
//
//  1. Axes are fitted to the host bounds.
//  2. Paint listeners run. For donut charts this includes the listener that
//     sets each root's fill to the host background.
//  3. The background and the ring wedges are drawn.
//  4. Custom paint listeners run. The label renderer is always the first.
//
// Nothing is cached between paints: the result depends only on the chart
// kind, the current series and the current label provider.
//
// # Rings
//
// A node at ring index k (see [segment.Kind.RingIndex]) occupies the annulus
// between radii k-1 and k. Pie roots are not drawn. Donut roots fill the
// center disc.
//
// A Chart is not safe for concurrent use. Its label provider may be swapped
// from any goroutine.
package chart
