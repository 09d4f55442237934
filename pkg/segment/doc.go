// Package segment models the tree of circular segments a sunburst chart is
// drawn from.
//
// # Nodes
//
// A [Node] is one arc of the chart. Its level is the depth from the root
// (root = 0), its angular extent is given in degrees by [Node.AngleStart] and
// [Node.AngleSpan], and it may carry nested child arcs. The root always spans
// the full circle, and the spans of a node's direct children never exceed the
// node's own span.
//
// Renderers treat a tree as read-only for the duration of a paint. The only
// attribute that may change between paints is the fill color, which the
// chart shell overrides for the root of a donut chart.
//
// # Binding
//
// [Bind] turns a hierarchy of named values ([Item]) into a node tree,
// assigning angles proportional to each value and colors from a
// [palette.Sequencer]:
//
//	root, err := segment.Bind(item, segment.BindOptions{StartAngle: 90})
//
// # Kinds
//
// A chart is either a [Pie] or a [Donut]. The kind shifts every node's ring
// index by [Kind.RingOffset] because a donut reserves its innermost ring for
// the hole.
//
// [palette.Sequencer]: github.com/matzehuels/sunburst/pkg/palette.Sequencer
package segment
