// Package labels places percentage annotations on the segments of circular
// series.
//
// # Placement
//
// For every node below a series root, the label anchor is the polar point
//
//	(ring * 0.85, angleStart + angleSpan/2)
//
// where ring is the node's level relative to the root plus the chart kind's
// ring offset (0 for pie, 1 for donut). The 0.85 factor keeps the text inside
// the ring's outer edge; the mid-angle centers it within the wedge. The text
// is centered on the anchor both horizontally and vertically.
//
// # Order
//
// Children are labeled before their parent, so every descendant's draw call
// precedes its ancestor's. Invisible nodes draw nothing themselves, but their
// children are still visited.
//
// # Surface state
//
// Labels are drawn in white with a bold 9 unit font. The font that was active
// before each node is restored afterwards whether or not text was drawn.
//
// # Usage
//
//	r := labels.New(segment.Donut, label.Default())
//	r.Render(surface, series)
package labels
