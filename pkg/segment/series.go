package segment

import "github.com/matzehuels/sunburst/pkg/polar"

// Series is anything a chart can hold. Only [Circular] series carry segment
// trees; other series types share the chart but are ignored by segment
// renderers.
type Series interface {
	ID() string
}

// Circular is a series drawn as nested rings.
type Circular interface {
	Series
	// Root returns the root of the segment tree.
	Root() *Node
	// Axes returns the mappings from data space to pixels.
	Axes() (x, y polar.Axis)
}
