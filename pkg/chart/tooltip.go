package chart

import (
	"math"

	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/polar"
	"github.com/matzehuels/sunburst/pkg/segment"
)

// ToolTip finds and describes the segment under a pixel.
type ToolTip struct {
	chart *Chart
}

// At returns the visible node drawn at pixel (x, y), if any. Later series
// are drawn on top and are searched first. The hole of a donut is not a hit.
func (t *ToolTip) At(x, y int) (*segment.Node, bool) {
	c := t.chart
	c.layout()
	circles := c.circles()
	for i := len(circles) - 1; i >= 0; i-- {
		if n := t.hit(circles[i], float64(x), float64(y)); n != nil {
			return n, true
		}
	}
	return nil, false
}

func (t *ToolTip) hit(s segment.Circular, px, py float64) *segment.Node {
	root := s.Root()
	if root == nil {
		return nil
	}
	g := newGeometry(s.Axes())
	dx, dy := g.data(px, py)
	r := math.Hypot(dx, dy)
	ring := max(1, int(math.Ceil(r)))
	angle := polar.Normalize(math.Atan2(dy, dx) * 180 / math.Pi)

	kind := t.chart.kind
	var found *segment.Node
	root.Walk(func(n *segment.Node) bool {
		if found != nil {
			return false
		}
		k := kind.RingIndex(n, root)
		if k > ring {
			return false
		}
		if !n.Contains(angle) {
			return false
		}
		if k == ring && n.Visible && n.AngleSpan > 0 {
			if n == root && kind == segment.Donut {
				return false
			}
			found = n
			return false
		}
		return true
	})
	return found
}

// Text returns the tooltip text of n: its name and share of the circle.
func (t *ToolTip) Text(n *segment.Node) string {
	if n == nil {
		return ""
	}
	name := n.Name
	if name == "" {
		name = n.ID
	}
	return name + ": " + label.FormatPercent(n.Share())
}
