package segment

import "image/color"

// Node is one arc of a circular chart.
type Node struct {
	ID    string  // Unique path-like identifier ("root/equity/us")
	Name  string  // Display name
	Value float64 // Represented value

	Level      int     // Depth from the root (root = 0)
	AngleStart float64 // Start angle in degrees, counter-clockwise from east
	AngleSpan  float64 // Angular extent in degrees, in (0, 360]

	Visible  bool        // Whether a label is drawn for this node
	Color    color.Color // Fill color
	Children []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Share returns the fraction of the full circle covered by the node.
func (n *Node) Share() float64 { return n.AngleSpan / 360 }

// MidAngle returns the angle halfway through the node's arc.
func (n *Node) MidAngle() float64 { return n.AngleStart + n.AngleSpan/2 }

// Contains reports whether angle (in degrees, any range) lies within the arc.
func (n *Node) Contains(angle float64) bool {
	if n.AngleSpan >= 360 {
		return true
	}
	d := angle - n.AngleStart
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d < n.AngleSpan
}

// Walk visits n and all its descendants in pre-order. Returning false from
// fn skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Depth returns the maximum level found in the subtree rooted at n.
func (n *Node) Depth() int {
	depth := n.Level
	n.Walk(func(c *Node) bool {
		depth = max(depth, c.Level)
		return true
	})
	return depth
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Find returns the node with the given ID in the subtree rooted at n.
func (n *Node) Find(id string) (*Node, bool) {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}
