package segment

import (
	"strings"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// Kind selects the chart variant. It is fixed when a chart is constructed.
type Kind int

const (
	// Pie draws the first data ring from the center outwards.
	Pie Kind = iota
	// Donut keeps the innermost ring empty, filled with the background.
	Donut
)

// Kind names accepted by [ParseKind].
const (
	KindNamePie   = "pie"
	KindNameDonut = "donut"
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k == Donut {
		return KindNameDonut
	}
	return KindNamePie
}

// RingOffset is added to a node's relative level to obtain its ring index.
func (k Kind) RingOffset() int {
	if k == Donut {
		return 1
	}
	return 0
}

// RingIndex returns the radial ring at which n is drawn, relative to root.
func (k Kind) RingIndex(n, root *Node) int {
	return n.Level - root.Level + k.RingOffset()
}

// ParseKind parses "pie" or "donut" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case KindNamePie, "":
		return Pie, nil
	case KindNameDonut:
		return Donut, nil
	default:
		return Pie, errors.New(errors.ErrCodeInvalidKind, "invalid chart kind: %q (must be one of: pie, donut)", s)
	}
}
