package segment

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/palette"
	"github.com/matzehuels/sunburst/pkg/polar"
)

// DefaultStartAngle puts the first slice at 12 o'clock.
const DefaultStartAngle = 90.0

// Item is one category of the input hierarchy.
type Item struct {
	Name     string  `json:"name" toml:"name"`
	Value    float64 `json:"value,omitempty" toml:"value,omitempty"`
	Color    string  `json:"color,omitempty" toml:"color,omitempty"`
	Children []Item  `json:"children,omitempty" toml:"children,omitempty"`
}

// Total returns the value an item represents: its own value for a leaf,
// otherwise the larger of its own value and the sum of its children.
func (it Item) Total() float64 {
	if len(it.Children) == 0 {
		return it.Value
	}
	sum := 0.0
	for _, c := range it.Children {
		sum += c.Total()
	}
	return max(sum, it.Value)
}

// BindOptions controls how an item hierarchy becomes a segment tree.
type BindOptions struct {
	// StartAngle is where the first child of the root begins, in degrees.
	StartAngle float64
	// MinSpan hides nodes narrower than this many degrees. Zero-span nodes
	// are always hidden.
	MinSpan float64
	// Palette assigns colors to items without one. Nil uses a fresh
	// default sequencer, so every bind yields the same colors.
	Palette *palette.Sequencer
}

// Bind builds a segment tree from an item hierarchy. The root spans the full
// circle; every other node's span is proportional to its share of the root's
// total. Colors are drawn from the palette in pre-order, one per slice.
func Bind(root Item, opts BindOptions) (*Node, error) {
	if err := validateItem(root, root.Name); err != nil {
		return nil, err
	}
	total := root.Total()
	if total <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart %q has no data (total value is 0)", root.Name)
	}

	seq := opts.Palette
	if seq == nil {
		seq = palette.New()
	}

	id := root.Name
	if id == "" {
		id = "root"
	}
	rootColor, err := itemColor(root)
	if err != nil {
		return nil, err
	}

	b := binder{total: total, minSpan: opts.MinSpan, seq: seq}
	n := &Node{
		ID:         id,
		Name:       root.Name,
		Value:      total,
		Level:      0,
		AngleStart: polar.Normalize(opts.StartAngle),
		AngleSpan:  360,
		Visible:    true,
		Color:      rootColor,
	}
	if err := b.bindChildren(n, root.Children); err != nil {
		return nil, err
	}
	return n, nil
}

type binder struct {
	total   float64
	minSpan float64
	seq     *palette.Sequencer
}

func (b *binder) bindChildren(parent *Node, items []Item) error {
	start := parent.AngleStart
	for i, it := range items {
		name := it.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		value := it.Total()
		span := value / b.total * 360

		c, err := itemColor(it)
		if err != nil {
			return err
		}
		if c == nil {
			c = b.seq.Next()
		}

		n := &Node{
			ID:         parent.ID + "/" + name,
			Name:       it.Name,
			Value:      value,
			Level:      parent.Level + 1,
			AngleStart: polar.Normalize(start),
			AngleSpan:  span,
			Visible:    span > 0 && span >= b.minSpan,
			Color:      c,
		}
		parent.Children = append(parent.Children, n)
		if err := b.bindChildren(n, it.Children); err != nil {
			return err
		}
		start += span
	}
	return nil
}

func itemColor(it Item) (color.Color, error) {
	if it.Color == "" {
		return nil, nil
	}
	c, err := palette.ParseHex(it.Color)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "item %q", it.Name)
	}
	return c, nil
}

func validateItem(it Item, path string) error {
	if it.Value < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "item %q has negative value %g", path, it.Value)
	}
	for _, c := range it.Children {
		if err := validateItem(c, path+"/"+c.Name); err != nil {
			return err
		}
	}
	return nil
}
