package chart

import (
	"github.com/matzehuels/sunburst/pkg/polar"
	"github.com/matzehuels/sunburst/pkg/segment"
)

// PieSeries is a circular series backed by a segment tree.
type PieSeries struct {
	id   string
	root *segment.Node
	x, y *polar.LinearAxis
}

// NewPieSeries returns a series for root. Its axes are unit axes until the
// series is added to a chart and laid out.
func NewPieSeries(id string, root *segment.Node) *PieSeries {
	if id == "" && root != nil {
		id = root.ID
	}
	return &PieSeries{
		id:   id,
		root: root,
		x:    polar.NewAxis(1, 0, 1),
		y:    polar.NewAxis(1, 1, 0),
	}
}

func (s *PieSeries) ID() string { return s.id }

func (s *PieSeries) Root() *segment.Node { return s.root }

func (s *PieSeries) Axes() (x, y polar.Axis) { return s.x, s.y }

// fit replaces the series axes. Called by the chart on every layout.
func (s *PieSeries) fit(x, y *polar.LinearAxis) {
	s.x, s.y = x, y
}

// fitter is implemented by series whose axes the chart controls.
type fitter interface {
	fit(x, y *polar.LinearAxis)
}

var _ segment.Circular = (*PieSeries)(nil)
