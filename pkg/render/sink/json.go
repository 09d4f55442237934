package sink

import (
	"encoding/json"

	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/palette"
	"github.com/matzehuels/sunburst/pkg/render/canvas"
	"github.com/matzehuels/sunburst/pkg/render/labels"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	calls bool
	title string
}

// WithJSONCalls includes every recorded drawing call in issue order.
func WithJSONCalls() JSONOption { return func(r *jsonRenderer) { r.calls = true } }

// WithJSONTitle records a title in the output.
func WithJSONTitle(s string) JSONOption { return func(r *jsonRenderer) { r.title = s } }

type jsonOutput struct {
	Title      string             `json:"title,omitempty"`
	Kind       string             `json:"kind"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Background string             `json:"background"`
	Extent     int                `json:"extent"`
	Wedges     []jsonWedge        `json:"wedges"`
	Labels     []labels.Placement `json:"labels"`
	Calls      []canvas.Call      `json:"calls,omitempty"`
}

type jsonWedge struct {
	ID      string  `json:"id"`
	Tooltip string  `json:"tooltip,omitempty"`
	CX      float64 `json:"cx"`
	CY      float64 `json:"cy"`
	Inner   float64 `json:"inner"`
	Outer   float64 `json:"outer"`
	Start   float64 `json:"start"`
	Span    float64 `json:"span"`
	Fill    string  `json:"fill"`
}

// RenderJSON records one paint of c and exports it as JSON.
func RenderJSON(c *chart.Chart, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	b := c.Host().Bounds()
	rec := canvas.NewRecorder(b.Dx(), b.Dy())
	c.Paint(rec)

	out := jsonOutput{
		Title:      r.title,
		Kind:       c.Kind().String(),
		Width:      b.Dx(),
		Height:     b.Dy(),
		Background: palette.Hex(c.Host().Background()),
		Extent:     c.Extent(),
		Wedges:     buildJSONWedges(rec),
		Labels:     c.Labels(),
	}
	if out.Labels == nil {
		out.Labels = []labels.Placement{}
	}
	if r.calls {
		out.Calls = rec.Calls
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONWedges(rec *canvas.Recorder) []jsonWedge {
	calls := rec.Wedges()
	wedges := make([]jsonWedge, 0, len(calls))
	for _, call := range calls {
		w := call.Wedge
		wedges = append(wedges, jsonWedge{
			ID:      w.ID,
			Tooltip: w.Tooltip,
			CX:      w.CX,
			CY:      w.CY,
			Inner:   w.Inner,
			Outer:   w.Outer,
			Start:   w.Start,
			Span:    w.Span,
			Fill:    call.Color,
		})
	}
	return wedges
}
