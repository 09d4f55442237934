package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/palette"
	"github.com/matzehuels/sunburst/pkg/render/sink"
	"github.com/matzehuels/sunburst/pkg/segment"
)

// Bind turns an item hierarchy into a segment tree using the angle, span,
// and palette options.
func Bind(ctx context.Context, root segment.Item, opts Options) (*segment.Node, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	observability.Pipeline().OnBindStart(ctx, root.Name)
	start := time.Now()
	tree, err := segment.Bind(root, segment.BindOptions{
		StartAngle: *opts.StartAngle,
		MinSpan:    opts.MinSpan,
		Palette:    palette.NewSized(opts.PaletteSize),
	})
	count := 0
	if tree != nil {
		count = tree.Count()
	}
	observability.Pipeline().OnBindComplete(ctx, root.Name, count, time.Since(start), err)
	return tree, err
}

// BuildChart creates a chart for a bound tree on a frame sized by opts.
func BuildChart(tree *segment.Node, opts Options) (*chart.Chart, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no tree to chart")
	}
	margin := opts.Margin
	if margin < 0 {
		margin = 0
	}
	frame := chart.NewFrame(opts.Width, opts.Height, opts.BackgroundColor())
	c := chart.New(frame, opts.ChartKind(),
		chart.WithMargin(margin),
		chart.WithLabelProvider(opts.LabelProvider()),
		chart.WithLabelFont(opts.FontSize, opts.LabelForeground()),
	)
	c.AddSeries(chart.NewPieSeries(tree.ID, tree))
	return c, nil
}

// Render encodes a chart in one output format.
func Render(ctx context.Context, c *chart.Chart, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	nodes := 0
	for _, s := range c.Series() {
		if cs, ok := s.(segment.Circular); ok && cs.Root() != nil {
			nodes += cs.Root().Count()
		}
	}
	kind := c.Kind().String()
	observability.Pipeline().OnPaintStart(ctx, kind, nodes)
	start := time.Now()
	defer func() {
		observability.Pipeline().OnPaintComplete(ctx, kind, len(c.Labels()), time.Since(start))
	}()

	svgOpts := []sink.SVGOption{}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data = sink.RenderSVG(c, svgOpts...)
	case FormatPNG:
		data, err = sink.RenderPNG(ctx, c, sink.WithScale(opts.Scale))
	case FormatPDF:
		data, err = sink.RenderPDF(ctx, c, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		data, err = sink.RenderJSON(c, sink.WithJSONTitle(opts.Title))
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// RenderAll encodes a chart in every format of opts.Formats.
func RenderAll(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		var data []byte
		if data, err = Render(ctx, c, format, opts); err != nil {
			break
		}
		artifacts[format] = data
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}
