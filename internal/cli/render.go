package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	sbio "github.com/matzehuels/sunburst/pkg/io"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string  // output file (single format), base path (several), or "-" for stdout
	formats    string  // comma-separated output formats
	kind       string  // pie or donut
	width      int     // frame width in pixels
	height     int     // frame height in pixels
	margin     int     // gap around the outer ring
	background string  // frame and donut hole color
	startAngle float64 // where the first slice begins, degrees
	labels     string  // label provider name
	threshold  float64 // minimum share of the circle that carries a label
	fontSize   float64 // label font size
	labelColor string  // label foreground
	minSpan    float64 // hide slices narrower than this many degrees
	scale      float64 // PNG resolution multiplier
	title      string  // SVG title
	noCache    bool    // bypass the artifact cache
}

// renderCommand creates the render command for drawing charts.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a JSON or TOML tree as a pie or donut chart",
		Long: `Render a hierarchy of named values as a multi-level chart.

The input is a JSON or TOML tree of {name, value, color, children}. A JSON
array is read as the children of an unnamed root.

Defaults come from the config file; flags override them.`,
		Example: `  sunburst render budget.json
  sunburst render budget.toml --kind donut -f svg,png -o out/budget
  sunburst render budget.json -f json -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.renderOptions(cmd, &opts)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts, popts)
		},
	}

	d := c.cfg
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", d.Chart.Kind, "chart kind: pie, donut")
	cmd.Flags().IntVar(&opts.width, "width", d.Chart.Width, "frame width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", d.Chart.Height, "frame height in pixels")
	cmd.Flags().IntVar(&opts.margin, "margin", d.Chart.Margin, "gap around the outer ring in pixels")
	cmd.Flags().StringVar(&opts.background, "background", d.Chart.Background, "background color (#rrggbb)")
	cmd.Flags().Float64Var(&opts.startAngle, "start-angle", d.Chart.StartAngle, "angle of the first slice in degrees (90 = 12 o'clock)")
	cmd.Flags().StringVarP(&opts.labels, "labels", "l", d.Labels.Provider, "labels: percent, name-percent, name, none")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", d.Labels.Threshold, "minimum share of the circle that carries a label")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", d.Labels.FontSize, "label font size")
	cmd.Flags().StringVar(&opts.labelColor, "label-color", d.Labels.Color, "label color (#rrggbb)")
	cmd.Flags().Float64Var(&opts.minSpan, "min-span", 0, "hide slices narrower than this many degrees")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().StringVar(&opts.title, "title", "", "chart title (SVG)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// renderOptions builds pipeline options: the config file first, then every
// flag the user set explicitly.
func (c *CLI) renderOptions(cmd *cobra.Command, opts *renderOpts) (pipeline.Options, error) {
	p := optionsFromConfig(c.cfg)
	p.Formats = parseFormats(opts.formats)
	p.MinSpan = opts.minSpan
	p.Scale = opts.scale
	p.Title = opts.title

	set := cmd.Flags().Changed
	if set("kind") {
		p.Kind = opts.kind
	}
	if set("width") {
		p.Width = opts.width
	}
	if set("height") {
		p.Height = opts.height
	}
	if set("margin") {
		p.Margin = opts.margin
		if p.Margin == 0 {
			p.Margin = -1
		}
	}
	if set("background") {
		p.Background = opts.background
	}
	if set("start-angle") {
		p.StartAngle = pipeline.Float(opts.startAngle)
	}
	if set("labels") {
		p.Labels = opts.labels
	}
	if set("threshold") {
		p.Threshold = pipeline.Float(opts.threshold)
	}
	if set("font-size") {
		p.FontSize = opts.fontSize
	}
	if set("label-color") {
		p.LabelColor = opts.labelColor
	}

	if err := p.ValidateAndSetDefaults(); err != nil {
		return p, err
	}
	if opts.output == "-" && len(p.Formats) > 1 {
		return p, fmt.Errorf("stdout output takes a single format, got %s", strings.Join(p.Formats, ","))
	}
	for _, f := range p.Formats {
		if f == pipeline.FormatPDF && !render.Available() {
			return p, fmt.Errorf("pdf output needs %s on PATH", render.Converter)
		}
	}
	return p, nil
}

// runRender loads the input tree, runs the pipeline, and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts, popts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	logger.Debugf("Rendering %s (%s)", input, popts.String())

	root, err := sbio.Import(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	popts.Refresh = opts.noCache
	popts.Logger = logger

	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input))
	if opts.output != "-" {
		spinner.Start()
	}
	result, err := runner.Execute(ctx, root, popts)
	if opts.output != "-" {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, input, popts.Formats)
	for _, format := range popts.Formats {
		if err := writeOutput(c.Out, paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	if opts.output == "-" {
		return nil
	}
	prog.done("Rendered "+filepath.Base(input), "formats", strings.Join(popts.Formats, ","))
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats.NodeCount, result.Stats.LabelCount, result.CacheInfo.RenderHit)
	printNextStep("Browse the segments", appName+" explore "+input)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its destination. A single format written
// to an explicit output keeps that exact path; "-" means stdout.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
