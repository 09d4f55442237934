// Package pipeline provides the chart rendering pipeline for sunburst.
//
// This package implements the complete bind → paint → encode pipeline that
// is used by the CLI and the HTTP API. By centralizing this logic, both entry
// points produce byte-identical artifacts for the same input and options.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Bind: Turn an item tree into a segment tree with angles and colors
//  2. Chart: Build a pie or donut chart on a frame of the requested size
//  3. Render: Paint the chart once per output format (SVG, PNG, PDF, JSON)
//
// Artifacts are cached per format under a key derived from the input hash
// and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Kind:    "donut",
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, root, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"image/color"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/palette"
	"github.com/matzehuels/sunburst/pkg/segment"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 600

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600

	// DefaultMargin is the gap between the frame and the outermost ring.
	DefaultMargin = 10

	// DefaultBackground is the frame background and the donut hole color.
	DefaultBackground = "#ffffff"

	// DefaultLabelColor is the label foreground.
	DefaultLabelColor = "#ffffff"

	// DefaultFontSize is the label font size.
	DefaultFontSize = 9.0

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps output formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Chart options
	Kind       string   `json:"kind,omitempty"`
	Width      int      `json:"width,omitempty"`
	Height     int      `json:"height,omitempty"`
	Margin     int      `json:"margin,omitempty"` // 0 uses DefaultMargin, negative means none
	Background string   `json:"background,omitempty"`
	StartAngle *float64 `json:"start_angle,omitempty"` // nil uses 90 (12 o'clock)
	MinSpan    float64  `json:"min_span,omitempty"`    // hide slices narrower than this, in degrees

	// Label options
	Labels     string   `json:"labels,omitempty"`
	Threshold  *float64 `json:"threshold,omitempty"` // nil uses 0.025
	FontSize   float64  `json:"font_size,omitempty"`
	LabelColor string   `json:"label_color,omitempty"`

	// Palette options
	PaletteSize int `json:"palette_size,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Title   string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Refresh bool        `json:"-"` // skip cache reads
	Logger  *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs and API responses.
	ID string

	// InputHash is the content hash of the input tree.
	InputHash string

	// Tree is the bound segment tree. It is nil when every artifact came
	// from the cache.
	Tree *segment.Node

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks cache hits.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	Depth      int
	LabelCount int
	BindTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	Hits      []string // Formats served from cache
	RenderHit bool     // Whether all artifacts came from cache
}

// Float returns a pointer to v, for the optional fields of Options.
func Float(v float64) *float64 { return &v }

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every option.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Clone returns a copy of o that must be validated again. Use it to derive
// per-request options from shared defaults.
func (o Options) Clone() Options {
	c := o
	c.Formats = append([]string(nil), o.Formats...)
	c.validated = false
	return c
}

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if o.Kind == "" {
		o.Kind = segment.KindNamePie
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.StartAngle == nil {
		o.StartAngle = Float(segment.DefaultStartAngle)
	}
	if o.Labels == "" {
		o.Labels = label.NamePercent
	}
	if o.Threshold == nil {
		o.Threshold = Float(label.DefaultThreshold)
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.LabelColor == "" {
		o.LabelColor = DefaultLabelColor
	}
	if o.PaletteSize == 0 {
		o.PaletteSize = palette.DefaultSize
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every option. Call SetDefaults first.
func (o *Options) Validate() error {
	if _, err := segment.ParseKind(o.Kind); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(float64(o.Width), float64(o.Height)); err != nil {
		return err
	}
	if _, err := palette.ParseHex(o.Background); err != nil {
		return err
	}
	if _, err := palette.ParseHex(o.LabelColor); err != nil {
		return err
	}
	if o.Threshold != nil {
		if err := errors.ValidateThreshold(*o.Threshold); err != nil {
			return err
		}
	}
	if _, err := label.ByName(o.Labels, 0); err != nil {
		return err
	}
	if o.FontSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "font size must be positive, got %g", o.FontSize)
	}
	if o.MinSpan < 0 || o.MinSpan > 360 {
		return errors.New(errors.ErrCodeInvalidInput, "min span must be in [0, 360], got %g", o.MinSpan)
	}
	if err := errors.ValidatePaletteSize(o.PaletteSize); err != nil {
		return err
	}
	if slices.Contains(o.Formats, FormatPNG) {
		if err := errors.ValidateScale(float64(o.Width), float64(o.Height), o.Scale); err != nil {
			return err
		}
	} else if o.Scale < 0 || o.Scale > errors.MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %d], got %g", errors.MaxScale, o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// ChartKind returns the parsed chart kind.
func (o *Options) ChartKind() segment.Kind {
	k, _ := segment.ParseKind(o.Kind)
	return k
}

// BackgroundColor returns the parsed background, white if unset or invalid.
func (o *Options) BackgroundColor() color.Color {
	if c, err := palette.ParseHex(o.Background); err == nil {
		return c
	}
	return palette.White
}

// LabelForeground returns the parsed label color, white if unset or invalid.
func (o *Options) LabelForeground() color.Color {
	if c, err := palette.ParseHex(o.LabelColor); err == nil {
		return c
	}
	return palette.White
}

// LabelProvider returns the configured label provider.
func (o *Options) LabelProvider() label.Provider {
	threshold := label.DefaultThreshold
	if o.Threshold != nil {
		threshold = *o.Threshold
	}
	p, err := label.ByName(o.Labels, threshold)
	if err != nil {
		return label.Default()
	}
	return p
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:      format,
		Kind:        o.Kind,
		Width:       o.Width,
		Height:      o.Height,
		Margin:      o.Margin,
		Background:  o.Background,
		Labels:      o.Labels,
		FontSize:    o.FontSize,
		LabelColor:  o.LabelColor,
		PaletteSize: o.PaletteSize,
		MinSpan:     o.MinSpan,
		Title:       o.Title,
	}
	if o.StartAngle != nil {
		opts.StartAngle = *o.StartAngle
	}
	if o.Threshold != nil {
		opts.Threshold = *o.Threshold
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// String summarizes the options for logs.
func (o *Options) String() string {
	return fmt.Sprintf("%s %dx%d labels=%s formats=%v", o.Kind, o.Width, o.Height, o.Labels, o.Formats)
}
