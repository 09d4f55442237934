package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/segment"
)

func budget() segment.Item {
	return segment.Item{
		Name: "budget",
		Children: []segment.Item{
			{Name: "rent", Value: 3},
			{Name: "food", Value: 1},
		},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Kind != segment.KindNamePie {
		t.Errorf("Kind = %q, want pie", opts.Kind)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.Margin != DefaultMargin {
		t.Errorf("Margin = %d, want %d", opts.Margin, DefaultMargin)
	}
	if *opts.StartAngle != 90 {
		t.Errorf("StartAngle = %g, want 90", *opts.StartAngle)
	}
	if *opts.Threshold != label.DefaultThreshold {
		t.Errorf("Threshold = %g, want %g", *opts.Threshold, label.DefaultThreshold)
	}
	if opts.Labels != label.NamePercent {
		t.Errorf("Labels = %q, want %q", opts.Labels, label.NamePercent)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsExplicitZeroes(t *testing.T) {
	opts := Options{StartAngle: Float(0), Threshold: Float(0)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if *opts.StartAngle != 0 {
		t.Errorf("StartAngle = %g, want 0", *opts.StartAngle)
	}
	if *opts.Threshold != 0 {
		t.Errorf("Threshold = %g, want 0", *opts.Threshold)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad kind", Options{Kind: "radar"}, errors.ErrCodeInvalidKind},
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidDimensions},
		{"huge height", Options{Height: errors.MaxDimension + 1}, errors.ErrCodeInvalidDimensions},
		{"bad background", Options{Background: "navy"}, errors.ErrCodeInvalidColor},
		{"bad label color", Options{LabelColor: "#12"}, errors.ErrCodeInvalidColor},
		{"bad threshold", Options{Threshold: Float(1)}, errors.ErrCodeInvalidInput},
		{"bad labels", Options{Labels: "emoji"}, errors.ErrCodeInvalidInput},
		{"bad span", Options{MinSpan: 400}, errors.ErrCodeInvalidInput},
		{"bad palette", Options{PaletteSize: 1000}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"scale too high", Options{Scale: errors.MaxScale + 1}, errors.ErrCodeInvalidInput},
		{"png raster too large", Options{Width: 10000, Height: 10000, Scale: 40, Formats: []string{"png"}}, errors.ErrCodeInvalidInput},
		{"png scaled past limit", Options{Width: 10000, Height: 600, Scale: 2, Formats: []string{"png"}}, errors.ErrCodeInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestOptionsLargeFrameWithoutPNG(t *testing.T) {
	opts := Options{Width: 10000, Height: 10000, Formats: []string{"svg"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("vector-only frame should not be bound by the raster limit: %v", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Kind: "donut", Formats: []string{"json"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	first := opts.String()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if opts.String() != first {
		t.Errorf("options changed: %q -> %q", first, opts.String())
	}
}

func TestOptionsChartKind(t *testing.T) {
	if k := (&Options{Kind: "donut"}).ChartKind(); k != segment.Donut {
		t.Errorf("ChartKind(donut) = %v", k)
	}
	if k := (&Options{}).ChartKind(); k != segment.Pie {
		t.Errorf("ChartKind(\"\") = %v", k)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Kind: "donut", Formats: []string{"svg", "png"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	svg := opts.ArtifactKeyOpts(FormatSVG)
	png := opts.ArtifactKeyOpts(FormatPNG)
	if svg.Scale != 0 {
		t.Errorf("svg key should ignore scale, got %g", svg.Scale)
	}
	if png.Scale != DefaultScale {
		t.Errorf("png key scale = %g, want %g", png.Scale, DefaultScale)
	}
	if svg.StartAngle != 90 || svg.Kind != "donut" {
		t.Errorf("svg key = %+v", svg)
	}

	keyer := cache.NewDefaultKeyer()
	if keyer.ArtifactKey("h", svg) == keyer.ArtifactKey("h", png) {
		t.Error("formats should have distinct keys")
	}
}

func TestBuildChart(t *testing.T) {
	opts := Options{Kind: "donut", Width: 300, Height: 200, Margin: -1}
	tree, err := Bind(context.Background(), budget(), opts)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	c, err := BuildChart(tree, opts)
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}

	if c.Kind() != segment.Donut {
		t.Errorf("Kind = %v, want donut", c.Kind())
	}
	if got := c.Plot().Dx(); got != 200 {
		t.Errorf("plot side = %d, want 200 with no margin", got)
	}
	if got := c.Extent(); got != 2 {
		t.Errorf("Extent = %d, want 2", got)
	}
	if _, err := BuildChart(nil, opts); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("BuildChart(nil) error = %v, want INVALID_INPUT", err)
	}
}

func TestBindEmpty(t *testing.T) {
	_, err := Bind(context.Background(), segment.Item{Name: "empty"}, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Bind(empty) error = %v, want INVALID_INPUT", err)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	opts := Options{}
	tree, _ := Bind(context.Background(), budget(), opts)
	c, _ := BuildChart(tree, opts)
	if _, err := Render(context.Background(), c, "gif", opts); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), budget(), Options{Formats: []string{"svg", "json", "png"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.ID == "" || res.InputHash == "" {
		t.Errorf("ID = %q, InputHash = %q", res.ID, res.InputHash)
	}
	if res.Tree == nil || res.Stats.NodeCount != 3 || res.Stats.Depth != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Stats.LabelCount != 2 {
		t.Errorf("LabelCount = %d, want 2", res.Stats.LabelCount)
	}
	if res.CacheInfo.RenderHit {
		t.Error("null cache should never hit")
	}

	if !bytes.HasPrefix(res.Artifacts["svg"], []byte("<svg")) {
		t.Errorf("svg artifact = %.40q", res.Artifacts["svg"])
	}
	if !bytes.HasPrefix(res.Artifacts["png"], []byte("\x89PNG")) {
		t.Error("png artifact missing signature")
	}

	var out struct {
		Kind   string `json:"kind"`
		Labels []struct {
			Text string `json:"text"`
		} `json:"labels"`
	}
	if err := json.Unmarshal(res.Artifacts["json"], &out); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if out.Kind != "pie" || len(out.Labels) != 2 || out.Labels[0].Text != "75.00%" || out.Labels[1].Text != "25.00%" {
		t.Errorf("json artifact = %+v", out)
	}
}

func TestRunnerExecuteCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()
	ctx := context.Background()
	opts := Options{Kind: "donut", Formats: []string{"svg", "json"}}

	first, err := r.Execute(ctx, budget(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Fatal("first run should miss")
	}

	second, err := r.Execute(ctx, budget(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Fatal("second run should hit")
	}
	if second.Tree != nil {
		t.Error("cached run should not bind")
	}
	if second.InputHash != first.InputHash {
		t.Error("input hash should be stable")
	}
	if second.ID == first.ID {
		t.Error("run IDs should differ")
	}
	for _, f := range opts.Formats {
		if !bytes.Equal(first.Artifacts[f], second.Artifacts[f]) {
			t.Errorf("%s artifact differs between runs", f)
		}
	}

	// A new format misses even though the others are cached.
	third, err := r.Execute(ctx, budget(), Options{Kind: "donut", Formats: []string{"svg", "png"}})
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("partially cached run should render")
	}

	refreshed, err := r.Execute(ctx, budget(), Options{Kind: "donut", Formats: []string{"svg", "json"}, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if refreshed.CacheInfo.RenderHit {
		t.Error("refresh should skip the cache")
	}

	// Changing the input changes the key.
	other := budget()
	other.Children[0].Value = 5
	changed, err := r.Execute(ctx, other, opts)
	if err != nil {
		t.Fatal(err)
	}
	if changed.CacheInfo.RenderHit {
		t.Error("different input should miss")
	}
}

func TestRunnerChart(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	c, err := r.Chart(context.Background(), budget(), Options{Width: 220, Height: 220})
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	n, ok := c.ToolTip().At(110, 60)
	if !ok {
		t.Fatal("expected a node at the top of the pie")
	}
	if got := c.ToolTip().Text(n); !strings.HasPrefix(got, "rent: ") {
		t.Errorf("tooltip = %q", got)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnBindStart(context.Context, string) { h.add("bind") }
func (h *recordingHooks) OnBindComplete(_ context.Context, _ string, n int, _ time.Duration, _ error) {
	h.add("bound")
}
func (h *recordingHooks) OnPaintStart(_ context.Context, kind string, _ int) { h.add("paint " + kind) }
func (h *recordingHooks) OnRenderStart(context.Context, []string)            { h.add("render") }
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.add("rendered")
}

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), budget(), Options{Kind: "donut", Formats: []string{"svg", "json"}}); err != nil {
		t.Fatal(err)
	}

	want := []string{"bind", "bound", "render", "paint donut", "paint donut", "rendered"}
	if strings.Join(hooks.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}
