package labels

import (
	"image"
	"reflect"
	"testing"

	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/polar"
	"github.com/matzehuels/sunburst/pkg/render/canvas"
	"github.com/matzehuels/sunburst/pkg/segment"
)

type testSeries struct {
	root *segment.Node
	x, y polar.Axis
}

func (s testSeries) ID() string                     { return "test" }
func (s testSeries) Root() *segment.Node            { return s.root }
func (s testSeries) Axes() (polar.Axis, polar.Axis) { return s.x, s.y }

type barSeries struct{}

func (barSeries) ID() string { return "bars" }

// circle returns a series on a 200x200 surface covering [-extent, extent].
func circle(t *testing.T, extent float64, item segment.Item) testSeries {
	t.Helper()
	root, err := segment.Bind(item, segment.BindOptions{StartAngle: 0})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	return testSeries{root: root, x: polar.NewAxis(extent, 0, 200), y: polar.NewAxis(extent, 200, 0)}
}

func halves() segment.Item {
	return segment.Item{Name: "r", Children: []segment.Item{
		{Name: "a", Value: 1},
		{Name: "b", Value: 1},
	}}
}

func TestRenderHalves(t *testing.T) {
	tests := []struct {
		name   string
		kind   segment.Kind
		extent float64
	}{
		{"pie", segment.Pie, 1},
		{"donut", segment.Donut, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := canvas.NewRecorder(200, 200)
			New(tt.kind, label.Default()).Render(rec, []segment.Series{circle(t, tt.extent, halves())})

			got := rec.Strings()
			if len(got) != 2 {
				t.Fatalf("got %d strings, want 2", len(got))
			}
			// "50.00%" at size 9 measures 30x9 on the recorder.
			want := []image.Point{{85, 11}, {85, 181}}
			for i, c := range got {
				if c.Text != "50.00%" {
					t.Errorf("string %d = %q, want 50.00%%", i, c.Text)
				}
				if p := image.Pt(c.X, c.Y); p != want[i] {
					t.Errorf("string %d at %v, want %v", i, p, want[i])
				}
				if !c.Font.Bold || c.Font.Size != DefaultFontSize {
					t.Errorf("string %d font = %+v, want bold size 9", i, c.Font)
				}
				if c.Color != "#ffffff" {
					t.Errorf("string %d color = %s, want #ffffff", i, c.Color)
				}
			}
		})
	}
}

// Ring index is level - root.level, plus one for a donut. Children of a pie
// root therefore sit on ring 1, not 0.
func TestRingIndexByKind(t *testing.T) {
	s := circle(t, 3, halves())
	pie := New(segment.Pie, nil).Layout([]segment.Series{s})
	donut := New(segment.Donut, nil).Layout([]segment.Series{s})
	for i := range pie {
		if donut[i].Ring != pie[i].Ring+1 {
			t.Errorf("%s: donut ring %d, pie ring %d", pie[i].NodeID, donut[i].Ring, pie[i].Ring)
		}
		if pie[i].Ring != 1 {
			t.Errorf("%s: pie ring %d, want 1", pie[i].NodeID, pie[i].Ring)
		}
	}
}

func TestDescendantsBeforeAncestors(t *testing.T) {
	item := segment.Item{Name: "r", Children: []segment.Item{
		{Name: "a", Children: []segment.Item{
			{Name: "a1", Value: 1},
			{Name: "a2", Value: 1},
		}},
		{Name: "b", Value: 2},
	}}
	rec := canvas.NewRecorder(200, 200)
	New(segment.Pie, label.NameOnly{}).Render(rec, []segment.Series{circle(t, 2, item)})

	want := []string{"a1", "a2", "a", "b"}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("draw order = %v, want %v", got, want)
	}
}

func TestInvisibleNodeStillVisitsChildren(t *testing.T) {
	s := circle(t, 2, segment.Item{Name: "r", Children: []segment.Item{
		{Name: "a", Children: []segment.Item{{Name: "a1", Value: 1}}},
		{Name: "b", Value: 1},
	}})
	a, _ := s.root.Find("r/a")
	a.Visible = false

	rec := canvas.NewRecorder(200, 200)
	New(segment.Pie, label.NameOnly{}).Render(rec, []segment.Series{s})

	want := []string{"a1", "b"}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("texts = %v, want %v", got, want)
	}
}

func TestSmallSlicesSuppressed(t *testing.T) {
	// 5 and 10 degree leaves: 1.39% is under the threshold, 2.78% is not.
	s := circle(t, 1, segment.Item{Name: "r", Children: []segment.Item{
		{Name: "big", Value: 345},
		{Name: "tiny", Value: 5},
		{Name: "small", Value: 10},
	}})
	rec := canvas.NewRecorder(200, 200)
	New(segment.Pie, label.Default()).Render(rec, []segment.Series{s})

	want := []string{"95.83%", "2.78%"}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("texts = %v, want %v", got, want)
	}
}

func TestRootNeverLabeled(t *testing.T) {
	s := circle(t, 1, segment.Item{Name: "r", Value: 1})
	rec := canvas.NewRecorder(200, 200)
	New(segment.Donut, label.NameOnly{}).Render(rec, []segment.Series{s})
	if len(rec.Calls) != 0 {
		t.Errorf("childless root produced %d calls", len(rec.Calls))
	}
}

func TestNonCircularSeriesIgnored(t *testing.T) {
	rec := canvas.NewRecorder(200, 200)
	series := []segment.Series{barSeries{}, circle(t, 1, halves()), barSeries{}}
	New(segment.Pie, nil).Render(rec, series)
	if n := len(rec.Strings()); n != 2 {
		t.Errorf("got %d strings, want 2", n)
	}
}

func TestFontRestored(t *testing.T) {
	rec := canvas.NewRecorder(200, 200)
	before := canvas.Font{Family: "Go", Size: 14}
	rec.SetFont(before)

	// Every label suppressed: the font must still be set and restored.
	New(segment.Pie, label.None).Render(rec, []segment.Series{circle(t, 1, halves())})

	if got := rec.Font(); got != before {
		t.Errorf("font after render = %+v, want %+v", got, before)
	}
	if len(rec.Strings()) != 0 {
		t.Errorf("suppressed labels were drawn")
	}
	last := rec.Calls[len(rec.Calls)-1]
	if last.Op != canvas.OpSetFont || last.Font != before {
		t.Errorf("last call = %+v, want font restore", last)
	}
}

func TestLayoutMatchesRender(t *testing.T) {
	s := circle(t, 1, halves())
	r := New(segment.Pie, nil)
	layout := r.Layout([]segment.Series{s})

	rec := canvas.NewRecorder(200, 200)
	r.Render(rec, []segment.Series{s})

	strs := rec.Strings()
	if len(layout) != len(strs) {
		t.Fatalf("layout has %d entries, render drew %d", len(layout), len(strs))
	}
	for i, p := range layout {
		if p.Text != strs[i].Text {
			t.Errorf("entry %d: layout %q, drawn %q", i, p.Text, strs[i].Text)
		}
	}
	if layout[0].Anchor != image.Pt(100, 15) {
		t.Errorf("anchor = %v, want (100,15)", layout[0].Anchor)
	}
}

func TestProviderSwap(t *testing.T) {
	h := label.NewHolder(nil)
	r := New(segment.Pie, h)
	s := []segment.Series{circle(t, 1, halves())}

	rec := canvas.NewRecorder(200, 200)
	r.Render(rec, s)
	h.Set(label.NameOnly{})
	r.Render(rec, s)

	want := []string{"50.00%", "50.00%", "a", "b"}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("texts = %v, want %v", got, want)
	}
}
