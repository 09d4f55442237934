package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

const budget = `{"name":"budget","children":[{"name":"rent","value":3},{"name":"food","value":1}]}`

func newTestServer(t *testing.T, c cache.Cache) *httptest.Server {
	t.Helper()
	s := New(c, log.New(io.Discard), pipeline.Options{Width: 220, Height: 220})
	ts := httptest.NewServer(s)
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		query       string
		contentType string
		prefix      string
	}{
		{"", "image/svg+xml", "<svg"},
		{"?format=svg&kind=donut", "image/svg+xml", "<svg"},
		{"?format=json&labels=name-percent", "application/json", "{"},
		{"?format=png&scale=1", "image/png", "\x89PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/render"+tt.query, budget)
			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				t.Fatalf("status = %d: %s", resp.StatusCode, b)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if resp.Header.Get("X-Render-ID") == "" {
				t.Error("missing X-Render-ID")
			}
			b, _ := io.ReadAll(resp.Body)
			if !bytes.HasPrefix(b, []byte(tt.prefix)) {
				t.Errorf("body starts with %.20q, want %q", b, tt.prefix)
			}
		})
	}
}

func TestRenderJSONOptions(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := post(t, ts.URL+"/api/render?format=json&kind=donut&width=300&height=200&title=Budget", budget)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		Title  string `json:"title"`
		Kind   string `json:"kind"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Title != "Budget" || out.Kind != "donut" || out.Width != 300 || out.Height != 200 {
		t.Errorf("out = %+v", out)
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
	}{
		{"bad json", "", "{", http.StatusBadRequest},
		{"empty chart", "", `{"name":"empty"}`, http.StatusBadRequest},
		{"negative value", "", `[{"name":"a","value":-1}]`, http.StatusBadRequest},
		{"bad format", "?format=gif", budget, http.StatusBadRequest},
		{"bad kind", "?kind=radar", budget, http.StatusBadRequest},
		{"bad width", "?width=wide", budget, http.StatusBadRequest},
		{"bad threshold", "?threshold=2", budget, http.StatusBadRequest},
		{"oversized scale", "?format=png&width=10000&height=10000&scale=40", budget, http.StatusBadRequest},
		{"oversized raster", "?format=png&width=10000&height=10000&scale=2", budget, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/render"+tt.query, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body map[string]string
			json.NewDecoder(resp.Body).Decode(&body)
			if body["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestRenderCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, fc)

	first := post(t, ts.URL+"/api/render", budget)
	second := post(t, ts.URL+"/api/render", budget)
	if got := first.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}
	if got := second.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	refreshed := post(t, ts.URL+"/api/render?refresh=true", budget)
	if got := refreshed.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("refreshed X-Cache = %q, want MISS", got)
	}
}

func TestToolTip(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		query string
		hit   bool
		id    string
		ring  int
		text  string
	}{
		{"?x=110&y=60", true, "budget/rent", 1, "rent: 75.00%"},
		{"?x=110&y=160", true, "budget/rent", 1, "rent: 75.00%"},
		{"?x=60&y=60&kind=donut", true, "budget/rent", 2, "rent: 75.00%"},
		{"?x=110&y=110&kind=donut", false, "", 0, ""},
		{"?x=2&y=2", false, "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/tooltip"+tt.query, budget)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			var out toolTipResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Fatal(err)
			}
			if out.Hit != tt.hit || out.ID != tt.id || out.Ring != tt.ring || out.Text != tt.text {
				t.Errorf("got %+v, want hit=%v id=%q ring=%d text=%q", out, tt.hit, tt.id, tt.ring, tt.text)
			}
		})
	}
}

func TestToolTipBadCoordinates(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := post(t, ts.URL+"/api/tooltip?x=left", budget)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
	errors   int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func (h *recordingHTTPHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t, nil)
	post(t, ts.URL+"/api/render", budget)
	post(t, ts.URL+"/api/render?format=gif", budget)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.statuses) != 2 || hooks.statuses[0] != 200 || hooks.statuses[1] != 400 {
		t.Errorf("statuses = %v, want [200 400]", hooks.statuses)
	}
	if hooks.errors != 1 {
		t.Errorf("errors = %d, want 1", hooks.errors)
	}
}
