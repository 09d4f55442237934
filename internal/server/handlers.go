package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/sunburst/pkg/errors"
	sbio "github.com/matzehuels/sunburst/pkg/io"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/segment"
)

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	root, opts, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), root, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Render-ID", result.ID)
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

type toolTipResponse struct {
	Hit   bool    `json:"hit"`
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value,omitempty"`
	Share float64 `json:"share,omitempty"`
	Ring  int     `json:"ring,omitempty"`
	Text  string  `json:"text,omitempty"`
}

func (s *Server) handleToolTip(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.Atoi(q.Get("x"))
	y, errY := strconv.Atoi(q.Get("y"))
	if errX != nil || errY != nil {
		jsonError(w, "x and y query parameters must be integers", http.StatusBadRequest)
		return
	}
	root, opts, ok := s.readRequest(w, r)
	if !ok {
		return
	}

	c, err := s.runner.Chart(r.Context(), root, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	n, hit := c.ToolTip().At(x, y)
	if !hit {
		writeJSON(w, http.StatusOK, toolTipResponse{})
		return
	}
	resp := toolTipResponse{
		Hit:   true,
		ID:    n.ID,
		Name:  n.Name,
		Value: n.Value,
		Share: n.Share(),
		Text:  c.ToolTip().Text(n),
	}
	for _, sr := range c.Series() {
		if cs, ok := sr.(segment.Circular); ok {
			if _, found := cs.Root().Find(n.ID); found {
				resp.Ring = c.Kind().RingIndex(n, cs.Root())
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// readRequest decodes the item tree from the body and the options from the
// query. It writes the error response itself and reports false on failure.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (segment.Item, pipeline.Options, bool) {
	opts, err := s.options(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return segment.Item{}, opts, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	root, err := sbio.ReadJSON(r.Body)
	if err != nil {
		s.fail(w, r, err)
		return segment.Item{}, opts, false
	}
	return root, opts, true
}

// options overlays query parameters on the server defaults.
func (s *Server) options(q url.Values) (pipeline.Options, error) {
	opts := s.defaults.Clone()
	opts.Formats = nil
	opts.Logger = nil

	if v := q.Get("kind"); v != "" {
		opts.Kind = v
	}
	if v := q.Get("labels"); v != "" {
		opts.Labels = v
	}
	if v := q.Get("background"); v != "" {
		opts.Background = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"width", &opts.Width}, {"height", &opts.Height}, {"margin", &opts.Margin}} {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", p.name, v)
			}
			*p.dst = n
		}
	}
	for _, p := range []struct {
		name string
		dst  **float64
	}{{"threshold", &opts.Threshold}, {"start_angle", &opts.StartAngle}} {
		if v := q.Get(p.name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", p.name, v)
			}
			*p.dst = pipeline.Float(f)
		}
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a number, got %q", v)
		}
		opts.Scale = f
	}
	opts.Refresh = q.Get("refresh") == "true"
	return opts, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
	}
	jsonError(w, errors.UserMessage(err), status)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
