package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/chart"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/segment"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Execute runs the complete bind → chart → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, root segment.Item, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	inputHash, err := cache.HashJSON(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "hash input")
	}
	result := &Result{
		ID:        uuid.NewString(),
		InputHash: inputHash,
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.ID)

	// Try to get all formats from cache
	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, inputHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.Hits = append([]string(nil), opts.Formats...)
			result.CacheInfo.RenderHit = true
			logger.Info("served from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 1: Bind
	bindStart := time.Now()
	tree, err := Bind(ctx, root, opts)
	if err != nil {
		return nil, fmt.Errorf("bind: %w", err)
	}
	result.Tree = tree
	result.Stats.BindTime = time.Since(bindStart)
	result.Stats.NodeCount = tree.Count()
	result.Stats.Depth = tree.Depth()

	logger.Info("bound segments",
		"nodes", result.Stats.NodeCount,
		"depth", result.Stats.Depth,
		"duration", result.Stats.BindTime)

	// Stage 2: Chart
	c, err := BuildChart(tree, opts)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	result.Stats.LabelCount = countShown(c)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := RenderAll(ctx, c, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"kind", opts.Kind,
		"formats", opts.Formats,
		"labels", result.Stats.LabelCount,
		"duration", result.Stats.RenderTime)

	// Cache each format
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}

	return result, nil
}

// Chart binds an item hierarchy and builds its chart without rendering.
// The CLI explorer and the tooltip API use this to inspect a chart.
func (r *Runner) Chart(ctx context.Context, root segment.Item, opts Options) (*chart.Chart, error) {
	r.applyLogger(&opts)
	tree, err := Bind(ctx, root, opts)
	if err != nil {
		return nil, fmt.Errorf("bind: %w", err)
	}
	return BuildChart(tree, opts)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cached returns every requested format from the cache, or false if any
// format is missing.
func (r *Runner) cached(ctx context.Context, inputHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, format)
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, format)
		artifacts[format] = data
	}
	return artifacts, len(artifacts) > 0
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.DefaultTTL
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func countShown(c *chart.Chart) int {
	n := 0
	for _, p := range c.Labels() {
		if p.Shown {
			n++
		}
	}
	return n
}
