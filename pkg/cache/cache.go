// Package cache stores rendered chart artifacts.
//
// Rendering is deterministic: the same input tree and the same render options
// always produce the same bytes. Artifacts are therefore cached under a key
// derived from a hash of the input and every option that affects the output
// (see [Keyer]).
//
// Three backends implement [Cache]:
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long artifacts stay cached unless configured otherwise.
const DefaultTTL = 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry.
	Clear(ctx context.Context) error
	Close() error
}

// ArtifactKeyOpts lists the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Kind        string  `json:"kind"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Margin      int     `json:"margin"`
	Background  string  `json:"background"`
	StartAngle  float64 `json:"start_angle"`
	Labels      string  `json:"labels"`
	Threshold   float64 `json:"threshold"`
	FontSize    float64 `json:"font_size"`
	LabelColor  string  `json:"label_color"`
	PaletteSize int     `json:"palette_size"`
	MinSpan     float64 `json:"min_span,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Title       string  `json:"title,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered format of an input.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every key component.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}
