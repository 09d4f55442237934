// Package config loads user defaults for rendering and serving charts.
//
// The file is TOML, read from $XDG_CONFIG_HOME/sunburst/config.toml unless a
// path is given. Keys missing from the file keep their defaults, and command
// line flags override both.
//
//	[chart]
//	kind = "donut"
//	width = 600
//	background = "#ffffff"
//
//	[labels]
//	provider = "name-percent"
//	threshold = 0.05
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/label"
	"github.com/matzehuels/sunburst/pkg/palette"
	"github.com/matzehuels/sunburst/pkg/segment"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Defaults.
const (
	DefaultWidth      = 600
	DefaultHeight     = 600
	DefaultMargin     = 10
	DefaultBackground = "#ffffff"
	DefaultLabelColor = "#ffffff"
	DefaultFontSize   = 9.0
	DefaultAddr       = ":8080"
	DefaultCacheTTL   = 24 * time.Hour
)

// Config holds all user settings.
type Config struct {
	Chart   Chart   `toml:"chart"`
	Labels  Labels  `toml:"labels"`
	Palette Palette `toml:"palette"`
	Cache   Cache   `toml:"cache"`
	Server  Server  `toml:"server"`
}

type Chart struct {
	Kind       string  `toml:"kind"`
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Background string  `toml:"background"`
	StartAngle float64 `toml:"start_angle"`
	Margin     int     `toml:"margin"`
}

type Labels struct {
	Provider  string  `toml:"provider"`
	Threshold float64 `toml:"threshold"`
	FontSize  float64 `toml:"font_size"`
	Color     string  `toml:"color"`
}

type Palette struct {
	Size int `toml:"size"`
}

type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string such as "90m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Chart: Chart{
			Kind:       segment.KindNamePie,
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Background: DefaultBackground,
			StartAngle: segment.DefaultStartAngle,
			Margin:     DefaultMargin,
		},
		Labels: Labels{
			Provider:  label.NamePercent,
			Threshold: label.DefaultThreshold,
			FontSize:  DefaultFontSize,
			Color:     DefaultLabelColor,
		},
		Palette: Palette{Size: palette.DefaultSize},
		Cache:   Cache{Backend: CacheFile, TTL: Duration{DefaultCacheTTL}},
		Server:  Server{Addr: DefaultAddr},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "locate config dir")
	}
	return filepath.Join(dir, "sunburst", "config.toml"), nil
}

// Load reads the config file at path over the defaults. An empty path reads
// the default location, where a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if _, err := c.Kind(); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(float64(c.Chart.Width), float64(c.Chart.Height)); err != nil {
		return err
	}
	if c.Chart.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "chart.margin must not be negative")
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if _, err := c.LabelProvider(); err != nil {
		return err
	}
	if c.Labels.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "labels.font_size must be positive")
	}
	if _, err := c.LabelColor(); err != nil {
		return err
	}
	if err := errors.ValidatePaletteSize(c.Palette.Size); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	return nil
}

// Kind returns the configured chart kind.
func (c Config) Kind() (segment.Kind, error) {
	return segment.ParseKind(c.Chart.Kind)
}

// BackgroundColor returns the parsed chart background.
func (c Config) BackgroundColor() (color.Color, error) {
	return palette.ParseHex(c.Chart.Background)
}

// LabelColor returns the parsed label foreground.
func (c Config) LabelColor() (color.Color, error) {
	return palette.ParseHex(c.Labels.Color)
}

// LabelProvider returns the configured label provider.
func (c Config) LabelProvider() (label.Provider, error) {
	if err := errors.ValidateThreshold(c.Labels.Threshold); err != nil {
		return nil, err
	}
	return label.ByName(c.Labels.Provider, c.Labels.Threshold)
}
