// Package config loads figtools settings from an optional TOML file.
//
// Every setting has a default (see Default), so a missing config file is not
// an error. Values present in the file override the defaults; command-line
// flags override both for the options they cover.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mitchellh/go-homedir"

	"github.com/ironsheep/figtools/internal/imaging"
	"github.com/ironsheep/figtools/internal/label"
)

// Config is the full set of tunables shared by all commands.
type Config struct {
	// JPEGQuality is used when the tile and batch commands write JPEG output.
	JPEGQuality int `toml:"jpeg_quality"`

	Label     Label     `toml:"label"`
	Normalize Normalize `toml:"normalize"`
	Crop      Crop      `toml:"crop"`
	Optimize  Optimize  `toml:"optimize"`
	Batch     Batch     `toml:"batch"`
}

// Label configures panel label rendering.
type Label struct {
	FontSize     float64 `toml:"font_size"`
	Margin       int     `toml:"margin"`
	OutlineWidth int     `toml:"outline_width"`
	OutlineColor string  `toml:"outline_color"`
	FillColor    string  `toml:"fill_color"`

	// Fonts are tried in order before the built-in faces. Entries may be
	// absolute paths (with ~ expansion) or bare file names looked up in the
	// system font directories.
	Fonts []string `toml:"fonts"`
}

// Normalize configures the canonical panel size used when no A, B or C
// panel is present.
type Normalize struct {
	FallbackWidth  int `toml:"fallback_width"`
	FallbackHeight int `toml:"fallback_height"`
}

// Crop configures content-area cropping.
type Crop struct {
	Margin    int   `toml:"margin"`
	Threshold uint8 `toml:"threshold"`
	MaxWidth  int   `toml:"max_width"`
	MaxHeight int   `toml:"max_height"`
}

// Optimize configures print optimization.
type Optimize struct {
	Padding   int     `toml:"padding"`
	Tolerance float64 `toml:"tolerance"`
	Quality   int     `toml:"quality"`
	MaxWidth  int     `toml:"max_width"`
	MaxHeight int     `toml:"max_height"`
	Contrast  float64 `toml:"contrast"`
	Sharpen   float64 `toml:"sharpen"`
}

// Batch configures the batch tiling command.
type Batch struct {
	Workers int `toml:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		JPEGQuality: 95,
		Label: Label{
			FontSize:     200,
			Margin:       80,
			OutlineWidth: 5,
			OutlineColor: "#FFFFFF",
			FillColor:    "#000000",
			Fonts:        append([]string(nil), label.DefaultFonts...),
		},
		Normalize: Normalize{
			FallbackWidth:  1889,
			FallbackHeight: 1200,
		},
		Crop: Crop{
			Margin:    30,
			Threshold: 200,
			MaxWidth:  2000,
			MaxHeight: 2000,
		},
		Optimize: Optimize{
			Padding:   10,
			Tolerance: imaging.WhitespaceTolerance,
			Quality:   90,
			MaxWidth:  2000,
			MaxHeight: 2000,
			Contrast:  0.1,
			Sharpen:   0.5,
		},
		Batch: Batch{
			Workers: 4,
		},
	}
}

// Load reads the TOML file at path on top of Default. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", expanded, err)
	}

	for i, f := range cfg.Label.Fonts {
		if f == label.EmbeddedFont {
			continue
		}
		if cfg.Label.Fonts[i], err = homedir.Expand(f); err != nil {
			return nil, fmt.Errorf("failed to expand font path %q: %w", f, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", expanded, err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be in 1..100, got %d", c.JPEGQuality)
	}
	if c.Optimize.Quality < 1 || c.Optimize.Quality > 100 {
		return fmt.Errorf("optimize.quality must be in 1..100, got %d", c.Optimize.Quality)
	}
	if c.Label.FontSize <= 0 {
		return errors.New("label.font_size must be positive")
	}
	if c.Label.OutlineWidth < 0 || c.Label.Margin < 0 {
		return errors.New("label.outline_width and label.margin must not be negative")
	}
	if c.Normalize.FallbackWidth <= 0 || c.Normalize.FallbackHeight <= 0 {
		return errors.New("normalize fallback size must be positive")
	}
	if c.Optimize.Tolerance < 0 || c.Optimize.Tolerance >= 1 {
		return fmt.Errorf("optimize.tolerance must be in [0,1), got %g", c.Optimize.Tolerance)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	if _, err := ParseColor(c.Label.OutlineColor); err != nil {
		return fmt.Errorf("label.outline_color: %w", err)
	}
	if _, err := ParseColor(c.Label.FillColor); err != nil {
		return fmt.Errorf("label.fill_color: %w", err)
	}
	return nil
}

// RendererOptions converts the label section into label.Options.
func (l Label) RendererOptions() (label.Options, error) {
	outline, err := ParseColor(l.OutlineColor)
	if err != nil {
		return label.Options{}, err
	}
	fill, err := ParseColor(l.FillColor)
	if err != nil {
		return label.Options{}, err
	}
	return label.Options{
		FontSize:     l.FontSize,
		Margin:       l.Margin,
		OutlineWidth: l.OutlineWidth,
		OutlineColor: outline,
		FillColor:    fill,
		Fonts:        append([]string(nil), l.Fonts...),
	}, nil
}

// ParseColor parses a "#RRGGBB" string into an opaque color.
func ParseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// IntOr returns *p, or def when p is nil. Commands use it for flags that fall
// back to a config value when not given.
func IntOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
