// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads nkgpu settings from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/nkgpu"
	"github.com/gogpu/nkgpu/atlas"
)

// Config errors.
var (
	// ErrUnknownFormat is returned for files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("config: unknown file format")

	// ErrInvalid is returned when a loaded value is out of range.
	ErrInvalid = errors.New("config: invalid value")
)

// Format is a configuration file syntax.
type Format int

// Supported formats.
const (
	FormatTOML Format = iota
	FormatYAML
)

// Config is the complete file configuration.
type Config struct {
	Surface SurfaceConfig `toml:"surface" yaml:"surface"`
	Buffers BufferConfig  `toml:"buffers" yaml:"buffers"`
	Render  RenderConfig  `toml:"render" yaml:"render"`
	Font    FontConfig    `toml:"font" yaml:"font"`
	Demo    DemoConfig    `toml:"demo" yaml:"demo"`
}

// SurfaceConfig describes the render target.
type SurfaceConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Format string `toml:"format" yaml:"format"`
}

// BufferConfig sets the scratch capacities in KiB.
type BufferConfig struct {
	IndexKiB  int `toml:"index_kib" yaml:"index_kib"`
	VertexKiB int `toml:"vertex_kib" yaml:"vertex_kib"`
}

// RenderConfig tunes the pipeline and tessellation.
type RenderConfig struct {
	SegmentCount       uint32 `toml:"segment_count" yaml:"segment_count"`
	SampleCount        uint32 `toml:"sample_count" yaml:"sample_count"`
	PrecompiledShaders bool   `toml:"precompiled_shaders" yaml:"precompiled_shaders"`
	Label              string `toml:"label" yaml:"label"`
}

// FontConfig selects the font baked into the atlas. An empty path uses
// the built-in Go Regular face.
type FontConfig struct {
	Path      string  `toml:"path" yaml:"path"`
	PixelSize float64 `toml:"pixel_size" yaml:"pixel_size"`
	Padding   int     `toml:"padding" yaml:"padding"`
	MaxSize   int     `toml:"max_size" yaml:"max_size"`
}

// DemoConfig drives cmd/nkdemo.
type DemoConfig struct {
	Frames   int    `toml:"frames" yaml:"frames"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Surface: SurfaceConfig{Width: 800, Height: 600, Format: "bgra8unorm"},
		Buffers: BufferConfig{
			IndexKiB:  nkgpu.DefaultIndexBufferSize / 1024,
			VertexKiB: nkgpu.DefaultVertexBufferSize / 1024,
		},
		Render: RenderConfig{
			SegmentCount: nkgpu.DefaultSegmentCount,
			SampleCount:  nkgpu.DefaultSampleCount,
			Label:        nkgpu.DefaultLabel,
		},
		Font: FontConfig{
			PixelSize: atlas.DefaultPixelSize,
			Padding:   atlas.DefaultPadding,
			MaxSize:   atlas.MaxSize,
		},
		Demo: DemoConfig{Frames: 3, LogLevel: "info"},
	}
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load reads and validates the file at path. Keys missing from the file
// keep their defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Surface.Width <= 0 || c.Surface.Height <= 0:
		return fmt.Errorf("%w: surface %dx%d", ErrInvalid, c.Surface.Width, c.Surface.Height)
	case c.Buffers.IndexKiB <= 0 || c.Buffers.VertexKiB <= 0:
		return fmt.Errorf("%w: buffers index=%d vertex=%d KiB", ErrInvalid, c.Buffers.IndexKiB, c.Buffers.VertexKiB)
	case c.Render.SampleCount != 1 && c.Render.SampleCount != 4:
		return fmt.Errorf("%w: sample_count %d (want 1 or 4)", ErrInvalid, c.Render.SampleCount)
	case c.Font.PixelSize <= 0:
		return fmt.Errorf("%w: font pixel_size %v", ErrInvalid, c.Font.PixelSize)
	case c.Font.MaxSize < atlas.MinSize || c.Font.MaxSize > atlas.MaxSize:
		return fmt.Errorf("%w: font max_size %d", ErrInvalid, c.Font.MaxSize)
	case c.Demo.Frames < 0:
		return fmt.Errorf("%w: demo frames %d", ErrInvalid, c.Demo.Frames)
	}
	if _, err := c.TextureFormat(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

var textureFormats = map[string]gputypes.TextureFormat{
	"bgra8unorm":      gputypes.TextureFormatBGRA8Unorm,
	"bgra8unorm-srgb": gputypes.TextureFormatBGRA8UnormSrgb,
	"rgba8unorm":      gputypes.TextureFormatRGBA8Unorm,
	"rgba8unorm-srgb": gputypes.TextureFormatRGBA8UnormSrgb,
}

// TextureFormat returns the surface format.
func (c *Config) TextureFormat() (gputypes.TextureFormat, error) {
	f, ok := textureFormats[strings.ToLower(c.Surface.Format)]
	if !ok {
		return gputypes.TextureFormatUndefined, fmt.Errorf("%w: surface format %q", ErrInvalid, c.Surface.Format)
	}
	return f, nil
}

// LogLevel returns the demo log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Demo.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.Demo.LogLevel)
	}
	return lvl, nil
}

// Options returns the Context options described by c.
func (c *Config) Options() []nkgpu.Option {
	opts := []nkgpu.Option{
		nkgpu.WithBufferSizes(c.Buffers.IndexKiB*1024, c.Buffers.VertexKiB*1024),
		nkgpu.WithSegmentCount(c.Render.SegmentCount),
		nkgpu.WithSampleCount(c.Render.SampleCount),
		nkgpu.WithLabel(c.Render.Label),
	}
	if c.Render.PrecompiledShaders {
		opts = append(opts, nkgpu.WithPrecompiledShaders())
	}
	return opts
}

// AtlasOptions returns the atlas options described by c, reading the font
// file when one is configured.
func (c *Config) AtlasOptions() ([]atlas.Option, error) {
	opts := []atlas.Option{
		atlas.WithPixelSize(c.Font.PixelSize),
		atlas.WithPadding(c.Font.Padding),
		atlas.WithSizeLimits(atlas.MinSize, c.Font.MaxSize),
	}
	if c.Font.Path != "" {
		data, err := os.ReadFile(c.Font.Path)
		if err != nil {
			return nil, fmt.Errorf("config: read font: %w", err)
		}
		opts = append(opts, atlas.WithFontData(data))
	}
	return opts, nil
}
