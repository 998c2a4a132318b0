// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"context"
	"log/slog"

	"golang.org/x/image/font/gofont/goregular"
)

// Default bake parameters.
const (
	DefaultPixelSize = 14
	DefaultPadding   = 1
)

// DefaultRanges covers Basic Latin and the Latin-1 supplement.
var DefaultRanges = [][2]rune{
	{0x0020, 0x007E},
	{0x00A0, 0x00FF},
}

type options struct {
	data    []byte
	size    float64
	ranges  [][2]rune
	padding int
	minSize int
	maxSize int
}

func defaultOptions() options {
	return options{
		data:    goregular.TTF,
		size:    DefaultPixelSize,
		ranges:  DefaultRanges,
		padding: DefaultPadding,
		minSize: MinSize,
		maxSize: MaxSize,
	}
}

// Option configures an Atlas.
type Option func(*options)

// WithFontData bakes the given TrueType or OpenType font instead of Go
// Regular. Nil keeps the default.
func WithFontData(data []byte) Option {
	return func(o *options) {
		if len(data) > 0 {
			o.data = data
		}
	}
}

// WithPixelSize sets the font size in pixels. Non-positive values keep
// the default.
func WithPixelSize(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.size = px
		}
	}
}

// WithRanges sets the inclusive rune ranges to bake. Ranges with Lo > Hi
// are skipped.
func WithRanges(ranges ...[2]rune) Option {
	return func(o *options) {
		valid := make([][2]rune, 0, len(ranges))
		for _, r := range ranges {
			if r[0] <= r[1] {
				valid = append(valid, r)
			}
		}
		if len(valid) > 0 {
			o.ranges = valid
		}
	}
}

// WithPadding sets the empty pixels kept between glyphs.
func WithPadding(px int) Option {
	return func(o *options) {
		if px >= 0 {
			o.padding = px
		}
	}
}

// WithSizeLimits bounds the edge of the baked texture. Both values are
// rounded to the supported range [MinSize, MaxSize]; the bake starts at
// minSize and doubles until the glyphs fit.
func WithSizeLimits(minSize, maxSize int) Option {
	return func(o *options) {
		o.minSize = min(max(minSize, MinSize), MaxSize)
		o.maxSize = min(max(maxSize, o.minSize), MaxSize)
	}
}

// discardHandler drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
