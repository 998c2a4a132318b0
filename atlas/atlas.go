// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package atlas bakes a TrueType font into a single texture for the GUI
// toolkit.
//
// The baked image holds one coverage mask per glyph and a small opaque
// white block. The white block is reported as the null texture: geometry
// without a texture samples it, so solid fills and text share one texture
// and one pipeline.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sort"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/nkgpu/toolkit"
)

// Atlas errors.
var (
	// ErrNotBegun is returned by Bake when Begin was not called.
	ErrNotBegun = errors.New("atlas: Bake called before Begin")

	// ErrAtlasFull is returned when the glyphs do not fit the largest
	// allowed texture.
	ErrAtlasFull = errors.New("atlas: glyphs do not fit the maximum atlas size")

	// ErrUnsupportedFormat is returned for an unknown pixel format.
	ErrUnsupportedFormat = errors.New("atlas: unsupported pixel format")
)

// Size limits of the baked texture. The texture is square.
const (
	MinSize = 64
	MaxSize = 4096
)

// whiteSize is the edge of the opaque block backing the null texture.
const whiteSize = 3

// Glyph is a baked glyph.
type Glyph struct {
	Rune  rune
	Index sfnt.GlyphIndex

	// Region is where the mask lives in the atlas. Glyphs without ink,
	// such as space, have an invalid region.
	Region Region

	// UV0 and UV1 are the normalized texture coordinates of Region.
	UV0, UV1 toolkit.Vec2

	// Offset is the top-left corner of the mask relative to the pen
	// position on the baseline, in pixels, y down.
	Offset toolkit.Vec2

	// Advance is the horizontal pen advance in pixels.
	Advance float32
}

// Metrics are the vertical metrics of the baked face in pixels.
type Metrics struct {
	Ascent  float32
	Descent float32
	Height  float32
}

// Atlas bakes one font at one pixel size. It implements toolkit.FontAtlas.
//
// Atlas is not safe for concurrent use.
type Atlas struct {
	data    []byte
	font    *opentype.Font
	size    float64
	ranges  [][2]rune
	padding int
	minSize int
	maxSize int

	logger *slog.Logger

	begun   bool
	baked   bool
	glyphs  map[rune]*Glyph
	byIndex map[sfnt.GlyphIndex]*Glyph
	white   Region
	width   int
	height  int
	metrics Metrics
	tex     toolkit.Handle
	null    toolkit.NullTexture
}

// New parses the font and returns an atlas ready for Begin. Without
// options it bakes Go Regular at 14 px for Basic Latin and Latin-1.
func New(opts ...Option) (*Atlas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	f, err := opentype.Parse(o.data)
	if err != nil {
		return nil, fmt.Errorf("atlas: parse font: %w", err)
	}
	return &Atlas{
		data:    o.data,
		font:    f,
		size:    o.size,
		ranges:  o.ranges,
		padding: o.padding,
		minSize: o.minSize,
		maxSize: o.maxSize,
		logger:  slog.New(discardHandler{}),
	}, nil
}

// SetLogger sets the logger used for bake diagnostics. Nil disables logging.
func (a *Atlas) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	a.logger = l
}

// Begin starts a bake, dropping the glyphs of a previous one.
func (a *Atlas) Begin() {
	a.reset()
	a.begun = true
}

// pending is a glyph measured but not yet placed.
type pending struct {
	glyph *Glyph
	mask  *image.Alpha
	w, h  int
}

// Bake rasterizes the configured runes and returns the atlas pixels. The
// returned slice is owned by the caller.
func (a *Atlas) Bake(format toolkit.AtlasFormat) ([]byte, int, int, error) {
	if !a.begun {
		return nil, 0, 0, ErrNotBegun
	}
	if format != toolkit.AtlasAlpha8 && format != toolkit.AtlasRGBA32 {
		return nil, 0, 0, fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}

	face, err := opentype.NewFace(a.font, &opentype.FaceOptions{
		Size:    a.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, 0, 0, fmt.Errorf("atlas: create face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	var buf sfnt.Buffer
	glyphs := make([]pending, 0, 256)
	for _, rng := range a.ranges {
		for r := rng[0]; r <= rng[1]; r++ {
			if _, dup := a.glyphs[r]; dup {
				continue
			}
			idx, err := a.font.GlyphIndex(&buf, r)
			if err != nil || idx == 0 {
				continue
			}
			dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
			if !ok {
				continue
			}
			g := &Glyph{
				Rune:    r,
				Index:   idx,
				Offset:  toolkit.Vec2{X: float32(dr.Min.X), Y: float32(dr.Min.Y)},
				Advance: fixedToFloat(advance),
			}
			a.glyphs[r] = g
			if _, seen := a.byIndex[idx]; !seen {
				a.byIndex[idx] = g
			}
			// The face reuses its mask between Glyph calls.
			var own *image.Alpha
			if !dr.Empty() {
				own = image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
				draw.Draw(own, own.Bounds(), mask, maskp, draw.Src)
			}
			glyphs = append(glyphs, pending{glyph: g, mask: own, w: dr.Dx(), h: dr.Dy()})
		}
	}

	// Tall glyphs first keeps shelves tight.
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].h > glyphs[j].h })

	size, ok := a.pack(glyphs)
	if !ok {
		a.reset()
		a.begun = true
		return nil, 0, 0, fmt.Errorf("%w: %d glyphs at %vpx", ErrAtlasFull, len(glyphs), a.size)
	}

	img := image.NewAlpha(image.Rect(0, 0, size, size))
	for y := a.white.Y; y < a.white.Y+a.white.Height; y++ {
		for x := a.white.X; x < a.white.X+a.white.Width; x++ {
			img.Pix[y*img.Stride+x] = 0xFF
		}
	}
	for _, p := range glyphs {
		r := p.glyph.Region
		if !r.IsValid() {
			continue
		}
		dst := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
		draw.Draw(img, dst, p.mask, image.Point{}, draw.Src)

		fs := float32(size)
		p.glyph.UV0 = toolkit.Vec2{X: float32(r.X) / fs, Y: float32(r.Y) / fs}
		p.glyph.UV1 = toolkit.Vec2{X: float32(r.X+r.Width) / fs, Y: float32(r.Y+r.Height) / fs}
	}

	m := face.Metrics()
	a.metrics = Metrics{
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
		Height:  fixedToFloat(m.Height),
	}
	a.width, a.height = size, size
	a.baked = true

	a.logger.Debug("atlas: baked",
		"glyphs", len(a.glyphs),
		"size", size,
		"px", a.size,
		"bytes_per_pixel", format.BytesPerPixel())
	return expand(img.Pix, format), size, size, nil
}

// pack places the white block and every inked glyph, doubling the texture
// edge until everything fits.
func (a *Atlas) pack(glyphs []pending) (int, bool) {
	for size := MinSize; size <= a.maxSize; size *= 2 {
		if size < a.minSize {
			continue
		}
		p := newShelfPacker(size, size, a.padding)
		white := p.allocate(whiteSize, whiteSize)
		if !white.IsValid() {
			continue
		}
		fits := true
		for i := range glyphs {
			g := &glyphs[i]
			if g.w == 0 || g.h == 0 {
				g.glyph.Region = Region{}
				continue
			}
			r := p.allocate(g.w, g.h)
			if !r.IsValid() {
				fits = false
				break
			}
			g.glyph.Region = r
		}
		if fits {
			a.white = white
			a.logger.Debug("atlas: packed",
				"size", size,
				"used_height", p.usedHeight(),
				"utilization", p.utilization())
			return size, true
		}
	}
	return 0, false
}

// expand converts coverage to the requested format. RGBA32 pixels are
// white with the coverage in alpha.
func expand(coverage []byte, format toolkit.AtlasFormat) []byte {
	if format == toolkit.AtlasAlpha8 {
		return append([]byte(nil), coverage...)
	}
	out := make([]byte, len(coverage)*4)
	for i, c := range coverage {
		o := out[i*4 : i*4+4 : i*4+4]
		o[0], o[1], o[2], o[3] = 0xFF, 0xFF, 0xFF, c
	}
	return out
}

// End records the texture the baked pixels were uploaded to and returns
// the null texture: the center of the white block.
func (a *Atlas) End(tex toolkit.Handle) toolkit.NullTexture {
	a.begun = false
	a.tex = tex
	if !a.baked {
		a.null = toolkit.NullTexture{Texture: tex}
		return a.null
	}
	a.null = toolkit.NullTexture{
		Texture: tex,
		UV: toolkit.Vec2{
			X: (float32(a.white.X) + float32(a.white.Width)/2) / float32(a.width),
			Y: (float32(a.white.Y) + float32(a.white.Height)/2) / float32(a.height),
		},
	}
	return a.null
}

// Clear drops the baked glyphs.
func (a *Atlas) Clear() {
	a.reset()
}

func (a *Atlas) reset() {
	a.begun = false
	a.baked = false
	a.glyphs = make(map[rune]*Glyph)
	a.byIndex = make(map[sfnt.GlyphIndex]*Glyph)
	a.white = Region{}
	a.width, a.height = 0, 0
	a.metrics = Metrics{}
	a.tex = 0
	a.null = toolkit.NullTexture{}
}

// Glyph returns the baked glyph for r.
func (a *Atlas) Glyph(r rune) (*Glyph, bool) {
	g, ok := a.glyphs[r]
	return g, ok
}

// GlyphByIndex returns the baked glyph with font glyph index idx, as
// produced by a text shaper working on FontData.
func (a *Atlas) GlyphByIndex(idx uint32) (*Glyph, bool) {
	if idx > 0xFFFF {
		return nil, false
	}
	g, ok := a.byIndex[sfnt.GlyphIndex(idx)]
	return g, ok
}

// Glyphs returns the number of baked glyphs.
func (a *Atlas) Glyphs() int { return len(a.glyphs) }

// FontData returns the TrueType bytes the atlas was built from.
func (a *Atlas) FontData() []byte { return a.data }

// PixelSize returns the font size in pixels.
func (a *Atlas) PixelSize() float32 { return float32(a.size) }

// Metrics returns the vertical metrics of the baked face.
func (a *Atlas) Metrics() Metrics { return a.metrics }

// Dimensions returns the size of the baked texture.
func (a *Atlas) Dimensions() (width, height int) { return a.width, a.height }

// Texture returns the handle passed to End.
func (a *Atlas) Texture() toolkit.Handle { return a.tex }

// Null returns the null texture returned by End.
func (a *Atlas) Null() toolkit.NullTexture { return a.null }

// White returns the opaque block backing the null texture.
func (a *Atlas) White() Region { return a.white }

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

var _ toolkit.FontAtlas = (*Atlas)(nil)
