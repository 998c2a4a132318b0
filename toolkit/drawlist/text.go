// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/nkgpu/atlas"
	"github.com/gogpu/nkgpu/toolkit"
)

// GlyphSource is a baked font atlas usable for text. *atlas.Atlas
// implements it.
type GlyphSource interface {
	toolkit.FontAtlas
	FontData() []byte
	PixelSize() float32
	Metrics() atlas.Metrics
	Texture() toolkit.Handle
	GlyphByIndex(idx uint32) (*atlas.Glyph, bool)
}

// fontState is the shaping face built from the atlas font.
type fontState struct {
	src    GlyphSource
	face   *font.Face
	shaper shaping.HarfbuzzShaper
	size   fixed.Int26_6
}

// SetFont makes the atlas the font for subsequent Text calls. Atlases that
// do not implement GlyphSource, or whose font cannot be parsed, leave the
// List without a font.
func (l *List) SetFont(fa toolkit.FontAtlas) {
	l.font = nil
	src, ok := fa.(GlyphSource)
	if !ok {
		l.logger.Warn("drawlist: font atlas cannot render text", "type", fmt.Sprintf("%T", fa))
		return
	}
	face, err := font.ParseTTF(bytes.NewReader(src.FontData()))
	if err != nil {
		l.logger.Warn("drawlist: parse font", "err", err)
		return
	}
	l.font = &fontState{
		src:  src,
		face: face,
		size: fixed.Int26_6(src.PixelSize() * 64),
	}
	l.logger.Debug("drawlist: font set", "px", src.PixelSize())
}

// HasFont reports whether Text can render.
func (l *List) HasFont() bool { return l.font != nil }

// LineHeight returns the distance between baselines of consecutive lines,
// or 0 without a font.
func (l *List) LineHeight() float32 {
	if l.font == nil {
		return 0
	}
	return l.font.src.Metrics().Height
}

// Text records s with its top-left corner at (x, y). Lines are split at
// '\n'. Without a font the call is ignored.
func (l *List) Text(x, y float32, s string, c toolkit.Color) {
	if l.font == nil || l.freed || s == "" {
		if l.font == nil {
			l.logger.Debug("drawlist: text without font")
		}
		return
	}
	m := l.font.src.Metrics()
	start := len(l.glyphs)
	baseline := y + m.Ascent
	for line := range strings.SplitSeq(s, "\n") {
		l.layoutLine(x, baseline, line)
		baseline += m.Height
	}
	if len(l.glyphs) == start {
		return
	}
	l.add(shape{
		kind:       shapeText,
		color:      c,
		tex:        l.font.src.Texture(),
		textured:   true,
		glyphStart: start,
		glyphEnd:   len(l.glyphs),
	})
}

// TextWidth returns the advance of the widest line of s, or 0 without a
// font.
func (l *List) TextWidth(s string) float32 {
	if l.font == nil {
		return 0
	}
	var w float32
	for line := range strings.SplitSeq(s, "\n") {
		out := l.shape(line)
		w = max(w, fixedToFloat(out.Advance))
	}
	return w
}

func (l *List) layoutLine(x, baseline float32, line string) {
	out := l.shape(line)
	pen := x
	for _, g := range out.Glyphs {
		ag, ok := l.font.src.GlyphByIndex(uint32(g.GlyphID))
		if ok && ag.Region.IsValid() {
			x0 := pen + fixedToFloat(g.XOffset) + ag.Offset.X
			y0 := baseline - fixedToFloat(g.YOffset) + ag.Offset.Y
			l.glyphs = append(l.glyphs, glyphQuad{
				rect: toolkit.Rect{X: x0, Y: y0, W: float32(ag.Region.Width), H: float32(ag.Region.Height)},
				uv0:  ag.UV0,
				uv1:  ag.UV1,
			})
		}
		pen += fixedToFloat(g.Advance)
	}
}

func (l *List) shape(line string) shaping.Output {
	runes := []rune(line)
	if len(runes) == 0 {
		return shaping.Output{}
	}
	return l.font.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      l.font.face,
		Size:      l.font.size,
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
