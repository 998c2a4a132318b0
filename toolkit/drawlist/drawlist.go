// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"context"
	"log/slog"

	"github.com/gogpu/nkgpu/toolkit"
)

// noClip is the clip rectangle used outside any PushClip.
var noClip = toolkit.Rect{X: -8192, Y: -8192, W: 16384, H: 16384}

type shapeKind uint8

const (
	shapeFillRect shapeKind = iota
	shapeStrokeRect
	shapeLine
	shapeCurve
	shapeFillCircle
	shapeFillTriangle
	shapeImage
	shapeText
)

// shape is one recorded primitive. Points a..d and the scalar fields are
// interpreted per kind.
type shape struct {
	kind      shapeKind
	rect      toolkit.Rect
	a, b      toolkit.Vec2
	c, d      toolkit.Vec2
	radius    float32
	thickness float32
	color     toolkit.Color
	clip      toolkit.Rect

	// Images carry their own texture; text uses the font texture.
	tex      toolkit.Handle
	textured bool
	uv0, uv1 toolkit.Vec2

	// glyphs[glyphStart:glyphEnd] are the quads of a text shape.
	glyphStart, glyphEnd int
}

// List is the reference toolkit. The zero value is not usable; create one
// with New.
//
// List is not safe for concurrent use.
type List struct {
	input  Input
	shapes []shape
	glyphs []glyphQuad
	clips  []toolkit.Rect

	font *fontState

	// Per-convert tessellation scratch and decoded commands.
	verts   []vertex
	indices []uint16
	decoded []toolkit.DrawCommand

	logger *slog.Logger
	freed  bool
}

// New returns an empty List.
func New() *List {
	return &List{
		shapes: make([]shape, 0, 64),
		logger: slog.New(discardHandler{}),
	}
}

// SetLogger sets the logger for diagnostics. Nil disables logging.
func (l *List) SetLogger(lg *slog.Logger) {
	if lg == nil {
		lg = slog.New(discardHandler{})
	}
	l.logger = lg
}

// Shapes returns the number of shapes recorded this frame.
func (l *List) Shapes() int { return len(l.shapes) }

// PushClip restricts subsequent shapes to r intersected with the current
// clip rectangle.
func (l *List) PushClip(r toolkit.Rect) {
	l.clips = append(l.clips, l.clip().Intersect(r))
}

// PopClip restores the clip rectangle active before the matching PushClip.
func (l *List) PopClip() {
	if len(l.clips) == 0 {
		l.logger.Debug("drawlist: PopClip without PushClip")
		return
	}
	l.clips = l.clips[:len(l.clips)-1]
}

// Clip returns the current clip rectangle.
func (l *List) Clip() toolkit.Rect { return l.clip() }

func (l *List) clip() toolkit.Rect {
	if n := len(l.clips); n > 0 {
		return l.clips[n-1]
	}
	return noClip
}

func (l *List) add(s shape) {
	if l.freed {
		return
	}
	s.clip = l.clip()
	l.shapes = append(l.shapes, s)
}

// Clear drops the frame's shapes, glyphs and clip stack. Input state is
// kept until the next InputBegin.
func (l *List) Clear() {
	l.shapes = l.shapes[:0]
	l.glyphs = l.glyphs[:0]
	l.clips = l.clips[:0]
	l.decoded = l.decoded[:0]
}

// Free releases all memory. The List must not be used afterwards; calls
// made anyway are ignored.
func (l *List) Free() {
	l.freed = true
	l.shapes = nil
	l.glyphs = nil
	l.clips = nil
	l.verts = nil
	l.indices = nil
	l.decoded = nil
	l.font = nil
	l.input = Input{}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

var (
	_ toolkit.Toolkit  = (*List)(nil)
	_ toolkit.FontUser = (*List)(nil)
)
