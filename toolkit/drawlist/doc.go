// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package drawlist is a minimal immediate-mode toolkit implementing
// toolkit.Toolkit.
//
// A List records shapes for the current frame (rectangles, lines, curves,
// circles, images and text) together with the clip rectangle active when
// each was recorded. Convert tessellates them into the caller's vertex and
// element buffers through the vertex layout of the ConvertConfig and emits
// one draw command per run of shapes sharing a clip rectangle and texture.
//
// The package has no widgets. It exists so that a frame can be driven end
// to end: input is recorded and exposed through query methods, and callers
// build their own controls from shapes and input queries.
//
//	l := drawlist.New()
//	l.PushClip(toolkit.Rect{X: 10, Y: 10, W: 200, H: 100})
//	l.FillRect(toolkit.Rect{X: 10, Y: 10, W: 200, H: 100}, panel)
//	l.Text(16, 14, "Hello", white)
//	l.PopClip()
//
// Text is shaped with go-text HarfBuzz shaping against the font baked by
// an atlas.Atlas set through SetFont.
package drawlist
