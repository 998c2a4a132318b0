// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package toolkit

import "iter"

// Toolkit is the immediate-mode GUI state nkgpu drives each frame.
//
// Implementations are not safe for concurrent use. All methods are called
// from the render loop goroutine in the order
// InputBegin, input events, InputEnd, Convert, DrawBegin/DrawNext, Clear.
type Toolkit interface {
	// InputBegin starts accumulating the input events of a frame.
	InputBegin()
	// InputEnd finishes the frame's input batch.
	InputEnd()

	// InputChar forwards one text code point.
	InputChar(r rune)
	// InputKey reports a key press (down) or release.
	InputKey(key Key, down bool)
	// InputMotion reports the absolute cursor position in pixels.
	InputMotion(x, y int)
	// InputButton reports a button press or release at (x, y).
	InputButton(button Button, x, y int, down bool)
	// InputScroll reports a scroll delta.
	InputScroll(delta Vec2)

	// Convert tessellates the frame's shapes into vertices and 16-bit
	// indices and appends draw commands to cmds. Geometry that does not
	// fit into a fixed buffer is dropped and reported in the result.
	Convert(cmds, vertices, elements *Buffer, cfg *ConvertConfig) ConvertResult

	// DrawBegin returns the first command emitted by Convert, or nil.
	DrawBegin(cmds *Buffer) *DrawCommand
	// DrawNext returns the command after cmd, or nil at the end.
	DrawNext(cmd *DrawCommand, cmds *Buffer) *DrawCommand

	// Clear drops the per-frame shapes and commands.
	Clear()
	// Free releases all toolkit memory. The toolkit must not be used after.
	Free()
}

// FontAtlas bakes glyphs into a single texture.
//
// The protocol is Begin, Bake, upload the pixels, End. End receives the
// texture handle the pixels were uploaded to and returns the null texture.
type FontAtlas interface {
	Begin()
	Bake(format AtlasFormat) (pixels []byte, width, height int, err error)
	End(tex Handle) NullTexture
	Clear()
}

// FontUser is implemented by toolkits that render text with a baked atlas.
// nkgpu calls SetFont once the atlas texture is ready.
type FontUser interface {
	SetFont(atlas FontAtlas)
}

// Commands returns the draw commands of the current frame in emission
// order. The sequence is finite, walks DrawBegin/DrawNext lazily and is
// invalidated by Clear.
func Commands(tk Toolkit, cmds *Buffer) iter.Seq[*DrawCommand] {
	return func(yield func(*DrawCommand) bool) {
		for cmd := tk.DrawBegin(cmds); cmd != nil; cmd = tk.DrawNext(cmd, cmds) {
			if !yield(cmd) {
				return
			}
		}
	}
}
