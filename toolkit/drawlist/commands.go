// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/nkgpu/toolkit"
)

// Commands are stored in the command buffer as fixed-size little-endian
// records:
//
//	0  elem count   u32
//	4  clip x,y,w,h f32 x4
//	20 reserved     u32
//	24 texture      u64
const (
	recordSize  = 32
	recordAlign = 8
)

func encodeCommand(dst []byte, cmd *toolkit.DrawCommand) {
	binary.LittleEndian.PutUint32(dst[0:], cmd.ElemCount)
	binary.LittleEndian.PutUint32(dst[4:], math.Float32bits(cmd.ClipRect.X))
	binary.LittleEndian.PutUint32(dst[8:], math.Float32bits(cmd.ClipRect.Y))
	binary.LittleEndian.PutUint32(dst[12:], math.Float32bits(cmd.ClipRect.W))
	binary.LittleEndian.PutUint32(dst[16:], math.Float32bits(cmd.ClipRect.H))
	binary.LittleEndian.PutUint32(dst[20:], 0)
	binary.LittleEndian.PutUint64(dst[24:], uint64(cmd.Texture))
}

func decodeCommand(src []byte, index int) toolkit.DrawCommand {
	return toolkit.DrawCommand{
		ElemCount: binary.LittleEndian.Uint32(src[0:]),
		ClipRect: toolkit.Rect{
			X: math.Float32frombits(binary.LittleEndian.Uint32(src[4:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(src[8:])),
			W: math.Float32frombits(binary.LittleEndian.Uint32(src[12:])),
			H: math.Float32frombits(binary.LittleEndian.Uint32(src[16:])),
		},
		Texture: toolkit.Handle(binary.LittleEndian.Uint64(src[24:])),
		Index:   index,
	}
}

// DrawBegin decodes the commands in cmds and returns the first, or nil.
// The returned commands stay valid until the next DrawBegin or Clear.
func (l *List) DrawBegin(cmds *toolkit.Buffer) *toolkit.DrawCommand {
	l.decoded = l.decoded[:0]
	if l.freed || cmds == nil {
		return nil
	}
	data := cmds.Bytes()
	for i := 0; i+recordSize <= len(data); i += recordSize {
		l.decoded = append(l.decoded, decodeCommand(data[i:i+recordSize], len(l.decoded)))
	}
	if len(l.decoded) == 0 {
		return nil
	}
	return &l.decoded[0]
}

// DrawNext returns the command after cmd, or nil.
func (l *List) DrawNext(cmd *toolkit.DrawCommand, _ *toolkit.Buffer) *toolkit.DrawCommand {
	if cmd == nil {
		return nil
	}
	next := cmd.Index + 1
	if next < 0 || next >= len(l.decoded) {
		return nil
	}
	return &l.decoded[next]
}
