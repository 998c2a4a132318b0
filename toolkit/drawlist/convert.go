// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/nkgpu/toolkit"
)

// maxVertices is the number of vertices addressable with 16-bit indices.
const maxVertices = 1 << 16

// writer writes tessellated shapes through a vertex layout into the three
// output buffers.
type writer struct {
	cmds, vertices, elements *toolkit.Buffer

	pos, uv, col toolkit.VertexLayoutElement
	vsize        int
	valign       int
	alpha        float32
	display      toolkit.Rect

	nverts int
	ncmds  int
	last   toolkit.DrawCommand
}

// Convert tessellates the recorded shapes. It stops at the first shape
// that does not fit; everything written before it stays valid.
func (l *List) Convert(cmds, vertices, elements *toolkit.Buffer, cfg *toolkit.ConvertConfig) toolkit.ConvertResult {
	if l.freed || cmds == nil || vertices == nil || elements == nil || cfg == nil {
		return toolkit.ConvertInvalidParam
	}
	if err := cfg.Validate(); err != nil {
		l.logger.Debug("drawlist: invalid convert config", "err", err)
		return toolkit.ConvertInvalidParam
	}
	if !(cfg.DisplayWidth > 0) || !(cfg.DisplayHeight > 0) {
		l.logger.Debug("drawlist: invalid display size", "width", cfg.DisplayWidth, "height", cfg.DisplayHeight)
		return toolkit.ConvertInvalidParam
	}

	w := &writer{
		cmds:     cmds,
		vertices: vertices,
		elements: elements,
		vsize:    int(cfg.VertexSize),
		valign:   int(cfg.VertexAlignment),
		alpha:    clamp01(cfg.GlobalAlpha),
		display:  toolkit.Rect{W: cfg.DisplayWidth, H: cfg.DisplayHeight},
	}
	w.pos, _ = cfg.Element(toolkit.VertexPosition)
	w.uv, _ = cfg.Element(toolkit.VertexTexcoord)
	w.col, _ = cfg.Element(toolkit.VertexColor)
	w.nverts = vertices.Allocated() / w.vsize

	circleSegs := segments(cfg.CircleSegmentCount)
	curveSegs := segments(cfg.CurveSegmentCount)

	for i := range l.shapes {
		s := &l.shapes[i]
		clip := w.display.Intersect(s.clip)
		if clip.W <= 0 || clip.H <= 0 {
			continue
		}
		if b := clip.Intersect(l.bounds(s)); b.W <= 0 || b.H <= 0 {
			continue
		}
		tex := cfg.Null.Texture
		if s.textured {
			tex = s.tex
		}
		l.tessellate(s, cfg.Null.UV, circleSegs, curveSegs)
		if len(l.indices) == 0 {
			continue
		}
		if res := w.emit(clip, tex, l.verts, l.indices); res != toolkit.ConvertSuccess {
			l.logger.Debug("drawlist: convert truncated",
				"shape", i,
				"shapes", len(l.shapes),
				"result", res.String())
			return res
		}
	}
	return toolkit.ConvertSuccess
}

// emit appends one shape. On failure every buffer is rewound to where it
// was before the shape.
func (w *writer) emit(clip toolkit.Rect, tex toolkit.Handle, verts []vertex, indices []uint16) toolkit.ConvertResult {
	if w.nverts+len(verts) > maxVertices {
		return toolkit.ConvertVertexBufferFull
	}

	vm, em, cm := w.vertices.Mark(), w.elements.Mark(), w.cmds.Mark()
	rewind := func() {
		w.vertices.Rewind(vm)
		w.elements.Rewind(em)
		w.cmds.Rewind(cm)
	}

	vb := w.vertices.Alloc(len(verts)*w.vsize, w.valign)
	if vb == nil {
		rewind()
		return toolkit.ConvertVertexBufferFull
	}
	eb := w.elements.Alloc(len(indices)*2, 2)
	if eb == nil {
		rewind()
		return toolkit.ConvertElementBufferFull
	}

	norm := toolkit.Rect{
		X: clip.X / w.display.W,
		Y: clip.Y / w.display.H,
		W: clip.W / w.display.W,
		H: clip.H / w.display.H,
	}
	merge := w.ncmds > 0 && w.last.ClipRect == norm && w.last.Texture == tex
	if !merge {
		rec := w.cmds.Alloc(recordSize, recordAlign)
		if rec == nil {
			rewind()
			return toolkit.ConvertCommandBufferFull
		}
		w.last = toolkit.DrawCommand{ClipRect: norm, Texture: tex, Index: w.ncmds}
		w.ncmds++
	}
	w.last.ElemCount += uint32(len(indices))
	cmdBytes := w.cmds.Bytes()
	encodeCommand(cmdBytes[len(cmdBytes)-recordSize:], &w.last)

	for i := range verts {
		w.writeVertex(vb[i*w.vsize:(i+1)*w.vsize], &verts[i])
	}
	base := uint16(w.nverts)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(eb[i*2:], base+idx)
	}
	w.nverts += len(verts)
	return toolkit.ConvertSuccess
}

func (w *writer) writeVertex(dst []byte, v *vertex) {
	putVec2(dst[w.pos.Offset:], v.pos)
	putVec2(dst[w.uv.Offset:], v.uv)

	c := v.col
	c.A = uint8(float32(c.A)*w.alpha + 0.5)
	out := dst[w.col.Offset:]
	switch w.col.Format {
	case toolkit.FormatR8G8B8A8:
		out[0], out[1], out[2], out[3] = c.R, c.G, c.B, c.A
	case toolkit.FormatB8G8R8A8:
		out[0], out[1], out[2], out[3] = c.B, c.G, c.R, c.A
	case toolkit.FormatR32G32B32A32Float:
		for i, ch := range [4]uint8{c.R, c.G, c.B, c.A} {
			binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(float32(ch)/255))
		}
	}
}

func putVec2(dst []byte, v toolkit.Vec2) {
	binary.LittleEndian.PutUint32(dst[0:], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(dst[4:], math.Float32bits(v.Y))
}

func segments(n uint32) int {
	switch {
	case n == 0:
		return DefaultSegments
	case n < 3:
		return 3
	case n > maxVertices/4:
		return maxVertices / 4
	default:
		return int(n)
	}
}

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	return min(v, 1)
}
