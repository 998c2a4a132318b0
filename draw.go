// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nkgpu

import (
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/nkgpu/toolkit"
)

// DrawGUI replays the commands produced by the last ctx.Update into rp and
// returns the number of draw calls issued. It must run inside an active
// render pass whose color attachment matches the Context format.
func DrawGUI(rp hal.RenderPassEncoder, ctx *Context, width, height float32) int {
	if ctx == nil {
		return 0
	}
	return ctx.Draw(rp, width, height)
}

// Draw binds the GUI pipeline and buffers once, then issues one scissored
// indexed draw per command in emission order. Commands without elements
// are skipped. A command whose clip rectangle lies entirely outside the
// target issues no draw but still advances the index offset, so the
// indices drawn can total less than the indices converted. The toolkit's
// per-frame state is cleared afterwards.
func (c *Context) Draw(rp hal.RenderPassEncoder, width, height float32) int {
	if c.checkAlive() != nil || rp == nil {
		return 0
	}
	defer c.clear()
	if !validSize(width) || !validSize(height) {
		Logger().Debug("nkgpu: skipping draw for invalid target", "width", width, "height", height)
		return 0
	}

	rp.SetPipeline(c.res.pipeline)
	rp.SetBindGroup(0, c.res.bindGroup, nil)
	rp.SetIndexBuffer(c.res.indexBuf, gputypes.IndexFormatUint16, 0)
	rp.SetVertexBuffer(0, c.res.vertexBuf, 0)
	rp.SetViewport(0, 0, width, height, 0, 1)

	var offset uint32
	draws := 0
	for cmd := range toolkit.Commands(c.tk, c.cmds) {
		if cmd.ElemCount == 0 {
			continue
		}
		x, y, w, h, ok := scissorRect(cmd.ClipRect, width, height)
		if ok {
			rp.SetScissorRect(x, y, w, h)
			rp.DrawIndexed(cmd.ElemCount, 1, offset, 0, 0)
			draws++
		}
		offset += cmd.ElemCount
	}

	Logger().Debug("nkgpu: frame drawn", "draws", draws, "indices", offset)
	return draws
}

// clear resets the toolkit's shapes and the command buffer for the next
// frame.
func (c *Context) clear() {
	c.tk.Clear()
	c.cmds.Reset()
}

// scissorRect converts a clip rectangle in 0..1 screen fractions to pixels
// inside a width x height target. The origin is clamped to zero before
// scaling. ok is false when nothing of the rectangle is visible.
func scissorRect(clip toolkit.Rect, width, height float32) (x, y, w, h uint32, ok bool) {
	tw := math.Floor(float64(width))
	th := math.Floor(float64(height))

	x0 := math.Max(float64(clip.X), 0) * float64(width)
	y0 := math.Max(float64(clip.Y), 0) * float64(height)
	x1 := float64(clip.X+clip.W) * float64(width)
	y1 := float64(clip.Y+clip.H) * float64(height)

	x0 = math.Min(math.Floor(x0), tw)
	y0 = math.Min(math.Floor(y0), th)
	x1 = math.Min(math.Ceil(x1), tw)
	y1 = math.Min(math.Ceil(y1), th)

	// Also rejects NaN.
	if !(x1 > x0) || !(y1 > y0) {
		return 0, 0, 0, 0, false
	}
	return uint32(x0), uint32(y0), uint32(x1 - x0), uint32(y1 - y0), true
}
