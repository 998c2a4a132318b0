// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package nkgpu renders an immediate-mode GUI toolkit with the WebGPU HAL.
//
// # Overview
//
// The toolkit (see package toolkit) owns widget state and produces, once per
// frame, backend-agnostic geometry: 20-byte vertices, 16-bit indices and a
// list of draw commands carrying clip rectangles. nkgpu owns everything on
// the GPU side: the render pipeline, the font atlas texture, the index,
// vertex and projection buffers, and the replay of draw commands inside a
// render pass.
//
// # Frame
//
//	ctx.InputBegin()
//	ctx.InputMotion(x, y)
//	ctx.InputButton(nkgpu.ButtonLeft, nkgpu.Press)
//	ctx.InputEnd()
//
//	// ... build widgets with the toolkit ...
//
//	if _, err := ctx.Update(queue, w, h); err != nil {
//	    return err
//	}
//	pass := encoder.BeginRenderPass(desc)
//	nkgpu.DrawGUI(pass, ctx, w, h)
//	pass.End()
//
// # Capacity
//
// Geometry is written into two fixed scratch buffers, 128 KiB of indices and
// 512 KiB of vertices by default (see WithBufferSizes). Shapes that do not
// fit are dropped for that frame; Update reports it in FrameStats.Truncated
// and logs a warning.
//
// # Coordinates
//
// Vertex positions are in pixels with the origin at the top-left corner and
// y growing down. Draw command clip rectangles are fractions of the target
// size. The projection uploaded by Update maps pixel (0,0) to clip space
// (-1,1) and pixel (w,h) to (1,-1).
package nkgpu
