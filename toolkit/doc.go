// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package toolkit defines the contract between nkgpu and an immediate-mode
// GUI toolkit.
//
// The toolkit owns widget state and geometry generation. nkgpu only relies
// on the calls declared here:
//
//   - Input: begin/end brackets plus char, key, motion, button and scroll
//     events.
//   - Geometry: Convert writes vertices and 16-bit indices into caller
//     supplied Buffers using a ConvertConfig vertex layout and emits draw
//     commands into a command Buffer.
//   - Replay: DrawBegin/DrawNext walk the emitted commands. Commands wraps
//     that protocol as an iter.Seq.
//   - Fonts: a FontAtlas is baked once (Begin, Bake, End) and yields the
//     null texture used for untextured geometry.
//
// # Fixed buffers
//
// A Buffer created with NewFixedBuffer never grows. Allocations that would
// exceed its capacity fail, the buffer is marked full and the toolkit is
// expected to stop writing geometry. The dropped geometry is reported
// through ConvertResult, never as an error.
//
// The reference implementation lives in toolkit/drawlist.
package toolkit
