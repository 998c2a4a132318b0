// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nkgpu

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/nkgpu/internal/layout"
	"github.com/gogpu/nkgpu/toolkit"
)

// convertConfig returns the toolkit convert configuration for a target of
// width x height pixels.
func (c *Context) convertConfig(width, height float32) toolkit.ConvertConfig {
	cfg := layout.ConvertConfig()
	cfg.GlobalAlpha = 1
	cfg.ShapeAA = toolkit.AntiAliasingOff
	cfg.LineAA = toolkit.AntiAliasingOff
	cfg.CircleSegmentCount = c.opts.segmentCount
	cfg.CurveSegmentCount = c.opts.segmentCount
	cfg.ArcSegmentCount = c.opts.segmentCount
	cfg.Null = c.null
	cfg.DisplayWidth = width
	cfg.DisplayHeight = height
	return cfg
}

// Update converts the toolkit's shapes into the scratch buffers and uploads
// them with the projection for a width x height target. A nil queue means
// the queue the Context was created with.
//
// The index and vertex buffers are replaced as a whole every frame. Shapes
// that do not fit into the scratch buffers are dropped by the toolkit; that
// is reported through FrameStats.Truncated and a warning, not an error.
func (c *Context) Update(queue hal.Queue, width, height float32) (FrameStats, error) {
	if err := c.checkAlive(); err != nil {
		return FrameStats{}, err
	}
	if !validSize(width) || !validSize(height) {
		return FrameStats{}, fmt.Errorf("%w: target %vx%v", ErrInvalidSize, width, height)
	}
	if queue == nil {
		queue = c.queue
	}

	vertices := toolkit.NewFixedBuffer(c.vertexScratch)
	elements := toolkit.NewFixedBuffer(c.indexScratch)
	c.cmds.Reset()

	cfg := c.convertConfig(width, height)
	result := c.tk.Convert(c.cmds, vertices, elements, &cfg)

	stats := FrameStats{
		VertexBytes: vertices.Allocated(),
		IndexBytes:  elements.Allocated(),
		Result:      result,
		Truncated:   result.Truncated() || vertices.Full() || elements.Full(),
	}
	for range toolkit.Commands(c.tk, c.cmds) {
		stats.Commands++
	}
	c.stats = stats

	log := Logger()
	if result&toolkit.ConvertInvalidParam != 0 {
		log.Warn("nkgpu: toolkit rejected convert configuration", "result", result.String())
	}
	if stats.Truncated && !c.truncating {
		log.Warn("nkgpu: GUI geometry exceeds scratch buffers, frame truncated",
			"result", result.String(),
			"vertex_needed", vertices.Needed(), "vertex_capacity", vertices.Capacity(),
			"index_needed", elements.Needed(), "index_capacity", elements.Capacity())
	}
	c.truncating = stats.Truncated

	if err := queue.WriteBuffer(c.res.indexBuf, 0, c.indexScratch); err != nil {
		return stats, fmt.Errorf("nkgpu: upload indices: %w", err)
	}
	if err := queue.WriteBuffer(c.res.vertexBuf, 0, c.vertexScratch); err != nil {
		return stats, fmt.Errorf("nkgpu: upload vertices: %w", err)
	}
	if err := queue.WriteBuffer(c.res.uniformBuf, 0, orthoBytes(width, height)); err != nil {
		return stats, fmt.Errorf("nkgpu: upload projection: %w", err)
	}

	log.Debug("nkgpu: frame converted",
		"vertex_bytes", stats.VertexBytes,
		"index_bytes", stats.IndexBytes,
		"commands", stats.Commands)
	return stats, nil
}
