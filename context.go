// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nkgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/nkgpu/internal/layout"
	"github.com/gogpu/nkgpu/toolkit"
)

// FontTexture is the handle the font atlas texture is registered under
// with the atlas. Draw commands carry it as their texture.
const FontTexture toolkit.Handle = 1

// FrameStats describes the geometry produced by the last Update.
type FrameStats struct {
	// VertexBytes and IndexBytes are the bytes the toolkit wrote into the
	// scratch buffers.
	VertexBytes int
	IndexBytes  int

	// Commands is the number of draw commands emitted by Convert.
	Commands int

	// Result is the raw convert result.
	Result toolkit.ConvertResult

	// Truncated is set when geometry was dropped because a scratch buffer
	// was full.
	Truncated bool
}

// Context renders one toolkit into render passes of one target format.
//
// A Context is not safe for concurrent use. Each frame runs
//
//	InputBegin, input events, InputEnd, Update, begin pass, Draw, end pass
//
// on the render loop goroutine. The cursor recorded by InputMotion is the
// position InputButton reports, so motion must precede buttons within a
// batch.
type Context struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	opts   options

	tk    toolkit.Toolkit
	atlas toolkit.FontAtlas
	cmds  *toolkit.Buffer
	null  toolkit.NullTexture

	res *resources

	indexScratch  []byte
	vertexScratch []byte

	cursorX, cursorY int
	events           *eventQueue

	stats      FrameStats
	truncating bool
	destroyed  bool
}

// NewContext bakes the font atlas, uploads it and creates the GPU objects
// needed to draw tk into render passes targeting format.
//
// On success the Context owns tk and atlas and releases them in Destroy.
// On failure nothing created by NewContext is left behind and the caller
// keeps ownership.
func NewContext(device hal.Device, queue hal.Queue, format gputypes.TextureFormat,
	tk toolkit.Toolkit, atlas toolkit.FontAtlas, opts ...Option) (*Context, error) {
	switch {
	case device == nil:
		return nil, ErrNilDevice
	case queue == nil:
		return nil, ErrNilQueue
	case tk == nil:
		return nil, ErrNilToolkit
	case atlas == nil:
		return nil, ErrNilAtlas
	case format == gputypes.TextureFormatUndefined:
		return nil, ErrInvalidFormat
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	// Queue writes must be 4-byte aligned.
	if o.indexBufferSize%4 != 0 || o.vertexBufferSize%4 != 0 {
		return nil, fmt.Errorf("%w: buffer sizes %d/%d must be multiples of 4",
			ErrInvalidSize, o.indexBufferSize, o.vertexBufferSize)
	}

	if err := layout.Verify(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLayoutMismatch, err)
	}

	log := Logger()
	propagateLogger(tk, log)
	propagateLogger(atlas, log)

	img, err := bakeAtlas(atlas)
	if err != nil {
		return nil, err
	}

	res, err := createResources(device, queue, format, &o, img)
	if err != nil {
		atlas.Clear()
		return nil, fmt.Errorf("nkgpu: %w", err)
	}

	c := &Context{
		device:        device,
		queue:         queue,
		format:        format,
		opts:          o,
		tk:            tk,
		atlas:         atlas,
		cmds:          toolkit.NewBuffer(0),
		null:          atlas.End(FontTexture),
		res:           res,
		indexScratch:  make([]byte, o.indexBufferSize),
		vertexScratch: make([]byte, o.vertexBufferSize),
	}
	if fu, ok := tk.(toolkit.FontUser); ok {
		fu.SetFont(atlas)
	}

	log.Info("nkgpu: context created",
		"format", format.String(),
		"atlas", fmt.Sprintf("%dx%d", img.width, img.height),
		"index_bytes", o.indexBufferSize,
		"vertex_bytes", o.vertexBufferSize,
		"samples", o.sampleCount,
		"spirv", o.precompiled)
	return c, nil
}

// bakeAtlas runs Begin and Bake and checks the returned image.
func bakeAtlas(atlas toolkit.FontAtlas) (atlasImage, error) {
	atlas.Begin()
	pixels, w, h, err := atlas.Bake(toolkit.AtlasRGBA32)
	if err != nil {
		atlas.Clear()
		return atlasImage{}, fmt.Errorf("nkgpu: bake font atlas: %w", err)
	}
	if w <= 0 || h <= 0 || len(pixels) == 0 {
		atlas.Clear()
		return atlasImage{}, ErrEmptyAtlas
	}
	if len(pixels) != w*h*toolkit.AtlasRGBA32.BytesPerPixel() {
		atlas.Clear()
		return atlasImage{}, fmt.Errorf("%w: atlas %dx%d has %d bytes", ErrInvalidSize, w, h, len(pixels))
	}
	return atlasImage{pixels: pixels, width: uint32(w), height: uint32(h)}, nil //nolint:gosec // checked positive above
}

// Destroy releases the GPU objects, then clears the font atlas, frees the
// command buffer and frees the toolkit, in that order. Safe to call more
// than once.
func (c *Context) Destroy() {
	if c == nil || c.destroyed {
		return
	}
	c.destroyed = true
	if c.events != nil {
		c.events.detach()
	}
	c.res.destroy(c.device)
	c.atlas.Clear()
	c.cmds.Free()
	c.tk.Free()
	c.indexScratch, c.vertexScratch = nil, nil
	Logger().Info("nkgpu: context destroyed")
}

// Stats returns the statistics of the last Update.
func (c *Context) Stats() FrameStats {
	return c.stats
}

// Toolkit returns the toolkit the Context drives.
func (c *Context) Toolkit() toolkit.Toolkit {
	return c.tk
}

// Format returns the render target format the pipeline was built for.
func (c *Context) Format() gputypes.TextureFormat {
	return c.format
}

// NullTexture returns the white texel reported by the font atlas.
func (c *Context) NullTexture() toolkit.NullTexture {
	return c.null
}

// BufferSizes returns the index and vertex scratch capacities in bytes.
func (c *Context) BufferSizes() (indexBytes, vertexBytes int) {
	return c.opts.indexBufferSize, c.opts.vertexBufferSize
}

func (c *Context) checkAlive() error {
	if c == nil || c.destroyed {
		return ErrContextDestroyed
	}
	return nil
}
