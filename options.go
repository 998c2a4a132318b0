// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nkgpu

// Default scratch buffer capacities and tessellation quality.
const (
	// DefaultIndexBufferSize is the capacity of the index scratch buffer
	// and of the GPU index buffer.
	DefaultIndexBufferSize = 128 * 1024

	// DefaultVertexBufferSize is the capacity of the vertex scratch buffer
	// and of the GPU vertex buffer.
	DefaultVertexBufferSize = 512 * 1024

	// DefaultSegmentCount is the number of segments used for circles,
	// curves and arcs.
	DefaultSegmentCount = 22

	// DefaultSampleCount is the render pipeline multisample count.
	DefaultSampleCount = 1

	// DefaultLabel prefixes the labels of created GPU objects.
	DefaultLabel = "nkgpu"
)

// Option configures a Context during creation.
//
// Example:
//
//	ctx, err := nkgpu.NewContext(device, queue, format, tk, fonts,
//	    nkgpu.WithBufferSizes(256*1024, 1024*1024),
//	    nkgpu.WithSampleCount(4),
//	)
type Option func(*options)

// options holds optional configuration for Context creation.
type options struct {
	indexBufferSize  int
	vertexBufferSize int
	segmentCount     uint32
	sampleCount      uint32
	precompiled      bool
	label            string
}

func defaultOptions() options {
	return options{
		indexBufferSize:  DefaultIndexBufferSize,
		vertexBufferSize: DefaultVertexBufferSize,
		segmentCount:     DefaultSegmentCount,
		sampleCount:      DefaultSampleCount,
		label:            DefaultLabel,
	}
}

// WithBufferSizes sets the index and vertex scratch capacities in bytes.
// Geometry beyond these capacities is dropped each frame and reported in
// FrameStats.Truncated. Non-positive values keep the defaults.
func WithBufferSizes(indexBytes, vertexBytes int) Option {
	return func(o *options) {
		if indexBytes > 0 {
			o.indexBufferSize = indexBytes
		}
		if vertexBytes > 0 {
			o.vertexBufferSize = vertexBytes
		}
	}
}

// WithSegmentCount sets the tessellation segment count used for circles,
// curves and arcs. Zero keeps the default.
func WithSegmentCount(n uint32) Option {
	return func(o *options) {
		if n > 0 {
			o.segmentCount = n
		}
	}
}

// WithSampleCount sets the multisample count of the render pipeline. It
// must match the sample count of the render pass color attachment.
func WithSampleCount(n uint32) Option {
	return func(o *options) {
		if n > 0 {
			o.sampleCount = n
		}
	}
}

// WithPrecompiledShaders makes the Context hand SPIR-V compiled by naga to
// the device instead of WGSL source.
func WithPrecompiledShaders() Option {
	return func(o *options) {
		o.precompiled = true
	}
}

// WithLabel sets the prefix of the debug labels given to GPU objects.
func WithLabel(label string) Option {
	return func(o *options) {
		if label != "" {
			o.label = label
		}
	}
}
