// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nkgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/nkgpu/internal/layout"
	"github.com/gogpu/nkgpu/internal/shaders"
)

// atlasImage is a baked RGBA32 font atlas ready for upload.
type atlasImage struct {
	pixels        []byte
	width, height uint32
}

// resources is the set of GPU objects a Context renders with. Everything is
// created once by createResources; afterwards only the contents of the
// index, vertex and uniform buffers change.
type resources struct {
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	shader     hal.ShaderModule
	pipeline   hal.RenderPipeline

	atlasTexture hal.Texture
	atlasView    hal.TextureView
	sampler      hal.Sampler

	indexBuf   hal.Buffer
	vertexBuf  hal.Buffer
	uniformBuf hal.Buffer

	bindGroup hal.BindGroup
}

// guiBlendState blends color with straight alpha and writes source alpha.
func guiBlendState() gputypes.BlendState {
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorZero,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}

// createResources builds the GUI pipeline, uploads the atlas and allocates
// the geometry buffers. Objects created before a failure are destroyed.
func createResources(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, o *options, img atlasImage) (*resources, error) {
	r := &resources{}
	if err := r.init(device, queue, format, o, img); err != nil {
		r.destroy(device)
		return nil, err
	}
	return r, nil
}

func (r *resources) init(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, o *options, img atlasImage) error {
	label := func(name string) string { return o.label + "_" + name }

	// Bind group layout:
	//   Binding 0: projection uniform (vertex)
	//   Binding 1: font atlas texture (fragment)
	//   Binding 2: font atlas sampler (fragment)
	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: label("bind_layout"),
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: uniformSize,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	r.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label("pipe_layout"),
		BindGroupLayouts: []hal.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	source, err := shaderSource(o.precompiled)
	if err != nil {
		return err
	}
	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label("shader"),
		Source: source,
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	r.shader = shader

	blend := guiBlendState()
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label("pipeline"),
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: shaders.VertexEntry,
			Buffers:    layout.BufferLayouts(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: shaders.FragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: o.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	r.pipeline = pipeline

	if err := r.uploadAtlas(device, queue, label, img); err != nil {
		return err
	}

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label("sampler"),
		AddressModeU: gputypes.AddressModeRepeat,
		AddressModeV: gputypes.AddressModeRepeat,
		AddressModeW: gputypes.AddressModeRepeat,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
		LodMaxClamp:  32,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}
	r.sampler = sampler

	if r.indexBuf, err = createBuffer(device, label("index"), uint64(o.indexBufferSize),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	if r.vertexBuf, err = createBuffer(device, label("vertex"), uint64(o.vertexBufferSize),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	if r.uniformBuf, err = createBuffer(device, label("uniform"), uniformSize,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}

	bindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label("bind_group"),
		Layout: r.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: r.atlasView.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: r.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

// uploadAtlas creates the RGBA8 atlas texture and view and writes the baked
// pixels into it.
func (r *resources) uploadAtlas(device hal.Device, queue hal.Queue, label func(string) string, img atlasImage) error {
	size := hal.Extent3D{Width: img.width, Height: img.height, DepthOrArrayLayers: 1}
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label("font_atlas"),
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create font atlas texture: %w", err)
	}
	r.atlasTexture = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label("font_atlas_view"),
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return fmt.Errorf("create font atlas view: %w", err)
	}
	r.atlasView = view

	err = queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		img.pixels,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: img.width * 4, RowsPerImage: img.height},
		&size,
	)
	if err != nil {
		return fmt.Errorf("upload font atlas: %w", err)
	}
	return nil
}

func createBuffer(device hal.Device, label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer: %w", label, err)
	}
	return buf, nil
}

// shaderSource returns WGSL, or SPIR-V compiled by naga when precompiled
// is set.
func shaderSource(precompiled bool) (hal.ShaderSource, error) {
	if !precompiled {
		return hal.ShaderSource{WGSL: shaders.Source()}, nil
	}
	code, err := shaders.SPIRV()
	if err != nil {
		return hal.ShaderSource{}, fmt.Errorf("precompile shader: %w", err)
	}
	return hal.ShaderSource{SPIRV: code}, nil
}

// destroy releases every object that was created, dependents first.
// Safe to call on a partially initialized set.
func (r *resources) destroy(device hal.Device) {
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	for _, buf := range []*hal.Buffer{&r.uniformBuf, &r.vertexBuf, &r.indexBuf} {
		if *buf != nil {
			device.DestroyBuffer(*buf)
			*buf = nil
		}
	}
	if r.sampler != nil {
		device.DestroySampler(r.sampler)
		r.sampler = nil
	}
	if r.atlasView != nil {
		device.DestroyTextureView(r.atlasView)
		r.atlasView = nil
	}
	if r.atlasTexture != nil {
		device.DestroyTexture(r.atlasTexture)
		r.atlasTexture = nil
	}
	if r.pipeline != nil {
		device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.shader != nil {
		device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
	if r.pipeLayout != nil {
		device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.bindLayout != nil {
		device.DestroyBindGroupLayout(r.bindLayout)
		r.bindLayout = nil
	}
}
