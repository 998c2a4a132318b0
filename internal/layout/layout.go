// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layout defines the vertex memory layout shared by the toolkit
// geometry converter and the render pipeline vertex state.
//
// Both sides are derived from the Vertex struct with unsafe.Offsetof, so
// they cannot drift apart. Verify checks the derived values against the
// constants the WGSL shader was written for.
package layout

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/nkgpu/toolkit"
)

// ErrMismatch is returned by Verify when the computed layout disagrees with
// the expected constants or between the toolkit and pipeline views.
var ErrMismatch = errors.New("layout: vertex layout mismatch")

// Vertex is one GUI vertex as written by the toolkit and read by the
// vertex shader.
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	uv       (vec2<f32>) = 8 bytes  (location 1)
//	color    (u32 RGBA8) = 4 bytes  (location 2)
type Vertex struct {
	Position [2]float32
	UV       [2]float32
	Color    uint32
}

// Expected layout constants.
const (
	PositionOffset = 0
	UVOffset       = 8
	ColorOffset    = 16
	Size           = 20
	Alignment      = 4
)

// Shader locations of the vertex attributes.
const (
	PositionLocation = 0
	UVLocation       = 1
	ColorLocation    = 2
)

// field describes one vertex attribute for both consumers.
type field struct {
	attr     toolkit.VertexAttribute
	tkFormat toolkit.VertexFormat
	gpu      gputypes.VertexFormat
	offset   uintptr
	location uint32
}

func fields() [3]field {
	var v Vertex
	return [3]field{
		{toolkit.VertexPosition, toolkit.FormatFloat, gputypes.VertexFormatFloat32x2, unsafe.Offsetof(v.Position), PositionLocation},
		{toolkit.VertexTexcoord, toolkit.FormatFloat, gputypes.VertexFormatFloat32x2, unsafe.Offsetof(v.UV), UVLocation},
		{toolkit.VertexColor, toolkit.FormatR8G8B8A8, gputypes.VertexFormatUint32, unsafe.Offsetof(v.Color), ColorLocation},
	}
}

// VertexSize returns unsafe.Sizeof(Vertex{}).
func VertexSize() uintptr { return unsafe.Sizeof(Vertex{}) }

// VertexAlignment returns unsafe.Alignof(Vertex{}).
func VertexAlignment() uintptr { return unsafe.Alignof(Vertex{}) }

// Elements returns the toolkit view of the layout.
func Elements() []toolkit.VertexLayoutElement {
	fs := fields()
	out := make([]toolkit.VertexLayoutElement, 0, len(fs))
	for _, f := range fs {
		out = append(out, toolkit.VertexLayoutElement{
			Attribute: f.attr,
			Format:    f.tkFormat,
			Offset:    f.offset,
		})
	}
	return out
}

// Attributes returns the pipeline view of the layout.
func Attributes() []gputypes.VertexAttribute {
	fs := fields()
	out := make([]gputypes.VertexAttribute, 0, len(fs))
	for _, f := range fs {
		out = append(out, gputypes.VertexAttribute{
			Format:         f.gpu,
			Offset:         uint64(f.offset),
			ShaderLocation: f.location,
		})
	}
	return out
}

// BufferLayouts returns the vertex buffer layout for the GUI pipeline.
func BufferLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: uint64(VertexSize()),
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes:  Attributes(),
		},
	}
}

// ConvertConfig returns a toolkit convert configuration carrying the
// layout. Callers fill in the remaining fields.
func ConvertConfig() toolkit.ConvertConfig {
	return toolkit.ConvertConfig{
		VertexLayout:    Elements(),
		VertexSize:      VertexSize(),
		VertexAlignment: VertexAlignment(),
	}
}

// Verify checks that the toolkit elements and pipeline attributes agree
// offset for offset, and that both match the constants the shader expects.
func Verify() error {
	return verify(Elements(), Attributes(), VertexSize(), VertexAlignment())
}

func verify(elems []toolkit.VertexLayoutElement, attrs []gputypes.VertexAttribute, size, align uintptr) error {
	if size != Size || align != Alignment {
		return fmt.Errorf("%w: size=%d align=%d, want %d/%d", ErrMismatch, size, align, Size, Alignment)
	}
	if len(elems) != len(attrs) {
		return fmt.Errorf("%w: %d toolkit elements vs %d pipeline attributes", ErrMismatch, len(elems), len(attrs))
	}
	want := map[toolkit.VertexAttribute]uintptr{
		toolkit.VertexPosition: PositionOffset,
		toolkit.VertexTexcoord: UVOffset,
		toolkit.VertexColor:    ColorOffset,
	}
	for i, e := range elems {
		if uint64(e.Offset) != attrs[i].Offset {
			return fmt.Errorf("%w: %s offset %d vs pipeline offset %d", ErrMismatch, e.Attribute, e.Offset, attrs[i].Offset)
		}
		if off, ok := want[e.Attribute]; !ok || off != e.Offset {
			return fmt.Errorf("%w: %s at offset %d", ErrMismatch, e.Attribute, e.Offset)
		}
	}
	return nil
}
