// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package toolkit

import (
	"errors"
	"fmt"
	"strings"
)

// Convert configuration errors.
var (
	// ErrMissingAttribute is returned when the vertex layout lacks position,
	// texcoord or color.
	ErrMissingAttribute = errors.New("toolkit: vertex layout is missing an attribute")

	// ErrBadVertexSize is returned when the vertex size or alignment is invalid.
	ErrBadVertexSize = errors.New("toolkit: invalid vertex size or alignment")

	// ErrElementOutOfRange is returned when an element does not fit in the vertex.
	ErrElementOutOfRange = errors.New("toolkit: vertex layout element exceeds vertex size")
)

// VertexAttribute names a vertex component written by Convert.
type VertexAttribute int

// Vertex attributes.
const (
	VertexPosition VertexAttribute = iota
	VertexColor
	VertexTexcoord
	VertexAttributeCount
)

// String returns the attribute name.
func (a VertexAttribute) String() string {
	switch a {
	case VertexPosition:
		return "position"
	case VertexColor:
		return "color"
	case VertexTexcoord:
		return "texcoord"
	default:
		return fmt.Sprintf("VertexAttribute(%d)", int(a))
	}
}

// VertexFormat is the storage format of a vertex attribute.
type VertexFormat int

// Vertex formats. FormatFloat stores two float32 values for position and
// texcoord attributes.
const (
	FormatFloat VertexFormat = iota
	FormatR8G8B8A8
	FormatB8G8R8A8
	FormatR32G32B32A32Float
	FormatCount
)

// Size returns the number of bytes the format occupies for attr, or 0 when
// the combination is not supported.
func (f VertexFormat) Size(attr VertexAttribute) int {
	switch attr {
	case VertexPosition, VertexTexcoord:
		if f == FormatFloat {
			return 8
		}
	case VertexColor:
		switch f {
		case FormatR8G8B8A8, FormatB8G8R8A8:
			return 4
		case FormatR32G32B32A32Float:
			return 16
		}
	}
	return 0
}

// VertexLayoutElement places one attribute inside a vertex.
type VertexLayoutElement struct {
	Attribute VertexAttribute
	Format    VertexFormat
	Offset    uintptr
}

// AntiAliasing toggles toolkit side anti-aliasing of shapes or lines.
type AntiAliasing int

// Anti-aliasing modes.
const (
	AntiAliasingOff AntiAliasing = iota
	AntiAliasingOn
)

// ConvertConfig drives geometry conversion.
type ConvertConfig struct {
	// GlobalAlpha multiplies the alpha of every vertex color.
	GlobalAlpha float32

	// LineAA and ShapeAA select toolkit side anti-aliasing.
	LineAA  AntiAliasing
	ShapeAA AntiAliasing

	// Tessellation segment counts for circles, curves and arcs.
	CircleSegmentCount uint32
	CurveSegmentCount  uint32
	ArcSegmentCount    uint32

	// Null is the white texel used for untextured geometry.
	Null NullTexture

	// VertexLayout describes where each attribute is written.
	VertexLayout    []VertexLayoutElement
	VertexSize      uintptr
	VertexAlignment uintptr

	// DisplayWidth and DisplayHeight are the target size in pixels. Clip
	// rectangles of emitted commands are divided by them.
	DisplayWidth  float32
	DisplayHeight float32
}

// Element returns the layout element for attr.
func (c *ConvertConfig) Element(attr VertexAttribute) (VertexLayoutElement, bool) {
	for _, e := range c.VertexLayout {
		if e.Attribute == attr {
			return e, true
		}
	}
	return VertexLayoutElement{}, false
}

// Validate checks that the vertex layout is usable.
func (c *ConvertConfig) Validate() error {
	if c.VertexSize == 0 || c.VertexAlignment == 0 || c.VertexAlignment&(c.VertexAlignment-1) != 0 {
		return fmt.Errorf("%w: size=%d align=%d", ErrBadVertexSize, c.VertexSize, c.VertexAlignment)
	}
	if c.VertexSize%c.VertexAlignment != 0 {
		return fmt.Errorf("%w: size %d not a multiple of %d", ErrBadVertexSize, c.VertexSize, c.VertexAlignment)
	}
	for _, attr := range []VertexAttribute{VertexPosition, VertexTexcoord, VertexColor} {
		e, ok := c.Element(attr)
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingAttribute, attr)
		}
		n := e.Format.Size(attr)
		if n == 0 || e.Offset+uintptr(n) > c.VertexSize {
			return fmt.Errorf("%w: %s at offset %d", ErrElementOutOfRange, attr, e.Offset)
		}
	}
	return nil
}

// ConvertResult is the set of flags returned by Convert.
type ConvertResult uint32

// Convert result flags. ConvertSuccess is the empty set.
const (
	ConvertSuccess      ConvertResult = 0
	ConvertInvalidParam ConvertResult = 1 << (iota - 1)
	ConvertCommandBufferFull
	ConvertVertexBufferFull
	ConvertElementBufferFull
)

// Truncated reports whether geometry was dropped because a buffer was full.
func (r ConvertResult) Truncated() bool {
	return r&(ConvertCommandBufferFull|ConvertVertexBufferFull|ConvertElementBufferFull) != 0
}

// String lists the set flags.
func (r ConvertResult) String() string {
	if r == ConvertSuccess {
		return "success"
	}
	var parts []string
	if r&ConvertInvalidParam != 0 {
		parts = append(parts, "invalid-param")
	}
	if r&ConvertCommandBufferFull != 0 {
		parts = append(parts, "command-buffer-full")
	}
	if r&ConvertVertexBufferFull != 0 {
		parts = append(parts, "vertex-buffer-full")
	}
	if r&ConvertElementBufferFull != 0 {
		parts = append(parts, "element-buffer-full")
	}
	return strings.Join(parts, "|")
}
