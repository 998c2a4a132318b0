// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nkgpu

import (
	"encoding/binary"
	"math"
)

// uniformSize is the size of the projection uniform (mat4x4<f32>).
const uniformSize = 64

// Ortho returns the column-major orthographic projection that maps pixel
// coordinates (origin top-left, y down) to clip space (origin center,
// y up). Pixel (0,0) lands on (-1,1) and pixel (width,height) on (1,-1).
func Ortho(width, height float32) [16]float32 {
	return [16]float32{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
}

// orthoBytes returns Ortho(width, height) in little-endian byte order.
func orthoBytes(width, height float32) []byte {
	m := Ortho(width, height)
	buf := make([]byte, uniformSize)
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// validSize reports whether v is a usable target dimension.
func validSize(v float32) bool {
	f := float64(v)
	return v > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
