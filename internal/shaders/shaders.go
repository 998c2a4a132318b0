// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shaders holds the WGSL program used to draw GUI vertices.
package shaders

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

// Entry points exported by the GUI shader.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

//go:embed gui.wgsl
var guiShaderSource string

var (
	spirvOnce sync.Once
	spirvCode []uint32
	spirvErr  error
)

// Source returns the WGSL source of the GUI shader.
func Source() string {
	return guiShaderSource
}

// SPIRV returns the GUI shader compiled to SPIR-V words. The compilation
// runs once per process; later calls return the cached result.
func SPIRV() ([]uint32, error) {
	spirvOnce.Do(func() {
		spirvCode, spirvErr = Compile(guiShaderSource)
	})
	return spirvCode, spirvErr
}

// Compile translates WGSL source to little-endian SPIR-V words.
func Compile(wgsl string) ([]uint32, error) {
	if wgsl == "" {
		return nil, fmt.Errorf("shaders: empty source")
	}
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("shaders: compile: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("shaders: spir-v length %d is not a multiple of 4", len(spirvBytes))
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
