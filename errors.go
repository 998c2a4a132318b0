// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nkgpu

import "errors"

// Errors returned by Context construction and per-frame operations.
var (
	// ErrNilDevice is returned when NewContext receives a nil device.
	ErrNilDevice = errors.New("nkgpu: device is nil")

	// ErrNilQueue is returned when NewContext receives a nil queue.
	ErrNilQueue = errors.New("nkgpu: queue is nil")

	// ErrNilToolkit is returned when NewContext receives a nil toolkit.
	ErrNilToolkit = errors.New("nkgpu: toolkit is nil")

	// ErrNilAtlas is returned when NewContext receives a nil font atlas.
	ErrNilAtlas = errors.New("nkgpu: font atlas is nil")

	// ErrInvalidFormat is returned for an undefined render target format.
	ErrInvalidFormat = errors.New("nkgpu: invalid render target format")

	// ErrInvalidSize is returned for non-positive or non-finite target
	// dimensions and for unusable buffer sizes.
	ErrInvalidSize = errors.New("nkgpu: invalid size")

	// ErrContextDestroyed is returned when a destroyed Context is used.
	ErrContextDestroyed = errors.New("nkgpu: context destroyed")

	// ErrLayoutMismatch is returned when the vertex layout seen by the
	// toolkit disagrees with the one the pipeline was built for.
	ErrLayoutMismatch = errors.New("nkgpu: vertex layout mismatch")

	// ErrEmptyAtlas is returned when the font atlas bakes no pixels.
	ErrEmptyAtlas = errors.New("nkgpu: font atlas is empty")

	// ErrNoHALProvider is returned when a DeviceProvider does not expose
	// HAL device and queue handles.
	ErrNoHALProvider = errors.New("nkgpu: provider does not expose HAL device and queue")
)
