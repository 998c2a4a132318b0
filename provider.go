// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nkgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/nkgpu/toolkit"
)

// halProvider is implemented by device providers that expose the HAL
// device and queue behind gpucontext handles.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewContextFromProvider creates a Context on the device shared by provider,
// targeting its surface format. Headless providers without a surface get
// BGRA8Unorm.
func NewContextFromProvider(provider gpucontext.DeviceProvider, tk toolkit.Toolkit,
	atlas toolkit.FontAtlas, opts ...Option) (*Context, error) {
	if provider == nil {
		return nil, ErrNilDevice
	}
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return NewContext(device, queue, format, tk, atlas, opts...)
}

func halFromProvider(provider any) (hal.Device, hal.Queue, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	return device, queue, nil
}
