// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command nkdemo drives a few GUI frames through nkgpu on the noop HAL
// backend and prints per-frame statistics.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/nkgpu"
	"github.com/gogpu/nkgpu/atlas"
	"github.com/gogpu/nkgpu/internal/config"
	"github.com/gogpu/nkgpu/toolkit/drawlist"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatalf("nkdemo: %v", err)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("nkdemo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "TOML or YAML configuration file")
		frames     = fs.Int("frames", -1, "number of frames (overrides the configuration)")
		width      = fs.Int("width", 0, "surface width (overrides the configuration)")
		height     = fs.Int("height", 0, "surface height (overrides the configuration)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *frames >= 0 {
		cfg.Demo.Frames = *frames
	}
	if *width > 0 {
		cfg.Surface.Width = *width
	}
	if *height > 0 {
		cfg.Surface.Height = *height
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	nkgpu.SetLogger(logger)
	defer nkgpu.SetLogger(nil)

	d, err := newDemo(&cfg)
	if err != nil {
		return err
	}
	defer d.close()

	for i := range cfg.Demo.Frames {
		stats, calls, err := d.frame(i)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		logger.Info("frame",
			"n", i,
			"commands", stats.Commands,
			"draw_calls", calls,
			"vertex_bytes", stats.VertexBytes,
			"index_bytes", stats.IndexBytes,
			"truncated", stats.Truncated)
	}
	return nil
}

// demo owns the headless device, the render target and the GUI context.
type demo struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	target   hal.Texture
	view     hal.TextureView

	ui     *drawlist.List
	ctx    *nkgpu.Context
	width  float32
	height float32
}

func newDemo(cfg *config.Config) (*demo, error) {
	format, err := cfg.TextureFormat()
	if err != nil {
		return nil, err
	}

	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	d := &demo{
		instance: instance,
		width:    float32(cfg.Surface.Width),
		height:   float32(cfg.Surface.Height),
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		d.close()
		return nil, errors.New("no adapter")
	}
	open, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		d.close()
		return nil, fmt.Errorf("open device: %w", err)
	}
	d.device, d.queue = open.Device, open.Queue

	d.target, err = d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "nkdemo_target",
		Size:          hal.Extent3D{Width: uint32(cfg.Surface.Width), Height: uint32(cfg.Surface.Height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   cfg.Render.SampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		d.close()
		return nil, fmt.Errorf("create target: %w", err)
	}
	d.view, err = d.device.CreateTextureView(d.target, &hal.TextureViewDescriptor{Label: "nkdemo_target_view"})
	if err != nil {
		d.close()
		return nil, fmt.Errorf("create target view: %w", err)
	}

	atlasOpts, err := cfg.AtlasOptions()
	if err != nil {
		d.close()
		return nil, err
	}
	fonts, err := atlas.New(atlasOpts...)
	if err != nil {
		d.close()
		return nil, err
	}

	d.ui = drawlist.New()
	d.ctx, err = nkgpu.NewContext(d.device, d.queue, format, d.ui, fonts, cfg.Options()...)
	if err != nil {
		d.close()
		return nil, err
	}
	return d, nil
}

// frame feeds synthetic input, builds the UI and renders it.
func (d *demo) frame(n int) (nkgpu.FrameStats, int, error) {
	d.ctx.InputBegin()
	d.ctx.InputMotion(40+n*7, 60+n*3)
	switch n % 3 {
	case 1:
		d.ctx.InputButton(nkgpu.ButtonLeft, nkgpu.Press)
	case 2:
		d.ctx.InputButton(nkgpu.ButtonLeft, nkgpu.Release)
		d.ctx.InputChar('n')
		d.ctx.InputKey(nkgpu.KeyEnter, nkgpu.Press)
		d.ctx.InputKey(nkgpu.KeyEnter, nkgpu.Release)
	}
	d.ctx.InputScroll(0, 1)
	d.ctx.InputEnd()

	buildUI(d.ui, n, d.width, d.height)

	stats, err := d.ctx.Update(nil, d.width, d.height)
	if err != nil {
		return stats, 0, err
	}

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "nkdemo"})
	if err != nil {
		return stats, 0, fmt.Errorf("create encoder: %w", err)
	}
	if err := encoder.BeginEncoding("nkdemo"); err != nil {
		return stats, 0, fmt.Errorf("begin encoding: %w", err)
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "nkdemo_gui",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       d.view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0.1, G: 0.1, B: 0.12, A: 1},
		}},
	})
	calls := nkgpu.DrawGUI(rp, d.ctx, d.width, d.height)
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return stats, calls, fmt.Errorf("end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmd)
	if _, err := d.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return stats, calls, fmt.Errorf("submit: %w", err)
	}
	return stats, calls, nil
}

func (d *demo) close() {
	if d.ctx != nil {
		d.ctx.Destroy()
	}
	if d.device != nil {
		if d.view != nil {
			d.device.DestroyTextureView(d.view)
		}
		if d.target != nil {
			d.device.DestroyTexture(d.target)
		}
		d.device.Destroy()
	}
	if d.instance != nil {
		d.instance.Destroy()
	}
}
