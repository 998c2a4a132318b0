package nkgpu

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/nkgpu/toolkit"
)

func TestNewContextValidation(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()
	format := gputypes.TextureFormatBGRA8Unorm

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"nil device", func() error {
			_, err := NewContext(nil, queue, format, &fakeToolkit{}, &fakeAtlas{width: 1, height: 1})
			return err
		}, ErrNilDevice},
		{"nil queue", func() error {
			_, err := NewContext(device, nil, format, &fakeToolkit{}, &fakeAtlas{width: 1, height: 1})
			return err
		}, ErrNilQueue},
		{"nil toolkit", func() error {
			_, err := NewContext(device, queue, format, nil, &fakeAtlas{width: 1, height: 1})
			return err
		}, ErrNilToolkit},
		{"nil atlas", func() error {
			_, err := NewContext(device, queue, format, &fakeToolkit{}, nil)
			return err
		}, ErrNilAtlas},
		{"undefined format", func() error {
			_, err := NewContext(device, queue, gputypes.TextureFormatUndefined, &fakeToolkit{}, &fakeAtlas{width: 1, height: 1})
			return err
		}, ErrInvalidFormat},
		{"unaligned buffers", func() error {
			_, err := NewContext(device, queue, format, &fakeToolkit{}, &fakeAtlas{width: 1, height: 1},
				WithBufferSizes(1022, 4096))
			return err
		}, ErrInvalidSize},
		{"empty atlas", func() error {
			_, err := NewContext(device, queue, format, &fakeToolkit{}, &fakeAtlas{})
			return err
		}, ErrEmptyAtlas},
		{"short atlas", func() error {
			_, err := NewContext(device, queue, format, &fakeToolkit{},
				&fakeAtlas{width: 2, height: 2, pixels: make([]byte, 7)})
			return err
		}, ErrInvalidSize},
		{"bake failure", func() error {
			_, err := NewContext(device, queue, format, &fakeToolkit{},
				&fakeAtlas{width: 1, height: 1, bakeErr: errInjected})
			return err
		}, errInjected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewContextAtlasProtocol(t *testing.T) {
	ctx, tk, atlas := newTestContext(t)

	if atlas.begins != 1 || atlas.ended != 1 {
		t.Errorf("atlas Begin/End called %d/%d times, want 1/1", atlas.begins, atlas.ended)
	}
	if atlas.format != toolkit.AtlasRGBA32 {
		t.Errorf("atlas baked as %v, want RGBA32", atlas.format)
	}
	if atlas.endedWith != FontTexture {
		t.Errorf("End received handle %d, want %d", atlas.endedWith, FontTexture)
	}
	if ctx.NullTexture().Texture != FontTexture {
		t.Errorf("null texture = %+v", ctx.NullTexture())
	}
	if tk.font != toolkit.FontAtlas(atlas) {
		t.Error("toolkit did not receive the baked atlas as its font")
	}
	if ctx.Toolkit() != toolkit.Toolkit(tk) {
		t.Error("Toolkit() returned a different toolkit")
	}
	if ctx.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v", ctx.Format())
	}
	if ib, vb := ctx.BufferSizes(); ib != DefaultIndexBufferSize || vb != DefaultVertexBufferSize {
		t.Errorf("BufferSizes() = %d/%d", ib, vb)
	}
}

func TestNewContextResources(t *testing.T) {
	for _, precompiled := range []bool{false, true} {
		var opts []Option
		if precompiled {
			opts = append(opts, WithPrecompiledShaders())
		}
		ctx, _, _ := newTestContext(t, opts...)
		r := ctx.res
		if r.bindLayout == nil || r.pipeLayout == nil || r.shader == nil || r.pipeline == nil ||
			r.atlasTexture == nil || r.atlasView == nil || r.sampler == nil ||
			r.indexBuf == nil || r.vertexBuf == nil || r.uniformBuf == nil || r.bindGroup == nil {
			t.Errorf("precompiled=%v: incomplete resource set %+v", precompiled, r)
		}
	}
}

func TestNewContextPartialFailure(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()
	fd := &failingDevice{Device: device}
	atlas := &fakeAtlas{width: 2, height: 2}

	_, err := NewContext(fd, queue, gputypes.TextureFormatBGRA8Unorm, &fakeToolkit{}, atlas)
	if !errors.Is(err, errInjected) {
		t.Fatalf("error = %v, want injected failure", err)
	}
	want := map[string]int{"bind_layout": 1, "pipe_layout": 1, "shader": 1}
	if !reflect.DeepEqual(fd.destroyed, want) {
		t.Errorf("destroyed = %v, want %v", fd.destroyed, want)
	}
	if atlas.cleared != 1 {
		t.Errorf("atlas cleared %d times after failure, want 1", atlas.cleared)
	}
}

func TestDestroyOrder(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	var log []string
	tk := &fakeToolkit{log: &log}
	atlas := &fakeAtlas{log: &log, width: 2, height: 2}
	ctx, err := NewContext(device, queue, gputypes.TextureFormatBGRA8Unorm, tk, atlas)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	ctx.Destroy()
	if want := []string{"atlas.clear", "toolkit.free"}; !reflect.DeepEqual(log, want) {
		t.Errorf("teardown order = %v, want %v", log, want)
	}
	if ctx.res.pipeline != nil || ctx.res.bindGroup != nil || ctx.res.indexBuf != nil {
		t.Error("GPU resources not released")
	}

	ctx.Destroy()
	if tk.freed != 1 || atlas.cleared != 1 {
		t.Errorf("second Destroy released again: freed=%d cleared=%d", tk.freed, atlas.cleared)
	}
}

func TestUseAfterDestroy(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	ctx.Destroy()

	if _, err := ctx.Update(nil, 800, 600); !errors.Is(err, ErrContextDestroyed) {
		t.Errorf("Update after Destroy = %v, want ErrContextDestroyed", err)
	}
	pass := &recordingPass{}
	if n := DrawGUI(pass, ctx, 800, 600); n != 0 || len(pass.ops) != 0 {
		t.Errorf("DrawGUI after Destroy issued %d draws, ops %v", n, pass.ops)
	}
}
