package nkgpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/nkgpu/toolkit"
)

// createNoopDevice returns a device and queue from the noop backend.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// newTestContext creates a Context on the noop backend around fresh fakes.
func newTestContext(t *testing.T, opts ...Option) (*Context, *fakeToolkit, *fakeAtlas) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	tk := &fakeToolkit{}
	atlas := &fakeAtlas{width: 4, height: 4}
	ctx, err := NewContext(device, queue, gputypes.TextureFormatBGRA8Unorm, tk, atlas, opts...)
	if err != nil {
		cleanup()
		t.Fatalf("NewContext failed: %v", err)
	}
	t.Cleanup(func() {
		ctx.Destroy()
		cleanup()
	})
	return ctx, tk, atlas
}

// scripted is one draw command a fakeToolkit emits on Convert.
type scripted struct {
	elems uint32
	clip  toolkit.Rect
}

type keyEvent struct {
	key  toolkit.Key
	down bool
}

type buttonEvent struct {
	button toolkit.Button
	x, y   int
	down   bool
}

// fakeToolkit records input and emits a scripted frame on Convert.
type fakeToolkit struct {
	log *[]string

	inFrame bool
	begins  int
	ends    int
	chars   []rune
	keys    []keyEvent
	motions [][2]int
	buttons []buttonEvent
	scrolls []toolkit.Vec2

	script      []scripted
	vertexBytes int
	indexBytes  int
	lastCfg     toolkit.ConvertConfig
	converts    int
	frame       []toolkit.DrawCommand

	font    toolkit.FontAtlas
	cleared int
	freed   int
}

func (f *fakeToolkit) record(s string) {
	if f.log != nil {
		*f.log = append(*f.log, s)
	}
}

func (f *fakeToolkit) InputBegin() { f.begins++; f.inFrame = true }
func (f *fakeToolkit) InputEnd()   { f.ends++; f.inFrame = false }

func (f *fakeToolkit) InputChar(r rune) { f.chars = append(f.chars, r) }

func (f *fakeToolkit) InputKey(key toolkit.Key, down bool) {
	f.keys = append(f.keys, keyEvent{key, down})
}

func (f *fakeToolkit) InputMotion(x, y int) { f.motions = append(f.motions, [2]int{x, y}) }

func (f *fakeToolkit) InputButton(b toolkit.Button, x, y int, down bool) {
	f.buttons = append(f.buttons, buttonEvent{b, x, y, down})
}

func (f *fakeToolkit) InputScroll(d toolkit.Vec2) { f.scrolls = append(f.scrolls, d) }

func (f *fakeToolkit) Convert(cmds, vertices, elements *toolkit.Buffer, cfg *toolkit.ConvertConfig) toolkit.ConvertResult {
	f.converts++
	f.lastCfg = *cfg
	if err := cfg.Validate(); err != nil {
		return toolkit.ConvertInvalidParam
	}
	res := toolkit.ConvertSuccess
	if f.vertexBytes > 0 && vertices.Alloc(f.vertexBytes, int(cfg.VertexAlignment)) == nil {
		res |= toolkit.ConvertVertexBufferFull
	}
	if f.indexBytes > 0 && elements.Alloc(f.indexBytes, 2) == nil {
		res |= toolkit.ConvertElementBufferFull
	}
	f.frame = f.frame[:0]
	for i, s := range f.script {
		cmds.Alloc(32, 4)
		f.frame = append(f.frame, toolkit.DrawCommand{
			ElemCount: s.elems,
			ClipRect:  s.clip,
			Texture:   cfg.Null.Texture,
			Index:     i,
		})
	}
	return res
}

func (f *fakeToolkit) DrawBegin(cmds *toolkit.Buffer) *toolkit.DrawCommand {
	if len(f.frame) == 0 || cmds.Allocated() == 0 {
		return nil
	}
	return &f.frame[0]
}

func (f *fakeToolkit) DrawNext(cmd *toolkit.DrawCommand, _ *toolkit.Buffer) *toolkit.DrawCommand {
	if cmd.Index+1 >= len(f.frame) {
		return nil
	}
	return &f.frame[cmd.Index+1]
}

func (f *fakeToolkit) Clear() {
	f.cleared++
	f.frame = f.frame[:0]
}

func (f *fakeToolkit) Free() {
	f.freed++
	f.record("toolkit.free")
}

func (f *fakeToolkit) SetFont(a toolkit.FontAtlas) { f.font = a }

// fakeAtlas bakes a solid white RGBA32 image.
type fakeAtlas struct {
	log *[]string

	width, height int
	bakeErr       error
	pixels        []byte

	begins    int
	format    toolkit.AtlasFormat
	endedWith toolkit.Handle
	ended     int
	cleared   int
}

func (a *fakeAtlas) Begin() { a.begins++ }

func (a *fakeAtlas) Bake(format toolkit.AtlasFormat) ([]byte, int, int, error) {
	a.format = format
	if a.bakeErr != nil {
		return nil, 0, 0, a.bakeErr
	}
	if a.pixels != nil {
		return a.pixels, a.width, a.height, nil
	}
	px := make([]byte, a.width*a.height*format.BytesPerPixel())
	for i := range px {
		px[i] = 0xFF
	}
	return px, a.width, a.height, nil
}

func (a *fakeAtlas) End(tex toolkit.Handle) toolkit.NullTexture {
	a.ended++
	a.endedWith = tex
	return toolkit.NullTexture{Texture: tex, UV: toolkit.Vec2{X: 0.5 / float32(a.width), Y: 0.5 / float32(a.height)}}
}

func (a *fakeAtlas) Clear() {
	a.cleared++
	if a.log != nil {
		*a.log = append(*a.log, "atlas.clear")
	}
}

// passOp is one recorded render pass call.
type passOp struct {
	name string
	args []uint32
}

func (o passOp) String() string { return fmt.Sprintf("%s%v", o.name, o.args) }

// recordingPass is a hal.RenderPassEncoder that records calls.
type recordingPass struct {
	ops         []passOp
	viewport    [6]float32
	indexFormat gputypes.IndexFormat
	pipeline    hal.RenderPipeline
	bindGroup   hal.BindGroup
}

func (p *recordingPass) add(name string, args ...uint32) {
	p.ops = append(p.ops, passOp{name, args})
}

func (p *recordingPass) End() { p.add("End") }

func (p *recordingPass) SetPipeline(pl hal.RenderPipeline) {
	p.pipeline = pl
	p.add("SetPipeline")
}

func (p *recordingPass) SetBindGroup(index uint32, g hal.BindGroup, _ []uint32) {
	p.bindGroup = g
	p.add("SetBindGroup", index)
}

func (p *recordingPass) SetVertexBuffer(slot uint32, _ hal.Buffer, offset uint64) {
	p.add("SetVertexBuffer", slot, uint32(offset))
}

func (p *recordingPass) SetIndexBuffer(_ hal.Buffer, format gputypes.IndexFormat, offset uint64) {
	p.indexFormat = format
	p.add("SetIndexBuffer", uint32(offset))
}

func (p *recordingPass) SetViewport(x, y, w, h, minD, maxD float32) {
	p.viewport = [6]float32{x, y, w, h, minD, maxD}
	p.add("SetViewport")
}

func (p *recordingPass) SetScissorRect(x, y, w, h uint32) { p.add("SetScissorRect", x, y, w, h) }

func (p *recordingPass) SetBlendConstant(*gputypes.Color) { p.add("SetBlendConstant") }

func (p *recordingPass) SetStencilReference(ref uint32) { p.add("SetStencilReference", ref) }

func (p *recordingPass) Draw(vc, ic, fv, fi uint32) { p.add("Draw", vc, ic, fv, fi) }

func (p *recordingPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.add("DrawIndexed", indexCount, instanceCount, firstIndex, uint32(baseVertex), firstInstance)
}

func (p *recordingPass) DrawIndirect(hal.Buffer, uint64)        { p.add("DrawIndirect") }
func (p *recordingPass) DrawIndexedIndirect(hal.Buffer, uint64) { p.add("DrawIndexedIndirect") }
func (p *recordingPass) ExecuteBundle(hal.RenderBundle)         { p.add("ExecuteBundle") }

// named returns the recorded ops called name.
func (p *recordingPass) named(name string) []passOp {
	var out []passOp
	for _, op := range p.ops {
		if op.name == name {
			out = append(out, op)
		}
	}
	return out
}

// bufferWrite is one recorded queue write.
type bufferWrite struct {
	buffer hal.Buffer
	offset uint64
	data   []byte
}

// recordingQueue forwards to a real queue and records buffer writes.
type recordingQueue struct {
	hal.Queue
	writes   []bufferWrite
	failNext error
}

func (q *recordingQueue) WriteBuffer(buf hal.Buffer, offset uint64, data []byte) error {
	if q.failNext != nil {
		err := q.failNext
		q.failNext = nil
		return err
	}
	q.writes = append(q.writes, bufferWrite{buf, offset, append([]byte(nil), data...)})
	return q.Queue.WriteBuffer(buf, offset, data)
}

func (q *recordingQueue) writeTo(buf hal.Buffer) (bufferWrite, bool) {
	for i := len(q.writes) - 1; i >= 0; i-- {
		if q.writes[i].buffer == buf {
			return q.writes[i], true
		}
	}
	return bufferWrite{}, false
}

var errInjected = errors.New("injected failure")

// failingDevice fails CreateRenderPipeline and counts destroyed objects.
type failingDevice struct {
	hal.Device
	destroyed map[string]int
}

func (d *failingDevice) CreateRenderPipeline(*hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	return nil, errInjected
}

func (d *failingDevice) count(name string) {
	if d.destroyed == nil {
		d.destroyed = map[string]int{}
	}
	d.destroyed[name]++
}

func (d *failingDevice) DestroyBindGroupLayout(l hal.BindGroupLayout) {
	d.count("bind_layout")
	d.Device.DestroyBindGroupLayout(l)
}

func (d *failingDevice) DestroyPipelineLayout(l hal.PipelineLayout) {
	d.count("pipe_layout")
	d.Device.DestroyPipelineLayout(l)
}

func (d *failingDevice) DestroyShaderModule(m hal.ShaderModule) {
	d.count("shader")
	d.Device.DestroyShaderModule(m)
}

func (d *failingDevice) DestroyRenderPipeline(p hal.RenderPipeline) {
	d.count("pipeline")
	d.Device.DestroyRenderPipeline(p)
}
