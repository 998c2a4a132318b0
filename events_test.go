package nkgpu

import (
	"reflect"
	"sync"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/nkgpu/toolkit"
)

// fakeSource is a gpucontext.EventSource whose callbacks tests invoke.
type fakeSource struct {
	gpucontext.NullEventSource

	keyPress   func(gpucontext.Key, gpucontext.Modifiers)
	keyRelease func(gpucontext.Key, gpucontext.Modifiers)
	text       func(string)
	imeCommit  func(string)
	move       func(x, y float64)
	press      func(gpucontext.MouseButton, float64, float64)
	release    func(gpucontext.MouseButton, float64, float64)
	scroll     func(dx, dy float64)
}

func (s *fakeSource) OnKeyPress(fn func(gpucontext.Key, gpucontext.Modifiers))   { s.keyPress = fn }
func (s *fakeSource) OnKeyRelease(fn func(gpucontext.Key, gpucontext.Modifiers)) { s.keyRelease = fn }
func (s *fakeSource) OnTextInput(fn func(string))                                { s.text = fn }
func (s *fakeSource) OnIMECompositionEnd(fn func(string))                        { s.imeCommit = fn }
func (s *fakeSource) OnMouseMove(fn func(x, y float64))                          { s.move = fn }
func (s *fakeSource) OnMousePress(fn func(gpucontext.MouseButton, float64, float64)) {
	s.press = fn
}
func (s *fakeSource) OnMouseRelease(fn func(gpucontext.MouseButton, float64, float64)) {
	s.release = fn
}
func (s *fakeSource) OnScroll(fn func(dx, dy float64)) { s.scroll = fn }

func TestAttachEventsReplaysOnInputBegin(t *testing.T) {
	ctx, tk, _ := newTestContext(t)
	src := &fakeSource{}
	ctx.AttachEvents(src)

	src.move(12.7, 34.2)
	src.press(gpucontext.MouseButtonMiddle, 12, 34)
	src.release(gpucontext.MouseButtonRight, 15, 40)
	src.keyPress(gpucontext.KeyLeftShift, gpucontext.ModShift)
	src.keyRelease(gpucontext.KeyEnter, 0)
	src.text("hi")
	src.scroll(0, -3)

	if len(tk.motions) != 0 || len(tk.buttons) != 0 {
		t.Fatal("events reached the toolkit before InputBegin")
	}

	ctx.InputBegin()
	ctx.InputEnd()

	if want := [][2]int{{12, 34}}; !reflect.DeepEqual(tk.motions, want) {
		t.Errorf("motions = %v, want %v", tk.motions, want)
	}
	wantButtons := []buttonEvent{
		{toolkit.ButtonMiddle, 12, 34, true},
		{toolkit.ButtonRight, 15, 40, false},
	}
	if !reflect.DeepEqual(tk.buttons, wantButtons) {
		t.Errorf("buttons = %v, want %v", tk.buttons, wantButtons)
	}
	wantKeys := []keyEvent{{toolkit.KeyShift, true}, {toolkit.KeyEnter, false}}
	if !reflect.DeepEqual(tk.keys, wantKeys) {
		t.Errorf("keys = %v, want %v", tk.keys, wantKeys)
	}
	if string(tk.chars) != "hi" {
		t.Errorf("chars = %q, want \"hi\"", string(tk.chars))
	}
	if want := []toolkit.Vec2{{X: 0, Y: -3}}; !reflect.DeepEqual(tk.scrolls, want) {
		t.Errorf("scrolls = %v, want %v", tk.scrolls, want)
	}
	if x, y := ctx.Cursor(); x != 15 || y != 40 {
		t.Errorf("cursor = (%d,%d), want (15,40)", x, y)
	}

	ctx.InputBegin()
	ctx.InputEnd()
	if len(tk.buttons) != 2 {
		t.Error("events replayed twice")
	}
}

func TestAttachEventsClipboardKeys(t *testing.T) {
	tests := []struct {
		key  gpucontext.Key
		mods gpucontext.Modifiers
		want Key
	}{
		{gpucontext.KeyC, gpucontext.ModControl, KeyCopy},
		{gpucontext.KeyX, gpucontext.ModControl, KeyCut},
		{gpucontext.KeyV, gpucontext.ModControl, KeyPaste},
		{gpucontext.KeyC, 0, KeyNone},
		{gpucontext.KeyRightControl, gpucontext.ModControl, KeyCtrl},
		{gpucontext.KeyNumpadEnter, 0, KeyEnter},
		{gpucontext.KeyF1, 0, KeyNone},
	}
	for _, tt := range tests {
		if got := windowKey(tt.key, tt.mods); got != tt.want {
			t.Errorf("windowKey(%v, %v) = %d, want %d", tt.key, tt.mods, got, tt.want)
		}
	}
}

func TestAttachEventsTextNormalization(t *testing.T) {
	ctx, tk, _ := newTestContext(t)
	src := &fakeSource{}
	ctx.AttachEvents(src)

	src.text("e\u0301\t") // decomposed é plus a tab
	src.imeCommit("日本")
	src.text("\n")

	ctx.InputBegin()
	ctx.InputEnd()
	if want := []rune{'é', '日', '本'}; !reflect.DeepEqual(tk.chars, want) {
		t.Errorf("chars = %q, want %q", tk.chars, want)
	}
}

func TestAttachEventsConcurrentPush(t *testing.T) {
	ctx, tk, _ := newTestContext(t)
	src := &fakeSource{}
	ctx.AttachEvents(src)

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				src.move(float64(i), float64(i))
			}
		}()
	}
	wg.Wait()

	ctx.InputBegin()
	ctx.InputEnd()
	if len(tk.motions) != 100 {
		t.Errorf("motions = %d, want 100", len(tk.motions))
	}
}

func TestDestroyDetachesEvents(t *testing.T) {
	ctx, tk, _ := newTestContext(t)
	src := &fakeSource{}
	ctx.AttachEvents(src)
	ctx.Destroy()

	src.move(1, 2)
	if len(ctx.events.take()) != 0 {
		t.Error("events queued after Destroy")
	}
	if len(tk.motions) != 0 {
		t.Error("events reached a destroyed toolkit")
	}
}
