// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nkgpu

import (
	"sync"
	"unicode"

	"github.com/gogpu/gpucontext"
	"golang.org/x/text/unicode/norm"
)

type eventKind uint8

const (
	eventKey eventKind = iota
	eventText
	eventMotion
	eventButton
	eventScroll
)

// event is one window event waiting for the next input batch.
type event struct {
	kind   eventKind
	key    Key
	button Button
	state  State
	x, y   float64
	text   string
}

// eventQueue collects events delivered by a gpucontext.EventSource, which
// may call back from any goroutine, until InputBegin replays them.
type eventQueue struct {
	mu       sync.Mutex
	pending  []event
	detached bool
}

func (q *eventQueue) push(e event) {
	q.mu.Lock()
	if !q.detached {
		q.pending = append(q.pending, e)
	}
	q.mu.Unlock()
}

func (q *eventQueue) take() []event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

func (q *eventQueue) detach() {
	q.mu.Lock()
	q.detached = true
	q.pending = nil
	q.mu.Unlock()
}

// flush replays the queued events through the Context input methods.
func (q *eventQueue) flush(c *Context) {
	for _, e := range q.take() {
		switch e.kind {
		case eventKey:
			c.InputKey(e.key, e.state)
		case eventText:
			for _, r := range e.text {
				c.InputChar(r)
			}
		case eventMotion:
			c.InputMotion(int(e.x), int(e.y))
		case eventButton:
			c.InputButtonAt(e.button, e.state, int(e.x), int(e.y))
		case eventScroll:
			c.InputScroll(float32(e.x), float32(e.y))
		}
	}
}

// AttachEvents subscribes the Context to the events of src. Events are
// queued as they arrive and fed to the toolkit by the next InputBegin, in
// arrival order. Text input is normalized to NFC.
//
// AttachEvents may be called with several sources; their events share one
// queue. Destroy stops queueing.
func (c *Context) AttachEvents(src gpucontext.EventSource) {
	if c.checkAlive() != nil || src == nil {
		return
	}
	if c.events == nil {
		c.events = &eventQueue{}
	}
	q := c.events

	onKey := func(state State) func(gpucontext.Key, gpucontext.Modifiers) {
		return func(k gpucontext.Key, mods gpucontext.Modifiers) {
			if key := windowKey(k, mods); key != KeyNone {
				q.push(event{kind: eventKey, key: key, state: state})
			}
		}
	}
	src.OnKeyPress(onKey(Press))
	src.OnKeyRelease(onKey(Release))

	onText := func(text string) {
		if text = printable(text); text != "" {
			q.push(event{kind: eventText, text: text})
		}
	}
	src.OnTextInput(onText)
	src.OnIMECompositionEnd(onText)

	src.OnMouseMove(func(x, y float64) {
		q.push(event{kind: eventMotion, x: x, y: y})
	})
	onButton := func(state State) func(gpucontext.MouseButton, float64, float64) {
		return func(b gpucontext.MouseButton, x, y float64) {
			button, ok := windowButton(b)
			if !ok {
				return
			}
			q.push(event{kind: eventButton, button: button, state: state, x: x, y: y})
		}
	}
	src.OnMousePress(onButton(Press))
	src.OnMouseRelease(onButton(Release))

	src.OnScroll(func(dx, dy float64) {
		q.push(event{kind: eventScroll, x: dx, y: dy})
	})
}

// windowKey maps a window key to a bridge key. Ctrl+C, Ctrl+X and Ctrl+V
// become the clipboard keys.
func windowKey(k gpucontext.Key, mods gpucontext.Modifiers) Key {
	switch k {
	case gpucontext.KeyLeftShift, gpucontext.KeyRightShift:
		return KeyShift
	case gpucontext.KeyLeftControl, gpucontext.KeyRightControl:
		return KeyCtrl
	case gpucontext.KeyDelete:
		return KeyDelete
	case gpucontext.KeyEnter, gpucontext.KeyNumpadEnter:
		return KeyEnter
	case gpucontext.KeyTab:
		return KeyTab
	case gpucontext.KeyBackspace:
		return KeyBackspace
	case gpucontext.KeyUp:
		return KeyUp
	case gpucontext.KeyDown:
		return KeyDown
	case gpucontext.KeyLeft:
		return KeyLeft
	case gpucontext.KeyRight:
		return KeyRight
	}
	if mods.HasControl() {
		switch k {
		case gpucontext.KeyC:
			return KeyCopy
		case gpucontext.KeyX:
			return KeyCut
		case gpucontext.KeyV:
			return KeyPaste
		}
	}
	return KeyNone
}

func windowButton(b gpucontext.MouseButton) (Button, bool) {
	switch b {
	case gpucontext.MouseButtonLeft:
		return ButtonLeft, true
	case gpucontext.MouseButtonMiddle:
		return ButtonMiddle, true
	case gpucontext.MouseButtonRight:
		return ButtonRight, true
	}
	return 0, false
}

// printable returns text in NFC with control characters removed. Control
// keys arrive as key events.
func printable(text string) string {
	text = norm.NFC.String(text)
	clean := true
	for _, r := range text {
		if unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return text
	}
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if !unicode.IsControl(r) {
			out = append(out, r)
		}
	}
	return string(out)
}
