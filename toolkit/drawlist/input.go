// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import "github.com/gogpu/nkgpu/toolkit"

// MaxTextRunes bounds the text input kept per frame.
const MaxTextRunes = 256

// transition tracks a key or button: its current state and how often it
// changed since InputBegin.
type transition struct {
	down    bool
	changes int
}

func (t transition) pressed() bool {
	return (t.down && t.changes > 0) || (!t.down && t.changes >= 2)
}

func (t transition) released() bool {
	return (!t.down && t.changes > 0) || (t.down && t.changes >= 2)
}

// Input is the input state accumulated between InputBegin and InputEnd.
type Input struct {
	pos     toolkit.Vec2
	prev    toolkit.Vec2
	delta   toolkit.Vec2
	scroll  toolkit.Vec2
	buttons [toolkit.ButtonMax]transition
	at      [toolkit.ButtonMax]toolkit.Vec2
	keys    [toolkit.KeyMax]transition
	text    []rune
	open    bool
}

// InputBegin resets the per-frame counters: transitions, scroll, text
// and the motion delta.
func (l *List) InputBegin() {
	in := &l.input
	in.open = true
	in.prev = in.pos
	in.delta = toolkit.Vec2{}
	in.scroll = toolkit.Vec2{}
	in.text = in.text[:0]
	for i := range in.buttons {
		in.buttons[i].changes = 0
	}
	for i := range in.keys {
		in.keys[i].changes = 0
	}
}

// InputEnd closes the frame's input and computes the motion delta.
func (l *List) InputEnd() {
	in := &l.input
	in.open = false
	in.delta = toolkit.Vec2{X: in.pos.X - in.prev.X, Y: in.pos.Y - in.prev.Y}
}

// InputChar appends r to the frame's text input.
func (l *List) InputChar(r rune) {
	if l.freed {
		return
	}
	if len(l.input.text) >= MaxTextRunes {
		l.logger.Debug("drawlist: text input full, dropping rune", "rune", r)
		return
	}
	l.input.text = append(l.input.text, r)
}

// InputKey records a key transition. Repeated events with the same state
// are ignored.
func (l *List) InputKey(key toolkit.Key, down bool) {
	if key <= toolkit.KeyNone || key >= toolkit.KeyMax {
		l.logger.Debug("drawlist: ignoring key", "key", key)
		return
	}
	k := &l.input.keys[key]
	if k.down == down {
		return
	}
	k.down = down
	k.changes++
}

// InputMotion moves the cursor.
func (l *List) InputMotion(x, y int) {
	l.input.pos = toolkit.Vec2{X: float32(x), Y: float32(y)}
}

// InputButton records a button transition at (x, y).
func (l *List) InputButton(button toolkit.Button, x, y int, down bool) {
	if button < 0 || button >= toolkit.ButtonMax {
		l.logger.Debug("drawlist: ignoring button", "button", button)
		return
	}
	b := &l.input.buttons[button]
	if b.down == down {
		return
	}
	b.down = down
	b.changes++
	l.input.at[button] = toolkit.Vec2{X: float32(x), Y: float32(y)}
}

// InputScroll accumulates a scroll delta.
func (l *List) InputScroll(delta toolkit.Vec2) {
	l.input.scroll.X += delta.X
	l.input.scroll.Y += delta.Y
}

// Mouse returns the cursor position.
func (l *List) Mouse() toolkit.Vec2 { return l.input.pos }

// MouseDelta returns the cursor motion of the last closed input frame.
func (l *List) MouseDelta() toolkit.Vec2 { return l.input.delta }

// Scroll returns the scroll accumulated this frame.
func (l *List) Scroll() toolkit.Vec2 { return l.input.scroll }

// InputText returns the text typed this frame.
func (l *List) InputText() string { return string(l.input.text) }

// MouseDown reports whether b is held.
func (l *List) MouseDown(b toolkit.Button) bool {
	return b >= 0 && b < toolkit.ButtonMax && l.input.buttons[b].down
}

// MousePressed reports whether b went down this frame, including a press
// and release within the same frame.
func (l *List) MousePressed(b toolkit.Button) bool {
	return b >= 0 && b < toolkit.ButtonMax && l.input.buttons[b].pressed()
}

// MouseReleased reports whether b went up this frame.
func (l *List) MouseReleased(b toolkit.Button) bool {
	return b >= 0 && b < toolkit.ButtonMax && l.input.buttons[b].released()
}

// ButtonPos returns where b last changed state.
func (l *List) ButtonPos(b toolkit.Button) toolkit.Vec2 {
	if b < 0 || b >= toolkit.ButtonMax {
		return toolkit.Vec2{}
	}
	return l.input.at[b]
}

// Hovering reports whether the cursor is inside r.
func (l *List) Hovering(r toolkit.Rect) bool {
	return r.Contains(l.input.pos.X, l.input.pos.Y)
}

// Clicked reports whether b was pressed inside r this frame.
func (l *List) Clicked(b toolkit.Button, r toolkit.Rect) bool {
	if !l.MousePressed(b) {
		return false
	}
	at := l.ButtonPos(b)
	return r.Contains(at.X, at.Y)
}

// KeyDown reports whether k is held.
func (l *List) KeyDown(k toolkit.Key) bool {
	return k > toolkit.KeyNone && k < toolkit.KeyMax && l.input.keys[k].down
}

// KeyPressed reports whether k went down this frame. Clipboard keys
// arrive as a press and release in one frame and still count.
func (l *List) KeyPressed(k toolkit.Key) bool {
	return k > toolkit.KeyNone && k < toolkit.KeyMax && l.input.keys[k].pressed()
}

// KeyReleased reports whether k went up this frame.
func (l *List) KeyReleased(k toolkit.Key) bool {
	return k > toolkit.KeyNone && k < toolkit.KeyMax && l.input.keys[k].released()
}

// InputOpen reports whether the List is between InputBegin and InputEnd.
func (l *List) InputOpen() bool { return l.input.open }
