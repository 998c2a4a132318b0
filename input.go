// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nkgpu

import (
	"github.com/gogpu/nkgpu/toolkit"
)

// Key is a key the bridge knows how to forward to the toolkit.
type Key int

// Keys. KeyNone is accepted and ignored.
const (
	KeyNone Key = iota
	KeyShift
	KeyCtrl
	KeyDelete
	KeyEnter
	KeyTab
	KeyBackspace
	KeyCopy
	KeyCut
	KeyPaste
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Button is a pointer button.
type Button int

// Buttons. ButtonDouble reports a double click.
const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonDouble
)

// State is the press state of a key or button.
type State int

// States.
const (
	Release State = iota
	Press
)

func (s State) down() bool { return s == Press }

var keyCodes = map[Key]toolkit.Key{
	KeyShift:     toolkit.KeyShift,
	KeyCtrl:      toolkit.KeyCtrl,
	KeyDelete:    toolkit.KeyDel,
	KeyEnter:     toolkit.KeyEnter,
	KeyTab:       toolkit.KeyTab,
	KeyBackspace: toolkit.KeyBackspace,
	KeyCopy:      toolkit.KeyCopy,
	KeyCut:       toolkit.KeyCut,
	KeyPaste:     toolkit.KeyPaste,
	KeyUp:        toolkit.KeyUp,
	KeyDown:      toolkit.KeyDown,
	KeyLeft:      toolkit.KeyLeft,
	KeyRight:     toolkit.KeyRight,
}

// toolkitKey maps k to a toolkit key code. KeyNone and unknown keys map to
// toolkit.KeyNone.
func toolkitKey(k Key) toolkit.Key {
	if code, ok := keyCodes[k]; ok {
		return code
	}
	return toolkit.KeyNone
}

// toolkitButton maps b to a toolkit button code. Unknown buttons map to
// toolkit.ButtonMax.
func toolkitButton(b Button) toolkit.Button {
	switch b {
	case ButtonLeft:
		return toolkit.ButtonLeft
	case ButtonMiddle:
		return toolkit.ButtonMiddle
	case ButtonRight:
		return toolkit.ButtonRight
	case ButtonDouble:
		return toolkit.ButtonDouble
	default:
		return toolkit.ButtonMax
	}
}

// InputBegin starts the frame's input batch. Events queued by an attached
// event source are replayed right after.
func (c *Context) InputBegin() {
	if c.checkAlive() != nil {
		return
	}
	c.tk.InputBegin()
	if c.events != nil {
		c.events.flush(c)
	}
}

// InputEnd closes the frame's input batch. It must be called before Update.
func (c *Context) InputEnd() {
	if c.checkAlive() != nil {
		return
	}
	c.tk.InputEnd()
}

// InputChar forwards one text code point.
func (c *Context) InputChar(r rune) {
	if c.checkAlive() != nil {
		return
	}
	c.tk.InputChar(r)
}

// InputKey forwards a key press or release. KeyNone never reaches the
// toolkit.
func (c *Context) InputKey(key Key, state State) {
	if c.checkAlive() != nil {
		return
	}
	code := toolkitKey(key)
	if code == toolkit.KeyNone {
		if key != KeyNone {
			Logger().Debug("nkgpu: ignoring unknown key", "key", int(key))
		}
		return
	}
	c.tk.InputKey(code, state.down())
}

// InputMotion records the cursor position in pixels and forwards it. The
// position is reused by InputButton.
func (c *Context) InputMotion(x, y int) {
	if c.checkAlive() != nil {
		return
	}
	c.cursorX, c.cursorY = x, y
	c.tk.InputMotion(x, y)
}

// InputButton reports a button event at the last position recorded by
// InputMotion. Call InputMotion first within the same batch, or use
// InputButtonAt.
func (c *Context) InputButton(button Button, state State) {
	if c.checkAlive() != nil {
		return
	}
	code := toolkitButton(button)
	if code == toolkit.ButtonMax {
		Logger().Debug("nkgpu: ignoring unknown button", "button", int(button))
		return
	}
	c.tk.InputButton(code, c.cursorX, c.cursorY, state.down())
}

// InputButtonAt reports a button event at (x, y) and records that position
// as the cursor.
func (c *Context) InputButtonAt(button Button, state State, x, y int) {
	if c.checkAlive() != nil {
		return
	}
	c.cursorX, c.cursorY = x, y
	c.InputButton(button, state)
}

// InputScroll forwards a scroll delta.
func (c *Context) InputScroll(dx, dy float32) {
	if c.checkAlive() != nil {
		return
	}
	c.tk.InputScroll(toolkit.Vec2{X: dx, Y: dy})
}

// Cursor returns the last recorded cursor position.
func (c *Context) Cursor() (x, y int) {
	return c.cursorX, c.cursorY
}
