package drawlist

import (
	"strings"
	"testing"

	"github.com/gogpu/nkgpu/toolkit"
)

func TestInput_KeyTransitions(t *testing.T) {
	l := New()
	l.InputBegin()
	l.InputKey(toolkit.KeyEnter, true)
	l.InputKey(toolkit.KeyEnter, true) // repeat, ignored
	l.InputEnd()

	if !l.KeyDown(toolkit.KeyEnter) || !l.KeyPressed(toolkit.KeyEnter) {
		t.Error("Enter should be down and pressed")
	}
	if l.KeyReleased(toolkit.KeyEnter) {
		t.Error("Enter should not be released")
	}

	// Held across frames: down but no longer pressed.
	l.InputBegin()
	l.InputEnd()
	if !l.KeyDown(toolkit.KeyEnter) || l.KeyPressed(toolkit.KeyEnter) {
		t.Error("held Enter should be down without a new press")
	}

	l.InputBegin()
	l.InputKey(toolkit.KeyEnter, false)
	l.InputEnd()
	if l.KeyDown(toolkit.KeyEnter) || !l.KeyReleased(toolkit.KeyEnter) {
		t.Error("Enter should be released")
	}
}

func TestInput_PressAndReleaseInOneFrame(t *testing.T) {
	l := New()
	l.InputBegin()
	l.InputKey(toolkit.KeyPaste, true)
	l.InputKey(toolkit.KeyPaste, false)
	l.InputEnd()

	if l.KeyDown(toolkit.KeyPaste) {
		t.Error("Paste should not be held")
	}
	if !l.KeyPressed(toolkit.KeyPaste) || !l.KeyReleased(toolkit.KeyPaste) {
		t.Error("Paste should be both pressed and released this frame")
	}
}

func TestInput_InvalidCodes(t *testing.T) {
	l := New()
	l.InputBegin()
	l.InputKey(toolkit.KeyNone, true)
	l.InputKey(toolkit.KeyMax, true)
	l.InputKey(toolkit.Key(-1), true)
	l.InputButton(toolkit.ButtonMax, 1, 1, true)
	l.InputButton(toolkit.Button(-2), 1, 1, true)
	l.InputEnd()

	if l.KeyDown(toolkit.KeyNone) || l.KeyDown(toolkit.KeyMax) {
		t.Error("invalid keys should never be down")
	}
	if l.MouseDown(toolkit.ButtonMax) || l.MousePressed(toolkit.Button(-2)) {
		t.Error("invalid buttons should never be down")
	}
	if got := l.ButtonPos(toolkit.ButtonMax); got != (toolkit.Vec2{}) {
		t.Errorf("ButtonPos(ButtonMax) = %v", got)
	}
}

func TestInput_Mouse(t *testing.T) {
	l := New()
	l.InputBegin()
	l.InputMotion(10, 20)
	l.InputEnd()

	l.InputBegin()
	l.InputMotion(15, 18)
	l.InputButton(toolkit.ButtonLeft, 15, 18, true)
	l.InputEnd()

	if got := l.Mouse(); got != (toolkit.Vec2{X: 15, Y: 18}) {
		t.Errorf("Mouse() = %v", got)
	}
	if got := l.MouseDelta(); got != (toolkit.Vec2{X: 5, Y: -2}) {
		t.Errorf("MouseDelta() = %v", got)
	}
	if !l.MouseDown(toolkit.ButtonLeft) || !l.MousePressed(toolkit.ButtonLeft) {
		t.Error("left button should be down and pressed")
	}
	if got := l.ButtonPos(toolkit.ButtonLeft); got != (toolkit.Vec2{X: 15, Y: 18}) {
		t.Errorf("ButtonPos() = %v", got)
	}

	inside := toolkit.Rect{X: 10, Y: 10, W: 10, H: 10}
	outside := toolkit.Rect{X: 100, Y: 100, W: 10, H: 10}
	if !l.Hovering(inside) || l.Hovering(outside) {
		t.Error("Hovering mismatch")
	}
	if !l.Clicked(toolkit.ButtonLeft, inside) || l.Clicked(toolkit.ButtonLeft, outside) {
		t.Error("Clicked mismatch")
	}
	if l.Clicked(toolkit.ButtonRight, inside) {
		t.Error("right button was never pressed")
	}
}

func TestInput_ScrollAndText(t *testing.T) {
	l := New()
	l.InputBegin()
	if !l.InputOpen() {
		t.Error("InputOpen() should be true inside the brackets")
	}
	l.InputScroll(toolkit.Vec2{Y: 1})
	l.InputScroll(toolkit.Vec2{X: 0.5, Y: 2})
	l.InputChar('h')
	l.InputChar('é')
	l.InputChar('日')
	l.InputEnd()

	if l.InputOpen() {
		t.Error("InputOpen() should be false after InputEnd")
	}
	if got := l.Scroll(); got != (toolkit.Vec2{X: 0.5, Y: 3}) {
		t.Errorf("Scroll() = %v", got)
	}
	if got := l.InputText(); got != "hé日" {
		t.Errorf("Text() = %q", got)
	}

	l.InputBegin()
	l.InputEnd()
	if l.Scroll() != (toolkit.Vec2{}) || l.InputText() != "" {
		t.Error("InputBegin should reset scroll and text")
	}
}

func TestInput_TextLimit(t *testing.T) {
	l := New()
	l.InputBegin()
	for range MaxTextRunes + 10 {
		l.InputChar('x')
	}
	l.InputEnd()
	if got := l.InputText(); got != strings.Repeat("x", MaxTextRunes) {
		t.Errorf("len(Text()) = %d, want %d", len(got), MaxTextRunes)
	}
}

func TestInput_ClearKeepsInput(t *testing.T) {
	l := New()
	l.InputBegin()
	l.InputKey(toolkit.KeyShift, true)
	l.InputEnd()
	l.FillRect(toolkit.Rect{W: 1, H: 1}, toolkit.Color{A: 255})
	l.Clear()

	if l.Shapes() != 0 {
		t.Error("Clear should drop shapes")
	}
	if !l.KeyDown(toolkit.KeyShift) {
		t.Error("Clear should keep input state")
	}
}
