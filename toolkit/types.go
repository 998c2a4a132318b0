// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package toolkit

import "fmt"

// Handle identifies a texture on the toolkit side. nkgpu binds a single
// font atlas texture, so handles are opaque ids.
type Handle uint64

// Vec2 is a 2D vector in toolkit units.
type Vec2 struct {
	X, Y float32
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y, W, H float32
}

// Intersect returns the overlap of r and o. The result has zero size when
// the rectangles do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Color is a non-premultiplied 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGBA returns an opaque or translucent color from its components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Pack returns the color packed as R8G8B8A8 with red in the low byte.
func (c Color) Pack() uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// Key is a toolkit key code.
type Key int

// Key codes understood by the toolkit.
const (
	KeyNone Key = iota
	KeyShift
	KeyCtrl
	KeyDel
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
	KeyMax
)

var keyNames = [...]string{
	KeyNone:      "None",
	KeyShift:     "Shift",
	KeyCtrl:      "Ctrl",
	KeyDel:       "Del",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyCopy:      "Copy",
	KeyCut:       "Cut",
	KeyPaste:     "Paste",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
}

// String returns the key name.
func (k Key) String() string {
	if k >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Button is a toolkit mouse button code.
type Button int

// Button codes understood by the toolkit.
const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonDouble
	ButtonMax
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonMiddle:
		return "Middle"
	case ButtonRight:
		return "Right"
	case ButtonDouble:
		return "Double"
	default:
		return fmt.Sprintf("Button(%d)", int(b))
	}
}

// DrawCommand is one batch of indexed triangles produced by Convert.
//
// ElemCount indices starting right after the previous command's indices
// are drawn with ClipRect as scissor. ClipRect is expressed in fractions of
// the display size (0..1 on both axes). Index is the ordinal of the command
// within the current frame.
type DrawCommand struct {
	ElemCount uint32
	ClipRect  Rect
	Texture   Handle
	Index     int
}

// AtlasFormat selects the pixel format of a baked font atlas.
type AtlasFormat int

// Font atlas formats.
const (
	AtlasAlpha8 AtlasFormat = iota
	AtlasRGBA32
)

// BytesPerPixel returns the number of bytes per atlas pixel.
func (f AtlasFormat) BytesPerPixel() int {
	if f == AtlasRGBA32 {
		return 4
	}
	return 1
}

// NullTexture names a texture region that samples as opaque white.
// Solid geometry uses its UV so that one pipeline draws both textured and
// untextured triangles.
type NullTexture struct {
	Texture Handle
	UV      Vec2
}
