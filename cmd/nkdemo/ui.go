// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/gogpu/nkgpu/toolkit"
	"github.com/gogpu/nkgpu/toolkit/drawlist"
)

var (
	panelBg     = toolkit.RGBA(45, 45, 48, 240)
	panelBorder = toolkit.RGBA(90, 90, 96, 255)
	textColor   = toolkit.RGBA(230, 230, 230, 255)
	accent      = toolkit.RGBA(70, 130, 220, 255)
	accentHot   = toolkit.RGBA(100, 160, 255, 255)
	trackColor  = toolkit.RGBA(30, 30, 32, 255)
)

// buildUI records one frame of a small control panel. The shapes react to
// the input state the List accumulated for this frame.
func buildUI(l *drawlist.List, frame int, width, height float32) {
	panel := toolkit.Rect{X: 20, Y: 20, W: min(320, width-40), H: min(220, height-40)}
	l.FillRect(panel, panelBg)
	l.StrokeRect(panel, 1, panelBorder)

	l.PushClip(panel)
	defer l.PopClip()

	pad := float32(10)
	y := panel.Y + pad
	l.Text(panel.X+pad, y, fmt.Sprintf("nkgpu demo - frame %d", frame), textColor)
	y += max(l.LineHeight(), 16) + pad

	button := toolkit.Rect{X: panel.X + pad, Y: y, W: 120, H: 28}
	fill := accent
	if l.Hovering(button) || l.MouseDown(toolkit.ButtonLeft) {
		fill = accentHot
	}
	l.FillRect(button, fill)
	label := "Press"
	if l.MouseReleased(toolkit.ButtonLeft) {
		label = "Released"
	}
	l.Text(button.X+8, button.Y+6, label, textColor)
	y += button.H + pad

	// Slider driven by the cursor.
	track := toolkit.Rect{X: panel.X + pad, Y: y + 8, W: panel.W - 2*pad, H: 4}
	l.FillRect(track, trackColor)
	knob := min(max(l.Mouse().X, track.X), track.X+track.W)
	l.FillCircle(toolkit.Vec2{X: knob, Y: track.Y + track.H/2}, 8, accent)
	y += 24 + pad

	// Checkbox toggled by Enter.
	box := toolkit.Rect{X: panel.X + pad, Y: y, W: 16, H: 16}
	l.StrokeRect(box, 2, textColor)
	if l.KeyPressed(toolkit.KeyEnter) {
		l.FillRect(toolkit.Rect{X: box.X + 4, Y: box.Y + 4, W: 8, H: 8}, accent)
	}
	l.Text(box.X+box.W+8, box.Y, "typed: "+l.InputText(), textColor)
	y += box.H + pad

	// Sparkline.
	x0 := panel.X + pad
	l.Curve(
		toolkit.Vec2{X: x0, Y: y + 30},
		toolkit.Vec2{X: x0 + 60, Y: y - 10},
		toolkit.Vec2{X: x0 + 140, Y: y + 60},
		toolkit.Vec2{X: x0 + 200, Y: y + 10},
		2, accentHot)
	l.Line(toolkit.Vec2{X: x0, Y: y + 40}, toolkit.Vec2{X: x0 + 200, Y: y + 40}, 1, panelBorder)
	l.FillTriangle(
		toolkit.Vec2{X: x0 + 220, Y: y + 40},
		toolkit.Vec2{X: x0 + 240, Y: y},
		toolkit.Vec2{X: x0 + 260, Y: y + 40},
		accent)
}
