// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawlist

import (
	"math"

	"github.com/gogpu/nkgpu/toolkit"
)

// DefaultSegments is used for circles and curves when the convert
// configuration carries no segment count.
const DefaultSegments = 22

// vertex is a tessellated vertex before it is written through the layout.
type vertex struct {
	pos toolkit.Vec2
	uv  toolkit.Vec2
	col toolkit.Color
}

// glyphQuad is one positioned glyph of a text shape.
type glyphQuad struct {
	rect     toolkit.Rect
	uv0, uv1 toolkit.Vec2
}

// FillRect records a filled rectangle.
func (l *List) FillRect(r toolkit.Rect, c toolkit.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	l.add(shape{kind: shapeFillRect, rect: r, color: c})
}

// StrokeRect records a rectangle outline of the given thickness drawn
// inside r.
func (l *List) StrokeRect(r toolkit.Rect, thickness float32, c toolkit.Color) {
	if r.W <= 0 || r.H <= 0 || thickness <= 0 {
		return
	}
	l.add(shape{kind: shapeStrokeRect, rect: r, thickness: thickness, color: c})
}

// Line records a line segment from a to b.
func (l *List) Line(a, b toolkit.Vec2, thickness float32, c toolkit.Color) {
	if thickness <= 0 || (a == b) {
		return
	}
	l.add(shape{kind: shapeLine, a: a, b: b, thickness: thickness, color: c})
}

// Curve records a cubic Bezier curve from p0 to p3 with control points
// c0 and c1.
func (l *List) Curve(p0, c0, c1, p3 toolkit.Vec2, thickness float32, c toolkit.Color) {
	if thickness <= 0 {
		return
	}
	l.add(shape{kind: shapeCurve, a: p0, b: c0, c: c1, d: p3, thickness: thickness, color: c})
}

// FillCircle records a filled circle.
func (l *List) FillCircle(center toolkit.Vec2, radius float32, c toolkit.Color) {
	if radius <= 0 {
		return
	}
	l.add(shape{kind: shapeFillCircle, a: center, radius: radius, color: c})
}

// FillTriangle records a filled triangle.
func (l *List) FillTriangle(a, b, p toolkit.Vec2, c toolkit.Color) {
	l.add(shape{kind: shapeFillTriangle, a: a, b: b, c: p, color: c})
}

// Image records r textured with the uv0..uv1 region of tex, tinted by c.
func (l *List) Image(r toolkit.Rect, tex toolkit.Handle, uv0, uv1 toolkit.Vec2, c toolkit.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	l.add(shape{kind: shapeImage, rect: r, tex: tex, textured: true, uv0: uv0, uv1: uv1, color: c})
}

// tessellate appends the triangles of s to l.verts and l.indices. Indices
// are relative to the first vertex of the shape.
func (l *List) tessellate(s *shape, null toolkit.Vec2, circleSegs, curveSegs int) {
	l.verts = l.verts[:0]
	l.indices = l.indices[:0]

	switch s.kind {
	case shapeFillRect:
		l.quad(s.rect, null, null, s.color)

	case shapeStrokeRect:
		r, t := s.rect, s.thickness
		if 2*t >= r.W || 2*t >= r.H {
			l.quad(r, null, null, s.color)
			return
		}
		outer := corners(r)
		inner := corners(toolkit.Rect{X: r.X + t, Y: r.Y + t, W: r.W - 2*t, H: r.H - 2*t})
		for _, p := range outer {
			l.verts = append(l.verts, vertex{pos: p, uv: null, col: s.color})
		}
		for _, p := range inner {
			l.verts = append(l.verts, vertex{pos: p, uv: null, col: s.color})
		}
		for k := range uint16(4) {
			n := (k + 1) % 4
			l.indices = append(l.indices, k, n, 4+n, k, 4+n, 4+k)
		}

	case shapeLine:
		l.segment(s.a, s.b, s.thickness, null, s.color)

	case shapeCurve:
		prev := s.a
		for i := 1; i <= curveSegs; i++ {
			p := bezier(s.a, s.b, s.c, s.d, float32(i)/float32(curveSegs))
			l.segment(prev, p, s.thickness, null, s.color)
			prev = p
		}

	case shapeFillCircle:
		l.verts = append(l.verts, vertex{pos: s.a, uv: null, col: s.color})
		for i := range circleSegs {
			a := 2 * math.Pi * float64(i) / float64(circleSegs)
			p := toolkit.Vec2{
				X: s.a.X + s.radius*float32(math.Cos(a)),
				Y: s.a.Y + s.radius*float32(math.Sin(a)),
			}
			l.verts = append(l.verts, vertex{pos: p, uv: null, col: s.color})
		}
		n := uint16(circleSegs)
		for i := range n {
			l.indices = append(l.indices, 0, 1+i, 1+(i+1)%n)
		}

	case shapeFillTriangle:
		for _, p := range [3]toolkit.Vec2{s.a, s.b, s.c} {
			l.verts = append(l.verts, vertex{pos: p, uv: null, col: s.color})
		}
		if cross(s.a, s.b, s.c) < 0 {
			l.indices = append(l.indices, 0, 2, 1)
		} else {
			l.indices = append(l.indices, 0, 1, 2)
		}

	case shapeImage:
		l.quad(s.rect, s.uv0, s.uv1, s.color)

	case shapeText:
		for _, g := range l.glyphs[s.glyphStart:s.glyphEnd] {
			l.quad(g.rect, g.uv0, g.uv1, s.color)
		}
	}
}

// quad appends an axis-aligned rectangle with uv0 at its top-left and uv1
// at its bottom-right corner.
func (l *List) quad(r toolkit.Rect, uv0, uv1 toolkit.Vec2, c toolkit.Color) {
	base := uint16(len(l.verts))
	p := corners(r)
	l.verts = append(l.verts,
		vertex{pos: p[0], uv: uv0, col: c},
		vertex{pos: p[1], uv: toolkit.Vec2{X: uv1.X, Y: uv0.Y}, col: c},
		vertex{pos: p[2], uv: uv1, col: c},
		vertex{pos: p[3], uv: toolkit.Vec2{X: uv0.X, Y: uv1.Y}, col: c},
	)
	l.indices = append(l.indices, base, base+1, base+2, base, base+2, base+3)
}

// segment appends a quad of the given thickness centered on a..b, wound
// clockwise on screen.
func (l *List) segment(a, b toolkit.Vec2, thickness float32, uv toolkit.Vec2, c toolkit.Color) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	nx, ny := dy/length*thickness/2, -dx/length*thickness/2
	base := uint16(len(l.verts))
	l.verts = append(l.verts,
		vertex{pos: toolkit.Vec2{X: a.X + nx, Y: a.Y + ny}, uv: uv, col: c},
		vertex{pos: toolkit.Vec2{X: b.X + nx, Y: b.Y + ny}, uv: uv, col: c},
		vertex{pos: toolkit.Vec2{X: b.X - nx, Y: b.Y - ny}, uv: uv, col: c},
		vertex{pos: toolkit.Vec2{X: a.X - nx, Y: a.Y - ny}, uv: uv, col: c},
	)
	l.indices = append(l.indices, base, base+1, base+2, base, base+2, base+3)
}

// cross is twice the signed area of abc. Positive means clockwise on a
// y-down screen, the pipeline's front face.
func cross(a, b, c toolkit.Vec2) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// corners returns top-left, top-right, bottom-right, bottom-left.
func corners(r toolkit.Rect) [4]toolkit.Vec2 {
	return [4]toolkit.Vec2{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}

func bezier(p0, c0, c1, p3 toolkit.Vec2, t float32) toolkit.Vec2 {
	u := 1 - t
	w0, w1, w2, w3 := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return toolkit.Vec2{
		X: w0*p0.X + w1*c0.X + w2*c1.X + w3*p3.X,
		Y: w0*p0.Y + w1*c0.Y + w2*c1.Y + w3*p3.Y,
	}
}

// bounds returns the axis-aligned box covering s, used to cull shapes
// outside their clip rectangle.
func (l *List) bounds(s *shape) toolkit.Rect {
	switch s.kind {
	case shapeFillRect, shapeStrokeRect, shapeImage:
		return s.rect
	case shapeFillCircle:
		return toolkit.Rect{X: s.a.X - s.radius, Y: s.a.Y - s.radius, W: 2 * s.radius, H: 2 * s.radius}
	case shapeText:
		if s.glyphStart == s.glyphEnd {
			return toolkit.Rect{}
		}
		r := l.glyphs[s.glyphStart].rect
		for _, g := range l.glyphs[s.glyphStart+1 : s.glyphEnd] {
			r = union(r, g.rect)
		}
		return r
	default:
		pts := [4]toolkit.Vec2{s.a, s.b, s.a, s.b}
		if s.kind != shapeLine {
			pts[2], pts[3] = s.c, s.d
		}
		if s.kind == shapeFillTriangle {
			pts[3] = s.c
		}
		x0, y0 := pts[0].X, pts[0].Y
		x1, y1 := x0, y0
		for _, p := range pts[1:] {
			x0, y0 = min(x0, p.X), min(y0, p.Y)
			x1, y1 = max(x1, p.X), max(y1, p.Y)
		}
		pad := s.thickness / 2
		return toolkit.Rect{X: x0 - pad, Y: y0 - pad, W: x1 - x0 + 2*pad, H: y1 - y0 + 2*pad}
	}
}

func union(a, b toolkit.Rect) toolkit.Rect {
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1, y1 := max(a.X+a.W, b.X+b.W), max(a.Y+a.H, b.Y+b.H)
	return toolkit.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
