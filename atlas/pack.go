// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import "fmt"

// Region is a rectangle of atlas pixels.
type Region struct {
	X, Y          int
	Width, Height int
}

// IsValid reports whether the region has a positive size.
func (r Region) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// Contains reports whether pixel (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func (r Region) String() string {
	return fmt.Sprintf("Region(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// shelf is one horizontal row of the packer.
type shelf struct {
	y      int
	height int
	nextX  int
}

// shelfPacker places rectangles left to right on horizontal shelves,
// opening a new shelf below the last one when the current ones are full.
// Every rectangle is followed by padding pixels on the right and bottom.
type shelfPacker struct {
	width, height int
	padding       int
	shelves       []shelf
	used          int
}

func newShelfPacker(width, height, padding int) *shelfPacker {
	if padding < 0 {
		padding = 0
	}
	return &shelfPacker{width: width, height: height, padding: padding}
}

// allocate returns space for a width x height rectangle, or an invalid
// region when it does not fit.
func (p *shelfPacker) allocate(width, height int) Region {
	if width <= 0 || height <= 0 {
		return Region{}
	}
	pw, ph := width+p.padding, height+p.padding
	if pw > p.width || ph > p.height {
		return Region{}
	}

	for i := range p.shelves {
		s := &p.shelves[i]
		if s.nextX+pw > p.width || ph > s.height {
			continue
		}
		r := Region{X: s.nextX, Y: s.y, Width: width, Height: height}
		s.nextX += pw
		p.used += width * height
		return r
	}

	y := 0
	if n := len(p.shelves); n > 0 {
		y = p.shelves[n-1].y + p.shelves[n-1].height
	}
	if y+ph > p.height {
		return Region{}
	}
	p.shelves = append(p.shelves, shelf{y: y, height: ph, nextX: pw})
	p.used += width * height
	return Region{X: 0, Y: y, Width: width, Height: height}
}

// usedHeight returns the bottom edge of the last shelf.
func (p *shelfPacker) usedHeight() int {
	if len(p.shelves) == 0 {
		return 0
	}
	last := p.shelves[len(p.shelves)-1]
	return last.y + last.height
}

// utilization returns the fraction of the area covered by rectangles.
func (p *shelfPacker) utilization() float64 {
	total := p.width * p.height
	if total == 0 {
		return 0
	}
	return float64(p.used) / float64(total)
}
