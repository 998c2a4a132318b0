// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package toolkit

// BufferType distinguishes fixed and growable buffers.
type BufferType uint8

const (
	// BufferFixed never grows. Allocations beyond capacity fail.
	BufferFixed BufferType = iota
	// BufferDynamic grows on demand.
	BufferDynamic
)

// defaultBufferSize is the initial capacity of a dynamic buffer created
// with a non-positive size.
const defaultBufferSize = 4 * 1024

// Buffer is a linear byte arena the toolkit writes geometry and commands
// into.
//
// Slices returned by Alloc stay valid until the next Alloc on a dynamic
// buffer (growth reallocates) or until Reset.
type Buffer struct {
	mem       []byte
	typ       BufferType
	allocated int
	needed    int
	calls     int
	full      bool
}

// NewFixedBuffer wraps mem as a fixed-capacity buffer. The buffer writes
// into mem directly and never reallocates it.
func NewFixedBuffer(mem []byte) *Buffer {
	return &Buffer{mem: mem, typ: BufferFixed}
}

// NewBuffer creates a dynamic buffer with the given initial capacity.
func NewBuffer(initial int) *Buffer {
	if initial <= 0 {
		initial = defaultBufferSize
	}
	return &Buffer{mem: make([]byte, initial), typ: BufferDynamic}
}

// Type returns whether the buffer is fixed or dynamic.
func (b *Buffer) Type() BufferType { return b.typ }

// Alloc reserves size bytes aligned to align and returns them.
//
// For a fixed buffer that cannot satisfy the request Alloc returns nil and
// marks the buffer full. Nothing is written in that case, so callers can
// stop early without corrupting previously written data.
func (b *Buffer) Alloc(size, align int) []byte {
	if size < 0 {
		return nil
	}
	if align <= 0 {
		align = 1
	}
	b.calls++
	start := alignUp(b.allocated, align)
	end := start + size
	if end > b.needed {
		b.needed = end
	}
	if end > len(b.mem) {
		if b.typ == BufferFixed {
			b.full = true
			return nil
		}
		b.grow(end)
	}
	b.allocated = end
	return b.mem[start:end:end]
}

func (b *Buffer) grow(required int) {
	capacity := max(2*len(b.mem), required, defaultBufferSize)
	mem := make([]byte, capacity)
	copy(mem, b.mem[:b.allocated])
	b.mem = mem
}

// Mark returns the current write position for a later Rewind.
func (b *Buffer) Mark() int { return b.allocated }

// Rewind drops everything allocated after mark.
func (b *Buffer) Rewind(mark int) {
	if mark >= 0 && mark < b.allocated {
		b.allocated = mark
	}
}

// Allocated returns the number of bytes in use.
func (b *Buffer) Allocated() int { return b.allocated }

// Needed returns the largest end offset ever requested since the last
// Reset, including requests that failed. For a full fixed buffer this is
// the capacity the frame would have needed.
func (b *Buffer) Needed() int { return b.needed }

// Capacity returns the current size of the backing memory.
func (b *Buffer) Capacity() int { return len(b.mem) }

// Full reports whether an allocation failed on a fixed buffer since the
// last Reset.
func (b *Buffer) Full() bool { return b.full }

// Calls returns the number of Alloc calls since the last Reset.
func (b *Buffer) Calls() int { return b.calls }

// Bytes returns the allocated prefix of the buffer.
func (b *Buffer) Bytes() []byte { return b.mem[:b.allocated] }

// Memory returns the whole backing memory, including the unused tail.
func (b *Buffer) Memory() []byte { return b.mem }

// Reset empties the buffer and clears the full flag. The backing memory is
// kept.
func (b *Buffer) Reset() {
	b.allocated = 0
	b.needed = 0
	b.calls = 0
	b.full = false
}

// Free releases the backing memory of a dynamic buffer. A fixed buffer only
// forgets the caller's memory; the caller still owns it.
func (b *Buffer) Free() {
	b.mem = nil
	b.Reset()
}

func alignUp(v, align int) int {
	return (v + align - 1) / align * align
}
