// Package planebuf provides a generic two dimensional grid with a
// bottom-left origin. It backs the color canvas, the depth buffers and the
// decoded normal maps.
//
// Two access paths exist. At/Set are unchecked: callers must have tested
// Contains first, and an out-of-range coordinate either panics on the
// slice bound or silently aliases a neighbouring row. Get/Put check
// bounds and report whether the coordinate was inside the buffer.
package planebuf

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch is returned when raw data does not match the requested
// dimensions.
var ErrSizeMismatch = errors.New("planebuf: data length does not match width*height")

// Buffer is a width x height grid of T stored row-major with row y at
// offset (height-y-1)*width.
type Buffer[T any] struct {
	width  int
	height int
	data   []T
}

// New creates a buffer with every cell set to the zero value of T.
func New[T any](width, height int) *Buffer[T] {
	width, height = max(width, 0), max(height, 0)
	return &Buffer[T]{
		width:  width,
		height: height,
		data:   make([]T, width*height),
	}
}

// NewFilled creates a buffer whose cell at storage index i is fill(i).
func NewFilled[T any](width, height int, fill func(i int) T) *Buffer[T] {
	b := New[T](width, height)
	for i := range b.data {
		b.data[i] = fill(i)
	}
	return b
}

// FromSlice wraps data, which is taken over without copying. Storage order
// is top row first, the same order image rows arrive in.
func FromSlice[T any](width, height int, data []T) (*Buffer[T], error) {
	if width < 0 || height < 0 || len(data) != width*height {
		return nil, fmt.Errorf("%w: %dx%d with %d cells", ErrSizeMismatch, width, height, len(data))
	}
	return &Buffer[T]{width: width, height: height, data: data}, nil
}

// Width returns the number of columns.
func (b *Buffer[T]) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer[T]) Height() int { return b.height }

// Len returns width*height.
func (b *Buffer[T]) Len() int { return len(b.data) }

// Data exposes the backing slice in storage order (top row first).
func (b *Buffer[T]) Data() []T { return b.data }

// Contains reports whether (x, y) addresses a cell.
func (b *Buffer[T]) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

func (b *Buffer[T]) offset(x, y int) int {
	return (b.height-y-1)*b.width + x
}

// At returns the cell at (x, y) without checking that x is in range.
func (b *Buffer[T]) At(x, y int) T {
	return b.data[b.offset(x, y)]
}

// Set stores v at (x, y) without checking that x is in range.
func (b *Buffer[T]) Set(x, y int, v T) {
	b.data[b.offset(x, y)] = v
}

// Ptr returns a pointer to the cell at (x, y) for read-modify-write access.
// Unchecked, like At.
func (b *Buffer[T]) Ptr(x, y int) *T {
	return &b.data[b.offset(x, y)]
}

// Get is the checked form of At.
func (b *Buffer[T]) Get(x, y int) (T, bool) {
	if !b.Contains(x, y) {
		var zero T
		return zero, false
	}
	return b.data[b.offset(x, y)], true
}

// Put is the checked form of Set. It reports whether v was stored.
func (b *Buffer[T]) Put(x, y int, v T) bool {
	if !b.Contains(x, y) {
		return false
	}
	b.data[b.offset(x, y)] = v
	return true
}

// Clean resets every cell to the zero value.
func (b *Buffer[T]) Clean() {
	clear(b.data)
}

// CleanWith sets every cell to v.
func (b *Buffer[T]) CleanWith(v T) {
	if len(b.data) == 0 {
		return
	}
	b.data[0] = v
	// Doubling copy fills large buffers much faster than a plain loop.
	for filled := 1; filled < len(b.data); filled *= 2 {
		copy(b.data[filled:], b.data[:filled])
	}
}

// Resize changes the dimensions, padding new cells with the zero value.
func (b *Buffer[T]) Resize(width, height int) {
	var zero T
	b.ResizeWith(width, height, zero)
}

// ResizeWith changes the dimensions, padding new cells with pad.
//
// Storage rows keep their index. When the width changes each surviving row
// is moved to its new offset with its first min(old, new) cells intact.
// Rows are walked last-to-first when rows get wider, so a destination never
// overlaps a source row that has not been moved yet, and first-to-last when
// they get narrower.
func (b *Buffer[T]) ResizeWith(width, height int, pad T) {
	width, height = max(width, 0), max(height, 0)
	oldW, oldH := b.width, b.height
	if width == oldW && height == oldH {
		return
	}

	newLen := width * height
	if newLen > len(b.data) {
		grown := make([]T, newLen)
		copy(grown, b.data)
		for i := len(b.data); i < newLen; i++ {
			grown[i] = pad
		}
		b.data = grown
	}

	if width != oldW {
		rows := min(oldH, height)
		keep := min(oldW, width)
		move := func(row int) {
			src := row * oldW
			dst := row * width
			copy(b.data[dst:dst+keep], b.data[src:src+keep])
			for i := dst + keep; i < dst+width; i++ {
				b.data[i] = pad
			}
		}
		if width > oldW {
			for row := rows - 1; row >= 0; row-- {
				move(row)
			}
		} else {
			for row := range rows {
				move(row)
			}
		}
		// Rows that only exist in the new layout.
		for i := rows * width; i < newLen; i++ {
			b.data[i] = pad
		}
	}

	b.data = b.data[:newLen]
	b.width, b.height = width, height
}

// Clone returns a deep copy.
func (b *Buffer[T]) Clone() *Buffer[T] {
	data := make([]T, len(b.data))
	copy(data, b.data)
	return &Buffer[T]{width: b.width, height: b.height, data: data}
}
