package render

import (
	"image"
	"iter"
)

// Line steps through the pixels of a segment with an integer error
// accumulator. Steep segments are walked with x and y swapped so the major
// axis is always the loop axis, and the walk always runs toward increasing
// major coordinate. The last pixel of the walk is excluded, so a line
// yields exactly |major delta| points.
//
// A Line is consumed by iterating it and cannot be restarted.
type Line struct {
	swapped bool
	end     int
	dx      int
	dyErr   int
	yErr    int
	yStep   int
	x, y    int
}

// NewLine prepares a walk from begin to end.
func NewLine(begin, end image.Point) *Line {
	l := &Line{}
	if abs(end.Y-begin.Y) > abs(end.X-begin.X) {
		l.swapped = true
		begin = image.Pt(begin.Y, begin.X)
		end = image.Pt(end.Y, end.X)
	}
	if end.X < begin.X {
		begin, end = end, begin
	}

	l.end = end.X
	l.dx = end.X - begin.X
	l.dyErr = 2 * abs(end.Y-begin.Y)
	l.yStep = 1
	if end.Y <= begin.Y {
		l.yStep = -1
	}
	l.x, l.y = begin.X, begin.Y
	return l
}

// Remaining returns how many points are left.
func (l *Line) Remaining() int {
	return max(l.end-l.x, 0)
}

// Next returns the next pixel, or false once the walk is done.
func (l *Line) Next() (image.Point, bool) {
	if l.x >= l.end {
		return image.Point{}, false
	}

	p := image.Pt(l.x, l.y)
	if l.swapped {
		p = image.Pt(l.y, l.x)
	}

	l.yErr += l.dyErr
	if l.yErr > l.dx {
		l.y += l.yStep
		l.yErr -= 2 * l.dx
	}
	l.x++
	return p, true
}

// All drains the remaining points.
func (l *Line) All() iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		for {
			p, ok := l.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
