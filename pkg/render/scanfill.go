package render

import (
	"cmp"
	"math"
	"slices"

	"github.com/taigrr/scanline/pkg/interp"
)

// FragmentFunc receives every covered pixel with its interpolated
// attributes. Depth testing and shading happen inside it.
type FragmentFunc func(x, y int, v Varying)

// Bounds limits which pixels reach a FragmentFunc. *Canvas and
// planebuf buffers satisfy it.
type Bounds interface {
	Contains(x, y int) bool
}

// sized bounds start at the origin and report their extent, which lets
// the fill skip whole columns and rows that cannot pass Contains.
type sized interface {
	Width() int
	Height() int
}

// extent returns the half-open pixel window of b. Bounds without a size
// get an unbounded window.
func extent(b Bounds) (x0, x1, y0, y1 int) {
	if s, ok := b.(sized); ok {
		return 0, s.Width(), 0, s.Height()
	}
	return math.MinInt, math.MaxInt, math.MinInt, math.MaxInt
}

// Shape is anything the scan-fill engine can rasterize.
type Shape interface {
	Vertices() []ScreenVertex
}

// Filler is implemented by shapes with a specialised fill.
type Filler interface {
	Fill(b Bounds, fn FragmentFunc)
}

// Fill rasterizes s, calling fn for every covered pixel inside b. Shapes
// implementing Filler use their own routine; everything else goes through
// the general polygon fill.
func Fill(s Shape, b Bounds, fn FragmentFunc) {
	if f, ok := s.(Filler); ok {
		f.Fill(b, fn)
		return
	}
	fillPolygon(s.Vertices(), b, fn)
}

// NewShape returns a Triangle for three vertices and a Polygon otherwise.
func NewShape(vs []ScreenVertex) Shape {
	if len(vs) == 3 {
		return Triangle{vs[0], vs[1], vs[2]}
	}
	return Polygon(vs)
}

// Triangle is the common case with a dedicated left/middle/right fill.
type Triangle [3]ScreenVertex

// Vertices implements Shape.
func (t Triangle) Vertices() []ScreenVertex {
	return t[:]
}

// Fill walks the columns between the leftmost and rightmost vertex. Each
// column is bounded by the long edge (left to right) and one of the two
// short edges (left to middle, then middle to right), and the span between
// them is filled bottom to top, excluding the upper end.
func (t Triangle) Fill(b Bounds, fn FragmentFunc) {
	slices.SortFunc(t[:], func(p, q ScreenVertex) int {
		return cmp.Compare(p.column(), q.column())
	})
	l, m, r := t[0].varying(), t[1].varying(), t[2].varying()
	lx, mx, rx := t[0].column(), t[1].column(), t[2].column()

	long := interp.New(lx, rx)
	longDelta := r.Sub(l)
	x0, x1, _, _ := extent(b)

	half := func(short interp.Interpolator[int], from, to Varying) {
		delta := to.Sub(from)
		for x := range short.StepsWithin(x0, x1) {
			v1 := interp.Interpolate(short, x, delta, from)
			v1.Color = from.Color.Interpolate(to.Color, x-short.Begin(), short.Span())
			v2 := interp.Interpolate(long, x, longDelta, l)
			v2.Color = l.Color.Interpolate(r.Color, x-long.Begin(), long.Span())
			fillColumn(x, v1, v2, b, fn)
		}
	}

	half(interp.New(lx, mx), l, m)
	half(interp.New(mx, rx), m, r)
}

// fillColumn fills x between the two edge samples, [lower.Y, upper.Y).
func fillColumn(x int, v1, v2 Varying, b Bounds, fn FragmentFunc) {
	if v1.Y > v2.Y {
		v1, v2 = v2, v1
	}
	span := interp.New(v1.Y, v2.Y)
	delta := v2.Sub(v1)
	_, _, y0, y1 := extent(b)
	for y := range span.StepsWithin(y0, y1) {
		if !b.Contains(x, y) {
			continue
		}
		v := interp.Interpolate(span, y, delta, v1)
		v.Color = v1.Color.Interpolate(v2.Color, y-span.Begin(), span.Span())
		fn(x, y, v)
	}
}
