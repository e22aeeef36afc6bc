package render

import (
	"cmp"
	"slices"

	"github.com/taigrr/scanline/pkg/interp"
)

// Polygon is a closed outline of any vertex count, filled with the
// even-odd span rule.
type Polygon []ScreenVertex

// Vertices implements Shape.
func (p Polygon) Vertices() []ScreenVertex {
	return p
}

// edge is one perimeter segment ordered by x.
type edge struct {
	xs          interp.Interpolator[int]
	from, delta Varying
	to          Varying
}

func (e edge) at(x int) Varying {
	v := interp.Interpolate(e.xs, x, e.delta, e.from)
	v.Color = e.from.Color.Interpolate(e.to.Color, x-e.xs.Begin(), e.xs.Span())
	return v
}

// fillPolygon builds an interpolator per perimeter edge, then for every
// window between two x-adjacent vertices intersects the edges spanning the
// window with each column and fills between sorted pairs of crossings.
func fillPolygon(vs []ScreenVertex, b Bounds, fn FragmentFunc) {
	if len(vs) < 3 {
		return
	}

	edges := make([]edge, 0, len(vs))
	for i := range vs {
		a, c := vs[i], vs[(i+1)%len(vs)]
		if c.column() < a.column() {
			a, c = c, a
		}
		xs := interp.New(a.column(), c.column())
		if xs.Empty() {
			// Vertical in screen space: it never bounds a column of its own.
			continue
		}
		from, to := a.varying(), c.varying()
		edges = append(edges, edge{xs: xs, from: from, to: to, delta: to.Sub(from)})
	}

	cols := make([]int, len(vs))
	for i, v := range vs {
		cols[i] = v.column()
	}
	slices.Sort(cols)

	x0, x1, _, _ := extent(b)
	var active []edge
	var crossings []Varying
	for i := 0; i+1 < len(cols); i++ {
		lo, hi := cols[i], cols[i+1]
		if lo == hi || hi <= x0 || lo >= x1 {
			continue
		}

		active = active[:0]
		for _, e := range edges {
			if e.xs.Begin() <= lo && hi <= e.xs.End() {
				active = append(active, e)
			}
		}

		for x := max(lo, x0); x < min(hi, x1); x++ {
			crossings = crossings[:0]
			for _, e := range active {
				crossings = append(crossings, e.at(x))
			}
			slices.SortFunc(crossings, func(a, b Varying) int {
				return cmp.Compare(a.Y, b.Y)
			})
			for j := 0; j+1 < len(crossings); j += 2 {
				fillColumn(x, crossings[j], crossings[j+1], b, fn)
			}
		}
	}
}
