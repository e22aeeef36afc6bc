package interp

import (
	"slices"
	"testing"
)

// pair is a minimal bundle with one truncating and one float component.
type pair struct {
	n int
	f float64
}

func (p pair) Add(o pair) pair { return pair{p.n + o.n, p.f + o.f} }
func (p pair) Sub(o pair) pair { return pair{p.n - o.n, p.f - o.f} }
func (p pair) Mul(t int) pair  { return pair{p.n * t, p.f * float64(t)} }
func (p pair) Div(t int) pair  { return pair{p.n / t, p.f / float64(t)} }

func TestNewOrdersBounds(t *testing.T) {
	tests := []struct {
		name           string
		a, b           int
		begin, end, sp int
	}{
		{"ordered", 2, 9, 2, 9, 7},
		{"reversed", 9, 2, 2, 9, 7},
		{"negative", -3, -8, -8, -3, 5},
		{"empty", 4, 4, 4, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := New(tt.a, tt.b)
			if it.Begin() != tt.begin || it.End() != tt.end || it.Span() != tt.sp {
				t.Errorf("New(%d, %d) = [%d, %d] span %d", tt.a, tt.b, it.Begin(), it.End(), it.Span())
			}
			if it.Empty() != (tt.sp == 0) {
				t.Errorf("Empty() = %v", it.Empty())
			}
		})
	}
}

func TestSteps(t *testing.T) {
	got := slices.Collect(New(5, 2).Steps())
	if want := []int{2, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("Steps() = %v, want %v", got, want)
	}
	if got := slices.Collect(New(3, 3).Steps()); len(got) != 0 {
		t.Errorf("empty interval yielded %v", got)
	}

	lo, hi := New(7, 1).Range()
	if lo != 1 || hi != 7 {
		t.Errorf("Range() = [%d, %d)", lo, hi)
	}
}

func TestStepsWithin(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi int
		want   []int
	}{
		{"inside", -10, 10, []int{2, 3, 4}},
		{"clip low", 3, 10, []int{3, 4}},
		{"clip high", 0, 4, []int{2, 3}},
		{"disjoint", 8, 12, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := slices.Collect(New(2, 5).StepsWithin(tc.lo, tc.hi))
			if !slices.Equal(got, tc.want) {
				t.Errorf("StepsWithin(%d, %d) = %v, want %v", tc.lo, tc.hi, got, tc.want)
			}
		})
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	it := New(-4, 13)
	start := pair{n: 100, f: -2.5}
	delta := pair{n: -37, f: 11}

	if got := Interpolate(it, it.Begin(), delta, start); got != start {
		t.Errorf("at begin got %+v, want %+v", got, start)
	}
	if got, want := Interpolate(it, it.End(), delta, start), start.Add(delta); got != want {
		t.Errorf("at end got %+v, want %+v", got, want)
	}
}

func TestInterpolateTruncates(t *testing.T) {
	it := New(0, 3)
	delta := pair{n: 10, f: 10}

	got := Interpolate(it, 1, delta, pair{})
	// 10*1/3 truncates to 3 for the integer part only.
	if got.n != 3 {
		t.Errorf("integer component = %d, want 3", got.n)
	}
	if got.f < 3.33 || got.f > 3.34 {
		t.Errorf("float component = %v, want 3.333...", got.f)
	}

	// Negative results truncate toward zero.
	if got := Interpolate(it, 1, pair{n: -10}, pair{}); got.n != -3 {
		t.Errorf("negative integer component = %d, want -3", got.n)
	}
}

func TestScalar(t *testing.T) {
	tests := []struct {
		name                  string
		it                    Interpolator[int]
		phase, delta, atBegin int
		want                  int
	}{
		{"begin", New(0, 10), 0, 20, 5, 5},
		{"end", New(0, 10), 10, 20, 5, 25},
		{"middle", New(0, 10), 5, 20, 5, 15},
		{"truncating", New(0, 3), 2, 10, 0, 6},
		{"offset domain", New(10, 20), 15, -10, 0, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.it.Scalar(tt.phase, tt.delta, tt.atBegin); got != tt.want {
				t.Errorf("Scalar(%d, %d, %d) = %d, want %d", tt.phase, tt.delta, tt.atBegin, got, tt.want)
			}
		})
	}

	f := New(0.0, 2.0)
	if got := f.Scalar(0.5, 4, 1); got != 2 {
		t.Errorf("float Scalar = %v, want 2", got)
	}
}
