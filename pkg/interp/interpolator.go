// Package interp implements affine interpolation over a scalar domain. The
// same Interpolator drives both the x-spans of triangle edges and the
// y-spans of scanlines, for plain scalars and for whole attribute bundles.
package interp

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// Number is the scalar domain an Interpolator walks.
type Number interface {
	constraints.Integer | constraints.Float
}

// Interpolable is implemented by attribute bundles that can be blended
// along a domain of type T. Mul and Div take the domain type so that
// integer components keep truncating integer division.
type Interpolable[U any, T Number] interface {
	Add(U) U
	Sub(U) U
	Mul(T) U
	Div(T) U
}

// Interpolator is an ordered interval [begin, end] with its span cached.
type Interpolator[T Number] struct {
	begin T
	end   T
	span  T
}

// New returns an interpolator over the interval between a and b, swapping
// them if b < a.
func New[T Number](a, b T) Interpolator[T] {
	if b < a {
		a, b = b, a
	}
	return Interpolator[T]{begin: a, end: b, span: b - a}
}

// Begin returns the lower bound.
func (it Interpolator[T]) Begin() T { return it.begin }

// End returns the upper bound.
func (it Interpolator[T]) End() T { return it.end }

// Span returns End - Begin.
func (it Interpolator[T]) Span() T { return it.span }

// Empty reports whether the interval has zero length. Interpolating over an
// empty interval divides by zero.
func (it Interpolator[T]) Empty() bool { return it.span == 0 }

// Range returns the half-open domain [Begin, End).
func (it Interpolator[T]) Range() (lo, hi T) { return it.begin, it.end }

// Steps yields Begin, Begin+1, ... while below End.
func (it Interpolator[T]) Steps() iter.Seq[T] {
	return func(yield func(T) bool) {
		for p := it.begin; p < it.end; p++ {
			if !yield(p) {
				return
			}
		}
	}
}

// StepsWithin yields the Steps that fall inside [lo, hi). Interpolated
// values depend only on the phase, so skipping steps outside the window
// does not change the ones that remain.
func (it Interpolator[T]) StepsWithin(lo, hi T) iter.Seq[T] {
	return func(yield func(T) bool) {
		end := min(it.end, hi)
		for p := max(it.begin, lo); p < end; p++ {
			if !yield(p) {
				return
			}
		}
	}
}

// Scalar returns atBegin + delta*(phase-Begin)/Span in the domain type.
func (it Interpolator[T]) Scalar(phase, delta, atBegin T) T {
	return delta*(phase-it.begin)/it.span + atBegin
}

// Interpolate returns atBegin + delta*(phase-Begin)/Span for an attribute
// bundle. The multiply happens before the divide so integer components
// lose as little precision as possible.
func Interpolate[T Number, U Interpolable[U, T]](it Interpolator[T], phase T, delta, atBegin U) U {
	return delta.Mul(phase - it.begin).Div(it.span).Add(atBegin)
}
