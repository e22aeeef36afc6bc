package render

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestColorArithmeticWraps(t *testing.T) {
	a := RGBA(250, 10, 0, 255)
	b := RGBA(10, 20, 1, 1)

	if got, want := a.Add(b), RGBA(4, 30, 1, 0); got != want {
		t.Errorf("Add = %v, want %v", got, want)
	}
	if got, want := b.Sub(a), RGBA(16, 10, 1, 2); got != want {
		t.Errorf("Sub = %v, want %v", got, want)
	}
}

func TestColorAddSaturated(t *testing.T) {
	got := RGBA(200, 100, 0, 7).AddSaturated(RGBA(100, 100, 5, 200))
	if want := RGBA(255, 200, 5, 7); got != want {
		t.Errorf("AddSaturated = %v, want %v", got, want)
	}
}

func TestColorApplyIntensity(t *testing.T) {
	tests := []struct {
		name string
		in   math3d.Vec3
		want Color
	}{
		{"identity", math3d.V3(1, 1, 1), RGB(200, 100, 50)},
		{"half truncates", math3d.V3(0.5, 0.5, 0.5), RGB(100, 50, 25)},
		{"clamps high", math3d.V3(2, 3, 10), RGB(255, 255, 255)},
		{"clamps low", math3d.V3(-1, 0, -0.5), RGB(0, 0, 0)},
		{"nan", math3d.V3(math.NaN(), 1, 1), RGB(0, 100, 50)},
		{"per channel", math3d.V3(1, 0, 2), RGB(200, 0, 100)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RGB(200, 100, 50).ApplyIntensity(tc.in); got != tc.want {
				t.Errorf("ApplyIntensity(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestColorInterpolate(t *testing.T) {
	a := RGBA(0, 100, 255, 10)
	b := RGBA(100, 0, 55, 99)

	tests := []struct {
		t, tmax int
		want    Color
	}{
		{0, 10, a},
		{10, 10, RGBA(100, 0, 55, 10)},
		{5, 10, RGBA(50, 50, 155, 10)},
		{1, 3, RGBA(33, 67, 189, 10)},
		{3, 0, a},
	}
	for _, tc := range tests {
		if got := a.Interpolate(b, tc.t, tc.tmax); got != tc.want {
			t.Errorf("Interpolate(t=%d, tmax=%d) = %v, want %v", tc.t, tc.tmax, got, tc.want)
		}
	}
}

func TestColorInterpolateToSelf(t *testing.T) {
	colors := []Color{RGBA(0, 100, 255, 10), ColorWhite, {}, RGB(7, 128, 201)}
	for _, c := range colors {
		for tmax := range 6 {
			for step := -2; step <= 2*tmax+3; step++ {
				if got := c.Interpolate(c, step, tmax); got != c {
					t.Errorf("%v.Interpolate(self, %d, %d) = %v", c, step, tmax, got)
				}
			}
		}
	}
}

func TestColorPackedAndHSV(t *testing.T) {
	if got := RGBA(0x11, 0x22, 0x33, 0x44).Packed(); got != 0x44112233 {
		t.Errorf("Packed = %#x", got)
	}

	tests := []struct {
		h    float64
		want Color
	}{
		{0, ColorRed},
		{120, ColorGreen},
		{240, ColorBlue},
		{360, ColorRed},
		{-120, ColorBlue},
	}
	for _, tc := range tests {
		if got := HSV(tc.h, 1, 1); got != tc.want {
			t.Errorf("HSV(%v) = %v, want %v", tc.h, got, tc.want)
		}
	}
}

func TestColorInverted(t *testing.T) {
	if got := RGBA(0, 55, 255, 9).Inverted(); got != RGBA(255, 200, 0, 9) {
		t.Errorf("Inverted = %v", got)
	}
}
