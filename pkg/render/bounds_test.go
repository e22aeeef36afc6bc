package render

import (
	"image"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func unitBox() AABB {
	return NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
}

func TestAABBBasics(t *testing.T) {
	b := NewAABB(math3d.V3(0, 2, -4), math3d.V3(2, 6, 4))
	if got := b.Center(); got != math3d.V3(1, 4, 0) {
		t.Errorf("center = %v", got)
	}
	if got := b.Size(); got != math3d.V3(2, 4, 8) {
		t.Errorf("size = %v", got)
	}
	if !b.ContainsPoint(math3d.V3(1, 2, 4)) || b.ContainsPoint(math3d.V3(3, 3, 0)) {
		t.Error("ContainsPoint")
	}
}

func TestAABBTransform(t *testing.T) {
	moved := unitBox().Transform(math3d.Translate(math3d.V3(3, 0, 0)))
	if moved.Min != math3d.V3(2, -1, -1) || moved.Max != math3d.V3(4, 1, 1) {
		t.Errorf("translated box = %+v", moved)
	}

	turned := unitBox().Transform(math3d.RotateY(0.7))
	if !turned.ContainsPoint(math3d.V3(1, 1, 1)) {
		t.Error("rotated bounds should still enclose the original corners")
	}
}

func TestAABBScreenRect(t *testing.T) {
	vp := math3d.Viewport(0, 0, 100, 100, DefaultDepthRange)
	r, ok := unitBox().ScreenRect(vp)
	if !ok {
		t.Fatal("box in front of the camera should project")
	}
	if want := image.Rect(0, 0, 101, 101); r != want {
		t.Errorf("rect = %v, want %v", r, want)
	}

	// a corner at or behind the projection point
	behind := vp.Mul(math3d.ProjectionDistance(1))
	if _, ok := unitBox().ScreenRect(behind); ok {
		t.Error("box crossing the projection point should not project")
	}
}

func TestAABBVisible(t *testing.T) {
	vp := math3d.Viewport(0, 0, 100, 100, DefaultDepthRange)
	tests := []struct {
		name   string
		offset math3d.Vec3
		want   bool
	}{
		{"centered", math3d.Zero3(), true},
		{"overlapping an edge", math3d.V3(1.5, 0, 0), true},
		{"off right", math3d.V3(10, 0, 0), false},
		{"off below", math3d.V3(0, -5, 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			screen := vp.Mul(math3d.Translate(tc.offset))
			if got := unitBox().Visible(screen, 100, 100); got != tc.want {
				t.Errorf("Visible = %v, want %v", got, tc.want)
			}
		})
	}

	if !unitBox().Visible(vp.Mul(math3d.ProjectionDistance(1)), 100, 100) {
		t.Error("unprojectable boxes should count as visible")
	}
}
