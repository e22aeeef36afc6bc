package render

import "github.com/taigrr/scanline/pkg/math3d"

// ScreenVertex is a vertex after the transform stage: Pos holds the pixel
// position in X/Y and the depth in Z.
type ScreenVertex struct {
	Pos      math3d.Vec3
	UV       math3d.Vec2
	Normal   math3d.Vec3
	Color    Color
	HasColor bool
}

// column is the integer x the fill engine sorts and walks by.
func (v ScreenVertex) column() int {
	return int(v.Pos.X)
}

func (v ScreenVertex) varying() Varying {
	return Varying{
		Y:        int(v.Pos.Y),
		Depth:    v.Pos.Z,
		UV:       v.UV,
		Normal:   v.Normal,
		Color:    v.Color,
		HasColor: v.HasColor,
	}
}

// Varying is the attribute bundle interpolated across a face. Y is an
// integer so it keeps truncating division; the rest are floating point.
//
// Color and HasColor are not part of the arithmetic: they pass through
// from the receiver and the fill engine blends Color separately with
// Color.Interpolate.
type Varying struct {
	Y        int
	Depth    float64
	UV       math3d.Vec2
	Normal   math3d.Vec3
	Color    Color
	HasColor bool
}

// Add implements interp.Interpolable.
func (v Varying) Add(o Varying) Varying {
	v.Y += o.Y
	v.Depth += o.Depth
	v.UV = v.UV.Add(o.UV)
	v.Normal = v.Normal.Add(o.Normal)
	return v
}

// Sub implements interp.Interpolable.
func (v Varying) Sub(o Varying) Varying {
	v.Y -= o.Y
	v.Depth -= o.Depth
	v.UV = v.UV.Sub(o.UV)
	v.Normal = v.Normal.Sub(o.Normal)
	return v
}

// Mul implements interp.Interpolable.
func (v Varying) Mul(t int) Varying {
	f := float64(t)
	v.Y *= t
	v.Depth *= f
	v.UV = v.UV.Scale(f)
	v.Normal = v.Normal.Scale(f)
	return v
}

// Div implements interp.Interpolable.
func (v Varying) Div(t int) Varying {
	f := float64(t)
	v.Y /= t
	v.Depth /= f
	v.UV = v.UV.Div(f)
	v.Normal = v.Normal.Div(f)
	return v
}
