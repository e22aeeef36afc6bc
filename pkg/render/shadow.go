package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/planebuf"
)

// DefaultShadowBias is added to a fragment's light-space depth before it
// is compared against the occluder depth.
const DefaultShadowBias = 1.0

// ShadowMap is the depth buffer of a directional light rendered from the
// light's point of view, plus the transform that carries canvas-space
// points (x, y, depth) into that buffer.
type ShadowMap struct {
	Depth     *planebuf.Buffer[float64]
	Transform math3d.Mat4
	Bias      float64
}

// NewShadowMap allocates an empty shadow map.
func NewShadowMap(width, height int) *ShadowMap {
	s := &ShadowMap{
		Depth:     planebuf.New[float64](width, height),
		Transform: math3d.Identity(),
		Bias:      DefaultShadowBias,
	}
	s.Depth.CleanWith(EmptyDepth)
	return s
}

// Reset resizes the map if needed and empties it.
func (s *ShadowMap) Reset(width, height int) {
	if s.Depth.Width() != width || s.Depth.Height() != height {
		s.Depth.Resize(width, height)
	}
	s.Depth.CleanWith(EmptyDepth)
}

// fragment writes depth only, with the same larger-wins test as the
// shaded pass.
func (s *ShadowMap) fragment(x, y int, v Varying) {
	d := s.Depth.Ptr(x, y)
	if *d > v.Depth {
		return
	}
	*d = v.Depth
}

// Lit reports whether the canvas-space point p is visible from the light.
// Points projecting outside the map, or onto texels nothing was drawn to,
// are lit.
func (s *ShadowMap) Lit(p math3d.Vec3) bool {
	lp := s.Transform.MulVec3(p)
	stored, ok := s.Depth.Get(int(lp.X), int(lp.Y))
	if !ok || stored == EmptyDepth {
		return true
	}
	return lp.Z+s.Bias >= stored
}
