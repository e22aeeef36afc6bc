package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// DefaultShadowFactor scales the light a shadowed fragment still receives.
const DefaultShadowFactor = 0.3

// Options toggles the optional shading stages. A stage only runs when it
// is enabled here and the material provides the map it needs.
type Options struct {
	NormalMap   bool
	SpecularMap bool
	GlowMap     bool
	Shadows     bool
	Occlusion   bool
}

// DefaultOptions enables every stage.
func DefaultOptions() Options {
	return Options{NormalMap: true, SpecularMap: true, GlowMap: true, Shadows: true, Occlusion: true}
}

// effective drops the stages m cannot serve.
func (o Options) effective(m *Material) Options {
	o.NormalMap = o.NormalMap && m.HasNormals()
	o.SpecularMap = o.SpecularMap && m.HasSpecular()
	o.GlowMap = o.GlowMap && m.HasGlow()
	return o
}

// Shader computes fragment colors for one model. Bind must be called with
// each face's screen vertices before its fragments are shaded.
type Shader struct {
	Material *Material
	Lights   []Light
	Options  Options

	// LookDir points from the scene toward the viewer. Fragments whose
	// normal faces away from it are discarded. The zero vector disables
	// the test.
	LookDir math3d.Vec3

	ShadowFactor float64
	SpecularBias float64

	// edges and UV deltas of the bound face
	e1, e2 math3d.Vec3
	du, dv math3d.Vec3
}

// NewShader returns a shader with the default shadow factor.
func NewShader(mat *Material, lights []Light, opts Options) *Shader {
	if mat == nil {
		mat = NewMaterial()
	}
	return &Shader{
		Material:     mat,
		Lights:       lights,
		Options:      opts.effective(mat),
		ShadowFactor: DefaultShadowFactor,
	}
}

// Bind records the face geometry used by the normal map frame. Only the
// first three vertices are used.
func (s *Shader) Bind(vs []ScreenVertex) {
	if len(vs) < 3 {
		return
	}
	s.e1 = vs[1].Pos.Sub(vs[0].Pos)
	s.e2 = vs[2].Pos.Sub(vs[0].Pos)
	s.du = math3d.V3(vs[1].UV.X-vs[0].UV.X, vs[2].UV.X-vs[0].UV.X, 0)
	s.dv = math3d.V3(vs[1].UV.Y-vs[0].UV.Y, vs[2].UV.Y-vs[0].UV.Y, 0)
}

// Shade returns the color of the fragment at (x, y) and whether it
// should be drawn at all.
func (s *Shader) Shade(x, y int, v Varying) (Color, bool) {
	n := v.Normal.Normalize()
	if s.LookDir.Dot(n) < 0 {
		return Color{}, false
	}

	base := s.Material.albedo(v)
	if s.Options.NormalMap {
		n = s.perturb(n, v.UV)
	}

	pos := math3d.V3(float64(x), float64(y), v.Depth)
	var intensity math3d.Vec3
	for i := range s.Lights {
		intensity = intensity.Add(s.contribution(&s.Lights[i], n, pos, v.UV))
	}

	out := base.ApplyIntensity(intensity)
	if s.Options.GlowMap {
		out = out.AddSaturated(s.Material.Glow.At(v.UV.X, v.UV.Y))
	}
	return out, true
}

func (s *Shader) contribution(l *Light, n, pos math3d.Vec3, uv math3d.Vec2) math3d.Vec3 {
	var dir math3d.Vec3
	switch l.Kind {
	case LightAmbient:
		return l.Spectrum
	case LightPoint:
		dir = l.Position.Sub(pos).Normalize()
	default:
		dir = l.Direction
	}

	factor := 1.0
	if s.Options.Shadows && l.Shadow != nil && !l.Shadow.Lit(pos) {
		factor = s.ShadowFactor
	}

	var out math3d.Vec3
	if d := n.Dot(dir); d > 0 {
		out = l.Spectrum.Scale(math.Pow(d, l.Concentration) * factor)
	}
	if s.Options.SpecularMap {
		// zero exponent means the surface has no highlight
		if exp := float64(s.Material.Specular.Texel(uv.X, uv.Y).R); exp > 0 {
			r := dir.Reflect(n).Negate().Normalize()
			if k := r.Z + s.SpecularBias; k > 0 {
				out = out.Add(l.Spectrum.Scale(math.Pow(k, exp) * factor))
			}
		}
	}
	return out
}

// perturb replaces the interpolated normal n with the normal map sample
// expressed in the face's tangent frame.
func (s *Shader) perturb(n math3d.Vec3, uv math3d.Vec2) math3d.Vec3 {
	// Rows, not columns: A*T = du means dot(T, e1) = du.X,
	// dot(T, e2) = du.Y and dot(T, n) = du.Z = 0.
	ai, ok := math3d.Mat3FromRows(s.e1, s.e2, n).Inverse()
	if !ok {
		return n
	}
	i := ai.MulVec3(s.du).Normalize()
	j := ai.MulVec3(s.dv).Normalize()
	b := math3d.Mat3FromCols(i, j, n)
	return b.MulVec3(s.Material.normalAt(uv)).Normalize()
}
