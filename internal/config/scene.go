package config

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// NewCamera builds the render camera described by the scene.
func (s *Scene) NewCamera() *render.Camera {
	c := render.NewCamera()
	c.SetLook(s.Camera.From.V(), s.Camera.To.V(), s.Camera.Up.V())
	c.SetDistance(s.Camera.Distance)
	c.SetRotation(radians(s.Camera.Yaw), radians(s.Camera.Pitch))
	return c
}

// RenderLights converts the scene lights. Directional shadows are only
// requested when the shadows feature is on.
func (s *Scene) RenderLights() ([]render.Light, error) {
	out := make([]render.Light, 0, len(s.Lights))
	for _, l := range s.Lights {
		kind, err := lightKind(l.Kind)
		if err != nil {
			return nil, err
		}
		var rl render.Light
		switch kind {
		case render.LightDirectional:
			rl = render.DirectionalLight(l.Direction.V(), l.Spectrum.V())
			rl.CastShadows = l.Shadows
		case render.LightPoint:
			rl = render.PointLight(l.Position.V(), l.Spectrum.V())
		default:
			rl = render.AmbientLight(l.Spectrum.V())
		}
		if l.Concentration > 0 && kind != render.LightAmbient {
			rl.Concentration = l.Concentration
		}
		out = append(out, rl)
	}
	return out, nil
}

// RenderOptions returns the requested shading stages.
func (s *Scene) RenderOptions() render.Options {
	f := s.Features
	return render.Options{
		NormalMap:   f.NormalMap,
		SpecularMap: f.SpecularMap,
		GlowMap:     f.GlowMap,
		Shadows:     f.Shadows,
		Occlusion:   f.Occlusion,
	}
}

// Sampling returns the texture filter and wrap mode.
func (s *Scene) Sampling() (render.FilterMode, render.WrapMode, error) {
	filter, err := render.ParseFilterMode(s.Textures.Filter)
	if err != nil {
		return 0, 0, err
	}
	wrap, err := render.ParseWrapMode(s.Textures.Wrap)
	if err != nil {
		return 0, 0, err
	}
	return filter, wrap, nil
}

// OcclusionConfig returns the ambient occlusion settings. Depth units
// are scaled by the depth range.
func (s *Scene) OcclusionConfig() render.OcclusionConfig {
	return render.OcclusionConfig{
		Radius:     s.Occlusion.Radius,
		Intensity:  s.Occlusion.Intensity,
		DepthScale: s.DepthRange,
		Sharpness:  s.Occlusion.Sharpness,
	}
}

// Configure applies the scene's rendering settings to r.
func (s *Scene) Configure(r *render.Rasterizer) error {
	lights, err := s.RenderLights()
	if err != nil {
		return err
	}
	r.SetLights(lights...)
	r.DepthRange = s.DepthRange
	r.Options = s.RenderOptions()
	r.Occlusion = s.OcclusionConfig()
	r.ShadowBias = s.Shadow.Bias
	r.ShadowFactor = s.Shadow.Factor
	return nil
}

// Placement returns the transform that moves a fitted model into place:
// rotation about X, then Y, then Z, then the translation.
func (m Model) Placement() math3d.Mat4 {
	rot := math3d.RotateZ(radians(m.Rotation[2])).
		Mul(math3d.RotateY(radians(m.Rotation[1]))).
		Mul(math3d.RotateX(radians(m.Rotation[0])))
	return math3d.Translate(m.Position.V()).Mul(rot)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
