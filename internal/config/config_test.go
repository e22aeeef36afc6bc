package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 800, s.Height)
	assert.Equal(t, float64(render.DefaultDepthRange), s.DepthRange)
	assert.Equal(t, Vec3{0, 0, 5}, s.Camera.From)
	assert.Equal(t, 5.0, s.Camera.Distance)
	require.Len(t, s.Lights, 2)
	assert.Equal(t, "directional", s.Lights[0].Kind)
	assert.Equal(t, Vec3{0.1, 0.1, 0.1}, s.Lights[1].Spectrum)
	assert.Equal(t, Occlusion{Radius: 10, Intensity: 0.5, Sharpness: 200}, s.Occlusion)
	assert.True(t, s.Features.Occlusion)
	assert.Equal(t, Textures{Filter: "nearest", Wrap: "repeat"}, s.Textures)
}

func TestParseOverridesDefaults(t *testing.T) {
	doc := `
width: 320
camera:
  distance: 3
features:
  shadows: false
lights:
  - kind: point
    position: [1, 2, 3]
    spectrum: [1, 0.5, 0]
models:
  - path: head.obj
    rotation: [0, 90, 0]
`
	s, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 320, s.Width)
	assert.Equal(t, 800, s.Height, "unset keys keep the default")
	assert.Equal(t, 3.0, s.Camera.Distance)
	assert.Equal(t, Vec3{0, 0, 5}, s.Camera.From)
	assert.False(t, s.Features.Shadows)
	assert.True(t, s.Features.NormalMap)
	require.Len(t, s.Lights, 1, "a lights list replaces the default lights")
	assert.Equal(t, Vec3{1, 2, 3}, s.Lights[0].Position)
	require.Len(t, s.Models, 1)
	assert.Equal(t, "head.obj", s.Models[0].Path)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "widht: 10\n"},
		{"short vector", "camera:\n  from: [1, 2]\n"},
		{"not yaml", "width: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	s, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadRebasesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	doc := "models:\n  - path: assets/head.obj\n    diffuse: /abs/diffuse.tga\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Len(t, s.Models, 1)
	assert.Equal(t, filepath.Join(dir, "assets", "head.obj"), s.Models[0].Path)
	assert.Equal(t, "/abs/diffuse.tga", s.Models[0].Diffuse)
	assert.Empty(t, s.Models[0].Normal)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "config: read")
}

func TestResolve(t *testing.T) {
	s := Default()
	s.Width = 0
	s.Output = ""
	s.Models = []Model{{Path: "from-file.obj"}}

	s.Resolve(Flags{
		Models:    []string{"a.obj", "b.glb"},
		Height:    240,
		NoAO:      true,
		NoShadows: true,
	})

	assert.Equal(t, 800, s.Width, "zero width falls back to the default")
	assert.Equal(t, 240, s.Height)
	assert.Equal(t, "frame.png", s.Output)
	assert.False(t, s.Features.Occlusion)
	assert.False(t, s.Features.Shadows)
	assert.True(t, s.Features.GlowMap)
	require.Len(t, s.Models, 2)
	assert.Equal(t, "b.glb", s.Models[1].Path)
	assert.Equal(t, 2.0, s.Models[1].Size)
}

func TestResolveTextureFilter(t *testing.T) {
	s := Default()
	s.Textures = Textures{}
	s.Resolve(Flags{Filter: "bilinear"})
	assert.Equal(t, Textures{Filter: "bilinear", Wrap: "repeat"}, s.Textures)

	filter, wrap, err := s.Sampling()
	require.NoError(t, err)
	assert.Equal(t, render.FilterBilinear, filter)
	assert.Equal(t, render.WrapRepeat, wrap)
}

func TestResolveKeepsFileValues(t *testing.T) {
	s := Default()
	s.Output = "scene.webp"
	s.Features.Occlusion = false
	s.Resolve(Flags{})
	assert.Equal(t, "scene.webp", s.Output)
	assert.False(t, s.Features.Occlusion, "flags cannot re-enable a stage the file turned off")
}

func TestValidate(t *testing.T) {
	valid := func() *Scene {
		s := Default()
		s.Models = []Model{{Path: "m.obj"}}
		return s
	}
	tests := []struct {
		name   string
		mutate func(s *Scene)
		ok     bool
	}{
		{"valid", func(*Scene) {}, true},
		{"zero width", func(s *Scene) { s.Width = 0 }, false},
		{"negative depth", func(s *Scene) { s.DepthRange = -1 }, false},
		{"eye on target", func(s *Scene) { s.Camera.From = s.Camera.To }, false},
		{"no models", func(s *Scene) { s.Models = nil }, false},
		{"model without path", func(s *Scene) { s.Models[0].Path = "" }, false},
		{"bad light kind", func(s *Scene) { s.Lights[0].Kind = "spot" }, false},
		{"directional without direction", func(s *Scene) { s.Lights[0].Direction = Vec3{} }, false},
		{"bilinear clamp", func(s *Scene) { s.Textures = Textures{Filter: "bilinear", Wrap: "clamp"} }, true},
		{"bad texture filter", func(s *Scene) { s.Textures.Filter = "trilinear" }, false},
		{"bad texture wrap", func(s *Scene) { s.Textures.Wrap = "mirror" }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := valid()
			tc.mutate(s)
			err := s.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestRenderLights(t *testing.T) {
	s := Default()
	s.Lights = append(s.Lights, Light{Kind: "point", Position: Vec3{0, 3, 0}, Spectrum: Vec3{1, 1, 1}, Concentration: 2})
	lights, err := s.RenderLights()
	require.NoError(t, err)
	require.Len(t, lights, 3)

	assert.Equal(t, render.LightDirectional, lights[0].Kind)
	assert.True(t, lights[0].CastShadows)
	assert.Equal(t, render.LightAmbient, lights[1].Kind)
	assert.Equal(t, render.LightPoint, lights[2].Kind)
	assert.Equal(t, 2.0, lights[2].Concentration)

	s.Lights[0].Kind = "laser"
	_, err = s.RenderLights()
	assert.Error(t, err)
}

func TestConfigure(t *testing.T) {
	s := Default()
	s.Features.GlowMap = false
	s.Shadow.Bias = 3

	r := render.NewRasterizer(render.NewCamera(), render.NewCanvas(4, 4))
	require.NoError(t, s.Configure(r))
	assert.Len(t, r.Lights(), 2)
	assert.False(t, r.Options.GlowMap)
	assert.True(t, r.Options.Shadows)
	assert.Equal(t, 3.0, r.ShadowBias)
	assert.Equal(t, s.DepthRange, r.Occlusion.DepthScale)
}

func TestNewCamera(t *testing.T) {
	s := Default()
	s.Camera.Yaw = 90
	s.Camera.Distance = 0.1
	c := s.NewCamera()
	assert.InDelta(t, 1.5707963, c.Yaw, 1e-6)
	assert.Equal(t, render.MinCameraDistance, c.Distance())
	assert.True(t, c.LookDir().ApproxEqual(math3d.V3(0, 0, 1), 1e-12))
}

func TestPlacement(t *testing.T) {
	m := Model{Position: Vec3{1, 0, 0}, Rotation: Vec3{0, 90, 0}}
	got := m.Placement().MulVec3(math3d.V3(0, 0, 1))
	assert.True(t, got.ApproxEqual(math3d.V3(2, 0, 0), 1e-9), "got %v", got)
}
