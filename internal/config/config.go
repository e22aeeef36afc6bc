// Package config loads scene descriptions for the scanline commands. A
// scene file is YAML; anything it leaves out falls back to Default, and
// command line flags override both.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid scene")

// Vec3 is a vector written as a three element YAML sequence.
type Vec3 [3]float64

// V converts to a math3d vector.
func (v Vec3) V() math3d.Vec3 { return math3d.V3(v[0], v[1], v[2]) }

// RGB is a color written as [r, g, b].
type RGB [3]uint8

// Color converts to an opaque render color.
func (c RGB) Color() render.Color { return render.RGB(c[0], c[1], c[2]) }

// Scene is everything needed to render one frame.
type Scene struct {
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	DepthRange float64   `yaml:"depth_range"`
	Background RGB       `yaml:"background"`
	Camera     Camera    `yaml:"camera"`
	Lights     []Light   `yaml:"lights"`
	Occlusion  Occlusion `yaml:"occlusion"`
	Features   Features  `yaml:"features"`
	Shadow     Shadow    `yaml:"shadow"`
	Textures   Textures  `yaml:"textures"`
	Models     []Model   `yaml:"models"`
	Output     string    `yaml:"output"`
	Scale      int       `yaml:"scale"`
}

// Camera places the eye. Yaw and Pitch are in degrees.
type Camera struct {
	From     Vec3    `yaml:"from"`
	To       Vec3    `yaml:"to"`
	Up       Vec3    `yaml:"up"`
	Distance float64 `yaml:"distance"`
	Yaw      float64 `yaml:"yaw"`
	Pitch    float64 `yaml:"pitch"`
}

// Light is one scene light. Kind is directional, ambient or point.
type Light struct {
	Kind          string  `yaml:"kind"`
	Direction     Vec3    `yaml:"direction"`
	Position      Vec3    `yaml:"position"`
	Spectrum      Vec3    `yaml:"spectrum"`
	Concentration float64 `yaml:"concentration"`
	Shadows       bool    `yaml:"shadows"`
}

// Occlusion tunes the ambient occlusion pass.
type Occlusion struct {
	Radius    float64 `yaml:"radius"`
	Intensity float64 `yaml:"intensity"`
	Sharpness float64 `yaml:"sharpness"`
}

// Shadow tunes shadowed lighting.
type Shadow struct {
	Bias   float64 `yaml:"bias"`
	Factor float64 `yaml:"factor"`
}

// Textures selects how color textures are sampled: filter is "nearest"
// or "bilinear", wrap is "repeat" or "clamp". Wrap only affects bilinear
// sampling.
type Textures struct {
	Filter string `yaml:"filter"`
	Wrap   string `yaml:"wrap"`
}

// Features switches the optional shading stages.
type Features struct {
	NormalMap   bool `yaml:"normal_map"`
	SpecularMap bool `yaml:"specular_map"`
	GlowMap     bool `yaml:"glow_map"`
	Shadows     bool `yaml:"shadows"`
	Occlusion   bool `yaml:"ambient_occlusion"`
}

// Model is a mesh file plus optional texture overrides. Maps left empty
// come from the mesh file or its sibling textures.
type Model struct {
	Path     string  `yaml:"path"`
	Diffuse  string  `yaml:"diffuse"`
	Normal   string  `yaml:"normal"`
	Specular string  `yaml:"specular"`
	Glow     string  `yaml:"glow"`
	Size     float64 `yaml:"size"`     // largest dimension after fitting
	Position Vec3    `yaml:"position"` // applied after fitting
	Rotation Vec3    `yaml:"rotation"` // degrees around X, Y and Z
}

// Default returns the built-in scene: an 800x800 canvas, a camera five
// units out on +Z, a white directional light from the viewer and a dim
// ambient fill.
func Default() *Scene {
	return &Scene{
		Width:      800,
		Height:     800,
		DepthRange: render.DefaultDepthRange,
		Background: RGB{0, 0, 0},
		Camera: Camera{
			From:     Vec3{0, 0, 5},
			Up:       Vec3{0, 1, 0},
			Distance: 5,
		},
		Lights: []Light{
			{Kind: "directional", Direction: Vec3{0, 0, 1}, Spectrum: Vec3{1, 1, 1}, Concentration: 1, Shadows: true},
			{Kind: "ambient", Spectrum: Vec3{0.1, 0.1, 0.1}},
		},
		Occlusion: Occlusion{Radius: 10, Intensity: 0.5, Sharpness: 200},
		Features: Features{
			NormalMap:   true,
			SpecularMap: true,
			GlowMap:     true,
			Shadows:     true,
			Occlusion:   true,
		},
		Shadow:   Shadow{Bias: render.DefaultShadowBias, Factor: render.DefaultShadowFactor},
		Textures: Textures{Filter: "nearest", Wrap: "repeat"},
		Output:   "frame.png",
		Scale:    1,
	}
}

// Load reads a scene file on top of Default. Relative model and texture
// paths are resolved against the file's directory.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	s.rebase(filepath.Dir(path))
	return s, nil
}

// Parse decodes a scene from r on top of Default. Unknown keys are errors.
func Parse(r io.Reader) (*Scene, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return s, nil
}

func (s *Scene) rebase(dir string) {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i := range s.Models {
		m := &s.Models[i]
		m.Path = join(m.Path)
		m.Diffuse = join(m.Diffuse)
		m.Normal = join(m.Normal)
		m.Specular = join(m.Specular)
		m.Glow = join(m.Glow)
	}
}

// Flags holds command line values that override the scene file. Zero
// values leave the file alone.
type Flags struct {
	Models      []string
	Output      string
	Width       int
	Height      int
	Scale       int
	Distance    float64
	NoAO        bool
	NoShadows   bool
	NoNormalMap bool
	NoSpecular  bool
	NoGlow      bool
	Filter      string
}

// Resolve applies flags over the scene and fills anything still unset
// with defaults.
func (s *Scene) Resolve(flags Flags) {
	if len(flags.Models) > 0 {
		s.Models = s.Models[:0]
		for _, p := range flags.Models {
			s.Models = append(s.Models, Model{Path: p})
		}
	}
	if flags.Output != "" {
		s.Output = flags.Output
	}
	if flags.Width > 0 {
		s.Width = flags.Width
	}
	if flags.Height > 0 {
		s.Height = flags.Height
	}
	if flags.Scale > 0 {
		s.Scale = flags.Scale
	}
	if flags.Distance > 0 {
		s.Camera.Distance = flags.Distance
	}
	if flags.Filter != "" {
		s.Textures.Filter = flags.Filter
	}
	s.Features.Occlusion = s.Features.Occlusion && !flags.NoAO
	s.Features.Shadows = s.Features.Shadows && !flags.NoShadows
	s.Features.NormalMap = s.Features.NormalMap && !flags.NoNormalMap
	s.Features.SpecularMap = s.Features.SpecularMap && !flags.NoSpecular
	s.Features.GlowMap = s.Features.GlowMap && !flags.NoGlow

	def := Default()
	if s.Width <= 0 {
		s.Width = def.Width
	}
	if s.Height <= 0 {
		s.Height = def.Height
	}
	if s.DepthRange <= 0 {
		s.DepthRange = def.DepthRange
	}
	if s.Camera.Distance <= 0 {
		s.Camera.Distance = def.Camera.Distance
	}
	if s.Camera.Up == (Vec3{}) {
		s.Camera.Up = def.Camera.Up
	}
	if s.Scale <= 0 {
		s.Scale = def.Scale
	}
	if s.Output == "" {
		s.Output = def.Output
	}
	if s.Textures.Filter == "" {
		s.Textures.Filter = def.Textures.Filter
	}
	if s.Textures.Wrap == "" {
		s.Textures.Wrap = def.Textures.Wrap
	}
	for i := range s.Models {
		if s.Models[i].Size <= 0 {
			s.Models[i].Size = 2
		}
	}
	for i := range s.Lights {
		if s.Lights[i].Concentration <= 0 {
			s.Lights[i].Concentration = 1
		}
	}
}

// Validate reports the first problem that would stop the scene from
// rendering.
func (s *Scene) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalid, s.Width, s.Height)
	case s.DepthRange <= 0:
		return fmt.Errorf("%w: depth range %v", ErrInvalid, s.DepthRange)
	case s.Camera.From == s.Camera.To:
		return fmt.Errorf("%w: camera from and to are the same point", ErrInvalid)
	case len(s.Models) == 0:
		return fmt.Errorf("%w: no models", ErrInvalid)
	}
	if _, _, err := s.Sampling(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for i, m := range s.Models {
		if m.Path == "" {
			return fmt.Errorf("%w: model %d has no path", ErrInvalid, i)
		}
	}
	for i, l := range s.Lights {
		if _, err := lightKind(l.Kind); err != nil {
			return fmt.Errorf("%w: light %d: %w", ErrInvalid, i, err)
		}
		if l.Kind == "directional" && l.Direction == (Vec3{}) {
			return fmt.Errorf("%w: light %d has no direction", ErrInvalid, i)
		}
	}
	return nil
}

func lightKind(kind string) (render.LightKind, error) {
	switch kind {
	case "directional":
		return render.LightDirectional, nil
	case "ambient":
		return render.LightAmbient, nil
	case "point":
		return render.LightPoint, nil
	default:
		return 0, fmt.Errorf("unknown light kind %q", kind)
	}
}
