package render

import "github.com/taigrr/scanline/pkg/math3d"

// LightKind selects how a Light contributes.
type LightKind int

const (
	// LightDirectional shines along Direction and can cast shadows.
	LightDirectional LightKind = iota
	// LightAmbient adds its spectrum everywhere.
	LightAmbient
	// LightPoint shines from Position.
	LightPoint
)

func (k LightKind) String() string {
	switch k {
	case LightDirectional:
		return "directional"
	case LightAmbient:
		return "ambient"
	case LightPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Light is a light source. Direction is a unit vector pointing from the
// surface toward the light. Spectrum scales the red, green and blue channels and
// Concentration is the exponent applied to the diffuse term.
type Light struct {
	Kind          LightKind
	Direction     math3d.Vec3
	Position      math3d.Vec3
	Spectrum      math3d.Vec3
	Concentration float64

	// CastShadows asks the rasterizer to render a shadow map for a
	// directional light. Shadow is filled in per frame.
	CastShadows bool
	Shadow      *ShadowMap
}

// DirectionalLight returns a directional light with concentration 1.
func DirectionalLight(dir, spectrum math3d.Vec3) Light {
	return Light{Kind: LightDirectional, Direction: dir.Normalize(), Spectrum: spectrum, Concentration: 1}
}

// AmbientLight returns an ambient light.
func AmbientLight(spectrum math3d.Vec3) Light {
	return Light{Kind: LightAmbient, Spectrum: spectrum}
}

// PointLight returns a point light with concentration 1.
func PointLight(pos, spectrum math3d.Vec3) Light {
	return Light{Kind: LightPoint, Position: pos, Spectrum: spectrum, Concentration: 1}
}
