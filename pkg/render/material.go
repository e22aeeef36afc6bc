package render

import (
	"image"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/planebuf"
)

// Material holds the surface maps a model is shaded with. Every map is
// optional; Base is used where neither a vertex color nor a diffuse
// texture is available.
type Material struct {
	Diffuse  *Texture
	Normals  *planebuf.Buffer[math3d.Vec3] // tangent-space normal map
	Specular *Texture                      // red channel is the shininess exponent
	Glow     *Texture
	Base     Color
}

// NewMaterial returns a plain white material.
func NewMaterial() *Material {
	return &Material{Base: ColorWhite}
}

// MaterialFromImages builds a material from decoded images. Any of them
// may be nil.
func MaterialFromImages(diffuse, normal, specular, glow image.Image) *Material {
	m := NewMaterial()
	if diffuse != nil {
		m.Diffuse = TextureFromImage(diffuse)
	}
	if normal != nil {
		m.Normals = DecodeNormalMap(TextureFromImage(normal))
	}
	if specular != nil {
		m.Specular = TextureFromImage(specular)
	}
	if glow != nil {
		m.Glow = TextureFromImage(glow)
	}
	return m
}

// SetSampling applies filter and wrap to the color textures. The decoded
// normal map is always sampled nearest.
func (m *Material) SetSampling(filter FilterMode, wrap WrapMode) {
	for _, t := range []*Texture{m.Diffuse, m.Specular, m.Glow} {
		if t != nil {
			t.SetSampling(filter, wrap)
		}
	}
}

// DecodeNormalMap turns an RGB-encoded normal map into unit vectors:
// each channel maps [0, 255] onto [-1, 1].
func DecodeNormalMap(t *Texture) *planebuf.Buffer[math3d.Vec3] {
	src := t.Texels().Data()
	out, _ := planebuf.FromSlice(t.Width(), t.Height(), make([]math3d.Vec3, len(src)))
	data := out.Data()
	for i, c := range src {
		data[i] = math3d.V3(
			float64(c.R)/255*2-1,
			float64(c.G)/255*2-1,
			float64(c.B)/255*2-1,
		).Normalize()
	}
	return out
}

// HasNormals reports whether a usable normal map is bound.
func (m *Material) HasNormals() bool {
	return m.Normals != nil && m.Normals.Len() > 0
}

// HasSpecular reports whether a usable specular map is bound.
func (m *Material) HasSpecular() bool {
	return m.Specular != nil && !m.Specular.Empty()
}

// HasGlow reports whether a usable glow map is bound.
func (m *Material) HasGlow() bool {
	return m.Glow != nil && !m.Glow.Empty()
}

// albedo picks the unlit surface color for a fragment.
func (m *Material) albedo(v Varying) Color {
	switch {
	case v.HasColor:
		return v.Color
	case m.Diffuse != nil && !m.Diffuse.Empty():
		return m.Diffuse.At(v.UV.X, v.UV.Y)
	default:
		return m.Base
	}
}

// normalAt returns the tangent-space normal stored at uv. The caller must
// have checked HasNormals.
func (m *Material) normalAt(uv math3d.Vec2) math3d.Vec3 {
	n := m.Normals
	return n.At(texelCoord(uv.X, n.Width()), texelCoord(uv.Y, n.Height()))
}
