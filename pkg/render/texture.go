package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"

	"github.com/taigrr/scanline/pkg/planebuf"
)

// WrapMode determines how texture coordinates outside [0,1] are handled
// by bilinear sampling. Nearest sampling always clamps.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

var wrapNames = map[string]WrapMode{"repeat": WrapRepeat, "clamp": WrapClamp}

// ParseWrapMode converts "repeat" or "clamp".
func ParseWrapMode(s string) (WrapMode, error) {
	if m, ok := wrapNames[s]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("render: unknown wrap mode %q", s)
}

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest  FilterMode = iota // Nearest texel, clamped
	FilterBilinear                   // Bilinear interpolation (smooth)
)

var filterNames = map[string]FilterMode{"nearest": FilterNearest, "bilinear": FilterBilinear}

// ParseFilterMode converts "nearest" or "bilinear".
func ParseFilterMode(s string) (FilterMode, error) {
	if m, ok := filterNames[s]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("render: unknown texture filter %q", s)
}

// Texture is an image stored in a plane buffer, so texel (0, 0) is the
// bottom-left corner of the source image and uv (0, 0) samples it.
type Texture struct {
	texels     *planebuf.Buffer[Color]
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		texels:     planebuf.New[Color](width, height),
		WrapU:      WrapRepeat,
		WrapV:      WrapRepeat,
		FilterMode: FilterNearest,
	}
}

// LoadTexture loads a texture from a PNG, JPEG, TGA or BMP file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, err := decodeByExt(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// decodeByExt picks the decoder from the file extension. TGA has no
// magic number, so sniffing with image.Decode cannot be relied on.
func decodeByExt(r io.Reader, ext string) (image.Image, error) {
	switch strings.ToLower(ext) {
	case ".tga":
		return tga.Decode(r)
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".bmp":
		return bmp.Decode(r)
	default:
		img, _, err := image.Decode(r)
		return img, err
	}
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := NewTexture(bounds.Dx(), bounds.Dy())

	// Image rows arrive top first, which is the plane buffer storage order.
	data := tex.texels.Data()
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			data[i] = FromColor(img.At(x, y))
			i++
		}
	}
	return tex
}

// SetSampling sets the filter and the wrap mode of both axes.
func (t *Texture) SetSampling(filter FilterMode, wrap WrapMode) {
	t.FilterMode = filter
	t.WrapU, t.WrapV = wrap, wrap
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.texels.Width() }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.texels.Height() }

// Empty reports whether the texture has no texels.
func (t *Texture) Empty() bool { return t.texels.Len() == 0 }

// Texels exposes the backing buffer.
func (t *Texture) Texels() *planebuf.Buffer[Color] { return t.texels }

// texelCoord maps a uv component onto [0, size-1].
func texelCoord(c float64, size int) int {
	i := int(c * float64(size))
	return min(max(i, 0), size-1)
}

// Texel returns the nearest texel to uv, with coordinates clamped to the
// texture. The texture must not be empty.
func (t *Texture) Texel(u, v float64) Color {
	return t.texels.At(texelCoord(u, t.Width()), texelCoord(v, t.Height()))
}

// At samples the texture with its configured filter.
func (t *Texture) At(u, v float64) Color {
	if t.FilterMode == FilterBilinear {
		return t.sampleBilinear(u, v)
	}
	return t.Texel(u, v)
}

// sampleBilinear returns bilinearly interpolated color.
func (t *Texture) sampleBilinear(u, v float64) Color {
	u = wrapCoord(u, t.WrapU)
	v = wrapCoord(v, t.WrapV)

	fx := u*float64(t.Width()) - 0.5
	fy := v*float64(t.Height()) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := wrapPixel(x0+1, t.Width(), t.WrapU)
	y1 := wrapPixel(y0+1, t.Height(), t.WrapV)
	x0 = wrapPixel(x0, t.Width(), t.WrapU)
	y0 = wrapPixel(y0, t.Height(), t.WrapV)

	c00 := t.texels.At(x0, y0)
	c10 := t.texels.At(x1, y0)
	c01 := t.texels.At(x0, y1)
	c11 := t.texels.At(x1, y1)

	bottom := lerpColor(c00, c10, tx)
	top := lerpColor(c01, c11, tx)
	return lerpColor(bottom, top, ty)
}

// wrapCoord applies the wrap mode to a coordinate.
func wrapCoord(coord float64, mode WrapMode) float64 {
	switch mode {
	case WrapRepeat:
		coord = coord - math.Floor(coord) // fmod to [0,1)
	case WrapClamp:
		coord = math.Max(0, math.Min(1, coord))
	}
	return coord
}

// wrapPixel wraps a pixel coordinate.
func wrapPixel(x, size int, mode WrapMode) int {
	switch mode {
	case WrapRepeat:
		x %= size
		if x < 0 {
			x += size
		}
	case WrapClamp:
		x = min(max(x, 0), size-1)
	}
	return x
}

// lerpColor linearly interpolates between two colors.
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}
