package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// cornerImage is a 2x2 image with a distinct color in each corner.
func cornerImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255}) // top left
	img.Set(1, 0, color.NRGBA{0, 255, 0, 255}) // top right
	img.Set(0, 1, color.NRGBA{0, 0, 255, 255}) // bottom left
	img.Set(1, 1, color.NRGBA{255, 255, 255, 255})
	return img
}

func TestTextureFromImageOrientation(t *testing.T) {
	tex := TextureFromImage(cornerImage())
	tests := []struct {
		name string
		u, v float64
		want Color
	}{
		{"bottom left", 0, 0, ColorBlue},
		{"bottom right", 0.9, 0, ColorWhite},
		{"top left", 0, 0.9, ColorRed},
		{"top right", 0.9, 0.9, ColorGreen},
		{"clamped above", 5, 5, ColorGreen},
		{"clamped below", -1, -1, ColorBlue},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Texel(tc.u, tc.v); got != tc.want {
				t.Errorf("Texel(%v,%v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestTextureBilinear(t *testing.T) {
	tex := NewTexture(2, 1)
	tex.Texels().Set(0, 0, ColorBlack)
	tex.Texels().Set(1, 0, ColorWhite)
	tex.FilterMode = FilterBilinear
	tex.WrapU, tex.WrapV = WrapClamp, WrapClamp

	if got := tex.At(0.5, 0.5); got.R < 126 || got.R > 128 {
		t.Errorf("midpoint = %v, want mid gray", got)
	}
	if got := tex.At(0.25, 0.5); got != ColorBlack {
		t.Errorf("texel center = %v, want black", got)
	}

	tex.FilterMode = FilterNearest
	if got := tex.At(0.75, 0.5); got != ColorWhite {
		t.Errorf("nearest = %v, want white", got)
	}
}

func TestWrapPixel(t *testing.T) {
	tests := []struct {
		x, size int
		mode    WrapMode
		want    int
	}{
		{-1, 4, WrapRepeat, 3},
		{5, 4, WrapRepeat, 1},
		{-1, 4, WrapClamp, 0},
		{9, 4, WrapClamp, 3},
	}
	for _, tc := range tests {
		if got := wrapPixel(tc.x, tc.size, tc.mode); got != tc.want {
			t.Errorf("wrapPixel(%d, %d, %d) = %d, want %d", tc.x, tc.size, tc.mode, got, tc.want)
		}
	}
}

// checkerTexture builds a size x size checkerboard with cell-wide squares.
func checkerTexture(size, cell int, c1, c2 Color) *Texture {
	tex := NewTexture(size, size)
	for y := range size {
		for x := range size {
			c := c2
			if (x/cell+y/cell)%2 == 0 {
				c = c1
			}
			tex.Texels().Set(x, y, c)
		}
	}
	return tex
}

func TestParseSampling(t *testing.T) {
	filters := []struct {
		in   string
		want FilterMode
		ok   bool
	}{
		{"nearest", FilterNearest, true},
		{"bilinear", FilterBilinear, true},
		{"trilinear", 0, false},
		{"", 0, false},
	}
	for _, tc := range filters {
		got, err := ParseFilterMode(tc.in)
		if (err == nil) != tc.ok || got != tc.want {
			t.Errorf("ParseFilterMode(%q) = %v, %v", tc.in, got, err)
		}
	}

	wraps := []struct {
		in   string
		want WrapMode
		ok   bool
	}{
		{"repeat", WrapRepeat, true},
		{"clamp", WrapClamp, true},
		{"mirror", 0, false},
	}
	for _, tc := range wraps {
		got, err := ParseWrapMode(tc.in)
		if (err == nil) != tc.ok || got != tc.want {
			t.Errorf("ParseWrapMode(%q) = %v, %v", tc.in, got, err)
		}
	}
}

func TestMaterialSetSampling(t *testing.T) {
	mat := MaterialFromImages(cornerImage(), nil, cornerImage(), nil)
	mat.SetSampling(FilterBilinear, WrapClamp)

	for name, tex := range map[string]*Texture{"diffuse": mat.Diffuse, "specular": mat.Specular} {
		if tex.FilterMode != FilterBilinear || tex.WrapU != WrapClamp || tex.WrapV != WrapClamp {
			t.Errorf("%s sampling = %v/%v/%v", name, tex.FilterMode, tex.WrapU, tex.WrapV)
		}
	}
	if mat.Glow != nil {
		t.Error("SetSampling should not create missing maps")
	}

	// Clamped bilinear at the bottom-left corner stays on the corner texel.
	if got := mat.Diffuse.At(0, 0); got != ColorBlue {
		t.Errorf("clamped corner = %v, want blue", got)
	}
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()
	encoders := map[string]func(f *os.File, img image.Image) error{
		"corners.png": func(f *os.File, img image.Image) error { return png.Encode(f, img) },
		"corners.bmp": func(f *os.File, img image.Image) error { return bmp.Encode(f, img) },
	}
	for name, enc := range encoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := enc(f, cornerImage()); err != nil {
				t.Fatal(err)
			}
			f.Close()

			tex, err := LoadTexture(path)
			if err != nil {
				t.Fatalf("LoadTexture: %v", err)
			}
			if tex.Width() != 2 || tex.Height() != 2 {
				t.Fatalf("size = %dx%d", tex.Width(), tex.Height())
			}
			if got := tex.Texel(0, 0); got != ColorBlue {
				t.Errorf("bottom left = %v, want blue", got)
			}
		})
	}
}

func TestLoadTextureErrors(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "garbage.tga")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(path); err == nil {
		t.Error("expected error for a corrupt file")
	}
}

func BenchmarkTextureBilinear(b *testing.B) {
	tex := checkerTexture(64, 8, ColorWhite, ColorBlack)
	tex.FilterMode = FilterBilinear
	for b.Loop() {
		tex.At(0.37, 0.61)
	}
}
