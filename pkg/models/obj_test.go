package models

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/taigrr/scanline/pkg/math3d"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl ignored
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuad(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(quadOBJ), "quad")
	require.NoError(t, err)

	require.Equal(t, 1, mesh.FaceCount())
	assert.Equal(t, 2, mesh.TriangleCount())
	assert.Equal(t, 4, mesh.VertexCount())
	assert.Len(t, mesh.GetFace(0), 4)
	assert.Equal(t, -1, mesh.GetFaceMaterial(0))

	pos, n, uv := mesh.GetVertex(mesh.GetFace(0)[2])
	assert.Equal(t, math3d.V3(1, 1, 0), pos)
	assert.Equal(t, math3d.V3(0, 0, 1), n)
	assert.Equal(t, math3d.V2(1, 1), uv)

	lo, hi := mesh.GetBounds()
	assert.Equal(t, math3d.V3(0, 0, 0), lo)
	assert.Equal(t, math3d.V3(1, 1, 0), hi)
}

func TestParseOBJFaceForms(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1 2 3
f 1/1 2/1 3/1
f 1//1 2//1 3//1
f -3/-1/-1 -2/-1/-1 -1/-1/-1
`
	mesh, err := ParseOBJ(strings.NewReader(src), "forms")
	require.NoError(t, err)
	require.Equal(t, 4, mesh.FaceCount())

	// the relative form resolves to the same corners as the last absolute one
	abs := mesh.GetFace(1)
	rel := mesh.GetFace(3)
	for i := range 3 {
		p1, _, _ := mesh.GetVertex(abs[i])
		p2, _, _ := mesh.GetVertex(rel[i])
		assert.Equal(t, p1, p2)
	}
	// the a//c and a/b/c corners sharing a normal are distinct from plain a
	assert.NotEqual(t, mesh.GetFace(0)[0], mesh.GetFace(2)[0])
}

func TestParseOBJVertexColor(t *testing.T) {
	src := "v 0 0 0 1 0 0\nv 1 0 0\nv 0 1 0 0 0 1\nf 1 2 3\n"
	mesh, err := ParseOBJ(strings.NewReader(src), "colored")
	require.NoError(t, err)

	c, ok := mesh.GetVertexColor(mesh.GetFace(0)[0])
	assert.True(t, ok)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, c)

	_, ok = mesh.GetVertexColor(mesh.GetFace(0)[1])
	assert.False(t, ok)
}

func TestParseOBJComputesNormals(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	mesh, err := ParseOBJ(strings.NewReader(src), "tri")
	require.NoError(t, err)
	for i := range mesh.VertexCount() {
		_, n, _ := mesh.GetVertex(i)
		assert.True(t, n.ApproxEqual(math3d.V3(0, 0, 1), 1e-9), "normal %d = %v", i, n)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line string
	}{
		{"bad float", "v 0 0 0\nv 1 x 0\n", "line 2"},
		{"short vertex", "v 0 0\n", "line 1"},
		{"index zero", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", "line 4"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", "line 4"},
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n", "line 3"},
		{"missing position", "v 0 0 0\nvt 0 0\nf /1 /1 /1\n", "line 3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tc.src), tc.name)
			require.ErrorIs(t, err, ErrMalformedOBJ)
			assert.Contains(t, err.Error(), tc.line)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load("model.stl")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

// writeTGA writes an uncompressed 24-bit 2x2 TGA filled with c.
func writeTGA(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	data := []byte{
		0, 0, 2, // no id, no color map, true color
		0, 0, 0, 0, 0, // color map spec
		0, 0, 0, 0, // origin
		2, 0, 2, 0, // width, height
		24, 0, // bits per pixel, descriptor
	}
	for range 4 {
		data = append(data, c.B, c.G, c.R)
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestLoadImageFormats(t *testing.T) {
	dir := t.TempDir()

	tgaPath := filepath.Join(dir, "red.tga")
	writeTGA(t, tgaPath, color.NRGBA{255, 0, 0, 255})
	img, err := LoadImage(tgaPath)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0}, []uint32{r, g, b})

	bmpPath := filepath.Join(dir, "blue.bmp")
	f, err := os.Create(bmpPath)
	require.NoError(t, err)
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src.SetNRGBA(2, 0, color.NRGBA{0, 0, 255, 255})
	require.NoError(t, bmp.Encode(f, src))
	require.NoError(t, f.Close())

	img, err = LoadImage(bmpPath)
	require.NoError(t, err)
	_, _, b, _ = img.At(2, 0).RGBA()
	assert.Equal(t, uint32(0xffff), b)
}

func TestLoadOBJSiblingTextures(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "head.obj")
	require.NoError(t, os.WriteFile(objPath, []byte(quadOBJ), 0o644))

	writeTGA(t, filepath.Join(dir, "head_diffuse.tga"), color.NRGBA{200, 10, 10, 255})
	writeTGA(t, filepath.Join(dir, "head_nm.tga"), color.NRGBA{128, 128, 255, 255})

	mesh, err := LoadOBJ(objPath)
	require.NoError(t, err)

	mat := mesh.PrimaryMaterial()
	require.NotNil(t, mat)
	assert.NotNil(t, mat.BaseMap)
	assert.NotNil(t, mat.NormalMap)
	assert.Nil(t, mat.SpecularMap)
	assert.Nil(t, mat.GlowMap)
	assert.Equal(t, 0, mesh.GetFaceMaterial(0))
}

func TestLoadOBJWithoutTextures(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "plain.obj")
	require.NoError(t, os.WriteFile(objPath, []byte(quadOBJ), 0o644))

	mesh, err := Load(objPath)
	require.NoError(t, err)
	assert.Zero(t, mesh.MaterialCount())
	assert.Equal(t, -1, mesh.GetFaceMaterial(0))
}

func TestSiblingMaterialBadImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "m_spec.tga"), []byte("not an image"), 0o644))
	_, err := SiblingMaterial(filepath.Join(dir, "m.obj"))
	assert.Error(t, err)
}
