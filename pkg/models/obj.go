package models

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
)

var (
	// ErrUnsupportedFormat is returned by Load for unknown file extensions.
	ErrUnsupportedFormat = errors.New("models: unsupported model format")
	// ErrMalformedOBJ is wrapped with the offending line number.
	ErrMalformedOBJ = errors.New("models: malformed obj")
)

// Load reads an OBJ, GLB or glTF file, chosen by extension.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadOBJ reads a Wavefront OBJ file. Texture maps named after the file
// (<name>_diffuse.tga, <name>_nm_tangent.tga or <name>_nm.tga,
// <name>_spec.tga, <name>_glow.tga) are attached as the mesh material
// when present.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	mat, err := SiblingMaterial(path)
	if err != nil {
		return nil, err
	}
	if mat.HasTexture() {
		mesh.Materials = append(mesh.Materials, mat)
		for i := range mesh.Faces {
			mesh.Faces[i].Material = 0
		}
	}
	return mesh, nil
}

// objReader accumulates the OBJ attribute pools and deduplicates the
// position/uv/normal triples faces refer to.
type objReader struct {
	mesh      *Mesh
	positions []math3d.Vec3
	colors    []color.NRGBA
	hasColor  []bool
	uvs       []math3d.Vec2
	normals   []math3d.Vec3
	seen      map[[3]int]int
}

// ParseOBJ reads OBJ geometry from r. Faces with more than three
// vertices are kept as polygons. Statements other than v, vt, vn and f
// are ignored. A v statement may carry an RGB vertex color after the
// position.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	p := &objReader{mesh: NewMesh(name), seen: make(map[[3]int]int)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := p.statement(fields[0], fields[1:]); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedOBJ, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if !p.mesh.hasNormals() {
		p.mesh.CalculateSmoothNormals()
	}
	p.mesh.CalculateBounds()
	return p.mesh, nil
}

func (p *objReader) statement(kw string, args []string) error {
	switch kw {
	case "v":
		vals, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, math3d.V3(vals[0], vals[1], vals[2]))
		var c color.NRGBA
		hasColor := len(vals) >= 6
		if hasColor {
			c = color.NRGBA{R: unitToByte(vals[3]), G: unitToByte(vals[4]), B: unitToByte(vals[5]), A: 255}
		}
		p.colors = append(p.colors, c)
		p.hasColor = append(p.hasColor, hasColor)
	case "vt":
		vals, err := parseFloats(args, 2)
		if err != nil {
			return err
		}
		p.uvs = append(p.uvs, math3d.V2(vals[0], vals[1]))
	case "vn":
		vals, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, math3d.V3(vals[0], vals[1], vals[2]))
	case "f":
		if len(args) < 3 {
			return fmt.Errorf("face needs at least 3 vertices, got %d", len(args))
		}
		face := Face{V: make([]int, 0, len(args)), Material: -1}
		for _, a := range args {
			idx, err := p.vertex(a)
			if err != nil {
				return err
			}
			face.V = append(face.V, idx)
		}
		p.mesh.Faces = append(p.mesh.Faces, face)
	}
	return nil
}

// vertex resolves one face corner (a, a/b, a//c or a/b/c) to a mesh
// vertex index.
func (p *objReader) vertex(ref string) (int, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return 0, fmt.Errorf("bad face vertex %q", ref)
	}
	key := [3]int{-1, -1, -1}
	pools := [3]int{len(p.positions), len(p.uvs), len(p.normals)}
	for i, s := range parts {
		if s == "" {
			if i == 0 {
				return 0, fmt.Errorf("bad face vertex %q", ref)
			}
			continue
		}
		idx, err := resolveIndex(s, pools[i])
		if err != nil {
			return 0, fmt.Errorf("face vertex %q: %w", ref, err)
		}
		key[i] = idx
	}

	if idx, ok := p.seen[key]; ok {
		return idx, nil
	}
	v := MeshVertex{
		Position: p.positions[key[0]],
		Color:    p.colors[key[0]],
		HasColor: p.hasColor[key[0]],
	}
	if key[1] >= 0 {
		v.UV = p.uvs[key[1]]
	}
	if key[2] >= 0 {
		v.Normal = p.normals[key[2]]
	}
	idx := len(p.mesh.Vertices)
	p.mesh.Vertices = append(p.mesh.Vertices, v)
	p.seen[key] = idx
	return idx, nil
}

// resolveIndex turns a 1-based or negative (relative) OBJ index into a
// 0-based one.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, fmt.Errorf("index %d out of range [1, %d]", i, n)
	}
}

func parseFloats(args []string, want int) ([]float64, error) {
	if len(args) < want {
		return nil, fmt.Errorf("expected %d values, got %d", want, len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func unitToByte(f float64) uint8 {
	return uint8(max(0, min(1, f))*255 + 0.5)
}

// SiblingMaterial looks for texture maps named after the model file.
// Missing files are skipped; files that exist but fail to decode are
// errors.
func SiblingMaterial(modelPath string) (Material, error) {
	base := strings.TrimSuffix(modelPath, filepath.Ext(modelPath))
	mat := Material{Name: filepath.Base(base), BaseColor: [4]float64{1, 1, 1, 1}, Roughness: 1}

	slots := []struct {
		dst      *image.Image
		suffixes []string
	}{
		{&mat.BaseMap, []string{"_diffuse.tga"}},
		{&mat.NormalMap, []string{"_nm_tangent.tga", "_nm.tga"}},
		{&mat.SpecularMap, []string{"_spec.tga"}},
		{&mat.GlowMap, []string{"_glow.tga"}},
	}
	for _, s := range slots {
		for _, suffix := range s.suffixes {
			img, err := LoadImage(base + suffix)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return Material{}, err
			}
			*s.dst = img
			break
		}
	}
	return mat, nil
}
