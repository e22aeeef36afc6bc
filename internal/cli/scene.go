package cli

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// faceSubset exposes the faces of a mesh that share one material.
type faceSubset struct {
	*models.Mesh
	faces []int
}

func (s faceSubset) FaceCount() int      { return len(s.faces) }
func (s faceSubset) GetFace(i int) []int { return s.Mesh.GetFace(s.faces[i]) }

// loadModels reads every model of the scene and applies the scene's
// texture sampling to their materials.
func loadModels(scene *config.Scene) ([]*render.Model, error) {
	filter, wrap, err := scene.Sampling()
	if err != nil {
		return nil, err
	}
	var out []*render.Model
	for _, m := range scene.Models {
		loaded, err := loadModel(m)
		if err != nil {
			return nil, err
		}
		for _, l := range loaded {
			l.Material.SetSampling(filter, wrap)
		}
		out = append(out, loaded...)
	}
	return out, nil
}

// loadModel reads one mesh, fits it to the configured size and builds a
// render model per material it uses.
func loadModel(m config.Model) ([]*render.Model, error) {
	mesh, err := models.Load(m.Path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	mesh.Fit(m.Size)
	placement := m.Placement()
	name := filepath.Base(m.Path)

	slog.Info("model loaded",
		slog.String("model", name),
		slog.Int("vertices", mesh.VertexCount()),
		slog.Int("faces", mesh.FaceCount()),
		slog.Int("materials", mesh.MaterialCount()),
	)

	if mesh.MaterialCount() <= 1 {
		mat, err := material(mesh.PrimaryMaterial(), m)
		if err != nil {
			return nil, err
		}
		model := render.NewModel(name, mesh, mat)
		model.Transform = placement
		return []*render.Model{model}, nil
	}

	groups := make(map[int][]int)
	for i := range mesh.FaceCount() {
		idx := mesh.GetFaceMaterial(i)
		groups[idx] = append(groups[idx], i)
	}
	var out []*render.Model
	for idx := -1; idx < mesh.MaterialCount(); idx++ {
		faces, ok := groups[idx]
		if !ok {
			continue
		}
		mat, err := material(mesh.GetMaterial(idx), m)
		if err != nil {
			return nil, err
		}
		model := render.NewModel(fmt.Sprintf("%s#%d", name, idx), faceSubset{mesh, faces}, mat)
		model.Transform = placement
		out = append(out, model)
	}
	return out, nil
}

// material converts a loaded material, replacing maps the scene names
// explicitly. src may be nil.
func material(src *models.Material, m config.Model) (*render.Material, error) {
	var maps models.Material
	base := [4]float64{1, 1, 1, 1}
	if src != nil {
		maps = *src
		base = src.BaseColor
	}

	overrides := []struct {
		path string
		dst  *image.Image
	}{
		{m.Diffuse, &maps.BaseMap},
		{m.Normal, &maps.NormalMap},
		{m.Specular, &maps.SpecularMap},
		{m.Glow, &maps.GlowMap},
	}
	for _, o := range overrides {
		if o.path == "" {
			continue
		}
		img, err := models.LoadImage(o.path)
		if err != nil {
			return nil, fmt.Errorf("load texture: %w", err)
		}
		*o.dst = img
	}

	mat := render.MaterialFromImages(maps.BaseMap, maps.NormalMap, maps.SpecularMap, maps.GlowMap)
	mat.Base = render.RGBA(unit(base[0]), unit(base[1]), unit(base[2]), unit(base[3]))
	return mat, nil
}

func unit(f float64) uint8 {
	return uint8(max(0, min(1, f))*255 + 0.5)
}
