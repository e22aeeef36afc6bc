package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	assert.Error(t, err)
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	require.NotNil(t, loader)
	assert.True(t, loader.CalculateNormals, "CalculateNormals should default to true")
	assert.True(t, loader.SmoothNormals, "SmoothNormals should default to true")
}

func TestReadFloat32(t *testing.T) {
	// 1.5 little-endian
	assert.Equal(t, float32(1.5), readFloat32([]byte{0x00, 0x00, 0xc0, 0x3f}))
}
