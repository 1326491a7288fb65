package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestNewMeshDropsDegenerateFaces(t *testing.T) {
	m := NewMesh(
		[]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[][]int{{0, 1}, {0, 1, 2}, {}},
	)
	assert.Len(t, m.Faces, 1)
}

func TestCenter(t *testing.T) {
	m := NewMesh(
		[]mgl64.Vec3{{0, 0, 0}, {2, 4, 6}},
		[][]int{},
	)
	m.Center()
	assert.Equal(t, mgl64.Vec3{-1, -2, -3}, m.Verts[0])
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, m.Verts[1])
}

func TestScaleTo(t *testing.T) {
	m := NewMesh(
		[]mgl64.Vec3{{-1, 0, 0}, {3, 0, 0}, {0, 1, 0}},
		[][]int{{0, 1, 2}},
	)
	assert.InDelta(t, 4.0, m.MaxExtent(), 1e-12)

	m.ScaleTo(2)
	assert.InDelta(t, 2.0, m.MaxExtent(), 1e-12)
	assert.InDelta(t, -0.5, m.Verts[0].X(), 1e-12)

	// Degenerate meshes are left alone.
	empty := NewMesh(nil, nil)
	empty.ScaleTo(2)
	assert.Empty(t, empty.Verts)
}
