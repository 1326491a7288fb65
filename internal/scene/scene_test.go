package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestRemovePreviewNodes(t *testing.T) {
	s := New()
	s.AddNode(&Node{Name: "grid"})
	s.AddNode(&Node{Name: "Cube", Preview: true})
	s.AddNode(&Node{Name: "Lamp", Preview: true})

	assert.Equal(t, 2, s.PreviewCount())
	assert.Equal(t, 2, s.RemovePreviewNodes())
	assert.Equal(t, 0, s.PreviewCount())

	// Non-preview nodes survive.
	assert.Len(t, s.Nodes(), 1)
	assert.Equal(t, "grid", s.Nodes()[0].Name)

	assert.Equal(t, 0, s.RemovePreviewNodes())
}

func TestOriginalPoseCapturedOnce(t *testing.T) {
	s := New()
	first := NewLookAtCamera(mgl64.Vec3{-2, 2.5, 5}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, 0.8)
	s.AddCamera(first)
	pose := s.OriginalPose()
	assert.Equal(t, first.Position, pose.Position)

	// Moving the camera later must not move the reference pose.
	first.Position = mgl64.Vec3{9, 9, 9}
	assert.Equal(t, mgl64.Vec3{-2, 2.5, 5}, s.OriginalPose().Position)
}
