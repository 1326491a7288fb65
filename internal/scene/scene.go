// Package scene is a small software-projected 3D scene: one
// perspective camera, a set of mesh nodes, and a painter that draws
// them onto the ebiten frame. It also owns the viewport compensation
// that keeps the camera target centred in the part of the window not
// covered by UI panels.
package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Node is a renderable object in the scene. A node whose Mesh is still
// nil (asset not decoded yet) occupies the scene but draws nothing.
type Node struct {
	Name     string
	Mesh     *Mesh
	Color    color.RGBA
	Position mgl64.Vec3
	Preview  bool
}

// Scene holds the cameras and nodes plus the immutable original camera
// pose used as the reference for viewport compensation.
type Scene struct {
	Target mgl64.Vec3

	cameras      []*Camera
	nodes        []*Node
	originalPose Pose
	hasOriginal  bool
}

// New creates an empty scene whose camera target is the world origin.
func New() *Scene {
	return &Scene{}
}

// AddCamera adds a camera. The first active camera's pose is captured
// as the original pose for compensation; it never changes afterwards.
func (s *Scene) AddCamera(c *Camera) {
	s.cameras = append(s.cameras, c)
	if c.Active && !s.hasOriginal {
		s.originalPose = c.Pose()
		s.hasOriginal = true
	}
}

// OriginalPose returns the camera pose captured at startup.
func (s *Scene) OriginalPose() Pose { return s.originalPose }

// AddNode inserts a node into the scene.
func (s *Scene) AddNode(n *Node) {
	s.nodes = append(s.nodes, n)
}

// Nodes returns the live nodes in insertion order.
func (s *Scene) Nodes() []*Node { return s.nodes }

// RemovePreviewNodes destroys every node tagged as a preview object
// and returns how many were removed.
func (s *Scene) RemovePreviewNodes() int {
	kept := s.nodes[:0]
	removed := 0
	for _, n := range s.nodes {
		if n.Preview {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	s.nodes = kept
	return removed
}

// PreviewCount returns the number of live preview nodes.
func (s *Scene) PreviewCount() int {
	count := 0
	for _, n := range s.nodes {
		if n.Preview {
			count++
		}
	}
	return count
}

// activeCamera returns the single active camera, enforcing the
// one-perspective-camera invariant.
func (s *Scene) activeCamera() (*Camera, error) {
	var active *Camera
	for _, c := range s.cameras {
		if !c.Active {
			continue
		}
		if active != nil {
			return nil, ErrMultipleCameras
		}
		active = c
	}
	if active == nil {
		return nil, ErrNoCamera
	}
	if active.Projection != Perspective {
		return nil, ErrNotPerspective
	}
	return active, nil
}
