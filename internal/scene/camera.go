package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Projection is the camera projection kind. The viewer only ever uses
// a perspective camera; the kind exists so the invariant can be
// checked instead of assumed.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Pose is a position plus orientation. Rotation maps camera-local axes
// (+X right, +Y up, -Z forward) into world space.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Camera is a scene camera.
type Camera struct {
	Position   mgl64.Vec3
	Rotation   mgl64.Quat
	FOV        float64 // vertical field of view, radians
	Projection Projection
	Active     bool
}

// NewLookAtCamera creates an active perspective camera at eye oriented
// toward target.
func NewLookAtCamera(eye, target, up mgl64.Vec3, fov float64) *Camera {
	return &Camera{
		Position:   eye,
		Rotation:   lookAtRotation(eye, target, up),
		FOV:        fov,
		Projection: Perspective,
		Active:     true,
	}
}

// Pose returns the camera's current pose.
func (c *Camera) Pose() Pose {
	return Pose{Position: c.Position, Rotation: c.Rotation}
}

// lookAtRotation builds the world orientation of a camera at eye
// looking at target: column basis (right, up, backward).
func lookAtRotation(eye, target, up mgl64.Vec3) mgl64.Quat {
	forward := target.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward)
	m := mgl64.Mat4FromCols(
		right.Vec4(0),
		trueUp.Vec4(0),
		forward.Mul(-1).Vec4(0),
		mgl64.Vec4{0, 0, 0, 1},
	)
	return mgl64.Mat4ToQuat(m)
}

// cameraSpace transforms a world point into camera space.
func (c *Camera) cameraSpace(p mgl64.Vec3) mgl64.Vec3 {
	return c.Rotation.Inverse().Rotate(p.Sub(c.Position))
}

// focalLength is the perspective projection scale for a viewport of
// the given pixel height.
func (c *Camera) focalLength(height float64) float64 {
	return (height / 2) / math.Tan(c.FOV/2)
}
