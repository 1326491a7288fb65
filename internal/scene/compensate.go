package scene

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera invariant violations. These are returned, not fatal, so the
// app can log and skip a frame and tests can assert on them.
var (
	ErrNoCamera        = errors.New("scene: no active camera")
	ErrMultipleCameras = errors.New("scene: more than one active camera")
	ErrNotPerspective  = errors.New("scene: active camera is not perspective")
)

// Insets are the pixel extents consumed by docked UI panels on each
// edge of the window, recomputed fully every frame.
type Insets struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// CompensateCamera recomputes the active camera's position so that the
// scene target stays visually centred in the part of the window the
// panels leave uncovered. The frustum's extent at the target's depth
// is held constant, and the camera is nudged along its original local
// right/up axes by half the fractional occupancy of each edge; the
// orientation never changes. Runs every frame; it is idempotent for
// identical inputs.
func (s *Scene) CompensateCamera(insets Insets, width, height float64) error {
	cam, err := s.activeCamera()
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return nil // minimized window, nothing to do
	}

	distance := s.Target.Sub(s.originalPose.Position).Len()
	frustumHeight := 2 * distance * math.Tan(cam.FOV/2)
	frustumWidth := frustumHeight * (width / height)

	leftFrac := insets.Left / width
	rightFrac := insets.Right / width
	topFrac := insets.Top / height
	bottomFrac := insets.Bottom / height

	offset := mgl64.Vec3{
		(rightFrac - leftFrac) * frustumWidth / 2,
		(topFrac - bottomFrac) * frustumHeight / 2,
		0,
	}
	cam.Position = s.originalPose.Position.Add(s.originalPose.Rotation.Rotate(offset))
	return nil
}
