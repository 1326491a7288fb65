package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScene(eye mgl64.Vec3, fov float64) (*Scene, *Camera) {
	s := New()
	cam := NewLookAtCamera(eye, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, fov)
	s.AddCamera(cam)
	return s, cam
}

func assertVec3InDelta(t *testing.T, expected, actual mgl64.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d", i)
	}
}

func TestCompensateNoOcclusionKeepsOriginalPosition(t *testing.T) {
	eye := mgl64.Vec3{-2, 2.5, 5}
	s, cam := testScene(eye, math.Pi/4)

	require.NoError(t, s.CompensateCamera(Insets{}, 800, 600))
	assertVec3InDelta(t, eye, cam.Position, 1e-12)
}

func TestCompensateIsIdempotent(t *testing.T) {
	s, cam := testScene(mgl64.Vec3{-2, 2.5, 5}, math.Pi/4)
	insets := Insets{Left: 120, Top: 40, Right: 250, Bottom: 60}

	require.NoError(t, s.CompensateCamera(insets, 800, 600))
	first := cam.Position
	require.NoError(t, s.CompensateCamera(insets, 800, 600))
	assert.Equal(t, first, cam.Position)
}

func TestCompensateOffsets(t *testing.T) {
	// Camera on the +Z axis looking at the origin: local axes align
	// with world axes, so offsets are hand-checkable. tan(fov/2)=0.5
	// and distance 5 give a frustum height of 5 at the target.
	fov := 2 * math.Atan(0.5)

	testCases := []struct {
		name     string
		insets   Insets
		expected mgl64.Vec3
	}{
		{
			name:     "right panel pushes camera right",
			insets:   Insets{Right: 100},
			expected: mgl64.Vec3{100.0 / 400 * (5 * 4.0 / 3) / 2, 0, 5},
		},
		{
			name:     "left panel pushes camera left",
			insets:   Insets{Left: 100},
			expected: mgl64.Vec3{-100.0 / 400 * (5 * 4.0 / 3) / 2, 0, 5},
		},
		{
			name:     "top panel pushes camera up",
			insets:   Insets{Top: 150},
			expected: mgl64.Vec3{0, 150.0 / 300 * 5.0 / 2, 5},
		},
		{
			name:     "symmetric occlusion cancels",
			insets:   Insets{Left: 80, Right: 80, Top: 50, Bottom: 50},
			expected: mgl64.Vec3{0, 0, 5},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, cam := testScene(mgl64.Vec3{0, 0, 5}, fov)
			require.NoError(t, s.CompensateCamera(tc.insets, 400, 300))
			assertVec3InDelta(t, tc.expected, cam.Position, 1e-9)
		})
	}
}

func TestCompensateNeverRotates(t *testing.T) {
	s, cam := testScene(mgl64.Vec3{-2, 2.5, 5}, math.Pi/4)
	before := cam.Rotation
	require.NoError(t, s.CompensateCamera(Insets{Left: 300, Bottom: 200}, 800, 600))
	assert.Equal(t, before, cam.Rotation)
}

func TestCompensateCameraInvariants(t *testing.T) {
	t.Run("no camera", func(t *testing.T) {
		s := New()
		assert.ErrorIs(t, s.CompensateCamera(Insets{}, 800, 600), ErrNoCamera)
	})

	t.Run("multiple active cameras", func(t *testing.T) {
		s, _ := testScene(mgl64.Vec3{0, 0, 5}, math.Pi/4)
		s.AddCamera(NewLookAtCamera(mgl64.Vec3{0, 0, -5}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, math.Pi/4))
		assert.ErrorIs(t, s.CompensateCamera(Insets{}, 800, 600), ErrMultipleCameras)
	})

	t.Run("inactive extras are fine", func(t *testing.T) {
		s, _ := testScene(mgl64.Vec3{0, 0, 5}, math.Pi/4)
		extra := NewLookAtCamera(mgl64.Vec3{0, 0, -5}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, math.Pi/4)
		extra.Active = false
		s.AddCamera(extra)
		assert.NoError(t, s.CompensateCamera(Insets{}, 800, 600))
	})

	t.Run("orthographic", func(t *testing.T) {
		s, cam := testScene(mgl64.Vec3{0, 0, 5}, math.Pi/4)
		cam.Projection = Orthographic
		assert.ErrorIs(t, s.CompensateCamera(Insets{}, 800, 600), ErrNotPerspective)
	})
}

func TestCompensateSkipsDegenerateWindow(t *testing.T) {
	s, cam := testScene(mgl64.Vec3{0, 0, 5}, math.Pi/4)
	before := cam.Position
	require.NoError(t, s.CompensateCamera(Insets{Left: 100}, 0, 0))
	assert.Equal(t, before, cam.Position)
}

func TestLookAtRotationCanonical(t *testing.T) {
	// Looking down -Z with +Y up is the identity orientation.
	q := lookAtRotation(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	rotated := q.Rotate(mgl64.Vec3{1, 2, 0})
	assertVec3InDelta(t, mgl64.Vec3{1, 2, 0}, rotated, 1e-12)
}
