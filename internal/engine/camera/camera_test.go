package camera

import (
	gomath "math"
	"math/rand"
	"testing"

	"github.com/resound-dev/resound/pkg/math"
)

func TestApplyDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()

	c.ApplyDrag(0, 1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("pitch after huge up-drag = %v, want %v", c.Pitch, c.MaxPitch)
	}

	c.ApplyDrag(0, -1e6)
	if c.Pitch != c.MinPitch {
		t.Errorf("pitch after huge down-drag = %v, want %v", c.Pitch, c.MinPitch)
	}
}

func TestApplyZoomClampsDistance(t *testing.T) {
	c := NewOrbitCamera()

	c.ApplyZoom(1e6)
	if c.Distance != c.MinDistance {
		t.Errorf("distance after huge zoom-in = %v, want %v", c.Distance, c.MinDistance)
	}

	c.ApplyZoom(-1e6)
	if c.Distance != c.MaxDistance {
		t.Errorf("distance after huge zoom-out = %v, want %v", c.Distance, c.MaxDistance)
	}
}

func TestClampPoseReinsBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.Distance = c.MaxDistance + 5
	c.Pitch = c.MaxPitch + 30

	c.ClampPose()

	if c.Distance != c.MaxDistance {
		t.Errorf("distance after ClampPose = %v, want %v", c.Distance, c.MaxDistance)
	}
	if c.Pitch != c.MaxPitch {
		t.Errorf("pitch after ClampPose = %v, want %v", c.Pitch, c.MaxPitch)
	}

	c.Distance = c.MinDistance - 1
	c.Pitch = c.MinPitch - 1
	c.ClampPose()

	if c.Distance != c.MinDistance {
		t.Errorf("distance after ClampPose = %v, want %v", c.Distance, c.MinDistance)
	}
	if c.Pitch != c.MinPitch {
		t.Errorf("pitch after ClampPose = %v, want %v", c.Pitch, c.MinPitch)
	}
}

func TestRandomInputSequenceStaysInBounds(t *testing.T) {
	c := NewOrbitCamera()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 10000; i++ {
		c.ApplyDrag(float32(rng.NormFloat64()*200), float32(rng.NormFloat64()*200))
		c.ApplyZoom(float32(rng.NormFloat64() * 20))

		if c.Pitch < c.MinPitch || c.Pitch > c.MaxPitch {
			t.Fatalf("step %d: pitch %v outside [%v, %v]", i, c.Pitch, c.MinPitch, c.MaxPitch)
		}
		if c.Distance < c.MinDistance || c.Distance > c.MaxDistance {
			t.Fatalf("step %d: distance %v outside [%v, %v]", i, c.Distance, c.MinDistance, c.MaxDistance)
		}
	}
}

func TestSmoothedZoomStaysInBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.EnableSmoothing(60)

	c.ApplyZoom(1e6)
	for i := 0; i < 600; i++ {
		c.Update()
		if c.Distance < c.MinDistance || c.Distance > c.MaxDistance {
			t.Fatalf("tick %d: distance %v outside bounds", i, c.Distance)
		}
	}
	if gomath.Abs(float64(c.Distance-c.MinDistance)) > 0.01 {
		t.Errorf("smoothed distance settled at %v, want ~%v", c.Distance, c.MinDistance)
	}
}

func TestNormalizedHeadingWraps(t *testing.T) {
	c := NewOrbitCamera()
	c.Heading = 725
	if got := c.NormalizedHeading(); gomath.Abs(float64(got-5)) > 1e-4 {
		t.Errorf("NormalizedHeading() = %v, want 5", got)
	}
	c.Heading = -30
	if got := c.NormalizedHeading(); gomath.Abs(float64(got-330)) > 1e-3 {
		t.Errorf("NormalizedHeading() = %v, want 330", got)
	}
}

func TestPositionSphericalConvention(t *testing.T) {
	c := NewOrbitCamera()
	c.Distance = 2
	c.Heading = 0
	c.Pitch = 0

	// Heading 0, pitch 0 puts the camera on the -Y axis.
	pos := c.Position()
	want := math.Vec3{Y: -2}
	if pos.Distance(want) > 1e-5 {
		t.Errorf("Position() = %v, want %v", pos, want)
	}

	// Pitch 90 would be straight up; at the 85 degree clamp the camera is
	// almost overhead.
	c.Pitch = 85
	pos = c.Position()
	if pos.Z < 1.98 {
		t.Errorf("Position().Z = %v, want near 2 at pitch 85", pos.Z)
	}
}

func TestViewMatrixLooksAtOrigin(t *testing.T) {
	c := NewOrbitCamera()
	view := c.ViewMatrix()

	// The origin (look-at target) must land straight ahead on -Z at the
	// camera's distance.
	got := view.TransformPoint(math.Vec3{})
	if gomath.Abs(float64(got.X)) > 1e-4 || gomath.Abs(float64(got.Y)) > 1e-4 {
		t.Errorf("origin in eye space = %v, want on the -Z axis", got)
	}
	if gomath.Abs(float64(got.Z+c.Distance)) > 1e-4 {
		t.Errorf("origin eye-space depth = %v, want %v", got.Z, -c.Distance)
	}
}
