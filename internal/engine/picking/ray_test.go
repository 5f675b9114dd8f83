package picking

import (
	gomath "math"
	"testing"

	"github.com/resound-dev/resound/pkg/math"
)

func testTransforms() (view, proj math.Mat4, vp Viewport) {
	eye := math.Vec3{Y: -5}
	view = math.LookAt(eye, math.Vec3{}, math.Vec3{Z: 1})
	proj = math.Perspective(math.Radians(45), 800.0/600.0, 0.1, 50)
	vp = Viewport{Width: 800, Height: 600}
	return view, proj, vp
}

func TestScreenCenterRayPointsAtTarget(t *testing.T) {
	view, proj, vp := testTransforms()
	r := ScreenToRay(400, 300, vp, view, proj)

	// The center of the screen looks straight down the view axis: from
	// (0,-5,0) toward the origin, i.e. +Y.
	want := math.Vec3{Y: 1}
	if r.Direction.Distance(want) > 1e-3 {
		t.Errorf("center ray direction = %v, want %v", r.Direction, want)
	}
	if gomath.Abs(float64(r.Origin.Y+5)) > 0.2 {
		t.Errorf("ray origin = %v, want near the eye/near plane at y=-5", r.Origin)
	}
}

func TestScreenRayDirectionIsUnit(t *testing.T) {
	view, proj, vp := testTransforms()
	for _, p := range [][2]float32{{0, 0}, {799, 0}, {0, 599}, {799, 599}, {123, 456}} {
		r := ScreenToRay(p[0], p[1], vp, view, proj)
		l := r.Direction.Length()
		if l < 0.999 || l > 1.001 {
			t.Errorf("ray at (%v,%v) has direction length %v, want 1", p[0], p[1], l)
		}
	}
}

func TestScreenYFlip(t *testing.T) {
	view, proj, vp := testTransforms()

	// The top of the screen (small screen Y) must look upward (+Z in
	// world space given the camera's +Z up vector).
	top := ScreenToRay(400, 0, vp, view, proj)
	bottom := ScreenToRay(400, 599, vp, view, proj)

	if top.Direction.Z <= 0 {
		t.Errorf("top-of-screen ray Z = %v, want > 0", top.Direction.Z)
	}
	if bottom.Direction.Z >= 0 {
		t.Errorf("bottom-of-screen ray Z = %v, want < 0", bottom.Direction.Z)
	}
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1}, Direction: math.Vec3{Y: 1}}
	got := r.At(3)
	want := math.Vec3{X: 1, Y: 3}
	if got != want {
		t.Errorf("Ray.At(3) = %v, want %v", got, want)
	}
}
