package math

import (
	gomath "math"
	"testing"
)

func approxEqual(a, b, eps float32) bool {
	return float32(gomath.Abs(float64(a-b))) <= eps
}

func TestIdentityMul(t *testing.T) {
	m := Translate(1, 2, 3)
	got := Identity().Mul(m)
	if got != m {
		t.Errorf("Identity().Mul(m) = %v, want %v", got, m)
	}
}

func TestTranslatePoint(t *testing.T) {
	m := Translate(1, 2, 3)
	got := m.TransformPoint(Vec3{1, 1, 1})
	want := Vec3{2, 3, 4}
	if got != want {
		t.Errorf("TransformPoint() = %v, want %v", got, want)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Translate(3, -2, 5).Mul(RotateX(0.7)).Mul(Scale(2, 2, 2))
	inv := m.Inverse()
	p := Vec3{1.5, -4, 2}

	back := inv.TransformPoint(m.TransformPoint(p))
	if !approxEqual(back.X, p.X, 1e-4) || !approxEqual(back.Y, p.Y, 1e-4) || !approxEqual(back.Z, p.Z, 1e-4) {
		t.Errorf("Inverse round trip = %v, want %v", back, p)
	}
}

func TestLookAtEyeMapsToOrigin(t *testing.T) {
	eye := Vec3{0, -5, 0}
	view := LookAt(eye, Vec3{}, Vec3{0, 0, 1})
	got := view.TransformPoint(eye)
	if !approxEqual(got.X, 0, 1e-5) || !approxEqual(got.Y, 0, 1e-5) || !approxEqual(got.Z, 0, 1e-5) {
		t.Errorf("view * eye = %v, want origin", got)
	}
}

func TestLookAtCenterOnNegativeZ(t *testing.T) {
	eye := Vec3{0, -5, 0}
	view := LookAt(eye, Vec3{}, Vec3{0, 0, 1})
	got := view.TransformPoint(Vec3{})
	// The look-at target sits straight ahead, -Z in eye space.
	if !approxEqual(got.X, 0, 1e-5) || !approxEqual(got.Y, 0, 1e-5) || !approxEqual(got.Z, -5, 1e-4) {
		t.Errorf("view * center = %v, want (0,0,-5)", got)
	}
}

func TestPerspectiveMapsNearPlane(t *testing.T) {
	proj := Perspective(Radians(45), 4.0/3.0, 0.1, 50)
	// A point on the near plane straight ahead maps to NDC z = -1.
	v := proj.MulVec4(Vec4{0, 0, -0.1, 1})
	ndcZ := v[2] / v[3]
	if !approxEqual(ndcZ, -1, 1e-4) {
		t.Errorf("near-plane NDC z = %v, want -1", ndcZ)
	}
}
