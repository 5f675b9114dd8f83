package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Dot(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}
	got := a.Dot(b)
	want := float32(12)
	if got != want {
		t.Errorf("Vec3.Dot() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	got := (Vec3{}).Normalize()
	if got != (Vec3{}) {
		t.Errorf("zero vector normalized to %v, want zero", got)
	}
}

func TestVec3Distance(t *testing.T) {
	a := Vec3{1, 1, 1}
	b := Vec3{1, 1, 6}
	got := a.Distance(b)
	want := float32(5)
	if got != want {
		t.Errorf("Vec3.Distance() = %v, want %v", got, want)
	}
}

func TestRadians(t *testing.T) {
	got := Radians(180)
	if got < 3.14 || got > 3.15 {
		t.Errorf("Radians(180) = %v, want ~pi", got)
	}
}
