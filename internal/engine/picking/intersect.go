package picking

import (
	gomath "math"

	"github.com/resound-dev/resound/internal/engine/mesh"
	"github.com/resound-dev/resound/pkg/math"
)

// rayEpsilon guards both the parallel-ray determinant test and the
// minimum hit distance, so a pick never reports the triangle the ray
// origin sits on.
const rayEpsilon = 1e-6

// Intersect scans every triangle and returns the index of the nearest
// one the ray hits, or ok=false when nothing is hit. Ties at identical t
// go to the first triangle in storage order. The scan is O(triangles),
// which is fine for human-triggered picks; the bounding-box early-out
// below only skips work, it can never change the reported hit.
func Intersect(r Ray, m *mesh.Mesh) (nearest int, ok bool) {
	if !hitsBounds(r, m.Bounds()) {
		return 0, false
	}

	closestT := float32(gomath.MaxFloat32)
	nearest = -1

	for i := 0; i < m.TriangleCount(); i++ {
		v0, v1, v2 := m.Triangle(i)
		if t, hit := intersectTriangle(r, v0, v1, v2); hit && t < closestT {
			closestT = t
			nearest = i
		}
	}

	if nearest < 0 {
		return 0, false
	}
	return nearest, true
}

// intersectTriangle runs the Möller–Trumbore test, returning the ray
// parameter of the hit.
func intersectTriangle(r Ray, v0, v1, v2 math.Vec3) (t float32, hit bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -rayEpsilon && a < rayEpsilon {
		return 0, false // ray parallel to the triangle plane
	}

	f := 1.0 / a
	s := r.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = f * edge2.Dot(q)
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}

// hitsBounds is a slab test against the mesh bounding box. Rays starting
// inside the box count as hits.
func hitsBounds(r Ray, b mesh.Bounds) bool {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	orig := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] != 0 {
			t1 := (lo[axis] - orig[axis]) / dir[axis]
			t2 := (hi[axis] - orig[axis]) / dir[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if orig[axis] < lo[axis] || orig[axis] > hi[axis] {
			return false
		}
	}

	return tmax >= tmin && tmax >= 0
}
