// Package picking converts cursor positions to world-space rays and
// finds the mesh triangle they hit.
package picking

import (
	"github.com/resound-dev/resound/pkg/math"
)

// Ray is a world-space ray with a unit direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// Viewport holds the pixel dimensions of the render target.
type Viewport struct {
	Width  int
	Height int
}

// ScreenToRay converts a screen point (pixels, top-left origin) to a
// world-space ray by unprojecting it at the near and far planes through
// the inverse view-projection transform. Screen Y is flipped to the
// renderer's bottom-left-origin convention. The caller must not pass a
// degenerate viewport.
func ScreenToRay(screenX, screenY float32, vp Viewport, view, proj math.Mat4) Ray {
	ndcX := 2.0*screenX/float32(vp.Width) - 1.0
	ndcY := 1.0 - 2.0*screenY/float32(vp.Height) // flip Y

	invViewProj := proj.Mul(view).Inverse()

	near := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	far := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	return Ray{
		Origin:    near,
		Direction: far.Sub(near).Normalize(),
	}
}

func unproject(invViewProj math.Mat4, ndc math.Vec4) math.Vec3 {
	w := invViewProj.MulVec4(ndc)
	if w[3] != 0 {
		return math.Vec3{X: w[0] / w[3], Y: w[1] / w[3], Z: w[2] / w[3]}
	}
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
