package mesh

import (
	"errors"
	gomath "math"

	"github.com/resound-dev/resound/pkg/math"
)

// ErrDegenerateVolume is returned when the signed volume of a mesh is
// numerically indistinguishable from zero, which means the mesh is open,
// degenerate, or self-cancelling and cannot be used for display scaling.
var ErrDegenerateVolume = errors.New("mesh volume is zero; mesh must be closed and consistently wound")

// volumeEpsilon below which the accumulated signed volume is treated as zero.
const volumeEpsilon = 1e-8

// Properties holds the volumetric mass properties of a closed mesh.
type Properties struct {
	Centroid math.Vec3
	Volume   float32
}

// Analyze computes the signed volume and volumetric centroid of the mesh
// by decomposing it into tetrahedra spanned by each triangle and the
// origin. Exact for a closed, consistently outward-wound mesh; an
// inconsistently wound mesh silently corrupts the result, with only the
// near-zero check as a safety net.
func Analyze(m *Mesh) (Properties, error) {
	var totalVolume float64
	var cx, cy, cz float64

	for i := 0; i < m.TriangleCount(); i++ {
		v0, v1, v2 := m.Triangle(i)

		tetraVolume := float64(v0.Dot(v1.Cross(v2))) / 6.0
		totalVolume += tetraVolume

		// Tetrahedron centroid: (v0+v1+v2+origin)/4.
		cx += float64(v0.X+v1.X+v2.X) / 4.0 * tetraVolume
		cy += float64(v0.Y+v1.Y+v2.Y) / 4.0 * tetraVolume
		cz += float64(v0.Z+v1.Z+v2.Z) / 4.0 * tetraVolume
	}

	if gomath.Abs(totalVolume) < volumeEpsilon {
		return Properties{}, ErrDegenerateVolume
	}

	return Properties{
		Centroid: math.Vec3{
			X: float32(cx / totalVolume),
			Y: float32(cy / totalVolume),
			Z: float32(cz / totalVolume),
		},
		Volume: float32(totalVolume),
	}, nil
}

// DisplayScale returns the uniform scale factor that places the mesh at
// a comfortable size in the default view frustum.
func (p Properties) DisplayScale() float32 {
	ratio := p.Volume / 1000 / 7500
	return 1 / ratio
}
