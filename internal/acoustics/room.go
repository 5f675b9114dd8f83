// Package acoustics collects picked surfaces for room acoustics
// simulation. The solver itself is not implemented yet; the package
// exists so surface selection in the viewer accumulates the geometry a
// future impulse-response pass will consume.
package acoustics

import (
	"errors"
	"sync"

	"github.com/resound-dev/resound/internal/engine/mesh"
)

const (
	// SampleRate is the output rate for simulated impulse responses.
	SampleRate = 44100
	// SpeedOfSound is in meters per second at room temperature.
	SpeedOfSound = 343.0
)

// ErrNotImplemented is returned by Simulate until the solver lands.
var ErrNotImplemented = errors.New("acoustics: simulation not implemented")

// Surface is a coplanar wall, floor, or ceiling region selected in the
// viewer. Triangles index into the mesh the surface was picked from.
type Surface struct {
	Triangles []int
	Area      float32
}

// Room accumulates selected surfaces. Safe for concurrent use.
type Room struct {
	mu       sync.Mutex
	surfaces []Surface
}

// NewRoom returns an empty room.
func NewRoom() *Room {
	return &Room{}
}

// AddSurface registers a picked region as a room surface and returns
// it with its area computed.
func (r *Room) AddSurface(m *mesh.Mesh, triangles []int) Surface {
	s := Surface{
		Triangles: append([]int(nil), triangles...),
		Area:      regionArea(m, triangles),
	}
	r.mu.Lock()
	r.surfaces = append(r.surfaces, s)
	r.mu.Unlock()
	return s
}

// Surfaces returns a snapshot of the registered surfaces.
func (r *Room) Surfaces() []Surface {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Surface(nil), r.surfaces...)
}

// Reset drops all registered surfaces, e.g. after a model reload.
func (r *Room) Reset() {
	r.mu.Lock()
	r.surfaces = nil
	r.mu.Unlock()
}

// Simulate will compute the room impulse response from the registered
// surfaces.
func (r *Room) Simulate() error {
	return ErrNotImplemented
}

func regionArea(m *mesh.Mesh, triangles []int) float32 {
	var area float64
	for _, i := range triangles {
		v0, v1, v2 := m.Triangle(i)
		cross := v1.Sub(v0).Cross(v2.Sub(v0))
		area += float64(cross.Length()) / 2
	}
	return float32(area)
}
