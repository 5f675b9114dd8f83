// Package mesh holds the loaded model's triangle buffers and the
// geometric analysis that runs over them: volumetric properties and
// coplanar region grouping.
package mesh

import (
	"fmt"

	"github.com/resound-dev/resound/pkg/formats"
	"github.com/resound-dev/resound/pkg/math"
)

// Mesh is a triangle soup plus a parallel per-vertex color buffer.
//
// Vertices and Normals are fixed after construction and must be treated
// as read-only; every 3 consecutive vertices form one triangle and
// Normals carries one unit normal per triangle. Colors is the only
// mutable buffer and is written through SetTriangleColor/FillColors.
type Mesh struct {
	Name     string
	Vertices []math.Vec3 // len == 3 * TriangleCount()
	Normals  []math.Vec3 // len == TriangleCount()
	Colors   []math.Vec3 // len == len(Vertices)

	bounds Bounds
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max math.Vec3
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// New builds a Mesh from parsed model data, enforcing the buffer
// invariants up front so nothing downstream has to re-check them.
func New(name string, vertices, normals []math.Vec3) (*Mesh, error) {
	if len(normals) == 0 {
		return nil, fmt.Errorf("mesh %q has no triangles", name)
	}
	if len(vertices) != 3*len(normals) {
		return nil, fmt.Errorf("mesh %q: %d vertices for %d triangles, want %d",
			name, len(vertices), len(normals), 3*len(normals))
	}

	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Normals:  normals,
		Colors:   make([]math.Vec3, len(vertices)),
	}
	m.bounds = computeBounds(vertices)
	return m, nil
}

// FromModel builds a Mesh from a loaded model file.
func FromModel(model *formats.Model) (*Mesh, error) {
	return New(model.Name, model.Vertices, model.Normals)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Normals)
}

// Triangle returns the three corner positions of triangle i.
func (m *Mesh) Triangle(i int) (v0, v1, v2 math.Vec3) {
	return m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (m *Mesh) Bounds() Bounds {
	return m.bounds
}

// FillColors sets every vertex color.
func (m *Mesh) FillColors(c math.Vec3) {
	for i := range m.Colors {
		m.Colors[i] = c
	}
}

// SetTriangleColor sets the three corner colors of triangle i.
func (m *Mesh) SetTriangleColor(i int, c math.Vec3) {
	m.Colors[i*3] = c
	m.Colors[i*3+1] = c
	m.Colors[i*3+2] = c
}

// Interleaved packs position, normal, and color per vertex into a flat
// float32 slice for GPU upload (stride 9 floats).
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*9)
	for i, v := range m.Vertices {
		n := m.Normals[i/3]
		c := m.Colors[i]
		out = append(out,
			v.X, v.Y, v.Z,
			n.X, n.Y, n.Z,
			c.X, c.Y, c.Z,
		)
	}
	return out
}

func computeBounds(vertices []math.Vec3) Bounds {
	b := Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
	for _, v := range vertices {
		if v.X < b.Min.X {
			b.Min.X = v.X
		}
		if v.Y < b.Min.Y {
			b.Min.Y = v.Y
		}
		if v.Z < b.Min.Z {
			b.Min.Z = v.Z
		}
		if v.X > b.Max.X {
			b.Max.X = v.X
		}
		if v.Y > b.Max.Y {
			b.Max.Y = v.Y
		}
		if v.Z > b.Max.Z {
			b.Max.Z = v.Z
		}
	}
	return b
}
