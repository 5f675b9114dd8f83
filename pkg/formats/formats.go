// Package formats provides parsers for 3D model file formats.
//
// All loaders produce the same triangle-soup shape: a flat vertex list
// where every 3 consecutive entries form one triangle, plus one unit
// face normal per triangle. Shared vertices are duplicated by value, not
// indexed, which is what the picking engine's adjacency test relies on.
package formats

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/resound-dev/resound/pkg/math"
)

// Model is a parsed triangle soup.
type Model struct {
	Name     string
	Vertices []math.Vec3 // len == 3 * len(Normals)
	Normals  []math.Vec3 // one unit normal per triangle
}

// TriangleCount returns the number of triangles.
func (m *Model) TriangleCount() int {
	return len(m.Normals)
}

// Load parses a model file, dispatching on the file extension.
// Supported: .stl (binary and ASCII), .obj, .gltf, .glb.
func Load(path string) (*Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return LoadSTL(path)
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported model format: %s", filepath.Ext(path))
	}
}

// faceNormal computes the unit normal of a triangle from its winding.
// Degenerate triangles yield the zero vector.
func faceNormal(v0, v1, v2 math.Vec3) math.Vec3 {
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}
