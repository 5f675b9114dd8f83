package formats

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/resound-dev/resound/pkg/math"
)

// LoadGLTF reads a glTF or GLB file. Indexed primitives are de-indexed
// into the duplicated-vertex triangle soup the engine expects. glTF
// front faces are CCW, which matches the winding the volumetric
// analyzer assumes.
func LoadGLTF(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	m := &Model{Name: filepath.Base(path)}

	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read positions: %w", gm.Name, err)
			}

			if prim.Indices != nil {
				indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read indices: %w", gm.Name, err)
				}
				for i := 0; i+2 < len(indices); i += 3 {
					m.appendSoupTriangle(
						positions[indices[i]],
						positions[indices[i+1]],
						positions[indices[i+2]],
					)
				}
			} else {
				for i := 0; i+2 < len(positions); i += 3 {
					m.appendSoupTriangle(positions[i], positions[i+1], positions[i+2])
				}
			}
		}
	}

	return m, nil
}

func (m *Model) appendSoupTriangle(p0, p1, p2 [3]float32) {
	v0 := math.Vec3{X: p0[0], Y: p0[1], Z: p0[2]}
	v1 := math.Vec3{X: p1[0], Y: p1[1], Z: p1[2]}
	v2 := math.Vec3{X: p2[0], Y: p2[1], Z: p2[2]}
	m.Vertices = append(m.Vertices, v0, v1, v2)
	m.Normals = append(m.Normals, faceNormal(v0, v1, v2))
}
