package formats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/resound-dev/resound/pkg/math"
)

func writeOBJ(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.obj")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOBJQuadFan(t *testing.T) {
	src := `# unit square in the XY plane
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	m, err := LoadOBJ(writeOBJ(t, src))
	if err != nil {
		t.Fatalf("LoadOBJ() error: %v", err)
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("triangle count = %d, want 2 (fan-triangulated quad)", m.TriangleCount())
	}
	for i, n := range m.Normals {
		if n != (math.Vec3{Z: 1}) {
			t.Errorf("normal %d = %v, want (0,0,1)", i, n)
		}
	}
	// Both fan triangles share the first face vertex.
	if m.Vertices[0] != m.Vertices[3] {
		t.Errorf("fan triangles do not share the pivot vertex: %v vs %v", m.Vertices[0], m.Vertices[3])
	}
}

func TestLoadOBJSlashRefsAndNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 -1//1
`
	m, err := LoadOBJ(writeOBJ(t, src))
	if err != nil {
		t.Fatalf("LoadOBJ() error: %v", err)
	}
	if m.TriangleCount() != 1 {
		t.Fatalf("triangle count = %d, want 1", m.TriangleCount())
	}
	if m.Vertices[2] != (math.Vec3{Y: 1}) {
		t.Errorf("negative index resolved to %v, want (0,1,0)", m.Vertices[2])
	}
}

func TestLoadOBJIndexOutOfRange(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
f 1 2 9
`
	if _, err := LoadOBJ(writeOBJ(t, src)); err == nil {
		t.Error("expected out-of-range face index error")
	}
}
