package formats

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/resound-dev/resound/pkg/math"
)

const asciiTriangle = `solid tri
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid tri
`

func TestParseASCIISTL(t *testing.T) {
	m, err := ParseSTL([]byte(asciiTriangle))
	if err != nil {
		t.Fatalf("ParseSTL() error: %v", err)
	}
	if m.Name != "tri" {
		t.Errorf("name = %q, want %q", m.Name, "tri")
	}
	if m.TriangleCount() != 1 {
		t.Fatalf("triangle count = %d, want 1", m.TriangleCount())
	}
	if len(m.Vertices) != 3 {
		t.Fatalf("vertex count = %d, want 3", len(m.Vertices))
	}
	if m.Normals[0] != (math.Vec3{Z: 1}) {
		t.Errorf("normal = %v, want (0,0,1)", m.Normals[0])
	}
	if m.Vertices[1] != (math.Vec3{X: 1}) {
		t.Errorf("vertex 1 = %v, want (1,0,0)", m.Vertices[1])
	}
}

func TestParseASCIISTLFallbackNormal(t *testing.T) {
	// Zero facet normal: the parser must recover it from the winding.
	src := `solid z
facet normal 0 0 0
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
endloop
endfacet
endsolid z
`
	m, err := ParseSTL([]byte(src))
	if err != nil {
		t.Fatalf("ParseSTL() error: %v", err)
	}
	if m.Normals[0] != (math.Vec3{Z: 1}) {
		t.Errorf("normal = %v, want winding normal (0,0,1)", m.Normals[0])
	}
}

func binarySTLBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, "bintri")
	buf.Write(header)
	if err := binary.Write(&buf, binary.LittleEndian, uint32(1)); err != nil {
		t.Fatal(err)
	}
	tri := struct {
		Normal   [3]float32
		Verts    [3][3]float32
		AttrSize uint16
	}{
		Normal: [3]float32{0, 0, 1},
		Verts: [3][3]float32{
			{0, 0, 0},
			{2, 0, 0},
			{0, 2, 0},
		},
	}
	if err := binary.Write(&buf, binary.LittleEndian, tri); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestParseBinarySTL(t *testing.T) {
	m, err := ParseSTL(binarySTLBytes(t))
	if err != nil {
		t.Fatalf("ParseSTL() error: %v", err)
	}
	if m.TriangleCount() != 1 {
		t.Fatalf("triangle count = %d, want 1", m.TriangleCount())
	}
	if m.Vertices[1] != (math.Vec3{X: 2}) {
		t.Errorf("vertex 1 = %v, want (2,0,0)", m.Vertices[1])
	}
	if m.Normals[0] != (math.Vec3{Z: 1}) {
		t.Errorf("normal = %v, want (0,0,1)", m.Normals[0])
	}
}

func TestParseSTLTruncatedBinary(t *testing.T) {
	data := binarySTLBytes(t)
	if _, err := ParseSTL(data[:len(data)-10]); err == nil {
		t.Error("expected error for truncated binary STL")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	if _, err := Load("model.fbx"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
