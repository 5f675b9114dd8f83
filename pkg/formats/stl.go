package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/resound-dev/resound/pkg/math"
)

// LoadSTL reads an STL file, detecting ASCII vs binary automatically.
func LoadSTL(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stl: %w", err)
	}
	return ParseSTL(data)
}

// ParseSTL parses STL data. Files starting with "solid" are tried as
// ASCII first; some binary exporters write "solid" into the 80-byte
// header, so a failed ASCII parse falls through to binary.
func ParseSTL(data []byte) (*Model, error) {
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t"), []byte("solid")) {
		m, err := parseASCIISTL(bytes.NewReader(data))
		if err == nil && m.TriangleCount() > 0 {
			return m, nil
		}
	}
	return parseBinarySTL(bytes.NewReader(data))
}

func parseASCIISTL(r io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	m := &Model{}
	var normal math.Vec3
	var verts []math.Vec3

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				m.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				v, err := parseVec3(fields[2], fields[3], fields[4])
				if err != nil {
					return nil, fmt.Errorf("facet normal: %w", err)
				}
				normal = v
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("short vertex line: %q", strings.Join(fields, " "))
			}
			v, err := parseVec3(fields[1], fields[2], fields[3])
			if err != nil {
				return nil, fmt.Errorf("vertex: %w", err)
			}
			verts = append(verts, v)

		case "endfacet":
			if len(verts) != 3 {
				return nil, fmt.Errorf("facet with %d vertices", len(verts))
			}
			m.appendTriangle(verts[0], verts[1], verts[2], normal)
			verts = verts[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ascii stl: %w", err)
	}

	return m, nil
}

func parseBinarySTL(r io.Reader) (*Model, error) {
	header := make([]byte, 80)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read stl header: %w", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read triangle count: %w", err)
	}

	m := &Model{
		Name:     string(bytes.TrimRight(header, "\x00 ")),
		Vertices: make([]math.Vec3, 0, 3*count),
		Normals:  make([]math.Vec3, 0, count),
	}

	// 12 floats (normal + 3 vertices) plus a 2-byte attribute count.
	var tri struct {
		Normal   [3]float32
		Verts    [3][3]float32
		AttrSize uint16
	}
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &tri); err != nil {
			return nil, fmt.Errorf("read triangle %d: %w", i, err)
		}
		m.appendTriangle(
			math.Vec3{X: tri.Verts[0][0], Y: tri.Verts[0][1], Z: tri.Verts[0][2]},
			math.Vec3{X: tri.Verts[1][0], Y: tri.Verts[1][1], Z: tri.Verts[1][2]},
			math.Vec3{X: tri.Verts[2][0], Y: tri.Verts[2][1], Z: tri.Verts[2][2]},
			math.Vec3{X: tri.Normal[0], Y: tri.Normal[1], Z: tri.Normal[2]},
		)
	}

	return m, nil
}

// appendTriangle stores one triangle, normalizing the stored facet normal
// and falling back to the winding normal when the stored one is unusable.
func (m *Model) appendTriangle(v0, v1, v2, normal math.Vec3) {
	n := normal.Normalize()
	if n == (math.Vec3{}) {
		n = faceNormal(v0, v1, v2)
	}
	m.Vertices = append(m.Vertices, v0, v1, v2)
	m.Normals = append(m.Normals, n)
}

func parseVec3(sx, sy, sz string) (math.Vec3, error) {
	x, err := strconv.ParseFloat(sx, 32)
	if err != nil {
		return math.Vec3{}, err
	}
	y, err := strconv.ParseFloat(sy, 32)
	if err != nil {
		return math.Vec3{}, err
	}
	z, err := strconv.ParseFloat(sz, 32)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}, nil
}
