package formats

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/resound-dev/resound/pkg/math"
)

// LoadOBJ reads a Wavefront OBJ file. Faces with more than 3 vertices
// are triangulated as a fan. Normals are computed from winding; vn
// records are ignored since the engine needs one flat normal per
// triangle anyway.
func LoadOBJ(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	m := &Model{Name: strings.TrimSuffix(filepath.Base(path), ".obj")}
	var positions []math.Vec3

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: short vertex", lineNo)
			}
			v, err := parseVec3(fields[1], fields[2], fields[3])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			positions = append(positions, v)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: face with %d vertices", lineNo, len(fields)-1)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				i, err := parseOBJIndex(ref, len(positions))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				idx = append(idx, i)
			}
			// Fan triangulation around the first face vertex.
			for i := 1; i+1 < len(idx); i++ {
				v0, v1, v2 := positions[idx[0]], positions[idx[i]], positions[idx[i+1]]
				m.Vertices = append(m.Vertices, v0, v1, v2)
				m.Normals = append(m.Normals, faceNormal(v0, v1, v2))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	return m, nil
}

// parseOBJIndex resolves a face vertex reference ("7", "7/1", "7/1/3",
// or a negative relative index) to a zero-based position index.
func parseOBJIndex(ref string, numPositions int) (int, error) {
	if slash := strings.IndexByte(ref, '/'); slash >= 0 {
		ref = ref[:slash]
	}
	i, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("face index %q: %w", ref, err)
	}
	if i < 0 {
		i = numPositions + i
	} else {
		i--
	}
	if i < 0 || i >= numPositions {
		return 0, fmt.Errorf("face index %d out of range (%d vertices)", i, numPositions)
	}
	return i, nil
}
