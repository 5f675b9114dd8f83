package mesh

import "sort"

// normalTolerance is the minimum dot product between unit normals for two
// triangles to count as coplanar (about 0.8 degrees of angular slack).
const normalTolerance = 0.9999

// GroupRegion returns the indices of all triangles forming the contiguous
// coplanar face that contains the seed triangle, sorted ascending.
//
// Membership requires both that a triangle's normal is parallel to the
// seed's within normalTolerance and that it is connected to the region
// through shared vertex positions (exact value match, which holds for
// triangle-soup input where shared corners are duplicated verbatim).
//
// The flood fill rescans the whole buffer from every frontier triangle,
// O(region * triangles). Fine for human-paced picking on modest meshes;
// a vertex-position index would speed it up without changing the result.
func GroupRegion(m *Mesh, seed int) []int {
	seedNormal := m.Normals[seed]

	visited := make(map[int]bool)
	frontier := []int{seed}

	for len(frontier) > 0 {
		current := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if visited[current] {
			continue
		}
		visited[current] = true

		for other := 0; other < m.TriangleCount(); other++ {
			if visited[other] {
				continue
			}
			if m.Normals[other].Dot(seedNormal) <= normalTolerance {
				continue
			}
			if sharesVertex(m, current, other) {
				frontier = append(frontier, other)
			}
		}
	}

	region := make([]int, 0, len(visited))
	for idx := range visited {
		region = append(region, idx)
	}
	sort.Ints(region)
	return region
}

// sharesVertex reports whether triangles a and b have at least one corner
// at the same position.
func sharesVertex(m *Mesh, a, b int) bool {
	for i := 0; i < 3; i++ {
		va := m.Vertices[a*3+i]
		for j := 0; j < 3; j++ {
			if va == m.Vertices[b*3+j] {
				return true
			}
		}
	}
	return false
}
