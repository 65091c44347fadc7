package partition

import (
	"github.com/Faultbox/meshcut/pkg/math"
	"github.com/Faultbox/meshcut/pkg/mesh"
)

// createTestGrid creates an n x n grid of quads in the XZ plane centered on
// the origin. Neighboring quads share vertices; every vertex has a UV.
func createTestGrid(n int, cell float32) *mesh.Mesh {
	m := &mesh.Mesh{Name: "grid"}
	half := float32(n) * cell / 2
	for z := 0; z <= n; z++ {
		for x := 0; x <= n; x++ {
			m.Vertices = append(m.Vertices, math.Vec3{X: float32(x)*cell - half, Z: float32(z)*cell - half})
			m.Normals = append(m.Normals, math.Vec3{Y: 1})
			m.Tangents = append(m.Tangents, math.Vec4{X: 1, W: 1})
			m.UV1 = append(m.UV1, math.Vec2{X: float32(x) / float32(n), Y: float32(z) / float32(n)})
		}
	}
	row := uint32(n + 1)
	for z := uint32(0); z < uint32(n); z++ {
		for x := uint32(0); x < uint32(n); x++ {
			i := z*row + x
			m.Triangles = append(m.Triangles, i, i+row, i+1, i+1, i+row, i+row+1)
		}
	}
	return m
}

// createTestTriangles creates a mesh of independent triangles from position triples.
func createTestTriangles(tris ...[3]math.Vec3) *mesh.Mesh {
	m := &mesh.Mesh{Name: "tris"}
	for _, tri := range tris {
		for _, p := range tri {
			m.Triangles = append(m.Triangles, uint32(len(m.Vertices)))
			m.Vertices = append(m.Vertices, p)
			m.Normals = append(m.Normals, math.Vec3{Y: 1})
			m.Tangents = append(m.Tangents, math.Vec4{X: 1, W: 1})
		}
	}
	return m
}

// centroidX routes triangles by the sign of their centroid's X coordinate:
// 0 for negative, 1 for zero, 2 for positive.
var centroidX = ClassifierFunc(func(p0, p1, p2 math.Vec3) int {
	cx := p0.X + p1.X + p2.X
	switch {
	case cx < 0:
		return 0
	case cx == 0:
		return 1
	default:
		return 2
	}
})
