package mesh

import "github.com/Faultbox/meshcut/pkg/math"

// CalculateNormals computes per-vertex normals from triangle topology.
// Each triangle contributes its unnormalized face normal (so larger faces weigh
// more) to its three vertices; the sums are then normalized. Vertices that no
// triangle references get a zero normal.
func CalculateNormals(vertices []math.Vec3, triangles []uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(vertices))
	for i := 0; i+2 < len(triangles); i += 3 {
		i0, i1, i2 := triangles[i], triangles[i+1], triangles[i+2]
		p0 := vertices[i0]
		n := vertices[i1].Sub(p0).Cross(vertices[i2].Sub(p0))
		normals[i0] = normals[i0].Add(n)
		normals[i1] = normals[i1].Add(n)
		normals[i2] = normals[i2].Add(n)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}
