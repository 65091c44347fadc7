package mesh

import (
	"github.com/Faultbox/meshcut/pkg/math"
)

// Instance places a mesh with a transform for Combine.
type Instance struct {
	Mesh   *Mesh
	Matrix math.Mat4
}

// Combine merges instances into one mesh. Positions are transformed by each
// instance matrix, normals by the inverse transpose of its linear part and
// tangent directions by the linear part itself (both renormalized). Normals are
// carried over, not recomputed. Triangles of a mirroring instance (negative
// determinant) get their winding reversed so it still agrees with the normals.
// A UV channel survives only if every non-empty instance has it. Instances
// must be valid meshes.
func Combine(name string, instances []Instance) *Mesh {
	keepUV1, keepUV2 := true, true
	var vertexTotal, indexTotal int
	for _, inst := range instances {
		if inst.Mesh.IsEmpty() {
			continue
		}
		keepUV1 = keepUV1 && len(inst.Mesh.UV1) > 0
		keepUV2 = keepUV2 && inst.Mesh.HasUV2()
		vertexTotal += inst.Mesh.VertexCount()
		indexTotal += len(inst.Mesh.Triangles)
	}

	b := &Buffer{
		Vertices:  make([]math.Vec3, 0, vertexTotal),
		Normals:   make([]math.Vec3, 0, vertexTotal),
		Tangents:  make([]math.Vec4, 0, vertexTotal),
		Triangles: make([]uint32, 0, indexTotal),
	}
	for _, inst := range instances {
		src := inst.Mesh
		if src.IsEmpty() {
			continue
		}
		base := uint32(b.VertexCount())
		normalMatrix := inst.Matrix.NormalMatrix()
		for i := range src.Vertices {
			b.Vertices = append(b.Vertices, inst.Matrix.TransformVec3(src.Vertices[i]))
			b.Normals = append(b.Normals, normalMatrix.TransformDirection(src.Normals[i]).Normalize())
			t := src.Tangents[i]
			b.Tangents = append(b.Tangents, t.WithXYZ(inst.Matrix.TransformDirection(t.XYZ()).Normalize()))
		}
		if keepUV1 {
			b.UV1 = append(b.UV1, src.UV1...)
		}
		if keepUV2 {
			b.UV2 = append(b.UV2, src.UV2...)
		}
		mirrored := inst.Matrix.Determinant3() < 0
		for i := 0; i+2 < len(src.Triangles); i += 3 {
			i0, i1, i2 := base+src.Triangles[i], base+src.Triangles[i+1], base+src.Triangles[i+2]
			if mirrored {
				i1, i2 = i2, i1
			}
			b.AppendTriangle(i0, i1, i2)
		}
	}
	return &Mesh{
		Name:      name,
		Vertices:  b.Vertices,
		Normals:   b.Normals,
		Tangents:  b.Tangents,
		UV1:       b.UV1,
		UV2:       b.UV2,
		Triangles: b.Triangles,
		Bounds:    CalculateBounds(b.Vertices),
	}
}
