package mesh

import (
	"fmt"
	"slices"

	"github.com/Faultbox/meshcut/pkg/math"
)

// Buffer is a growable, mutable set of per-vertex attribute arrays plus a
// triangle index list. A Buffer never aliases the storage of the mesh it was
// created from.
type Buffer struct {
	Vertices  []math.Vec3
	Normals   []math.Vec3
	Tangents  []math.Vec4
	UV1       []math.Vec2
	UV2       []math.Vec2
	Triangles []uint32
}

// NewBuffer copies the attribute arrays of src into a new buffer.
// It panics if src breaks the mesh invariants checked by Mesh.Validate;
// callers holding untrusted meshes should validate first.
func NewBuffer(src *Mesh) *Buffer {
	if err := src.Validate(); err != nil {
		panic(fmt.Sprintf("mesh: buffer from %q: %v", src.Name, err))
	}
	return &Buffer{
		Vertices:  slices.Clone(src.Vertices),
		Normals:   slices.Clone(src.Normals),
		Tangents:  slices.Clone(src.Tangents),
		UV1:       slices.Clone(src.UV1),
		UV2:       slices.Clone(src.UV2),
		Triangles: slices.Clone(src.Triangles),
	}
}

// VertexCount returns the number of vertices in the buffer.
func (b *Buffer) VertexCount() int {
	return len(b.Vertices)
}

// TriangleCount returns the number of complete triangles in the buffer.
func (b *Buffer) TriangleCount() int {
	return len(b.Triangles) / 3
}

// AppendVertexFrom copies every attribute of src's vertex at index into b and
// returns the new vertex's index in b. UV channels are copied only when src has them.
func (b *Buffer) AppendVertexFrom(src *Buffer, index uint32) uint32 {
	b.Vertices = append(b.Vertices, src.Vertices[index])
	b.Normals = append(b.Normals, src.Normals[index])
	b.Tangents = append(b.Tangents, src.Tangents[index])
	if int(index) < len(src.UV1) {
		b.UV1 = append(b.UV1, src.UV1[index])
	}
	if int(index) < len(src.UV2) {
		b.UV2 = append(b.UV2, src.UV2[index])
	}
	return uint32(len(b.Vertices) - 1)
}

// AppendTriangle appends one triangle in the given vertex order.
func (b *Buffer) AppendTriangle(i0, i1, i2 uint32) {
	b.Triangles = append(b.Triangles, i0, i1, i2)
}

// Build emits the buffer contents as a finished mesh. Bounds and vertex
// normals are recomputed from the final vertices and topology, replacing any
// normals copied from a source mesh. The buffer stays usable afterwards.
func (b *Buffer) Build(name string) *Mesh {
	m := &Mesh{
		Name:      name,
		Vertices:  slices.Clone(b.Vertices),
		Tangents:  slices.Clone(b.Tangents),
		UV1:       slices.Clone(b.UV1),
		UV2:       slices.Clone(b.UV2),
		Triangles: slices.Clone(b.Triangles),
	}
	m.Normals = CalculateNormals(m.Vertices, m.Triangles)
	m.Bounds = CalculateBounds(m.Vertices)
	return m
}
