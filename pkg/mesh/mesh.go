// Package mesh provides indexed triangle meshes with per-vertex attributes
// and the growable buffers used to build them.
package mesh

import (
	"errors"
	"fmt"

	"github.com/tiendc/go-deepcopy"

	"github.com/Faultbox/meshcut/pkg/math"
)

// Mesh validation errors.
var (
	ErrAttributeMismatch = errors.New("mesh attribute count mismatch")
	ErrTriangleCount     = errors.New("triangle index count is not a multiple of 3")
	ErrIndexOutOfRange   = errors.New("triangle index out of range")
)

// Mesh is a finished triangle mesh. Meshes returned by Buffer.Build are not
// modified by this module afterwards; use Translated or Clone to derive new ones.
type Mesh struct {
	Name      string
	Vertices  []math.Vec3
	Normals   []math.Vec3
	Tangents  []math.Vec4
	UV1       []math.Vec2
	UV2       []math.Vec2 // nil unless the source had a second UV channel
	Triangles []uint32
	Bounds    Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// HasUV2 reports whether the second UV channel is present.
func (m *Mesh) HasUV2() bool {
	return len(m.UV2) > 0
}

// Validate checks that all attribute arrays agree in length and that every
// triangle index refers to an existing vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	if len(m.Normals) != n || len(m.Tangents) != n {
		return fmt.Errorf("%w: %d vertices, %d normals, %d tangents",
			ErrAttributeMismatch, n, len(m.Normals), len(m.Tangents))
	}
	if len(m.UV1) != 0 && len(m.UV1) != n {
		return fmt.Errorf("%w: %d vertices, %d uv1", ErrAttributeMismatch, n, len(m.UV1))
	}
	if len(m.UV2) != 0 && len(m.UV2) != n {
		return fmt.Errorf("%w: %d vertices, %d uv2", ErrAttributeMismatch, n, len(m.UV2))
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("%w: %d", ErrTriangleCount, len(m.Triangles))
	}
	for i, idx := range m.Triangles {
		if int(idx) >= n {
			return fmt.Errorf("%w: triangles[%d] = %d, %d vertices", ErrIndexOutOfRange, i, idx, n)
		}
	}
	return nil
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	var out Mesh
	if err := deepcopy.Copy(&out, *m); err != nil {
		// Both sides share one type; a failure here is a bug in the copier.
		panic(fmt.Sprintf("mesh: clone %q: %v", m.Name, err))
	}
	return &out
}

// Translated returns a copy of the mesh with every vertex position moved by
// offset. Normals, tangents and topology are unchanged; bounds move with the vertices.
func (m *Mesh) Translated(offset math.Vec3) *Mesh {
	out := m.Clone()
	for i := range out.Vertices {
		out.Vertices[i] = out.Vertices[i].Add(offset)
	}
	if !out.IsEmpty() {
		out.Bounds = Bounds{Min: out.Bounds.Min.Add(offset), Max: out.Bounds.Max.Add(offset)}
	}
	return out
}
