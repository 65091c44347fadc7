package formats

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/Faultbox/meshcut/pkg/math"
	"github.com/Faultbox/meshcut/pkg/mesh"
)

// createTestPyramid creates a closed square pyramid: 5 vertices, 6 triangles.
func createTestPyramid() *mesh.Mesh {
	m := &mesh.Mesh{
		Name: "pyramid",
		Vertices: []math.Vec3{
			{X: -1, Z: -1}, {X: 1, Z: -1}, {X: 1, Z: 1}, {X: -1, Z: 1}, {Y: 2},
		},
		Triangles: []uint32{
			0, 1, 2, 0, 2, 3, // base
			0, 4, 1, 1, 4, 2, 2, 4, 3, 3, 4, 0,
		},
	}
	m.Normals = mesh.CalculateNormals(m.Vertices, m.Triangles)
	m.Tangents = make([]math.Vec4, len(m.Vertices))
	m.UV1 = make([]math.Vec2, len(m.Vertices))
	m.Bounds = mesh.CalculateBounds(m.Vertices)
	return m
}

func TestSTLRoundTripWeldsVertices(t *testing.T) {
	src := createTestPyramid()

	var buf bytes.Buffer
	if err := WriteSTL(&buf, src); err != nil {
		t.Fatalf("WriteSTL failed: %v", err)
	}
	model, err := ReadSTL(&buf, "fallback")
	if err != nil {
		t.Fatalf("ReadSTL failed: %v", err)
	}
	got := model.Mesh

	if got.VertexCount() != 5 {
		t.Errorf("expected 5 welded vertices, got %d", got.VertexCount())
	}
	if got.TriangleCount() != 6 {
		t.Errorf("expected 6 triangles, got %d", got.TriangleCount())
	}
	if err := got.Validate(); err != nil {
		t.Errorf("loaded mesh invalid: %v", err)
	}
	// Winding survives the round trip.
	for i := range src.Triangles {
		if got.Vertices[got.Triangles[i]] != src.Vertices[src.Triangles[i]] {
			t.Fatalf("corner %d: got %v, want %v", i, got.Vertices[got.Triangles[i]], src.Vertices[src.Triangles[i]])
		}
	}
	if len(got.UV1) != 0 || got.HasUV2() {
		t.Error("STL mesh should have no UV channels")
	}
	if len(model.Submeshes) != 1 || len(model.Submeshes[0].Triangles) != 18 {
		t.Errorf("expected one submesh with 18 indices, got %+v", model.Submeshes)
	}
	if got.Bounds.Max != (math.Vec3{X: 1, Y: 2, Z: 1}) {
		t.Errorf("Bounds.Max = %v", got.Bounds.Max)
	}
}

func TestSTLFileNaming(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tower.stl")

	src := createTestPyramid()
	src.Name = ""
	if err := SaveSTL(path, src); err != nil {
		t.Fatalf("SaveSTL failed: %v", err)
	}
	model, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if model.Mesh.Name != "tower" {
		t.Errorf("expected name from file 'tower', got %q", model.Mesh.Name)
	}
}

func TestReadSTLInvalid(t *testing.T) {
	if _, err := ReadSTL(bytes.NewReader([]byte{1, 2, 3}), "bad"); err == nil {
		t.Error("expected error for truncated STL data")
	}
}
