package mesh

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshcut/pkg/math"
)

func TestCombine(t *testing.T) {
	a := createTestQuad()
	b := createTestQuad()

	m := Combine("combined", []Instance{
		{Mesh: a, Matrix: math.Identity()},
		{Mesh: b, Matrix: math.Translate(math.Vec3{X: 10})},
	})

	if m.VertexCount() != 8 || m.TriangleCount() != 4 {
		t.Fatalf("combined counts = %d/%d, want 8/4", m.VertexCount(), m.TriangleCount())
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("combined mesh invalid: %v", err)
	}
	if m.Vertices[5] != (math.Vec3{X: 11}) {
		t.Errorf("second instance not translated: %v", m.Vertices[5])
	}
	wantTris := []uint32{0, 2, 1, 0, 3, 2, 4, 6, 5, 4, 7, 6}
	for i, idx := range wantTris {
		if m.Triangles[i] != idx {
			t.Fatalf("Triangles = %v, want %v", m.Triangles, wantTris)
		}
	}
	if len(m.UV1) != 8 || len(m.UV2) != 8 {
		t.Errorf("uv channels dropped: %d/%d", len(m.UV1), len(m.UV2))
	}
	if m.Bounds.Max != (math.Vec3{X: 11, Z: 1}) {
		t.Errorf("Bounds.Max = %v", m.Bounds.Max)
	}
}

func TestCombineRotatesNormals(t *testing.T) {
	q := createTestQuad()
	rot := math.QuatFromEuler(math.Vec3{X: 90})

	m := Combine("rotated", []Instance{{Mesh: q, Matrix: math.TRS(math.Vec3{}, rot, math.One())}})
	n := m.Normals[0]
	if math32.Abs(n.X) > 0.001 || math32.Abs(n.Y) > 0.001 || math32.Abs(n.Z-1) > 0.001 {
		t.Errorf("rotated normal = %v, want (0,0,1)", n)
	}
	tan := m.Tangents[0]
	if tan.W != 1 || math32.Abs(tan.X-1) > 0.001 {
		t.Errorf("rotated tangent = %v, want (1,0,0,1)", tan)
	}
}

func TestCombineDropsPartialUV2(t *testing.T) {
	a := createTestQuad()
	b := createTestQuad()
	b.UV2 = nil

	m := Combine("mixed", []Instance{
		{Mesh: a, Matrix: math.Identity()},
		{Mesh: b, Matrix: math.Identity()},
	})
	if m.HasUV2() {
		t.Error("uv2 kept although one instance lacks it")
	}
	if len(m.UV1) != 8 {
		t.Errorf("uv1 length = %d, want 8", len(m.UV1))
	}
}

// windingNormal returns the unit face normal of triangle i from its vertex order.
func windingNormal(m *Mesh, i int) math.Vec3 {
	p0 := m.Vertices[m.Triangles[i*3]]
	p1 := m.Vertices[m.Triangles[i*3+1]]
	p2 := m.Vertices[m.Triangles[i*3+2]]
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

func nearVec3(a, b math.Vec3) bool {
	return math32.Abs(a.X-b.X) < 0.001 && math32.Abs(a.Y-b.Y) < 0.001 && math32.Abs(a.Z-b.Z) < 0.001
}

func TestCombineNonUniformScaleNormals(t *testing.T) {
	// Slanted triangle in the plane x = y, normal (-1,1,0).
	n := math.Vec3{X: -1, Y: 1}.Normalize()
	src := &Mesh{
		Name:      "slant",
		Vertices:  []math.Vec3{{}, {Z: 1}, {X: 1, Y: 1}},
		Normals:   []math.Vec3{n, n, n},
		Tangents:  make([]math.Vec4, 3),
		Triangles: []uint32{0, 1, 2},
	}

	m := Combine("scaled", []Instance{{Mesh: src, Matrix: math.Scale(math.Vec3{X: 1, Y: 4, Z: 1})}})

	want := windingNormal(m, 0)
	if !nearVec3(want, math.Vec3{X: -4, Y: 1}.Normalize()) {
		t.Fatalf("winding normal = %v", want)
	}
	for i, got := range m.Normals {
		if !nearVec3(got, want) {
			t.Errorf("normal %d = %v, want %v", i, got, want)
		}
	}
}

func TestCombineMirroredInstance(t *testing.T) {
	q := createTestQuad()

	m := Combine("mirrored", []Instance{
		{Mesh: q, Matrix: math.Identity()},
		{Mesh: q, Matrix: math.Scale(math.Vec3{X: -1, Y: 1, Z: 1})},
	})

	if err := m.Validate(); err != nil {
		t.Fatalf("combined mesh invalid: %v", err)
	}
	// Second instance has its winding reversed.
	wantTris := []uint32{0, 2, 1, 0, 3, 2, 4, 5, 6, 4, 6, 7}
	for i, idx := range wantTris {
		if m.Triangles[i] != idx {
			t.Fatalf("Triangles = %v, want %v", m.Triangles, wantTris)
		}
	}
	for tri := 0; tri < m.TriangleCount(); tri++ {
		wn := windingNormal(m, tri)
		if !nearVec3(wn, math.Vec3{Y: 1}) {
			t.Errorf("triangle %d winding normal = %v, want (0,1,0)", tri, wn)
		}
		carried := m.Normals[m.Triangles[tri*3]]
		if !nearVec3(carried, wn) {
			t.Errorf("triangle %d carried normal %v disagrees with winding %v", tri, carried, wn)
		}
	}
	// Source is untouched.
	if q.Triangles[1] != 2 {
		t.Errorf("source triangles modified: %v", q.Triangles)
	}
}
