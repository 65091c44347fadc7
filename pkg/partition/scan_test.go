package partition

import (
	"testing"

	"github.com/Faultbox/meshcut/pkg/math"
	"github.com/Faultbox/meshcut/pkg/mesh"
)

func TestScanConservesTriangles(t *testing.T) {
	src := createTestGrid(5, 1)
	buffers, counts := Scan(mesh.NewBuffer(src), 3, centroidX)

	if len(buffers) != 3 || len(counts.Buckets) != 3 {
		t.Fatalf("got %d buffers, %d counts, want 3", len(buffers), len(counts.Buckets))
	}
	if counts.Total() != src.TriangleCount() {
		t.Errorf("Total() = %d, want %d", counts.Total(), src.TriangleCount())
	}
	sum := 0
	for i, b := range buffers {
		if b.TriangleCount() != counts.Buckets[i] {
			t.Errorf("bucket %d: %d triangles, counted %d", i, b.TriangleCount(), counts.Buckets[i])
		}
		sum += b.TriangleCount()
	}
	if sum != src.TriangleCount() {
		t.Errorf("bucket triangles sum to %d, want %d", sum, src.TriangleCount())
	}
}

func TestScanIdentityRoundTrip(t *testing.T) {
	src := createTestGrid(4, 2)
	buffers, counts := Scan(mesh.NewBuffer(src), 1, Identity{})

	b := buffers[0]
	if b.TriangleCount() != src.TriangleCount() {
		t.Errorf("triangles = %d, want %d", b.TriangleCount(), src.TriangleCount())
	}
	if b.VertexCount() != src.VertexCount() {
		t.Errorf("vertices = %d, want %d", b.VertexCount(), src.VertexCount())
	}
	if counts.Buckets[0] != src.TriangleCount() {
		t.Errorf("count = %d, want %d", counts.Buckets[0], src.TriangleCount())
	}
}

func TestScanDeduplicatesWithinBucket(t *testing.T) {
	src := createTestGrid(4, 1)
	buffers, _ := Scan(mesh.NewBuffer(src), 3, centroidX)

	for i, b := range buffers {
		seen := make(map[math.Vec3]bool)
		for _, v := range b.Vertices {
			if seen[v] {
				t.Errorf("bucket %d: vertex %v appears twice", i, v)
			}
			seen[v] = true
		}
		if len(b.UV1) != len(b.Vertices) || len(b.Normals) != len(b.Vertices) || len(b.Tangents) != len(b.Vertices) {
			t.Errorf("bucket %d: attribute lengths diverge", i)
		}
	}
}

func TestScanCopiesSharedVerticesPerBucket(t *testing.T) {
	// Two triangles sharing the edge 1-2; each goes to its own bucket.
	src := &mesh.Mesh{
		Vertices:  []math.Vec3{{X: -1}, {Z: 1}, {Z: -1}, {X: 1}},
		Normals:   make([]math.Vec3, 4),
		Tangents:  make([]math.Vec4, 4),
		Triangles: []uint32{0, 1, 2, 2, 1, 3},
	}
	buffers, _ := Scan(mesh.NewBuffer(src), 3, centroidX)

	if buffers[0].VertexCount() != 3 || buffers[2].VertexCount() != 3 {
		t.Errorf("vertex counts = %d/%d, want 3/3", buffers[0].VertexCount(), buffers[2].VertexCount())
	}
	if buffers[1].VertexCount() != 0 || buffers[1].TriangleCount() != 0 {
		t.Errorf("unused bucket not empty: %d vertices", buffers[1].VertexCount())
	}
	// Both buckets hold their own copy of the shared vertices.
	if buffers[0].Vertices[1] != (math.Vec3{Z: 1}) || buffers[2].Vertices[1] != (math.Vec3{Z: 1}) {
		t.Errorf("shared vertex missing: %v / %v", buffers[0].Vertices, buffers[2].Vertices)
	}
}

func TestScanPreservesWinding(t *testing.T) {
	src := createTestGrid(3, 1)
	buffers, _ := Scan(mesh.NewBuffer(src), 3, centroidX)

	// Replaying the source in order must reproduce each bucket's triangles,
	// vertex for vertex, with no rotation or reflection of the triple.
	next := make([]int, len(buffers))
	for i := 0; i < len(src.Triangles); i += 3 {
		p := [3]math.Vec3{
			src.Vertices[src.Triangles[i]],
			src.Vertices[src.Triangles[i+1]],
			src.Vertices[src.Triangles[i+2]],
		}
		n := centroidX(p[0], p[1], p[2])
		b := buffers[n]
		for j := 0; j < 3; j++ {
			got := b.Vertices[b.Triangles[next[n]+j]]
			if got != p[j] {
				t.Fatalf("source triangle %d, corner %d: got %v, want %v", i/3, j, got, p[j])
			}
		}
		next[n] += 3
	}
}

func TestScanEmptyBuckets(t *testing.T) {
	src := createTestGrid(2, 1)
	buffers, counts := Scan(mesh.NewBuffer(src), 3, Identity{})

	for i := 1; i < 3; i++ {
		m := buffers[i].Build("empty")
		if m.VertexCount() != 0 || m.TriangleCount() != 0 {
			t.Errorf("bucket %d: %d vertices, %d triangles, want 0/0", i, m.VertexCount(), m.TriangleCount())
		}
		if counts.Buckets[i] != 0 {
			t.Errorf("bucket %d counted %d", i, counts.Buckets[i])
		}
	}
}

func TestScanDoesNotModifySource(t *testing.T) {
	src := mesh.NewBuffer(createTestGrid(2, 1))
	before := append([]uint32(nil), src.Triangles...)
	vertices := src.VertexCount()

	Scan(src, 3, centroidX)

	if src.VertexCount() != vertices {
		t.Errorf("source vertex count changed: %d -> %d", vertices, src.VertexCount())
	}
	for i := range before {
		if src.Triangles[i] != before[i] {
			t.Fatalf("source triangles changed at %d", i)
		}
	}
}

func TestScanPanicsOnOutOfRangeBucket(t *testing.T) {
	tests := []struct {
		name   string
		bucket int
	}{
		{"negative", -1},
		{"too large", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Scan accepted bucket %d", tt.bucket)
				}
			}()
			Scan(mesh.NewBuffer(createTestGrid(1, 1)), 2, ClassifierFunc(func(_, _, _ math.Vec3) int {
				return tt.bucket
			}))
		})
	}
}

func TestScanPanicsOnZeroBuckets(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Scan accepted a bucket count of 0")
		}
	}()
	Scan(mesh.NewBuffer(createTestGrid(1, 1)), 0, Identity{})
}

func TestCountsAdd(t *testing.T) {
	var total Counts
	total.Add(Counts{Buckets: []int{1, 2}})
	total.Add(Counts{Buckets: []int{3, 4, 5}})

	want := []int{4, 6, 5}
	if len(total.Buckets) != len(want) {
		t.Fatalf("Buckets = %v, want %v", total.Buckets, want)
	}
	for i := range want {
		if total.Buckets[i] != want[i] {
			t.Errorf("Buckets = %v, want %v", total.Buckets, want)
			break
		}
	}
	if total.Total() != 15 {
		t.Errorf("Total() = %d, want 15", total.Total())
	}
}
