package partition

import (
	"fmt"

	"github.com/Faultbox/meshcut/pkg/mesh"
)

// Counts holds per-bucket triangle counts from one or more scans.
type Counts struct {
	Buckets []int
}

// Total returns the number of triangles across all buckets.
func (c Counts) Total() int {
	total := 0
	for _, n := range c.Buckets {
		total += n
	}
	return total
}

// Add accumulates other into c bucket by bucket, growing c as needed.
func (c *Counts) Add(other Counts) {
	for len(c.Buckets) < len(other.Buckets) {
		c.Buckets = append(c.Buckets, 0)
	}
	for i, n := range other.Buckets {
		c.Buckets[i] += n
	}
}

// bucket is one output partition: its buffer and the map from source vertex
// index to the vertex's index inside the buffer.
type bucket struct {
	buf   *mesh.Buffer
	remap map[uint32]uint32
}

func newBucket() *bucket {
	return &bucket{buf: &mesh.Buffer{}, remap: make(map[uint32]uint32)}
}

// vertex returns the bucket-local index of source vertex i, copying it in on first use.
func (b *bucket) vertex(src *mesh.Buffer, i uint32) uint32 {
	if dst, ok := b.remap[i]; ok {
		return dst
	}
	dst := b.buf.AppendVertexFrom(src, i)
	b.remap[i] = dst
	return dst
}

func (b *bucket) appendTriangle(src *mesh.Buffer, i0, i1, i2 uint32) {
	b.buf.AppendTriangle(b.vertex(src, i0), b.vertex(src, i1), b.vertex(src, i2))
}

// Scan visits the triangles of src in order, asks c for each triangle's
// bucket and appends the triangle, with deduplicated vertices and unchanged
// winding, to that bucket. It returns bucketCount buffers (some possibly
// empty) and the per-bucket triangle counts. src is not modified.
//
// Scan panics if bucketCount is not positive or c returns an index outside
// [0, bucketCount).
func Scan(src *mesh.Buffer, bucketCount int, c Classifier) ([]*mesh.Buffer, Counts) {
	if bucketCount <= 0 {
		panic(fmt.Sprintf("partition: bucket count %d, want > 0", bucketCount))
	}

	buckets := make([]*bucket, bucketCount)
	for i := range buckets {
		buckets[i] = newBucket()
	}
	counts := Counts{Buckets: make([]int, bucketCount)}

	tris := src.Triangles
	for i := 0; i+2 < len(tris); i += 3 {
		i0, i1, i2 := tris[i], tris[i+1], tris[i+2]
		n := c.Classify(src.Vertices[i0], src.Vertices[i1], src.Vertices[i2])
		if n < 0 || n >= bucketCount {
			panic(fmt.Sprintf("partition: triangle %d classified into bucket %d, want [0,%d)", i/3, n, bucketCount))
		}
		buckets[n].appendTriangle(src, i0, i1, i2)
		counts.Buckets[n]++
	}

	out := make([]*mesh.Buffer, bucketCount)
	for i, b := range buckets {
		out[i] = b.buf
	}
	return out, counts
}
