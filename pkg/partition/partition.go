package partition

import (
	"fmt"

	"github.com/Faultbox/meshcut/pkg/mesh"
)

// Partition splits src into bucketCount finished meshes using c. Bucket i is
// named "<src.Name>_<i>". Buckets that receive no triangles come back as
// empty meshes. src must satisfy Mesh.Validate.
func Partition(src *mesh.Mesh, c Classifier, bucketCount int) ([]*mesh.Mesh, Counts) {
	buffers, counts := Scan(mesh.NewBuffer(src), bucketCount, c)
	out := make([]*mesh.Mesh, len(buffers))
	for i, b := range buffers {
		out[i] = b.Build(fmt.Sprintf("%s_%d", src.Name, i))
	}
	return out, counts
}

// CullOcclusion separates triangles facing away from every corner of vol
// (back) from the rest (front). transform places src in world space for the
// test only; output geometry stays in src's local space.
func CullOcclusion(src *mesh.Mesh, transform Transform, vol OcclusionVolume) (front, back *mesh.Mesh, counts Counts) {
	c := NewOcclusionClassifier(transform, vol)
	meshes, counts := Partition(src, c, c.BucketCount())
	return meshes[Front], meshes[Back], counts
}

// CutByAreas splits src into len(areas)+1 meshes: one per area followed by
// the remainder. transform places src in world space for the test only.
func CutByAreas(src *mesh.Mesh, transform Transform, areas []Area) ([]*mesh.Mesh, Counts) {
	c := NewAreaClassifier(transform, areas)
	return Partition(src, c, c.BucketCount())
}

// Recenter expresses each area mesh relative to its area's center. meshes is
// the result of CutByAreas over the same areas; the remainder (and any mesh
// past len(areas)) is passed through unchanged. The input meshes are not modified.
func Recenter(meshes []*mesh.Mesh, areas []Area) []*mesh.Mesh {
	out := make([]*mesh.Mesh, len(meshes))
	for i, m := range meshes {
		if i >= len(areas) || m.IsEmpty() {
			out[i] = m
			continue
		}
		out[i] = m.Translated(areas[i].Center.Neg())
	}
	return out
}
