// Package partition splits a triangle mesh into independent bucket meshes
// according to a per-triangle classification rule.
//
// Each triangle keeps its vertex order. Vertices are deduplicated within a
// bucket and copied, never shared, across buckets. Area cutting and
// occlusion culling are provided as ready-made classifiers.
package partition

import "github.com/Faultbox/meshcut/pkg/math"

// Classifier picks the bucket for one triangle from its three vertex
// positions in the source mesh's local space. The result must lie in
// [0, bucketCount) for the scan it is used with.
type Classifier interface {
	Classify(p0, p1, p2 math.Vec3) int
}

// ClassifierFunc adapts an ordinary function to the Classifier interface.
type ClassifierFunc func(p0, p1, p2 math.Vec3) int

// Classify calls f(p0, p1, p2).
func (f ClassifierFunc) Classify(p0, p1, p2 math.Vec3) int {
	return f(p0, p1, p2)
}

// Identity routes every triangle to bucket 0.
type Identity struct{}

// Classify always returns 0.
func (Identity) Classify(_, _, _ math.Vec3) int {
	return 0
}
