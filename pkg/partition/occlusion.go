package partition

import "github.com/Faultbox/meshcut/pkg/math"

// Occlusion buckets.
const (
	Front = 0
	Back  = 1
)

// OcclusionVolume is an axis-aligned box in world space used as the
// reference region for front/back culling.
type OcclusionVolume struct {
	Center math.Vec3
	Size   math.Vec3
}

// Corners returns the eight corners of the box.
func (v OcclusionVolume) Corners() [8]math.Vec3 {
	half := v.Size.Scale(0.5)
	lo := v.Center.Sub(half)
	hi := v.Center.Add(half)
	return [8]math.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
	}
}

// OcclusionClassifier sends a triangle to Back only when every corner of the
// occlusion volume lies strictly behind the triangle's plane, as oriented by
// its winding; otherwise it goes to Front. This is a coarse test against the
// infinite plane, not a visibility computation, and it keeps triangles that
// may not actually be visible.
type OcclusionClassifier struct {
	transform Transform
	corners   [8]math.Vec3
}

// NewOcclusionClassifier returns a classifier for vol, evaluating vertices
// through transform.
func NewOcclusionClassifier(transform Transform, vol OcclusionVolume) *OcclusionClassifier {
	return &OcclusionClassifier{transform: transform, corners: vol.Corners()}
}

// BucketCount is always 2.
func (c *OcclusionClassifier) BucketCount() int {
	return 2
}

// Classify returns Front or Back.
func (c *OcclusionClassifier) Classify(p0, p1, p2 math.Vec3) int {
	w0 := c.transform.ToWorld(p0)
	w1 := c.transform.ToWorld(p1)
	w2 := c.transform.ToWorld(p2)
	if IsFrontFacing(w0, w1, w2, c.corners[:]) {
		return Front
	}
	return Back
}

// IsFrontFacing reports whether any of points is on or in front of the plane
// through p0, p1, p2, with the normal cross(p1-p0, p2-p0).
func IsFrontFacing(p0, p1, p2 math.Vec3, points []math.Vec3) bool {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	for _, p := range points {
		if n.Dot(p.Sub(p0)) >= 0 {
			return true
		}
	}
	return false
}
