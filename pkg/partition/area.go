package partition

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshcut/pkg/math"
)

// Area is a region unbounded vertically and bounded horizontally by
// ±Size.X/2 and ±Size.Z/2 around Center. Size.Y is ignored.
type Area struct {
	Center math.Vec3
	Size   math.Vec3
}

// Contains reports whether p lies strictly inside the area's horizontal extent.
func (a Area) Contains(p math.Vec3) bool {
	d := p.Sub(a.Center)
	return math32.Abs(d.X) < a.Size.X*0.5 && math32.Abs(d.Z) < a.Size.Z*0.5
}

// AreaClassifier assigns a triangle to the first area (in declaration order)
// that contains all three of its world-space vertices. Triangles that fit no
// single area go to the remainder bucket, index len(areas); they are never
// split along area borders.
type AreaClassifier struct {
	transform Transform
	areas     []Area
}

// NewAreaClassifier returns a classifier over a copy of areas, evaluating
// vertices through transform.
func NewAreaClassifier(transform Transform, areas []Area) *AreaClassifier {
	return &AreaClassifier{
		transform: transform,
		areas:     append([]Area(nil), areas...),
	}
}

// BucketCount returns len(areas) + 1.
func (c *AreaClassifier) BucketCount() int {
	return len(c.areas) + 1
}

// Remainder returns the index of the catch-all bucket.
func (c *AreaClassifier) Remainder() int {
	return len(c.areas)
}

// Classify returns the index of the first area holding the whole triangle,
// or Remainder().
func (c *AreaClassifier) Classify(p0, p1, p2 math.Vec3) int {
	w0 := c.transform.ToWorld(p0)
	w1 := c.transform.ToWorld(p1)
	w2 := c.transform.ToWorld(p2)
	for i, a := range c.areas {
		if a.Contains(w0) && a.Contains(w1) && a.Contains(w2) {
			return i
		}
	}
	return len(c.areas)
}
