package partition

import "github.com/Faultbox/meshcut/pkg/math"

// Transform places a mesh in world space: non-uniform scale, then rotation,
// then translation. Shear is not representable.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{Rotation: math.QuatIdentity(), Scale: math.One()}
}

// ToWorld converts a local-space point to world space.
func (t Transform) ToWorld(local math.Vec3) math.Vec3 {
	return t.Rotation.Rotate(local.Mul(t.Scale)).Add(t.Position)
}

// Matrix returns the equivalent local-to-world matrix.
func (t Transform) Matrix() math.Mat4 {
	return math.TRS(t.Position, t.Rotation, t.Scale)
}
