package math

// Vec4 is a 4-component vector. Mesh tangents use W as the bitangent sign.
type Vec4 struct {
	X, Y, Z, W float32
}

// XYZ returns the first three components.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// WithXYZ returns a copy of v with X, Y and Z replaced, keeping W.
func (v Vec4) WithXYZ(xyz Vec3) Vec4 {
	return Vec4{xyz.X, xyz.Y, xyz.Z, v.W}
}
