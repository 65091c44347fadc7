// Package math provides float32 vector, quaternion and matrix types for mesh processing.
package math

// Vec2 is a 2D vector. Used for texture coordinates.
type Vec2 struct {
	X, Y float32
}
