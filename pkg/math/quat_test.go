package math

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatToMat4(t *testing.T) {
	// Identity quaternion should produce identity matrix
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// Should have Y component and W = cos(45deg)
	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name string
		q    Quat
		in   Vec3
		want Vec3
	}{
		{"identity", QuatIdentity(), Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"y90", QuatFromAxisAngle(Vec3{Y: 1}, math.Pi/2), Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"x90", QuatFromAxisAngle(Vec3{X: 1}, math.Pi/2), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"z180", QuatFromAxisAngle(Vec3{Z: 1}, math.Pi), Vec3{1, 1, 0}, Vec3{-1, -1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.Rotate(tt.in)
			if !near(got, tt.want) {
				t.Errorf("Rotate(%v) = %v, want %v", tt.in, got, tt.want)
			}
			// The matrix form must agree with the quaternion form.
			if m := tt.q.ToMat4().TransformVec3(tt.in); !near(m, got) {
				t.Errorf("ToMat4().TransformVec3(%v) = %v, Rotate = %v", tt.in, m, got)
			}
		})
	}
}

func TestQuatFromEuler(t *testing.T) {
	q := QuatFromEuler(Vec3{Y: 90})
	if got := q.Rotate(Vec3{X: 1}); !near(got, Vec3{Z: -1}) {
		t.Errorf("Euler(0,90,0) * (1,0,0) = %v, want (0,0,-1)", got)
	}

	// Z is applied before X: (1,0,0) -> Z90 -> (0,1,0) -> X90 -> (0,0,1)
	q = QuatFromEuler(Vec3{X: 90, Z: 90})
	if got := q.Rotate(Vec3{X: 1}); !near(got, Vec3{Z: 1}) {
		t.Errorf("Euler(90,0,90) * (1,0,0) = %v, want (0,0,1)", got)
	}
}

func near(a, b Vec3) bool {
	return math32.Abs(a.X-b.X) < 0.001 && math32.Abs(a.Y-b.Y) < 0.001 && math32.Abs(a.Z-b.Z) < 0.001
}
