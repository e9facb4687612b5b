package wirebuf

import "math"

// Vector2 is a two-component float vector.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a three-component float vector.
type Vector3 struct {
	X, Y, Z float32
}

// Quaternion represents a rotation. Wire compression assumes unit length;
// callers should normalize before encoding.
type Quaternion struct {
	X, Y, Z, W float32
}

// Identity returns the identity rotation.
func Identity() Quaternion {
	return Quaternion{W: 1}
}

// Dot returns the dot product of two quaternions.
func (q Quaternion) Dot(o Quaternion) float32 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

// Normalize returns q scaled to unit length. The zero quaternion normalizes
// to identity.
func (q Quaternion) Normalize() Quaternion {
	mag := math.Sqrt(float64(q.Dot(q)))
	if mag == 0 {
		return Identity()
	}
	inv := float32(1 / mag)
	return Quaternion{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Color is an RGBA color with channels in [0, 1]. On the wire each channel is
// one byte holding round(channel * 100).
type Color struct {
	R, G, B, A float32
}
