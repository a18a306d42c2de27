// File: quaternion.go
// Title: Orientation Quaternions
// Description: Quaternion orientation of a turtle. Composition is
//              non-commutative: rotating by q2 after q1 is q1.Multiply(q2).
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package geometry

import (
	"fmt"
	"math"
)

// Quaternion represents a rotation; X, Y, Z is the vector part, W the scalar
type Quaternion struct {
	X, Y, Z, W float64
}

// Identity is the rotation that changes nothing
var Identity = Quaternion{W: 1}

// FromAxisAngle builds the rotation of angle radians around a unit axis
func FromAxisAngle(axis Vector3, radians float64) Quaternion {
	half := radians / 2
	s := math.Sin(half)
	return Quaternion{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math.Cos(half)}
}

// Multiply returns q ∘ r, the rotation r applied in the frame of q
func (q Quaternion) Multiply(r Quaternion) Quaternion {
	return Quaternion{
		X: q.X*r.W + q.W*r.X + q.Y*r.Z - q.Z*r.Y,
		Y: q.Y*r.W + q.W*r.Y + q.Z*r.X - q.X*r.Z,
		Z: q.Z*r.W + q.W*r.Z + q.X*r.Y - q.Y*r.X,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Length returns the magnitude
func (q Quaternion) Length() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns the unit quaternion; a zero quaternion becomes Identity
func (q Quaternion) Normalize() Quaternion {
	l := q.Length()
	if l == 0 {
		return Identity
	}
	return Quaternion{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
}

// Rotate applies the rotation to v
func (q Quaternion) Rotate(v Vector3) Vector3 {
	// t = 2 * cross(q.xyz, v); v' = v + w*t + cross(q.xyz, t)
	tx := 2 * (q.Y*v.Z - q.Z*v.Y)
	ty := 2 * (q.Z*v.X - q.X*v.Z)
	tz := 2 * (q.X*v.Y - q.Y*v.X)
	return Vector3{
		X: v.X + q.W*tx + (q.Y*tz - q.Z*ty),
		Y: v.Y + q.W*ty + (q.Z*tx - q.X*tz),
		Z: v.Z + q.W*tz + (q.X*ty - q.Y*tx),
	}
}

// SameRotation reports whether both quaternions describe the same rotation
// within tolerance; q and -q are the same rotation
func (q Quaternion) SameRotation(r Quaternion, tolerance float64) bool {
	dot := q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W
	return math.Abs(math.Abs(dot)-q.Length()*r.Length()) <= tolerance
}

func (q Quaternion) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", q.X, q.Y, q.Z, q.W)
}
