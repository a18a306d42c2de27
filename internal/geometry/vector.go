// File: vector.go
// Title: Position Vectors
// Description: Immutable 3D position vector of a turtle, stored as an sdfx
//              vector so the vector arithmetic is shared with the rest of
//              the geometry stack.
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

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vector3 is a position in turtle space. Every operation returns a new value.
type Vector3 v3.Vec

// Zero is the origin
var Zero = Vector3{}

// Vec builds a vector from its components
func Vec(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns a + b
func (a Vector3) Add(b Vector3) Vector3 {
	return Vector3(v3.Vec(a).Add(v3.Vec(b)))
}

// Sub returns a - b
func (a Vector3) Sub(b Vector3) Vector3 {
	return Vector3(v3.Vec(a).Sub(v3.Vec(b)))
}

// Scale returns a scaled by k
func (a Vector3) Scale(k float64) Vector3 {
	return Vector3(v3.Vec(a).MulScalar(k))
}

// Length returns the euclidean norm
func (a Vector3) Length() float64 {
	return v3.Vec(a).Length()
}

// DistanceTo returns the distance between two positions
func (a Vector3) DistanceTo(b Vector3) float64 {
	return b.Sub(a).Length()
}

// ApproxEqual compares component-wise within tolerance
func (a Vector3) ApproxEqual(b Vector3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func (a Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", a.X, a.Y, a.Z)
}
