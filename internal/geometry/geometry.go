// File: geometry.go
// Title: Turtle Geometry
// Description: Pure position and orientation updates for turtle moves and
//              turns.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package geometry

import "math"

var (
	// Forward is the heading of a turtle in its local frame
	Forward = Vector3{Y: 1}
	// Up is the vertical axis used for 2D turns
	Up = Vector3{Z: 1}
)

// Degrees is an angle in degrees
type Degrees float64

// Radians converts to radians
func (d Degrees) Radians() float64 {
	return float64(d) * math.Pi / 180
}

// MoveForward returns position moved by distance along the heading given by
// orientation. A negative distance moves backward.
func MoveForward(position Vector3, orientation Quaternion, distance float64) Vector3 {
	return position.Add(orientation.Rotate(Forward).Scale(distance))
}

// RotateAroundVerticalAxis turns orientation by angle around Z. A positive
// angle turns left (counter-clockwise seen from above). The result is not
// normalized; callers renormalize to counter drift.
func RotateAroundVerticalAxis(orientation Quaternion, angle Degrees) Quaternion {
	return orientation.Multiply(FromAxisAngle(Up, angle.Radians()))
}

// Heading returns the angle in degrees between the Y axis and the turtle's
// heading projected on the XY plane, counter-clockwise
func Heading(orientation Quaternion) Degrees {
	dir := orientation.Rotate(Forward)
	return Degrees(math.Atan2(-dir.X, dir.Y) * 180 / math.Pi)
}
