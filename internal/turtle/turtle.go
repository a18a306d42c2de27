// File: turtle.go
// Title: Turtle Entity
// Description: Per-turtle mutable state: position, orientation, pen,
//              visibility and the append-only trail of line segments.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package turtle

import (
	"math"

	"github.com/msto63/geotortue/internal/geometry"
)

// ID identifies a turtle for the lifetime of a session
type ID string

// State is where a turtle stands and where it looks
type State struct {
	Position geometry.Vector3
	Rotation geometry.Quaternion
}

// DefaultState is the origin, heading +Y
func DefaultState() State {
	return State{Position: geometry.Zero, Rotation: geometry.Identity}
}

// PenState describes how the next segments are drawn
type PenState struct {
	Down    bool
	Color   Color
	Width   float64
	Opacity float64
}

// DefaultPen returns pen down, black, width 1, opacity 1
func DefaultPen() PenState {
	return PenState{Down: true, Color: Black, Width: 1, Opacity: 1}
}

// LineSegment is one recorded stroke; segments never change once recorded
type LineSegment struct {
	Start   geometry.Vector3
	End     geometry.Vector3
	Color   Color
	Width   float64
	Opacity float64
}

// Length returns the length of the segment
func (s LineSegment) Length() float64 {
	return s.Start.DistanceTo(s.End)
}

// Turtle is a drawing agent
type Turtle struct {
	id      ID
	State   State
	Pen     PenState
	Visible bool
	lines   []LineSegment
}

// New creates a visible turtle at the origin with the default pen
func New(id ID) *Turtle {
	return &Turtle{id: id, State: DefaultState(), Pen: DefaultPen(), Visible: true}
}

// ID returns the turtle id
func (t *Turtle) ID() ID {
	return t.id
}

// Forward moves along the heading; with the pen down the move is recorded
// as a segment drawn with the current pen
func (t *Turtle) Forward(distance float64) {
	start := t.State.Position
	end := geometry.MoveForward(start, t.State.Rotation, distance)
	if t.Pen.Down {
		t.lines = append(t.lines, LineSegment{
			Start:   start,
			End:     end,
			Color:   t.Pen.Color,
			Width:   t.Pen.Width,
			Opacity: t.Pen.Opacity,
		})
	}
	t.State.Position = end
}

// Backward is Forward with the opposite distance
func (t *Turtle) Backward(distance float64) {
	t.Forward(-distance)
}

// Right turns clockwise seen from above
func (t *Turtle) Right(angle geometry.Degrees) {
	t.turn(-angle)
}

// Left turns counter-clockwise seen from above
func (t *Turtle) Left(angle geometry.Degrees) {
	t.turn(angle)
}

func (t *Turtle) turn(angle geometry.Degrees) {
	t.State.Rotation = geometry.RotateAroundVerticalAxis(t.State.Rotation, angle).Normalize()
}

// PenUp stops recording segments
func (t *Turtle) PenUp() { t.Pen.Down = false }

// PenDown resumes recording segments
func (t *Turtle) PenDown() { t.Pen.Down = true }

// SetPenColor changes the color of future segments
func (t *Turtle) SetPenColor(c Color) { t.Pen.Color = c }

// SetPenSize changes the width of future segments
func (t *Turtle) SetPenSize(width float64) { t.Pen.Width = width }

// SetPenOpacity changes the opacity of future segments, clamped to [0,1]
func (t *Turtle) SetPenOpacity(opacity float64) {
	if math.IsNaN(opacity) {
		return
	}
	t.Pen.Opacity = math.Max(0, math.Min(1, opacity))
}

// Teleport puts the turtle at position without drawing
func (t *Turtle) Teleport(position geometry.Vector3) {
	t.State.Position = position
}

// Home puts the turtle back at the origin, heading +Y, without drawing
func (t *Turtle) Home() {
	t.State = DefaultState()
}

// Reset is a soft reset: state, pen and visibility return to their
// defaults while the trail is kept
func (t *Turtle) Reset() {
	t.Visible = true
	t.State = DefaultState()
	t.Pen = DefaultPen()
}

// ClearLines empties the trail and leaves the state untouched
func (t *Turtle) ClearLines() {
	t.lines = nil
}

// Lines returns a copy of the trail
func (t *Turtle) Lines() []LineSegment {
	out := make([]LineSegment, len(t.lines))
	copy(out, t.lines)
	return out
}

// LineCount returns the number of recorded segments
func (t *Turtle) LineCount() int {
	return len(t.lines)
}
