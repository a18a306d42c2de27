// File: commands.go
// Title: Command Dispatch
// Description: Executes primitive commands. Turtle commands apply to every
//              turtle of the repository. Placeholder commands only warn.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package interpreter

import (
	"fmt"
	"math"
	"strings"

	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/dsl/ast"
	"github.com/msto63/geotortue/internal/dsl/token"
	"github.com/msto63/geotortue/internal/geometry"
	"github.com/msto63/geotortue/internal/turtle"
	"github.com/msto63/geotortue/internal/value"
)

// arcStep is the largest turn between two chords of a circle or an arc
const arcStep = 10.0

// unsupported lists the placeholder commands with the category and the
// label they are reported under
var unsupported = map[token.Type]struct{ category, label string }{
	token.PitchUp:         {"3D", "PVH"},
	token.PitchDown:       {"3D", "PVB"},
	token.RollLeft:        {"3D", "PVG"},
	token.RollRight:       {"3D", "PVD"},
	token.Aim:             {"3D", "VISE"},
	token.Mimic:           {"3D", "IMITE"},
	token.Mirror:          {"3D", "MIRROR"},
	token.RotateXY:        {"3D", "PVXY"},
	token.RotateXZ:        {"3D", "PVXZ"},
	token.RotateYZ:        {"3D", "PVYZ"},
	token.ManipulateGraph: {"3D", "MG"},
	token.Play:            {"Audio", "PLAY"},
	token.Score:           {"Audio", "SCORE"},
	token.Concert:         {"Audio", "CONCERT"},
	token.Exec:            {"", "EXEC"},
	token.Undo:            {"", "UNDO"},
}

func (v *visitor) VisitCommand(c *ast.Command) (value.Control, error) {
	if u, ok := unsupported[c.Cmd]; ok {
		msg := u.label + " not implemented yet"
		if u.category != "" {
			msg = fmt.Sprintf("%s is %s (unsupported)", u.label, u.category)
		}
		v.logger.Warn(msg, mdwlog.Fields{"command": c.Cmd.String(), "keyword": c.Keyword, "line": c.Pos.Line})
		return value.Next, nil
	}

	switch c.Cmd {
	case token.Forward, token.Backward, token.Right, token.Left,
		token.PenSize, token.PenOpacity:
		n, err := v.number(c.Args[0])
		if err != nil {
			return value.Next, err
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			v.logger.Debug("Non-finite argument ignored", mdwlog.Fields{"command": c.Cmd.String(), "line": c.Pos.Line})
			break
		}
		v.each(func(t *turtle.Turtle) {
			switch c.Cmd {
			case token.Forward:
				t.Forward(n)
			case token.Backward:
				t.Backward(n)
			case token.Right:
				t.Right(geometry.Degrees(n))
			case token.Left:
				t.Left(geometry.Degrees(n))
			case token.PenSize:
				t.SetPenSize(n)
			case token.PenOpacity:
				t.SetPenOpacity(n)
			}
		})

	case token.PenUp:
		v.each((*turtle.Turtle).PenUp)
	case token.PenDown:
		v.each((*turtle.Turtle).PenDown)
	case token.Hide:
		v.each(func(t *turtle.Turtle) { t.Visible = false })
	case token.Show:
		v.each(func(t *turtle.Turtle) { t.Visible = true })
	case token.Home:
		v.each((*turtle.Turtle).Home)

	case token.PenColor:
		if col, ok := v.resolveColor(c.Args[0]); ok {
			v.each(func(t *turtle.Turtle) { t.SetPenColor(col) })
		}

	case token.ClearGraphics:
		v.in.repo.ClearAllLines()
	case token.ClearScreen:
		v.in.repo.Reset()

	case token.Teleport:
		return value.Next, v.teleport(c.Args)
	case token.Circle:
		r, err := v.number(c.Args[0])
		if err != nil {
			return value.Next, err
		}
		v.arc(r, 360)
	case token.Arc:
		r, err := v.number(c.Args[0])
		if err != nil {
			return value.Next, err
		}
		angle, err := v.number(c.Args[1])
		if err != nil {
			return value.Next, err
		}
		v.arc(r, angle)

	case token.Write, token.Say:
		return value.Next, v.emitText(c)
	case token.ShowVar:
		for _, name := range c.Names {
			text := name + " = " + value.Nil.String()
			if val, ok := v.lookup(name); ok {
				text = name + " = " + val.String()
			}
			v.in.output.Emit(Message{Kind: MessageShowVar, Text: text})
		}

	case token.Wait:
		d, err := v.numberOr(c.Args, 0, 0)
		if err != nil {
			return value.Next, err
		}
		v.logger.Info("Wait", mdwlog.Fields{"duration": d})
	case token.Pause:
		v.logger.Info("Pause")
	case token.Snapshot:
		v.logger.Info("Snapshot", mdwlog.Fields{"turtles": len(v.in.repo.GetAll())})
	case token.Ask:
		name := c.Names[0]
		v.logger.Info("Ask", mdwlog.Fields{"variable": name})
		v.current()[name] = value.Num(0)

	case token.Fill:
		v.logger.Warn("Fill not implemented", mdwlog.Fields{"line": c.Pos.Line})
		return v.VisitBlock(c.Body)

	case token.Global:
		for _, name := range c.Names {
			v.global()[name] = value.Num(0)
		}
	case token.Erase:
		for _, name := range c.Names {
			delete(v.current(), name)
			delete(v.global(), name)
		}
	case token.Init:
		v.scopes = []map[string]value.Value{{}}
		clear(v.functions)
		v.in.repo.Clear()
		v.hatch()
	case token.Hatch:
		t := v.hatch()
		v.logger.Debug("Turtle hatched", mdwlog.Fields{"turtle_id": string(t.ID())})

	default:
		v.logger.Warn(c.Cmd.String()+" not implemented yet", mdwlog.Fields{"keyword": c.Keyword})
	}
	return value.Next, nil
}

// each applies f to every turtle
func (v *visitor) each(f func(t *turtle.Turtle)) {
	for _, t := range v.in.repo.GetAll() {
		f(t)
	}
}

func (v *visitor) teleport(args []*ast.Expr) error {
	x, err := v.number(args[0])
	if err != nil {
		return err
	}
	y, err := v.numberOr(args, 1, 0)
	if err != nil {
		return err
	}
	z, err := v.numberOr(args, 2, 0)
	if err != nil {
		return err
	}
	p := geometry.Vec(x, y, z)
	v.each(func(t *turtle.Turtle) { t.Teleport(p) })
	return nil
}

// arc draws angle degrees of a circle of radius r as chords, turning left
// for a positive radius. A full turn ends where it started.
func (v *visitor) arc(r, angle float64) {
	if r == 0 || angle == 0 || math.IsNaN(r) || math.IsNaN(angle) {
		return
	}
	steps := math.Ceil(math.Abs(angle) / arcStep)
	step := angle / steps
	chord := 2 * math.Abs(r) * math.Sin(math.Abs(step)*math.Pi/360)
	turn := geometry.Degrees(step / 2)
	if r < 0 {
		turn = -turn
	}
	v.each(func(t *turtle.Turtle) {
		for i := 0.0; i < steps; i++ {
			t.Left(turn)
			t.Forward(chord)
			t.Left(turn)
		}
	})
}

// emitText joins the arguments with spaces. Write is emitted once per
// turtle, say once for the whole scene.
func (v *visitor) emitText(c *ast.Command) error {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		val, err := v.eval(a)
		if err != nil {
			return err
		}
		parts[i] = val.String()
	}
	text := strings.Join(parts, " ")

	if c.Cmd == token.Say {
		v.in.output.Emit(Message{Kind: MessageSay, Text: text})
		return nil
	}
	v.each(func(t *turtle.Turtle) {
		v.in.output.Emit(Message{Kind: MessageWrite, Turtle: t.ID(), Text: text})
	})
	return nil
}
