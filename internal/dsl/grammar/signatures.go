// File: signatures.go
// Title: Command Signatures
// Description: Argument shapes of every canonical command. The table is
//              the single source for the primitive rule of the network and
//              for the parser, so both always agree on what a command takes.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package grammar

import "github.com/msto63/geotortue/internal/dsl/token"

// ArgKind describes one command argument
type ArgKind int

const (
	// ArgExpr is any expression
	ArgExpr ArgKind = iota
	// ArgColor is an expression resolved as a color
	ArgColor
	// ArgName is a bare variable name
	ArgName
	// ArgBlock is a bracketed statement block
	ArgBlock
)

func (k ArgKind) String() string {
	switch k {
	case ArgExpr:
		return "expr"
	case ArgColor:
		return "color"
	case ArgName:
		return "name"
	case ArgBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Signature lists the arguments of a command. The last Optional arguments
// may be omitted; a Variadic signature repeats its last argument.
type Signature struct {
	Args     []ArgKind
	Optional int
	Variadic bool
}

// Required returns the number of mandatory arguments
func (s Signature) Required() int {
	return len(s.Args) - s.Optional
}

var (
	noArgs    = Signature{}
	oneExpr   = Signature{Args: []ArgKind{ArgExpr}}
	anyExprs  = Signature{Args: []ArgKind{ArgExpr}, Optional: 1, Variadic: true}
	someExprs = Signature{Args: []ArgKind{ArgExpr}, Variadic: true}
	someNames = Signature{Args: []ArgKind{ArgName}, Variadic: true}
)

var signatures = map[token.Type]Signature{
	token.Forward:       oneExpr,
	token.Backward:      oneExpr,
	token.Right:         oneExpr,
	token.Left:          oneExpr,
	token.PenUp:         noArgs,
	token.PenDown:       noArgs,
	token.PenColor:      {Args: []ArgKind{ArgColor}},
	token.PenSize:       oneExpr,
	token.PenOpacity:    oneExpr,
	token.ClearGraphics: noArgs,
	token.ClearScreen:   noArgs,
	token.Hide:          noArgs,
	token.Show:          noArgs,
	token.Home:          noArgs,
	token.Teleport:      {Args: []ArgKind{ArgExpr, ArgExpr, ArgExpr}, Optional: 1},
	token.Circle:        oneExpr,
	token.Arc:           {Args: []ArgKind{ArgExpr, ArgExpr}},
	token.Write:         someExprs,
	token.Say:           someExprs,
	token.Wait:          anyExprs,
	token.Pause:         noArgs,
	token.Snapshot:      noArgs,
	token.Fill:          {Args: []ArgKind{ArgBlock}},
	token.ShowVar:       someNames,
	token.Ask:           {Args: []ArgKind{ArgName}},
	token.Global:        someNames,
	token.Erase:         someNames,
	token.Init:          noArgs,
	token.Hatch:         noArgs,

	token.PitchUp:         oneExpr,
	token.PitchDown:       oneExpr,
	token.RollLeft:        oneExpr,
	token.RollRight:       oneExpr,
	token.Aim:             {Args: []ArgKind{ArgExpr, ArgExpr, ArgExpr}, Optional: 1},
	token.Mimic:           anyExprs,
	token.Mirror:          anyExprs,
	token.RotateXY:        oneExpr,
	token.RotateXZ:        oneExpr,
	token.RotateYZ:        oneExpr,
	token.ManipulateGraph: anyExprs,
	token.Play:            anyExprs,
	token.Score:           anyExprs,
	token.Concert:         anyExprs,
	token.Exec:            anyExprs,
	token.Undo:            noArgs,
}

// SignatureOf returns the signature of a canonical command
func SignatureOf(cmd token.Type) (Signature, bool) {
	s, ok := signatures[cmd]
	return s, ok
}
