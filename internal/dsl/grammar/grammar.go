// File: grammar.go
// Title: DSL Rule Network
// Description: Declarative description of the GeoTortue grammar as a
//              network of rules built from token, rule reference,
//              sequence, alternative, option and repetition elements.
//              The parser is written by hand; the network describes the
//              same language so it can be inspected at runtime.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package grammar

import (
	"fmt"
	"sync"

	"github.com/msto63/geotortue/internal/dsl/token"
)

// Rule identifies a syntax rule
type Rule int

const (
	Program Rule = iota
	Statement
	Block
	Primitive
	Structure
	Repeat
	If
	While
	ForEach
	FunctionDef
	Assignment
	ProcedureCall
	Expr
	Atom
	ruleCount
)

var ruleNames = [ruleCount]string{
	Program:       "program",
	Statement:     "statement",
	Block:         "block",
	Primitive:     "primitive",
	Structure:     "structure",
	Repeat:        "repeatBlock",
	If:            "ifBlock",
	While:         "whileBlock",
	ForEach:       "forEachBlock",
	FunctionDef:   "functionDef",
	Assignment:    "assignment",
	ProcedureCall: "procedureCall",
	Expr:          "expr",
	Atom:          "atom",
}

func (r Rule) String() string {
	if r >= 0 && r < ruleCount {
		return ruleNames[r]
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// Rules returns every rule of the grammar
func Rules() []Rule {
	out := make([]Rule, ruleCount)
	for i := range out {
		out[i] = Rule(i)
	}
	return out
}

// Element is a piece of a rule body
type Element interface {
	element()
}

// TokElement matches one token out of a set of types
type TokElement struct{ Types []token.Type }

// RefElement invokes another rule
type RefElement struct{ Rule Rule }

// SeqElement matches its parts in order
type SeqElement struct{ Parts []Element }

// AltElement matches exactly one of its choices
type AltElement struct{ Choices []Element }

// OptElement matches its body zero or one time
type OptElement struct{ Body Element }

// StarElement matches its body zero or more times
type StarElement struct{ Body Element }

func (TokElement) element()  {}
func (RefElement) element()  {}
func (SeqElement) element()  {}
func (AltElement) element()  {}
func (OptElement) element()  {}
func (StarElement) element() {}

// Tok builds a token element
func Tok(types ...token.Type) Element { return TokElement{Types: types} }

// Ref builds a rule reference
func Ref(r Rule) Element { return RefElement{Rule: r} }

// Seq builds a sequence
func Seq(parts ...Element) Element { return SeqElement{Parts: parts} }

// Alt builds an alternative
func Alt(choices ...Element) Element { return AltElement{Choices: choices} }

// Opt builds an optional element
func Opt(body Element) Element { return OptElement{Body: body} }

// Star builds a repetition
func Star(body Element) Element { return StarElement{Body: body} }

// Network holds the body of every rule
type Network struct {
	bodies [ruleCount]Element
}

// Body returns the definition of rule r
func (n *Network) Body(r Rule) Element {
	if r < 0 || r >= ruleCount {
		return nil
	}
	return n.bodies[r]
}

// BinaryOperators are the infix operators accepted inside expressions
var BinaryOperators = []token.Type{
	token.Plus, token.Minus, token.Mult, token.Div, token.Mod, token.Pow,
	token.Eq, token.NotEq, token.Less, token.LessEq, token.Greater, token.GreaterEq,
	token.And, token.Or,
}

// PrefixOperators may precede an operand
var PrefixOperators = []token.Type{token.Minus, token.Plus, token.Not}

// Default returns the GeoTortue grammar network
var Default = sync.OnceValue(build)

func build() *Network {
	n := &Network{}
	statements := Star(Alt(Ref(Statement), Tok(token.Semicolon)))
	exprList := Opt(Seq(Ref(Expr), Star(Seq(Tok(token.Comma), Ref(Expr)))))
	operand := Seq(Star(Tok(PrefixOperators...)), Ref(Atom))

	n.bodies[Program] = statements
	n.bodies[Statement] = Alt(
		Ref(Structure),
		Ref(Primitive),
		Ref(Assignment),
		Ref(ProcedureCall),
		Seq(Tok(token.Return), Opt(Ref(Expr))),
		Tok(token.Stop),
	)
	n.bodies[Block] = Seq(Tok(token.LBracket), statements, Tok(token.RBracket))
	n.bodies[Primitive] = primitives()
	n.bodies[Structure] = Alt(Ref(Repeat), Ref(If), Ref(While), Ref(ForEach), Ref(FunctionDef))
	n.bodies[Repeat] = Seq(Tok(token.Rep), Ref(Expr), Ref(Block))
	n.bodies[If] = Seq(
		Tok(token.If), Ref(Expr), Opt(Tok(token.Then)), Ref(Block),
		Opt(Seq(Tok(token.Else), Ref(Block))),
	)
	n.bodies[While] = Seq(Tok(token.While), Ref(Expr), Ref(Block))
	n.bodies[ForEach] = Seq(
		Tok(token.ForEach), Tok(token.Ident),
		Alt(
			Seq(Tok(token.InList), Ref(Expr)),
			Seq(Tok(token.From), Ref(Expr), Tok(token.To), Ref(Expr)),
		),
		Ref(Block),
	)
	n.bodies[FunctionDef] = Seq(
		Tok(token.Fun), Tok(token.Ident),
		Tok(token.LParen),
		Opt(Seq(Tok(token.Ident), Star(Seq(Tok(token.Comma), Tok(token.Ident))))),
		Tok(token.RParen),
		Tok(token.Assign), Ref(Expr),
	)
	n.bodies[Assignment] = Seq(
		Opt(Tok(token.Var, token.Global)), Tok(token.Ident), Tok(token.Assign), Ref(Expr),
	)
	n.bodies[ProcedureCall] = Seq(
		Tok(token.Ident),
		Opt(Seq(Tok(token.LParen), exprList, Tok(token.RParen))),
	)
	n.bodies[Expr] = Seq(operand, Star(Seq(Tok(BinaryOperators...), operand)))
	n.bodies[Atom] = Alt(
		Tok(token.Number, token.String),
		Seq(Tok(token.Ident), Opt(Seq(Tok(token.LParen), exprList, Tok(token.RParen)))),
		Seq(Tok(token.LParen), Ref(Expr), Tok(token.RParen)),
		Seq(Tok(token.LBracket), exprList, Tok(token.RBracket)),
	)
	return n
}

// primitives derives the primitive rule from the signature table
func primitives() Element {
	var choices []Element
	for _, cmd := range token.Commands() {
		sig, ok := signatures[cmd]
		if !ok {
			continue
		}
		parts := []Element{Tok(cmd)}
		for i, kind := range sig.Args {
			arg := argElement(kind)
			if i > 0 && kind != ArgBlock {
				arg = Seq(Opt(Tok(token.Comma)), arg)
			}
			last := i == len(sig.Args)-1
			switch {
			case last && sig.Variadic:
				more := Star(Seq(Opt(Tok(token.Comma)), argElement(kind)))
				if i >= sig.Required() {
					arg = Opt(Seq(arg, more))
				} else {
					arg = Seq(arg, more)
				}
			case i >= sig.Required():
				arg = Opt(arg)
			}
			parts = append(parts, arg)
		}
		choices = append(choices, Seq(parts...))
	}
	return Alt(choices...)
}

func argElement(kind ArgKind) Element {
	switch kind {
	case ArgName:
		return Tok(token.Ident)
	case ArgBlock:
		return Ref(Block)
	default:
		return Ref(Expr)
	}
}
