// File: nodes.go
// Title: GeoTortue Syntax Tree
// Description: Node types produced by the parser. Statements are typed
//              nodes; expressions keep their exact source text because
//              they are handed verbatim to the math evaluator.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation, adapted from the TCOL AST

package ast

import (
	"fmt"
	"strings"

	"github.com/msto63/geotortue/internal/dsl/token"
	"github.com/msto63/geotortue/internal/value"
)

// Node represents the base interface for all syntax tree nodes
type Node interface {
	// String returns a compact source-like rendering
	String() string

	// Position returns the source position of the node
	Position() Position
}

// Stmt is a node that can be executed
type Stmt interface {
	Node
	Accept(v Visitor) (value.Control, error)
}

// Position represents a position in the source code
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
	Offset int // Byte offset (0-based)
}

// PositionOf returns the position of a token
func PositionOf(t token.Token) Position {
	return Position{Line: t.Line, Column: t.Column, Offset: t.Start}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Program is the root of a script
type Program struct {
	Statements []Stmt
}

// Block is a bracketed statement list
type Block struct {
	Statements []Stmt
	Pos        Position
}

// Expr is an expression kept as source text
type Expr struct {
	Text   string        // exact source slice
	Tokens []token.Token // tokens the expression spans
	Pos    Position
}

// IsString reports whether the expression is a single string literal
func (e *Expr) IsString() bool {
	return len(e.Tokens) == 1 && e.Tokens[0].Type == token.String
}

// IsIdent reports whether the expression is a single identifier
func (e *Expr) IsIdent() bool {
	return len(e.Tokens) == 1 && e.Tokens[0].Type == token.Ident
}

// Command is a primitive turtle or environment command
type Command struct {
	Cmd     token.Type // canonical command
	Keyword string     // word as written in the source
	Args    []*Expr
	Names   []string // bare names for declaration commands
	Body    *Block   // fill
	Pos     Position
}

// Repeat runs Body Count times
type Repeat struct {
	Count *Expr
	Body  *Block
	Pos   Position
}

// If runs Then or Else depending on Cond
type If struct {
	Cond *Expr
	Then *Block
	Else *Block // may be nil
	Pos  Position
}

// While runs Body as long as Cond holds
type While struct {
	Cond *Expr
	Body *Block
	Pos  Position
}

// ForEach iterates a list (List set) or an inclusive range (From/To set)
type ForEach struct {
	Var  string
	List *Expr
	From *Expr
	To   *Expr
	Body *Block
	Pos  Position
}

// IsRange reports whether the loop iterates a numeric range
func (f *ForEach) IsRange() bool { return f.List == nil }

// FunctionDef declares an expression-bodied function
type FunctionDef struct {
	Name   string
	Params []string
	Body   *Expr
	Pos    Position
}

// AssignScope selects the scope frame an assignment writes to
type AssignScope int

const (
	// ScopeCurrent writes to the innermost frame
	ScopeCurrent AssignScope = iota
	// ScopeLocal is an explicit var declaration, also innermost
	ScopeLocal
	// ScopeGlobal writes to the outermost frame
	ScopeGlobal
)

// Assignment binds Name to the value of Value
type Assignment struct {
	Scope AssignScope
	Name  string
	Value *Expr
	Pos   Position
}

// ProcedureCall invokes a user function as a statement
type ProcedureCall struct {
	Name string
	Args []*Expr
	Pos  Position
}

// Return unwinds with an optional value
type Return struct {
	Value *Expr // may be nil
	Pos   Position
}

// Stop unwinds without a value
type Stop struct {
	Pos Position
}

// Position implementations

func (b *Block) Position() Position         { return b.Pos }
func (e *Expr) Position() Position          { return e.Pos }
func (c *Command) Position() Position       { return c.Pos }
func (r *Repeat) Position() Position        { return r.Pos }
func (i *If) Position() Position            { return i.Pos }
func (w *While) Position() Position         { return w.Pos }
func (f *ForEach) Position() Position       { return f.Pos }
func (f *FunctionDef) Position() Position   { return f.Pos }
func (a *Assignment) Position() Position    { return a.Pos }
func (p *ProcedureCall) Position() Position { return p.Pos }
func (r *Return) Position() Position        { return r.Pos }
func (s *Stop) Position() Position          { return s.Pos }

// Position of a program is its first statement
func (p *Program) Position() Position {
	if len(p.Statements) == 0 {
		return Position{Line: 1, Column: 1}
	}
	return p.Statements[0].Position()
}

// String implementations

func (p *Program) String() string {
	return joinStmts(p.Statements, "\n")
}

func (b *Block) String() string {
	if len(b.Statements) == 0 {
		return "[ ]"
	}
	return "[ " + joinStmts(b.Statements, "; ") + " ]"
}

func (e *Expr) String() string {
	if e == nil {
		return ""
	}
	return e.Text
}

func (c *Command) String() string {
	parts := []string{c.Cmd.String()}
	for _, a := range c.Args {
		parts = append(parts, a.String())
	}
	parts = append(parts, c.Names...)
	if c.Body != nil {
		parts = append(parts, c.Body.String())
	}
	return strings.Join(parts, " ")
}

func (r *Repeat) String() string {
	return fmt.Sprintf("%s %s %s", token.Rep, r.Count, r.Body)
}

func (i *If) String() string {
	s := fmt.Sprintf("%s %s %s", token.If, i.Cond, i.Then)
	if i.Else != nil {
		s += fmt.Sprintf(" %s %s", token.Else, i.Else)
	}
	return s
}

func (w *While) String() string {
	return fmt.Sprintf("%s %s %s", token.While, w.Cond, w.Body)
}

func (f *ForEach) String() string {
	if f.IsRange() {
		return fmt.Sprintf("%s %s %s %s %s %s %s", token.ForEach, f.Var, token.From, f.From, token.To, f.To, f.Body)
	}
	return fmt.Sprintf("%s %s %s %s %s", token.ForEach, f.Var, token.InList, f.List, f.Body)
}

func (f *FunctionDef) String() string {
	return fmt.Sprintf("%s %s(%s) := %s", token.Fun, f.Name, strings.Join(f.Params, ", "), f.Body)
}

func (a *Assignment) String() string {
	prefix := ""
	switch a.Scope {
	case ScopeLocal:
		prefix = token.Var.String() + " "
	case ScopeGlobal:
		prefix = token.Global.String() + " "
	}
	return fmt.Sprintf("%s%s := %s", prefix, a.Name, a.Value)
}

func (p *ProcedureCall) String() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(args, ", "))
}

func (r *Return) String() string {
	if r.Value == nil {
		return token.Return.String()
	}
	return token.Return.String() + " " + r.Value.String()
}

func (s *Stop) String() string { return token.Stop.String() }

func joinStmts(stmts []Stmt, sep string) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, sep)
}
