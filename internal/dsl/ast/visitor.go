// File: visitor.go
// Title: Syntax Tree Visitor
// Description: Visitor interface for executing statements and a generic
//              depth-first Inspect walk for analysis passes.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package ast

import "github.com/msto63/geotortue/internal/value"

// Visitor executes statement nodes. Every method returns the control
// result that tells the caller whether to continue or unwind.
type Visitor interface {
	VisitBlock(b *Block) (value.Control, error)
	VisitCommand(c *Command) (value.Control, error)
	VisitRepeat(r *Repeat) (value.Control, error)
	VisitIf(i *If) (value.Control, error)
	VisitWhile(w *While) (value.Control, error)
	VisitForEach(f *ForEach) (value.Control, error)
	VisitFunctionDef(f *FunctionDef) (value.Control, error)
	VisitAssignment(a *Assignment) (value.Control, error)
	VisitProcedureCall(p *ProcedureCall) (value.Control, error)
	VisitReturn(r *Return) (value.Control, error)
	VisitStop(s *Stop) (value.Control, error)
}

func (b *Block) Accept(v Visitor) (value.Control, error)         { return v.VisitBlock(b) }
func (c *Command) Accept(v Visitor) (value.Control, error)       { return v.VisitCommand(c) }
func (r *Repeat) Accept(v Visitor) (value.Control, error)        { return v.VisitRepeat(r) }
func (i *If) Accept(v Visitor) (value.Control, error)            { return v.VisitIf(i) }
func (w *While) Accept(v Visitor) (value.Control, error)         { return v.VisitWhile(w) }
func (f *ForEach) Accept(v Visitor) (value.Control, error)       { return v.VisitForEach(f) }
func (f *FunctionDef) Accept(v Visitor) (value.Control, error)   { return v.VisitFunctionDef(f) }
func (a *Assignment) Accept(v Visitor) (value.Control, error)    { return v.VisitAssignment(a) }
func (p *ProcedureCall) Accept(v Visitor) (value.Control, error) { return v.VisitProcedureCall(p) }
func (r *Return) Accept(v Visitor) (value.Control, error)        { return v.VisitReturn(r) }
func (s *Stop) Accept(v Visitor) (value.Control, error)          { return v.VisitStop(s) }

// Inspect walks the tree depth-first in source order, calling f for each
// node. When f returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch node := n.(type) {
	case *Program:
		for _, s := range node.Statements {
			Inspect(s, f)
		}
	case *Block:
		for _, s := range node.Statements {
			Inspect(s, f)
		}
	case *Command:
		for _, a := range node.Args {
			Inspect(a, f)
		}
		if node.Body != nil {
			Inspect(node.Body, f)
		}
	case *Repeat:
		Inspect(node.Count, f)
		Inspect(node.Body, f)
	case *If:
		Inspect(node.Cond, f)
		Inspect(node.Then, f)
		if node.Else != nil {
			Inspect(node.Else, f)
		}
	case *While:
		Inspect(node.Cond, f)
		Inspect(node.Body, f)
	case *ForEach:
		if node.List != nil {
			Inspect(node.List, f)
		} else {
			Inspect(node.From, f)
			Inspect(node.To, f)
		}
		Inspect(node.Body, f)
	case *FunctionDef:
		Inspect(node.Body, f)
	case *Assignment:
		Inspect(node.Value, f)
	case *ProcedureCall:
		for _, a := range node.Args {
			Inspect(a, f)
		}
	case *Return:
		if node.Value != nil {
			Inspect(node.Value, f)
		}
	}
}
