// File: visitor.go
// Title: Execution Visitor
// Description: Walks the syntax tree of one run. Holds the scope stack and
//              the user function registry, evaluates expressions through
//              the evaluator, and threads control results (continue,
//              return, stop) through every statement.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package interpreter

import (
	"context"
	"math"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/dsl/ast"
	"github.com/msto63/geotortue/internal/matheval"
	"github.com/msto63/geotortue/internal/turtle"
	"github.com/msto63/geotortue/internal/value"
)

// visitor executes one run; it is not safe for concurrent use
type visitor struct {
	ctx    context.Context
	in     *Interpreter
	logger *mdwlog.Logger

	scopes     []map[string]value.Value
	functions  map[string]*ast.FunctionDef
	depth      int
	iterations int
}

func newVisitor(ctx context.Context, in *Interpreter, logger *mdwlog.Logger) *visitor {
	return &visitor{
		ctx:       ctx,
		in:        in,
		logger:    logger,
		scopes:    []map[string]value.Value{{}},
		functions: make(map[string]*ast.FunctionDef),
	}
}

// run is the entry point of a run: fresh scopes and functions, soft reset
// of the turtles, then the top-level statements. A return or stop ends the
// program.
func (v *visitor) run(prog *ast.Program) (value.Control, error) {
	v.scopes = []map[string]value.Value{{}}
	clear(v.functions)
	if len(v.in.repo.GetAll()) == 0 {
		v.hatch()
	}
	v.in.repo.Reset()

	for _, stmt := range prog.Statements {
		if err := v.checkpoint(); err != nil {
			return value.Next, err
		}
		ctl, err := stmt.Accept(v)
		if err != nil {
			return ctl, err
		}
		if ctl.Done() {
			v.logger.Debug("Program ended early", mdwlog.Fields{"flow": ctl.Flow.String()})
			return ctl, nil
		}
	}
	return value.Next, nil
}

// checkpoint is polled before statements and loop iterations
func (v *visitor) checkpoint() error {
	if err := v.ctx.Err(); err != nil {
		return mdwerror.Wrap(err, "execution cancelled").
			WithCode(mdwerror.CodeExecutionStopped).
			WithOperation("interpreter.Execute")
	}
	if !v.in.control.ShouldContinue() {
		return mdwerror.New("execution halted").
			WithCode(mdwerror.CodeExecutionStopped).
			WithOperation("interpreter.Execute")
	}
	return nil
}

// iterate counts one loop iteration against the run's limit
func (v *visitor) iterate() error {
	if err := v.checkpoint(); err != nil {
		return err
	}
	v.iterations++
	if v.in.maxLoops > 0 && v.iterations > v.in.maxLoops {
		return mdwerror.Newf("loop iteration limit of %d exceeded", v.in.maxLoops).
			WithCode(mdwerror.CodeExecutionStopped).
			WithOperation("interpreter.Execute")
	}
	return nil
}

// Scopes

func (v *visitor) current() map[string]value.Value { return v.scopes[len(v.scopes)-1] }

func (v *visitor) global() map[string]value.Value { return v.scopes[0] }

func (v *visitor) push(frame map[string]value.Value) { v.scopes = append(v.scopes, frame) }

func (v *visitor) pop() {
	if len(v.scopes) > 1 {
		v.scopes = v.scopes[:len(v.scopes)-1]
	}
}

// lookup finds a variable, innermost frame first
func (v *visitor) lookup(name string) (value.Value, bool) {
	for i := len(v.scopes) - 1; i >= 0; i-- {
		if val, ok := v.scopes[i][name]; ok {
			return val, true
		}
	}
	return value.Nil, false
}

// scope flattens the frames, inner names shadowing outer ones, and exposes
// the user functions
func (v *visitor) scope() matheval.Scope {
	vars := make(map[string]value.Value)
	for _, frame := range v.scopes {
		for k, val := range frame {
			vars[k] = val
		}
	}
	funcs := make(map[string]matheval.Function, len(v.functions))
	for name, def := range v.functions {
		funcs[name] = func(args []value.Value) (value.Value, error) {
			return v.call(def, args)
		}
	}
	return matheval.Scope{Vars: vars, Funcs: funcs}
}

// Expressions

func (v *visitor) eval(e *ast.Expr) (value.Value, error) {
	if e == nil {
		return value.Nil, nil
	}
	val, err := v.in.evaluator.Evaluate(e.Text, v.scope(), v.in.mode)
	if err != nil {
		return value.Nil, mdwerror.Wrap(err, "expression failed").
			WithCode(mdwerror.CodeEvaluationFailed).
			WithOperation("interpreter.eval").
			WithDetail("line", e.Pos.Line)
	}
	return val, nil
}

func (v *visitor) number(e *ast.Expr) (float64, error) {
	val, err := v.eval(e)
	if err != nil {
		return 0, err
	}
	return val.AsNumber(), nil
}

// numberOr evaluates the i-th argument or returns def when it is absent
func (v *visitor) numberOr(args []*ast.Expr, i int, def float64) (float64, error) {
	if i >= len(args) {
		return def, nil
	}
	return v.number(args[i])
}

// call runs a user function in a fresh frame. Parameters without an
// argument stay unbound.
func (v *visitor) call(def *ast.FunctionDef, args []value.Value) (value.Value, error) {
	if v.depth >= v.in.maxDepth {
		return value.Nil, mdwerror.Newf("call depth limit of %d exceeded in %s", v.in.maxDepth, def.Name).
			WithCode(mdwerror.CodeEvaluationFailed).
			WithOperation("interpreter.call")
	}
	frame := make(map[string]value.Value, len(def.Params))
	for i, p := range def.Params {
		if i >= len(args) {
			break
		}
		frame[p] = args[i]
	}

	v.depth++
	v.push(frame)
	defer func() {
		v.pop()
		v.depth--
	}()
	return v.in.evaluator.Evaluate(def.Body.Text, v.scope(), v.in.mode)
}

// Statements

func (v *visitor) VisitBlock(b *ast.Block) (value.Control, error) {
	for _, stmt := range b.Statements {
		if err := v.checkpoint(); err != nil {
			return value.Next, err
		}
		ctl, err := stmt.Accept(v)
		if err != nil || ctl.Done() {
			return ctl, err
		}
	}
	return value.Next, nil
}

func (v *visitor) VisitRepeat(r *ast.Repeat) (value.Control, error) {
	n, err := v.number(r.Count)
	if err != nil {
		return value.Next, err
	}
	count := math.Floor(n)
	for i := 0.0; i < count; i++ {
		if err := v.iterate(); err != nil {
			return value.Next, err
		}
		ctl, err := v.VisitBlock(r.Body)
		if err != nil || ctl.Done() {
			return ctl, err
		}
	}
	return value.Next, nil
}

func (v *visitor) VisitIf(s *ast.If) (value.Control, error) {
	cond, err := v.eval(s.Cond)
	if err != nil {
		return value.Next, err
	}
	if cond.Truthy() {
		return v.VisitBlock(s.Then)
	}
	if s.Else != nil {
		return v.VisitBlock(s.Else)
	}
	return value.Next, nil
}

func (v *visitor) VisitWhile(w *ast.While) (value.Control, error) {
	for {
		cond, err := v.eval(w.Cond)
		if err != nil {
			return value.Next, err
		}
		if !cond.Truthy() {
			return value.Next, nil
		}
		if err := v.iterate(); err != nil {
			return value.Next, err
		}
		ctl, err := v.VisitBlock(w.Body)
		if err != nil || ctl.Done() {
			return ctl, err
		}
	}
}

func (v *visitor) VisitForEach(f *ast.ForEach) (value.Control, error) {
	body := func(item value.Value) (value.Control, error) {
		if err := v.iterate(); err != nil {
			return value.Next, err
		}
		v.current()[f.Var] = item
		return v.VisitBlock(f.Body)
	}

	if !f.IsRange() {
		list, err := v.eval(f.List)
		if err != nil {
			return value.Next, err
		}
		items, ok := list.Items()
		if !ok {
			v.logger.Debug("For-each over a non-list value", mdwlog.Fields{"kind": list.Kind().String()})
			return value.Next, nil
		}
		for _, item := range items {
			ctl, err := body(item)
			if err != nil || ctl.Done() {
				return ctl, err
			}
		}
		return value.Next, nil
	}

	from, err := v.number(f.From)
	if err != nil {
		return value.Next, err
	}
	to, err := v.number(f.To)
	if err != nil {
		return value.Next, err
	}
	for i := from; i <= to; i++ {
		ctl, err := body(value.Num(i))
		if err != nil || ctl.Done() {
			return ctl, err
		}
	}
	return value.Next, nil
}

func (v *visitor) VisitFunctionDef(f *ast.FunctionDef) (value.Control, error) {
	v.functions[f.Name] = f
	return value.Next, nil
}

func (v *visitor) VisitAssignment(a *ast.Assignment) (value.Control, error) {
	val, err := v.eval(a.Value)
	if err != nil {
		return value.Next, err
	}
	switch a.Scope {
	case ast.ScopeGlobal:
		v.global()[a.Name] = val
	default:
		v.current()[a.Name] = val
	}
	return value.Next, nil
}

func (v *visitor) VisitProcedureCall(p *ast.ProcedureCall) (value.Control, error) {
	def, ok := v.functions[p.Name]
	if !ok {
		v.logger.Warn("Unknown procedure: "+p.Name, mdwlog.Fields{"procedure": p.Name, "line": p.Pos.Line})
		return value.Next, nil
	}
	args := make([]value.Value, len(p.Args))
	for i, a := range p.Args {
		val, err := v.eval(a)
		if err != nil {
			return value.Next, err
		}
		args[i] = val
	}
	if _, err := v.call(def, args); err != nil {
		if v.in.mode == matheval.Strict {
			return value.Next, mdwerror.Wrap(err, "procedure failed").
				WithCode(mdwerror.CodeEvaluationFailed).
				WithOperation("interpreter.VisitProcedureCall").
				WithDetail("procedure", p.Name)
		}
		v.logger.ErrorWithErr("Procedure failed", err, mdwlog.Fields{"procedure": p.Name})
	}
	return value.Next, nil
}

func (v *visitor) VisitReturn(r *ast.Return) (value.Control, error) {
	if r.Value == nil {
		return value.Returning(value.Nil), nil
	}
	val, err := v.eval(r.Value)
	if err != nil {
		return value.Next, err
	}
	return value.Returning(val), nil
}

func (v *visitor) VisitStop(*ast.Stop) (value.Control, error) {
	return value.Halted, nil
}

// hatch adds a turtle with the next free id
func (v *visitor) hatch() *turtle.Turtle {
	t := turtle.New(v.in.repo.NextID())
	v.in.repo.Save(t)
	return t
}
