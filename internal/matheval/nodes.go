// File: nodes.go
// Title: Expression Nodes
// Description: Compiled expression tree and its evaluation rules.
//              Arithmetic broadcasts over lists element by element; "+"
//              concatenates when an operand is non-numeric text.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package matheval

import (
	"math"
	"strconv"
	"strings"

	"github.com/msto63/geotortue/internal/dsl/token"
	"github.com/msto63/geotortue/internal/value"
)

type env struct {
	scope    Scope
	builtins map[string]Function
}

var constants = map[string]value.Value{
	"pi":    value.Num(math.Pi),
	"PI":    value.Num(math.Pi),
	"tau":   value.Num(2 * math.Pi),
	"e":     value.Num(math.E),
	"E":     value.Num(math.E),
	"true":  value.Bool(true),
	"false": value.Bool(false),
}

type node interface {
	eval(en *env) (value.Value, error)
}

type literalNode struct{ v value.Value }

type symbolNode struct{ name string }

type listNode struct{ items []node }

type callNode struct {
	name string
	args []node
}

type unaryNode struct {
	op      token.Type
	operand node
}

type binaryNode struct {
	op          token.Type
	left, right node
}

func (n *literalNode) eval(*env) (value.Value, error) { return n.v, nil }

func (n *symbolNode) eval(en *env) (value.Value, error) {
	if v, ok := en.scope.Vars[n.name]; ok {
		return v, nil
	}
	if v, ok := constants[n.name]; ok {
		return v, nil
	}
	return value.Nil, undefinedSymbol(n.name)
}

func (n *listNode) eval(en *env) (value.Value, error) {
	items := make([]value.Value, len(n.items))
	for i, item := range n.items {
		v, err := item.eval(en)
		if err != nil {
			return value.Nil, err
		}
		items[i] = v
	}
	return value.ListOf(items...), nil
}

func (n *callNode) eval(en *env) (value.Value, error) {
	fn, ok := en.scope.Funcs[n.name]
	if !ok {
		fn, ok = en.builtins[n.name]
	}
	if !ok {
		return value.Nil, undefinedSymbol(n.name)
	}
	args := make([]value.Value, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(en)
		if err != nil {
			return value.Nil, err
		}
		args[i] = v
	}
	return fn(args)
}

func (n *unaryNode) eval(en *env) (value.Value, error) {
	v, err := n.operand.eval(en)
	if err != nil {
		return value.Nil, err
	}
	switch n.op {
	case token.Not:
		return value.Bool(!v.Truthy()), nil
	case token.Minus:
		return mapNumbers(v, func(f float64) float64 { return -f })
	default:
		return mapNumbers(v, func(f float64) float64 { return f })
	}
}

func (n *binaryNode) eval(en *env) (value.Value, error) {
	left, err := n.left.eval(en)
	if err != nil {
		return value.Nil, err
	}

	switch n.op {
	case token.And:
		if !left.Truthy() {
			return value.Bool(false), nil
		}
		right, err := n.right.eval(en)
		if err != nil {
			return value.Nil, err
		}
		return value.Bool(right.Truthy()), nil
	case token.Or:
		if left.Truthy() {
			return value.Bool(true), nil
		}
		right, err := n.right.eval(en)
		if err != nil {
			return value.Nil, err
		}
		return value.Bool(right.Truthy()), nil
	}

	right, err := n.right.eval(en)
	if err != nil {
		return value.Nil, err
	}

	switch n.op {
	case token.Eq:
		return value.Bool(equal(left, right)), nil
	case token.NotEq:
		return value.Bool(!equal(left, right)), nil
	case token.Less, token.LessEq, token.Greater, token.GreaterEq:
		c, err := compare(left, right)
		if err != nil {
			return value.Nil, err
		}
		return value.Bool(holds(n.op, c)), nil
	}
	return arith(n.op, left, right)
}

func holds(op token.Type, c int) bool {
	switch op {
	case token.Less:
		return c < 0
	case token.LessEq:
		return c <= 0
	case token.Greater:
		return c > 0
	default:
		return c >= 0
	}
}

// toNumber converts a scalar; non-numeric text and lists fail
func toNumber(v value.Value) (float64, error) {
	switch v.Kind() {
	case value.Number, value.Boolean, value.Void:
		return v.AsNumber(), nil
	case value.Text:
		s, _ := v.Text()
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, evalError("cannot convert %q to a number", s)
		}
		return f, nil
	}
	return 0, evalError("expected a number, found a %s", v.Kind())
}

func isNumeric(v value.Value) bool {
	_, err := toNumber(v)
	return err == nil
}

func equal(a, b value.Value) bool {
	if a.Kind() == b.Kind() {
		return a.Equal(b)
	}
	if a.Kind() == value.List || b.Kind() == value.List {
		return false
	}
	x, errA := toNumber(a)
	y, errB := toNumber(b)
	return errA == nil && errB == nil && x == y
}

func compare(a, b value.Value) (int, error) {
	if a.Kind() == value.Text && b.Kind() == value.Text {
		x, _ := a.Text()
		y, _ := b.Text()
		return strings.Compare(x, y), nil
	}
	x, err := toNumber(a)
	if err != nil {
		return 0, err
	}
	y, err := toNumber(b)
	if err != nil {
		return 0, err
	}
	switch {
	case x < y:
		return -1, nil
	case x > y:
		return 1, nil
	}
	return 0, nil
}

func arith(op token.Type, a, b value.Value) (value.Value, error) {
	aItems, aList := a.Items()
	bItems, bList := b.Items()
	switch {
	case aList && bList:
		if len(aItems) != len(bItems) {
			return value.Nil, evalError("list sizes differ: %d and %d", len(aItems), len(bItems))
		}
		out := make([]value.Value, len(aItems))
		for i := range aItems {
			v, err := arith(op, aItems[i], bItems[i])
			if err != nil {
				return value.Nil, err
			}
			out[i] = v
		}
		return value.ListOf(out...), nil
	case aList:
		return broadcast(aItems, func(x value.Value) (value.Value, error) { return arith(op, x, b) })
	case bList:
		return broadcast(bItems, func(y value.Value) (value.Value, error) { return arith(op, a, y) })
	}

	if op == token.Plus && (a.Kind() == value.Text || b.Kind() == value.Text) && !(isNumeric(a) && isNumeric(b)) {
		return value.Str(a.String() + b.String()), nil
	}

	x, err := toNumber(a)
	if err != nil {
		return value.Nil, err
	}
	y, err := toNumber(b)
	if err != nil {
		return value.Nil, err
	}

	switch op {
	case token.Plus:
		return value.Num(x + y), nil
	case token.Minus:
		return value.Num(x - y), nil
	case token.Mult:
		return value.Num(x * y), nil
	case token.Div:
		return value.Num(x / y), nil
	case token.Mod:
		return value.Num(floorMod(x, y)), nil
	case token.Pow:
		return value.Num(math.Pow(x, y)), nil
	}
	return value.Nil, evalError("unsupported operator %s", op)
}

func broadcast(items []value.Value, f func(value.Value) (value.Value, error)) (value.Value, error) {
	out := make([]value.Value, len(items))
	for i, item := range items {
		v, err := f(item)
		if err != nil {
			return value.Nil, err
		}
		out[i] = v
	}
	return value.ListOf(out...), nil
}

func mapNumbers(v value.Value, f func(float64) float64) (value.Value, error) {
	if items, ok := v.Items(); ok {
		return broadcast(items, func(x value.Value) (value.Value, error) { return mapNumbers(x, f) })
	}
	x, err := toNumber(v)
	if err != nil {
		return value.Nil, err
	}
	return value.Num(f(x)), nil
}

// floorMod takes the sign of the divisor; a zero divisor returns x
func floorMod(x, y float64) float64 {
	if y == 0 {
		return x
	}
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}
