// File: evaluator.go
// Title: Math Evaluator
// Description: Evaluates the expression text of a script against a scope
//              of variables and functions. Three modes control failures:
//              silent returns 0, log returns 0 after logging, strict
//              returns the error so callers can tell an undefined symbol
//              from other failures. Compiled expressions are cached by
//              source text.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package matheval

import (
	"fmt"
	"math/rand/v2"
	"strings"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/cache"
	"github.com/msto63/geotortue/internal/value"
)

// Mode selects how evaluation failures are reported
type Mode int

const (
	// Silent degrades failures to 0 without a trace
	Silent Mode = iota
	// Log degrades failures to 0 and logs them
	Log
	// Strict returns failures to the caller
	Strict
)

func (m Mode) String() string {
	switch m {
	case Silent:
		return "silent"
	case Log:
		return "log"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return Silent, nil
	case "log", "":
		return Log, nil
	case "strict", "error":
		return Strict, nil
	}
	return Log, mdwerror.Newf("unknown evaluation mode %q", s).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("matheval.ParseMode")
}

// Function is a callable exposed to expressions
type Function func(args []value.Value) (value.Value, error)

// Scope is what an expression can see. Funcs shadow the built-ins.
type Scope struct {
	Vars  map[string]value.Value
	Funcs map[string]Function
}

// Options configures the evaluator
type Options struct {
	Logger *mdwlog.Logger
	// Random returns a number in [0, 1); defaults to math/rand/v2
	Random func() float64
	// CacheSize bounds the compiled expression cache (default 1024)
	CacheSize int
}

// Evaluator compiles and evaluates expressions. It is safe for
// concurrent use.
type Evaluator struct {
	logger   *mdwlog.Logger
	builtins map[string]Function
	compiled *cache.Cache[string, *Expression]
}

// New creates an evaluator
func New(opts Options) *Evaluator {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Random == nil {
		opts.Random = rand.Float64
	}
	return &Evaluator{
		logger:   opts.Logger.WithField("component", "matheval"),
		builtins: builtins(opts.Random),
		compiled: cache.New[string, *Expression](opts.CacheSize),
	}
}

// Evaluate compiles expr (or reuses a cached compilation) and evaluates
// it in scope
func (e *Evaluator) Evaluate(expr string, scope Scope, mode Mode) (value.Value, error) {
	result, err := e.evaluate(expr, scope)
	if err == nil {
		return result, nil
	}

	switch mode {
	case Strict:
		return value.Nil, err
	case Log:
		e.logger.ErrorWithErr("Math evaluation error", err, mdwlog.Fields{"expression": expr})
	}
	return value.Num(0), nil
}

func (e *Evaluator) evaluate(expr string, scope Scope) (value.Value, error) {
	compiled, err := e.Compile(expr)
	if err != nil {
		return value.Nil, err
	}
	return compiled.eval(&env{scope: scope, builtins: e.builtins})
}

// Compile parses expr into a reusable Expression
func (e *Evaluator) Compile(expr string) (*Expression, error) {
	return e.compiled.GetOrSet(expr, func() (*Expression, error) {
		root, err := parse(expr)
		if err != nil {
			return nil, err
		}
		return &Expression{source: expr, root: root}, nil
	})
}

// CacheStats reports the compiled expression cache counters
func (e *Evaluator) CacheStats() cache.Stats {
	return e.compiled.Stats()
}

// Expression is a compiled expression
type Expression struct {
	source string
	root   node
}

// Source returns the text the expression was compiled from
func (x *Expression) Source() string { return x.source }

func (x *Expression) eval(en *env) (value.Value, error) {
	v, err := x.root.eval(en)
	if err != nil {
		return value.Nil, mdwerror.Wrap(err, fmt.Sprintf("evaluating %q", x.source)).
			WithOperation("matheval.Evaluate")
	}
	return v, nil
}

// IsUndefinedSymbol reports whether err was caused by an unknown variable
// or function name
func IsUndefinedSymbol(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeUndefinedSymbol)
}

func undefinedSymbol(name string) error {
	return mdwerror.Newf("undefined symbol %s", name).
		WithCode(mdwerror.CodeUndefinedSymbol).
		WithDetail("symbol", name)
}

func evalError(format string, args ...interface{}) error {
	return mdwerror.Newf(format, args...).WithCode(mdwerror.CodeEvaluationFailed)
}
