// File: interpreter.go
// Title: GeoTortue Interpreter
// Description: Runs a script end to end: waits for the DSL dictionary,
//              lexes, refines localized words, parses and walks the tree
//              with a fresh execution visitor. Syntax errors stop the run
//              before anything executes.
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
	"sync"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/cache"
	"github.com/msto63/geotortue/internal/dsl/lexer"
	"github.com/msto63/geotortue/internal/dsl/parser"
	"github.com/msto63/geotortue/internal/dsl/refiner"
	"github.com/msto63/geotortue/internal/dsl/token"
	"github.com/msto63/geotortue/internal/matheval"
	"github.com/msto63/geotortue/internal/turtle"
	"github.com/msto63/geotortue/internal/value"
)

const defaultMaxCallDepth = 256

// Localizer is what the interpreter needs from the localization service
type Localizer interface {
	CanonicalID(word string) (token.Type, bool)
	GetCSSColor(word string) (string, bool)
	DSLLanguage() string
}

// readier is implemented by localizers whose dictionaries load lazily
type readier interface {
	Ready(ctx context.Context) error
}

// cacheReporter is implemented by evaluators that cache compiled expressions
type cacheReporter interface {
	CacheStats() cache.Stats
}

// Evaluator evaluates expression text against a scope
type Evaluator interface {
	Evaluate(expr string, scope matheval.Scope, mode matheval.Mode) (value.Value, error)
}

// Options configures an Interpreter
type Options struct {
	// Language may be nil; then only canonical names are understood
	Language   Localizer
	Evaluator  Evaluator
	Repository turtle.Repository
	Output     Output
	Control    *ExecutionContext
	Logger     *mdwlog.Logger
	// EvalMode is "silent", "log" (default) or "strict"; in strict mode an
	// expression failure aborts the run
	EvalMode string
	// MaxLoopIterations bounds the loop iterations of one run; 0 means
	// unlimited
	MaxLoopIterations int
	MaxCallDepth      int
}

// Result summarizes a finished run
type Result struct {
	RunID      string
	Statements int
	Turtles    int
	Lines      int
	Duration   time.Duration
	// Value is set when the script ended with a return statement
	Value value.Value
}

// Interpreter executes scripts against a turtle repository. Runs are
// serialized; each run gets its own visitor.
type Interpreter struct {
	lang      Localizer
	evaluator Evaluator
	repo      turtle.Repository
	output    Output
	control   *ExecutionContext
	parser    *parser.Parser
	logger    *mdwlog.Logger
	mode      matheval.Mode
	maxLoops  int
	maxDepth  int

	mu sync.Mutex
}

// New creates an interpreter
func New(opts Options) (*Interpreter, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	mode, err := matheval.ParseMode(opts.EvalMode)
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid interpreter options").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("interpreter.New")
	}
	if opts.MaxLoopIterations < 0 {
		return nil, mdwerror.New("max loop iterations cannot be negative").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("interpreter.New")
	}
	if opts.Evaluator == nil {
		opts.Evaluator = matheval.New(matheval.Options{Logger: opts.Logger})
	}
	if opts.Repository == nil {
		opts.Repository = turtle.NewWithDefaultTurtle(opts.Logger)
	}
	if opts.Output == nil {
		opts.Output = DiscardOutput
	}
	if opts.Control == nil {
		opts.Control = NewExecutionContext()
	}
	if opts.MaxCallDepth <= 0 {
		opts.MaxCallDepth = defaultMaxCallDepth
	}

	logger := opts.Logger.WithFields(mdwlog.Fields{
		"component": "interpreter",
		"eval_mode": mode.String(),
	})
	in := &Interpreter{
		lang:      opts.Language,
		evaluator: opts.Evaluator,
		repo:      opts.Repository,
		output:    opts.Output,
		control:   opts.Control,
		parser:    parser.New(parser.Options{Logger: opts.Logger}),
		logger:    logger,
		mode:      mode,
		maxLoops:  opts.MaxLoopIterations,
		maxDepth:  opts.MaxCallDepth,
	}

	logger.Debug("Interpreter initialized", mdwlog.Fields{
		"maxLoopIterations": opts.MaxLoopIterations,
		"maxCallDepth":      opts.MaxCallDepth,
	})
	return in, nil
}

// Repository returns the turtle repository the interpreter draws on
func (in *Interpreter) Repository() turtle.Repository { return in.repo }

// Control returns the halt switch of the interpreter
func (in *Interpreter) Control() *ExecutionContext { return in.control }

// Execute runs script. A syntax error is returned as an error carrying
// CodeSyntaxError that wraps a *parser.SyntaxErrors; nothing runs in that
// case. A halt request, a cancelled ctx or the loop limit end the run
// with CodeExecutionStopped. Soft problems such as unknown procedures
// are logged and never fail the run.
func (in *Interpreter) Execute(ctx context.Context, script string) (*Result, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	runID := uuid.NewString()
	logger := in.logger.WithRunID(runID)
	start := time.Now()

	if r, ok := in.lang.(readier); ok {
		if err := r.Ready(ctx); err != nil {
			logger.WarnWithErr("DSL dictionary unavailable, only canonical names are understood", err,
				mdwlog.Fields{"language": in.lang.DSLLanguage()})
		}
	}

	tokens := lexer.Tokenize(script)
	if in.lang != nil {
		tokens = refiner.Refine(tokens, in.lang)
	}
	prog, err := in.parser.Parse(script, tokens)
	if err != nil {
		logger.Debug("Script rejected", mdwlog.Fields{"error": err.Error()})
		return nil, mdwerror.Wrap(err, "script has syntax errors").
			WithCode(mdwerror.CodeSyntaxError).
			WithOperation("interpreter.Execute")
	}

	logger.Info("Script execution started", mdwlog.Fields{"statements": len(prog.Statements)})

	v := newVisitor(ctx, in, logger)
	ctl, err := v.run(prog)
	result := &Result{
		RunID:      runID,
		Statements: len(prog.Statements),
		Duration:   time.Since(start),
	}
	for _, t := range in.repo.GetAll() {
		result.Turtles++
		result.Lines += t.LineCount()
	}
	if ctl.Flow == value.Return {
		result.Value = ctl.Value
	}
	if err != nil {
		logger.WarnWithErr("Script execution stopped", err, mdwlog.Fields{"duration": result.Duration.String()})
		return result, err
	}

	logger.Info("Script execution completed", mdwlog.Fields{
		"duration": result.Duration.String(),
		"turtles":  result.Turtles,
		"lines":    result.Lines,
	})
	if c, ok := in.evaluator.(cacheReporter); ok {
		stats := c.CacheStats()
		logger.Debug("Expression cache", mdwlog.Fields{
			"size":     stats.Size,
			"hit_rate": stats.HitRate(),
		})
	}
	return result, nil
}
