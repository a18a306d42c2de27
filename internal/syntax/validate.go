// File: validate.go
// Title: Syntax Validation
// Description: Editor-time validation of a script: lex, refine, parse and
//              turn every syntax error into a friendly, localized message.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package syntax

import (
	"errors"

	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/dsl/grammar"
	"github.com/msto63/geotortue/internal/dsl/lexer"
	"github.com/msto63/geotortue/internal/dsl/parser"
	"github.com/msto63/geotortue/internal/dsl/refiner"
	"github.com/msto63/geotortue/internal/dsl/token"
)

// Localizer resolves localized words and renders UI messages
type Localizer interface {
	CanonicalID(word string) (token.Type, bool)
	Translate(key string, data ...map[string]interface{}) string
}

// catalog is implemented by localizers that can tell a missing UI message
// from a translated one
type catalog interface {
	HasTranslation(key string) bool
}

// Diagnostic is one problem found in a script
type Diagnostic struct {
	Line    int
	Column  int
	Kind    parser.ErrorKind
	Message string
}

// Options configures a Validator
type Options struct {
	Localizer Localizer
	Reflector *grammar.Reflector
	Logger    *mdwlog.Logger
}

// Validator checks scripts and classifies their syntax errors
type Validator struct {
	loc       Localizer
	parser    *parser.Parser
	reflector *grammar.Reflector
	styles    StyleMap
	logger    *mdwlog.Logger
}

// New creates a validator. Without a Localizer only canonical names are
// recognized and messages fall back to the parser's own text.
func New(opts Options) *Validator {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	r := opts.Reflector
	if r == nil {
		r = grammar.NewReflector(nil)
	}
	return &Validator{
		loc:       opts.Localizer,
		parser:    parser.New(parser.Options{Logger: logger, Reflector: r}),
		reflector: r,
		styles:    NewStyleMap(r),
		logger:    logger.WithField("component", "syntax"),
	}
}

// Tokens lexes and refines code, hidden tokens included
func (v *Validator) Tokens(code string) []token.Token {
	tokens := lexer.Tokenize(code)
	if v.loc == nil {
		return tokens
	}
	return refiner.Refine(tokens, v.loc)
}

// Validate returns one diagnostic per syntax error, in source order. A
// valid script yields an empty slice.
func (v *Validator) Validate(code string) []Diagnostic {
	_, err := v.parser.Parse(code, v.Tokens(code))
	if err == nil {
		return []Diagnostic{}
	}

	var errs *parser.SyntaxErrors
	if !errors.As(err, &errs) {
		v.logger.ErrorWithErr("Unexpected parser failure", err)
		return []Diagnostic{{Line: 1, Column: 1, Kind: parser.ErrGeneric, Message: err.Error()}}
	}

	out := make([]Diagnostic, 0, len(errs.Errors))
	for _, e := range errs.Errors {
		out = append(out, Diagnostic{
			Line:    e.Line,
			Column:  e.Column,
			Kind:    e.Kind,
			Message: v.friendly(e),
		})
	}
	v.logger.Debug("Validation finished", mdwlog.Fields{"diagnostics": len(out)})
	return out
}

// friendly renders the UI message of an error kind, keeping the parser's
// message when no catalog entry exists
func (v *Validator) friendly(e *parser.SyntaxError) string {
	if v.loc == nil {
		return e.Message
	}
	key := "syntax." + e.Kind.String()
	if c, ok := v.loc.(catalog); ok && !c.HasTranslation(key) {
		return e.Message
	}
	msg := v.loc.Translate(key, map[string]interface{}{"Token": e.Near()})
	if msg == "" || msg == "["+key+"]" {
		return e.Message
	}
	return msg
}
