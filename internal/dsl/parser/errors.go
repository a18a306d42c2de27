// File: errors.go
// Title: Syntax Errors
// Description: Categorized syntax errors collected by the parser. The
//              categories are coarse on purpose; they select the friendly
//              message shown to the user.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package parser

import (
	"fmt"
	"strings"

	"github.com/msto63/geotortue/internal/dsl/token"
)

// ErrorKind classifies a syntax error
type ErrorKind int

const (
	ErrGeneric ErrorKind = iota
	ErrUnclosedBlock
	ErrMissingSeparator
	ErrUnexpectedEOF
	ErrUnknownCommand
	ErrUnexpectedToken
	ErrExpectedNumber
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnclosedBlock:
		return "unclosed_block"
	case ErrMissingSeparator:
		return "missing_separator"
	case ErrUnexpectedEOF:
		return "unexpected_eof"
	case ErrUnknownCommand:
		return "unknown_command"
	case ErrUnexpectedToken:
		return "unexpected_token"
	case ErrExpectedNumber:
		return "expected_number"
	default:
		return "generic"
	}
}

// SyntaxError represents a parsing error with position information
type SyntaxError struct {
	Kind    ErrorKind
	Message string
	Token   token.Token
	Line    int
	Column  int
}

// Near returns the offending text, "<EOF>" at the end of input
func (e *SyntaxError) Near() string {
	if e.Token.Type == token.EOF {
		return "<EOF>"
	}
	return e.Token.Text
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s (near '%s')",
		e.Line, e.Column, e.Message, e.Near())
}

// SyntaxErrors holds every error found in one parse
type SyntaxErrors struct {
	Errors []*SyntaxError
}

func (e *SyntaxErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "syntax error"
	case 1:
		return e.Errors[0].Error()
	}
	lines := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		lines[i] = err.Error()
	}
	return fmt.Sprintf("%d syntax errors:\n%s", len(e.Errors), strings.Join(lines, "\n"))
}

// Unwrap exposes the individual errors to errors.Is and errors.As
func (e *SyntaxErrors) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		out[i] = err
	}
	return out
}
