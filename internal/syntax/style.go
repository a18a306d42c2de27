// File: style.go
// Title: Token Styles
// Description: Highlighting classes for tokens, derived from the grammar
//              network through the reflector rather than from hand-kept
//              keyword lists.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package syntax

import (
	"github.com/msto63/geotortue/internal/dsl/grammar"
	"github.com/msto63/geotortue/internal/dsl/token"
)

// Style is a highlighting class
type Style int

const (
	StylePlain Style = iota
	StyleCommand
	StyleKeyword
	StyleOperator
	StyleNumber
	StyleString
	StyleWord
	StyleVariable
	StyleComment
	StyleError
)

func (s Style) String() string {
	switch s {
	case StyleCommand:
		return "command"
	case StyleKeyword:
		return "keyword"
	case StyleOperator:
		return "operator"
	case StyleNumber:
		return "number"
	case StyleString:
		return "string"
	case StyleWord:
		return "word"
	case StyleVariable:
		return "variable"
	case StyleComment:
		return "comment"
	case StyleError:
		return "error"
	default:
		return "plain"
	}
}

// StyleMap assigns a style to each token type
type StyleMap map[token.Type]Style

// NewStyleMap classifies token types by the grammar rules they occur in
func NewStyleMap(r *grammar.Reflector) StyleMap {
	m := StyleMap{
		token.Number:       StyleNumber,
		token.String:       StyleString,
		token.Ident:        StyleWord,
		token.Comment:      StyleComment,
		token.BlockComment: StyleComment,
		token.Illegal:      StyleError,
	}
	for _, t := range r.TokensForRule(grammar.Expr, true).Types() {
		if t.IsOperator() {
			m[t] = StyleOperator
		}
	}
	for _, t := range r.TokensForRule(grammar.Block, false).Types() {
		m[t] = StyleOperator
	}
	m[token.Assign] = StyleOperator

	keywords := []grammar.TokenSet{
		r.TokensForRule(grammar.Structure, true, grammar.Expr, grammar.Block, grammar.Atom),
		r.TokensForRule(grammar.Statement, false),
		r.TokensForRule(grammar.Assignment, false),
	}
	for _, set := range keywords {
		for _, t := range set.Types() {
			if t.IsKeyword() {
				m[t] = StyleKeyword
			}
		}
	}
	for _, t := range r.TokensForRule(grammar.Primitive, false).Types() {
		if t.IsCommand() {
			m[t] = StyleCommand
		}
	}
	return m
}

// Of returns the style of a token type
func (m StyleMap) Of(t token.Type) Style {
	return m[t]
}

// Span is a styled token
type Span struct {
	Token token.Token
	Style Style
}

// Highlight styles every token of code. Identifiers that are assigned,
// declared as loop variables or as function parameters are variables.
func (v *Validator) Highlight(code string) []Span {
	tokens := v.Tokens(code)
	variables := assignedNames(tokens)

	spans := make([]Span, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == token.EOF {
			break
		}
		style := v.styles.Of(tok.Type)
		if tok.Type == token.Ident && variables[tok.Text] {
			style = StyleVariable
		}
		spans = append(spans, Span{Token: tok, Style: style})
	}
	return spans
}

func assignedNames(tokens []token.Token) map[string]bool {
	visible := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if !t.Type.IsHidden() {
			visible = append(visible, t)
		}
	}

	names := make(map[string]bool)
	inParams := false
	for i, t := range visible {
		if t.Type != token.Ident {
			inParams = inParams && t.Type != token.RParen
			if i >= 2 && t.Type == token.LParen && visible[i-2].Type == token.Fun {
				inParams = true
			}
			continue
		}
		switch {
		case inParams:
			names[t.Text] = true
		case i+1 < len(visible) && visible[i+1].Type == token.Assign:
			names[t.Text] = true
		case i > 0 && visible[i-1].Type == token.ForEach:
			names[t.Text] = true
		}
	}
	return names
}
