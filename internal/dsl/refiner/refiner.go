// File: refiner.go
// Title: Token Refiner
// Description: Post-lexing pass that turns localized words into canonical
//              command and keyword tokens so that one grammar serves every
//              DSL language.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

// Package refiner promotes generic word tokens to canonical token types
// using the active DSL dictionary.
package refiner

import "github.com/msto63/geotortue/internal/dsl/token"

// Resolver maps a word of the active DSL language to its canonical type
type Resolver interface {
	CanonicalID(word string) (token.Type, bool)
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(word string) (token.Type, bool)

// CanonicalID calls f
func (f ResolverFunc) CanonicalID(word string) (token.Type, bool) { return f(word) }

// Refine returns a new token slice in which every identifier known to r
// carries its canonical type. Only identifiers are looked up; the input
// slice is left untouched.
func Refine(tokens []token.Token, r Resolver) []token.Token {
	out := make([]token.Token, len(tokens))
	copy(out, tokens)
	if r == nil {
		return out
	}
	for i, tok := range out {
		if tok.Type != token.Ident {
			continue
		}
		if typ, ok := r.CanonicalID(tok.Text); ok && typ.IsCanonical() {
			out[i] = tok.WithType(typ)
		}
	}
	return out
}
