// Package grammar describes the GeoTortue language as a network of rules
// and offers a Reflector to inspect it at runtime.
//
// The network is not used to parse; the hand-written parser in package
// parser implements the same rules. The reflector answers questions such
// as "which tokens belong to the primitive rule" for syntax highlighting,
// and "which tokens can start an expression" for the parser itself.
//
//	r := grammar.NewReflector(nil)
//	commands := r.TokensForRule(grammar.Primitive, false)
//	if r.CanStart(grammar.Expr, tok.Type) { ... }
//
// Command arguments come from one signature table (SignatureOf) shared by
// the network and the parser.
package grammar
