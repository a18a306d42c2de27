// Package ast defines the syntax tree of GeoTortue scripts.
//
// Statements implement Stmt and are executed through a Visitor whose
// methods return a value.Control: Continue, Return(value) or Stop.
// Expressions are not broken down further; an Expr carries the exact
// source slice and the tokens it spans, ready to be handed to the math
// evaluator.
//
// Inspect offers a read-only walk for analysis passes such as collecting
// the variables a script binds.
package ast
