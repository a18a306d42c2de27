// Package syntax serves editor-time features: validation with friendly
// localized messages, and token highlighting driven by the grammar.
package syntax
