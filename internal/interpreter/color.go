// File: color.go
// Title: Pen Color Resolution
// Description: Turns the argument of the pen color command into a CSS
//              color. String literals are taken as written, other
//              expressions are evaluated strictly, and an undefined bare
//              word falls back to its own text so that "crayon rouge"
//              works without a variable named rouge.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package interpreter

import (
	"strings"

	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/dsl/ast"
	"github.com/msto63/geotortue/internal/matheval"
	"github.com/msto63/geotortue/internal/turtle"
)

// resolveColor returns the color named by e. Unknown colors and
// evaluation failures other than an undefined symbol yield false.
func (v *visitor) resolveColor(e *ast.Expr) (turtle.Color, bool) {
	var raw string
	if e.IsString() {
		raw = matheval.Unquote(e.Text)
	} else {
		val, err := v.in.evaluator.Evaluate(e.Text, v.scope(), matheval.Strict)
		switch {
		case err == nil:
			raw = val.String()
		case matheval.IsUndefinedSymbol(err):
			v.logger.Warn("Undefined symbol used as color literal", mdwlog.Fields{"text": e.Text, "line": e.Pos.Line})
			raw = e.Text
		default:
			v.logger.ErrorWithErr("Color evaluation failed", err, mdwlog.Fields{"expression": e.Text})
			return "", false
		}
	}

	candidate := v.normalizeColor(raw)
	col, ok := turtle.ParseColor(candidate)
	if !ok {
		v.logger.Warn("Invalid color ignored", mdwlog.Fields{"color": raw, "line": e.Pos.Line})
		return "", false
	}
	return col, true
}

// normalizeColor strips quotes and case, then maps a localized color name
// to its CSS name. Hex colors and unknown words are returned as they are.
func (v *visitor) normalizeColor(raw string) string {
	s := strings.ToLower(strings.TrimSpace(matheval.Unquote(strings.TrimSpace(raw))))
	if turtle.IsHexColor(s) || v.in.lang == nil {
		return s
	}
	if css, ok := v.in.lang.GetCSSColor(s); ok {
		return css
	}
	return s
}
