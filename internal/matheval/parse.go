// File: parse.go
// Title: Expression Parser
// Description: Precedence-climbing parser over the DSL lexer's tokens.
//              Precedence from loosest to tightest: ||, &&, equality,
//              comparison, + -, * / %, unary - + !, ^ (right
//              associative), then calls, literals, lists and groups.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package matheval

import (
	"strconv"
	"strings"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	"github.com/msto63/geotortue/internal/dsl/lexer"
	"github.com/msto63/geotortue/internal/dsl/token"
	"github.com/msto63/geotortue/internal/value"
)

type exprParser struct {
	src    string
	tokens []token.Token
	pos    int
}

func parse(src string) (node, error) {
	var tokens []token.Token
	for _, t := range lexer.Tokenize(src) {
		if !t.Type.IsHidden() {
			tokens = append(tokens, t)
		}
	}
	p := &exprParser{src: src, tokens: tokens}
	if p.peek().Type == token.EOF {
		return nil, p.errorf("empty expression")
	}
	root, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Type != token.EOF {
		return nil, p.errorf("unexpected %q at offset %d", t.Text, t.Start)
	}
	return root, nil
}

func (p *exprParser) peek() token.Token { return p.tokens[p.pos] }

func (p *exprParser) next() token.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *exprParser) errorf(format string, args ...interface{}) error {
	return mdwerror.Newf(format, args...).
		WithCode(mdwerror.CodeEvaluationFailed).
		WithDetail("expression", p.src)
}

// binaryLevels lists the binary operators by increasing precedence
var binaryLevels = [][]token.Type{
	{token.Or},
	{token.And},
	{token.Eq, token.NotEq},
	{token.Less, token.LessEq, token.Greater, token.GreaterEq},
	{token.Plus, token.Minus},
	{token.Mult, token.Div, token.Mod},
}

func levelOf(t token.Type) int {
	for i, ops := range binaryLevels {
		for _, op := range ops {
			if op == t {
				return i
			}
		}
	}
	return -1
}

func (p *exprParser) parseBinary(minLevel int) (node, error) {
	if minLevel >= len(binaryLevels) {
		return p.parseUnary()
	}
	left, err := p.parseBinary(minLevel + 1)
	if err != nil {
		return nil, err
	}
	for levelOf(p.peek().Type) == minLevel {
		op := p.next().Type
		right, err := p.parseBinary(minLevel + 1)
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *exprParser) parseUnary() (node, error) {
	switch t := p.peek().Type; t {
	case token.Minus, token.Plus, token.Not:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: t, operand: operand}, nil
	}
	return p.parsePower()
}

func (p *exprParser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != token.Pow {
		return base, nil
	}
	p.next()
	// right associative; the exponent may carry its own sign
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &binaryNode{op: token.Pow, left: base, right: exp}, nil
}

func (p *exprParser) parsePrimary() (node, error) {
	t := p.next()
	switch t.Type {
	case token.Number:
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, p.errorf("invalid number %q", t.Text)
		}
		return &literalNode{v: value.Num(f)}, nil
	case token.String:
		return &literalNode{v: value.Str(Unquote(t.Text))}, nil
	case token.Ident:
		if p.peek().Type == token.LParen {
			p.next()
			args, err := p.parseList(token.RParen)
			if err != nil {
				return nil, err
			}
			return &callNode{name: t.Text, args: args}, nil
		}
		return &symbolNode{name: t.Text}, nil
	case token.LParen:
		inner, err := p.parseBinary(0)
		if err != nil {
			return nil, err
		}
		if p.next().Type != token.RParen {
			return nil, p.errorf("missing ')'")
		}
		return inner, nil
	case token.LBracket:
		items, err := p.parseList(token.RBracket)
		if err != nil {
			return nil, err
		}
		return &listNode{items: items}, nil
	case token.EOF:
		return nil, p.errorf("unexpected end of expression")
	}
	return nil, p.errorf("unexpected %q", t.Text)
}

// parseList reads "a, b)" or "a, b]" after the opener
func (p *exprParser) parseList(closer token.Type) ([]node, error) {
	var items []node
	if p.peek().Type == closer {
		p.next()
		return items, nil
	}
	for {
		item, err := p.parseBinary(0)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		switch p.next().Type {
		case token.Comma:
		case closer:
			return items, nil
		default:
			return nil, p.errorf("expected ',' or %s in list", closer)
		}
	}
}

// Unquote strips the quotes of a string literal and resolves escapes.
// Text without surrounding quotes is returned unchanged.
func Unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	q := s[0]
	if (q != '"' && q != '\'') || s[len(s)-1] != q {
		return s
	}
	body := s[1 : len(s)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i == len(body)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}
