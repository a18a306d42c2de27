// File: lexer.go
// Title: GeoTortue Lexer
// Description: Splits script text into tokens carrying byte offsets,
//              line and column. Whitespace is not tokenized but offsets are
//              exact, so text between tokens can be preserved byte for byte
//              when a script is rewritten. Canonical names written literally
//              (GT_FORWARD, GT_REP, ...) are recognized here; localized words
//              are left as identifiers for the refiner.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation, adapted from the TCOL lexer

package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/msto63/geotortue/internal/dsl/token"
)

var singleCharTokens = map[rune]token.Type{
	'[': token.LBracket, ']': token.RBracket,
	'(': token.LParen, ')': token.RParen,
	',': token.Comma, ';': token.Semicolon,
	'+': token.Plus, '-': token.Minus,
	'*': token.Mult, '%': token.Mod, '^': token.Pow,
}

// Lexer tokenizes a script
type Lexer struct {
	input   string
	pos     int // offset of ch
	readPos int // offset after ch
	ch      rune
	width   int
	line    int
	column  int
	newline bool
}

// New creates a lexer for input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	l.column = 1
	return l
}

// Tokenize returns every token of input including hidden comment tokens.
// The last token is always EOF.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

// NextToken returns the next token
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	start, line, col := l.pos, l.line, l.column
	nl := l.newline
	l.newline = false

	emit := func(typ token.Type) token.Token {
		return token.Token{
			Type:          typ,
			Text:          l.input[start:l.pos],
			Start:         start,
			End:           l.pos,
			Line:          line,
			Column:        col,
			NewlineBefore: nl,
		}
	}
	// two consumes a two-character operator when the next char matches
	two := func(next rune, double, single token.Type) token.Token {
		l.readChar()
		if l.ch == next {
			l.readChar()
			return emit(double)
		}
		return emit(single)
	}

	switch {
	case l.ch == 0 && l.pos >= len(l.input):
		return emit(token.EOF)
	case isLetter(l.ch):
		l.readIdentifier()
		tok := emit(token.Ident)
		if typ, ok := token.LookupCanonical(tok.Text); ok {
			tok.Type = typ
		}
		return tok
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		l.readNumber()
		return emit(token.Number)
	case l.ch == '"' || l.ch == '\'':
		if !l.readString(l.ch) {
			return emit(token.Illegal)
		}
		return emit(token.String)
	}

	switch l.ch {
	case '/':
		switch l.peekChar() {
		case '/':
			for l.ch != '\n' && l.pos < len(l.input) {
				l.readChar()
			}
			return emit(token.Comment)
		case '*':
			l.readChar()
			l.readChar()
			for l.pos < len(l.input) && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.pos >= len(l.input) {
				return emit(token.Illegal)
			}
			l.readChar()
			l.readChar()
			return emit(token.BlockComment)
		}
		l.readChar()
		return emit(token.Div)
	case ':':
		return two('=', token.Assign, token.Illegal)
	case '=':
		return two('=', token.Eq, token.Eq)
	case '!':
		return two('=', token.NotEq, token.Not)
	case '<':
		l.readChar()
		switch l.ch {
		case '=':
			l.readChar()
			return emit(token.LessEq)
		case '>':
			l.readChar()
			return emit(token.NotEq)
		}
		return emit(token.Less)
	case '>':
		return two('=', token.GreaterEq, token.Greater)
	case '&':
		return two('&', token.And, token.Illegal)
	case '|':
		return two('|', token.Or, token.Illegal)
	}

	typ, ok := singleCharTokens[l.ch]
	if !ok {
		typ = token.Illegal
	}
	l.readChar()
	return emit(typ)
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.pos = l.readPos
	if l.readPos >= len(l.input) {
		l.ch, l.width = 0, 0
		l.column++
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.input[l.readPos:])
	l.readPos += l.width
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.ch) {
		if l.ch == '\n' {
			l.newline = true
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() {
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) readNumber() {
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '-' || next == '+' {
			l.readChar()
			if l.ch == '-' || l.ch == '+' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
}

// readString consumes a quoted string; it reports false when the closing
// quote is missing
func (l *Lexer) readString(quote rune) bool {
	l.readChar()
	for l.pos < len(l.input) {
		switch l.ch {
		case '\\':
			l.readChar()
		case quote:
			l.readChar()
			return true
		case '\n':
			return false
		}
		l.readChar()
	}
	return false
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
