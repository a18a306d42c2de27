// File: parser.go
// Title: GeoTortue Recursive Descent Parser
// Description: Converts a (refined) token stream into a syntax tree.
//              Statements end at ';', a line break, ']' or the end of
//              input; structures ending with a block need no separator.
//              On error the parser records a categorized SyntaxError,
//              skips to the next separator and keeps going, so one run
//              reports every problem of a script.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation, adapted from the TCOL parser

package parser

import (
	"errors"
	"fmt"
	"slices"

	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/dsl/ast"
	"github.com/msto63/geotortue/internal/dsl/grammar"
	"github.com/msto63/geotortue/internal/dsl/lexer"
	"github.com/msto63/geotortue/internal/dsl/token"
)

const defaultMaxErrors = 50

// errRecover unwinds to the enclosing statement loop after an error has
// been recorded
var errRecover = errors.New("syntax error recorded")

// Options configures parser behavior
type Options struct {
	Logger    *mdwlog.Logger
	Reflector *grammar.Reflector
	MaxErrors int
}

// Parser implements recursive descent parsing for GeoTortue. A Parser
// holds no per-parse state and may be shared.
type Parser struct {
	logger    *mdwlog.Logger
	reflector *grammar.Reflector
	maxErrors int
	binary    grammar.TokenSet
	prefix    grammar.TokenSet
}

// New creates a parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Reflector == nil {
		opts.Reflector = grammar.NewReflector(nil)
	}
	if opts.MaxErrors <= 0 {
		opts.MaxErrors = defaultMaxErrors
	}

	p := &Parser{
		logger:    opts.Logger.WithField("component", "parser"),
		reflector: opts.Reflector,
		maxErrors: opts.MaxErrors,
		binary:    make(grammar.TokenSet),
		prefix:    make(grammar.TokenSet),
	}
	for _, t := range grammar.BinaryOperators {
		p.binary[t] = struct{}{}
	}
	for _, t := range grammar.PrefixOperators {
		p.prefix[t] = struct{}{}
	}
	return p
}

// Parse builds the tree for src from tokens produced by lexing (and
// usually refining) src. Hidden tokens are ignored. On failure the error
// is a *SyntaxErrors.
func (p *Parser) Parse(src string, tokens []token.Token) (*ast.Program, error) {
	visible := make([]token.Token, 0, len(tokens)+1)
	for _, t := range tokens {
		if !t.Type.IsHidden() {
			visible = append(visible, t)
		}
	}
	if len(visible) == 0 || visible[len(visible)-1].Type != token.EOF {
		visible = append(visible, token.Token{Type: token.EOF, Start: len(src), End: len(src)})
	}

	p.logger.Debug("Starting parse", mdwlog.Fields{"tokens": len(visible)})

	s := &state{Parser: p, src: src, tokens: visible, cur: visible[0]}
	prog := s.parseProgram()
	if len(s.errs) > 0 {
		p.logger.Debug("Parsing failed", mdwlog.Fields{"errors": len(s.errs)})
		return nil, &SyntaxErrors{Errors: s.errs}
	}

	p.logger.Debug("Parsing completed", mdwlog.Fields{"statements": len(prog.Statements)})
	return prog, nil
}

// ParseString lexes and parses src. Only canonical command names are
// recognized; localized words need the refiner first.
func (p *Parser) ParseString(src string) (*ast.Program, error) {
	return p.Parse(src, lexer.Tokenize(src))
}

// state is the cursor of one parse
type state struct {
	*Parser
	src    string
	tokens []token.Token
	pos    int
	cur    token.Token
	prev   token.Token
	errs   []*SyntaxError
}

func (s *state) advance() {
	s.prev = s.cur
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
	s.cur = s.tokens[s.pos]
}

func (s *state) peekAt(n int) token.Token {
	if i := s.pos + n; i < len(s.tokens) {
		return s.tokens[i]
	}
	return s.tokens[len(s.tokens)-1]
}

func (s *state) tooMany() bool {
	return len(s.errs) >= s.maxErrors
}

// fail records an error at tok and returns errRecover
func (s *state) fail(kind ErrorKind, at token.Token, format string, args ...interface{}) error {
	if at.Type == token.EOF && kind != ErrUnclosedBlock {
		kind = ErrUnexpectedEOF
	}
	if n := len(s.errs); n > 0 && s.errs[n-1].Token.Start == at.Start && s.errs[n-1].Token.Type == at.Type {
		return errRecover
	}
	if !s.tooMany() {
		s.errs = append(s.errs, &SyntaxError{
			Kind:    kind,
			Message: fmt.Sprintf(format, args...),
			Token:   at,
			Line:    at.Line,
			Column:  at.Column,
		})
	}
	return errRecover
}

func (s *state) expect(typ token.Type) (token.Token, error) {
	if s.cur.Type != typ {
		return s.cur, s.fail(ErrUnexpectedToken, s.cur, "expected %s, found %s", typ, s.cur.Type)
	}
	tok := s.cur
	s.advance()
	return tok, nil
}

func isSeparator(t token.Token) bool {
	switch t.Type {
	case token.Semicolon, token.RBracket, token.EOF:
		return true
	}
	return t.NewlineBefore
}

// synchronize skips the rest of a broken statement. Bracket groups are
// skipped whole; at least one token is consumed when the error occurred
// on the first token of the statement.
func (s *state) synchronize(stmtStart int) {
	depth := 0
	for s.cur.Type != token.EOF {
		if depth == 0 && s.pos > stmtStart {
			if s.cur.Type == token.Semicolon || s.cur.Type == token.RBracket || s.cur.NewlineBefore {
				return
			}
		}
		switch s.cur.Type {
		case token.LBracket:
			depth++
		case token.RBracket:
			if depth > 0 {
				depth--
			}
		}
		s.advance()
	}
}

// Statements

func (s *state) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for s.cur.Type != token.EOF && !s.tooMany() {
		switch s.cur.Type {
		case token.Semicolon:
			s.advance()
			continue
		case token.RBracket:
			s.fail(ErrUnexpectedToken, s.cur, "unmatched ']'")
			s.advance()
			continue
		}
		if stmt := s.statementWithRecovery(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

func (s *state) statementWithRecovery() ast.Stmt {
	start := s.pos
	stmt, err := s.parseStatement()
	if err != nil {
		s.synchronize(start)
		return nil
	}
	s.expectSeparator()
	return stmt
}

func (s *state) expectSeparator() {
	switch s.cur.Type {
	case token.Semicolon:
		s.advance()
		return
	case token.EOF, token.RBracket:
		return
	}
	if s.cur.NewlineBefore || s.prev.Type == token.RBracket {
		return
	}

	if s.cur.Type == token.LBracket {
		s.fail(ErrUnexpectedToken, s.cur, "unexpected block")
		s.synchronize(s.pos)
		return
	}
	s.fail(ErrMissingSeparator, s.cur, "missing ';' before %s", s.cur.Type)
	if !s.reflector.CanStart(grammar.Statement, s.cur.Type) {
		s.synchronize(s.pos)
	}
}

func (s *state) parseStatement() (ast.Stmt, error) {
	switch t := s.cur.Type; {
	case t == token.Rep:
		return s.parseRepeat()
	case t == token.If:
		return s.parseIf()
	case t == token.While:
		return s.parseWhile()
	case t == token.ForEach:
		return s.parseForEach()
	case t == token.Fun:
		return s.parseFunctionDef()
	case t == token.Var:
		return s.parseAssignment(ast.ScopeLocal)
	case t == token.Global && s.peekAt(1).Type == token.Ident && s.peekAt(2).Type == token.Assign:
		return s.parseAssignment(ast.ScopeGlobal)
	case t.IsCommand():
		return s.parseCommand()
	case t == token.Return:
		return s.parseReturn()
	case t == token.Stop:
		stop := &ast.Stop{Pos: ast.PositionOf(s.cur)}
		s.advance()
		return stop, nil
	case t == token.Ident:
		return s.parseIdentStatement()
	case t == token.Illegal:
		return nil, s.fail(ErrGeneric, s.cur, "illegal character sequence %q", s.cur.Text)
	default:
		return nil, s.fail(ErrUnexpectedToken, s.cur, "unexpected %s at start of statement", t)
	}
}

func (s *state) parseIdentStatement() (ast.Stmt, error) {
	next := s.peekAt(1)
	switch {
	case next.Type == token.Assign:
		return s.parseAssignment(ast.ScopeCurrent)
	case next.Type == token.LParen && !next.NewlineBefore, isSeparator(next):
		return s.parseProcedureCall()
	}
	return nil, s.fail(ErrUnknownCommand, s.cur, "unknown command %q", s.cur.Text)
}

func (s *state) parseProcedureCall() (ast.Stmt, error) {
	call := &ast.ProcedureCall{Name: s.cur.Text, Pos: ast.PositionOf(s.cur)}
	s.advance()
	if s.cur.Type == token.LParen && !s.cur.NewlineBefore {
		args, err := s.parseExprList(token.RParen)
		if err != nil {
			return nil, err
		}
		call.Args = args
	}
	return call, nil
}

func (s *state) parseAssignment(scope ast.AssignScope) (ast.Stmt, error) {
	pos := ast.PositionOf(s.cur)
	if scope != ast.ScopeCurrent {
		s.advance()
	}
	name, err := s.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.Assign); err != nil {
		return nil, err
	}
	val, err := s.parseExpr(false)
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Scope: scope, Name: name.Text, Value: val, Pos: pos}, nil
}

func (s *state) parseReturn() (ast.Stmt, error) {
	ret := &ast.Return{Pos: ast.PositionOf(s.cur)}
	s.advance()
	if !s.cur.NewlineBefore && s.reflector.CanStart(grammar.Expr, s.cur.Type) {
		val, err := s.parseExpr(false)
		if err != nil {
			return nil, err
		}
		ret.Value = val
	}
	return ret, nil
}

// parseCommand reads a primitive according to its signature
func (s *state) parseCommand() (ast.Stmt, error) {
	sig, ok := grammar.SignatureOf(s.cur.Type)
	if !ok {
		return nil, s.fail(ErrGeneric, s.cur, "command %s has no signature", s.cur.Type)
	}
	cmd := &ast.Command{Cmd: s.cur.Type, Keyword: s.cur.Text, Pos: ast.PositionOf(s.cur)}
	s.advance()

	for i, kind := range sig.Args {
		if i >= sig.Required() && !s.argAhead(kind, i > 0) {
			break
		}
		if err := s.parseArg(cmd, kind, i > 0); err != nil {
			return nil, err
		}
		if i == len(sig.Args)-1 && sig.Variadic {
			for s.argAhead(kind, true) {
				if err := s.parseArg(cmd, kind, true); err != nil {
					return nil, err
				}
			}
		}
	}
	return cmd, nil
}

// argAhead reports whether an optional argument of kind follows on the
// same line, possibly after a comma
func (s *state) argAhead(kind grammar.ArgKind, commaAllowed bool) bool {
	t := s.cur
	if t.NewlineBefore {
		return false
	}
	if commaAllowed && t.Type == token.Comma {
		t = s.peekAt(1)
	} else if t.Type == token.Comma {
		return false
	}
	switch kind {
	case grammar.ArgName:
		return t.Type == token.Ident
	case grammar.ArgBlock:
		return t.Type == token.LBracket
	default:
		return s.reflector.CanStart(grammar.Expr, t.Type)
	}
}

func (s *state) parseArg(cmd *ast.Command, kind grammar.ArgKind, commaAllowed bool) error {
	if commaAllowed && s.cur.Type == token.Comma {
		s.advance()
	}
	switch kind {
	case grammar.ArgName:
		name, err := s.expect(token.Ident)
		if err != nil {
			return err
		}
		cmd.Names = append(cmd.Names, name.Text)
	case grammar.ArgBlock:
		body, err := s.parseBlock()
		if err != nil {
			return err
		}
		cmd.Body = body
	default:
		e, err := s.parseExpr(false)
		if err != nil {
			return err
		}
		cmd.Args = append(cmd.Args, e)
	}
	return nil
}

// Structures

func (s *state) parseBlock() (*ast.Block, error) {
	open := s.cur
	if open.Type != token.LBracket {
		return nil, s.fail(ErrUnexpectedToken, open, "expected '[', found %s", open.Type)
	}
	s.advance()

	block := &ast.Block{Pos: ast.PositionOf(open)}
	for {
		switch s.cur.Type {
		case token.RBracket:
			s.advance()
			return block, nil
		case token.EOF:
			return nil, s.fail(ErrUnclosedBlock, open, "block is never closed")
		case token.Semicolon:
			s.advance()
			continue
		}
		if s.tooMany() {
			return nil, errRecover
		}
		if stmt := s.statementWithRecovery(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
}

func (s *state) parseRepeat() (ast.Stmt, error) {
	rep := &ast.Repeat{Pos: ast.PositionOf(s.cur)}
	s.advance()
	var err error
	if rep.Count, err = s.parseExpr(false); err != nil {
		return nil, err
	}
	if rep.Body, err = s.parseBlock(); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *state) parseIf() (ast.Stmt, error) {
	stmt := &ast.If{Pos: ast.PositionOf(s.cur)}
	s.advance()
	var err error
	if stmt.Cond, err = s.parseExpr(false); err != nil {
		return nil, err
	}
	if s.cur.Type == token.Then {
		s.advance()
	}
	if stmt.Then, err = s.parseBlock(); err != nil {
		return nil, err
	}
	if s.cur.Type == token.Else {
		s.advance()
		if stmt.Else, err = s.parseBlock(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (s *state) parseWhile() (ast.Stmt, error) {
	stmt := &ast.While{Pos: ast.PositionOf(s.cur)}
	s.advance()
	var err error
	if stmt.Cond, err = s.parseExpr(false); err != nil {
		return nil, err
	}
	if stmt.Body, err = s.parseBlock(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (s *state) parseForEach() (ast.Stmt, error) {
	stmt := &ast.ForEach{Pos: ast.PositionOf(s.cur)}
	s.advance()
	name, err := s.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	stmt.Var = name.Text

	switch s.cur.Type {
	case token.InList:
		s.advance()
		if stmt.List, err = s.parseExpr(false); err != nil {
			return nil, err
		}
	case token.From:
		s.advance()
		if stmt.From, err = s.parseExpr(false); err != nil {
			return nil, err
		}
		if _, err = s.expect(token.To); err != nil {
			return nil, err
		}
		if stmt.To, err = s.parseExpr(false); err != nil {
			return nil, err
		}
	default:
		return nil, s.fail(ErrUnexpectedToken, s.cur, "expected %s or %s, found %s", token.InList, token.From, s.cur.Type)
	}

	if stmt.Body, err = s.parseBlock(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (s *state) parseFunctionDef() (ast.Stmt, error) {
	def := &ast.FunctionDef{Pos: ast.PositionOf(s.cur)}
	s.advance()
	name, err := s.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	def.Name = name.Text

	if _, err := s.expect(token.LParen); err != nil {
		return nil, err
	}
	for s.cur.Type != token.RParen {
		param, err := s.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		def.Params = append(def.Params, param.Text)
		if s.cur.Type != token.Comma {
			break
		}
		s.advance()
	}
	if _, err := s.expect(token.RParen); err != nil {
		return nil, err
	}
	if _, err := s.expect(token.Assign); err != nil {
		return nil, err
	}
	if def.Body, err = s.parseExpr(false); err != nil {
		return nil, err
	}
	return def, nil
}

// Expressions

// parseExpr consumes an expression and returns its verbatim source text.
// Outside brackets a line break ends the expression before an operator.
func (s *state) parseExpr(nested bool) (*ast.Expr, error) {
	start := s.pos
	if err := s.parseOperand(); err != nil {
		return nil, err
	}
	for s.binary.Has(s.cur.Type) && (nested || !s.cur.NewlineBefore) {
		s.advance()
		if err := s.parseOperand(); err != nil {
			return nil, err
		}
	}

	first, last := s.tokens[start], s.prev
	return &ast.Expr{
		Text:   s.src[first.Start:last.End],
		Tokens: slices.Clone(s.tokens[start:s.pos]),
		Pos:    ast.PositionOf(first),
	}, nil
}

func (s *state) parseOperand() error {
	for s.prefix.Has(s.cur.Type) {
		s.advance()
	}
	return s.parseAtom()
}

func (s *state) parseAtom() error {
	switch s.cur.Type {
	case token.Number, token.String:
		s.advance()
		return nil
	case token.Ident:
		s.advance()
		if s.cur.Type == token.LParen && !s.cur.NewlineBefore {
			_, err := s.parseExprList(token.RParen)
			return err
		}
		return nil
	case token.LParen:
		s.advance()
		if _, err := s.parseExpr(true); err != nil {
			return err
		}
		_, err := s.expect(token.RParen)
		return err
	case token.LBracket:
		_, err := s.parseExprList(token.RBracket)
		return err
	case token.Illegal:
		return s.fail(ErrGeneric, s.cur, "illegal character sequence %q", s.cur.Text)
	}
	return s.fail(ErrExpectedNumber, s.cur, "expected an expression, found %s", s.cur.Type)
}

// parseExprList reads "( a, b )" or "[ a, b ]" starting at the opener
func (s *state) parseExprList(closer token.Type) ([]*ast.Expr, error) {
	s.advance()
	var items []*ast.Expr
	if s.cur.Type == closer {
		s.advance()
		return items, nil
	}
	for {
		e, err := s.parseExpr(true)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
		switch s.cur.Type {
		case token.Comma:
			s.advance()
		case closer:
			s.advance()
			return items, nil
		default:
			return nil, s.fail(ErrUnexpectedToken, s.cur, "expected ',' or %s, found %s", closer, s.cur.Type)
		}
	}
}
