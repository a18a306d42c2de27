package grammar

import (
	"testing"

	"github.com/msto63/geotortue/internal/dsl/token"
)

func TestPrimitiveTokens(t *testing.T) {
	r := NewReflector(nil)
	tokens := r.TokensForRule(Primitive, false)

	for _, want := range []token.Type{token.Forward, token.Right, token.PenUp, token.PenColor, token.Hatch} {
		if !tokens.Has(want) {
			t.Errorf("primitive tokens miss %v", want)
		}
	}
	if tokens.Has(token.Plus) {
		t.Error("primitive tokens must not contain operators when not recursing")
	}
	if tokens.Has(token.Rep) {
		t.Error("primitive tokens must not contain structure keywords")
	}
}

func TestExprTokens(t *testing.T) {
	r := NewReflector(nil)
	tokens := r.TokensForRule(Expr, true)

	for _, want := range []token.Type{token.Plus, token.Mult, token.Pow, token.And, token.Number, token.LParen} {
		if !tokens.Has(want) {
			t.Errorf("expr tokens miss %v", want)
		}
	}
	if tokens.Has(token.Forward) {
		t.Error("expr tokens must not contain commands")
	}
}

func TestRecursionAndIgnore(t *testing.T) {
	r := NewReflector(nil)

	direct := r.TokensForRule(Repeat, false)
	if !direct.Has(token.Rep) || direct.Has(token.LBracket) {
		t.Errorf("direct repeat tokens = %v", direct.Types())
	}

	deep := r.TokensForRule(Repeat, true)
	if !deep.Has(token.LBracket) || !deep.Has(token.Forward) {
		t.Errorf("recursive repeat tokens should reach block and statements")
	}

	pruned := r.TokensForRule(Structure, true, Expr, Block, Atom)
	for _, kw := range []token.Type{token.Rep, token.If, token.Then, token.Else, token.While, token.ForEach, token.From, token.To, token.Fun} {
		if !pruned.Has(kw) {
			t.Errorf("structure keywords miss %v", kw)
		}
	}
	if pruned.Has(token.Forward) || pruned.Has(token.Plus) {
		t.Error("ignored rules must not contribute tokens")
	}
}

func TestCacheDistinguishesQueries(t *testing.T) {
	r := NewReflector(nil)
	a := r.TokensForRule(Repeat, false)
	b := r.TokensForRule(Repeat, true)
	if len(a) == len(b) {
		t.Fatal("recursive and direct queries must not share a cache entry")
	}
	c := r.TokensForRule(Structure, true, Block, Expr)
	d := r.TokensForRule(Structure, true, Expr, Block)
	if len(c) != len(d) {
		t.Error("ignore order must not matter")
	}
}

func TestFirstSets(t *testing.T) {
	r := NewReflector(nil)

	tests := []struct {
		rule Rule
		tok  token.Type
		want bool
	}{
		{Expr, token.Number, true},
		{Expr, token.Minus, true},
		{Expr, token.Ident, true},
		{Expr, token.LBracket, true},
		{Expr, token.Forward, false},
		{Statement, token.Forward, true},
		{Statement, token.Rep, true},
		{Statement, token.Ident, true},
		{Statement, token.Var, true},
		{Statement, token.Semicolon, false},
		{Block, token.LBracket, true},
	}
	for _, tt := range tests {
		t.Run(tt.rule.String()+"/"+tt.tok.String(), func(t *testing.T) {
			if got := r.CanStart(tt.rule, tt.tok); got != tt.want {
				t.Errorf("CanStart(%v, %v) = %v, want %v", tt.rule, tt.tok, got, tt.want)
			}
		})
	}

	if !r.Nullable(Program) {
		t.Error("an empty program is valid")
	}
	if r.Nullable(Expr) {
		t.Error("an expression needs at least one token")
	}
}

func TestSignatures(t *testing.T) {
	for _, cmd := range token.Commands() {
		if _, ok := SignatureOf(cmd); !ok {
			t.Errorf("command %v has no signature", cmd)
		}
	}

	tp, _ := SignatureOf(token.Teleport)
	if tp.Required() != 2 || len(tp.Args) != 3 {
		t.Errorf("teleport signature = %+v", tp)
	}
	if sig, _ := SignatureOf(token.PenColor); sig.Args[0] != ArgColor {
		t.Error("pen color takes a color argument")
	}
	if _, ok := SignatureOf(token.Rep); ok {
		t.Error("keywords have no command signature")
	}
}
