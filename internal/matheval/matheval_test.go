package matheval

import (
	"bytes"
	"math"
	"strings"
	"testing"

	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/value"
)

func newTestEvaluator() *Evaluator {
	return New(Options{Logger: mdwlog.Discard(), Random: func() float64 { return 0.5 }})
}

func num(t *testing.T, v value.Value) float64 {
	t.Helper()
	f, ok := v.Number()
	if !ok {
		t.Fatalf("value %v (%s) is not a number", v, v.Kind())
	}
	return f
}

func TestArithmetic(t *testing.T) {
	e := newTestEvaluator()
	scope := Scope{Vars: map[string]value.Value{"x": value.Num(42), "n": value.Str("3")}}

	tests := []struct {
		expr string
		want float64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"2 ^ 3 ^ 2", 512},
		{"-2 ^ 2", -4},
		{"2 ^ -1", 0.5},
		{"x", 42},
		{"x / 2 - 1", 20},
		{"7 % 3", 1},
		{"-1 % 3", 2},
		{"n * 2", 6},
		{"sqrt(16) + abs(-2)", 6},
		{"max(1, 5, 3)", 5},
		{"min([4, 2, 8])", 2},
		{"round(2.5)", 3},
		{"log(8, 2)", 3},
		{"random(10)", 5},
		{"random(2, 4)", 3},
		{"size([1, 2, 3])", 3},
		{"item([7, 8, 9], 2)", 8},
		{"floor(pi)", 3},
		{"1e3 + .5", 1000.5},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := e.Evaluate(tt.expr, scope, Strict)
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tt.expr, err)
			}
			if got := num(t, v); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestLogicAndComparison(t *testing.T) {
	e := newTestEvaluator()
	scope := Scope{Vars: map[string]value.Value{"a": value.Num(3)}}

	tests := []struct {
		expr string
		want bool
	}{
		{"a > 2", true},
		{"a >= 4", false},
		{"a == 3", true},
		{"a = 3", true},
		{"a != 3", false},
		{"a <> 4", true},
		{"a > 1 && a < 5", true},
		{"a > 5 || a == 3", true},
		{"!(a == 3)", false},
		{`"abc" < "abd"`, true},
		{`"3" == 3`, true},
		{"[1, 2] == [1, 2]", true},
		// the right side is never evaluated
		{"false && missing", false},
		{"true || missing", true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := e.Evaluate(tt.expr, scope, Strict)
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tt.expr, err)
			}
			if got, ok := v.Boolean(); !ok || got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, v, tt.want)
			}
		})
	}
}

func TestTextAndLists(t *testing.T) {
	e := newTestEvaluator()
	scope := Scope{Vars: map[string]value.Value{"name": value.Str("tortue")}}

	tests := []struct {
		expr string
		want string
	}{
		{`"red"`, "red"},
		{`'it\'s'`, "it's"},
		{`"a" + "b"`, "ab"},
		{`"n=" + 4`, "n=4"},
		{`name + "!"`, "tortue!"},
		{"[1, 2, 3] * 2", "[2, 4, 6]"},
		{"[1, 2] + [10, 20]", "[11, 22]"},
		{"-[1, 2]", "[-1, -2]"},
		{"[]", "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := e.Evaluate(tt.expr, scope, Strict)
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tt.expr, err)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("Evaluate(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestScopeFunctions(t *testing.T) {
	e := newTestEvaluator()
	scope := Scope{
		Vars: map[string]value.Value{"k": value.Num(3)},
		Funcs: map[string]Function{
			"carre": func(args []value.Value) (value.Value, error) {
				x := args[0].AsNumber()
				return value.Num(x * x), nil
			},
			// shadows the built-in
			"abs": func([]value.Value) (value.Value, error) { return value.Num(-1), nil },
		},
	}
	v, err := e.Evaluate("carre(k + 1) + abs(5)", scope, Strict)
	if err != nil {
		t.Fatal(err)
	}
	if got := num(t, v); got != 15 {
		t.Errorf("got %v, want 15", got)
	}
}

func TestModes(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelDebug, Format: mdwlog.FormatText, Output: &buf})
	e := New(Options{Logger: logger})

	v, err := e.Evaluate("rouge", Scope{}, Silent)
	if err != nil || num(t, v) != 0 {
		t.Errorf("silent: got %v, %v", v, err)
	}
	if buf.Len() != 0 {
		t.Errorf("silent mode logged %q", buf.String())
	}

	v, err = e.Evaluate("1 +", Scope{}, Log)
	if err != nil || num(t, v) != 0 {
		t.Errorf("log: got %v, %v", v, err)
	}
	if !strings.Contains(buf.String(), "Math evaluation error") {
		t.Errorf("log mode output = %q", buf.String())
	}

	_, err = e.Evaluate("rouge", Scope{}, Strict)
	if err == nil {
		t.Fatal("strict mode must return the error")
	}
	if !IsUndefinedSymbol(err) {
		t.Errorf("error %v is not an undefined symbol", err)
	}
}

func TestErrorClassification(t *testing.T) {
	e := newTestEvaluator()
	tests := []struct {
		expr      string
		undefined bool
	}{
		{"missing + 1", true},
		{"nofunc(2)", true},
		{"1 +", false},
		{"(1 + 2", false},
		{`"abc" * 2`, false},
		{"sqrt(1, 2)", false},
		{"[1, 2] + [1]", false},
		{"", false},
		{"x := 3", false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := e.Evaluate(tt.expr, Scope{}, Strict)
			if err == nil {
				t.Fatalf("Evaluate(%q) succeeded", tt.expr)
			}
			if got := IsUndefinedSymbol(err); got != tt.undefined {
				t.Errorf("IsUndefinedSymbol = %v, want %v (%v)", got, tt.undefined, err)
			}
		})
	}
}

func TestCompileCache(t *testing.T) {
	e := New(Options{Logger: mdwlog.Discard(), CacheSize: 2})
	a, err := e.Compile("1 + 1")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := e.Compile("1 + 1")
	if a != b {
		t.Error("second compile must reuse the cached expression")
	}
	e.Compile("2")
	e.Compile("3")
	st := e.CacheStats()
	if st.Size > 2 {
		t.Errorf("cache grew to %d entries", st.Size)
	}
	if st.Hits != 1 || st.Misses != 3 {
		t.Errorf("CacheStats() = %+v, want 1 hit and 3 misses", st)
	}
	if a.Source() != "1 + 1" {
		t.Errorf("Source() = %q", a.Source())
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"silent": Silent, "LOG": Log, "": Log, "strict": Strict, "error": Strict} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("loud"); err == nil {
		t.Error("unknown mode accepted")
	}
}

func TestUnquote(t *testing.T) {
	tests := map[string]string{
		`"red"`:    "red",
		`'blue'`:   "blue",
		`"a\"b"`:   `a"b`,
		`"l1\nl2"`: "l1\nl2",
		`plain`:    "plain",
		`"`:        `"`,
		`"mixed'`:  `"mixed'`,
	}
	for in, want := range tests {
		if got := Unquote(in); got != want {
			t.Errorf("Unquote(%q) = %q, want %q", in, got, want)
		}
	}
}
