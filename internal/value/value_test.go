package value

import (
	"math"
	"testing"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"void", Nil, false},
		{"zero", Num(0), false},
		{"nan", Num(math.NaN()), false},
		{"number", Num(-2), true},
		{"empty text", Str(""), false},
		{"text", Str("0"), true},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"empty list", ListOf(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAsNumber(t *testing.T) {
	tests := []struct {
		v    Value
		want float64
	}{
		{Num(4.5), 4.5},
		{Str(" 12 "), 12},
		{Str("abc"), 0},
		{Bool(true), 1},
		{Nil, 0},
		{ListOf(Num(1)), 0},
	}
	for _, tt := range tests {
		if got := tt.v.AsNumber(); got != tt.want {
			t.Errorf("%v.AsNumber() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Num(42), "42"},
		{Num(0.5), "0.5"},
		{Str("red"), "red"},
		{Bool(false), "false"},
		{ListOf(Num(1), Str("a")), "[1, a]"},
		{Nil, "null"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestListIsImmutable(t *testing.T) {
	items := []Value{Num(1), Num(2)}
	l := ListOf(items...)
	items[0] = Num(9)
	got, _ := l.Items()
	if n, _ := got[0].Number(); n != 1 {
		t.Error("ListOf must copy its arguments")
	}
	got[1] = Num(7)
	again, _ := l.Items()
	if n, _ := again[1].Number(); n != 2 {
		t.Error("Items must return a copy")
	}
}

func TestControl(t *testing.T) {
	if Next.Done() {
		t.Error("Next must not unwind")
	}
	r := Returning(Num(3))
	if !r.Done() || r.Flow != Return || !r.Value.Equal(Num(3)) {
		t.Errorf("Returning(3) = %+v", r)
	}
	if !Halted.Done() || !Halted.Value.IsVoid() {
		t.Errorf("Halted = %+v", Halted)
	}
}
