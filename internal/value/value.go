// File: value.go
// Title: Runtime Values
// Description: Tagged variant for everything an expression can produce
//              (number, text, boolean, list or nothing) and the control
//              result threaded through statement execution.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package value

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags a Value
type Kind int

const (
	Void Kind = iota
	Number
	Text
	Boolean
	List
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Number:
		return "number"
	case Text:
		return "text"
	case Boolean:
		return "boolean"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// Value is an immutable runtime value. The zero Value is Void.
type Value struct {
	kind Kind
	num  float64
	text string
	b    bool
	list []Value
}

// Nil is the void value
var Nil = Value{}

// Num creates a number
func Num(f float64) Value { return Value{kind: Number, num: f} }

// Str creates a text value
func Str(s string) Value { return Value{kind: Text, text: s} }

// Bool creates a boolean
func Bool(b bool) Value { return Value{kind: Boolean, b: b} }

// ListOf creates a list; the elements are copied
func ListOf(items ...Value) Value {
	return Value{kind: List, list: append([]Value(nil), items...)}
}

// Kind returns the variant tag
func (v Value) Kind() Kind { return v.kind }

// IsVoid reports whether v carries nothing
func (v Value) IsVoid() bool { return v.kind == Void }

// Number returns the number and whether v is one
func (v Value) Number() (float64, bool) { return v.num, v.kind == Number }

// Text returns the text and whether v is one
func (v Value) Text() (string, bool) { return v.text, v.kind == Text }

// Boolean returns the boolean and whether v is one
func (v Value) Boolean() (bool, bool) { return v.b, v.kind == Boolean }

// Items returns a copy of the list elements and whether v is a list
func (v Value) Items() ([]Value, bool) {
	if v.kind != List {
		return nil, false
	}
	return append([]Value(nil), v.list...), true
}

// Len returns the number of list elements or text runes
func (v Value) Len() int {
	switch v.kind {
	case List:
		return len(v.list)
	case Text:
		return len([]rune(v.text))
	}
	return 0
}

// Truthy applies the loose boolean coercion of the language: zero, NaN,
// empty text, false and void are false; everything else, lists included,
// is true.
func (v Value) Truthy() bool {
	switch v.kind {
	case Number:
		return v.num != 0 && !math.IsNaN(v.num)
	case Text:
		return v.text != ""
	case Boolean:
		return v.b
	case List:
		return true
	}
	return false
}

// AsNumber coerces v to a number. Text is parsed leniently; anything that
// is not numeric becomes 0.
func (v Value) AsNumber() float64 {
	switch v.kind {
	case Number:
		return v.num
	case Boolean:
		if v.b {
			return 1
		}
		return 0
	case Text:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil || math.IsNaN(f) {
			return 0
		}
		return f
	}
	return 0
}

// String formats v the way scripts print it
func (v Value) String() string {
	switch v.kind {
	case Number:
		return FormatNumber(v.num)
	case Text:
		return v.text
	case Boolean:
		return strconv.FormatBool(v.b)
	case List:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "null"
}

// Equal compares kind and content
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Number:
		return v.num == o.num
	case Text:
		return v.text == o.text
	case Boolean:
		return v.b == o.b
	case List:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
	}
	return true
}

// FormatNumber prints integers without a fraction
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
