// File: token.go
// Title: DSL Token Types
// Description: Token types of the GeoTortue language. Besides lexical
//              categories, every canonical command and keyword has its own
//              type; the grammar only knows those canonical types, the
//              localized words are mapped onto them before parsing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package token

import "fmt"

// Type identifies the grammar category of a token
type Type int

const (
	Illegal Type = iota
	EOF

	// Hidden tokens; the parser never sees them
	Comment
	BlockComment

	// Literals and generic words
	Number
	String
	Ident

	// Punctuation and operators
	LBracket
	RBracket
	LParen
	RParen
	Comma
	Semicolon
	Assign
	Plus
	Minus
	Mult
	Div
	Mod
	Pow
	Eq
	NotEq
	Less
	LessEq
	Greater
	GreaterEq
	And
	Or
	Not

	commandBegin
	Forward
	Backward
	Right
	Left
	PenUp
	PenDown
	PenColor
	PenSize
	PenOpacity
	ClearGraphics
	ClearScreen
	Hide
	Show
	Home
	Teleport
	Circle
	Arc
	Write
	Say
	Wait
	Pause
	Snapshot
	Fill
	ShowVar
	Ask
	Global
	Erase
	Init
	Hatch
	PitchUp
	PitchDown
	RollLeft
	RollRight
	Aim
	Mimic
	Mirror
	RotateXY
	RotateXZ
	RotateYZ
	ManipulateGraph
	Play
	Score
	Concert
	Exec
	Undo
	commandEnd

	keywordBegin
	Rep
	If
	Then
	Else
	While
	ForEach
	InList
	From
	To
	Fun
	Return
	Stop
	Var
	keywordEnd

	typeCount
)

var symbolicNames = [typeCount]string{
	Illegal:      "GT_ILLEGAL",
	EOF:          "EOF",
	Comment:      "GT_COMMENT",
	BlockComment: "GT_BLOCK_COMMENT",
	Number:       "GT_NUMBER",
	String:       "GT_STRING",
	Ident:        "GT_ID",

	LBracket:  "GT_LBRACK",
	RBracket:  "GT_RBRACK",
	LParen:    "GT_LPAREN",
	RParen:    "GT_RPAREN",
	Comma:     "GT_COMMA",
	Semicolon: "GT_SEMI",
	Assign:    "GT_ASSIGN",
	Plus:      "GT_PLUS",
	Minus:     "GT_MINUS",
	Mult:      "GT_MULT",
	Div:       "GT_DIV",
	Mod:       "GT_MOD",
	Pow:       "GT_POW",
	Eq:        "GT_EQ",
	NotEq:     "GT_NEQ",
	Less:      "GT_LT",
	LessEq:    "GT_LE",
	Greater:   "GT_GT",
	GreaterEq: "GT_GE",
	And:       "GT_AND",
	Or:        "GT_OR",
	Not:       "GT_NOT",

	Forward:         "GT_FORWARD",
	Backward:        "GT_BACKWARD",
	Right:           "GT_RIGHT",
	Left:            "GT_LEFT",
	PenUp:           "GT_PEN_UP",
	PenDown:         "GT_PEN_DOWN",
	PenColor:        "GT_PEN_COLOR",
	PenSize:         "GT_PEN_SIZE",
	PenOpacity:      "GT_PEN_OPACITY",
	ClearGraphics:   "GT_CLEAR_GRAPHICS",
	ClearScreen:     "GT_CLEAR_SCREEN",
	Hide:            "GT_HIDE",
	Show:            "GT_SHOW",
	Home:            "GT_HOME",
	Teleport:        "GT_TELEPORT",
	Circle:          "GT_CIRCLE",
	Arc:             "GT_ARC",
	Write:           "GT_WRITE",
	Say:             "GT_SAY",
	Wait:            "GT_WAIT",
	Pause:           "GT_PAUSE",
	Snapshot:        "GT_SNAPSHOT",
	Fill:            "GT_FILL",
	ShowVar:         "GT_SHOW_VAR",
	Ask:             "GT_ASK",
	Global:          "GT_GLOBAL",
	Erase:           "GT_ERASE",
	Init:            "GT_INIT",
	Hatch:           "GT_HATCH",
	PitchUp:         "GT_PITCH_UP",
	PitchDown:       "GT_PITCH_DOWN",
	RollLeft:        "GT_ROLL_LEFT",
	RollRight:       "GT_ROLL_RIGHT",
	Aim:             "GT_AIM",
	Mimic:           "GT_MIMIC",
	Mirror:          "GT_MIRROR",
	RotateXY:        "GT_ROTATE_XY",
	RotateXZ:        "GT_ROTATE_XZ",
	RotateYZ:        "GT_ROTATE_YZ",
	ManipulateGraph: "GT_MANIPULATE_GRAPH",
	Play:            "GT_PLAY",
	Score:           "GT_SCORE",
	Concert:         "GT_CONCERT",
	Exec:            "GT_EXEC",
	Undo:            "GT_UNDO",

	Rep:     "GT_REP",
	If:      "GT_IF",
	Then:    "GT_THEN",
	Else:    "GT_ELSE",
	While:   "GT_WHILE",
	ForEach: "GT_FOR_EACH",
	InList:  "GT_IN_LIST",
	From:    "GT_FROM",
	To:      "GT_TO",
	Fun:     "GT_FUN",
	Return:  "GT_RETURN",
	Stop:    "GT_STOP",
	Var:     "GT_VAR",
}

var bySymbolicName = func() map[string]Type {
	m := make(map[string]Type, typeCount)
	for t := Type(0); t < typeCount; t++ {
		if name := symbolicNames[t]; name != "" {
			m[name] = t
		}
	}
	return m
}()

// String returns the symbolic name, e.g. GT_FORWARD
func (t Type) String() string {
	if t >= 0 && t < typeCount && symbolicNames[t] != "" {
		return symbolicNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Lookup resolves a symbolic name such as "GT_FORWARD" to its type
func Lookup(name string) (Type, bool) {
	t, ok := bySymbolicName[name]
	return t, ok
}

// LookupCanonical resolves a symbolic name only if it names a command or
// a keyword
func LookupCanonical(name string) (Type, bool) {
	t, ok := bySymbolicName[name]
	if !ok || !t.IsCanonical() {
		return Illegal, false
	}
	return t, true
}

// IsCommand reports whether t is a canonical command
func (t Type) IsCommand() bool { return t > commandBegin && t < commandEnd }

// IsKeyword reports whether t is a canonical structural keyword
func (t Type) IsKeyword() bool { return t > keywordBegin && t < keywordEnd }

// IsCanonical reports whether t is a command or a keyword
func (t Type) IsCanonical() bool { return t.IsCommand() || t.IsKeyword() }

// IsOperator reports whether t is punctuation or an operator
func (t Type) IsOperator() bool { return t >= LBracket && t <= Not }

// IsHidden reports whether the parser skips t
func (t Type) IsHidden() bool { return t == Comment || t == BlockComment }

// Commands returns every canonical command type
func Commands() []Type {
	out := make([]Type, 0, commandEnd-commandBegin-1)
	for t := commandBegin + 1; t < commandEnd; t++ {
		out = append(out, t)
	}
	return out
}

// Keywords returns every canonical keyword type
func Keywords() []Type {
	out := make([]Type, 0, keywordEnd-keywordBegin-1)
	for t := keywordBegin + 1; t < keywordEnd; t++ {
		out = append(out, t)
	}
	return out
}

// Token is one lexeme with its position in the source
type Token struct {
	Type Type
	Text string
	// Start and End are byte offsets; End is exclusive
	Start int
	End   int
	// Line and Column are 1-based
	Line   int
	Column int
	// NewlineBefore is set when a line break separates the token from the
	// previous one
	NewlineBefore bool
}

// WithType returns a copy of the token with another type
func (t Token) WithType(typ Type) Token {
	t.Type = typ
	return t
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Text, t.Line, t.Column)
}
