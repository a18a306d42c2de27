package token

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name      string
		want      Type
		canonical bool
	}{
		{"GT_FORWARD", Forward, true},
		{"GT_REP", Rep, true},
		{"GT_UNDO", Undo, true},
		{"GT_VAR", Var, true},
		{"GT_PLUS", Plus, false},
		{"GT_ID", Ident, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(tt.name)
			if !ok || got != tt.want {
				t.Fatalf("Lookup(%q) = %v, %v", tt.name, got, ok)
			}
			if got.String() != tt.name {
				t.Errorf("String() = %q", got.String())
			}
			if _, ok := LookupCanonical(tt.name); ok != tt.canonical {
				t.Errorf("LookupCanonical(%q) ok = %v", tt.name, ok)
			}
		})
	}

	if _, ok := Lookup("GT_NOPE"); ok {
		t.Error("unknown names must not resolve")
	}
}

func TestCategories(t *testing.T) {
	for _, c := range Commands() {
		if !c.IsCommand() || c.IsKeyword() {
			t.Errorf("%v miscategorized", c)
		}
	}
	for _, k := range Keywords() {
		if !k.IsKeyword() || k.IsCommand() {
			t.Errorf("%v miscategorized", k)
		}
	}
	if !Comment.IsHidden() || Number.IsHidden() {
		t.Error("IsHidden() wrong")
	}
	if !Assign.IsOperator() || Forward.IsOperator() {
		t.Error("IsOperator() wrong")
	}
}
