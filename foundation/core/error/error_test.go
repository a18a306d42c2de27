// File: error_test.go
// Title: Error Tests
// Description: Tests for construction, wrapping, code lookup and JSON output.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial tests
// - 2026-10-17 v0.2.0: Adapted to the DSL error codes

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewAndWithCode(t *testing.T) {
	err := New("bad script").WithCode(CodeSyntaxError).WithOperation("parse")

	if err.Code() != CodeSyntaxError {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeSyntaxError)
	}
	if err.Severity() != SeverityLow {
		t.Errorf("Severity() = %v, want low", err.Severity())
	}
	if err.Error() != "bad script" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Code().ExitCode() != 2 {
		t.Errorf("ExitCode() = %d, want 2", err.Code().ExitCode())
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		if Wrap(nil, "x") != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})

	t.Run("standard error", func(t *testing.T) {
		base := errors.New("file missing")
		err := Wrap(base, "load dictionary")
		if !errors.Is(err, base) {
			t.Error("errors.Is should find the cause")
		}
		if err.Error() != "load dictionary: file missing" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("inherits code and details", func(t *testing.T) {
		inner := New("no such language").WithCode(CodeDictionaryLoad).WithDetail("language", "de")
		err := Wrap(inner, "translate")
		if err.Code() != CodeDictionaryLoad {
			t.Errorf("Code() = %v, want %v", err.Code(), CodeDictionaryLoad)
		}
		if err.Details()["language"] != "de" {
			t.Errorf("details not inherited: %v", err.Details())
		}
	})
}

func TestHasCodeThroughFmtWrapping(t *testing.T) {
	inner := New("x").WithCode(CodeUndefinedSymbol)
	outer := fmt.Errorf("evaluate: %w", inner)

	if !HasCode(outer, CodeUndefinedSymbol) {
		t.Error("HasCode should look through fmt wrapping")
	}
	if HasCode(outer, CodeSyntaxError) {
		t.Error("HasCode should not match other codes")
	}
	if GetCode(outer) != CodeUndefinedSymbol {
		t.Errorf("GetCode() = %v", GetCode(outer))
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("plain errors should report CodeUnknown")
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("eof"), "parse").WithCode(CodeSyntaxError).WithDetail("line", 3)
	raw, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("json.Marshal: %v", jerr)
	}
	var data map[string]interface{}
	if uerr := json.Unmarshal(raw, &data); uerr != nil {
		t.Fatalf("json.Unmarshal: %v", uerr)
	}
	if data["code"] != string(CodeSyntaxError) || data["cause"] != "eof" {
		t.Errorf("unexpected JSON %s", raw)
	}
}

func TestString(t *testing.T) {
	s := New("boom").WithCode(CodeInternal).WithDetail("b", 2).WithDetail("a", 1).String()
	if !strings.HasPrefix(s, "[INTERNAL] boom") || !strings.HasSuffix(s, "a=1 b=2") {
		t.Errorf("String() = %q", s)
	}
}
