// File: repository_test.go
// Title: Turtle Repository Tests
// Description: Tests for active turtle selection and bulk operations.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package turtle

import (
	"bytes"
	"strings"
	"testing"

	mdwlog "github.com/msto63/geotortue/foundation/core/log"
)

func TestFirstSavedTurtleBecomesActive(t *testing.T) {
	repo := NewInMemoryRepository(mdwlog.Discard())
	if repo.Active() != nil {
		t.Fatal("empty repository should have no active turtle")
	}

	a, b := New(repo.NextID()), New(repo.NextID())
	repo.Save(a)
	repo.Save(b)

	if repo.Active() != a {
		t.Errorf("Active() = %v, want first saved turtle", repo.Active().ID())
	}
	if a.ID() != "1" || b.ID() != "2" {
		t.Errorf("ids = %q, %q; want 1, 2", a.ID(), b.ID())
	}

	repo.Save(a)
	if repo.Count() != 2 {
		t.Errorf("Save() of an existing id must upsert, Count() = %d", repo.Count())
	}
}

func TestSetActiveUnknownWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelWarn, Format: mdwlog.FormatText, Output: &buf})
	repo := NewWithDefaultTurtle(logger)
	before := repo.Active()

	repo.SetActive("42")

	if repo.Active() != before {
		t.Error("unknown id must not change the active turtle")
	}
	if !strings.Contains(buf.String(), "42") {
		t.Errorf("expected a warning naming the id, got %q", buf.String())
	}

	second := New(repo.NextID())
	repo.Save(second)
	repo.SetActive(second.ID())
	if repo.Active() != second {
		t.Error("SetActive() on a known id should switch")
	}
}

func TestBulkOperations(t *testing.T) {
	repo := NewInMemoryRepository(mdwlog.Discard())
	for i := 0; i < 3; i++ {
		tt := New(repo.NextID())
		tt.Forward(10)
		repo.Save(tt)
	}

	repo.Reset()
	for _, tt := range repo.GetAll() {
		if tt.LineCount() != 1 || tt.State != DefaultState() {
			t.Errorf("Reset(): turtle %s lines=%d state=%+v", tt.ID(), tt.LineCount(), tt.State)
		}
	}

	for _, tt := range repo.GetAll() {
		tt.Forward(5)
	}
	repo.ClearAllLines()
	for _, tt := range repo.GetAll() {
		if tt.LineCount() != 0 || tt.State == DefaultState() {
			t.Errorf("ClearAllLines(): turtle %s lines=%d state=%+v", tt.ID(), tt.LineCount(), tt.State)
		}
	}

	repo.Clear()
	if repo.Count() != 0 || repo.Active() != nil || len(repo.GetAll()) != 0 {
		t.Error("Clear() must destroy everything")
	}
	if id := repo.NextID(); id != "4" {
		t.Errorf("NextID() after Clear() = %q, ids stay unique within a session", id)
	}
}
