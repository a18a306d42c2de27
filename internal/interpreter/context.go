// File: context.go
// Title: Execution Context and Output
// Description: Cooperative halt switch shared between a running script and
//              its host, and the sink receiving text produced by write,
//              say and show-variable commands.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package interpreter

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/msto63/geotortue/internal/turtle"
)

// ExecutionContext lets a host stop a running script. The interpreter
// polls it before every statement and every loop iteration.
type ExecutionContext struct {
	halted atomic.Bool
}

// NewExecutionContext returns a context that allows execution
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{}
}

// Halt requests the running script to stop
func (c *ExecutionContext) Halt() { c.halted.Store(true) }

// Resume clears a halt request
func (c *ExecutionContext) Resume() { c.halted.Store(false) }

// ShouldContinue reports whether no halt was requested
func (c *ExecutionContext) ShouldContinue() bool { return !c.halted.Load() }

// MessageKind tells how a message was produced
type MessageKind string

const (
	MessageWrite   MessageKind = "write"
	MessageSay     MessageKind = "say"
	MessageShowVar MessageKind = "showvar"
)

// Message is text emitted by a script
type Message struct {
	Kind   MessageKind
	Turtle turtle.ID
	Text   string
}

// Output receives script messages
type Output interface {
	Emit(m Message)
}

// OutputFunc adapts a function to Output
type OutputFunc func(m Message)

// Emit calls f
func (f OutputFunc) Emit(m Message) { f(m) }

// DiscardOutput drops every message
var DiscardOutput Output = OutputFunc(func(Message) {})

// WriterOutput prints one line per message
type WriterOutput struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterOutput creates an Output writing to w
func NewWriterOutput(w io.Writer) *WriterOutput {
	return &WriterOutput{w: w}
}

// Emit implements Output
func (o *WriterOutput) Emit(m Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if m.Turtle != "" {
		fmt.Fprintf(o.w, "[%s #%s] %s\n", m.Kind, m.Turtle, m.Text)
		return
	}
	fmt.Fprintf(o.w, "[%s] %s\n", m.Kind, m.Text)
}
