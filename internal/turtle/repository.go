// File: repository.go
// Title: Turtle Repository
// Description: Owns the turtle collection, the active turtle and the bulk
//              operations used by program-level reset commands.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package turtle

import (
	"strconv"
	"sync"

	mdwlog "github.com/msto63/geotortue/foundation/core/log"
)

// Repository is the mutable world state the interpreter drives
type Repository interface {
	Save(t *Turtle)
	Get(id ID) (*Turtle, bool)
	GetAll() []*Turtle
	Active() *Turtle
	SetActive(id ID)
	NextID() ID
	// Reset soft-resets every turtle; trails are kept
	Reset()
	// ClearAllLines empties every trail; states are kept
	ClearAllLines()
	// Clear destroys every turtle and the active reference
	Clear()
}

// InMemoryRepository keeps turtles in insertion order
type InMemoryRepository struct {
	mu       sync.RWMutex
	turtles  map[ID]*Turtle
	order    []ID
	activeID ID
	nextSeq  int
	logger   *mdwlog.Logger
}

// NewInMemoryRepository creates an empty repository
func NewInMemoryRepository(logger *mdwlog.Logger) *InMemoryRepository {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	return &InMemoryRepository{
		turtles: make(map[ID]*Turtle),
		logger:  logger.WithField("component", "turtle-repository"),
	}
}

// NewWithDefaultTurtle creates a repository holding one active turtle,
// the state of a fresh session
func NewWithDefaultTurtle(logger *mdwlog.Logger) *InMemoryRepository {
	repo := NewInMemoryRepository(logger)
	repo.Save(New(repo.NextID()))
	return repo
}

// Save inserts or replaces a turtle. The first turtle saved while no
// turtle is active becomes active.
func (r *InMemoryRepository) Save(t *Turtle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.turtles[t.ID()]; !exists {
		r.order = append(r.order, t.ID())
	}
	r.turtles[t.ID()] = t
	if r.activeID == "" {
		r.activeID = t.ID()
	}
}

// Get returns a turtle by id
func (r *InMemoryRepository) Get(id ID) (*Turtle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.turtles[id]
	return t, ok
}

// GetAll returns the turtles in insertion order
func (r *InMemoryRepository) GetAll() []*Turtle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Turtle, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.turtles[id])
	}
	return out
}

// Active returns the active turtle or nil
func (r *InMemoryRepository) Active() *Turtle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.turtles[r.activeID]
}

// SetActive selects the active turtle; an unknown id is logged and ignored
func (r *InMemoryRepository) SetActive(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.turtles[id]; !ok {
		r.logger.Warn("Cannot activate unknown turtle", mdwlog.Fields{"turtle_id": string(id)})
		return
	}
	r.activeID = id
}

// NextID returns a fresh id: "1", "2", ...
func (r *InMemoryRepository) NextID() ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		r.nextSeq++
		id := ID(strconv.Itoa(r.nextSeq))
		if _, taken := r.turtles[id]; !taken {
			return id
		}
	}
}

// Reset soft-resets every turtle
func (r *InMemoryRepository) Reset() {
	for _, t := range r.GetAll() {
		t.Reset()
	}
}

// ClearAllLines empties every trail
func (r *InMemoryRepository) ClearAllLines() {
	for _, t := range r.GetAll() {
		t.ClearLines()
	}
}

// Clear destroys all turtles
func (r *InMemoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.turtles = make(map[ID]*Turtle)
	r.order = nil
	r.activeID = ""
}

// Count returns the number of turtles
func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
