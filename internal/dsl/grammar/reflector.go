// File: reflector.go
// Title: Grammar Reflector
// Description: Runtime introspection of the rule network. Enumerates the
//              terminal tokens reachable from a rule, optionally descending
//              into sub-rules, and computes FIRST sets. Results are cached
//              per query.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package grammar

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/msto63/geotortue/internal/dsl/token"
)

// TokenSet is an unordered set of token types
type TokenSet map[token.Type]struct{}

// Has reports whether t is in the set
func (s TokenSet) Has(t token.Type) bool {
	_, ok := s[t]
	return ok
}

// Types returns the members in ascending order
func (s TokenSet) Types() []token.Type {
	out := make([]token.Type, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func (s TokenSet) add(types ...token.Type) {
	for _, t := range types {
		s[t] = struct{}{}
	}
}

func (s TokenSet) union(o TokenSet) bool {
	changed := false
	for t := range o {
		if _, ok := s[t]; !ok {
			s[t] = struct{}{}
			changed = true
		}
	}
	return changed
}

// Reflector answers structural questions about a Network
type Reflector struct {
	net *Network

	mu    sync.Mutex
	cache map[string]TokenSet

	first    [ruleCount]TokenSet
	nullable [ruleCount]bool
}

// NewReflector creates a reflector over n; a nil network selects Default
func NewReflector(n *Network) *Reflector {
	if n == nil {
		n = Default()
	}
	r := &Reflector{net: n, cache: make(map[string]TokenSet)}
	r.computeFirstSets()
	return r
}

// TokensForRule returns every token type that appears directly in the
// body of rule. When recursive is set, referenced rules are walked too,
// except the ones listed in ignore. Callers must not modify the result.
func (r *Reflector) TokensForRule(rule Rule, recursive bool, ignore ...Rule) TokenSet {
	key := cacheKey(rule, recursive, ignore)

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	found := make(TokenSet)
	visited := map[Rule]bool{rule: true}
	var walk func(e Element)
	walk = func(e Element) {
		switch el := e.(type) {
		case TokElement:
			found.add(el.Types...)
		case RefElement:
			if !recursive || visited[el.Rule] || slices.Contains(ignore, el.Rule) {
				return
			}
			visited[el.Rule] = true
			walk(r.net.Body(el.Rule))
		case SeqElement:
			for _, p := range el.Parts {
				walk(p)
			}
		case AltElement:
			for _, c := range el.Choices {
				walk(c)
			}
		case OptElement:
			walk(el.Body)
		case StarElement:
			walk(el.Body)
		}
	}
	walk(r.net.Body(rule))

	r.cache[key] = found
	return found
}

// First returns the tokens that can begin rule
func (r *Reflector) First(rule Rule) TokenSet {
	if rule < 0 || rule >= ruleCount {
		return TokenSet{}
	}
	return r.first[rule]
}

// Nullable reports whether rule can match no tokens at all
func (r *Reflector) Nullable(rule Rule) bool {
	if rule < 0 || rule >= ruleCount {
		return false
	}
	return r.nullable[rule]
}

// CanStart reports whether t can begin rule
func (r *Reflector) CanStart(rule Rule, t token.Type) bool {
	return r.First(rule).Has(t)
}

// computeFirstSets iterates to a fixed point so recursive rules settle
func (r *Reflector) computeFirstSets() {
	for i := range r.first {
		r.first[i] = make(TokenSet)
	}
	for changed := true; changed; {
		changed = false
		for _, rule := range Rules() {
			set, nullable := r.firstOf(r.net.Body(rule))
			if r.first[rule].union(set) {
				changed = true
			}
			if nullable && !r.nullable[rule] {
				r.nullable[rule] = true
				changed = true
			}
		}
	}
}

func (r *Reflector) firstOf(e Element) (TokenSet, bool) {
	set := make(TokenSet)
	switch el := e.(type) {
	case TokElement:
		set.add(el.Types...)
		return set, false
	case RefElement:
		set.union(r.first[el.Rule])
		return set, r.nullable[el.Rule]
	case SeqElement:
		for _, p := range el.Parts {
			sub, nullable := r.firstOf(p)
			set.union(sub)
			if !nullable {
				return set, false
			}
		}
		return set, true
	case AltElement:
		nullable := false
		for _, c := range el.Choices {
			sub, n := r.firstOf(c)
			set.union(sub)
			nullable = nullable || n
		}
		return set, nullable
	case OptElement:
		sub, _ := r.firstOf(el.Body)
		set.union(sub)
		return set, true
	case StarElement:
		sub, _ := r.firstOf(el.Body)
		set.union(sub)
		return set, true
	}
	return set, true
}

func cacheKey(rule Rule, recursive bool, ignore []Rule) string {
	sorted := slices.Clone(ignore)
	slices.Sort(sorted)
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(rule)))
	b.WriteString(":")
	b.WriteString(strconv.FormatBool(recursive))
	for _, ig := range sorted {
		b.WriteString(",")
		b.WriteString(strconv.Itoa(int(ig)))
	}
	return b.String()
}
