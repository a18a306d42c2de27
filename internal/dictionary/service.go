// File: service.go
// Title: Dictionary Service
// Description: Loads and caches one Dictionary per language. Concurrent
//              loads of the same language share a single fetch. A failed
//              load yields an empty dictionary that is not cached, so the
//              next request retries.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
// - 2026-10-17 v0.1.1: Shared loads no longer inherit the first caller's cancellation

package dictionary

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	mdwlog "github.com/msto63/geotortue/foundation/core/log"
)

// Options configures a Service
type Options struct {
	Source Source
	Logger *mdwlog.Logger
}

// Service resolves localized DSL words through cached dictionaries
type Service struct {
	source Source
	logger *mdwlog.Logger

	mu    sync.RWMutex
	cache map[string]*Dictionary
	sf    singleflight.Group
}

// NewService creates a dictionary service
func NewService(opts Options) (*Service, error) {
	if opts.Source == nil {
		return nil, mdwerror.New("dictionary source is required").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("dictionary.NewService")
	}
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	return &Service{
		source: opts.Source,
		logger: logger.WithField("component", "dictionary"),
		cache:  make(map[string]*Dictionary),
	}, nil
}

// Get returns the dictionary of lang, loading it on first use. On failure
// it returns an empty dictionary together with the error. A caller whose
// ctx ends stops waiting; the load itself continues for the other waiters.
func (s *Service) Get(ctx context.Context, lang string) (*Dictionary, error) {
	s.mu.RLock()
	d, ok := s.cache[lang]
	s.mu.RUnlock()
	if ok {
		return d, nil
	}

	// the shared load outlives the caller that started it
	loadCtx := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(lang, func() (any, error) {
		s.mu.RLock()
		d, ok := s.cache[lang]
		s.mu.RUnlock()
		if ok {
			return d, nil
		}
		return s.load(loadCtx, lang)
	})

	var v any
	var err error
	select {
	case <-ctx.Done():
		err = mdwerror.Wrap(ctx.Err(), "dictionary load abandoned").
			WithCode(mdwerror.CodeDictionaryLoad).
			WithOperation("dictionary.Get").
			WithDetail("language", lang)
	case r := <-ch:
		v, err = r.Val, r.Err
	}
	if err != nil {
		s.logger.WarnWithErr("Failed to load dictionary", err, mdwlog.Fields{
			"language": lang,
			"source":   s.source.String(),
		})
		return Empty(lang), err
	}
	return v.(*Dictionary), nil
}

func (s *Service) load(ctx context.Context, lang string) (*Dictionary, error) {
	def, err := s.source.Fetch(ctx, lang)
	if err != nil {
		return nil, err
	}
	d, err := Build(lang, def)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cache[lang] = d
	s.mu.Unlock()
	s.logger.Debug("Dictionary loaded", mdwlog.Fields{
		"language": lang,
		"commands": len(d.forward[Commands]),
		"keywords": len(d.forward[Keywords]),
		"colors":   len(d.forward[Colors]),
	})
	return d, nil
}

// LoadAll loads several languages in parallel and returns them in the
// order requested. It fails on the first language that cannot be loaded.
func (s *Service) LoadAll(ctx context.Context, langs ...string) ([]*Dictionary, error) {
	out := make([]*Dictionary, len(langs))
	g, gctx := errgroup.WithContext(ctx)
	for i, lang := range langs {
		g.Go(func() error {
			d, err := s.Get(gctx, lang)
			if err != nil {
				return err
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Invalidate drops the cached dictionary of lang
func (s *Service) Invalidate(lang string) {
	s.mu.Lock()
	delete(s.cache, lang)
	s.mu.Unlock()
}

// Reload drops and reloads the dictionary of lang. The previous entry
// stays cached if the reload fails.
func (s *Service) Reload(ctx context.Context, lang string) (*Dictionary, error) {
	d, err := s.load(ctx, lang)
	if err != nil {
		s.logger.WarnWithErr("Dictionary reload failed", err, mdwlog.Fields{"language": lang})
		return nil, err
	}
	s.logger.Info("Dictionary reloaded", mdwlog.Fields{"language": lang})
	return d, nil
}

// Loaded returns the cached languages, sorted
func (s *Service) Loaded() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.cache))
	for lang := range s.cache {
		out = append(out, lang)
	}
	slices.Sort(out)
	return out
}

// Peek returns the cached dictionary of lang without loading it
func (s *Service) Peek(lang string) (*Dictionary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.cache[lang]
	return d, ok
}

// GetInternalKey returns the canonical name of a localized word, looking
// through commands, keywords and colors in that order. It only consults
// loaded dictionaries and misses while lang is not loaded yet.
func (s *Service) GetInternalKey(word, lang string) (string, bool) {
	d, ok := s.Peek(lang)
	if !ok {
		return "", false
	}
	canonical, _, ok := d.Lookup(word)
	return canonical, ok
}

// GetCSSColor resolves a localized color word of a loaded language. A
// canonical color name is accepted as well.
func (s *Service) GetCSSColor(word, lang string) (string, bool) {
	d, ok := s.Peek(lang)
	if !ok {
		return "", false
	}
	if css, ok := d.CSSColorOf(word); ok {
		return css, true
	}
	return d.CSSColor(word)
}
