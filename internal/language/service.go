// File: service.go
// Title: Localization Service
// Description: Facade over the DSL dictionaries and the UI message
//              catalogs. Holds the active DSL and UI languages, resolves
//              localized words to canonical names, translates scripts
//              between DSL languages and notifies listeners when the DSL
//              language changes.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package language

import (
	"context"
	"slices"
	"sync"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	"github.com/msto63/geotortue/foundation/core/i18n"
	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/dictionary"
	"github.com/msto63/geotortue/internal/dsl/token"
)

// Listener is notified with the new language after a DSL language switch
type Listener func(lang string)

// Options configures a Service
type Options struct {
	Dictionaries *dictionary.Service
	// Messages is optional; without it Translate returns the key
	Messages    *i18n.Manager
	DSLLanguage string
	UILanguage  string
	Logger      *mdwlog.Logger
}

// Service is the localization facade used by the interpreter, the syntax
// validator and the CLI
type Service struct {
	dicts    *dictionary.Service
	messages *i18n.Manager
	logger   *mdwlog.Logger

	mu        sync.RWMutex
	dslLang   string
	listeners map[int]Listener
	nextID    int
}

// New creates a localization service. The DSL dictionary is not loaded
// here; call SetDSLLanguage or Dictionaries().Get before the first lookup.
func New(opts Options) (*Service, error) {
	if opts.Dictionaries == nil {
		return nil, mdwerror.New("dictionary service is required").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("language.New")
	}
	if opts.DSLLanguage == "" {
		opts.DSLLanguage = "fr"
	}
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	s := &Service{
		dicts:     opts.Dictionaries,
		messages:  opts.Messages,
		logger:    logger.WithField("component", "language"),
		dslLang:   opts.DSLLanguage,
		listeners: make(map[int]Listener),
	}
	if opts.UILanguage != "" && s.messages != nil {
		if err := s.messages.SetLocale(opts.UILanguage); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Dictionaries returns the underlying dictionary service
func (s *Service) Dictionaries() *dictionary.Service { return s.dicts }

// DSLLanguage returns the active DSL language
func (s *Service) DSLLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dslLang
}

// Ready loads the dictionary of the active DSL language
func (s *Service) Ready(ctx context.Context) error {
	_, err := s.dicts.Get(ctx, s.DSLLanguage())
	return err
}

// SetDSLLanguage loads the dictionary of lang and makes it active. The
// previous language stays active if loading fails.
func (s *Service) SetDSLLanguage(ctx context.Context, lang string) error {
	if _, err := s.dicts.Get(ctx, lang); err != nil {
		return mdwerror.Wrap(err, "cannot switch DSL language").
			WithOperation("language.SetDSLLanguage").
			WithDetail("language", lang)
	}

	s.mu.Lock()
	changed := s.dslLang != lang
	s.dslLang = lang
	listeners := make([]Listener, 0, len(s.listeners))
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	if !changed {
		return nil
	}
	s.logger.Info("DSL language changed", mdwlog.Fields{"language": lang})
	for _, l := range listeners {
		l(lang)
	}
	return nil
}

// Subscribe registers a DSL language listener and returns a function that
// removes it
func (s *Service) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// UILanguage returns the active UI language, empty without catalogs
func (s *Service) UILanguage() string {
	if s.messages == nil {
		return ""
	}
	return s.messages.GetCurrentLocale()
}

// SetUILanguage switches the UI catalog
func (s *Service) SetUILanguage(lang string) error {
	if s.messages == nil {
		return mdwerror.New("no UI catalogs configured").
			WithCode(mdwerror.CodeInvalidOperation).
			WithOperation("language.SetUILanguage")
	}
	return s.messages.SetLocale(lang)
}

// Translate renders a UI message; unknown keys come back as "[key]"
func (s *Service) Translate(key string, data ...map[string]interface{}) string {
	if s.messages == nil {
		return "[" + key + "]"
	}
	return s.messages.T(key, data...)
}

// HasTranslation reports whether the UI catalogs define key
func (s *Service) HasTranslation(key string) bool {
	return s.messages != nil && s.messages.HasTranslation(key)
}

// GetInternalKeyword resolves a word of the active DSL language to its
// canonical name. It misses while the dictionary is not loaded.
func (s *Service) GetInternalKeyword(word string) (string, bool) {
	return s.dicts.GetInternalKey(word, s.DSLLanguage())
}

// CanonicalID resolves a word to a canonical command or keyword type.
// Colors have no token type and never resolve.
func (s *Service) CanonicalID(word string) (token.Type, bool) {
	key, ok := s.GetInternalKeyword(word)
	if !ok {
		return token.Illegal, false
	}
	return token.LookupCanonical(key)
}

// GetCSSColor resolves a color word of the active DSL language
func (s *Service) GetCSSColor(word string) (string, bool) {
	return s.dicts.GetCSSColor(word, s.DSLLanguage())
}

// AllKeywords returns every localized command word of the active DSL
// language, aliases included
func (s *Service) AllKeywords() []string {
	d, ok := s.dicts.Peek(s.DSLLanguage())
	if !ok {
		return nil
	}
	return d.Words(dictionary.Commands)
}
