// File: i18n.go
// Title: Core Internationalization Implementation
// Description: Implements the i18n Manager that loads UI message catalogs
//              from TOML or YAML files and renders them with template
//              interpolation.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-07-26 v0.1.1: Fixed template cache collision issue in pluralization
// - 2026-10-17 v0.2.0: Catalogs are read from an fs.FS so embedded defaults
//                      and directories share one code path

package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
)

// Options defines configuration options for the i18n manager
type Options struct {
	// DefaultLocale is used when a key is missing in the current locale
	DefaultLocale string
	// FS holds the catalog files, one per locale: en.toml, fr.yaml, ...
	FS fs.FS
	// Dir is the directory inside FS, "." when empty
	Dir string
}

// Manager manages message catalogs for the user interface
type Manager struct {
	mu            sync.RWMutex
	defaultLocale string
	currentLocale string
	translations  map[string]map[string]interface{}
	templates     map[string]*template.Template
}

// New creates a manager and loads every catalog found in the directory
func New(options Options) (*Manager, error) {
	if strings.TrimSpace(options.DefaultLocale) == "" {
		return nil, mdwerror.New("default locale cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("i18n.New")
	}
	if options.FS == nil {
		return nil, mdwerror.New("catalog file system is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("i18n.New")
	}
	if options.Dir == "" {
		options.Dir = "."
	}

	m := &Manager{
		defaultLocale: options.DefaultLocale,
		currentLocale: options.DefaultLocale,
		translations:  make(map[string]map[string]interface{}),
		templates:     make(map[string]*template.Template),
	}
	if err := m.loadAll(options.FS, options.Dir); err != nil {
		return nil, mdwerror.Wrap(err, "failed to load locales").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("i18n.New").
			WithDetail("dir", options.Dir)
	}
	return m, nil
}

func (m *Manager) loadAll(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read locales directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		if ext != ".toml" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		locale := strings.TrimSuffix(name, path.Ext(name))
		if locale == "" {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", name, err)
		}
		data := make(map[string]interface{})
		if ext == ".toml" {
			err = toml.Unmarshal(content, &data)
		} else {
			err = yaml.Unmarshal(content, &data)
		}
		if err != nil {
			return fmt.Errorf("failed to parse locale file %s: %w", name, err)
		}
		m.translations[locale] = data
	}

	if _, ok := m.translations[m.defaultLocale]; !ok {
		return fmt.Errorf("default locale '%s' not found", m.defaultLocale)
	}
	return nil
}

// T translates a key; a missing key renders as "[key]"
func (m *Manager) T(key string, data ...map[string]interface{}) string {
	translation, err := m.TryT(key, data...)
	if err != nil && translation == "" {
		return "[" + key + "]"
	}
	return translation
}

// TryT translates a key and returns an error if translation fails
func (m *Manager) TryT(key string, data ...map[string]interface{}) (string, error) {
	m.mu.RLock()
	locale := m.currentLocale
	translation := m.lookup(key, locale)
	m.mu.RUnlock()

	if translation == "" {
		return "", mdwerror.New("translation not found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("i18n.TryT").
			WithDetail("key", key).
			WithDetail("locale", locale)
	}
	if len(data) == 0 || data[0] == nil {
		return translation, nil
	}

	rendered, err := m.render(locale+":"+key, translation, data[0])
	if err != nil {
		return translation, mdwerror.Wrap(err, "template rendering failed").
			WithCode(mdwerror.CodeInvalidOperation).
			WithOperation("i18n.TryT")
	}
	return rendered, nil
}

func (m *Manager) lookup(key, locale string) string {
	if v := nestedValue(m.translations[locale], key); v != "" {
		return v
	}
	if locale != m.defaultLocale {
		return nestedValue(m.translations[m.defaultLocale], key)
	}
	return ""
}

func nestedValue(data map[string]interface{}, key string) string {
	if data == nil {
		return ""
	}
	keys := strings.Split(key, ".")
	current := data
	for i, k := range keys {
		value, ok := current[k]
		if !ok {
			return ""
		}
		if i == len(keys)-1 {
			if _, isMap := value.(map[string]interface{}); isMap {
				return ""
			}
			return fmt.Sprintf("%v", value)
		}
		next, ok := value.(map[string]interface{})
		if !ok {
			return ""
		}
		current = next
	}
	return ""
}

func (m *Manager) render(cacheKey, text string, data map[string]interface{}) (string, error) {
	m.mu.Lock()
	tmpl, ok := m.templates[cacheKey]
	if !ok {
		var err error
		tmpl, err = template.New(cacheKey).Parse(text)
		if err != nil {
			m.mu.Unlock()
			return text, err
		}
		m.templates[cacheKey] = tmpl
	}
	m.mu.Unlock()

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return text, err
	}
	return out.String(), nil
}

// SetLocale switches the current locale
func (m *Manager) SetLocale(locale string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.translations[locale]; !ok {
		return mdwerror.New("locale not available").
			WithCode(mdwerror.CodeUnsupportedLanguage).
			WithOperation("i18n.SetLocale").
			WithDetail("locale", locale)
	}
	m.currentLocale = locale
	return nil
}

// GetCurrentLocale returns the current locale
func (m *Manager) GetCurrentLocale() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentLocale
}

// GetAvailableLocales returns the loaded locales, sorted
func (m *Manager) GetAvailableLocales() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locales := make([]string, 0, len(m.translations))
	for locale := range m.translations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// HasTranslation checks whether the key exists for the current locale or
// the default one
func (m *Manager) HasTranslation(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup(key, m.currentLocale) != ""
}
