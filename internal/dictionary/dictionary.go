// File: dictionary.go
// Title: Bidirectional Dictionary
// Description: Processed form of a Definition: per category a forward map
//              (canonical name to primary word) and a case-folded reverse
//              map (every alias to canonical name), plus the CSS name of
//              every canonical color derived from its GT_ suffix.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package dictionary

import (
	"slices"
	"strings"

	semver "github.com/Masterminds/semver/v3"
	"golang.org/x/text/cases"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
)

// CanonicalPrefix starts every canonical name
const CanonicalPrefix = "GT_"

// SupportedVersions is the range of dictionary format versions understood
const SupportedVersions = ">= 1.0.0, < 2.0.0"

var supported = func() *semver.Constraints {
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		panic(err)
	}
	return c
}()

// Category selects one of the three word families
type Category int

const (
	Commands Category = iota
	Keywords
	Colors
	categoryCount
)

func (c Category) String() string {
	switch c {
	case Commands:
		return "commands"
	case Keywords:
		return "keywords"
	case Colors:
		return "colors"
	default:
		return "unknown"
	}
}

// Categories in lookup order
var Categories = []Category{Commands, Keywords, Colors}

// Fold normalizes a word for reverse lookups
func Fold(word string) string {
	return cases.Fold().String(strings.TrimSpace(word))
}

// Dictionary is an immutable bidirectional word map for one language
type Dictionary struct {
	lang    string
	version string
	forward [categoryCount]map[string]string
	reverse [categoryCount]map[string]string
	css     map[string]string
}

// Empty returns a dictionary in which every lookup misses
func Empty(lang string) *Dictionary {
	d := &Dictionary{lang: lang, css: map[string]string{}}
	for c := range categoryCount {
		d.forward[c] = map[string]string{}
		d.reverse[c] = map[string]string{}
	}
	return d
}

// Build processes a definition. Colors must be named GT_<CSSNAME>.
func Build(lang string, def *Definition) (*Dictionary, error) {
	if def.Version != "" {
		v, err := semver.NewVersion(def.Version)
		if err != nil {
			return nil, mdwerror.Wrap(err, "invalid dictionary version").
				WithCode(mdwerror.CodeDictionaryLoad).
				WithOperation("dictionary.Build").
				WithDetail("language", lang)
		}
		if !supported.Check(v) {
			return nil, mdwerror.Newf("dictionary version %s not in %s", v, SupportedVersions).
				WithCode(mdwerror.CodeDictionaryLoad).
				WithOperation("dictionary.Build").
				WithDetail("language", lang)
		}
	}

	d := Empty(lang)
	d.version = def.Version
	sources := [categoryCount]map[string]Words{def.Commands, def.Keywords, def.Colors}
	for c, words := range sources {
		for canonical, aliases := range words {
			if len(aliases) == 0 {
				continue
			}
			d.forward[c][canonical] = aliases.Primary()
			for _, alias := range aliases {
				d.reverse[c][Fold(alias)] = canonical
			}
		}
	}

	for canonical := range def.Colors {
		css, ok := strings.CutPrefix(canonical, CanonicalPrefix)
		if !ok || css == "" {
			return nil, mdwerror.Newf("color key %q must be %s followed by a CSS color name", canonical, CanonicalPrefix).
				WithCode(mdwerror.CodeDictionaryLoad).
				WithOperation("dictionary.Build").
				WithDetail("language", lang)
		}
		d.css[canonical] = strings.ToLower(css)
	}
	return d, nil
}

// Language returns the language code
func (d *Dictionary) Language() string { return d.lang }

// Version returns the declared format version, possibly empty
func (d *Dictionary) Version() string { return d.version }

// IsEmpty reports whether the dictionary knows no word at all
func (d *Dictionary) IsEmpty() bool {
	for c := range categoryCount {
		if len(d.forward[c]) > 0 {
			return false
		}
	}
	return true
}

// Reverse returns the canonical name of a localized word in category c
func (d *Dictionary) Reverse(c Category, word string) (string, bool) {
	if c < 0 || c >= categoryCount {
		return "", false
	}
	canonical, ok := d.reverse[c][Fold(word)]
	return canonical, ok
}

// Forward returns the primary localized word of a canonical name
func (d *Dictionary) Forward(c Category, canonical string) (string, bool) {
	if c < 0 || c >= categoryCount {
		return "", false
	}
	word, ok := d.forward[c][canonical]
	return word, ok
}

// Lookup searches commands, then keywords, then colors
func (d *Dictionary) Lookup(word string) (string, Category, bool) {
	folded := Fold(word)
	for _, c := range Categories {
		if canonical, ok := d.reverse[c][folded]; ok {
			return canonical, c, true
		}
	}
	return "", 0, false
}

// CSSColor returns the CSS color name of a canonical color
func (d *Dictionary) CSSColor(canonical string) (string, bool) {
	css, ok := d.css[canonical]
	return css, ok
}

// CSSColorOf resolves a localized color word to its CSS name
func (d *Dictionary) CSSColorOf(word string) (string, bool) {
	canonical, ok := d.Reverse(Colors, word)
	if !ok {
		return "", false
	}
	return d.CSSColor(canonical)
}

// Canonicals returns the canonical names of a category, sorted
func (d *Dictionary) Canonicals(c Category) []string {
	if c < 0 || c >= categoryCount {
		return nil
	}
	out := make([]string, 0, len(d.forward[c]))
	for k := range d.forward[c] {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Words returns every localized word of a category, aliases included,
// sorted
func (d *Dictionary) Words(c Category) []string {
	if c < 0 || c >= categoryCount {
		return nil
	}
	out := make([]string, 0, len(d.reverse[c]))
	for w := range d.reverse[c] {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}
