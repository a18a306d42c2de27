// File: locale.go
// Title: Locale Detection
// Description: Picks the best available locale for a list of user
//              preferences such as an Accept-Language header or $LANG.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with manual header parsing
// - 2026-10-17 v0.2.0: Matching through golang.org/x/text/language

package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DetectLocale returns the available locale that best matches the
// preferences, or the default locale. Preferences may be an
// Accept-Language header ("fr-CH, fr;q=0.9, en;q=0.8") or a POSIX locale
// ("fr_FR.UTF-8").
func (m *Manager) DetectLocale(preferences string) string {
	available := m.GetAvailableLocales()
	return MatchLocale(preferences, available, m.defaultLocale)
}

// MatchLocale matches preferences against the available locales
func MatchLocale(preferences string, available []string, fallback string) string {
	preferences = NormalizeLocale(preferences)
	if preferences == "" || len(available) == 0 {
		return fallback
	}

	desired, _, err := language.ParseAcceptLanguage(preferences)
	if err != nil || len(desired) == 0 {
		return fallback
	}

	supported := make([]language.Tag, 0, len(available)+1)
	supported = append(supported, language.Make(fallback))
	for _, locale := range available {
		supported = append(supported, language.Make(locale))
	}

	_, index, confidence := language.NewMatcher(supported).Match(desired...)
	if confidence == language.No {
		return fallback
	}
	if index == 0 {
		return fallback
	}
	return available[index-1]
}

// NormalizeLocale turns POSIX locale names into BCP 47 form:
// "fr_FR.UTF-8" becomes "fr-FR"
func NormalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "C" || locale == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}
