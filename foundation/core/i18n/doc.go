// File: doc.go
// Title: Internationalization Package Documentation
// Description: Package documentation for UI message catalogs.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial documentation
// - 2026-10-17 v0.2.0: Updated for the GeoTortue runtime

// Package i18n loads UI message catalogs. Catalog values are Go templates:
//
//	[syntax]
//	missing_semicolon = "It looks like you might have forgotten a semicolon (;) before \"{{.Token}}\"."
//
// rendered with
//
//	manager.T("syntax.missing_semicolon", map[string]interface{}{"Token": "GT_RIGHT"})
//
// Keys missing in the current locale fall back to the default locale.
// The DSL dictionaries (command words per language) are not handled here;
// see internal/dictionary.
package i18n
