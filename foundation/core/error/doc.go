// File: doc.go
// Title: Error Package Documentation
// Description: Package documentation for structured errors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial documentation
// - 2026-10-17 v0.2.0: Updated for the GeoTortue runtime

// Package error provides the structured error type used across GeoTortue.
//
//	err := mdwerror.New("unknown language").
//		WithCode(mdwerror.CodeUnsupportedLanguage).
//		WithOperation("language.SetDslLanguage").
//		WithDetail("language", lang)
//
// Hard failures (syntax errors, broken configuration) are returned as
// *Error values. Soft anomalies inside a running script are logged and
// never returned.
package error
