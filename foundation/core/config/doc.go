// File: doc.go
// Title: Configuration Package Documentation
// Description: Package documentation for configuration loading.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial documentation
// - 2026-10-17 v0.2.0: Updated for the GeoTortue runtime

// Package config loads TOML or YAML configuration files and exposes their
// values through dotted keys. Every key can be overridden from the
// environment: with the prefix GEOTORTUE, the key dsl.language is read
// from GEOTORTUE_DSL_LANGUAGE.
package config
