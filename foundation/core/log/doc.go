// File: doc.go
// Title: Logging Package Documentation
// Description: Package documentation for the structured logger.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial documentation
// - 2026-10-17 v0.2.0: Updated for the GeoTortue runtime

// Package log provides the structured, leveled logger shared by all
// GeoTortue components.
//
// Components derive a child logger carrying their name:
//
//	logger := mdwlog.GetDefault().WithField("component", "interpreter")
//	logger.Warn("Unknown procedure", mdwlog.Fields{"name": name})
//
// Each interpreter execution tags its entries with a run id through
// WithRunID so that the output of concurrent CLI invocations can be told
// apart. The interpreter never fails on soft anomalies; they surface here.
package log
