// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels attached to errors; the logger maps them to
//              log levels.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-17 v0.2.0: Severity defaults for DSL codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a problem in user input, such as a script typo
	SeverityLow Severity = iota

	// SeverityMedium indicates a degraded feature, such as a missing dictionary
	SeverityMedium

	// SeverityHigh indicates a failure of the runtime itself
	SeverityHigh
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeSyntaxError, CodeInvalidInput, CodeUndefinedSymbol, CodeEvaluationFailed,
		CodeNotFound, CodeExecutionStopped:
		return SeverityLow
	case CodeInternal:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
