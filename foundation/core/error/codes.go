// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify failures of the
//              GeoTortue pipeline: syntax, evaluation, dictionaries and
//              configuration.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-17 v0.2.0: Replaced platform codes with DSL pipeline codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL"
	CodeNotFound         Code = "NOT_FOUND"
	CodeInvalidInput     Code = "INVALID_INPUT"
	CodeInvalidOperation Code = "INVALID_OPERATION"

	// DSL pipeline
	CodeSyntaxError      Code = "SYNTAX_ERROR"
	CodeEvaluationFailed Code = "EVALUATION_FAILED"
	CodeUndefinedSymbol  Code = "UNDEFINED_SYMBOL"
	CodeExecutionStopped Code = "EXECUTION_STOPPED"

	// Localization
	CodeDictionaryLoad      Code = "DICTIONARY_LOAD"
	CodeUnsupportedLanguage Code = "UNSUPPORTED_LANGUAGE"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeSyntaxError, CodeEvaluationFailed, CodeUndefinedSymbol, CodeExecutionStopped:
		return "dsl"
	case CodeDictionaryLoad, CodeUnsupportedLanguage:
		return "localization"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// ExitCode returns the process exit status the CLI uses for this code
func (c Code) ExitCode() int {
	switch c {
	case CodeSyntaxError:
		return 2
	case CodeConfigError, CodeInvalidConfig:
		return 3
	case CodeDictionaryLoad, CodeUnsupportedLanguage:
		return 4
	default:
		return 1
	}
}
