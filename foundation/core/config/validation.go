// File: validation.go
// Title: Configuration Validation
// Description: Validates configuration values against declarative rules.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of validation
// - 2026-10-17 v0.2.0: Enumerated values, environment-aware checks

package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
)

// ValidationRule defines validation criteria for a configuration value
type ValidationRule struct {
	Required bool
	// Type is one of "string", "int", "bool"
	Type string
	// OneOf restricts string values (compared case-insensitively)
	OneOf []string
	// Min applies to int values
	Min *int
}

// ValidationRules maps configuration keys to their validation rules
type ValidationRules map[string]ValidationRule

// Validate checks the configuration and returns an error listing every
// violation, or nil
func (c *Config) Validate(rules ValidationRules) error {
	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var problems []string
	for _, key := range keys {
		if msg := c.validateField(key, rules[key]); msg != "" {
			problems = append(problems, msg)
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return mdwerror.New("invalid configuration: "+strings.Join(problems, "; ")).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("violations", len(problems))
}

func (c *Config) validateField(key string, rule ValidationRule) string {
	raw := c.GetString(key)
	if raw == "" {
		if rule.Required {
			return fmt.Sprintf("required field '%s' is missing", key)
		}
		return ""
	}

	switch rule.Type {
	case "int":
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Sprintf("field '%s' must be an integer, got %q", key, raw)
		}
		if rule.Min != nil && n < *rule.Min {
			return fmt.Sprintf("field '%s' must be >= %d, got %d", key, *rule.Min, n)
		}
	case "bool":
		if _, err := strconv.ParseBool(raw); err != nil {
			return fmt.Sprintf("field '%s' must be a boolean, got %q", key, raw)
		}
	}

	if len(rule.OneOf) > 0 {
		for _, allowed := range rule.OneOf {
			if strings.EqualFold(allowed, raw) {
				return ""
			}
		}
		return fmt.Sprintf("field '%s' must be one of [%s], got %q", key, strings.Join(rule.OneOf, ", "), raw)
	}
	return ""
}
