// File: config.go
// Title: Configuration Loading
// Description: Loads TOML or YAML configuration files into a dotted-key
//              store with defaults and environment variable overrides.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML and env support
// - 2026-10-17 v0.2.0: Env lookups through xyproto/env, dropped watching and
//                      request context

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
)

// Format represents a configuration file format
type Format int

const (
	// FormatAuto detects the format from the file extension
	FormatAuto Format = iota
	// FormatTOML is the TOML format
	FormatTOML
	// FormatYAML is the YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// Config is a thread-safe view over nested configuration data.
// Values are addressed with dotted keys such as "dsl.language".
type Config struct {
	mu        sync.RWMutex
	data      map[string]interface{}
	filePath  string
	format    Format
	envPrefix string
}

// LoadOptions defines options for loading configuration
type LoadOptions struct {
	Format    Format
	EnvPrefix string
	Defaults  map[string]interface{}
}

// Load loads configuration from a file with default options
func Load(filePath string) (*Config, error) {
	return LoadWithOptions(filePath, LoadOptions{Format: FormatAuto})
}

// LoadWithOptions loads configuration from a file with custom options
func LoadWithOptions(filePath string, options LoadOptions) (*Config, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, mdwerror.New("config file path cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config.LoadWithOptions")
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		code := mdwerror.CodeConfigError
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return nil, mdwerror.Wrap(err, "failed to read config file").
			WithCode(code).
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath)
	}

	format := options.Format
	if format == FormatAuto {
		format = DetectFormat(filePath)
	}

	data, err := parseContent(content, format)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config file").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath).
			WithDetail("format", format.String())
	}

	cfg := newConfig(mergeDefaults(data, options.Defaults), format, options.EnvPrefix)
	cfg.filePath = filePath
	return cfg, nil
}

// LoadFromString loads configuration from a string with specified format
func LoadFromString(content string, format Format, options LoadOptions) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}
	data, err := parseContent([]byte(content), format)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config from string").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.LoadFromString").
			WithDetail("format", format.String())
	}
	return newConfig(mergeDefaults(data, options.Defaults), format, options.EnvPrefix), nil
}

// FromDefaults builds a configuration holding only defaults and env overrides
func FromDefaults(options LoadOptions) *Config {
	return newConfig(mergeDefaults(nil, options.Defaults), FormatTOML, options.EnvPrefix)
}

// newConfig refreshes the env snapshot so variables set since the last
// load are visible to the getters
func newConfig(data map[string]interface{}, format Format, envPrefix string) *Config {
	env.Load()
	return &Config{
		data:      data,
		format:    format,
		envPrefix: envPrefix,
	}
}

// DetectFormat determines the configuration format from file extension
func DetectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func parseContent(content []byte, format Format) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return data, nil
}

// mergeDefaults deep-merges data over defaults
func mergeDefaults(data, defaults map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(defaults)+len(data))
	for k, v := range defaults {
		if nested, ok := v.(map[string]interface{}); ok {
			v = mergeDefaults(nil, nested)
		}
		result[k] = v
	}
	for k, v := range data {
		nested, isMap := v.(map[string]interface{})
		base, baseIsMap := result[k].(map[string]interface{})
		if isMap && baseIsMap {
			result[k] = mergeDefaults(nested, base)
			continue
		}
		result[k] = v
	}
	return result
}

// GetString returns a string value; the environment overrides the file
func (c *Config) GetString(key string, defaultValue ...string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if envKey := c.EnvKey(key); env.Has(envKey) {
		return env.Str(envKey)
	}
	if value := c.getValue(key); value != nil {
		return fmt.Sprintf("%v", value)
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetInt returns an integer value; the environment overrides the file
func (c *Config) GetInt(key string, defaultValue ...int) int {
	fallback := 0
	if len(defaultValue) > 0 {
		fallback = defaultValue[0]
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if envKey := c.EnvKey(key); env.Has(envKey) {
		if n, err := strconv.Atoi(env.Str(envKey)); err == nil {
			return n
		}
		return fallback
	}
	switch v := c.getValue(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// GetBool returns a boolean value; the environment overrides the file
func (c *Config) GetBool(key string, defaultValue ...bool) bool {
	fallback := false
	if len(defaultValue) > 0 {
		fallback = defaultValue[0]
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if envKey := c.EnvKey(key); env.Has(envKey) {
		if b, err := strconv.ParseBool(env.Str(envKey)); err == nil {
			return b
		}
		return fallback
	}
	switch v := c.getValue(key).(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// Has checks if a configuration key exists in the file or defaults
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.getValue(key) != nil
}

// Set sets a configuration value at runtime
func (c *Config) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := strings.Split(key, ".")
	current := c.data
	for _, k := range keys[:len(keys)-1] {
		next, ok := current[k].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[k] = next
		}
		current = next
	}
	current[keys[len(keys)-1]] = value
}

// FilePath returns the path of the loaded file, if any
func (c *Config) FilePath() string {
	return c.filePath
}

// EnvKey converts a config key to its environment variable name:
// dsl.language with prefix GEOTORTUE becomes GEOTORTUE_DSL_LANGUAGE
func (c *Config) EnvKey(key string) string {
	envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if c.envPrefix != "" {
		envKey = strings.ToUpper(c.envPrefix) + "_" + envKey
	}
	return envKey
}

func (c *Config) getValue(key string) interface{} {
	keys := strings.Split(key, ".")
	current := c.data
	for i, k := range keys {
		if i == len(keys)-1 {
			return current[k]
		}
		next, ok := current[k].(map[string]interface{})
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}
