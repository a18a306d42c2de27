// File: discovery.go
// Title: Configuration File Discovery
// Description: Searches well-known locations for a configuration file and
//              falls back to defaults when none is found.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation
// - 2026-10-17 v0.2.0: Optional discovery returning a defaults-only config

package config

import (
	"os"
	"path/filepath"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
)

// DiscoveryOptions defines options for automatic configuration file discovery
type DiscoveryOptions struct {
	Paths      []string
	Filenames  []string
	Extensions []string
	EnvPrefix  string
	Defaults   map[string]interface{}
	Required   bool
}

// Discover loads the first configuration file found in the search paths.
// When nothing is found and the file is not required, a defaults-only
// configuration is returned.
func Discover(options DiscoveryOptions) (*Config, error) {
	if len(options.Extensions) == 0 {
		options.Extensions = []string{".toml", ".yaml", ".yml"}
	}

	if path, ok := findConfigFile(options); ok {
		cfg, err := LoadWithOptions(path, LoadOptions{
			Format:    FormatAuto,
			EnvPrefix: options.EnvPrefix,
			Defaults:  options.Defaults,
		})
		if err != nil {
			return nil, mdwerror.Wrap(err, "found config file but failed to load it").
				WithOperation("config.Discover").
				WithDetail("configPath", path)
		}
		return cfg, nil
	}

	if options.Required {
		return nil, mdwerror.New("no configuration file found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.Discover").
			WithDetail("searchPaths", options.Paths)
	}
	return FromDefaults(LoadOptions{EnvPrefix: options.EnvPrefix, Defaults: options.Defaults}), nil
}

func findConfigFile(options DiscoveryOptions) (string, bool) {
	for _, dir := range options.Paths {
		for _, name := range options.Filenames {
			for _, ext := range options.Extensions {
				candidate := filepath.Join(dir, name+ext)
				if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
					return candidate, true
				}
			}
		}
	}
	return "", false
}
