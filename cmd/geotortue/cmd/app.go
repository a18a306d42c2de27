// File: app.go
// Title: Application Bootstrap
// Description: Loads the configuration and wires the logger, dictionaries,
//              localization service and UI catalogs shared by the commands.
//              Flags override the configuration, the environment
//              (GEOTORTUE_*) overrides the file.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/msto63/geotortue/foundation/core/config"
	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	"github.com/msto63/geotortue/foundation/core/i18n"
	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/dictionary"
	"github.com/msto63/geotortue/internal/language"
	"github.com/msto63/geotortue/locales"
)

const envPrefix = "GEOTORTUE"

// defaults mirrors the layout of geotortue.toml
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"dsl": map[string]interface{}{"language": "fr"},
		"ui":  map[string]interface{}{"language": "en"},
		"dictionary": map[string]interface{}{
			"dir":   "",
			"url":   "",
			"watch": false,
		},
		"log": map[string]interface{}{
			"level":  "warn",
			"format": "text",
		},
		"interpreter": map[string]interface{}{
			"max_loop_iterations": 0,
			"eval_mode":           "log",
		},
	}
}

var zero = 0

var rules = config.ValidationRules{
	"dsl.language":                    {Required: true, Type: "string"},
	"ui.language":                     {Type: "string"},
	"dictionary.watch":                {Type: "bool"},
	"log.level":                       {Type: "string", OneOf: []string{"trace", "debug", "info", "warn", "warning", "error"}},
	"log.format":                      {Type: "string", OneOf: []string{"json", "text"}},
	"interpreter.max_loop_iterations": {Type: "int", Min: &zero},
	"interpreter.eval_mode":           {Type: "string", OneOf: []string{"silent", "log", "strict"}},
}

// app holds the services built from the configuration
type app struct {
	cfg      *config.Config
	logger   *mdwlog.Logger
	dicts    *dictionary.Service
	lang     *language.Service
	messages *i18n.Manager
}

// loadConfig reads --config, or discovers geotortue.{toml,yaml} in the
// working directory and the user config directory
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadWithOptions(cfgFile, config.LoadOptions{EnvPrefix: envPrefix, Defaults: defaults()})
	} else {
		paths := []string{"."}
		if dir, derr := os.UserConfigDir(); derr == nil {
			paths = append(paths, filepath.Join(dir, "geotortue"))
		}
		cfg, err = config.Discover(config.DiscoveryOptions{
			Paths:     paths,
			Filenames: []string{"geotortue"},
			EnvPrefix: envPrefix,
			Defaults:  defaults(),
		})
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(rules); err != nil {
		return nil, err
	}
	return cfg, nil
}

// flagOr prefers an explicit flag over the configuration, which the
// environment may override
func flagOr(flag string, cfg *config.Config, key string) string {
	if flag != "" {
		return flag
	}
	return cfg.GetString(key)
}

func newLogger(cfg *config.Config, out io.Writer) (*mdwlog.Logger, error) {
	level, err := mdwlog.ParseLevel(cfg.GetString("log.level"))
	if verbose {
		level, err = mdwlog.LevelDebug, nil
	} else if logLevel != "" {
		level, err = mdwlog.ParseLevel(logLevel)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid log level").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("cmd.newLogger")
	}
	format, err := mdwlog.ParseFormat(cfg.GetString("log.format"))
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid log format").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("cmd.newLogger")
	}
	return mdwlog.NewWithConfig(mdwlog.Config{Level: level, Format: format, Output: out, Name: "geotortue"}), nil
}

// dictionarySource chains the configured directory and URL in front of
// the embedded dictionaries
func dictionarySource(cfg *config.Config) dictionary.Source {
	var chain dictionary.ChainSource
	if dir := cfg.GetString("dictionary.dir"); dir != "" {
		chain = append(chain, dictionary.DirSource(dir))
	}
	if url := cfg.GetString("dictionary.url"); url != "" {
		chain = append(chain, dictionary.NewHTTPSource(url))
	}
	chain = append(chain, &dictionary.FSSource{FS: locales.DSL, Dir: "."})
	if len(chain) == 1 {
		return chain[0]
	}
	return chain
}

// newApp builds the services and loads the DSL dictionary of the
// configured language
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg, logOut)
	if err != nil {
		return nil, err
	}

	dicts, err := dictionary.NewService(dictionary.Options{Source: dictionarySource(cfg), Logger: logger})
	if err != nil {
		return nil, err
	}
	messages, err := i18n.New(i18n.Options{DefaultLocale: "en", FS: locales.UI})
	if err != nil {
		return nil, err
	}
	ui := messages.DetectLocale(flagOr(uiLang, cfg, "ui.language"))

	lang, err := language.New(language.Options{
		Dictionaries: dicts,
		Messages:     messages,
		UILanguage:   ui,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}
	lang.Subscribe(func(l string) {
		logger.Debug(lang.Translate("app.language_changed", map[string]interface{}{"Language": l}))
	})
	if err := lang.SetDSLLanguage(ctx, flagOr(dslLang, cfg, "dsl.language")); err != nil {
		return nil, err
	}

	logger.Debug("Application initialized", mdwlog.Fields{
		"config": cfg.FilePath(),
		"dsl":    lang.DSLLanguage(),
		"ui":     lang.UILanguage(),
	})
	return &app{cfg: cfg, logger: logger, dicts: dicts, lang: lang, messages: messages}, nil
}

// t renders a UI message in the configured language
func (a *app) t(key string, data map[string]interface{}) string {
	return a.lang.Translate(key, data)
}
