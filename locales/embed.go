// Package locales embeds the default DSL dictionaries and UI message
// catalogs.
package locales

import (
	"embed"
	"io/fs"
)

//go:embed dsl/*.json ui/*.toml
var files embed.FS

// DSL holds one dictionary per language: fr.json, en.json
var DSL = mustSub("dsl")

// UI holds one message catalog per language: fr.toml, en.toml
var UI = mustSub("ui")

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
