// Package dictionary maps localized GeoTortue words to canonical GT_ names
// and back. A Definition is decoded from JSON, YAML or TOML, built into an
// immutable Dictionary, and served per language by a caching Service that
// can also hot-reload files from disk.
package dictionary
