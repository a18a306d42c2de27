// File: definition.go
// Title: Dictionary File Format
// Description: On-disk shape of a per-language DSL dictionary and its
//              decoding from JSON, YAML or TOML. A canonical name maps to
//              one word or a list of aliases, the first being primary.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package dictionary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
)

// Format is a dictionary file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Extensions lists the recognized file extensions in lookup order
var Extensions = []string{".json", ".yaml", ".yml", ".toml"}

// FormatOf returns the format implied by a file name
func FormatOf(name string) (Format, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	}
	return "", false
}

// Definition is the content of one dictionary file
type Definition struct {
	Version  string           `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Commands map[string]Words `json:"commands" yaml:"commands" toml:"commands"`
	Keywords map[string]Words `json:"keywords" yaml:"keywords" toml:"keywords"`
	Colors   map[string]Words `json:"colors" yaml:"colors" toml:"colors"`
}

// Words is a single word or a list of aliases
type Words []string

// Primary returns the first word
func (w Words) Primary() string {
	if len(w) == 0 {
		return ""
	}
	return w[0]
}

// UnmarshalJSON accepts "word" and ["word", "alias"]
func (w *Words) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*w = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*w = Words{single}
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence
func (w *Words) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*w = Words{single}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*w = list
		return nil
	}
	return fmt.Errorf("line %d: expected a word or a list of words", node.Line)
}

// UnmarshalTOML accepts a string or an array of strings
func (w *Words) UnmarshalTOML(data interface{}) error {
	switch v := data.(type) {
	case string:
		*w = Words{v}
		return nil
	case []interface{}:
		list := make(Words, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected a string, found %T", item)
			}
			list = append(list, s)
		}
		*w = list
		return nil
	}
	return fmt.Errorf("expected a word or a list of words, found %T", data)
}

// Decode parses a dictionary file
func Decode(data []byte, format Format) (*Definition, error) {
	def := &Definition{}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, def)
	case FormatYAML:
		err = yaml.Unmarshal(data, def)
	case FormatTOML:
		err = toml.Unmarshal(data, def)
	default:
		return nil, mdwerror.Newf("unsupported dictionary format %q", format).
			WithCode(mdwerror.CodeDictionaryLoad).
			WithOperation("dictionary.Decode")
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to decode dictionary").
			WithCode(mdwerror.CodeDictionaryLoad).
			WithOperation("dictionary.Decode").
			WithDetail("format", string(format))
	}
	return def, nil
}
