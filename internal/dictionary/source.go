// File: source.go
// Title: Dictionary Sources
// Description: Where dictionary files come from: a file system (embedded
//              or on disk), an HTTP server serving {base}/{lang}/dsl.json,
//              or a chain that tries several sources in order.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
)

// maxDictionarySize bounds a fetched dictionary body
const maxDictionarySize = 4 << 20

// Source fetches the raw definition of one language
type Source interface {
	Fetch(ctx context.Context, lang string) (*Definition, error)
	String() string
}

// notFound builds the error returned when a source has no file for lang
func notFound(lang, where string) error {
	return mdwerror.Newf("no dictionary for language %q in %s", lang, where).
		WithCode(mdwerror.CodeNotFound).
		WithOperation("dictionary.Fetch").
		WithDetail("language", lang)
}

// FSSource reads <Dir>/<lang>.{json,yaml,yml,toml} from a file system
type FSSource struct {
	FS  fs.FS
	Dir string
}

// DirSource reads dictionary files from a directory on disk
func DirSource(dir string) *FSSource {
	return &FSSource{FS: os.DirFS(dir), Dir: "."}
}

// Fetch implements Source
func (s *FSSource) Fetch(ctx context.Context, lang string) (*Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validLanguage(lang) {
		return nil, invalidLanguage(lang)
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	for _, ext := range Extensions {
		name := path.Join(dir, lang+ext)
		data, err := fs.ReadFile(s.FS, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, mdwerror.Wrap(err, "failed to read dictionary").
				WithCode(mdwerror.CodeDictionaryLoad).
				WithOperation("dictionary.FSSource.Fetch").
				WithDetail("file", name)
		}
		format, _ := FormatOf(name)
		def, err := Decode(data, format)
		if err != nil {
			return nil, mdwerror.Wrap(err, "invalid dictionary file").WithDetail("file", name)
		}
		return def, nil
	}
	return nil, notFound(lang, s.String())
}

func (s *FSSource) String() string {
	return fmt.Sprintf("fs:%s", s.Dir)
}

// HTTPSource fetches {BaseURL}/{lang}/dsl.json
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates an HTTP source with a bounded client
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch implements Source
func (s *HTTPSource) Fetch(ctx context.Context, lang string) (*Definition, error) {
	if !validLanguage(lang) {
		return nil, invalidLanguage(lang)
	}
	target, err := url.JoinPath(s.BaseURL, lang, "dsl.json")
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid dictionary URL").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("dictionary.HTTPSource.Fetch")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to build request").
			WithCode(mdwerror.CodeInternal).
			WithOperation("dictionary.HTTPSource.Fetch")
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, mdwerror.Wrap(err, "dictionary request failed").
			WithCode(mdwerror.CodeDictionaryLoad).
			WithOperation("dictionary.HTTPSource.Fetch").
			WithDetail("url", target)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, notFound(lang, target)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, mdwerror.Newf("dictionary request returned %s", resp.Status).
			WithCode(mdwerror.CodeDictionaryLoad).
			WithOperation("dictionary.HTTPSource.Fetch").
			WithDetail("url", target)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDictionarySize))
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read dictionary body").
			WithCode(mdwerror.CodeDictionaryLoad).
			WithOperation("dictionary.HTTPSource.Fetch").
			WithDetail("url", target)
	}
	return Decode(data, FormatJSON)
}

func (s *HTTPSource) String() string {
	return "http:" + s.BaseURL
}

// ChainSource tries each source in turn. A source that has no file for
// the language passes to the next one; any other failure stops the chain.
type ChainSource []Source

// Fetch implements Source
func (c ChainSource) Fetch(ctx context.Context, lang string) (*Definition, error) {
	for _, s := range c {
		def, err := s.Fetch(ctx, lang)
		if err == nil {
			return def, nil
		}
		if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
			return nil, err
		}
	}
	return nil, notFound(lang, c.String())
}

func (c ChainSource) String() string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.String()
	}
	return "chain[" + strings.Join(names, ", ") + "]"
}

// validLanguage accepts codes like "fr", "en" or "pt-BR"
func validLanguage(lang string) bool {
	if lang == "" || len(lang) > 16 {
		return false
	}
	for _, r := range lang {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func invalidLanguage(lang string) error {
	return mdwerror.Newf("invalid language code %q", lang).
		WithCode(mdwerror.CodeUnsupportedLanguage).
		WithOperation("dictionary.Fetch")
}
