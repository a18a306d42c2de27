// File: dictionary_test.go
// Title: Dictionary Tests
// Description: Tests for decoding, building, sources, the caching service
//              and hot reload.
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
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	mdwlog "github.com/msto63/geotortue/foundation/core/log"
)

const frJSON = `{
  "version": "1.0.0",
  "commands": {"GT_FORWARD": ["avance", "av"], "GT_RIGHT": "td"},
  "keywords": {"GT_REP": "rep"},
  "colors": {"GT_RED": ["rouge"], "GT_LIGHTBLUE": "bleu clair"}
}`

const enJSON = `{
  "commands": {"GT_FORWARD": ["forward", "fd"], "GT_RIGHT": "rt"},
  "keywords": {"GT_REP": "repeat"},
  "colors": {"GT_RED": "red"}
}`

func TestDecodeFormats(t *testing.T) {
	yamlDoc := "version: 1.2.0\ncommands:\n  GT_FORWARD: [avance, av]\n  GT_RIGHT: td\ncolors:\n  GT_RED: rouge\n"
	tomlDoc := "version = \"1.2.0\"\n[commands]\nGT_FORWARD = [\"avance\", \"av\"]\nGT_RIGHT = \"td\"\n[colors]\nGT_RED = \"rouge\"\n"

	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json", frJSON, FormatJSON},
		{"yaml", yamlDoc, FormatYAML},
		{"toml", tomlDoc, FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := Decode([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got := def.Commands["GT_FORWARD"]; !slices.Equal(got, Words{"avance", "av"}) {
				t.Errorf("GT_FORWARD = %v", got)
			}
			if got := def.Commands["GT_RIGHT"]; !slices.Equal(got, Words{"td"}) {
				t.Errorf("single word not wrapped: %v", got)
			}
			if got := def.Colors["GT_RED"].Primary(); got != "rouge" {
				t.Errorf("GT_RED primary = %q", got)
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		if _, err := Decode([]byte("{}"), Format("ini")); !mdwerror.HasCode(err, mdwerror.CodeDictionaryLoad) {
			t.Errorf("error = %v, want CodeDictionaryLoad", err)
		}
	})
	t.Run("bad words", func(t *testing.T) {
		if _, err := Decode([]byte(`{"commands":{"GT_FORWARD":42}}`), FormatJSON); err == nil {
			t.Error("number as word must fail")
		}
	})
}

func TestFormatOf(t *testing.T) {
	for name, want := range map[string]Format{"fr.json": FormatJSON, "fr.YML": FormatYAML, "a/b/en.toml": FormatTOML} {
		if got, ok := FormatOf(name); !ok || got != want {
			t.Errorf("FormatOf(%q) = %q, %v", name, got, ok)
		}
	}
	if _, ok := FormatOf("fr.txt"); ok {
		t.Error("txt is not a dictionary format")
	}
}

func mustBuild(t *testing.T, lang, doc string) *Dictionary {
	t.Helper()
	def, err := Decode([]byte(doc), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	d, err := Build(lang, def)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestBuildMappings(t *testing.T) {
	d := mustBuild(t, "fr", frJSON)

	if w, _ := d.Forward(Commands, "GT_FORWARD"); w != "avance" {
		t.Errorf("forward uses the first alias, got %q", w)
	}
	for _, alias := range []string{"avance", "AV", "  Avance "} {
		if c, ok := d.Reverse(Commands, alias); !ok || c != "GT_FORWARD" {
			t.Errorf("Reverse(%q) = %q, %v", alias, c, ok)
		}
	}
	if _, ok := d.Reverse(Keywords, "avance"); ok {
		t.Error("categories must not leak into each other")
	}

	c, cat, ok := d.Lookup("REP")
	if !ok || c != "GT_REP" || cat != Keywords {
		t.Errorf("Lookup(REP) = %q, %v, %v", c, cat, ok)
	}
	if _, _, ok := d.Lookup("inconnu"); ok {
		t.Error("unknown word resolved")
	}

	if css, ok := d.CSSColorOf("Rouge"); !ok || css != "red" {
		t.Errorf("CSSColorOf(Rouge) = %q, %v", css, ok)
	}
	if css, _ := d.CSSColor("GT_LIGHTBLUE"); css != "lightblue" {
		t.Errorf("css strips the prefix and lower-cases, got %q", css)
	}
	if d.Version() != "1.0.0" || d.Language() != "fr" || d.IsEmpty() {
		t.Error("metadata not kept")
	}
	if got := d.Words(Commands); !slices.Equal(got, []string{"av", "avance", "td"}) {
		t.Errorf("Words(Commands) = %v", got)
	}
	if got := d.Canonicals(Colors); !slices.Equal(got, []string{"GT_LIGHTBLUE", "GT_RED"}) {
		t.Errorf("Canonicals(Colors) = %v", got)
	}
}

func TestBuildRejects(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{"color without prefix", Definition{Colors: map[string]Words{"RED": {"rouge"}}}},
		{"bare prefix", Definition{Colors: map[string]Words{"GT_": {"rouge"}}}},
		{"bad version", Definition{Version: "one"}},
		{"future version", Definition{Version: "2.0.0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build("fr", &tt.def); !mdwerror.HasCode(err, mdwerror.CodeDictionaryLoad) {
				t.Errorf("Build() error = %v, want CodeDictionaryLoad", err)
			}
		})
	}
}

func TestEmptyDictionary(t *testing.T) {
	d := Empty("xx")
	if !d.IsEmpty() {
		t.Error("Empty() must be empty")
	}
	if _, _, ok := d.Lookup("forward"); ok {
		t.Error("lookups must miss")
	}
	if _, ok := d.Reverse(Category(7), "x"); ok {
		t.Error("out of range category must miss")
	}
}

func TestFSSource(t *testing.T) {
	fsys := fstest.MapFS{
		"dsl/fr.json": {Data: []byte(frJSON)},
		"dsl/de.yaml": {Data: []byte("commands:\n  GT_FORWARD: vorwärts\n")},
		"dsl/it.json": {Data: []byte("{")},
	}
	src := &FSSource{FS: fsys, Dir: "dsl"}
	ctx := context.Background()

	def, err := src.Fetch(ctx, "fr")
	if err != nil || def.Commands["GT_FORWARD"].Primary() != "avance" {
		t.Fatalf("Fetch(fr) = %v, %v", def, err)
	}
	if def, err := src.Fetch(ctx, "de"); err != nil || def.Commands["GT_FORWARD"].Primary() != "vorwärts" {
		t.Errorf("Fetch(de) = %v, %v", def, err)
	}
	if _, err := src.Fetch(ctx, "es"); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("missing language error = %v", err)
	}
	if _, err := src.Fetch(ctx, "it"); !mdwerror.HasCode(err, mdwerror.CodeDictionaryLoad) {
		t.Errorf("broken file error = %v", err)
	}
	if _, err := src.Fetch(ctx, "../etc"); !mdwerror.HasCode(err, mdwerror.CodeUnsupportedLanguage) {
		t.Errorf("path-like language error = %v", err)
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/locales/fr/dsl.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(frJSON))
		case "/locales/xx/dsl.json":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL + "/locales/")
	ctx := context.Background()

	def, err := src.Fetch(ctx, "fr")
	if err != nil || def.Keywords["GT_REP"].Primary() != "rep" {
		t.Fatalf("Fetch(fr) = %v, %v", def, err)
	}
	if _, err := src.Fetch(ctx, "es"); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("404 error = %v", err)
	}
	if _, err := src.Fetch(ctx, "xx"); !mdwerror.HasCode(err, mdwerror.CodeDictionaryLoad) {
		t.Errorf("500 error = %v", err)
	}
}

func TestChainSource(t *testing.T) {
	first := &FSSource{FS: fstest.MapFS{"en.json": {Data: []byte(enJSON)}}}
	second := &FSSource{FS: fstest.MapFS{"fr.json": {Data: []byte(frJSON)}, "en.json": {Data: []byte(frJSON)}}}
	chain := ChainSource{first, second}
	ctx := context.Background()

	if def, err := chain.Fetch(ctx, "en"); err != nil || def.Commands["GT_FORWARD"].Primary() != "forward" {
		t.Errorf("first source must win: %v, %v", def, err)
	}
	if def, err := chain.Fetch(ctx, "fr"); err != nil || def.Commands["GT_FORWARD"].Primary() != "avance" {
		t.Errorf("fallthrough failed: %v, %v", def, err)
	}
	if _, err := chain.Fetch(ctx, "es"); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("chain miss error = %v", err)
	}
}

// countingSource counts fetches and can be switched to fail
type countingSource struct {
	inner Source
	calls atomic.Int32
	fail  atomic.Bool
	delay time.Duration
}

func (c *countingSource) Fetch(ctx context.Context, lang string) (*Definition, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.fail.Load() {
		return nil, mdwerror.New("offline").WithCode(mdwerror.CodeDictionaryLoad)
	}
	return c.inner.Fetch(ctx, lang)
}

func (c *countingSource) String() string { return "counting" }

func newTestService(t *testing.T, src Source, logger *mdwlog.Logger) *Service {
	t.Helper()
	if logger == nil {
		logger = mdwlog.Discard()
	}
	s, err := NewService(Options{Source: src, Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func testFS() fstest.MapFS {
	return fstest.MapFS{"fr.json": {Data: []byte(frJSON)}, "en.json": {Data: []byte(enJSON)}}
}

func TestNewServiceRequiresSource(t *testing.T) {
	if _, err := NewService(Options{}); !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("error = %v", err)
	}
}

func TestServiceCachesAndDeduplicates(t *testing.T) {
	src := &countingSource{inner: &FSSource{FS: testFS()}, delay: 20 * time.Millisecond}
	s := newTestService(t, src, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Get(ctx, "fr"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if _, err := s.Get(ctx, "fr"); err != nil {
		t.Fatal(err)
	}
	if n := src.calls.Load(); n != 1 {
		t.Errorf("fetches = %d, want 1", n)
	}
	if got := s.Loaded(); !slices.Equal(got, []string{"fr"}) {
		t.Errorf("Loaded() = %v", got)
	}
}

// gatedSource blocks every fetch until release is closed
type gatedSource struct {
	inner   Source
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedSource) Fetch(ctx context.Context, lang string) (*Definition, error) {
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.inner.Fetch(ctx, lang)
}

func (g *gatedSource) String() string { return "gated" }

func TestCancelledCallerDoesNotFailOtherWaiters(t *testing.T) {
	src := &gatedSource{
		inner:   &FSSource{FS: testFS()},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := newTestService(t, src, nil)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := s.Get(ctx, "fr")
		first <- err
	}()
	<-src.started

	second := make(chan error, 1)
	go func() {
		_, err := s.Get(context.Background(), "fr")
		second <- err
	}()

	cancel()
	select {
	case err := <-first:
		if !mdwerror.HasCode(err, mdwerror.CodeDictionaryLoad) {
			t.Errorf("cancelled caller error = %v, want CodeDictionaryLoad", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller is still waiting")
	}

	close(src.release)
	select {
	case err := <-second:
		if err != nil {
			t.Fatalf("second caller error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second caller never got the dictionary")
	}
	if key, ok := s.GetInternalKey("avance", "fr"); !ok || key != "GT_FORWARD" {
		t.Errorf("GetInternalKey after shared load = %q, %v", key, ok)
	}
}

func TestServiceFailureIsNotCached(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelWarn, Format: mdwlog.FormatText, Output: &buf})
	src := &countingSource{inner: &FSSource{FS: testFS()}}
	src.fail.Store(true)
	s := newTestService(t, src, logger)
	ctx := context.Background()

	d, err := s.Get(ctx, "fr")
	if err == nil {
		t.Fatal("expected an error")
	}
	if d == nil || !d.IsEmpty() {
		t.Error("failure must yield an empty dictionary")
	}
	if !strings.Contains(buf.String(), "Failed to load dictionary") {
		t.Errorf("failure not logged: %q", buf.String())
	}
	if key, ok := s.GetInternalKey("avance", "fr"); ok {
		t.Errorf("GetInternalKey during outage = %q", key)
	}

	src.fail.Store(false)
	if _, err := s.Get(ctx, "fr"); err != nil {
		t.Fatalf("retry after outage: %v", err)
	}
	if key, ok := s.GetInternalKey("AV", "fr"); !ok || key != "GT_FORWARD" {
		t.Errorf("GetInternalKey after retry = %q, %v", key, ok)
	}
}

func TestServiceLookups(t *testing.T) {
	s := newTestService(t, &FSSource{FS: testFS()}, nil)
	ctx := context.Background()

	for _, w := range []string{"avance", "AVANCE", "AvAnCe"} {
		if key, ok := s.GetInternalKey(w, "fr"); ok {
			t.Errorf("%q resolved to %q before loading", w, key)
		}
	}
	if _, err := s.LoadAll(ctx, "fr", "en"); err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{"avance", "AVANCE", "AvAnCe"} {
		if key, _ := s.GetInternalKey(w, "fr"); key != "GT_FORWARD" {
			t.Errorf("GetInternalKey(%q) = %q", w, key)
		}
	}
	if key, _ := s.GetInternalKey("rep", "fr"); key != "GT_REP" {
		t.Errorf("keyword key = %q", key)
	}
	if key, _ := s.GetInternalKey("rouge", "fr"); key != "GT_RED" {
		t.Errorf("color key = %q", key)
	}
	if css, ok := s.GetCSSColor("bleu clair", "fr"); !ok || css != "lightblue" {
		t.Errorf("GetCSSColor = %q, %v", css, ok)
	}
	if css, ok := s.GetCSSColor("GT_RED", "en"); !ok || css != "red" {
		t.Errorf("canonical color = %q, %v", css, ok)
	}
	if _, ok := s.GetCSSColor("avance", "fr"); ok {
		t.Error("a command is not a color")
	}
}

func TestLoadAll(t *testing.T) {
	s := newTestService(t, &FSSource{FS: testFS()}, nil)
	ctx := context.Background()

	ds, err := s.LoadAll(ctx, "fr", "en")
	if err != nil {
		t.Fatal(err)
	}
	if ds[0].Language() != "fr" || ds[1].Language() != "en" {
		t.Errorf("order not kept: %s, %s", ds[0].Language(), ds[1].Language())
	}
	if _, err := s.LoadAll(ctx, "fr", "es"); err == nil {
		t.Error("missing language must fail LoadAll")
	}
}

func TestReloadAndInvalidate(t *testing.T) {
	fsys := testFS()
	s := newTestService(t, &FSSource{FS: fsys}, nil)
	ctx := context.Background()

	if _, err := s.Get(ctx, "en"); err != nil {
		t.Fatal(err)
	}
	fsys["en.json"] = &fstest.MapFile{Data: []byte(`{"commands":{"GT_FORWARD":"go"}}`)}

	if key, _ := s.GetInternalKey("go", "en"); key != "" {
		t.Error("cache must hold until reload")
	}
	if _, err := s.Reload(ctx, "en"); err != nil {
		t.Fatal(err)
	}
	if key, _ := s.GetInternalKey("go", "en"); key != "GT_FORWARD" {
		t.Errorf("after reload key = %q", key)
	}

	fsys["en.json"] = &fstest.MapFile{Data: []byte("{")}
	if _, err := s.Reload(ctx, "en"); err == nil {
		t.Error("broken reload must fail")
	}
	if key, _ := s.GetInternalKey("go", "en"); key != "GT_FORWARD" {
		t.Error("failed reload must keep the previous entry")
	}

	s.Invalidate("en")
	if got := s.Loaded(); len(got) != 0 {
		t.Errorf("Loaded() after Invalidate = %v", got)
	}
}

func TestLanguageOf(t *testing.T) {
	tests := map[string]string{"/x/fr.json": "fr", "en.yaml": "en", "pt-BR.toml": "pt-BR"}
	for name, want := range tests {
		if got, ok := languageOf(name); !ok || got != want {
			t.Errorf("languageOf(%q) = %q, %v", name, got, ok)
		}
	}
	for _, name := range []string{"fr.json.swp", "notes.txt", ".json"} {
		if _, ok := languageOf(name); ok {
			t.Errorf("languageOf(%q) should not match", name)
		}
	}
}

func TestWatchReloadsChangedFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "en.json")
	if err := os.WriteFile(file, []byte(enJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newTestService(t, DirSource(dir), nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := s.Get(ctx, "en"); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Dictionary, 4)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, dir, func(lang string, d *Dictionary) { reloaded <- d })
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case d := <-reloaded:
			if _, ok := d.Reverse(Commands, "go"); !ok {
				continue
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch() = %v", err)
			}
			return
		case <-tick.C:
			// rewrite until the watcher is registered and sees it
			os.WriteFile(file, []byte(`{"commands":{"GT_FORWARD":"go"}}`), 0o644)
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}
