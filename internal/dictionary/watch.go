// File: watch.go
// Title: Dictionary Hot Reload
// Description: Watches a dictionary directory and reloads a language when
//              its file is written, created or renamed into place.
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
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	mdwlog "github.com/msto63/geotortue/foundation/core/log"
)

// ReloadFunc is called after a language was reloaded
type ReloadFunc func(lang string, d *Dictionary)

// Watch reloads cached languages whose file in dir changes. It blocks
// until ctx is done. Languages that were never loaded are ignored.
func (s *Service) Watch(ctx context.Context, dir string, onReload ReloadFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "failed to create watcher").
			WithCode(mdwerror.CodeInternal).
			WithOperation("dictionary.Watch")
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return mdwerror.Wrap(err, "failed to watch dictionary directory").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("dictionary.Watch").
			WithDetail("dir", dir)
	}
	s.logger.Info("Watching dictionaries", mdwlog.Fields{"dir": dir})

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			lang, ok := languageOf(ev.Name)
			if !ok {
				continue
			}
			if _, cached := s.Peek(lang); !cached {
				continue
			}
			d, err := s.Reload(ctx, lang)
			if err != nil {
				continue
			}
			if onReload != nil {
				onReload(lang, d)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.WarnWithErr("Dictionary watcher error", err)
		}
	}
}

// languageOf maps "locales/dsl/fr.json" to "fr"
func languageOf(name string) (string, bool) {
	if _, ok := FormatOf(name); !ok {
		return "", false
	}
	base := filepath.Base(name)
	lang := strings.TrimSuffix(base, filepath.Ext(base))
	return lang, validLanguage(lang)
}
