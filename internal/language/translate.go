// File: translate.go
// Title: Script Translation
// Description: Rewrites a script from one DSL language into another by
//              substituting words token by token. Text outside tokens is
//              preserved byte for byte.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package language

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/dictionary"
	"github.com/msto63/geotortue/internal/dsl/lexer"
	"github.com/msto63/geotortue/internal/dsl/token"
)

type replacement struct {
	start, end int
	text       string
}

// TranslateScript rewrites script from language from into language to.
// Words unknown to the source dictionary, such as variable names, are
// kept. When a canonical name has several aliases the target's primary
// word is used, so a round trip may not restore secondary aliases.
func (s *Service) TranslateScript(ctx context.Context, script, from, to string) (string, error) {
	var src, dst *dictionary.Dictionary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		src, err = s.dicts.Get(gctx, from)
		return err
	})
	g.Go(func() (err error) {
		dst, err = s.dicts.Get(gctx, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", mdwerror.Wrap(err, "cannot translate script").
			WithOperation("language.TranslateScript").
			WithDetail("from", from).
			WithDetail("to", to)
	}

	var reps []replacement
	for _, tok := range lexer.Tokenize(script) {
		if tok.Text == "" || tok.Type == token.EOF {
			continue
		}
		if text, ok := translateToken(tok, src, dst); ok && text != tok.Text {
			reps = append(reps, replacement{tok.Start, tok.End, text})
		}
	}

	// tokens come in source order; apply from the end so offsets stay valid
	out := script
	for i := len(reps) - 1; i >= 0; i-- {
		r := reps[i]
		out = out[:r.start] + r.text + out[r.end:]
	}

	s.logger.Debug("Script translated", mdwlog.Fields{
		"from":         from,
		"to":           to,
		"replacements": len(reps),
	})
	return out, nil
}

func translateToken(tok token.Token, src, dst *dictionary.Dictionary) (string, bool) {
	if tok.Type.IsCanonical() {
		c := dictionary.Commands
		if tok.Type.IsKeyword() {
			c = dictionary.Keywords
		}
		if word, ok := dst.Forward(c, tok.Type.String()); ok {
			return word, true
		}
	}
	if tok.Type != token.Ident {
		return "", false
	}
	if strings.HasPrefix(tok.Text, dictionary.CanonicalPrefix) {
		if word, ok := dst.Forward(dictionary.Colors, tok.Text); ok {
			return word, true
		}
	}
	for _, c := range dictionary.Categories {
		canonical, ok := src.Reverse(c, tok.Text)
		if !ok {
			continue
		}
		if word, ok := dst.Forward(c, canonical); ok {
			return word, true
		}
		return "", false
	}
	return "", false
}
