// File: dict.go
// Title: Dictionary Command
// Description: Lists the DSL dictionaries and optionally watches the
//              dictionary directory, reloading languages on change.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	"github.com/msto63/geotortue/internal/dictionary"
)

var dictWatch bool

var dictCmd = &cobra.Command{
	Use:   "dict [language...]",
	Short: "List DSL dictionaries",
	Long: `Load the given languages (default: the DSL language) and print the
version and size of each dictionary. With --watch the dictionary directory
is watched and changed languages are reloaded until interrupted.`,
	RunE: runDict,
}

func init() {
	dictCmd.Flags().BoolVar(&dictWatch, "watch", false, "watch dictionary.dir and reload on change")
	rootCmd.AddCommand(dictCmd)
}

func runDict(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	langs := args
	if len(langs) == 0 {
		langs = []string{a.lang.DSLLanguage()}
	}
	dicts, err := a.dicts.LoadAll(ctx, langs...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, d := range dicts {
		printDictionary(out, d)
	}

	if !dictWatch && !a.cfg.GetBool("dictionary.watch") {
		return nil
	}
	dir := a.cfg.GetString("dictionary.dir")
	if dir == "" {
		return mdwerror.New("dictionary.dir must be set to watch dictionaries").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("cmd.dict")
	}
	fmt.Fprintln(out, mutedStyle.Render("watching "+dir+" (Ctrl+C to stop)"))
	return a.dicts.Watch(ctx, dir, func(lang string, d *dictionary.Dictionary) {
		printDictionary(out, d)
	})
}

func printDictionary(w io.Writer, d *dictionary.Dictionary) {
	fmt.Fprintf(w, "%s %s  %d commands, %d keywords, %d colors\n",
		titleStyle.Render(d.Language()),
		mutedStyle.Render("v"+d.Version()),
		len(d.Canonicals(dictionary.Commands)),
		len(d.Canonicals(dictionary.Keywords)),
		len(d.Canonicals(dictionary.Colors)))
}
