// File: check.go
// Title: Check Command
// Description: Validates a script and prints every syntax error with a
//              friendly message in the UI language.
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

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	"github.com/msto63/geotortue/internal/syntax"
)

var checkCmd = &cobra.Command{
	Use:   "check [script|-]",
	Short: "Report syntax errors",
	Long: `Check a script without running it. Each error is printed with its
line and column and a message explaining the likely cause. The exit
status is 2 when errors were found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	script, err := readScript(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	n := printDiagnostics(cmd.OutOrStdout(), a, script)
	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(a.t("cli.no_errors", nil)))
		return nil
	}
	return mdwerror.New(a.t("cli.error_count", map[string]interface{}{"Count": n})).
		WithCode(mdwerror.CodeSyntaxError).
		WithOperation("cmd.check")
}

// printDiagnostics writes one line per syntax error and returns the count
func printDiagnostics(w io.Writer, a *app, script string) int {
	v := a.validator()
	diags := v.Validate(script)
	for _, d := range diags {
		pos := positionStyle.Render(fmt.Sprintf("%d:%d", d.Line, d.Column))
		fmt.Fprintf(w, "%s %s %s\n", pos, mutedStyle.Render("["+d.Kind.String()+"]"), d.Message)
	}
	return len(diags)
}

func (a *app) validator() *syntax.Validator {
	return syntax.New(syntax.Options{Localizer: a.lang, Logger: a.logger})
}
