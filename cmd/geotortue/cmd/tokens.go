package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tokensList bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [script|-]",
	Short: "Show the tokens of a script",
	Long: `Print the script with syntax highlighting, or with --list one token
per line with its position, type and highlighting class.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().BoolVar(&tokensList, "list", false, "one token per line")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	script, err := readScript(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	spans := a.validator().Highlight(script)
	out := cmd.OutOrStdout()
	if tokensList {
		for _, s := range spans {
			fmt.Fprintf(out, "%s  %-14s %-9s %s\n",
				positionStyle.Render(fmt.Sprintf("%3d:%-3d", s.Token.Line, s.Token.Column)),
				s.Token.Type, s.Style, styleFor(s.Style).Render(s.Token.Text))
		}
		return nil
	}

	// spans never overlap; the gaps hold the whitespace
	var b strings.Builder
	last := 0
	for _, s := range spans {
		if s.Token.Start < last || s.Token.End > len(script) {
			continue
		}
		b.WriteString(script[last:s.Token.Start])
		b.WriteString(styleFor(s.Style).Render(s.Token.Text))
		last = s.Token.End
	}
	b.WriteString(script[last:])
	fmt.Fprint(out, b.String())
	if !strings.HasSuffix(script, "\n") {
		fmt.Fprintln(out)
	}
	return nil
}
