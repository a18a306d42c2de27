package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
)

var (
	translateFrom string
	translateTo   string
)

var translateCmd = &cobra.Command{
	Use:   "translate [script|-]",
	Short: "Translate a script into another language",
	Long: `Rewrite the commands, keywords and colors of a script in another
language. Variable names, numbers, strings and comments are kept as they are.

Example:
  geotortue translate --from fr --to en carre.gt > square.gt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().StringVar(&translateFrom, "from", "", "source language (default: the DSL language)")
	translateCmd.Flags().StringVar(&translateTo, "to", "", "target language")
	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	if translateTo == "" {
		return mdwerror.New("--to is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("cmd.translate")
	}
	a, err := newApp(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	script, err := readScript(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	from := translateFrom
	if from == "" {
		from = a.lang.DSLLanguage()
	}
	out, err := a.lang.TranslateScript(cmd.Context(), script, from, translateTo)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
