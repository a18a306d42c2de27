// File: root.go
// Title: Root Command
// Description: Root of the geotortue command tree and the flags shared by
//              every subcommand.
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
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	dslLang  string
	uiLang   string
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "geotortue",
	Short: "GeoTortue - turtle geometry in your own language",
	Long: `GeoTortue runs turtle geometry scripts written in a localized
command language. The same script can be written in French or English:

  rep 4 [ av 100; td 90 ]
  repeat 4 [ fd 100; rt 90 ]

Commands:
  run        execute a script and optionally export the drawing as SVG
  check      report syntax errors with friendly messages
  translate  rewrite a script from one language into another
  tokens     show how a script is tokenized and highlighted
  dict       list dictionaries and watch them for changes`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./geotortue.toml)")
	rootCmd.PersistentFlags().StringVarP(&dslLang, "lang", "l", "", "language of the scripts, e.g. fr or en")
	rootCmd.PersistentFlags().StringVar(&uiLang, "ui-lang", "", "language of the messages")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error:")+" "+err.Error())
}
