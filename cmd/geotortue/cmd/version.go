package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/geotortue/internal/dictionary"
)

var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "GeoTortue v%s\n", Version)
		fmt.Fprintf(out, "  Git Commit:   %s\n", GitCommit)
		fmt.Fprintf(out, "  Build Date:   %s\n", BuildDate)
		fmt.Fprintf(out, "  Dictionaries: %s\n", dictionary.SupportedVersions)
		fmt.Fprintf(out, "  Go Version:   %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:      %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
