package main

import (
	"os"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"

	"github.com/msto63/geotortue/cmd/geotortue/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(mdwerror.GetCode(err).ExitCode())
	}
}
