package cmd

import (
	"io"
	"os"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
)

// maxScriptSize bounds scripts read from files or stdin
const maxScriptSize = 4 << 20

// readScript reads the file named by args[0], or stdin when there is no
// argument or the argument is "-"
func readScript(args []string, stdin io.Reader) (string, error) {
	name := "-"
	if len(args) > 0 {
		name = args[0]
	}

	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			code := mdwerror.CodeInvalidInput
			if os.IsNotExist(err) {
				code = mdwerror.CodeNotFound
			}
			return "", mdwerror.Wrap(err, "cannot open script").
				WithCode(code).
				WithOperation("cmd.readScript").
				WithDetail("path", name)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxScriptSize+1))
	if err != nil {
		return "", mdwerror.Wrap(err, "cannot read script").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("cmd.readScript")
	}
	if len(data) > maxScriptSize {
		return "", mdwerror.Newf("script exceeds %d bytes", maxScriptSize).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("cmd.readScript")
	}
	return string(data), nil
}
