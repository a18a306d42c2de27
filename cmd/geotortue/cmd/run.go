// File: run.go
// Title: Run Command
// Description: Executes a script against a fresh turtle scene, prints the
//              text it emits and optionally exports the trails as SVG.
//              Ctrl+C halts the run between two statements.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/export"
	"github.com/msto63/geotortue/internal/interpreter"
	"github.com/msto63/geotortue/internal/matheval"
	"github.com/msto63/geotortue/internal/turtle"
)

var (
	svgPath     string
	svgScale    float64
	showTurtles bool
	runTimeout  time.Duration
	maxLoops    int
	evalMode    string
)

var runCmd = &cobra.Command{
	Use:   "run [script|-]",
	Short: "Execute a script",
	Long: `Execute a GeoTortue script. Without an argument the script is read
from stdin. Text written by the script goes to stdout, log messages to
stderr.

Examples:
  geotortue run carre.gt
  geotortue run --lang en --svg square.svg square.gt
  echo "rep 36 [ av 10; td 10 ]" | geotortue run --svg cercle.svg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the drawing to this SVG file")
	runCmd.Flags().Float64Var(&svgScale, "scale", 1, "pixels per turtle step in the SVG")
	runCmd.Flags().BoolVar(&showTurtles, "show-turtles", false, "draw visible turtles in the SVG")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "abort the run after this duration (0: no limit)")
	runCmd.Flags().IntVar(&maxLoops, "max-loops", -1, "loop iteration limit (default from config, 0: unlimited)")
	runCmd.Flags().StringVar(&evalMode, "eval-mode", "", "expression errors: silent, log or strict")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runTimeout)
		defer cancel()
	}

	a, err := newApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	script, err := readScript(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	loops := maxLoops
	if loops < 0 {
		loops = a.cfg.GetInt("interpreter.max_loop_iterations")
	}
	mode := evalMode
	if mode == "" {
		mode = a.cfg.GetString("interpreter.eval_mode")
	}

	repo := turtle.NewWithDefaultTurtle(a.logger)
	in, err := interpreter.New(interpreter.Options{
		Language:          a.lang,
		Evaluator:         matheval.New(matheval.Options{Logger: a.logger}),
		Repository:        repo,
		Output:            interpreter.NewWriterOutput(cmd.OutOrStdout()),
		Logger:            a.logger,
		EvalMode:          mode,
		MaxLoopIterations: loops,
	})
	if err != nil {
		return err
	}

	res, err := in.Execute(ctx, script)
	if err != nil {
		if mdwerror.HasCode(err, mdwerror.CodeSyntaxError) {
			printDiagnostics(cmd.ErrOrStderr(), a, script)
		}
		return err
	}

	if svgPath != "" {
		exp := export.New(export.Options{
			Scale:       svgScale,
			Background:  turtle.Color("white"),
			ShowTurtles: showTurtles,
			Title:       a.t("app.title", nil),
			Logger:      a.logger,
		})
		if err := exp.WriteFile(svgPath, repo.GetAll()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render(a.t("cli.svg_written", map[string]interface{}{"Path": svgPath})))
	}

	fmt.Fprintln(cmd.ErrOrStderr(), successStyle.Render(a.t("cli.run_done", map[string]interface{}{
		"Turtles": res.Turtles,
		"Lines":   res.Lines,
	})))
	a.logger.Debug("Run finished", mdwlog.Fields{"run_id": res.RunID, "duration": res.Duration.String()})
	return nil
}
