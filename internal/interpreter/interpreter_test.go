package interpreter

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/dsl/parser"
	"github.com/msto63/geotortue/internal/dsl/token"
	"github.com/msto63/geotortue/internal/geometry"
	"github.com/msto63/geotortue/internal/turtle"
)

// fakeLocalizer is a tiny French vocabulary
type fakeLocalizer struct {
	words   map[string]token.Type
	colors  map[string]string
	readyFn func(ctx context.Context) error
}

func newFrench() *fakeLocalizer {
	return &fakeLocalizer{
		words: map[string]token.Type{
			"av":     token.Forward,
			"td":     token.Right,
			"crayon": token.PenColor,
			"rep":    token.Rep,
		},
		colors: map[string]string{"rouge": "red", "bleu": "blue"},
	}
}

func (l *fakeLocalizer) CanonicalID(word string) (token.Type, bool) {
	t, ok := l.words[strings.ToLower(word)]
	return t, ok
}

func (l *fakeLocalizer) GetCSSColor(word string) (string, bool) {
	c, ok := l.colors[strings.ToLower(word)]
	return c, ok
}

func (l *fakeLocalizer) DSLLanguage() string { return "fr" }

func (l *fakeLocalizer) Ready(ctx context.Context) error {
	if l.readyFn != nil {
		return l.readyFn(ctx)
	}
	return nil
}

// messages collects script output
type messages struct{ got []Message }

func (m *messages) Emit(msg Message) { m.got = append(m.got, msg) }

func (m *messages) texts() []string {
	out := make([]string, len(m.got))
	for i, msg := range m.got {
		out[i] = string(msg.Kind) + ":" + msg.Text
	}
	return out
}

type fixture struct {
	in   *Interpreter
	repo *turtle.InMemoryRepository
	out  *messages
	logs *bytes.Buffer
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelWarn, Format: mdwlog.FormatText, Output: &buf})
	repo := turtle.NewWithDefaultTurtle(logger)
	out := &messages{}
	opts.Logger = logger
	opts.Repository = repo
	opts.Output = out
	in, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return &fixture{in: in, repo: repo, out: out, logs: &buf}
}

func (f *fixture) run(t *testing.T, script string) *Result {
	t.Helper()
	res, err := f.in.Execute(context.Background(), script)
	if err != nil {
		t.Fatalf("Execute(%q) error = %v", script, err)
	}
	return res
}

func (f *fixture) first(t *testing.T) *turtle.Turtle {
	t.Helper()
	all := f.repo.GetAll()
	if len(all) == 0 {
		t.Fatal("repository is empty")
	}
	return all[0]
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestNewRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"unknown eval mode", Options{Logger: mdwlog.Discard(), EvalMode: "loud"}},
		{"negative loop limit", Options{Logger: mdwlog.Discard(), MaxLoopIterations: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
				t.Errorf("New() error = %v, want CodeInvalidConfig", err)
			}
		})
	}
}

func TestRepeatDrawsOneLinePerIteration(t *testing.T) {
	f := newFixture(t, Options{})
	res := f.run(t, "GT_REP 3 [ GT_FORWARD 10; GT_RIGHT 120 ]")

	if got := f.first(t).LineCount(); got != 3 {
		t.Errorf("LineCount() = %d, want 3", got)
	}
	if res.Lines != 3 || res.Turtles != 1 || res.Statements != 1 {
		t.Errorf("result = %+v", res)
	}
	if res.RunID == "" {
		t.Error("result has no run id")
	}
	pos := f.first(t).State.Position
	if !pos.ApproxEqual(geometry.Zero, 1e-6) {
		t.Errorf("triangle does not close, position = %v", pos)
	}
}

func TestVariablesFeedCommands(t *testing.T) {
	f := newFixture(t, Options{})
	f.run(t, "x := 42; GT_FORWARD x;")

	if y := f.first(t).State.Position.Y; !near(y, 42) {
		t.Errorf("Position.Y = %v, want 42", y)
	}
}

func TestLocalizedScript(t *testing.T) {
	f := newFixture(t, Options{Language: newFrench()})
	f.run(t, "crayon rouge\nrep 2 [ av 10 ]")

	tu := f.first(t)
	if tu.Pen.Color != "red" {
		t.Errorf("pen color = %q, want red", tu.Pen.Color)
	}
	if tu.LineCount() != 2 {
		t.Errorf("LineCount() = %d, want 2", tu.LineCount())
	}
	if lines := tu.Lines(); lines[0].Color != "red" {
		t.Errorf("segment color = %q, want red", lines[0].Color)
	}
}

func TestPenColorResolution(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   turtle.Color
	}{
		{"localized name", "GT_PEN_COLOR rouge", "red"},
		{"css name", "GT_PEN_COLOR blue", "blue"},
		{"string literal", `GT_PEN_COLOR "Green"`, "green"},
		{"hex literal", `GT_PEN_COLOR "#FF8800"`, "#ff8800"},
		{"variable", `c := "bleu"; GT_PEN_COLOR c`, "blue"},
		{"numeric", "GT_PEN_COLOR 255", "#0000ff"},
		{"zero is black", "GT_PEN_COLOR 0", "#000000"},
		{"garbage is ignored", "GT_PEN_COLOR prout", turtle.Black},
		{"garbage string is ignored", `GT_PEN_COLOR "notacolor"`, turtle.Black},
		{"failed evaluation keeps the pen", "GT_PEN_COLOR bleu; GT_PEN_COLOR sqrt(1, 2)", "blue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{Language: newFrench()})
			f.run(t, tt.script)
			if got := f.first(t).Pen.Color; got != tt.want {
				t.Errorf("pen color = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInvalidColorIsWarned(t *testing.T) {
	f := newFixture(t, Options{})
	f.run(t, "GT_PEN_COLOR prout; GT_FORWARD 5")

	if !strings.Contains(f.logs.String(), "Invalid color ignored") {
		t.Errorf("logs = %q, want an invalid color warning", f.logs.String())
	}
	if f.first(t).LineCount() != 1 {
		t.Error("statement after an invalid color did not run")
	}
}

func TestColorEvaluationFailureSkipsCommand(t *testing.T) {
	f := newFixture(t, Options{Language: newFrench()})
	f.run(t, "GT_PEN_COLOR bleu; GT_PEN_COLOR sqrt(1, 2); GT_FORWARD 3")

	tu := f.first(t)
	if tu.Pen.Color != "blue" {
		t.Errorf("pen color = %q, want blue", tu.Pen.Color)
	}
	if !strings.Contains(f.logs.String(), "Color evaluation failed") {
		t.Errorf("logs = %q, want a color evaluation error", f.logs.String())
	}
	if strings.Contains(f.logs.String(), "Undefined symbol used as color literal") {
		t.Error("a failed evaluation must not fall back to the raw text")
	}
	if tu.LineCount() != 1 {
		t.Errorf("lines = %d, want 1", tu.LineCount())
	}
}

func TestBarewordColorIsWarned(t *testing.T) {
	f := newFixture(t, Options{Language: newFrench()})
	f.run(t, "GT_PEN_COLOR violet")

	if got := f.first(t).Pen.Color; got != "violet" {
		t.Errorf("pen color = %q, want violet", got)
	}
	if !strings.Contains(f.logs.String(), "Undefined symbol used as color literal") {
		t.Errorf("logs = %q, want a warning for the bareword color", f.logs.String())
	}
}

func TestUnknownProcedureContinues(t *testing.T) {
	f := newFixture(t, Options{})
	f.run(t, "foo(1, 2)\nGT_FORWARD 10")

	if n := strings.Count(f.logs.String(), "Unknown procedure: foo"); n != 1 {
		t.Errorf("warnings = %d, want 1\n%s", n, f.logs.String())
	}
	if f.first(t).LineCount() != 1 {
		t.Error("statement after an unknown procedure did not run")
	}
}

func TestSyntaxErrorRunsNothing(t *testing.T) {
	f := newFixture(t, Options{})
	res, err := f.in.Execute(context.Background(), "GT_FORWARD 10\nGT_REP 3 [ GT_FORWARD 10")

	if res != nil {
		t.Errorf("result = %+v, want nil", res)
	}
	if !mdwerror.HasCode(err, mdwerror.CodeSyntaxError) {
		t.Fatalf("error = %v, want CodeSyntaxError", err)
	}
	var syn *parser.SyntaxErrors
	if !errors.As(err, &syn) || len(syn.Errors) == 0 {
		t.Errorf("error does not carry syntax errors: %v", err)
	}
	if f.first(t).LineCount() != 0 {
		t.Error("a rejected script drew lines")
	}
}

func TestFunctionsAndReturn(t *testing.T) {
	f := newFixture(t, Options{})
	res := f.run(t, `
GT_FUN double(n) := n * 2
GT_FUN quad(n) := double(double(n))
GT_FORWARD double(5)
GT_RETURN quad(10) + double(1)
GT_FORWARD 1000
`)
	if y := f.first(t).State.Position.Y; !near(y, 10) {
		t.Errorf("Position.Y = %v, want 10", y)
	}
	if n, ok := res.Value.Number(); !ok || n != 42 {
		t.Errorf("result value = %v, want 42", res.Value)
	}
}

func TestForEach(t *testing.T) {
	t.Run("range is inclusive", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.run(t, "GT_FOR_EACH i GT_FROM 1 GT_TO 4 [ GT_FORWARD i ]")
		if y := f.first(t).State.Position.Y; !near(y, 10) {
			t.Errorf("Position.Y = %v, want 10", y)
		}
	})
	t.Run("descending range is empty", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.run(t, "GT_FOR_EACH i GT_FROM 3 GT_TO 1 [ GT_FORWARD i ]")
		if f.first(t).LineCount() != 0 {
			t.Error("descending range ran its body")
		}
	})
	t.Run("list", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.run(t, `GT_FOR_EACH c GT_IN_LIST ["red", "blue"] [ GT_PEN_COLOR c; GT_FORWARD 1 ]`)
		lines := f.first(t).Lines()
		if len(lines) != 2 || lines[0].Color != "red" || lines[1].Color != "blue" {
			t.Errorf("lines = %+v", lines)
		}
	})
}

func TestWhileAndStop(t *testing.T) {
	f := newFixture(t, Options{})
	f.run(t, `
n := 0
GT_WHILE 1 [ n := n + 1; GT_IF n > 5 GT_THEN [ GT_STOP ]; GT_FORWARD 1 ]
GT_FORWARD 100
`)
	if got := f.first(t).LineCount(); got != 5 {
		t.Errorf("LineCount() = %d, want 5", got)
	}
}

func TestGlobalAndErase(t *testing.T) {
	f := newFixture(t, Options{})
	f.run(t, "GT_GLOBAL a b\nGT_SHOW_VAR a\nx := 3\nGT_ERASE x\nGT_SHOW_VAR x")

	want := []string{"showvar:a = 0", "showvar:x = null"}
	if got := f.out.texts(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestWriteAndSay(t *testing.T) {
	f := newFixture(t, Options{})
	f.run(t, `GT_HATCH; x := 2; GT_WRITE "x is", x; GT_SAY "done"`)

	want := []string{"write:x is 2", "write:x is 2", "say:done"}
	if got := f.out.texts(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("output = %v, want %v", got, want)
	}
	if f.out.got[0].Turtle == f.out.got[1].Turtle {
		t.Error("write messages share a turtle id")
	}
}

func TestHatchBroadcastsAndInitResets(t *testing.T) {
	f := newFixture(t, Options{})
	f.run(t, "GT_HATCH; GT_FORWARD 10")
	if f.repo.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", f.repo.Count())
	}
	for _, tu := range f.repo.GetAll() {
		if tu.LineCount() != 1 {
			t.Errorf("turtle %s LineCount() = %d, want 1", tu.ID(), tu.LineCount())
		}
	}

	f.run(t, "GT_INIT; GT_FORWARD 5")
	if f.repo.Count() != 1 {
		t.Errorf("Count() after init = %d, want 1", f.repo.Count())
	}
	if f.first(t).LineCount() != 1 {
		t.Errorf("LineCount() after init = %d, want 1", f.first(t).LineCount())
	}
}

func TestScreenCommands(t *testing.T) {
	f := newFixture(t, Options{})
	f.run(t, "GT_FORWARD 10; GT_CLEAR_GRAPHICS")
	tu := f.first(t)
	if tu.LineCount() != 0 || !near(tu.State.Position.Y, 10) {
		t.Errorf("clear graphics: lines = %d, y = %v", tu.LineCount(), tu.State.Position.Y)
	}

	f.run(t, "GT_FORWARD 10; GT_HIDE; GT_CLEAR_SCREEN")
	tu = f.first(t)
	if tu.LineCount() != 1 || !tu.Visible || !tu.State.Position.ApproxEqual(geometry.Zero, 1e-9) {
		t.Errorf("clear screen left state behind: %+v", tu.State)
	}

	f.run(t, "GT_PEN_UP; GT_TELEPORT 3, 4; GT_FORWARD 1; GT_HOME")
	tu = f.first(t)
	if tu.LineCount() != 1 {
		t.Error("pen up still draws")
	}
	if !tu.State.Position.ApproxEqual(geometry.Zero, 1e-9) {
		t.Errorf("home position = %v", tu.State.Position)
	}
}

func TestTeleportDefaultsZ(t *testing.T) {
	f := newFixture(t, Options{})
	f.run(t, "GT_TELEPORT 3, 4")
	if p := f.first(t).State.Position; !p.ApproxEqual(geometry.Vec(3, 4, 0), 1e-9) {
		t.Errorf("position = %v", p)
	}
}

func TestCircleReturnsToStart(t *testing.T) {
	f := newFixture(t, Options{})
	f.run(t, "GT_CIRCLE 50")
	tu := f.first(t)
	if tu.LineCount() != 36 {
		t.Errorf("LineCount() = %d, want 36", tu.LineCount())
	}
	if !tu.State.Position.ApproxEqual(geometry.Zero, 1e-6) {
		t.Errorf("circle ends at %v", tu.State.Position)
	}

	f.run(t, "GT_ARC 50, 45")
	if got := f.first(t).LineCount(); got != 36+5 {
		t.Errorf("LineCount() after arc = %d, want 41", got)
	}
}

func TestPenSettings(t *testing.T) {
	f := newFixture(t, Options{})
	f.run(t, "GT_PEN_SIZE 3; GT_PEN_OPACITY 7; GT_FORWARD 1")
	seg := f.first(t).Lines()[0]
	if seg.Width != 3 || seg.Opacity != 1 {
		t.Errorf("segment width = %v opacity = %v", seg.Width, seg.Opacity)
	}
}

func TestUnsupportedCommandsWarn(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{"GT_PITCH_UP 10", "PVH is 3D (unsupported)"},
		{"GT_MIRROR", "MIRROR is 3D (unsupported)"},
		{"GT_PLAY", "PLAY is Audio (unsupported)"},
		{"GT_UNDO", "UNDO not implemented yet"},
		{"GT_FILL [ GT_FORWARD 1 ]", "Fill not implemented"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			f := newFixture(t, Options{})
			if _, err := f.in.Execute(context.Background(), tt.script); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !strings.Contains(f.logs.String(), tt.want) {
				t.Errorf("logs = %q, want %q", f.logs.String(), tt.want)
			}
		})
	}
}

func TestHaltStopsRun(t *testing.T) {
	f := newFixture(t, Options{})
	f.in.Control().Halt()
	_, err := f.in.Execute(context.Background(), "GT_FORWARD 10")
	if !mdwerror.HasCode(err, mdwerror.CodeExecutionStopped) {
		t.Fatalf("error = %v, want CodeExecutionStopped", err)
	}
	if f.first(t).LineCount() != 0 {
		t.Error("halted run drew lines")
	}

	f.in.Control().Resume()
	f.run(t, "GT_FORWARD 10")
	if f.first(t).LineCount() != 1 {
		t.Error("resumed run drew nothing")
	}
}

func TestCancelledContextStopsLoop(t *testing.T) {
	f := newFixture(t, Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := f.in.Execute(ctx, "GT_WHILE 1 [ GT_RIGHT 1 ]")
	if !mdwerror.HasCode(err, mdwerror.CodeExecutionStopped) {
		t.Fatalf("error = %v, want CodeExecutionStopped", err)
	}
}

func TestLoopLimit(t *testing.T) {
	f := newFixture(t, Options{MaxLoopIterations: 100})
	res, err := f.in.Execute(context.Background(), "GT_REP 1000 [ GT_FORWARD 1 ]")
	if !mdwerror.HasCode(err, mdwerror.CodeExecutionStopped) {
		t.Fatalf("error = %v, want CodeExecutionStopped", err)
	}
	if res == nil || res.Lines != 100 {
		t.Errorf("result = %+v, want 100 lines", res)
	}
}

func TestEvaluationModes(t *testing.T) {
	t.Run("log mode keeps going", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.run(t, "GT_FORWARD nothing; GT_FORWARD 3")
		if y := f.first(t).State.Position.Y; !near(y, 3) {
			t.Errorf("Position.Y = %v, want 3", y)
		}
	})
	t.Run("strict mode aborts", func(t *testing.T) {
		f := newFixture(t, Options{EvalMode: "strict"})
		_, err := f.in.Execute(context.Background(), "GT_FORWARD nothing; GT_FORWARD 3")
		if !mdwerror.HasCode(err, mdwerror.CodeEvaluationFailed) {
			t.Fatalf("error = %v, want CodeEvaluationFailed", err)
		}
		if f.first(t).LineCount() != 0 {
			t.Error("strict run continued after the failure")
		}
	})
}

func TestRunsStartFresh(t *testing.T) {
	f := newFixture(t, Options{})
	f.run(t, "x := 5; GT_FUN f() := 1; GT_RIGHT 90; GT_PEN_UP")
	f.run(t, "GT_SHOW_VAR x; GT_FORWARD 1")

	if got := f.out.texts(); len(got) != 1 || got[0] != "showvar:x = null" {
		t.Errorf("variables leaked between runs: %v", got)
	}
	tu := f.first(t)
	if tu.LineCount() != 1 || !near(tu.State.Position.Y, 1) {
		t.Errorf("turtle was not soft reset: lines = %d, pos = %v", tu.LineCount(), tu.State.Position)
	}
}

func TestReadyFailureFallsBackToCanonicalNames(t *testing.T) {
	loc := newFrench()
	loc.readyFn = func(context.Context) error { return errors.New("offline") }
	f := newFixture(t, Options{Language: loc})
	f.run(t, "GT_FORWARD 1")

	if !strings.Contains(f.logs.String(), "DSL dictionary unavailable") {
		t.Errorf("logs = %q, want a dictionary warning", f.logs.String())
	}
}

func TestWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriterOutput(&buf)
	out.Emit(Message{Kind: MessageWrite, Turtle: "1", Text: "hello"})
	out.Emit(Message{Kind: MessageSay, Text: "bye"})

	if got, want := buf.String(), "[write #1] hello\n[say] bye\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
