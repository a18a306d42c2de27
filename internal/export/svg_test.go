package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/turtle"
)

func square(id turtle.ID, side float64) *turtle.Turtle {
	t := turtle.New(id)
	t.SetPenColor("red")
	for i := 0; i < 4; i++ {
		t.Forward(side)
		t.Right(90)
	}
	return t
}

func render(t *testing.T, opts Options, turtles ...*turtle.Turtle) string {
	t.Helper()
	opts.Logger = mdwlog.Discard()
	var buf bytes.Buffer
	if err := New(opts).Write(&buf, turtles); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return buf.String()
}

func TestWriteDrawsEverySegment(t *testing.T) {
	out := render(t, Options{Title: "square"}, square("1", 50))

	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if n := strings.Count(out, "<line "); n != 4 {
		t.Errorf("lines = %d, want 4", n)
	}
	for _, want := range []string{
		`<title>square</title>`,
		`<g id="turtle-1">`,
		"stroke:#ff0000",
		"stroke-width:100",
		"stroke-opacity:1",
		// 50 units plus a margin of 10 on both sides
		`viewBox="0 0 7000 7000"`,
		`width="70"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
}

func TestWriteFlipsYAxis(t *testing.T) {
	tu := turtle.New("1")
	tu.Forward(20)
	out := render(t, Options{Margin: -1}, tu)

	// the turtle starts at the bottom of the canvas and moves up
	if !strings.Contains(out, `<line x1="0" y1="2000" x2="0" y2="0"`) {
		t.Errorf("unexpected line coordinates:\n%s", out)
	}
}

func TestWriteOptions(t *testing.T) {
	tu := square("7", 10)
	out := render(t, Options{Scale: 3, Background: "white", ShowTurtles: true}, tu)

	if !strings.Contains(out, `width="90"`) {
		t.Errorf("scale not applied:\n%s", out)
	}
	if !strings.Contains(out, "fill:#ffffff") {
		t.Error("background missing")
	}
	if !strings.Contains(out, "<polygon") {
		t.Error("turtle marker missing")
	}

	tu.Visible = false
	if out := render(t, Options{ShowTurtles: true}, tu); strings.Contains(out, "<polygon") {
		t.Error("hidden turtle has a marker")
	}
}

func TestWriteEmptyScene(t *testing.T) {
	out := render(t, Options{}, turtle.New("1"))
	if strings.Contains(out, "<line") {
		t.Error("empty scene has lines")
	}
	if !strings.Contains(out, `viewBox="0 0 2000 2000"`) {
		t.Errorf("empty scene viewBox:\n%s", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReportsWriterErrors(t *testing.T) {
	err := New(Options{Logger: mdwlog.Discard()}).Write(failingWriter{}, []*turtle.Turtle{square("1", 5)})
	if !mdwerror.HasCode(err, mdwerror.CodeInternal) {
		t.Fatalf("Write() error = %v, want CodeInternal", err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	e := New(Options{Logger: mdwlog.Discard()})
	if err := e.WriteFile(path, []*turtle.Turtle{square("1", 5)}); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "<line ") != 4 {
		t.Errorf("file content:\n%s", data)
	}

	err = e.WriteFile(filepath.Join(t.TempDir(), "missing", "out.svg"), nil)
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("WriteFile() into a missing dir error = %v", err)
	}
}
