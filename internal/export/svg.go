// File: svg.go
// Title: SVG Export
// Description: Writes the recorded trails of a scene as an SVG document.
//              Turtle space has Y pointing up; the document flips it.
//              Coordinates are emitted in hundredths of a unit inside a
//              viewBox so that the integer SVG writer keeps sub-unit detail.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	svg "github.com/ajstarks/svgo"
	v2 "github.com/deadsy/sdfx/vec/v2"

	mdwerror "github.com/msto63/geotortue/foundation/core/error"
	mdwlog "github.com/msto63/geotortue/foundation/core/log"
	"github.com/msto63/geotortue/internal/geometry"
	"github.com/msto63/geotortue/internal/turtle"
)

const (
	// precision is the number of viewBox units per turtle unit
	precision = 100

	defaultMargin     = 10.0
	defaultMarkerSize = 8.0
)

// Options configures an Exporter
type Options struct {
	// Scale is the number of pixels per turtle unit (default 1)
	Scale float64
	// Margin is added around the drawing, in turtle units (default 10)
	Margin float64
	// Background fills the canvas when set, e.g. "white"
	Background turtle.Color
	// ShowTurtles draws a marker for every visible turtle
	ShowTurtles bool
	Title       string
	Logger      *mdwlog.Logger
}

// Exporter renders scenes as SVG
type Exporter struct {
	opts   Options
	logger *mdwlog.Logger
}

// New creates an exporter
func New(opts Options) *Exporter {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Margin < 0 || math.IsNaN(opts.Margin) {
		opts.Margin = 0
	} else if opts.Margin == 0 {
		opts.Margin = defaultMargin
	}
	return &Exporter{opts: opts, logger: opts.Logger.WithField("component", "export")}
}

// bounds is the axis-aligned box of a scene in turtle units
type bounds struct {
	min, max v2.Vec
	empty    bool
}

func (b *bounds) include(p geometry.Vector3) {
	q := v2.Vec{X: p.X, Y: p.Y}
	if b.empty {
		b.min, b.max, b.empty = q, q, false
		return
	}
	b.min = b.min.Min(q)
	b.max = b.max.Max(q)
}

// sceneBounds covers every segment and every visible turtle
func sceneBounds(turtles []*turtle.Turtle, withTurtles bool) bounds {
	b := bounds{empty: true}
	for _, t := range turtles {
		for _, s := range t.Lines() {
			b.include(s.Start)
			b.include(s.End)
		}
		if withTurtles && t.Visible {
			b.include(t.State.Position)
		}
	}
	if b.empty {
		b = bounds{}
	}
	return b
}

// Write renders turtles to w
func (e *Exporter) Write(w io.Writer, turtles []*turtle.Turtle) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	b := sceneBounds(turtles, e.opts.ShowTurtles)
	m := e.opts.Margin
	minX, maxY := b.min.X-m, b.max.Y+m
	width, height := b.max.X-b.min.X+2*m, b.max.Y-b.min.Y+2*m

	// document coordinates: x right, y down, hundredths of a unit
	px := func(x float64) int { return int(math.Round((x - minX) * precision)) }
	py := func(y float64) int { return int(math.Round((maxY - y) * precision)) }
	vw, vh := units(width), units(height)

	canvas.Startview(pixels(width, e.opts.Scale), pixels(height, e.opts.Scale), 0, 0, vw, vh)
	if e.opts.Title != "" {
		canvas.Title(e.opts.Title)
	}
	if e.opts.Background != "" {
		canvas.Rect(0, 0, vw, vh, "fill:"+e.opts.Background.Hex())
	}

	segments := 0
	canvas.Gstyle("fill:none;stroke-linecap:round;stroke-linejoin:round")
	for _, t := range turtles {
		canvas.Gid("turtle-" + string(t.ID()))
		for _, s := range t.Lines() {
			canvas.Line(px(s.Start.X), py(s.Start.Y), px(s.End.X), py(s.End.Y), strokeStyle(s))
			segments++
		}
		canvas.Gend()
	}
	canvas.Gend()

	if e.opts.ShowTurtles {
		for _, t := range turtles {
			if !t.Visible {
				continue
			}
			xs, ys := marker(t, px, py)
			canvas.Polygon(xs, ys, "fill:"+t.Pen.Color.Hex()+";fill-opacity:0.8;stroke:none")
		}
	}
	canvas.End()

	if ew.err != nil {
		return mdwerror.Wrap(ew.err, "failed to write svg").
			WithCode(mdwerror.CodeInternal).
			WithOperation("export.Write")
	}
	e.logger.Debug("SVG exported", mdwlog.Fields{
		"turtles":  len(turtles),
		"segments": segments,
		"bytes":    ew.n,
	})
	return nil
}

// WriteFile renders turtles into the file at path
func (e *Exporter) WriteFile(path string, turtles []*turtle.Turtle) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return mdwerror.Wrap(err, "failed to create svg file").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("export.WriteFile").
			WithDetail("path", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = mdwerror.Wrap(cerr, "failed to close svg file").
				WithCode(mdwerror.CodeInternal).
				WithOperation("export.WriteFile").
				WithDetail("path", path)
		}
	}()
	if err := e.Write(f, turtles); err != nil {
		return err
	}
	e.logger.Info("SVG written", mdwlog.Fields{"path": path})
	return nil
}

// strokeStyle renders the pen snapshot of a segment
func strokeStyle(s turtle.LineSegment) string {
	return fmt.Sprintf("stroke:%s;stroke-width:%s;stroke-opacity:%s",
		s.Color.Hex(),
		strconv.FormatFloat(s.Width*precision, 'f', -1, 64),
		strconv.FormatFloat(s.Opacity, 'f', -1, 64))
}

// marker is a small triangle pointing along the turtle's heading
func marker(t *turtle.Turtle, px, py func(float64) int) ([]int, []int) {
	h := geometry.Heading(t.State.Rotation).Radians()
	dir := v2.Vec{X: -math.Sin(h), Y: math.Cos(h)}
	side := v2.Vec{X: dir.Y, Y: -dir.X}
	p := v2.Vec{X: t.State.Position.X, Y: t.State.Position.Y}

	const size = defaultMarkerSize
	tip := p.Add(dir.MulScalar(size))
	back := p.Sub(dir.MulScalar(size / 2))
	right := back.Add(side.MulScalar(size * 0.6))
	left := back.Sub(side.MulScalar(size * 0.6))

	pts := []v2.Vec{tip, right, left}
	xs, ys := make([]int, len(pts)), make([]int, len(pts))
	for i, q := range pts {
		xs[i], ys[i] = px(q.X), py(q.Y)
	}
	return xs, ys
}

// ceil ignores the rounding noise that turns leave on coordinates
func ceil(f float64) int {
	return max(1, int(math.Ceil(f-1e-6)))
}

func units(extent float64) int { return ceil(extent * precision) }

func pixels(extent, scale float64) int { return ceil(extent * scale) }

// errWriter keeps the first write error; the svg writer ignores errors
type errWriter struct {
	w   io.Writer
	n   int
	err error
}

func (w *errWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return len(p), nil
	}
	n, err := w.w.Write(p)
	w.n += n
	w.err = err
	return len(p), nil
}
