package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/lamim/tour-cost-report/internal/costs"
)

// Output locations relative to the renderer's root directory.
const (
	AggregateName  = "compare_constructives"
	IndividualsDir = "individuals"
)

// Output describes a chart file that was written.
type Output struct {
	Path       string
	Bytes      int64
	Categories int
}

// OutputError reports a chart that could not be written.
type OutputError struct {
	Op   string
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// Renderer draws charts into a fixed output directory.
type Renderer struct {
	style     Style
	outputDir string
}

// NewRenderer creates a renderer writing under outputDir. The first renderer of the
// process also installs the plot defaults from style.
func NewRenderer(outputDir string, style Style) *Renderer {
	Configure(style)
	return &Renderer{
		style:     style,
		outputDir: outputDir,
	}
}

// Style returns the renderer's style.
func (r *Renderer) Style() Style {
	return r.style
}

// AggregatePath returns where the aggregate chart is written.
func (r *Renderer) AggregatePath() string {
	return filepath.Join(r.outputDir, AggregateName+r.style.Extension)
}

// InstancePath returns where the chart for an instance filename is written.
// Filenames may contain directories but must stay inside the individuals directory.
func (r *Renderer) InstancePath(filename string) (string, error) {
	base := filepath.Join(r.outputDir, IndividualsDir)
	path := filepath.Join(base, filepath.FromSlash(filename)+r.style.Extension)
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &OutputError{Op: "resolve", Path: filename, Err: fmt.Errorf("instance name escapes %s", base)}
	}
	return path, nil
}

// Aggregate renders the constructive comparison of all records.
func (r *Renderer) Aggregate(records []costs.Record) (Output, error) {
	p, err := r.AggregatePlot(records)
	if err != nil {
		return Output{}, err
	}
	path := r.AggregatePath()
	n, err := r.save(p, r.style.AggregateWidth, r.style.AggregateHeight, path)
	if err != nil {
		return Output{}, err
	}
	return Output{Path: path, Bytes: n, Categories: len(records)}, nil
}

// Instance renders the heuristic comparison of one record.
func (r *Renderer) Instance(rec costs.Record) (Output, error) {
	path, err := r.InstancePath(rec.Filename)
	if err != nil {
		return Output{}, err
	}
	p, err := r.InstancePlot(rec)
	if err != nil {
		return Output{}, err
	}
	n, err := r.save(p, r.style.InstanceWidth, r.style.InstanceHeight, path)
	if err != nil {
		return Output{}, err
	}
	return Output{Path: path, Bytes: n, Categories: len(ConstructiveLabels)}, nil
}

// save encodes the plot fully before touching the destination, then writes it.
// The file is closed on every path.
func (r *Renderer) save(p *plot.Plot, w, h vg.Length, path string) (n int64, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return 0, &OutputError{Op: "mkdir", Path: dir, Err: err}
	}

	wt, err := encode(p, w, h, r.style.Format)
	if err != nil {
		return 0, &OutputError{Op: "render", Path: path, Err: err}
	}

	// #nosec G304 - path is built from the output directory and checked above
	f, err := os.Create(path)
	if err != nil {
		return 0, &OutputError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &OutputError{Op: "close", Path: path, Err: cerr}
		}
	}()

	n, err = wt.WriteTo(f)
	if err != nil {
		return n, &OutputError{Op: "write", Path: path, Err: err}
	}
	return n, nil
}

// encode draws the plot into an in-memory canvas. gonum/plot reports some drawing
// failures by panicking, so those are turned into errors here.
func encode(p *plot.Plot, w, h vg.Length, format string) (wt io.WriterTo, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			wt, err = nil, fmt.Errorf("plot panicked: %v", rec)
		}
	}()
	return p.WriterTo(w, h, format)
}
