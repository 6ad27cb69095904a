// Package runner drives a report run: load the cost table, then render every chart.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lamim/tour-cost-report/internal/chart"
	"github.com/lamim/tour-cost-report/internal/costs"
	"github.com/lamim/tour-cost-report/internal/debug"
	"github.com/lamim/tour-cost-report/internal/metrics"
	"github.com/lamim/tour-cost-report/internal/progress"
)

// Options controls the console side of a run
type Options struct {
	// Progress shows a progress bar sized to the chart count.
	Progress bool
	// ProgressOut receives the progress bar. Defaults to stderr.
	ProgressOut io.Writer
	// Out receives status lines when the progress bar is off. Defaults to stdout.
	Out io.Writer
}

// Runner renders the aggregate chart and one chart per instance
type Runner struct {
	inputPath   string
	renderer    *chart.Renderer
	opts        Options
	collector   *metrics.Collector
	progress    *progress.Manager
	debugLogger *debug.Logger
	dataset     *costs.Dataset
}

// NewRunner creates a runner reading inputPath. debugLog may be nil.
func NewRunner(inputPath string, renderer *chart.Renderer, debugLog *debug.Logger, opts Options) *Runner {
	if opts.ProgressOut == nil {
		opts.ProgressOut = os.Stderr
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Runner{
		inputPath:   inputPath,
		renderer:    renderer,
		opts:        opts,
		collector:   metrics.NewCollector(),
		debugLogger: debugLog,
	}
}

// Run loads the dataset and renders all charts in file order. It stops at the
// first failure; charts written before it are left in place.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()
	ds, err := costs.Load(r.inputPath)
	if r.debugLogger != nil {
		n := 0
		if ds != nil {
			n = ds.Len()
		}
		r.debugLogger.LogLoad(r.inputPath, n, time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("failed to load tour costs: %w", err)
	}

	ds = ds.Normalize()
	r.dataset = ds

	r.progress = progress.NewManagerWithWriter(1+ds.Len(), r.opts.Progress, r.opts.ProgressOut)
	defer r.progress.Finish()

	if !r.progress.IsEnabled() {
		r.printf("Rendering %d charts from %s\n", 1+ds.Len(), r.inputPath)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	err = r.render(chart.AggregateName, metrics.KindAggregate, r.renderer.AggregatePath(), func() (chart.Output, error) {
		return r.renderer.Aggregate(ds.Records())
	})
	if err != nil {
		return fmt.Errorf("failed to render aggregate chart: %w", err)
	}

	for _, rec := range ds.All() {
		if err := ctx.Err(); err != nil {
			return err
		}
		// An unresolvable path is reported by Instance itself.
		path, _ := r.renderer.InstancePath(rec.Filename)
		err := r.render(rec.Filename, metrics.KindIndividual, path, func() (chart.Output, error) {
			return r.renderer.Instance(rec)
		})
		if err != nil {
			return fmt.Errorf("failed to render chart for %s: %w", rec.Filename, err)
		}
	}

	return nil
}

// render runs one chart through the progress bar, the debug log and the collector.
func (r *Runner) render(name, kind, path string, draw func() (chart.Output, error)) error {
	artifact := metrics.Artifact{
		Name:      name,
		Kind:      kind,
		Path:      path,
		Timestamp: time.Now(),
	}

	var chartLog *debug.ChartLog
	if r.debugLogger != nil && r.debugLogger.IsEnabled() {
		chartLog = r.debugLogger.StartChart(name, kind, path)
	}
	r.progress.StartChart(name)

	start := time.Now()
	out, err := draw()
	artifact.Duration = time.Since(start)

	if err != nil {
		artifact.Error = err.Error()
		artifact.ErrorCategory = categorizeError(err)
		if r.debugLogger != nil {
			r.debugLogger.LogError(chartLog, err)
			r.debugLogger.EndChart(chartLog, 0)
		}
		r.progress.CompleteChart(false)
		r.collector.Add(artifact)
		if !r.progress.IsEnabled() {
			r.printf("  ✗ %s failed: %v\n", name, err)
		}
		return err
	}

	artifact.Success = true
	artifact.Path = out.Path
	artifact.Bytes = out.Bytes
	artifact.Categories = out.Categories
	if r.debugLogger != nil {
		r.debugLogger.EndChart(chartLog, out.Bytes)
	}
	r.progress.CompleteChart(true)
	r.collector.Add(artifact)

	if !r.progress.IsEnabled() {
		r.printf("  ✓ %s: %d categories, %d bytes, %v\n",
			name, out.Categories, out.Bytes, artifact.Duration.Round(time.Millisecond))
	}
	return nil
}

// categorizeError maps an error to the failure classes shown in summaries
func categorizeError(err error) string {
	var (
		inErr    *costs.InputError
		parseErr *costs.ParseError
		outErr   *chart.OutputError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.As(err, &inErr):
		return "input"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &outErr):
		if outErr.Op == "render" {
			return "render"
		}
		return "output"
	default:
		return "other"
	}
}

func (r *Runner) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.opts.Out, format, args...)
}

// GetCollector returns the artifacts collected so far
func (r *Runner) GetCollector() *metrics.Collector {
	return r.collector
}

// Dataset returns the normalized dataset of the last run, or nil before a
// successful load.
func (r *Runner) Dataset() *costs.Dataset {
	return r.dataset
}
