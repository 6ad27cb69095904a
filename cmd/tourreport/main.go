// Package main provides the entry point for the tour cost report tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lamim/tour-cost-report/internal/chart"
	"github.com/lamim/tour-cost-report/internal/config"
	"github.com/lamim/tour-cost-report/internal/debug"
	"github.com/lamim/tour-cost-report/internal/metrics"
	"github.com/lamim/tour-cost-report/internal/report"
	"github.com/lamim/tour-cost-report/internal/runner"
)

type cliFlags struct {
	configPath *string
	inputPath  *string
	outputDir  *string
	format     *string
	summary    *string
	noProgress *bool
	debugMode  *bool
}

func parseFlags() *cliFlags {
	return &cliFlags{
		configPath: flag.String("config", "", "Path to configuration file (defaults are used when empty)"),
		inputPath:  flag.String("input", "", "Tour cost CSV to read (overrides config)"),
		outputDir:  flag.String("output", "", "Output directory for charts (overrides config)"),
		format:     flag.String("format", "", "Image format: png, jpg, tiff, svg, pdf, eps (overrides config)"),
		summary:    flag.String("summary", "", "Also write a run summary: md, json, all"),
		noProgress: flag.Bool("no-progress", false, "Disable progress bar (useful for CI)"),
		debugMode:  flag.Bool("debug", false, "Write a JSON debug log of the run"),
	}
}

func main() {
	flags := parseFlags()
	flag.Parse()

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *cliFlags) error {
	cfg, err := loadConfig(*flags.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	applyOverrides(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	summaryFormats, err := parseSummaryFormats(*flags.summary)
	if err != nil {
		return err
	}

	debugLogger := debug.NewLogger(*flags.debugMode, cfg.Output.Dir)
	if *flags.debugMode {
		fmt.Printf("🐛 Debug mode enabled: logging to %s/\n\n", debugLogger.GetOutputPath())
	}

	renderer := chart.NewRenderer(cfg.Output.Dir, chart.StyleFromConfig(cfg))
	r := runner.NewRunner(cfg.Input.Path, renderer, debugLogger, runner.Options{
		Progress: !*flags.noProgress,
	})

	runErr := r.Run(context.Background())

	// The debug log is most useful when the run failed, so it is written either way.
	if *flags.debugMode {
		if err := debugLogger.Finalize(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write debug log: %v\n", err)
		} else {
			fmt.Printf("✓ Debug log written to: %s\n", debugLogger.GetSessionPath())
		}
	}

	if runErr != nil {
		return runErr
	}

	collector := r.GetCollector()
	summary := collector.Summary()
	fmt.Printf("✓ Rendered %d charts in %s/ (%d instances)\n", summary.Succeeded, cfg.Output.Dir, summary.Individual)

	if len(summaryFormats) > 0 {
		generateSummaries(summaryFormats, collector, metrics.Summarize(r.Dataset().Records()), cfg.Output.Dir)
	}
	return nil
}

// loadConfig reads path, or returns the built-in defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// applyOverrides copies non-empty command line values over the configuration
func applyOverrides(cfg *config.Config, flags *cliFlags) {
	if *flags.inputPath != "" {
		cfg.Input.Path = *flags.inputPath
	}
	if *flags.outputDir != "" {
		cfg.Output.Dir = *flags.outputDir
	}
	if *flags.format != "" {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(*flags.format))
	}
}

// parseSummaryFormats splits a comma separated list. "all" expands to every format.
func parseSummaryFormats(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case "all":
			return []string{"all"}, nil
		case "md", "json":
			formats = append(formats, f)
		default:
			return nil, fmt.Errorf("unknown summary format: %q", f)
		}
	}
	return formats, nil
}

func generateSummaries(formats []string, collector *metrics.Collector, costs *metrics.CostSummary, outputDir string) {
	gen := report.NewGenerator(collector, costs, outputDir)
	for _, f := range formats {
		if err := gen.Generate(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s summary: %v\n", f, err)
			continue
		}
		switch f {
		case "md":
			fmt.Printf("✓ Generated Markdown summary: %s/%s\n", outputDir, report.MarkdownFile)
		case "json":
			fmt.Printf("✓ Generated JSON summary: %s/%s\n", outputDir, report.JSONFile)
		case "all":
			fmt.Printf("✓ Generated all summaries in: %s/\n", outputDir)
		}
	}
}
