// Package report writes Markdown and JSON summaries of a chart run.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lamim/tour-cost-report/internal/metrics"
)

// Summary file names, relative to the output directory.
const (
	MarkdownFile = "summary.md"
	JSONFile     = "summary.json"
)

// Generator creates summaries from rendered artifacts and cost statistics
type Generator struct {
	collector *metrics.Collector
	costs     *metrics.CostSummary
	outputDir string
	now       func() time.Time
}

// NewGenerator creates a new summary generator
func NewGenerator(collector *metrics.Collector, costs *metrics.CostSummary, outputDir string) *Generator {
	return &Generator{
		collector: collector,
		costs:     costs,
		outputDir: outputDir,
		now:       time.Now,
	}
}

// Generate writes the requested formats: "md", "json" or "all".
func (g *Generator) Generate(format string) error {
	switch format {
	case "md":
		return g.GenerateMarkdown()
	case "json":
		return g.GenerateJSON()
	case "all":
		return g.GenerateAll()
	default:
		return fmt.Errorf("unknown summary format: %s", format)
	}
}

// GenerateAll generates all summary formats
func (g *Generator) GenerateAll() error {
	if err := g.GenerateMarkdown(); err != nil {
		return fmt.Errorf("failed to generate markdown summary: %w", err)
	}
	if err := g.GenerateJSON(); err != nil {
		return fmt.Errorf("failed to generate JSON summary: %w", err)
	}
	return nil
}

// GenerateMarkdown creates a markdown summary
func (g *Generator) GenerateMarkdown() error {
	run := g.collector.Summary()
	timestamp := g.now().Format("2006-01-02 15:04:05")

	var sb strings.Builder
	sb.WriteString("# Tour Cost Report\n\n")
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", timestamp))

	sb.WriteString("## Charts\n\n")
	sb.WriteString(fmt.Sprintf("- Aggregate charts: %d\n", run.Aggregate))
	sb.WriteString(fmt.Sprintf("- Instance charts: %d\n", run.Individual))
	if run.Failed > 0 {
		sb.WriteString(fmt.Sprintf("- Failed: %d\n", run.Failed))
	}
	sb.WriteString(fmt.Sprintf("- Render time: %v (avg %v)\n\n",
		run.TotalDuration.Round(time.Millisecond), run.AvgDuration.Round(time.Millisecond)))

	sb.WriteString("| Chart | Kind | File | Size |\n")
	sb.WriteString("|-------|------|------|------|\n")
	for _, a := range g.collector.Artifacts() {
		status := formatBytes(a.Bytes)
		if !a.Success {
			status = "❌ " + a.Error
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", a.Name, a.Kind, g.relPath(a.Path), status))
	}
	sb.WriteString("\n")

	if g.costs != nil {
		g.writeCostSections(&sb)
	}

	outputPath := filepath.Join(g.outputDir, MarkdownFile)
	// #nosec G306 - 0640 allows owner/group to read, which is appropriate for report files
	return os.WriteFile(outputPath, []byte(sb.String()), 0640)
}

func (g *Generator) writeCostSections(sb *strings.Builder) {
	c := g.costs

	sb.WriteString("## Heuristic Costs\n\n")
	sb.WriteString("| Heuristic | Mean | Std Dev | Min | Max |\n")
	sb.WriteString("|-----------|------|---------|-----|-----|\n")
	for _, h := range c.Columns {
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %.2f | %.2f |\n", h.Name, h.Mean, h.StdDev, h.Min, h.Max))
	}
	sb.WriteString("\n")

	sb.WriteString("## Constructive Wins\n\n")
	for _, name := range metrics.ConstructiveNames {
		sb.WriteString(fmt.Sprintf("- %s: %d of %d instances\n", name, c.Wins[name], c.Instances))
	}
	sb.WriteString("\n")

	sb.WriteString("## Local Search Improvement\n\n")
	for _, name := range metrics.LocalSearchNames {
		sb.WriteString(fmt.Sprintf("- %s: %.2f%% mean improvement over its constructive start\n", name, c.MeanImprovementPct[name]))
	}
	sb.WriteString("\n")

	if len(c.PerFile) == 0 {
		return
	}
	sb.WriteString("## Best Result per Instance\n\n")
	sb.WriteString("| Instance | Best Constructive | Best Heuristic | Best Cost | Improvement |\n")
	sb.WriteString("|----------|-------------------|----------------|-----------|-------------|\n")
	for _, inst := range c.PerFile {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.2f | %.2f%% |\n",
			inst.Filename, inst.BestConstructive, inst.BestHeuristic, inst.BestCost, inst.ImprovementPct))
	}
}

// GenerateJSON creates a JSON summary with raw data
func (g *Generator) GenerateJSON() error {
	data := map[string]interface{}{
		"timestamp": g.now(),
		"run":       g.collector.Summary(),
		"artifacts": g.collector.Artifacts(),
	}
	if g.costs != nil {
		data["costs"] = g.costs
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	outputPath := filepath.Join(g.outputDir, JSONFile)
	// #nosec G306 - 0640 allows owner/group to read, which is appropriate for report files
	return os.WriteFile(outputPath, jsonData, 0640)
}

func (g *Generator) relPath(path string) string {
	if rel, err := filepath.Rel(g.outputDir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// formatBytes renders a byte count with a binary unit
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
