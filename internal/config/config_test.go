package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
[input]
path = "runs/tour_costs.csv"

[output]
dir = "./charts"
format = "SVG"

[chart]
aggregate_width = 20
instance_bar_fraction = 0.1

[chart.colors]
greedy = "#123456"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Input.Path != "runs/tour_costs.csv" {
		t.Errorf("expected input path runs/tour_costs.csv, got %s", cfg.Input.Path)
	}
	if cfg.Output.Dir != "./charts" {
		t.Errorf("expected output dir ./charts, got %s", cfg.Output.Dir)
	}
	if cfg.Output.Format != "svg" {
		t.Errorf("expected normalized format svg, got %s", cfg.Output.Format)
	}
	if cfg.Output.Extension() != ".svg" {
		t.Errorf("expected extension .svg, got %s", cfg.Output.Extension())
	}
	if cfg.Chart.AggregateWidth != 20 {
		t.Errorf("expected aggregate width 20, got %v", cfg.Chart.AggregateWidth)
	}
	if cfg.Chart.InstanceBarFraction != 0.1 {
		t.Errorf("expected instance bar fraction 0.1, got %v", cfg.Chart.InstanceBarFraction)
	}
	if cfg.Chart.Colors["greedy"] != "#123456" {
		t.Errorf("expected greedy override, got %s", cfg.Chart.Colors["greedy"])
	}
	if cfg.Chart.Colors["nearest_neighbor"] != "#0000ff" {
		t.Errorf("expected default nearest_neighbor color, got %s", cfg.Chart.Colors["nearest_neighbor"])
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Input.Path != DefaultInputPath {
		t.Errorf("expected default input %s, got %s", DefaultInputPath, cfg.Input.Path)
	}
	if cfg.Output.Dir != DefaultOutputDir {
		t.Errorf("expected default output dir %s, got %s", DefaultOutputDir, cfg.Output.Dir)
	}
	if cfg.Output.Format != "png" {
		t.Errorf("expected default format png, got %s", cfg.Output.Format)
	}
	if cfg.Chart.AggregateWidth != 16 || cfg.Chart.AggregateHeight != 8 {
		t.Errorf("expected 16x8 aggregate, got %vx%v", cfg.Chart.AggregateWidth, cfg.Chart.AggregateHeight)
	}
	if cfg.Chart.InstanceWidth != 15 || cfg.Chart.InstanceHeight != 12 {
		t.Errorf("expected 15x12 instance, got %vx%v", cfg.Chart.InstanceWidth, cfg.Chart.InstanceHeight)
	}
	if cfg.Chart.AggregateBarFraction != 0.2 {
		t.Errorf("expected aggregate bar fraction 0.2, got %v", cfg.Chart.AggregateBarFraction)
	}
	if cfg.Chart.InstanceBarFraction != 0.15 {
		t.Errorf("expected instance bar fraction 0.15, got %v", cfg.Chart.InstanceBarFraction)
	}
}

func TestDefault_MatchesEmptyFile(t *testing.T) {
	loaded, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	def := Default()
	if def.Output != loaded.Output || def.Input != loaded.Input {
		t.Errorf("Default() differs from empty config: %+v vs %+v", def, loaded)
	}
	if err := def.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_MissingFileError(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoad_InvalidTOMLError(t *testing.T) {
	_, err := Load(writeConfig(t, `this is not valid toml [[[`))
	if err == nil {
		t.Fatal("expected error for invalid TOML, got nil")
	}
}

func TestLoad_PathTraversal(t *testing.T) {
	_, err := Load("../../etc/config.toml")
	if err == nil {
		t.Fatal("expected error for traversal path, got nil")
	}
	if !strings.Contains(err.Error(), "invalid config path") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"format", "[output]\nformat = \"gif\"\n", "unsupported output format: gif"},
		{"font", "[chart]\nfont = \"Comic Sans\"\n", "unsupported font: Comic Sans"},
		{"aggregate fraction", "[chart]\naggregate_bar_fraction = 0.5\n", "aggregate_bar_fraction 0.50 leaves no room for three bars"},
		{"instance fraction", "[chart]\ninstance_bar_fraction = 0.3\n", "instance_bar_fraction 0.30 leaves no room for four bars"},
		{"color", "[chart.colors]\ngreedy = \"green\"\n", "color greedy: invalid hex color \"green\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if err.Error() != tt.want {
				t.Errorf("unexpected error message: %v", err)
			}
		})
	}
}

func TestSave_LoadRoundtrip(t *testing.T) {
	original := Default()
	original.Input.Path = "bench/tour_costs.csv"
	original.Output.Dir = "./test-output"
	original.Output.Format = "pdf"
	original.Chart.InstanceHeight = 9

	configPath := filepath.Join(t.TempDir(), "roundtrip.toml")
	if err := original.Save(configPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Input != original.Input {
		t.Errorf("input mismatch: %+v vs %+v", loaded.Input, original.Input)
	}
	if loaded.Output != original.Output {
		t.Errorf("output mismatch: %+v vs %+v", loaded.Output, original.Output)
	}
	if loaded.Chart.InstanceHeight != 9 {
		t.Errorf("instance height mismatch: %v", loaded.Chart.InstanceHeight)
	}
	if len(loaded.Chart.Colors) != len(original.Chart.Colors) {
		t.Errorf("colors count mismatch: %d vs %d", len(loaded.Chart.Colors), len(original.Chart.Colors))
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff0000", color.RGBA{R: 255, A: 255}, false},
		{"00ff7f", color.RGBA{G: 255, B: 127, A: 255}, false},
		{" #0000FF ", color.RGBA{B: 255, A: 255}, false},
		{"#fff", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestChartConfigColor_Fallback(t *testing.T) {
	c := ChartConfig{Colors: map[string]string{"greedy": "#008000"}}
	if got := c.Color("greedy"); got != (color.RGBA{G: 128, A: 255}) {
		t.Errorf("unexpected greedy color: %v", got)
	}
	if got := c.Color("unknown"); got != color.Black {
		t.Errorf("expected black fallback, got %v", got)
	}
}
