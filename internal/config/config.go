// Package config provides configuration loading and validation for the report tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default locations used when no configuration file is given.
const (
	DefaultInputPath = "tour_costs.csv"
	DefaultOutputDir = "graphs"
	DefaultFormat    = "png"
)

var supportedFonts = map[string]bool{
	"Liberation Sans":  true,
	"Liberation Serif": true,
	"Liberation Mono":  true,
}

var supportedFormats = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"tiff": true,
	"tif":  true,
	"svg":  true,
	"pdf":  true,
	"eps":  true,
}

// Config represents the main configuration structure
type Config struct {
	Input  InputConfig  `toml:"input"`
	Output OutputConfig `toml:"output"`
	Chart  ChartConfig  `toml:"chart"`
}

// InputConfig locates the tour cost dataset
type InputConfig struct {
	Path string `toml:"path"`
}

// OutputConfig controls where charts are written
type OutputConfig struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

// ChartConfig holds the rendering style shared by every chart
type ChartConfig struct {
	Font                 string  `toml:"font"`
	AggregateWidth       float64 `toml:"aggregate_width"`  // inches
	AggregateHeight      float64 `toml:"aggregate_height"` // inches
	InstanceWidth        float64 `toml:"instance_width"`
	InstanceHeight       float64 `toml:"instance_height"`
	AggregateBarFraction float64 `toml:"aggregate_bar_fraction"`
	InstanceBarFraction  float64 `toml:"instance_bar_fraction"`
	// Colors are "#rrggbb" strings keyed by series name.
	Colors map[string]string `toml:"colors"`
}

// DefaultColors returns the series colors of the stock charts.
func DefaultColors() map[string]string {
	return map[string]string{
		"nearest_neighbor": "#0000ff",
		"greedy":           "#008000",
		"cheapest":         "#ffa500",
		"constructive":     "#ff0000",
		"two_opt":          "#008000",
		"node_shift":       "#ffa500",
		"node_swap":        "#0000ff",
	}
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Input.Path == "" {
		c.Input.Path = DefaultInputPath
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Output.Format == "" {
		c.Output.Format = DefaultFormat
	}
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))

	ch := &c.Chart
	if ch.Font == "" {
		ch.Font = "Liberation Sans"
	}
	if ch.AggregateWidth <= 0 {
		ch.AggregateWidth = 16
	}
	if ch.AggregateHeight <= 0 {
		ch.AggregateHeight = 8
	}
	if ch.InstanceWidth <= 0 {
		ch.InstanceWidth = 15
	}
	if ch.InstanceHeight <= 0 {
		ch.InstanceHeight = 12
	}
	if ch.AggregateBarFraction <= 0 {
		ch.AggregateBarFraction = 0.2
	}
	if ch.InstanceBarFraction <= 0 {
		ch.InstanceBarFraction = 0.15
	}

	colors := DefaultColors()
	for k, v := range ch.Colors {
		colors[strings.ToLower(strings.TrimSpace(k))] = v
	}
	ch.Colors = colors
}

// Validate checks the values that defaults cannot repair.
func (c *Config) Validate() error {
	if !supportedFonts[c.Chart.Font] {
		return fmt.Errorf("unsupported font: %s", c.Chart.Font)
	}
	if !supportedFormats[c.Output.Format] {
		return fmt.Errorf("unsupported output format: %s", c.Output.Format)
	}
	if c.Chart.AggregateBarFraction*3 > 1 {
		return fmt.Errorf("aggregate_bar_fraction %.2f leaves no room for three bars", c.Chart.AggregateBarFraction)
	}
	if c.Chart.InstanceBarFraction*4 > 1 {
		return fmt.Errorf("instance_bar_fraction %.2f leaves no room for four bars", c.Chart.InstanceBarFraction)
	}
	for name, hex := range c.Chart.Colors {
		if _, err := ParseHexColor(hex); err != nil {
			return fmt.Errorf("color %s: %w", name, err)
		}
	}
	return nil
}

// Extension returns the file extension matching the output format.
func (o OutputConfig) Extension() string {
	return "." + o.Format
}

// validatePath checks for path traversal attempts
func validatePath(path string) error {
	cleanPath := filepath.Clean(path)

	// Check for path traversal sequences that go above current directory
	if strings.HasPrefix(cleanPath, "..") || strings.Contains(cleanPath, "../") {
		return fmt.Errorf("path contains invalid traversal sequence: %s", path)
	}

	return nil
}

// Load reads and parses the TOML configuration file
func Load(path string) (*Config, error) {
	if err := validatePath(path); err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	// #nosec G304 - Path validated above, this is intentional file inclusion
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to a TOML file
func (c *Config) Save(path string) error {
	if err := validatePath(path); err != nil {
		return fmt.Errorf("invalid config path: %w", err)
	}

	// #nosec G304 - Path validated above, this is intentional file creation
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
