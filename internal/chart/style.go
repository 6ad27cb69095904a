// Package chart renders tour cost comparisons as grouped bar charts.
package chart

import (
	"image/color"
	"strings"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"

	"github.com/lamim/tour-cost-report/internal/config"
)

// Series keys used to look up colors.
const (
	SeriesNearestNeighbor = "nearest_neighbor"
	SeriesGreedy          = "greedy"
	SeriesCheapest        = "cheapest"
	SeriesConstructive    = "constructive"
	SeriesTwoOpt          = "two_opt"
	SeriesNodeShift       = "node_shift"
	SeriesNodeSwap        = "node_swap"
)

// Style is the rendering configuration shared by every chart of a run.
type Style struct {
	Font                 font.Font
	Format               string
	Extension            string
	AggregateWidth       vg.Length
	AggregateHeight      vg.Length
	InstanceWidth        vg.Length
	InstanceHeight       vg.Length
	AggregateBarFraction float64
	InstanceBarFraction  float64
	Colors               map[string]color.Color

	TitleSize vg.Length
	LabelSize vg.Length
	TickSize  vg.Length
}

// StyleFromConfig builds a Style from the loaded configuration.
func StyleFromConfig(cfg *config.Config) Style {
	ch := cfg.Chart
	colors := make(map[string]color.Color, len(ch.Colors))
	for name := range ch.Colors {
		colors[name] = ch.Color(name)
	}
	return Style{
		Font:                 parseFont(ch.Font),
		Format:               cfg.Output.Format,
		Extension:            cfg.Output.Extension(),
		AggregateWidth:       vg.Length(ch.AggregateWidth) * vg.Inch,
		AggregateHeight:      vg.Length(ch.AggregateHeight) * vg.Inch,
		InstanceWidth:        vg.Length(ch.InstanceWidth) * vg.Inch,
		InstanceHeight:       vg.Length(ch.InstanceHeight) * vg.Inch,
		AggregateBarFraction: ch.AggregateBarFraction,
		InstanceBarFraction:  ch.InstanceBarFraction,
		Colors:               colors,
		TitleSize:            vg.Points(16),
		LabelSize:            vg.Points(12),
		TickSize:             vg.Points(10),
	}
}

// DefaultStyle is the style of the stock configuration.
func DefaultStyle() Style {
	return StyleFromConfig(config.Default())
}

func (s Style) color(series string) color.Color {
	if c, ok := s.Colors[series]; ok {
		return c
	}
	return color.Black
}

// "Liberation Sans" -> {Typeface: Liberation, Variant: Sans}
func parseFont(name string) font.Font {
	typeface, variant, ok := strings.Cut(strings.TrimSpace(name), " ")
	if !ok {
		return font.Font{Typeface: font.Typeface(typeface)}
	}
	return font.Font{Typeface: font.Typeface(typeface), Variant: font.Variant(variant)}
}

var configureOnce sync.Once

// Configure installs the process-wide plot defaults. Only the first call has an
// effect; it must happen before the first plot is created.
func Configure(s Style) {
	configureOnce.Do(func() {
		plot.DefaultFont = s.Font
	})
}
