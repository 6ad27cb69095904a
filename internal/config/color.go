package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor converts "#rrggbb" (or "rrggbb") into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Color returns the configured color for a series, falling back to black.
func (c ChartConfig) Color(series string) color.Color {
	if rgba, err := ParseHexColor(c.Colors[series]); err == nil {
		return rgba
	}
	return color.Black
}
