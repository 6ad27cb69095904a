package chart

import "gonum.org/v1/plot"

// LogScale is a base-10 axis scale. Values at or below the axis minimum map to
// the bottom of the axis, so bars rising from zero stay drawable.
type LogScale struct{}

// Normalize implements plot.Normalizer.
func (LogScale) Normalize(min, max, x float64) float64 {
	if x < min {
		x = min
	}
	return plot.LogScale{}.Normalize(min, max, x)
}
