// Package metrics records rendered chart artifacts and aggregates tour cost statistics.
package metrics

import (
	"time"
)

// Artifact kinds.
const (
	KindAggregate  = "aggregate"
	KindIndividual = "individual"
)

// Artifact describes one chart produced (or attempted) during a run
type Artifact struct {
	Name          string        `json:"name"`
	Kind          string        `json:"kind"`
	Path          string        `json:"path"`
	Bytes         int64         `json:"bytes"`
	Categories    int           `json:"categories"`
	Duration      time.Duration `json:"duration"`
	Success       bool          `json:"success"`
	Error         string        `json:"error,omitempty"`
	ErrorCategory string        `json:"error_category,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}

// Collector keeps artifacts in the order they were rendered
type Collector struct {
	artifacts []Artifact
}

// NewCollector creates a new artifact collector
func NewCollector() *Collector {
	return &Collector{
		artifacts: make([]Artifact, 0),
	}
}

// Add records an artifact
func (c *Collector) Add(a Artifact) {
	c.artifacts = append(c.artifacts, a)
}

// Artifacts returns all recorded artifacts
func (c *Collector) Artifacts() []Artifact {
	out := make([]Artifact, len(c.artifacts))
	copy(out, c.artifacts)
	return out
}

// ByKind returns the artifacts of one kind
func (c *Collector) ByKind(kind string) []Artifact {
	var filtered []Artifact
	for _, a := range c.artifacts {
		if a.Kind == kind {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// RunSummary condenses the collector into counts and totals.
type RunSummary struct {
	Total         int           `json:"total"`
	Succeeded     int           `json:"succeeded"`
	Failed        int           `json:"failed"`
	Aggregate     int           `json:"aggregate"`
	Individual    int           `json:"individual"`
	TotalBytes    int64         `json:"total_bytes"`
	TotalDuration time.Duration `json:"total_duration"`
	AvgDuration   time.Duration `json:"avg_duration"`
	MaxDuration   time.Duration `json:"max_duration"`
	Slowest       string        `json:"slowest,omitempty"`
}

// Summary computes the run summary
func (c *Collector) Summary() RunSummary {
	var s RunSummary
	for _, a := range c.artifacts {
		s.Total++
		if !a.Success {
			s.Failed++
			continue
		}
		s.Succeeded++
		switch a.Kind {
		case KindAggregate:
			s.Aggregate++
		case KindIndividual:
			s.Individual++
		}
		s.TotalBytes += a.Bytes
		s.TotalDuration += a.Duration
		if a.Duration > s.MaxDuration || s.Slowest == "" {
			s.MaxDuration = a.Duration
			s.Slowest = a.Name
		}
	}
	if s.Succeeded > 0 {
		s.AvgDuration = s.TotalDuration / time.Duration(s.Succeeded)
	}
	return s
}
