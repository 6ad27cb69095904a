package metrics

import (
	"testing"
	"time"
)

func TestCollector_AddAndGet(t *testing.T) {
	c := NewCollector()

	a1 := Artifact{
		Name:       "compare_constructives",
		Kind:       KindAggregate,
		Path:       "graphs/compare_constructives.png",
		Bytes:      2048,
		Categories: 2,
		Duration:   100 * time.Millisecond,
		Success:    true,
	}
	a2 := Artifact{
		Name:    "foo.tsp",
		Kind:    KindIndividual,
		Path:    "graphs/individuals/foo.tsp.png",
		Success: false,
		Error:   "permission denied",
	}

	c.Add(a1)
	c.Add(a2)

	artifacts := c.Artifacts()
	if len(artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(artifacts))
	}
	if artifacts[0].Name != "compare_constructives" {
		t.Errorf("expected first artifact compare_constructives, got %s", artifacts[0].Name)
	}
	if artifacts[1].Error != "permission denied" {
		t.Errorf("expected second artifact error, got %q", artifacts[1].Error)
	}

	// Returned slice is a copy
	artifacts[0].Name = "changed"
	if c.Artifacts()[0].Name != "compare_constructives" {
		t.Error("Artifacts should return a copy")
	}
}

func TestCollector_ByKind(t *testing.T) {
	c := NewCollector()
	c.Add(Artifact{Name: "compare_constructives", Kind: KindAggregate})
	c.Add(Artifact{Name: "a.tsp", Kind: KindIndividual})
	c.Add(Artifact{Name: "b.tsp", Kind: KindIndividual})

	if got := len(c.ByKind(KindAggregate)); got != 1 {
		t.Errorf("expected 1 aggregate, got %d", got)
	}
	individuals := c.ByKind(KindIndividual)
	if len(individuals) != 2 {
		t.Fatalf("expected 2 individuals, got %d", len(individuals))
	}
	if individuals[0].Name != "a.tsp" || individuals[1].Name != "b.tsp" {
		t.Errorf("expected render order to be kept, got %v", individuals)
	}
	if got := c.ByKind("missing"); len(got) != 0 {
		t.Errorf("expected no artifacts for unknown kind, got %d", len(got))
	}
}

func TestCollector_Summary(t *testing.T) {
	c := NewCollector()
	c.Add(Artifact{Name: "compare_constructives", Kind: KindAggregate, Success: true, Bytes: 300, Duration: 30 * time.Millisecond})
	c.Add(Artifact{Name: "a.tsp", Kind: KindIndividual, Success: true, Bytes: 100, Duration: 10 * time.Millisecond})
	c.Add(Artifact{Name: "b.tsp", Kind: KindIndividual, Success: true, Bytes: 200, Duration: 50 * time.Millisecond})
	c.Add(Artifact{Name: "c.tsp", Kind: KindIndividual, Success: false, Duration: time.Second})

	s := c.Summary()
	if s.Total != 4 || s.Succeeded != 3 || s.Failed != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.Aggregate != 1 || s.Individual != 2 {
		t.Errorf("unexpected kind counts: aggregate=%d individual=%d", s.Aggregate, s.Individual)
	}
	if s.TotalBytes != 600 {
		t.Errorf("expected 600 bytes, got %d", s.TotalBytes)
	}
	if s.AvgDuration != 30*time.Millisecond {
		t.Errorf("expected avg 30ms, got %v", s.AvgDuration)
	}
	if s.Slowest != "b.tsp" || s.MaxDuration != 50*time.Millisecond {
		t.Errorf("expected slowest b.tsp at 50ms, got %s at %v", s.Slowest, s.MaxDuration)
	}
}

func TestCollector_EmptySummary(t *testing.T) {
	s := NewCollector().Summary()
	if s.Total != 0 || s.AvgDuration != 0 || s.Slowest != "" {
		t.Errorf("expected zero summary, got %+v", s)
	}
}
