package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/lamim/tour-cost-report/internal/costs"
)

// Heuristic names used in statistics, in column order.
var (
	ConstructiveNames = [costs.Rounds]string{"NearestNeighbor", "Greedy", "CheapestInsertion"}
	LocalSearchNames  = []string{"2opt", "NodeShift", "NodeSwap"}
)

// HeuristicStats aggregates one cost column over all instances
type HeuristicStats struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// InstanceStats describes the best results for one instance
type InstanceStats struct {
	Filename         string  `json:"filename"`
	BestConstructive string  `json:"best_constructive"`
	BestHeuristic    string  `json:"best_heuristic"`
	BestCost         float64 `json:"best_cost"`
	// Improvement of the best cost over the best constructive tour, in percent.
	ImprovementPct float64 `json:"improvement_pct"`
}

// CostSummary holds the statistics of a whole dataset
type CostSummary struct {
	Instances int              `json:"instances"`
	Columns   []HeuristicStats `json:"columns"`
	PerFile   []InstanceStats  `json:"per_file"`
	Wins      map[string]int   `json:"constructive_wins"`
	// Mean relative improvement (percent) of each local search over its constructive start.
	MeanImprovementPct map[string]float64 `json:"mean_improvement_pct"`
}

// columns returns every cost column as (name, values); round columns keep their CSV names.
func columns(records []costs.Record) ([]string, [][]float64) {
	names := append([]string{}, ConstructiveNames[:]...)
	names = append(names, costs.ColTwoOpt[:]...)
	names = append(names, costs.ColNodeShift[:]...)
	names = append(names, costs.ColNodeSwap[:]...)

	cols := make([][]float64, len(names))
	for _, r := range records {
		row := rowValues(r)
		for i, v := range row {
			cols[i] = append(cols[i], v)
		}
	}
	return names, cols
}

func rowValues(r costs.Record) []float64 {
	c := r.Constructive()
	row := append([]float64{}, c[:]...)
	row = append(row, r.TwoOpt[:]...)
	row = append(row, r.NodeShift[:]...)
	row = append(row, r.NodeSwap[:]...)
	return row
}

func localSearch(r costs.Record, method int) [costs.Rounds]float64 {
	switch method {
	case 0:
		return r.TwoOpt
	case 1:
		return r.NodeShift
	default:
		return r.NodeSwap
	}
}

// Summarize computes per-column and per-instance statistics.
func Summarize(records []costs.Record) *CostSummary {
	s := &CostSummary{
		Instances:          len(records),
		Wins:               make(map[string]int, len(ConstructiveNames)),
		MeanImprovementPct: make(map[string]float64, len(LocalSearchNames)),
	}
	for _, n := range ConstructiveNames {
		s.Wins[n] = 0
	}

	names, cols := columns(records)
	for i, name := range names {
		s.Columns = append(s.Columns, describe(name, cols[i]))
	}

	improvements := make([][]float64, len(LocalSearchNames))
	for _, r := range records {
		c := r.Constructive()
		best := floats.MinIdx(c[:])
		s.Wins[ConstructiveNames[best]]++

		row := rowValues(r)
		bi := floats.MinIdx(row)
		inst := InstanceStats{
			Filename:         r.Filename,
			BestConstructive: ConstructiveNames[best],
			BestHeuristic:    names[bi],
			BestCost:         row[bi],
		}
		if c[best] != 0 {
			inst.ImprovementPct = (c[best] - row[bi]) / c[best] * 100
		}
		s.PerFile = append(s.PerFile, inst)

		for m := range LocalSearchNames {
			ls := localSearch(r, m)
			for k := 0; k < costs.Rounds; k++ {
				if c[k] != 0 {
					improvements[m] = append(improvements[m], (c[k]-ls[k])/c[k]*100)
				}
			}
		}
	}

	for m, name := range LocalSearchNames {
		if len(improvements[m]) > 0 {
			s.MeanImprovementPct[name] = stat.Mean(improvements[m], nil)
		} else {
			s.MeanImprovementPct[name] = 0
		}
	}
	return s
}

func describe(name string, values []float64) HeuristicStats {
	h := HeuristicStats{Name: name, Count: len(values)}
	if len(values) == 0 {
		return h
	}
	h.Mean = stat.Mean(values, nil)
	h.Min = floats.Min(values)
	h.Max = floats.Max(values)
	if len(values) > 1 {
		h.StdDev = stat.StdDev(values, nil)
	}
	return h
}

// Column returns the statistics for a named column.
func (s *CostSummary) Column(name string) (HeuristicStats, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return HeuristicStats{}, false
}
