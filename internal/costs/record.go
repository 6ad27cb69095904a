// Package costs loads per-instance heuristic tour costs from the benchmark CSV.
package costs

import (
	"iter"
	"strings"
)

// FilenamePrefix is stripped from instance filenames before they are used as labels.
const FilenamePrefix = "data/"

// Rounds is the number of local-search rounds recorded per heuristic.
const Rounds = 3

// Record holds the tour costs of every heuristic for a single problem instance.
//
// Local-search round k starts from the k-th constructive tour (nearest neighbor,
// greedy, cheapest insertion).
type Record struct {
	Filename          string          `json:"filename"`
	NearestNeighbor   float64         `json:"nearest_neighbor"`
	Greedy            float64         `json:"greedy"`
	CheapestInsertion float64         `json:"cheapest_insertion"`
	TwoOpt            [Rounds]float64 `json:"two_opt"`
	NodeShift         [Rounds]float64 `json:"node_shift"`
	NodeSwap          [Rounds]float64 `json:"node_swap"`
}

// Constructive returns the constructive costs in nearest neighbor, greedy,
// cheapest insertion order.
func (r Record) Constructive() [Rounds]float64 {
	return [Rounds]float64{r.NearestNeighbor, r.Greedy, r.CheapestInsertion}
}

// Normalized returns a copy of the record with FilenamePrefix stripped from its filename.
func (r Record) Normalized() Record {
	r.Filename = NormalizeFilename(r.Filename)
	return r
}

// NormalizeFilename removes a single leading FilenamePrefix, if present.
func NormalizeFilename(name string) string {
	return strings.TrimPrefix(name, FilenamePrefix)
}

// Dataset is the ordered set of records read from one CSV file.
type Dataset struct {
	Path    string
	records []Record
}

// NewDataset wraps records in a Dataset. The slice is copied.
func NewDataset(path string, records []Record) *Dataset {
	rs := make([]Record, len(records))
	copy(rs, records)
	return &Dataset{Path: path, records: rs}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of the records in file order.
func (d *Dataset) Records() []Record {
	rs := make([]Record, len(d.records))
	copy(rs, d.records)
	return rs
}

// All iterates the records in file order. Each call starts from the first row.
func (d *Dataset) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range d.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Normalize returns a new dataset with every filename normalized.
func (d *Dataset) Normalize() *Dataset {
	rs := make([]Record, len(d.records))
	for i, r := range d.records {
		rs[i] = r.Normalized()
	}
	return &Dataset{Path: d.Path, records: rs}
}

// Filenames returns the record filenames in file order.
func (d *Dataset) Filenames() []string {
	names := make([]string, len(d.records))
	for i, r := range d.records {
		names[i] = r.Filename
	}
	return names
}
