package costs

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// CSV column names written by the benchmark run.
const (
	ColFilename          = "Filename"
	ColNearestNeighbor   = "NearestNeighborHeuristic"
	ColGreedy            = "GreedyHeuristic"
	ColCheapestInsertion = "CheapestInsertionHeuristic"
)

var (
	// ColTwoOpt holds the 2-opt round columns.
	ColTwoOpt = [Rounds]string{"2opt-1", "2opt-2", "2opt-3"}
	// ColNodeShift holds the node-shift round columns.
	ColNodeShift = [Rounds]string{"NodeShift-1", "NodeShift-2", "NodeShift-3"}
	// ColNodeSwap holds the node-swap round columns.
	ColNodeSwap = [Rounds]string{"NodeSwap-1", "NodeSwap-2", "NodeSwap-3"}
)

var (
	errEmptyFile = errors.New("file is empty")
	errShortRow  = errors.New("row has fewer fields than the header")
	errNonFinite = errors.New("value is not a finite number")
)

// RequiredColumns returns every column Load needs, in canonical order.
func RequiredColumns() []string {
	cols := []string{ColFilename, ColNearestNeighbor, ColGreedy, ColCheapestInsertion}
	cols = append(cols, ColTwoOpt[:]...)
	cols = append(cols, ColNodeShift[:]...)
	cols = append(cols, ColNodeSwap[:]...)
	return cols
}

// Load reads the CSV at path. Columns are matched by header name, so their order
// does not matter and unknown columns are ignored. Rows keep their file order.
func Load(path string) (*Dataset, error) {
	// #nosec G304 - the dataset path is an explicit operator input
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	records, err := Read(path, f)
	if err != nil {
		return nil, err
	}
	return NewDataset(path, records), nil
}

// Read parses CSV rows from r. name is used only in error messages.
func Read(name string, r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &InputError{Path: name, Err: errEmptyFile}
	}
	if err != nil {
		return nil, &InputError{Path: name, Err: fmt.Errorf("failed to read header: %w", err)}
	}

	idx, err := indexColumns(name, header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			line := 0
			if errors.As(err, &csvErr) {
				line = csvErr.Line
			}
			return nil, &ParseError{Path: name, Line: line, Err: err}
		}
		line, _ := cr.FieldPos(0)

		rec, err := parseRow(name, line, row, idx)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func indexColumns(name string, header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, col := range RequiredColumns() {
		if _, ok := idx[col]; !ok {
			return nil, &InputError{Path: name, Column: col}
		}
	}
	return idx, nil
}

func parseRow(name string, line int, row []string, idx map[string]int) (Record, error) {
	cell := func(col string) (string, error) {
		i := idx[col]
		if i >= len(row) {
			return "", &ParseError{Path: name, Line: line, Column: col, Err: errShortRow}
		}
		return strings.TrimSpace(row[i]), nil
	}
	num := func(col string) (float64, error) {
		raw, err := cell(col)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, &ParseError{Path: name, Line: line, Column: col, Value: raw, Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &ParseError{Path: name, Line: line, Column: col, Value: raw, Err: errNonFinite}
		}
		return v, nil
	}

	var rec Record
	var err error
	if rec.Filename, err = cell(ColFilename); err != nil {
		return Record{}, err
	}
	if rec.NearestNeighbor, err = num(ColNearestNeighbor); err != nil {
		return Record{}, err
	}
	if rec.Greedy, err = num(ColGreedy); err != nil {
		return Record{}, err
	}
	if rec.CheapestInsertion, err = num(ColCheapestInsertion); err != nil {
		return Record{}, err
	}
	for k := 0; k < Rounds; k++ {
		if rec.TwoOpt[k], err = num(ColTwoOpt[k]); err != nil {
			return Record{}, err
		}
		if rec.NodeShift[k], err = num(ColNodeShift[k]); err != nil {
			return Record{}, err
		}
		if rec.NodeSwap[k], err = num(ColNodeSwap[k]); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}
