package costs

import "fmt"

// InputError reports a dataset that cannot be read or lacks a required column.
type InputError struct {
	Path   string
	Column string // set when a required column is missing
	Err    error
}

func (e *InputError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("input %s: missing required column %q", e.Path, e.Column)
	}
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ParseError reports a cell that does not hold a usable number.
type ParseError struct {
	Path   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("parse %s line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s line %d column %q: invalid value %q: %v", e.Path, e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
