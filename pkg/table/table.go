// Package table defines the column-oriented input model for chart rendering
// and readers for the supported file formats (CSV, XLSX, YAML, JSON).
//
// A Table carries a category column, a bar-kind column, an optional sequence
// column, and zero or more named numeric measure columns. Readers normalize
// structure only; value semantics (kind fallback, zero-measure dropping,
// sequence defaults) belong to the chart parser.
package table

import (
	"path/filepath"
	"strings"

	"github.com/cascadevis/cascade/pkg/errors"
)

// Measure is one named numeric column.
type Measure struct {
	Name   string    `json:"name" yaml:"name"`
	Values []float64 `json:"values" yaml:"values"`
}

// Table is a column-oriented input table. All columns are row-aligned:
// index i across Categories, Kinds, Sequence, and each measure's Values
// describes row i. Sequence may be empty (no sequence column) or hold raw
// cell text per row; empty or non-numeric cells mean "use row order".
type Table struct {
	Categories []string
	Kinds      []string
	Sequence   []string
	Measures   []Measure
}

// Rows returns the number of rows, defined by the category column.
func (t *Table) Rows() int {
	return len(t.Categories)
}

// Empty reports whether the table signals the no-data state: zero rows or
// a missing kind column. Callers render a placeholder instead of a chart.
func (t *Table) Empty() bool {
	return len(t.Categories) == 0 || len(t.Kinds) == 0
}

// normalize pads every column to row length so readers can hand out tables
// with ragged input. Extra cells beyond the category column are dropped.
func (t *Table) normalize() {
	n := t.Rows()
	t.Kinds = padStrings(t.Kinds, n)
	if len(t.Sequence) > 0 {
		t.Sequence = padStrings(t.Sequence, n)
	}
	for i := range t.Measures {
		t.Measures[i].Values = padFloats(t.Measures[i].Values, n)
	}
}

func padStrings(s []string, n int) []string {
	if len(s) >= n {
		return s[:n]
	}
	out := make([]string, n)
	copy(out, s)
	return out
}

func padFloats(s []float64, n int) []float64 {
	if len(s) >= n {
		return s[:n]
	}
	out := make([]float64, n)
	copy(out, s)
	return out
}

// FromFile reads a table from path, dispatching on the file extension.
// Supported: .csv, .xlsx, .yaml, .yml, .json.
func FromFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FromCSVFile(path)
	case ".xlsx":
		return FromXLSXFile(path)
	case ".yaml", ".yml":
		return FromYAMLFile(path)
	case ".json":
		return FromJSONFile(path)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"unsupported table format: %s (expected .csv, .xlsx, .yaml, or .json)", filepath.Ext(path))
	}
}

// isSequenceHeader reports whether a header cell names the optional
// sequence column.
func isSequenceHeader(h string) bool {
	switch strings.ToLower(strings.TrimSpace(h)) {
	case "sequence", "seq", "order":
		return true
	}
	return false
}
