package table

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cascadevis/cascade/pkg/errors"
)

// FromCSV reads a table from CSV. The header row names the columns:
// column 0 is the category, column 1 the bar kind, an optional column named
// "sequence" (or "seq"/"order") supplies explicit ordering, and every other
// column is a numeric measure titled by its header.
//
// Non-numeric measure cells coerce to 0 and are later dropped by the parser.
func FromCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse CSV")
	}
	return fromGrid(records), nil
}

// FromCSVFile reads a table from a CSV file on disk.
func FromCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "table file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to open table file")
	}
	defer f.Close()
	return FromCSV(f)
}

// fromGrid builds a table from a header-plus-rows string grid. Shared by the
// CSV and XLSX readers.
func fromGrid(records [][]string) *Table {
	t := &Table{}
	if len(records) == 0 {
		return t
	}

	header := records[0]
	if len(header) < 2 {
		// Fewer than two categorical columns is the no-data state.
		return t
	}

	seqCol := -1
	if len(header) > 2 && isSequenceHeader(header[2]) {
		seqCol = 2
	}
	for col := 2; col < len(header); col++ {
		if col == seqCol {
			continue
		}
		t.Measures = append(t.Measures, Measure{Name: strings.TrimSpace(header[col])})
	}

	for _, row := range records[1:] {
		t.Categories = append(t.Categories, cell(row, 0))
		t.Kinds = append(t.Kinds, cell(row, 1))
		if seqCol >= 0 {
			t.Sequence = append(t.Sequence, cell(row, seqCol))
		}
		m := 0
		for col := 2; col < len(header); col++ {
			if col == seqCol {
				continue
			}
			v, err := strconv.ParseFloat(cell(row, col), 64)
			if err != nil {
				v = 0
			}
			t.Measures[m].Values = append(t.Measures[m].Values, v)
			m++
		}
	}

	t.normalize()
	return t
}

// cell returns row[i] trimmed, or "" when the row is short.
func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
