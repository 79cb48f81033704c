package table

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cascadevis/cascade/pkg/errors"
)

// FromXLSX reads a table from an XLSX workbook. The first sheet is used and
// must follow the same column convention as CSV input.
func FromXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to open XLSX workbook")
	}
	defer f.Close()
	return fromWorkbook(f)
}

// FromXLSXFile reads a table from an XLSX file on disk.
func FromXLSXFile(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to open XLSX file: %s", path)
	}
	defer f.Close()
	return fromWorkbook(f)
}

func fromWorkbook(f *excelize.File) (*Table, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to read sheet %s", sheets[0])
	}
	return fromGrid(rows), nil
}
