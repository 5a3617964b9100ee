package fetcher

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions selects the worksheet to read.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads a worksheet from an XLSX file on disk.
func ReadXLSX(path string, opts XLSXOptions) (Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return Table{}, eris.Wrap(err, "xlsx: open file")
	}
	return readWorkbook(f, opts)
}

// ReadXLSXBytes reads a worksheet from an in-memory XLSX workbook, as
// returned by a download.
func ReadXLSXBytes(data []byte, opts XLSXOptions) (Table, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return Table{}, eris.Wrap(err, "xlsx: open binary")
	}
	return readWorkbook(f, opts)
}

func readWorkbook(f *xlsx.File, opts XLSXOptions) (Table, error) {
	sheet, err := getSheet(f, opts)
	if err != nil {
		return Table{}, err
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		rows = append(rows, rowToStrings(row))
	}
	return tableFromRows(rows), nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
