package ingest

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/kasparro/market-intel-cli/internal/table"
)

// XLSXOptions configures the spreadsheet adapter.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSXFile parses one sheet of an XLSX workbook into a table. The first
// row is the header; empty cells become null.
func ReadXLSXFile(path string, opts XLSXOptions) (*table.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, eris.Wrapf(ErrSourceUnavailable, "%s: %v", path, err)
	}

	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(ErrSourceMalformed, "%s: %v", path, err)
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	t := table.New()
	for i, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}

		if i == 0 {
			for _, c := range cells {
				t.AddColumn(c)
			}
			continue
		}

		r := make(table.Row, len(t.Columns))
		for j, c := range t.Columns {
			if j >= len(cells) || cells[j] == "" {
				continue
			}
			r[c] = table.String(cells[j])
		}
		t.Append(r)
	}

	return t, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Wrapf(ErrSourceMalformed, "xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Wrapf(ErrSourceMalformed, "xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}
