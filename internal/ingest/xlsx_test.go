package ingest

import (
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeWorkbook(t *testing.T, sheetName string, rows [][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	require.NoError(t, err)

	for _, cells := range rows {
		row := sheet.AddRow()
		for _, c := range cells {
			row.AddCell().Value = c
		}
	}

	path := filepath.Join(t.TempDir(), "d2c.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSXFile(t *testing.T) {
	path := writeWorkbook(t, "Campaigns", [][]string{
		{"Campaign", "Spend USD", "Installs"},
		{"summer", "100", "50"},
		{"winter", "", "10"},
	})

	tbl, err := ReadXLSXFile(path, XLSXOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Campaign", "Spend USD", "Installs"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "100", tbl.Rows[0].Get("Spend USD").Text())
	assert.True(t, tbl.Rows[1].Get("Spend USD").IsNull())
}

func TestReadXLSXFile_SheetByName(t *testing.T) {
	path := writeWorkbook(t, "Campaigns", [][]string{
		{"a"},
		{"1"},
	})

	tbl, err := ReadXLSXFile(path, XLSXOptions{SheetName: "Campaigns"})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	_, err = ReadXLSXFile(path, XLSXOptions{SheetName: "Nope"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrSourceMalformed))
}

func TestReadXLSXFile_SheetIndexOutOfRange(t *testing.T) {
	path := writeWorkbook(t, "Only", [][]string{{"a"}})

	_, err := ReadXLSXFile(path, XLSXOptions{SheetIndex: 3})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrSourceMalformed))
}

func TestReadXLSXFile_Missing(t *testing.T) {
	_, err := ReadXLSXFile(filepath.Join(t.TempDir(), "absent.xlsx"), XLSXOptions{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrSourceUnavailable))
}
