package table

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// ErrWriteTarget indicates the output directory or file could not be
// created or opened for writing.
var ErrWriteTarget = eris.New("write target unavailable")

// ReadCSV parses a CSV stream with a header row into a table. Every cell is
// read as a string; empty cells become null. No schema validation happens
// here — the per-source normalizer owns that.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return New(), nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}

	t := New(header...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}

		row := make(Row, len(header))
		for i, c := range header {
			if i >= len(record) || record[i] == "" {
				continue
			}
			row[c] = String(record[i])
		}
		t.Append(row)
	}

	return t, nil
}

// WriteCSV writes the table with a header row. Null cells render as empty
// fields.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return eris.Wrap(err, "csv: write header")
	}

	record := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, c := range t.Columns {
			record[i] = r.Get(c).Text()
		}
		if err := writer.Write(record); err != nil {
			return eris.Wrap(err, "csv: write row")
		}
	}

	writer.Flush()
	return eris.Wrap(writer.Error(), "csv: flush")
}

// WriteCSVFile persists the table to path, creating parent directories as
// needed and overwriting any existing file.
func (t *Table) WriteCSVFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(ErrWriteTarget, "mkdir %s: %v", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(ErrWriteTarget, "create %s: %v", path, err)
	}
	defer f.Close() //nolint:errcheck

	if err := t.WriteCSV(f); err != nil {
		return err
	}

	return eris.Wrapf(f.Sync(), "csv: sync %s", path)
}
