package ingest

import (
	"github.com/rotisserie/eris"

	"github.com/kasparro/market-intel-cli/internal/table"
)

// ReadCSVFile parses a header-led CSV file into a table.
func ReadCSVFile(path string) (*table.Table, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	t, err := table.ReadCSV(f)
	if err != nil {
		return nil, eris.Wrapf(ErrSourceMalformed, "%s: %v", path, err)
	}
	return t, nil
}
