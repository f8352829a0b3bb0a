// Package ingest reads CSV, XLSX, and JSON sources into tables. Adapters
// reflect the file verbatim; missing or mistyped columns are the
// normalizer's problem, not an ingest error.
package ingest

import (
	"os"

	"github.com/rotisserie/eris"
)

// ErrSourceUnavailable indicates the input path does not exist or cannot
// be opened.
var ErrSourceUnavailable = eris.New("source unavailable")

// ErrSourceMalformed indicates the input exists but cannot be parsed as
// the declared format.
var ErrSourceMalformed = eris.New("source malformed")

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(ErrSourceUnavailable, "%s: %v", path, err)
	}
	return f, nil
}
