package ingest

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/kasparro/market-intel-cli/internal/table"
)

// ReadJSONFile parses a JSON array of flat objects into a table. Columns
// appear in document order, first seen wins. Nested objects or arrays make
// the source malformed — the review capture is flat by contract.
func ReadJSONFile(path string) (*table.Table, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	t, err := readJSONArray(f)
	if err != nil {
		return nil, eris.Wrapf(ErrSourceMalformed, "%s: %v", path, err)
	}
	return t, nil
}

func readJSONArray(r io.Reader) (*table.Table, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	if err := expectDelim(decoder, '['); err != nil {
		return nil, err
	}

	t := table.New()
	for decoder.More() {
		row, err := readFlatObject(decoder, t)
		if err != nil {
			return nil, err
		}
		t.Append(row)
	}

	if _, err := decoder.Token(); err != nil && err != io.EOF {
		return nil, eris.Wrap(err, "json: read closing token")
	}

	return t, nil
}

// readFlatObject consumes one object from the stream, declaring columns on
// t in the order keys appear.
func readFlatObject(decoder *json.Decoder, t *table.Table) (table.Row, error) {
	if err := expectDelim(decoder, '{'); err != nil {
		return nil, err
	}

	row := make(table.Row)
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return nil, eris.Wrap(err, "json: read key")
		}
		key, ok := tok.(string)
		if !ok {
			return nil, eris.Errorf("json: expected object key, got %v", tok)
		}

		var raw any
		if err := decoder.Decode(&raw); err != nil {
			return nil, eris.Wrapf(err, "json: decode field %q", key)
		}

		v, err := scalarValue(raw)
		if err != nil {
			return nil, eris.Wrapf(err, "json: field %q", key)
		}

		t.AddColumn(key)
		if !v.IsNull() {
			row[key] = v
		}
	}

	if _, err := decoder.Token(); err != nil { // closing '}'
		return nil, eris.Wrap(err, "json: read object end")
	}

	return row, nil
}

func expectDelim(decoder *json.Decoder, want json.Delim) error {
	tok, err := decoder.Token()
	if err != nil {
		return eris.Wrapf(err, "json: read %q", want)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return eris.Errorf("json: expected %q, got %v", want, tok)
	}
	return nil
}

func scalarValue(raw any) (table.Value, error) {
	switch v := raw.(type) {
	case nil:
		return table.Null(), nil
	case string:
		return table.String(v), nil
	case json.Number:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return table.Null(), eris.Wrap(err, "parse number")
		}
		return table.Number(f), nil
	case bool:
		return table.String(strconv.FormatBool(v)), nil
	default:
		return table.Null(), eris.New("nested value in flat object")
	}
}
