// Package table implements the tabular record set the pipeline phases pass
// between each other: an ordered sequence of rows keyed by column name, with
// schema-on-read columns and string/number/null cells.
package table

import "strings"

// Row maps column names to cell values. Absent columns read as null.
type Row map[string]Value

// Get returns the value for col, or null if the column is absent.
func (r Row) Get(col string) Value {
	return r[col]
}

// Table is an ordered collection of uniformly-keyed rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table declares the given column.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// AddColumn declares a new column if not already present.
func (t *Table) AddColumn(col string) {
	if !t.HasColumn(col) {
		t.Columns = append(t.Columns, col)
	}
}

// Append adds a row. Cells for undeclared columns are ignored by output.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Dedupe removes rows that are exact duplicates across all declared columns.
// The first occurrence survives and row order is otherwise preserved.
// Running it twice yields identical output.
func (t *Table) Dedupe() {
	seen := make(map[string]struct{}, len(t.Rows))
	out := t.Rows[:0]
	var b strings.Builder
	for _, r := range t.Rows {
		b.Reset()
		for _, c := range t.Columns {
			b.WriteString(r.Get(c).key())
			b.WriteByte(0x1f)
		}
		k := b.String()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	t.Rows = out
}

// DropMissing removes rows that have a null value in any of the given
// columns. Dropped rows are silently discarded, not errored.
func (t *Table) DropMissing(cols ...string) {
	out := t.Rows[:0]
rows:
	for _, r := range t.Rows {
		for _, c := range cols {
			if r.Get(c).IsNull() {
				continue rows
			}
		}
		out = append(out, r)
	}
	t.Rows = out
}

// Rename maps source column names to new names, in place.
func (t *Table) Rename(mapping map[string]string) {
	for i, c := range t.Columns {
		if to, ok := mapping[c]; ok {
			t.Columns[i] = to
		}
	}
	for _, r := range t.Rows {
		for from, to := range mapping {
			if v, ok := r[from]; ok {
				delete(r, from)
				r[to] = v
			}
		}
	}
}

// Select returns a new table restricted to the given columns, in that order.
// A column the source lacks contributes null for every row.
func (t *Table) Select(cols ...string) *Table {
	out := New(cols...)
	for _, r := range t.Rows {
		nr := make(Row, len(cols))
		for _, c := range cols {
			if v, ok := r[c]; ok {
				nr[c] = v
			}
		}
		out.Append(nr)
	}
	return out
}

// Apply replaces every value in col with fn(value). The column is declared
// if absent.
func (t *Table) Apply(col string, fn func(Value) Value) {
	t.AddColumn(col)
	for _, r := range t.Rows {
		r[col] = fn(r.Get(col))
	}
}

// SetConstant sets col to the same value on every row, declaring the column
// if needed.
func (t *Table) SetConstant(col string, v Value) {
	t.AddColumn(col)
	for _, r := range t.Rows {
		r[col] = v
	}
}

// Concat returns the row-wise union of the given tables. The output column
// set is the union of the input column sets in first-seen order; a source
// missing a column contributes null for that column. Rows are never dropped
// or reordered.
func Concat(tables ...*Table) *Table {
	out := New()
	for _, t := range tables {
		for _, c := range t.Columns {
			out.AddColumn(c)
		}
	}
	for _, t := range tables {
		for _, r := range t.Rows {
			nr := make(Row, len(out.Columns))
			for _, c := range t.Columns {
				if v, ok := r[c]; ok {
					nr[c] = v
				}
			}
			out.Append(nr)
		}
	}
	return out
}
