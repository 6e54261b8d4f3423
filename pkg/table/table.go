// Package table provides the in-memory table every pipeline stage works on.
//
// A Table is an ordered sequence of rows with named, typed columns. A cell
// holds nil when its raw value failed validation (the canonical null) or was
// absent in the source. Tables are plain data: they encode cleanly with gob
// and are never mutated after a stage publishes them.
package table

import (
	"fmt"
	"strings"
	"time"
)

// Type describes the expected cleaned type of a column.
type Type int

const (
	String Type = iota
	Int
	Float
	Bool
	Date
)

// Column is a named, typed column definition.
type Column struct {
	Name string
	Type Type
}

// Table is an ordered collection of rows keyed by column position.
// Cell values are one of string, int64, float64, bool, time.Time or nil.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// New creates an empty table with the given name and columns.
func New(name string, cols ...Column) *Table {
	return &Table{Name: name, Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Col returns the index of the named column, or -1 if it does not exist.
func (t *Table) Col(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Append adds one row. The row must have one value per column.
func (t *Table) Append(row []any) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf(
			"table %s: row has %d values, want %d",
			t.Name, len(row), len(t.Columns),
		)
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Value returns the cell at row i in the named column.
// Returns nil for unknown columns.
func (t *Table) Value(i int, name string) any {
	idx := t.Col(name)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return nil
	}
	return t.Rows[i][idx]
}

// Set replaces the cell at row i in the named column.
func (t *Table) Set(i int, name string, v any) {
	idx := t.Col(name)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return
	}
	t.Rows[i][idx] = v
}

// Project returns a new table with only the named columns, in the given
// order. Unknown column names are an error.
func (t *Table) Project(name string, cols ...string) (*Table, error) {
	idxs := make([]int, len(cols))
	columns := make([]Column, len(cols))
	for i, c := range cols {
		idx := t.Col(c)
		if idx < 0 {
			return nil, fmt.Errorf("table %s: no column %q", t.Name, c)
		}
		idxs[i] = idx
		columns[i] = t.Columns[idx]
	}
	res := &Table{Name: name, Columns: columns}
	for _, row := range t.Rows {
		newRow := make([]any, len(idxs))
		for i, idx := range idxs {
			newRow[i] = row[idx]
		}
		res.Rows = append(res.Rows, newRow)
	}
	return res, nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	res := &Table{Name: t.Name}
	res.Columns = append(res.Columns, t.Columns...)
	res.Rows = make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		res.Rows[i] = append([]any{}, row...)
	}
	return res
}

// DropDuplicates returns a new table without exact-duplicate rows.
// The first occurrence wins; row order is otherwise preserved.
func (t *Table) DropDuplicates() *Table {
	res := &Table{Name: t.Name}
	res.Columns = append(res.Columns, t.Columns...)
	seen := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		key := rowKey(row)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		res.Rows = append(res.Rows, row)
	}
	return res
}

func rowKey(row []any) string {
	var b strings.Builder
	for _, v := range row {
		if v == nil {
			b.WriteString("\x00|")
			continue
		}
		fmt.Fprintf(&b, "%v\x1f%T|", v, v)
	}
	return b.String()
}

// AsString reports the value as a string if it holds one.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsFloat reports the value as float64 if it holds a numeric type.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// AsInt reports the value as int64 if it holds an integral type.
func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}

// AsBool reports the value as bool if it holds one.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// AsTime reports the value as time.Time if it holds one.
func AsTime(v any) (time.Time, bool) {
	ts, ok := v.(time.Time)
	return ts, ok
}
