package frame

import (
	"fmt"
	"slices"
	"time"
)

// Table is a time-indexed set of named, nullable columns. Tables are
// treated as immutable: every transforming method returns a new Table.
type Table struct {
	Granularity Granularity
	IndexName   string

	index   []time.Time
	columns []string
	data    map[string][]Value
}

// NewTable creates an empty-columned table over index.
func NewTable(g Granularity, indexName string, index []time.Time) *Table {
	return &Table{
		Granularity: g,
		IndexName:   indexName,
		index:       slices.Clone(index),
		data:        make(map[string][]Value),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.index) }

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return len(t.index) == 0 }

// Index returns a copy of the time index.
func (t *Table) Index() []time.Time { return slices.Clone(t.index) }

// Key returns the index key of row i.
func (t *Table) Key(i int) time.Time { return t.index[i] }

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string { return slices.Clone(t.columns) }

// HasColumn reports whether name is a column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.data[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]Value, error) {
	col, ok := t.data[name]
	if !ok {
		return nil, fmt.Errorf("frame: no column %q", name)
	}
	return slices.Clone(col), nil
}

// MustColumn is Column for names the caller has just set.
func (t *Table) MustColumn(name string) []Value {
	col, err := t.Column(name)
	if err != nil {
		panic(err)
	}
	return col
}

// Set adds or replaces a column. vals must have one entry per row.
func (t *Table) Set(name string, vals []Value) error {
	if len(vals) != len(t.index) {
		return fmt.Errorf("frame: column %q has %d values for %d rows", name, len(vals), len(t.index))
	}
	if _, ok := t.data[name]; !ok {
		t.columns = append(t.columns, name)
	}
	t.data[name] = slices.Clone(vals)
	return nil
}

// Value returns the cell at row i of column name.
func (t *Table) Value(i int, name string) Value {
	col, ok := t.data[name]
	if !ok || i < 0 || i >= len(col) {
		return Missing
	}
	return col[i]
}

// rows builds a new table holding only the given row positions.
func (t *Table) rows(keep []int) *Table {
	out := &Table{
		Granularity: t.Granularity,
		IndexName:   t.IndexName,
		index:       make([]time.Time, 0, len(keep)),
		columns:     slices.Clone(t.columns),
		data:        make(map[string][]Value, len(t.columns)),
	}
	for _, i := range keep {
		out.index = append(out.index, t.index[i])
	}
	for _, name := range t.columns {
		src := t.data[name]
		col := make([]Value, 0, len(keep))
		for _, i := range keep {
			col = append(col, src[i])
		}
		out.data[name] = col
	}
	return out
}

// DropMissing returns the rows that have a value in every one of cols.
// With no cols, every column is required.
func (t *Table) DropMissing(cols ...string) *Table {
	if len(cols) == 0 {
		cols = t.columns
	}
	keep := make([]int, 0, len(t.index))
rows:
	for i := range t.index {
		for _, c := range cols {
			if !t.Value(i, c).Valid {
				continue rows
			}
		}
		keep = append(keep, i)
	}
	return t.rows(keep)
}

// Between returns the rows whose key lies in [from, to]. A zero bound is
// open. A reversed range yields an empty table.
func (t *Table) Between(from, to time.Time) *Table {
	keep := make([]int, 0, len(t.index))
	for i, k := range t.index {
		if !from.IsZero() && k.Before(from) {
			continue
		}
		if !to.IsZero() && k.After(to) {
			continue
		}
		keep = append(keep, i)
	}
	return t.rows(keep)
}

// Select returns a table with only the named columns, in that order.
func (t *Table) Select(cols ...string) (*Table, error) {
	out := NewTable(t.Granularity, t.IndexName, t.index)
	for _, c := range cols {
		col, err := t.Column(c)
		if err != nil {
			return nil, err
		}
		if err := out.Set(c, col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Rename returns a copy with columns renamed per names. Unlisted columns keep
// their name.
func (t *Table) Rename(names map[string]string) *Table {
	out := NewTable(t.Granularity, t.IndexName, t.index)
	for _, c := range t.columns {
		to := c
		if n, ok := names[c]; ok {
			to = n
		}
		out.columns = append(out.columns, to)
		out.data[to] = slices.Clone(t.data[c])
	}
	return out
}

// Reversed returns the rows newest first.
func (t *Table) Reversed() *Table {
	keep := make([]int, len(t.index))
	for i := range keep {
		keep[i] = len(t.index) - 1 - i
	}
	return t.rows(keep)
}
