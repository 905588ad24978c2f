package frame

// Cell is one rendered table cell: either a label or a nullable number.
type Cell struct {
	Text    string
	Value   Value
	Numeric bool
}

// Label creates a text cell.
func Label(s string) Cell { return Cell{Text: s} }

// Number creates a numeric cell.
func Number(v Value) Cell { return Cell{Value: v, Numeric: true} }

// Tabular is anything the presenters can print or export row by row.
type Tabular interface {
	Header() []string
	Len() int
	Row(i int) []Cell
}

// Header returns the index name followed by the column names.
func (t *Table) Header() []string {
	return append([]string{t.IndexName}, t.columns...)
}

// Row returns the formatted key followed by the row's values.
func (t *Table) Row(i int) []Cell {
	row := make([]Cell, 0, len(t.columns)+1)
	row = append(row, Label(t.Granularity.Format(t.index[i])))
	for _, c := range t.columns {
		row = append(row, Number(t.data[c][i]))
	}
	return row
}
