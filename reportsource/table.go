package reportsource

import (
	"fmt"
)

// Table is one fully loaded report source: a header and its rows. A Table is
// never modified after construction.
type Table struct {
	name    string
	header  []string
	columns map[string]int // header name => column index
	rows    [][]string
}

// New builds a Table. name identifies the source in error messages, usually
// its location. Every row must have exactly as many cells as the header.
func New(name string, header []string, rows [][]string) (*Table, error) {
	t := &Table{
		name:    name,
		header:  append([]string(nil), header...),
		columns: make(map[string]int, len(header)),
		rows:    make([][]string, 0, len(rows)),
	}

	for col, field := range header {
		if _, exists := t.columns[field]; exists {
			return nil, fmt.Errorf("report source %s: field %q appears more than once in the header", name, field)
		}
		t.columns[field] = col
	}

	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("report source %s: row %d has %d fields but the header has %d", name, i+1, len(row), len(header))
		}
		t.rows = append(t.rows, append([]string(nil), row...))
	}

	return t, nil
}

func (t *Table) Name() string { return t.name }

func (t *Table) Len() int { return len(t.rows) }

// Header returns a copy of the column names, in file order.
func (t *Table) Header() []string {
	return append([]string(nil), t.header...)
}

func (t *Table) HasField(field string) bool {
	_, exists := t.columns[field]
	return exists
}

// Row returns the i'th data row (0-based, header excluded).
func (t *Table) Row(i int) Row {
	return Row{table: t, index: i}
}

// Column returns every value under field, in row order.
func (t *Table) Column(field string) ([]string, error) {
	col, exists := t.columns[field]
	if !exists {
		return nil, &MissingFieldError{Source: t.name, Field: field}
	}

	out := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row[col])
	}

	return out, nil
}

// CheckLayout verifies that every field the layout expects is present.
func (t *Table) CheckLayout(layout Layout) error {
	for _, field := range layout.Fields {
		if !t.HasField(field) {
			return &MissingFieldError{Source: t.name, Field: field}
		}
	}

	return nil
}

// Row is a view of one sample within one Table.
type Row struct {
	table *Table
	index int
}

// Source is the name of the Table this row belongs to.
func (r Row) Source() string {
	if r.table == nil {
		return ""
	}
	return r.table.name
}

// Field returns the value of the named field for this row.
func (r Row) Field(field string) (string, error) {
	if r.table == nil {
		return "", &MissingFieldError{Field: field}
	}

	col, exists := r.table.columns[field]
	if !exists {
		return "", &MissingFieldError{Source: r.table.name, Field: field}
	}

	return r.table.rows[r.index][col], nil
}

// Values returns a copy of the row as field name => value.
func (r Row) Values() map[string]string {
	out := make(map[string]string)
	if r.table == nil {
		return out
	}

	for field, col := range r.table.columns {
		out[field] = r.table.rows[r.index][col]
	}

	return out
}
