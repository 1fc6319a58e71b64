package gviz

import "strings"

// Row maps a column label to its cell.
type Row map[string]Value

// Get returns the cell under label. An exact match wins; otherwise labels
// are compared trimmed and case-insensitively. Missing labels are blank.
func (r Row) Get(label string) Value {
	if v, ok := r[label]; ok {
		return v
	}
	want := strings.ToLower(strings.TrimSpace(label))
	for k, v := range r {
		if strings.ToLower(strings.TrimSpace(k)) == want {
			return v
		}
	}
	return Blank
}

// Has reports whether the row carries a column for label.
func (r Row) Has(label string) bool {
	if _, ok := r[label]; ok {
		return true
	}
	want := strings.ToLower(strings.TrimSpace(label))
	for k := range r {
		if strings.ToLower(strings.TrimSpace(k)) == want {
			return true
		}
	}
	return false
}

// Table is a column-labeled, row-oriented sheet. Labels keeps the column
// order, including blank labels, so positional readers can still use it.
type Table struct {
	Labels []string
	Rows   []Row
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Cell returns the cell at the given column index of row i.
func (t *Table) Cell(i, col int) Value {
	if t == nil || i < 0 || i >= len(t.Rows) || col < 0 || col >= len(t.Labels) {
		return Blank
	}
	label := t.Labels[col]
	if strings.TrimSpace(label) == "" {
		return Blank
	}
	return t.Rows[i][label]
}

// FromMatrix builds a Table from a label row and positional cells. Columns
// with a blank label are skipped per cell, short rows are padded with blanks
// and fully blank rows are dropped.
func FromMatrix(labels []string, cells [][]Value) *Table {
	t := &Table{Labels: append([]string(nil), labels...), Rows: make([]Row, 0, len(cells))}
	for _, line := range cells {
		row := make(Row, len(labels))
		empty := true
		for idx, label := range labels {
			if strings.TrimSpace(label) == "" {
				continue
			}
			v := Blank
			if idx < len(line) {
				v = line[idx]
			}
			if !v.IsBlank() {
				empty = false
			}
			row[label] = v
		}
		if empty {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
