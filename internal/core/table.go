package core

import (
	"strconv"
	"strings"
)

// Required schema and rule constants. The rule set is fixed: columns and
// bounds are not configurable per deployment.
const (
	ColumnID    = "id"
	ColumnEmail = "email"
	ColumnAge   = "age"

	// ColumnFile marks errors that apply to the file as a whole rather
	// than to any single row.
	ColumnFile = "_file"

	// MinDataRows is the minimum number of data rows required before
	// row-level checks run.
	MinDataRows = 11

	MinAge = 18
	MaxAge = 100
)

// RequiredColumns lists the columns every upload must provide, in the order
// schema errors are reported.
var RequiredColumns = []string{ColumnID, ColumnEmail, ColumnAge}

// Row maps column names to raw cell values. Cells missing from a short CSV
// record are absent from the map entirely.
type Row map[string]string

// Table is a parsed CSV file: the header's column names in file order plus
// every data row. Row indices are 0-based over the header row, so the header
// itself occupies index 0 and the first data row occupies index 1. That
// numbering is part of the report contract.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the header contains the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Cell returns the raw value of a column in the given data row (0-based over
// t.Rows). ok is false when the cell is missing.
func (t *Table) Cell(row int, col string) (string, bool) {
	if row < 0 || row >= len(t.Rows) {
		return "", false
	}
	v, ok := t.Rows[row][col]
	return v, ok
}

// RowID returns the row's id cell parsed as an integer, or nil when the cell
// is absent, blank, or not a clean base-10 integer. Errors for a row with an
// unusable id carry a null id rather than a guessed coercion.
func (t *Table) RowID(row int) *int64 {
	raw, ok := t.Cell(row, ColumnID)
	if !ok {
		return nil
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
