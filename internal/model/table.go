package model

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/gyeh/healthdata/internal/normalize"
)

// missingTokens are cell spellings treated as "no value" when a table is read.
// NA and None are deliberately absent: they are insurance variants.
var missingTokens = map[string]bool{
	"":     true,
	"nan":  true,
	"NaN":  true,
	"NULL": true,
	"null": true,
	"N/A":  true,
	"n/a":  true,
	"<NA>": true,
	"#N/A": true,
}

// IsMissing reports whether a raw cell value denotes a missing value.
func IsMissing(s string) bool {
	return missingTokens[strings.TrimSpace(s)]
}

// Table is an in-memory tabular dataset. Cells are strings; a missing value
// is always the empty string once the table has been built by a reader.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable creates an empty table with the given header.
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// AppendRow adds a row, normalizing missing tokens to "". The row length
// must match the header.
func (t *Table) AppendRow(cells []string) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, header has %d columns", len(cells), len(t.Columns))
	}
	row := make([]string, len(cells))
	for i, c := range cells {
		if IsMissing(c) {
			continue
		}
		row[i] = c
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of a column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the table contains the named column.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Values returns a copy of one column's cells, or nil if absent.
func (t *Table) Values(name string) []string {
	idx := t.Index(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := NewTable(t.Columns)
	c.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]string, len(row))
		copy(r, row)
		c.Rows[i] = r
	}
	return c
}

// ReplaceColumn swaps the named column for the given columns, in place.
// values[i] holds the cells of newCols[i], one per row.
func (t *Table) ReplaceColumn(name string, newCols []string, values [][]string) error {
	idx := t.Index(name)
	if idx < 0 {
		return fmt.Errorf("column %q not found", name)
	}
	if len(newCols) != len(values) {
		return fmt.Errorf("replace %q: %d names for %d value columns", name, len(newCols), len(values))
	}
	for _, v := range values {
		if len(v) != len(t.Rows) {
			return fmt.Errorf("replace %q: value column has %d cells, table has %d rows", name, len(v), len(t.Rows))
		}
	}

	cols := make([]string, 0, len(t.Columns)-1+len(newCols))
	cols = append(cols, t.Columns[:idx]...)
	cols = append(cols, newCols...)
	cols = append(cols, t.Columns[idx+1:]...)

	for r, row := range t.Rows {
		nr := make([]string, 0, len(cols))
		nr = append(nr, row[:idx]...)
		for _, v := range values {
			nr = append(nr, v[r])
		}
		nr = append(nr, row[idx+1:]...)
		t.Rows[r] = nr
	}
	t.Columns = cols
	return nil
}

// DropColumn removes the named column. Dropping an absent column is a no-op.
func (t *Table) DropColumn(name string) {
	idx := t.Index(name)
	if idx < 0 {
		return
	}
	t.Columns = append(t.Columns[:idx:idx], t.Columns[idx+1:]...)
	for r, row := range t.Rows {
		t.Rows[r] = append(row[:idx:idx], row[idx+1:]...)
	}
}

// DuplicateRows returns the indexes of rows that exactly repeat an earlier row.
func (t *Table) DuplicateRows() []int {
	var dups []int
	seen := make(map[[sha256.Size]byte]struct{}, len(t.Rows))
	for i, row := range t.Rows {
		h := normalize.RowHash(row)
		if _, ok := seen[h]; ok {
			dups = append(dups, i)
			continue
		}
		seen[h] = struct{}{}
	}
	return dups
}

// DropDuplicates removes exact duplicate rows, keeping the first occurrence,
// and returns how many were removed.
func (t *Table) DropDuplicates() int {
	dups := t.DuplicateRows()
	if len(dups) == 0 {
		return 0
	}
	kept := make([][]string, 0, len(t.Rows)-len(dups))
	next := 0
	for i, row := range t.Rows {
		if next < len(dups) && dups[next] == i {
			next++
			continue
		}
		kept = append(kept, row)
	}
	t.Rows = kept
	return len(dups)
}

// MissingCount returns the number of empty cells per column, in column order.
func (t *Table) MissingCount() []int {
	counts := make([]int, len(t.Columns))
	for _, row := range t.Rows {
		for i, c := range row {
			if c == "" {
				counts[i]++
			}
		}
	}
	return counts
}
