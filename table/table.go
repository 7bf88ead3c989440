// Package table holds the loosely-typed tabular record sets the engine
// filters. Rows arrive from dozens of backends (JSON APIs, scraped HTML
// tables, play-by-play feeds) with inconsistent column names and cell types,
// so the representation is a column list plus string-keyed rows, with
// best-effort cell coercions and a precomputed case-insensitive column
// index for predicate resolution.
package table

import "sort"

// Row is a single record. Cell values keep whatever type the source
// produced; use the As* coercions when a specific type is needed.
type Row map[string]any

// Table is an ordered record set with a declared column list.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// FromRows builds a table from rows, inferring the column list as the union
// of row keys. Keys within each row are visited in sorted order so the
// inferred column order is deterministic.
func FromRows(rows []Row) *Table {
	t := &Table{Rows: rows}
	seen := make(map[string]bool)
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				t.Columns = append(t.Columns, k)
			}
		}
	}
	return t
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Append adds rows to the table. Columns are not re-inferred.
func (t *Table) Append(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Select returns a new table containing the rows for which keep returns
// true. Row maps are shared with the receiver, never copied; the column
// list is shared too.
func (t *Table) Select(keep func(Row) bool) *Table {
	out := &Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// ColumnIndex resolves logical column names against a table's actual
// columns: an exact match first, then a case-insensitive one. Build it once
// per table and reuse it across predicates.
type ColumnIndex struct {
	exact map[string]struct{}
	lower map[string]string
}

// Index builds the column index for the table.
func (t *Table) Index() *ColumnIndex {
	idx := &ColumnIndex{
		exact: make(map[string]struct{}, len(t.Columns)),
		lower: make(map[string]string, len(t.Columns)),
	}
	for _, col := range t.Columns {
		idx.exact[col] = struct{}{}
		key := lowerASCII(col)
		// First column wins on case collisions.
		if _, ok := idx.lower[key]; !ok {
			idx.lower[key] = col
		}
	}
	return idx
}

// Resolve returns the actual column name for a logical name, trying an
// exact match before a case-insensitive one.
func (idx *ColumnIndex) Resolve(name string) (string, bool) {
	if _, ok := idx.exact[name]; ok {
		return name, true
	}
	actual, ok := idx.lower[lowerASCII(name)]
	return actual, ok
}

// lowerASCII lower-cases ASCII letters without allocating for
// already-lowered strings. Column names are ASCII in practice.
func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
