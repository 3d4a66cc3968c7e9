package summary

// Cell is a single spreadsheet cell value: nil for an absent cell, a
// float64 or integer for an already-typed number, or a string.
type Cell = any

// Row is one row of cells. Rows are not required to be rectangular; a data
// row may carry fewer cells than the header row.
type Row []Cell

// Grid is the in-memory decoded spreadsheet the core operates on. The grid
// is owned by the caller and only ever read here.
type Grid []Row

// cellEmpty reports whether a cell is raw-empty (nil or the empty string).
// A whitespace-only string is not raw-empty even though it normalizes to a
// blank label; the empty-row skip and the header map rely on that
// distinction being kept separate.
func cellEmpty(c Cell) bool {
	if c == nil {
		return true
	}
	s, ok := c.(string)
	return ok && s == ""
}

// rowEmpty reports whether every cell in the row is raw-empty.
func rowEmpty(r Row) bool {
	for _, c := range r {
		if !cellEmpty(c) {
			return false
		}
	}
	return true
}

// headerMap maps normalized header labels to zero-based column indexes.
// Cells that are blank after normalization are dropped, and a duplicated
// normalized label keeps the later column index.
func headerMap(r Row) map[string]int {
	m := make(map[string]int, len(r))
	for i, c := range r {
		if key := NormalizeLabel(c); key != "" {
			m[key] = i
		}
	}
	return m
}
