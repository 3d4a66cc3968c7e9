package summary

// DefaultHeaderSearchDepth bounds how many leading grid rows LocateHeader
// inspects when the caller does not configure a depth.
const DefaultHeaderSearchDepth = 5

// HeaderRow is the row LocateHeader selected to supply column labels,
// together with its zero-based index in the grid.
type HeaderRow struct {
	Index int
	Cells Row
}

// LocateHeader picks the row within the first depth rows that is most
// likely to be the header row.
//
// Rows where every cell is raw-empty are skipped outright. For each
// remaining candidate the requested labels are matched (normalized) against
// the row's header map, and the row with the strictly greatest match count
// wins; ties keep the earliest row. If no row matches any requested label,
// the first row with at least one non-empty cell is returned as a safety
// net. Real-world sheets often carry a title row, a blank row or metadata
// above the true header, so matching against what the caller actually asked
// for is more robust than "first non-empty row" alone.
//
// The second return value is false when the whole search window is blank.
func LocateHeader(grid Grid, requested []string, depth int) (HeaderRow, bool) {
	if depth <= 0 {
		depth = DefaultHeaderSearchDepth
	}
	limit := len(grid)
	if depth < limit {
		limit = depth
	}

	wanted := make([]string, 0, len(requested))
	for _, label := range requested {
		wanted = append(wanted, NormalizeLabel(label))
	}

	bestIdx := -1
	bestCount := 0

	for i := 0; i < limit; i++ {
		if rowEmpty(grid[i]) {
			continue
		}

		headers := headerMap(grid[i])

		count := 0
		for _, label := range wanted {
			if _, ok := headers[label]; ok {
				count++
			}
		}

		if count > bestCount {
			bestCount = count
			bestIdx = i
		}
	}

	if bestIdx >= 0 && bestCount > 0 {
		return HeaderRow{Index: bestIdx, Cells: grid[bestIdx]}, true
	}

	// Fallback: first non-empty row in the window.
	for i := 0; i < limit; i++ {
		if !rowEmpty(grid[i]) {
			return HeaderRow{Index: i, Cells: grid[i]}, true
		}
	}

	return HeaderRow{}, false
}
