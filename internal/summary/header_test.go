package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateHeader(t *testing.T) {
	tests := []struct {
		name      string
		grid      Grid
		requested []string
		depth     int
		wantIdx   int
		wantOK    bool
	}{
		{
			name: "best matching row wins over partial matches",
			grid: Grid{
				{"Quarterly Report"},
				{"Name", "Notes"},
				{"Name", "CURRENT USD", "CURRENT CAD"},
				{"A", "100", "50"},
				{"CURRENT USD"},
			},
			requested: []string{"CURRENT USD", "CURRENT CAD"},
			wantIdx:   2,
			wantOK:    true,
		},
		{
			name: "tie keeps the earliest row",
			grid: Grid{
				{"title"},
				{"CURRENT USD", "x"},
				{"data", "1"},
				{"CURRENT USD", "y"},
			},
			requested: []string{"CURRENT USD", "CURRENT CAD"},
			wantIdx:   1,
			wantOK:    true,
		},
		{
			name: "completely empty rows are skipped",
			grid: Grid{
				{nil, ""},
				{},
				{"Name", "CURRENT USD"},
			},
			requested: []string{"current usd"},
			wantIdx:   2,
			wantOK:    true,
		},
		{
			name: "fallback to first non-empty row when nothing matches",
			grid: Grid{
				{"some", "metadata"},
				{"1", "2", "3"},
			},
			requested: []string{"CURRENT USD"},
			wantIdx:   0,
			wantOK:    true,
		},
		{
			name: "fallback also applies with no requested columns",
			grid: Grid{
				{nil, nil},
				{"Name", "Value"},
			},
			requested: nil,
			wantIdx:   1,
			wantOK:    true,
		},
		{
			name: "whitespace-only cells keep a row alive for the fallback",
			grid: Grid{
				{"   "},
				{"Name", "Value"},
			},
			requested: []string{"missing"},
			wantIdx:   0,
			wantOK:    true,
		},
		{
			name: "blank search window reports not found",
			grid: Grid{
				{nil, ""},
				{"", "", ""},
			},
			requested: []string{"CURRENT USD"},
			wantOK:    false,
		},
		{
			name:      "empty grid reports not found",
			grid:      Grid{},
			requested: []string{"CURRENT USD"},
			wantOK:    false,
		},
		{
			name: "rows beyond the search depth are ignored",
			grid: Grid{
				{"junk"},
				{"junk"},
				{"junk"},
				{"junk"},
				{"junk"},
				{"Name", "CURRENT USD"},
			},
			requested: []string{"CURRENT USD"},
			wantIdx:   0, // fallback, header row sits below the window
			wantOK:    true,
		},
		{
			name: "matching is case and whitespace insensitive",
			grid: Grid{
				{"  Current USD  ", "CURRENT cad"},
			},
			requested: []string{"current usd", "CURRENT CAD"},
			wantIdx:   0,
			wantOK:    true,
		},
		{
			name: "numeric header cells participate in matching",
			grid: Grid{
				{2024, "total"},
			},
			requested: []string{"2024"},
			wantIdx:   0,
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, ok := LocateHeader(tt.grid, tt.requested, tt.depth)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIdx, header.Index)
				assert.Equal(t, tt.grid[tt.wantIdx], header.Cells)
			}
		})
	}
}

func TestHeaderMapDuplicateKeepsLaterColumn(t *testing.T) {
	m := headerMap(Row{"Amount", "  amount ", "Other"})
	assert.Equal(t, map[string]int{"amount": 1, "other": 2}, m)
}

func TestRowEmptyDistinguishesWhitespaceFromEmpty(t *testing.T) {
	assert.True(t, rowEmpty(Row{nil, ""}))
	assert.False(t, rowEmpty(Row{nil, "  "}), "whitespace-only strings are non-empty cells")
}
