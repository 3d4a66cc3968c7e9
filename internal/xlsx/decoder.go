// Package xlsx decodes .xlsx workbooks into the in-memory grids the
// summarization core operates on.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	apperrors "sheetsum/internal/errors"
	"sheetsum/internal/summary"
)

// Decode reads an .xlsx workbook from r and returns the named sheet as a
// grid. An empty sheet name selects the first sheet in the workbook.
// Cells arrive as the formatted string values excelize reports; blank
// trailing cells are absent, so rows may be ragged.
func Decode(r io.Reader, sheet string) (summary.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewParsingError("unable to decode workbook", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError("workbook has no sheets", nil)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("unable to read sheet %q", sheet), err).
			WithContext("sheet", sheet)
	}

	grid := make(summary.Grid, len(rows))
	for i, row := range rows {
		cells := make(summary.Row, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		grid[i] = cells
	}
	return grid, nil
}
