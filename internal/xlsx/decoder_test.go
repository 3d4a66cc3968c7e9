package xlsx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "sheetsum/internal/errors"
	"sheetsum/internal/summary"
)

// buildWorkbook writes a small workbook to a buffer so Decode can be tested
// without fixture files.
func buildWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "CURRENT USD"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "A"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 100))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "B"))
	// Row 3 deliberately has no value under CURRENT USD.

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestDecode(t *testing.T) {
	grid, err := Decode(buildWorkbook(t), "")
	require.NoError(t, err)

	require.Len(t, grid, 3)
	assert.Equal(t, summary.Row{"Name", "CURRENT USD"}, grid[0])
	assert.Equal(t, summary.Row{"A", "100"}, grid[1])
	assert.Equal(t, summary.Row{"B"}, grid[2], "trailing blank cells stay absent")
}

func TestDecodeExplicitSheet(t *testing.T) {
	grid, err := Decode(buildWorkbook(t), "Sheet1")
	require.NoError(t, err)
	assert.Len(t, grid, 3)
}

func TestDecodeMissingSheet(t *testing.T) {
	_, err := Decode(buildWorkbook(t), "NoSuchSheet")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
	assert.Equal(t, "NoSuchSheet", appErr.Context["sheet"])
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("this is not a workbook"), "")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
}

func TestDecodeFeedsSummarizer(t *testing.T) {
	grid, err := Decode(buildWorkbook(t), "")
	require.NoError(t, err)

	header, ok := summary.LocateHeader(grid, []string{"CURRENT USD"}, 0)
	require.True(t, ok)
	assert.Equal(t, 0, header.Index)
}
