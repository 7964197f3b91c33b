// SPDX-License-Identifier: Apache-2.0

package records

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeTestWorkbook builds an elector-roll style workbook in a temp
// directory and returns its path.
func writeTestWorkbook(t *testing.T, opts LoadOptions, sourceRows, targetRows [][]interface{}) string {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()

	writeSheet := func(sheet string, rows [][]interface{}) {
		_, err := wb.NewSheet(sheet)
		require.NoError(t, err)
		header := []interface{}{"Serial No", opts.EnglishColumn, opts.VernacularColumn}
		require.NoError(t, wb.SetSheetRow(sheet, "A1", &header))
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			require.NoError(t, err)
			require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
		}
	}
	writeSheet(opts.SourceSheet, sourceRows)
	writeSheet(opts.TargetSheet, targetRows)

	path := filepath.Join(t.TempDir(), "electors.xlsx")
	require.NoError(t, wb.SaveAs(path))
	return path
}

func TestLoadWorkbook(t *testing.T) {
	opts := DefaultLoadOptions()
	path := writeTestWorkbook(t, opts,
		[][]interface{}{
			{1, "Ramesh Kumar", "రమేష్ కుమార్"},
			{2, "", ""}, // blank row, dropped
			{3, "John Doe", ""},
		},
		[][]interface{}{
			{1, "Kumar Ramesh", "కుమార్ రమేష్"},
		},
	)

	sources, targets, err := LoadWorkbook(path, opts)
	require.NoError(t, err)

	require.Len(t, sources, 2, "blank row should be dropped")
	assert.Equal(t, "Ramesh Kumar", sources[0].English)
	assert.Equal(t, "రమేష్ కుమార్", sources[0].Vernacular)
	assert.Equal(t, 0, sources[0].Index)

	// Indices are reassigned over the cleaned rows, so the row after the
	// dropped blank gets index 1.
	assert.Equal(t, "John Doe", sources[1].English)
	assert.Equal(t, 1, sources[1].Index)

	require.Len(t, targets, 1)
	assert.Equal(t, "Kumar Ramesh", targets[0].English)
}

func TestLoadWorkbook_ColumnOrderIndependent(t *testing.T) {
	opts := DefaultLoadOptions()

	wb := excelize.NewFile()
	defer wb.Close()
	for _, sheet := range []string{opts.SourceSheet, opts.TargetSheet} {
		_, err := wb.NewSheet(sheet)
		require.NoError(t, err)
		// Vernacular column before the English one.
		header := []interface{}{opts.VernacularColumn, "Serial No", opts.EnglishColumn}
		require.NoError(t, wb.SetSheetRow(sheet, "A1", &header))
		row := []interface{}{"రమేష్", 1, "Ramesh"}
		require.NoError(t, wb.SetSheetRow(sheet, "A2", &row))
	}
	path := filepath.Join(t.TempDir(), "reordered.xlsx")
	require.NoError(t, wb.SaveAs(path))

	sources, _, err := LoadWorkbook(path, opts)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "Ramesh", sources[0].English)
	assert.Equal(t, "రమేష్", sources[0].Vernacular)
}

func TestLoadWorkbook_MissingSheet(t *testing.T) {
	opts := DefaultLoadOptions()
	path := writeTestWorkbook(t, opts,
		[][]interface{}{{1, "Ramesh", ""}},
		[][]interface{}{{1, "Ramesh", ""}},
	)

	badOpts := opts
	badOpts.TargetSheet = "MISSING_LIST"
	_, _, err := LoadWorkbook(path, badOpts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MISSING_LIST")
}

func TestLoadWorkbook_MissingColumn(t *testing.T) {
	opts := DefaultLoadOptions()
	path := writeTestWorkbook(t, opts,
		[][]interface{}{{1, "Ramesh", ""}},
		[][]interface{}{{1, "Ramesh", ""}},
	)

	badOpts := opts
	badOpts.EnglishColumn = "Nonexistent Column"
	_, _, err := LoadWorkbook(path, badOpts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nonexistent Column")
}

func TestLoadWorkbook_FileNotFound(t *testing.T) {
	_, _, err := LoadWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultLoadOptions())
	require.Error(t, err)
}

func TestNameRecord_IsBlank(t *testing.T) {
	assert.True(t, NameRecord{}.IsBlank())
	assert.True(t, NameRecord{English: "   ", Vernacular: "\t"}.IsBlank())
	assert.False(t, NameRecord{English: "John"}.IsBlank())
	assert.False(t, NameRecord{Vernacular: "రమేష్"}.IsBlank())
}
