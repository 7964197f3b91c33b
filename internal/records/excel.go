// SPDX-License-Identifier: Apache-2.0

package records

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadOptions names the workbook sheets and columns that hold the two
// record sets being compared.
type LoadOptions struct {
	SourceSheet      string
	TargetSheet      string
	EnglishColumn    string
	VernacularColumn string
}

// DefaultLoadOptions returns the sheet and column names used by the
// standard elector list workbooks.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		SourceSheet:      "2025_LIST",
		TargetSheet:      "2002_LIST",
		EnglishColumn:    "Elector's Name",
		VernacularColumn: "Elector's Name(Vernacular)",
	}
}

// LoadWorkbook reads the source and target record sets from a single Excel
// workbook. Rows where both name columns are blank are dropped, and indices
// are assigned zero-based over the remaining rows, so Index is stable for
// the lifetime of a comparison run.
func LoadWorkbook(path string, opts LoadOptions) (sources, targets []NameRecord, err error) {
	cleanPath := filepath.Clean(path)
	f, err := excelize.OpenFile(cleanPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening workbook %s: %w", cleanPath, err)
	}
	defer f.Close()

	sources, err = loadSheet(f, opts.SourceSheet, opts)
	if err != nil {
		return nil, nil, err
	}
	targets, err = loadSheet(f, opts.TargetSheet, opts)
	if err != nil {
		return nil, nil, err
	}
	return sources, targets, nil
}

// loadSheet extracts name records from one sheet. The first row is the
// header row; the two name columns are located by exact (trimmed) header
// match, mirroring the layout of the exported elector rolls.
func loadSheet(f *excelize.File, sheet string, opts LoadOptions) ([]NameRecord, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q not found in workbook: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	engCol, vernCol := -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case opts.EnglishColumn:
			engCol = i
		case opts.VernacularColumn:
			vernCol = i
		}
	}
	if engCol < 0 {
		return nil, fmt.Errorf("column %q not found in sheet %q", opts.EnglishColumn, sheet)
	}
	if vernCol < 0 {
		return nil, fmt.Errorf("column %q not found in sheet %q", opts.VernacularColumn, sheet)
	}

	var out []NameRecord
	for _, row := range rows[1:] {
		rec := NameRecord{
			English:    cellAt(row, engCol),
			Vernacular: cellAt(row, vernCol),
		}
		if rec.IsBlank() {
			continue
		}
		rec.Index = len(out)
		out = append(out, rec)
	}
	return out, nil
}

// cellAt returns the cell value at column i, tolerating the short rows
// excelize produces when trailing cells are empty.
func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
