// SPDX-License-Identifier: Apache-2.0

package records

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadCSV reads one record set from a CSV file using the same header-driven
// column discovery as the workbook loader. Unlike the workbook loader it
// keeps rows with both name fields blank; the engine reports those as
// guaranteed non-matches rather than erroring.
func LoadCSV(path string, englishColumn, vernacularColumn string) ([]NameRecord, error) {
	cleanPath := filepath.Clean(path)
	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file %s: %w", cleanPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows tolerated, same as the workbook loader

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV file %s: %w", cleanPath, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file %s is empty", cleanPath)
	}

	engCol, vernCol := -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case englishColumn:
			engCol = i
		case vernacularColumn:
			vernCol = i
		}
	}
	if engCol < 0 {
		return nil, fmt.Errorf("column %q not found in %s", englishColumn, cleanPath)
	}
	if vernCol < 0 {
		return nil, fmt.Errorf("column %q not found in %s", vernacularColumn, cleanPath)
	}

	out := make([]NameRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		out = append(out, NameRecord{
			Index:      i,
			English:    cellAt(row, engCol),
			Vernacular: cellAt(row, vernCol),
		})
	}
	return out, nil
}
