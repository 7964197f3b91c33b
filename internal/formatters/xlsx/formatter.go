// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"

	"elector-dedup/internal/formatters"
	"elector-dedup/internal/formatters/shared"

	"github.com/xuri/excelize/v2"
)

// Formatter writes the two-sheet review workbook: a Summary sheet with the
// run statistics and a Duplicates sheet with one row per matched pair,
// already sorted by similarity descending.
type Formatter struct{}

// NewFormatter creates a new xlsx formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "xlsx"
}

func (f *Formatter) Description() string {
	return "Excel workbook with Summary and Duplicates sheets"
}

func (f *Formatter) FileExtension() string {
	return ".xlsx"
}

// Format returns the workbook bytes as a string; callers write them to a
// file or an HTTP response verbatim.
func (f *Formatter) Format(report shared.Report, options formatters.FormatterOptions) (string, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := f.writeSummarySheet(wb, report.Summary); err != nil {
		return "", err
	}
	if err := f.writeDuplicatesSheet(wb, report.Duplicates); err != nil {
		return "", err
	}

	// excelize creates "Sheet1" by default; Summary replaces it as the
	// first sheet reviewers open on.
	if err := wb.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("error finalizing workbook: %w", err)
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return "", fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.String(), nil
}

func (f *Formatter) writeSummarySheet(wb *excelize.File, s shared.ReportSummary) error {
	const sheet = "Summary"
	if _, err := wb.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating %s sheet: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total source records", s.TotalSources},
		{"Total target records", s.TotalTargets},
		{"Total duplicates found", s.Duplicates},
		{"Exact matches (100% similarity)", s.ExactMatches},
		{fmt.Sprintf("Fuzzy matches (%d-99%% similarity)", s.Threshold), s.FuzzyMatches},
		{"No matches found", s.NoMatches},
		{"Similarity threshold used", fmt.Sprintf("%d%%", s.Threshold)},
		{"Analysis date", s.GeneratedAt.Format("2006-01-02 15:04:05")},
	}
	return writeRows(wb, sheet, rows)
}

func (f *Formatter) writeDuplicatesSheet(wb *excelize.File, duplicates []shared.ReportRow) error {
	const sheet = "Duplicates"
	if _, err := wb.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating %s sheet: %w", sheet, err)
	}

	rows := [][]interface{}{{
		"duplicate_id", "similarity_score", "match_type", "is_exact_match",
		"source_english", "source_vernacular", "source_index",
		"target_english", "target_vernacular", "target_index",
	}}
	for _, d := range duplicates {
		rows = append(rows, []interface{}{
			d.DuplicateID, d.SimilarityScore, d.MatchType, d.IsExactMatch,
			d.SourceEnglish, d.SourceVernacular, d.SourceIndex,
			d.TargetEnglish, d.TargetVernacular, d.TargetIndex,
		})
	}
	return writeRows(wb, sheet, rows)
}

func writeRows(wb *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("error addressing row %d: %w", i+1, err)
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
