// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strings"

	"elector-dedup/internal/formatters"
	"elector-dedup/internal/formatters/shared"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(report shared.Report, options formatters.FormatterOptions) (string, error) {
	headers := []string{
		"Duplicate ID", "Similarity %", "Match Type", "Exact Match",
		"Source Name", "Source Name (Vernacular)", "Source Index",
		"Target Name", "Target Name (Vernacular)", "Target Index",
	}

	csvRows := []string{strings.Join(headers, ",")}

	for _, row := range report.Duplicates {
		csvRows = append(csvRows, f.createCSVRow(row))
	}

	return strings.Join(csvRows, "\n"), nil
}

// createCSVRow creates a CSV row for one duplicate pair
func (f *Formatter) createCSVRow(row shared.ReportRow) string {
	fields := []string{
		fmt.Sprintf("%d", row.DuplicateID),
		fmt.Sprintf("%d", row.SimilarityScore),
		f.escapeCSVField(row.MatchType),
		fmt.Sprintf("%t", row.IsExactMatch),
		f.escapeCSVField(row.SourceEnglish),
		f.escapeCSVField(row.SourceVernacular),
		fmt.Sprintf("%d", row.SourceIndex),
		f.escapeCSVField(row.TargetEnglish),
		f.escapeCSVField(row.TargetVernacular),
		fmt.Sprintf("%d", row.TargetIndex),
	}
	return strings.Join(fields, ",")
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	// Prevent CSV injection by sanitizing formula characters
	field = f.sanitizeFormulaInjection(field)

	// If field contains comma, quote, or newline, wrap in quotes and escape internal quotes
	if strings.Contains(field, ",") || strings.Contains(field, "\"") || strings.Contains(field, "\n") || strings.Contains(field, "\r") {
		// Escape internal quotes by doubling them
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// sanitizeFormulaInjection prevents CSV injection attacks by sanitizing formula characters
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	// Name cells opening with a formula character could execute when the
	// exported CSV is opened in a spreadsheet; neutralize with a quote prefix.
	firstChar := field[0]
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' {
		return "'" + field
	}

	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
