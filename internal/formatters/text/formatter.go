// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"elector-dedup/internal/formatters"
	"elector-dedup/internal/formatters/shared"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable summary with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

const defaultSampleRows = 5

func (f *Formatter) Format(report shared.Report, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	var builder strings.Builder

	f.appendSummary(&builder, report.Summary)

	if len(report.Duplicates) == 0 {
		builder.WriteString("\nNo duplicates found at the configured threshold.\n")
		return builder.String(), nil
	}

	limit := options.MaxRows
	if limit <= 0 {
		limit = defaultSampleRows
	}
	if options.Verbose || limit > len(report.Duplicates) {
		limit = len(report.Duplicates)
	}

	header := fmt.Sprintf("\nTOP DUPLICATES (%d of %d):\n", limit, len(report.Duplicates))
	builder.WriteString(f.colors["white"].Sprint(header))
	builder.WriteString(strings.Repeat("-", 80) + "\n")

	for _, row := range report.Duplicates[:limit] {
		f.appendRow(&builder, row)
	}

	return builder.String(), nil
}

// appendSummary renders the summary block reviewers see before the sample rows.
func (f *Formatter) appendSummary(builder *strings.Builder, s shared.ReportSummary) {
	builder.WriteString(f.colors["white"].Sprint(strings.Repeat("=", 80) + "\n"))
	builder.WriteString(f.colors["white"].Sprint("ELECTOR NAME COMPARISON SUMMARY\n"))
	builder.WriteString(f.colors["white"].Sprint(strings.Repeat("=", 80) + "\n"))
	fmt.Fprintf(builder, "Total source records:  %d\n", s.TotalSources)
	fmt.Fprintf(builder, "Total target records:  %d\n", s.TotalTargets)
	fmt.Fprintf(builder, "\nDuplicates found: %s\n", f.colors["cyan"].Sprintf("%d", s.Duplicates))
	fmt.Fprintf(builder, "  - Exact matches (100%%):  %s\n", f.colors["green"].Sprintf("%d", s.ExactMatches))
	fmt.Fprintf(builder, "  - Fuzzy matches (>=%d%%): %s\n", s.Threshold, f.colors["yellow"].Sprintf("%d", s.FuzzyMatches))
	fmt.Fprintf(builder, "  - No matches:            %s\n", f.colors["red"].Sprintf("%d", s.NoMatches))
	fmt.Fprintf(builder, "\nSimilarity threshold: %d%%\n", s.Threshold)
}

// appendRow renders one duplicate pair in the two-list layout of the
// original review printout.
func (f *Formatter) appendRow(builder *strings.Builder, row shared.ReportRow) {
	scoreColor := f.colors["yellow"]
	if row.IsExactMatch {
		scoreColor = f.colors["green"]
	}

	fmt.Fprintf(builder, "\n%d. Similarity: %s (%s)\n",
		row.DuplicateID,
		scoreColor.Sprintf("%d%%", row.SimilarityScore),
		row.MatchType)
	fmt.Fprintf(builder, "   Source - English:    %s\n", row.SourceEnglish)
	fmt.Fprintf(builder, "            Vernacular: %s\n", row.SourceVernacular)
	fmt.Fprintf(builder, "   Target - English:    %s\n", row.TargetEnglish)
	fmt.Fprintf(builder, "            Vernacular: %s\n", row.TargetVernacular)
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
