// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"elector-dedup/internal/formatters"
	"elector-dedup/internal/formatters/shared"
)

func testReport() shared.Report {
	return shared.Report{
		Summary: shared.ReportSummary{
			TotalSources: 3, TotalTargets: 2, Duplicates: 2,
			ExactMatches: 1, FuzzyMatches: 1, NoMatches: 1,
			Threshold: 85, GeneratedAt: time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC),
		},
		Duplicates: []shared.ReportRow{
			{
				DuplicateID: 1, SimilarityScore: 100, MatchType: "English-English", IsExactMatch: true,
				SourceEnglish: "Ramesh Kumar", SourceVernacular: "రమేష్ కుమార్",
				TargetEnglish: "Kumar Ramesh", TargetVernacular: "కుమార్ రమేష్",
			},
			{
				DuplicateID: 2, SimilarityScore: 88, MatchType: "Vernacular-English",
				SourceEnglish: "John Doe", SourceIndex: 1,
				TargetEnglish: "Jon Doe", TargetIndex: 1,
			},
		},
	}
}

func openWorkbook(t *testing.T, content string) *excelize.File {
	t.Helper()
	wb, err := excelize.OpenReader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("exported content is not a readable workbook: %v", err)
	}
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestFormat_ProducesTwoSheets(t *testing.T) {
	f := NewFormatter()
	content, err := f.Format(testReport(), formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wb := openWorkbook(t, content)
	sheets := wb.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Summary" || sheets[1] != "Duplicates" {
		t.Errorf("unexpected sheet list: %v", sheets)
	}
}

func TestFormat_SummarySheet(t *testing.T) {
	f := NewFormatter()
	content, err := f.Format(testReport(), formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wb := openWorkbook(t, content)
	rows, err := wb.GetRows("Summary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 9 {
		t.Fatalf("expected 9 summary rows, got %d", len(rows))
	}
	if rows[0][0] != "Metric" || rows[0][1] != "Value" {
		t.Errorf("unexpected summary header: %v", rows[0])
	}
	if rows[1][1] != "3" {
		t.Errorf("expected 3 source records, got %q", rows[1][1])
	}
	if rows[8][1] != "2026-08-28 10:30:00" {
		t.Errorf("unexpected analysis date: %q", rows[8][1])
	}
}

func TestFormat_DuplicatesSheet(t *testing.T) {
	f := NewFormatter()
	content, err := f.Format(testReport(), formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wb := openWorkbook(t, content)
	rows, err := wb.GetRows("Duplicates")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "duplicate_id" || rows[0][2] != "match_type" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][4] != "Ramesh Kumar" || rows[1][5] != "రమేష్ కుమార్" {
		t.Errorf("unexpected first duplicate row: %v", rows[1])
	}
	if rows[2][2] != "Vernacular-English" {
		t.Errorf("unexpected match type in second row: %v", rows[2])
	}
}

func TestFormat_EmptyReport(t *testing.T) {
	f := NewFormatter()
	content, err := f.Format(shared.Report{}, formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wb := openWorkbook(t, content)
	rows, err := wb.GetRows("Duplicates")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected header only, got %d rows", len(rows))
	}
}
