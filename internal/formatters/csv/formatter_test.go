// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"strings"
	"testing"

	"elector-dedup/internal/formatters"
	"elector-dedup/internal/formatters/shared"
)

func testReport() shared.Report {
	return shared.Report{
		Summary: shared.ReportSummary{TotalSources: 2, TotalTargets: 2, Duplicates: 2, Threshold: 85},
		Duplicates: []shared.ReportRow{
			{
				DuplicateID: 1, SimilarityScore: 100, MatchType: "English-English", IsExactMatch: true,
				SourceEnglish: "Ramesh Kumar", SourceVernacular: "రమేష్ కుమార్", SourceIndex: 0,
				TargetEnglish: "Kumar Ramesh", TargetVernacular: "కుమార్ రమేష్", TargetIndex: 0,
			},
			{
				DuplicateID: 2, SimilarityScore: 88, MatchType: "English-English",
				SourceEnglish: `Doe, John "JD"`, SourceIndex: 1,
				TargetEnglish: "=cmd|'/C calc'!A0", TargetIndex: 1,
			},
		},
	}
}

func TestFormat_HeaderAndRows(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(testReport(), formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Duplicate ID,Similarity %,Match Type") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,100,English-English,true,Ramesh Kumar") {
		t.Errorf("unexpected first row: %q", lines[1])
	}
}

func TestFormat_EscapesSpecialCharacters(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(testReport(), formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Commas and quotes must be wrapped and doubled.
	if !strings.Contains(out, `"Doe, John ""JD"""`) {
		t.Errorf("field with comma and quotes not escaped: %s", out)
	}
}

func TestFormat_NeutralizesFormulaInjection(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(testReport(), formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "'=cmd") {
		t.Errorf("formula-leading field not neutralized: %s", out)
	}
}

func TestFormat_EmptyReport(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(shared.Report{}, formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines := strings.Split(out, "\n"); len(lines) != 1 {
		t.Errorf("expected header only, got %d lines", len(lines))
	}
}

func TestMetadata(t *testing.T) {
	f := NewFormatter()
	if f.Name() != "csv" {
		t.Errorf("unexpected name %q", f.Name())
	}
	if f.FileExtension() != ".csv" {
		t.Errorf("unexpected extension %q", f.FileExtension())
	}
}
