// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"sort"
	"time"

	"elector-dedup/internal/comparator"
	"elector-dedup/internal/records"
)

// Report is the exporter-facing view of one comparison run. The core keeps
// MatchResult free of raw name strings; BuildReport re-attaches them here
// by looking up source and target indices in the original record sets.
type Report struct {
	Summary    ReportSummary `json:"summary" yaml:"summary"`
	Duplicates []ReportRow   `json:"duplicates" yaml:"duplicates"`

	// Unmatched source indices, included by formatters only in verbose mode.
	Unmatched []int `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`
}

// ReportSummary mirrors the Summary sheet of the exported workbook.
type ReportSummary struct {
	TotalSources int       `json:"total_sources" yaml:"total_sources"`
	TotalTargets int       `json:"total_targets" yaml:"total_targets"`
	Duplicates   int       `json:"duplicates_found" yaml:"duplicates_found"`
	ExactMatches int       `json:"exact_matches" yaml:"exact_matches"`
	FuzzyMatches int       `json:"fuzzy_matches" yaml:"fuzzy_matches"`
	NoMatches    int       `json:"no_matches" yaml:"no_matches"`
	Threshold    int       `json:"threshold" yaml:"threshold"`
	GeneratedAt  time.Time `json:"generated_at" yaml:"generated_at"`
}

// ReportRow is one duplicate pair with display fields re-attached.
type ReportRow struct {
	DuplicateID      int    `json:"duplicate_id" yaml:"duplicate_id"`
	SimilarityScore  int    `json:"similarity_score" yaml:"similarity_score"`
	MatchType        string `json:"match_type" yaml:"match_type"`
	IsExactMatch     bool   `json:"is_exact_match" yaml:"is_exact_match"`
	SourceEnglish    string `json:"source_english" yaml:"source_english"`
	SourceVernacular string `json:"source_vernacular" yaml:"source_vernacular"`
	SourceIndex      int    `json:"source_index" yaml:"source_index"`
	TargetEnglish    string `json:"target_english" yaml:"target_english"`
	TargetVernacular string `json:"target_vernacular" yaml:"target_vernacular"`
	TargetIndex      int    `json:"target_index" yaml:"target_index"`
}

// BuildReport converts a comparison result into the exporter view.
// Duplicate rows are ordered by similarity score descending (source order
// as tie-break) and assigned sequential duplicate IDs from 1, matching the
// layout reviewers get in the exported workbook.
func BuildReport(result *comparator.Result, sources, targets []records.NameRecord) Report {
	report := Report{
		Summary: ReportSummary{
			TotalSources: result.Summary.TotalSources,
			TotalTargets: result.Summary.TotalTargets,
			Duplicates:   result.Summary.Matched,
			ExactMatches: result.Summary.ExactMatches,
			FuzzyMatches: result.Summary.FuzzyMatches,
			NoMatches:    result.Summary.NoMatches,
			Threshold:    result.Summary.Threshold,
			GeneratedAt:  result.Summary.GeneratedAt,
		},
	}

	for _, r := range result.Results {
		if !r.Matched() {
			report.Unmatched = append(report.Unmatched, r.SourceIndex)
			continue
		}
		src := sources[r.SourceIndex]
		tgt := targets[r.TargetIndex]
		report.Duplicates = append(report.Duplicates, ReportRow{
			SimilarityScore:  r.Score,
			MatchType:        r.MatchType,
			IsExactMatch:     r.IsExactMatch,
			SourceEnglish:    src.English,
			SourceVernacular: src.Vernacular,
			SourceIndex:      r.SourceIndex,
			TargetEnglish:    tgt.English,
			TargetVernacular: tgt.Vernacular,
			TargetIndex:      r.TargetIndex,
		})
	}

	sort.SliceStable(report.Duplicates, func(i, j int) bool {
		if report.Duplicates[i].SimilarityScore != report.Duplicates[j].SimilarityScore {
			return report.Duplicates[i].SimilarityScore > report.Duplicates[j].SimilarityScore
		}
		return report.Duplicates[i].SourceIndex < report.Duplicates[j].SourceIndex
	})
	for i := range report.Duplicates {
		report.Duplicates[i].DuplicateID = i + 1
	}

	return report
}
