// SPDX-License-Identifier: Apache-2.0

// Package comparator implements the fuzzy duplicate-matching engine for
// elector name records: normalization, token-sort similarity, the four-way
// cross-script matching strategy, and threshold classification.
package comparator

import "time"

// Match strategy labels, reported in the match_type column of the final
// report. The first script names the source field, the second the target
// field.
const (
	StrategyEnglishEnglish       = "English-English"
	StrategyEnglishVernacular    = "English-Vernacular"
	StrategyVernacularVernacular = "Vernacular-Vernacular"
	StrategyVernacularEnglish    = "Vernacular-English"

	// NoMatch is the match_type sentinel for source records whose best
	// candidate did not reach the threshold.
	NoMatch = "No Match"
)

// NoTarget is the TargetIndex value of an unmatched result.
const NoTarget = -1

// MatchCandidate is one scored field pairing between a source record and a
// single target record. Candidates are transient: the matcher keeps only
// the best one per source record.
type MatchCandidate struct {
	Score       int
	Strategy    string
	TargetIndex int
}

// MatchResult is the best candidate retained for one source record. At most
// one exists per source record; TargetIndex is NoTarget when nothing
// reached the threshold.
type MatchResult struct {
	SourceIndex  int    `json:"source_index" yaml:"source_index"`
	TargetIndex  int    `json:"target_index" yaml:"target_index"`
	Score        int    `json:"similarity_score" yaml:"similarity_score"`
	MatchType    string `json:"match_type" yaml:"match_type"`
	IsExactMatch bool   `json:"is_exact_match" yaml:"is_exact_match"`
}

// Matched reports whether this result refers to a target record.
func (r MatchResult) Matched() bool {
	return r.TargetIndex != NoTarget
}

// Summary holds the run-level statistics derived from the per-record
// results. It is always recomputable from the MatchResult list and is never
// independently mutated.
type Summary struct {
	TotalSources int       `json:"total_sources" yaml:"total_sources"`
	TotalTargets int       `json:"total_targets" yaml:"total_targets"`
	Matched      int       `json:"matched" yaml:"matched"`
	ExactMatches int       `json:"exact_matches" yaml:"exact_matches"`
	FuzzyMatches int       `json:"fuzzy_matches" yaml:"fuzzy_matches"`
	NoMatches    int       `json:"no_matches" yaml:"no_matches"`
	Threshold    int       `json:"threshold" yaml:"threshold"`
	GeneratedAt  time.Time `json:"generated_at" yaml:"generated_at"`
}

// Result is the complete output of one comparison run: per-record outcomes
// in source order plus the derived summary.
type Result struct {
	Results []MatchResult `json:"results" yaml:"results"`
	Summary Summary       `json:"summary" yaml:"summary"`
}
