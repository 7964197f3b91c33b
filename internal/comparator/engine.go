// SPDX-License-Identifier: Apache-2.0

package comparator

import (
	"errors"
	"fmt"

	"elector-dedup/internal/observability"
	"elector-dedup/internal/records"
)

// ErrInvalidThreshold is returned when the configured similarity threshold
// is outside [0,100]. It is raised before any per-record work, so a Compare
// call either returns a complete result set or fails up front.
var ErrInvalidThreshold = errors.New("similarity threshold must be between 0 and 100")

// ValidateThreshold checks the configured threshold range.
func ValidateThreshold(threshold int) error {
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("%w (got %d)", ErrInvalidThreshold, threshold)
	}
	return nil
}

// Engine runs complete comparisons between a source and a target record
// set. It holds no state across runs: every Compare call is independent and
// reproducible given the same inputs and threshold.
type Engine struct {
	scorer   Scorer
	observer *observability.StandardObserver
}

// NewEngine builds an engine around the given scorer. observer may be nil.
func NewEngine(scorer Scorer, observer *observability.StandardObserver) *Engine {
	return &Engine{scorer: scorer, observer: observer}
}

// Compare evaluates every source record against the full target set and
// returns the per-record outcomes in source order plus the derived summary.
//
// Empty input sets complete normally with zero counts for that side. A
// source record with both name fields blank is reported as a guaranteed
// non-match (and logged as a malformed record), never an error. Only an
// out-of-range threshold fails the run, and it does so before any record is
// evaluated.
func (e *Engine) Compare(sources, targets []records.NameRecord, threshold int) (*Result, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	e.logRunStart(sources, targets, threshold)

	index := NewTargetIndex(targets)
	matcher := NewMatcher(e.scorer, threshold)

	results := make([]MatchResult, 0, len(sources))
	for _, src := range sources {
		if src.IsBlank() {
			e.logMalformedRecord(src)
		}
		results = append(results, matcher.FindBestMatch(src, index))
	}

	summary := Summarize(results, threshold, len(sources), len(targets))
	e.logRunComplete(summary)

	return &Result{Results: results, Summary: summary}, nil
}

// Compare runs a one-off comparison with the default token-sort scorer and
// no diagnostics. It is the reference implementation the parallel processor
// is verified against.
func Compare(sources, targets []records.NameRecord, threshold int) (*Result, error) {
	return NewEngine(TokenSortScorer{}, nil).Compare(sources, targets, threshold)
}

func (e *Engine) logRunStart(sources, targets []records.NameRecord, threshold int) {
	if e.observer == nil {
		return
	}
	e.observer.LogOperation(observability.StandardObservabilityData{
		Component:   "comparator",
		Operation:   "run_start",
		Success:     true,
		SourceCount: len(sources),
		TargetCount: len(targets),
		Threshold:   threshold,
	})
}

func (e *Engine) logMalformedRecord(src records.NameRecord) {
	if e.observer == nil {
		return
	}
	e.observer.LogOperation(observability.StandardObservabilityData{
		Component:   "comparator",
		Operation:   "malformed_record",
		Success:     true,
		RecordIndex: src.Index,
		Error:       "both name fields empty; record cannot match",
	})
}

func (e *Engine) logRunComplete(summary Summary) {
	if e.observer == nil {
		return
	}
	e.observer.LogOperation(observability.StandardObservabilityData{
		Component:   "comparator",
		Operation:   "run_complete",
		Success:     true,
		SourceCount: summary.TotalSources,
		TargetCount: summary.TotalTargets,
		Threshold:   summary.Threshold,
		MatchCount:  summary.Matched,
	})
}
