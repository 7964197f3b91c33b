// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"runtime"
	"time"

	"elector-dedup/internal/comparator"
	"elector-dedup/internal/observability"
	"elector-dedup/internal/records"
)

// Processor fans the source record set out across a worker pool and
// reassembles the results in original source order, so callers see exactly
// the output of the sequential engine regardless of completion order.
type Processor struct {
	workers  int
	scorer   comparator.Scorer
	observer *observability.StandardObserver
}

// ProcessingStats tracks parallel processing statistics
type ProcessingStats struct {
	TotalRecords  int           `json:"total_records"`
	TotalDuration time.Duration `json:"total_duration_ms"`
	WorkerCount   int           `json:"worker_count"`
	AvgRecordTime time.Duration `json:"avg_record_time_ms"`
}

// ProgressCallback is called as source records complete.
type ProgressCallback func(completed, total int)

// NewProcessor creates a processor with the default token-sort scorer.
// workers <= 0 selects NumCPU capped at 8 to avoid resource exhaustion on
// large hosts.
func NewProcessor(workers int, observer *observability.StandardObserver) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > 8 {
			workers = 8
		}
	}
	return &Processor{
		workers:  workers,
		scorer:   comparator.TokenSortScorer{},
		observer: observer,
	}
}

// Compare runs a full comparison in parallel.
func (p *Processor) Compare(sources, targets []records.NameRecord, threshold int) (*comparator.Result, *ProcessingStats, error) {
	return p.CompareWithProgress(sources, targets, threshold, nil)
}

// CompareWithProgress runs a full comparison in parallel, invoking
// progressCallback as records complete. Threshold validation and the
// target-set normalization both happen before any worker starts, so the
// run either fails up front or produces a complete result set.
func (p *Processor) CompareWithProgress(sources, targets []records.NameRecord, threshold int, progressCallback ProgressCallback) (*comparator.Result, *ProcessingStats, error) {
	if err := comparator.ValidateThreshold(threshold); err != nil {
		return nil, nil, err
	}

	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if p.observer != nil {
		finishTiming = p.observer.StartTiming("parallel_processor", "compare")
		p.observer.LogOperation(observability.StandardObservabilityData{
			Component:   "parallel_processor",
			Operation:   "run_start",
			Success:     true,
			SourceCount: len(sources),
			TargetCount: len(targets),
			Threshold:   threshold,
		})
	}

	// Normalize the target set once; workers share the read-only index.
	index := comparator.NewTargetIndex(targets)
	matcher := comparator.NewMatcher(p.scorer, threshold)

	pool := NewWorkerPool(p.workers, p.observer)
	pool.Start()

	jobCount := len(sources)
	go func() {
		defer close(pool.jobs)
		for _, src := range sources {
			if src.IsBlank() && p.observer != nil {
				p.observer.LogOperation(observability.StandardObservabilityData{
					Component:   "parallel_processor",
					Operation:   "malformed_record",
					Success:     true,
					RecordIndex: src.Index,
					Error:       "both name fields empty; record cannot match",
				})
			}
			pool.Submit(&Job{Record: src, Matcher: matcher, Targets: index})
		}
	}()

	// Collect results and reassemble in source order. Source indices are
	// zero-based positions within the cleaned list, so they address the
	// results slice directly.
	resultsByIndex := make([]comparator.MatchResult, jobCount)
	totalDuration := time.Duration(0)
	for i := 0; i < jobCount; i++ {
		result := <-pool.Results()
		resultsByIndex[result.Match.SourceIndex] = result.Match
		totalDuration += result.Duration

		if progressCallback != nil {
			progressCallback(i+1, jobCount)
		}
	}
	pool.Stop()

	summary := comparator.Summarize(resultsByIndex, threshold, len(sources), len(targets))
	overallDuration := time.Since(start)

	avg := time.Duration(0)
	if jobCount > 0 {
		avg = totalDuration / time.Duration(jobCount)
	}
	stats := &ProcessingStats{
		TotalRecords:  jobCount,
		TotalDuration: overallDuration,
		WorkerCount:   p.workers,
		AvgRecordTime: avg,
	}

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"total_records": jobCount,
			"matched":       summary.Matched,
			"worker_count":  p.workers,
			"duration_ms":   overallDuration.Milliseconds(),
		})
	}

	return &comparator.Result{Results: resultsByIndex, Summary: summary}, stats, nil
}
