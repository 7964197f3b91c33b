// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"sync"
	"time"

	"elector-dedup/internal/comparator"
	"elector-dedup/internal/observability"
	"elector-dedup/internal/records"
)

// WorkerPool manages parallel best-match evaluation across source records.
// Each worker reads only the shared immutable target index, so no
// synchronization is needed beyond the job/result channels.
type WorkerPool struct {
	workers  int
	jobs     chan *Job
	results  chan *Result
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	observer *observability.StandardObserver
}

// Job is one source record to evaluate against the target set.
type Job struct {
	Record  records.NameRecord
	Matcher *comparator.Matcher
	Targets *comparator.TargetIndex
}

// Result carries one source record's outcome back to the processor.
type Result struct {
	Match    comparator.MatchResult
	Duration time.Duration
}

// NewWorkerPool creates a worker pool with the given parallelism.
func NewWorkerPool(workers int, observer *observability.StandardObserver) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workers:  workers,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
		observer: observer,
	}
}

// Start initializes worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop gracefully shuts down the worker pool
func (wp *WorkerPool) Stop() {
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Submit adds a job to the queue
func (wp *WorkerPool) Submit(job *Job) {
	select {
	case wp.jobs <- job:
	case <-wp.ctx.Done():
	}
}

// Results returns the results channel
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

// worker processes jobs from the queue
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		result := wp.processJob(job, id)

		select {
		case wp.results <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob evaluates a single source record. The matcher never fails, so
// unlike file scanning there is no per-job error path; a record that cannot
// match anything still yields a well-formed no-match result.
func (wp *WorkerPool) processJob(job *Job, workerID int) *Result {
	start := time.Now()

	match := job.Matcher.FindBestMatch(job.Record, job.Targets)
	duration := time.Since(start)

	if wp.observer != nil {
		wp.observer.LogOperation(observability.StandardObservabilityData{
			Component:   "worker_pool",
			Operation:   "match_record",
			Success:     true,
			RecordIndex: job.Record.Index,
			DurationMs:  duration.Milliseconds(),
			Metadata: map[string]interface{}{
				"worker_id":  workerID,
				"matched":    match.Matched(),
				"match_type": match.MatchType,
			},
		})
	}

	return &Result{Match: match, Duration: duration}
}
