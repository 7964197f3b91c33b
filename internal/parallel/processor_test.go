// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elector-dedup/internal/comparator"
	"elector-dedup/internal/records"
)

// generateRecords builds a record set large enough to keep every worker
// busy, with a mix of exact duplicates, spelling drift, and strangers.
func generateRecords(n int) (sources, targets []records.NameRecord) {
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("Elector Number%d", i)
		sources = append(sources, records.NameRecord{Index: i, English: name})

		switch i % 3 {
		case 0: // word-order variant, exact under token sort
			targets = append(targets, records.NameRecord{Index: i, English: fmt.Sprintf("Number%d Elector", i)})
		case 1: // spelling drift
			targets = append(targets, records.NameRecord{Index: i, English: fmt.Sprintf("Electer Number%d", i)})
		default: // unrelated
			targets = append(targets, records.NameRecord{Index: i, English: fmt.Sprintf("Stranger Row%d", i)})
		}
	}
	return sources, targets
}

func TestProcessor_MatchesSequentialEngine(t *testing.T) {
	sources, targets := generateRecords(200)

	sequential, err := comparator.Compare(sources, targets, 85)
	require.NoError(t, err)

	for _, workers := range []int{1, 4, 8} {
		processor := NewProcessor(workers, nil)
		parallelResult, stats, err := processor.Compare(sources, targets, 85)
		require.NoError(t, err)

		assert.Equal(t, sequential.Results, parallelResult.Results,
			"parallel results with %d workers diverge from sequential engine", workers)
		assert.Equal(t, sequential.Summary.Matched, parallelResult.Summary.Matched)
		assert.Equal(t, sequential.Summary.ExactMatches, parallelResult.Summary.ExactMatches)
		assert.Equal(t, sequential.Summary.FuzzyMatches, parallelResult.Summary.FuzzyMatches)
		assert.Equal(t, sequential.Summary.NoMatches, parallelResult.Summary.NoMatches)
		assert.Equal(t, workers, stats.WorkerCount)
		assert.Equal(t, len(sources), stats.TotalRecords)
	}
}

func TestProcessor_ResultsInSourceOrder(t *testing.T) {
	sources, targets := generateRecords(100)

	processor := NewProcessor(4, nil)
	result, _, err := processor.Compare(sources, targets, 85)
	require.NoError(t, err)

	require.Len(t, result.Results, len(sources))
	for i, r := range result.Results {
		assert.Equal(t, i, r.SourceIndex, "result %d out of order", i)
	}
}

func TestProcessor_InvalidThreshold(t *testing.T) {
	sources, targets := generateRecords(10)

	processor := NewProcessor(2, nil)
	_, _, err := processor.Compare(sources, targets, 101)
	require.ErrorIs(t, err, comparator.ErrInvalidThreshold)
}

func TestProcessor_EmptySources(t *testing.T) {
	_, targets := generateRecords(10)

	processor := NewProcessor(2, nil)
	result, stats, err := processor.Compare(nil, targets, 85)
	require.NoError(t, err)
	assert.Empty(t, result.Results)
	assert.Equal(t, 0, stats.TotalRecords)
	assert.Equal(t, len(targets), result.Summary.TotalTargets)
}

func TestProcessor_ProgressCallback(t *testing.T) {
	sources, targets := generateRecords(50)

	var mu sync.Mutex
	calls := 0
	lastCompleted := 0
	progress := func(completed, total int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		lastCompleted = completed
		assert.Equal(t, len(sources), total)
	}

	processor := NewProcessor(4, nil)
	_, _, err := processor.CompareWithProgress(sources, targets, 85, progress)
	require.NoError(t, err)

	assert.Equal(t, len(sources), calls)
	assert.Equal(t, len(sources), lastCompleted)
}

func TestNewProcessor_DefaultWorkerCount(t *testing.T) {
	processor := NewProcessor(0, nil)
	assert.Greater(t, processor.workers, 0)
	assert.LessOrEqual(t, processor.workers, 8)
}
