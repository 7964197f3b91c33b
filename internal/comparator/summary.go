// SPDX-License-Identifier: Apache-2.0

package comparator

import "time"

// Summarize derives the run-level statistics from already-classified
// per-record results. It is a pure fold: no similarity is recomputed, so
// the summary can never disagree with the per-record classification.
//
// Invariant: ExactMatches + FuzzyMatches + NoMatches == sourceCount.
func Summarize(results []MatchResult, threshold, sourceCount, targetCount int) Summary {
	s := Summary{
		TotalSources: sourceCount,
		TotalTargets: targetCount,
		Threshold:    threshold,
		GeneratedAt:  time.Now(),
	}
	for _, r := range results {
		switch {
		case !r.Matched():
			s.NoMatches++
		case r.Score == 100:
			s.ExactMatches++
		default:
			s.FuzzyMatches++
		}
	}
	s.Matched = s.ExactMatches + s.FuzzyMatches
	return s
}
