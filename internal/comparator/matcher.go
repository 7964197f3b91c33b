// SPDX-License-Identifier: Apache-2.0

package comparator

import "elector-dedup/internal/records"

// Matcher finds, for one source record at a time, the single best match in
// a target set by evaluating all four cross-script field pairings.
type Matcher struct {
	scorer    Scorer
	threshold int
}

// NewMatcher builds a matcher for one comparison run. The threshold must
// already be validated by the engine.
func NewMatcher(scorer Scorer, threshold int) *Matcher {
	return &Matcher{scorer: scorer, threshold: threshold}
}

// strategy pairs a label with the normalized source field it compares from.
type strategy struct {
	label  string
	source NormalizedName
}

// FindBestMatch evaluates the source record against every target record and
// returns its MatchResult. Strategies whose source field is empty are not
// evaluated at all; a strategy against an empty target field stays eligible
// with score 0, so an all-blank target can still be reported at threshold 0.
//
// Per target record only the best of the four pairings is retained; across
// target records the highest score wins, and on a tie the smaller target
// index wins (targets are scanned in index order with a strict comparison).
// When the overall best score is below the threshold the result carries the
// NoMatch sentinel and no target index instead of a sub-threshold label.
func (m *Matcher) FindBestMatch(source records.NameRecord, targets *TargetIndex) MatchResult {
	strategies := make([]strategy, 0, 2)
	if eng := Normalize(source.English); !eng.IsEmpty() {
		strategies = append(strategies, strategy{StrategyEnglishEnglish, eng}, strategy{StrategyEnglishVernacular, eng})
	}
	if vern := Normalize(source.Vernacular); !vern.IsEmpty() {
		strategies = append(strategies, strategy{StrategyVernacularVernacular, vern}, strategy{StrategyVernacularEnglish, vern})
	}

	best := MatchCandidate{Score: -1, TargetIndex: NoTarget}
	for i := 0; i < targets.Len(); i++ {
		cand, ok := m.bestStrategyFor(strategies, targets, i)
		if ok && cand.Score > best.Score {
			best = cand
		}
	}

	if best.TargetIndex == NoTarget || best.Score < m.threshold {
		return MatchResult{
			SourceIndex: source.Index,
			TargetIndex: NoTarget,
			MatchType:   NoMatch,
		}
	}
	return MatchResult{
		SourceIndex:  source.Index,
		TargetIndex:  best.TargetIndex,
		Score:        best.Score,
		MatchType:    best.Strategy,
		IsExactMatch: best.Score == 100,
	}
}

// bestStrategyFor scores every evaluated strategy against one target record
// and keeps the best. On equal scores a pairing against a present target
// field beats one against a missing field, so a cross-script comparison is
// never mislabeled as same-script just because the same-script column was
// blank.
func (m *Matcher) bestStrategyFor(strategies []strategy, targets *TargetIndex, i int) (MatchCandidate, bool) {
	var best MatchCandidate
	bestPresent := false
	found := false

	for _, s := range strategies {
		target := m.targetField(s.label, targets, i)
		score := m.scorer.Score(s.source, target)
		present := !target.IsEmpty()

		if !found || score > best.Score || (score == best.Score && present && !bestPresent) {
			best = MatchCandidate{Score: score, Strategy: s.label, TargetIndex: i}
			bestPresent = present
			found = true
		}
	}
	return best, found
}

// targetField selects the normalized target column a strategy compares
// against.
func (m *Matcher) targetField(label string, targets *TargetIndex, i int) NormalizedName {
	switch label {
	case StrategyEnglishEnglish, StrategyVernacularEnglish:
		return targets.English[i]
	default:
		return targets.Vernacular[i]
	}
}
