// SPDX-License-Identifier: Apache-2.0

package comparator

import (
	"math"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Scorer scores two normalized names on a 0-100 scale. The engine is
// polymorphic over this single capability so an alternative metric can be
// swapped in without touching the matching logic.
type Scorer interface {
	Score(a, b NormalizedName) int
}

// TokenSortScorer implements token-sort similarity: each name's tokens are
// sorted and rejoined into a canonical string, then the score is the
// normalized Levenshtein ratio between the two canonical strings:
//
//	score = 100 * (1 - distance(sa, sb) / max(len(sa), len(sb)))
//
// Sorting first makes the metric invariant to word order ("Doe John" scores
// 100 against "John Doe") while edit distance still penalizes spelling
// drift and spacing anomalies. Distances use unit insert/delete/substitute
// costs over runes, so both Latin and Telugu strings are measured in
// characters, not bytes.
type TokenSortScorer struct{}

// Score returns the token-sort similarity between a and b.
//
// Invariants: the result is always in [0,100]; 100 is returned iff the two
// canonical forms are equal (including both empty); 0 is returned when
// exactly one side is empty. Rounding is clamped to 99 for unequal strings
// so IsExactMatch can rely on score == 100.
func (TokenSortScorer) Score(a, b NormalizedName) int {
	sa, sb := a.Canonical(), b.Canonical()
	if sa == sb {
		return 100
	}
	if sa == "" || sb == "" {
		return 0
	}

	dist := levenshtein.ComputeDistance(sa, sb)
	longest := utf8.RuneCountInString(sa)
	if lb := utf8.RuneCountInString(sb); lb > longest {
		longest = lb
	}

	score := int(math.Round(100 * (1 - float64(dist)/float64(longest))))
	if score > 99 {
		score = 99
	}
	if score < 0 {
		score = 0
	}
	return score
}
