// SPDX-License-Identifier: Apache-2.0

package comparator

import (
	"sort"
	"strings"

	"elector-dedup/internal/records"
)

// NormalizedName is the comparable form of a raw name field: the lowercased
// whitespace tokens plus the canonical sorted-token join the scorer works
// on. Normalization is idempotent; normalizing an already-normalized string
// yields the same token sequence.
type NormalizedName struct {
	Tokens    []string
	canonical string
}

// Normalize canonicalizes a raw name string. It trims surrounding
// whitespace, collapses internal whitespace runs, lowercases, and splits
// into tokens. An empty or all-whitespace input produces an empty token
// sequence, never an error.
//
// Lowercasing is applied to the whole string. The vernacular script in the
// elector rolls (Telugu) has no case distinction, so case folding is a
// no-op there; this assumption is deliberate and should not be generalized
// to cased non-Latin scripts without revisiting the comparison rules.
func Normalize(raw string) NormalizedName {
	tokens := strings.Fields(strings.ToLower(raw))
	return NormalizedName{
		Tokens:    tokens,
		canonical: sortedJoin(tokens),
	}
}

// IsEmpty reports whether the name normalized to zero tokens.
func (n NormalizedName) IsEmpty() bool {
	return len(n.Tokens) == 0
}

// Canonical returns the tokens sorted lexicographically and joined with a
// single space. Two names with the same tokens in any order share a
// canonical form, which is what makes the similarity metric word-order
// insensitive.
func (n NormalizedName) Canonical() string {
	return n.canonical
}

func sortedJoin(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

// TargetIndex is the read-only, fully precomputed view of the target record
// set. Both name fields of every target are normalized once, before any
// matching begins, so concurrent source-record workers share the index
// without synchronization.
type TargetIndex struct {
	Records    []records.NameRecord
	English    []NormalizedName
	Vernacular []NormalizedName
}

// NewTargetIndex normalizes every target record's name fields up front.
func NewTargetIndex(targets []records.NameRecord) *TargetIndex {
	idx := &TargetIndex{
		Records:    targets,
		English:    make([]NormalizedName, len(targets)),
		Vernacular: make([]NormalizedName, len(targets)),
	}
	for i, rec := range targets {
		idx.English[i] = Normalize(rec.English)
		idx.Vernacular[i] = Normalize(rec.Vernacular)
	}
	return idx
}

// Len returns the number of target records in the index.
func (ti *TargetIndex) Len() int {
	return len(ti.Records)
}
