// SPDX-License-Identifier: Apache-2.0

package comparator

import (
	"testing"

	"elector-dedup/internal/records"
)

func TestNormalize_Lowercase(t *testing.T) {
	n := Normalize("John DOE")
	if n.Canonical() != "doe john" {
		t.Errorf("expected canonical 'doe john', got %q", n.Canonical())
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	n := Normalize("  John \t  Doe \n")
	if len(n.Tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %v", len(n.Tokens), n.Tokens)
	}
	if n.Tokens[0] != "john" || n.Tokens[1] != "doe" {
		t.Errorf("unexpected tokens: %v", n.Tokens)
	}
}

func TestNormalize_WordOrderSharesCanonical(t *testing.T) {
	a := Normalize("John Doe")
	b := Normalize("Doe John")
	if a.Canonical() != b.Canonical() {
		t.Errorf("expected equal canonical forms, got %q vs %q", a.Canonical(), b.Canonical())
	}
}

func TestNormalize_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		n := Normalize(raw)
		if !n.IsEmpty() {
			t.Errorf("expected %q to normalize to empty, got tokens %v", raw, n.Tokens)
		}
		if n.Canonical() != "" {
			t.Errorf("expected empty canonical for %q, got %q", raw, n.Canonical())
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first := Normalize("  Ramesh   KUMAR  ")
	second := Normalize(first.Canonical())
	if first.Canonical() != second.Canonical() {
		t.Errorf("normalization not idempotent: %q vs %q", first.Canonical(), second.Canonical())
	}
}

func TestNormalize_Telugu(t *testing.T) {
	// Telugu has no case distinction; normalization should only tokenize.
	n := Normalize("రమేష్ కుమార్")
	if len(n.Tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(n.Tokens))
	}
}

func TestNewTargetIndex_PrecomputesBothFields(t *testing.T) {
	targets := []records.NameRecord{
		{Index: 0, English: "John Doe", Vernacular: "జాన్ డో"},
		{Index: 1, English: "", Vernacular: "రమేష్"},
	}

	idx := NewTargetIndex(targets)
	if idx.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", idx.Len())
	}
	if idx.English[0].Canonical() != "doe john" {
		t.Errorf("unexpected canonical for target 0: %q", idx.English[0].Canonical())
	}
	if !idx.English[1].IsEmpty() {
		t.Error("expected empty english field for target 1")
	}
	if idx.Vernacular[1].IsEmpty() {
		t.Error("expected non-empty vernacular field for target 1")
	}
}
