// SPDX-License-Identifier: Apache-2.0

package records

import "strings"

// NameRecord is one elector entry from either list. Records are constructed
// by a loader, assigned a stable zero-based index within their list, and
// never mutated afterward.
type NameRecord struct {
	// Index is the record's position within its list after load-time
	// cleaning. It is the identifier report exporters use to re-attach
	// display fields.
	Index int

	// English is the raw Latin-script elector name. May be empty.
	English string

	// Vernacular is the raw vernacular-script elector name. May be empty.
	Vernacular string
}

// IsBlank reports whether both name fields are empty or whitespace-only.
// Such records can never match anything; the workbook loader drops them,
// and records that arrive through other loaders get a guaranteed non-match
// from the engine.
func (r NameRecord) IsBlank() bool {
	return strings.TrimSpace(r.English) == "" && strings.TrimSpace(r.Vernacular) == ""
}
