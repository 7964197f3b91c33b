// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"elector-dedup/internal/formatters"
	"elector-dedup/internal/formatters/shared"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Machine-readable JSON report"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

func (f *Formatter) Format(report shared.Report, options formatters.FormatterOptions) (string, error) {
	if !options.Verbose {
		// Unmatched indices are detail output; the summary already carries the count.
		report.Unmatched = nil
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error serializing report to JSON: %w", err)
	}
	return string(data), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
