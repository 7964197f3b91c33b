// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"fmt"

	"elector-dedup/internal/formatters"
	"elector-dedup/internal/formatters/shared"

	"gopkg.in/yaml.v3"
)

// Formatter implements YAML output formatting
type Formatter struct{}

// NewFormatter creates a new YAML formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "yaml"
}

func (f *Formatter) Description() string {
	return "YAML report for pipelines and further processing"
}

func (f *Formatter) FileExtension() string {
	return ".yaml"
}

func (f *Formatter) Format(report shared.Report, options formatters.FormatterOptions) (string, error) {
	if !options.Verbose {
		report.Unmatched = nil
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("error serializing report to YAML: %w", err)
	}
	return string(data), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
