// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"os"
	"text/tabwriter"

	"elector-dedup/internal/formatters"

	"github.com/fatih/color"
)

// System renders CLI help output
type System struct {
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	// Disable colors if requested
	if noColor {
		color.NoColor = true
	}

	return &System{
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"item":    color.New(color.FgCyan),
			"example": color.New(color.FgMagenta),
		},
	}
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("Elector Dedup - Elector Name Duplicate Finder")
	fmt.Println("=============================================")
	fmt.Println()
	fmt.Println("Compares elector names between two lists and finds likely duplicates,")
	fmt.Println("matching across English and vernacular spellings with fuzzy scoring.")
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  elector-dedup --file <workbook.xlsx> [options]")
	fmt.Println("  elector-dedup --source <a.csv> --target <b.csv> [options]")
	fmt.Println("  elector-dedup --web [--port <port>]  # Web server mode")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --file\t<path>\tExcel workbook holding both record sheets")
	fmt.Fprintln(w, "  --source\t<path>\tCSV file with the source record set (alternative to --file)")
	fmt.Fprintln(w, "  --target\t<path>\tCSV file with the target record set (alternative to --file)")
	fmt.Fprintln(w, "  --threshold\t<0-100>\tMinimum similarity score to report a duplicate (default: 85)")
	fmt.Fprintln(w, "  --format\t<format>\tOutput format: text, csv, json, yaml, xlsx (default: text)")
	fmt.Fprintln(w, "  --output\t<path>\tPath to output file (if not specified, output to stdout; xlsx always writes a file)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  --list-profiles\t\tList available profiles in config file")
	fmt.Fprintln(w, "  --list-formats\t\tList available output formats")
	fmt.Fprintln(w, "  --workers\t<n>\tParallel workers for matching (default: CPU count, capped at 8)")
	fmt.Fprintln(w, "  --verbose\t\tDisplay every duplicate pair instead of the top sample")
	fmt.Fprintln(w, "  --debug\t\tEnable debug logging of normalization and matching flow")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --web\t\tStart the web upload UI")
	fmt.Fprintln(w, "  --port\t<port>\tWeb server port (default: 8080)")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	w.Flush()
	fmt.Println()

	h.colors["header"].Println("EXAMPLES:")
	h.colors["example"].Println("  elector-dedup --file electors.xlsx")
	h.colors["example"].Println("  elector-dedup --file electors.xlsx --threshold 90 --format xlsx --output review.xlsx")
	h.colors["example"].Println("  elector-dedup --source list_2025.csv --target list_2002.csv --format json")
	h.colors["example"].Println("  elector-dedup --web --port 8085")
	fmt.Println()
}

// ShowFormats lists the registered output formats
func (h *System) ShowFormats() {
	h.colors["header"].Println("AVAILABLE OUTPUT FORMATS:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, info := range formatters.GetSupportedFormats() {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", h.colors["item"].Sprint(info.Name), info.Extension, info.Description)
	}
	w.Flush()
}
