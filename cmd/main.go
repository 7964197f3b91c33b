// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"elector-dedup/internal/config"
	"elector-dedup/internal/formatters"
	"elector-dedup/internal/formatters/shared"
	"elector-dedup/internal/help"
	"elector-dedup/internal/observability"
	"elector-dedup/internal/parallel"
	"elector-dedup/internal/records"
	"elector-dedup/internal/version"
	"elector-dedup/internal/web"

	_ "elector-dedup/internal/formatters/csv"
	_ "elector-dedup/internal/formatters/json"
	_ "elector-dedup/internal/formatters/text"
	_ "elector-dedup/internal/formatters/xlsx"
	_ "elector-dedup/internal/formatters/yaml"

	"golang.org/x/term"
)

// configFlags holds command line flag values
type configFlags struct {
	threshold int
	format    string
	output    string
	workers   int
	verbose   bool
	debug     bool
	noColor   bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	threshold int
	format    string
	output    string
	workers   int
	verbose   bool
	debug     bool
	noColor   bool
}

// resolveConfiguration resolves final configuration values from config file, profile, and command line flags
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{}

	// Threshold
	final.threshold = 85 // default fallback
	if cfg != nil {
		final.threshold = cfg.Defaults.Threshold
	}
	if activeProfile != nil && activeProfile.Threshold != nil {
		final.threshold = *activeProfile.Threshold
	}
	if isFlagSet("threshold") {
		final.threshold = flags.threshold
	}

	// Format
	final.format = "text" // default fallback
	if cfg != nil && cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if activeProfile != nil && activeProfile.Format != "" {
		final.format = activeProfile.Format
	}
	if isFlagSet("format") && flags.format != "" {
		final.format = flags.format
	}

	// Output file
	if cfg != nil {
		final.output = cfg.Defaults.Output
	}
	if activeProfile != nil && activeProfile.Output != "" {
		final.output = activeProfile.Output
	}
	if isFlagSet("output") {
		final.output = flags.output
	}

	// Workers
	if cfg != nil {
		final.workers = cfg.Defaults.Workers
	}
	if activeProfile != nil && activeProfile.Workers != 0 {
		final.workers = activeProfile.Workers
	}
	if isFlagSet("workers") {
		final.workers = flags.workers
	}

	// Verbose
	if cfg != nil {
		final.verbose = cfg.Defaults.Verbose
	}
	if activeProfile != nil && activeProfile.Verbose {
		final.verbose = true
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}

	// Debug
	if cfg != nil {
		final.debug = cfg.Defaults.Debug
	}
	if activeProfile != nil && activeProfile.Debug {
		final.debug = true
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}

	// No color
	if cfg != nil {
		final.noColor = cfg.Defaults.NoColor
	}
	if activeProfile != nil && activeProfile.NoColor {
		final.noColor = true
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}

	return final
}

func main() {
	// Parse command line flags
	inputFile := flag.String("file", "", "Path to the Excel workbook holding both record sheets")
	sourceFile := flag.String("source", "", "Path to a CSV file with the source record set (alternative to --file)")
	targetFile := flag.String("target", "", "Path to a CSV file with the target record set (alternative to --file)")
	threshold := flag.Int("threshold", 85, "Minimum similarity score (0-100) to report a duplicate")
	outputFormat := flag.String("format", "", "Output format: text, csv, json, yaml, xlsx (default: text)")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout; xlsx always writes a file)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	listProfiles := flag.Bool("list-profiles", false, "List available profiles in config file")
	listFormats := flag.Bool("list-formats", false, "List available output formats")
	workers := flag.Int("workers", 0, "Parallel workers for matching (default: CPU count, capped at 8)")
	verbose := flag.Bool("verbose", false, "Display every duplicate pair instead of the top sample")
	debug := flag.Bool("debug", false, "Enable debug logging of normalization and matching flow")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showHelp := flag.Bool("help", false, "Show help information")
	showVersion := flag.Bool("version", false, "Show version information")

	// Web server flags
	webMode := flag.Bool("web", false, "Start web server mode instead of CLI comparison")
	webPort := flag.String("port", "8080", "Port for web server (default: 8080)")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	// Auto-detect non-interactive environment
	isInteractive := isTerminal(os.Stderr)
	if !isInteractive || os.Getenv("CI") != "" {
		*noColor = true
	}

	helpSystem := help.NewSystem(*noColor)
	if *showHelp {
		helpSystem.ShowGeneralHelp()
		return
	}
	if *listFormats {
		helpSystem.ShowFormats()
		return
	}

	// Load configuration
	cfg := config.LoadConfigOrDefault(*configFile)

	if *listProfiles {
		printProfiles(cfg)
		return
	}

	var activeProfile *config.Profile
	if *profileName != "" {
		activeProfile = cfg.GetProfile(*profileName)
		if activeProfile == nil {
			fmt.Fprintf(os.Stderr, "Error: profile %q not found in configuration\n", *profileName)
			os.Exit(1)
		}
	}

	finalConfig := resolveConfiguration(cfg, activeProfile, &configFlags{
		threshold: *threshold,
		format:    *outputFormat,
		output:    *outputFile,
		workers:   *workers,
		verbose:   *verbose,
		debug:     *debug,
		noColor:   *noColor,
	})

	// Create observer; the debug observer carries the metrics observer so
	// both views come from one place.
	var observer *observability.StandardObserver
	var debugObs *observability.DebugObserver
	if finalConfig.debug {
		debugObs = observability.NewDebugObserver(os.Stderr)
		observer = debugObs.StandardObserver
		debugObs.LogDetail("main", fmt.Sprintf("Command line arguments: %v", os.Args))
	}

	// Handle web mode after config so the server inherits workbook layout
	// and threshold defaults.
	if *webMode {
		cfg.Defaults.Threshold = finalConfig.threshold
		cfg.Defaults.Workers = finalConfig.workers
		server, err := web.NewWebServer(*webPort, cfg, observer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// With no input named at all, an interactive run falls back to the
	// prompts of the original workflow.
	if *inputFile == "" && *sourceFile == "" && *targetFile == "" {
		if !isInteractive {
			fmt.Fprintln(os.Stderr, "Error: no input file specified (use --file or --source/--target)")
			os.Exit(1)
		}
		path, promptedThreshold, err := promptForRun(finalConfig.threshold)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		*inputFile = path
		finalConfig.threshold = promptedThreshold
	}

	sources, targets, err := loadRecordSets(*inputFile, *sourceFile, *targetFile, cfg, debugObs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if debugObs != nil {
		debugObs.LogMetric("main", "source_records", len(sources))
		debugObs.LogMetric("main", "target_records", len(targets))
		debugObs.LogMetric("main", "threshold", finalConfig.threshold)
	}

	// Progress bar on stderr for interactive text runs; everything else
	// stays machine-readable on stdout.
	var progress parallel.ProgressCallback
	if isInteractive && !finalConfig.debug && finalConfig.format == "text" && len(sources) > 0 {
		progress = func(completed, total int) {
			fmt.Fprintf(os.Stderr, "\rComparing records... %d/%d (%d%%)", completed, total, completed*100/total)
			if completed == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	processor := parallel.NewProcessor(finalConfig.workers, observer)
	result, stats, err := processor.CompareWithProgress(sources, targets, finalConfig.threshold, progress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if debugObs != nil {
		debugObs.LogMetric("main", "worker_count", stats.WorkerCount)
		debugObs.LogMetric("main", "total_duration_ms", stats.TotalDuration.Milliseconds())
		debugObs.LogMetric("main", "avg_record_time_us", stats.AvgRecordTime.Microseconds())
	}

	report := shared.BuildReport(result, sources, targets)
	if err := writeReport(report, finalConfig, *inputFile, *sourceFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// promptForRun asks for the workbook path and threshold, the way the tool
// behaves when started with no arguments from a terminal. An empty
// threshold answer keeps the configured default.
func promptForRun(defaultThreshold int) (path string, threshold int, err error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Fprint(os.Stderr, "Enter path to the workbook to compare: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", 0, fmt.Errorf("no input file specified")
	}
	path = strings.TrimSpace(line)
	if path == "" {
		return "", 0, fmt.Errorf("no input file specified")
	}

	threshold = defaultThreshold
	fmt.Fprintf(os.Stderr, "Similarity threshold (0-100) [%d]: ", defaultThreshold)
	line, err = reader.ReadString('\n')
	if err == nil {
		if answer := strings.TrimSpace(line); answer != "" {
			parsed, convErr := strconv.Atoi(answer)
			if convErr != nil {
				return "", 0, fmt.Errorf("invalid threshold %q", answer)
			}
			threshold = parsed
		}
	}
	return path, threshold, nil
}

// loadRecordSets loads the two record sets from either a single workbook or
// a pair of CSV files.
func loadRecordSets(inputFile, sourceFile, targetFile string, cfg *config.Config, debugObs *observability.DebugObserver) ([]records.NameRecord, []records.NameRecord, error) {
	if sourceFile != "" || targetFile != "" {
		if sourceFile == "" || targetFile == "" {
			return nil, nil, fmt.Errorf("--source and --target must be used together")
		}
		if inputFile != "" {
			return nil, nil, fmt.Errorf("--file cannot be combined with --source/--target")
		}

		var finishStep func(bool, string)
		if debugObs != nil {
			finishStep = debugObs.StartStep("loader", "load CSV record sets")
		}
		sources, err := records.LoadCSV(sourceFile, cfg.Workbook.EnglishColumn, cfg.Workbook.VernacularColumn)
		if err != nil {
			if finishStep != nil {
				finishStep(false, err.Error())
			}
			return nil, nil, err
		}
		targets, err := records.LoadCSV(targetFile, cfg.Workbook.EnglishColumn, cfg.Workbook.VernacularColumn)
		if err != nil {
			if finishStep != nil {
				finishStep(false, err.Error())
			}
			return nil, nil, err
		}
		if finishStep != nil {
			finishStep(true, fmt.Sprintf("%d source, %d target records", len(sources), len(targets)))
		}
		return sources, targets, nil
	}

	var finishStep func(bool, string)
	if debugObs != nil {
		finishStep = debugObs.StartStep("loader", "load workbook record sets")
	}
	sources, targets, err := records.LoadWorkbook(inputFile, cfg.LoadOptions())
	if err != nil {
		if finishStep != nil {
			finishStep(false, err.Error())
		}
		return nil, nil, err
	}
	if finishStep != nil {
		finishStep(true, fmt.Sprintf("%d source, %d target records", len(sources), len(targets)))
	}
	return sources, targets, nil
}

// writeReport renders the report in the chosen format and routes it to the
// output file or stdout. The xlsx format is binary, so it always goes to a
// file; without --output it gets a timestamped name next to the input.
func writeReport(report shared.Report, finalConfig *finalConfiguration, inputFile, sourceFile string) error {
	options := formatters.FormatterOptions{
		Verbose: finalConfig.verbose,
		NoColor: finalConfig.noColor,
	}

	content, err := formatters.Export(finalConfig.format, report, options)
	if err != nil {
		return err
	}

	outputPath := finalConfig.output
	if finalConfig.format == "xlsx" && outputPath == "" {
		base := inputFile
		if base == "" {
			base = sourceFile
		}
		base = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
		outputPath = fmt.Sprintf("%s_duplicates_%s.xlsx", base, time.Now().Format("20060102_150405"))
	}

	if outputPath == "" {
		fmt.Print(content)
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Results written to %s\n", outputPath)
	return nil
}

// printProfiles lists the profiles available in the loaded configuration
func printProfiles(cfg *config.Config) {
	names := cfg.ListProfiles()
	if len(names) == 0 {
		fmt.Println("No profiles defined in configuration")
		return
	}
	fmt.Println("Available profiles:")
	for _, name := range names {
		profile := cfg.GetProfile(name)
		if profile.Description != "" {
			fmt.Printf("  %s - %s\n", name, profile.Description)
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
}

// isFlagSet checks if a flag was explicitly set on the command line
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
