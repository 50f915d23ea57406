package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dkoosis/chasten/internal/logging"
	"github.com/dkoosis/chasten/internal/version"
	"github.com/dkoosis/chasten/pkg/config"
	"github.com/dkoosis/chasten/pkg/export"
	"github.com/dkoosis/chasten/pkg/filter"
	"github.com/dkoosis/chasten/pkg/render"
	"github.com/dkoosis/chasten/pkg/results"
	"github.com/dkoosis/chasten/pkg/search"
)

type analyzeFlags struct {
	searchPath  string
	config      string
	include     string
	exclude     string
	saveDir     string
	storeResult bool
	saveCSV     bool
	saveDB      bool
	format      string
	theme       string
	verbose     bool
	debugLevel  string
	debugDest   string
	searcher    string
}

var validFormats = []string{"auto", "terminal", "llm", "json", "sarif"}

func newAnalyzeCmd(a *app) *cobra.Command {
	var fl analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze PROJECT",
		Short: "Run every configured check over a search path",
		Long: `Analyze resolves the configuration, filters its checks, evaluates each
check's pattern over the search path, and reports which checks passed.

Examples:
  chasten analyze myproject --search-path src
  chasten analyze myproject --search-path src --config ./chasten
  chasten analyze myproject --search-path src --check-include name,loop,80
  chasten analyze myproject --search-path src --store-result --save-directory out`,
		Args: argsExactly(1, "a project name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, args[0], fl)
		},
	}
	f := cmd.Flags()
	f.StringVar(&fl.searchPath, "search-path", "", "Directory or file to search (required)")
	f.StringVar(&fl.config, "config", "", "Config directory, file, or URL (default: $"+config.EnvConfig+", then the user config directory)")
	f.StringVar(&fl.include, "check-include", "", "Keep checks matching attribute,match[,confidence] (match may contain commas)")
	f.StringVar(&fl.exclude, "check-exclude", "", "Drop checks matching attribute,match[,confidence] (match may contain commas)")
	f.StringVar(&fl.saveDir, "save-directory", ".", "Directory for saved results")
	f.BoolVar(&fl.storeResult, "store-result", false, "Save the report as JSON")
	f.BoolVar(&fl.saveCSV, "save-csv", false, "Save the report as CSV")
	f.BoolVar(&fl.saveDB, "save-db", false, "Append the report to chasten.db (SQLite)")
	f.StringVar(&fl.format, "format", "auto", "Output format: auto, terminal, llm, json, sarif")
	f.StringVar(&fl.theme, "theme", "default", "Theme: "+strings.Join(render.ThemeNames, ", "))
	f.BoolVar(&fl.verbose, "verbose", false, "Show every match with surrounding lines")
	f.StringVar(&fl.searcher, "searcher", search.DefaultCommand, "Search tool that evaluates check patterns")
	addDebugFlags(f, &fl.debugLevel, &fl.debugDest)
	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, project string, fl analyzeFlags) error {
	if strings.TrimSpace(project) == "" {
		return usagef("project name must not be empty")
	}
	if err := export.CheckProjectName(project); err != nil {
		return usagef("%v", err)
	}
	if fl.searchPath == "" {
		return usagef("--search-path is required")
	}
	if !slices.Contains(validFormats, fl.format) {
		return usagef("unknown format %q (expected %s)", fl.format, strings.Join(validFormats, ", "))
	}
	include, err := filter.ParseCriterionFlag(fl.include)
	if err != nil {
		return usagef("--check-include: %v", err)
	}
	exclude, err := filter.ParseCriterionFlag(fl.exclude)
	if err != nil {
		return usagef("--check-exclude: %v", err)
	}

	closeLog, err := a.initLogging(fl.debugLevel, fl.debugDest)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck
	log := logging.New("analyze")

	valid, invalid := search.Paths([]string{fl.searchPath})
	for _, p := range invalid {
		log.Warn("skipping missing search path", slog.String("path", p))
	}
	if len(valid) == 0 {
		return fmt.Errorf("search path %s does not exist", fl.searchPath)
	}

	resolver, err := config.NewResolver(logging.New("config"))
	if err != nil {
		return err
	}
	resolver.Discover = a.discover
	res, err := resolver.Resolve(cmd.Context(), config.Location(fl.config))
	if err != nil {
		return fmt.Errorf("cannot resolve configuration: %w", err)
	}

	selected := filter.Apply(res.Checks, include, exclude)
	log.Info("checks selected", slog.Int("declared", len(res.Checks)), slog.Int("selected", len(selected)))

	header, err := results.NewConfiguration(results.Header{
		Version:          version.Version,
		Project:          project,
		ConfigLocation:   res.Location,
		SearchPath:       fl.searchPath,
		DebugLevel:       strings.ToUpper(fl.debugLevel),
		DebugDestination: strings.ToUpper(fl.debugDest),
		Include:          include,
		Exclude:          exclude,
		Now:              a.now(),
	})
	if err != nil {
		return usageError{err}
	}

	searcher := a.newSearcher(fl.searcher)
	agg := results.NewAggregator()
	for _, chk := range selected {
		records, err := searcher.Search(cmd.Context(), valid, chk.Pattern)
		if err != nil {
			return fmt.Errorf("check %s: %w", chk.ID, err)
		}
		matches, others := search.Matches(records)
		for _, r := range others {
			if d, ok := r.(search.Diagnostic); ok {
				log.Debug("search diagnostic", slog.String("check", chk.ID), slog.String("path", d.Path), slog.String("message", d.Message))
			}
		}
		passed := agg.AddCheck(chk, fl.searchPath, matches)
		log.Debug("check evaluated", slog.String("check", chk.ID), slog.Int("matches", len(matches)), slog.Bool("passed", passed))
	}
	report := agg.Report(header)

	format := resolveFormat(fl.format, a.stdout)
	theme := render.ThemeByName(fl.theme)
	if os.Getenv("NO_COLOR") != "" {
		theme = render.MonoTheme()
	}
	fmt.Fprint(a.stdout, render.ByFormat(format, theme, termWidth(a.stdout), fl.verbose).Render(report))

	if err := a.save(report, fl); err != nil {
		return err
	}
	if !agg.Passed() {
		return errChecksFailed
	}
	return nil
}

// save writes the requested result files and lists them on stderr.
func (a *app) save(report *results.Chasten, fl analyzeFlags) error {
	var written []string
	if fl.storeResult {
		path, err := export.SaveJSON(fl.saveDir, report)
		if err != nil {
			return err
		}
		written = append(written, path)
	}
	if fl.saveCSV {
		cfg := report.Configuration
		name := strings.TrimSuffix(export.FileName(export.ResultsPrefix, cfg.ProjectName, cfg.CreationDatetime, cfg.DatetimeUUID), ".json") + ".csv"
		path, err := writeCSVFile(filepath.Join(fl.saveDir, name), report)
		if err != nil {
			return err
		}
		written = append(written, path)
	}
	if fl.saveDB {
		path := filepath.Join(fl.saveDir, databaseName)
		if err := export.WriteSQLite(path, report); err != nil {
			return err
		}
		written = append(written, path)
	}
	for _, p := range written {
		fmt.Fprintf(a.stderr, "saved %s\n", p)
	}
	return nil
}

const databaseName = "chasten.db"

func writeCSVFile(path string, reports ...*results.Chasten) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	if err := export.WriteCSV(f, reports...); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close csv: %w", err)
	}
	return path, nil
}
