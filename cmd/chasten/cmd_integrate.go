package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dkoosis/chasten/internal/detect"
	"github.com/dkoosis/chasten/internal/logging"
	"github.com/dkoosis/chasten/pkg/export"
	"github.com/dkoosis/chasten/pkg/results"
)

type integrateFlags struct {
	saveDir    string
	saveCSV    bool
	saveDB     bool
	debugLevel string
	debugDest  string
}

func newIntegrateCmd(a *app) *cobra.Command {
	var fl integrateFlags
	cmd := &cobra.Command{
		Use:   "integrate PROJECT FILE...",
		Short: "Combine saved JSON reports into one result set",
		Long: `Integrate reads reports saved by 'analyze --store-result', writes them
as one combined JSON file, and optionally flattens them to CSV or a
SQLite database. Files that are not chasten reports are skipped.`,
		Args: argsAtLeast(2, "a project name and at least one report file"),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runIntegrate(args[0], args[1:], fl)
		},
	}
	f := cmd.Flags()
	f.StringVar(&fl.saveDir, "save-directory", ".", "Directory for the combined results")
	f.BoolVar(&fl.saveCSV, "save-csv", false, "Also save the combined results as CSV")
	f.BoolVar(&fl.saveDB, "save-db", false, "Also append the reports to chasten.db (SQLite)")
	addDebugFlags(f, &fl.debugLevel, &fl.debugDest)
	return cmd
}

func (a *app) runIntegrate(project string, files []string, fl integrateFlags) error {
	if strings.TrimSpace(project) == "" {
		return usagef("project name must not be empty")
	}
	if err := export.CheckProjectName(project); err != nil {
		return usagef("%v", err)
	}
	closeLog, err := a.initLogging(fl.debugLevel, fl.debugDest)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck
	log := logging.New("integrate")

	var reports []*results.Chasten
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(a.stderr, "chasten: warning: skipping %s: %v\n", path, err)
			continue
		}
		if format := detect.Sniff(data); format != detect.Report {
			fmt.Fprintf(a.stderr, "chasten: warning: skipping %s: %s is not a chasten report\n", path, format)
			continue
		}
		r, err := export.ReadBytes(data)
		if err != nil {
			fmt.Fprintf(a.stderr, "chasten: warning: skipping %s: %v\n", path, err)
			continue
		}
		log.Debug("report loaded", slog.String("path", path), slog.Int("sources", len(r.Sources)))
		reports = append(reports, r)
	}
	if len(reports) == 0 {
		return fmt.Errorf("no reports to integrate")
	}

	combined := export.Combine(project, a.now(), reports)
	path, err := export.SaveCombined(fl.saveDir, combined)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "integrated %d report(s) into %s\n", len(reports), path)

	if fl.saveCSV {
		csvPath, err := writeCSVFile(strings.TrimSuffix(path, ".json")+".csv", reports...)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "saved %s\n", csvPath)
	}
	if fl.saveDB {
		dbPath := filepath.Join(fl.saveDir, databaseName)
		if err := export.WriteSQLite(dbPath, reports...); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "saved %s\n", dbPath)
	}
	return nil
}
