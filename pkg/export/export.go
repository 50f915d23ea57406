// Package export persists reports: JSON files named by run, flat CSV, and a
// relational SQLite layout.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkoosis/chasten/pkg/results"
)

const (
	// ResultsPrefix names the JSON file of a single analysis run.
	ResultsPrefix = "chasten-results"
	// IntegratedPrefix names the combined file written by integrate.
	IntegratedPrefix = "chasten-integrated-results"
)

var (
	// ErrNotReport is returned for JSON that does not look like a saved report.
	ErrNotReport = errors.New("not a chasten report")
	// ErrProjectName is returned for a project name that cannot be used as
	// part of a file name.
	ErrProjectName = errors.New("project name cannot be used in a file name")
)

// CheckProjectName rejects names that would place a result file outside its
// save directory: path separators and the "." and ".." elements.
func CheckProjectName(project string) error {
	if strings.ContainsAny(project, `/\`) || project == "." || project == ".." {
		return fmt.Errorf("%w: %q", ErrProjectName, project)
	}
	return nil
}

// FileName joins the parts of a result file name:
// <prefix>-<project>-<timestamp>-<uuid>.json.
func FileName(prefix, project, timestamp, id string) string {
	return fmt.Sprintf("%s-%s-%s-%s.json", prefix, project, timestamp, id)
}

// SaveJSON writes report as indented JSON under dir, creating dir if needed,
// and returns the written path.
func SaveJSON(dir string, report *results.Chasten) (string, error) {
	cfg := report.Configuration
	if err := CheckProjectName(cfg.ProjectName); err != nil {
		return "", err
	}
	name := FileName(ResultsPrefix, cfg.ProjectName, cfg.CreationDatetime, cfg.DatetimeUUID)
	return writeJSON(dir, name, report)
}

func writeJSON(dir, name string, v any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode results: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write results: %w", err)
	}
	return path, nil
}

// ReadFile loads a saved report from disk.
func ReadFile(path string) (*results.Chasten, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	return ReadReport(f)
}

// ReadReport decodes exactly one report from r.
func ReadReport(r io.Reader) (*results.Chasten, error) {
	dec := json.NewDecoder(r)
	var report results.Chasten
	if err := dec.Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode report: %w: trailing data", ErrNotReport)
	}
	if strings.TrimSpace(report.Configuration.ProjectName) == "" {
		return nil, fmt.Errorf("decode report: %w: missing project name", ErrNotReport)
	}
	return &report, nil
}

// ReadBytes is ReadReport over an in-memory document.
func ReadBytes(data []byte) (*results.Chasten, error) {
	return ReadReport(bytes.NewReader(data))
}

// Combined bundles several saved reports under one project.
type Combined struct {
	ProjectName      string             `json:"projectname"`
	CreationDatetime string             `json:"creationdatetime"`
	DatetimeUUID     string             `json:"datetimeuuid"`
	Reports          []*results.Chasten `json:"reports"`
}

// Combine bundles reports in the given order.
func Combine(project string, now time.Time, reports []*results.Chasten) *Combined {
	if reports == nil {
		reports = []*results.Chasten{}
	}
	return &Combined{
		ProjectName:      project,
		CreationDatetime: now.Format(results.TimestampLayout),
		DatetimeUUID:     strings.ReplaceAll(uuid.NewString(), "-", ""),
		Reports:          reports,
	}
}

// SaveCombined writes c under dir and returns the path.
func SaveCombined(dir string, c *Combined) (string, error) {
	if err := CheckProjectName(c.ProjectName); err != nil {
		return "", err
	}
	name := FileName(IntegratedPrefix, c.ProjectName, c.CreationDatetime, c.DatetimeUUID)
	return writeJSON(dir, name, c)
}
