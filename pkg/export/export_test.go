package export

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/chasten/pkg/checks"
	"github.com/dkoosis/chasten/pkg/filter"
	"github.com/dkoosis/chasten/pkg/results"
	"github.com/dkoosis/chasten/pkg/search"
)

func sampleReport(t *testing.T) *results.Chasten {
	t.Helper()
	a := results.NewAggregator()
	a.AddCheck(checks.Check{
		ID: "C001", Name: "for-loop", Code: "FOR", Pattern: "//For",
		Count: &checks.Count{Min: checks.Int(1)},
	}, "src", []search.Match{
		{Path: "src/a.py", Line: 2, Column: 4, Text: "    for x in y:", FileLines: []string{"def f():", "    for x in y:"}},
		{Path: "src/a.py", Line: 5, Column: 0, Text: "for z in w:", FileLines: []string{"def f():", "    for x in y:"}},
	})
	a.AddCheck(checks.Check{ID: "C002", Name: "class-def", Code: "CLS", Pattern: "//ClassDef"}, "src", nil)

	cfg, err := results.NewConfiguration(results.Header{
		Version:    "0.1.0",
		Project:    "demo",
		SearchPath: "src",
		Include:    &filter.Criterion{Attribute: filter.AttributeName, Match: "loop", Confidence: 80},
		Now:        time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	return a.Report(cfg)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "chasten-results-demo-20240102030405-abc.json",
		FileName(ResultsPrefix, "demo", "20240102030405", "abc"))
}

func TestCheckProjectName(t *testing.T) {
	for _, ok := range []string{"demo", "my-project", "v1.2", "..demo"} {
		assert.NoError(t, CheckProjectName(ok), ok)
	}
	for _, bad := range []string{"../escape", "a/b", `a\b`, ".", ".."} {
		assert.ErrorIs(t, CheckProjectName(bad), ErrProjectName, bad)
	}
}

func TestSaveRejectsEscapingProjectName(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "out")
	report := sampleReport(t)
	report.Configuration.ProjectName = "../escape"

	_, err := SaveJSON(dir, report)
	require.ErrorIs(t, err, ErrProjectName)
	_, err = SaveCombined(dir, Combine("../escape", time.Now(), nil))
	require.ErrorIs(t, err, ErrProjectName)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveJSONAndRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	report := sampleReport(t)

	path, err := SaveJSON(dir, report)
	require.NoError(t, err)
	base := filepath.Base(path)
	assert.True(t, strings.HasPrefix(base, "chasten-results-demo-20240102030405-"), base)
	assert.True(t, strings.HasSuffix(base, ".json"))

	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, report.Configuration, back.Configuration)
	require.Len(t, back.Sources, 2)
	assert.Equal(t, "for x in y:", back.Sources[0].Check.Matches[0].Linematch)
	assert.Nil(t, back.Sources[0].Check.RawMatches)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "RawMatches")
	assert.NotContains(t, string(raw), "FileLines")
}

func TestReadReportRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "nope"},
		{"trailing data", `{"configuration":{"projectname":"p"},"sources":[]} {}`},
		{"missing project", `{"configuration":{},"sources":[]}`},
		{"sarif", `{"version":"2.1.0","runs":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadBytes([]byte(tt.input))
			assert.Error(t, err)
		})
	}

	r, err := ReadBytes([]byte("{\"configuration\":{\"projectname\":\"p\"},\"sources\":[]}\n\n"))
	require.NoError(t, err)
	assert.Equal(t, "p", r.Configuration.ProjectName)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport(t)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, CSVHeader, rows[0])

	assert.Equal(t, []string{
		"demo", "0.1.0", "20240102030405",
		"src/a.py", "C001", "for-loop", "", "FOR",
		"//For", "1", "", "true",
		"2", "4", "for x in y:",
	}, rows[1])
	assert.Equal(t, "5", rows[2][12])

	// zero-match check keeps a row with empty match columns
	assert.Equal(t, "src", rows[3][3])
	assert.Equal(t, "C002", rows[3][4])
	assert.Equal(t, []string{"", "", ""}, rows[3][12:])
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "chasten.db")
	report := sampleReport(t)
	require.NoError(t, WriteSQLite(path, report))
	// appending a second time adds rows rather than failing on existing tables
	require.NoError(t, WriteSQLite(path, report))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	count := func(table string) int {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
		return n
	}
	assert.Equal(t, 2, count("main"))
	assert.Equal(t, 4, count("sources"))
	assert.Equal(t, 4, count("sources_check_matches"))

	var include sql.NullString
	var exclude sql.NullString
	require.NoError(t, db.QueryRow(
		"SELECT configuration_checkinclude, configuration_checkexclude FROM main LIMIT 1",
	).Scan(&include, &exclude))
	assert.JSONEq(t, `{"attribute":"name","match":"loop","confidence":80}`, include.String)
	assert.False(t, exclude.Valid)

	var minCount, maxCount sql.NullInt64
	var passed bool
	require.NoError(t, db.QueryRow(
		"SELECT check_min, check_max, check_passed FROM sources WHERE check_id = 'C001' LIMIT 1",
	).Scan(&minCount, &maxCount, &passed))
	assert.Equal(t, int64(1), minCount.Int64)
	assert.False(t, maxCount.Valid)
	assert.True(t, passed)

	var linematch string
	require.NoError(t, db.QueryRow(`
		SELECT m.linematch FROM sources_check_matches m
		JOIN sources s ON s._link = m._link_sources
		WHERE s.check_id = 'C001' ORDER BY m._link LIMIT 1`).Scan(&linematch))
	assert.Equal(t, "for x in y:", linematch)
}

func TestCombine(t *testing.T) {
	dir := t.TempDir()
	a, b := sampleReport(t), sampleReport(t)
	c := Combine("all", time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), []*results.Chasten{a, b})
	assert.Equal(t, "20240506070809", c.CreationDatetime)
	assert.Len(t, c.DatetimeUUID, 32)

	path, err := SaveCombined(dir, c)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "chasten-integrated-results-all-20240506070809-"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"reports"`)

	empty := Combine("none", time.Now(), nil)
	assert.NotNil(t, empty.Reports)
}
