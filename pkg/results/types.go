// Package results builds the report tree produced by an analysis run: a
// Configuration header plus one Source per (check, file) pair.
package results

import (
	"github.com/dkoosis/chasten/pkg/filter"
	"github.com/dkoosis/chasten/pkg/search"
)

// Configuration is the report header. It is built once per run.
type Configuration struct {
	ChastenVersion   string            `json:"chastenversion"`
	ProjectName      string            `json:"projectname"`
	ConfigDirectory  string            `json:"configdirectory"`
	SearchPath       string            `json:"searchpath"`
	DebugLevel       string            `json:"debuglevel"`
	DebugDestination string            `json:"debugdestination"`
	CreationDatetime string            `json:"creationdatetime"`
	DatetimeUUID     string            `json:"datetimeuuid"`
	CheckInclude     *filter.Criterion `json:"checkinclude"`
	CheckExclude     *filter.Criterion `json:"checkexclude"`
}

// Match is one persisted occurrence.
type Match struct {
	Lineno    int    `json:"lineno"`
	Coloffset int    `json:"coloffset"`
	Linematch string `json:"linematch"`
}

// Check is the evaluated form of a declared check for one source file.
// RawMatches keeps the collaborator records for rendering and is never
// written out. Ordinal numbers the check's evaluation within a run from 1 and
// is zero on a decoded report.
type Check struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Code        string         `json:"code"`
	Min         *int           `json:"min"`
	Max         *int           `json:"max"`
	Pattern     string         `json:"pattern"`
	Passed      bool           `json:"passed"`
	Matches     []Match        `json:"matches"`
	RawMatches  []search.Match `json:"-"`
	Ordinal     int            `json:"-"`
}

// Source pairs a file with the check result produced against it.
type Source struct {
	Filename  string   `json:"filename"`
	Filelines []string `json:"filelines"`
	Check     *Check   `json:"check"`
}

// Chasten is a complete report.
type Chasten struct {
	Configuration Configuration `json:"configuration"`
	Sources       []Source      `json:"sources"`
}
