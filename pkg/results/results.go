package results

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkoosis/chasten/pkg/checks"
	"github.com/dkoosis/chasten/pkg/filter"
	"github.com/dkoosis/chasten/pkg/search"
)

// TimestampLayout formats Configuration.CreationDatetime.
const TimestampLayout = "20060102150405"

// ErrNoProject is returned when a header is requested without a project name.
var ErrNoProject = errors.New("project name is required")

// Header collects the run parameters recorded in a Configuration.
type Header struct {
	Version          string
	Project          string
	ConfigLocation   string
	SearchPath       string
	DebugLevel       string
	DebugDestination string
	Include          *filter.Criterion
	Exclude          *filter.Criterion
	Now              time.Time // zero means time.Now()
}

// NewConfiguration stamps h with a creation time and a fresh run id.
func NewConfiguration(h Header) (Configuration, error) {
	if strings.TrimSpace(h.Project) == "" {
		return Configuration{}, ErrNoProject
	}
	now := h.Now
	if now.IsZero() {
		now = time.Now()
	}
	return Configuration{
		ChastenVersion:   h.Version,
		ProjectName:      h.Project,
		ConfigDirectory:  h.ConfigLocation,
		SearchPath:       h.SearchPath,
		DebugLevel:       h.DebugLevel,
		DebugDestination: h.DebugDestination,
		CreationDatetime: now.Format(TimestampLayout),
		DatetimeUUID:     strings.ReplaceAll(uuid.NewString(), "-", ""),
		CheckInclude:     h.Include,
		CheckExclude:     h.Exclude,
	}, nil
}

// FileGroup holds the matches found in one file, in collaborator order.
type FileGroup struct {
	File    string
	Matches []search.Match
}

// OrganizeByFile groups matches by file in first-seen order.
func OrganizeByFile(matches []search.Match) []FileGroup {
	byFile := make(map[string][]search.Match)
	var order []string

	for _, m := range matches {
		if _, seen := byFile[m.Path]; !seen {
			order = append(order, m.Path)
		}
		byFile[m.Path] = append(byFile[m.Path], m)
	}

	groups := make([]FileGroup, 0, len(order))
	for _, file := range order {
		groups = append(groups, FileGroup{File: file, Matches: byFile[file]})
	}
	return groups
}

// NewMatch converts a collaborator match, stripping leading spaces from the
// matched line.
func NewMatch(m search.Match) Match {
	return Match{
		Lineno:    m.Line,
		Coloffset: m.Column,
		Linematch: strings.TrimLeft(m.Text, " "),
	}
}

// NewCheck builds the result form of declared for the given matches.
func NewCheck(declared checks.Check, raw []search.Match, passed bool) *Check {
	minCount, maxCount := declared.Bounds()
	matches := make([]Match, 0, len(raw))
	for _, m := range raw {
		matches = append(matches, NewMatch(m))
	}
	return &Check{
		ID:          declared.ID,
		Name:        declared.Name,
		Description: declared.Description,
		Code:        declared.Code,
		Min:         minCount,
		Max:         maxCount,
		Pattern:     declared.Pattern,
		Passed:      passed,
		Matches:     matches,
		RawMatches:  raw,
	}
}

// Aggregator accumulates sources for one run. It is not safe for concurrent
// use; checks are added in evaluation order.
type Aggregator struct {
	sources []Source
	failed  int
	checks  int
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// AddCheck records the outcome of declared over raw and reports whether it
// passed. A check with no matches still yields one Source, named after
// searchPath, so that "checked, found nothing" stays visible.
func (a *Aggregator) AddCheck(declared checks.Check, searchPath string, raw []search.Match) bool {
	minCount, maxCount := declared.Bounds()
	passed := checks.Passed(len(raw), minCount, maxCount)
	if !passed {
		a.failed++
	}
	a.checks++
	ordinal := a.checks

	if len(raw) == 0 {
		a.sources = append(a.sources, Source{
			Filename:  searchPath,
			Filelines: []string{},
			Check:     numbered(NewCheck(declared, nil, passed), ordinal),
		})
		return passed
	}

	for _, g := range OrganizeByFile(raw) {
		lines := g.Matches[0].FileLines
		if lines == nil {
			lines = []string{}
		}
		a.sources = append(a.sources, Source{
			Filename:  g.File,
			Filelines: lines,
			Check:     numbered(NewCheck(declared, g.Matches, passed), ordinal),
		})
	}
	return passed
}

func numbered(c *Check, ordinal int) *Check {
	c.Ordinal = ordinal
	return c
}

// Passed is true when no enforceable check has failed so far.
func (a *Aggregator) Passed() bool {
	return a.failed == 0
}

// Failed returns the number of checks that did not pass.
func (a *Aggregator) Failed() int {
	return a.failed
}

// Report assembles the accumulated sources under header.
func (a *Aggregator) Report(header Configuration) *Chasten {
	return BuildReport(header, a.sources)
}

// BuildReport assembles a report from sources, copying the slice.
func BuildReport(header Configuration, sources []Source) *Chasten {
	out := make([]Source, len(sources))
	copy(out, sources)
	return &Chasten{Configuration: header, Sources: out}
}
