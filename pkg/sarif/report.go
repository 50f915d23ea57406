package sarif

import (
	"fmt"

	"github.com/dkoosis/chasten/pkg/results"
)

// ToolName is the driver name written into documents built from reports.
const ToolName = "chasten"

// FromReport converts a report into a single-run document. Every declared
// check becomes a rule. Each match becomes a result at error level when its
// check failed and note level when it passed; a failed check with no matches
// yields one location-less result so the violation is still visible.
func FromReport(report *results.Chasten) *Document {
	return NewBuilderFromReport(report).Document()
}

// NewBuilderFromReport returns a builder pre-populated from report.
func NewBuilderFromReport(report *results.Chasten) *Builder {
	b := NewBuilder(ToolName, report.Configuration.ChastenVersion)
	for _, s := range report.Summarize() {
		first := s.Sources[0].Check
		b.AddRule(s.ID, s.Name, first.Description)

		level := LevelNote
		if !s.Passed {
			level = LevelError
		}
		if s.Count == 0 {
			if !s.Passed {
				b.AddResult(s.ID, level, message(first, 0), "", 0, 0, "")
			}
			continue
		}
		for _, src := range s.Sources {
			for _, m := range src.Check.Matches {
				b.AddResult(s.ID, level, message(src.Check, s.Count),
					src.Filename, m.Lineno, m.Coloffset+1, m.Linematch)
			}
		}
	}
	return b
}

func message(c *results.Check, count int) string {
	msg := fmt.Sprintf("%s: %d match(es) for %s", c.Name, count, c.Code)
	switch {
	case c.Min != nil && c.Max != nil:
		msg += fmt.Sprintf(", expected between %d and %d", *c.Min, *c.Max)
	case c.Min != nil:
		msg += fmt.Sprintf(", expected at least %d", *c.Min)
	case c.Max != nil:
		msg += fmt.Sprintf(", expected at most %d", *c.Max)
	}
	return msg
}
