package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/chasten/pkg/results"
)

// LLM renders a report as terse plain text: no ANSI codes, a SCOPE line,
// failing checks first, and every match as file:line:col.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats the report for language-model consumption.
func (l *LLM) Render(report *results.Chasten) string {
	var sb strings.Builder
	cfg := report.Configuration
	summaries := report.Summarize()

	failed := 0
	for _, s := range summaries {
		if !s.Passed {
			failed++
		}
	}
	sb.WriteString(fmt.Sprintf("SCOPE: project %s, %s, %d failed, search path %s\n",
		cfg.ProjectName, plural(len(summaries), "check"), failed, cfg.SearchPath))

	// failing checks first; order within each group is preserved
	ordered := make([]results.Summary, 0, len(summaries))
	for _, s := range summaries {
		if !s.Passed {
			ordered = append(ordered, s)
		}
	}
	for _, s := range summaries {
		if s.Passed {
			ordered = append(ordered, s)
		}
	}

	for _, s := range ordered {
		status := "PASS"
		if !s.Passed {
			status = "FAIL"
		}
		line := fmt.Sprintf("\n%s %s %s (%s): %s", status, s.ID, s.Name, s.Code, plural(s.Count, "match"))
		if len(s.Sources) > 0 {
			if b := bounds(s.Sources[0].Check); b != "" {
				line += ", expected " + b
			}
		}
		sb.WriteString(line + "\n")
		for _, src := range s.Sources {
			for _, m := range src.Check.Matches {
				sb.WriteString(fmt.Sprintf("  %s:%d:%d %s\n", src.Filename, m.Lineno, m.Coloffset, m.Linematch))
			}
		}
	}
	return sb.String()
}
