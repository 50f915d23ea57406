package render

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/chasten/pkg/filter"
	"github.com/dkoosis/chasten/pkg/results"
)

// contextLines is how many lines surround a match in verbose output.
const contextLines = 2

var titler = cases.Title(language.English)

// Terminal renders a report as styled text via lipgloss.
type Terminal struct {
	theme Theme
	width int

	// Verbose lists every match with surrounding source lines.
	Verbose bool
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats the header, one line per check, and the run verdict.
func (t *Terminal) Render(report *results.Chasten) string {
	var sb strings.Builder
	t.renderHeader(&sb, report.Configuration)

	summaries := report.Summarize()
	sb.WriteString("\n")
	sb.WriteString(t.theme.Title.Render(titler.String("checks") + " (" + itoa(len(summaries)) + ")"))
	sb.WriteString("\n")

	ids := make([]string, len(summaries))
	names := make([]string, len(summaries))
	for i, s := range summaries {
		ids[i] = s.ID
		names[i] = s.Name
	}
	idWidth := widest(ids)
	nameWidth := min(widest(names), 40)

	failed := 0
	for _, s := range summaries {
		if !s.Passed {
			failed++
		}
		t.renderCheck(&sb, s, idWidth, nameWidth)
	}

	sb.WriteString("\n")
	switch {
	case len(summaries) == 0:
		sb.WriteString(t.theme.Info.Render(t.theme.Icons.Info + " no checks were run"))
	case failed == 0:
		sb.WriteString(t.theme.Pass.Render(t.theme.Icons.Pass + " all " + plural(len(summaries), "check") + " passed"))
	default:
		sb.WriteString(t.theme.Fail.Render(t.theme.Icons.Fail + " " + itoa(failed) + " of " + plural(len(summaries), "check") + " failed"))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (t *Terminal) renderHeader(sb *strings.Builder, cfg results.Configuration) {
	sb.WriteString(t.theme.Title.Render("chasten " + cfg.ProjectName))
	if cfg.ChastenVersion != "" {
		sb.WriteString(t.theme.Muted.Render("  v" + strings.TrimPrefix(cfg.ChastenVersion, "v")))
	}
	sb.WriteString("\n")
	row := func(label, value string) {
		if value == "" {
			return
		}
		sb.WriteString("  " + t.theme.Muted.Render(padRight(label, 12)) + value + "\n")
	}
	row("config", cfg.ConfigDirectory)
	row("search path", cfg.SearchPath)
	row("include", criterion(cfg.CheckInclude))
	row("exclude", criterion(cfg.CheckExclude))
}

func criterion(c *filter.Criterion) string {
	if c.Absent() {
		return ""
	}
	return titler.String(c.Attribute.String()) + " ~ " + strconv.Quote(c.Match) + " (confidence " + itoa(c.Confidence) + ")"
}

func (t *Terminal) renderCheck(sb *strings.Builder, s results.Summary, idWidth, nameWidth int) {
	icon, style := t.theme.Icons.Pass, t.theme.Pass
	if !s.Passed {
		icon, style = t.theme.Icons.Fail, t.theme.Fail
	}
	sb.WriteString("  ")
	sb.WriteString(style.Render(icon))
	sb.WriteString(" ")
	sb.WriteString(padRight(s.ID, idWidth))
	sb.WriteString("  ")
	sb.WriteString(padRight(truncate(s.Name, nameWidth), nameWidth))
	sb.WriteString("  ")
	sb.WriteString(padLeft(plural(s.Count, "match"), 11))
	if n := len(s.Files); n > 0 {
		sb.WriteString(t.theme.Muted.Render(" in " + plural(n, "file")))
	}
	if len(s.Sources) > 0 {
		if b := bounds(s.Sources[0].Check); b != "" {
			sb.WriteString(t.theme.Muted.Render("  [" + b + "]"))
		}
	}
	sb.WriteString("\n")

	if !t.Verbose {
		return
	}
	for _, src := range s.Sources {
		for _, m := range src.Check.Matches {
			t.renderMatch(sb, src, m)
		}
	}
}

func (t *Terminal) renderMatch(sb *strings.Builder, src results.Source, m results.Match) {
	loc := src.Filename + ":" + itoa(m.Lineno) + ":" + itoa(m.Coloffset)
	sb.WriteString("      " + t.theme.Info.Render(t.theme.Icons.Arrow+" "+loc) + "\n")

	lines := trimLines(src.Filelines)
	if len(lines) == 0 {
		sb.WriteString("        " + m.Linematch + "\n")
		return
	}
	first := max(1, m.Lineno-contextLines)
	last := min(len(lines), m.Lineno+contextLines)
	gutter := len(itoa(last))
	for n := first; n <= last; n++ {
		text := truncate(lines[n-1], max(t.width-gutter-11, 20))
		num := t.theme.Gutter.Render(padLeft(itoa(n), gutter) + " | ")
		if n == m.Lineno {
			sb.WriteString("        " + num + t.theme.Hit.Render(text) + "\n")
			continue
		}
		sb.WriteString("        " + num + t.theme.Muted.Render(text) + "\n")
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
