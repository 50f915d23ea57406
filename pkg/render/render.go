// Package render formats analysis reports for terminals, language models,
// and automation.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/chasten/pkg/results"
)

// Renderer converts a report to formatted output.
type Renderer interface {
	Render(report *results.Chasten) string
}

// ByFormat returns the renderer for a --format value. Unknown formats fall
// back to Terminal.
func ByFormat(format string, theme Theme, width int, verbose bool) Renderer {
	switch format {
	case "llm":
		return NewLLM()
	case "json":
		return NewJSON()
	case "sarif":
		return NewSARIF()
	default:
		t := NewTerminal(theme, width)
		t.Verbose = verbose
		return t
	}
}

// bounds describes a check's declared interval, "" when it has none.
func bounds(c *results.Check) string {
	switch {
	case c.Min != nil && c.Max != nil:
		return "count " + itoa(*c.Min) + ".." + itoa(*c.Max)
	case c.Min != nil:
		return "count >= " + itoa(*c.Min)
	case c.Max != nil:
		return "count <= " + itoa(*c.Max)
	default:
		return ""
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return itoa(n) + " " + word
	}
	return itoa(n) + " " + word + "s"
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

func widest(values []string) int {
	n := 0
	for _, v := range values {
		if w := runewidth.StringWidth(v); w > n {
			n = w
		}
	}
	return n
}

func trimLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimRight(l, " \t")
	}
	return out
}
