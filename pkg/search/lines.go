package search

import (
	"os"
	"strings"
)

// LineCache reads each file at most once per run.
type LineCache struct {
	files map[string][]string
}

// NewLineCache returns an empty cache.
func NewLineCache() *LineCache {
	return &LineCache{files: make(map[string][]string)}
}

// Lines returns the lines of path without trailing newlines. Unreadable files
// yield nil and are not retried.
func (c *LineCache) Lines(path string) []string {
	if lines, ok := c.files[path]; ok {
		return lines
	}
	var lines []string
	if data, err := os.ReadFile(path); err == nil {
		text := strings.ReplaceAll(string(data), "\r\n", "\n")
		text = strings.TrimSuffix(text, "\n")
		if text != "" {
			lines = strings.Split(text, "\n")
		}
	}
	c.files[path] = lines
	return lines
}

// Line returns the 1-based line n of path, or "" when out of range.
func (c *LineCache) Line(path string, n int) string {
	lines := c.Lines(path)
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}
