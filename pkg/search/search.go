// Package search is the boundary to the external pattern matcher. The matcher
// itself is not implemented here; this package defines the records it yields
// and an adapter that runs a matcher binary.
package search

import (
	"context"
	"os"
)

// Record is one item produced by a matcher: a Match or a Diagnostic.
type Record interface {
	record()
}

// Match is one occurrence of a pattern.
type Match struct {
	Path      string
	Line      int      // 1-based
	Column    int      // 0-based
	Text      string   // the matched source line
	FileLines []string // every line of Path, for rendering context
}

// Diagnostic is anything else the matcher reports (unparseable files,
// warnings). Consumers forward it to logs and otherwise ignore it.
type Diagnostic struct {
	Path    string
	Message string
}

func (Match) record()      {}
func (Diagnostic) record() {}

// Searcher evaluates a pattern over paths.
type Searcher interface {
	Search(ctx context.Context, paths []string, pattern string) ([]Record, error)
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, paths []string, pattern string) ([]Record, error)

// Search calls f.
func (f SearcherFunc) Search(ctx context.Context, paths []string, pattern string) ([]Record, error) {
	return f(ctx, paths, pattern)
}

// Matches splits records into matches, in their original order, and the rest.
func Matches(records []Record) (matches []Match, others []Record) {
	for _, r := range records {
		if m, ok := r.(Match); ok {
			matches = append(matches, m)
			continue
		}
		others = append(others, r)
	}
	return matches, others
}

// Paths returns the candidates that exist, deduplicated, in order. The second
// result lists the ones that do not.
func Paths(candidates []string) (valid, invalid []string) {
	seen := make(map[string]bool, len(candidates))
	for _, p := range candidates {
		if seen[p] {
			continue
		}
		seen[p] = true
		if _, err := os.Stat(p); err != nil {
			invalid = append(invalid, p)
			continue
		}
		valid = append(valid, p)
	}
	return valid, invalid
}
