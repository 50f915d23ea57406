// chasten checks a code base against configurable structural rules.
//
// Usage:
//
//	chasten analyze PROJECT --search-path src [--config DIR|FILE|URL]
//	chasten configure validate [--config DIR|FILE|URL]
//	chasten configure create [--force]
//	chasten integrate PROJECT results-*.json [--save-csv] [--save-db]
//
// Each check's pattern is evaluated by an external search tool (pyastgrep by
// default) and its match count is compared with the check's declared bounds.
//
// Output modes for analyze (auto-detected):
//
//	terminal  styled output (default when TTY)
//	llm       terse plain text (default when piped)
//	json      the report as it is saved
//
// Exit codes: 0 all checks passed, 1 a check failed or the run aborted,
// 2 usage error.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"golang.org/x/term"

	"github.com/dkoosis/chasten/pkg/config"
	"github.com/dkoosis/chasten/pkg/search"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries the process collaborators so tests can replace them.
type app struct {
	stdout, stderr io.Writer

	newSearcher func(name string) search.Searcher
	discover    func() (string, error)
	now         func() time.Time
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		newSearcher: func(name string) search.Searcher {
			return search.NewCommand(name)
		},
		discover: config.DefaultDirectory,
		now:      time.Now,
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newApp(stdout, stderr).execute(ctx, args)
}

// usageError marks bad invocations (exit 2).
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// errChecksFailed ends a run whose report was written but did not pass.
var errChecksFailed = errors.New("one or more checks failed")

func (a *app) execute(ctx context.Context, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)

	var usage usageError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errChecksFailed):
		return 1
	case errors.As(err, &usage):
		fmt.Fprintf(a.stderr, "chasten: %v\n", err)
		fmt.Fprintf(a.stderr, "Run 'chasten --help' for usage.\n")
		return 2
	default:
		fmt.Fprintf(a.stderr, "chasten: %v\n", err)
		return 1
	}
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width for w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}

// resolveFormat maps "auto" to terminal on a TTY and llm otherwise.
func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	if isTTYWriter(w) {
		return "terminal"
	}
	return "llm"
}
