// Package logging configures the process-wide slog logger from the debug
// level and destination chosen on the command line.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelCritical sits above slog.LevelError.
const LevelCritical = slog.LevelError + 4

var levels = []struct {
	name  string
	level slog.Level
}{
	{"DEBUG", slog.LevelDebug},
	{"INFO", slog.LevelInfo},
	{"WARNING", slog.LevelWarn},
	{"ERROR", slog.LevelError},
	{"CRITICAL", LevelCritical},
}

// LevelNames lists the accepted --debug-level values, most verbose first.
func LevelNames() []string {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.name
	}
	return names
}

// ParseLevel maps a level name, case-insensitively, to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, l := range levels {
		if l.name == want {
			return l.level, nil
		}
	}
	return 0, fmt.Errorf("unknown debug level %q (expected one of %s)", s, strings.Join(LevelNames(), ", "))
}

// LevelName is the inverse of ParseLevel.
func LevelName(level slog.Level) string {
	for _, l := range levels {
		if l.level == level {
			return l.name
		}
	}
	return level.String()
}

// Destination selects where log records go.
type Destination int

const (
	Console Destination = iota
	Syslog
)

func (d Destination) String() string {
	switch d {
	case Console:
		return "CONSOLE"
	case Syslog:
		return "SYSLOG"
	default:
		return fmt.Sprintf("Destination(%d)", int(d))
	}
}

// ParseDestination accepts "console" or "syslog" in any case.
func ParseDestination(s string) (Destination, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CONSOLE", "":
		return Console, nil
	case "SYSLOG":
		return Syslog, nil
	default:
		return Console, fmt.Errorf("unknown debug destination %q (expected console or syslog)", s)
	}
}

func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(LevelName(lvl))
		}
	}
	return a
}

// Init installs the default slog logger. Console logs go to w, or stderr
// when w is nil; Syslog ignores w. The returned function releases the
// destination and is never nil.
func Init(level slog.Level, dest Destination, w io.Writer) (func() error, error) {
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: replaceLevel}

	var (
		writer io.Writer
		closer = func() error { return nil }
	)
	switch dest {
	case Console:
		writer = w
		if writer == nil {
			writer = os.Stderr
		}
	case Syslog:
		sw, err := openSyslog()
		if err != nil {
			return closer, fmt.Errorf("open syslog: %w", err)
		}
		writer, closer = sw, sw.Close
	default:
		return closer, fmt.Errorf("unsupported debug destination %v", dest)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(writer, opts)))
	return closer, nil
}

// New returns a logger with a "component" attribute for module-scoped logging.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
