package search

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultCommand is the matcher binary used when none is configured.
const DefaultCommand = "pyastgrep"

// Command runs an external matcher as `Name Args... -- pattern paths...` and
// reads grep-style `file:line:col:text` lines from its stdout. Columns in
// that output are 1-based. The `--` keeps a pattern or path that starts with
// a dash from being read as an option.
type Command struct {
	Name  string
	Args  []string
	Lines *LineCache
}

// NewCommand returns a Command for name with a fresh line cache.
func NewCommand(name string, args ...string) *Command {
	if name == "" {
		name = DefaultCommand
	}
	return &Command{Name: name, Args: args, Lines: NewLineCache()}
}

// Search runs the matcher once over all paths.
func (c *Command) Search(ctx context.Context, paths []string, pattern string) ([]Record, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	args := append(append([]string{}, c.Args...), "--", pattern)
	args = append(args, paths...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && stdout.Len() == 0:
		// grep convention: status 1 with no output means nothing matched
	default:
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("run %s: %w: %s", c.Name, err, msg)
		}
		return nil, fmt.Errorf("run %s: %w", c.Name, err)
	}

	records, err := c.parse(&stdout)
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(strings.TrimSpace(stderr.String()), "\n") {
		if line != "" {
			records = append(records, Diagnostic{Message: line})
		}
	}
	return records, nil
}

func (c *Command) parse(out *bytes.Buffer) ([]Record, error) {
	lines := c.Lines
	if lines == nil {
		lines = NewLineCache()
		c.Lines = lines
	}
	var records []Record
	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		file, ln, col, text, ok := ParseLine(line)
		if !ok {
			records = append(records, Diagnostic{Message: line})
			continue
		}
		records = append(records, Match{
			Path:      file,
			Line:      ln,
			Column:    col,
			Text:      text,
			FileLines: lines.Lines(file),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s output: %w", c.Name, err)
	}
	return records, nil
}

// ParseLine parses `file:line:col:text` with a 1-based column and returns a
// 0-based column. Windows drive-letter prefixes (C:\path) are kept on the file.
func ParseLine(line string) (file string, ln, col int, text string, ok bool) {
	rest := line
	var prefix string
	if len(rest) >= 3 && rest[1] == ':' && (rest[2] == '\\' || rest[2] == '/') {
		prefix = rest[:2]
		rest = rest[2:]
	}

	parts := strings.SplitN(rest, ":", 4)
	if len(parts) < 4 || parts[0] == "" {
		return "", 0, 0, "", false
	}
	ln, err := strconv.Atoi(parts[1])
	if err != nil || ln < 1 {
		return "", 0, 0, "", false
	}
	col, err = strconv.Atoi(parts[2])
	if err != nil || col < 0 {
		return "", 0, 0, "", false
	}
	if col > 0 {
		col--
	}
	return prefix + parts[0], ln, col, parts[3], true
}
