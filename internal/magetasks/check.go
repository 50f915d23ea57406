package magetasks

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/magefile/mage/sh"
)

// Test runs the unit tests.
func Test() error {
	if err := sh.RunWithV(env(nil), "go", "test", "./..."); err != nil {
		return fmt.Errorf("tests failed: %w", err)
	}
	return nil
}

// Coverage runs the tests with a coverage profile and prints the summary.
func Coverage() error {
	if err := sh.RunWithV(env(nil), "go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return fmt.Errorf("tests failed: %w", err)
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Race runs the tests under the race detector, which needs cgo.
func Race() error {
	return sh.RunWithV(env(map[string]string{"CGO_ENABLED": "1"}), "go", "test", "-race", "./...")
}

// Lint runs gofmt, go vet, and golangci-lint when it is installed.
func Lint() error {
	var errs []error

	out, err := sh.Output("gofmt", "-l", ".")
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("gofmt: %w", err))
	case out != "":
		errs = append(errs, fmt.Errorf("gofmt: files need formatting:\n%s", out))
	}

	if err := sh.RunV("go", "vet", "./..."); err != nil {
		errs = append(errs, fmt.Errorf("go vet: %w", err))
	}

	if err := sh.RunV("golangci-lint", "run", "--timeout=5m", "./..."); err != nil {
		if IsCommandNotFound(err) {
			fmt.Println("golangci-lint not found, skipping")
		} else {
			errs = append(errs, fmt.Errorf("golangci-lint: %w", err))
		}
	}
	return errors.Join(errs...)
}

// IsCommandNotFound reports whether err means the tool is not installed.
// sh wraps exec errors in its own type, so the message is checked as well.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "executable file not found") ||
		strings.Contains(msg, "no such file or directory")
}
