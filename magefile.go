//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"

	"github.com/dkoosis/chasten/internal/magetasks"
)

// Default target - build the binary
var Default = Build

func init() {
	if err := magetasks.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}

// Build builds bin/chasten with version metadata.
func Build() error {
	return magetasks.Build()
}

// Clean removes build artifacts.
func Clean() error {
	return magetasks.Clean()
}

// Test runs all tests.
func Test() error {
	return magetasks.Test()
}

// Coverage runs tests with a coverage profile.
func Coverage() error {
	return magetasks.Coverage()
}

// Race runs tests with the race detector.
func Race() error {
	return magetasks.Race()
}

// Lint runs gofmt, go vet, and golangci-lint.
func Lint() error {
	return magetasks.Lint()
}

// QA runs lint and tests, then builds.
func QA() error {
	mg.SerialDeps(Lint, Test)
	return Build()
}
