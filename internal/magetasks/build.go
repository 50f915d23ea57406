package magetasks

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/sh"
)

// Ldflags stamps version metadata into internal/version.
func Ldflags(version, commit, date string) string {
	pkg := ModulePath + "/internal/version"
	return fmt.Sprintf("-s -w -X '%s.Version=%s' -X '%s.CommitHash=%s' -X '%s.BuildDate=%s'",
		pkg, version, pkg, commit, pkg, date)
}

// Build compiles the chasten binary.
func Build() error {
	ldflags := Ldflags(gitVersion(), gitCommit(), time.Now().UTC().Format(time.RFC3339))
	fmt.Println("Building chasten...")
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", BinPath, MainPackage); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	fmt.Printf("Built: %s\n", BinPath)
	return nil
}

// Clean removes bin/, the coverage profile, and the build cache.
func Clean() error {
	if err := sh.Rm("./bin"); err != nil {
		return err
	}
	if err := sh.Rm("coverage.out"); err != nil {
		return err
	}
	return sh.Run("go", "clean", "-cache")
}

func gitVersion() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty", "--match=v*")
	if err != nil || out == "" {
		return "dev"
	}
	return strings.TrimSpace(out)
}

func gitCommit() string {
	out, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil || out == "" {
		return "unknown"
	}
	return strings.TrimSpace(out)
}

// env returns the process environment with overrides, for sh.RunWith.
func env(overrides map[string]string) map[string]string {
	out := make(map[string]string, len(overrides))
	for k, v := range overrides {
		out[k] = v
	}
	if _, ok := out["CGO_ENABLED"]; !ok && os.Getenv("CGO_ENABLED") == "" {
		// modernc.org/sqlite is pure Go
		out["CGO_ENABLED"] = "0"
	}
	return out
}
